package journey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coverbot/journey"
)

func step(id, next journey.StepID) journey.StepDefinition {
	routes := []journey.StepID{next}
	return journey.StepDefinition{
		ID:     id,
		Widget: journey.WidgetNone,
		Script: journey.Say("x"),
		Next:   journey.To(next),
		Routes: routes,
	}
}

func TestNewRegistryPanicsOnDuplicateID(t *testing.T) {
	assert.Panics(t, func() {
		journey.NewRegistry("m", "a", step("a", journey.StepEnd), step("a", journey.StepEnd))
	})
}

func TestNewRegistryPanicsOnMissingRouter(t *testing.T) {
	assert.Panics(t, func() {
		journey.NewRegistry("m", "a", journey.StepDefinition{ID: "a", Widget: journey.WidgetNone})
	})
}

func TestNewRegistryPanicsOnUnknownEntry(t *testing.T) {
	assert.Panics(t, func() {
		journey.NewRegistry("m", "missing", step("a", journey.StepEnd))
	})
}

func TestUnionRejectsCrossModuleCollision(t *testing.T) {
	a := journey.NewRegistry("ma", "dup", step("dup", journey.StepEnd))
	b := journey.NewRegistry("mb", "dup", step("dup", journey.StepEnd))

	_, err := journey.NewUnion(a, b)
	assert.Error(t, err)
}

func TestValidateCatchesUnknownRoute(t *testing.T) {
	reg := journey.NewRegistry("m", "a", step("a", "ghost"))
	u, err := journey.NewUnion(reg)
	require.NoError(t, err)

	assert.Error(t, u.Validate())
}

func TestValidateCatchesAutoAdvanceSelfRoute(t *testing.T) {
	reg := journey.NewRegistry("m", "a", step("a", "a"))
	u, err := journey.NewUnion(reg)
	require.NoError(t, err)

	assert.Error(t, u.Validate())
}

func TestValidateCatchesMissingRoutes(t *testing.T) {
	reg := journey.NewRegistry("m", "a", journey.StepDefinition{
		ID:     "a",
		Widget: journey.WidgetNone,
		Script: journey.Say("x"),
		Next:   journey.To(journey.StepEnd),
	})
	u, err := journey.NewUnion(reg)
	require.NoError(t, err)

	assert.Error(t, u.Validate())
}

func TestValidateAcceptsCrossModuleRoutesAndTerminal(t *testing.T) {
	a := journey.NewRegistry("ma", "a1", step("a1", "b1"))
	b := journey.NewRegistry("mb", "b1", step("b1", journey.StepEnd))

	u, err := journey.NewUnion(a, b)
	require.NoError(t, err)
	assert.NoError(t, u.Validate())
}
