package journey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coverbot/journey"
)

func addPair(st *journey.Store, step journey.StepID) {
	st.AddMessage(journey.Message{Sender: journey.SenderBot, Text: "prompt " + string(step), StepID: step})
	st.AddMessage(journey.Message{Sender: journey.SenderUser, Text: "answer " + string(step), StepID: step, Editable: true})
}

func TestTrimFromStepKeepsPromptCutsAnswerOnward(t *testing.T) {
	st := journey.NewStore("s1", "m")
	addPair(st, "s1")
	addPair(st, "s2")
	addPair(st, "s3")
	require.Len(t, st.State().History, 6)

	require.True(t, st.TrimFromStep("s2"))

	// The edited step's prompt survives; its answer and everything after go.
	h := st.State().History
	require.Len(t, h, 3)
	assert.Equal(t, journey.StepID("s2"), h[2].StepID)
	assert.Equal(t, journey.SenderBot, h[2].Sender)
}

func TestTrimFromStepUsesLastOccurrence(t *testing.T) {
	// Loop-back flows answer the same step twice; the edit targets the
	// latest answer, earlier transcript stays.
	st := journey.NewStore("menu", "m")
	addPair(st, "menu")
	addPair(st, "faq")
	addPair(st, "menu")
	require.Len(t, st.State().History, 6)

	require.True(t, st.TrimFromStep("menu"))

	h := st.State().History
	require.Len(t, h, 5)
	assert.Equal(t, journey.StepID("faq"), h[3].StepID)
	assert.Equal(t, journey.StepID("menu"), h[4].StepID)
	assert.Equal(t, journey.SenderBot, h[4].Sender)
}

func TestTrimFromStepMissingStep(t *testing.T) {
	st := journey.NewStore("s1", "m")
	addPair(st, "s1")
	assert.False(t, st.TrimFromStep("nope"))
	assert.Len(t, st.State().History, 2)
}

func TestMergeLastWriteWins(t *testing.T) {
	st := journey.NewStore("s1", "m")
	st.Merge(journey.Delta{"plan": "plus", "age": 30})
	st.Merge(journey.Delta{"plan": "premium"})

	s := st.State()
	assert.Equal(t, "premium", s.GetString("plan"))
	assert.Equal(t, 30, s.GetInt("age"))
}

func TestStateTypedAccessors(t *testing.T) {
	s := journey.NewState("s1", "m")
	s.Set("age", float64(42)) // JSON round trips numbers as float64
	s.Set("smoker", true)
	s.Set("riders", []any{"accidental_death", "hospital_cash"})

	assert.Equal(t, 42, s.GetInt("age"))
	assert.True(t, s.GetBool("smoker"))
	assert.Equal(t, []string{"accidental_death", "hospital_cash"}, s.GetStrings("riders"))
	assert.Equal(t, "", s.GetString("missing"))
	assert.Equal(t, 0, s.GetInt("missing"))
}

func TestResetClearsEverything(t *testing.T) {
	st := journey.NewStore("s1", "m")
	addPair(st, "s1")
	st.Merge(journey.Delta{"plan": "plus"})

	st.Reset("s1", "m")

	s := st.State()
	assert.Empty(t, s.History)
	assert.Empty(t, s.Answers)
	assert.Equal(t, journey.StepID("s1"), s.CurrentStep)
}
