package medical_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coverbot/journey"
	"coverbot/journey/journeytest"
	"coverbot/journey/medical"
	"coverbot/journey/onboarding"
)

func newJourney(t *testing.T, rnd journey.Rand) (*journey.Engine, *journeytest.Clock) {
	t.Helper()

	u, err := journey.NewUnion(medical.NewRegistry(journey.DefaultSentinels(), rnd))
	require.NoError(t, err)
	require.NoError(t, u.Validate())

	eng := journey.NewEngine(u, slog.New(slog.NewTextHandler(io.Discard, nil)))
	clock := journeytest.NewClock()
	eng.SetClock(clock)

	require.NoError(t, eng.Start(medical.Module))
	clock.Drain()
	return eng, clock
}

func answer(t *testing.T, eng *journey.Engine, clock *journeytest.Clock, step journey.StepID, r journey.Response) {
	t.Helper()
	require.Equal(t, step, eng.Snapshot().CurrentStep, "unexpected step awaiting input")
	require.NoError(t, eng.SubmitResponse(r))
	clock.Drain()
}

func declare(t *testing.T, eng *journey.Engine, clock *journeytest.Clock, smoker string, conditions ...string) {
	t.Helper()
	answer(t, eng, clock, medical.StepSmoking, journey.Response{Option: smoker})
	answer(t, eng, clock, medical.StepConditions, journey.Response{Options: conditions})
	answer(t, eng, clock, medical.StepHeight, journey.Response{Number: 172})
	answer(t, eng, clock, medical.StepWeight, journey.Response{Number: 70})
}

func TestCleanDeclarationsClearInstantly(t *testing.T) {
	eng, clock := newJourney(t, journeytest.FixedRand(99))
	declare(t, eng, clock, "no")

	snap := eng.Snapshot()
	assert.True(t, snap.Completed)

	var sawTelemed bool
	for _, m := range snap.Messages {
		if m.StepID == medical.StepTelemedNeed || m.StepID == medical.StepTelemedSlot {
			sawTelemed = true
		}
	}
	assert.False(t, sawTelemed)
}

func TestConditionsRequireTelemedBooking(t *testing.T) {
	// 99 >= the 20% unavailable threshold: slots are offered.
	eng, clock := newJourney(t, journeytest.FixedRand(99))
	declare(t, eng, clock, "no", "diabetes")

	answer(t, eng, clock, medical.StepTelemedSlot, journey.Response{Option: "tomorrow_morning"})

	snap := eng.Snapshot()
	assert.True(t, snap.Completed)
	assert.Equal(t, "booked", eng.State().GetString(medical.KeyTelemedState))
	assert.Equal(t, "tomorrow_morning", eng.State().GetString(medical.KeyTelemedSlot))
}

func TestTelemedUnavailableOffersCallback(t *testing.T) {
	// 0 < 20: every availability check fails.
	eng, clock := newJourney(t, journeytest.FixedRand(0))
	declare(t, eng, clock, "no", "cardiac")

	require.Equal(t, medical.StepUnavailable, eng.Snapshot().CurrentStep)

	answer(t, eng, clock, medical.StepUnavailable, journey.Response{Option: "callback"})

	snap := eng.Snapshot()
	assert.True(t, snap.Completed)
	assert.Equal(t, "callback", eng.State().GetString(medical.KeyTelemedState))
}

func TestTelemedUnavailableRetryChecksAgain(t *testing.T) {
	calls := 0
	rnd := journey.RandFunc(func() int {
		calls++
		if calls == 1 {
			return 0 // first check: unavailable
		}
		return 50 // second check: available
	})

	eng, clock := newJourney(t, rnd)
	declare(t, eng, clock, "no", "hypertension")

	answer(t, eng, clock, medical.StepUnavailable, journey.Response{Option: "retry"})

	assert.Equal(t, medical.StepTelemedSlot, eng.Snapshot().CurrentStep)
	assert.Equal(t, 2, calls)
}

func TestOlderSmokerNeedsReview(t *testing.T) {
	eng, clock := newJourney(t, journeytest.FixedRand(99))
	// Age arrives from the buy flow's answers.
	eng.State().Set(onboarding.KeyAge, 52)

	declare(t, eng, clock, "yes")

	assert.Equal(t, medical.StepTelemedSlot, eng.Snapshot().CurrentStep)
}
