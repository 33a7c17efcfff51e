package postpayment_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coverbot/journey"
	"coverbot/journey/dashboard"
	"coverbot/journey/journeytest"
	"coverbot/journey/postpayment"
)

func fixedRef() string { return "CLM-TEST0001" }

func newJourney(t *testing.T) (*journey.Engine, *journeytest.Clock, *journeytest.Recorder) {
	t.Helper()

	u, err := journey.NewUnion(
		dashboard.NewRegistry(),
		postpayment.NewRegistry(fixedRef),
	)
	require.NoError(t, err)
	require.NoError(t, u.Validate())

	eng := journey.NewEngine(u, slog.New(slog.NewTextHandler(io.Discard, nil)))
	clock := journeytest.NewClock()
	rec := journeytest.NewRecorder()
	eng.SetClock(clock)
	eng.SetListener(rec)
	return eng, clock, rec
}

func answer(t *testing.T, eng *journey.Engine, clock *journeytest.Clock, step journey.StepID, r journey.Response) {
	t.Helper()
	require.Equal(t, step, eng.Snapshot().CurrentStep, "unexpected step awaiting input")
	require.NoError(t, eng.SubmitResponse(r))
	clock.Drain()
}

func TestDashboardChainsIntoServicing(t *testing.T) {
	eng, clock, rec := newJourney(t)
	require.NoError(t, eng.Start(dashboard.Module))
	clock.Drain()

	answer(t, eng, clock, dashboard.StepOverview, journey.Response{})
	answer(t, eng, clock, dashboard.StepMenu, journey.Response{Option: "claim"})

	// The dashboard hands off and the servicing menu takes over in the
	// same session.
	snap := eng.Snapshot()
	assert.False(t, snap.Completed)
	assert.Equal(t, postpayment.StepMenu, snap.CurrentStep)
	assert.Equal(t, postpayment.Module, snap.CurrentModule)
	assert.Equal(t, []journey.Module{dashboard.Module}, rec.Completed)
}

func TestClaimFlowAssignsReference(t *testing.T) {
	eng, clock, _ := newJourney(t)
	require.NoError(t, eng.Start(postpayment.Module))
	clock.Drain()

	answer(t, eng, clock, postpayment.StepMenu, journey.Response{Option: "claim"})
	answer(t, eng, clock, postpayment.StepClaimType, journey.Response{Option: "hospitalization"})
	answer(t, eng, clock, postpayment.StepClaimDetails, journey.Response{Text: "Admitted on 12 August at Apollo, discharged on the 15th."})
	answer(t, eng, clock, postpayment.StepClaimUpload, journey.Response{})

	// Confirmation quotes the reference, then the menu loops back.
	snap := eng.Snapshot()
	assert.Equal(t, postpayment.StepMenu, snap.CurrentStep)
	assert.Equal(t, "CLM-TEST0001", eng.State().GetString(postpayment.KeyClaimRef))

	var confirmed bool
	for _, m := range snap.Messages {
		if m.StepID == postpayment.StepClaimSubmitted {
			confirmed = true
			assert.Contains(t, m.Text, "CLM-TEST0001")
		}
	}
	assert.True(t, confirmed)
}

func TestNomineeEditLoopsBackToMenu(t *testing.T) {
	eng, clock, _ := newJourney(t)
	require.NoError(t, eng.Start(postpayment.Module))
	clock.Drain()

	answer(t, eng, clock, postpayment.StepMenu, journey.Response{Option: "edit"})
	answer(t, eng, clock, postpayment.StepEditChoice, journey.Response{Option: "nominee"})
	answer(t, eng, clock, postpayment.StepNomineeName, journey.Response{Text: "Meera Iyer"})
	answer(t, eng, clock, postpayment.StepNomineeRel, journey.Response{Option: "spouse"})

	snap := eng.Snapshot()
	assert.Equal(t, postpayment.StepMenu, snap.CurrentStep)
	assert.Equal(t, "Meera Iyer", eng.State().GetString("nominee_name"))
	assert.Equal(t, "spouse", eng.State().GetString("nominee_relation"))
}

func TestFaqAnswersAndLoops(t *testing.T) {
	eng, clock, _ := newJourney(t)
	require.NoError(t, eng.Start(postpayment.Module))
	clock.Drain()

	answer(t, eng, clock, postpayment.StepMenu, journey.Response{Option: "faq"})
	answer(t, eng, clock, postpayment.StepFaq, journey.Response{Option: "cashless"})

	snap := eng.Snapshot()
	assert.Equal(t, postpayment.StepMenu, snap.CurrentStep)

	var answered bool
	for _, m := range snap.Messages {
		if m.StepID == postpayment.StepFaqAnswer {
			answered = true
			assert.Contains(t, m.Text, "network hospital")
		}
	}
	assert.True(t, answered)
}

func TestExitCompletesSession(t *testing.T) {
	eng, clock, rec := newJourney(t)
	require.NoError(t, eng.Start(postpayment.Module))
	clock.Drain()

	answer(t, eng, clock, postpayment.StepMenu, journey.Response{Option: "exit"})

	assert.True(t, eng.Snapshot().Completed)
	assert.Equal(t, []journey.Module{postpayment.Module}, rec.Completed)
}
