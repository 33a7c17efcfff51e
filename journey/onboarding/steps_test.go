package onboarding_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coverbot/internal/pricing"
	"coverbot/journey"
	"coverbot/journey/journeytest"
	"coverbot/journey/onboarding"
)

func newJourney(t *testing.T) (*journey.Engine, *journeytest.Clock, *journeytest.Recorder) {
	t.Helper()

	u, err := journey.NewUnion(onboarding.NewRegistry(journey.DefaultSentinels()))
	require.NoError(t, err)
	require.NoError(t, u.Validate())

	eng := journey.NewEngine(u, slog.New(slog.NewTextHandler(io.Discard, nil)))
	clock := journeytest.NewClock()
	rec := journeytest.NewRecorder()
	eng.SetClock(clock)
	eng.SetListener(rec)

	require.NoError(t, eng.Start(onboarding.Module))
	clock.Drain()
	return eng, clock, rec
}

func answer(t *testing.T, eng *journey.Engine, clock *journeytest.Clock, step journey.StepID, r journey.Response) {
	t.Helper()
	require.Equal(t, step, eng.Snapshot().CurrentStep, "unexpected step awaiting input")
	require.NoError(t, eng.SubmitResponse(r))
	clock.Drain()
}

func option(id string) journey.Response    { return journey.Response{Option: id} }
func number(n float64) journey.Response    { return journey.Response{Number: n} }
func text(s string) journey.Response       { return journey.Response{Text: s} }
func multi(ids ...string) journey.Response { return journey.Response{Options: ids} }

// walkHealthToRiders drives a 30 year old tier-2 single through the health
// flow up to the rider widget with a 10 lakh cover.
func walkHealthToRiders(t *testing.T, eng *journey.Engine, clock *journeytest.Clock) {
	t.Helper()
	answer(t, eng, clock, onboarding.StepLanguage, option("en"))
	answer(t, eng, clock, onboarding.StepProduct, option("health"))
	answer(t, eng, clock, onboarding.StepHealthAge, number(30))
	answer(t, eng, clock, onboarding.StepHealthCity, option("2"))
	answer(t, eng, clock, onboarding.StepDependents, option("0"))
	answer(t, eng, clock, onboarding.StepPlan, option("plus"))
	answer(t, eng, clock, onboarding.StepCoverage, number(1000000))
}

func walkToKycOTP(t *testing.T, eng *journey.Engine, clock *journeytest.Clock) {
	t.Helper()
	walkHealthToRiders(t, eng, clock)
	answer(t, eng, clock, onboarding.StepRiders, multi())
	answer(t, eng, clock, onboarding.StepQuoteSummary, journey.Response{})
	answer(t, eng, clock, onboarding.StepProposerName, text("Asha Rao"))
	answer(t, eng, clock, onboarding.StepProposerPAN, text("ABCDE1234F"))
	answer(t, eng, clock, onboarding.StepNomineeName, text("Ravi Rao"))
	answer(t, eng, clock, onboarding.StepNomineeRel, option("spouse"))
	answer(t, eng, clock, onboarding.StepPaymentMethod, option("upi"))
	// Payment and e-KYC intro auto-advance to the Aadhaar entry.
	answer(t, eng, clock, onboarding.StepAadhaarNumber, text("123456789012"))
	require.Equal(t, onboarding.StepAadhaarOTP, eng.Snapshot().CurrentStep)
}

func TestHealthBuyFlowCompletes(t *testing.T) {
	eng, clock, rec := newJourney(t)
	walkHealthToRiders(t, eng, clock)
	answer(t, eng, clock, onboarding.StepRiders, multi("accidental_death"))

	st := eng.State()
	q, ok := st.Get(onboarding.KeyQuote)
	require.True(t, ok)
	quote := q.(pricing.Quote)
	assert.Equal(t, 9500, quote.Base)
	assert.Equal(t, 456, quote.Riders["accidental_death"])
	assert.Equal(t, 9956, quote.Total)
	assert.InDelta(t, 16.0, st.GetFloat(onboarding.KeyAccidentalUsed), 0.01)

	answer(t, eng, clock, onboarding.StepQuoteSummary, journey.Response{})
	answer(t, eng, clock, onboarding.StepProposerName, text("Asha Rao"))
	answer(t, eng, clock, onboarding.StepProposerPAN, text("ABCDE1234F"))
	answer(t, eng, clock, onboarding.StepNomineeName, text("Ravi Rao"))
	answer(t, eng, clock, onboarding.StepNomineeRel, option("spouse"))
	answer(t, eng, clock, onboarding.StepPaymentMethod, option("upi"))
	answer(t, eng, clock, onboarding.StepAadhaarNumber, text("123456789012"))
	answer(t, eng, clock, onboarding.StepAadhaarOTP, text("123456"))

	snap := eng.Snapshot()
	assert.True(t, snap.Completed)
	assert.Equal(t, []journey.Module{onboarding.Module}, rec.Completed)

	// The OTP is masked in the transcript.
	var otpSeen bool
	for _, m := range snap.Messages {
		if m.StepID == onboarding.StepAadhaarOTP && m.Sender == journey.SenderUser {
			otpSeen = true
			assert.Equal(t, strings.Repeat("•", 6), m.Text)
		}
	}
	assert.True(t, otpSeen)
}

func TestQuoteSummaryRendersDeterministically(t *testing.T) {
	eng, clock, _ := newJourney(t)
	walkHealthToRiders(t, eng, clock)
	answer(t, eng, clock, onboarding.StepRiders, multi("accidental_death", "accidental_disability", "critical_illness"))
	answer(t, eng, clock, onboarding.StepQuoteSummary, journey.Response{})

	want := strings.Join([]string{
		"Base premium: ₹9,500/yr",
		"Accidental death benefit: ₹456/yr",
		"Accidental disability: ₹340/yr",
		"Critical illness: ₹2,800/yr",
		"Total: ₹13,096/yr",
	}, "\n")

	// The summary script is a pure function of state: repeated renders of
	// the same quote list the riders in the same order every time.
	for i := 0; i < 50; i++ {
		_, sc, err := eng.RequestEdit(onboarding.StepQuoteSummary)
		require.NoError(t, err)
		require.Len(t, sc.Messages, 2)
		assert.Equal(t, want, sc.Messages[1])
	}
}

func TestRiderCapRefusesAdvance(t *testing.T) {
	eng, clock, _ := newJourney(t)
	answer(t, eng, clock, onboarding.StepLanguage, option("en"))
	answer(t, eng, clock, onboarding.StepProduct, option("life"))
	answer(t, eng, clock, onboarding.StepLifeAge, number(30))
	answer(t, eng, clock, onboarding.StepLifeIncome, number(12))
	answer(t, eng, clock, onboarding.StepLifeCoverTill, number(60))
	answer(t, eng, clock, onboarding.StepPlan, option("essential"))
	answer(t, eng, clock, onboarding.StepCoverage, number(1000000))

	// A 10 lakh term cover has a small base premium; the accidental death
	// rider alone blows the 30% accidental budget.
	answer(t, eng, clock, onboarding.StepRiders, multi("accidental_death"))
	snap := eng.Snapshot()
	assert.Equal(t, onboarding.StepRiders, snap.CurrentStep)
	assert.Equal(t, journey.WidgetMultiSelect, snap.Widget)
	assert.False(t, snap.Completed)

	// Dropping the rider lets the flow continue.
	answer(t, eng, clock, onboarding.StepRiders, multi())
	assert.Equal(t, onboarding.StepQuoteSummary, eng.Snapshot().CurrentStep)
}

func TestMotorSkipsCoverageAndRiders(t *testing.T) {
	eng, clock, _ := newJourney(t)
	answer(t, eng, clock, onboarding.StepLanguage, option("en"))
	answer(t, eng, clock, onboarding.StepProduct, option("motor"))
	answer(t, eng, clock, onboarding.StepMotorReg, text("MH12AB1234"))
	answer(t, eng, clock, onboarding.StepMotorMake, option("maruti"))
	answer(t, eng, clock, onboarding.StepMotorYear, number(2021))
	answer(t, eng, clock, onboarding.StepPlan, option("plus"))

	// Coverage and riders never render for motor.
	snap := eng.Snapshot()
	assert.Equal(t, onboarding.StepQuoteSummary, snap.CurrentStep)
	for _, m := range snap.Messages {
		assert.NotEqual(t, onboarding.StepCoverage, m.StepID)
		assert.NotEqual(t, onboarding.StepRiders, m.StepID)
	}

	q, ok := eng.State().Get(onboarding.KeyQuote)
	require.True(t, ok)
	// 5 year old vehicle: 35% depreciation off the 6200 slab.
	assert.Equal(t, 4030, q.(pricing.Quote).Base)
}

func TestKycWrongOTPExhaustsAttempts(t *testing.T) {
	eng, clock, rec := newJourney(t)
	walkToKycOTP(t, eng, clock)

	// Two wrong codes bounce to the retry prompt.
	for i := 0; i < 2; i++ {
		answer(t, eng, clock, onboarding.StepAadhaarOTP, text("999999"))
		answer(t, eng, clock, onboarding.StepKycRetry, option("retry"))
	}

	// Third strike lands on the failure step, which still offers a way on.
	answer(t, eng, clock, onboarding.StepAadhaarOTP, text("999999"))
	require.Equal(t, onboarding.StepKycFailed, eng.Snapshot().CurrentStep)

	answer(t, eng, clock, onboarding.StepKycFailed, option("later"))
	snap := eng.Snapshot()
	assert.True(t, snap.Completed)
	assert.Equal(t, []journey.Module{onboarding.Module}, rec.Completed)
}

func TestEditCoverageReopensDownstream(t *testing.T) {
	eng, clock, rec := newJourney(t)
	walkHealthToRiders(t, eng, clock)
	answer(t, eng, clock, onboarding.StepRiders, multi("accidental_death"))
	require.Equal(t, onboarding.StepQuoteSummary, eng.Snapshot().CurrentStep)

	require.NoError(t, eng.ConfirmEdit(onboarding.StepCoverage, number(2000000)))
	clock.Drain()

	// The quote is rebuilt for the new cover and the rider step is re-asked.
	q, ok := eng.State().Get(onboarding.KeyQuote)
	require.True(t, ok)
	assert.Equal(t, 19000, q.(pricing.Quote).Base)

	snap := eng.Snapshot()
	assert.Equal(t, onboarding.StepRiders, snap.CurrentStep)
	assert.Equal(t, []journey.StepID{onboarding.StepCoverage}, rec.Trimmed)
}
