// Package finverify defines the income verification registry used after a
// term life purchase: EPFO OTP for the salaried, GSTIN lookup for business
// owners, an account aggregator consent flow, and self-declaration as the
// fallback. Every failure branch offers an alternate route.
package finverify

import (
	"coverbot/journey"
)

const Module journey.Module = "finverify"

// Step IDs
const (
	StepIntro      journey.StepID = "fin_intro"
	StepEmployment journey.StepID = "employment_type"

	StepEpfoIntro     journey.StepID = "epfo_intro"
	StepEpfoMobile    journey.StepID = "epfo_mobile"
	StepEpfoVerifying journey.StepID = "epfo_verifying"
	StepEpfoOTP       journey.StepID = "epfo_otp"
	StepEpfoFailure   journey.StepID = "epfo_failure"
	StepEpfoTimeout   journey.StepID = "epfo_timeout"
	StepEpfoSuccess   journey.StepID = "epfo_success"
	StepExhausted     journey.StepID = "fin_exhausted"

	StepGstIntro   journey.StepID = "gst_intro"
	StepGstinEntry journey.StepID = "gstin_entry"
	StepGstFailure journey.StepID = "gst_failure"
	StepGstSuccess journey.StepID = "gst_success"

	StepAaIntro    journey.StepID = "aa_intro"
	StepBankSelect journey.StepID = "bank_select"
	StepAaConsent  journey.StepID = "aa_consent"
	StepAaSuccess  journey.StepID = "aa_success"

	StepDeclareIncome journey.StepID = "declare_income"
	StepDone          journey.StepID = "fin_done"
)

// Answer keys
const (
	KeyEmployment     = "employment_type"
	KeyEpfoMobile     = "epfo_mobile"
	KeyFinAttempts    = "fin_attempts"
	KeyGstin          = "gstin"
	KeyBank           = "bank"
	KeyDeclaredIncome = "declared_income_lakh"
	KeyIncomeVerified = "income_verified"
	KeyIncomeSource   = "income_source"
)

// NewRegistry builds the income verification registry around the demo
// predicates from config.
func NewRegistry(sent journey.Sentinels) *journey.Registry {
	return journey.NewRegistry(Module, StepIntro, steps(sent)...)
}
