// Package onboarding defines the buy-flow step registry: product selection,
// risk details, plan and riders, quote, proposer capture, e-KYC and payment.
package onboarding

import (
	"coverbot/journey"
)

const Module journey.Module = "onboarding"

// Step IDs
const (
	StepWelcome        journey.StepID = "welcome"
	StepLanguage       journey.StepID = "language_select"
	StepProduct        journey.StepID = "product_select"
	StepHealthAge      journey.StepID = "health_age"
	StepHealthCity     journey.StepID = "health_city"
	StepDependents     journey.StepID = "health_dependents"
	StepMotorReg       journey.StepID = "motor_registration"
	StepMotorMake      journey.StepID = "motor_make"
	StepMotorYear      journey.StepID = "motor_year"
	StepLifeAge        journey.StepID = "life_age"
	StepLifeIncome     journey.StepID = "life_income"
	StepLifeCoverTill  journey.StepID = "life_cover_till"
	StepPlan           journey.StepID = "plan_select"
	StepCoverage       journey.StepID = "coverage_amount"
	StepRiders         journey.StepID = "rider_select"
	StepQuoteSummary   journey.StepID = "quote_summary"
	StepProposerName   journey.StepID = "proposer_name"
	StepProposerPAN    journey.StepID = "proposer_pan"
	StepNomineeName    journey.StepID = "nominee_name"
	StepNomineeRel     journey.StepID = "nominee_relation"
	StepPaymentMethod  journey.StepID = "payment_method"
	StepPaymentWorking journey.StepID = "payment_processing"
	StepPaymentDone    journey.StepID = "payment_success"
	StepKycIntro       journey.StepID = "ekyc_intro"
	StepAadhaarNumber  journey.StepID = "aadhaar_number"
	StepAadhaarOTP     journey.StepID = "aadhaar_otp"
	StepKycRetry       journey.StepID = "ekyc_retry"
	StepKycFailed      journey.StepID = "ekyc_failed"
	StepKycSuccess     journey.StepID = "ekyc_success"
	StepDone           journey.StepID = "onboarding_done"
)

// Answer keys
const (
	KeyLanguage         = "language"
	KeyProduct          = "product"
	KeyAge              = "age"
	KeyCityTier         = "city_tier"
	KeyDependents       = "dependents"
	KeyVehicleReg       = "vehicle_reg"
	KeyVehicleMake      = "vehicle_make"
	KeyVehicleYear      = "vehicle_year"
	KeyIncomeLakh       = "income_lakh"
	KeyCoverTill        = "cover_till"
	KeyPlan             = "plan"
	KeySumInsured       = "sum_insured"
	KeyRiders           = "riders"
	KeyQuote            = "quote"
	KeyAccidentalUsed   = "accidental_used_pct"
	KeyCriticalUsed     = "critical_used_pct"
	KeyProposerName     = "proposer_name"
	KeyProposerPAN      = "proposer_pan"
	KeyNomineeName      = "nominee_name"
	KeyNomineeRelation  = "nominee_relation"
	KeyPaymentMethod    = "payment_method"
	KeyAadhaar          = "aadhaar"
	KeyKycAttempts      = "kyc_attempts"
	KeySmoker           = "smoker"
)

// NewRegistry builds the onboarding registry. Demo predicates arrive from
// config; steps never hardcode sentinel values.
func NewRegistry(sent journey.Sentinels) *journey.Registry {
	return journey.NewRegistry(Module, StepWelcome, steps(sent)...)
}
