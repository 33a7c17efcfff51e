// Package postpayment defines the servicing registry reachable from the
// dashboard: claim intimation, nominee and address updates, and a small FAQ.
// The menu loops until the user leaves.
package postpayment

import (
	"coverbot/journey"
)

const Module journey.Module = "postpayment"

// Step IDs
const (
	StepMenu journey.StepID = "pp_menu"

	StepClaimType      journey.StepID = "claim_type"
	StepClaimDetails   journey.StepID = "claim_details"
	StepClaimUpload    journey.StepID = "claim_upload"
	StepClaimSubmitted journey.StepID = "claim_submitted"

	StepEditChoice    journey.StepID = "edit_choice"
	StepNomineeName   journey.StepID = "edit_nominee_name"
	StepNomineeRel    journey.StepID = "edit_nominee_relation"
	StepAddress       journey.StepID = "edit_address"
	StepEditConfirmed journey.StepID = "edit_confirmed"

	StepFaq       journey.StepID = "pp_faq"
	StepFaqAnswer journey.StepID = "pp_faq_answer"

	StepExit journey.StepID = "pp_exit"
)

// Answer keys
const (
	KeyClaimType    = "claim_type"
	KeyClaimDetails = "claim_details"
	KeyClaimRef     = "claim_ref"
	KeyFaqTopic     = "faq_topic"
	KeyAddress      = "address"
)

// RefFunc mints claim reference numbers. Injected so tests are deterministic.
type RefFunc func() string

// NewRegistry builds the servicing registry around a claim reference minter.
func NewRegistry(newRef RefFunc) *journey.Registry {
	return journey.NewRegistry(Module, StepMenu, steps(newRef)...)
}
