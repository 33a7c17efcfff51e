// Package medical defines the health declaration registry: lifestyle and
// condition questions, then either an instant clearance or a telemedical
// call booking when the declarations need a doctor's review.
package medical

import (
	"coverbot/journey"
)

const Module journey.Module = "medical"

// Step IDs
const (
	StepIntro       journey.StepID = "med_intro"
	StepSmoking     journey.StepID = "med_smoking"
	StepConditions  journey.StepID = "med_conditions"
	StepHeight      journey.StepID = "med_height"
	StepWeight      journey.StepID = "med_weight"
	StepRoute       journey.StepID = "med_route"
	StepTelemedNeed journey.StepID = "telemed_intro"
	StepTelemedSlot journey.StepID = "telemed_slot"
	StepUnavailable journey.StepID = "telemed_unavailable"
	StepBooked      journey.StepID = "telemed_booked"
	StepClear       journey.StepID = "med_clear"
	StepDone        journey.StepID = "med_done"
)

// Answer keys
const (
	KeySmoker       = "smoker"
	KeyConditions   = "conditions"
	KeyHeightCm     = "height_cm"
	KeyWeightKg     = "weight_kg"
	KeyTelemedSlot  = "telemed_slot"
	KeyTelemedState = "telemed_state" // booked | callback | cleared
)

// NewRegistry builds the medical registry. The rand source decides telemedical
// slot availability so tests can force either branch.
func NewRegistry(sent journey.Sentinels, rnd journey.Rand) *journey.Registry {
	return journey.NewRegistry(Module, StepIntro, steps(sent, rnd)...)
}
