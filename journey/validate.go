package journey

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateResponse refuses malformed input at the widget boundary so that
// response processors never see it. Simulated verification outcomes (wrong
// demo OTP, short GSTIN) are deliberately NOT rejected here: those are graph
// branches, and the step's own Validation tag decides what may pass.
func validateResponse(def *StepDefinition, sc Script, r Response) error {
	switch def.Widget {
	case WidgetOptions:
		if r.Option == "" {
			return fmt.Errorf("step %s: option is required", def.ID)
		}
		if len(sc.Options) > 0 {
			if _, ok := optionLabel(sc.Options, r.Option); !ok {
				return fmt.Errorf("step %s: unknown option %q", def.ID, r.Option)
			}
		}

	case WidgetMultiSelect:
		for _, id := range r.Options {
			if _, ok := optionLabel(sc.Options, id); !ok {
				return fmt.Errorf("step %s: unknown option %q", def.ID, id)
			}
		}

	case WidgetNumber, WidgetSlider:
		if sc.Max > sc.Min {
			if r.Number < float64(sc.Min) || r.Number > float64(sc.Max) {
				return fmt.Errorf("step %s: value %v out of range [%d, %d]", def.ID, r.Number, sc.Min, sc.Max)
			}
		}

	case WidgetText, WidgetPhone, WidgetOTP, WidgetDate:
		if def.Validation != "" {
			if err := validate.Var(r.Text, def.Validation); err != nil {
				return fmt.Errorf("step %s: invalid input: %w", def.ID, err)
			}
		}
	}
	return nil
}
