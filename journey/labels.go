package journey

import (
	"strconv"
	"strings"
)

// responseLabel derives the human-readable transcript text for an answer:
// option ids resolve to their labels, multi-selects join with commas, and
// widgets without a literal answer fall back to the script's acknowledgement.
func responseLabel(def *StepDefinition, sc Script, r Response) string {
	switch def.Widget {
	case WidgetOptions:
		if label, ok := optionLabel(sc.Options, r.Option); ok {
			return label
		}
		return r.Option

	case WidgetMultiSelect:
		if len(r.Options) == 0 {
			return "None selected"
		}
		labels := make([]string, 0, len(r.Options))
		for _, id := range r.Options {
			if label, ok := optionLabel(sc.Options, id); ok {
				labels = append(labels, label)
			} else {
				labels = append(labels, id)
			}
		}
		return strings.Join(labels, ", ")

	case WidgetNumber, WidgetSlider:
		label := strconv.FormatFloat(r.Number, 'f', -1, 64)
		if sc.Unit != "" {
			label = sc.Unit + label
		}
		return label

	case WidgetOTP:
		// OTPs are masked in the transcript.
		return strings.Repeat("•", len(r.Text))

	case WidgetSummary:
		if sc.Ack != "" {
			return sc.Ack
		}
		return "Reviewed, continuing"

	case WidgetUpload:
		if sc.Ack != "" {
			return sc.Ack
		}
		return "Document uploaded"

	default:
		return r.Text
	}
}

func optionLabel(opts []Option, id string) (string, bool) {
	for _, o := range opts {
		if o.ID == id {
			return o.Label, true
		}
	}
	return "", false
}
