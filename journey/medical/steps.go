package medical

import (
	"coverbot/journey"
	"coverbot/journey/onboarding"
)

const nextModule = "dashboard"

func steps(sent journey.Sentinels, rnd journey.Rand) []journey.StepDefinition {
	return []journey.StepDefinition{
		{
			ID:     StepIntro,
			Widget: journey.WidgetNone,
			Script: journey.Say(
				"A few quick health questions. Honest answers here keep your claims smooth later.",
			),
			Next:   journey.To(StepSmoking),
			Routes: []journey.StepID{StepSmoking},
		},
		{
			ID:     StepSmoking,
			Widget: journey.WidgetOptions,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{"Have you smoked or used tobacco in the last 12 months?"},
					Options: []journey.Option{
						{ID: "yes", Label: "Yes"},
						{ID: "no", Label: "No"},
					},
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeySmoker: r.Option == "yes"}
			},
			Next:   journey.To(StepConditions),
			Routes: []journey.StepID{StepConditions},
		},
		{
			ID:     StepConditions,
			Widget: journey.WidgetMultiSelect,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{"Do any of these apply to you? Select all that do, or continue with none."},
					Options: []journey.Option{
						{ID: "diabetes", Label: "Diabetes"},
						{ID: "hypertension", Label: "High blood pressure"},
						{ID: "cardiac", Label: "Heart condition"},
						{ID: "thyroid", Label: "Thyroid disorder"},
						{ID: "surgery", Label: "Surgery in the last 5 years"},
					},
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{
					KeyConditions:         r.Options,
					journey.KeyNextModule: nextModule,
				}
			},
			Next:   journey.To(StepHeight),
			Routes: []journey.StepID{StepHeight},
		},
		{
			ID:     StepHeight,
			Widget: journey.WidgetSlider,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{"Your height?"},
					Min:      120, Max: 210, StepSize: 1,
					Unit: "cm",
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyHeightCm: int(r.Number)}
			},
			Next:   journey.To(StepWeight),
			Routes: []journey.StepID{StepWeight},
		},
		{
			ID:     StepWeight,
			Widget: journey.WidgetSlider,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{"And your weight?"},
					Min:      35, Max: 160, StepSize: 1,
					Unit: "kg",
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyWeightKg: int(r.Number)}
			},
			Next:   journey.To(StepRoute),
			Routes: []journey.StepID{StepRoute},
		},
		{
			// Invisible router: declarations decide between instant clearance
			// and a telemedical review.
			ID:     StepRoute,
			Widget: journey.WidgetNone,
			Script: journey.Say(),
			Next: func(_ journey.Response, s *journey.State) journey.StepID {
				if needsTelemed(s) {
					return StepTelemedNeed
				}
				return StepClear
			},
			Routes: []journey.StepID{StepTelemedNeed, StepClear},
		},
		{
			ID:     StepTelemedNeed,
			Widget: journey.WidgetNone,
			Script: journey.Say(
				"Based on your declarations, a short telemedical call with our doctor is needed. No physical tests, just a 10-minute video call.",
			),
			Next: func(_ journey.Response, _ *journey.State) journey.StepID {
				if rnd.Percent() < sent.CallUnavailablePercent {
					return StepUnavailable
				}
				return StepTelemedSlot
			},
			Routes: []journey.StepID{StepTelemedSlot, StepUnavailable},
		},
		{
			ID:     StepTelemedSlot,
			Widget: journey.WidgetOptions,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{"Pick a slot that works for you."},
					Options: []journey.Option{
						{ID: "tomorrow_morning", Label: "Tomorrow, 9-11 am"},
						{ID: "tomorrow_evening", Label: "Tomorrow, 6-8 pm"},
						{ID: "dayafter_morning", Label: "Day after, 9-11 am"},
					},
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{
					KeyTelemedSlot:  r.Option,
					KeyTelemedState: "booked",
				}
			},
			Next:   journey.To(StepBooked),
			Routes: []journey.StepID{StepBooked},
		},
		{
			ID:     StepUnavailable,
			Widget: journey.WidgetOptions,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{
						"All our doctors are busy right now.",
						"We'll call you back within 24 hours, or you can check the slots again.",
					},
					Options: []journey.Option{
						{ID: "callback", Label: "Call me back"},
						{ID: "retry", Label: "Check slots again"},
					},
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				if r.Option == "callback" {
					return journey.Delta{KeyTelemedState: "callback"}
				}
				return nil
			},
			Next: func(r journey.Response, _ *journey.State) journey.StepID {
				if r.Option == "retry" {
					return StepTelemedNeed
				}
				return StepDone
			},
			Routes: []journey.StepID{StepTelemedNeed, StepDone},
		},
		{
			ID:     StepBooked,
			Widget: journey.WidgetNone,
			Script: journey.Say(
				"📞 Your telemedical call is booked. You'll get a reminder 30 minutes before.",
			),
			Next:   journey.To(StepDone),
			Routes: []journey.StepID{StepDone},
		},
		{
			ID:     StepClear,
			Widget: journey.WidgetNone,
			Script: journey.Say(
				"✅ No medical review needed. Your declarations are accepted as-is.",
			),
			Next:   journey.To(StepDone),
			Routes: []journey.StepID{StepDone},
		},
		{
			ID:     StepDone,
			Widget: journey.WidgetNone,
			Script: journey.Say("That's the health check done. Let me take you to your dashboard."),
			Next:   func(journey.Response, *journey.State) journey.StepID { return journey.StepEnd },
			Routes: []journey.StepID{journey.StepEnd},
		},
	}
}

// needsTelemed reports whether the declarations require a doctor's review:
// any chronic condition, or smoker over 40.
func needsTelemed(s *journey.State) bool {
	if len(s.GetStrings(KeyConditions)) > 0 {
		return true
	}
	return s.GetBool(KeySmoker) && s.GetInt(onboarding.KeyAge) > 40
}
