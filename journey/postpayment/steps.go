package postpayment

import (
	"fmt"
	"strings"

	"coverbot/journey"
)

func steps(newRef RefFunc) []journey.StepDefinition {
	return []journey.StepDefinition{
		{
			ID:     StepMenu,
			Widget: journey.WidgetOptions,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{"I can help with claims, policy changes and questions. What do you need?"},
					Options: []journey.Option{
						{ID: "claim", Label: "File a claim"},
						{ID: "edit", Label: "Update nominee or address"},
						{ID: "faq", Label: "I have a question"},
						{ID: "exit", Label: "Back to dashboard"},
					},
				}
			},
			Next: func(r journey.Response, _ *journey.State) journey.StepID {
				switch r.Option {
				case "claim":
					return StepClaimType
				case "edit":
					return StepEditChoice
				case "faq":
					return StepFaq
				default:
					return StepExit
				}
			},
			Routes: []journey.StepID{StepClaimType, StepEditChoice, StepFaq, StepExit},
		},

		// Claim intimation.
		{
			ID:     StepClaimType,
			Widget: journey.WidgetOptions,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{"Sorry to hear that. What kind of claim is this?"},
					Options: []journey.Option{
						{ID: "hospitalization", Label: "Hospitalization"},
						{ID: "accident", Label: "Accident"},
						{ID: "theft", Label: "Vehicle theft / damage"},
						{ID: "other", Label: "Something else"},
					},
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyClaimType: r.Option}
			},
			Next:   journey.To(StepClaimDetails),
			Routes: []journey.StepID{StepClaimDetails},
		},
		{
			ID:         StepClaimDetails,
			Widget:     journey.WidgetText,
			Validation: "required,min=10",
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages:    []string{"Tell me what happened, in a few sentences. Dates and places help."},
					Placeholder: "What happened?",
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyClaimDetails: strings.TrimSpace(r.Text)}
			},
			Next:   journey.To(StepClaimUpload),
			Routes: []journey.StepID{StepClaimUpload},
		},
		{
			ID:     StepClaimUpload,
			Widget: journey.WidgetUpload,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{"Please upload the supporting documents. Bills, discharge summary or FIR, whatever applies."},
					Ack:      "Documents uploaded",
				}
			},
			Process: func(_ journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyClaimRef: newRef()}
			},
			Next:   journey.To(StepClaimSubmitted),
			Routes: []journey.StepID{StepClaimSubmitted},
		},
		{
			ID:     StepClaimSubmitted,
			Widget: journey.WidgetNone,
			Script: func(_ string, s *journey.State) journey.Script {
				return journey.Script{Messages: []string{
					fmt.Sprintf("✅ Claim registered. Your reference number is %s.", s.GetString(KeyClaimRef)),
					"Our claims team will reach out within 48 hours. You can quote the reference any time.",
				}}
			},
			Next:   journey.To(StepMenu),
			Routes: []journey.StepID{StepMenu},
		},

		// Policy detail edits.
		{
			ID:     StepEditChoice,
			Widget: journey.WidgetOptions,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{"What would you like to update?"},
					Options: []journey.Option{
						{ID: "nominee", Label: "Nominee"},
						{ID: "address", Label: "Address"},
						{ID: "back", Label: "Back"},
					},
				}
			},
			Next: func(r journey.Response, _ *journey.State) journey.StepID {
				switch r.Option {
				case "nominee":
					return StepNomineeName
				case "address":
					return StepAddress
				default:
					return StepMenu
				}
			},
			Routes: []journey.StepID{StepNomineeName, StepAddress, StepMenu},
		},
		{
			ID:         StepNomineeName,
			Widget:     journey.WidgetText,
			Validation: "required,min=2",
			Script: func(_ string, s *journey.State) journey.Script {
				msg := "Who should the new nominee be? Full name:"
				if cur := s.GetString("nominee_name"); cur != "" {
					msg = fmt.Sprintf("Your current nominee is %s. Who should it be now?", cur)
				}
				return journey.Script{Messages: []string{msg}}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{"nominee_name": strings.TrimSpace(r.Text)}
			},
			Next:   journey.To(StepNomineeRel),
			Routes: []journey.StepID{StepNomineeRel},
		},
		{
			ID:     StepNomineeRel,
			Widget: journey.WidgetOptions,
			Script: func(_ string, s *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{fmt.Sprintf("How is %s related to you?", s.GetString("nominee_name"))},
					Options: []journey.Option{
						{ID: "spouse", Label: "Spouse"},
						{ID: "parent", Label: "Parent"},
						{ID: "child", Label: "Child"},
						{ID: "sibling", Label: "Sibling"},
					},
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{"nominee_relation": r.Option}
			},
			Next:   journey.To(StepEditConfirmed),
			Routes: []journey.StepID{StepEditConfirmed},
		},
		{
			ID:         StepAddress,
			Widget:     journey.WidgetText,
			Validation: "required,min=10",
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages:    []string{"What's the new address? Include the PIN code."},
					Placeholder: "Full address with PIN",
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyAddress: strings.TrimSpace(r.Text)}
			},
			Next:   journey.To(StepEditConfirmed),
			Routes: []journey.StepID{StepEditConfirmed},
		},
		{
			ID:     StepEditConfirmed,
			Widget: journey.WidgetNone,
			Script: journey.Say(
				"✅ Done. The change takes effect immediately and you'll get a confirmation email.",
			),
			Next:   journey.To(StepMenu),
			Routes: []journey.StepID{StepMenu},
		},

		// FAQ.
		{
			ID:     StepFaq,
			Widget: journey.WidgetOptions,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{"Pick a topic and I'll explain."},
					Options: []journey.Option{
						{ID: "waiting", Label: "Waiting periods"},
						{ID: "cashless", Label: "Cashless hospitals"},
						{ID: "tax", Label: "Tax benefits"},
						{ID: "cancel", Label: "Cancelling my policy"},
					},
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyFaqTopic: r.Option}
			},
			Next:   journey.To(StepFaqAnswer),
			Routes: []journey.StepID{StepFaqAnswer},
		},
		{
			ID:     StepFaqAnswer,
			Widget: journey.WidgetNone,
			Script: func(_ string, s *journey.State) journey.Script {
				return journey.Script{Messages: []string{faqAnswers[s.GetString(KeyFaqTopic)]}}
			},
			Next:   journey.To(StepMenu),
			Routes: []journey.StepID{StepMenu},
		},

		{
			ID:     StepExit,
			Widget: journey.WidgetNone,
			Script: journey.Say("Anything else, just ask. 👋"),
			Next:   func(journey.Response, *journey.State) journey.StepID { return journey.StepEnd },
			Routes: []journey.StepID{journey.StepEnd},
		},
	}
}

var faqAnswers = map[string]string{
	"waiting":  "Most health plans have a 30-day initial waiting period, and 2-4 years for pre-existing conditions. Accidents are covered from day one.",
	"cashless": "Show your policy number at any network hospital's insurance desk and the bill is settled directly with us. Out of network, pay and claim reimbursement.",
	"tax":      "Health premiums qualify under Section 80D (up to ₹25,000, ₹50,000 for senior citizen parents). Term life premiums qualify under Section 80C.",
	"cancel":   "You can cancel within the 30-day free-look period for a full refund minus any days on risk. After that, refunds follow the short-period scale.",
}
