package dashboard

import (
	"fmt"
	"strings"

	"coverbot/internal/pricing"
	"coverbot/journey"
)

func steps() []journey.StepDefinition {
	return []journey.StepDefinition{
		{
			ID:     StepOverview,
			Widget: journey.WidgetSummary,
			Script: func(_ string, s *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{
						"Here's your policy at a glance.",
						policyText(s),
					},
					Ack: "Viewed policy",
				}
			},
			Next:   journey.To(StepMenu),
			Routes: []journey.StepID{StepMenu},
		},
		{
			ID:     StepMenu,
			Widget: journey.WidgetOptions,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{"What would you like to do?"},
					Options: []journey.Option{
						{ID: "claim", Label: "Start a claim"},
						{ID: "service", Label: "Update policy details"},
						{ID: "download", Label: "Download policy document"},
						{ID: "renew", Label: "Renew policy"},
						{ID: "exit", Label: "I'm done"},
					},
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				switch r.Option {
				case "claim", "service":
					return journey.Delta{journey.KeyNextModule: "postpayment"}
				}
				return nil
			},
			Next: func(r journey.Response, _ *journey.State) journey.StepID {
				switch r.Option {
				case "claim", "service":
					return StepHandoff
				case "download":
					return StepDownload
				case "renew":
					return StepRenew
				default:
					return StepExit
				}
			},
			Routes: []journey.StepID{StepHandoff, StepDownload, StepRenew, StepExit},
		},
		{
			ID:     StepRenew,
			Widget: journey.WidgetOptions,
			Script: func(_ string, s *journey.State) journey.Script {
				total := "your current premium"
				if q, ok := quoteFrom(s); ok {
					total = pricing.FormatINR(q.Total)
				}
				return journey.Script{
					Messages: []string{fmt.Sprintf("Renewing keeps your waiting periods and bonuses intact. The renewal premium is %s.", total)},
					Options: []journey.Option{
						{ID: "confirm", Label: "Renew now"},
						{ID: "back", Label: "Back to menu"},
					},
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				if r.Option == "confirm" {
					return journey.Delta{KeyRenewed: true}
				}
				return nil
			},
			Next:   journey.To(StepMenu),
			Routes: []journey.StepID{StepMenu},
		},
		{
			ID:     StepDownload,
			Widget: journey.WidgetNone,
			Script: journey.Say(
				"📄 Your policy document is on its way to your registered email. It usually lands within a minute.",
			),
			Next:   journey.To(StepMenu),
			Routes: []journey.StepID{StepMenu},
		},
		{
			ID:     StepHandoff,
			Widget: journey.WidgetNone,
			Script: journey.Say("Taking you to policy servicing."),
			Next:   func(journey.Response, *journey.State) journey.StepID { return journey.StepEnd },
			Routes: []journey.StepID{journey.StepEnd},
		},
		{
			ID:     StepExit,
			Widget: journey.WidgetNone,
			Script: journey.Say(
				"Alright! I'm here whenever you need me. Stay covered. 👋",
			),
			Next:   func(journey.Response, *journey.State) journey.StepID { return journey.StepEnd },
			Routes: []journey.StepID{journey.StepEnd},
		},
	}
}

func policyText(s *journey.State) string {
	var b strings.Builder
	product := s.GetString("product")
	if product == "" {
		product = "health"
	}
	fmt.Fprintf(&b, "Product: %s insurance", product)
	if si := s.GetInt("sum_insured"); si > 0 {
		fmt.Fprintf(&b, "\nSum insured: %s", pricing.FormatINR(si))
	}
	if q, ok := quoteFrom(s); ok {
		fmt.Fprintf(&b, "\nAnnual premium: %s", pricing.FormatINR(q.Total))
	}
	if n := s.GetString("nominee_name"); n != "" {
		fmt.Fprintf(&b, "\nNominee: %s (%s)", n, s.GetString("nominee_relation"))
	}
	return b.String()
}

func quoteFrom(s *journey.State) (pricing.Quote, bool) {
	v, ok := s.Get("quote")
	if !ok {
		return pricing.Quote{}, false
	}
	q, ok := v.(pricing.Quote)
	return q, ok
}
