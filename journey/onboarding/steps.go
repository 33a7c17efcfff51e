package onboarding

import (
	"fmt"
	"strconv"
	"strings"

	"coverbot/internal/persona"
	"coverbot/internal/pricing"
	"coverbot/journey"
)

// Vehicle age is computed against the newest model year the prototype knows.
const currentModelYear = 2026

var planPct = map[string]int{
	"essential": 90,
	"plus":      100,
	"premium":   120,
}

func steps(sent journey.Sentinels) []journey.StepDefinition {
	return []journey.StepDefinition{
		{
			ID:     StepWelcome,
			Widget: journey.WidgetNone,
			Script: journey.Say(
				"Hi! I'm Cova, your insurance assistant. Let's find you the right cover in a few minutes.",
			),
			Next:   journey.To(StepLanguage),
			Routes: []journey.StepID{StepLanguage},
		},
		{
			ID:     StepLanguage,
			Widget: journey.WidgetOptions,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{"Which language would you prefer?"},
					Options: []journey.Option{
						{ID: "en", Label: "English"},
						{ID: "hi", Label: "हिंदी"},
					},
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyLanguage: r.Option}
			},
			Next:   journey.To(StepProduct),
			Routes: []journey.StepID{StepProduct},
		},
		{
			ID:     StepProduct,
			Widget: journey.WidgetOptions,
			Script: func(_ string, s *journey.State) journey.Script {
				tr := persona.Strings(s.GetString(KeyLanguage))
				return journey.Script{
					Messages: []string{tr["pick_product"]},
					Options: []journey.Option{
						{ID: "health", Label: "Health insurance"},
						{ID: "motor", Label: "Motor insurance"},
						{ID: "life", Label: "Term life insurance"},
					},
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyProduct: r.Option}
			},
			Next: func(r journey.Response, _ *journey.State) journey.StepID {
				switch r.Option {
				case "motor":
					return StepMotorReg
				case "life":
					return StepLifeAge
				default:
					return StepHealthAge
				}
			},
			Routes: []journey.StepID{StepHealthAge, StepMotorReg, StepLifeAge},
		},

		// Health detail capture.
		{
			ID:     StepHealthAge,
			Widget: journey.WidgetNumber,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages:    []string{"How old is the eldest member you want covered?"},
					Placeholder: "Age in years",
					Min:         18, Max: 70,
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyAge: int(r.Number)}
			},
			Next:   journey.To(StepHealthCity),
			Routes: []journey.StepID{StepHealthCity},
		},
		{
			ID:     StepHealthCity,
			Widget: journey.WidgetOptions,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{"Which city do you live in? Treatment costs differ by city."},
					Options: []journey.Option{
						{ID: "1", Label: "Metro (Mumbai, Delhi, Bengaluru...)"},
						{ID: "2", Label: "Tier-2 city"},
						{ID: "3", Label: "Other"},
					},
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				tier := 3
				switch r.Option {
				case "1":
					tier = 1
				case "2":
					tier = 2
				}
				return journey.Delta{KeyCityTier: tier}
			},
			Next:   journey.To(StepDependents),
			Routes: []journey.StepID{StepDependents},
		},
		{
			ID:     StepDependents,
			Widget: journey.WidgetOptions,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{"How many family members should the policy cover besides you?"},
					Options: []journey.Option{
						{ID: "0", Label: "Just me"},
						{ID: "1", Label: "Me + 1"},
						{ID: "2", Label: "Me + 2"},
						{ID: "3", Label: "Me + 3 or more"},
					},
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				n, _ := strconv.Atoi(r.Option)
				return journey.Delta{KeyDependents: n}
			},
			Next:   journey.To(StepPlan),
			Routes: []journey.StepID{StepPlan},
		},

		// Motor detail capture.
		{
			ID:         StepMotorReg,
			Widget:     journey.WidgetText,
			Validation: "required,min=6,max=12",
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages:    []string{"What's your vehicle registration number?"},
					Placeholder: "e.g. MH12AB1234",
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyVehicleReg: strings.ToUpper(strings.TrimSpace(r.Text))}
			},
			Next:   journey.To(StepMotorMake),
			Routes: []journey.StepID{StepMotorMake},
		},
		{
			ID:     StepMotorMake,
			Widget: journey.WidgetOptions,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{"Who makes it?"},
					Options: []journey.Option{
						{ID: "maruti", Label: "Maruti Suzuki"},
						{ID: "hyundai", Label: "Hyundai"},
						{ID: "tata", Label: "Tata"},
						{ID: "other", Label: "Other"},
					},
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyVehicleMake: r.Option}
			},
			Next:   journey.To(StepMotorYear),
			Routes: []journey.StepID{StepMotorYear},
		},
		{
			ID:     StepMotorYear,
			Widget: journey.WidgetNumber,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages:    []string{"Which year was it registered?"},
					Placeholder: "e.g. 2021",
					Min:         2005, Max: currentModelYear,
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyVehicleYear: int(r.Number)}
			},
			Next:   journey.To(StepPlan),
			Routes: []journey.StepID{StepPlan},
		},

		// Life detail capture.
		{
			ID:     StepLifeAge,
			Widget: journey.WidgetNumber,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages:    []string{"How old are you?"},
					Placeholder: "Age in years",
					Min:         18, Max: 60,
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyAge: int(r.Number)}
			},
			Next:   journey.To(StepLifeIncome),
			Routes: []journey.StepID{StepLifeIncome},
		},
		{
			ID:     StepLifeIncome,
			Widget: journey.WidgetNumber,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages:    []string{"What's your annual income? This decides the cover you're eligible for."},
					Placeholder: "In lakhs, e.g. 12",
					Min:         1, Max: 500,
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyIncomeLakh: int(r.Number)}
			},
			Next:   journey.To(StepLifeCoverTill),
			Routes: []journey.StepID{StepLifeCoverTill},
		},
		{
			ID:     StepLifeCoverTill,
			Widget: journey.WidgetSlider,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{"Until what age do you want the cover to run?"},
					Min:      50, Max: 85, StepSize: 5,
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyCoverTill: int(r.Number)}
			},
			Next:   journey.To(StepPlan),
			Routes: []journey.StepID{StepPlan},
		},

		{
			ID:     StepPlan,
			Widget: journey.WidgetOptions,
			Script: func(_ string, s *journey.State) journey.Script {
				product := s.GetString(KeyProduct)
				return journey.Script{
					Messages: []string{fmt.Sprintf("Here are the %s plans I'd suggest. Pick one to see your premium.", product)},
					Options: []journey.Option{
						{ID: "essential", Label: "Essential, covers the basics"},
						{ID: "plus", Label: "Plus, our most popular"},
						{ID: "premium", Label: "Premium, widest cover"},
					},
				}
			},
			Process: func(r journey.Response, s *journey.State) journey.Delta {
				d := journey.Delta{KeyPlan: r.Option}
				// Motor skips the coverage and rider steps, so its quote is
				// final as soon as the plan is known.
				if s.GetString(KeyProduct) == "motor" {
					d[KeyQuote] = buildQuote(factorsFrom(s), r.Option, nil)
				}
				return d
			},
			Next:   journey.To(StepCoverage),
			Routes: []journey.StepID{StepCoverage},
		},
		{
			ID:     StepCoverage,
			Widget: journey.WidgetSlider,
			// Motor cover is fixed by the vehicle's insured value, so the
			// slider only shows for health and life.
			Condition: func(s *journey.State) bool {
				return s.GetString(KeyProduct) != "motor"
			},
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{"How much cover do you want?"},
					Min:      500000, Max: 2000000, StepSize: 500000,
					Unit: "₹",
				}
			},
			Process: func(r journey.Response, s *journey.State) journey.Delta {
				d := journey.Delta{KeySumInsured: int(r.Number)}
				// The quote is recomputed whole whenever an input changes.
				factors := factorsFrom(s)
				factors.SumInsured = int(r.Number)
				d[KeyQuote] = buildQuote(factors, s.GetString(KeyPlan), nil)
				return d
			},
			Next:   journey.To(StepRiders),
			Routes: []journey.StepID{StepRiders},
		},
		{
			ID:     StepRiders,
			Widget: journey.WidgetMultiSelect,
			Condition: func(s *journey.State) bool {
				return s.GetString(KeyProduct) != "motor"
			},
			Script: func(_ string, s *journey.State) journey.Script {
				cov := riderCoverage(s)
				age := s.GetInt(KeyAge)
				smoker := s.GetBool(KeySmoker)
				opts := make([]journey.Option, 0, len(riderOrder))
				for _, id := range riderOrder {
					p := pricing.CalculateRiderPremium(id, cov, age, smoker)
					opts = append(opts, journey.Option{
						ID:    id,
						Label: fmt.Sprintf("%s (+%s/yr)", riderNames[id], pricing.FormatINR(p)),
					})
				}
				return journey.Script{
					Messages: []string{"Want to add any riders? Accidental riders can use up to 30% of your base premium, critical illness up to 100%."},
					Options:  opts,
				}
			},
			Process: func(r journey.Response, s *journey.State) journey.Delta {
				factors := factorsFrom(s)
				q := buildQuote(factors, s.GetString(KeyPlan), r.Options)
				accSpent, ciSpent := riderSpend(q)
				return journey.Delta{
					KeyRiders:         r.Options,
					KeyQuote:          q,
					KeyAccidentalUsed: pricing.CapUsage(accSpent, pricing.AccidentalCap(q.Base)),
					KeyCriticalUsed:   pricing.CapUsage(ciSpent, pricing.CriticalCap(q.Base)),
				}
			},
			Next: func(_ journey.Response, s *journey.State) journey.StepID {
				// Routing sees the merged state; an over-cap selection
				// refuses to advance and keeps the widget up.
				q, ok := quoteFrom(s)
				if ok {
					accSpent, ciSpent := riderSpend(q)
					if accSpent > pricing.AccidentalCap(q.Base) || ciSpent > pricing.CriticalCap(q.Base) {
						return StepRiders
					}
				}
				return StepQuoteSummary
			},
			Routes: []journey.StepID{StepRiders, StepQuoteSummary},
		},
		{
			ID:     StepQuoteSummary,
			Widget: journey.WidgetSummary,
			Script: func(p string, s *journey.State) journey.Script {
				tr := persona.Strings(s.GetString(KeyLanguage))
				lines := []string{tr["quote_ready"], quoteText(s)}
				if p == string(persona.Senior) {
					lines = append(lines, "Premiums are locked for the first year; renewals follow the age band.")
				}
				return journey.Script{
					Messages: lines,
					Ack:      "Reviewed quote, continuing",
				}
			},
			Next:   journey.To(StepProposerName),
			Routes: []journey.StepID{StepProposerName},
		},

		// Proposer and nominee capture.
		{
			ID:         StepProposerName,
			Widget:     journey.WidgetText,
			Validation: "required,min=2",
			Script: journey.Say(
				"Let's set up the policy. What's the proposer's full name?",
			),
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyProposerName: strings.TrimSpace(r.Text)}
			},
			Next:   journey.To(StepProposerPAN),
			Routes: []journey.StepID{StepProposerPAN},
		},
		{
			ID:         StepProposerPAN,
			Widget:     journey.WidgetText,
			Validation: "required,alphanum,len=10",
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages:    []string{"And the proposer's PAN?"},
					Placeholder: "ABCDE1234F",
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyProposerPAN: strings.ToUpper(r.Text)}
			},
			Next:   journey.To(StepNomineeName),
			Routes: []journey.StepID{StepNomineeName},
		},
		{
			ID:         StepNomineeName,
			Widget:     journey.WidgetText,
			Validation: "required,min=2",
			Script: journey.Say(
				"Who should receive the benefit if something happens? Nominee's full name:",
			),
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyNomineeName: strings.TrimSpace(r.Text)}
			},
			Next:   journey.To(StepNomineeRel),
			Routes: []journey.StepID{StepNomineeRel},
		},
		{
			ID:     StepNomineeRel,
			Widget: journey.WidgetOptions,
			Script: func(_ string, s *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{fmt.Sprintf("How is %s related to you?", s.GetString(KeyNomineeName))},
					Options: []journey.Option{
						{ID: "spouse", Label: "Spouse"},
						{ID: "parent", Label: "Parent"},
						{ID: "child", Label: "Child"},
						{ID: "sibling", Label: "Sibling"},
					},
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyNomineeRelation: r.Option}
			},
			Next:   journey.To(StepPaymentMethod),
			Routes: []journey.StepID{StepPaymentMethod},
		},

		// Payment (simulated).
		{
			ID:     StepPaymentMethod,
			Widget: journey.WidgetOptions,
			Script: func(_ string, s *journey.State) journey.Script {
				total := "your premium"
				if q, ok := quoteFrom(s); ok {
					total = pricing.FormatINR(q.Total)
				}
				return journey.Script{
					Messages: []string{fmt.Sprintf("Time to pay %s. How would you like to pay?", total)},
					Options: []journey.Option{
						{ID: "upi", Label: "UPI"},
						{ID: "card", Label: "Credit / debit card"},
						{ID: "netbanking", Label: "Net banking"},
					},
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyPaymentMethod: r.Option}
			},
			Next:   journey.To(StepPaymentWorking),
			Routes: []journey.StepID{StepPaymentWorking},
		},
		{
			ID:     StepPaymentWorking,
			Widget: journey.WidgetNone,
			Script: journey.Say("Processing your payment..."),
			Next:   journey.To(StepPaymentDone),
			Routes: []journey.StepID{StepPaymentDone},
		},
		{
			ID:     StepPaymentDone,
			Widget: journey.WidgetNone,
			Script: func(_ string, s *journey.State) journey.Script {
				tr := persona.Strings(s.GetString(KeyLanguage))
				return journey.Script{Messages: []string{tr["payment_done"]}}
			},
			Next:   journey.To(StepKycIntro),
			Routes: []journey.StepID{StepKycIntro},
		},

		// Aadhaar e-KYC (simulated, sentinel-driven).
		{
			ID:     StepKycIntro,
			Widget: journey.WidgetNone,
			Script: func(_ string, s *journey.State) journey.Script {
				tr := persona.Strings(s.GetString(KeyLanguage))
				return journey.Script{Messages: []string{tr["kyc_intro"]}}
			},
			Next:   journey.To(StepAadhaarNumber),
			Routes: []journey.StepID{StepAadhaarNumber},
		},
		{
			ID:         StepAadhaarNumber,
			Widget:     journey.WidgetText,
			Validation: "required,numeric,len=12",
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages:    []string{"Please enter your 12-digit Aadhaar number. We'll send an OTP to the linked mobile."},
					Placeholder: "XXXX XXXX XXXX",
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyAadhaar: r.Text}
			},
			Next:   journey.To(StepAadhaarOTP),
			Routes: []journey.StepID{StepAadhaarOTP},
		},
		{
			ID:         StepAadhaarOTP,
			Widget:     journey.WidgetOTP,
			Validation: "required,numeric,len=6",
			Script: journey.Say(
				"Enter the 6-digit OTP sent to your Aadhaar-linked mobile.",
			),
			Process: func(r journey.Response, s *journey.State) journey.Delta {
				if sent.IsAadhaarSuccess(r.Text) {
					return journey.Delta{journey.KeyNextModule: string(nextAfterOnboarding(s))}
				}
				return journey.Delta{KeyKycAttempts: s.GetInt(KeyKycAttempts) + 1}
			},
			Next: func(r journey.Response, s *journey.State) journey.StepID {
				if sent.IsAadhaarSuccess(r.Text) {
					return StepKycSuccess
				}
				if s.GetInt(KeyKycAttempts) >= sent.MaxOTPAttempts {
					return StepKycFailed
				}
				return StepKycRetry
			},
			Routes: []journey.StepID{StepKycSuccess, StepKycRetry, StepKycFailed},
		},
		{
			ID:     StepKycRetry,
			Widget: journey.WidgetOptions,
			Script: func(_ string, s *journey.State) journey.Script {
				left := sent.MaxOTPAttempts - s.GetInt(KeyKycAttempts)
				return journey.Script{
					Messages: []string{fmt.Sprintf("That OTP didn't match. You have %d attempt(s) left.", left)},
					Options: []journey.Option{
						{ID: "retry", Label: "Try again"},
						{ID: "change", Label: "Re-enter Aadhaar number"},
					},
				}
			},
			Next: func(r journey.Response, _ *journey.State) journey.StepID {
				if r.Option == "change" {
					return StepAadhaarNumber
				}
				return StepAadhaarOTP
			},
			Routes: []journey.StepID{StepAadhaarOTP, StepAadhaarNumber},
		},
		{
			ID:     StepKycFailed,
			Widget: journey.WidgetOptions,
			Script: func(_ string, s *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{
						fmt.Sprintf("We couldn't verify your Aadhaar after %d attempts.", sent.MaxOTPAttempts),
						"Your policy stays active. You can finish KYC later from your dashboard.",
					},
					Options: []journey.Option{
						{ID: "later", Label: "Finish KYC later"},
						{ID: "support", Label: "Talk to support"},
					},
				}
			},
			Process: func(r journey.Response, s *journey.State) journey.Delta {
				return journey.Delta{journey.KeyNextModule: string(nextAfterOnboarding(s))}
			},
			Next:   journey.To(StepDone),
			Routes: []journey.StepID{StepDone},
		},
		{
			ID:     StepKycSuccess,
			Widget: journey.WidgetNone,
			Script: journey.Say("✅ e-KYC verified."),
			Next:   journey.To(StepDone),
			Routes: []journey.StepID{StepDone},
		},
		{
			ID:     StepDone,
			Widget: journey.WidgetNone,
			Script: func(_ string, s *journey.State) journey.Script {
				tr := persona.Strings(s.GetString(KeyLanguage))
				return journey.Script{Messages: []string{tr["thanks"]}}
			},
			Next:   func(journey.Response, *journey.State) journey.StepID { return journey.StepEnd },
			Routes: []journey.StepID{journey.StepEnd},
		},
	}
}

// riderOrder is the presentation order for rider options and quote lines.
var riderOrder = []string{"accidental_death", "accidental_disability", "critical_illness", "hospital_cash"}

var riderNames = map[string]string{
	"accidental_death":      "Accidental death benefit",
	"accidental_disability": "Accidental disability",
	"critical_illness":      "Critical illness",
	"hospital_cash":         "Daily hospital cash",
}

// nextAfterOnboarding picks the follow-up module per product: life goes to
// income verification, health to medical evaluation, motor straight to the
// dashboard.
func nextAfterOnboarding(s *journey.State) journey.Module {
	switch s.GetString(KeyProduct) {
	case "life":
		return "finverify"
	case "health":
		return "medical"
	default:
		return "dashboard"
	}
}

func factorsFrom(s *journey.State) pricing.Factors {
	f := pricing.Factors{
		Age:        s.GetInt(KeyAge),
		SumInsured: s.GetInt(KeySumInsured),
		CityTier:   s.GetInt(KeyCityTier),
		Smoker:     s.GetBool(KeySmoker),
	}
	switch s.GetString(KeyProduct) {
	case "motor":
		f.Product = pricing.Motor
		f.VehicleAge = currentModelYear - s.GetInt(KeyVehicleYear)
	case "life":
		f.Product = pricing.Life
		f.TermYears = s.GetInt(KeyCoverTill) - s.GetInt(KeyAge)
	default:
		f.Product = pricing.Health
	}
	return f
}

// buildQuote prices factors with the plan multiplier applied to the base.
func buildQuote(f pricing.Factors, plan string, riders []string) pricing.Quote {
	q := pricing.BuildQuote(f, riders, riderCoverageFor(f.SumInsured))
	if pct, ok := planPct[plan]; ok {
		q.Total -= q.Base
		q.Base = q.Base * pct / 100
		q.Total += q.Base
	}
	return q
}

func quoteFrom(s *journey.State) (pricing.Quote, bool) {
	v, ok := s.Get(KeyQuote)
	if !ok {
		return pricing.Quote{}, false
	}
	q, ok := v.(pricing.Quote)
	return q, ok
}

// riderSpend splits a quote's rider premiums into the two capped buckets.
func riderSpend(q pricing.Quote) (accidental, critical int) {
	for id, p := range q.Riders {
		if pricing.IsAccidental(id) {
			accidental += p
		} else if id == "critical_illness" {
			critical += p
		}
	}
	return accidental, critical
}

// riderCoverage snaps the chosen sum insured onto the rider table's coverage
// slabs.
func riderCoverage(s *journey.State) int {
	return riderCoverageFor(s.GetInt(KeySumInsured))
}

func riderCoverageFor(sumInsured int) int {
	switch {
	case sumInsured >= 2000000:
		return 2000000
	case sumInsured >= 1000000:
		return 1000000
	default:
		return 500000
	}
}

func quoteText(s *journey.State) string {
	q, ok := quoteFrom(s)
	if !ok {
		return "Your premium will appear here once details are complete."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Base premium: %s/yr", pricing.FormatINR(q.Base))
	// Fixed rider order so identical state always renders identical text.
	for _, id := range riderOrder {
		if p, ok := q.Riders[id]; ok {
			fmt.Fprintf(&b, "\n%s: %s/yr", riderNames[id], pricing.FormatINR(p))
		}
	}
	fmt.Fprintf(&b, "\nTotal: %s/yr", pricing.FormatINR(q.Total))
	return b.String()
}
