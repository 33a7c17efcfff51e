package finverify

import (
	"fmt"

	"coverbot/journey"
)

// After verification the journey continues with the medical evaluation.
const nextModule = "medical"

func steps(sent journey.Sentinels) []journey.StepDefinition {
	return []journey.StepDefinition{
		{
			ID:     StepIntro,
			Widget: journey.WidgetNone,
			Script: journey.Say(
				"Before we issue your term life policy, we need to verify your income. Takes about two minutes.",
			),
			Next:   journey.To(StepEmployment),
			Routes: []journey.StepID{StepEmployment},
		},
		{
			ID:     StepEmployment,
			Widget: journey.WidgetOptions,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{"How do you earn your income?"},
					Options: []journey.Option{
						{ID: "salaried", Label: "Salaried employee"},
						{ID: "business", Label: "Business owner (GST registered)"},
						{ID: "other", Label: "Freelancer / other"},
					},
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyEmployment: r.Option}
			},
			Next: func(r journey.Response, _ *journey.State) journey.StepID {
				switch r.Option {
				case "business":
					return StepGstIntro
				case "other":
					return StepAaIntro
				default:
					return StepEpfoIntro
				}
			},
			Routes: []journey.StepID{StepEpfoIntro, StepGstIntro, StepAaIntro},
		},

		// EPFO branch.
		{
			ID:     StepEpfoIntro,
			Widget: journey.WidgetNone,
			Script: journey.Say(
				"Great, we can verify your salary through your EPFO record.",
			),
			Next:   journey.To(StepEpfoMobile),
			Routes: []journey.StepID{StepEpfoMobile},
		},
		{
			ID:         StepEpfoMobile,
			Widget:     journey.WidgetPhone,
			Validation: "required,numeric,len=10",
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages:    []string{"What's the mobile number registered with your EPF account? We'll send an OTP."},
					Placeholder: "10-digit mobile",
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyEpfoMobile: r.Text}
			},
			Next:   journey.To(StepEpfoVerifying),
			Routes: []journey.StepID{StepEpfoVerifying},
		},
		{
			ID:     StepEpfoVerifying,
			Widget: journey.WidgetNone,
			Script: journey.Say("Contacting EPFO..."),
			Next: func(_ journey.Response, s *journey.State) journey.StepID {
				if sent.IsEpfoTimeout(s.GetString(KeyEpfoMobile)) {
					return StepEpfoTimeout
				}
				return StepEpfoOTP
			},
			Routes: []journey.StepID{StepEpfoOTP, StepEpfoTimeout},
		},
		{
			ID:         StepEpfoOTP,
			Widget:     journey.WidgetOTP,
			Validation: "required,numeric,len=6",
			Script: journey.Say(
				"Enter the 6-digit OTP sent to your EPF-linked mobile.",
			),
			Process: func(r journey.Response, s *journey.State) journey.Delta {
				if sent.IsEpfoFailure(r.Text) {
					return journey.Delta{KeyFinAttempts: s.GetInt(KeyFinAttempts) + 1}
				}
				return journey.Delta{
					KeyIncomeVerified:     true,
					KeyIncomeSource:       "epfo",
					journey.KeyNextModule: nextModule,
				}
			},
			Next: func(r journey.Response, s *journey.State) journey.StepID {
				if !sent.IsEpfoFailure(r.Text) {
					return StepEpfoSuccess
				}
				if s.GetInt(KeyFinAttempts) >= sent.MaxOTPAttempts {
					return StepExhausted
				}
				return StepEpfoFailure
			},
			Routes: []journey.StepID{StepEpfoSuccess, StepEpfoFailure, StepExhausted},
		},
		{
			ID:     StepEpfoFailure,
			Widget: journey.WidgetOptions,
			Script: func(_ string, s *journey.State) journey.Script {
				left := sent.MaxOTPAttempts - s.GetInt(KeyFinAttempts)
				return journey.Script{
					Messages: []string{fmt.Sprintf("That OTP didn't match. %d attempt(s) left.", left)},
					Options: []journey.Option{
						{ID: "retry", Label: "Try again"},
						{ID: "declare", Label: "Declare income instead"},
					},
				}
			},
			Next: func(r journey.Response, _ *journey.State) journey.StepID {
				if r.Option == "declare" {
					return StepDeclareIncome
				}
				return StepEpfoOTP
			},
			Routes: []journey.StepID{StepEpfoOTP, StepDeclareIncome},
		},
		{
			ID:     StepEpfoTimeout,
			Widget: journey.WidgetOptions,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{
						"EPFO isn't responding right now. This happens sometimes.",
						"We can retry, or you can simply declare your income and move on.",
					},
					Options: []journey.Option{
						{ID: "retry", Label: "Retry EPFO"},
						{ID: "declare", Label: "Declare income"},
					},
				}
			},
			Next: func(r journey.Response, _ *journey.State) journey.StepID {
				if r.Option == "retry" {
					return StepEpfoMobile
				}
				return StepDeclareIncome
			},
			Routes: []journey.StepID{StepEpfoMobile, StepDeclareIncome},
		},
		{
			ID:     StepEpfoSuccess,
			Widget: journey.WidgetNone,
			Script: journey.Say("✅ Income verified against your EPF record."),
			Next:   journey.To(StepDone),
			Routes: []journey.StepID{StepDone},
		},
		{
			ID:     StepExhausted,
			Widget: journey.WidgetOptions,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{
						"We couldn't verify the OTP after several attempts.",
						"No problem. Pick another way to verify your income.",
					},
					Options: []journey.Option{
						{ID: "bank", Label: "Verify via bank statement"},
						{ID: "declare", Label: "Declare income"},
					},
				}
			},
			Process: func(_ journey.Response, _ *journey.State) journey.Delta {
				// Attempt counter resets so the chosen route starts fresh.
				return journey.Delta{KeyFinAttempts: 0}
			},
			Next: func(r journey.Response, _ *journey.State) journey.StepID {
				if r.Option == "bank" {
					return StepAaIntro
				}
				return StepDeclareIncome
			},
			Routes: []journey.StepID{StepAaIntro, StepDeclareIncome},
		},

		// GST branch.
		{
			ID:     StepGstIntro,
			Widget: journey.WidgetNone,
			Script: journey.Say(
				"We can verify your business income from your GST filings.",
			),
			Next:   journey.To(StepGstinEntry),
			Routes: []journey.StepID{StepGstinEntry},
		},
		{
			// The widget only requires a non-empty entry; the simulated GST
			// check happens in routing so a malformed GSTIN lands on the
			// failure step instead of being rejected by the widget.
			ID:         StepGstinEntry,
			Widget:     journey.WidgetText,
			Validation: "required",
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages:    []string{"Enter your 15-character GSTIN."},
					Placeholder: "22AAAAA0000A1Z5",
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				if !sent.IsValidGstin(r.Text) {
					return journey.Delta{KeyGstin: r.Text}
				}
				return journey.Delta{
					KeyGstin:              r.Text,
					KeyIncomeVerified:     true,
					KeyIncomeSource:       "gst",
					journey.KeyNextModule: nextModule,
				}
			},
			Next: func(r journey.Response, _ *journey.State) journey.StepID {
				if sent.IsValidGstin(r.Text) {
					return StepGstSuccess
				}
				return StepGstFailure
			},
			Routes: []journey.StepID{StepGstSuccess, StepGstFailure},
		},
		{
			ID:     StepGstFailure,
			Widget: journey.WidgetOptions,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{"That GSTIN doesn't look right. It should be 15 characters."},
					Options: []journey.Option{
						{ID: "retry", Label: "Re-enter GSTIN"},
						{ID: "declare", Label: "Declare income instead"},
					},
				}
			},
			Next: func(r journey.Response, _ *journey.State) journey.StepID {
				if r.Option == "declare" {
					return StepDeclareIncome
				}
				return StepGstinEntry
			},
			Routes: []journey.StepID{StepGstinEntry, StepDeclareIncome},
		},
		{
			ID:     StepGstSuccess,
			Widget: journey.WidgetNone,
			Script: journey.Say("✅ GST record found, income verified."),
			Next:   journey.To(StepDone),
			Routes: []journey.StepID{StepDone},
		},

		// Account aggregator branch.
		{
			ID:     StepAaIntro,
			Widget: journey.WidgetNone,
			Script: journey.Say(
				"We can verify income straight from your bank statement through the account aggregator network. You stay in control of the consent.",
			),
			Next:   journey.To(StepBankSelect),
			Routes: []journey.StepID{StepBankSelect},
		},
		{
			ID:     StepBankSelect,
			Widget: journey.WidgetOptions,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{"Which bank receives your income?"},
					Options: []journey.Option{
						{ID: "hdfc", Label: "HDFC Bank"},
						{ID: "icici", Label: "ICICI Bank"},
						{ID: "sbi", Label: "State Bank of India"},
						{ID: "axis", Label: "Axis Bank"},
					},
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{KeyBank: r.Option}
			},
			Next:   journey.To(StepAaConsent),
			Routes: []journey.StepID{StepAaConsent},
		},
		{
			ID:     StepAaConsent,
			Widget: journey.WidgetOptions,
			Script: func(_ string, s *journey.State) journey.Script {
				return journey.Script{
					Messages: []string{
						"We'll fetch the last 6 months of statements, read-only, one time. Approve the consent?",
					},
					Options: []journey.Option{
						{ID: "approve", Label: "Approve"},
						{ID: "deny", Label: "No, I'll declare income"},
					},
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				if r.Option != "approve" {
					return nil
				}
				return journey.Delta{
					KeyIncomeVerified:     true,
					KeyIncomeSource:       "account_aggregator",
					journey.KeyNextModule: nextModule,
				}
			},
			Next: func(r journey.Response, _ *journey.State) journey.StepID {
				if r.Option == "approve" {
					return StepAaSuccess
				}
				return StepDeclareIncome
			},
			Routes: []journey.StepID{StepAaSuccess, StepDeclareIncome},
		},
		{
			ID:     StepAaSuccess,
			Widget: journey.WidgetNone,
			Script: journey.Say("✅ Bank statements analysed, income verified."),
			Next:   journey.To(StepDone),
			Routes: []journey.StepID{StepDone},
		},

		// Self-declaration fallback.
		{
			ID:     StepDeclareIncome,
			Widget: journey.WidgetNumber,
			Script: func(_ string, _ *journey.State) journey.Script {
				return journey.Script{
					Messages:    []string{"Declare your annual income. We may ask for documents before a claim is paid."},
					Placeholder: "In lakhs, e.g. 12",
					Min:         1, Max: 500,
				}
			},
			Process: func(r journey.Response, _ *journey.State) journey.Delta {
				return journey.Delta{
					KeyDeclaredIncome:     int(r.Number),
					KeyIncomeVerified:     false,
					KeyIncomeSource:       "declared",
					journey.KeyNextModule: nextModule,
				}
			},
			Next:   journey.To(StepDone),
			Routes: []journey.StepID{StepDone},
		},
		{
			ID:     StepDone,
			Widget: journey.WidgetNone,
			Script: func(_ string, s *journey.State) journey.Script {
				if s.GetBool(KeyIncomeVerified) {
					return journey.Script{Messages: []string{"That's the income check done."}}
				}
				return journey.Script{Messages: []string{"Noted. We'll proceed with your declared income."}}
			},
			Next:   func(journey.Response, *journey.State) journey.StepID { return journey.StepEnd },
			Routes: []journey.StepID{journey.StepEnd},
		},
	}
}
