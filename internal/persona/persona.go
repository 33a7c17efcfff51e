// Package persona holds the pure persona/translation collaborators consulted
// by script resolvers. The engine is agnostic to their contents.
package persona

// Tag classifies the user for script tone selection.
type Tag string

const (
	Unknown Tag = ""
	Young   Tag = "young"
	Family  Tag = "family"
	Senior  Tag = "senior"
)

// Resolve maps the answers gathered so far to a persona tag.
func Resolve(age, dependents int) Tag {
	switch {
	case age == 0:
		return Unknown
	case age >= 55:
		return Senior
	case dependents > 0:
		return Family
	default:
		return Young
	}
}

// Strings returns the translation table for a language. Unknown languages
// fall back to English.
func Strings(lang string) map[string]string {
	if table, ok := tables[lang]; ok {
		return table
	}
	return tables["en"]
}

var tables = map[string]map[string]string{
	"en": {
		"welcome":      "Hi! I'm Cova, your insurance assistant. Let's find you the right cover in a few minutes.",
		"pick_product": "What would you like to protect today?",
		"quote_ready":  "Your quote is ready. Take a look below.",
		"kyc_intro":    "Almost there. A quick Aadhaar e-KYC keeps this paperless.",
		"payment_done": "Payment received. Your policy is being issued.",
		"thanks":       "Thank you! You're all set.",
	},
	"hi": {
		"welcome":      "नमस्ते! मैं कोवा हूँ, आपकी बीमा सहायक। कुछ ही मिनटों में सही कवर ढूँढते हैं।",
		"pick_product": "आज आप क्या सुरक्षित करना चाहेंगे?",
		"quote_ready":  "आपका कोटेशन तैयार है। नीचे देखें।",
		"kyc_intro":    "बस थोड़ा और। आधार e-KYC से सब पेपरलेस रहेगा।",
		"payment_done": "भुगतान प्राप्त हुआ। आपकी पॉलिसी जारी हो रही है।",
		"thanks":       "धन्यवाद! सब हो गया।",
	},
}
