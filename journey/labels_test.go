package journey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseLabelOptionsResolveToLabel(t *testing.T) {
	def := &StepDefinition{Widget: WidgetOptions}
	sc := Script{Options: []Option{{ID: "upi", Label: "UPI"}, {ID: "card", Label: "Credit card"}}}

	assert.Equal(t, "UPI", responseLabel(def, sc, Response{Option: "upi"}))
	assert.Equal(t, "mystery", responseLabel(def, sc, Response{Option: "mystery"}))
}

func TestResponseLabelMultiSelect(t *testing.T) {
	def := &StepDefinition{Widget: WidgetMultiSelect}
	sc := Script{Options: []Option{
		{ID: "diabetes", Label: "Diabetes"},
		{ID: "thyroid", Label: "Thyroid disorder"},
	}}

	assert.Equal(t, "Diabetes, Thyroid disorder",
		responseLabel(def, sc, Response{Options: []string{"diabetes", "thyroid"}}))
	assert.Equal(t, "None selected", responseLabel(def, sc, Response{}))
}

func TestResponseLabelNumberWithUnit(t *testing.T) {
	def := &StepDefinition{Widget: WidgetSlider}

	assert.Equal(t, "cm178", responseLabel(def, Script{Unit: "cm"}, Response{Number: 178}))
	assert.Equal(t, "42", responseLabel(def, Script{}, Response{Number: 42}))
}

func TestResponseLabelMasksOTP(t *testing.T) {
	def := &StepDefinition{Widget: WidgetOTP}
	assert.Equal(t, "••••••", responseLabel(def, Script{}, Response{Text: "123456"}))
}

func TestResponseLabelAcknowledgements(t *testing.T) {
	summary := &StepDefinition{Widget: WidgetSummary}
	assert.Equal(t, "Reviewed quote, continuing",
		responseLabel(summary, Script{Ack: "Reviewed quote, continuing"}, Response{}))
	assert.Equal(t, "Reviewed, continuing", responseLabel(summary, Script{}, Response{}))

	upload := &StepDefinition{Widget: WidgetUpload}
	assert.Equal(t, "Document uploaded", responseLabel(upload, Script{}, Response{}))
}

func TestValidateResponseRanges(t *testing.T) {
	def := &StepDefinition{ID: "age", Widget: WidgetNumber}
	sc := Script{Min: 18, Max: 70}

	assert.NoError(t, validateResponse(def, sc, Response{Number: 30}))
	assert.Error(t, validateResponse(def, sc, Response{Number: 17}))
	assert.Error(t, validateResponse(def, sc, Response{Number: 71}))
}

func TestValidateResponseTextTag(t *testing.T) {
	def := &StepDefinition{ID: "otp", Widget: WidgetOTP, Validation: "required,numeric,len=6"}

	assert.NoError(t, validateResponse(def, Script{}, Response{Text: "000000"}))
	assert.Error(t, validateResponse(def, Script{}, Response{Text: "12345"}))
	assert.Error(t, validateResponse(def, Script{}, Response{Text: "abcdef"}))
}

func TestValidateResponseMultiSelectMembership(t *testing.T) {
	def := &StepDefinition{ID: "riders", Widget: WidgetMultiSelect}
	sc := Script{Options: []Option{{ID: "a", Label: "A"}}}

	assert.NoError(t, validateResponse(def, sc, Response{Options: []string{"a"}}))
	assert.NoError(t, validateResponse(def, sc, Response{}))
	assert.Error(t, validateResponse(def, sc, Response{Options: []string{"b"}}))
}
