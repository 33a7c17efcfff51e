package journey

import (
	"time"
)

// StepID is a unique identifier for a step within a module registry.
type StepID string

// StepEnd is the terminal marker: a router returning it ends the journey cleanly.
const StepEnd StepID = ""

// Module classifies steps for progress display and module chaining.
type Module string

// KeyNextModule, when set in the answers, chains the engine into the named
// module after the current one reaches its terminal step.
const KeyNextModule = "next_module"

// WidgetType selects which input control the UI renders for a step.
type WidgetType string

const (
	// WidgetNone means the step takes no input and auto-advances.
	WidgetNone        WidgetType = "none"
	WidgetOptions     WidgetType = "options"
	WidgetMultiSelect WidgetType = "multiselect"
	WidgetText        WidgetType = "text"
	WidgetNumber      WidgetType = "number"
	WidgetSlider      WidgetType = "slider"
	WidgetOTP         WidgetType = "otp"
	WidgetPhone       WidgetType = "phone"
	WidgetDate        WidgetType = "date"
	WidgetSummary     WidgetType = "summary"
	WidgetUpload      WidgetType = "upload"
)

// Option is a selectable choice presented by an options or multiselect widget.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Script is the rendered content of a step: the bot messages plus the
// parameters of its input widget. Produced by a pure function of
// (persona, state) so re-rendering after an edit is deterministic.
type Script struct {
	Messages    []string `json:"messages"`
	Options     []Option `json:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Min         int      `json:"min,omitempty"`
	Max         int      `json:"max,omitempty"`
	StepSize    int      `json:"step_size,omitempty"`
	Unit        string   `json:"unit,omitempty"`

	// Ack is the transcript label used for widgets that have no literal
	// textual answer (summary screens, uploads).
	Ack string `json:"-"`
}

// Response is the closed, tagged union of user answers. Widget echoes the
// control that produced it; processors and routers match on the fields that
// belong to their step's widget kind instead of casting.
type Response struct {
	Widget  WidgetType `json:"widget"`
	Option  string     `json:"option,omitempty"`
	Options []string   `json:"options,omitempty"`
	Text    string     `json:"text,omitempty"`
	Number  float64    `json:"number,omitempty"`
	Bool    bool       `json:"bool,omitempty"`
}

// Delta is a partial state update returned by a response processor.
// Merged shallowly into the answers, last write wins.
type Delta map[string]any

// StepDefinition is one node of the conversation graph. Immutable, defined
// at startup. Script, Process and Next are pure functions: Script depends on
// (persona, state) only, Process and Next on (response, state) only, and Next
// always sees the state after the step's delta has been merged.
type StepDefinition struct {
	ID     StepID
	Module Module
	Widget WidgetType

	// Condition, when present and false, skips the step entirely: nothing
	// renders and the engine routes onward as if no response was given.
	Condition func(s *State) bool

	Script  func(persona string, s *State) Script
	Process func(r Response, s *State) Delta
	Next    func(r Response, s *State) StepID

	// Routes enumerates every id Next can return (excluding StepEnd).
	// Startup validation asserts each one resolves in the registry union.
	Routes []StepID

	// Validation is a validator tag applied to text-like responses before
	// they are accepted (e.g. "numeric,len=6" for an OTP widget).
	Validation string
}

// Sender distinguishes the two sides of the transcript.
type Sender string

const (
	SenderBot  Sender = "bot"
	SenderUser Sender = "user"
)

// Message is a single transcript entry, tagged with the step that produced
// it so that edit/rewind can locate the truncation boundary.
type Message struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	StepID    StepID    `json:"step_id"`
	Module    Module    `json:"module"`
	Editable  bool      `json:"editable"`
	CreatedAt time.Time `json:"created_at"`
}

// To builds the trivial router that always goes to the same step.
func To(id StepID) func(Response, *State) StepID {
	return func(Response, *State) StepID { return id }
}

// Say builds a script resolver that renders fixed bot messages.
func Say(lines ...string) func(string, *State) Script {
	return func(string, *State) Script { return Script{Messages: lines} }
}

// Sentinels are the configurable demo predicates standing in for absent
// backend verification. They are wired from config, never hardcoded in steps.
type Sentinels struct {
	AadhaarOTP             string
	EpfoFailOTP            string
	EpfoTimeoutMobile      string
	GstinLength            int
	MaxOTPAttempts         int
	CallUnavailablePercent int
}

// DefaultSentinels returns the demo values the prototype ships with.
func DefaultSentinels() Sentinels {
	return Sentinels{
		AadhaarOTP:             "123456",
		EpfoFailOTP:            "000000",
		EpfoTimeoutMobile:      "9999999999",
		GstinLength:            15,
		MaxOTPAttempts:         3,
		CallUnavailablePercent: 20,
	}
}

// IsAadhaarSuccess reports whether the OTP matches the e-KYC success demo value.
func (d Sentinels) IsAadhaarSuccess(otp string) bool { return otp == d.AadhaarOTP }

// IsEpfoFailure reports whether the OTP triggers the simulated EPFO failure branch.
func (d Sentinels) IsEpfoFailure(otp string) bool { return otp == d.EpfoFailOTP }

// IsEpfoTimeout reports whether the mobile number triggers the simulated timeout branch.
func (d Sentinels) IsEpfoTimeout(mobile string) bool { return mobile == d.EpfoTimeoutMobile }

// IsValidGstin reports whether the entry passes the simulated GST check.
func (d Sentinels) IsValidGstin(gstin string) bool { return len(gstin) == d.GstinLength }

// Rand is the single injectable randomness source used by steps that model
// external unpredictability. Percent returns a value in [0, 100).
type Rand interface {
	Percent() int
}

// RandFunc adapts a plain function to the Rand interface.
type RandFunc func() int

func (f RandFunc) Percent() int { return f() }
