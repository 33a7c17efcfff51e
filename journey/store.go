package journey

import (
	"time"

	"github.com/google/uuid"
)

// State is the single mutable aggregate carried through a journey: progress
// pointers, the transcript, accumulated answers and transient UI flags.
type State struct {
	CurrentStep   StepID         `json:"current_step"`
	CurrentModule Module         `json:"current_module"`
	History       []Message      `json:"history"`
	Answers       map[string]any `json:"answers"`

	// Transient UI flags. Never persisted across a reset.
	IsTyping   bool `json:"is_typing"`
	ShowWidget bool `json:"show_widget"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewState creates a fresh journey state positioned at the given entry step.
func NewState(entry StepID, module Module) *State {
	return &State{
		CurrentStep:   entry,
		CurrentModule: module,
		Answers:       make(map[string]any),
		UpdatedAt:     time.Now(),
	}
}

// GetString retrieves a string answer.
func (s *State) GetString(key string) string {
	if v, ok := s.Answers[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// GetInt retrieves an integer answer, tolerating the numeric types a JSON
// round trip can produce.
func (s *State) GetInt(key string) int {
	if v, ok := s.Answers[key]; ok {
		switch val := v.(type) {
		case int:
			return val
		case int64:
			return int(val)
		case float64:
			return int(val)
		}
	}
	return 0
}

// GetFloat retrieves a float answer.
func (s *State) GetFloat(key string) float64 {
	if v, ok := s.Answers[key]; ok {
		switch val := v.(type) {
		case float64:
			return val
		case int:
			return float64(val)
		}
	}
	return 0
}

// GetBool retrieves a boolean answer.
func (s *State) GetBool(key string) bool {
	if v, ok := s.Answers[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// GetStrings retrieves a multi-select answer.
func (s *State) GetStrings(key string) []string {
	if v, ok := s.Answers[key]; ok {
		switch val := v.(type) {
		case []string:
			return val
		case []any:
			out := make([]string, 0, len(val))
			for _, item := range val {
				if str, ok := item.(string); ok {
					out = append(out, str)
				}
			}
			return out
		}
	}
	return nil
}

// Get retrieves a raw answer value.
func (s *State) Get(key string) (any, bool) {
	v, ok := s.Answers[key]
	return v, ok
}

// Set stores a single answer value.
func (s *State) Set(key string, value any) {
	if s.Answers == nil {
		s.Answers = make(map[string]any)
	}
	s.Answers[key] = value
}

// Store owns a journey State. It merges partial updates, appends transcript
// messages and truncates history for rewind. It carries no step logic and is
// not safe for concurrent use: the engine's single control loop guards it.
type Store struct {
	state *State
	now   func() time.Time
	newID func() string
}

// NewStore creates a store with a fresh state at the given entry point.
func NewStore(entry StepID, module Module) *Store {
	return &Store{
		state: NewState(entry, module),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// State exposes the current journey state.
func (st *Store) State() *State { return st.state }

// Merge shallow-merges a delta into the answers, last write wins per field.
// Step definitions are trusted: no validation happens here.
func (st *Store) Merge(d Delta) {
	if len(d) == 0 {
		return
	}
	if st.state.Answers == nil {
		st.state.Answers = make(map[string]any)
	}
	for k, v := range d {
		st.state.Answers[k] = v
	}
	st.state.UpdatedAt = st.now()
}

// AddMessage appends a message to the transcript, assigning id and timestamp.
func (st *Store) AddMessage(m Message) Message {
	m.ID = st.newID()
	m.CreatedAt = st.now()
	st.state.History = append(st.state.History, m)
	st.state.UpdatedAt = m.CreatedAt
	return m
}

// TrimFromStep truncates the transcript for an edit of the given step.
//
// It locates the step's most recent user answer (loop-back flows can make a
// step id recur; the transcript edit always refers to the latest answer) and
// cuts from that answer onward. The step's bot prompt stays: the caller
// follows up with a fresh AddMessage carrying the new answer, so the edited
// exchange reads prompt-then-answer like any other. History entries are never
// mutated in place, only cut off the tail.
func (st *Store) TrimFromStep(id StepID) bool {
	h := st.state.History
	idx := -1
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].StepID == id && h[i].Sender == SenderUser {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	st.state.History = h[:idx]
	st.state.UpdatedAt = st.now()
	return true
}

// Reset reinitializes the state at the given entry step with empty history.
// Transient flags do not survive: the new state starts clean.
func (st *Store) Reset(entry StepID, module Module) {
	st.state = NewState(entry, module)
}
