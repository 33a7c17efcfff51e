package journeytest

import (
	"sync"

	"coverbot/journey"
)

// FixedRand always returns the same percentage, pinning randomized branches.
func FixedRand(percent int) journey.Rand {
	return journey.RandFunc(func() int { return percent })
}

// Recorder captures every engine event for assertions.
type Recorder struct {
	mu sync.Mutex

	Messages   []journey.Message
	TypingOn   int
	TypingOff  int
	Widgets    []journey.WidgetType
	Trimmed    []journey.StepID
	Completed  []journey.Module
	Errors     []string
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) OnTyping(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if active {
		r.TypingOn++
	} else {
		r.TypingOff++
	}
}

func (r *Recorder) OnMessage(m journey.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, m)
}

func (r *Recorder) OnWidget(w journey.WidgetType, sc journey.Script, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if active {
		r.Widgets = append(r.Widgets, w)
	}
}

func (r *Recorder) OnTrimmed(step journey.StepID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Trimmed = append(r.Trimmed, step)
}

func (r *Recorder) OnCompleted(m journey.Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Completed = append(r.Completed, m)
}

func (r *Recorder) OnError(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, reason)
}

// LastMessage returns the most recent transcript event, if any.
func (r *Recorder) LastMessage() (journey.Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Messages) == 0 {
		return journey.Message{}, false
	}
	return r.Messages[len(r.Messages)-1], true
}
