package journey

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Errors returned by the engine's inbound calls. Simulated verification
// failures are not errors: they are ordinary branches of the step graph.
var (
	ErrHalted         = errors.New("journey halted on configuration error")
	ErrCompleted      = errors.New("journey already completed")
	ErrNoActiveWidget = errors.New("no widget awaiting a response")
	ErrUnknownStep    = errors.New("unknown step")
	ErrNotEditable    = errors.New("step has no editable answer in history")
	ErrUnknownModule  = errors.New("unknown module")
)

// maxAutoTransitions bounds chains of skipped/auto-advancing steps so a
// miswired graph cannot spin the engine.
const maxAutoTransitions = 20

// Pacing controls the simulated conversation cadence.
type Pacing struct {
	TypingBase    time.Duration // floor of the typing delay
	TypingPerChar time.Duration // added per character of bot content
	TypingCap     time.Duration // ceiling of the typing delay
	AdvancePause  time.Duration // pause between an answer and the next bot turn
}

// DefaultPacing mirrors the prototype's cadence: clamp(400+8*len, 400, 2200) ms.
func DefaultPacing() Pacing {
	return Pacing{
		TypingBase:    400 * time.Millisecond,
		TypingPerChar: 8 * time.Millisecond,
		TypingCap:     2200 * time.Millisecond,
		AdvancePause:  300 * time.Millisecond,
	}
}

// Listener receives journey events for the UI. Callbacks run on the engine's
// control loop and must not call back into the engine synchronously.
type Listener interface {
	OnTyping(active bool)
	OnMessage(m Message)
	OnWidget(w WidgetType, sc Script, active bool)
	OnTrimmed(step StepID)
	OnCompleted(m Module)
	OnError(reason string)
}

// NopListener discards all events.
type NopListener struct{}

func (NopListener) OnTyping(bool)                    {}
func (NopListener) OnMessage(Message)                {}
func (NopListener) OnWidget(WidgetType, Script, bool) {}
func (NopListener) OnTrimmed(StepID)                 {}
func (NopListener) OnCompleted(Module)               {}
func (NopListener) OnError(string)                   {}

// Snapshot is the render model the engine exposes to the UI.
type Snapshot struct {
	Messages      []Message  `json:"messages"`
	IsTyping      bool       `json:"is_typing"`
	Widget        WidgetType `json:"widget"`
	WidgetParams  Script     `json:"widget_params"`
	CurrentStep   StepID     `json:"current_step"`
	CurrentModule Module     `json:"current_module"`
	Completed     bool       `json:"completed"`
	Halted        bool       `json:"halted"`
}

// Engine drives the step graph: it renders scripts with a typing delay,
// exposes widgets, folds responses into state, routes transitions and
// supports edit/rewind. One engine owns one journey; multiple independent
// journeys are just multiple engines.
type Engine struct {
	mu sync.Mutex

	registry *Union
	store    *Store
	log      *slog.Logger

	clock    Clock
	pacing   Pacing
	listener Listener
	persona  func(s *State) string

	onComplete func(m Module)

	// version keys every scheduled callback; bumping it on a response,
	// edit or reset makes callbacks from the abandoned step stale no-ops.
	version uint64
	timers  []Timer

	// seen deduplicates step re-entry within one version.
	seen map[string]struct{}

	// script of the step currently awaiting input, kept for widget params,
	// label derivation and validation.
	activeScript Script

	completed bool
	halted    bool
}

// NewEngine creates an engine over a registry union. The union should have
// passed Validate before any journey starts.
func NewEngine(registry *Union, log *slog.Logger) *Engine {
	return &Engine{
		registry: registry,
		store:    NewStore(StepEnd, ""),
		log:      log,
		clock:    NewClock(),
		pacing:   DefaultPacing(),
		listener: NopListener{},
		persona:  func(*State) string { return "" },
		seen:     make(map[string]struct{}),
	}
}

// SetListener sets the UI event listener.
func (e *Engine) SetListener(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listener = l
}

// SetClock injects the timer source (tests use a manual clock).
func (e *Engine) SetClock(c Clock) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clock = c
}

// SetPacing overrides the conversation cadence.
func (e *Engine) SetPacing(p Pacing) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pacing = p
}

// SetPersonaResolver injects the persona collaborator consulted by scripts.
func (e *Engine) SetPersonaResolver(f func(s *State) string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.persona = f
}

// SetOnComplete registers the journey completion callback. It fires once per
// completed module.
func (e *Engine) SetOnComplete(f func(m Module)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onComplete = f
}

// Start resets the journey and enters the module's entry step.
func (e *Engine) Start(m Module) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.registry.Entry(m)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownModule, m)
	}

	e.bumpLocked()
	e.store.Reset(entry, m)
	e.seen = make(map[string]struct{})
	e.completed = false
	e.halted = false

	e.log.Info("journey started", slog.String("module", string(m)))
	e.enterStepLocked(entry)
	return nil
}

// SubmitResponse handles a user answer to the currently exposed widget.
func (e *Engine) SubmitResponse(r Response) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.acceptingLocked(); err != nil {
		return err
	}
	st := e.store.State()
	if !st.ShowWidget {
		return ErrNoActiveWidget
	}
	def, ok := e.registry.Get(st.CurrentStep)
	if !ok {
		e.fatalLocked(fmt.Sprintf("current step %q missing from registry", st.CurrentStep))
		return ErrHalted
	}
	if err := validateResponse(def, e.activeScript, r); err != nil {
		return err
	}

	e.bumpLocked()
	e.handleResponseLocked(def, e.activeScript, r)
	return nil
}

// RequestEdit returns the widget and rendered parameters for editing a past
// answer. The journey state is untouched until ConfirmEdit.
func (e *Engine) RequestEdit(step StepID) (WidgetType, Script, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	def, ok := e.registry.Get(step)
	if !ok {
		return WidgetNone, Script{}, fmt.Errorf("%w: %s", ErrUnknownStep, step)
	}
	if !e.hasEditableAnswerLocked(step) {
		return WidgetNone, Script{}, ErrNotEditable
	}
	return def.Widget, e.renderLocked(def), nil
}

// ConfirmEdit rewinds the journey to the given step, replaces its answer and
// resumes forward. Downstream history is discarded, not hidden: upstream
// edits are allowed to change the branching that follows.
func (e *Engine) ConfirmEdit(step StepID, r Response) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.halted {
		return ErrHalted
	}
	def, ok := e.registry.Get(step)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStep, step)
	}
	sc := e.renderLocked(def)
	if err := validateResponse(def, sc, r); err != nil {
		return err
	}
	if !e.store.TrimFromStep(step) {
		return ErrNotEditable
	}

	// Cancel anything in flight from the path being rewound past.
	e.bumpLocked()

	st := e.store.State()
	st.IsTyping = false
	st.ShowWidget = false
	st.CurrentStep = def.ID
	st.CurrentModule = def.Module
	e.completed = false

	e.listener.OnTrimmed(step)
	e.handleResponseLocked(def, sc, r)
	return nil
}

// Snapshot returns a copy of the render model.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.store.State()
	msgs := make([]Message, len(st.History))
	copy(msgs, st.History)

	snap := Snapshot{
		Messages:      msgs,
		IsTyping:      st.IsTyping,
		CurrentStep:   st.CurrentStep,
		CurrentModule: st.CurrentModule,
		Completed:     e.completed,
		Halted:        e.halted,
	}
	if st.ShowWidget {
		if def, ok := e.registry.Get(st.CurrentStep); ok {
			snap.Widget = def.Widget
			snap.WidgetParams = e.activeScript
		}
	}
	return snap
}

// State exposes the underlying journey state for collaborators that derive
// values from answers (persona resolution, progress display).
func (e *Engine) State() *State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.State()
}

func (e *Engine) acceptingLocked() error {
	if e.halted {
		return ErrHalted
	}
	if e.completed {
		return ErrCompleted
	}
	return nil
}

// handleResponseLocked is the shared tail of SubmitResponse and ConfirmEdit:
// append the user's answer, merge the delta, route post-merge, pace, advance.
func (e *Engine) handleResponseLocked(def *StepDefinition, sc Script, r Response) {
	st := e.store.State()

	msg := e.store.AddMessage(Message{
		Sender:   SenderUser,
		Text:     responseLabel(def, sc, r),
		StepID:   def.ID,
		Module:   def.Module,
		Editable: true,
	})
	e.listener.OnMessage(msg)

	if def.Process != nil {
		e.store.Merge(def.Process(r, st))
	}

	// Routing happens strictly after the merge so branching never sees
	// stale state.
	next := def.Next(r, st)
	if next == def.ID {
		// The router refused to advance (e.g. rider caps exceeded).
		// The widget stays up so the user can adjust the answer.
		e.log.Warn("step refused to advance",
			slog.String("step_id", string(def.ID)),
		)
		return
	}

	st.ShowWidget = false
	e.listener.OnWidget(def.Widget, Script{}, false)

	e.scheduleLocked(e.pacing.AdvancePause, func() {
		e.transitionLocked(def, next)
	})
}

// transitionLocked moves the journey onto the routed step.
func (e *Engine) transitionLocked(from *StepDefinition, next StepID) {
	if next == StepEnd {
		e.completeLocked()
		return
	}
	def, ok := e.registry.Get(next)
	if !ok {
		e.fatalLocked(fmt.Sprintf("step %q routed to unknown step %q", from.ID, next))
		return
	}
	st := e.store.State()
	st.CurrentStep = def.ID
	st.CurrentModule = def.Module

	e.log.Debug("transition",
		slog.String("from", string(from.ID)),
		slog.String("to", string(def.ID)),
	)
	e.enterStepLocked(def.ID)
}

// enterStepLocked is the main loop's step entry: condition skips, dedup,
// script render, typing delay.
func (e *Engine) enterStepLocked(id StepID) {
	var def *StepDefinition
	for hops := 0; ; hops++ {
		if hops > maxAutoTransitions {
			e.fatalLocked(fmt.Sprintf("skip chain exceeded %d hops at %q", maxAutoTransitions, id))
			return
		}
		d, ok := e.registry.Get(id)
		if !ok {
			e.fatalLocked(fmt.Sprintf("entered unknown step %q", id))
			return
		}
		st := e.store.State()
		st.CurrentStep = d.ID
		st.CurrentModule = d.Module

		if d.Condition != nil && !d.Condition(st) {
			// Invisible step: nothing renders, route as if unanswered.
			next := d.Next(Response{}, st)
			if next == d.ID {
				e.log.Warn("skipped step routes to itself, halting advance",
					slog.String("step_id", string(d.ID)),
				)
				return
			}
			if next == StepEnd {
				e.completeLocked()
				return
			}
			id = next
			continue
		}
		def = d
		break
	}

	st := e.store.State()
	key := fmt.Sprintf("%d|%s|%d|%s", e.version, def.ID, len(st.History), e.persona(st))
	if _, done := e.seen[key]; done {
		return
	}
	e.seen[key] = struct{}{}

	sc := e.renderLocked(def)
	content := strings.Join(sc.Messages, "\n\n")

	st.IsTyping = true
	e.listener.OnTyping(true)

	e.scheduleLocked(e.typingDelay(content), func() {
		e.showStepLocked(def, sc, content)
	})
}

// showStepLocked appends the bot turn and either auto-advances or exposes the
// widget. The bot message is fully appended before the widget goes
// interactive, keeping transcript order chronological.
func (e *Engine) showStepLocked(def *StepDefinition, sc Script, content string) {
	st := e.store.State()
	st.IsTyping = false
	e.listener.OnTyping(false)

	if content != "" {
		msg := e.store.AddMessage(Message{
			Sender: SenderBot,
			Text:   content,
			StepID: def.ID,
			Module: def.Module,
		})
		e.listener.OnMessage(msg)
	}

	if def.Widget == WidgetNone {
		e.scheduleLocked(e.pacing.AdvancePause, func() {
			next := def.Next(Response{}, e.store.State())
			if next == def.ID {
				// Self-loop guard: halting beats spinning forever.
				e.log.Warn("auto-advance step routed to itself, halting",
					slog.String("step_id", string(def.ID)),
				)
				return
			}
			e.transitionLocked(def, next)
		})
		return
	}

	st.ShowWidget = true
	e.activeScript = sc
	e.listener.OnWidget(def.Widget, sc, true)
}

// completeLocked ends the current module: either chains into the next module
// the steps requested, or terminates the journey and fires the completion
// callback exactly once.
func (e *Engine) completeLocked() {
	st := e.store.State()
	finished := st.CurrentModule

	next := Module(st.GetString(KeyNextModule))
	if next != "" {
		delete(st.Answers, KeyNextModule)
		if entry, ok := e.registry.Entry(next); ok {
			e.log.Info("module completed, chaining",
				slog.String("module", string(finished)),
				slog.String("next_module", string(next)),
			)
			e.listener.OnCompleted(finished)
			if e.onComplete != nil {
				e.onComplete(finished)
			}
			st.CurrentModule = next
			e.enterStepLocked(entry)
			return
		}
		e.log.Warn("next module not registered, terminating",
			slog.String("next_module", string(next)),
		)
	}

	if e.completed {
		return
	}
	e.completed = true
	st.ShowWidget = false
	st.IsTyping = false

	e.log.Info("journey completed", slog.String("module", string(finished)))
	e.listener.OnCompleted(finished)
	if e.onComplete != nil {
		e.onComplete(finished)
	}
}

// fatalLocked degrades a broken step graph to a visible error state instead
// of crashing the UI.
func (e *Engine) fatalLocked(reason string) {
	e.halted = true
	st := e.store.State()
	st.IsTyping = false
	st.ShowWidget = false

	e.log.Error("journey halted", slog.String("reason", reason))
	e.listener.OnError(reason)
}

func (e *Engine) renderLocked(def *StepDefinition) Script {
	if def.Script == nil {
		return Script{}
	}
	return def.Script(e.persona(e.store.State()), e.store.State())
}

// scheduleLocked queues a deferred continuation keyed to the current version.
// If the journey moves on (response, edit, reset) before the timer fires, the
// callback is a no-op.
func (e *Engine) scheduleLocked(d time.Duration, fn func()) {
	v := e.version
	t := e.clock.AfterFunc(d, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.version != v || e.halted {
			return
		}
		fn()
	})
	e.timers = append(e.timers, t)
}

// bumpLocked invalidates every pending scheduled callback.
func (e *Engine) bumpLocked() {
	e.version++
	for _, t := range e.timers {
		t.Stop()
	}
	e.timers = nil
}

func (e *Engine) typingDelay(content string) time.Duration {
	d := e.pacing.TypingBase + time.Duration(len(content))*e.pacing.TypingPerChar
	if d < e.pacing.TypingBase {
		d = e.pacing.TypingBase
	}
	if d > e.pacing.TypingCap {
		d = e.pacing.TypingCap
	}
	return d
}

func (e *Engine) hasEditableAnswerLocked(step StepID) bool {
	h := e.store.State().History
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].StepID == step && h[i].Sender == SenderUser && h[i].Editable {
			return true
		}
	}
	return false
}
