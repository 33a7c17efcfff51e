// Package core owns the live journey sessions: one engine per session,
// created on demand and held in memory for the lifetime of the process.
package core

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"coverbot/internal/lib/sl"
	"coverbot/internal/persona"
	"coverbot/internal/ws"
	"coverbot/journey"
	"coverbot/journey/onboarding"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

type Core struct {
	union  *journey.Union
	hub    *ws.Hub
	pacing journey.Pacing
	log    *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*journey.Engine
}

func New(log *slog.Logger) *Core {
	return &Core{
		log:      log.With(sl.Module("core")),
		pacing:   journey.DefaultPacing(),
		sessions: make(map[string]*journey.Engine),
	}
}

func (c *Core) SetUnion(u *journey.Union) {
	c.union = u
}

func (c *Core) SetHub(h *ws.Hub) {
	c.hub = h
}

func (c *Core) SetPacing(p journey.Pacing) {
	c.pacing = p
}

// StartSession spins up a fresh engine and enters the module's entry step.
func (c *Core) StartSession(module string) (string, journey.Snapshot, error) {
	id := uuid.NewString()

	eng := journey.NewEngine(c.union, c.log.With(slog.String("session_id", id)))
	eng.SetPacing(c.pacing)
	eng.SetPersonaResolver(resolvePersona)
	if c.hub != nil {
		eng.SetListener(ws.NewJourneyListener(c.hub, id))
	}
	eng.SetOnComplete(func(m journey.Module) {
		c.log.Info("module completed",
			slog.String("session_id", id),
			slog.String("module", string(m)),
		)
	})

	if err := eng.Start(journey.Module(module)); err != nil {
		return "", journey.Snapshot{}, err
	}

	c.mu.Lock()
	c.sessions[id] = eng
	c.mu.Unlock()

	c.log.Info("session started",
		slog.String("session_id", id),
		slog.String("module", module),
	)
	return id, eng.Snapshot(), nil
}

// SubmitResponse forwards a widget answer to the session's engine.
func (c *Core) SubmitResponse(sessionID string, r journey.Response) (journey.Snapshot, error) {
	eng, err := c.session(sessionID)
	if err != nil {
		return journey.Snapshot{}, err
	}
	if err := eng.SubmitResponse(r); err != nil {
		return journey.Snapshot{}, err
	}
	return eng.Snapshot(), nil
}

// RequestEdit renders the edit widget for a past answer without touching state.
func (c *Core) RequestEdit(sessionID string, step journey.StepID) (journey.WidgetType, journey.Script, error) {
	eng, err := c.session(sessionID)
	if err != nil {
		return journey.WidgetNone, journey.Script{}, err
	}
	return eng.RequestEdit(step)
}

// ConfirmEdit rewinds the session to the step and resumes with the new answer.
func (c *Core) ConfirmEdit(sessionID string, step journey.StepID, r journey.Response) (journey.Snapshot, error) {
	eng, err := c.session(sessionID)
	if err != nil {
		return journey.Snapshot{}, err
	}
	if err := eng.ConfirmEdit(step, r); err != nil {
		return journey.Snapshot{}, err
	}
	return eng.Snapshot(), nil
}

// Snapshot returns the session's current render model.
func (c *Core) Snapshot(sessionID string) (journey.Snapshot, error) {
	eng, err := c.session(sessionID)
	if err != nil {
		return journey.Snapshot{}, err
	}
	return eng.Snapshot(), nil
}

func (c *Core) session(id string) (*journey.Engine, error) {
	c.mu.RLock()
	eng, ok := c.sessions[id]
	c.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return eng, nil
}

// resolvePersona maps the answers gathered so far to a persona tag for
// script tone selection.
func resolvePersona(s *journey.State) string {
	return string(persona.Resolve(
		s.GetInt(onboarding.KeyAge),
		s.GetInt(onboarding.KeyDependents),
	))
}
