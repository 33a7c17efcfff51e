package ws

import (
	"coverbot/journey"
)

// JourneyListener forwards engine events to the hub under a session id. It
// satisfies journey.Listener; the hub's buffered broadcast keeps the engine's
// control loop from blocking on slow clients.
type JourneyListener struct {
	hub       *Hub
	sessionID string
}

// NewJourneyListener binds a hub to one session.
func NewJourneyListener(hub *Hub, sessionID string) *JourneyListener {
	return &JourneyListener{hub: hub, sessionID: sessionID}
}

func (l *JourneyListener) OnTyping(active bool) {
	l.hub.Publish(l.sessionID, "typing", map[string]bool{"active": active})
}

func (l *JourneyListener) OnMessage(m journey.Message) {
	l.hub.Publish(l.sessionID, "bot_message", m)
}

func (l *JourneyListener) OnWidget(w journey.WidgetType, sc journey.Script, active bool) {
	l.hub.Publish(l.sessionID, "widget", map[string]interface{}{
		"widget": w,
		"params": sc,
		"active": active,
	})
}

func (l *JourneyListener) OnTrimmed(step journey.StepID) {
	l.hub.Publish(l.sessionID, "history_trimmed", map[string]string{"step_id": string(step)})
}

func (l *JourneyListener) OnCompleted(m journey.Module) {
	l.hub.Publish(l.sessionID, "completed", map[string]string{"module": string(m)})
}

func (l *JourneyListener) OnError(reason string) {
	l.hub.Publish(l.sessionID, "error", map[string]string{"reason": reason})
}
