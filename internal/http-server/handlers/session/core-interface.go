package session

import (
	"coverbot/journey"
)

// Core is the session surface the journey handlers depend on.
type Core interface {
	StartSession(module string) (string, journey.Snapshot, error)
	SubmitResponse(sessionID string, r journey.Response) (journey.Snapshot, error)
	RequestEdit(sessionID string, step journey.StepID) (journey.WidgetType, journey.Script, error)
	ConfirmEdit(sessionID string, step journey.StepID, r journey.Response) (journey.Snapshot, error)
	Snapshot(sessionID string) (journey.Snapshot, error)
}
