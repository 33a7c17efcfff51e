package session

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// State returns the session's current render model: transcript, typing flag
// and active widget. Reconnecting clients call this before resuming the
// WebSocket stream.
func State(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session")

		snap, err := handler.Snapshot(sessionID)
		if err != nil {
			writeJourneyError(log, w, r, sessionID, err)
			return
		}

		render.JSON(w, r, snap)
	}
}
