package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"coverbot/impl/core"
	"coverbot/internal/lib/api/response"
	"coverbot/internal/lib/sl"
	"coverbot/journey"
)

type RespondRequest struct {
	Response journey.Response `json:"response"`
}

// Respond submits the user's answer to the session's active widget.
func Respond(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session")

		var req RespondRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		snap, err := handler.SubmitResponse(sessionID, req.Response)
		if err != nil {
			writeJourneyError(log, w, r, sessionID, err)
			return
		}

		render.JSON(w, r, snap)
	}
}

// writeJourneyError maps engine errors onto HTTP statuses shared by the
// respond and edit handlers.
func writeJourneyError(log *slog.Logger, w http.ResponseWriter, r *http.Request, sessionID string, err error) {
	switch {
	case errors.Is(err, core.ErrSessionNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Session not found"))
	case errors.Is(err, journey.ErrCompleted), errors.Is(err, journey.ErrHalted):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(err.Error()))
	case errors.Is(err, journey.ErrNoActiveWidget),
		errors.Is(err, journey.ErrNotEditable),
		errors.Is(err, journey.ErrUnknownStep):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(err.Error()))
	default:
		// Validation failures and everything else the widget can fix.
		log.Debug("response rejected", slog.String("session_id", sessionID), sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
	}
}
