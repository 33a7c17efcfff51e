package session

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"coverbot/internal/lib/api/response"
	"coverbot/journey"
)

type EditPreviewResponse struct {
	Widget journey.WidgetType `json:"widget"`
	Params journey.Script     `json:"params"`
}

// EditPreview returns the widget for re-answering a past step. State is
// untouched until the edit is confirmed.
func EditPreview(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session")
		step := journey.StepID(r.URL.Query().Get("step"))

		widget, params, err := handler.RequestEdit(sessionID, step)
		if err != nil {
			writeJourneyError(log, w, r, sessionID, err)
			return
		}

		render.JSON(w, r, EditPreviewResponse{Widget: widget, Params: params})
	}
}

type EditRequest struct {
	Step     journey.StepID   `json:"step"`
	Response journey.Response `json:"response"`
}

// Edit rewinds the session to the step and resumes with the new answer.
func Edit(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session")

		var req EditRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		snap, err := handler.ConfirmEdit(sessionID, req.Step, req.Response)
		if err != nil {
			writeJourneyError(log, w, r, sessionID, err)
			return
		}

		render.JSON(w, r, snap)
	}
}
