package session

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"coverbot/internal/lib/api/response"
	"coverbot/internal/lib/sl"
	"coverbot/journey"
)

type StartRequest struct {
	Module string `json:"module"`
}

type StartResponse struct {
	SessionID string           `json:"session_id"`
	State     journey.Snapshot `json:"state"`
}

// Start creates a new journey session. An empty module starts onboarding.
func Start(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}
		if req.Module == "" {
			req.Module = "onboarding"
		}

		id, snap, err := handler.StartSession(req.Module)
		if err != nil {
			log.Error("start session", sl.Err(err), slog.String("module", req.Module))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Unknown module"))
			return
		}

		render.JSON(w, r, StartResponse{SessionID: id, State: snap})
	}
}
