package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"coverbot/internal/config"
	"coverbot/internal/http-server/handlers/errors"
	"coverbot/internal/http-server/handlers/session"
	"coverbot/internal/lib/sl"
	"coverbot/internal/ws"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	session.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Route("/journey", func(r chi.Router) {
			r.Use(middleware.Timeout(5 * time.Second))
			r.Post("/start", session.Start(log, handler))
			r.Post("/{session}/respond", session.Respond(log, handler))
			r.Get("/{session}/edit", session.EditPreview(log, handler))
			r.Post("/{session}/edit", session.Edit(log, handler))
			r.Get("/{session}/state", session.State(log, handler))
		})
	})

	router.Get("/ws/{session}", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, log, chi.URLParam(r, "session"), w, r)
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
