package web

import (
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/jaminalder/codex-bridgit/internal/app"
)

// Options tunes the web layer. Zero values fall back to defaults.
type Options struct {
	DefaultMode app.Mode
	Heartbeat   time.Duration
	Logger      *log.Logger
}

// NewServer wires routes and returns an http.Handler. It installs the board
// fragment as the service's broadcast renderer.
func NewServer(s *app.Service, opts Options) http.Handler {
	if opts.DefaultMode == "" {
		opts.DefaultMode = app.ModeAIMedium
	}
	if opts.Heartbeat <= 0 {
		opts.Heartbeat = 15 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	h := &handlers{
		svc:         s,
		tpl:         loadTemplates(),
		defaultMode: opts.DefaultMode,
		heartbeat:   opts.Heartbeat,
		logger:      opts.Logger,
		upgrader:    websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
	s.SetRenderer(func(gs app.GameState) []byte { return h.renderBoard(gs, "") })

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", h.index)
	r.Post("/game", h.create)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", h.view)
		r.Post("/click", h.click)
		r.Post("/reset", h.reset)
		r.Get("/events", h.events)
		r.Get("/ws", h.ws)
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.ping)
		r.Get("/game/{id}", h.apiGame)
		r.Post("/game/{id}/move", h.apiMove)
	})
	return r
}
