package web

import (
    "net/http"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "github.com/rs/zerolog"

    "github.com/jaminalder/trap-the-mouse/internal/app"
)

// NewServer wires routes and returns an http.Handler. It also installs the
// screen renderer used for session broadcasts.
func NewServer(s *app.Service, logger zerolog.Logger) http.Handler {
    h := &handlers{svc: s, tpl: loadTemplates(), log: logger}
    s.SetRenderer(func(st app.SessionState) []byte { return h.renderScreen(st, "") })

    r := chi.NewRouter()
    r.Use(middleware.RequestID)
    r.Use(requestLogger(logger))
    r.Use(middleware.Recoverer)
    r.Get("/", h.index)
    r.Post("/game", h.create)
    r.Route("/game/{id}", func(r chi.Router) {
        r.Get("/", h.view)
        r.Post("/opponent", h.opponent)
        r.Post("/level", h.level)
        r.Post("/click", h.click)
        r.Post("/reset", h.reset)
        r.Post("/back", h.back)
        r.Post("/dismiss", h.dismiss)
        r.Get("/events", h.events)
    })
    return r
}

// requestLogger logs one line per request once the handler returns.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
            start := time.Now()
            next.ServeHTTP(ww, r)
            logger.Debug().
                Str("request_id", middleware.GetReqID(r.Context())).
                Str("method", r.Method).
                Str("path", r.URL.Path).
                Int("status", ww.Status()).
                Dur("duration", time.Since(start)).
                Msg("http request")
        })
    }
}
