package web

import (
    "errors"
    "fmt"
    "io"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/rs/zerolog"

    "github.com/jaminalder/trap-the-mouse/internal/app"
    "github.com/jaminalder/trap-the-mouse/internal/domain"
)

type handlers struct {
    svc *app.Service
    tpl *templates
    log zerolog.Logger
}

func (h *handlers) renderScreen(st app.SessionState, errMsg string) []byte {
    return renderTemplate(h.tpl.screen, "", newScreenData(st, errMsg))
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(http.StatusOK)
    _, _ = w.Write(renderTemplate(h.tpl.index, "", nil))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
    pid := ensurePlayerCookie(w, r)
    st, err := h.svc.CreateSession(pid)
    if err != nil {
        h.log.Error().Err(err).Msg("create session")
        http.Error(w, "failed to create", http.StatusInternalServerError)
        return
    }
    http.Redirect(w, r, "/game/"+st.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    ensurePlayerCookie(w, r)
    st, ok := h.svc.Get(id)
    if !ok {
        http.NotFound(w, r)
        return
    }
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(http.StatusOK)
    _, _ = w.Write(renderTemplate(h.tpl.game, "", newScreenData(*st, "")))
}

func (h *handlers) opponent(w http.ResponseWriter, r *http.Request) {
    h.act(w, r, func(id, pid string) (*app.SessionState, error) {
        o, err := domain.ParseOpponent(r.Form.Get("opponent"))
        if err != nil {
            return nil, err
        }
        return h.svc.ChooseOpponent(id, pid, o)
    })
}

func (h *handlers) level(w http.ResponseWriter, r *http.Request) {
    h.act(w, r, func(id, pid string) (*app.SessionState, error) {
        l, err := domain.ParseLevel(r.Form.Get("level"))
        if err != nil {
            return nil, err
        }
        return h.svc.SelectLevel(id, pid, l)
    })
}

func (h *handlers) click(w http.ResponseWriter, r *http.Request) {
    h.act(w, r, func(id, pid string) (*app.SessionState, error) {
        x, errX := strconv.ParseFloat(r.Form.Get("x"), 64)
        y, errY := strconv.ParseFloat(r.Form.Get("y"), 64)
        if errX != nil || errY != nil {
            return nil, domain.ErrNoCellAtPoint
        }
        return h.svc.Click(id, pid, x, y)
    })
}

func (h *handlers) reset(w http.ResponseWriter, r *http.Request) {
    h.act(w, r, func(id, pid string) (*app.SessionState, error) {
        return h.svc.Reset(id, pid)
    })
}

func (h *handlers) back(w http.ResponseWriter, r *http.Request) {
    h.act(w, r, func(id, pid string) (*app.SessionState, error) {
        return h.svc.BackToMenu(id, pid)
    })
}

func (h *handlers) dismiss(w http.ResponseWriter, r *http.Request) {
    h.act(w, r, func(id, pid string) (*app.SessionState, error) {
        return h.svc.Dismiss(id, pid)
    })
}

// act runs a request for the session in the URL and answers with the
// screen fragment. A rejected request renders the unchanged screen with an
// error line.
func (h *handlers) act(w http.ResponseWriter, r *http.Request, fn func(id, pid string) (*app.SessionState, error)) {
    id := chi.URLParam(r, "id")
    pid := ensurePlayerCookie(w, r)
    _ = r.ParseForm()
    st, err := fn(id, pid)
    var errMsg string
    if err != nil {
        if st == nil {
            if s, ok := h.svc.Get(id); ok {
                st = s
            }
        }
        errMsg = errorMessage(err)
    }
    if st == nil {
        http.NotFound(w, r)
        return
    }
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    _, _ = w.Write(h.renderScreen(*st, errMsg))
}

func errorMessage(err error) string {
    switch {
    case errors.Is(err, app.ErrNotAPlayer):
        return "You are a spectator"
    case errors.Is(err, domain.ErrOccupied):
        return "Cell is occupied"
    case errors.Is(err, domain.ErrNotAdjacent):
        return "The mouse moves one cell at a time"
    case errors.Is(err, domain.ErrOutOfBounds):
        return "Out of bounds"
    case errors.Is(err, domain.ErrNoCellAtPoint):
        return "No cell there"
    case errors.Is(err, domain.ErrNotYourTurn):
        return "Not your turn"
    case errors.Is(err, domain.ErrWrongPhase):
        return "Not available right now"
    case errors.Is(err, domain.ErrUnknownLevel):
        return "Unknown level"
    default:
        return "Invalid request"
    }
}

var heartbeatInterval = 15 * time.Second

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    w.Header().Set("Content-Type", "text/event-stream")
    w.Header().Set("Cache-Control", "no-cache")
    w.Header().Set("X-Accel-Buffering", "no")
    // In tests or non-EventSource requests, just acknowledge headers and return
    if r.Header.Get("Accept") != "text/event-stream" {
        w.WriteHeader(http.StatusOK)
        return
    }
    flusher, ok := w.(http.Flusher)
    if !ok {
        w.WriteHeader(http.StatusOK)
        return
    }
    ctx := r.Context()
    ch, unsub, err := h.svc.Subscribe(ctx, id)
    if err != nil {
        http.NotFound(w, r)
        return
    }
    defer unsub()
    ticker := time.NewTicker(heartbeatInterval)
    defer ticker.Stop()
    flusher.Flush()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            _, _ = io.WriteString(w, ": ping\n\n")
            flusher.Flush()
        case b, ok := <-ch:
            if !ok {
                return
            }
            writeEvent(w, "screen", b)
            flusher.Flush()
        }
    }
}

// writeEvent emits one server-sent event; every payload line gets its own
// data field.
func writeEvent(w io.Writer, name string, payload []byte) {
    _, _ = fmt.Fprintf(w, "event: %s\n", name)
    for _, line := range strings.Split(strings.TrimRight(string(payload), "\n"), "\n") {
        _, _ = fmt.Fprintf(w, "data: %s\n", line)
    }
    _, _ = io.WriteString(w, "\n")
}
