package app

import (
    "context"
    "errors"
    "sync"
    "time"

    "github.com/google/uuid"
    "github.com/rs/zerolog"
    "golang.org/x/exp/rand"

    "github.com/jaminalder/trap-the-mouse/internal/ai"
    "github.com/jaminalder/trap-the-mouse/internal/domain"
)

// Errors exposed by the service layer.
var (
    ErrNotFound   = errors.New("session not found")
    ErrNotAPlayer = errors.New("not a player")
)

// SessionState is a snapshot of one session.
type SessionState struct {
    ID      string
    Owner   string
    View    domain.View
    Created time.Time
    Updated time.Time
}

type session struct {
    id      string
    owner   string
    game    *domain.Game
    created time.Time
    updated time.Time
}

func (s *session) state() SessionState {
    return SessionState{
        ID:      s.id,
        Owner:   s.owner,
        View:    s.game.Snapshot(),
        Created: s.created,
        Updated: s.updated,
    }
}

type subscriber struct {
    ch        chan []byte
    closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service owns every session. A single mutex serializes all requests, so
// each board has exactly one writer at a time.
type Service struct {
    mu       sync.Mutex
    sessions map[string]*session
    subs     map[string]map[*subscriber]struct{}
    render   func(SessionState) []byte
    cfg      domain.Config
    rng      *rand.Rand
    log      zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) Option {
    return func(s *Service) { s.log = l }
}

// WithRenderer sets the function that encodes broadcast payloads.
func WithRenderer(renderer func(SessionState) []byte) Option {
    return func(s *Service) {
        if renderer != nil {
            s.render = renderer
        }
    }
}

// WithConfig replaces the default board configuration.
func WithConfig(cfg domain.Config) Option {
    return func(s *Service) { s.cfg = cfg }
}

// WithSeed fixes the random source shared by boards and AI players.
func WithSeed(seed uint64) Option {
    return func(s *Service) { s.rng = rand.New(rand.NewSource(seed)) }
}

// NewService creates a service. Without options it logs nothing, renders
// empty payloads and seeds from the clock.
func NewService(opts ...Option) *Service {
    s := &Service{
        sessions: make(map[string]*session),
        subs:     make(map[string]map[*subscriber]struct{}),
        render:   func(SessionState) []byte { return nil },
        cfg:      domain.DefaultConfig(),
        log:      zerolog.Nop(),
    }
    for _, opt := range opts {
        opt(s)
    }
    if s.rng == nil {
        s.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
    }
    return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(SessionState) []byte) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if renderer == nil {
        s.render = func(SessionState) []byte { return nil }
        return
    }
    s.render = renderer
}

// CreateSession registers a new session on the menu screen, owned by owner.
func (s *Service) CreateSession(owner string) (*SessionState, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    g, err := domain.NewGame(s.cfg, s.rng, ai.Strategies(s.rng))
    if err != nil {
        return nil, err
    }
    now := time.Now()
    sess := &session{id: uuid.NewString(), owner: owner, game: g, created: now, updated: now}
    s.sessions[sess.id] = sess
    s.log.Info().Str("session", sess.id).Msg("session created")
    st := sess.state()
    return &st, nil
}

// Get returns a snapshot of the session if present.
func (s *Service) Get(id string) (*SessionState, bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    sess, ok := s.sessions[id]
    if !ok {
        return nil, false
    }
    st := sess.state()
    return &st, true
}

// ChooseOpponent leaves the menu for a human or an AI game.
func (s *Service) ChooseOpponent(id, playerID string, o domain.Opponent) (*SessionState, error) {
    return s.apply(id, playerID, "choose opponent", func(g *domain.Game) error {
        return g.ChooseOpponent(o)
    })
}

// SelectLevel starts an AI game at the given level.
func (s *Service) SelectLevel(id, playerID string, l domain.Level) (*SessionState, error) {
    return s.apply(id, playerID, "select level", func(g *domain.Game) error {
        return g.SelectLevel(l)
    })
}

// Click plays the current side's move at pixel (x, y).
func (s *Service) Click(id, playerID string, x, y float64) (*SessionState, error) {
    return s.apply(id, playerID, "click", func(g *domain.Game) error {
        return g.Click(domain.Point{X: x, Y: y})
    })
}

// Reset rebuilds the board of a running game.
func (s *Service) Reset(id, playerID string) (*SessionState, error) {
    return s.apply(id, playerID, "reset", func(g *domain.Game) error {
        return g.Reset()
    })
}

// BackToMenu abandons the current game.
func (s *Service) BackToMenu(id, playerID string) (*SessionState, error) {
    return s.apply(id, playerID, "back to menu", func(g *domain.Game) error {
        g.BackToMenu()
        return nil
    })
}

// Dismiss closes the result screen.
func (s *Service) Dismiss(id, playerID string) (*SessionState, error) {
    return s.apply(id, playerID, "dismiss", func(g *domain.Game) error {
        return g.Dismiss()
    })
}

// apply validates ownership, runs fn on the session's game, updates
// timestamps, and broadcasts the new state.
func (s *Service) apply(id, playerID, action string, fn func(*domain.Game) error) (*SessionState, error) {
    var toDrop []*subscriber

    s.mu.Lock()
    sess, ok := s.sessions[id]
    if !ok {
        s.mu.Unlock()
        return nil, ErrNotFound
    }
    if sess.owner != playerID {
        s.mu.Unlock()
        return nil, ErrNotAPlayer
    }
    before := sess.game.Phase
    if err := fn(sess.game); err != nil {
        s.mu.Unlock()
        s.log.Debug().Err(err).Str("session", id).Str("action", action).Msg("request rejected")
        return nil, err
    }
    sess.updated = time.Now()

    cp := sess.state()
    subs := s.copySubsLocked(id)
    payload := s.render(cp)
    s.mu.Unlock()

    ev := s.log.Info().Str("session", id).Str("action", action)
    if before != cp.View.Phase {
        ev = ev.Stringer("from", before).Stringer("to", cp.View.Phase)
    }
    ev.Msg("request applied")
    if cp.View.Phase == domain.PhaseGameOver && before != domain.PhaseGameOver {
        s.log.Info().Str("session", id).Stringer("winner", cp.View.Winner).
            Stringer("outcome", cp.View.Outcome).Int("moves", cp.View.Moves).Msg("game over")
    }

    // Fan-out; drop slow subscribers by closing and marking for deletion
    for sub := range subs {
        select {
        case sub.ch <- payload:
        default:
            sub.close()
            toDrop = append(toDrop, sub)
        }
    }
    if len(toDrop) > 0 {
        s.mu.Lock()
        for _, sub := range toDrop {
            if set, ok := s.subs[id]; ok {
                delete(set, sub)
            }
        }
        s.mu.Unlock()
    }
    return &cp, nil
}

// Subscribe registers a subscriber for a session. Returns a channel and an
// unsubscribe func.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.sessions[id]; !ok {
        return nil, nil, ErrNotFound
    }
    set := s.subs[id]
    if set == nil {
        set = make(map[*subscriber]struct{})
        s.subs[id] = set
    }
    sub := &subscriber{ch: make(chan []byte, 1)}
    set[sub] = struct{}{}

    unsubOnce := &sync.Once{}
    unsub := func() {
        unsubOnce.Do(func() {
            s.mu.Lock()
            if set, ok := s.subs[id]; ok {
                delete(set, sub)
            }
            s.mu.Unlock()
            sub.close()
        })
    }
    go func() {
        <-ctx.Done()
        unsub()
    }()
    return sub.ch, unsub, nil
}

func (s *Service) copySubsLocked(id string) map[*subscriber]struct{} {
    out := make(map[*subscriber]struct{})
    if set, ok := s.subs[id]; ok {
        for k := range set {
            out[k] = struct{}{}
        }
    }
    return out
}
