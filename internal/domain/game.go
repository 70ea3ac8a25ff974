package domain

import (
    "errors"
    "fmt"
    "strings"
)

// Phase is the screen-level state of a game session.
type Phase uint8

const (
    PhaseMenu Phase = iota
    PhaseLevelSelect
    PhasePlaying
    PhaseGameOver
)

func (p Phase) String() string {
    switch p {
    case PhaseMenu:
        return "menu"
    case PhaseLevelSelect:
        return "level-select"
    case PhasePlaying:
        return "playing"
    case PhaseGameOver:
        return "game-over"
    default:
        return fmt.Sprintf("phase(%d)", uint8(p))
    }
}

// Side is one of the two players. NoSide marks an undecided winner.
type Side uint8

const (
    NoSide Side = iota
    Trapper
    Mouse
)

func (s Side) String() string {
    switch s {
    case Trapper:
        return "Trapper"
    case Mouse:
        return "Mouse"
    default:
        return ""
    }
}

// Opponent is who controls the mouse.
type Opponent uint8

const (
    Human Opponent = iota
    AI
)

func (o Opponent) String() string {
    if o == AI {
        return "ai"
    }
    return "human"
}

// ParseOpponent accepts "ai" or "human".
func ParseOpponent(s string) (Opponent, error) {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case "ai":
        return AI, nil
    case "human":
        return Human, nil
    }
    return Human, fmt.Errorf("unknown opponent %q", s)
}

// Level selects the scripted mouse strategy.
type Level uint8

const (
    LevelNone Level = iota
    LevelEasy
    LevelMedium
    LevelHard
)

func (l Level) String() string {
    switch l {
    case LevelEasy:
        return "easy"
    case LevelMedium:
        return "medium"
    case LevelHard:
        return "hard"
    default:
        return "none"
    }
}

// ErrUnknownLevel is returned for levels outside easy, medium and hard.
var ErrUnknownLevel = errors.New("unknown AI level")

// ParseLevel accepts "easy", "medium" or "hard".
func ParseLevel(s string) (Level, error) {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case "easy":
        return LevelEasy, nil
    case "medium":
        return LevelMedium, nil
    case "hard":
        return LevelHard, nil
    }
    return LevelNone, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// Strategy picks the mouse's next step. ok is false only when the mouse has
// no legal move.
type Strategy interface {
    ChooseMove(b *Board) (o Offset, ok bool)
}

// StrategyFor returns the strategy driving the mouse at a level.
type StrategyFor func(Level) Strategy

// Game is the turn controller for one session. It owns the board and only
// changes state through its request methods; a rejected request leaves it
// untouched.
type Game struct {
    Phase    Phase
    Turn     Side
    Opponent Opponent
    Level    Level
    Winner   Side
    Outcome  Outcome
    Moves    int
    Board    *Board

    cfg        Config
    layout     Layout
    rng        Rand
    strategies StrategyFor
    strategy   Strategy
}

// NewGame returns a game on the menu screen.
func NewGame(cfg Config, rng Rand, strategies StrategyFor) (*Game, error) {
    if err := cfg.Validate(); err != nil {
        return nil, err
    }
    if rng == nil {
        return nil, errors.New("nil random source")
    }
    return &Game{
        Phase:      PhaseMenu,
        cfg:        cfg,
        layout:     cfg.Layout(),
        rng:        rng,
        strategies: strategies,
    }, nil
}

// Config returns the configuration the game was built with.
func (g *Game) Config() Config { return g.cfg }

// Layout returns the pixel layout of the board.
func (g *Game) Layout() Layout { return g.layout }

// ChooseOpponent leaves the menu. Against the AI the level selector comes
// next; against a human a fresh game starts on the Trapper's turn.
func (g *Game) ChooseOpponent(o Opponent) error {
    if g.Phase != PhaseMenu {
        return ErrWrongPhase
    }
    switch o {
    case AI:
        g.Opponent = AI
        g.Phase = PhaseLevelSelect
    case Human:
        g.Opponent = Human
        g.Level = LevelNone
        g.strategy = nil
        g.start()
    default:
        return fmt.Errorf("unknown opponent %v", o)
    }
    return nil
}

// SelectLevel picks the AI strategy and starts the game.
func (g *Game) SelectLevel(l Level) error {
    if g.Phase != PhaseLevelSelect {
        return ErrWrongPhase
    }
    if l < LevelEasy || l > LevelHard {
        return fmt.Errorf("%w: %v", ErrUnknownLevel, l)
    }
    if g.strategies == nil {
        return errors.New("no AI strategies configured")
    }
    s := g.strategies(l)
    if s == nil {
        return fmt.Errorf("%w: %v", ErrUnknownLevel, l)
    }
    g.Level = l
    g.strategy = s
    g.start()
    return nil
}

func (g *Game) start() {
    g.Board = NewBoard(g.cfg, g.rng)
    g.Phase = PhasePlaying
    g.Turn = Trapper
    g.Winner = NoSide
    g.Outcome = NoOutcome
    g.Moves = 0
}

// Reset rebuilds the board and hands the turn back to the Trapper.
func (g *Game) Reset() error {
    if g.Phase != PhasePlaying {
        return ErrWrongPhase
    }
    g.start()
    return nil
}

// BackToMenu drops the current game and returns to the menu.
func (g *Game) BackToMenu() {
    g.Phase = PhaseMenu
    g.Turn = NoSide
    g.Opponent = Human
    g.Level = LevelNone
    g.Winner = NoSide
    g.Outcome = NoOutcome
    g.Moves = 0
    g.Board = nil
    g.strategy = nil
}

// Dismiss closes the result screen.
func (g *Game) Dismiss() error {
    if g.Phase != PhaseGameOver {
        return ErrWrongPhase
    }
    g.BackToMenu()
    return nil
}

// Click routes a pointer click to the side whose turn it is.
func (g *Game) Click(p Point) error {
    if g.Phase != PhasePlaying {
        return ErrWrongPhase
    }
    c, ok := g.layout.PixelToGrid(p, g.Board.Rows(), g.Board.Cols())
    if !ok {
        return ErrNoCellAtPoint
    }
    if g.Turn == Trapper {
        return g.PlaceObstacle(c)
    }
    return g.MoveMouse(c)
}

// PlaceObstacle plays the Trapper's turn. Against the AI the mouse answers
// before it returns.
func (g *Game) PlaceObstacle(c Coord) error {
    if g.Phase != PhasePlaying {
        return ErrWrongPhase
    }
    if g.Turn != Trapper {
        return ErrNotYourTurn
    }
    if err := g.Board.PlaceObstacle(c); err != nil {
        return err
    }
    g.Moves++
    if g.finish() {
        return nil
    }
    g.Turn = Mouse
    if g.Opponent == AI {
        return g.playAI()
    }
    return nil
}

// MoveMouse plays a human Mouse's turn.
func (g *Game) MoveMouse(c Coord) error {
    if g.Phase != PhasePlaying {
        return ErrWrongPhase
    }
    if g.Turn != Mouse || g.Opponent != Human {
        return ErrNotYourTurn
    }
    return g.stepMouse(c)
}

func (g *Game) playAI() error {
    o, ok := g.strategy.ChooseMove(g.Board)
    if !ok {
        return ErrNoLegalMove
    }
    return g.stepMouse(g.Board.Mouse().Add(o))
}

func (g *Game) stepMouse(c Coord) error {
    if err := g.Board.MoveMouse(c); err != nil {
        return err
    }
    g.Moves++
    if !g.finish() {
        g.Turn = Trapper
    }
    return nil
}

// finish ends the game when the board has an outcome.
func (g *Game) finish() bool {
    out := g.Board.CheckWin()
    if out == NoOutcome {
        return false
    }
    g.Outcome = out
    g.Phase = PhaseGameOver
    if out == MouseTrapped {
        g.Winner = Trapper
    } else {
        g.Winner = Mouse
    }
    return true
}

// TurnLabel is the whose-turn indicator shown under the board.
func (g *Game) TurnLabel() string {
    if g.Phase != PhasePlaying {
        return ""
    }
    return g.Turn.String() + "'s turn"
}

// View is a read-only copy of a game for rendering.
type View struct {
    Phase     Phase
    Turn      Side
    TurnLabel string
    Opponent  Opponent
    Level     Level
    Winner    Side
    Outcome   Outcome
    Moves     int
    Layout    Layout
    Cells     [][]Cell
    Mouse     Coord
}

// HasBoard reports whether the view carries a board.
func (v View) HasBoard() bool { return v.Cells != nil }

// Snapshot copies the game state, including the board.
func (g *Game) Snapshot() View {
    v := View{
        Phase:     g.Phase,
        Turn:      g.Turn,
        TurnLabel: g.TurnLabel(),
        Opponent:  g.Opponent,
        Level:     g.Level,
        Winner:    g.Winner,
        Outcome:   g.Outcome,
        Moves:     g.Moves,
        Layout:    g.layout,
    }
    if g.Board != nil {
        v.Cells = g.Board.Cells()
        v.Mouse = g.Board.Mouse()
    }
    return v
}
