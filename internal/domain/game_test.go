package domain

import (
    "testing"

    "github.com/stretchr/testify/require"
    "golang.org/x/exp/rand"
)

// scripted plays the given offsets in order.
type scripted struct {
    moves []Offset
}

func (s *scripted) ChooseMove(b *Board) (Offset, bool) {
    if len(s.moves) == 0 {
        return Offset{}, false
    }
    o := s.moves[0]
    s.moves = s.moves[1:]
    return o, true
}

func newTestGame(t *testing.T, s Strategy) *Game {
    t.Helper()
    g, err := NewGame(DefaultConfig(), rand.New(rand.NewSource(42)), func(Level) Strategy { return s })
    require.NoError(t, err)
    return g
}

// clearBoard swaps in an obstacle-free board so tests control every cell.
func clearBoard(g *Game) {
    cfg := g.Config()
    g.Board = NewEmptyBoard(cfg.Rows, cfg.Cols, cfg.Start())
}

func TestNewGameStartsOnMenu(t *testing.T) {
    g := newTestGame(t, nil)
    require.Equal(t, PhaseMenu, g.Phase)
    require.Nil(t, g.Board)
    require.Equal(t, NoSide, g.Winner)
    require.Empty(t, g.TurnLabel())
}

func TestNewGameRejectsBadConfig(t *testing.T) {
    cfg := DefaultConfig()
    cfg.MaxObstacles = 1
    _, err := NewGame(cfg, rand.New(rand.NewSource(1)), nil)
    require.Error(t, err)

    _, err = NewGame(DefaultConfig(), nil, nil)
    require.Error(t, err)
}

func TestMenuToHumanGame(t *testing.T) {
    g := newTestGame(t, nil)
    require.NoError(t, g.ChooseOpponent(Human))
    require.Equal(t, PhasePlaying, g.Phase)
    require.Equal(t, Trapper, g.Turn)
    require.Equal(t, Human, g.Opponent)
    require.NotNil(t, g.Board)
    require.Equal(t, "Trapper's turn", g.TurnLabel())
}

func TestMenuToLevelSelect(t *testing.T) {
    g := newTestGame(t, &scripted{})
    require.NoError(t, g.ChooseOpponent(AI))
    require.Equal(t, PhaseLevelSelect, g.Phase)
    require.Nil(t, g.Board)

    require.ErrorIs(t, g.SelectLevel(LevelNone), ErrUnknownLevel)
    require.Equal(t, PhaseLevelSelect, g.Phase)

    require.NoError(t, g.SelectLevel(LevelHard))
    require.Equal(t, PhasePlaying, g.Phase)
    require.Equal(t, LevelHard, g.Level)
    require.Equal(t, Trapper, g.Turn)
}

func TestRequestsOutsideTheirPhase(t *testing.T) {
    g := newTestGame(t, nil)
    require.ErrorIs(t, g.SelectLevel(LevelEasy), ErrWrongPhase)
    require.ErrorIs(t, g.PlaceObstacle(Coord{Row: 1, Col: 1}), ErrWrongPhase)
    require.ErrorIs(t, g.MoveMouse(Coord{Row: 1, Col: 1}), ErrWrongPhase)
    require.ErrorIs(t, g.Click(Point{X: 360, Y: 63}), ErrWrongPhase)
    require.ErrorIs(t, g.Reset(), ErrWrongPhase)
    require.ErrorIs(t, g.Dismiss(), ErrWrongPhase)

    require.NoError(t, g.ChooseOpponent(Human))
    require.ErrorIs(t, g.ChooseOpponent(AI), ErrWrongPhase)
}

func TestHumanTurnsAlternate(t *testing.T) {
    g := newTestGame(t, nil)
    require.NoError(t, g.ChooseOpponent(Human))
    clearBoard(g)

    require.ErrorIs(t, g.MoveMouse(Coord{Row: 5, Col: 4}), ErrNotYourTurn)
    require.NoError(t, g.PlaceObstacle(Coord{Row: 1, Col: 1}))
    require.Equal(t, Mouse, g.Turn)
    require.Equal(t, "Mouse's turn", g.TurnLabel())

    require.ErrorIs(t, g.PlaceObstacle(Coord{Row: 1, Col: 2}), ErrNotYourTurn)
    require.NoError(t, g.MoveMouse(Coord{Row: 5, Col: 4}))
    require.Equal(t, Trapper, g.Turn)
    require.Equal(t, 2, g.Moves)
}

func TestRejectedMoveKeepsTurn(t *testing.T) {
    g := newTestGame(t, nil)
    require.NoError(t, g.ChooseOpponent(Human))
    clearBoard(g)

    require.ErrorIs(t, g.PlaceObstacle(g.Board.Mouse()), ErrIllegalMove)
    require.Equal(t, Trapper, g.Turn)
    require.Zero(t, g.Moves)

    require.NoError(t, g.PlaceObstacle(Coord{Row: 5, Col: 6}))
    require.ErrorIs(t, g.MoveMouse(Coord{Row: 5, Col: 6}), ErrOccupied)
    require.ErrorIs(t, g.MoveMouse(Coord{Row: 2, Col: 2}), ErrNotAdjacent)
    require.Equal(t, Mouse, g.Turn)
    require.Equal(t, 1, g.Moves)
}

func TestMouseEscapeEndsGame(t *testing.T) {
    g := newTestGame(t, nil)
    require.NoError(t, g.ChooseOpponent(Human))
    cfg := g.Config()
    g.Board = NewEmptyBoard(cfg.Rows, cfg.Cols, Coord{Row: 1, Col: 5})

    require.NoError(t, g.PlaceObstacle(Coord{Row: 9, Col: 9}))
    require.NoError(t, g.MoveMouse(Coord{Row: 0, Col: 5}))
    require.Equal(t, PhaseGameOver, g.Phase)
    require.Equal(t, Mouse, g.Winner)
    require.Equal(t, MouseEscaped, g.Outcome)

    require.ErrorIs(t, g.PlaceObstacle(Coord{Row: 3, Col: 3}), ErrWrongPhase)
    require.NoError(t, g.Dismiss())
    require.Equal(t, PhaseMenu, g.Phase)
    require.Nil(t, g.Board)
    require.Equal(t, NoSide, g.Winner)
}

func TestTrapperWinsByEnclosing(t *testing.T) {
    // the mouse walks back and forth between (5,5) and (5,4)
    back, forth := Offset{0, -1}, Offset{0, 1}
    s := &scripted{moves: []Offset{back, forth, back, forth, back, forth}}
    g := newTestGame(t, s)
    require.NoError(t, g.ChooseOpponent(AI))
    require.NoError(t, g.SelectLevel(LevelEasy))
    clearBoard(g)

    walls := []Coord{{4, 5}, {4, 6}, {5, 6}, {6, 5}, {6, 6}}
    for _, w := range walls {
        require.NoError(t, g.PlaceObstacle(w))
        require.Equal(t, Trapper, g.Turn, "AI should answer within the same request")
    }
    require.Equal(t, Coord{Row: 5, Col: 4}, g.Board.Mouse())

    // close (5,4)'s free neighbors except (5,5), then wait for it to step back
    require.NoError(t, g.PlaceObstacle(Coord{Row: 5, Col: 3}))
    require.Equal(t, center(), g.Board.Mouse())
    require.NoError(t, g.PlaceObstacle(Coord{Row: 5, Col: 4}))
    require.Equal(t, PhaseGameOver, g.Phase)
    require.Equal(t, Trapper, g.Winner)
    require.Equal(t, MouseTrapped, g.Outcome)
}

func TestResetRebuildsBoard(t *testing.T) {
    g := newTestGame(t, nil)
    require.NoError(t, g.ChooseOpponent(Human))
    clearBoard(g)
    require.NoError(t, g.PlaceObstacle(Coord{Row: 1, Col: 1}))
    old := g.Board

    require.NoError(t, g.Reset())
    require.NotSame(t, old, g.Board)
    require.Equal(t, PhasePlaying, g.Phase)
    require.Equal(t, Trapper, g.Turn)
    require.Zero(t, g.Moves)
    require.Equal(t, center(), g.Board.Mouse())
}

func TestBackToMenuFromAnyPhase(t *testing.T) {
    g := newTestGame(t, &scripted{})
    require.NoError(t, g.ChooseOpponent(AI))
    g.BackToMenu()
    require.Equal(t, PhaseMenu, g.Phase)

    require.NoError(t, g.ChooseOpponent(AI))
    require.NoError(t, g.SelectLevel(LevelMedium))
    g.BackToMenu()
    require.Equal(t, PhaseMenu, g.Phase)
    require.Equal(t, LevelNone, g.Level)
    require.Equal(t, Human, g.Opponent)
    require.Nil(t, g.Board)
}

func TestClickRoutesToCurrentSide(t *testing.T) {
    g := newTestGame(t, nil)
    require.NoError(t, g.ChooseOpponent(Human))
    clearBoard(g)
    l := g.Layout()

    require.ErrorIs(t, g.Click(Point{X: 1, Y: 1}), ErrNoCellAtPoint)
    require.Equal(t, Trapper, g.Turn)

    require.NoError(t, g.Click(l.CellCenter(Coord{Row: 2, Col: 8})))
    require.True(t, g.Board.At(Coord{Row: 2, Col: 8}).Obstacle)
    require.Equal(t, Mouse, g.Turn)

    require.NoError(t, g.Click(l.CellCenter(Coord{Row: 6, Col: 5})))
    require.Equal(t, Coord{Row: 6, Col: 5}, g.Board.Mouse())
    require.Equal(t, Trapper, g.Turn)
}

func TestHumanCannotMoveAIMouse(t *testing.T) {
    g := newTestGame(t, &scripted{})
    require.NoError(t, g.ChooseOpponent(AI))
    require.NoError(t, g.SelectLevel(LevelHard))
    clearBoard(g)
    g.Turn = Mouse
    require.ErrorIs(t, g.MoveMouse(Coord{Row: 5, Col: 4}), ErrNotYourTurn)
}

func TestSnapshotIsACopy(t *testing.T) {
    g := newTestGame(t, nil)
    require.False(t, g.Snapshot().HasBoard())

    require.NoError(t, g.ChooseOpponent(Human))
    clearBoard(g)
    v := g.Snapshot()
    require.True(t, v.HasBoard())
    require.Equal(t, PhasePlaying, v.Phase)
    require.Equal(t, center(), v.Mouse)

    require.NoError(t, g.PlaceObstacle(Coord{Row: 3, Col: 3}))
    require.False(t, v.Cells[3][3].Obstacle)
}

func TestParseLevelAndOpponent(t *testing.T) {
    l, err := ParseLevel(" Hard ")
    require.NoError(t, err)
    require.Equal(t, LevelHard, l)
    _, err = ParseLevel("nightmare")
    require.ErrorIs(t, err, ErrUnknownLevel)

    o, err := ParseOpponent("ai")
    require.NoError(t, err)
    require.Equal(t, AI, o)
    _, err = ParseOpponent("robot")
    require.Error(t, err)
}
