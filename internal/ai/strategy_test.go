package ai

import (
    "testing"

    "github.com/stretchr/testify/require"
    "golang.org/x/exp/rand"

    "github.com/jaminalder/trap-the-mouse/internal/domain"
)

// fixedRand replays a list of draws.
type fixedRand struct {
    draws []int
}

func (r *fixedRand) Intn(n int) int {
    v := r.draws[0]
    r.draws = r.draws[1:]
    return v % n
}

func TestHardAvoidsTheWall(t *testing.T) {
    // all five open neighbors of (5,5) are four steps from the border;
    // the first one in table order, away from the wall, wins the tie
    b := board(domain.Coord{Row: 5, Col: 6})
    o, ok := Hard{}.ChooseMove(b)
    require.True(t, ok)
    require.Equal(t, domain.Offset{DRow: 0, DCol: -1}, o)
    require.Equal(t, domain.Coord{Row: 5, Col: 4}, b.Mouse().Add(o))
}

func TestHardHeadsForTheNearestBorder(t *testing.T) {
    cfg := domain.DefaultConfig()
    b := domain.NewEmptyBoard(cfg.Rows, cfg.Cols, domain.Coord{Row: 2, Col: 5})
    o, ok := Hard{}.ChooseMove(b)
    require.True(t, ok)
    require.Equal(t, domain.Offset{DRow: -1, DCol: 0}, o)
}

func TestHardNeverBeatenByAnotherNeighbor(t *testing.T) {
    rng := rand.New(rand.NewSource(3))
    for i := 0; i < 50; i++ {
        b := board()
        b.RandomObstacles(rng.Intn(40), rng)
        if b.CheckWin() != domain.NoOutcome {
            continue
        }
        f := DistancesFromBorder(b)
        o, ok := Hard{}.ChooseMove(b)
        require.True(t, ok)
        chosen := f.At(b.Mouse().Add(o))
        for _, other := range b.LegalMoves() {
            require.LessOrEqual(t, chosen, f.At(b.Mouse().Add(other)))
        }
    }
}

func TestBestMoveWithoutLegalMoves(t *testing.T) {
    center := domain.Coord{Row: 5, Col: 5}
    ring := domain.Neighbors(center)
    b := board(ring[:]...)
    _, ok := BestMove(b, DistancesFromBorder(b))
    require.False(t, ok)

    _, ok = Easy{Rand: rand.New(rand.NewSource(1))}.ChooseMove(b)
    require.False(t, ok)
}

func TestEasyResamplesIllegalDraws(t *testing.T) {
    // draws 0 and 2 point at obstacles, 1 is free
    b := board(domain.Coord{Row: 5, Col: 6}, domain.Coord{Row: 4, Col: 5})
    r := &fixedRand{draws: []int{0, 2, 1}}
    o, ok := Easy{Rand: r}.ChooseMove(b)
    require.True(t, ok)
    require.Equal(t, domain.Offset{DRow: 0, DCol: -1}, o)
    require.Empty(t, r.draws)
}

func TestRandomStrategiesOnlyPickLegalMoves(t *testing.T) {
    rng := rand.New(rand.NewSource(11))
    strategies := []domain.Strategy{Easy{Rand: rng}, Medium{Rand: rng}}
    for i := 0; i < 200; i++ {
        b := board()
        b.RandomObstacles(rng.Intn(60), rng)
        if b.CheckWin() != domain.NoOutcome {
            continue
        }
        for _, s := range strategies {
            o, ok := s.ChooseMove(b)
            require.True(t, ok)
            require.True(t, b.CanMoveTo(b.Mouse().Add(o)), "%T picked %v", s, o)
        }
    }
}

func TestMediumSplitsOnTheDraw(t *testing.T) {
    b := board(domain.Coord{Row: 5, Col: 6})

    // a draw of 4 plays randomly: offset index 5 is (1,1)
    o, ok := Medium{Rand: &fixedRand{draws: []int{3, 5}}}.ChooseMove(b)
    require.True(t, ok)
    require.Equal(t, domain.Offset{DRow: 1, DCol: 1}, o)

    // a draw of 5 plays the best move
    o, ok = Medium{Rand: &fixedRand{draws: []int{4}}}.ChooseMove(b)
    require.True(t, ok)
    require.Equal(t, domain.Offset{DRow: 0, DCol: -1}, o)
}

func TestForLevel(t *testing.T) {
    rng := rand.New(rand.NewSource(1))
    require.IsType(t, Easy{}, ForLevel(domain.LevelEasy, rng))
    require.IsType(t, Medium{}, ForLevel(domain.LevelMedium, rng))
    require.IsType(t, Hard{}, ForLevel(domain.LevelHard, rng))
    require.Nil(t, ForLevel(domain.LevelNone, rng))
    require.IsType(t, Hard{}, Strategies(rng)(domain.LevelHard))
}

func TestHardGameAgainstIdleTrapper(t *testing.T) {
    // with obstacles placed far away the hard mouse escapes in five steps
    g, err := domain.NewGame(domain.DefaultConfig(), rand.New(rand.NewSource(5)), Strategies(rand.New(rand.NewSource(6))))
    require.NoError(t, err)
    require.NoError(t, g.ChooseOpponent(domain.AI))
    require.NoError(t, g.SelectLevel(domain.LevelHard))
    g.Board = board()

    far := []domain.Coord{{Row: 10, Col: 0}, {Row: 10, Col: 1}, {Row: 10, Col: 2}, {Row: 10, Col: 3}, {Row: 10, Col: 4}, {Row: 10, Col: 5}}
    for _, c := range far {
        if g.Phase != domain.PhasePlaying {
            break
        }
        require.NoError(t, g.PlaceObstacle(c))
    }
    require.Equal(t, domain.PhaseGameOver, g.Phase)
    require.Equal(t, domain.Mouse, g.Winner)
    require.Equal(t, 10, g.Moves)
}
