package ai

import "github.com/jaminalder/trap-the-mouse/internal/domain"

// BestMove returns the legal step whose destination is closest to the
// border. Ties go to the earliest offset in the neighbor table.
func BestMove(b *domain.Board, f DistanceField) (domain.Offset, bool) {
    var best domain.Offset
    found := false
    bestDist := 0
    for _, o := range b.LegalMoves() {
        d := f.At(b.Mouse().Add(o))
        if !found || d < bestDist {
            best, bestDist, found = o, d, true
        }
    }
    return best, found
}

// Easy steps to a uniformly random free neighbor.
type Easy struct {
    Rand domain.Rand
}

func (e Easy) ChooseMove(b *domain.Board) (domain.Offset, bool) {
    if len(b.LegalMoves()) == 0 {
        return domain.Offset{}, false
    }
    offsets := domain.NeighborOffsets(b.Mouse().Row)
    for {
        o := offsets[e.Rand.Intn(len(offsets))]
        if b.CanMoveTo(b.Mouse().Add(o)) {
            return o, true
        }
    }
}

// Medium plays a random step on a draw of 1 to 4 out of 10 and the best
// step otherwise.
type Medium struct {
    Rand domain.Rand
}

func (m Medium) ChooseMove(b *domain.Board) (domain.Offset, bool) {
    if m.Rand.Intn(10)+1 <= 4 {
        return Easy{Rand: m.Rand}.ChooseMove(b)
    }
    return Hard{}.ChooseMove(b)
}

// Hard always plays the best step.
type Hard struct{}

func (Hard) ChooseMove(b *domain.Board) (domain.Offset, bool) {
    return BestMove(b, DistancesFromBorder(b))
}

// ForLevel returns the strategy for a level, or nil for LevelNone.
func ForLevel(l domain.Level, rng domain.Rand) domain.Strategy {
    switch l {
    case domain.LevelEasy:
        return Easy{Rand: rng}
    case domain.LevelMedium:
        return Medium{Rand: rng}
    case domain.LevelHard:
        return Hard{}
    }
    return nil
}

// Strategies binds ForLevel to a random source.
func Strategies(rng domain.Rand) domain.StrategyFor {
    return func(l domain.Level) domain.Strategy { return ForLevel(l, rng) }
}
