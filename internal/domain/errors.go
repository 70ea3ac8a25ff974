package domain

import (
    "errors"
    "fmt"
)

// ErrIllegalMove is wrapped by every rule violation on the board.
var ErrIllegalMove = errors.New("illegal move")

// Errors returned by domain operations.
var (
    ErrOutOfBounds   = fmt.Errorf("%w: out of bounds", ErrIllegalMove)
    ErrOccupied      = fmt.Errorf("%w: cell occupied", ErrIllegalMove)
    ErrNotAdjacent   = fmt.Errorf("%w: not adjacent to the mouse", ErrIllegalMove)
    ErrNoCellAtPoint = errors.New("no cell at point")
    ErrWrongPhase    = errors.New("request not accepted in current phase")
    ErrNotYourTurn   = errors.New("not your turn")
    ErrNoLegalMove   = errors.New("no legal move")
)
