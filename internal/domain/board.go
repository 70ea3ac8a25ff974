package domain

// Cell is the state of one grid position. Obstacle and Mouse are never both
// set.
type Cell struct {
    Row      int
    Col      int
    Obstacle bool
    Mouse    bool
}

// Empty reports whether the cell holds neither an obstacle nor the mouse.
func (c Cell) Empty() bool { return !c.Obstacle && !c.Mouse }

// Outcome is the result of a win check.
type Outcome uint8

const (
    NoOutcome Outcome = iota
    MouseEscaped
    MouseTrapped
)

func (o Outcome) String() string {
    switch o {
    case MouseEscaped:
        return "mouse escaped"
    case MouseTrapped:
        return "mouse trapped"
    default:
        return "none"
    }
}

// Rand is the source of randomness for obstacle placement and the AI.
type Rand interface {
    Intn(n int) int
}

// Board is a rows x cols hex grid stored row-major with exactly one mouse.
type Board struct {
    rows  int
    cols  int
    cells [][]Cell
    mouse Coord
}

// NewEmptyBoard returns a board without obstacles and the mouse at mouse.
func NewEmptyBoard(rows, cols int, mouse Coord) *Board {
    b := &Board{rows: rows, cols: cols, mouse: mouse}
    b.cells = make([][]Cell, rows)
    for r := range b.cells {
        b.cells[r] = make([]Cell, cols)
        for c := range b.cells[r] {
            b.cells[r][c] = Cell{Row: r, Col: c}
        }
    }
    b.cells[mouse.Row][mouse.Col].Mouse = true
    return b
}

// NewBoard builds the opening board for cfg: the mouse at the grid center
// and between MinObstacles and MaxObstacles obstacles at random cells.
func NewBoard(cfg Config, rng Rand) *Board {
    b := NewEmptyBoard(cfg.Rows, cfg.Cols, cfg.Start())
    n := cfg.MinObstacles + rng.Intn(cfg.MaxObstacles-cfg.MinObstacles+1)
    b.RandomObstacles(n, rng)
    return b
}

// RandomObstacles places n obstacles on uniformly drawn empty cells,
// redrawing on collisions. It stops early only when no empty cell is left
// and returns the number placed.
func (b *Board) RandomObstacles(n int, rng Rand) int {
    placed := 0
    for placed < n && b.countEmpty() > 0 {
        c := Coord{Row: rng.Intn(b.rows), Col: rng.Intn(b.cols)}
        if b.PlaceObstacle(c) != nil {
            continue
        }
        placed++
    }
    return placed
}

func (b *Board) countEmpty() int {
    n := 0
    for r := range b.cells {
        for c := range b.cells[r] {
            if b.cells[r][c].Empty() {
                n++
            }
        }
    }
    return n
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// Mouse returns the mouse position.
func (b *Board) Mouse() Coord { return b.mouse }

// InBounds reports whether c lies on the grid.
func (b *Board) InBounds(c Coord) bool {
    return c.Row >= 0 && c.Row < b.rows && c.Col >= 0 && c.Col < b.cols
}

// IsBorder reports whether c lies in the first or last row or column.
func (b *Board) IsBorder(c Coord) bool {
    return c.Row == 0 || c.Row == b.rows-1 || c.Col == 0 || c.Col == b.cols-1
}

// At returns the cell at c. c must be in bounds.
func (b *Board) At(c Coord) Cell { return b.cells[c.Row][c.Col] }

// IsObstacle reports whether c holds an obstacle. Out-of-bounds cells are
// not obstacles.
func (b *Board) IsObstacle(c Coord) bool {
    return b.InBounds(c) && b.cells[c.Row][c.Col].Obstacle
}

// Cells returns a copy of the grid, row-major.
func (b *Board) Cells() [][]Cell {
    out := make([][]Cell, len(b.cells))
    for r := range b.cells {
        out[r] = append([]Cell(nil), b.cells[r]...)
    }
    return out
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
    return &Board{rows: b.rows, cols: b.cols, cells: b.Cells(), mouse: b.mouse}
}

// PlaceObstacle marks c as an obstacle.
func (b *Board) PlaceObstacle(c Coord) error {
    if !b.InBounds(c) {
        return ErrOutOfBounds
    }
    if !b.cells[c.Row][c.Col].Empty() {
        return ErrOccupied
    }
    b.cells[c.Row][c.Col].Obstacle = true
    return nil
}

// IsAdjacent reports whether to neighbors from under from's row parity.
func (b *Board) IsAdjacent(from, to Coord) bool { return IsAdjacent(from, to) }

// CanMoveTo reports whether the mouse may step onto c.
func (b *Board) CanMoveTo(c Coord) bool {
    return b.InBounds(c) && b.cells[c.Row][c.Col].Empty() && IsAdjacent(b.mouse, c)
}

// MoveMouse moves the mouse one step to c.
func (b *Board) MoveMouse(c Coord) error {
    if !b.InBounds(c) {
        return ErrOutOfBounds
    }
    if !b.cells[c.Row][c.Col].Empty() {
        return ErrOccupied
    }
    if !IsAdjacent(b.mouse, c) {
        return ErrNotAdjacent
    }
    b.cells[b.mouse.Row][b.mouse.Col].Mouse = false
    b.cells[c.Row][c.Col].Mouse = true
    b.mouse = c
    return nil
}

// LegalMoves returns the offsets the mouse may take, in neighbor table order.
func (b *Board) LegalMoves() []Offset {
    var out []Offset
    for _, o := range NeighborOffsets(b.mouse.Row) {
        if b.CanMoveTo(b.mouse.Add(o)) {
            out = append(out, o)
        }
    }
    return out
}

// CheckWin reports MouseEscaped when the mouse stands on the border and
// MouseTrapped when none of its neighbors is free. Neighbors off the grid
// count as blocked.
func (b *Board) CheckWin() Outcome {
    if b.IsBorder(b.mouse) {
        return MouseEscaped
    }
    for _, n := range Neighbors(b.mouse) {
        if b.InBounds(n) && !b.cells[n.Row][n.Col].Obstacle {
            return NoOutcome
        }
    }
    return MouseTrapped
}
