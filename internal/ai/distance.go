// Package ai ranks mouse moves by their distance to the board border and
// implements the scripted mouse opponents.
package ai

import (
    "math"

    "github.com/jaminalder/trap-the-mouse/internal/domain"
)

// Unreachable is the distance of a cell sealed off from the border.
const Unreachable = math.MaxInt32

// DistanceField holds, per cell, the fewest hex steps to the nearest border
// cell through non-obstacle cells.
type DistanceField struct {
    rows    int
    cols    int
    dist    []int
    visited []bool
}

// At returns the distance of c, or Unreachable for obstacles, sealed cells
// and coordinates off the grid.
func (f DistanceField) At(c domain.Coord) int {
    if c.Row < 0 || c.Row >= f.rows || c.Col < 0 || c.Col >= f.cols {
        return Unreachable
    }
    return f.dist[c.Row*f.cols+c.Col]
}

// Reachable reports whether some border cell can be reached from c.
func (f DistanceField) Reachable(c domain.Coord) bool {
    if c.Row < 0 || c.Row >= f.rows || c.Col < 0 || c.Col >= f.cols {
        return false
    }
    return f.visited[c.Row*f.cols+c.Col]
}

// DistancesFromBorder runs a breadth-first search seeded with every open
// border cell at distance 0. Seeds are queued in row-major order and each
// cell expands in neighbor table order.
func DistancesFromBorder(b *domain.Board) DistanceField {
    rows, cols := b.Rows(), b.Cols()
    f := DistanceField{
        rows:    rows,
        cols:    cols,
        dist:    make([]int, rows*cols),
        visited: make([]bool, rows*cols),
    }
    for i := range f.dist {
        f.dist[i] = Unreachable
    }

    queue := make([]domain.Coord, 0, rows*cols)
    for r := 0; r < rows; r++ {
        for c := 0; c < cols; c++ {
            cell := domain.Coord{Row: r, Col: c}
            if !b.IsBorder(cell) || b.IsObstacle(cell) {
                continue
            }
            f.dist[r*cols+c] = 0
            f.visited[r*cols+c] = true
            queue = append(queue, cell)
        }
    }

    for len(queue) > 0 {
        cur := queue[0]
        queue = queue[1:]
        d := f.dist[cur.Row*cols+cur.Col]
        for _, n := range domain.Neighbors(cur) {
            if !b.InBounds(n) || b.IsObstacle(n) {
                continue
            }
            i := n.Row*cols + n.Col
            if f.visited[i] {
                continue
            }
            f.visited[i] = true
            f.dist[i] = d + 1
            queue = append(queue, n)
        }
    }
    return f
}
