package domain

import "math"

// Coord addresses a cell by row and column.
type Coord struct {
    Row int
    Col int
}

// Offset is a (row, col) delta between neighboring cells.
type Offset struct {
    DRow int
    DCol int
}

// Add returns the cell reached by applying o to c.
func (c Coord) Add(o Offset) Coord {
    return Coord{Row: c.Row + o.DRow, Col: c.Col + o.DCol}
}

// Sub returns the offset leading from other to c.
func (c Coord) Sub(other Coord) Offset {
    return Offset{DRow: c.Row - other.Row, DCol: c.Col - other.Col}
}

// Odd rows are shifted half a cell to the right, so their diagonal
// neighbors lean right and those of even rows lean left.
var (
    oddRowOffsets = [6]Offset{
        {0, 1}, {0, -1}, {-1, 0}, {-1, 1}, {1, 0}, {1, 1},
    }
    evenRowOffsets = [6]Offset{
        {0, 1}, {0, -1}, {-1, 0}, {-1, -1}, {1, 0}, {1, -1},
    }
)

// NeighborOffsets returns the six neighbor offsets for a cell in row.
// The order is fixed and doubles as the tie-break order for move ranking.
func NeighborOffsets(row int) [6]Offset {
    if row%2 != 0 {
        return oddRowOffsets
    }
    return evenRowOffsets
}

// Neighbors returns the six cells around c. Some may lie outside the grid.
func Neighbors(c Coord) [6]Coord {
    var out [6]Coord
    for i, o := range NeighborOffsets(c.Row) {
        out[i] = c.Add(o)
    }
    return out
}

// IsAdjacent reports whether to is a neighbor of from under from's row parity.
func IsAdjacent(from, to Coord) bool {
    d := to.Sub(from)
    for _, o := range NeighborOffsets(from.Row) {
        if o == d {
            return true
        }
    }
    return false
}

// Point is a position in pixel space.
type Point struct {
    X float64
    Y float64
}

// Layout maps grid cells to pointy-top hexagons in pixel space.
type Layout struct {
    Radius  float64
    ColStep float64
    RowStep float64
    OriginX float64
    OriginY float64
}

// NewLayout builds the reference tiling for a hexagon radius: columns sit a
// hexagon width apart plus a small gap, rows overlap vertically.
func NewLayout(radius, originX, originY float64) Layout {
    return Layout{
        Radius:  radius,
        ColStep: math.Sqrt(3)*radius + 1.7,
        RowStep: 2*radius - 8,
        OriginX: originX,
        OriginY: originY,
    }
}

// CellCenter returns the pixel center of c. Odd rows shift right by half a
// row step.
func (l Layout) CellCenter(c Coord) Point {
    p := Point{
        X: float64(c.Col)*l.ColStep + l.OriginX,
        Y: float64(c.Row)*l.RowStep + l.OriginY,
    }
    if c.Row%2 != 0 {
        p.X += l.RowStep / 2
    }
    return p
}

// CellPolygon returns the six vertices of c, 60 degrees apart, starting
// straight below the center.
func (l Layout) CellPolygon(c Coord) [6]Point {
    center := l.CellCenter(c)
    var pts [6]Point
    for i := range pts {
        a := float64(60*i) * math.Pi / 180
        pts[i] = Point{
            X: center.X + l.Radius*math.Sin(a),
            Y: center.Y + l.Radius*math.Cos(a),
        }
    }
    return pts
}

// Contains reports whether p lies inside polygon using the even-odd rule.
func Contains(polygon []Point, p Point) bool {
    inside := false
    j := len(polygon) - 1
    for i := range polygon {
        a, b := polygon[i], polygon[j]
        if (a.Y > p.Y) != (b.Y > p.Y) &&
            p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
            inside = !inside
        }
        j = i
    }
    return inside
}

// PixelToGrid returns the first cell, in row-major order, whose hexagon
// contains p. Rows whose first cell starts right of p are skipped.
func (l Layout) PixelToGrid(p Point, rows, cols int) (Coord, bool) {
    for r := 0; r < rows; r++ {
        if p.X < l.CellCenter(Coord{Row: r}).X-l.ColStep/2 {
            continue
        }
        for c := 0; c < cols; c++ {
            cell := Coord{Row: r, Col: c}
            poly := l.CellPolygon(cell)
            if Contains(poly[:], p) {
                return cell, true
            }
        }
    }
    return Coord{}, false
}
