package domain

import "fmt"

// Config fixes the board dimensions, the obstacle count range used when a
// board is built, and the pixel layout of the hexagon tiling.
type Config struct {
    Rows         int
    Cols         int
    MinObstacles int
    MaxObstacles int
    HexRadius    float64
    OriginX      float64
    OriginY      float64
}

// DefaultConfig returns the reference 11x11 layout.
func DefaultConfig() Config {
    return Config{
        Rows:         11,
        Cols:         11,
        MinObstacles: 3,
        MaxObstacles: 7,
        HexRadius:    25,
        OriginX:      360,
        OriginY:      63,
    }
}

// Validate reports the first field that cannot produce a playable board.
func (c Config) Validate() error {
    if c.Rows < 3 || c.Cols < 3 {
        return fmt.Errorf("board must be at least 3x3, got %dx%d", c.Rows, c.Cols)
    }
    if c.MinObstacles < 0 || c.MaxObstacles < c.MinObstacles {
        return fmt.Errorf("invalid obstacle range [%d,%d]", c.MinObstacles, c.MaxObstacles)
    }
    // every cell but the mouse's may hold an obstacle
    if c.MaxObstacles > c.Rows*c.Cols-1 {
        return fmt.Errorf("obstacle range [%d,%d] exceeds %d free cells", c.MinObstacles, c.MaxObstacles, c.Rows*c.Cols-1)
    }
    if c.HexRadius <= 0 {
        return fmt.Errorf("hex radius must be positive, got %v", c.HexRadius)
    }
    return nil
}

// Start is the mouse's starting cell, the center of the grid.
func (c Config) Start() Coord {
    return Coord{Row: c.Rows / 2, Col: c.Cols / 2}
}

// Layout returns the pixel layout for the configured radius and origin.
func (c Config) Layout() Layout {
    return NewLayout(c.HexRadius, c.OriginX, c.OriginY)
}
