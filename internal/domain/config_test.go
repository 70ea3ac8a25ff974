package domain

import (
    "testing"

    "github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
    cfg := DefaultConfig()
    require.NoError(t, cfg.Validate())
    require.Equal(t, Coord{Row: 5, Col: 5}, cfg.Start())
    require.Equal(t, 25.0, cfg.Layout().Radius)
}

func TestConfigValidate(t *testing.T) {
    cases := map[string]func(*Config){
        "tiny board":        func(c *Config) { c.Rows = 2 },
        "negative min":      func(c *Config) { c.MinObstacles = -1 },
        "inverted range":    func(c *Config) { c.MinObstacles, c.MaxObstacles = 5, 4 },
        "too many":          func(c *Config) { c.MaxObstacles = 121 },
        "zero radius":       func(c *Config) { c.HexRadius = 0 },
    }
    for name, mutate := range cases {
        t.Run(name, func(t *testing.T) {
            cfg := DefaultConfig()
            mutate(&cfg)
            require.Error(t, cfg.Validate())
        })
    }
}
