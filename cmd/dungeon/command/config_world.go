package command

import (
	"fmt"

	"github.com/pixil98/go-dungeon/internal/game"
	"github.com/pixil98/go-errors"
)

type WorldConfig struct {
	MaxClients  int32  `json:"max_clients"`
	MaxEntities int32  `json:"max_entities"`
	Map         string `json:"map"`
}

func (c *WorldConfig) validate() error {
	el := errors.NewErrorList()

	cfg := c.gameConfig()
	el.Add(cfg.Validate())

	if c.Map == "" {
		el.Add(fmt.Errorf("map is required"))
	}

	return el.Err()
}

func (c *WorldConfig) gameConfig() game.Config {
	cfg := game.Config{
		MaxClients:  c.MaxClients,
		MaxEntities: c.MaxEntities,
	}
	if cfg.MaxClients == 0 {
		cfg.MaxClients = 8
	}
	if cfg.MaxEntities == 0 {
		cfg.MaxEntities = 1024
	}
	return cfg
}

func (c *WorldConfig) BuildWorld(items []game.Item) (*game.World, error) {
	w, err := game.NewWorld(c.gameConfig(), items)
	if err != nil {
		return nil, fmt.Errorf("creating world: %w", err)
	}
	return w, nil
}
