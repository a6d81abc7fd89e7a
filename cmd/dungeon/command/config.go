package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval string      `json:"tick_interval"`
	World        WorldConfig `json:"world"`
	Save         SaveConfig  `json:"save"`
	Nats         NatsConfig  `json:"nats"`
	Items        ItemsConfig `json:"items"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d < 10*time.Millisecond {
			el.Add(fmt.Errorf("tick_interval must be at least 10ms"))
		}
	}

	el.Add(c.World.validate())
	el.Add(c.Save.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Items.validate())

	return el.Err()
}
