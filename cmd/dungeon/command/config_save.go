package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-dungeon/internal/game"
	"github.com/pixil98/go-dungeon/internal/savegame"
	"github.com/pixil98/go-errors"
)

type SaveConfig struct {
	Dir              string `json:"dir"`
	AutosaveInterval string `json:"autosave_interval"`

	// Resume restores the saved session at startup when one exists.
	Resume bool `json:"resume"`
}

func (c *SaveConfig) validate() error {
	el := errors.NewErrorList()

	if c.Dir == "" {
		el.Add(fmt.Errorf("dir is required"))
	}
	if c.AutosaveInterval != "" {
		if _, err := time.ParseDuration(c.AutosaveInterval); err != nil {
			el.Add(fmt.Errorf("parsing autosave_interval: %w", err))
		}
	}

	return el.Err()
}

func (c *SaveConfig) BuildManager(w *game.World, tick time.Duration, opts ...savegame.ManagerOpt) (*savegame.Manager, error) {
	saver, err := savegame.NewSaver(w)
	if err != nil {
		return nil, fmt.Errorf("creating saver: %w", err)
	}

	if c.AutosaveInterval != "" {
		d, err := time.ParseDuration(c.AutosaveInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing autosave_interval: %w", err)
		}
		opts = append(opts, savegame.WithAutosaveInterval(d, tick))
	}

	return savegame.NewManager(saver, w, c.Dir, opts...), nil
}
