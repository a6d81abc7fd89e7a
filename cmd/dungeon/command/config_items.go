package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-dungeon/internal/game"
	"github.com/pixil98/go-dungeon/internal/storage"
)

type ItemsConfig struct {
	Path string `json:"path"`
}

func (c *ItemsConfig) validate() error {
	if c.Path == "" {
		return nil
	}
	if _, err := os.Stat(c.Path); err != nil {
		return fmt.Errorf("invalid items path %q: %w", c.Path, err)
	}
	return nil
}

// BuildItems loads the item catalog, or returns nil so the world falls back
// to the compiled-in defaults.
func (c *ItemsConfig) BuildItems() ([]game.Item, error) {
	if c.Path == "" {
		return nil, nil
	}

	catalog, err := storage.LoadCatalog[*game.ItemSpec](c.Path)
	if err != nil {
		return nil, fmt.Errorf("loading item catalog: %w", err)
	}

	return game.BuildItems(catalog), nil
}
