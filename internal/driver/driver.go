package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	// DefaultTickLength matches the simulation frame time.
	DefaultTickLength = 100 * time.Millisecond
)

// Manager is anything the driver advances once per frame.
type Manager interface {
	Tick(context.Context) error
}

// GameDriver runs the fixed-rate frame loop, ticking each manager in
// registration order. Everything that mutates the simulation runs on this
// single loop.
type GameDriver struct {
	tickLength time.Duration
	managers   []Manager
}

func NewGameDriver(managers []Manager, opts ...GameDriverOpt) *GameDriver {
	d := &GameDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *GameDriver) Start(ctx context.Context) error {
	slog.InfoContext(ctx, "frame loop starting",
		"tick", d.tickLength,
		"managers", len(d.managers))

	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := d.Tick(ctx); err != nil {
				return err
			}
		}
	}
}

// Tick advances every manager one frame. A manager error is fatal to the
// loop; the simulation must not keep running past a failed save or a broken
// world state.
func (d *GameDriver) Tick(ctx context.Context) error {
	for i, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return fmt.Errorf("manager %d: %w", i, err)
		}
	}
	return nil
}
