package command

import (
	"context"
	"fmt"
	"time"

	"github.com/pixil98/go-dungeon/internal/driver"
	"github.com/pixil98/go-dungeon/internal/messaging"
	"github.com/pixil98/go-dungeon/internal/savegame"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	tick := driver.DefaultTickLength
	if cfg.TickInterval != "" {
		d, err := time.ParseDuration(cfg.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing tick_interval: %w", err)
		}
		tick = d
	}

	// Create the message bus
	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	// Create the world
	items, err := cfg.Items.BuildItems()
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	world, err := cfg.World.BuildWorld(items)
	if err != nil {
		return nil, fmt.Errorf("creating world: %w", err)
	}

	// Create the savegame manager
	saveManager, err := cfg.Save.BuildManager(world, tick,
		savegame.WithNotifier(messaging.NewEventPublisher(natsServer)),
		savegame.WithRequests(natsServer),
	)
	if err != nil {
		return nil, fmt.Errorf("creating save manager: %w", err)
	}

	// Resume the saved session, or start the configured map fresh
	if cfg.Save.Resume && saveManager.HasSession() {
		if err := saveManager.LoadAll(context.Background()); err != nil {
			return nil, fmt.Errorf("resuming session: %w", err)
		}
	} else {
		if err := world.SpawnBaseline(cfg.World.Map); err != nil {
			return nil, fmt.Errorf("spawning map %q: %w", cfg.World.Map, err)
		}
	}

	// Setup the frame loop
	gameDriver := driver.NewGameDriver(
		[]driver.Manager{world, saveManager},
		driver.WithTickLength(tick),
	)

	return service.WorkerList{
		"nats":   natsServer,
		"driver": gameDriver,
	}, nil
}
