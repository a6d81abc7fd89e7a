package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-dungeon/internal/arena"
	"github.com/pixil98/go-dungeon/internal/registry"
)

const (
	// Identity is stamped into every savegame; a save from a different game
	// is refused on load.
	Identity = "go-dungeon"

	// frameTime is the simulation timestep in seconds.
	frameTime = 0.1
)

type Config struct {
	MaxClients  int32 `json:"max_clients"`
	MaxEntities int32 `json:"max_entities"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.MaxClients < 1 {
		el.Add(fmt.Errorf("max_clients must be at least 1"))
	}
	if c.MaxEntities < c.MaxClients+1 {
		el.Add(fmt.Errorf("max_entities must exceed max_clients"))
	}

	return el.Err()
}

// World owns the whole simulation graph: the entity and client arrays, the
// level and session singletons, the item list, and the two behavior
// registries. Registries are populated and sorted once here and read-only
// afterwards.
type World struct {
	Game  GameLocals
	Level Level

	Entities []Entity
	Clients  []Client
	Items    []Item

	// NumEntities is the high-water mark: slots below it are either in use
	// or were at some point this level.
	NumEntities int32

	Routines *registry.Table
	Moves    *registry.Table
	Arena    *arena.Arena
	Grid     *Grid
}

// NewWorld builds a world with freshly registered behavior tables and empty
// entity/client arrays. Items may be nil, in which case the compiled-in
// defaults are used.
func NewWorld(cfg Config, items []Item) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("world config: %w", err)
	}
	if items == nil {
		items = DefaultItems()
	}

	w := &World{
		Items:    items,
		Routines: registry.NewTable(),
		Moves:    registry.NewTable(),
		Arena:    arena.New(),
		Grid:     NewGrid(),
	}

	if err := RegisterBehaviors(w.Routines); err != nil {
		return nil, err
	}
	if err := RegisterMoves(w.Moves); err != nil {
		return nil, err
	}
	w.Routines.Sort()
	w.Moves.Sort()

	w.Game.SessionID = uuid.New()
	w.Game.MaxClients = cfg.MaxClients
	w.Game.MaxEntities = cfg.MaxEntities
	w.Game.NumItems = int32(len(items))

	w.AllocArrays()

	return w, nil
}

// AllocArrays (re)allocates the entity and client arrays at the configured
// capacities. Slot 0 is the world entity; slots 1..MaxClients belong to the
// player entities, paired with client slots 0..MaxClients-1.
func (w *World) AllocArrays() {
	w.Entities = make([]Entity, w.Game.MaxEntities)
	for i := range w.Entities {
		w.Entities[i].Index = int32(i)
	}

	w.Clients = make([]Client, w.Game.MaxClients)
	for i := range w.Clients {
		w.Clients[i].Index = int32(i)
	}

	w.NumEntities = w.Game.MaxClients + 1
	w.Entities[0].InUse = true
	w.Entities[0].ClassName = "worldspawn"
}

// Spawn returns a free entity slot, reusing freed slots before growing the
// high-water mark.
func (w *World) Spawn() (*Entity, error) {
	for i := w.Game.MaxClients + 1; i < w.NumEntities; i++ {
		if !w.Entities[i].InUse {
			return w.initSlot(i), nil
		}
	}

	if w.NumEntities >= w.Game.MaxEntities {
		return nil, fmt.Errorf("no free entity slots (max %d)", w.Game.MaxEntities)
	}

	i := w.NumEntities
	w.NumEntities++
	return w.initSlot(i), nil
}

func (w *World) initSlot(i int32) *Entity {
	e := &w.Entities[i]
	*e = Entity{Index: i, InUse: true}
	return e
}

// Free unlinks an entity and returns its slot to the pool.
func (w *World) Free(e *Entity) {
	w.Grid.Unlink(e)
	idx := e.Index
	*e = Entity{Index: idx}
}

// PlayerEntity returns the entity paired with client slot i.
func (w *World) PlayerEntity(i int32) *Entity {
	return &w.Entities[i+1]
}

// FindByTargetName returns the first in-use entity whose TargetName matches.
func (w *World) FindByTargetName(name string) *Entity {
	if name == "" {
		return nil
	}
	for i := int32(0); i < w.NumEntities; i++ {
		e := &w.Entities[i]
		if e.InUse && e.TargetName == name {
			return e
		}
	}
	return nil
}

// UseTargets fires every entity targeted by e, and frees everything named by
// its kill target.
func (w *World) UseTargets(e, activator *Entity) {
	if e.KillTarget != "" {
		for t := w.FindByTargetName(e.KillTarget); t != nil; t = w.FindByTargetName(e.KillTarget) {
			w.Free(t)
		}
	}

	if e.Target == "" {
		return
	}
	for i := int32(0); i < w.NumEntities; i++ {
		t := &w.Entities[i]
		if !t.InUse || t.TargetName != e.Target {
			continue
		}
		if t.Use != nil {
			t.Use(w, t, e, activator)
		}
	}
}

// SaveClientData copies each connected player entity's volatile stats back
// into its client's persistent block, so a session save taken between levels
// carries them forward.
func (w *World) SaveClientData() {
	for i := int32(0); i < w.Game.MaxClients; i++ {
		e := w.PlayerEntity(i)
		if !e.InUse {
			continue
		}
		c := &w.Clients[i]
		c.Pers.Health = e.Health
		c.Pers.MaxHealth = e.MaxHealth
	}
}

// FetchClientData restores a player entity's stats from its client block,
// the inverse of SaveClientData, applied when the player entity is placed
// into a freshly loaded level.
func (w *World) FetchClientData(e *Entity) {
	if e.Client == nil {
		return
	}
	e.Health = e.Client.Pers.Health
	e.MaxHealth = e.Client.Pers.MaxHealth
}

// ConnectPlayer places client slot i's player entity into the level,
// restoring carried stats from the persistent block. The network layer calls
// this when a player joins, or rejoins after a level load cleared Connected.
func (w *World) ConnectPlayer(i int32, name string) (*Entity, error) {
	if i < 0 || i >= w.Game.MaxClients {
		return nil, fmt.Errorf("client slot %d out of range (max %d)", i, w.Game.MaxClients)
	}

	c := &w.Clients[i]
	c.Pers.Connected = true
	if name != "" {
		c.Pers.UserName = name
	}

	e := w.PlayerEntity(i)
	e.InUse = true
	e.ClassName = "player"
	e.Client = c
	w.FetchClientData(e)
	return e, nil
}

// Tick advances the level clock one frame and runs every entity whose think
// is due. Implements the driver Manager interface.
func (w *World) Tick(ctx context.Context) error {
	w.Level.FrameNum++
	w.Level.Time = float32(w.Level.FrameNum) * frameTime

	for i := int32(0); i < w.NumEntities; i++ {
		e := &w.Entities[i]
		if !e.InUse {
			continue
		}
		w.Level.CurrentEntity = e

		if e.Think == nil || e.NextThink <= 0 || e.NextThink > w.Level.Time {
			continue
		}
		e.NextThink = 0
		e.Think(w, e)
	}
	w.Level.CurrentEntity = nil

	if w.Level.FrameNum%600 == 0 {
		slog.DebugContext(ctx, "world tick", "frame", w.Level.FrameNum, "entities", w.NumEntities)
	}

	return nil
}
