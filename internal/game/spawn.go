package game

import "fmt"

type spawnFunc func(*World, *Entity)

// spawnTable maps classnames to their spawn functions, the same shape as the
// behavior tables: fixed at compile time.
var spawnTable = map[string]spawnFunc{
	"monster_walker":           spawnWalker,
	"func_door":                spawnDoor,
	"item_pickup":              spawnItemPickup,
	"target_crosslevel_target": spawnCrosslevelTarget,
	"trigger_fog":              spawnFog,
	"info_player_start":        spawnPlayerStart,
}

// SpawnEntity allocates a slot and runs the spawn function for classname.
func (w *World) SpawnEntity(classname string) (*Entity, error) {
	fn, ok := spawnTable[classname]
	if !ok {
		return nil, fmt.Errorf("unknown classname %q", classname)
	}

	e, err := w.Spawn()
	if err != nil {
		return nil, fmt.Errorf("spawning %q: %w", classname, err)
	}
	e.ClassName = classname
	fn(w, e)
	w.Grid.Link(e)

	return e, nil
}

func spawnWalker(w *World, e *Entity) {
	e.Health = 60
	e.MaxHealth = 60
	e.TakeDamage = true
	e.Mass = 200
	e.MoveDir = [3]float32{1, 0, 0}
	e.Move = &walkerMoveStand
	e.MoveFrame = walkerMoveStand.FirstFrame
	e.Think = walkerStand
	e.Pain = walkerPain
	e.Die = walkerDie
	e.NextThink = w.Level.Time + frameTime
	w.Level.TotalMonsters++
}

func spawnDoor(w *World, e *Entity) {
	if e.Speed == 0 {
		e.Speed = 100
	}
	if e.Wait == 0 {
		e.Wait = 3
	}
	// Lip is spawn-time only: folded into the travel distance here, gone
	// after this function returns.
	e.MoveDir = [3]float32{0, 0, 1}
	e.Distance = e.Height - e.Lip
	e.Use = doorUse
	e.Touch = doorTouch
}

func spawnItemPickup(w *World, e *Entity) {
	if len(w.Items) > 0 && e.Item == nil {
		e.Item = &w.Items[0]
	}
	e.Touch = touchItem
}

func spawnCrosslevelTarget(w *World, e *Entity) {
	if e.Delay == 0 {
		e.Delay = 1
	}
	e.Think = crosslevelTargetThink
}

func spawnFog(w *World, e *Entity) {
	if e.Random == 0 {
		e.Random = 0.5
	}
	e.MoveDir = [3]float32{0.6, 0.6, 0.6}
	e.Use = fogUse
}

func spawnPlayerStart(w *World, e *Entity) {
	e.Mins = [3]float32{-16, -16, -24}
	e.Maxs = [3]float32{16, 16, 32}
}

// SpawnBaseline populates a freshly allocated world with the fixed test
// level for mapName: a patrol walker, a door pair, a fog trigger, and a
// cross-level target.
func (w *World) SpawnBaseline(mapName string) error {
	w.Level = Level{MapName: mapName, LevelName: mapName}

	walker, err := w.SpawnEntity("monster_walker")
	if err != nil {
		return err
	}
	walker.Origin = [3]float32{200, 200, 0}
	walker.TargetName = "patrol-1"

	door, err := w.SpawnEntity("func_door")
	if err != nil {
		return err
	}
	door.Origin = [3]float32{400, 0, 0}
	door.TargetName = "door-1"
	door.Team = "doors"

	fog, err := w.SpawnEntity("trigger_fog")
	if err != nil {
		return err
	}
	fog.Target = "door-1"

	cross, err := w.SpawnEntity("target_crosslevel_target")
	if err != nil {
		return err
	}
	cross.Target = "patrol-1"
	cross.Delay = 2

	return nil
}
