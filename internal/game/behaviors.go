package game

// Behavior routines referenced from persisted entities. All of them are
// package-level functions so their addresses are stable for the lifetime of
// the process; savegames carry the registered names from tables.go.

// aiStand keeps a monster idling in place.
func aiStand(w *World, e *Entity, dist float32) {
	if e.Enemy != nil && e.Enemy.InUse {
		e.Goal = e.Enemy
	}
}

// aiWalk advances a monster along its move direction.
func aiWalk(w *World, e *Entity, dist float32) {
	for i := 0; i < 3; i++ {
		e.Origin[i] += e.MoveDir[i] * dist
	}
}

// runMoveScript advances an entity one frame through its current move script
// and reschedules the think for the next frame.
func runMoveScript(w *World, e *Entity) {
	m := e.Move
	if m == nil {
		return
	}

	if e.MoveFrame < m.FirstFrame || e.MoveFrame > m.LastFrame {
		e.MoveFrame = m.FirstFrame
	}

	frame := &m.Frames[e.MoveFrame-m.FirstFrame]
	if frame.AI != nil {
		frame.AI(w, e, frame.Dist)
	}
	if frame.Think != nil {
		frame.Think(w, e)
	}

	if e.MoveFrame == m.LastFrame {
		e.MoveFrame = m.FirstFrame
		if m.EndFunc != nil {
			m.EndFunc(w, e)
		}
	} else {
		e.MoveFrame++
	}

	e.NextThink = w.Level.Time + frameTime
}

// walkerStand is the idle think for monster_walker.
func walkerStand(w *World, e *Entity) {
	e.Move = &walkerMoveStand
	runMoveScript(w, e)
}

// walkerWalk is the patrol think for monster_walker.
func walkerWalk(w *World, e *Entity) {
	e.Move = &walkerMoveWalk
	runMoveScript(w, e)
}

// walkerStartWalking flips a standing walker into its patrol loop.
func walkerStartWalking(w *World, e *Entity) {
	e.MoveFrame = walkerMoveWalk.FirstFrame
	e.Think = walkerWalk
	e.NextThink = w.Level.Time + frameTime
}

func walkerPain(w *World, e *Entity, other *Entity, kick float32, damage int32) {
	if other != nil {
		e.Enemy = other
	}
}

func walkerDie(w *World, e *Entity, inflictor, attacker *Entity, damage int32) {
	e.DeadFlag = 1
	e.TakeDamage = false
	e.Move = &walkerMoveDeath
	e.MoveFrame = walkerMoveDeath.FirstFrame
	e.Think = bodyFade
	e.NextThink = w.Level.Time + 10
	w.Level.KilledMonsters++
}

// bodyFade removes a corpse after its fade delay.
func bodyFade(w *World, e *Entity) {
	w.Free(e)
}

// doorUse starts a door opening; the door remembers who triggered it.
func doorUse(w *World, e *Entity, other, activator *Entity) {
	e.Activator = activator
	e.Think = doorGoUp
	e.NextThink = w.Level.Time + frameTime
}

// doorGoUp moves the door toward its open position and schedules the close.
func doorGoUp(w *World, e *Entity) {
	for i := 0; i < 3; i++ {
		e.Origin[i] += e.MoveDir[i] * e.Speed
	}
	e.Think = doorGoDown
	e.NextThink = w.Level.Time + e.Wait
}

// doorGoDown returns the door to its closed position.
func doorGoDown(w *World, e *Entity) {
	for i := 0; i < 3; i++ {
		e.Origin[i] -= e.MoveDir[i] * e.Speed
	}
	e.Think = nil
	e.NextThink = 0
}

// doorTouch fires the door when something walks into its trigger volume.
func doorTouch(w *World, e *Entity, other *Entity) {
	if other.Client == nil {
		return
	}
	doorUse(w, e, other, other)
}

// touchItem gives the item to the toucher and removes the pickup.
func touchItem(w *World, e *Entity, other *Entity) {
	if other.Client == nil || e.Item == nil {
		return
	}
	other.Client.Pers.SelectedItem = e.Item
	w.Free(e)
}

// crosslevelTargetThink fires a trigger carried across a level change. The
// load orchestrator schedules this to run almost immediately after a level
// is restored.
func crosslevelTargetThink(w *World, e *Entity) {
	w.UseTargets(e, e)
	w.Free(e)
}

// fogThink eases the ambient fog density toward the goal set by trigger_fog.
func fogThink(w *World, e *Entity) {
	lvl := &w.Level
	diff := lvl.FogGoal - lvl.FogDensity

	if diff > -0.001 && diff < 0.001 {
		lvl.FogDensity = lvl.FogGoal
		e.Think = nil
		e.NextThink = 0
		return
	}

	lvl.FogDensity += diff * 0.1
	lvl.FogActive = lvl.FogDensity > 0
	e.NextThink = lvl.Time + frameTime
}

// fogUse starts a fog transition toward the trigger's configured density.
func fogUse(w *World, e *Entity, other, activator *Entity) {
	w.Level.FogGoal = e.Random
	w.Level.FogColor = e.MoveDir
	w.Level.FogActive = true
	e.Think = fogThink
	e.NextThink = w.Level.Time + frameTime
}

func playerPain(w *World, e *Entity, other *Entity, kick float32, damage int32) {
	if e.Client != nil && damage > 0 {
		e.Client.Pers.Health = e.Health
	}
}

func playerDie(w *World, e *Entity, inflictor, attacker *Entity, damage int32) {
	e.DeadFlag = 1
	e.TakeDamage = false
	if e.Client != nil {
		e.Client.Pers.Health = 0
	}
}
