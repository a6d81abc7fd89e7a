package game

import (
	"fmt"

	"github.com/pixil98/go-dungeon/internal/registry"
)

// behaviorTable is the compiled-in enumeration of every routine that may be
// referenced from a persisted entity. Adding or removing entries invalidates
// existing savegames; the format version in the savegame package must be
// bumped alongside.
var behaviorTable = []struct {
	name string
	fn   any
}{
	{"aiStand", aiStand},
	{"aiWalk", aiWalk},
	{"walkerStand", walkerStand},
	{"walkerWalk", walkerWalk},
	{"walkerStartWalking", walkerStartWalking},
	{"walkerPain", walkerPain},
	{"walkerDie", walkerDie},
	{"bodyFade", bodyFade},
	{"doorUse", doorUse},
	{"doorGoUp", doorGoUp},
	{"doorGoDown", doorGoDown},
	{"doorTouch", doorTouch},
	{"touchItem", touchItem},
	{"crosslevelTargetThink", crosslevelTargetThink},
	{"fogThink", fogThink},
	{"fogUse", fogUse},
	{"playerPain", playerPain},
	{"playerDie", playerDie},
}

// moveTable enumerates every move script a persisted entity may point at.
var moveTable = []struct {
	name string
	move *MoveScript
}{
	{"walkerMoveStand", &walkerMoveStand},
	{"walkerMoveWalk", &walkerMoveWalk},
	{"walkerMoveDeath", &walkerMoveDeath},
}

// RegisterBehaviors populates a routine registry from the compiled-in table.
func RegisterBehaviors(t *registry.Table) error {
	for _, b := range behaviorTable {
		if err := t.Register(b.name, b.fn); err != nil {
			return fmt.Errorf("behavior table: %w", err)
		}
	}
	return nil
}

// RegisterMoves populates a move-script registry from the compiled-in table.
func RegisterMoves(t *registry.Table) error {
	for _, m := range moveTable {
		if err := t.Register(m.name, m.move); err != nil {
			return fmt.Errorf("move table: %w", err)
		}
	}
	return nil
}
