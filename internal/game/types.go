package game

// Behavior routine signatures. Persisted entities reference these by
// registered name; only package-level functions may be assigned to a
// persistable field.
type (
	ThinkFunc func(*World, *Entity)
	TouchFunc func(*World, *Entity, *Entity)
	UseFunc   func(*World, *Entity, *Entity, *Entity)
	PainFunc  func(*World, *Entity, *Entity, float32, int32)
	DieFunc   func(*World, *Entity, *Entity, *Entity, int32)

	// AIFunc advances a monster within one move-script frame.
	AIFunc func(*World, *Entity, float32)
)

// MoveFrame is one frame of a scripted animation: an optional AI step with
// its move distance and an optional per-frame think.
type MoveFrame struct {
	AI    AIFunc
	Dist  float32
	Think ThinkFunc
}

// MoveScript is a statically-declared frame sequence. Entities reference
// move scripts by pointer; the pointers are registered in the move table and
// persisted by name.
type MoveScript struct {
	FirstFrame int32
	LastFrame  int32
	Frames     []MoveFrame
	EndFunc    ThinkFunc
}
