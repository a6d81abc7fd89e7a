package game

// Entity is one simulation actor. Instances live only inside World.Entities;
// Index is the slot in that array and is the identity other objects use to
// reference it, both live and in savegames.
type Entity struct {
	// Index is assigned at array allocation and survives frees; it is never
	// read from a savegame.
	Index int32
	InUse bool

	ClassName  string
	SpawnFlags int32

	Origin   [3]float32
	Angles   [3]float32
	Velocity [3]float32
	MoveDir  [3]float32
	Mins     [3]float32
	Maxs     [3]float32

	Speed   float32
	Accel   float32
	Decel   float32
	Mass    int32
	Gravity float32

	Health     int32
	MaxHealth  int32
	TakeDamage bool
	DeadFlag   int32
	Damage     int32

	Message    string
	Target     string
	TargetName string
	KillTarget string
	PathTarget string
	Team       string

	Wait      float32
	Delay     float32
	Random    float32
	Timestamp float32

	NextThink float32
	Think     ThinkFunc
	Touch     TouchFunc
	Use       UseFunc
	Pain      PainFunc
	Die       DieFunc

	Move      *MoveScript
	MoveFrame int32

	Owner      *Entity
	Enemy      *Entity
	OldEnemy   *Entity
	Activator  *Entity
	Goal       *Entity
	MoveTarget *Entity
	Chain      *Entity
	TeamChain  *Entity
	TeamMaster *Entity

	Client *Client
	Item   *Item

	// Spawn-time parameters, consumed by spawn functions and never persisted.
	Lip      int32
	Distance int32
	Height   int32

	// Spatial-index state, owned by the grid. Rebuilt from scratch after a
	// level load.
	Linked    bool
	LinkCount int32
	GridCell  int32
}

// ClearLinkState wipes the spatial-index bookkeeping so the grid never sees
// stale cell assignments when an entity is relinked after a load.
func (e *Entity) ClearLinkState() {
	e.Linked = false
	e.LinkCount = 0
	e.GridCell = 0
}
