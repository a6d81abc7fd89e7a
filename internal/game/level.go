package game

// Level is the singleton per-level simulation state. Persisted through the
// object codec like an entity, including its entity back-references.
type Level struct {
	FrameNum int32
	Time     float32

	LevelName string
	MapName   string
	NextMap   string
	ChangeMap string

	IntermissionTime float32
	ExitIntermission bool

	// Noise tracking for monster AI.
	SightClient      *Entity
	SightEntity      *Entity
	SightEntityFrame int32
	SoundEntity      *Entity
	SoundEntityFrame int32

	// Entity currently being run by the tick loop.
	CurrentEntity *Entity

	TotalSecrets   int32
	FoundSecrets   int32
	TotalGoals     int32
	FoundGoals     int32
	TotalMonsters  int32
	KilledMonsters int32

	BodyQue int32

	// Ambient fog, driven by trigger_fog entities.
	FogActive  bool
	FogDensity float32
	FogGoal    float32
	FogColor   [3]float32
}
