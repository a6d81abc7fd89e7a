package game

// ClientPersistent is the part of a client that survives level changes and is
// carried in the session savegame.
type ClientPersistent struct {
	UserName string

	// Connected is cleared after a level load; the network layer sets it
	// again when the player actually rejoins.
	Connected bool

	Health    int32
	MaxHealth int32
	Score     int32

	SelectedItem *Item
	SavedFlags   int32
}

// Client is per-connected-player state. The array has a fixed size of
// MaxClients; slot i belongs to the player entity at index i+1.
type Client struct {
	// Index is the slot in World.Clients; never read from a savegame.
	Index int32

	Pers ClientPersistent

	// Per-connection scratch, rebuilt on reconnect.
	Ping       int32
	ShowScores bool
}
