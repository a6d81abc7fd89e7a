package game

import (
	"bytes"

	"github.com/google/uuid"
)

// GameLocals is cross-level session state. It is written to the session
// savegame verbatim with encoding/binary, so every field must be fixed-size
// and free of pointers.
type GameLocals struct {
	SessionID uuid.UUID

	HelpMessage1 [128]byte
	HelpMessage2 [128]byte
	SpawnPoint   [64]byte
	CurrentMap   [64]byte

	MaxClients  int32
	MaxEntities int32
	NumItems    int32
	ServerFlags int32

	AutoSaved bool
}

// SetSpawnPoint records the target spawn point name, truncating to the fixed
// field width.
func (g *GameLocals) SetSpawnPoint(name string) {
	g.SpawnPoint = [64]byte{}
	copy(g.SpawnPoint[:], name)
}

func (g *GameLocals) SpawnPointName() string {
	return fixedString(g.SpawnPoint[:])
}

// SetCurrentMap records the running level's map name so a resumed session
// knows which level file to restore.
func (g *GameLocals) SetCurrentMap(name string) {
	g.CurrentMap = [64]byte{}
	copy(g.CurrentMap[:], name)
}

func (g *GameLocals) CurrentMapName() string {
	return fixedString(g.CurrentMap[:])
}

func (g *GameLocals) SetHelpMessages(first, second string) {
	g.HelpMessage1 = [128]byte{}
	g.HelpMessage2 = [128]byte{}
	copy(g.HelpMessage1[:], first)
	copy(g.HelpMessage2[:], second)
}

func fixedString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}
