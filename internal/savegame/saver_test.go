package savegame

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-dungeon/internal/game"
)

func newTestWorld(t *testing.T) *game.World {
	t.Helper()
	w, err := game.NewWorld(game.Config{MaxClients: 2, MaxEntities: 16}, nil)
	if err != nil {
		t.Fatalf("building world: %v", err)
	}
	return w
}

func newTestSaver(t *testing.T, w *game.World) *Saver {
	t.Helper()
	s, err := NewSaver(w)
	if err != nil {
		t.Fatalf("building saver: %v", err)
	}
	return s
}

func TestGameRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "game.sav")

	w1 := newTestWorld(t)
	w1.Game.SetSpawnPoint("start-west")
	w1.Game.SetHelpMessages("find the red key", "open the vault")
	w1.Game.ServerFlags = 7

	p := w1.PlayerEntity(0)
	p.InUse = true
	p.Health = 42
	p.MaxHealth = 100

	w1.Clients[0].Pers.UserName = "alice"
	w1.Clients[0].Pers.Connected = true
	w1.Clients[0].Pers.Score = 5
	w1.Clients[0].Pers.SelectedItem = &w1.Items[2]
	w1.Clients[0].Pers.SavedFlags = 3

	s1 := newTestSaver(t, w1)
	if err := s1.WriteGame(ctx, path, false); err != nil {
		t.Fatalf("writing game: %v", err)
	}

	w2 := newTestWorld(t)
	s2 := newTestSaver(t, w2)
	if err := s2.ReadGame(ctx, path); err != nil {
		t.Fatalf("reading game: %v", err)
	}

	testutil.AssertEqual(t, "session id", w2.Game.SessionID, w1.Game.SessionID)
	testutil.AssertEqual(t, "spawn point", w2.Game.SpawnPointName(), "start-west")
	testutil.AssertEqual(t, "server flags", w2.Game.ServerFlags, int32(7))
	testutil.AssertEqual(t, "autosaved", w2.Game.AutoSaved, false)

	got := &w2.Clients[0]
	testutil.AssertEqual(t, "netname", got.Pers.UserName, "alice")
	testutil.AssertEqual(t, "connected", got.Pers.Connected, true)
	testutil.AssertEqual(t, "score", got.Pers.Score, int32(5))
	testutil.AssertEqual(t, "savedflags", got.Pers.SavedFlags, int32(3))

	// SaveClientData ran before the write, so the deliberate save carries
	// the live entity stats, not the stale client block.
	testutil.AssertEqual(t, "health", got.Pers.Health, int32(42))
	testutil.AssertEqual(t, "max health", got.Pers.MaxHealth, int32(100))

	if got.Pers.SelectedItem != &w2.Items[2] {
		t.Errorf("selected item = %p, want slot 2 of the loading world's list", got.Pers.SelectedItem)
	}
	if w2.Clients[1].Pers.SelectedItem != nil {
		t.Errorf("untouched client's selected item = %v, want nil", w2.Clients[1].Pers.SelectedItem)
	}
}

func TestGameAutosaveSkipsClientFold(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "game.sav")

	w1 := newTestWorld(t)
	p := w1.PlayerEntity(0)
	p.InUse = true
	p.Health = 13
	w1.Clients[0].Pers.Health = 77

	s1 := newTestSaver(t, w1)
	if err := s1.WriteGame(ctx, path, true); err != nil {
		t.Fatalf("writing game: %v", err)
	}
	testutil.AssertEqual(t, "in-memory flag cleared", w1.Game.AutoSaved, false)

	w2 := newTestWorld(t)
	s2 := newTestSaver(t, w2)
	if err := s2.ReadGame(ctx, path); err != nil {
		t.Fatalf("reading game: %v", err)
	}

	testutil.AssertEqual(t, "autosaved", w2.Game.AutoSaved, true)
	testutil.AssertEqual(t, "client block unfolded", w2.Clients[0].Pers.Health, int32(77))
}

func TestGameHeaderGuard(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	good := filepath.Join(dir, "game.sav")

	w1 := newTestWorld(t)
	s1 := newTestSaver(t, w1)
	if err := s1.WriteGame(ctx, good, false); err != nil {
		t.Fatalf("writing game: %v", err)
	}

	tests := []struct {
		name    string
		slot    int
		expDiag string
	}{
		{"version", 0, "incompatible version"},
		{"game", 1, "another game"},
		{"os", 2, "another os"},
		{"arch", 3, "another architecture"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := os.ReadFile(good)
			if err != nil {
				t.Fatalf("reading save: %v", err)
			}
			data[tt.slot*tagWidth] ^= 0xff
			bad := filepath.Join(dir, "bad_"+tt.name+".sav")
			if err := os.WriteFile(bad, data, 0o644); err != nil {
				t.Fatalf("writing corrupted save: %v", err)
			}

			w2 := newTestWorld(t)
			w2.Clients[0].Pers.UserName = "untouched"
			s2 := newTestSaver(t, w2)

			err = s2.ReadGame(ctx, bad)
			if !errors.Is(err, ErrIncompatibleSave) {
				t.Fatalf("err = %v, want ErrIncompatibleSave", err)
			}
			testutil.AssertErrorContains(t, err, tt.expDiag)

			// A rejected header must leave the world alone.
			testutil.AssertEqual(t, "client state", w2.Clients[0].Pers.UserName, "untouched")
		})
	}
}

func TestGameCapacityMismatch(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "game.sav")

	w1 := newTestWorld(t)
	s1 := newTestSaver(t, w1)
	if err := s1.WriteGame(ctx, path, false); err != nil {
		t.Fatalf("writing game: %v", err)
	}

	w2, err := game.NewWorld(game.Config{MaxClients: 2, MaxEntities: 32}, nil)
	if err != nil {
		t.Fatalf("building world: %v", err)
	}
	s2 := newTestSaver(t, w2)

	err = s2.ReadGame(ctx, path)
	if !errors.Is(err, ErrIncompatibleSave) {
		t.Fatalf("err = %v, want ErrIncompatibleSave", err)
	}
	testutil.AssertErrorContains(t, err, "capacities")

	// The abort must not leave the file's capacities behind in memory.
	testutil.AssertEqual(t, "max clients kept", w2.Game.MaxClients, int32(2))
	testutil.AssertEqual(t, "max entities kept", w2.Game.MaxEntities, int32(32))
}

func TestLevelRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "level.sav")

	w1 := newTestWorld(t)
	w1.Level.MapName = "crypt1"
	w1.Level.Time = 12.5
	w1.Level.FrameNum = 125
	w1.Level.FogActive = true
	w1.Level.FogColor = [3]float32{0.2, 0.3, 0.4}

	walker, err := w1.SpawnEntity("monster_walker")
	if err != nil {
		t.Fatalf("spawning walker: %v", err)
	}
	gap, err := w1.SpawnEntity("monster_walker")
	if err != nil {
		t.Fatalf("spawning gap walker: %v", err)
	}
	door, err := w1.SpawnEntity("func_door")
	if err != nil {
		t.Fatalf("spawning door: %v", err)
	}
	w1.Free(gap)

	walker.Origin = [3]float32{128, 256, 0}
	walker.TargetName = "patrol-1"
	walker.Enemy = w1.PlayerEntity(0)
	walker.Item = &w1.Items[1]

	door.Target = "patrol-1"
	door.Message = "the door grinds open"
	door.Activator = walker
	door.Lip = 44

	w1.Level.SightEntity = walker

	s1 := newTestSaver(t, w1)
	if err := s1.WriteLevel(ctx, path); err != nil {
		t.Fatalf("writing level: %v", err)
	}

	w2 := newTestWorld(t)
	w2.Entities[7].InUse = true
	w2.Entities[7].Health = 99
	w2.Clients[1].Pers.Connected = true
	s2 := newTestSaver(t, w2)
	if err := s2.ReadLevel(ctx, path); err != nil {
		t.Fatalf("reading level: %v", err)
	}

	testutil.AssertEqual(t, "map name", w2.Level.MapName, "crypt1")
	testutil.AssertEqual(t, "level time", w2.Level.Time, float32(12.5))
	testutil.AssertEqual(t, "fog active", w2.Level.FogActive, true)
	testutil.AssertEqual(t, "fog color", w2.Level.FogColor, [3]float32{0.2, 0.3, 0.4})
	testutil.AssertEqual(t, "entity count", w2.NumEntities, w1.NumEntities)

	wi, di, gi := walker.Index, door.Index, gap.Index
	got := &w2.Entities[wi]
	testutil.AssertEqual(t, "walker in use", got.InUse, true)
	testutil.AssertEqual(t, "walker classname", got.ClassName, "monster_walker")
	testutil.AssertEqual(t, "walker origin", got.Origin, [3]float32{128, 256, 0})
	testutil.AssertEqual(t, "walker targetname", got.TargetName, "patrol-1")
	testutil.AssertEqual(t, "gap slot free", w2.Entities[gi].InUse, false)
	testutil.AssertEqual(t, "stale slot wiped", w2.Entities[7].InUse, false)
	testutil.AssertEqual(t, "stale slot health", w2.Entities[7].Health, int32(0))

	// Routine and move references come back as the loading process's own
	// registered values.
	if got.Think == nil {
		t.Fatal("walker think not restored")
	}
	name, ok := w2.Routines.AddressOf(got.Think)
	if !ok {
		t.Fatal("restored think is not a registered routine")
	}
	testutil.AssertEqual(t, "walker think", name, "walkerStand")
	moveName, ok := w2.Moves.AddressOf(got.Move)
	if !ok {
		t.Fatal("restored move is not a registered script")
	}
	testutil.AssertEqual(t, "walker move", moveName, "walkerMoveStand")
	if got.Touch != nil {
		t.Error("walker touch should stay nil")
	}

	gotDoor := &w2.Entities[di]
	testutil.AssertEqual(t, "door message", gotDoor.Message, "the door grinds open")
	if gotDoor.Activator != got {
		t.Errorf("door activator = %p, want the restored walker at slot %d", gotDoor.Activator, wi)
	}
	if got.Enemy != w2.PlayerEntity(0) {
		t.Errorf("walker enemy = %p, want player entity 0", got.Enemy)
	}
	if got.Item != &w2.Items[1] {
		t.Errorf("walker item = %p, want the loading world's item 1", got.Item)
	}
	if w2.Level.SightEntity != got {
		t.Errorf("sight entity = %p, want the restored walker", w2.Level.SightEntity)
	}

	// Spawn-time fields never cross a save boundary.
	testutil.AssertEqual(t, "door lip", gotDoor.Lip, int32(0))

	// Restored entities are relinked into the grid.
	testutil.AssertEqual(t, "walker linked", got.Linked, true)
	testutil.AssertEqual(t, "walker link count", got.LinkCount, int32(1))
	found := false
	for _, e := range w2.Grid.InCell(got.Origin) {
		if e == got {
			found = true
		}
	}
	testutil.AssertEqual(t, "walker in grid cell", found, true)

	// Clients reattach to their entities but stay disconnected until the
	// player actually rejoins.
	if w2.PlayerEntity(0).Client != &w2.Clients[0] {
		t.Error("player entity 0 not reattached to client 0")
	}
	testutil.AssertEqual(t, "client 1 disconnected", w2.Clients[1].Pers.Connected, false)
}

func TestLevelCrosslevelFixup(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "level.sav")

	w1 := newTestWorld(t)
	w1.Level.Time = 10

	trigger, err := w1.SpawnEntity("target_crosslevel_target")
	if err != nil {
		t.Fatalf("spawning trigger: %v", err)
	}
	trigger.Delay = 1.5
	trigger.NextThink = 0

	s1 := newTestSaver(t, w1)
	if err := s1.WriteLevel(ctx, path); err != nil {
		t.Fatalf("writing level: %v", err)
	}

	w2 := newTestWorld(t)
	s2 := newTestSaver(t, w2)
	if err := s2.ReadLevel(ctx, path); err != nil {
		t.Fatalf("reading level: %v", err)
	}

	got := &w2.Entities[trigger.Index]
	testutil.AssertEqual(t, "trigger rescheduled", got.NextThink, float32(11.5))
}

func TestLevelLayoutMismatch(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "level.sav")

	w1 := newTestWorld(t)
	s1 := newTestSaver(t, w1)
	if err := s1.WriteLevel(ctx, path); err != nil {
		t.Fatalf("writing level: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading save: %v", err)
	}
	binary.LittleEndian.PutUint32(data, uint32(s1.EntityBlockSize()+4))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing corrupted save: %v", err)
	}

	w2 := newTestWorld(t)
	s2 := newTestSaver(t, w2)
	err = s2.ReadLevel(ctx, path)
	if !errors.Is(err, ErrLayoutMismatch) {
		t.Fatalf("err = %v, want ErrLayoutMismatch", err)
	}
}

func TestLevelTruncated(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "level.sav")

	w1 := newTestWorld(t)
	if _, err := w1.SpawnEntity("monster_walker"); err != nil {
		t.Fatalf("spawning walker: %v", err)
	}
	s1 := newTestSaver(t, w1)
	if err := s1.WriteLevel(ctx, path); err != nil {
		t.Fatalf("writing level: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading save: %v", err)
	}
	if err := os.WriteFile(path, data[:len(data)/2], 0o644); err != nil {
		t.Fatalf("truncating save: %v", err)
	}

	w2 := newTestWorld(t)
	s2 := newTestSaver(t, w2)
	err = s2.ReadLevel(ctx, path)
	if !errors.Is(err, ErrCorruptStream) {
		t.Fatalf("err = %v, want ErrCorruptStream", err)
	}
}

func TestLevelBadEntityIndex(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "level.sav")

	w := newTestWorld(t)
	s := newTestSaver(t, w)

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, s.EntityBlockSize()); err != nil {
		t.Fatalf("writing check value: %v", err)
	}
	if err := s.codec.writeObject(&buf, s.levelFields, &w.Level); err != nil {
		t.Fatalf("writing level object: %v", err)
	}
	if err := binary.Write(&buf, binary.LittleEndian, int32(9999)); err != nil {
		t.Fatalf("writing bogus index: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing save: %v", err)
	}

	err := s.ReadLevel(ctx, path)
	if !errors.Is(err, ErrCorruptStream) {
		t.Fatalf("err = %v, want ErrCorruptStream", err)
	}
	testutil.AssertErrorContains(t, err, "out of range")
}

func TestLevelDuplicateEntityIndex(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "level.sav")

	w := newTestWorld(t)
	s := newTestSaver(t, w)

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, s.EntityBlockSize()); err != nil {
		t.Fatalf("writing check value: %v", err)
	}
	if err := s.codec.writeObject(&buf, s.levelFields, &w.Level); err != nil {
		t.Fatalf("writing level object: %v", err)
	}
	// The worldspawn record twice, both claiming slot 0.
	for i := 0; i < 2; i++ {
		if err := binary.Write(&buf, binary.LittleEndian, int32(0)); err != nil {
			t.Fatalf("writing entity index: %v", err)
		}
		if err := s.codec.writeObject(&buf, s.entityFields, &w.Entities[0]); err != nil {
			t.Fatalf("writing entity payload: %v", err)
		}
	}
	if err := binary.Write(&buf, binary.LittleEndian, entitySentinel); err != nil {
		t.Fatalf("writing sentinel: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing save: %v", err)
	}

	err := s.ReadLevel(ctx, path)
	if !errors.Is(err, ErrCorruptStream) {
		t.Fatalf("err = %v, want ErrCorruptStream", err)
	}
	testutil.AssertErrorContains(t, err, "duplicate entity index 0")
}

func TestLevelUnresolvedRoutine(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "level.sav")

	w := newTestWorld(t)
	e, err := w.Spawn()
	if err != nil {
		t.Fatalf("spawning entity: %v", err)
	}
	e.Think = func(*game.World, *game.Entity) {}

	s := newTestSaver(t, w)
	err = s.WriteLevel(ctx, path)
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Fatalf("err = %v, want ErrUnresolvedReference", err)
	}
}

func TestLevelNilReferences(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "level.sav")

	w1 := newTestWorld(t)
	e, err := w1.Spawn()
	if err != nil {
		t.Fatalf("spawning entity: %v", err)
	}
	e.ClassName = "info_player_start"
	idx := e.Index

	s1 := newTestSaver(t, w1)
	if err := s1.WriteLevel(ctx, path); err != nil {
		t.Fatalf("writing level: %v", err)
	}

	w2 := newTestWorld(t)
	s2 := newTestSaver(t, w2)
	if err := s2.ReadLevel(ctx, path); err != nil {
		t.Fatalf("reading level: %v", err)
	}

	got := &w2.Entities[idx]
	if got.Think != nil || got.Touch != nil || got.Use != nil || got.Pain != nil || got.Die != nil {
		t.Error("nil routines did not stay nil")
	}
	if got.Move != nil {
		t.Error("nil move script did not stay nil")
	}
	if got.Owner != nil || got.Enemy != nil || got.Activator != nil {
		t.Error("nil entity references did not stay nil")
	}
	if got.Item != nil {
		t.Error("nil item did not stay nil")
	}
	testutil.AssertEqual(t, "empty string stays empty", got.Target, "")
}
