package savegame

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"runtime"

	"github.com/pixil98/go-dungeon/internal/arena"
	"github.com/pixil98/go-dungeon/internal/game"
)

const (
	// Version is the savegame format tag. Bump whenever the descriptor
	// tables or the behavior/move tables change, or old saves will be
	// reconnected against the wrong layout.
	Version = "GODNG-1"

	// tagWidth is the fixed width of each header identification field.
	tagWidth = 32

	// entitySentinel terminates the (index, payload) sequence in a level
	// file.
	entitySentinel int32 = -1
)

// Linker is the spatial-index collaborator: it rebuilds world links for each
// entity handed back from a level file.
type Linker interface {
	Clear()
	Link(*game.Entity)
}

// Saver owns the file-level save and load protocols for one world. Field
// lists are compiled against the live struct layouts when the Saver is
// built, so a descriptor drift fails at startup.
type Saver struct {
	world  *game.World
	linker Linker
	codec  codec

	entityFields []Field
	clientFields []Field
	levelFields  []Field

	entityBlockSize int32
}

type SaverOpt func(*Saver)

// WithLinker replaces the world's own grid as the link collaborator.
func WithLinker(l Linker) SaverOpt {
	return func(s *Saver) {
		s.linker = l
	}
}

func NewSaver(w *game.World, opts ...SaverOpt) (*Saver, error) {
	s := &Saver{
		world:  w,
		linker: w.Grid,
		codec:  codec{world: w},
	}

	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.entityFields, err = compileFields(reflect.TypeOf(game.Entity{}), entityFields); err != nil {
		return nil, fmt.Errorf("entity fields: %w", err)
	}
	if s.clientFields, err = compileFields(reflect.TypeOf(game.Client{}), clientFields); err != nil {
		return nil, fmt.Errorf("client fields: %w", err)
	}
	if s.levelFields, err = compileFields(reflect.TypeOf(game.Level{}), levelFields); err != nil {
		return nil, fmt.Errorf("level fields: %w", err)
	}
	s.entityBlockSize = int32(blockSize(s.entityFields))

	return s, nil
}

// EntityBlockSize is the fixed-block byte size of one entity, the layout
// check value recorded in level files.
func (s *Saver) EntityBlockSize() int32 {
	return s.entityBlockSize
}

// WriteGame writes the session file: identification header, the session
// struct verbatim, then every client. A deliberate save (not an autosave)
// first folds the live player stats back into the client blocks.
func (s *Saver) WriteGame(ctx context.Context, path string, autosave bool) error {
	if !autosave {
		s.world.SaveClientData()
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	for _, tag := range []string{Version, game.Identity, runtime.GOOS, runtime.GOARCH} {
		if _, err := w.Write(paddedTag(tag)); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	s.world.Game.AutoSaved = autosave
	err = binary.Write(w, binary.LittleEndian, &s.world.Game)
	s.world.Game.AutoSaved = false
	if err != nil {
		return fmt.Errorf("writing session state: %w", err)
	}

	for i := range s.world.Clients {
		if err := s.codec.writeObject(w, s.clientFields, &s.world.Clients[i]); err != nil {
			return fmt.Errorf("client %d: %w", i, err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}

	slog.InfoContext(ctx, "session saved",
		"path", path,
		"clients", len(s.world.Clients),
		"autosave", autosave)
	return nil
}

// ReadGame loads the session file back, replacing the entity and client
// arrays wholesale. Any header mismatch is fatal before a single object is
// reconstructed.
func (s *Saver) ReadGame(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	if err := s.checkHeader(r); err != nil {
		return err
	}

	s.world.Arena.FreeAll(arena.TagGame)
	s.world.AllocArrays()

	saved := s.world.Game
	if err := binary.Read(r, binary.LittleEndian, &s.world.Game); err != nil {
		return fmt.Errorf("%w: reading session state: %v", ErrCorruptStream, err)
	}
	if s.world.Game.MaxClients != saved.MaxClients || s.world.Game.MaxEntities != saved.MaxEntities {
		loaded := s.world.Game
		s.world.Game = saved
		return fmt.Errorf("%w: session capacities %d/%d, running build has %d/%d",
			ErrIncompatibleSave,
			loaded.MaxClients, loaded.MaxEntities,
			saved.MaxClients, saved.MaxEntities)
	}

	for i := range s.world.Clients {
		if err := s.codec.readObject(r, s.clientFields, &s.world.Clients[i]); err != nil {
			return fmt.Errorf("client %d: %w", i, err)
		}
	}

	slog.InfoContext(ctx, "session loaded", "path", path, "clients", len(s.world.Clients))
	return nil
}

// WriteLevel writes the level file: the entity layout check value, the level
// singleton, then an (index, payload) pair for every entity in use, closed
// by the sentinel.
func (s *Saver) WriteLevel(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	if err := binary.Write(w, binary.LittleEndian, s.entityBlockSize); err != nil {
		return fmt.Errorf("writing layout check: %w", err)
	}

	if err := s.codec.writeObject(w, s.levelFields, &s.world.Level); err != nil {
		return fmt.Errorf("level state: %w", err)
	}

	written := 0
	for i := int32(0); i < s.world.NumEntities; i++ {
		e := &s.world.Entities[i]
		if !e.InUse {
			continue
		}
		if err := binary.Write(w, binary.LittleEndian, i); err != nil {
			return fmt.Errorf("entity %d: writing index: %w", i, err)
		}
		if err := s.codec.writeObject(w, s.entityFields, e); err != nil {
			return fmt.Errorf("entity %d: %w", i, err)
		}
		written++
	}
	if err := binary.Write(w, binary.LittleEndian, entitySentinel); err != nil {
		return fmt.Errorf("writing sentinel: %w", err)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}

	slog.InfoContext(ctx, "level saved",
		"path", path,
		"map", s.world.Level.MapName,
		"entities", written)
	return nil
}

// ReadLevel restores a level file into the live world: release the previous
// level's arena allocations, wipe the entity array, read the level singleton
// and the sparse entity sequence, then run the post-load fix-ups that need
// whole-world knowledge (relinking, client back-references, cross-level
// triggers).
func (s *Saver) ReadLevel(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	s.world.Arena.FreeAll(arena.TagLevel)

	for i := range s.world.Entities {
		s.world.Entities[i] = game.Entity{Index: int32(i)}
	}
	s.world.NumEntities = s.world.Game.MaxClients + 1
	s.linker.Clear()

	var check int32
	if err := binary.Read(r, binary.LittleEndian, &check); err != nil {
		return fmt.Errorf("%w: reading layout check: %v", ErrCorruptStream, err)
	}
	if check != s.entityBlockSize {
		return fmt.Errorf("%w: file has %d-byte entities, running build has %d",
			ErrLayoutMismatch, check, s.entityBlockSize)
	}

	if err := s.codec.readObject(r, s.levelFields, &s.world.Level); err != nil {
		return fmt.Errorf("level state: %w", err)
	}

	restored := 0
	for {
		var idx int32
		if err := binary.Read(r, binary.LittleEndian, &idx); err != nil {
			return fmt.Errorf("%w: reading entity index: %v", ErrCorruptStream, err)
		}
		if idx == entitySentinel {
			break
		}
		if idx < 0 || idx >= s.world.Game.MaxEntities {
			return fmt.Errorf("%w: entity index %d out of range", ErrCorruptStream, idx)
		}

		e := &s.world.Entities[idx]
		if e.InUse {
			return fmt.Errorf("%w: duplicate entity index %d", ErrCorruptStream, idx)
		}
		if err := s.codec.readObject(r, s.entityFields, e); err != nil {
			return fmt.Errorf("entity %d: %w", idx, err)
		}
		e.Index = idx
		if idx >= s.world.NumEntities {
			s.world.NumEntities = idx + 1
		}

		e.ClearLinkState()
		s.linker.Link(e)
		restored++
	}

	// Every player entity points at its client slot again; ConnectPlayer
	// flips Connected back on when the player actually rejoins.
	for i := int32(0); i < s.world.Game.MaxClients; i++ {
		e := s.world.PlayerEntity(i)
		e.Client = &s.world.Clients[i]
		s.world.Clients[i].Pers.Connected = false
	}

	// Cross-level triggers fire almost immediately in the restored level.
	for i := int32(0); i < s.world.NumEntities; i++ {
		e := &s.world.Entities[i]
		if e.InUse && e.ClassName == "target_crosslevel_target" {
			e.NextThink = s.world.Level.Time + e.Delay
		}
	}

	slog.InfoContext(ctx, "level loaded",
		"path", path,
		"map", s.world.Level.MapName,
		"entities", restored)
	return nil
}

// checkHeader compares the four identification tags against the running
// build, in order; the first mismatch wins.
func (s *Saver) checkHeader(r io.Reader) error {
	checks := []struct {
		want string
		diag string
	}{
		{Version, "savegame from an incompatible version"},
		{game.Identity, "savegame from another game"},
		{runtime.GOOS, "savegame from another os"},
		{runtime.GOARCH, "savegame from another architecture"},
	}

	for _, c := range checks {
		got := make([]byte, tagWidth)
		if _, err := io.ReadFull(r, got); err != nil {
			return fmt.Errorf("%w: reading header: %v", ErrCorruptStream, err)
		}
		if !bytes.Equal(got, paddedTag(c.want)) {
			return fmt.Errorf("%w: %s", ErrIncompatibleSave, c.diag)
		}
	}
	return nil
}

// paddedTag zero-pads an identification string to the fixed header width.
func paddedTag(s string) []byte {
	tag := make([]byte, tagWidth)
	copy(tag, s)
	return tag
}
