package savegame

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/pixil98/go-dungeon/internal/game"
)

const gameFileName = "game.ssv"

// Notifier receives savegame lifecycle notifications. The NATS event
// publisher implements this; tests substitute their own.
type Notifier interface {
	GameSaved(path string, autosave bool) error
	GameLoaded(path string) error
	LevelSaved(path, mapName string) error
	LevelLoaded(path, mapName string) error
}

// Requests is the subscribing side of the save-request transport.
type Requests interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// Manager schedules saves on frame boundaries. Save requests can arrive from
// any goroutine; the actual file writes only ever happen inside Tick, on the
// driver loop, so the world is never serialized mid-frame.
type Manager struct {
	saver *Saver
	world *game.World
	dir   string

	autosaveFrames int32
	notifier       Notifier
	requests       Requests
	subscribed     bool

	pending atomic.Bool
}

type ManagerOpt func(*Manager)

// WithAutosaveInterval enables periodic autosaves, rounded to whole frames.
func WithAutosaveInterval(d time.Duration, tick time.Duration) ManagerOpt {
	return func(m *Manager) {
		if tick > 0 && d >= tick {
			m.autosaveFrames = int32(d / tick)
		}
	}
}

func WithNotifier(n Notifier) ManagerOpt {
	return func(m *Manager) {
		m.notifier = n
	}
}

// WithRequests attaches a transport carrying external save requests.
func WithRequests(r Requests) ManagerOpt {
	return func(m *Manager) {
		m.requests = r
	}
}

func NewManager(saver *Saver, w *game.World, dir string, opts ...ManagerOpt) *Manager {
	m := &Manager{
		saver: saver,
		world: w,
		dir:   dir,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RequestSave marks a save for the next frame boundary. Safe from any
// goroutine.
func (m *Manager) RequestSave() {
	m.pending.Store(true)
}

// Tick implements the driver Manager interface: it runs after the world
// tick, so a save taken here always captures a consistent frame.
func (m *Manager) Tick(ctx context.Context) error {
	m.ensureSubscribed(ctx)

	if m.pending.Swap(false) {
		return m.SaveAll(ctx, false)
	}

	if m.autosaveFrames > 0 && m.world.Level.FrameNum > 0 &&
		m.world.Level.FrameNum%m.autosaveFrames == 0 {
		return m.SaveAll(ctx, true)
	}

	return nil
}

// ensureSubscribed attaches the save-request handler once the transport is
// up. The bus starts concurrently with the driver, so early frames may find
// it not yet accepting subscriptions.
func (m *Manager) ensureSubscribed(ctx context.Context) {
	if m.subscribed || m.requests == nil {
		return
	}
	_, err := m.requests.Subscribe("save.request", func([]byte) {
		m.RequestSave()
	})
	if err != nil {
		return
	}
	m.subscribed = true
	slog.DebugContext(ctx, "save request subscription attached")
}

// SaveAll writes the current level and the session file.
func (m *Manager) SaveAll(ctx context.Context, autosave bool) error {
	levelPath := m.levelPath(m.world.Level.MapName)
	if err := m.saver.WriteLevel(ctx, levelPath); err != nil {
		return fmt.Errorf("saving level: %w", err)
	}

	gamePath := m.gamePath()
	m.world.Game.SetCurrentMap(m.world.Level.MapName)
	if err := m.saver.WriteGame(ctx, gamePath, autosave); err != nil {
		return fmt.Errorf("saving game: %w", err)
	}

	if m.notifier != nil {
		if err := m.notifier.LevelSaved(levelPath, m.world.Level.MapName); err != nil {
			slog.WarnContext(ctx, "level saved notification failed", "error", err)
		}
		if err := m.notifier.GameSaved(gamePath, autosave); err != nil {
			slog.WarnContext(ctx, "game saved notification failed", "error", err)
		}
	}
	return nil
}

// LoadAll restores the session file, then the level it names.
func (m *Manager) LoadAll(ctx context.Context) error {
	gamePath := m.gamePath()
	if err := m.saver.ReadGame(ctx, gamePath); err != nil {
		return fmt.Errorf("loading game: %w", err)
	}

	// The session block records which level was running when it was saved.
	levelPath := m.levelPath(m.world.Game.CurrentMapName())
	if err := m.saver.ReadLevel(ctx, levelPath); err != nil {
		return fmt.Errorf("loading level: %w", err)
	}

	if m.notifier != nil {
		if err := m.notifier.GameLoaded(gamePath); err != nil {
			slog.WarnContext(ctx, "game loaded notification failed", "error", err)
		}
		if err := m.notifier.LevelLoaded(levelPath, m.world.Level.MapName); err != nil {
			slog.WarnContext(ctx, "level loaded notification failed", "error", err)
		}
	}
	return nil
}

// HasSession reports whether a session file exists in the save directory.
func (m *Manager) HasSession() bool {
	_, err := os.Stat(m.gamePath())
	return err == nil
}

func (m *Manager) gamePath() string {
	return filepath.Join(m.dir, gameFileName)
}

func (m *Manager) levelPath(mapName string) string {
	return filepath.Join(m.dir, mapName+".sav")
}
