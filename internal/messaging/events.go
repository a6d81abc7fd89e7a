package messaging

import (
	"encoding/json"
	"fmt"
	"time"
)

// Subjects for the savegame lifecycle bus.
const (
	SubjectGameSaved   = "save.game"
	SubjectLevelSaved  = "save.level"
	SubjectGameLoaded  = "load.game"
	SubjectLevelLoaded = "load.level"

	// SubjectSaveRequest is published by operators or other components to
	// ask for a save at the next safe frame boundary.
	SubjectSaveRequest = "save.request"
)

// Event is the payload for every lifecycle subject.
type Event struct {
	Path     string    `json:"path"`
	Map      string    `json:"map,omitempty"`
	Autosave bool      `json:"autosave,omitempty"`
	At       time.Time `json:"at"`
}

// Bus is the publishing side of the event publisher's transport.
type Bus interface {
	Publish(subject string, data []byte) error
}

// EventPublisher emits savegame lifecycle events onto the bus.
type EventPublisher struct {
	bus Bus
}

func NewEventPublisher(bus Bus) *EventPublisher {
	return &EventPublisher{bus: bus}
}

func (p *EventPublisher) GameSaved(path string, autosave bool) error {
	return p.publish(SubjectGameSaved, Event{Path: path, Autosave: autosave})
}

func (p *EventPublisher) GameLoaded(path string) error {
	return p.publish(SubjectGameLoaded, Event{Path: path})
}

func (p *EventPublisher) LevelSaved(path, mapName string) error {
	return p.publish(SubjectLevelSaved, Event{Path: path, Map: mapName})
}

func (p *EventPublisher) LevelLoaded(path, mapName string) error {
	return p.publish(SubjectLevelLoaded, Event{Path: path, Map: mapName})
}

func (p *EventPublisher) publish(subject string, ev Event) error {
	ev.At = time.Now().UTC()
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshaling %s event: %w", subject, err)
	}
	if err := p.bus.Publish(subject, data); err != nil {
		return fmt.Errorf("publishing %s: %w", subject, err)
	}
	return nil
}
