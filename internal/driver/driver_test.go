package driver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

type fakeManager struct {
	ticks int
	err   error
}

func (m *fakeManager) Tick(ctx context.Context) error {
	m.ticks++
	return m.err
}

func TestTickOrder(t *testing.T) {
	a := &fakeManager{}
	b := &fakeManager{}
	d := NewGameDriver([]Manager{a, b})

	if err := d.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}
	testutil.AssertEqual(t, "first manager", a.ticks, 1)
	testutil.AssertEqual(t, "second manager", b.ticks, 1)
}

func TestTickStopsOnError(t *testing.T) {
	a := &fakeManager{err: errors.New("boom")}
	b := &fakeManager{}
	d := NewGameDriver([]Manager{a, b})

	err := d.Tick(context.Background())
	testutil.AssertErrorContains(t, err, "manager 0")
	testutil.AssertEqual(t, "later manager skipped", b.ticks, 0)
}

func TestStartStopsOnCancel(t *testing.T) {
	m := &fakeManager{}
	d := NewGameDriver([]Manager{m}, WithTickLength(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Start(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("start returned %v, want nil on cancel", err)
		}
	case <-time.After(time.Second):
		t.Fatal("driver did not stop after cancel")
	}

	if m.ticks == 0 {
		t.Fatal("manager never ticked")
	}
}
