package sim

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/ryholmdahl/groblins/internal/world"
)

func newLoopWorld(t *testing.T) *world.World {
	t.Helper()
	cfg := world.DefaultConfig()
	cfg.Width = 16
	cfg.Height = 12
	w, err := world.New(cfg, world.Deps{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

func TestLoopTicksAndPublishesSnapshots(t *testing.T) {
	w := newLoopWorld(t)
	var frames atomic.Int64
	var lastTick atomic.Uint64
	loop := New(w, nil, 60, func(s world.Snapshot) {
		frames.Add(1)
		lastTick.Store(s.Tick)
	})

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		loop.Run(stop)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for frames.Load() < 5 {
		select {
		case <-deadline:
			t.Fatalf("loop produced only %d frames", frames.Load())
		case <-time.After(10 * time.Millisecond):
		}
	}
	close(stop)
	<-done

	if lastTick.Load() == 0 {
		t.Fatalf("snapshots must carry advancing tick counts")
	}
}

func TestLoopRunsEnqueuedCommands(t *testing.T) {
	w := newLoopWorld(t)
	executed := make(chan struct{})
	loop := New(w, nil, 120, nil)
	if !loop.Enqueue(func(*world.World) { close(executed) }) {
		t.Fatalf("expected enqueue to succeed")
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		loop.Run(stop)
		close(done)
	}()

	select {
	case <-executed:
	case <-time.After(2 * time.Second):
		t.Fatalf("command never executed")
	}
	close(stop)
	<-done
}

func TestEnqueueRejectsNil(t *testing.T) {
	loop := New(newLoopWorld(t), nil, 0, nil)
	if loop.Enqueue(nil) {
		t.Fatalf("nil command must be rejected")
	}
}
