// Package sim drives a world at a fixed tick rate on a single
// goroutine. External callers never touch the world directly; they
// enqueue commands that run between ticks and observe snapshots
// published after each step.
package sim

import (
	"time"

	"go.uber.org/zap"

	"github.com/ryholmdahl/groblins/internal/world"
)

const (
	// DefaultTickRate is the simulation frequency in ticks per second.
	DefaultTickRate = 15

	commandQueueSize = 256
)

// Command mutates the world from the loop goroutine.
type Command func(*world.World)

// Loop owns a world and advances it until stopped.
type Loop struct {
	world     *world.World
	logger    *zap.Logger
	rate      int
	commands  chan Command
	afterStep func(world.Snapshot)
}

// New builds a loop. afterStep may be nil; when set it receives a
// fresh snapshot after every tick, still on the loop goroutine, so it
// must hand off quickly.
func New(w *world.World, logger *zap.Logger, rate int, afterStep func(world.Snapshot)) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return &Loop{
		world:     w,
		logger:    logger,
		rate:      rate,
		commands:  make(chan Command, commandQueueSize),
		afterStep: afterStep,
	}
}

// Enqueue schedules a command for the next tick. It never blocks; when
// the queue is full the command is dropped and Enqueue reports false.
func (l *Loop) Enqueue(cmd Command) bool {
	if l == nil || cmd == nil {
		return false
	}
	select {
	case l.commands <- cmd:
		return true
	default:
		l.logger.Warn("command queue full, dropping command")
		return false
	}
}

// Run drives the fixed-rate tick loop until the stop channel closes.
func (l *Loop) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / time.Duration(l.rate))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			l.drainCommands()
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if dt <= 0 {
				dt = 1.0 / float64(l.rate)
			}
			last = now

			l.drainCommands()
			l.world.Tick(dt)
			if l.afterStep != nil {
				l.afterStep(l.world.Snapshot())
			}
		}
	}
}

func (l *Loop) drainCommands() {
	for {
		select {
		case cmd := <-l.commands:
			cmd(l.world)
		default:
			return
		}
	}
}
