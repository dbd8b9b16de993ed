package world

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/VoidMesh/strata/internal/chunk"
	"github.com/VoidMesh/strata/internal/logging"
	"github.com/VoidMesh/strata/internal/scheduler"
	"github.com/charmbracelet/log"
)

var ErrStopped = errors.New("world loop stopped")

type LoopConfig struct {
	Seed          int64
	ScreenWidth   float64
	FrameInterval time.Duration
}

// Loop owns the chunk store. Every store access happens on the loop
// goroutine; other goroutines reach it through Do.
type Loop struct {
	cfg    LoopConfig
	store  *chunk.Store
	sched  *scheduler.Scheduler
	logger *log.Logger

	ops     chan func()
	cameraX float64
	frames  uint64

	runMu   sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
}

func NewLoop(cfg LoopConfig, store *chunk.Store, sched *scheduler.Scheduler) *Loop {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = 16 * time.Millisecond
	}
	return &Loop{
		cfg:     cfg,
		store:   store,
		sched:   sched,
		logger:  logging.WithComponent("world"),
		ops:     make(chan func()),
		stopped: make(chan struct{}),
	}
}

// Start runs the scheduler worker and the loop goroutine. A loop that was shut
// down may be started again.
func (l *Loop) Start(ctx context.Context) {
	l.runMu.Lock()
	defer l.runMu.Unlock()
	if l.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	l.stopped = make(chan struct{})
	l.sched.Start(ctx)
	go l.run(ctx)
	l.logger.Info("world loop started", "seed", l.cfg.Seed, "frame_interval", l.cfg.FrameInterval)
}

func (l *Loop) run(ctx context.Context) {
	defer close(l.done)
	ticker := time.NewTicker(l.cfg.FrameInterval)
	defer ticker.Stop()

	l.tick()
	for {
		select {
		case <-ctx.Done():
			return
		case op := <-l.ops:
			op()
		case <-ticker.C:
			l.tick()
		}
	}
}

// tick advances one frame: recompute the window and service the queues.
func (l *Loop) tick() {
	l.store.UpdateVisibleWindow(l.cameraX, l.cfg.ScreenWidth)
	l.store.ProcessQueues(l.cfg.Seed)
	l.frames++
}

// Do runs fn on the loop goroutine and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func(*chunk.Store)) error {
	done := make(chan struct{})
	op := func() {
		defer close(done)
		fn(l.store)
	}

	l.runMu.Lock()
	stopped := l.stopped
	l.runMu.Unlock()

	select {
	case l.ops <- op:
	case <-stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	<-done
	return nil
}

// SetCamera moves the camera; the next frame streams chunks around it.
func (l *Loop) SetCamera(ctx context.Context, x float64) error {
	return l.Do(ctx, func(*chunk.Store) {
		l.cameraX = x
		l.tick()
	})
}

// Camera returns the camera position and frame counter.
func (l *Loop) Camera(ctx context.Context) (x float64, frames uint64, err error) {
	err = l.Do(ctx, func(*chunk.Store) {
		x, frames = l.cameraX, l.frames
	})
	return x, frames, err
}

func (l *Loop) Seed() int64 { return l.cfg.Seed }

// Scheduler exposes the generation scheduler for inspection and retries.
func (l *Loop) Scheduler() *scheduler.Scheduler { return l.sched }

// Shutdown stops the loop and the scheduler, then saves edited chunks.
func (l *Loop) Shutdown() error {
	l.runMu.Lock()
	cancel, done, stopped := l.cancel, l.done, l.stopped
	l.cancel = nil
	l.runMu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	close(stopped)
	l.sched.Stop()

	if err := l.store.Flush(); err != nil {
		l.logger.Error("failed to flush edited chunks", "error", err)
		return err
	}
	l.logger.Info("world loop stopped", "frames", l.frames, "loaded", l.store.Len())
	return nil
}
