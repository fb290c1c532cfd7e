// Package loop provides a fixed-rate render loop for targets that have no
// display-refresh callback. Frames and posted tasks run on a single goroutine,
// one at a time, and no frame runs once the loop has been cancelled.
package loop

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultInterval is roughly one 60Hz display refresh.
const DefaultInterval = time.Second / 60

// ErrRunning is returned by Start when the loop is already running.
var ErrRunning = errors.New("loop already running")

// FrameFunc is invoked once per tick with the tick time.
type FrameFunc func(now time.Time)

// Loop is a cooperative, self-rescheduling frame scheduler.
type Loop struct {
	interval time.Duration
	frame    FrameFunc
	tasks    chan func()

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool

	frames uint64
}

// New creates a loop calling frame every interval. A non-positive interval
// uses DefaultInterval.
func New(interval time.Duration, frame FrameFunc) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{
		interval: interval,
		frame:    frame,
		tasks:    make(chan func(), 16),
	}
}

// Interval returns the tick interval.
func (l *Loop) Interval() time.Duration { return l.interval }

// Frames returns how many frames have run. Only meaningful from the loop
// goroutine or after Run has returned.
func (l *Loop) Frames() uint64 { return l.frames }

// Run drives the loop until ctx is done. It blocks.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		case now := <-ticker.C:
			// a tick and cancellation can be ready together; cancellation wins
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.frames++
			l.frame(now)
		}
	}
}

// Post schedules fn to run on the loop goroutine between frames. It blocks
// while the task queue is full and gives up when ctx is done.
func (l *Loop) Post(ctx context.Context, fn func()) error {
	select {
	case l.tasks <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start runs the loop in its own goroutine.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return ErrRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	l.running = true

	go func(done chan struct{}) {
		defer close(done)
		_ = l.Run(ctx)
	}(l.done)
	return nil
}

// Stop cancels a started loop and waits for it to exit. After Stop returns
// no further frame is delivered. Calling Stop on a stopped loop is a no-op.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	cancel, done := l.cancel, l.done
	l.mu.Unlock()

	cancel()
	<-done
}

// Running reports whether Start has been called without a matching Stop.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}
