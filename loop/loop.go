package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrLoopRunning = errors.New("loop: already running")
	ErrLoopClosed  = errors.New("loop: closed")
)

// DefaultFrameInterval approximates a 60Hz display refresh.
const DefaultFrameInterval = time.Second / 60

var immediate = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Loop runs every piece of work on a single goroutine. Foreign goroutines
// hand work in with Submit or Do; code already on the loop defers work to
// the next frame with Schedule, which makes a Loop usable as the flush
// driver of a reactive system.
type Loop struct {
	ingress   chan func()
	closing   chan struct{}
	closeOnce sync.Once
	done      chan struct{}
	running   atomic.Bool

	interval time.Duration
	frame    []*task
	frames   uint64
	logger   *slog.Logger
}

type task struct {
	fn        func()
	cancelled bool
}

type Option func(*Loop)

// WithFrameInterval sets the frame period. Zero or less runs scheduled work
// as soon as the loop is idle.
func WithFrameInterval(d time.Duration) Option {
	return func(l *Loop) {
		l.interval = d
	}
}

func WithQueueSize(n int) Option {
	return func(l *Loop) {
		l.ingress = make(chan func(), n)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

func New(opts ...Option) *Loop {
	l := &Loop{
		closing:  make(chan struct{}),
		done:     make(chan struct{}),
		interval: DefaultFrameInterval,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.ingress == nil {
		l.ingress = make(chan func(), 64)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Run processes work until ctx is done or Close is called. A Loop runs at
// most once.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer close(l.done)

	var tick <-chan time.Time
	if l.interval > 0 {
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	l.logger.Debug("loop started", "frame_interval", l.interval)
	defer l.logger.Debug("loop stopped", "frames", l.frames)

	for {
		var ready <-chan struct{}
		if tick == nil && len(l.frame) > 0 {
			ready = immediate
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.closing:
			return nil
		case fn := <-l.ingress:
			l.run(fn)
		case <-tick:
			l.runFrame()
		case <-ready:
			l.runFrame()
		}
	}
}

// Close stops the loop after the task in progress. It is safe to call more
// than once and from any goroutine.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.closing)
	})
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Submit hands fn to the loop goroutine without waiting for it to run.
func (l *Loop) Submit(ctx context.Context, fn func()) error {
	select {
	case <-l.closing:
		return ErrLoopClosed
	case <-l.done:
		return ErrLoopClosed
	default:
	}

	select {
	case l.ingress <- fn:
		return nil
	case <-l.closing:
		return ErrLoopClosed
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do runs fn on the loop goroutine and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	err := l.Submit(ctx, func() {
		defer close(finished)
		fn()
	})
	if err != nil {
		return fmt.Errorf("submitting task: %w", err)
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Schedule queues fn for the next frame. It must be called from the loop
// goroutine.
func (l *Loop) Schedule(fn func()) (cancel func()) {
	t := &task{fn: fn}
	l.frame = append(l.frame, t)
	return func() {
		t.cancelled = true
	}
}

func (l *Loop) runFrame() {
	tasks := l.frame
	l.frame = nil
	if len(tasks) == 0 {
		return
	}
	l.frames++
	for _, t := range tasks {
		if t.cancelled {
			continue
		}
		t.cancelled = true
		l.run(t.fn)
	}
}

func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("loop task panicked", "panic", r)
		}
	}()
	fn()
}
