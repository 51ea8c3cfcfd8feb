package loop_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/delaneyj/propa/loop"
	"github.com/delaneyj/propa/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ reactive.Driver = (*loop.Loop)(nil)

func startLoop(t *testing.T, opts ...loop.Option) (*loop.Loop, context.Context) {
	t.Helper()
	l := loop.New(opts...)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	errs := make(chan error, 1)
	go func() {
		errs <- l.Run(ctx)
	}()
	t.Cleanup(func() {
		l.Close()
		<-l.Done()
		cancel()
		assert.NoError(t, <-errs)
	})
	return l, ctx
}

func TestDoRunsOnLoop(t *testing.T) {
	l, ctx := startLoop(t)

	ran := false
	require.NoError(t, l.Do(ctx, func() {
		ran = true
	}))
	assert.True(t, ran)
}

func TestSubmitPreservesOrder(t *testing.T) {
	l, ctx := startLoop(t)

	order := []int{}
	for i := range 10 {
		require.NoError(t, l.Submit(ctx, func() {
			order = append(order, i)
		}))
	}
	require.NoError(t, l.Do(ctx, func() {}))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestTaskPanicDoesNotStopLoop(t *testing.T) {
	l, ctx := startLoop(t)

	require.NoError(t, l.Submit(ctx, func() {
		panic("boom")
	}))
	ran := false
	require.NoError(t, l.Do(ctx, func() {
		ran = true
	}))
	assert.True(t, ran)
}

func TestRunTwice(t *testing.T) {
	l, ctx := startLoop(t)
	require.NoError(t, l.Do(ctx, func() {}))
	assert.ErrorIs(t, l.Run(ctx), loop.ErrLoopRunning)
}

func TestSubmitAfterClose(t *testing.T) {
	l := loop.New()
	l.Close()
	l.Close()

	err := l.Submit(context.Background(), func() {})
	assert.ErrorIs(t, err, loop.ErrLoopClosed)
	assert.ErrorIs(t, l.Do(context.Background(), func() {}), loop.ErrLoopClosed)
}

func TestRunStopsOnContext(t *testing.T) {
	l := loop.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.Run(ctx), context.Canceled)

	select {
	case <-l.Done():
	default:
		assert.Fail(t, "done not closed")
	}
	assert.ErrorIs(t, l.Submit(context.Background(), func() {}), loop.ErrLoopClosed)
}

func TestScheduleCancel(t *testing.T) {
	l, ctx := startLoop(t, loop.WithFrameInterval(0))

	var ran atomic.Int32
	done := make(chan struct{})
	require.NoError(t, l.Do(ctx, func() {
		cancel := l.Schedule(func() {
			ran.Add(1)
		})
		cancel()
		l.Schedule(func() {
			close(done)
		})
	}))

	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "scheduled task never ran")
	}
	assert.Zero(t, ran.Load())
}

// should deliver a tick's writes once, on the loop goroutine
func TestLoopDrivesReactiveFlush(t *testing.T) {
	for _, interval := range []time.Duration{0, time.Millisecond} {
		t.Run(interval.String(), func(t *testing.T) {
			l, ctx := startLoop(t, loop.WithFrameInterval(interval))

			notified := make(chan int, 4)
			require.NoError(t, l.Do(ctx, func() {
				rs := reactive.CreateReactiveSystem(reactive.WithDriver(l))
				count := reactive.Signal(rs, 0)
				count.Subscribe(func() {
					notified <- count.Value()
				})
				count.SetValue(1)
				count.SetValue(2)
			}))

			select {
			case v := <-notified:
				assert.Equal(t, 2, v)
			case <-time.After(time.Second):
				require.FailNow(t, "flush never ran")
			}
			require.NoError(t, l.Do(ctx, func() {}))
			assert.Empty(t, notified)
		})
	}
}
