package reactive_test

import (
	"testing"

	"github.com/delaneyj/propa/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectRunsImmediatelyAndOnChange(t *testing.T) {
	rs, driver := newSystem(t)
	a := reactive.Signal(rs, 1)

	seen := []int{}
	stop := reactive.Effect(rs, func() error {
		seen = append(seen, a.Value())
		return nil
	})
	assert.Equal(t, []int{1}, seen)

	a.SetValue(2)
	assert.Equal(t, []int{1}, seen)
	driver.Tick()
	assert.Equal(t, []int{1, 2}, seen)

	stop()
	stop()
	a.SetValue(3)
	driver.Tick()
	assert.Equal(t, []int{1, 2}, seen)
	assert.Equal(t, 1, rs.Stats().Nodes, "stopped effects free their node")
}

// should clear subscriptions when untracked by all subscribers
func TestEffectClearSubsWhenUntracked(t *testing.T) {
	rs, driver := newSystem(t)
	a := reactive.Signal(rs, 1)

	bRunTimes := 0
	b := reactive.Memo(rs, func() int {
		bRunTimes++
		return a.Value() * 2
	})
	stopEffect := reactive.Effect(rs, func() error {
		_, err := b.Value()
		return err
	})

	assert.Equal(t, 1, bRunTimes)
	a.SetValue(2)
	driver.Tick()
	assert.Equal(t, 2, bRunTimes)
	stopEffect()
	a.SetValue(3)
	driver.Tick()
	assert.Equal(t, 2, bRunTimes)
}

func TestEffectErrorsAreReported(t *testing.T) {
	driver := reactive.NewManualDriver()
	var from []reactive.NodeInfo
	var reported []error
	rs := reactive.CreateReactiveSystem(
		reactive.WithDriver(driver),
		reactive.WithOnError(func(info reactive.NodeInfo, err error) {
			from = append(from, info)
			reported = append(reported, err)
		}),
	)
	a := reactive.Signal(rs, 0)

	reactive.Effect(rs, func() error {
		if a.Value() > 0 {
			return errBoom
		}
		return nil
	}, reactive.Label("guard"))
	assert.Empty(t, reported)

	a.SetValue(1)
	driver.Tick()
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], errBoom)
	assert.Equal(t, "guard", from[0].Label)
	assert.Equal(t, "effect", from[0].Kind)

	a.SetValue(0)
	driver.Tick()
	assert.Len(t, reported, 1, "a failed effect still reruns when its inputs move")
}

// should run effects once after a batch of writes, without a tick
func TestBatchFlushesSynchronously(t *testing.T) {
	rs, driver := newSystem(t)
	a := reactive.Signal(rs, 0)
	b := reactive.Signal(rs, 0)

	runs := 0
	reactive.Effect(rs, func() error {
		runs++
		a.Value()
		b.Value()
		return nil
	})

	rs.Batch(func() {
		a.SetValue(1)
		rs.Batch(func() {
			b.SetValue(1)
		})
		assert.Equal(t, 1, runs, "inner batch does not flush")
	})
	assert.Equal(t, 2, runs)
	assert.Zero(t, driver.Pending())
}

func TestStartEndBatch(t *testing.T) {
	rs, driver := newSystem(t)
	a := reactive.Signal(rs, 0)

	calls := 0
	a.Subscribe(func() {
		calls++
	})

	rs.StartBatch()
	a.SetValue(1)
	a.SetValue(2)
	assert.Zero(t, driver.Pending())
	rs.EndBatch()
	assert.Equal(t, 1, calls)
}

// should defer a batch ended inside a flush to the next tick
func TestBatchInsideCallback(t *testing.T) {
	rs, driver := newSystem(t)
	a := reactive.Signal(rs, 0)
	b := reactive.Signal(rs, 0)

	a.Subscribe(func() {
		rs.Batch(func() {
			b.SetValue(a.Value())
		})
	})
	bCalls := 0
	b.Subscribe(func() {
		bCalls++
	})

	a.SetValue(1)
	driver.Tick()
	assert.Zero(t, bCalls)
	assert.Equal(t, 1, driver.Pending())

	driver.Tick()
	assert.Equal(t, 1, bCalls)
}

func TestUntrack(t *testing.T) {
	rs, driver := newSystem(t)
	tracked := reactive.Signal(rs, 0)
	untracked := reactive.Signal(rs, 0)

	runs := 0
	reactive.Effect(rs, func() error {
		runs++
		tracked.Value()
		rs.Untrack(func() {
			untracked.Value()
		})
		return nil
	})

	untracked.SetValue(1)
	driver.Tick()
	assert.Equal(t, 1, runs)

	tracked.SetValue(1)
	driver.Tick()
	assert.Equal(t, 2, runs)
}

// should not make an inner effect a dependency of the outer one
func TestNestedEffectIsNotADependency(t *testing.T) {
	rs, driver := newSystem(t)
	outer := reactive.Signal(rs, 0)
	inner := reactive.Signal(rs, 0)

	outerRuns, innerRuns := 0, 0
	reactive.Effect(rs, func() error {
		outerRuns++
		outer.Value()
		if outerRuns == 1 {
			reactive.Effect(rs, func() error {
				innerRuns++
				inner.Value()
				return nil
			})
		}
		return nil
	})
	assert.Equal(t, 1, outerRuns)
	assert.Equal(t, 1, innerRuns)

	inner.SetValue(1)
	driver.Tick()
	assert.Equal(t, 1, outerRuns)
	assert.Equal(t, 2, innerRuns)
}

func TestResetDropsPendingWork(t *testing.T) {
	rs, driver := newSystem(t)
	a := reactive.Signal(rs, 0)

	calls := 0
	a.Subscribe(func() {
		calls++
	})

	a.SetValue(1)
	assert.Equal(t, 1, rs.Stats().PendingSignals)
	rs.Reset()
	assert.Zero(t, rs.Stats().PendingSignals)
	assert.Zero(t, driver.Pending())
	driver.Tick()
	assert.Zero(t, calls)

	a.SetValue(2)
	driver.Tick()
	assert.Equal(t, 1, calls, "cells survive a reset")
}

func TestStatsCountsFlushes(t *testing.T) {
	rs, driver := newSystem(t)
	a := reactive.Signal(rs, 0)
	reactive.Memo(rs, func() int {
		return a.Value()
	})
	assert.Equal(t, 2, rs.Stats().Nodes)

	a.SetValue(1)
	driver.Tick()
	a.SetValue(2)
	rs.Flush()
	assert.Equal(t, uint64(2), rs.Stats().Flushes)
	assert.Zero(t, driver.Pending(), "an explicit flush cancels the scheduled one")
}

// should hold notifications until the default driver is ticked
func TestDefaultDriverIsManual(t *testing.T) {
	rs := reactive.CreateReactiveSystem()
	driver, ok := rs.Driver().(*reactive.ManualDriver)
	require.True(t, ok)

	a := reactive.Signal(rs, 0)
	calls := 0
	a.Subscribe(func() {
		calls++
	})

	a.SetValue(1)
	assert.Zero(t, calls)
	assert.Equal(t, 1, driver.Pending())
	driver.Tick()
	assert.Equal(t, 1, calls)
}
