package reactive_test

import (
	"testing"

	"github.com/delaneyj/propa/reactive"
	"github.com/stretchr/testify/assert"
)

// should treat anything not shaped like a cell as an opaque value
func TestResolve(t *testing.T) {
	rs, _ := newSystem(t)
	count := reactive.Signal(rs, 3)
	double := reactive.Memo(rs, func() int {
		return count.Value() * 2
	})
	broken := reactive.Computed(rs, func() (int, error) {
		return 0, errBoom
	})

	assert.Equal(t, 3, reactive.Resolve(count))
	assert.Equal(t, 6, reactive.Resolve(double))
	assert.Equal(t, "plain", reactive.Resolve("plain"))
	assert.Nil(t, reactive.Resolve(nil))

	err, ok := reactive.Resolve(broken).(error)
	if assert.True(t, ok) {
		assert.ErrorIs(t, err, errBoom)
	}

	half := struct {
		Subscribe func(func()) func()
	}{}
	assert.Equal(t, half, reactive.Resolve(half))
}

func TestAsSource(t *testing.T) {
	rs, driver := newSystem(t)
	count := reactive.Signal(rs, 0)

	src, ok := reactive.AsSource(count)
	if assert.True(t, ok) {
		calls := 0
		src.Subscribe(func() {
			calls++
		})
		count.SetValue(1)
		driver.Tick()
		assert.Equal(t, 1, calls)
	}

	_, ok = reactive.AsSource(42)
	assert.False(t, ok)
	_, ok = reactive.AsSource(nil)
	assert.False(t, ok)
}
