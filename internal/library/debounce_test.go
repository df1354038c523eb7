package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualTimer is a timer the test fires by hand.
type manualTimer struct {
	fn      func()
	stopped bool
}

func (m *manualTimer) Stop() bool {
	wasPending := !m.stopped
	m.stopped = true
	return wasPending
}

func (m *manualTimer) fire() {
	if !m.stopped {
		m.stopped = true
		m.fn()
	}
}

// timerRecorder is a TimerFactory that hands out manual timers.
type timerRecorder struct {
	timers []*manualTimer
	delays []time.Duration
}

func (r *timerRecorder) factory(d time.Duration, fn func()) Timer {
	mt := &manualTimer{fn: fn}
	r.timers = append(r.timers, mt)
	r.delays = append(r.delays, d)
	return mt
}

func (r *timerRecorder) last() *manualTimer {
	return r.timers[len(r.timers)-1]
}

func TestDebouncerCoalescesBursts(t *testing.T) {
	rec := &timerRecorder{}
	fired := 0
	d := newDebouncer(400*time.Millisecond, rec.factory, func() { fired++ })

	d.Arm()
	d.Arm()
	d.Arm()

	// Three arms created three timers but stopped the first two.
	require.Len(t, rec.timers, 3)
	assert.True(t, rec.timers[0].stopped)
	assert.True(t, rec.timers[1].stopped)
	assert.False(t, rec.timers[2].stopped)
	assert.Equal(t, 400*time.Millisecond, rec.delays[0])

	rec.last().fire()
	assert.Equal(t, 1, fired)
}

func TestDebouncerCancel(t *testing.T) {
	rec := &timerRecorder{}
	fired := 0
	d := newDebouncer(time.Millisecond, rec.factory, func() { fired++ })

	assert.False(t, d.Cancel(), "nothing pending yet")

	d.Arm()
	assert.True(t, d.Cancel())
	assert.Equal(t, 0, fired)

	// Cancelled timer firing is a no-op.
	rec.last().fire()
	assert.Equal(t, 0, fired)

	assert.False(t, d.Cancel(), "cancel already consumed the pending timer")
}

func TestDebouncerRearmsAfterFire(t *testing.T) {
	rec := &timerRecorder{}
	fired := 0
	d := newDebouncer(time.Millisecond, rec.factory, func() { fired++ })

	d.Arm()
	rec.last().fire()
	d.Arm()
	rec.last().fire()

	assert.Equal(t, 2, fired)
}

func TestDebouncerDefaultFactory(t *testing.T) {
	done := make(chan struct{})
	d := newDebouncer(time.Millisecond, nil, func() { close(done) })
	d.Arm()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}
}
