package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow runs a bounded message loop and advances a manual clock by step on every
// iteration.
type fakeWindow struct {
	onUpdate func()
	running  bool
	swaps    int
	closes   int

	maxFrames int
	clock     *manualClock
	step      time.Duration
}

var _ window.Window = &fakeWindow{}

func (w *fakeWindow) SetUpdateCallback(callback func()) { w.onUpdate = callback }
func (w *fakeWindow) SetResizeCallback(func(width, height int)) {}
func (w *fakeWindow) SetScrollCallback(func(delta float32)) {}
func (w *fakeWindow) SetKeyDownCallback(func(keyCode uint32)) {}
func (w *fakeWindow) SetKeyUpCallback(func(keyCode uint32)) {}
func (w *fakeWindow) SetMouseDownCallback(func(button uint32, x, y int32)) {}
func (w *fakeWindow) SetMouseUpCallback(func(button uint32, x, y int32)) {}
func (w *fakeWindow) SetMouseMoveCallback(func(x, y int32)) {}
func (w *fakeWindow) SwapBuffers() { w.swaps++ }
func (w *fakeWindow) IsRunning() bool { return w.running }
func (w *fakeWindow) RequestClose() { w.running = false; w.closes++ }
func (w *fakeWindow) Close() error { return nil }
func (w *fakeWindow) Width() int { return 640 }
func (w *fakeWindow) Height() int { return 480 }

func (w *fakeWindow) ProcessMessages() {
	for frames := 0; w.running && frames < w.maxFrames; frames++ {
		w.clock.advance(w.step)
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

type manualClock struct {
	t time.Time
}

func (c *manualClock) now() time.Time { return c.t }
func (c *manualClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEngine(t *testing.T, frames int, step time.Duration, options ...EngineBuilderOption) (*engine, *fakeWindow) {
	t.Helper()
	clock := &manualClock{t: time.Unix(1_000, 0)}
	w := &fakeWindow{running: true, maxFrames: frames, clock: clock, step: step}
	logger, _ := test.NewNullLogger()

	opts := append([]EngineBuilderOption{WithWindow(w), WithLogger(log.NewEntry(logger))}, options...)
	e := NewEngine(opts...).(*engine)
	e.now = clock.now
	return e, w
}

func TestRunTicksAtFixedRate(t *testing.T) {
	e, w := newTestEngine(t, 10, 25*time.Millisecond, WithTickRate(100))

	var ticks int
	var tickDts []float32
	e.SetTickCallback(func(dt float32) {
		ticks++
		tickDts = append(tickDts, dt)
	})
	var frames int
	e.SetRenderCallback(func(dt float32) error {
		frames++
		assert.InDelta(t, 0.025, dt, 1e-6)
		return nil
	})

	require.NoError(t, e.Run())
	assert.Equal(t, 10, frames)
	assert.Equal(t, 10, w.swaps)
	// 250ms of wall time at 100Hz.
	assert.Equal(t, 25, ticks)
	for _, dt := range tickDts {
		assert.InDelta(t, 0.01, dt, 1e-7)
	}
}

func TestTicksRunBeforeRender(t *testing.T) {
	e, _ := newTestEngine(t, 3, 20*time.Millisecond, WithTickRate(50))

	var order []string
	e.SetTickCallback(func(float32) { order = append(order, "tick") })
	e.SetRenderCallback(func(float32) error {
		order = append(order, "render")
		return nil
	})

	require.NoError(t, e.Run())
	assert.Equal(t, []string{"tick", "render", "tick", "render", "tick", "render"}, order)
}

func TestRenderErrorStopsLoop(t *testing.T) {
	e, w := newTestEngine(t, 10, 10*time.Millisecond)

	boom := errors.New("boom")
	var frames int
	e.SetRenderCallback(func(float32) error {
		frames++
		if frames == 3 {
			return boom
		}
		return nil
	})

	err := e.Run()
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, frames)
	// The failed frame is never presented.
	assert.Equal(t, 2, w.swaps)
	assert.False(t, w.running)
}

func TestStallIsCappedToCatchUpLimit(t *testing.T) {
	e, _ := newTestEngine(t, 1, 5*time.Second, WithTickRate(60))

	var ticks int
	e.SetTickCallback(func(float32) { ticks++ })

	require.NoError(t, e.Run())
	assert.Equal(t, maxCatchUpTicks, ticks)
}

func TestQuitStopsAfterCurrentFrame(t *testing.T) {
	e, w := newTestEngine(t, 100, 10*time.Millisecond)

	var frames int
	e.SetRenderCallback(func(float32) error {
		frames++
		if frames == 4 {
			e.Quit()
		}
		return nil
	})

	require.NoError(t, e.Run())
	assert.Equal(t, 4, frames)
	assert.Equal(t, 4, w.swaps)
	assert.Equal(t, 1, w.closes)
}

func TestProfilerTicksOnlyWhenEnabled(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	p := profiler.NewProfiler(profiler.WithInterval(time.Nanosecond), profiler.WithLogger(log.NewEntry(logger)))

	e, _ := newTestEngine(t, 3, 10*time.Millisecond, WithProfiler(p))
	require.NoError(t, e.Run())
	assert.Empty(t, hook.AllEntries())

	e.EnableProfiler()
	e.window.(*fakeWindow).running = true
	require.NoError(t, e.Run())
	assert.NotEmpty(t, hook.AllEntries())
}

func TestTickRateDefaults(t *testing.T) {
	assert.Equal(t, time.Second/60, tickDuration(0))
	assert.Equal(t, time.Second/60, tickDuration(-5))
	assert.Equal(t, 10*time.Millisecond, tickDuration(100))
	assert.Zero(t, frameLimit(0))
	assert.Equal(t, 20*time.Millisecond, frameLimit(50))

	e := NewEngine()
	e.SetTickRate(30)
	assert.Equal(t, time.Second/30, e.(*engine).engineTickRate)
}
