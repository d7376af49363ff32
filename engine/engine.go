package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
	log "github.com/sirupsen/logrus"
)

// maxCatchUpTicks bounds the ticks run in one frame after a stall, so a long pause does not
// turn into a burst of simulation steps.
const maxCatchUpTicks = 8

// engine implements the Engine interface.
type engine struct {
	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32) error

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	// now is the clock; replaced in tests.
	now         func() time.Time
	lastFrame   time.Time
	accumulator time.Duration

	err    error
	logger *log.Entry
}

// Engine is the main entry point for the engine.
//
// The engine runs one cooperative loop on the window's thread. Every window iteration runs
// the fixed-rate tick callback as many times as the elapsed time requires, then the render
// callback once, then swaps buffers. Nothing runs concurrently with rendering, which keeps
// all GPU state on the thread that owns the context.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	// The tick callback will be called at this rate for simulation updates.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// Use this for simulation, input processing and camera updates.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the fixed tick duration in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each render frame.
	// A returned error stops the engine: a frame is either fully rendered or the render
	// capability is considered broken.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the frame delta time in seconds
	SetRenderCallback(callback func(deltaTime float32) error)

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the main loop and blocks until the window closes or Quit is called.
	//
	// Returns:
	//   - error: the render error that stopped the engine, or nil
	Run() error

	// Quit asks the loop to stop after the current iteration.
	// Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (window, profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profiler:       profiler.NewProfiler(),
		engineTickRate: time.Second / 60,
		now:            time.Now,
		logger:         log.WithField("component", "engine"),
	}

	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() error {
	e.lastFrame = e.now()
	e.accumulator = 0
	e.err = nil

	e.window.SetUpdateCallback(func() {
		e.frame()
	})
	e.logger.WithField("tick_rate", e.engineTickRate).Info("engine running")
	e.window.ProcessMessages()
	e.logger.Info("engine stopped")
	return e.err
}

// frame runs one loop iteration: the owed ticks, the render callback, the buffer swap and the
// profiler.
func (e *engine) frame() {
	start := e.now()
	elapsed := start.Sub(e.lastFrame)
	e.lastFrame = start

	e.accumulator += elapsed
	if limit := maxCatchUpTicks * e.engineTickRate; e.accumulator > limit {
		e.accumulator = limit
	}
	tickSeconds := float32(e.engineTickRate.Seconds())
	for e.accumulator >= e.engineTickRate {
		if e.tickCallback != nil {
			e.tickCallback(tickSeconds)
		}
		e.accumulator -= e.engineTickRate
	}

	if e.renderCallback != nil {
		if err := e.renderCallback(float32(elapsed.Seconds())); err != nil {
			e.err = err
			e.logger.WithError(err).Error("render failed, stopping")
			e.Quit()
			return
		}
	}
	e.window.SwapBuffers()

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

func (e *engine) Quit() {
	if e.window != nil {
		e.window.RequestClose()
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickRate(fps float64) {
	e.engineTickRate = tickDuration(fps)
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32) error) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameLimit(fps)
}

func tickDuration(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

func frameLimit(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
