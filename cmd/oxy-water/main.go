package main

import (
	"flag"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/config"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/device/opengl"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/Carmen-Shannon/oxy-gl/engine/simulation"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
	log "github.com/sirupsen/logrus"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

var version = "dev"

func main() {
	flagVersion := flag.Bool("version", false, "show version and exit")
	flagConfig := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	if *flagVersion {
		fmt.Printf("oxy-water %s\n", version)
		return
	}

	cfg := config.Default()
	if *flagConfig != "" {
		var err error
		if cfg, err = config.Load(*flagConfig); err != nil {
			log.Fatal(err)
		}
	}
	log.SetLevel(cfg.LogLevel())

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config) error {
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithVSync(cfg.Window.VSync),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	ctx, err := opengl.NewContext()
	if err != nil {
		return err
	}
	defer ctx.Close()

	c := cfg.Render.ClearColor
	r, err := renderer.NewRenderer(ctx,
		renderer.WithClearColor(c[0], c[1], c[2], c[3]),
		renderer.WithSize(win.Width(), win.Height()),
	)
	if err != nil {
		return err
	}
	defer r.Close()

	camOptions := []camera.CameraBuilderOption{
		camera.WithFov(degrees(cfg.Camera.Fov)),
		camera.WithNear(cfg.Camera.Near),
		camera.WithFar(cfg.Camera.Far),
		camera.WithController(camera.NewCameraController(
			camera.WithRadius(cfg.Camera.Radius),
			camera.WithElevation(degrees(cfg.Camera.Elevation)),
			camera.WithMouseSensitivity(cfg.Camera.MouseSensitivity),
			camera.WithZoomSpeed(cfg.Camera.ZoomSpeed),
		)),
	}
	// a minimised window reports a zero height; keep the default aspect until it resizes
	if a, ok := aspect(win.Width(), win.Height()); ok {
		camOptions = append(camOptions, camera.WithAspect(a))
	}
	cam := camera.NewCamera(camOptions...)

	sim := simulation.NewSimulation(
		simulation.WithBodyCount(cfg.Simulation.Bodies),
		simulation.WithGravity(cfg.Simulation.Gravity),
		simulation.WithSoftening(cfg.Simulation.Softening),
		simulation.WithSpread(cfg.Simulation.Spread),
		simulation.WithHeight(cfg.Simulation.Height),
		simulation.WithSeed(cfg.Simulation.Seed),
		simulation.WithWorkers(cfg.Simulation.Workers),
	)

	sc := scene.NewScene(
		scene.WithCamera(cam),
		scene.WithSimulation(sim),
		scene.WithWater(cfg.Render.WaterHeight, cfg.Render.WaterSize),
		scene.WithGroundHeight(cfg.Render.GroundHeight),
		scene.WithSphere(cfg.Render.SphereRadius, cfg.Render.SphereBands),
		scene.WithPointSize(cfg.Render.PointSize),
		scene.WithShowAxes(cfg.Render.ShowAxes),
		scene.WithReflections(cfg.Render.Reflections),
		scene.WithPaused(cfg.Simulation.Paused),
	)
	defer sc.Close()

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithTickRate(float64(cfg.Simulation.TickRate)),
		engine.WithProfiling(log.IsLevelEnabled(log.DebugLevel)),
	)

	win.SetResizeCallback(func(width, height int) {
		r.Resize(width, height)
		if a, ok := aspect(width, height); ok {
			cam.SetAspect(a)
		}
	})
	setupInput(eng, sc)

	var lastReport time.Time
	eng.SetTickCallback(func(dt float32) {
		sc.Tick(dt)
		if time.Since(lastReport) >= time.Second {
			lastReport = time.Now()
			reportQuantities(sc.Quantities())
		}
	})
	eng.SetRenderCallback(func(_ float32) error {
		return r.Render(sc, sc.Drawables(r)...)
	})

	log.WithFields(log.Fields{
		"version": version,
		"bodies":  sim.Len(),
	}).Info("starting oxy-water")
	return eng.Run()
}

// setupInput wires camera controls: left-mouse drag orbits, scroll zooms, space pauses,
// R resets the simulation and Esc quits.
//
// Parameters:
//   - eng: the engine instance providing the window
//   - sc: the scene to control
func setupInput(eng engine.Engine, sc scene.Scene) {
	ctrl := sc.Camera().Controller()

	var dragging bool
	var lastX, lastY int32

	eng.Window().SetMouseDownCallback(func(button uint32, x, y int32) {
		if button == common.MouseButtonLeft {
			dragging = true
			lastX, lastY = x, y
		}
	})

	eng.Window().SetMouseUpCallback(func(button uint32, _, _ int32) {
		if button == common.MouseButtonLeft {
			dragging = false
		}
	})

	eng.Window().SetMouseMoveCallback(func(x, y int32) {
		if !dragging {
			return
		}
		dx := float32(x - lastX)
		dy := float32(y - lastY)
		ctrl.Orbit(dx*ctrl.MouseSensitivity(), -dy*ctrl.MouseSensitivity())
		lastX, lastY = x, y
	})

	eng.Window().SetScrollCallback(func(delta float32) {
		ctrl.Zoom(delta)
	})

	eng.Window().SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case common.KeySpace:
			sc.SetPaused(!sc.Paused())
		case common.KeyR:
			sc.Reset()
		case common.KeyEsc:
			eng.Quit()
		}
	})
}

func reportQuantities(q simulation.Snapshot) {
	log.WithFields(log.Fields{
		"steps":    q.Steps,
		"time":     q.Time,
		"momentum": q.Momentum.Len(),
		"angular":  q.AngularMomentum.Len(),
		"energy":   q.Energy,
	}).Info("conserved quantities")
}

// aspect returns width/height, or false when either side is not positive.
func aspect(width, height int) (float32, bool) {
	if width <= 0 || height <= 0 {
		return 0, false
	}
	return float32(width) / float32(height), true
}

func degrees(d float32) float32 {
	return d * math.Pi / 180
}
