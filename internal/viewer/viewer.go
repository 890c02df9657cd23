// Package viewer implements the interactive planet terrain viewer loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/planetterrain/internal/config"
	"github.com/Faultbox/planetterrain/internal/engine/camera"
	"github.com/Faultbox/planetterrain/internal/engine/debug"
	"github.com/Faultbox/planetterrain/internal/engine/input"
	"github.com/Faultbox/planetterrain/internal/engine/lighting"
	"github.com/Faultbox/planetterrain/internal/engine/renderer"
	"github.com/Faultbox/planetterrain/internal/engine/scene"
	"github.com/Faultbox/planetterrain/internal/engine/terrain"
	"github.com/Faultbox/planetterrain/internal/engine/window"
	"github.com/Faultbox/planetterrain/internal/logger"
	"github.com/Faultbox/planetterrain/pkg/planet"
)

// reload carries the outcome of a config file change to the loop thread.
type reload struct {
	cfg *config.Config
	err error
}

// Viewer is the main viewer instance.
type Viewer struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	planet   *scene.PlanetRenderer
	bounds   *scene.LineRenderer

	terrain *planet.Terrain
	tracker *terrain.Tracker
	origin  terrain.RenderOrigin
	dir     mgl64.Vec3
	fitted  bool

	showBounds  bool
	screenshots *debug.ScreenshotCapture

	watcher *config.Watcher
	reloads chan reload
}

// New opens the window and prepares the terrain described by cfg. load
// re-reads the configuration when the config file changes.
func New(cfg *config.Config, load func() (*config.Config, error)) (*Viewer, error) {
	v := &Viewer{
		cfg:         cfg,
		camera:      camera.NewOrbitCamera(),
		screenshots: debug.NewScreenshotCapture(cfg.Graphics.ScreenshotDir, "planet"),
		reloads:     make(chan reload, 1),
	}

	if err := v.applyTerrain(cfg); err != nil {
		return nil, err
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "Planet Terrain",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    cfg.Graphics.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer after window, since the OpenGL context must exist
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.planet, err = scene.NewPlanetRenderer()
	if err != nil {
		v.Close()
		return nil, err
	}
	v.planet.LightDir = lighting.SunDirection(cfg.Graphics.SunAzimuth, cfg.Graphics.SunElevation)
	v.bounds, err = scene.NewLineRenderer()
	if err != nil {
		v.Close()
		return nil, err
	}
	v.input = input.New()

	if err := v.uploadGridTexture(); err != nil {
		v.Close()
		return nil, err
	}

	if cfg.Path() != "" {
		v.watcher, err = config.Watch(cfg.Path(), load, v.onConfigChange)
		if err != nil {
			logger.Warn("config hot reload disabled", zap.String("path", cfg.Path()), zap.Error(err))
		} else {
			logger.Info("watching config", zap.String("path", cfg.Path()))
		}
	}

	logger.Info("viewer initialized")
	return v, nil
}

// applyTerrain builds the terrain for cfg and resets the viewpoint.
func (v *Viewer) applyTerrain(cfg *config.Config) error {
	t, err := planet.New(cfg.PlanetParams())
	if err != nil {
		return fmt.Errorf("terrain: %w", err)
	}
	v.cfg = cfg
	v.terrain = t
	v.dir = mgl64.Vec3(cfg.View.Direction).Normalize()
	if v.tracker == nil {
		v.tracker = terrain.NewTracker(t.FaceResolution())
	} else {
		v.tracker.Reset(t.FaceResolution())
	}
	v.fitted = false

	if logger.Level() <= zapcore.DebugLevel {
		logger.Sugar.Debugf("terrain params:\n%s", spew.Sdump(cfg.PlanetParams()))
	}
	return nil
}

// onConfigChange runs on the watcher goroutine; the loop applies the result.
func (v *Viewer) onConfigChange(cfg *config.Config, err error) {
	select {
	case v.reloads <- reload{cfg, err}:
	default:
		// A reload is already pending; replace it with the newer one.
		select {
		case <-v.reloads:
		default:
		}
		v.reloads <- reload{cfg, err}
	}
}

func (v *Viewer) uploadGridTexture() error {
	start := time.Now()
	img, err := debug.GridTexture(v.cfg.Texture.Resolution, v.cfg.GridCells(), v.cfg.GridStyle())
	if err != nil {
		return fmt.Errorf("grid texture: %w", err)
	}
	levels := debug.MipChain(img, v.cfg.Texture.MinMipSize)
	v.planet.SetGridTexture(levels)

	logger.Debug("grid texture uploaded",
		zap.Int("resolution", v.cfg.Texture.Resolution),
		zap.Int("levels", len(levels)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// rebuild recomputes the chunk set around the current viewpoint.
func (v *Viewer) rebuild() error {
	start := time.Now()

	faceRes := v.terrain.FaceResolution()
	coords := terrain.BuildChunkSet(faceRes, v.dir, v.cfg.View.Rings)

	origin, err := terrain.OriginAbove(v.terrain, v.dir, v.cfg.View.Clearance)
	if err != nil {
		return err
	}

	meshes, err := terrain.BuildChunkMeshes(v.terrain, v.terrain.MinRadius(), coords,
		v.cfg.View.MeshResolution, origin, v.cfg.View.Workers)
	if err != nil {
		// Keep the chunks that did build.
		logger.Warn("some chunks failed to build", zap.Error(err))
		meshes = terrain.BuiltMeshes(meshes)
	}

	v.origin = origin
	if logger.Level() <= zapcore.DebugLevel {
		logger.Sugar.Debugf("render origin:\n%s", spew.Sdump(v.origin))
	}
	uploaded := v.planet.Upload(meshes)

	wire := make([]float32, 0, len(meshes)*debug.BBoxWireframeVertexCount*3)
	for _, m := range meshes {
		wire = append(wire, debug.BBoxWireframe(m.Bounds.Min, m.Bounds.Max, 0)...)
	}
	v.bounds.SetLines(wire)

	total := terrain.TotalBounds(meshes)
	if !v.fitted {
		v.camera.FitToBounds(total.Min, total.Max)
		v.fitted = true
	}

	base, _ := v.tracker.Base()
	v.window.SetStatus(fmt.Sprintf("%s, %d chunks", base, v.planet.ChunkCount()))
	logger.Info("terrain rebuilt",
		zap.Stringer("base", base),
		zap.Int("chunks", v.planet.ChunkCount()),
		zap.String("uploaded", humanize.Bytes(uploaded)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		if err := v.update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			width, height := v.window.DrawableSize()
			v.renderer.Resize(width, height)
		case input.EventMouseMove:
			if event.Button == uint8(sdl.BUTTON_LEFT) {
				v.camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			}
		case input.EventMouseWheel:
			v.camera.HandleZoom(float32(event.Wheel))
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_F12:
				v.screenshot()
			case sdl.SCANCODE_B:
				v.showBounds = !v.showBounds
			case sdl.SCANCODE_G:
				logger.Debug("wireframe", zap.Bool("enabled", v.renderer.ToggleWireframe()))
			}
		}
	}
}

// update applies pending reloads and steers the viewpoint.
func (v *Viewer) update(dt float64) error {
	select {
	case r := <-v.reloads:
		v.applyReload(r)
	default:
	}

	var east, north float64
	if input.IsKeyDown(sdl.SCANCODE_RIGHT) {
		east++
	}
	if input.IsKeyDown(sdl.SCANCODE_LEFT) {
		east--
	}
	if input.IsKeyDown(sdl.SCANCODE_UP) {
		north++
	}
	if input.IsKeyDown(sdl.SCANCODE_DOWN) {
		north--
	}
	step := patchAngle(v.terrain.FaceResolution()) * patchesPerSecond * dt
	v.dir = steer(v.dir, east*step, north*step)

	if v.tracker.Update(v.dir) {
		return v.rebuild()
	}
	return nil
}

func (v *Viewer) applyReload(r reload) {
	if r.err != nil {
		logger.Warn("config reload rejected", zap.Error(r.err))
		return
	}
	logger.SetLevel(r.cfg.Logging.Level)

	// Keep the running config if the new terrain cannot be built.
	prev := v.cfg
	if err := v.applyTerrain(r.cfg); err != nil {
		logger.Warn("config reload rejected", zap.Error(err))
		return
	}
	v.planet.LightDir = lighting.SunDirection(r.cfg.Graphics.SunAzimuth, r.cfg.Graphics.SunElevation)
	if r.cfg.Texture != prev.Texture || r.cfg.View.MeshResolution != prev.View.MeshResolution {
		if err := v.uploadGridTexture(); err != nil {
			logger.Warn("grid texture not updated", zap.Error(err))
		}
	}
	logger.Info("config reloaded")
}

func (v *Viewer) render() {
	v.renderer.Begin()

	view := v.camera.ViewMatrix()
	proj := v.camera.ProjectionMatrix(v.cfg.Graphics.FOV, v.renderer.Aspect())
	viewProj := proj.Mul4(view)

	v.planet.Render(viewProj)
	if v.showBounds {
		v.bounds.Render(viewProj)
	}

	v.renderer.End()
}

func (v *Viewer) screenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	path, err := v.screenshots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases viewer resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.watcher != nil {
		if err := v.watcher.Close(); err != nil {
			logger.Warn("closing config watcher", zap.Error(err))
		}
	}
	if v.bounds != nil {
		v.bounds.Destroy()
	}
	if v.planet != nil {
		v.planet.Destroy()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
