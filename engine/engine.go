package engine

import (
	"fmt"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/platform"
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"github.com/spaghettifunk/prism/engine/renderer/opengl"
	"github.com/spaghettifunk/prism/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     bool
	isSuspended   bool
	platform      *platform.Platform
	renderer      *renderer.Renderer
	systemManager *systems.SystemManager
	events        *core.EventSystem
	input         *core.Input
	frames        *core.FrameScheduler
	metrics       *core.Metrics
	width         uint32
	height        uint32
	clock         *core.Clock
	lastTime      float64
	lastTitleTime float64
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("engine.New: %w", core.ErrNotInitialized)
	}
	core.LogSetLevel(g.ApplicationConfig.LogLevel)

	events := core.NewEventSystem()
	input := core.NewInput(events)

	p, err := platform.New(input, events)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	r := renderer.New(opengl.New(p))

	sm, err := systems.NewSystemManager(r)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	g.SystemManager = sm
	g.Renderer = r
	g.Events = events
	g.Input = input
	g.Frames = core.NewFrameScheduler()

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		clock:         core.NewClock(),
		platform:      p,
		renderer:      r,
		systemManager: sm,
		events:        events,
		input:         input,
		frames:        g.Frames,
		metrics:       core.NewMetrics(),
		isRunning:     false,
		isSuspended:   false,
		width:         g.ApplicationConfig.StartWidth,
		height:        g.ApplicationConfig.StartHeight,
		lastTime:      0,
	}, nil
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return core.ErrAlreadyRunning
	}

	e.currentStage = EngineStageBooting
	if e.gameInstance.FnBoot != nil {
		if err := e.gameInstance.FnBoot(); err != nil {
			return fmt.Errorf("game boot: %w", err)
		}
	}
	e.currentStage = EngineStageBootComplete

	e.currentStage = EngineStageInitializing

	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.events.Register(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	e.events.Register(core.EVENT_CODE_RESIZED, e, e.onResized)

	config := e.gameInstance.ApplicationConfig
	if err := e.platform.Startup(config.Name, config.StartPosX, config.StartPosY, config.StartWidth, config.StartHeight); err != nil {
		return fmt.Errorf("%w: %s", core.ErrWindowUnavailable, err)
	}
	if w, h := e.platform.WindowSize(); w != 0 && h != 0 {
		e.width, e.height = w, h
	}

	if err := e.renderer.Initialize(config.Name, e.width, e.height); err != nil {
		return err
	}

	if err := e.gameInstance.FnInitialize(); err != nil {
		return err
	}

	if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
		return err
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return core.ErrNotInitialized
	}
	e.currentStage = EngineStageRunning
	e.isRunning = true

	e.clock.Start()
	e.clock.Update()

	e.lastTime = e.clock.Elapsed()

	var targetFrameSeconds float64 = 1.0 / 60.0

	for e.isRunning {
		e.platform.PumpMessages()
		// Events posted from other goroutines are delivered here.
		e.events.Dispatch()
		if !e.isRunning {
			break
		}

		if e.isSuspended {
			e.platform.Sleep(uint64(targetFrameSeconds * 1000))
			continue
		}

		e.clock.Update()

		var currentTime float64 = e.clock.Elapsed()
		var delta float64 = (currentTime - e.lastTime)
		var frameStartTime float64 = e.platform.GetAbsoluteTime()

		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("Game update failed, shutting down: %s", err)
			e.isRunning = false
			break
		}

		e.frames.RunFrame(delta)

		packet := &metadata.RenderPacket{
			DeltaTime: delta,
		}
		if err := e.gameInstance.FnRender(packet, delta); err != nil {
			core.LogError("Game render failed, shutting down: %s", err)
			e.isRunning = false
			break
		}

		if err := e.renderer.DrawFrame(packet); err != nil {
			e.isRunning = false
			break
		}

		var frameEndTime float64 = e.platform.GetAbsoluteTime()
		var frameElapsedTime float64 = frameEndTime - frameStartTime
		e.metrics.Update(frameElapsedTime)
		e.updateTitle(frameEndTime)

		e.input.Update()

		e.lastTime = currentTime
	}

	return e.Shutdown()
}

// Quit asks the engine to stop after the current frame. Safe to call from
// any goroutine.
func (e *Engine) Quit() {
	e.events.Post(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError("game shutdown: %s", err)
		}
	}
	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	if err := e.renderer.Shutdown(); err != nil {
		return err
	}
	if err := e.events.Shutdown(); err != nil {
		return err
	}
	if err := e.platform.Shutdown(); err != nil {
		return err
	}
	return nil
}

// GetFramebufferSize returns the width and height (in this order)
// of the application window
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) updateTitle(now float64) {
	if !e.gameInstance.ApplicationConfig.ShowFPS || now-e.lastTitleTime < 1.0 {
		return
	}
	e.lastTitleTime = now
	fps, ms := e.metrics.Frame()
	e.platform.SetTitle(fmt.Sprintf("%s - %.0f FPS (%.2f ms)", e.gameInstance.ApplicationConfig.Name, fps, ms))
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		{
			core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
			e.isRunning = false
			return true
		}
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	if ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		e.events.Fire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
		// Block anything else from processing this.
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	width := se.WindowWidth
	height := se.WindowHeight

	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height

	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		// Nobody else should see a zero sized viewport.
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if err := e.renderer.OnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	if err := e.gameInstance.FnOnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	// Scene listeners also need the new size.
	return false
}
