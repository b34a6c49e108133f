package viewer

import (
	"github.com/spaghettifunk/prism/engine"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"golang.org/x/image/font"
)

type Viewer struct {
	*engine.Game
}

type viewerState struct {
	config     *Config
	configPath string

	manager *SceneManager
	bar     *SelectorBar
	face    font.Face
	watcher *ConfigWatcher

	shape   Shape
	variant Variant

	// Applied at the start of the next update.
	pendingShape   *Shape
	pendingConfig  *Config
	pendingVariant *Variant
	resetRequested bool
}

// NewViewer creates the game. configPath is watched for changes when not empty.
func NewViewer(config *Config, configPath string) (*Viewer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	v := &Viewer{
		Game: &engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{
				StartPosX:   config.Window.X,
				StartPosY:   config.Window.Y,
				StartWidth:  config.Window.Width,
				StartHeight: config.Window.Height,
				Name:        config.Window.Title,
				LogLevel:    core.ParseLogLevel(config.Log.Level),
				ShowFPS:     config.Window.ShowFPS,
			},
			State: &viewerState{
				config:     config,
				configPath: configPath,
				shape:      config.ShapeValue(),
				variant:    config.VariantValue(),
			},
		},
	}

	v.FnBoot = v.Boot
	v.FnInitialize = v.Initialize
	v.FnUpdate = v.Update
	v.FnRender = v.Render
	v.FnOnResize = v.OnResize
	v.FnShutdown = v.Shutdown

	return v, nil
}

func (v *Viewer) state() *viewerState {
	return v.State.(*viewerState)
}

// Scenes exposes the scene manager, mostly for inspection.
func (v *Viewer) Scenes() *SceneManager {
	return v.state().manager
}

func (v *Viewer) Boot() error {
	core.LogInfo("booting viewer...")
	st := v.state()
	st.face = LoadFace(st.config.UI.Font, st.config.UI.FontSize)
	return nil
}

func (v *Viewer) Initialize() error {
	st := v.state()

	st.bar = NewSelectorBar(st.face, st.config.UI.BarHeight, st.shape, st.variant)
	st.manager = NewSceneManager(v.Renderer, v.SystemManager, v.Events, v.Frames, st.config)

	// The bar listens before any scene so it can swallow clicks on buttons.
	v.Events.Register(core.EVENT_CODE_BUTTON_PRESSED, v, v.onButton)
	v.Events.Register(core.EVENT_CODE_KEY_PRESSED, v, v.onKey)
	v.Events.Register(core.EVENT_CODE_SHAPE_SELECTED, v, v.onShapeSelected)
	v.Events.Register(core.EVENT_CODE_CONFIG_RELOADED, v, v.onConfigReloaded)

	if st.configPath != "" {
		w, err := NewConfigWatcher(st.configPath, v.Events)
		if err != nil {
			core.LogWarn("config hot reload disabled: %s", err)
		} else {
			st.watcher = w
		}
	}

	if _, err := st.manager.Build(st.shape); err != nil {
		return err
	}
	return nil
}

func (v *Viewer) Update(deltaTime float64) error {
	st := v.state()

	rebuild := false
	if st.pendingConfig != nil {
		// [window] is only read at startup.
		if st.pendingConfig.Log != st.config.Log {
			core.LogConfigure(st.pendingConfig.LogOptions())
		}
		st.config = st.pendingConfig
		st.pendingConfig = nil
		st.manager.SetConfig(st.config)
		st.face = LoadFace(st.config.UI.Font, st.config.UI.FontSize)
		st.bar.SetFace(st.face, st.config.UI.BarHeight)
		st.variant = st.config.VariantValue()
		rebuild = true
	}
	if st.pendingVariant != nil {
		st.variant = *st.pendingVariant
		st.pendingVariant = nil
		st.config.Scene.Variant = string(st.variant)
		rebuild = true
	}
	if st.pendingShape != nil {
		if *st.pendingShape != st.shape || st.manager.Current() == nil {
			st.shape = *st.pendingShape
			rebuild = true
		}
		st.pendingShape = nil
	}
	if st.resetRequested {
		st.resetRequested = false
		rebuild = true
	}

	if rebuild {
		st.bar.SetActive(st.shape)
		st.bar.SetVariant(st.variant)
		if _, err := st.manager.Reconstruct(st.shape); err != nil {
			return err
		}
	}
	return nil
}

func (v *Viewer) Render(packet *metadata.RenderPacket, deltaTime float64) error {
	st := v.state()
	if s := st.manager.Current(); s != nil {
		s.Populate(packet)
	} else {
		packet.Background = math.NewVec3FromHex(st.config.Scene.Background)
	}
	packet.Overlay = st.bar.Overlay()
	return nil
}

func (v *Viewer) OnResize(width uint32, height uint32) error {
	v.state().bar.Resize(width, height)
	return nil
}

// Shutdown may run without a prior Initialize when the engine fails to
// start, so every piece is checked before use.
func (v *Viewer) Shutdown() error {
	st := v.state()
	if v.Events != nil {
		v.Events.UnregisterAll(v)
	}
	if st.manager != nil {
		st.manager.Teardown()
	}
	if st.watcher != nil {
		if err := st.watcher.Close(); err != nil {
			core.LogWarn("closing config watcher: %s", err)
		}
		st.watcher = nil
	}
	core.LogInfo("viewer shut down.")
	return nil
}

func (v *Viewer) selectShape(shape Shape) {
	v.Events.Fire(core.EventContext{
		Type: core.EVENT_CODE_SHAPE_SELECTED,
		Data: shape.String(),
	})
}

// onButton swallows every press on the bar so it never reaches the scene.
func (v *Viewer) onButton(ctx core.EventContext) bool {
	me, ok := ctx.Data.(*core.MouseEvent)
	if !ok {
		return false
	}
	bar := v.state().bar
	if !bar.Contains(me.X, me.Y) {
		return false
	}
	if me.Button == core.BUTTON_LEFT {
		if shape, hit := bar.HitTest(me.X, me.Y); hit {
			v.selectShape(shape)
		}
	}
	return true
}

func (v *Viewer) onKey(ctx core.EventContext) bool {
	ke, ok := ctx.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", ctx.Type)
		return false
	}
	st := v.state()
	switch {
	case ke.KeyCode >= core.KEY_1 && int(ke.KeyCode-core.KEY_1) < len(Shapes):
		v.selectShape(Shapes[ke.KeyCode-core.KEY_1])
		return true
	case ke.KeyCode == core.KEY_R:
		st.resetRequested = true
		return true
	case ke.KeyCode == core.KEY_T:
		next := st.variant.Toggle()
		st.pendingVariant = &next
		return true
	}
	return false
}

func (v *Viewer) onShapeSelected(ctx core.EventContext) bool {
	name, ok := ctx.Data.(string)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", ctx.Type)
		return false
	}
	shape, err := ParseShape(name)
	if err != nil {
		core.LogWarn(err.Error())
		return false
	}
	v.state().pendingShape = &shape
	return true
}

func (v *Viewer) onConfigReloaded(ctx core.EventContext) bool {
	cfg, ok := ctx.Data.(*Config)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", ctx.Type)
		return false
	}
	// Only settings are taken from the file; the shape picked in the window stays.
	v.state().pendingConfig = cfg
	return true
}
