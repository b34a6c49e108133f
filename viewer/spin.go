package viewer

import (
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
)

// MotionState is the mutable interaction state of the spin controller.
// X components drive rotation about y (yaw) and Y components drive rotation
// about x (pitch), matching horizontal and vertical pointer movement.
type MotionState struct {
	Dragging bool
	// Radians added to the rotation every idle frame.
	Momentum math.Vec2
	// Scaled delta of the most recent drag move. Survives later presses.
	LastDelta math.Vec2
	// Pointer position of the most recent move, dragging or not.
	LastPointer math.Vec2
}

type SpinSettings struct {
	// Radians per pointer pixel.
	Sensitivity float32 `toml:"sensitivity"`
	// Applied to the last drag delta on release.
	ReleaseFactor float32 `toml:"release_factor"`
	// Multiplies the momentum every idle frame. Must be in (0,1).
	Decay float32 `toml:"decay"`
}

func DefaultSpinSettings() SpinSettings {
	return SpinSettings{
		Sensitivity:   0.01,
		ReleaseFactor: 0.95,
		Decay:         0.99,
	}
}

// SpinController rotates the target while dragging and keeps it spinning
// with decaying momentum after release.
type SpinController struct {
	State    MotionState
	settings SpinSettings
	target   *math.Transform
}

func NewSpinController(target *math.Transform, settings SpinSettings) *SpinController {
	return &SpinController{
		settings: settings,
		target:   target,
	}
}

// PointerDown stops any spin. LastDelta is kept, so a press and release with
// no move in between resumes the previous spin.
func (sc *SpinController) PointerDown(p math.Vec2) {
	sc.State.Dragging = true
	sc.State.Momentum = math.Vec2{}
}

func (sc *SpinController) PointerMove(p math.Vec2) {
	if sc.State.Dragging {
		delta := p.Sub(sc.State.LastPointer).Mul(sc.settings.Sensitivity)
		sc.target.RotateY(delta.X())
		sc.target.RotateX(delta.Y())
		sc.State.LastDelta = delta
	}
	sc.State.LastPointer = p
}

// PointerUp seeds the momentum from the last move only. Fast flicks that end
// with a slow final sample will spin slowly.
func (sc *SpinController) PointerUp() {
	if !sc.State.Dragging {
		return
	}
	sc.State.Dragging = false
	sc.State.Momentum = sc.State.LastDelta.Mul(sc.settings.ReleaseFactor)
}

func (sc *SpinController) Tick(frame core.FrameContext) {
	if sc.State.Dragging {
		return
	}
	sc.target.RotateY(sc.State.Momentum.X())
	sc.target.RotateX(sc.State.Momentum.Y())
	sc.State.Momentum = sc.State.Momentum.Mul(sc.settings.Decay)
}

func (sc *SpinController) Dragging() bool {
	return sc.State.Dragging
}

func (sc *SpinController) Reset() {
	sc.State = MotionState{LastPointer: sc.State.LastPointer}
}
