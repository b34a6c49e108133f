package viewer

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
)

// Controller turns pointer input into motion of the scene's mesh. Pointer
// handlers apply direct manipulation while dragging; Tick applies inertia
// while idle. The two never both mutate the mesh in the same frame.
type Controller interface {
	PointerDown(p math.Vec2)
	PointerMove(p math.Vec2)
	PointerUp()
	Tick(frame core.FrameContext)
	Dragging() bool
	// Reset drops any drag in progress and zeroes the motion state.
	Reset()
}

// Variant selects the interaction model.
type Variant string

const (
	// Drag to rotate with inertial spin.
	VariantSpin Variant = "spin"
	// Grab the shape and throw it around under gravity.
	VariantThrow Variant = "throw"
)

func ParseVariant(name string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(name))); v {
	case VariantSpin, VariantThrow:
		return v, nil
	case "":
		return VariantSpin, nil
	default:
		return VariantSpin, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
}

// Instructions is the hint line shown under the selector bar.
func (v Variant) Instructions() string {
	if v == VariantThrow {
		return "Click and drag to throw the shape around"
	}
	return "Click and drag to rotate the shape"
}

func (v Variant) Toggle() Variant {
	if v == VariantThrow {
		return VariantSpin
	}
	return VariantThrow
}
