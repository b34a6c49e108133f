package metadata

import (
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
)

type Mesh struct {
	UniqueID  core.Identifier
	Geometry  *Geometry
	Transform *math.Transform
}
