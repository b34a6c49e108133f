package metadata

import (
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
)

/** @brief The name of the default material. */
const DefaultMaterialName string = "default"

/**
 * @brief Material configuration created in code to load a Phong material from.
 */
type MaterialConfig struct {
	/** @brief The name of the material. */
	Name string
	/** @brief The diffuse colour of the material. */
	DiffuseColour math.Vec3
	/** @brief The specular colour of the material. */
	SpecularColour math.Vec3
	/** @brief The shininess of the material. */
	Shininess float32
	/** @brief Shade each face with its own normal instead of interpolated ones. */
	FlatShading bool
}

/**
 * @brief A material, which represents various properties
 * of a surface in the world such as colour and shininess.
 */
type Material struct {
	/** @brief The material id. */
	ID core.Identifier
	/** @brief The material generation. Incremented every time the material is changed. */
	Generation uint32
	/** @brief The material name. */
	Name           string
	DiffuseColour  math.Vec3
	SpecularColour math.Vec3
	Shininess      float32
	FlatShading    bool
}

type MaterialReference struct {
	ReferenceCount uint64
	Material       *Material
}

type MaterialSystemConfig struct {
	MaxMaterialCount uint32
}
