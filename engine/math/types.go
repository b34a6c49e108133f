package math

import "github.com/go-gl/mathgl/mgl32"

type Vec2 = mgl32.Vec2

type Vec3 = mgl32.Vec3

type Vec4 = mgl32.Vec4

/** @brief a 4x4 column-major matrix, typically used to represent object transformations. */
type Mat4 = mgl32.Mat4

/**
 * @brief Represents the extents of a 3d object.
 */
type Extents3D struct {
	/** @brief The minimum extents of the object. */
	Min Vec3
	/** @brief The maximum extents of the object. */
	Max Vec3
}

/**
 * @brief Represents a single vertex in 3D space.
 */
type Vertex3D struct {
	/** @brief The position of the vertex */
	Position Vec3
	/** @brief The normal of the vertex. */
	Normal Vec3
	/** @brief The texture coordinate of the vertex. */
	Texcoord Vec2
}

/**
 * @brief Represents the transform of an object in the world.
 * Rotation is stored as Euler angles in radians applied in X, Y, Z order,
 * so callers can accumulate yaw and pitch independently. Use the setters
 * so the local matrix is rebuilt when needed.
 */
type Transform struct {
	/** @brief The position in the world. */
	Position Vec3
	/** @brief The Euler rotation (x = pitch, y = yaw, z = roll) in radians. */
	Rotation Vec3
	/** @brief The scale in the world. */
	Scale Vec3
	/**
	 * @brief Indicates if the position, rotation or scale have changed,
	 * indicating that the local matrix needs to be recalculated.
	 */
	IsDirty bool
	/**
	 * @brief The local transformation matrix, updated whenever
	 * the position, rotation or scale have changed.
	 */
	Local Mat4
	/** @brief A pointer to a parent transform if one is assigned. Can also be null. */
	Parent *Transform
}
