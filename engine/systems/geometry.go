package systems

import (
	"fmt"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

type GeometrySystem struct {
	Config *metadata.GeometrySystemConfig
	// Registered geometries by id.
	RegisteredGeometries map[core.Identifier]*metadata.GeometryReference

	materialSystem *MaterialSystem
	renderer       *renderer.Renderer
}

/**
 * @brief Initializes the geometry system.
 *
 * @param config The configuration for this system.
 * @param ms The material system geometries acquire their material from.
 * @param r The renderer geometries are uploaded through.
 */
func NewGeometrySystem(config *metadata.GeometrySystemConfig, ms *MaterialSystem, r *renderer.Renderer) (*GeometrySystem, error) {
	if config.MaxGeometryCount == 0 {
		err := fmt.Errorf("func NewGeometrySystem - config.MaxGeometryCount must be > 0")
		core.LogWarn(err.Error())
		return nil, err
	}
	return &GeometrySystem{
		Config:               config,
		RegisteredGeometries: make(map[core.Identifier]*metadata.GeometryReference, config.MaxGeometryCount),
		materialSystem:       ms,
		renderer:             r,
	}, nil
}

/**
 * @brief Shuts down the geometry system, destroying everything still registered.
 */
func (gs *GeometrySystem) Shutdown() error {
	for id, ref := range gs.RegisteredGeometries {
		core.LogWarn("geometry '%s' still has %d references at shutdown", ref.Geometry.Name, ref.ReferenceCount)
		gs.destroyGeometry(ref.Geometry)
		delete(gs.RegisteredGeometries, id)
	}
	return nil
}

/**
 * @brief Acquires an existing geometry by id.
 *
 * @param id The geometry identifier to acquire by.
 * @return A pointer to the acquired geometry or nil if failed.
 */
func (gs *GeometrySystem) AcquireByID(id core.Identifier) (*metadata.Geometry, error) {
	if ref, ok := gs.RegisteredGeometries[id]; ok {
		ref.ReferenceCount++
		return ref.Geometry, nil
	}
	err := fmt.Errorf("func AcquireByID cannot load unknown geometry id %s", id)
	core.LogError(err.Error())
	return nil, err
}

/**
 * @brief Registers and acquires a new geometry using the given config.
 *
 * @param config The geometry configuration.
 * @param autoRelease Indicates if the acquired geometry should be unloaded when its reference count reaches 0.
 * @return A pointer to the acquired geometry or nil if failed.
 */
func (gs *GeometrySystem) AcquireFromConfig(config *metadata.GeometryConfig, autoRelease bool) (*metadata.Geometry, error) {
	if uint32(len(gs.RegisteredGeometries)) >= gs.Config.MaxGeometryCount {
		err := fmt.Errorf("unable to obtain free slot for geometry. Adjust configuration to allow more space")
		core.LogError(err.Error())
		return nil, err
	}

	geometry := &metadata.Geometry{
		ID:   core.IdentifierAcquireNewID(),
		Name: config.Name,
	}
	if err := gs.createGeometry(config, geometry); err != nil {
		core.LogError("failed to create geometry '%s': %s", config.Name, err)
		return nil, err
	}
	gs.RegisteredGeometries[geometry.ID] = &metadata.GeometryReference{
		ReferenceCount: 1,
		Geometry:       geometry,
		AutoRelease:    autoRelease,
	}
	return geometry, nil
}

/**
 * @brief Releases a reference to the provided geometry.
 *
 * @param geometry The geometry to be released.
 */
func (gs *GeometrySystem) Release(geometry *metadata.Geometry) {
	if !geometry.IsValid() {
		core.LogWarn("GeometrySystem.Release cannot release invalid geometry id. Nothing was done.")
		return
	}
	ref, ok := gs.RegisteredGeometries[geometry.ID]
	if !ok {
		core.LogError("Geometry id mismatch. Check registration logic, as this should never occur.")
		return
	}
	if ref.ReferenceCount > 0 {
		ref.ReferenceCount--
	}
	// Also blanks out the geometry id.
	if ref.ReferenceCount < 1 && ref.AutoRelease {
		delete(gs.RegisteredGeometries, geometry.ID)
		gs.destroyGeometry(ref.Geometry)
	}
}

// LiveCount returns the number of geometries holding backend resources.
func (gs *GeometrySystem) LiveCount() int {
	return len(gs.RegisteredGeometries)
}

func (gs *GeometrySystem) createGeometry(config *metadata.GeometryConfig, geometry *metadata.Geometry) error {
	// Send the geometry off to the renderer to be uploaded to the GPU.
	if err := gs.renderer.CreateGeometry(geometry, config.Vertices, config.Indices); err != nil {
		geometry.ID = core.InvalidID
		geometry.Generation = 0
		geometry.InternalID = 0
		return err
	}

	// Copy over extents, center, etc.
	geometry.Center = config.Center
	geometry.Extents.Min = config.MinExtents
	geometry.Extents.Max = config.MaxExtents
	geometry.Vertices = config.Vertices
	geometry.Indices = config.Indices

	// Acquire the material
	if len(config.MaterialName) > 0 {
		mat, err := gs.materialSystem.Acquire(config.MaterialName)
		if err != nil {
			core.LogWarn("%s, falling back to the default material", err)
			mat = gs.materialSystem.GetDefault()
		}
		geometry.Material = mat
	}
	return nil
}

func (gs *GeometrySystem) destroyGeometry(geometry *metadata.Geometry) {
	gs.renderer.DestroyGeometry(geometry)
	geometry.InternalID = 0
	geometry.Generation = 0
	geometry.ID = core.InvalidID

	geometry.Name = ""

	// Release the material.
	if geometry.Material != nil && len(geometry.Material.Name) > 0 {
		gs.materialSystem.Release(geometry.Material.Name)
		geometry.Material = nil
	}
}
