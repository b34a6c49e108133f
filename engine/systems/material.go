package systems

import (
	"fmt"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// MaterialSystem keeps reference counted Phong materials by name. A material
// is destroyed when its last reference is released.
type MaterialSystem struct {
	Config             *metadata.MaterialSystemConfig
	RegisteredMaterial map[string]*metadata.MaterialReference

	defaultMaterial *metadata.Material
}

func NewMaterialSystem(config *metadata.MaterialSystemConfig) (*MaterialSystem, error) {
	if config.MaxMaterialCount == 0 {
		err := fmt.Errorf("func NewMaterialSystem - config.MaxMaterialCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &MaterialSystem{
		Config:             config,
		RegisteredMaterial: make(map[string]*metadata.MaterialReference),
		defaultMaterial: &metadata.Material{
			ID:             core.IdentifierAcquireNewID(),
			Name:           metadata.DefaultMaterialName,
			DiffuseColour:  math.NewVec3One(),
			SpecularColour: math.NewVec3FromHex(0x111111),
			Shininess:      30,
		},
	}, nil
}

func (ms *MaterialSystem) Shutdown() error {
	for name, ref := range ms.RegisteredMaterial {
		core.LogWarn("material '%s' still has %d references at shutdown", name, ref.ReferenceCount)
		delete(ms.RegisteredMaterial, name)
	}
	return nil
}

// AcquireFromConfig returns the material named by config, creating it on first use.
func (ms *MaterialSystem) AcquireFromConfig(config *metadata.MaterialConfig) (*metadata.Material, error) {
	if config.Name == metadata.DefaultMaterialName {
		return ms.defaultMaterial, nil
	}
	if ref, ok := ms.RegisteredMaterial[config.Name]; ok {
		ref.ReferenceCount++
		return ref.Material, nil
	}
	if uint32(len(ms.RegisteredMaterial)) >= ms.Config.MaxMaterialCount {
		err := fmt.Errorf("material system is full (%d). Adjust configuration to allow more", ms.Config.MaxMaterialCount)
		core.LogError(err.Error())
		return nil, err
	}
	mat := &metadata.Material{
		ID:             core.IdentifierAcquireNewID(),
		Name:           config.Name,
		DiffuseColour:  config.DiffuseColour,
		SpecularColour: config.SpecularColour,
		Shininess:      config.Shininess,
		FlatShading:    config.FlatShading,
	}
	ms.RegisteredMaterial[config.Name] = &metadata.MaterialReference{
		ReferenceCount: 1,
		Material:       mat,
	}
	return mat, nil
}

// Acquire takes another reference on an already registered material.
func (ms *MaterialSystem) Acquire(name string) (*metadata.Material, error) {
	if name == metadata.DefaultMaterialName {
		return ms.defaultMaterial, nil
	}
	ref, ok := ms.RegisteredMaterial[name]
	if !ok {
		return nil, fmt.Errorf("material '%s' is not registered", name)
	}
	ref.ReferenceCount++
	return ref.Material, nil
}

func (ms *MaterialSystem) Release(name string) {
	if name == metadata.DefaultMaterialName {
		return
	}
	ref, ok := ms.RegisteredMaterial[name]
	if !ok {
		core.LogWarn("MaterialSystem.Release called for unknown material '%s'", name)
		return
	}
	ref.ReferenceCount--
	if ref.ReferenceCount == 0 {
		ref.Material.ID = core.InvalidID
		ref.Material.Generation++
		delete(ms.RegisteredMaterial, name)
	}
}

func (ms *MaterialSystem) GetDefault() *metadata.Material {
	return ms.defaultMaterial
}

// LiveCount returns the number of registered materials, the default excluded.
func (ms *MaterialSystem) LiveCount() int {
	return len(ms.RegisteredMaterial)
}
