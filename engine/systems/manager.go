package systems

import (
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

type SystemManager struct {
	MaterialSystem *MaterialSystem
	GeometrySystem *GeometrySystem
}

func NewSystemManager(renderer *renderer.Renderer) (*SystemManager, error) {
	ms, err := NewMaterialSystem(&metadata.MaterialSystemConfig{
		MaxMaterialCount: 64,
	})
	if err != nil {
		return nil, err
	}
	gs, err := NewGeometrySystem(&metadata.GeometrySystemConfig{
		MaxGeometryCount: 256,
	}, ms, renderer)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		MaterialSystem: ms,
		GeometrySystem: gs,
	}, nil
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.GeometrySystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.MaterialSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
