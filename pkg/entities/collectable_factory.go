package entities

import (
	"fmt"

	"github.com/devfernandoa/HexKillerGame/pkg/components"
	"github.com/devfernandoa/HexKillerGame/pkg/config"
	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
)

// NewCollectableEntity 创建可收集物
func NewCollectableEntity(em *ecs.EntityManager, cfg config.CollectableConfig, x, y float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	id := em.CreateEntity(ecs.KindCollectable)
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.CollisionComponent{Radius: cfg.Radius})
	em.AddComponent(id, &components.CollectableComponent{Value: cfg.Value})
	return id, nil
}
