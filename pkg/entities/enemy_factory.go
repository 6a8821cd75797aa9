package entities

import (
	"fmt"

	"github.com/devfernandoa/HexKillerGame/pkg/components"
	"github.com/devfernandoa/HexKillerGame/pkg/config"
	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
)

// NewEnemyEntity 创建敌人实体
// 敌人以休眠状态出生，追击由 EnemyBehaviorSystem 在延迟后开启
func NewEnemyEntity(em *ecs.EntityManager, cfg config.EnemyConfig, x, y float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg.Health <= 0 {
		return 0, fmt.Errorf("enemy health must be > 0, got %d", cfg.Health)
	}

	id := em.CreateEntity(ecs.KindEnemy)
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.CollisionComponent{Radius: cfg.Radius})
	em.AddComponent(id, &components.EnemyComponent{
		Health:       cfg.Health,
		Speed:        cfg.Speed,
		ChaseDelay:   cfg.ChaseDelay,
		FadeTimer:    cfg.FadeDuration,
		FadeDuration: cfg.FadeDuration,
	})
	return id, nil
}
