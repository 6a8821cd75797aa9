package entities

import (
	"fmt"

	"github.com/devfernandoa/HexKillerGame/pkg/components"
	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
	"github.com/devfernandoa/HexKillerGame/pkg/utils"
)

// ProjectileParams 子弹创建参数
// 行为标志在发射时从玩家当前状态复制，之后不再变化
type ProjectileParams struct {
	X, Y       float64
	DirX, DirY float64 // 方向，不要求归一化
	Speed      float64
	Radius     float64
	Damage     int
	Lifetime   float64

	Piercing     bool
	Ricochet     bool
	Homing       bool
	HomingCharge int
}

// NewProjectileEntity 创建子弹实体
func NewProjectileEntity(em *ecs.EntityManager, p ProjectileParams) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	dx, dy := utils.Normalize(p.DirX, p.DirY)
	if dx == 0 && dy == 0 {
		return 0, fmt.Errorf("projectile direction cannot be zero")
	}

	id := em.CreateEntity(ecs.KindProjectile)
	em.AddComponent(id, &components.PositionComponent{X: p.X, Y: p.Y})
	em.AddComponent(id, &components.VelocityComponent{VX: dx * p.Speed, VY: dy * p.Speed})
	em.AddComponent(id, &components.CollisionComponent{Radius: p.Radius})
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: p.Lifetime})
	em.AddComponent(id, &components.ProjectileComponent{
		Damage:       p.Damage,
		Piercing:     p.Piercing,
		Ricochet:     p.Ricochet,
		Homing:       p.Homing,
		HomingCharge: max(0, p.HomingCharge),
	})
	return id, nil
}
