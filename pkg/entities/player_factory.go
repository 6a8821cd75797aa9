package entities

import (
	"fmt"
	"log"

	"github.com/devfernandoa/HexKillerGame/pkg/components"
	"github.com/devfernandoa/HexKillerGame/pkg/config"
	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
)

// NewPlayerEntity 创建玩家实体
//
// 玩家初始不能射击（需要首次升级获得 Basic Shooting），
// 连发和分裂数量从 1 开始，强化每次叠加。
//
// 参数:
//   - em: 实体管理器
//   - cfg: 完整的游戏配置（读取 player 与 projectile 两节）
//   - x, y: 出生点（世界坐标）
func NewPlayerEntity(em *ecs.EntityManager, cfg *config.GameConfig, x, y float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("game config cannot be nil")
	}
	if _, exists := em.FirstOfKind(ecs.KindPlayer); exists {
		return 0, fmt.Errorf("player entity already exists")
	}

	pc := cfg.Player
	id := em.CreateEntity(ecs.KindPlayer)
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.CollisionComponent{Radius: pc.Radius})
	em.AddComponent(id, &components.PlayerComponent{
		BaseSpeed: pc.Speed,

		CanShoot:           false,
		ShootCooldown:      pc.ShootCooldown,
		ShootTimer:         pc.ShootCooldown,
		ProjectileSpeed:    cfg.Projectile.Speed,
		ProjectileDamage:   cfg.Projectile.Damage,
		ProjectileLifetime: cfg.Projectile.Lifetime,
		HomingAmount:       pc.HomingAmount,

		MultiShotAmount: 1,
		MultiShotDelay:  pc.MultiShotDelay,
		SplitShotAmount: 1,

		BoostMultiplier: 1,

		DashSpeedMultiplier: pc.DashMultiplier,
		DashDuration:        pc.DashDuration,
		DashCooldown:        pc.DashCooldown,

		Momentum:          1,
		MaxMomentum:       pc.MaxMomentum,
		MomentumBuildRate: pc.MomentumBuildRate,
	})

	log.Printf("[PlayerFactory] Created player %d at (%.1f, %.1f)", id, x, y)
	return id, nil
}
