package systems

import (
	"github.com/devfernandoa/HexKillerGame/pkg/components"
	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
	"github.com/devfernandoa/HexKillerGame/pkg/game"
)

// DamageReceiver 承受子弹伤害的一方（敌人行为系统）
type DamageReceiver interface {
	TakeDamage(id ecs.EntityID, amount int)
}

// CombatSystem 结算子弹与敌人、墙体的碰撞
//
// 碰撞只在重叠开始的那一帧结算（ProjectileComponent.Contacts 记录当前重叠），
// 同一颗穿透子弹持续穿过一个敌人时只造成一次伤害。
//
// 命中敌人后的处理顺序：
//  1. 追踪子弹且剩余索敌次数 > 0：次数减一并重新索敌，没有敌人则销毁，否则存活（忽略穿透标志）
//  2. 否则非穿透子弹销毁
//
// 碰墙：可反弹时翻转与墙体垂直的速度分量，否则销毁。
type CombatSystem struct {
	em      *ecs.EntityManager
	signals *game.SignalBus
	damage  DamageReceiver
}

// NewCombatSystem 创建战斗结算系统
func NewCombatSystem(em *ecs.EntityManager, signals *game.SignalBus, damage DamageReceiver) *CombatSystem {
	return &CombatSystem{
		em:      em,
		signals: signals,
		damage:  damage,
	}
}

// Update 检查所有子弹
func (cs *CombatSystem) Update(deltaTime float64) {
	walls := cs.em.EntitiesOfKind(ecs.KindWall)

	for _, bulletID := range cs.em.EntitiesOfKind(ecs.KindProjectile) {
		proj, ok := ecs.GetComponent[*components.ProjectileComponent](cs.em, bulletID)
		if !ok {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](cs.em, bulletID)
		if !ok {
			continue
		}
		col, ok := ecs.GetComponent[*components.CollisionComponent](cs.em, bulletID)
		if !ok {
			continue
		}

		if !cs.checkEnemies(bulletID, proj, pos, col) {
			continue
		}
		cs.checkWalls(bulletID, proj, pos, col, walls)
	}
}

// checkEnemies 返回子弹是否仍然存在
func (cs *CombatSystem) checkEnemies(bulletID ecs.EntityID, proj *components.ProjectileComponent, pos *components.PositionComponent, col *components.CollisionComponent) bool {
	for _, enemyID := range cs.em.EntitiesOfKind(ecs.KindEnemy) {
		enemyPos, ok := ecs.GetComponent[*components.PositionComponent](cs.em, enemyID)
		if !ok {
			continue
		}
		enemyCol, ok := ecs.GetComponent[*components.CollisionComponent](cs.em, enemyID)
		if !ok {
			continue
		}

		overlap := circlesOverlap(pos.X, pos.Y, col.Radius, enemyPos.X, enemyPos.Y, enemyCol.Radius)
		if !overlap {
			proj.SetTouching(enemyID, false)
			continue
		}
		if proj.Touching(enemyID) {
			continue
		}
		proj.SetTouching(enemyID, true)

		if cs.damage != nil {
			cs.damage.TakeDamage(enemyID, proj.Damage)
		}
		cs.signals.Emit(game.Signal{Type: game.SignalProjectileHit, Entity: bulletID, X: pos.X, Y: pos.Y, Value: proj.Damage})

		if !cs.resolveEnemyHit(bulletID, proj, pos) {
			return false
		}
	}
	return true
}

// resolveEnemyHit 命中后决定子弹去留，返回子弹是否存活
func (cs *CombatSystem) resolveEnemyHit(bulletID ecs.EntityID, proj *components.ProjectileComponent, pos *components.PositionComponent) bool {
	if proj.Homing && proj.HomingCharge > 0 {
		proj.HomingCharge--
		// 被击杀的敌人已标记删除，不会再被选中
		if _, found := ecs.Nearest[*components.PositionComponent](cs.em, ecs.KindEnemy, pos.X, pos.Y); !found {
			cs.em.DestroyEntity(bulletID)
			return false
		}
		return true
	}
	if proj.Piercing {
		return true
	}
	cs.em.DestroyEntity(bulletID)
	return false
}

func (cs *CombatSystem) checkWalls(bulletID ecs.EntityID, proj *components.ProjectileComponent, pos *components.PositionComponent, col *components.CollisionComponent, walls []ecs.EntityID) {
	for _, wallID := range walls {
		wall, ok := ecs.GetComponent[*components.WallComponent](cs.em, wallID)
		if !ok {
			continue
		}
		wallPos, ok := ecs.GetComponent[*components.PositionComponent](cs.em, wallID)
		if !ok {
			continue
		}

		if !circleOverlapsRect(pos.X, pos.Y, col.Radius, wallPos.X, wallPos.Y, wall.Width, wall.Height) {
			proj.SetTouching(wallID, false)
			continue
		}
		if proj.Touching(wallID) {
			continue
		}
		proj.SetTouching(wallID, true)

		if !proj.Ricochet {
			cs.em.DestroyEntity(bulletID)
			return
		}
		vel, ok := ecs.GetComponent[*components.VelocityComponent](cs.em, bulletID)
		if !ok {
			continue
		}
		switch wall.Orientation {
		case components.WallVertical:
			vel.VX = -vel.VX
		case components.WallHorizontal:
			vel.VY = -vel.VY
		}
	}
}
