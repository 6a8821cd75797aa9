package systems

import (
	"log"
	"math"

	"github.com/devfernandoa/HexKillerGame/pkg/components"
	"github.com/devfernandoa/HexKillerGame/pkg/config"
	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
	"github.com/devfernandoa/HexKillerGame/pkg/entities"
	"github.com/devfernandoa/HexKillerGame/pkg/game"
	"github.com/devfernandoa/HexKillerGame/pkg/utils"
)

// dashIntentThreshold 冲刺要求的最小移动意图长度
const dashIntentThreshold = 0.1

// PlayerSystem 玩家移动、限时加速、动量、冲刺与自动射击
//
// 自动射击：冷却结束时瞄准最近的敌人（没有敌人则不射击，但冷却照常重置），
// 分裂为 SplitShotAmount 个均匀方向，每个方向连发 MultiShotAmount 颗，
// 第一颗立即发射，其余按 MultiShotDelay 通过时钟定时器依次发射。
type PlayerSystem struct {
	entityManager *ecs.EntityManager
	clock         *game.SimClock
	signals       *game.SignalBus

	bounds           config.Rect
	projectileRadius float64
}

// NewPlayerSystem 创建玩家系统
// bounds 为玩家可活动的范围（场地边界）
func NewPlayerSystem(em *ecs.EntityManager, clock *game.SimClock, signals *game.SignalBus, bounds config.Rect, projectileRadius float64) *PlayerSystem {
	return &PlayerSystem{
		entityManager:    em,
		clock:            clock,
		signals:          signals,
		bounds:           bounds,
		projectileRadius: projectileRadius,
	}
}

// SetMoveIntent 设置移动意图（输入层提供，长度不限）
func (s *PlayerSystem) SetMoveIntent(x, y float64) {
	if p, ok := s.player(); ok {
		p.MoveX, p.MoveY = x, y
	}
}

// TriggerDash 尝试冲刺
// 需要已获得冲刺能力、冷却完成、且移动意图长度 > 0.1
func (s *PlayerSystem) TriggerDash() bool {
	p, ok := s.player()
	if !ok || !p.DashUnlocked || !p.DashReady || p.Dashing {
		return false
	}
	if utils.Length(p.MoveX, p.MoveY) <= dashIntentThreshold {
		return false
	}

	p.DashReady = false
	p.Dashing = true
	s.clock.After(p.DashDuration, func() {
		p.Dashing = false
		s.clock.After(p.DashCooldown, func() {
			p.DashReady = true
		})
	})
	return true
}

// Update 每帧更新，dt 为缩放后的游戏时间
func (s *PlayerSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}
	id, ok := s.entityManager.FirstOfKind(ecs.KindPlayer)
	if !ok {
		return
	}
	p, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
	if !ok {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return
	}

	s.updateBoost(p, dt)
	s.updateMomentum(p, dt)
	s.move(id, p, pos, dt)

	if p.CanShoot {
		p.ShootTimer -= dt
		if p.ShootTimer <= 0 {
			s.shoot(id, p, pos)
			p.ShootTimer = p.ShootCooldown
		}
	}
}

func (s *PlayerSystem) updateBoost(p *components.PlayerComponent, dt float64) {
	if p.BoostTimer <= 0 {
		return
	}
	p.BoostTimer -= dt
	if p.BoostTimer <= 0 {
		p.BoostTimer = 0
		p.BoostMultiplier = 1
	}
}

// updateMomentum 意图不变时累积，改变或静止时重置为 1
func (s *PlayerSystem) updateMomentum(p *components.PlayerComponent, dt float64) {
	if !p.MomentumEnabled {
		return
	}
	if p.MoveX == 0 && p.MoveY == 0 {
		p.Momentum = 1
	} else if p.MoveX == p.LastMoveX && p.MoveY == p.LastMoveY {
		p.Momentum = math.Min(p.Momentum+p.MomentumBuildRate*dt, p.MaxMomentum)
	} else {
		p.Momentum = 1
	}
	p.LastMoveX, p.LastMoveY = p.MoveX, p.MoveY
}

func (s *PlayerSystem) move(id ecs.EntityID, p *components.PlayerComponent, pos *components.PositionComponent, dt float64) {
	dx, dy := utils.Normalize(p.MoveX, p.MoveY)
	if dx == 0 && dy == 0 {
		return
	}
	speed := p.CurrentSpeed()
	pos.X += dx * speed * dt
	pos.Y += dy * speed * dt

	radius := 0.0
	if col, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id); ok {
		radius = col.Radius
	}
	b := s.bounds
	pos.X = utils.Clamp(pos.X, b.MinX+radius, b.MaxX-radius)
	pos.Y = utils.Clamp(pos.Y, b.MinY+radius, b.MaxY-radius)
}

// shoot 瞄准最近的敌人并按分裂/连发展开
func (s *PlayerSystem) shoot(playerID ecs.EntityID, p *components.PlayerComponent, pos *components.PositionComponent) {
	target, ok := ecs.Nearest[*components.PositionComponent](s.entityManager, ecs.KindEnemy, pos.X, pos.Y)
	if !ok {
		return
	}
	targetPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, target)
	baseX, baseY := utils.Normalize(targetPos.X-pos.X, targetPos.Y-pos.Y)
	if baseX == 0 && baseY == 0 {
		// 敌人与玩家重合，任取一个方向
		baseX = 1
	}

	split := max(1, p.SplitShotAmount)
	burst := max(1, p.MultiShotAmount)
	step := 360.0 / float64(split)

	// 发射时复制参数，之后的强化不影响已安排的连发
	params := entities.ProjectileParams{
		Speed:        p.ProjectileSpeed,
		Radius:       s.projectileRadius,
		Damage:       p.ProjectileDamage,
		Lifetime:     p.ProjectileLifetime,
		Piercing:     p.Piercing,
		Ricochet:     p.Ricochet,
		Homing:       p.Homing,
		HomingCharge: p.HomingAmount,
	}

	for i := 0; i < split; i++ {
		dirX, dirY := utils.Rotate(baseX, baseY, step*float64(i))
		s.fire(playerID, params, dirX, dirY)
		for j := 1; j < burst; j++ {
			s.clock.After(p.MultiShotDelay*float64(j), func() {
				s.fire(playerID, params, dirX, dirY)
			})
		}
	}
}

// fire 从玩家当前位置发射一颗子弹；玩家已死亡则丢弃
func (s *PlayerSystem) fire(playerID ecs.EntityID, params entities.ProjectileParams, dirX, dirY float64) {
	if !s.entityManager.IsAlive(playerID) {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, playerID)
	if !ok {
		return
	}
	params.X, params.Y = pos.X, pos.Y
	params.DirX, params.DirY = dirX, dirY

	id, err := entities.NewProjectileEntity(s.entityManager, params)
	if err != nil {
		log.Printf("[PlayerSystem] WARNING: Failed to create projectile: %v", err)
		return
	}
	s.signals.Emit(game.Signal{Type: game.SignalShotFired, Entity: id, X: pos.X, Y: pos.Y})
}

func (s *PlayerSystem) player() (*components.PlayerComponent, bool) {
	id, ok := s.entityManager.FirstOfKind(ecs.KindPlayer)
	if !ok {
		return nil, false
	}
	return ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
}
