package systems

import (
	"log"

	"github.com/devfernandoa/HexKillerGame/pkg/components"
	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
	"github.com/devfernandoa/HexKillerGame/pkg/game"
	"github.com/devfernandoa/HexKillerGame/pkg/utils"
)

// CollectableDropper 敌人死亡时生成掉落物的协作方
type CollectableDropper interface {
	SpawnCollectable(x, y float64) (ecs.EntityID, bool)
}

// EnemyBehaviorSystem 敌人行为
//
// 负责：
//   - 出生后延迟开启追击（SimClock 定时器）
//   - 追击：每帧以恒定速度直线靠近玩家当前位置，不会越过
//   - 渐隐：FadeTimer 归零时移除，不论血量和追击状态
//   - 受伤与死亡：死亡流程对每个敌人只执行一次
//   - 玩家接触：发出 SignalPlayerCaught，移除玩家并通知失败处理方
type EnemyBehaviorSystem struct {
	entityManager *ecs.EntityManager
	clock         *game.SimClock
	signals       *game.SignalBus
	dropper       CollectableDropper
	hitFlash      float64

	onPlayerCaught func(player ecs.EntityID)
}

// NewEnemyBehaviorSystem 创建敌人行为系统
// dropper 可为 nil（死亡不掉落）
func NewEnemyBehaviorSystem(em *ecs.EntityManager, clock *game.SimClock, signals *game.SignalBus, dropper CollectableDropper, hitFlash float64) *EnemyBehaviorSystem {
	return &EnemyBehaviorSystem{
		entityManager: em,
		clock:         clock,
		signals:       signals,
		dropper:       dropper,
		hitFlash:      hitFlash,
	}
}

// SetPlayerCaughtHandler 设置玩家被抓时的失败处理
func (s *EnemyBehaviorSystem) SetPlayerCaughtHandler(fn func(player ecs.EntityID)) {
	s.onPlayerCaught = fn
}

// Register 登记新出生的敌人，ChaseDelay 秒游戏时间后开始追击
func (s *EnemyBehaviorSystem) Register(id ecs.EntityID) {
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
	if !ok {
		return
	}
	s.clock.After(enemy.ChaseDelay, func() {
		if !s.entityManager.IsAlive(id) || enemy.Dead {
			return
		}
		enemy.IsChasing = true
	})
}

// Update 追击与渐隐
func (s *EnemyBehaviorSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}
	_, playerPos, hasPlayer := findPlayer(s.entityManager)

	for _, id := range s.entityManager.EntitiesOfKind(ecs.KindEnemy) {
		enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
		if !ok {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok {
			continue
		}

		if enemy.IsChasing && hasPlayer {
			pos.X, pos.Y = utils.MoveTowards(pos.X, pos.Y, playerPos.X, playerPos.Y, enemy.Speed*dt)
		}

		enemy.FadeTimer -= dt
		if enemy.FadeTimer <= 0 {
			enemy.FadeTimer = 0
			s.entityManager.DestroyEntity(id)
		}
	}
}

// TakeDamage 对敌人造成伤害
// 已死亡或不存在的敌人忽略；血量不会小于 0
func (s *EnemyBehaviorSystem) TakeDamage(id ecs.EntityID, amount int) {
	if !s.entityManager.IsAlive(id) {
		return
	}
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
	if !ok || enemy.Dead || amount <= 0 {
		return
	}

	enemy.Health = max(0, enemy.Health-amount)
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

	if enemy.Health <= 0 {
		s.die(id, enemy, pos)
		return
	}

	enemy.HitFlash = true
	s.clock.After(s.hitFlash, func() {
		enemy.HitFlash = false
	})
	s.signals.Emit(game.Signal{Type: game.SignalEnemyHit, Entity: id, X: pos.X, Y: pos.Y, Value: amount})
}

func (s *EnemyBehaviorSystem) die(id ecs.EntityID, enemy *components.EnemyComponent, pos *components.PositionComponent) {
	enemy.Dead = true
	enemy.IsChasing = false

	if s.dropper != nil {
		s.dropper.SpawnCollectable(pos.X, pos.Y)
	}
	s.signals.Emit(game.Signal{Type: game.SignalEnemyDied, Entity: id, X: pos.X, Y: pos.Y})
	s.entityManager.DestroyEntity(id)
}

// CheckPlayerContact 检查敌人与玩家的接触
// 返回是否发生接触（玩家已被移除）
func (s *EnemyBehaviorSystem) CheckPlayerContact() bool {
	playerID, playerPos, ok := findPlayer(s.entityManager)
	if !ok {
		return false
	}
	playerCol, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, playerID)
	if !ok {
		return false
	}

	for _, id := range s.entityManager.EntitiesOfKind(ecs.KindEnemy) {
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok {
			continue
		}
		col, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id)
		if !ok {
			continue
		}
		if !circlesOverlap(playerPos.X, playerPos.Y, playerCol.Radius, pos.X, pos.Y, col.Radius) {
			continue
		}

		log.Printf("[EnemyBehaviorSystem] Player %d caught by enemy %d at (%.2f, %.2f)", playerID, id, playerPos.X, playerPos.Y)
		s.signals.Emit(game.Signal{Type: game.SignalPlayerCaught, Entity: playerID, X: playerPos.X, Y: playerPos.Y})
		s.entityManager.DestroyEntity(playerID)
		if s.onPlayerCaught != nil {
			s.onPlayerCaught(playerID)
		}
		return true
	}
	return false
}
