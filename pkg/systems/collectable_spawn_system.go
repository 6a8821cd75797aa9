package systems

import (
	"log"

	"github.com/devfernandoa/HexKillerGame/pkg/config"
	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
	"github.com/devfernandoa/HexKillerGame/pkg/entities"
	"github.com/devfernandoa/HexKillerGame/pkg/game"
)

// CollectableSpawnSystem 定时在区域内生成可收集物
// 同时负责敌人死亡掉落（SpawnCollectable）
type CollectableSpawnSystem struct {
	entityManager *ecs.EntityManager
	clock         *game.SimClock
	signals       *game.SignalBus
	rng           game.Rand
	cfg           config.CollectableConfig

	timer   *game.Timer
	started bool
	stopped bool
}

// NewCollectableSpawnSystem 创建可收集物生成器
func NewCollectableSpawnSystem(em *ecs.EntityManager, clock *game.SimClock, signals *game.SignalBus, rng game.Rand, cfg config.CollectableConfig) *CollectableSpawnSystem {
	log.Printf("[CollectableSpawnSystem] Initialized with interval=%.1fs", cfg.Interval)
	return &CollectableSpawnSystem{
		entityManager: em,
		clock:         clock,
		signals:       signals,
		rng:           rng,
		cfg:           cfg,
	}
}

// Start 开始定时生成，第一个立即生成
func (s *CollectableSpawnSystem) Start() {
	if s.started || s.stopped {
		return
	}
	s.started = true
	s.timer = s.clock.After(0, s.tick)
}

// Stop 停止定时生成
// 停止后 SpawnCollectable 也不再生成（游戏已结束）
func (s *CollectableSpawnSystem) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	s.timer.Cancel()
	log.Printf("[CollectableSpawnSystem] Stopped")
}

// Stopped 是否已停止
func (s *CollectableSpawnSystem) Stopped() bool {
	return s.stopped
}

func (s *CollectableSpawnSystem) tick() {
	if s.stopped {
		return
	}
	a := s.cfg.Area
	x, y := randomPointIn(s.rng, a.MinX, a.MinY, a.MaxX, a.MaxY)
	s.SpawnCollectable(x, y)
	s.timer = s.clock.After(s.cfg.Interval, s.tick)
}

// SpawnCollectable 在指定位置生成一个可收集物
func (s *CollectableSpawnSystem) SpawnCollectable(x, y float64) (ecs.EntityID, bool) {
	if s.stopped {
		return 0, false
	}
	id, err := entities.NewCollectableEntity(s.entityManager, s.cfg, x, y)
	if err != nil {
		log.Printf("[CollectableSpawnSystem] WARNING: Failed to create collectable: %v", err)
		return 0, false
	}
	s.signals.Emit(game.Signal{Type: game.SignalCollectableSpawned, Entity: id, X: x, Y: y})
	return id, true
}
