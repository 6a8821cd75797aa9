package systems

import (
	"log"

	"github.com/devfernandoa/HexKillerGame/pkg/config"
	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
	"github.com/devfernandoa/HexKillerGame/pkg/entities"
	"github.com/devfernandoa/HexKillerGame/pkg/game"
	"github.com/devfernandoa/HexKillerGame/pkg/utils"
)

// EnemyRegistrar 新敌人出生后的登记方（安排追击延迟）
type EnemyRegistrar interface {
	Register(id ecs.EntityID)
}

// EnemySpawnSystem 自适应敌人生成器
//
// 生成节奏挂在 SimClock 上：
//   - Start 后立即生成第一个
//   - 每次生成（无论成功与否）后间隔缩短 rateIncrease，不低于 minInterval
//   - 生成点在区域内均匀抽取，离玩家太近则重抽，最多 maxAttempts 次，全部失败则跳过本轮
type EnemySpawnSystem struct {
	entityManager *ecs.EntityManager
	clock         *game.SimClock
	signals       *game.SignalBus
	rng           game.Rand
	registrar     EnemyRegistrar

	cfg      config.SpawnerConfig
	enemyCfg config.EnemyConfig

	interval float64
	timer    *game.Timer
	started  bool
	stopped  bool
	spawned  int
	skipped  int
}

// NewEnemySpawnSystem 创建敌人生成器
// registrar 可为 nil（敌人将永远休眠，仅用于测试生成逻辑）
func NewEnemySpawnSystem(
	em *ecs.EntityManager,
	clock *game.SimClock,
	signals *game.SignalBus,
	rng game.Rand,
	registrar EnemyRegistrar,
	cfg config.SpawnerConfig,
	enemyCfg config.EnemyConfig,
) *EnemySpawnSystem {
	log.Printf("[EnemySpawnSystem] Initialized with interval=%.2fs (min %.2fs, -%.2fs per spawn), minDistance=%.1f",
		cfg.Interval, cfg.MinInterval, cfg.RateIncrease, cfg.MinDistance)
	return &EnemySpawnSystem{
		entityManager: em,
		clock:         clock,
		signals:       signals,
		rng:           rng,
		registrar:     registrar,
		cfg:           cfg,
		enemyCfg:      enemyCfg,
		interval:      cfg.Interval,
	}
}

// Start 开始生成，重复调用或 Stop 之后调用都是无操作
func (s *EnemySpawnSystem) Start() {
	if s.started || s.stopped {
		return
	}
	s.started = true
	s.timer = s.clock.After(0, s.tick)
}

// Stop 停止生成并取消已安排的下一轮
func (s *EnemySpawnSystem) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	s.timer.Cancel()
	log.Printf("[EnemySpawnSystem] Stopped after %d spawns (%d skipped)", s.spawned, s.skipped)
}

// Interval 当前生成间隔
func (s *EnemySpawnSystem) Interval() float64 {
	return s.interval
}

// Spawned 已生成数量
func (s *EnemySpawnSystem) Spawned() int {
	return s.spawned
}

// Skipped 因找不到合适位置而跳过的轮数
func (s *EnemySpawnSystem) Skipped() int {
	return s.skipped
}

// Stopped 是否已停止
func (s *EnemySpawnSystem) Stopped() bool {
	return s.stopped
}

func (s *EnemySpawnSystem) tick() {
	if s.stopped {
		return
	}

	if x, y, ok := s.pickSpawnPoint(); ok {
		s.spawnAt(x, y)
	} else {
		s.skipped++
	}

	s.interval = max(s.cfg.MinInterval, s.interval-s.cfg.RateIncrease)
	s.timer = s.clock.After(s.interval, s.tick)
}

// pickSpawnPoint 抽取离玩家足够远的生成点
// 没有玩家时直接接受第一次抽取
func (s *EnemySpawnSystem) pickSpawnPoint() (float64, float64, bool) {
	a := s.cfg.Area
	_, playerPos, hasPlayer := findPlayer(s.entityManager)

	attempts := max(1, s.cfg.MaxAttempts)
	for i := 0; i < attempts; i++ {
		x, y := randomPointIn(s.rng, a.MinX, a.MinY, a.MaxX, a.MaxY)
		if !hasPlayer {
			return x, y, true
		}
		if utils.Distance(x, y, playerPos.X, playerPos.Y) >= s.cfg.MinDistance {
			return x, y, true
		}
	}
	return 0, 0, false
}

func (s *EnemySpawnSystem) spawnAt(x, y float64) {
	id, err := entities.NewEnemyEntity(s.entityManager, s.enemyCfg, x, y)
	if err != nil {
		log.Printf("[EnemySpawnSystem] WARNING: Failed to create enemy: %v", err)
		return
	}
	s.spawned++
	if s.registrar != nil {
		s.registrar.Register(id)
	}
	s.signals.Emit(game.Signal{Type: game.SignalEnemySpawned, Entity: id, X: x, Y: y})
}
