// Package session 组装一局游戏：实体、时钟、信号、系统与升级流程
//
// Session 是模拟状态唯一的修改入口，所有方法都应在游戏线程上调用。
package session

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/devfernandoa/HexKillerGame/pkg/components"
	"github.com/devfernandoa/HexKillerGame/pkg/config"
	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
	"github.com/devfernandoa/HexKillerGame/pkg/entities"
	"github.com/devfernandoa/HexKillerGame/pkg/game"
	"github.com/devfernandoa/HexKillerGame/pkg/systems"
)

// ErrNoSuchOffer 选项序号超出当前可选范围
var ErrNoSuchOffer = errors.New("no such offer")

// Result 一局结束时的结算数据
type Result struct {
	Score        int
	SurvivalTime float64 // 全局计时（秒，游戏时间）
	Level        int
}

// Session 一局游戏
type Session struct {
	cfg *config.GameConfig

	em       *ecs.EntityManager
	clock    *game.SimClock
	signals  *game.SignalBus
	catalog  *game.PowerUpCatalog
	tracker  *game.ProgressionTracker
	scores   *game.ScoreManager
	playerID ecs.EntityID

	playerSystem      *systems.PlayerSystem
	enemySystem       *systems.EnemyBehaviorSystem
	physicsSystem     *systems.PhysicsSystem
	lifetimeSystem    *systems.LifetimeSystem
	combatSystem      *systems.CombatSystem
	pickupSystem      *systems.PickupSystem
	enemySpawner      *systems.EnemySpawnSystem
	collectableSystem *systems.CollectableSpawnSystem

	started    bool
	over       bool
	result     Result
	onGameOver func(Result)
}

// New 创建一局新游戏
//
// 参数:
//   - cfg: 游戏配置
//   - defs: 强化定义
//   - rng: 随机源（生成位置与强化抽取共用），传入固定种子可复现整局
//
// 重新开始游戏时创建新的 Session，不复用旧实例。
func New(cfg *config.GameConfig, defs []config.PowerUpDef, rng *rand.Rand) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("game config cannot be nil")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}

	s := &Session{
		cfg:     cfg,
		em:      ecs.NewEntityManager(),
		clock:   game.NewSimClock(),
		signals: game.NewSignalBus(),
	}

	catalog, err := game.NewPowerUpCatalog(defs, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to build power-up catalog: %w", err)
	}
	s.catalog = catalog
	s.tracker = game.NewProgressionTracker(s.clock, catalog, s.signals, cfg.Progression.LevelThreshold, cfg.Progression.OfferCount)
	s.scores = game.NewScoreManager(s.signals)

	if _, err := entities.NewArenaWalls(s.em, cfg.Arena); err != nil {
		return nil, err
	}
	b := cfg.Arena.Bounds
	s.playerID, err = entities.NewPlayerEntity(s.em, cfg, (b.MinX+b.MaxX)/2, (b.MinY+b.MaxY)/2)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	s.collectableSystem = systems.NewCollectableSpawnSystem(s.em, s.clock, s.signals, rng, cfg.Collectables)
	s.enemySystem = systems.NewEnemyBehaviorSystem(s.em, s.clock, s.signals, s.collectableSystem, cfg.Enemy.HitFlash)
	s.enemySystem.SetPlayerCaughtHandler(s.handlePlayerCaught)
	s.enemySpawner = systems.NewEnemySpawnSystem(s.em, s.clock, s.signals, rng, s.enemySystem, cfg.Spawner, cfg.Enemy)
	s.playerSystem = systems.NewPlayerSystem(s.em, s.clock, s.signals, cfg.Arena.Bounds, cfg.Projectile.Radius)
	s.physicsSystem = systems.NewPhysicsSystem(s.em, cfg.Projectile.HomingTurnRate)
	s.lifetimeSystem = systems.NewLifetimeSystem(s.em)
	s.combatSystem = systems.NewCombatSystem(s.em, s.signals, s.enemySystem)
	s.pickupSystem = systems.NewPickupSystem(s.em, s.scores)

	return s, nil
}

// Start 启动敌人与可收集物的生成
func (s *Session) Start() {
	if s.started || s.over {
		return
	}
	s.started = true
	s.enemySpawner.Start()
	s.collectableSystem.Start()
	log.Printf("[Session] Started")
}

// Update 推进一帧，realDt 为真实经过的时间（秒）
//
// 顺序：时钟（触发定时器）→ 玩家 → 敌人 → 子弹运动 → 生命周期 →
// 战斗结算 → 玩家接触 → 拾取 → 清理 → 升级计时。
// 升级暂停期间时钟速率为 0，所有系统收到 dt=0，不会发生任何变化。
func (s *Session) Update(realDt float64) {
	dt := s.clock.Advance(realDt)

	s.playerSystem.Update(dt)
	s.enemySystem.Update(dt)
	s.physicsSystem.Update(dt)
	s.lifetimeSystem.Update(dt)
	s.combatSystem.Update(dt)
	if dt > 0 {
		s.enemySystem.CheckPlayerContact()
		s.pickupSystem.Update(dt)
	}
	s.em.RemoveMarkedEntities()

	s.tracker.Update(dt)
}

// handlePlayerCaught 失败处理：停止生成、清场、结算
func (s *Session) handlePlayerCaught(ecs.EntityID) {
	if s.over {
		return
	}
	s.over = true

	s.enemySpawner.Stop()
	s.collectableSystem.Stop()
	for _, id := range s.em.EntitiesOfKind(ecs.KindEnemy) {
		s.em.DestroyEntity(id)
	}
	for _, id := range s.em.EntitiesOfKind(ecs.KindCollectable) {
		s.em.DestroyEntity(id)
	}

	s.result = Result{
		Score:        s.scores.Score(),
		SurvivalTime: s.tracker.GlobalTimer(),
		Level:        s.tracker.Level(),
	}
	s.tracker.SetPlayerAlive(false)

	log.Printf("[Session] Game over: score=%d time=%.1fs level=%d", s.result.Score, s.result.SurvivalTime, s.result.Level)
	if s.onGameOver != nil {
		s.onGameOver(s.result)
	}
}

// SetGameOverHandler 设置结束回调（在 Update 内部调用）
func (s *Session) SetGameOverHandler(fn func(Result)) {
	s.onGameOver = fn
}

// SetMoveIntent 设置玩家移动意图
func (s *Session) SetMoveIntent(x, y float64) {
	s.playerSystem.SetMoveIntent(x, y)
}

// TriggerDash 尝试冲刺
func (s *Session) TriggerDash() bool {
	if s.clock.Paused() {
		return false
	}
	return s.playerSystem.TriggerDash()
}

// Select 选择当前第 index 个强化（从 0 开始）
func (s *Session) Select(index int) error {
	offers := s.tracker.PendingOffers()
	if len(offers) == 0 {
		return game.ErrNoPendingSelection
	}
	if index < 0 || index >= len(offers) {
		return fmt.Errorf("%w: %d of %d", ErrNoSuchOffer, index, len(offers))
	}
	player, ok := s.Player()
	if !ok {
		return game.ErrNoPendingSelection
	}
	return s.tracker.Select(offers[index], player)
}

// Player 返回玩家组件（玩家被抓后返回 false）
func (s *Session) Player() (*components.PlayerComponent, bool) {
	if !s.em.IsAlive(s.playerID) {
		return nil, false
	}
	return ecs.GetComponent[*components.PlayerComponent](s.em, s.playerID)
}

// PlayerPosition 返回玩家位置
func (s *Session) PlayerPosition() (float64, float64, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.em, s.playerID)
	if !ok || !s.em.IsAlive(s.playerID) {
		return 0, 0, false
	}
	return pos.X, pos.Y, true
}

// IsOver 本局是否已结束
func (s *Session) IsOver() bool { return s.over }

// Result 结算数据（仅在结束后有效）
func (s *Session) Result() Result { return s.result }

// Score 当前得分
func (s *Session) Score() int { return s.scores.Score() }

// Config 本局使用的配置
func (s *Session) Config() *config.GameConfig { return s.cfg }

// EntityManager 实体管理器（表现层只读）
func (s *Session) EntityManager() *ecs.EntityManager { return s.em }

// Clock 模拟时钟
func (s *Session) Clock() *game.SimClock { return s.clock }

// Signals 信号总线，音效与特效在这里订阅
func (s *Session) Signals() *game.SignalBus { return s.signals }

// Tracker 升级追踪器
func (s *Session) Tracker() *game.ProgressionTracker { return s.tracker }

// Catalog 强化目录
func (s *Session) Catalog() *game.PowerUpCatalog { return s.catalog }

// SpawnInterval 当前敌人生成间隔
func (s *Session) SpawnInterval() float64 { return s.enemySpawner.Interval() }
