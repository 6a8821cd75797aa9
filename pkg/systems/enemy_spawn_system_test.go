package systems

import (
	"testing"

	"github.com/devfernandoa/HexKillerGame/pkg/config"
	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
	"github.com/devfernandoa/HexKillerGame/pkg/utils"
)

type registrarSpy struct {
	ids []ecs.EntityID
}

func (r *registrarSpy) Register(id ecs.EntityID) { r.ids = append(r.ids, id) }

func spawnerConfig() config.SpawnerConfig {
	return config.SpawnerConfig{
		Area:         config.Rect{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10},
		Interval:     1,
		RateIncrease: 0.1,
		MinInterval:  0.1,
		MinDistance:  2,
		MaxAttempts:  10,
	}
}

func TestEnemySpawnRespectsMinDistance(t *testing.T) {
	w := newTestWorld(t)
	w.addPlayer(t, 0, 0)
	// 第一次抽到 (0, 0)（离玩家太近），第二次抽到 (8, 8)
	rng := &scriptedRand{values: []float64{0.5, 0.5, 0.9, 0.9}}
	spy := &registrarSpy{}

	s := NewEnemySpawnSystem(w.em, w.clock, w.bus, rng, spy, spawnerConfig(), w.cfg.Enemy)
	s.Start()
	w.clock.Advance(0.01)

	enemies := w.em.EntitiesOfKind(ecs.KindEnemy)
	if len(enemies) != 1 {
		t.Fatalf("expected 1 enemy, got %d", len(enemies))
	}
	pos := w.position(enemies[0])
	if d := utils.Distance(pos.X, pos.Y, 0, 0); d < 2 {
		t.Errorf("enemy spawned %.2f from player, want >= 2", d)
	}
	if len(spy.ids) != 1 || spy.ids[0] != enemies[0] {
		t.Errorf("expected registrar to receive %v, got %v", enemies, spy.ids)
	}
}

func TestEnemySpawnSkipsWhenNoValidPoint(t *testing.T) {
	w := newTestWorld(t)
	w.addPlayer(t, 0, 0)
	cfg := spawnerConfig()
	cfg.Area = config.Rect{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}
	cfg.MinDistance = 5

	s := NewEnemySpawnSystem(w.em, w.clock, w.bus, &scriptedRand{values: []float64{0.1, 0.7, 0.3}}, nil, cfg, w.cfg.Enemy)
	s.Start()
	w.clock.Advance(0.01)

	if n := w.em.CountOfKind(ecs.KindEnemy); n != 0 {
		t.Errorf("expected no enemy, got %d", n)
	}
	if s.Skipped() != 1 {
		t.Errorf("expected 1 skipped cycle, got %d", s.Skipped())
	}
	if s.Interval() != 0.9 {
		t.Errorf("interval must shrink even on a skipped cycle, got %v", s.Interval())
	}
	if w.count("enemy_spawned") != 0 {
		t.Error("no spawn signal expected for a skipped cycle")
	}
}

func TestEnemySpawnWithoutPlayerUsesFirstDraw(t *testing.T) {
	w := newTestWorld(t)
	rng := &scriptedRand{values: []float64{0.5, 0.5}}

	s := NewEnemySpawnSystem(w.em, w.clock, w.bus, rng, nil, spawnerConfig(), w.cfg.Enemy)
	s.Start()
	w.clock.Advance(0.01)

	enemies := w.em.EntitiesOfKind(ecs.KindEnemy)
	if len(enemies) != 1 {
		t.Fatalf("expected 1 enemy, got %d", len(enemies))
	}
	if pos := w.position(enemies[0]); pos.X != 0 || pos.Y != 0 {
		t.Errorf("expected first draw (0, 0), got (%v, %v)", pos.X, pos.Y)
	}
}

func TestEnemySpawnIntervalMonotoneAndFloored(t *testing.T) {
	w := newTestWorld(t)
	cfg := spawnerConfig()
	cfg.RateIncrease = 0.3

	s := NewEnemySpawnSystem(w.em, w.clock, w.bus, &scriptedRand{}, nil, cfg, w.cfg.Enemy)
	s.Start()

	prev := s.Interval()
	for i := 0; i < 20; i++ {
		w.clock.Advance(prev)
		cur := s.Interval()
		if cur > prev {
			t.Fatalf("interval grew from %v to %v", prev, cur)
		}
		if cur < cfg.MinInterval {
			t.Fatalf("interval %v below floor %v", cur, cfg.MinInterval)
		}
		prev = cur
	}
	if s.Interval() != cfg.MinInterval {
		t.Errorf("expected interval to settle at %v, got %v", cfg.MinInterval, s.Interval())
	}
	if s.Spawned() < 10 {
		t.Errorf("expected steady spawning, got %d", s.Spawned())
	}
}

func TestEnemySpawnStop(t *testing.T) {
	w := newTestWorld(t)
	s := NewEnemySpawnSystem(w.em, w.clock, w.bus, &scriptedRand{}, nil, spawnerConfig(), w.cfg.Enemy)

	s.Start()
	w.clock.Advance(0.01)
	if s.Spawned() != 1 {
		t.Fatalf("expected immediate first spawn, got %d", s.Spawned())
	}

	s.Stop()
	s.Stop()
	s.Start()
	for i := 0; i < 50; i++ {
		w.clock.Advance(0.5)
	}

	if s.Spawned() != 1 || !s.Stopped() {
		t.Errorf("stopped spawner created enemies: %d", s.Spawned())
	}
	if w.clock.PendingTimers() != 0 {
		t.Errorf("expected no pending timers after Stop, got %d", w.clock.PendingTimers())
	}
}

func TestEnemySpawnFrozenWhilePaused(t *testing.T) {
	w := newTestWorld(t)
	s := NewEnemySpawnSystem(w.em, w.clock, w.bus, &scriptedRand{}, nil, spawnerConfig(), w.cfg.Enemy)
	s.Start()

	w.clock.SetRate(0)
	for i := 0; i < 10; i++ {
		w.clock.Advance(1)
	}
	if s.Spawned() != 0 {
		t.Errorf("spawned %d enemies while paused", s.Spawned())
	}
}

func TestCollectableSpawnSystem(t *testing.T) {
	w := newTestWorld(t)
	s := NewCollectableSpawnSystem(w.em, w.clock, w.bus, &scriptedRand{values: []float64{0.25}}, w.cfg.Collectables)

	s.Start()
	w.clock.Advance(0.01)
	if n := w.em.CountOfKind(ecs.KindCollectable); n != 1 {
		t.Fatalf("expected immediate collectable, got %d", n)
	}

	w.clock.Advance(2)
	if n := w.em.CountOfKind(ecs.KindCollectable); n != 2 {
		t.Errorf("expected second collectable after interval, got %d", n)
	}

	if _, ok := s.SpawnCollectable(3, 4); !ok {
		t.Error("SpawnCollectable should succeed while running")
	}
	if w.count("collectable_spawned") != 3 {
		t.Errorf("expected 3 spawn signals, got %d", w.count("collectable_spawned"))
	}

	s.Stop()
	w.clock.Advance(10)
	if _, ok := s.SpawnCollectable(0, 0); ok {
		t.Error("SpawnCollectable should be refused after Stop")
	}
	if n := w.em.CountOfKind(ecs.KindCollectable); n != 3 {
		t.Errorf("stopped spawner created collectables: %d", n)
	}
}
