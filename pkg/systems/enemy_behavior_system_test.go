package systems

import (
	"math"
	"testing"

	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
	"github.com/devfernandoa/HexKillerGame/pkg/game"
)

func newBehaviorSystem(w *testWorld, dropper CollectableDropper) *EnemyBehaviorSystem {
	return NewEnemyBehaviorSystem(w.em, w.clock, w.bus, dropper, w.cfg.Enemy.HitFlash)
}

// step 与会话相同：推进时钟后用缩放 dt 更新
func step(w *testWorld, s *EnemyBehaviorSystem, realDt float64) {
	s.Update(w.clock.Advance(realDt))
}

func TestEnemyStaysDormantUntilChaseDelay(t *testing.T) {
	w := newTestWorld(t)
	w.addPlayer(t, 10, 0)
	s := newBehaviorSystem(w, nil)
	id, enemy := w.addEnemy(0, 0, 1)
	s.Register(id)

	step(w, s, 0.4)
	if enemy.IsChasing {
		t.Fatal("enemy should still be dormant at 0.4s")
	}
	if pos := w.position(id); pos.X != 0 {
		t.Errorf("dormant enemy moved to %v", pos.X)
	}

	// 定时器在时钟推进时触发，同一帧的 Update 已经开始移动
	step(w, s, 0.1)
	if !enemy.IsChasing {
		t.Fatal("enemy should chase after 0.5s")
	}
	if pos := w.position(id); math.Abs(pos.X-0.2) > 1e-9 {
		t.Errorf("expected enemy at x=0.2, got %v", pos.X)
	}

	step(w, s, 1)
	if pos := w.position(id); math.Abs(pos.X-2.2) > 1e-9 {
		t.Errorf("expected enemy at x=2.2 after another second at speed 2, got %v", pos.X)
	}
}

func TestEnemyChaseNeverOvershoots(t *testing.T) {
	w := newTestWorld(t)
	w.addPlayer(t, 1, 0)
	s := newBehaviorSystem(w, nil)
	id, enemy := w.addEnemy(0, 0, 1)
	enemy.IsChasing = true

	s.Update(3)

	if pos := w.position(id); pos.X != 1 || pos.Y != 0 {
		t.Errorf("expected enemy to stop on the player, got (%v, %v)", pos.X, pos.Y)
	}
}

func TestEnemyFadesOut(t *testing.T) {
	w := newTestWorld(t)
	s := newBehaviorSystem(w, nil)
	id, enemy := w.addEnemy(0, 0, 5)

	s.Update(2.5)
	if math.Abs(enemy.Alpha()-0.5) > 1e-9 {
		t.Errorf("expected alpha 0.5, got %v", enemy.Alpha())
	}

	s.Update(2.5)
	if w.em.IsAlive(id) {
		t.Error("enemy should be removed when its fade timer expires")
	}
	if w.count(game.SignalEnemyDied) != 0 {
		t.Error("fading out is not a death")
	}
}

func TestTakeDamageNonLethal(t *testing.T) {
	w := newTestWorld(t)
	s := newBehaviorSystem(w, nil)
	id, enemy := w.addEnemy(0, 0, 3)

	s.TakeDamage(id, 1)

	if enemy.Health != 2 {
		t.Errorf("expected health 2, got %d", enemy.Health)
	}
	if !enemy.HitFlash {
		t.Error("expected hit flash")
	}
	if w.count(game.SignalEnemyHit) != 1 {
		t.Errorf("expected 1 hit signal, got %d", w.count(game.SignalEnemyHit))
	}

	w.clock.Advance(0.1)
	if enemy.HitFlash {
		t.Error("hit flash should clear after 0.1s")
	}
}

func TestEnemyDiesExactlyOnce(t *testing.T) {
	w := newTestWorld(t)
	drops := &dropRecorder{}
	s := newBehaviorSystem(w, drops)
	id, enemy := w.addEnemy(2, 3, 1)

	s.TakeDamage(id, 5)
	s.TakeDamage(id, 1)
	s.TakeDamage(id, 1)

	if enemy.Health != 0 {
		t.Errorf("health must clamp at 0, got %d", enemy.Health)
	}
	if !enemy.Dead || w.em.IsAlive(id) {
		t.Error("enemy should be dead and marked for removal")
	}
	if w.count(game.SignalEnemyDied) != 1 {
		t.Errorf("expected exactly one death signal, got %d", w.count(game.SignalEnemyDied))
	}
	if len(drops.drops) != 1 || drops.drops[0] != [2]float64{2, 3} {
		t.Errorf("expected one drop at (2, 3), got %v", drops.drops)
	}

	// 清理后再次调用也不会生效
	w.em.RemoveMarkedEntities()
	s.TakeDamage(id, 1)
	if w.count(game.SignalEnemyDied) != 1 {
		t.Error("damage after removal must be ignored")
	}
}

func TestDeadEnemyNeverStartsChasing(t *testing.T) {
	w := newTestWorld(t)
	s := newBehaviorSystem(w, nil)
	id, enemy := w.addEnemy(0, 0, 1)
	s.Register(id)

	s.TakeDamage(id, 1)
	w.clock.Advance(1)

	if enemy.IsChasing {
		t.Error("dead enemy must not start chasing")
	}
}

func TestPlayerContact(t *testing.T) {
	w := newTestWorld(t)
	s := newBehaviorSystem(w, nil)
	playerID, _ := w.addPlayer(t, 0, 0)
	w.addEnemy(5, 0, 1)

	var caught []ecs.EntityID
	s.SetPlayerCaughtHandler(func(id ecs.EntityID) { caught = append(caught, id) })

	if s.CheckPlayerContact() {
		t.Fatal("no contact expected at distance 5")
	}

	w.addEnemy(0.9, 0, 1) // 半径 0.5 + 0.5
	if !s.CheckPlayerContact() {
		t.Fatal("expected contact")
	}
	if w.em.IsAlive(playerID) {
		t.Error("player should be removed on contact")
	}
	if len(caught) != 1 || caught[0] != playerID {
		t.Errorf("expected lose handler called once with %d, got %v", playerID, caught)
	}
	if w.count(game.SignalPlayerCaught) != 1 {
		t.Error("expected one player caught signal")
	}

	if s.CheckPlayerContact() {
		t.Error("no further contact once the player is gone")
	}
}
