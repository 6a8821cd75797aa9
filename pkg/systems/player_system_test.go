package systems

import (
	"math"
	"testing"

	"github.com/devfernandoa/HexKillerGame/pkg/components"
	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
	"github.com/devfernandoa/HexKillerGame/pkg/game"
)

func newPlayerSystem(w *testWorld) *PlayerSystem {
	return NewPlayerSystem(w.em, w.clock, w.bus, w.cfg.Arena.Bounds, w.cfg.Projectile.Radius)
}

func projectileVelocities(w *testWorld) [][2]float64 {
	var out [][2]float64
	for _, id := range w.em.EntitiesOfKind(ecs.KindProjectile) {
		v := w.velocity(id)
		out = append(out, [2]float64{v.VX, v.VY})
	}
	return out
}

func TestPlayerMovesAlongNormalizedIntent(t *testing.T) {
	w := newTestWorld(t)
	id, _ := w.addPlayer(t, 0, 0)
	s := newPlayerSystem(w)

	s.SetMoveIntent(3, 4)
	s.Update(1)

	pos := w.position(id)
	if math.Abs(pos.X-3) > 1e-9 || math.Abs(pos.Y-4) > 1e-9 {
		t.Errorf("expected (3, 4) after one second at speed 5, got (%v, %v)", pos.X, pos.Y)
	}
}

func TestPlayerClampedToArena(t *testing.T) {
	w := newTestWorld(t)
	id, _ := w.addPlayer(t, 21, 0)
	s := newPlayerSystem(w)

	s.SetMoveIntent(1, 0)
	s.Update(10)

	want := w.cfg.Arena.Bounds.MaxX - w.cfg.Player.Radius
	if pos := w.position(id); pos.X != want {
		t.Errorf("expected player clamped at x=%v, got %v", want, pos.X)
	}
}

func TestPlayerDoesNotShootWithoutBasicShooting(t *testing.T) {
	w := newTestWorld(t)
	w.addPlayer(t, 0, 0)
	w.addEnemy(5, 0, 1)
	s := newPlayerSystem(w)

	s.Update(5)

	if n := w.em.CountOfKind(ecs.KindProjectile); n != 0 {
		t.Errorf("expected no projectiles, got %d", n)
	}
}

func TestPlayerAutoShootsNearestEnemy(t *testing.T) {
	w := newTestWorld(t)
	_, p := w.addPlayer(t, 0, 0)
	p.CanShoot = true
	p.ShootTimer = 0.5
	w.addEnemy(0, 8, 1)
	w.addEnemy(3, 0, 1)
	s := newPlayerSystem(w)

	s.Update(0.4)
	if n := w.em.CountOfKind(ecs.KindProjectile); n != 0 {
		t.Fatalf("shot fired before cooldown elapsed: %d", n)
	}

	s.Update(0.1)
	vels := projectileVelocities(w)
	if len(vels) != 1 {
		t.Fatalf("expected 1 projectile, got %d", len(vels))
	}
	if math.Abs(vels[0][0]-w.cfg.Projectile.Speed) > 1e-9 || math.Abs(vels[0][1]) > 1e-9 {
		t.Errorf("expected projectile aimed at nearest enemy (+x), got %v", vels[0])
	}
	if p.ShootTimer != p.ShootCooldown {
		t.Errorf("expected shoot timer reset to %v, got %v", p.ShootCooldown, p.ShootTimer)
	}
	if w.count(game.SignalShotFired) != 1 {
		t.Errorf("expected 1 shot_fired signal, got %d", w.count(game.SignalShotFired))
	}
}

func TestPlayerWithoutTargetsResetsTimer(t *testing.T) {
	w := newTestWorld(t)
	_, p := w.addPlayer(t, 0, 0)
	p.CanShoot = true
	p.ShootTimer = 0.1
	s := newPlayerSystem(w)

	s.Update(0.2)

	if n := w.em.CountOfKind(ecs.KindProjectile); n != 0 {
		t.Errorf("expected no projectiles without enemies, got %d", n)
	}
	if p.ShootTimer != p.ShootCooldown {
		t.Errorf("expected timer reset to cooldown, got %v", p.ShootTimer)
	}
}

func TestPlayerSplitShotFansOut(t *testing.T) {
	w := newTestWorld(t)
	_, p := w.addPlayer(t, 0, 0)
	p.CanShoot = true
	p.ShootTimer = 0
	p.SplitShotEnabled = true
	p.SplitShotAmount = 4
	w.addEnemy(2, 0, 1)
	s := newPlayerSystem(w)

	s.Update(0.01)

	vels := projectileVelocities(w)
	if len(vels) != 4 {
		t.Fatalf("expected 4 projectiles, got %d", len(vels))
	}
	speed := w.cfg.Projectile.Speed
	want := [][2]float64{{speed, 0}, {0, speed}, {-speed, 0}, {0, -speed}}
	for i, v := range vels {
		if math.Abs(v[0]-want[i][0]) > 1e-9 || math.Abs(v[1]-want[i][1]) > 1e-9 {
			t.Errorf("projectile %d: expected velocity %v, got %v", i, want[i], v)
		}
	}
}

func TestPlayerMultiShotStaggersBurst(t *testing.T) {
	w := newTestWorld(t)
	id, p := w.addPlayer(t, 0, 0)
	p.CanShoot = true
	p.ShootTimer = 0
	p.MultiShotEnabled = true
	p.MultiShotAmount = 3
	w.addEnemy(5, 0, 1)
	s := newPlayerSystem(w)

	s.Update(w.clock.Advance(0.01))
	if n := w.em.CountOfKind(ecs.KindProjectile); n != 1 {
		t.Fatalf("expected first shot immediately, got %d", n)
	}

	// 玩家移动后，后续子弹从新位置发出
	w.position(id).X = 1
	w.clock.Advance(0.1)
	if n := w.em.CountOfKind(ecs.KindProjectile); n != 2 {
		t.Fatalf("expected second shot after delay, got %d", n)
	}
	ids := w.em.EntitiesOfKind(ecs.KindProjectile)
	if pos := w.position(ids[1]); pos.X != 1 {
		t.Errorf("expected staggered shot from the player's current position, got x=%v", pos.X)
	}

	w.clock.Advance(0.15)
	if n := w.em.CountOfKind(ecs.KindProjectile); n != 3 {
		t.Errorf("expected 3 shots in the burst, got %d", n)
	}
}

func TestPlayerMultiShotDroppedAfterDeath(t *testing.T) {
	w := newTestWorld(t)
	id, p := w.addPlayer(t, 0, 0)
	p.CanShoot = true
	p.ShootTimer = 0
	p.MultiShotAmount = 3
	w.addEnemy(5, 0, 1)
	s := newPlayerSystem(w)

	s.Update(0.01)
	w.em.DestroyEntity(id)
	w.clock.Advance(1)

	if n := w.em.CountOfKind(ecs.KindProjectile); n != 1 {
		t.Errorf("expected pending shots dropped after death, got %d projectiles", n)
	}
}

func TestPlayerProjectileInheritsFlags(t *testing.T) {
	w := newTestWorld(t)
	_, p := w.addPlayer(t, 0, 0)
	p.CanShoot = true
	p.ShootTimer = 0
	p.Piercing = true
	p.Homing = true
	p.HomingAmount = 2
	w.addEnemy(5, 0, 1)
	s := newPlayerSystem(w)

	s.Update(0.01)

	ids := w.em.EntitiesOfKind(ecs.KindProjectile)
	if len(ids) != 1 {
		t.Fatalf("expected 1 projectile, got %d", len(ids))
	}
	proj, _ := ecs.GetComponent[*components.ProjectileComponent](w.em, ids[0])
	if !proj.Piercing || !proj.Homing || proj.Ricochet {
		t.Errorf("unexpected flags: %+v", proj)
	}
	if proj.HomingCharge != 2 {
		t.Errorf("expected homing charge 2, got %d", proj.HomingCharge)
	}
}

func TestPlayerDash(t *testing.T) {
	w := newTestWorld(t)
	id, p := w.addPlayer(t, 0, 0)
	s := newPlayerSystem(w)

	s.SetMoveIntent(1, 0)
	if s.TriggerDash() {
		t.Fatal("dash should require the Dash power-up")
	}

	p.DashUnlocked = true
	p.DashReady = true
	s.SetMoveIntent(0.05, 0)
	if s.TriggerDash() {
		t.Fatal("dash should require a movement intent above 0.1")
	}

	s.SetMoveIntent(1, 0)
	if !s.TriggerDash() {
		t.Fatal("expected dash to trigger")
	}
	if s.TriggerDash() {
		t.Fatal("dash should not retrigger while on cooldown")
	}

	s.Update(w.clock.Advance(0.1))
	if pos := w.position(id); math.Abs(pos.X-1.5) > 1e-9 {
		t.Errorf("expected dash speed 15 to move 1.5, got %v", pos.X)
	}

	w.clock.Advance(0.1)
	if p.Dashing {
		t.Error("dash should end after its duration")
	}
	w.clock.Advance(0.8)
	if p.DashReady {
		t.Error("dash should still be cooling down")
	}
	w.clock.Advance(0.3)
	if !p.DashReady {
		t.Error("dash should be ready after cooldown")
	}
}

func TestPlayerMomentum(t *testing.T) {
	w := newTestWorld(t)
	_, p := w.addPlayer(t, 0, 0)
	p.MomentumEnabled = true
	s := newPlayerSystem(w)

	s.SetMoveIntent(1, 0)
	s.Update(1) // 第一帧：方向变化，重置
	if p.Momentum != 1 {
		t.Fatalf("expected momentum 1 on first frame, got %v", p.Momentum)
	}
	s.Update(1)
	if math.Abs(p.Momentum-1.1) > 1e-9 {
		t.Errorf("expected momentum 1.1, got %v", p.Momentum)
	}
	for i := 0; i < 50; i++ {
		s.Update(1)
	}
	if p.Momentum != p.MaxMomentum {
		t.Errorf("expected momentum capped at %v, got %v", p.MaxMomentum, p.Momentum)
	}

	s.SetMoveIntent(0, 1)
	s.Update(0.1)
	if p.Momentum != 1 {
		t.Errorf("expected momentum reset on direction change, got %v", p.Momentum)
	}
}

func TestPlayerBoostExpires(t *testing.T) {
	w := newTestWorld(t)
	_, p := w.addPlayer(t, 0, 0)
	p.BoostMultiplier = 2
	p.BoostTimer = 1
	s := newPlayerSystem(w)

	if p.CurrentSpeed() != 10 {
		t.Fatalf("expected boosted speed 10, got %v", p.CurrentSpeed())
	}
	s.Update(0.6)
	s.Update(0.6)
	if p.BoostMultiplier != 1 || p.BoostTimer != 0 {
		t.Errorf("expected boost cleared, got multiplier=%v timer=%v", p.BoostMultiplier, p.BoostTimer)
	}
}
