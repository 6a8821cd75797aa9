package systems

import (
	"testing"

	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
	"github.com/devfernandoa/HexKillerGame/pkg/entities"
	"github.com/devfernandoa/HexKillerGame/pkg/game"
)

func newCombatSystem(w *testWorld) (*CombatSystem, *EnemyBehaviorSystem) {
	enemies := newBehaviorSystem(w, nil)
	return NewCombatSystem(w.em, w.bus, enemies), enemies
}

func TestCombatNonPiercingDestroyedOnFirstHit(t *testing.T) {
	w := newTestWorld(t)
	cs, _ := newCombatSystem(w)
	_, enemy := w.addEnemy(0, 0, 3)
	bullet := addProjectile(t, w, entities.ProjectileParams{DirX: 1})

	cs.Update(0.016)

	if w.em.IsAlive(bullet) {
		t.Error("non-piercing projectile should be destroyed on hit")
	}
	if enemy.Health != 2 {
		t.Errorf("expected enemy health 2, got %d", enemy.Health)
	}
	if w.count(game.SignalProjectileHit) != 1 {
		t.Errorf("expected 1 projectile_hit signal, got %d", w.count(game.SignalProjectileHit))
	}
}

func TestCombatPiercingHitsOncePerOverlap(t *testing.T) {
	w := newTestWorld(t)
	cs, _ := newCombatSystem(w)
	_, enemy := w.addEnemy(0, 0, 5)
	bullet := addProjectile(t, w, entities.ProjectileParams{DirX: 1, Piercing: true})

	cs.Update(0.016)
	cs.Update(0.016)

	if !w.em.IsAlive(bullet) {
		t.Fatal("piercing projectile should survive the hit")
	}
	if enemy.Health != 4 {
		t.Errorf("expected a single hit while overlapping, health=%d", enemy.Health)
	}

	// 离开后再次进入重新结算
	w.position(bullet).X = 3
	cs.Update(0.016)
	w.position(bullet).X = 0
	cs.Update(0.016)
	if enemy.Health != 3 {
		t.Errorf("expected a second hit after re-entering, health=%d", enemy.Health)
	}
}

func TestCombatPiercingHitsMultipleEnemies(t *testing.T) {
	w := newTestWorld(t)
	cs, _ := newCombatSystem(w)
	w.addEnemy(0, 0, 1)
	w.addEnemy(0.1, 0, 1)
	bullet := addProjectile(t, w, entities.ProjectileParams{DirX: 1, Piercing: true})

	cs.Update(0.016)

	if !w.em.IsAlive(bullet) {
		t.Error("piercing projectile should survive")
	}
	if n := w.em.CountOfKind(ecs.KindEnemy); n != 0 {
		t.Errorf("expected both enemies killed, %d left", n)
	}
}

func TestCombatHomingChargeRetargets(t *testing.T) {
	w := newTestWorld(t)
	cs, _ := newCombatSystem(w)
	w.addEnemy(0, 0, 1)
	w.addEnemy(5, 0, 1)
	w.addEnemy(10, 0, 1)
	bullet := addProjectile(t, w, entities.ProjectileParams{DirX: 1, Homing: true, HomingCharge: 2})
	proj := projectileOf(t, w, bullet)

	cs.Update(0.016)
	if !w.em.IsAlive(bullet) || proj.HomingCharge != 1 {
		t.Fatalf("expected survival with charge 1, alive=%v charge=%d", w.em.IsAlive(bullet), proj.HomingCharge)
	}

	w.position(bullet).X = 5
	cs.Update(0.016)
	if !w.em.IsAlive(bullet) || proj.HomingCharge != 0 {
		t.Fatalf("expected survival with charge 0, alive=%v charge=%d", w.em.IsAlive(bullet), proj.HomingCharge)
	}

	w.position(bullet).X = 10
	cs.Update(0.016)
	if w.em.IsAlive(bullet) {
		t.Error("homing projectile with no charge left should be destroyed on hit")
	}
}

func TestCombatHomingWithoutTargetDestroyed(t *testing.T) {
	w := newTestWorld(t)
	cs, _ := newCombatSystem(w)
	w.addEnemy(0, 0, 1)
	bullet := addProjectile(t, w, entities.ProjectileParams{DirX: 1, Homing: true, HomingCharge: 3, Piercing: true})
	proj := projectileOf(t, w, bullet)

	cs.Update(0.016)

	if w.em.IsAlive(bullet) {
		t.Error("homing projectile should be destroyed when no enemy remains")
	}
	if proj.HomingCharge != 2 {
		t.Errorf("expected charge decremented to 2, got %d", proj.HomingCharge)
	}
}

func TestCombatRicochet(t *testing.T) {
	tests := []struct {
		name           string
		x, y           float64
		dirX, dirY     float64
		wantVX, wantVY float64
	}{
		{"竖直墙翻转水平分量", 22.1, 0, 0.8, 0.6, -8, 6},
		{"水平墙翻转竖直分量", 0, 13.1, 0.6, 0.8, 6, -8},
		{"左墙", -22.1, 0, -0.8, 0.6, 8, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			if _, err := entities.NewArenaWalls(w.em, w.cfg.Arena); err != nil {
				t.Fatalf("NewArenaWalls failed: %v", err)
			}
			cs, _ := newCombatSystem(w)
			bullet := addProjectile(t, w, entities.ProjectileParams{X: tt.x, Y: tt.y, DirX: tt.dirX, DirY: tt.dirY, Ricochet: true})

			cs.Update(0.016)
			// 仍在墙内，不重复反弹
			cs.Update(0.016)

			if !w.em.IsAlive(bullet) {
				t.Fatal("ricochet projectile should survive a wall hit")
			}
			vel := w.velocity(bullet)
			if !approx(vel.VX, tt.wantVX) || !approx(vel.VY, tt.wantVY) {
				t.Errorf("expected velocity (%v, %v), got (%v, %v)", tt.wantVX, tt.wantVY, vel.VX, vel.VY)
			}
		})
	}
}

func TestCombatWallDestroysPlainProjectile(t *testing.T) {
	w := newTestWorld(t)
	if _, err := entities.NewArenaWalls(w.em, w.cfg.Arena); err != nil {
		t.Fatalf("NewArenaWalls failed: %v", err)
	}
	cs, _ := newCombatSystem(w)
	bullet := addProjectile(t, w, entities.ProjectileParams{X: 22.1, DirX: 1})

	cs.Update(0.016)

	if w.em.IsAlive(bullet) {
		t.Error("projectile without ricochet should be destroyed by a wall")
	}
}
