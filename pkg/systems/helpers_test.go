package systems

import (
	"math"
	"testing"

	"github.com/devfernandoa/HexKillerGame/pkg/components"
	"github.com/devfernandoa/HexKillerGame/pkg/config"
	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
	"github.com/devfernandoa/HexKillerGame/pkg/game"
)

// scriptedRand 按顺序返回预设值的随机源
// 值用完后从头循环；Intn 总是返回 0
type scriptedRand struct {
	values []float64
	next   int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.values) == 0 {
		return 0.5
	}
	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}

func (r *scriptedRand) Intn(n int) int { return 0 }

// testWorld 系统测试共用的最小环境
type testWorld struct {
	em      *ecs.EntityManager
	clock   *game.SimClock
	bus     *game.SignalBus
	cfg     *config.GameConfig
	signals []game.Signal
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	w := &testWorld{
		em:    ecs.NewEntityManager(),
		clock: game.NewSimClock(),
		bus:   game.NewSignalBus(),
		cfg:   config.DefaultGameConfig(),
	}
	w.bus.SubscribeAll(game.ListenerFunc(func(s game.Signal) {
		w.signals = append(w.signals, s)
	}))
	return w
}

func (w *testWorld) count(t game.SignalType) int {
	n := 0
	for _, s := range w.signals {
		if s.Type == t {
			n++
		}
	}
	return n
}

// addPlayer 在 (x, y) 放置玩家
func (w *testWorld) addPlayer(t *testing.T, x, y float64) (ecs.EntityID, *components.PlayerComponent) {
	t.Helper()
	em := w.em
	id := em.CreateEntity(ecs.KindPlayer)
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.CollisionComponent{Radius: w.cfg.Player.Radius})
	p := &components.PlayerComponent{
		BaseSpeed:           w.cfg.Player.Speed,
		ShootCooldown:       w.cfg.Player.ShootCooldown,
		ShootTimer:          w.cfg.Player.ShootCooldown,
		ProjectileSpeed:     w.cfg.Projectile.Speed,
		ProjectileDamage:    w.cfg.Projectile.Damage,
		ProjectileLifetime:  w.cfg.Projectile.Lifetime,
		HomingAmount:        w.cfg.Player.HomingAmount,
		MultiShotAmount:     1,
		MultiShotDelay:      w.cfg.Player.MultiShotDelay,
		SplitShotAmount:     1,
		BoostMultiplier:     1,
		DashSpeedMultiplier: w.cfg.Player.DashMultiplier,
		DashDuration:        w.cfg.Player.DashDuration,
		DashCooldown:        w.cfg.Player.DashCooldown,
		Momentum:            1,
		MaxMomentum:         w.cfg.Player.MaxMomentum,
		MomentumBuildRate:   w.cfg.Player.MomentumBuildRate,
	}
	em.AddComponent(id, p)
	return id, p
}

// addEnemy 在 (x, y) 放置敌人
func (w *testWorld) addEnemy(x, y float64, health int) (ecs.EntityID, *components.EnemyComponent) {
	id := w.em.CreateEntity(ecs.KindEnemy)
	w.em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	w.em.AddComponent(id, &components.CollisionComponent{Radius: w.cfg.Enemy.Radius})
	e := &components.EnemyComponent{
		Health:       health,
		Speed:        w.cfg.Enemy.Speed,
		ChaseDelay:   w.cfg.Enemy.ChaseDelay,
		FadeTimer:    w.cfg.Enemy.FadeDuration,
		FadeDuration: w.cfg.Enemy.FadeDuration,
	}
	w.em.AddComponent(id, e)
	return id, e
}

func (w *testWorld) position(id ecs.EntityID) *components.PositionComponent {
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, id)
	return pos
}

func (w *testWorld) velocity(id ecs.EntityID) *components.VelocityComponent {
	vel, _ := ecs.GetComponent[*components.VelocityComponent](w.em, id)
	return vel
}

// dropRecorder 记录敌人死亡掉落
type dropRecorder struct {
	drops [][2]float64
}

func (d *dropRecorder) SpawnCollectable(x, y float64) (ecs.EntityID, bool) {
	d.drops = append(d.drops, [2]float64{x, y})
	return ecs.EntityID(len(d.drops)), true
}

func projectileOf(t *testing.T, w *testWorld, id ecs.EntityID) *components.ProjectileComponent {
	t.Helper()
	proj, ok := ecs.GetComponent[*components.ProjectileComponent](w.em, id)
	if !ok {
		t.Fatalf("entity %d has no projectile component", id)
	}
	return proj
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
