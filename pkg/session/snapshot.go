package session

import (
	"math"

	"github.com/devfernandoa/HexKillerGame/pkg/components"
	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
)

// EntitySnapshot 单个实体的只读快照
type EntitySnapshot struct {
	ID      uint64  `json:"id"`
	Kind    string  `json:"kind"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Radius  float64 `json:"r,omitempty"`
	Heading float64 `json:"heading,omitempty"` // 子弹朝向（弧度）
	Alpha   float64 `json:"alpha,omitempty"`   // 敌人渐隐透明度
	Flash   bool    `json:"flash,omitempty"`   // 敌人受击闪烁
	Chasing bool    `json:"chasing,omitempty"`
}

// Snapshot 一帧的只读快照，供远程观战与无界面运行输出
type Snapshot struct {
	Time      float64          `json:"time"`
	Survival  float64          `json:"survival"`
	Threshold float64          `json:"threshold"`
	Level     int              `json:"level"`
	Score     int              `json:"score"`
	State     string           `json:"state"`
	Paused    bool             `json:"paused"`
	Over      bool             `json:"over"`
	Offers    []string         `json:"offers,omitempty"`
	Entities  []EntitySnapshot `json:"entities"`
}

var snapshotKinds = []ecs.Kind{ecs.KindPlayer, ecs.KindEnemy, ecs.KindProjectile, ecs.KindCollectable}

// Snapshot 生成当前帧的快照
// 返回值不引用任何内部状态，可以交给其他 goroutine
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Time:      s.tracker.GlobalTimer(),
		Survival:  s.tracker.SurvivalTimer(),
		Threshold: s.tracker.Threshold(),
		Level:     s.tracker.Level(),
		Score:     s.scores.Score(),
		State:     s.tracker.State().String(),
		Paused:    s.clock.Paused(),
		Over:      s.over,
	}
	for _, p := range s.tracker.PendingOffers() {
		snap.Offers = append(snap.Offers, p.Name)
	}

	for _, kind := range snapshotKinds {
		for _, id := range s.em.EntitiesOfKind(kind) {
			pos, ok := ecs.GetComponent[*components.PositionComponent](s.em, id)
			if !ok {
				continue
			}
			e := EntitySnapshot{ID: uint64(id), Kind: kind.String(), X: pos.X, Y: pos.Y}
			if col, ok := ecs.GetComponent[*components.CollisionComponent](s.em, id); ok {
				e.Radius = col.Radius
			}
			switch kind {
			case ecs.KindEnemy:
				if enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.em, id); ok {
					e.Alpha = enemy.Alpha()
					e.Flash = enemy.HitFlash
					e.Chasing = enemy.IsChasing
				}
			case ecs.KindProjectile:
				if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.em, id); ok {
					e.Heading = math.Atan2(vel.VY, vel.VX)
				}
			}
			snap.Entities = append(snap.Entities, e)
		}
	}
	return snap
}
