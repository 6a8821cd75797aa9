package systems

import (
	"github.com/devfernandoa/HexKillerGame/pkg/components"
	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
)

// ScoreKeeper 接收拾取得分
type ScoreKeeper interface {
	Add(points int, x, y float64)
}

// PickupSystem 玩家触碰可收集物时加分并移除
type PickupSystem struct {
	em     *ecs.EntityManager
	scores ScoreKeeper
}

// NewPickupSystem 创建拾取系统
func NewPickupSystem(em *ecs.EntityManager, scores ScoreKeeper) *PickupSystem {
	return &PickupSystem{em: em, scores: scores}
}

// Update 返回本帧拾取的数量
func (s *PickupSystem) Update(deltaTime float64) int {
	playerID, playerPos, ok := findPlayer(s.em)
	if !ok {
		return 0
	}
	playerCol, ok := ecs.GetComponent[*components.CollisionComponent](s.em, playerID)
	if !ok {
		return 0
	}

	picked := 0
	for _, id := range s.em.EntitiesOfKind(ecs.KindCollectable) {
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.em, id)
		if !ok {
			continue
		}
		col, ok := ecs.GetComponent[*components.CollisionComponent](s.em, id)
		if !ok {
			continue
		}
		if !circlesOverlap(playerPos.X, playerPos.Y, playerCol.Radius, pos.X, pos.Y, col.Radius) {
			continue
		}

		value := 1
		if c, ok := ecs.GetComponent[*components.CollectableComponent](s.em, id); ok {
			value = c.Value
		}
		s.em.DestroyEntity(id)
		if s.scores != nil {
			s.scores.Add(value, pos.X, pos.Y)
		}
		picked++
	}
	return picked
}
