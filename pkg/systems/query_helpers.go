package systems

import (
	"github.com/devfernandoa/HexKillerGame/pkg/components"
	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
)

// findPlayer 返回存活玩家及其位置
func findPlayer(em *ecs.EntityManager) (ecs.EntityID, *components.PositionComponent, bool) {
	id, ok := em.FirstOfKind(ecs.KindPlayer)
	if !ok {
		return 0, nil, false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return 0, nil, false
	}
	return id, pos, true
}

// circlesOverlap 两个圆是否重叠（相切不算）
func circlesOverlap(ax, ay, ar, bx, by, br float64) bool {
	dx, dy := bx-ax, by-ay
	r := ar + br
	return dx*dx+dy*dy < r*r
}

// circleOverlapsRect 圆与以 (cx, cy) 为中心的轴对齐矩形是否重叠
func circleOverlapsRect(x, y, r, cx, cy, w, h float64) bool {
	minX, maxX := cx-w/2, cx+w/2
	minY, maxY := cy-h/2, cy+h/2
	nx := max(minX, min(x, maxX))
	ny := max(minY, min(y, maxY))
	dx, dy := x-nx, y-ny
	return dx*dx+dy*dy < r*r
}

// randomPointIn 在矩形内均匀取点
func randomPointIn(rng interface{ Float64() float64 }, minX, minY, maxX, maxY float64) (float64, float64) {
	x := minX + rng.Float64()*(maxX-minX)
	y := minY + rng.Float64()*(maxY-minY)
	return x, y
}
