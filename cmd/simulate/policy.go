package main

import (
	"math"

	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
	"github.com/devfernandoa/HexKillerGame/pkg/session"
)

// fleeRadius 超出此距离的敌人不影响移动
const fleeRadius = 6.0

// flee 按距离加权远离附近的追击敌人
// 没有威胁时返回 (0, 0)
func flee(snap session.Snapshot) (float64, float64) {
	px, py, ok := playerOf(snap)
	if !ok {
		return 0, 0
	}
	var fx, fy float64
	for _, e := range enemies(snap) {
		if !e.Chasing {
			continue
		}
		dx, dy := px-e.X, py-e.Y
		d := math.Hypot(dx, dy)
		if d >= fleeRadius || d == 0 {
			continue
		}
		w := (fleeRadius - d) / (fleeRadius * d)
		fx += dx * w
		fy += dy * w
	}
	// 向场地中心回拉，避免贴墙被堵死
	fx -= px * 0.02
	fy -= py * 0.02
	if math.Hypot(fx, fy) < 0.05 {
		return 0, 0
	}
	return fx, fy
}

func playerOf(snap session.Snapshot) (float64, float64, bool) {
	for _, e := range snap.Entities {
		if e.Kind == ecs.KindPlayer.String() {
			return e.X, e.Y, true
		}
	}
	return 0, 0, false
}

func enemies(snap session.Snapshot) []session.EntitySnapshot {
	var out []session.EntitySnapshot
	for _, e := range snap.Entities {
		if e.Kind == ecs.KindEnemy.String() {
			out = append(out, e)
		}
	}
	return out
}
