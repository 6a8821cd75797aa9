package entities

import (
	"fmt"
	"log"

	"github.com/devfernandoa/HexKillerGame/pkg/components"
	"github.com/devfernandoa/HexKillerGame/pkg/config"
	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
)

// NewWallEntity 创建一面墙
// (cx, cy) 为矩形中心
func NewWallEntity(em *ecs.EntityManager, cx, cy, width, height float64, orientation components.WallOrientation) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("wall size must be positive, got %.2fx%.2f", width, height)
	}

	id := em.CreateEntity(ecs.KindWall)
	em.AddComponent(id, &components.PositionComponent{X: cx, Y: cy})
	em.AddComponent(id, &components.WallComponent{
		Width:       width,
		Height:      height,
		Orientation: orientation,
	})
	return id, nil
}

// NewArenaWalls 沿场地边界外侧创建四面墙
// 返回顺序：左、右、下、上
func NewArenaWalls(em *ecs.EntityManager, arena config.ArenaConfig) ([]ecs.EntityID, error) {
	b := arena.Bounds
	t := arena.WallThickness
	cx := (b.MinX + b.MaxX) / 2
	cy := (b.MinY + b.MaxY) / 2
	// 水平墙覆盖四角
	fullWidth := b.Width() + 2*t

	specs := []struct {
		cx, cy, w, h float64
		o            components.WallOrientation
	}{
		{b.MinX - t/2, cy, t, b.Height(), components.WallVertical},
		{b.MaxX + t/2, cy, t, b.Height(), components.WallVertical},
		{cx, b.MinY - t/2, fullWidth, t, components.WallHorizontal},
		{cx, b.MaxY + t/2, fullWidth, t, components.WallHorizontal},
	}

	ids := make([]ecs.EntityID, 0, len(specs))
	for _, s := range specs {
		id, err := NewWallEntity(em, s.cx, s.cy, s.w, s.h, s.o)
		if err != nil {
			return nil, fmt.Errorf("failed to create arena wall: %w", err)
		}
		ids = append(ids, id)
	}

	log.Printf("[WallFactory] Created %d arena walls around (%.1f,%.1f)-(%.1f,%.1f)",
		len(ids), b.MinX, b.MinY, b.MaxX, b.MaxY)
	return ids, nil
}
