package components

// PositionComponent 实体在世界坐标系中的位置（世界单位，非像素）
type PositionComponent struct {
	X float64
	Y float64
}

// Location 实现 ecs.Locatable，供最近邻查询使用
func (p *PositionComponent) Location() (float64, float64) {
	return p.X, p.Y
}
