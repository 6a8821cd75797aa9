package components

// VelocityComponent 实体速度（世界单位/秒）
// 子弹的速度会被追踪转向和反弹修改
type VelocityComponent struct {
	VX float64
	VY float64
}
