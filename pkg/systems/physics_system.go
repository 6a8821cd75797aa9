package systems

import (
	"github.com/devfernandoa/HexKillerGame/pkg/components"
	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
	"github.com/devfernandoa/HexKillerGame/pkg/utils"
)

// PhysicsSystem 子弹运动
// 负责追踪子弹的转向和所有带速度实体的位移
type PhysicsSystem struct {
	em *ecs.EntityManager
	// 追踪转向速率：每帧向目标方向插值 clamp01(dt*turnRate)
	turnRate float64
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - em: 实体管理器
//   - turnRate: 追踪子弹的转向速率
func NewPhysicsSystem(em *ecs.EntityManager, turnRate float64) *PhysicsSystem {
	return &PhysicsSystem{
		em:       em,
		turnRate: turnRate,
	}
}

// Update 先转向再位移
func (ps *PhysicsSystem) Update(deltaTime float64) {
	if deltaTime <= 0 {
		return
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.VelocityComponent](ps.em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ps.em, id)

		if proj, ok := ecs.GetComponent[*components.ProjectileComponent](ps.em, id); ok && proj.Homing {
			ps.steer(pos, vel, deltaTime)
		}

		pos.X += vel.VX * deltaTime
		pos.Y += vel.VY * deltaTime
	}
}

// steer 把速度向最近的存活敌人方向插值，保持速率不变
// 没有敌人时速度不变
func (ps *PhysicsSystem) steer(pos *components.PositionComponent, vel *components.VelocityComponent, dt float64) {
	target, ok := ecs.Nearest[*components.PositionComponent](ps.em, ecs.KindEnemy, pos.X, pos.Y)
	if !ok {
		return
	}
	targetPos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, target)
	dirX, dirY := utils.Normalize(targetPos.X-pos.X, targetPos.Y-pos.Y)
	if dirX == 0 && dirY == 0 {
		return
	}

	speed := utils.Length(vel.VX, vel.VY)
	t := utils.Clamp01(dt * ps.turnRate)
	vx, vy := utils.LerpVec(vel.VX, vel.VY, dirX*speed, dirY*speed, t)

	// 插值会缩短向量，重新拉回原速率
	nx, ny := utils.Normalize(vx, vy)
	if nx == 0 && ny == 0 {
		return
	}
	vel.VX, vel.VY = nx*speed, ny*speed
}
