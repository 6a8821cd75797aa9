package components

import "github.com/devfernandoa/HexKillerGame/pkg/ecs"

// ProjectileComponent 子弹行为参数
//
// 创建后只有 HomingCharge、Contacts（以及速度组件）会被修改。
// Contacts 记录当前正与子弹重叠的实体，碰撞只在"进入"时结算一次，
// 与穿透子弹多帧重叠同一个敌人时不会重复造成伤害。
type ProjectileComponent struct {
	Damage       int
	Piercing     bool // 命中后不销毁，可继续命中其他敌人
	Ricochet     bool // 碰墙反弹
	Homing       bool // 追踪最近的敌人
	HomingCharge int  // 命中后剩余的重新索敌次数，不会小于 0

	Contacts map[ecs.EntityID]struct{}
}

// Touching 子弹当前是否与实体重叠
func (p *ProjectileComponent) Touching(id ecs.EntityID) bool {
	_, ok := p.Contacts[id]
	return ok
}

// SetTouching 更新与实体的重叠状态
func (p *ProjectileComponent) SetTouching(id ecs.EntityID, touching bool) {
	if touching {
		if p.Contacts == nil {
			p.Contacts = make(map[ecs.EntityID]struct{})
		}
		p.Contacts[id] = struct{}{}
		return
	}
	delete(p.Contacts, id)
}
