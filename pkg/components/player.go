package components

// PlayerComponent 玩家的战斗与移动参数
//
// 强化效果直接修改这些字段；PlayerSystem 每帧读取它们完成移动和自动射击。
type PlayerComponent struct {
	// 移动
	BaseSpeed float64 // 基础移动速度（世界单位/秒）
	MoveX     float64 // 当前移动意图（输入层提供，未归一化）
	MoveY     float64

	// 自动射击
	CanShoot           bool
	ShootCooldown      float64 // 射击间隔（秒）
	ShootTimer         float64 // 距下次射击的剩余时间（秒）
	ProjectileSpeed    float64
	ProjectileDamage   int
	ProjectileLifetime float64

	// 子弹行为（新发射的子弹继承这些标志）
	Piercing     bool
	Ricochet     bool
	Homing       bool
	HomingAmount int // 每颗追踪子弹的重新索敌次数

	// 连发：沿同一方向依次发射 MultiShotAmount 颗，间隔 MultiShotDelay
	MultiShotEnabled bool
	MultiShotAmount  int
	MultiShotDelay   float64

	// 分裂：一次向 SplitShotAmount 个均匀分布的方向发射
	SplitShotEnabled bool
	SplitShotAmount  int

	// 限时加速
	BoostMultiplier float64
	BoostTimer      float64 // 剩余加速时间（秒），<= 0 表示未加速

	// 冲刺
	DashUnlocked        bool // 是否已获得冲刺能力
	DashReady           bool // 冷却完成
	Dashing             bool
	DashSpeedMultiplier float64
	DashDuration        float64
	DashCooldown        float64

	// 动量：沿同一方向持续移动时逐渐加速
	MomentumEnabled   bool
	Momentum          float64 // 当前倍率，1 表示无加成
	MaxMomentum       float64
	MomentumBuildRate float64 // 每秒增加的倍率
	LastMoveX         float64
	LastMoveY         float64
}

// CurrentSpeed 返回当前实际移动速度
// 优先级：冲刺 > 限时加速 > 动量 > 基础速度
func (p *PlayerComponent) CurrentSpeed() float64 {
	switch {
	case p.Dashing:
		return p.BaseSpeed * p.DashSpeedMultiplier
	case p.BoostTimer > 0:
		return p.BaseSpeed * p.BoostMultiplier
	case p.MomentumEnabled:
		return p.BaseSpeed * p.Momentum
	}
	return p.BaseSpeed
}
