package components

// EnemyComponent 敌人状态
//
// 状态流转：
//   - 生成时处于休眠状态（IsChasing=false），ChaseDelay 秒后开始追击
//   - FadeTimer 与追击状态无关，独立倒计时，归零时强制移除（生命上限）
//   - Health 归零触发死亡，Dead 标记保证死亡流程只执行一次
type EnemyComponent struct {
	Health       int     // 当前生命值，不会小于 0
	Speed        float64 // 追击速度（世界单位/秒）
	IsChasing    bool    // 是否正在追击玩家
	ChaseDelay   float64 // 生成后开始追击的延迟（秒）
	FadeTimer    float64 // 剩余存在时间（秒）
	FadeDuration float64 // 存在时间上限（秒）
	HitFlash     bool    // 受击闪烁中（供表现层读取）
	Dead         bool    // 已死亡
}

// Alpha 返回渐隐透明度 clamp01(FadeTimer/FadeDuration)
// 仅供表现层使用
func (e *EnemyComponent) Alpha() float64 {
	if e.FadeDuration <= 0 {
		return 0
	}
	a := e.FadeTimer / e.FadeDuration
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}
