package components

// CollectableComponent 可收集物（击杀敌人或定时生成）
// 玩家触碰后加分并被移除
type CollectableComponent struct {
	Value int // 收集后增加的分数
}
