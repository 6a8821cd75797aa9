package components

// CollisionComponent 定义实体的圆形碰撞范围
// 用于子弹、敌人、玩家、可收集物之间的重叠检测
type CollisionComponent struct {
	Radius float64 // 碰撞半径（世界单位）
}
