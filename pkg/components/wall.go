package components

// WallOrientation 墙体朝向
// 决定反弹子弹时翻转哪个速度分量
type WallOrientation int

const (
	// WallVertical 竖直墙：翻转水平速度分量
	WallVertical WallOrientation = iota
	// WallHorizontal 水平墙：翻转竖直速度分量
	WallHorizontal
)

// String 返回朝向名称
func (o WallOrientation) String() string {
	if o == WallHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// WallComponent 轴对齐矩形墙体
// 位置组件表示矩形中心
type WallComponent struct {
	Width       float64
	Height      float64
	Orientation WallOrientation
}
