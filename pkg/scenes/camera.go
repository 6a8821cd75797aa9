package scenes

import "github.com/devfernandoa/HexKillerGame/pkg/utils"

// Camera 平滑跟随玩家的镜头
// (X, Y) 为屏幕中心对应的世界坐标
type Camera struct {
	X, Y        float64
	FollowSpeed float64
	Scale       float64 // 像素/世界单位
	Width       float64 // 屏幕尺寸（像素）
	Height      float64
}

// NewCamera 创建以 (x, y) 为中心的镜头
func NewCamera(x, y float64) *Camera {
	return &Camera{
		X:           x,
		Y:           y,
		FollowSpeed: cameraFollowSpeed,
		Scale:       pixelsPerUnit,
		Width:       ScreenWidth,
		Height:      ScreenHeight,
	}
}

// Follow 每帧向目标插值 clamp01(FollowSpeed*dt)
func (c *Camera) Follow(tx, ty, dt float64) {
	t := utils.Clamp01(c.FollowSpeed * dt)
	c.X, c.Y = utils.LerpVec(c.X, c.Y, tx, ty, t)
}

// WorldToScreen 世界坐标转屏幕坐标
// 世界 Y 轴向上，屏幕 Y 轴向下
func (c *Camera) WorldToScreen(x, y float64) (float32, float32) {
	sx := (x-c.X)*c.Scale + c.Width/2
	sy := c.Height/2 - (y-c.Y)*c.Scale
	return float32(sx), float32(sy)
}

// Pixels 世界长度转像素
func (c *Camera) Pixels(length float64) float32 {
	return float32(length * c.Scale)
}
