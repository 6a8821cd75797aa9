package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个界面（主菜单、游戏中）
// 同一时间只有一个场景在更新和绘制
type Scene interface {
	// Update 更新场景逻辑，deltaTime 为真实经过的时间（秒）
	Update(deltaTime float64)

	// Draw 绘制场景
	Draw(screen *ebiten.Image)
}

// Closer 是场景的可选接口
// 场景被替换或程序退出时调用，用于释放订阅、取消网络请求等
type Closer interface {
	Close()
}
