package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// moveIntent 根据按键状态计算移动意图（未归一化，各轴取值 -1/0/1）
// 世界 Y 轴向上
func moveIntent(pressed func(ebiten.Key) bool) (float64, float64) {
	var x, y float64
	if pressed(ebiten.KeyA) || pressed(ebiten.KeyArrowLeft) {
		x--
	}
	if pressed(ebiten.KeyD) || pressed(ebiten.KeyArrowRight) {
		x++
	}
	if pressed(ebiten.KeyW) || pressed(ebiten.KeyArrowUp) {
		y++
	}
	if pressed(ebiten.KeyS) || pressed(ebiten.KeyArrowDown) {
		y--
	}
	return x, y
}

// offerKeys 升级选项对应的按键
var offerKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5}

// selectedOffer 返回本帧按下的选项序号
func selectedOffer(justPressed func(ebiten.Key) bool, count int) (int, bool) {
	for i, key := range offerKeys {
		if i >= count {
			break
		}
		if justPressed(key) {
			return i, true
		}
	}
	return 0, false
}
