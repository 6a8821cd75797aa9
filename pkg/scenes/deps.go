package scenes

import (
	"github.com/devfernandoa/HexKillerGame/internal/audio"
	"github.com/devfernandoa/HexKillerGame/pkg/config"
	"github.com/devfernandoa/HexKillerGame/pkg/game"
	"github.com/devfernandoa/HexKillerGame/pkg/highscore"
	"github.com/devfernandoa/HexKillerGame/pkg/spectate"
)

const (
	// ScreenWidth 逻辑屏幕宽度（像素）
	ScreenWidth = 960
	// ScreenHeight 逻辑屏幕高度（像素）
	ScreenHeight = 600
	// pixelsPerUnit 世界单位到像素的缩放
	pixelsPerUnit = 24
	// cameraFollowSpeed 镜头跟随速度
	cameraFollowSpeed = 2
)

// Deps 场景共享的依赖
type Deps struct {
	Config   *config.GameConfig
	PowerUps []config.PowerUpDef
	Settings *game.SettingsManager
	Scenes   *game.SceneManager

	// 以下可为 nil
	Audio    *audio.Manager
	Scores   highscore.Service
	Spectate *spectate.Hub

	// Seed 为每局提供随机种子
	Seed func() int64
}
