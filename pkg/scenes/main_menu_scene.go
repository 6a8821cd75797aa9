package scenes

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/devfernandoa/HexKillerGame/pkg/utils"
)

// titleFadeIn 标题淡入时长（秒）
const titleFadeIn = 0.8

// MainMenuScene 主菜单
// Enter 开始游戏，M 切换音效，Esc 退出
type MainMenuScene struct {
	deps *Deps
	time float64
}

// NewMainMenuScene 创建主菜单
func NewMainMenuScene(deps *Deps) *MainMenuScene {
	return &MainMenuScene{deps: deps}
}

// Update 处理菜单输入
func (s *MainMenuScene) Update(deltaTime float64) {
	s.time += deltaTime

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		scene, err := NewGameScene(s.deps)
		if err != nil {
			log.Printf("[MainMenuScene] ERROR: Failed to start game: %v", err)
			return
		}
		s.deps.Scenes.SwitchTo(scene)
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		settings := s.deps.Settings.GetSettings()
		s.deps.Settings.SetSoundEnabled(!settings.SoundEnabled)
		if err := s.deps.Settings.Save(); err != nil {
			log.Printf("[MainMenuScene] Warning: Failed to save settings: %v", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.deps.Scenes.RequestQuit()
	}
}

// Draw 绘制菜单
func (s *MainMenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	cx := float64(ScreenWidth) / 2
	fade := utils.EaseOutQuad(utils.Clamp01(s.time / titleFadeIn))
	drawTextCentered(screen, "H E X   K I L L E R", cx, 180, withAlpha(colorPlayer, fade))
	drawTextCentered(screen, "survive, level up, pick your power-ups", cx, 210, colorDim)

	// 提示文字闪烁
	if int(s.time*2)%2 == 0 {
		drawTextCentered(screen, "press ENTER to play", cx, 300, colorText)
	}

	sound := "on"
	if !s.deps.Settings.GetSettings().SoundEnabled {
		sound = "off"
	}
	drawTextCentered(screen, fmt.Sprintf("[M] sound: %s    [ESC] quit", sound), cx, 340, colorDim)
	drawTextCentered(screen, "WASD / arrows: move    SPACE: dash    1-3: choose power-up", cx, 520, colorDim)
}
