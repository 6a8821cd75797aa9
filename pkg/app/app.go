// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/devfernandoa/HexKillerGame/internal/audio"
	"github.com/devfernandoa/HexKillerGame/pkg/config"
	"github.com/devfernandoa/HexKillerGame/pkg/game"
	"github.com/devfernandoa/HexKillerGame/pkg/highscore"
	"github.com/devfernandoa/HexKillerGame/pkg/scenes"
	"github.com/devfernandoa/HexKillerGame/pkg/spectate"
)

// 默认配置文件路径（优先从嵌入数据读取）
const (
	DefaultConfigPath   = "data/game.yaml"
	DefaultPowerUpsPath = "data/powerups.yaml"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 数值配置文件，为空使用 DefaultConfigPath
	ConfigPath string
	// PowerUpsPath 强化定义文件，为空使用 DefaultPowerUpsPath
	PowerUpsPath string
	// ScoresURL 覆盖配置文件中的排行榜地址；"-" 表示禁用排行榜
	ScoresURL string
	// SpectateAddr 覆盖配置文件中的观战监听地址
	SpectateAddr string
	// Seed 固定随机种子；0 表示每局使用当前时间
	Seed int64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	hub          *spectate.Hub
	server       *spectate.Server
	verbose      bool
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，如需使用嵌入配置，必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if cfg.ConfigPath == "" {
		cfg.ConfigPath = DefaultConfigPath
	}
	if cfg.PowerUpsPath == "" {
		cfg.PowerUpsPath = DefaultPowerUpsPath
	}

	gameConfig, err := config.LoadGameConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("game config: %w", err)
	}
	powerUps, err := config.LoadPowerUps(cfg.PowerUpsPath)
	if err != nil {
		return nil, fmt.Errorf("power-up config: %w", err)
	}
	log.Printf("[App] Loaded %s and %d power-ups from %s", cfg.ConfigPath, len(powerUps), cfg.PowerUpsPath)

	// 设置存储失败时降级为内存设置
	store, err := gdata.Open(gdata.Config{AppName: "hexkiller"})
	if err != nil {
		log.Printf("[App] Warning: Failed to open settings storage: %v (settings will not persist)", err)
		store = nil
	}
	settings := game.NewSettingsManager(store)
	ebiten.SetFullscreen(settings.GetSettings().Fullscreen)

	// 初始化音频上下文
	audioContext := ebaudio.NewContext(audio.SampleRate)
	audioManager := audio.NewManager(audioContext, settings)
	log.Printf("[App] AudioManager initialized")

	sceneManager := game.NewSceneManager()
	deps := &scenes.Deps{
		Config:   gameConfig,
		PowerUps: powerUps,
		Settings: settings,
		Scenes:   sceneManager,
		Audio:    audioManager,
		Seed:     seedFunc(cfg.Seed),
	}

	scoresURL := gameConfig.Scores.BaseURL
	if cfg.ScoresURL != "" {
		scoresURL = cfg.ScoresURL
	}
	if scoresURL != "" && scoresURL != "-" {
		deps.Scores = highscore.NewClient(scoresURL, gameConfig.Scores.Timeout)
		log.Printf("[App] High scores: %s", scoresURL)
	}

	a := &App{
		sceneManager: sceneManager,
		settings:     settings,
		verbose:      cfg.Verbose,
	}

	spectateAddr := gameConfig.Spectate.Addr
	if cfg.SpectateAddr != "" {
		spectateAddr = cfg.SpectateAddr
	}
	if spectateAddr != "" {
		a.hub = spectate.NewHub()
		a.server, err = spectate.Listen(spectateAddr, a.hub)
		if err != nil {
			return nil, fmt.Errorf("spectate: %w", err)
		}
		deps.Spectate = a.hub
		log.Printf("[App] Spectators can connect to ws://%s/ws", a.server.Addr())
	}

	sceneManager.SwitchTo(scenes.NewMainMenuScene(deps))
	return a, nil
}

// seedFunc 固定种子时每局都相同，否则按时间生成
func seedFunc(seed int64) func() int64 {
	if seed != 0 {
		return func() int64 { return seed }
	}
	return func() int64 { return time.Now().UnixNano() }
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		a.settings.SetFullscreen(fullscreen)
		if err := a.settings.Save(); err != nil {
			log.Printf("[App] Warning: Failed to save settings: %v", err)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)

	if a.sceneManager.QuitRequested() {
		return ebiten.Termination
	}
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return scenes.ScreenWidth, scenes.ScreenHeight
}

// Close 关闭当前场景与观战服务
// 在 RunGame 返回后调用
func (a *App) Close() {
	a.sceneManager.Close()
	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.server.Shutdown(ctx); err != nil {
			log.Printf("[App] Warning: spectate shutdown: %v", err)
		}
	}
	if a.hub != nil {
		a.hub.Close()
	}
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
