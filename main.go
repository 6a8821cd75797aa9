package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/devfernandoa/HexKillerGame/pkg/app"
	"github.com/devfernandoa/HexKillerGame/pkg/embedded"
	"github.com/devfernandoa/HexKillerGame/pkg/scenes"
)

var (
	verbose      = flag.Bool("verbose", false, "显示详细日志")
	configPath   = flag.String("config", app.DefaultConfigPath, "数值配置文件")
	powerUpsPath = flag.String("powerups", app.DefaultPowerUpsPath, "强化定义文件")
	scoresURL    = flag.String("scores", "", "排行榜地址（覆盖配置，\"-\" 禁用）")
	spectateAddr = flag.String("spectate", "", "观战 WebSocket 监听地址（如 :8081）")
	seed         = flag.Int64("seed", 0, "固定随机种子（0 表示随机）")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:      *verbose,
		ConfigPath:   *configPath,
		PowerUpsPath: *powerUpsPath,
		ScoresURL:    *scoresURL,
		SpectateAddr: *spectateAddr,
		Seed:         *seed,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(scenes.ScreenWidth, scenes.ScreenHeight)
	ebiten.SetWindowTitle("Hex Killer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
