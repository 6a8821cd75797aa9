// simulate 无界面运行一局游戏
//
// 玩家由简单策略控制：远离最近的敌人，升级时选择第一个选项。
// 固定种子可以完整复现一局，用于调参和回归对比。
//
// 用法:
//
//	go run ./cmd/simulate --seed 42 --duration 120
//	go run ./cmd/simulate --seed 42 --frames > frames.jsonl
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/devfernandoa/HexKillerGame/pkg/config"
	"github.com/devfernandoa/HexKillerGame/pkg/game"
	"github.com/devfernandoa/HexKillerGame/pkg/session"
)

var (
	seed         = flag.Int64("seed", 1, "随机种子")
	duration     = flag.Float64("duration", 300, "最长运行时间（真实秒）")
	step         = flag.Float64("step", 1.0/60.0, "每帧时长（秒）")
	configPath   = flag.String("config", "", "数值配置文件（为空使用内置默认值）")
	powerUpsPath = flag.String("powerups", "", "强化定义文件（为空使用内置默认值）")
	frames       = flag.Bool("frames", false, "每秒输出一帧 JSON 快照")
	verbose      = flag.Bool("verbose", false, "显示详细日志")
)

// summary 结束时输出的统计
type summary struct {
	Seed      int64    `json:"seed"`
	Over      bool     `json:"over"`
	Score     int      `json:"score"`
	Survival  float64  `json:"survivalTime"`
	Level     int      `json:"level"`
	Picked    []string `json:"picked"`
	Frames    int      `json:"frames"`
	Interval  float64  `json:"spawnInterval"`
	Remaining int      `json:"enemies"`
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer) error {
	cfg := config.DefaultGameConfig()
	if *configPath != "" {
		loaded, err := config.LoadGameConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	defs := config.DefaultPowerUps()
	if *powerUpsPath != "" {
		loaded, err := config.LoadPowerUps(*powerUpsPath)
		if err != nil {
			return err
		}
		defs = loaded
	}

	sess, err := session.New(cfg, defs, rand.New(rand.NewSource(*seed)))
	if err != nil {
		return err
	}

	var picked []string
	sess.Signals().Subscribe(game.SignalLevelUp, game.ListenerFunc(func(s game.Signal) {
		log.Printf("[Simulate] Level %d at %.2fs", s.Value, sess.Tracker().GlobalTimer())
	}))
	sess.Start()

	enc := json.NewEncoder(out)
	n := 0
	nextFrame := 0.0
	for elapsed := 0.0; elapsed < *duration && !sess.IsOver(); elapsed += *step {
		if offers := sess.Tracker().PendingOffers(); len(offers) > 0 {
			picked = append(picked, offers[0].Name)
			if err := sess.Select(0); err != nil {
				return fmt.Errorf("select: %w", err)
			}
		}

		snap := sess.Snapshot()
		sess.SetMoveIntent(flee(snap))
		if canDash(sess) {
			sess.TriggerDash()
		}
		sess.Update(*step)
		n++

		if *frames && elapsed >= nextFrame {
			if err := enc.Encode(sess.Snapshot()); err != nil {
				return err
			}
			nextFrame += 1
		}
	}

	result := sess.Result()
	if !sess.IsOver() {
		result.Score = sess.Score()
		result.SurvivalTime = sess.Tracker().GlobalTimer()
		result.Level = sess.Tracker().Level()
	}
	if *frames {
		return nil
	}
	enc.SetIndent("", "  ")
	return enc.Encode(summary{
		Seed:      *seed,
		Over:      sess.IsOver(),
		Score:     result.Score,
		Survival:  result.SurvivalTime,
		Level:     result.Level,
		Picked:    picked,
		Frames:    n,
		Interval:  sess.SpawnInterval(),
		Remaining: len(enemies(sess.Snapshot())),
	})
}

// canDash 最近的敌人已经贴近时冲刺
func canDash(sess *session.Session) bool {
	p, ok := sess.Player()
	if !ok || !p.DashUnlocked || !p.DashReady {
		return false
	}
	snap := sess.Snapshot()
	px, py, ok := playerOf(snap)
	if !ok {
		return false
	}
	for _, e := range enemies(snap) {
		if dx, dy := e.X-px, e.Y-py; dx*dx+dy*dy < 4 {
			return true
		}
	}
	return false
}
