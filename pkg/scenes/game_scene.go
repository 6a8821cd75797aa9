package scenes

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/devfernandoa/HexKillerGame/pkg/game"
	"github.com/devfernandoa/HexKillerGame/pkg/highscore"
	"github.com/devfernandoa/HexKillerGame/pkg/session"
)

// levelPanelDuration 升级面板弹出动画时长（秒，真实时间）
const levelPanelDuration = 0.3

// GameScene 游戏中场景
//
// 每帧：读取输入 → Session.Update → 镜头跟随 → 推送观战快照。
// 升级暂停期间只处理选项按键；结束后处理名字输入与提交。
type GameScene struct {
	deps    *Deps
	session *session.Session
	camera  *Camera

	detachAudio func()
	ctx         context.Context
	cancel      context.CancelFunc

	// 升级面板动画进度（真实时间）
	panelTime float64

	// 结束界面
	board     *highscore.Board
	name      *nameInput
	submitErr error
}

// NewGameScene 开始新的一局
func NewGameScene(deps *Deps) (*GameScene, error) {
	seed := time.Now().UnixNano()
	if deps.Seed != nil {
		seed = deps.Seed()
	}
	sess, err := session.New(deps.Config, deps.PowerUps, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &GameScene{
		deps:    deps,
		session: sess,
		ctx:     ctx,
		cancel:  cancel,
	}
	px, py, _ := sess.PlayerPosition()
	s.camera = NewCamera(px, py)

	if deps.Audio != nil {
		s.detachAudio = deps.Audio.Attach(sess.Signals())
	}
	sess.SetGameOverHandler(s.onGameOver)
	sess.Start()

	log.Printf("[GameScene] New session (seed %d)", seed)
	return s, nil
}

func (s *GameScene) onGameOver(result session.Result) {
	s.name = newNameInput(s.deps.Settings.GetSettings().PlayerName, game.MaxPlayerNameLength)
	if s.deps.Scores != nil {
		s.board = highscore.NewBoard(s.ctx, s.deps.Scores)
		s.board.Refresh()
	}
}

// Close 释放音频订阅并取消未完成的网络请求
func (s *GameScene) Close() {
	if s.detachAudio != nil {
		s.detachAudio()
		s.detachAudio = nil
	}
	s.cancel()
}

// Update 更新场景
func (s *GameScene) Update(deltaTime float64) {
	switch {
	case s.session.IsOver():
		if s.updateGameOver() {
			return
		}
	case s.session.Tracker().State() == game.ProgressionLevelingPause:
		s.updateLevelUp(deltaTime)
	default:
		s.panelTime = 0
		s.session.SetMoveIntent(moveIntent(ebiten.IsKeyPressed))
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			s.session.TriggerDash()
		}
	}

	s.session.Update(deltaTime)

	if x, y, ok := s.session.PlayerPosition(); ok {
		s.camera.Follow(x, y, deltaTime)
	}

	if s.deps.Spectate != nil {
		if err := s.deps.Spectate.Publish(s.session.Snapshot()); err != nil {
			log.Printf("[GameScene] Warning: %v", err)
		}
	}
}

func (s *GameScene) updateLevelUp(deltaTime float64) {
	s.panelTime += deltaTime
	// 动画结束前不接受选择，避免误按
	if s.panelTime < levelPanelDuration {
		return
	}
	offers := s.session.Tracker().PendingOffers()
	i, ok := selectedOffer(inpututil.IsKeyJustPressed, len(offers))
	if !ok {
		return
	}
	if err := s.session.Select(i); err != nil {
		log.Printf("[GameScene] ERROR: Failed to apply power-up: %v", err)
	}
}

// updateGameOver 返回 true 表示已切换到其他场景
func (s *GameScene) updateGameOver() bool {
	if s.board != nil {
		s.board.Poll()
	}

	s.name.Insert(ebiten.AppendInputChars(nil))
	if d := inpututil.KeyPressDuration(ebiten.KeyBackspace); d == 1 || (d >= 30 && d%3 == 0) {
		s.name.Backspace()
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		s.submit()
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		next, err := NewGameScene(s.deps)
		if err != nil {
			log.Printf("[GameScene] ERROR: Failed to restart: %v", err)
			return false
		}
		s.deps.Scenes.SwitchTo(next)
		return true
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.deps.Scenes.SwitchTo(NewMainMenuScene(s.deps))
		return true
	}
	return false
}

func (s *GameScene) submit() {
	if s.board == nil {
		return
	}
	name := s.name.String()
	s.submitErr = s.board.Submit(name, s.session.Result().Score)
	if s.submitErr != nil {
		if !errors.Is(s.submitErr, highscore.ErrSaveInFlight) {
			log.Printf("[GameScene] Warning: %v", s.submitErr)
		}
		return
	}
	if name != "" {
		s.deps.Settings.SetPlayerName(name)
		if err := s.deps.Settings.Save(); err != nil {
			log.Printf("[GameScene] Warning: Failed to save settings: %v", err)
		}
	}
}

// Draw 绘制场景
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	s.drawWorld(screen)
	s.drawHUD(screen)

	switch {
	case s.session.IsOver():
		s.drawGameOver(screen)
	case s.session.Tracker().State() == game.ProgressionLevelingPause:
		s.drawLevelUp(screen)
	}
}
