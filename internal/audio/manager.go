// Package audio 合成并播放游戏提示音
//
// 提示音在启动时用 beep 合成为 PCM，播放交给 ebiten 的音频上下文。
// Manager 订阅 SignalBus，信号到达时按设置的音量播放对应提示音。
package audio

import (
	"log"

	"github.com/gopxl/beep"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/devfernandoa/HexKillerGame/pkg/game"
)

// SampleRate 音频上下文采样率
const SampleRate = 48000

// Cue 提示音
type Cue int

const (
	CueShot Cue = iota
	CueHit
	CueDeath
	CuePickup
	CueLevelUp
	CueGameOver
)

// String 返回提示音名称
func (c Cue) String() string {
	switch c {
	case CueShot:
		return "shot"
	case CueHit:
		return "hit"
	case CueDeath:
		return "death"
	case CuePickup:
		return "pickup"
	case CueLevelUp:
		return "level_up"
	case CueGameOver:
		return "game_over"
	}
	return "unknown"
}

// CueFor 返回信号对应的提示音，没有对应时返回 false
func CueFor(t game.SignalType) (Cue, bool) {
	switch t {
	case game.SignalShotFired:
		return CueShot, true
	case game.SignalEnemyHit:
		return CueHit, true
	case game.SignalEnemyDied:
		return CueDeath, true
	case game.SignalScoreGain:
		return CuePickup, true
	case game.SignalLevelUp:
		return CueLevelUp, true
	case game.SignalPlayerCaught:
		return CueGameOver, true
	}
	return 0, false
}

// Manager 提示音播放
type Manager struct {
	context  *ebaudio.Context
	settings *game.SettingsManager
	pcm      map[Cue][]byte
	// 每种提示音同时只保留一个播放器，重复触发时从头播放
	players map[Cue]*ebaudio.Player
}

// NewManager 创建音频管理器并预先合成所有提示音
// settings 可为 nil（使用默认音量）
func NewManager(context *ebaudio.Context, settings *game.SettingsManager) *Manager {
	rate := beep.SampleRate(context.SampleRate())
	m := &Manager{
		context:  context,
		settings: settings,
		pcm:      make(map[Cue][]byte, len(cueNotes)),
		players:  make(map[Cue]*ebaudio.Player),
	}
	for cue := range cueNotes {
		m.pcm[cue] = Render(cue, rate)
	}
	log.Printf("[AudioManager] Synthesized %d cues at %d Hz", len(m.pcm), context.SampleRate())
	return m
}

// Attach 订阅信号总线，返回取消订阅函数
func (m *Manager) Attach(bus *game.SignalBus) (detach func()) {
	return bus.SubscribeAll(game.ListenerFunc(func(s game.Signal) {
		if cue, ok := CueFor(s.Type); ok {
			m.Play(cue)
		}
	}))
}

// Play 播放提示音，返回是否实际播放
func (m *Manager) Play(cue Cue) bool {
	volume := 0.8
	if m.settings != nil {
		volume = m.settings.EffectiveSoundVolume()
	}
	if volume <= 0 {
		return false
	}

	player, ok := m.players[cue]
	if !ok {
		data, exists := m.pcm[cue]
		if !exists {
			return false
		}
		player = m.context.NewPlayerFromBytes(data)
		m.players[cue] = player
	}

	player.SetVolume(volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind cue %s: %v", cue, err)
	}
	player.Play()
	return true
}
