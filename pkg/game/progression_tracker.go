package game

import (
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/devfernandoa/HexKillerGame/pkg/components"
)

var (
	// ErrNoPendingSelection 当前没有等待选择的升级
	ErrNoPendingSelection = errors.New("no level-up selection pending")
	// ErrNotOffered 选择的强化不在本次选项中
	ErrNotOffered = errors.New("power-up was not offered")
)

// ProgressionState 升级状态机状态
type ProgressionState int

const (
	// ProgressionRunning 正常计时
	ProgressionRunning ProgressionState = iota
	// ProgressionLevelingPause 升级暂停，等待选择
	ProgressionLevelingPause
	// ProgressionStopped 玩家死亡，不再升级
	ProgressionStopped
)

// String 返回状态名称
func (s ProgressionState) String() string {
	switch s {
	case ProgressionRunning:
		return "Running"
	case ProgressionLevelingPause:
		return "LevelingPause"
	case ProgressionStopped:
		return "Stopped"
	}
	return "Unknown"
}

// ProgressionTracker 生存计时与升级
//
// 状态流转：
//
//	Running --(survivalTimer >= threshold)--> LevelingPause --(Select)--> Running
//	任意状态 --(SetPlayerAlive(false))--> Stopped
//
// 进入 LevelingPause 时把时钟倍率设为 0，Select 后恢复为 1。
type ProgressionTracker struct {
	clock      *SimClock
	catalog    *PowerUpCatalog
	signals    *SignalBus
	threshold  float64
	offerCount int

	state         ProgressionState
	survivalTimer float64
	globalTimer   float64
	firstLevelUp  bool
	level         int
	offers        []*PowerUp
}

// NewProgressionTracker 创建升级追踪器
// offerCount 为每次升级（首次除外）的选项数量
func NewProgressionTracker(clock *SimClock, catalog *PowerUpCatalog, signals *SignalBus, threshold float64, offerCount int) *ProgressionTracker {
	return &ProgressionTracker{
		clock:        clock,
		catalog:      catalog,
		signals:      signals,
		threshold:    threshold,
		offerCount:   offerCount,
		state:        ProgressionRunning,
		firstLevelUp: true,
	}
}

// Update 推进计时，dt 为缩放后的游戏时间
func (t *ProgressionTracker) Update(dt float64) {
	if t.state != ProgressionRunning {
		return
	}
	t.survivalTimer += dt
	t.globalTimer += dt

	if t.survivalTimer >= t.threshold {
		t.levelUp()
	}
}

func (t *ProgressionTracker) levelUp() {
	t.survivalTimer = 0
	t.level++
	t.clock.SetRate(0)

	if t.firstLevelUp {
		t.offers = []*PowerUp{t.catalog.BasicShooting()}
		t.firstLevelUp = false
	} else {
		t.offers = t.catalog.DrawOffers(t.offerCount)
	}
	t.state = ProgressionLevelingPause

	log.Printf("[ProgressionTracker] Level %d reached at %.2fs, %d offers", t.level, t.globalTimer, len(t.offers))
	t.signals.Emit(Signal{Type: SignalLevelUp, Value: t.level})
}

// Select 应用选中的强化并恢复游戏
func (t *ProgressionTracker) Select(p *PowerUp, player *components.PlayerComponent) error {
	if t.state != ProgressionLevelingPause {
		return ErrNoPendingSelection
	}
	if p == nil || !slices.Contains(t.offers, p) {
		name := "<nil>"
		if p != nil {
			name = p.Name
		}
		return fmt.Errorf("%w: %s", ErrNotOffered, name)
	}
	if err := ApplyEffect(p.Effect, player); err != nil {
		return fmt.Errorf("failed to apply %s: %w", p.Name, err)
	}

	t.catalog.Consume(p)
	t.offers = nil
	t.clock.SetRate(1)
	t.state = ProgressionRunning

	log.Printf("[ProgressionTracker] Selected %q (%s)", p.Name, p.Rarity)
	return nil
}

// SetPlayerAlive 玩家死亡时停止升级并清零生存计时
func (t *ProgressionTracker) SetPlayerAlive(alive bool) {
	if alive {
		return
	}
	t.survivalTimer = 0
	t.offers = nil
	t.state = ProgressionStopped
}

// State 当前状态
func (t *ProgressionTracker) State() ProgressionState { return t.state }

// SurvivalTimer 本级已生存时间
func (t *ProgressionTracker) SurvivalTimer() float64 { return t.survivalTimer }

// GlobalTimer 本局总生存时间
func (t *ProgressionTracker) GlobalTimer() float64 { return t.globalTimer }

// Level 已升级次数
func (t *ProgressionTracker) Level() int { return t.level }

// Threshold 每级所需时间
func (t *ProgressionTracker) Threshold() float64 { return t.threshold }

// Progress 本级进度 [0, 1]
func (t *ProgressionTracker) Progress() float64 {
	if t.threshold <= 0 {
		return 0
	}
	return min(1, t.survivalTimer/t.threshold)
}

// PendingOffers 等待选择的选项副本
func (t *ProgressionTracker) PendingOffers() []*PowerUp {
	return append([]*PowerUp(nil), t.offers...)
}

// IsPlayerAlive 玩家是否存活
func (t *ProgressionTracker) IsPlayerAlive() bool {
	return t.state != ProgressionStopped
}
