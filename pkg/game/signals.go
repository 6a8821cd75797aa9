package game

import "github.com/devfernandoa/HexKillerGame/pkg/ecs"

// SignalType 信号类型
type SignalType string

const (
	// SignalEnemySpawned 敌人生成
	SignalEnemySpawned SignalType = "enemy_spawned"
	// SignalCollectableSpawned 可收集物生成
	SignalCollectableSpawned SignalType = "collectable_spawned"
	// SignalEnemyHit 敌人受伤但未死亡
	SignalEnemyHit SignalType = "enemy_hit"
	// SignalEnemyDied 敌人死亡（每个敌人恰好一次）
	SignalEnemyDied SignalType = "enemy_died"
	// SignalProjectileHit 子弹命中敌人
	SignalProjectileHit SignalType = "projectile_hit"
	// SignalScoreGain 拾取可收集物得分
	SignalScoreGain SignalType = "score_gain"
	// SignalLevelUp 升级，游戏暂停等待选择
	SignalLevelUp SignalType = "level_up"
	// SignalPlayerCaught 玩家被敌人接触
	SignalPlayerCaught SignalType = "player_caught"
	// SignalShotFired 玩家发射一颗子弹
	SignalShotFired SignalType = "shot_fired"
)

// Signal 一次性通知
// 只有与类型相关的字段有意义
type Signal struct {
	Type   SignalType
	Entity ecs.EntityID
	X, Y   float64
	// Value 伤害、得分或等级
	Value int
}

// Listener 信号订阅者
type Listener interface {
	OnSignal(s Signal)
}

// ListenerFunc 函数形式的订阅者
type ListenerFunc func(s Signal)

// OnSignal 实现 Listener
func (f ListenerFunc) OnSignal(s Signal) { f(s) }

type subscription struct {
	id       uint64
	listener Listener
}

// SignalBus 模拟层向表现层（音效、特效、观战推送）发送通知
//
// 通知是"发出即忘"的：订阅者不能反过来修改模拟状态，
// 没有订阅者时 Emit 是无操作。
type SignalBus struct {
	nextID    uint64
	listeners map[SignalType][]subscription
	all       []subscription
}

// NewSignalBus 创建信号总线
func NewSignalBus() *SignalBus {
	return &SignalBus{
		listeners: make(map[SignalType][]subscription),
	}
}

// Subscribe 订阅指定类型，返回取消订阅函数
func (b *SignalBus) Subscribe(t SignalType, l Listener) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.listeners[t] = append(b.listeners[t], subscription{id: id, listener: l})
	return func() {
		b.listeners[t] = removeSubscription(b.listeners[t], id)
	}
}

// SubscribeAll 订阅所有类型
func (b *SignalBus) SubscribeAll(l Listener) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.all = append(b.all, subscription{id: id, listener: l})
	return func() {
		b.all = removeSubscription(b.all, id)
	}
}

// Emit 同步分发信号
// nil 总线上调用是安全的
func (b *SignalBus) Emit(s Signal) {
	if b == nil {
		return
	}
	for _, sub := range b.listeners[s.Type] {
		sub.listener.OnSignal(s)
	}
	for _, sub := range b.all {
		sub.listener.OnSignal(s)
	}
}

func removeSubscription(subs []subscription, id uint64) []subscription {
	for i, s := range subs {
		if s.id == id {
			return append(subs[:i:i], subs[i+1:]...)
		}
	}
	return subs
}
