package game

import (
	"container/heap"
	"math"
)

// SimClock 可暂停、可缩放的游戏时钟
//
// 所有延时行为（追击延迟、冲刺、连射间隔、受击闪烁、生成节奏）都挂在这个时钟上，
// 而不是真实时间，因此升级暂停期间（Rate == 0）它们自动冻结。
//
// 时钟只在游戏主线程上由 Advance 推进，不做并发保护。
type SimClock struct {
	now    float64
	rate   float64
	seq    uint64
	timers timerQueue
}

// Timer 由 SimClock.After 返回的延时回调句柄
type Timer struct {
	due       float64
	seq       uint64
	fn        func()
	index     int
	cancelled bool
	fired     bool
}

// Cancel 取消回调，重复调用或已触发后调用都是无操作
func (t *Timer) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
}

// Pending 回调尚未触发且未被取消
func (t *Timer) Pending() bool {
	return t != nil && !t.cancelled && !t.fired
}

// Due 触发时刻（游戏时间）
func (t *Timer) Due() float64 {
	return t.due
}

// NewSimClock 创建时钟，初始 Rate 为 1
func NewSimClock() *SimClock {
	return &SimClock{rate: 1}
}

// Now 当前游戏时间（秒）
func (c *SimClock) Now() float64 {
	return c.now
}

// Rate 当前时间倍率（0 表示暂停）
func (c *SimClock) Rate() float64 {
	return c.rate
}

// Paused Rate 是否为 0
func (c *SimClock) Paused() bool {
	return c.rate == 0
}

// SetRate 设置时间倍率，负数按 0 处理
func (c *SimClock) SetRate(rate float64) {
	c.rate = math.Max(0, rate)
}

// After 在 delay 秒游戏时间后执行 fn
// delay <= 0 的回调在下一次 Advance（且未暂停）时触发
func (c *SimClock) After(delay float64, fn func()) *Timer {
	t := &Timer{
		due: c.now + math.Max(0, delay),
		seq: c.seq,
		fn:  fn,
	}
	c.seq++
	heap.Push(&c.timers, t)
	return t
}

// Advance 按 realDt * Rate 推进时间，并依次触发到期的回调
//
// 返回缩放后的 dt。暂停时返回 0 且不触发任何回调。
// 回调按到期时间排序，到期时间相同按注册顺序；
// 回调中注册的、到期时间不晚于当前时刻的新回调会在同一次 Advance 中触发。
func (c *SimClock) Advance(realDt float64) float64 {
	if c.rate == 0 || realDt <= 0 {
		return 0
	}
	dt := realDt * c.rate
	c.now += dt

	for c.timers.Len() > 0 {
		next := c.timers[0]
		if next.due > c.now {
			break
		}
		heap.Pop(&c.timers)
		if next.cancelled {
			continue
		}
		next.fired = true
		next.fn()
		// 回调可能把时钟暂停（例如触发升级），剩余的回调等恢复后再触发
		if c.rate == 0 {
			break
		}
	}
	return dt
}

// PendingTimers 尚未触发且未取消的回调数量
func (c *SimClock) PendingTimers() int {
	n := 0
	for _, t := range c.timers {
		if t.Pending() {
			n++
		}
	}
	return n
}

// timerQueue 按 (due, seq) 排序的最小堆
type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
