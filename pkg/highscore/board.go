package highscore

import (
	"context"
	"errors"
	"log"
	"strings"
)

// ErrSaveInFlight 上一次提交尚未完成
var ErrSaveInFlight = errors.New("high score save already in flight")

// ErrSaveDisabled 已成功提交过，本局不能再次提交
var ErrSaveDisabled = errors.New("high score already saved")

type resultKind int

const (
	resultFetched resultKind = iota
	resultSaved
)

type result struct {
	kind    resultKind
	entries []Entry
	err     error
}

// Board 结算界面使用的排行榜状态
//
// 网络请求在独立的 goroutine 中执行，结果通过 Poll 在游戏线程上取回，
// Board 的其他方法也只能在游戏线程上调用。
//
// 保存按钮：提交期间禁用，失败后重新启用，成功后保持禁用并刷新排行榜。
type Board struct {
	ctx     context.Context
	service Service
	results chan result

	entries     []Entry
	loaded      bool
	saving      bool
	saveEnabled bool
	lastErr     error
}

// NewBoard 创建排行榜状态
// ctx 取消时未完成的请求随之取消
func NewBoard(ctx context.Context, service Service) *Board {
	return &Board{
		ctx:         ctx,
		service:     service,
		results:     make(chan result, 4),
		saveEnabled: true,
	}
}

// Refresh 异步获取排行榜
func (b *Board) Refresh() {
	go func() {
		entries, err := b.service.FetchHighScores(b.ctx)
		b.results <- result{kind: resultFetched, entries: entries, err: err}
	}()
}

// Submit 异步提交成绩
// 名字为空时忽略（返回 nil 且不发请求）
func (b *Board) Submit(name string, score int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if b.saving {
		return ErrSaveInFlight
	}
	if !b.saveEnabled {
		return ErrSaveDisabled
	}

	b.saving = true
	b.saveEnabled = false
	log.Printf("[HighScore] Saving %q with score %d", name, score)
	go func() {
		err := b.service.SaveHighScore(b.ctx, name, score)
		b.results <- result{kind: resultSaved, err: err}
	}()
	return nil
}

// Poll 取回已完成的请求结果，返回是否有状态变化
func (b *Board) Poll() bool {
	changed := false
	for {
		select {
		case r := <-b.results:
			b.apply(r)
			changed = true
		default:
			return changed
		}
	}
}

func (b *Board) apply(r result) {
	switch r.kind {
	case resultFetched:
		if r.err != nil {
			log.Printf("[HighScore] ERROR: %v", r.err)
			b.lastErr = r.err
			return
		}
		b.entries = r.entries
		b.loaded = true
		b.lastErr = nil
	case resultSaved:
		b.saving = false
		if r.err != nil {
			log.Printf("[HighScore] ERROR: %v", r.err)
			b.lastErr = r.err
			b.saveEnabled = true
			return
		}
		log.Printf("[HighScore] High score saved")
		b.lastErr = nil
		b.Refresh()
	}
}

// Entries 最近一次成功获取的排行榜
func (b *Board) Entries() []Entry { return b.entries }

// Loaded 是否已成功获取过排行榜
func (b *Board) Loaded() bool { return b.loaded }

// Saving 是否有提交正在进行
func (b *Board) Saving() bool { return b.saving }

// SaveEnabled 保存按钮是否可用
func (b *Board) SaveEnabled() bool { return b.saveEnabled }

// Err 最近一次失败的原因（成功后清空）
func (b *Board) Err() error { return b.lastErr }
