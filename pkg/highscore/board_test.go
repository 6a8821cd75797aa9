package highscore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeService 可控的排行榜服务
// saveGate 非空时 SaveHighScore 会阻塞到收到一个错误值（nil 表示成功）
type fakeService struct {
	mu       sync.Mutex
	entries  []Entry
	saves    []Entry
	fetches  int
	saveGate chan error
}

func (f *fakeService) FetchHighScores(ctx context.Context) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	return append([]Entry(nil), f.entries...), nil
}

func (f *fakeService) SaveHighScore(ctx context.Context, name string, score int) error {
	var err error
	if f.saveGate != nil {
		err = <-f.saveGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		f.saves = append(f.saves, Entry{Name: name, Score: score})
		f.entries = append(f.entries, Entry{Name: name, Score: score})
	}
	return err
}

// pollUntil 在游戏线程上轮询直到条件成立
func pollUntil(t *testing.T, b *Board, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		b.Poll()
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestBoardRefresh(t *testing.T) {
	svc := &fakeService{entries: []Entry{{Name: "ana", Score: 3}}}
	b := NewBoard(context.Background(), svc)

	b.Refresh()
	pollUntil(t, b, b.Loaded)

	if got := b.Entries(); len(got) != 1 || got[0].Name != "ana" {
		t.Errorf("unexpected entries: %+v", got)
	}
}

func TestBoardSubmitDisablesUntilDone(t *testing.T) {
	svc := &fakeService{saveGate: make(chan error)}
	b := NewBoard(context.Background(), svc)

	if err := b.Submit("ana", 10); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if b.SaveEnabled() || !b.Saving() {
		t.Fatal("save control should be disabled while in flight")
	}
	if err := b.Submit("ana", 10); !errors.Is(err, ErrSaveInFlight) {
		t.Errorf("expected ErrSaveInFlight, got %v", err)
	}

	svc.saveGate <- nil
	pollUntil(t, b, func() bool { return !b.Saving() })

	if b.SaveEnabled() {
		t.Error("save control should stay disabled after success")
	}
	pollUntil(t, b, b.Loaded)
	if got := b.Entries(); len(got) != 1 || got[0] != (Entry{Name: "ana", Score: 10}) {
		t.Errorf("expected refreshed list with the new score, got %+v", got)
	}
	if err := b.Submit("ana", 10); !errors.Is(err, ErrSaveDisabled) {
		t.Errorf("expected ErrSaveDisabled, got %v", err)
	}
}

func TestBoardSubmitFailureReenables(t *testing.T) {
	svc := &fakeService{saveGate: make(chan error, 1)}
	b := NewBoard(context.Background(), svc)

	svc.saveGate <- errors.New("offline")
	if err := b.Submit("ana", 10); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	pollUntil(t, b, func() bool { return !b.Saving() })

	if !b.SaveEnabled() {
		t.Error("save control should be re-enabled after a failure")
	}
	if b.Err() == nil {
		t.Error("expected the failure to be reported")
	}
}

func TestBoardIgnoresEmptyName(t *testing.T) {
	svc := &fakeService{}
	b := NewBoard(context.Background(), svc)

	if err := b.Submit("   ", 10); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if b.Saving() || !b.SaveEnabled() {
		t.Error("empty name should not start a save")
	}
}
