package systems

import (
	"testing"

	"github.com/devfernandoa/HexKillerGame/pkg/ecs"
	"github.com/devfernandoa/HexKillerGame/pkg/entities"
	"github.com/devfernandoa/HexKillerGame/pkg/game"
)

func TestPickupAddsScore(t *testing.T) {
	w := newTestWorld(t)
	w.addPlayer(t, 0, 0)
	scores := game.NewScoreManager(w.bus)
	s := NewPickupSystem(w.em, scores)

	near, _ := entities.NewCollectableEntity(w.em, w.cfg.Collectables, 0.5, 0)
	far, _ := entities.NewCollectableEntity(w.em, w.cfg.Collectables, 5, 0)

	if n := s.Update(0.016); n != 1 {
		t.Fatalf("expected 1 pickup, got %d", n)
	}
	if w.em.IsAlive(near) {
		t.Error("picked collectable should be destroyed")
	}
	if !w.em.IsAlive(far) {
		t.Error("distant collectable should remain")
	}
	if scores.Score() != 1 {
		t.Errorf("expected score 1, got %d", scores.Score())
	}
	if w.count(game.SignalScoreGain) != 1 {
		t.Errorf("expected 1 score_gain signal, got %d", w.count(game.SignalScoreGain))
	}
}

func TestPickupWithoutPlayer(t *testing.T) {
	w := newTestWorld(t)
	scores := game.NewScoreManager(w.bus)
	s := NewPickupSystem(w.em, scores)
	entities.NewCollectableEntity(w.em, w.cfg.Collectables, 0, 0)

	if n := s.Update(0.016); n != 0 {
		t.Errorf("expected no pickups without a player, got %d", n)
	}
	if w.em.CountOfKind(ecs.KindCollectable) != 1 {
		t.Error("collectable should remain")
	}
}
