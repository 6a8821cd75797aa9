package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParseGameConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *GameConfig)
	}{
		{
			name:        "empty document keeps defaults",
			yamlContent: ``,
			validate: func(t *testing.T, cfg *GameConfig) {
				if !reflect.DeepEqual(cfg, DefaultGameConfig()) {
					t.Errorf("expected defaults, got %+v", cfg)
				}
			},
		},
		{
			name: "partial override",
			yamlContent: `
spawner:
  interval: 3
  minDistance: 4
enemy:
  health: 2
scores:
  timeout: 250ms
`,
			validate: func(t *testing.T, cfg *GameConfig) {
				if cfg.Spawner.Interval != 3 {
					t.Errorf("expected spawner interval 3, got %v", cfg.Spawner.Interval)
				}
				if cfg.Spawner.MinDistance != 4 {
					t.Errorf("expected min distance 4, got %v", cfg.Spawner.MinDistance)
				}
				if cfg.Spawner.RateIncrease != 0.1 {
					t.Errorf("expected untouched rate increase 0.1, got %v", cfg.Spawner.RateIncrease)
				}
				if cfg.Enemy.Health != 2 {
					t.Errorf("expected enemy health 2, got %d", cfg.Enemy.Health)
				}
				if cfg.Scores.Timeout != 250*time.Millisecond {
					t.Errorf("expected timeout 250ms, got %v", cfg.Scores.Timeout)
				}
			},
		},
		{
			name: "explicit zero attempts falls back to default",
			yamlContent: `
spawner:
  maxAttempts: 0
progression:
  offerCount: 0
`,
			validate: func(t *testing.T, cfg *GameConfig) {
				if cfg.Spawner.MaxAttempts != 10 {
					t.Errorf("expected 10 attempts, got %d", cfg.Spawner.MaxAttempts)
				}
				if cfg.Progression.OfferCount != 3 {
					t.Errorf("expected offer count 3, got %d", cfg.Progression.OfferCount)
				}
			},
		},
		{
			name: "zero min interval",
			yamlContent: `
spawner:
  minInterval: 0
`,
			wantErr:     true,
			errContains: "spawner.minInterval",
		},
		{
			name: "inverted spawn area",
			yamlContent: `
spawner:
  area: {minX: 5, minY: 0, maxX: -5, maxY: 3}
`,
			wantErr:     true,
			errContains: "spawner.area",
		},
		{
			name: "non-positive threshold",
			yamlContent: `
progression:
  levelThreshold: -1
`,
			wantErr:     true,
			errContains: "progression.levelThreshold",
		},
		{
			name: "zero enemy health",
			yamlContent: `
enemy:
  health: 0
`,
			wantErr:     true,
			errContains: "enemy.health",
		},
		{
			name: "min interval above interval",
			yamlContent: `
spawner:
  interval: 0.5
  minInterval: 1
`,
			wantErr:     true,
			errContains: "must not exceed",
		},
		{
			name:        "malformed yaml",
			yamlContent: "spawner: [",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseGameConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errContains)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %v", tt.errContains, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadGameConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	if err := os.WriteFile(path, []byte("player:\n  speed: 7\n"), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadGameConfig(path)
	if err != nil {
		t.Fatalf("LoadGameConfig failed: %v", err)
	}
	if cfg.Player.Speed != 7 {
		t.Errorf("expected player speed 7, got %v", cfg.Player.Speed)
	}
}

func TestLoadGameConfigMissingFile(t *testing.T) {
	_, err := LoadGameConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read game config") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestShippedGameConfigMatchesDefaults data/game.yaml 与 DefaultGameConfig 保持一致
func TestShippedGameConfigMatchesDefaults(t *testing.T) {
	cfg, err := LoadGameConfig(filepath.Join("..", "..", GameConfigPath))
	if err != nil {
		t.Fatalf("failed to load shipped config: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultGameConfig()) {
		t.Errorf("shipped config differs from defaults:\n got  %+v\n want %+v", cfg, DefaultGameConfig())
	}
}

func TestRect(t *testing.T) {
	r := Rect{MinX: -2, MinY: -1, MaxX: 2, MaxY: 1}
	if r.Width() != 4 || r.Height() != 2 {
		t.Errorf("unexpected size %vx%v", r.Width(), r.Height())
	}
	if !r.Contains(2, 1) {
		t.Error("expected corner to be contained")
	}
	if r.Contains(2.1, 0) {
		t.Error("expected point outside to be rejected")
	}
}
