package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/devfernandoa/HexKillerGame/pkg/embedded"
)

// GameConfigPath 内置游戏配置路径
const GameConfigPath = "data/game.yaml"

// Rect 轴对齐矩形（世界坐标，单位与移动速度一致）
type Rect struct {
	MinX float64 `yaml:"minX"`
	MinY float64 `yaml:"minY"`
	MaxX float64 `yaml:"maxX"`
	MaxY float64 `yaml:"maxY"`
}

// Width 矩形宽度
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height 矩形高度
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Contains 点是否在矩形内（含边界）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// GameConfig 游戏数值配置
//
// 配置文件位置: data/game.yaml
// 文件中未出现的字段保留 DefaultGameConfig 的值。
type GameConfig struct {
	Arena        ArenaConfig       `yaml:"arena"`
	Player       PlayerConfig      `yaml:"player"`
	Projectile   ProjectileConfig  `yaml:"projectile"`
	Enemy        EnemyConfig       `yaml:"enemy"`
	Spawner      SpawnerConfig     `yaml:"spawner"`
	Collectables CollectableConfig `yaml:"collectables"`
	Progression  ProgressionConfig `yaml:"progression"`
	Scores       ScoresConfig      `yaml:"scores"`
	Spectate     SpectateConfig    `yaml:"spectate"`
}

// ArenaConfig 场地配置
// 四面墙体沿 Bounds 外侧布置，厚度为 WallThickness
type ArenaConfig struct {
	Bounds        Rect    `yaml:"bounds"`
	WallThickness float64 `yaml:"wallThickness"`
}

// PlayerConfig 玩家配置
type PlayerConfig struct {
	Speed             float64 `yaml:"speed"`
	Radius            float64 `yaml:"radius"`
	ShootCooldown     float64 `yaml:"shootCooldown"`
	HomingAmount      int     `yaml:"homingAmount"`
	MultiShotDelay    float64 `yaml:"multiShotDelay"`
	DashMultiplier    float64 `yaml:"dashMultiplier"`
	DashDuration      float64 `yaml:"dashDuration"`
	DashCooldown      float64 `yaml:"dashCooldown"`
	MaxMomentum       float64 `yaml:"maxMomentum"`
	MomentumBuildRate float64 `yaml:"momentumBuildRate"`
}

// ProjectileConfig 子弹配置
type ProjectileConfig struct {
	Speed          float64 `yaml:"speed"`
	Damage         int     `yaml:"damage"`
	Lifetime       float64 `yaml:"lifetime"`
	Radius         float64 `yaml:"radius"`
	HomingTurnRate float64 `yaml:"homingTurnRate"`
}

// EnemyConfig 敌人配置
type EnemyConfig struct {
	Speed        float64 `yaml:"speed"`
	Health       int     `yaml:"health"`
	Radius       float64 `yaml:"radius"`
	FadeDuration float64 `yaml:"fadeDuration"`
	ChaseDelay   float64 `yaml:"chaseDelay"`
	HitFlash     float64 `yaml:"hitFlash"`
}

// SpawnerConfig 自适应敌人生成器配置
type SpawnerConfig struct {
	Area         Rect    `yaml:"area"`
	Interval     float64 `yaml:"interval"`
	RateIncrease float64 `yaml:"rateIncrease"`
	MinInterval  float64 `yaml:"minInterval"`
	MinDistance  float64 `yaml:"minDistance"`
	MaxAttempts  int     `yaml:"maxAttempts"`
}

// CollectableConfig 可收集物配置
type CollectableConfig struct {
	Area     Rect    `yaml:"area"`
	Interval float64 `yaml:"interval"`
	Radius   float64 `yaml:"radius"`
	Value    int     `yaml:"value"`
}

// ProgressionConfig 升级配置
type ProgressionConfig struct {
	LevelThreshold float64 `yaml:"levelThreshold"`
	OfferCount     int     `yaml:"offerCount"`
}

// ScoresConfig 远程排行榜配置
type ScoresConfig struct {
	BaseURL string        `yaml:"baseURL"`
	Timeout time.Duration `yaml:"timeout"`
}

// SpectateConfig 观战推送配置
// Addr 为空表示不开启
type SpectateConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultGameConfig 返回默认数值
func DefaultGameConfig() *GameConfig {
	spawnArea := Rect{MinX: -20, MinY: -11, MaxX: 20, MaxY: 11}
	return &GameConfig{
		Arena: ArenaConfig{
			Bounds:        Rect{MinX: -22, MinY: -13, MaxX: 22, MaxY: 13},
			WallThickness: 1,
		},
		Player: PlayerConfig{
			Speed:             5,
			Radius:            0.5,
			ShootCooldown:     2,
			HomingAmount:      1,
			MultiShotDelay:    0.1,
			DashMultiplier:    3,
			DashDuration:      0.2,
			DashCooldown:      1,
			MaxMomentum:       2,
			MomentumBuildRate: 0.1,
		},
		Projectile: ProjectileConfig{
			Speed:          10,
			Damage:         1,
			Lifetime:       2,
			Radius:         0.2,
			HomingTurnRate: 5,
		},
		Enemy: EnemyConfig{
			Speed:        2,
			Health:       1,
			Radius:       0.5,
			FadeDuration: 5,
			ChaseDelay:   0.5,
			HitFlash:     0.1,
		},
		Spawner: SpawnerConfig{
			Area:         spawnArea,
			Interval:     1,
			RateIncrease: 0.1,
			MinInterval:  0.1,
			MinDistance:  2,
			MaxAttempts:  10,
		},
		Collectables: CollectableConfig{
			Area:     spawnArea,
			Interval: 2,
			Radius:   0.3,
			Value:    1,
		},
		Progression: ProgressionConfig{
			LevelThreshold: 10,
			OfferCount:     3,
		},
		Scores: ScoresConfig{
			BaseURL: "https://hex-killer.vercel.app/api",
			Timeout: 5 * time.Second,
		},
	}
}

// LoadGameConfig 加载游戏配置
//
// 以 "data/" 开头且嵌入文件系统已初始化时从嵌入数据读取，
// 否则按普通文件路径读取（用于 --config 指定的外部文件）。
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 解析 YAML 内容，未给出的字段使用默认值
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	cfg.applyDefaults()

	if err := validateGameConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return cfg, nil
}

// applyDefaults 为显式写成零值但零值无意义的字段补默认值
func (c *GameConfig) applyDefaults() {
	if c.Spawner.MaxAttempts == 0 {
		c.Spawner.MaxAttempts = 10
	}
	if c.Progression.OfferCount == 0 {
		c.Progression.OfferCount = 3
	}
	if c.Scores.Timeout == 0 {
		c.Scores.Timeout = 5 * time.Second
	}
}

// validateGameConfig 验证配置的有效性
func validateGameConfig(c *GameConfig) error {
	rects := []struct {
		name string
		r    Rect
	}{
		{"arena.bounds", c.Arena.Bounds},
		{"spawner.area", c.Spawner.Area},
		{"collectables.area", c.Collectables.Area},
	}
	for _, rc := range rects {
		if rc.r.MinX >= rc.r.MaxX || rc.r.MinY >= rc.r.MaxY {
			return fmt.Errorf("%s is inverted or empty: (%.1f,%.1f)-(%.1f,%.1f)",
				rc.name, rc.r.MinX, rc.r.MinY, rc.r.MaxX, rc.r.MaxY)
		}
	}
	if c.Arena.WallThickness <= 0 {
		return fmt.Errorf("arena.wallThickness must be > 0, got %.2f", c.Arena.WallThickness)
	}

	positive := []struct {
		name string
		v    float64
	}{
		{"player.speed", c.Player.Speed},
		{"player.radius", c.Player.Radius},
		{"player.shootCooldown", c.Player.ShootCooldown},
		{"player.dashMultiplier", c.Player.DashMultiplier},
		{"player.dashDuration", c.Player.DashDuration},
		{"player.maxMomentum", c.Player.MaxMomentum},
		{"projectile.speed", c.Projectile.Speed},
		{"projectile.lifetime", c.Projectile.Lifetime},
		{"projectile.radius", c.Projectile.Radius},
		{"enemy.radius", c.Enemy.Radius},
		{"enemy.fadeDuration", c.Enemy.FadeDuration},
		{"spawner.interval", c.Spawner.Interval},
		{"spawner.minInterval", c.Spawner.MinInterval},
		{"collectables.interval", c.Collectables.Interval},
		{"collectables.radius", c.Collectables.Radius},
		{"progression.levelThreshold", c.Progression.LevelThreshold},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%s must be > 0, got %.2f", p.name, p.v)
		}
	}

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"player.multiShotDelay", c.Player.MultiShotDelay},
		{"player.dashCooldown", c.Player.DashCooldown},
		{"player.momentumBuildRate", c.Player.MomentumBuildRate},
		{"projectile.homingTurnRate", c.Projectile.HomingTurnRate},
		{"enemy.speed", c.Enemy.Speed},
		{"enemy.chaseDelay", c.Enemy.ChaseDelay},
		{"enemy.hitFlash", c.Enemy.HitFlash},
		{"spawner.rateIncrease", c.Spawner.RateIncrease},
		{"spawner.minDistance", c.Spawner.MinDistance},
	}
	for _, p := range nonNegative {
		if p.v < 0 {
			return fmt.Errorf("%s must be >= 0, got %.2f", p.name, p.v)
		}
	}

	if c.Enemy.Health <= 0 {
		return fmt.Errorf("enemy.health must be > 0, got %d", c.Enemy.Health)
	}
	if c.Projectile.Damage <= 0 {
		return fmt.Errorf("projectile.damage must be > 0, got %d", c.Projectile.Damage)
	}
	if c.Player.HomingAmount < 0 {
		return fmt.Errorf("player.homingAmount must be >= 0, got %d", c.Player.HomingAmount)
	}
	if c.Spawner.MaxAttempts < 1 {
		return fmt.Errorf("spawner.maxAttempts must be >= 1, got %d", c.Spawner.MaxAttempts)
	}
	if c.Spawner.MinInterval > c.Spawner.Interval {
		return fmt.Errorf("spawner.minInterval (%.2f) must not exceed spawner.interval (%.2f)",
			c.Spawner.MinInterval, c.Spawner.Interval)
	}
	if c.Collectables.Value < 0 {
		return fmt.Errorf("collectables.value must be >= 0, got %d", c.Collectables.Value)
	}
	if c.Progression.OfferCount < 1 {
		return fmt.Errorf("progression.offerCount must be >= 1, got %d", c.Progression.OfferCount)
	}
	return nil
}

// readConfigFile 优先读取嵌入数据，其余走文件系统
func readConfigFile(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}
