package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// PowerUpsPath 内置强化定义路径
const PowerUpsPath = "data/powerups.yaml"

// BasicShootingName 首次升级的唯一选项
const BasicShootingName = "Basic Shooting"

// Rarity 强化稀有度
type Rarity string

const (
	// RaritySpecial 特殊（仅 Basic Shooting）
	RaritySpecial Rarity = "special"
	// RarityCommon 普通，可重复获得
	RarityCommon Rarity = "common"
	// RarityRare 稀有，获得后从池中移除
	RarityRare Rarity = "rare"
)

// EffectKind 效果类型标签
type EffectKind string

const (
	// EffectSpeedMultiplier 基础移速乘以 factor
	EffectSpeedMultiplier EffectKind = "speed_multiplier"
	// EffectCooldownMultiplier 射击冷却乘以 factor
	EffectCooldownMultiplier EffectKind = "cooldown_multiplier"
	// EffectTimedBoost 在 duration 秒游戏时间内移速乘以 factor
	EffectTimedBoost EffectKind = "timed_boost"
	// EffectEnableCapability 开启一项能力（可叠加的能力增加 amount）
	EffectEnableCapability EffectKind = "enable_capability"
)

// Capability 可开启的玩家能力
type Capability string

const (
	CapabilityBasicShooting Capability = "basic_shooting"
	CapabilityPiercing      Capability = "piercing"
	CapabilityRicochet      Capability = "ricochet"
	CapabilityHoming        Capability = "homing"
	CapabilityMultiShot     Capability = "multi_shot"
	CapabilitySplitShot     Capability = "split_shot"
	CapabilityDash          Capability = "dash"
	CapabilityMomentum      Capability = "momentum"
)

// stackable 带数量的能力
var stackable = map[Capability]bool{
	CapabilityMultiShot: true,
	CapabilitySplitShot: true,
}

var knownCapabilities = map[Capability]bool{
	CapabilityBasicShooting: true,
	CapabilityPiercing:      true,
	CapabilityRicochet:      true,
	CapabilityHoming:        true,
	CapabilityMultiShot:     true,
	CapabilitySplitShot:     true,
	CapabilityDash:          true,
	CapabilityMomentum:      true,
}

// Effect 强化效果（带标签的枚举）
// 只有与 Kind 对应的字段有意义
type Effect struct {
	Kind       EffectKind `yaml:"kind"`
	Factor     float64    `yaml:"factor,omitempty"`
	Duration   float64    `yaml:"duration,omitempty"`
	Capability Capability `yaml:"capability,omitempty"`
	Amount     int        `yaml:"amount,omitempty"`
}

// PowerUpDef 强化定义
type PowerUpDef struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Rarity      Rarity `yaml:"rarity"`
	Icon        string `yaml:"icon"`
	Effect      Effect `yaml:"effect"`
}

// powerUpsFile data/powerups.yaml 的根结构
type powerUpsFile struct {
	PowerUps []PowerUpDef `yaml:"powerUps"`
}

// DefaultPowerUps 返回内置的强化目录
func DefaultPowerUps() []PowerUpDef {
	return []PowerUpDef{
		{
			Name: BasicShootingName, Description: "Unlocks projectile attack",
			Rarity: RaritySpecial, Icon: "shoot",
			Effect: Effect{Kind: EffectEnableCapability, Capability: CapabilityBasicShooting},
		},
		{
			Name: "Quick Feet", Description: "Adds 10% speed boost",
			Rarity: RarityCommon, Icon: "quick_feet",
			Effect: Effect{Kind: EffectSpeedMultiplier, Factor: 1.1},
		},
		{
			Name: "Quick Draw", Description: "Shoots 20% faster",
			Rarity: RarityCommon, Icon: "quick_draw",
			Effect: Effect{Kind: EffectCooldownMultiplier, Factor: 0.8},
		},
		{
			Name: "Speed Boost", Description: "Adds 50% speed boost for 5 seconds",
			Rarity: RarityCommon, Icon: "speed_boost",
			Effect: Effect{Kind: EffectTimedBoost, Factor: 1.5, Duration: 5},
		},
		{
			Name: "Multi-Shot", Description: "Shoots more bullets at once",
			Rarity: RarityCommon, Icon: "multi_shot",
			Effect: Effect{Kind: EffectEnableCapability, Capability: CapabilityMultiShot, Amount: 1},
		},
		{
			Name: "Split Shot", Description: "Adds bullets in multiple directions",
			Rarity: RarityCommon, Icon: "split_shot",
			Effect: Effect{Kind: EffectEnableCapability, Capability: CapabilitySplitShot, Amount: 1},
		},
		{
			Name: "Dash", Description: "Gain a burst of speed when pressing space (X)",
			Rarity: RarityRare, Icon: "dash",
			Effect: Effect{Kind: EffectEnableCapability, Capability: CapabilityDash},
		},
		{
			Name: "Momentum", Description: "Build speed the longer you move in one direction",
			Rarity: RarityRare, Icon: "momentum",
			Effect: Effect{Kind: EffectEnableCapability, Capability: CapabilityMomentum},
		},
		{
			Name: "Piercing Rounds", Description: "Bullets pass through multiple enemies",
			Rarity: RarityRare, Icon: "piercing",
			Effect: Effect{Kind: EffectEnableCapability, Capability: CapabilityPiercing},
		},
		{
			Name: "Ricochet", Description: "Bullets bounce off walls and enemies",
			Rarity: RarityRare, Icon: "ricochet",
			Effect: Effect{Kind: EffectEnableCapability, Capability: CapabilityRicochet},
		},
		{
			Name: "Homing Missiles", Description: "Bullets track enemies",
			Rarity: RarityRare, Icon: "homing",
			Effect: Effect{Kind: EffectEnableCapability, Capability: CapabilityHoming},
		},
	}
}

// LoadPowerUps 加载强化目录
func LoadPowerUps(path string) ([]PowerUpDef, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read power-up catalog: %w", err)
	}
	return ParsePowerUps(data)
}

// ParsePowerUps 解析并验证强化目录 YAML
func ParsePowerUps(data []byte) ([]PowerUpDef, error) {
	var file powerUpsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse power-up catalog YAML: %w", err)
	}

	for i := range file.PowerUps {
		applyEffectDefaults(&file.PowerUps[i].Effect)
	}

	if err := ValidatePowerUps(file.PowerUps); err != nil {
		return nil, fmt.Errorf("invalid power-up catalog: %w", err)
	}
	return file.PowerUps, nil
}

// applyEffectDefaults 可叠加能力未写 amount 时按 1 处理
func applyEffectDefaults(e *Effect) {
	if e.Kind == EffectEnableCapability && stackable[e.Capability] && e.Amount == 0 {
		e.Amount = 1
	}
}

// ValidatePowerUps 验证强化目录
//
// 规则：
//   - 名称非空且唯一
//   - 恰好一个 Basic Shooting，且稀有度为 special
//   - special 稀有度只能用于 Basic Shooting
//   - 效果类型与参数合法
func ValidatePowerUps(defs []PowerUpDef) error {
	if len(defs) == 0 {
		return fmt.Errorf("powerUps cannot be empty")
	}

	seen := make(map[string]bool, len(defs))
	basic := 0
	for _, d := range defs {
		if d.Name == "" {
			return fmt.Errorf("power-up name cannot be empty")
		}
		if seen[d.Name] {
			return fmt.Errorf("duplicate power-up name %q", d.Name)
		}
		seen[d.Name] = true

		switch d.Rarity {
		case RaritySpecial:
			if d.Name != BasicShootingName {
				return fmt.Errorf("power-up %q: rarity special is reserved for %q", d.Name, BasicShootingName)
			}
		case RarityCommon, RarityRare:
		default:
			return fmt.Errorf("power-up %q: unknown rarity %q", d.Name, d.Rarity)
		}

		if d.Name == BasicShootingName {
			basic++
			if d.Rarity != RaritySpecial {
				return fmt.Errorf("power-up %q must have rarity special, got %q", d.Name, d.Rarity)
			}
		}

		if err := validateEffect(d.Effect); err != nil {
			return fmt.Errorf("power-up %q: %w", d.Name, err)
		}
	}

	if basic != 1 {
		return fmt.Errorf("expected exactly one %q, got %d", BasicShootingName, basic)
	}
	return nil
}

func validateEffect(e Effect) error {
	switch e.Kind {
	case EffectSpeedMultiplier, EffectCooldownMultiplier:
		if e.Factor <= 0 {
			return fmt.Errorf("effect %s: factor must be > 0, got %.2f", e.Kind, e.Factor)
		}
	case EffectTimedBoost:
		if e.Factor <= 0 {
			return fmt.Errorf("effect %s: factor must be > 0, got %.2f", e.Kind, e.Factor)
		}
		if e.Duration <= 0 {
			return fmt.Errorf("effect %s: duration must be > 0, got %.2f", e.Kind, e.Duration)
		}
	case EffectEnableCapability:
		if !knownCapabilities[e.Capability] {
			return fmt.Errorf("effect %s: unknown capability %q", e.Kind, e.Capability)
		}
		if e.Amount < 0 {
			return fmt.Errorf("effect %s: amount must be >= 0, got %d", e.Kind, e.Amount)
		}
	default:
		return fmt.Errorf("unknown effect kind %q", e.Kind)
	}
	return nil
}
