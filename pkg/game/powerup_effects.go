package game

import (
	"errors"
	"fmt"

	"github.com/devfernandoa/HexKillerGame/pkg/components"
	"github.com/devfernandoa/HexKillerGame/pkg/config"
)

// ErrUnknownEffect 效果类型或能力无法识别
var ErrUnknownEffect = errors.New("unknown power-up effect")

// ApplyEffect 将强化效果作用到玩家
//
// 效果立即生效：速度倍率修改基础速度，下一帧的移动就会使用新值。
// 限时加速的剩余时间由 PlayerSystem 按游戏时间倒计时，暂停期间不流逝。
func ApplyEffect(e config.Effect, p *components.PlayerComponent) error {
	if p == nil {
		return fmt.Errorf("apply %s: nil player", e.Kind)
	}

	switch e.Kind {
	case config.EffectSpeedMultiplier:
		p.BaseSpeed *= e.Factor
	case config.EffectCooldownMultiplier:
		p.ShootCooldown *= e.Factor
	case config.EffectTimedBoost:
		p.BoostMultiplier = e.Factor
		p.BoostTimer = e.Duration
	case config.EffectEnableCapability:
		return enableCapability(e.Capability, e.Amount, p)
	default:
		return fmt.Errorf("%w: kind %q", ErrUnknownEffect, e.Kind)
	}
	return nil
}

func enableCapability(c config.Capability, amount int, p *components.PlayerComponent) error {
	switch c {
	case config.CapabilityBasicShooting:
		p.CanShoot = true
	case config.CapabilityPiercing:
		p.Piercing = true
	case config.CapabilityRicochet:
		p.Ricochet = true
	case config.CapabilityHoming:
		p.Homing = true
	case config.CapabilityMultiShot:
		p.MultiShotEnabled = true
		p.MultiShotAmount += amount
	case config.CapabilitySplitShot:
		p.SplitShotEnabled = true
		p.SplitShotAmount += amount
	case config.CapabilityDash:
		p.DashUnlocked = true
		p.DashReady = true
	case config.CapabilityMomentum:
		p.MomentumEnabled = true
		p.Momentum = 1
	default:
		return fmt.Errorf("%w: capability %q", ErrUnknownEffect, c)
	}
	return nil
}
