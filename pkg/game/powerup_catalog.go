package game

import (
	"fmt"
	"log"

	"github.com/devfernandoa/HexKillerGame/pkg/config"
)

// Rand 抽取强化与生成位置使用的随机源
// *math/rand.Rand 满足此接口；测试可传入固定种子的实例
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// PowerUp 目录中的一个强化
// 以指针身份区分；同名的强化在目录中只有一个实例
type PowerUp struct {
	Name        string
	Description string
	Rarity      config.Rarity
	Icon        string
	Effect      config.Effect
}

// IsBasicShooting 是否为首次升级的专属强化
func (p *PowerUp) IsBasicShooting() bool {
	return p != nil && p.Name == config.BasicShootingName
}

// PowerUpCatalog 强化目录与抽取规则
//
// 两个池：
//   - all: 全部强化，稀有强化被选中后移除
//   - available: 初始只有 Basic Shooting；获得 Basic Shooting 后变为 all 中除它以外的全部
//
// 抽取规则见 DrawOffers。
type PowerUpCatalog struct {
	defs []config.PowerUpDef
	rng  Rand

	all           []*PowerUp
	available     []*PowerUp
	byName        map[string]*PowerUp
	basicObtained bool
}

// NewPowerUpCatalog 根据定义创建目录
func NewPowerUpCatalog(defs []config.PowerUpDef, rng Rand) (*PowerUpCatalog, error) {
	if err := config.ValidatePowerUps(defs); err != nil {
		return nil, fmt.Errorf("failed to build power-up catalog: %w", err)
	}
	c := &PowerUpCatalog{
		defs: append([]config.PowerUpDef(nil), defs...),
		rng:  rng,
	}
	c.Reset()
	return c, nil
}

// Reset 从定义重建两个池，回到未获得 Basic Shooting 的状态
func (c *PowerUpCatalog) Reset() {
	c.all = make([]*PowerUp, 0, len(c.defs))
	c.byName = make(map[string]*PowerUp, len(c.defs))
	c.available = nil
	c.basicObtained = false

	for _, d := range c.defs {
		p := &PowerUp{
			Name:        d.Name,
			Description: d.Description,
			Rarity:      d.Rarity,
			Icon:        d.Icon,
			Effect:      d.Effect,
		}
		c.all = append(c.all, p)
		c.byName[p.Name] = p
		if p.IsBasicShooting() {
			c.available = []*PowerUp{p}
		}
	}
}

// Get 按名称查找（已移除的稀有强化也能查到）
func (c *PowerUpCatalog) Get(name string) (*PowerUp, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// BasicShooting 返回 Basic Shooting
func (c *PowerUpCatalog) BasicShooting() *PowerUp {
	return c.byName[config.BasicShootingName]
}

// All 返回 all 池副本
func (c *PowerUpCatalog) All() []*PowerUp {
	return append([]*PowerUp(nil), c.all...)
}

// Available 返回 available 池副本
func (c *PowerUpCatalog) Available() []*PowerUp {
	return append([]*PowerUp(nil), c.available...)
}

// BasicShootingObtained 是否已获得 Basic Shooting
func (c *PowerUpCatalog) BasicShootingObtained() bool {
	return c.basicObtained
}

// Consume 记录一次选择
//   - Basic Shooting: 标记已获得，之后不再出现
//   - 稀有强化: 从两个池中移除，之后不再出现
//   - 普通强化: 留在池中，可以再次出现
func (c *PowerUpCatalog) Consume(p *PowerUp) {
	if p == nil {
		return
	}
	switch {
	case p.IsBasicShooting():
		if !c.basicObtained {
			c.basicObtained = true
			c.available = c.available[:0]
			for _, q := range c.all {
				if !q.IsBasicShooting() {
					c.available = append(c.available, q)
				}
			}
		}
	case p.Rarity == config.RarityRare:
		c.all = removePowerUp(c.all, p)
		c.available = removePowerUp(c.available, p)
		log.Printf("[PowerUpCatalog] Rare power-up %q removed from pool (%d left)", p.Name, len(c.all))
	}
}

// eligible 下一次抽取的候选集合
func (c *PowerUpCatalog) eligible() []*PowerUp {
	if !c.basicObtained {
		if b := c.BasicShooting(); b != nil {
			return []*PowerUp{b}
		}
		return nil
	}
	result := make([]*PowerUp, 0, len(c.all))
	for _, p := range c.all {
		if !p.IsBasicShooting() {
			result = append(result, p)
		}
	}
	return result
}

// DrawOffers 抽取 count 个互不相同的选项
//
// 规则：
//  1. 候选集合：未获得 Basic Shooting 时只有它；之后是 all 中除它以外的全部
//  2. 候选数量少于 count 时原样返回全部候选
//  3. 否则配额为 1 个稀有 + (count-1) 个普通；按候选集合中各稀有度的数量调整，
//     一方不足的差额转给另一方，再截断到实际数量
//  4. 先抽稀有，再抽普通，均匀且不放回
//  5. 仍有空位时从剩余候选（任意稀有度）中补齐
func (c *PowerUpCatalog) DrawOffers(count int) []*PowerUp {
	if count <= 0 {
		return nil
	}
	pool := c.eligible()
	if len(pool) < count {
		return pool
	}

	var rares, commons []*PowerUp
	for _, p := range pool {
		switch p.Rarity {
		case config.RarityRare:
			rares = append(rares, p)
		case config.RarityCommon:
			commons = append(commons, p)
		}
	}

	rareQuota, commonQuota := 1, count-1
	if len(rares) < rareQuota {
		commonQuota += rareQuota - len(rares)
		rareQuota = len(rares)
	} else if len(commons) < commonQuota {
		rareQuota += commonQuota - len(commons)
		commonQuota = len(commons)
	}
	rareQuota = min(rareQuota, len(rares))
	commonQuota = min(commonQuota, len(commons))

	result := make([]*PowerUp, 0, count)
	picked := make(map[*PowerUp]bool, count)

	take := func(from []*PowerUp, n int) {
		for i := 0; i < n; i++ {
			remaining := make([]*PowerUp, 0, len(from))
			for _, p := range from {
				if !picked[p] {
					remaining = append(remaining, p)
				}
			}
			if len(remaining) == 0 {
				return
			}
			p := remaining[c.rng.Intn(len(remaining))]
			picked[p] = true
			result = append(result, p)
		}
	}

	take(rares, rareQuota)
	take(commons, commonQuota)
	if len(result) < count {
		take(pool, count-len(result))
	}
	return result
}

func removePowerUp(list []*PowerUp, p *PowerUp) []*PowerUp {
	for i, q := range list {
		if q == p {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
