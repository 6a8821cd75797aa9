package ecs

import (
	"math"
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符
type EntityID uint64

// Kind 实体类别标签
// 每个实体在创建时确定类别，之后不可更改
type Kind int

const (
	// KindPlayer 玩家
	KindPlayer Kind = iota
	// KindEnemy 敌人
	KindEnemy
	// KindProjectile 子弹
	KindProjectile
	// KindCollectable 可收集物
	KindCollectable
	// KindWall 墙体
	KindWall
)

// String 返回类别名称（用于日志）
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "Player"
	case KindEnemy:
		return "Enemy"
	case KindProjectile:
		return "Projectile"
	case KindCollectable:
		return "Collectable"
	case KindWall:
		return "Wall"
	}
	return "Unknown"
}

// Locatable 可定位的组件（通常是位置组件）
// 用于最近邻查询
type Locatable interface {
	Location() (x, y float64)
}

// EntityManager 管理所有实体和组件
//
// 与普通的组件容器不同，这里额外维护按类别划分的索引：
//   - 每个类别的实体按创建顺序排列，保证遍历顺序确定（最近邻查询的平局按此顺序打破）
//   - DestroyEntity 只做标记，被标记的实体立即从所有查询中消失，
//     组件数据保留到 RemoveMarkedEntities 统一清理
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]interface{}
	// 实体类别
	kinds map[EntityID]Kind
	// 类别索引（按创建顺序）
	byKind map[Kind][]EntityID
	// 已标记删除的实体
	marked map[EntityID]struct{}
	// 待删除的实体ID列表（保持标记顺序）
	entitiesToDestroy []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1, // ID从1开始,0保留为无效ID
		components:        make(map[EntityID]map[reflect.Type]interface{}),
		kinds:             make(map[EntityID]Kind),
		byKind:            make(map[Kind][]EntityID),
		marked:            make(map[EntityID]struct{}),
		entitiesToDestroy: make([]EntityID, 0),
	}
}

// CreateEntity 创建指定类别的新实体并返回唯一ID
func (em *EntityManager) CreateEntity(kind Kind) EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]interface{})
	em.kinds[id] = kind
	em.byKind[kind] = append(em.byKind[kind], id)
	return id
}

// DestroyEntity 标记实体待删除(不立即删除)
// 重复标记或对不存在的实体调用都是无操作
func (em *EntityManager) DestroyEntity(id EntityID) {
	if _, exists := em.components[id]; !exists {
		return
	}
	if _, already := em.marked[id]; already {
		return
	}
	em.marked[id] = struct{}{}
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// IsAlive 实体存在且未被标记删除
func (em *EntityManager) IsAlive(id EntityID) bool {
	if _, exists := em.components[id]; !exists {
		return false
	}
	_, dead := em.marked[id]
	return !dead
}

// KindOf 返回实体类别
func (em *EntityManager) KindOf(id EntityID) (Kind, bool) {
	kind, ok := em.kinds[id]
	return kind, ok
}

// AddComponent 为实体添加组件
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	componentType := reflect.TypeOf(component)
	if compMap, exists := em.components[id]; exists {
		compMap[componentType] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	if compMap, exists := em.components[id]; exists {
		_, found := compMap[componentType]
		return found
	}
	return false
}

// RemoveMarkedEntities 清理所有标记删除的实体
// 在每个 tick 结束时调用一次
func (em *EntityManager) RemoveMarkedEntities() {
	if len(em.entitiesToDestroy) == 0 {
		return
	}
	for _, id := range em.entitiesToDestroy {
		delete(em.components, id)
		delete(em.kinds, id)
	}
	// 压缩类别索引，保持剩余实体的创建顺序
	for kind, ids := range em.byKind {
		kept := ids[:0]
		for _, id := range ids {
			if _, dead := em.marked[id]; !dead {
				kept = append(kept, id)
			}
		}
		em.byKind[kind] = kept
	}
	clear(em.marked)
	em.entitiesToDestroy = em.entitiesToDestroy[:0] // 清空切片
}

// EntitiesOfKind 返回某类别的所有存活实体（创建顺序）
// 返回的是副本，调用方在遍历期间创建或删除实体是安全的
func (em *EntityManager) EntitiesOfKind(kind Kind) []EntityID {
	ids := em.byKind[kind]
	result := make([]EntityID, 0, len(ids))
	for _, id := range ids {
		if _, dead := em.marked[id]; !dead {
			result = append(result, id)
		}
	}
	return result
}

// CountOfKind 返回某类别的存活实体数量
func (em *EntityManager) CountOfKind(kind Kind) int {
	n := 0
	for _, id := range em.byKind[kind] {
		if _, dead := em.marked[id]; !dead {
			n++
		}
	}
	return n
}

// FirstOfKind 返回某类别的第一个存活实体（用于唯一实体，如玩家）
func (em *EntityManager) FirstOfKind(kind Kind) (EntityID, bool) {
	for _, id := range em.byKind[kind] {
		if _, dead := em.marked[id]; !dead {
			return id, true
		}
	}
	return 0, false
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有存活实体
// 参数: componentTypes ...reflect.Type - 需要的组件类型列表
// 返回: []EntityID - 满足条件的实体ID列表（按ID升序）
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		if _, dead := em.marked[id]; dead {
			continue
		}
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// GetComponent 泛型版本的组件获取
//
// 用法: pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, reflect.TypeFor[T]())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 泛型版本的组件检查
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	return em.HasComponent(id, reflect.TypeFor[T]())
}

// RemoveComponent 泛型版本的组件移除
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	em.RemoveComponent(id, reflect.TypeFor[T]())
}

// GetEntitiesWith1 查询拥有组件 T 的所有存活实体
func GetEntitiesWith1[T any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(reflect.TypeFor[T]())
}

// GetEntitiesWith2 查询同时拥有组件 T1、T2 的所有存活实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(reflect.TypeFor[T1](), reflect.TypeFor[T2]())
}

// Nearest 在某类别的存活实体中查找距离 (x, y) 最近的一个
//
// 参数:
//   - T: 实现 Locatable 的位置组件类型
//   - exclude: 需要跳过的实体
//
// 返回:
//   - EntityID: 最近实体
//   - bool: 没有候选实体时返回 false
//
// 距离相同时取创建顺序靠前的实体。每次调用都重新计算，不做缓存。
func Nearest[T Locatable](em *EntityManager, kind Kind, x, y float64, exclude ...EntityID) (EntityID, bool) {
	var best EntityID
	bestDist := math.Inf(1)
	found := false

	for _, id := range em.byKind[kind] {
		if _, dead := em.marked[id]; dead {
			continue
		}
		if excluded(id, exclude) {
			continue
		}
		loc, ok := GetComponent[T](em, id)
		if !ok {
			continue
		}
		ex, ey := loc.Location()
		d := math.Hypot(ex-x, ey-y)
		if d < bestDist {
			bestDist = d
			best = id
			found = true
		}
	}

	return best, found
}

func excluded(id EntityID, exclude []EntityID) bool {
	for _, e := range exclude {
		if e == id {
			return true
		}
	}
	return false
}
