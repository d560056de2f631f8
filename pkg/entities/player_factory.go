package entities

import (
	"fmt"

	"github.com/gonewx/luckydoor/internal/mathutil"
	"github.com/gonewx/luckydoor/pkg/components"
	"github.com/gonewx/luckydoor/pkg/config"
	"github.com/gonewx/luckydoor/pkg/ecs"
)

// NewPlayerEntity 创建角色实体
//
// 装配角色本体（姿态、刚体、碰撞体、输入快照、控制、装备）和
// 手部锚点子实体。锚点挂在角色右手位置并继承朝向，装备可视实体
// 和挥拳动画都以它为父。
//
// 参数:
//   - em: 实体管理器
//   - spawn: 出生点（Y 为脚底高度）
//   - catalog: 道具目录（场景配置的 items，索引即装备槽位）
//
// 返回:
//   - ecs.EntityID: 角色实体ID
//   - error: em 为 nil 时返回错误
func NewPlayerEntity(em *ecs.EntityManager, spawn mathutil.Vec3, catalog []string) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}

	playerID := em.CreateEntity()
	em.AddComponent(playerID, components.NewTransformComponent(spawn))
	em.AddComponent(playerID, components.NewRigidbodyComponent())
	em.AddComponent(playerID, components.NewColliderComponent(
		mathutil.Vec3{0.35, 0.9, 0.35}, config.TagPlayer, false))
	em.AddComponent(playerID, components.NewInputComponent())
	em.AddComponent(playerID, components.NewEquipmentComponent(catalog))

	player := components.NewPlayerComponent()
	em.AddComponent(playerID, player)

	// 手部锚点: 角色局部空间右手位置，继承角色朝向
	hand := em.CreateEntity()
	em.AddComponent(hand, components.NewTransformComponent(spawn))
	em.AddComponent(hand, &components.NameComponent{Name: config.NameHandAnchor})
	em.AddComponent(hand, &components.AttachComponent{
		Parent:          playerID,
		LocalOffset:     mathutil.Vec3{0.35, 1.2, 0.3},
		InheritRotation: true,
	})
	player.HandAnchor = hand

	return playerID, nil
}
