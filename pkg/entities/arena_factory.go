package entities

import (
	"fmt"

	"github.com/gonewx/luckydoor/internal/mathutil"
	"github.com/gonewx/luckydoor/pkg/components"
	"github.com/gonewx/luckydoor/pkg/config"
	"github.com/gonewx/luckydoor/pkg/ecs"
)

// NewArenaEntities 创建场地静态实体
//
// 地面一块 + 四面围墙。地面只参与接地探测（TagFloor），
// 围墙参与推出和击退（TagWall）。返回创建的实体列表。
func NewArenaEntities(em *ecs.EntityManager, arena config.ArenaConfig) ([]ecs.EntityID, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}

	var created []ecs.EntityID

	addStatic := func(name string, center, halfExtents mathutil.Vec3, tag string) {
		id := em.CreateEntity()
		em.AddComponent(id, components.NewTransformComponent(center))
		em.AddComponent(id, &components.NameComponent{Name: name})
		em.AddComponent(id, components.NewColliderComponent(halfExtents, tag, true))
		created = append(created, id)
	}

	halfW := arena.Width / 2
	halfD := arena.Depth / 2
	halfH := arena.WallHeight / 2
	halfT := arena.WallThickness / 2

	// 地面: Position 是盒体底面中心，底面在 -1 则上表面落在 Y=0
	addStatic("Floor",
		mathutil.Vec3{0, -1, 0},
		mathutil.Vec3{halfW, 0.5, halfD},
		config.TagFloor)

	// 四面围墙，底面贴地
	addStatic("WallNorth",
		mathutil.Vec3{0, 0, halfD - halfT},
		mathutil.Vec3{halfW, halfH, halfT},
		config.TagWall)
	addStatic("WallSouth",
		mathutil.Vec3{0, 0, -halfD + halfT},
		mathutil.Vec3{halfW, halfH, halfT},
		config.TagWall)
	addStatic("WallEast",
		mathutil.Vec3{halfW - halfT, 0, 0},
		mathutil.Vec3{halfT, halfH, halfD},
		config.TagWall)
	addStatic("WallWest",
		mathutil.Vec3{-halfW + halfT, 0, 0},
		mathutil.Vec3{halfT, halfH, halfD},
		config.TagWall)

	return created, nil
}

// NewHUDEntity 创建 HUD 文本实体
func NewHUDEntity(em *ecs.EntityManager) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	id := em.CreateEntity()
	em.AddComponent(id, components.NewHUDComponent())
	return id, nil
}

// NewGameFlowEntity 创建开门流程状态实体
func NewGameFlowEntity(em *ecs.EntityManager) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	id := em.CreateEntity()
	em.AddComponent(id, components.NewGameFlowComponent())
	return id, nil
}
