package entities

import (
	"fmt"
	"log"

	"github.com/gonewx/luckydoor/internal/mathutil"
	"github.com/gonewx/luckydoor/pkg/components"
	"github.com/gonewx/luckydoor/pkg/config"
	"github.com/gonewx/luckydoor/pkg/ecs"
)

// NewDoorEntity 创建一扇奖品门
//
// 按固定三级层级装配：根（门组件）→ 铰链（旋转载体）→ 门板，
// 根下另挂开门演出的机位注视点。子实体创建后按名称解析回填
// 到门组件，任何名称缺失视为装配错误：清理已创建实体并返回
// 错误，这扇门不会注册进开门流程。
//
// 铰链关门角取门面朝偏航，门板沿铰链局部 +X 方向展开，
// 关门时与墙面平行。
//
// 参数:
//   - em: 实体管理器
//   - index: 门索引（场景配置顺序）
//   - slot: 门的摆放配置
//   - flow: 流程参数（提供打开角度）
func NewDoorEntity(em *ecs.EntityManager, index int, slot config.DoorSlotConfig, flow config.FlowTuning) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}

	pos := slot.Position.ToVec3()
	facing := mathutil.DirFromYawPitchDeg(slot.FacingYawDeg, 0)
	closedYaw := slot.FacingYawDeg
	bodyDir := mathutil.QuatRotateVec3(mathutil.QuatFromYawDeg(closedYaw), mathutil.Vec3{1, 0, 0})

	rootID := em.CreateEntity()
	em.AddComponent(rootID, components.NewTransformComponent(pos))
	em.AddComponent(rootID, &components.NameComponent{Name: slot.Name})

	var children []ecs.EntityID

	// 铰链: 旋转载体，关门角为初始姿态
	hingeID := em.CreateEntity()
	hingeTf := components.NewTransformComponent(pos)
	hingeTf.Rotation = mathutil.QuatFromYawDeg(closedYaw)
	em.AddComponent(hingeID, hingeTf)
	em.AddComponent(hingeID, &components.NameComponent{Name: config.NameDoorHinge})
	em.AddComponent(hingeID, &components.DoorSwingComponent{})
	children = append(children, hingeID)

	// 门板: 静态碰撞体挡在关门位置，门打开时物理系统会跳过它。
	// Position 是盒体底面中心，门板底边贴地
	bodyID := em.CreateEntity()
	bodyBase := pos.Add(bodyDir.Scale(slot.Width / 2))
	em.AddComponent(bodyID, components.NewTransformComponent(bodyBase))
	em.AddComponent(bodyID, &components.NameComponent{Name: config.NameDoorBody})
	em.AddComponent(bodyID, components.NewColliderComponent(
		mathutil.Vec3{slot.Width / 2, slot.Height / 2, 0.08}, config.TagDoor, true))
	children = append(children, bodyID)

	// 机位注视点: 门板中心偏上
	targetID := em.CreateEntity()
	targetPos := pos.Add(bodyDir.Scale(slot.Width / 2)).Add(mathutil.Vec3{0, slot.Height * 0.55, 0})
	em.AddComponent(targetID, components.NewTransformComponent(targetPos))
	em.AddComponent(targetID, &components.NameComponent{Name: config.NameDoorCameraTarget})
	children = append(children, targetID)

	// 按名称解析回填，缺失即装配错误
	hinge, ok1 := resolveChildByName(em, children, config.NameDoorHinge)
	body, ok2 := resolveChildByName(em, children, config.NameDoorBody)
	camTarget, ok3 := resolveChildByName(em, children, config.NameDoorCameraTarget)
	if !ok1 || !ok2 || !ok3 {
		log.Printf("[DoorFactory] 门 %q 层级解析失败 (hinge=%v body=%v target=%v)，该门不参与开门流程",
			slot.Name, ok1, ok2, ok3)
		for _, id := range children {
			em.DestroyEntity(id)
		}
		em.DestroyEntity(rootID)
		return ecs.InvalidEntity, fmt.Errorf("door %q hierarchy resolution failed", slot.Name)
	}

	em.AddComponent(rootID, &components.DoorComponent{
		Index:        index,
		Name:         slot.Name,
		Hinge:        hinge,
		Body:         body,
		CameraTarget: camTarget,
		Facing:       facing,
		ClosedYawDeg: closedYaw,
		OpenAngleDeg: flow.DoorOpenAngle,
	})

	return rootID, nil
}

// resolveChildByName 在子实体列表里按名称找实体
func resolveChildByName(em *ecs.EntityManager, children []ecs.EntityID, name string) (ecs.EntityID, bool) {
	for _, id := range children {
		nameComp, ok := ecs.GetComponent[*components.NameComponent](em, id)
		if ok && nameComp.Name == name {
			return id, true
		}
	}
	return ecs.InvalidEntity, false
}
