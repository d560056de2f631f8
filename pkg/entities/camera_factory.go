package entities

import (
	"fmt"

	"github.com/gonewx/luckydoor/internal/mathutil"
	"github.com/gonewx/luckydoor/pkg/components"
	"github.com/gonewx/luckydoor/pkg/config"
	"github.com/gonewx/luckydoor/pkg/ecs"
)

// NewCameraEntity 创建相机实体
//
// 吊臂初始为环绕模式，距离取配置默认值，初始位置放在目标
// 后上方（第一帧吊臂系统会按角度重新结算，这里只要别在原点）。
//
// 参数:
//   - em: 实体管理器
//   - target: 被跟踪的角色实体
//   - tuning: 相机参数
func NewCameraEntity(em *ecs.EntityManager, target ecs.EntityID, tuning config.CameraTuning) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	if target == ecs.InvalidEntity || !em.IsAlive(target) {
		return ecs.InvalidEntity, fmt.Errorf("camera target entity %d is not alive", target)
	}

	camID := em.CreateEntity()

	startPos := mathutil.Vec3{0, tuning.TargetHeight + 2, -tuning.DefaultDistance}
	if targetTf, ok := ecs.GetComponent[*components.TransformComponent](em, target); ok {
		startPos = targetTf.Position.Add(startPos)
	}
	em.AddComponent(camID, components.NewTransformComponent(startPos))
	em.AddComponent(camID, components.NewCameraRigComponent(target, tuning.DefaultDistance))

	return camID, nil
}
