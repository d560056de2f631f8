package systems

import (
	"github.com/gonewx/luckydoor/internal/mathutil"
	"github.com/gonewx/luckydoor/pkg/components"
	"github.com/gonewx/luckydoor/pkg/ecs"
)

// AttachUpdateSystem 挂接更新系统
//
// 帧阶段把每个挂接实体的世界位置结算为
// 父位置 + 父旋转×(LocalOffset+LocalAnimOffset)，
// InheritRotation 的实体额外复制父旋转。
//
// 遍历按实体ID升序，工厂总是先创建父实体再创建子实体，
// 因此多级挂接（角色→手部锚点→道具）在同一帧内自上而下结算。
// 父实体失效的挂接实体保持原地不动。
type AttachUpdateSystem struct {
	entityManager *ecs.EntityManager
}

// NewAttachUpdateSystem 创建挂接更新系统
func NewAttachUpdateSystem(em *ecs.EntityManager) *AttachUpdateSystem {
	return &AttachUpdateSystem{entityManager: em}
}

// Update 结算所有挂接实体的世界变换
func (s *AttachUpdateSystem) Update(deltaTime float64) {
	ids := ecs.GetEntitiesWith2[
		*components.AttachComponent,
		*components.TransformComponent,
	](s.entityManager)

	for _, id := range ids {
		attach, _ := ecs.GetComponent[*components.AttachComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		if attach.Parent == ecs.InvalidEntity || !s.entityManager.IsAlive(attach.Parent) {
			continue
		}
		parent, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, attach.Parent)
		if !ok {
			continue
		}

		local := attach.LocalOffset.Add(attach.LocalAnimOffset)
		transform.Position = parent.Position.Add(mathutil.QuatRotateVec3(parent.Rotation, local))
		if attach.InheritRotation {
			transform.Rotation = parent.Rotation
		}
	}
}
