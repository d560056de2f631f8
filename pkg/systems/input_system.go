package systems

import (
	"github.com/gonewx/luckydoor/pkg/components"
	"github.com/gonewx/luckydoor/pkg/ecs"
	"github.com/gonewx/luckydoor/pkg/utils"
)

// InputSystem 输入采样系统
//
// 每帧把输入源的状态写进所有输入快照组件。下游系统只读快照，
// 不直接碰键鼠接口。边沿字段只在写入帧有效，帧首统一清零。
//
// 跳跃例外：跳跃边沿由固定步消费，而帧率与固定步率不同步，
// 部分帧没有固定步。边沿在这里粘滞保留，直到角色控制消费清零，
// 否则恰好落在无固定步帧上的按键会丢失。
type InputSystem struct {
	entityManager *ecs.EntityManager
	provider      utils.InputProvider
}

// NewInputSystem 创建输入采样系统
func NewInputSystem(em *ecs.EntityManager, provider utils.InputProvider) *InputSystem {
	return &InputSystem{
		entityManager: em,
		provider:      provider,
	}
}

// Update 采样一帧输入
func (s *InputSystem) Update(deltaTime float64) {
	if s.provider == nil {
		return
	}
	s.provider.Update()

	for _, id := range ecs.GetEntitiesWith1[*components.InputComponent](s.entityManager) {
		input, _ := ecs.GetComponent[*components.InputComponent](s.entityManager, id)
		pendingJump := input.JumpPressed
		input.ClearEdges()

		input.MoveX, input.MoveZ = s.provider.MoveAxis()
		input.MouseDX, input.MouseDY = s.provider.MouseDelta()
		input.WheelDelta = s.provider.WheelDelta()
		input.RotateHeld = s.provider.RotateHeld()

		input.JumpPressed = pendingJump || s.provider.JumpJustPressed()
		input.PunchPressed = s.provider.PunchJustPressed()
		input.SpinPressed = s.provider.SpinJustPressed()
		input.EquipNextPressed = s.provider.EquipNextJustPressed()
		input.EquipPrevPressed = s.provider.EquipPrevJustPressed()
		input.UnequipPressed = s.provider.UnequipJustPressed()
		input.EquipSlotPressed = s.provider.EquipSlotJustPressed()
		input.ForceClosePressed = s.provider.ForceCloseJustPressed()
		input.ResetPressed = s.provider.ResetJustPressed()
	}
}
