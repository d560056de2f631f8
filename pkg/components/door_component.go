package components

import (
	"github.com/gonewx/luckydoor/internal/mathutil"
	"github.com/gonewx/luckydoor/pkg/ecs"
)

// DoorComponent 奖品门组件（挂在门根实体上）
//
// 层级：根（本组件）→ 铰链（Transform，绕 Y 转动）→ 门板，
// 根下另挂机位目标子实体。铰链和机位目标由工厂按名称解析，
// 解析失败的门不会注册进开门流程。
type DoorComponent struct {
	// Index 门索引（场景配置顺序，0 起）
	Index int

	// Name 门名称（日志与调试视图）
	Name string

	// IsOpened 门是否处于打开状态
	// 演出收尾交还控制权时置位，关门摆动完成时清零
	IsOpened bool

	// Hinge 铰链实体（旋转载体）
	Hinge ecs.EntityID

	// Body 门板实体
	Body ecs.EntityID

	// CameraTarget 开门演出注视点实体
	CameraTarget ecs.EntityID

	// Facing 门面朝方向（水平单位向量），机位沿此方向从注视点前推
	Facing mathutil.Vec3

	// ClosedYawDeg 关门时铰链偏航角（度），关门动画的精确回归值
	ClosedYawDeg float64

	// OpenAngleDeg 开门转角（度，相对关门角，负值向内开）
	OpenAngleDeg float64
}

// OpenedYawDeg 开门到位时铰链偏航角（度）
func (d *DoorComponent) OpenedYawDeg() float64 {
	return d.ClosedYawDeg + d.OpenAngleDeg
}

// DoorSwingComponent 门板摆动任务组件（挂在铰链实体上）
//
// 可恢复动画任务：流程系统每帧推进 Elapsed，把铰链偏航角
// 从 FromYawDeg 线性插到 ToYawDeg。完成时精确落到 ToYawDeg
// （关门必须位回到 ClosedYawDeg 的二进制原值）。
type DoorSwingComponent struct {
	// Active 是否有摆动在进行
	Active bool

	// FromYawDeg 起始偏航角（度）
	FromYawDeg float64

	// ToYawDeg 目标偏航角（度）
	ToYawDeg float64

	// Elapsed 已播放时间（秒）
	Elapsed float64

	// Duration 总时长（秒）
	Duration float64

	// Opening true 为开门摆动，false 为关门摆动（完成回调用）
	Opening bool
}
