package components

import (
	"github.com/gonewx/luckydoor/internal/mathutil"
	"github.com/gonewx/luckydoor/pkg/ecs"
)

// PlayerComponent 角色控制组件
//
// 冻结语义：IsFrozen 为 true 时控制系统跳过移动/转身/跳跃，
// 重力和物理积分照常（角色在空中被冻结仍会落地）。
// 开门演出期间流程系统冻结角色，演出结束解冻。
type PlayerComponent struct {
	// IsFrozen 是否被冻结（重复冻结为幂等操作）
	IsFrozen bool

	// LockedYawDeg 第一人称锁定偏航角（度）
	// 进入第一人称那一帧用当前朝向播种，此后每个物理步
	// 向相机发布的视角偏航平滑收敛，并无条件写回 Transform，
	// 保证物理永远不会漂移朝向
	LockedYawDeg float64

	// HasLockedYaw LockedYawDeg 是否已播种（进入第一人称时置位）
	HasLockedYaw bool

	// KnockbackRemaining 击退剩余时间（秒），>0 时忽略移动输入
	KnockbackRemaining float64

	// KnockbackDir 击退方向（水平单位向量）
	KnockbackDir mathutil.Vec3

	// WasWallContact 上个物理步是否贴墙（击退只在接触上升沿触发）
	WasWallContact bool

	// HandAnchor 手部锚点实体（装备与挥拳动画挂接点）
	HandAnchor ecs.EntityID
}

// NewPlayerComponent 创建未冻结的角色控制组件
func NewPlayerComponent() *PlayerComponent {
	return &PlayerComponent{}
}
