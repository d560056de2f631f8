package components

import "github.com/gonewx/luckydoor/internal/mathutil"

// RigidbodyComponent 刚体组件
//
// 角色移动使用的简化刚体：速度积分、重力、瞬时冲量和接触查询。
// 只有位置参与物理，朝向从不被物理改写。
//
// 控制系统与物理系统的分工：
// - 控制系统写 Velocity 的水平分量、PendingImpulse、ExtraFallGravity
// - 物理系统写 Position、Velocity 垂直分量、IsGrounded、Wall* 字段
type RigidbodyComponent struct {
	// Velocity 当前速度（米/秒）
	Velocity mathutil.Vec3

	// PendingImpulse 待施加的瞬时速度变化，物理步开始时并入 Velocity 后清零
	PendingImpulse mathutil.Vec3

	// UseGravity 是否受重力
	UseGravity bool

	// ExtraFallGravity 额外重力倍率，1 为标准重力
	// 控制系统在下落阶段调大，落地后复位
	ExtraFallGravity float64

	// IsGrounded 本物理步是否着地
	IsGrounded bool

	// WallContact 本物理步是否与墙体接触
	WallContact bool

	// WallNormal 墙体接触的外法线（指向远离墙的方向，已展平到水平面）
	WallNormal mathutil.Vec3
}

// NewRigidbodyComponent 创建受重力的动态刚体
func NewRigidbodyComponent() *RigidbodyComponent {
	return &RigidbodyComponent{
		UseGravity:       true,
		ExtraFallGravity: 1,
	}
}

// AddImpulse 累加瞬时冲量（下个物理步生效）
func (r *RigidbodyComponent) AddImpulse(impulse mathutil.Vec3) {
	r.PendingImpulse = r.PendingImpulse.Add(impulse)
}
