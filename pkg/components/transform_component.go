package components

import "github.com/gonewx/luckydoor/internal/mathutil"

// TransformComponent 空间姿态组件
//
// 实体在世界中的位置与朝向。物理系统只积分 Position，
// Rotation 完全由控制系统写入（第一人称锁定朝向依赖这一点）。
type TransformComponent struct {
	// Position 世界坐标（Y 向上）
	Position mathutil.Vec3

	// Rotation 朝向四元数
	Rotation mathutil.Quat
}

// NewTransformComponent 创建位于 pos 的无旋转姿态
func NewTransformComponent(pos mathutil.Vec3) *TransformComponent {
	return &TransformComponent{
		Position: pos,
		Rotation: mathutil.QuatIdentity(),
	}
}

// Forward 返回当前朝向的前方单位向量
func (t *TransformComponent) Forward() mathutil.Vec3 {
	return mathutil.QuatForward(t.Rotation)
}

// YawDeg 返回当前偏航角（度，[0,360)）
func (t *TransformComponent) YawDeg() float64 {
	return mathutil.QuatYawDeg(t.Rotation)
}
