package components

import "github.com/gonewx/luckydoor/pkg/ecs"

// CameraMode 相机模式
type CameraMode int

const (
	// CameraModeOrbit 环绕模式：相机绕目标旋转，滚轮调距离
	CameraModeOrbit CameraMode = iota

	// CameraModeFirstPerson 第一人称：相机贴在目标头部，鼠标直接转视角
	CameraModeFirstPerson
)

// String 返回模式名称（日志用）
func (m CameraMode) String() string {
	switch m {
	case CameraModeOrbit:
		return "Orbit"
	case CameraModeFirstPerson:
		return "FirstPerson"
	default:
		return "Unknown"
	}
}

// CameraRigComponent 相机吊臂组件
//
// 模式每帧由平滑后的当前距离重新判定：
// 距离 <= minDistance+firstPersonThreshold 即为第一人称。
// 切换动作（指针锁定、角度接力）只在模式发生变化的那一帧执行。
type CameraRigComponent struct {
	// Target 被跟踪目标（角色实体）
	Target ecs.EntityID

	// Mode 当前模式（由距离推导，外部只读）
	Mode CameraMode

	// CurrentDistance 平滑后的实际距离
	CurrentDistance float64

	// TargetDistance 滚轮设定的目标距离
	TargetDistance float64

	// OrbitYaw / OrbitPitch 环绕模式平滑后角度（度）
	OrbitYaw   float64
	OrbitPitch float64

	// TargetOrbitYaw / TargetOrbitPitch 环绕模式目标角度（拖拽写入）
	TargetOrbitYaw   float64
	TargetOrbitPitch float64

	// FPYaw / FPPitch 第一人称视角角度（度）
	FPYaw   float64
	FPPitch float64
}

// NewCameraRigComponent 创建跟踪 target 的吊臂，初始距离 distance
func NewCameraRigComponent(target ecs.EntityID, distance float64) *CameraRigComponent {
	return &CameraRigComponent{
		Target:           target,
		Mode:             CameraModeOrbit,
		CurrentDistance:  distance,
		TargetDistance:   distance,
		OrbitPitch:       20,
		TargetOrbitPitch: 20,
	}
}
