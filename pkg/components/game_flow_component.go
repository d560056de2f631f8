package components

import "github.com/gonewx/luckydoor/internal/mathutil"

// FlowStep 开门演出步骤
const (
	// FlowStepNone 空闲，未在演出
	FlowStepNone = 0

	// FlowStepSaveCamera 步骤1: 保存相机姿态并接管控制权
	FlowStepSaveCamera = 1

	// FlowStepMoveCameraToDoor 步骤2: 相机飞向门前机位
	FlowStepMoveCameraToDoor = 2

	// FlowStepOpenDoor 步骤3: 门板摆开
	FlowStepOpenDoor = 3

	// FlowStepHold 步骤4: 机位停留展示
	FlowStepHold = 4

	// FlowStepRestoreCamera 步骤5: 相机飞回原位并交还控制权
	FlowStepRestoreCamera = 5

	// FlowStepCloseDoor 步骤6: 倒计时结束后门板摆回
	// 该步骤在 IsProcessing 已清零、倒计时归零后进入
	FlowStepCloseDoor = 6
)

// CameraFlightTask 相机飞行任务
//
// 可恢复动画任务：位置插值 + 姿态球面插值，带缓出。
type CameraFlightTask struct {
	// Active 是否有飞行在进行
	Active bool

	// FromPos / ToPos 起止位置
	FromPos mathutil.Vec3
	ToPos   mathutil.Vec3

	// FromRot / ToRot 起止姿态
	FromRot mathutil.Quat
	ToRot   mathutil.Quat

	// Elapsed 已播放时间（秒）
	Elapsed float64

	// Duration 总时长（秒）
	Duration float64
}

// CameraSnapshot 相机姿态快照
//
// 演出开始前保存，演出结束后按原值恢复（包括位级精度）。
type CameraSnapshot struct {
	// Saved 快照是否有效
	Saved bool

	// Position / Rotation 保存的姿态
	Position mathutil.Vec3
	Rotation mathutil.Quat
}

// GameFlowComponent 开门流程组件
//
// IsProcessing 覆盖演出段（保存相机→飞行→开门→停留→恢复），
// 恢复完成即清零；倒计时与关门独立推进，由 IsCountdownActive 标记。
// 两个标志中任何一个为真时，新的开门请求都会被拒绝。
type GameFlowComponent struct {
	// IsProcessing 演出段进行中
	IsProcessing bool

	// IsCountdownActive 倒计时（含关门摆动）进行中
	IsCountdownActive bool

	// CurrentDoorIndex 当前演出/倒计时的门索引，-1 = 无
	CurrentDoorIndex int

	// Step 当前步骤（FlowStep 常量）
	Step int

	// StepElapsed 当前步骤已持续时间（秒），停留步骤用
	StepElapsed float64

	// Flight 当前相机飞行任务
	Flight CameraFlightTask

	// Snapshot 演出前的相机姿态快照
	Snapshot CameraSnapshot

	// CountdownRemaining 倒计时剩余（秒）
	CountdownRemaining float64

	// CountdownDisplay 当前显示的整秒数（变化时刷新 HUD）
	CountdownDisplay int
}

// NewGameFlowComponent 创建空闲流程组件
func NewGameFlowComponent() *GameFlowComponent {
	return &GameFlowComponent{
		CurrentDoorIndex: -1,
		Step:             FlowStepNone,
	}
}
