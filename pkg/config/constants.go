package config

// 全局常量
// 本文件定义窗口、调度和物理的基础参数。
// 数值调参类配置在 data/tuning.yaml，场景内容在 data/scene.yaml。

// Window Configuration (窗口配置)
const (
	// WindowWidth 窗口宽度（像素）
	WindowWidth = 1280

	// WindowHeight 窗口高度（像素）
	WindowHeight = 720

	// WindowTitle 窗口标题
	WindowTitle = "幸运之门 Lucky Door"
)

// Scheduler Configuration (调度配置)
const (
	// FrameDelta 帧阶段时间步长（秒）
	// ebiten 固定 60 TPS，输入、动画、序列推进按此步长更新
	FrameDelta = 1.0 / 60.0

	// FixedDelta 物理阶段时间步长（秒）
	// 移动控制与物理积分走独立的固定步长累加器
	FixedDelta = 1.0 / 50.0

	// MaxFixedStepsPerFrame 单帧物理步数上限
	// 卡顿后追帧的保护，超出部分丢弃累积时间
	MaxFixedStepsPerFrame = 5
)

// Physics Configuration (物理配置)
const (
	// GravityY 重力加速度（米/秒²，负值向下）
	GravityY = -9.81

	// GroundProbeDistance 接地探测距离（米）
	// 从脚底向下探测，在此距离内有支撑面即视为着地
	GroundProbeDistance = 0.15
)

// Collider Tags (碰撞体标签)
//
// 物理系统用标签区分反应：撞到 TagWall 触发击退，
// TagFloor 只参与接地探测。
const (
	TagFloor  = "Floor"
	TagWall   = "Wall"
	TagDoor   = "Door"
	TagPlayer = "Player"
)

// Entity Names (实体名称)
//
// 工厂按名称解析装配好的子实体，缺失视为装配错误。
const (
	NameDoorHinge        = "Hinge"
	NameDoorBody         = "DoorBody"
	NameDoorCameraTarget = "CameraTarget"
	NameHandAnchor       = "RightHand"
)

// Config File Paths (配置文件路径)
const (
	TuningConfigPath = "data/tuning.yaml"
	SceneConfigPath  = "data/scene.yaml"
)
