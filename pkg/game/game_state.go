package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/luckydoor/internal/mathutil"
)

// CameraOwner 相机控制权持有者
type CameraOwner int

const (
	// CameraOwnerNone 无人持有（场景尚未初始化）
	CameraOwnerNone CameraOwner = iota

	// CameraOwnerRig 相机吊臂（正常游玩）
	CameraOwnerRig

	// CameraOwnerFlow 开门流程（演出期间）
	CameraOwnerFlow
)

// String 返回持有者名称（日志用）
func (o CameraOwner) String() string {
	switch o {
	case CameraOwnerNone:
		return "None"
	case CameraOwnerRig:
		return "Rig"
	case CameraOwnerFlow:
		return "Flow"
	default:
		return "Unknown"
	}
}

// CameraPose 相机姿态发布值
//
// 相机吊臂每帧结算后发布一份，角色控制只读这份快照，
// 不直接访问相机实体。Forward/Right 已展平到水平面并归一化。
type CameraPose struct {
	// Position 相机世界位置
	Position mathutil.Vec3

	// Forward 水平前方单位向量
	Forward mathutil.Vec3

	// Right 水平右方单位向量
	Right mathutil.Vec3

	// IsFirstPerson 当前是否第一人称模式
	IsFirstPerson bool

	// FPYawDeg 第一人称视角偏航（度），角色锁定朝向的收敛目标
	FPYawDeg float64
}

// GameState 存储全局游戏状态
// 这是一个单例，用于管理跨场景和跨系统的全局状态数据
type GameState struct {
	// cameraOwner 相机控制权令牌
	// 同一时刻只有持有者可以写相机实体的 Transform
	cameraOwner CameraOwner

	// cameraPose 相机姿态发布值（吊臂或流程每帧写入）
	cameraPose CameraPose

	// gdataManager 跨平台持久化存储，可为 nil（降级模式）
	gdataManager *gdata.Manager

	// settingsManager 设置管理器
	settingsManager *SettingsManager

	// progressManager 进度统计管理器
	progressManager *ProgressManager
}

// 全局单例实例（这是架构规范允许的唯一全局变量）
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 使用延迟初始化模式，确保整个游戏生命周期只有一个实例
func GetGameState() *GameState {
	if globalGameState == nil {
		globalGameState = newGameState()
	}
	return globalGameState
}

// newGameState 构造并初始化全局状态
//
// gdata 打开失败走降级模式：设置与进度只存内存，游戏照常运行。
func newGameState() *GameState {
	gs := &GameState{
		cameraOwner: CameraOwnerNone,
	}

	manager, err := gdata.Open(gdata.Config{
		AppName: "luckydoor",
	})
	if err != nil {
		log.Printf("[GameState] Warning: gdata unavailable: %v (running without persistence)", err)
		manager = nil
	}
	gs.gdataManager = manager

	gs.settingsManager, _ = NewSettingsManager(manager)
	gs.progressManager, _ = NewProgressManager(manager)

	return gs
}

// GetGdataManager 返回 gdata 存储管理器（可为 nil）
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}

// GetSettingsManager 返回设置管理器
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settingsManager
}

// GetProgressManager 返回进度统计管理器
func (gs *GameState) GetProgressManager() *ProgressManager {
	return gs.progressManager
}

// ========== 相机控制权令牌 ==========

// CameraController 返回当前相机控制权持有者
func (gs *GameState) CameraController() CameraOwner {
	return gs.cameraOwner
}

// TryTransferCamera 尝试把相机控制权从 from 转移给 to
//
// 只有当前持有者确实是 from 时转移才成立，否则拒绝并记日志。
// 开门流程用它从吊臂手中接管相机，演出结束再交还。
func (gs *GameState) TryTransferCamera(from, to CameraOwner) bool {
	if gs.cameraOwner != from {
		log.Printf("[GameState] Camera transfer %s->%s rejected: current owner is %s",
			from, to, gs.cameraOwner)
		return false
	}
	gs.cameraOwner = to
	return true
}

// ForceCameraOwner 无条件设置相机控制权持有者
//
// 仅用于场景初始化和 CloseAllDoors 的硬复位恢复路径。
func (gs *GameState) ForceCameraOwner(owner CameraOwner) {
	gs.cameraOwner = owner
}

// ========== 相机姿态发布 ==========

// PublishCameraPose 发布本帧相机姿态
func (gs *GameState) PublishCameraPose(pose CameraPose) {
	gs.cameraPose = pose
}

// GetCameraPose 读取最近发布的相机姿态
func (gs *GameState) GetCameraPose() CameraPose {
	return gs.cameraPose
}
