package systems

import (
	"fmt"
	"log"
	"math"

	"github.com/gonewx/luckydoor/internal/mathutil"
	"github.com/gonewx/luckydoor/pkg/components"
	"github.com/gonewx/luckydoor/pkg/config"
	"github.com/gonewx/luckydoor/pkg/ecs"
	"github.com/gonewx/luckydoor/pkg/game"
	"github.com/gonewx/luckydoor/pkg/utils"
)

// GameFlowSystem 开门流程系统
//
// 顶层编排器：转盘结果换算门索引后从这里入口。一次开门演出
// 依次执行 保存相机→接管控制权并冻结角色→相机飞向门前→开门→
// 停留→相机飞回→交还控制权并解冻，恢复完成后门记为打开，
// 独立倒计时开始，归零时门自动摆回。
//
// 再入保护：IsProcessing 或 IsCountdownActive 期间新的开门请求
// 一律拒绝，同一时刻最多一扇门在演出或倒计时。
//
// 所有多帧动作都是可恢复任务（飞行、摆门、倒计时都只存
// 已播放时间），每帧推进一次，ForceCloseDoor/CloseAllDoors
// 可以在任意帧边界打断并执行补偿清理。
type GameFlowSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	tuning        config.FlowTuning
	playerControl *PlayerControlSystem

	onDoorOpened       func(index int)
	onDoorClosed       func(index int)
	onSequenceRejected func(reason string)
}

// NewGameFlowSystem 创建开门流程系统
//
// playerControl 用于演出期间冻结/解冻角色，可为 nil（纯流程测试）。
func NewGameFlowSystem(em *ecs.EntityManager, gs *game.GameState, tuning config.FlowTuning, playerControl *PlayerControlSystem) *GameFlowSystem {
	return &GameFlowSystem{
		entityManager: em,
		gameState:     gs,
		tuning:        tuning,
		playerControl: playerControl,
	}
}

// ========== 回调注册 ==========

// SetOnDoorOpened 注册开门完成回调（相机恢复、控制权交还之后触发）
func (s *GameFlowSystem) SetOnDoorOpened(callback func(index int)) {
	s.onDoorOpened = callback
}

// SetOnDoorClosed 注册关门完成回调
func (s *GameFlowSystem) SetOnDoorClosed(callback func(index int)) {
	s.onDoorClosed = callback
}

// SetOnSequenceRejected 注册请求被拒回调（参数为拒绝原因）
func (s *GameFlowSystem) SetOnSequenceRejected(callback func(reason string)) {
	s.onSequenceRejected = callback
}

// ========== 流程入口 ==========

// OpenDoorByRouletteResult 发起一次开门演出
//
// 演出或倒计时进行中、索引越界、目标门已打开时拒绝并记日志，
// 状态不变。场景把转盘分区号 p 换算成门索引 p-1 后调用这里。
func (s *GameFlowSystem) OpenDoorByRouletteResult(index int) {
	flow := s.flow()
	if flow == nil {
		return
	}

	switch {
	case flow.IsProcessing:
		s.reject(fmt.Sprintf("开门演出进行中，拒绝门 %d 的请求", index))
		return
	case flow.IsCountdownActive:
		s.reject(fmt.Sprintf("倒计时进行中，拒绝门 %d 的请求", index))
		return
	}

	door, _ := s.doorByIndex(index)
	if door == nil {
		s.reject(fmt.Sprintf("门索引 %d 越界", index))
		return
	}
	if door.IsOpened {
		s.reject(fmt.Sprintf("门 %d (%s) 已处于打开状态", index, door.Name))
		return
	}

	flow.IsProcessing = true
	flow.CurrentDoorIndex = index
	flow.Step = components.FlowStepSaveCamera
	flow.StepElapsed = 0
	log.Printf("[GameFlowSystem] 开门演出开始: 门 %d (%s)", index, door.Name)
}

// Update 推进一帧流程
func (s *GameFlowSystem) Update(deltaTime float64) {
	flow := s.flow()
	if flow == nil {
		return
	}

	switch flow.Step {
	case components.FlowStepSaveCamera:
		s.executeSaveCamera(flow)
	case components.FlowStepMoveCameraToDoor:
		s.updateCameraFlight(flow, deltaTime, s.startDoorOpening)
	case components.FlowStepOpenDoor:
		s.updateDoorSwing(flow, deltaTime)
	case components.FlowStepHold:
		s.updateHold(flow, deltaTime)
	case components.FlowStepRestoreCamera:
		s.updateCameraFlight(flow, deltaTime, s.finishRestore)
	case components.FlowStepCloseDoor:
		s.updateDoorSwing(flow, deltaTime)
	}

	// 倒计时独立于步骤机推进：恢复完成后 IsProcessing 已清零，
	// 相机和角色都已恢复正常游玩，只有这里还在计时
	if flow.IsCountdownActive && flow.Step == components.FlowStepNone {
		s.updateCountdown(flow, deltaTime)
	}
}

// ========== 步骤执行 ==========

// executeSaveCamera 步骤1: 快照相机姿态，接管控制权，冻结角色
//
// 控制权夺取失败（持有者不是吊臂）说明场景状态异常，
// 演出中止，已置位的标志回滚。
func (s *GameFlowSystem) executeSaveCamera(flow *components.GameFlowComponent) {
	camID, camTransform := s.camera()
	door, _ := s.doorByIndex(flow.CurrentDoorIndex)
	if camID == ecs.InvalidEntity || door == nil {
		log.Printf("[GameFlowSystem] 错误: 相机或门缺失，演出中止")
		s.resetFlow(flow)
		return
	}

	if !s.gameState.TryTransferCamera(game.CameraOwnerRig, game.CameraOwnerFlow) {
		log.Printf("[GameFlowSystem] 相机控制权夺取失败，演出中止")
		s.resetFlow(flow)
		return
	}

	flow.Snapshot = components.CameraSnapshot{
		Saved:    true,
		Position: camTransform.Position,
		Rotation: camTransform.Rotation,
	}

	if s.playerControl != nil {
		s.playerControl.Freeze()
	}

	vantagePos, vantageRot := s.doorVantage(door)
	flow.Flight = components.CameraFlightTask{
		Active:   true,
		FromPos:  camTransform.Position,
		FromRot:  camTransform.Rotation,
		ToPos:    vantagePos,
		ToRot:    vantageRot,
		Duration: s.tuning.CameraMoveTime,
	}
	flow.Step = components.FlowStepMoveCameraToDoor
}

// updateCameraFlight 推进相机飞行任务，到站后执行 onArrive
//
// 去程和回程共用：位置缓出插值 + 姿态球面插值，
// 完成时精确落到终点姿态（回程即快照的位级原值）。
func (s *GameFlowSystem) updateCameraFlight(flow *components.GameFlowComponent, dt float64, onArrive func(*components.GameFlowComponent)) {
	_, camTransform := s.camera()
	if camTransform == nil || !flow.Flight.Active {
		log.Printf("[GameFlowSystem] 错误: 飞行中相机丢失，演出中止")
		s.abortProcessing(flow)
		return
	}

	task := &flow.Flight
	task.Elapsed += dt
	if task.Elapsed >= task.Duration {
		camTransform.Position = task.ToPos
		camTransform.Rotation = task.ToRot
		task.Active = false
		onArrive(flow)
		return
	}

	eased := utils.EaseOutCubic(task.Elapsed / task.Duration)
	camTransform.Position = task.FromPos.Lerp(task.ToPos, eased)
	camTransform.Rotation = mathutil.QuatSlerp(task.FromRot, task.ToRot, eased)
}

// startDoorOpening 步骤3入口: 相机就位，门板开始摆开
func (s *GameFlowSystem) startDoorOpening(flow *components.GameFlowComponent) {
	door, _ := s.doorByIndex(flow.CurrentDoorIndex)
	if door == nil {
		s.abortProcessing(flow)
		return
	}
	s.startSwing(door, door.ClosedYawDeg, door.OpenedYawDeg(), true)
	flow.Step = components.FlowStepOpenDoor
}

// updateDoorSwing 推进门板摆动（开门和关门共用）
func (s *GameFlowSystem) updateDoorSwing(flow *components.GameFlowComponent, dt float64) {
	door, _ := s.doorByIndex(flow.CurrentDoorIndex)
	if door == nil {
		s.abortProcessing(flow)
		return
	}
	swing, hinge := s.hingeSwing(door)
	if swing == nil || hinge == nil {
		log.Printf("[GameFlowSystem] 错误: 门 %d 铰链丢失，演出中止", flow.CurrentDoorIndex)
		s.abortProcessing(flow)
		return
	}

	swing.Elapsed += dt
	if swing.Elapsed >= swing.Duration {
		// 摆动到位：角度精确落到目标值，不残留插值误差
		hinge.Rotation = mathutil.QuatFromYawDeg(swing.ToYawDeg)
		swing.Active = false

		if swing.Opening {
			flow.Step = components.FlowStepHold
			flow.StepElapsed = 0
		} else {
			s.finishClose(flow, door)
		}
		return
	}

	t := utils.EaseInOutCubic(swing.Elapsed / swing.Duration)
	yaw := swing.FromYawDeg + (swing.ToYawDeg-swing.FromYawDeg)*t
	hinge.Rotation = mathutil.QuatFromYawDeg(yaw)
}

// updateHold 步骤4: 机位停留展示
func (s *GameFlowSystem) updateHold(flow *components.GameFlowComponent, dt float64) {
	flow.StepElapsed += dt
	if flow.StepElapsed < s.tuning.CameraFocusTime {
		return
	}

	_, camTransform := s.camera()
	if camTransform == nil {
		s.abortProcessing(flow)
		return
	}
	flow.Flight = components.CameraFlightTask{
		Active:   true,
		FromPos:  camTransform.Position,
		FromRot:  camTransform.Rotation,
		ToPos:    flow.Snapshot.Position,
		ToRot:    flow.Snapshot.Rotation,
		Duration: s.tuning.CameraMoveTime,
	}
	flow.Step = components.FlowStepRestoreCamera
}

// finishRestore 步骤5收尾: 交还控制权、解冻、门记为打开、倒计时开始
func (s *GameFlowSystem) finishRestore(flow *components.GameFlowComponent) {
	// 飞行终点就是快照值，这里再按快照原值覆写一次，
	// 保证恢复位级精确，不受插值路径影响
	_, camTransform := s.camera()
	if camTransform != nil && flow.Snapshot.Saved {
		camTransform.Position = flow.Snapshot.Position
		camTransform.Rotation = flow.Snapshot.Rotation
	}
	flow.Snapshot.Saved = false
	s.gameState.TryTransferCamera(game.CameraOwnerFlow, game.CameraOwnerRig)

	if s.playerControl != nil {
		s.playerControl.Unfreeze()
	}

	door, _ := s.doorByIndex(flow.CurrentDoorIndex)
	if door != nil {
		door.IsOpened = true
	}
	flow.IsProcessing = false
	flow.Step = components.FlowStepNone

	s.gameState.GetProgressManager().RecordDoorOpened()
	log.Printf("[GameFlowSystem] 门 %d 已打开，倒计时 %.0f 秒", flow.CurrentDoorIndex, s.tuning.CountdownTime)
	if s.onDoorOpened != nil {
		s.onDoorOpened(flow.CurrentDoorIndex)
	}

	s.startCountdown(flow)
}

// startCountdown 启动关门倒计时并刷新 HUD
func (s *GameFlowSystem) startCountdown(flow *components.GameFlowComponent) {
	flow.IsCountdownActive = true
	flow.CountdownRemaining = s.tuning.CountdownTime
	flow.CountdownDisplay = int(math.Ceil(flow.CountdownRemaining))
	s.setCountdownText(flow.CountdownDisplay)
}

// updateCountdown 整秒递减显示，归零后门板摆回
func (s *GameFlowSystem) updateCountdown(flow *components.GameFlowComponent, dt float64) {
	flow.CountdownRemaining -= dt
	if flow.CountdownRemaining <= 0 {
		s.hideCountdownText()
		s.beginClosing(flow)
		return
	}

	display := int(math.Ceil(flow.CountdownRemaining))
	if display != flow.CountdownDisplay {
		flow.CountdownDisplay = display
		s.setCountdownText(display)
	}
}

// beginClosing 启动关门摆动
//
// 铰链丢失时放弃动画，直接按终态收尾，保证标志一定被清理。
func (s *GameFlowSystem) beginClosing(flow *components.GameFlowComponent) {
	door, _ := s.doorByIndex(flow.CurrentDoorIndex)
	if door == nil {
		s.resetFlow(flow)
		return
	}
	if swing, hinge := s.hingeSwing(door); swing == nil || hinge == nil {
		s.finishClose(flow, door)
		return
	}
	s.startSwing(door, door.OpenedYawDeg(), door.ClosedYawDeg, false)
	flow.Step = components.FlowStepCloseDoor
}

// finishClose 关门收尾: 清标志、回调
//
// 此刻铰链角度已精确回到 ClosedYawDeg 的二进制原值。
func (s *GameFlowSystem) finishClose(flow *components.GameFlowComponent, door *components.DoorComponent) {
	door.IsOpened = false
	index := flow.CurrentDoorIndex
	flow.IsCountdownActive = false
	flow.CurrentDoorIndex = -1
	flow.Step = components.FlowStepNone

	log.Printf("[GameFlowSystem] 门 %d (%s) 已关闭", index, door.Name)
	if s.onDoorClosed != nil {
		s.onDoorClosed(index)
	}
}

// ========== 取消与硬复位 ==========

// ForceCloseDoor 立即中止演出并关门
//
// 在任意步骤打断：取消进行中的飞行，相机按快照原值恢复，
// 控制权交还，角色解冻，倒计时隐藏，然后只播关门摆动。
// 没有进行中的门时为空操作。
func (s *GameFlowSystem) ForceCloseDoor() {
	flow := s.flow()
	if flow == nil {
		return
	}
	if flow.CurrentDoorIndex < 0 {
		log.Printf("[GameFlowSystem] ForceCloseDoor: 没有进行中的门，忽略")
		return
	}

	log.Printf("[GameFlowSystem] 强制关门: 门 %d (步骤 %d)", flow.CurrentDoorIndex, flow.Step)
	s.cancelSeizure(flow)
	s.hideCountdownText()
	flow.IsProcessing = false

	door, _ := s.doorByIndex(flow.CurrentDoorIndex)
	if door == nil {
		s.resetFlow(flow)
		return
	}

	swing, hinge := s.hingeSwing(door)
	if swing == nil || hinge == nil {
		s.finishClose(flow, door)
		return
	}

	// 从铰链当前角度摆回，已关紧的门直接收尾
	currentYaw := door.ClosedYawDeg + mathutil.AngleDeltaDeg(door.ClosedYawDeg, hinge.YawDeg())
	if !swing.Active && !door.IsOpened && currentYaw == door.ClosedYawDeg {
		s.finishClose(flow, door)
		return
	}
	s.startSwing(door, currentYaw, door.ClosedYawDeg, false)

	// 关门摆动期间继续挡住新的开门请求
	flow.IsCountdownActive = true
	flow.Step = components.FlowStepCloseDoor
}

// CloseAllDoors 硬复位
//
// 所有门的铰链直接置到关门角原值、打开标志清零，流程标志
// 全部复位，相机按快照恢复后控制权无条件归还吊臂，角色解冻。
// 用于从任何被打断的演出状态中防御性恢复（场景重建走这里）。
func (s *GameFlowSystem) CloseAllDoors() {
	flow := s.flow()
	if flow == nil {
		return
	}

	log.Printf("[GameFlowSystem] 硬复位: 关闭所有门")
	s.cancelSeizure(flow)
	s.hideCountdownText()

	for _, id := range ecs.GetEntitiesWith1[*components.DoorComponent](s.entityManager) {
		door, _ := ecs.GetComponent[*components.DoorComponent](s.entityManager, id)
		door.IsOpened = false
		swing, hinge := s.hingeSwing(door)
		if swing != nil {
			swing.Active = false
		}
		if hinge != nil {
			hinge.Rotation = mathutil.QuatFromYawDeg(door.ClosedYawDeg)
		}
	}

	s.gameState.ForceCameraOwner(game.CameraOwnerRig)
	s.resetFlow(flow)
}

// cancelSeizure 补偿清理: 取消飞行、恢复相机、交还控制权、解冻
func (s *GameFlowSystem) cancelSeizure(flow *components.GameFlowComponent) {
	flow.Flight.Active = false

	if flow.Snapshot.Saved {
		if _, camTransform := s.camera(); camTransform != nil {
			camTransform.Position = flow.Snapshot.Position
			camTransform.Rotation = flow.Snapshot.Rotation
		}
		flow.Snapshot.Saved = false
		s.gameState.TryTransferCamera(game.CameraOwnerFlow, game.CameraOwnerRig)
	}

	if s.playerControl != nil {
		s.playerControl.Unfreeze()
	}
}

// abortProcessing 演出中途协作者丢失时的中止路径
func (s *GameFlowSystem) abortProcessing(flow *components.GameFlowComponent) {
	s.cancelSeizure(flow)
	s.hideCountdownText()
	s.resetFlow(flow)
}

// resetFlow 清空全部流程标志
func (s *GameFlowSystem) resetFlow(flow *components.GameFlowComponent) {
	flow.IsProcessing = false
	flow.IsCountdownActive = false
	flow.CurrentDoorIndex = -1
	flow.Step = components.FlowStepNone
	flow.StepElapsed = 0
	flow.Flight.Active = false
}

// ========== 查询接口 ==========

// IsProcessing 演出段是否进行中
func (s *GameFlowSystem) IsProcessing() bool {
	flow := s.flow()
	return flow != nil && flow.IsProcessing
}

// IsCountdownActive 倒计时（含关门摆动）是否进行中
func (s *GameFlowSystem) IsCountdownActive() bool {
	flow := s.flow()
	return flow != nil && flow.IsCountdownActive
}

// GetCurrentOpenDoorIndex 当前演出/倒计时的门索引，-1 = 无
func (s *GameFlowSystem) GetCurrentOpenDoorIndex() int {
	flow := s.flow()
	if flow == nil {
		return -1
	}
	return flow.CurrentDoorIndex
}

// IsDoorOpened 指定门是否处于打开状态（索引越界返回 false）
func (s *GameFlowSystem) IsDoorOpened(index int) bool {
	door, _ := s.doorByIndex(index)
	return door != nil && door.IsOpened
}

// DoorCount 注册进流程的门数量
func (s *GameFlowSystem) DoorCount() int {
	return len(ecs.GetEntitiesWith1[*components.DoorComponent](s.entityManager))
}

// ========== 内部工具 ==========

// flow 取流程组件（场景恰好装配一个）
func (s *GameFlowSystem) flow() *components.GameFlowComponent {
	for _, id := range ecs.GetEntitiesWith1[*components.GameFlowComponent](s.entityManager) {
		flow, _ := ecs.GetComponent[*components.GameFlowComponent](s.entityManager, id)
		return flow
	}
	return nil
}

// camera 取相机实体及其姿态
func (s *GameFlowSystem) camera() (ecs.EntityID, *components.TransformComponent) {
	ids := ecs.GetEntitiesWith2[
		*components.CameraRigComponent,
		*components.TransformComponent,
	](s.entityManager)
	if len(ids) == 0 {
		return ecs.InvalidEntity, nil
	}
	transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, ids[0])
	return ids[0], transform
}

// doorByIndex 按索引找门，未找到返回 nil
func (s *GameFlowSystem) doorByIndex(index int) (*components.DoorComponent, ecs.EntityID) {
	if index < 0 {
		return nil, ecs.InvalidEntity
	}
	for _, id := range ecs.GetEntitiesWith1[*components.DoorComponent](s.entityManager) {
		door, _ := ecs.GetComponent[*components.DoorComponent](s.entityManager, id)
		if door.Index == index {
			return door, id
		}
	}
	return nil, ecs.InvalidEntity
}

// hingeSwing 取门铰链上的摆动任务和姿态组件
func (s *GameFlowSystem) hingeSwing(door *components.DoorComponent) (*components.DoorSwingComponent, *components.TransformComponent) {
	swing, ok1 := ecs.GetComponent[*components.DoorSwingComponent](s.entityManager, door.Hinge)
	hinge, ok2 := ecs.GetComponent[*components.TransformComponent](s.entityManager, door.Hinge)
	if !ok1 || !ok2 {
		return nil, nil
	}
	return swing, hinge
}

// startSwing 在门铰链上启动一次摆动任务
func (s *GameFlowSystem) startSwing(door *components.DoorComponent, fromYaw, toYaw float64, opening bool) {
	swing, _ := s.hingeSwing(door)
	if swing == nil {
		return
	}
	*swing = components.DoorSwingComponent{
		Active:     true,
		FromYawDeg: fromYaw,
		ToYawDeg:   toYaw,
		Duration:   1.0 / s.tuning.DoorOpenSpeed,
		Opening:    opening,
	}
}

// doorVantage 计算门前机位姿态
//
// 机位 = 注视点 + 门面朝方向 × 机位距离，高度强制为
// 注视点高度 + 高度偏移，朝向为看向注视点。
func (s *GameFlowSystem) doorVantage(door *components.DoorComponent) (mathutil.Vec3, mathutil.Quat) {
	targetPos := mathutil.Vec3{}
	if target, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, door.CameraTarget); ok {
		targetPos = target.Position
	}

	vantage := targetPos.Add(door.Facing.Scale(s.tuning.CameraDistance))
	vantage[1] = targetPos[1] + s.tuning.HeightOffset

	lookDir := targetPos.Sub(vantage).Normalize()
	return vantage, mathutil.QuatLookDir(lookDir)
}

// setCountdownText 刷新 HUD 倒计时文本
func (s *GameFlowSystem) setCountdownText(seconds int) {
	for _, id := range ecs.GetEntitiesWith1[*components.HUDComponent](s.entityManager) {
		hud, _ := ecs.GetComponent[*components.HUDComponent](s.entityManager, id)
		// HUD 走调试字模，只支持 ASCII
		hud.SetCountdown(fmt.Sprintf("DOOR CLOSES IN %d", seconds))
	}
}

// hideCountdownText 隐藏 HUD 倒计时
func (s *GameFlowSystem) hideCountdownText() {
	for _, id := range ecs.GetEntitiesWith1[*components.HUDComponent](s.entityManager) {
		hud, _ := ecs.GetComponent[*components.HUDComponent](s.entityManager, id)
		hud.HideCountdown()
	}
}

// 拒绝请求: 记日志并通知订阅方
func (s *GameFlowSystem) reject(reason string) {
	log.Printf("[GameFlowSystem] 请求被拒: %s", reason)
	if s.onSequenceRejected != nil {
		s.onSequenceRejected(reason)
	}
}
