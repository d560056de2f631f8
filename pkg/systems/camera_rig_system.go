package systems

import (
	"log"

	"github.com/gonewx/luckydoor/internal/mathutil"
	"github.com/gonewx/luckydoor/pkg/components"
	"github.com/gonewx/luckydoor/pkg/config"
	"github.com/gonewx/luckydoor/pkg/ecs"
	"github.com/gonewx/luckydoor/pkg/game"
	"github.com/gonewx/luckydoor/pkg/utils"
)

// CameraRigSystem 相机吊臂系统
//
// 每个渲染帧推进一次：滚轮改目标距离，距离平滑后重新判定模式，
// 模式沿触发切换动作（光标锁定、角度接力），再按模式结算相机
// 姿态并发布快照。只有持有相机控制权（Rig）时才会写相机实体，
// 演出期间（Flow 持有）本系统整帧静默。
//
// 模式判定：平滑距离 <= minDistance + firstPersonThreshold 即第一人称。
type CameraRigSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	tuning        config.CameraTuning
	cursor        utils.CursorController

	// 缺相机/缺目标只告警一次，避免每帧刷屏
	loggedNoCamera bool
	loggedNoTarget bool
}

// NewCameraRigSystem 创建相机吊臂系统
func NewCameraRigSystem(em *ecs.EntityManager, gs *game.GameState, tuning config.CameraTuning, cursor utils.CursorController) *CameraRigSystem {
	return &CameraRigSystem{
		entityManager: em,
		gameState:     gs,
		tuning:        tuning,
		cursor:        cursor,
	}
}

// Update 推进一帧
func (s *CameraRigSystem) Update(deltaTime float64) {
	camIDs := ecs.GetEntitiesWith2[
		*components.CameraRigComponent,
		*components.TransformComponent,
	](s.entityManager)
	if len(camIDs) == 0 {
		if !s.loggedNoCamera {
			log.Printf("[CameraRigSystem] 错误: 找不到相机实体，系统保持静默")
			s.loggedNoCamera = true
		}
		return
	}

	rig, _ := ecs.GetComponent[*components.CameraRigComponent](s.entityManager, camIDs[0])
	camTransform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, camIDs[0])

	targetTransform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, rig.Target)
	if !ok {
		if !s.loggedNoTarget {
			log.Printf("[CameraRigSystem] 错误: 跟踪目标 %d 不存在，系统保持静默", rig.Target)
			s.loggedNoTarget = true
		}
		return
	}

	// 控制权在演出手里时不写相机，也不消费输入
	if s.gameState.CameraController() != game.CameraOwnerRig {
		return
	}

	// 输入快照挂在跟踪目标上，缺失时按零输入退化
	input, hasInput := ecs.GetComponent[*components.InputComponent](s.entityManager, rig.Target)
	if !hasInput {
		input = components.NewInputComponent()
	}

	s.updateDistance(rig, input, deltaTime)
	s.updateMode(rig)
	s.updateAngles(rig, input, deltaTime)
	s.applyPose(rig, camTransform, targetTransform)
	s.publishPose(rig, camTransform)
}

// updateDistance 滚轮调目标距离并平滑当前距离
func (s *CameraRigSystem) updateDistance(rig *components.CameraRigComponent, input *components.InputComponent, dt float64) {
	if input.WheelDelta != 0 {
		rig.TargetDistance = mathutil.Clamp(
			rig.TargetDistance-input.WheelDelta*s.tuning.WheelZoomStep,
			s.tuning.MinDistance, s.tuning.MaxDistance,
		)
	}
	k := mathutil.SmoothFactor(s.tuning.DistanceSmoothTime, dt)
	rig.CurrentDistance += (rig.TargetDistance - rig.CurrentDistance) * k
}

// updateMode 按平滑距离重判模式，模式沿执行切换动作
func (s *CameraRigSystem) updateMode(rig *components.CameraRigComponent) {
	newMode := components.CameraModeOrbit
	if rig.CurrentDistance <= s.tuning.MinDistance+s.tuning.FirstPersonThreshold {
		newMode = components.CameraModeFirstPerson
	}
	if newMode == rig.Mode {
		return
	}

	switch newMode {
	case components.CameraModeFirstPerson:
		// 偏航接力保持视线方向，俯仰归零平视
		rig.FPYaw = mathutil.NormalizeAngleDeg(rig.OrbitYaw)
		rig.FPPitch = 0
		if s.cursor != nil {
			s.cursor.SetLocked(true)
		}
		log.Printf("[CameraRigSystem] 切换到第一人称 (距离 %.2f)", rig.CurrentDistance)

	case components.CameraModeOrbit:
		// 偏航接力保持视线方向，俯仰回到默认机位
		rig.OrbitYaw = mathutil.NormalizeAngleDeg(rig.FPYaw)
		rig.TargetOrbitYaw = rig.OrbitYaw
		rig.OrbitPitch = s.tuning.OrbitDefaultVertical
		rig.TargetOrbitPitch = s.tuning.OrbitDefaultVertical
		if s.cursor != nil {
			s.cursor.SetLocked(false)
		}
		log.Printf("[CameraRigSystem] 切换到环绕模式 (距离 %.2f)", rig.CurrentDistance)
	}

	rig.Mode = newMode
}

// updateAngles 消费视角输入并平滑角度
func (s *CameraRigSystem) updateAngles(rig *components.CameraRigComponent, input *components.InputComponent, dt float64) {
	sensitivity := 1.0
	invertY := false
	if settings := s.gameState.GetSettingsManager(); settings != nil {
		sensitivity = settings.GetSettings().MouseSensitivity
		invertY = settings.GetSettings().InvertY
	}

	switch rig.Mode {
	case components.CameraModeFirstPerson:
		dy := input.MouseDY
		if invertY {
			dy = -dy
		}
		rig.FPYaw = mathutil.NormalizeAngleDeg(rig.FPYaw + input.MouseDX*s.tuning.FPLookSpeed*sensitivity)
		rig.FPPitch = mathutil.Clamp(
			rig.FPPitch-dy*s.tuning.FPLookSpeed*sensitivity,
			s.tuning.FPMinVertical, s.tuning.FPMaxVertical,
		)

	case components.CameraModeOrbit:
		if input.RotateHeld {
			rig.TargetOrbitYaw = mathutil.NormalizeAngleDeg(rig.TargetOrbitYaw + input.MouseDX*s.tuning.OrbitSpeed*sensitivity)
			rig.TargetOrbitPitch = mathutil.Clamp(
				rig.TargetOrbitPitch-input.MouseDY*s.tuning.OrbitSpeed*sensitivity,
				s.tuning.OrbitMinVertical, s.tuning.OrbitMaxVertical,
			)
		}
		k := mathutil.SmoothFactor(s.tuning.RotationSmoothTime, dt)
		rig.OrbitYaw = mathutil.LerpAngleDeg(rig.OrbitYaw, rig.TargetOrbitYaw, k)
		rig.OrbitPitch += (rig.TargetOrbitPitch - rig.OrbitPitch) * k
	}
}

// applyPose 按模式结算相机姿态
//
// 环绕：相机挂在注视点外的球面上（OrbitPitch 是仰角，正值在上方俯视）。
// 第一人称：相机锁在头部，朝向直接来自视角角度。
func (s *CameraRigSystem) applyPose(
	rig *components.CameraRigComponent,
	camTransform *components.TransformComponent,
	targetTransform *components.TransformComponent,
) {
	switch rig.Mode {
	case components.CameraModeFirstPerson:
		head := targetTransform.Position.Add(mathutil.Vec3{0, s.tuning.HeadHeight, 0})
		camTransform.Position = head
		camTransform.Rotation = mathutil.QuatFromYawPitchDeg(rig.FPYaw, rig.FPPitch)

	case components.CameraModeOrbit:
		focus := targetTransform.Position.Add(mathutil.Vec3{0, s.tuning.TargetHeight, 0})
		forward := mathutil.DirFromYawPitchDeg(rig.OrbitYaw, -rig.OrbitPitch)
		camTransform.Position = focus.Sub(forward.Scale(rig.CurrentDistance))
		camTransform.Rotation = mathutil.QuatFromYawPitchDeg(rig.OrbitYaw, -rig.OrbitPitch)
	}
}

// publishPose 发布相机姿态快照供角色控制读取
func (s *CameraRigSystem) publishPose(rig *components.CameraRigComponent, camTransform *components.TransformComponent) {
	forward := mathutil.QuatForward(camTransform.Rotation).Flatten().Normalize()
	right := mathutil.Vec3{0, 1, 0}.Cross(forward)

	s.gameState.PublishCameraPose(game.CameraPose{
		Position:      camTransform.Position,
		Forward:       forward,
		Right:         right,
		IsFirstPerson: rig.Mode == components.CameraModeFirstPerson,
		FPYawDeg:      rig.FPYaw,
	})
}

// IsFirstPersonMode 当前是否第一人称（找不到相机时视为否）
func (s *CameraRigSystem) IsFirstPersonMode() bool {
	camIDs := ecs.GetEntitiesWith1[*components.CameraRigComponent](s.entityManager)
	if len(camIDs) == 0 {
		return false
	}
	rig, _ := ecs.GetComponent[*components.CameraRigComponent](s.entityManager, camIDs[0])
	return rig.Mode == components.CameraModeFirstPerson
}
