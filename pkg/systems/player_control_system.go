package systems

import (
	"log"
	"math"

	"github.com/gonewx/luckydoor/internal/mathutil"
	"github.com/gonewx/luckydoor/pkg/components"
	"github.com/gonewx/luckydoor/pkg/config"
	"github.com/gonewx/luckydoor/pkg/ecs"
	"github.com/gonewx/luckydoor/pkg/game"
)

// PlayerControlSystem 角色控制系统
//
// 每个物理步推进一次，按发布的相机姿态把输入轴换算成水平速度，
// 并按相机模式决定转身策略：环绕模式朝移动方向匀速转身，
// 第一人称模式锁定偏航并每步无条件写回，物理永远不会漂移朝向。
//
// 冻结由开门流程触发：冻结期间整个速度向量每步清零，移动/转身/
// 跳跃全部跳过（空中被冻结即悬停），第一人称朝向锁照常生效。
type PlayerControlSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	tuning        config.PlayerTuning
}

// NewPlayerControlSystem 创建角色控制系统
func NewPlayerControlSystem(em *ecs.EntityManager, gs *game.GameState, tuning config.PlayerTuning) *PlayerControlSystem {
	return &PlayerControlSystem{
		entityManager: em,
		gameState:     gs,
		tuning:        tuning,
	}
}

// Update 推进一个物理步
func (s *PlayerControlSystem) Update(deltaTime float64) {
	pose := s.gameState.GetCameraPose()

	ids := ecs.GetEntitiesWith3[
		*components.PlayerComponent,
		*components.TransformComponent,
		*components.RigidbodyComponent,
	](s.entityManager)

	for _, id := range ids {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		body, _ := ecs.GetComponent[*components.RigidbodyComponent](s.entityManager, id)

		// 输入快照缺失时按零输入退化
		input, hasInput := ecs.GetComponent[*components.InputComponent](s.entityManager, id)
		if !hasInput {
			input = components.NewInputComponent()
		}

		// 粘滞跳跃边沿每个物理步消费一次，冻结或击退中照样吞掉
		jumpRequested := input.JumpPressed
		input.JumpPressed = false

		s.updateRotationLock(player, transform, pose, deltaTime)
		s.updateFallGravity(body)

		wallRisingEdge := body.WallContact && !player.WasWallContact
		player.WasWallContact = body.WallContact

		if player.IsFrozen {
			body.Velocity = mathutil.Vec3{}
			continue
		}

		// 新的贴墙接触触发击退；击退进行中忽略后续接触
		if wallRisingEdge && player.KnockbackRemaining <= 0 {
			dir := body.WallNormal.Flatten().Normalize()
			if dir.Len() > 0 {
				player.KnockbackDir = dir
				player.KnockbackRemaining = s.tuning.KnockbackDuration
				log.Printf("[PlayerControlSystem] 撞墙击退，方向 (%.0f, %.0f)", dir[0], dir[2])
			}
		}

		if player.KnockbackRemaining > 0 {
			player.KnockbackRemaining -= deltaTime
			body.Velocity[0] = player.KnockbackDir[0] * s.tuning.KnockbackSpeed
			body.Velocity[2] = player.KnockbackDir[2] * s.tuning.KnockbackSpeed
			continue
		}

		moveDir := s.moveDirection(input, pose)
		body.Velocity[0] = moveDir[0] * s.tuning.MoveSpeed
		body.Velocity[2] = moveDir[2] * s.tuning.MoveSpeed

		// 环绕模式下朝移动方向匀速转身
		if !pose.IsFirstPerson && moveDir.Len() > 0 {
			targetYaw := mathutil.Rad2Deg(math.Atan2(moveDir[0], moveDir[2]))
			yaw := mathutil.MoveTowardsAngleDeg(transform.YawDeg(), targetYaw, s.tuning.TurnSpeed*deltaTime)
			transform.Rotation = mathutil.QuatFromYawDeg(yaw)
		}

		if jumpRequested && body.IsGrounded {
			body.Velocity[1] = 0
			body.AddImpulse(mathutil.Vec3{0, s.tuning.JumpImpulse, 0})
		}
	}
}

// updateRotationLock 维护第一人称朝向锁
//
// 进入第一人称那一帧用当前朝向播种，此后每步向发布的视角偏航
// 匀速收敛并无条件写回。冻结不豁免：朝向锁是相机契约。
func (s *PlayerControlSystem) updateRotationLock(
	player *components.PlayerComponent,
	transform *components.TransformComponent,
	pose game.CameraPose,
	dt float64,
) {
	if !pose.IsFirstPerson {
		player.HasLockedYaw = false
		return
	}

	if !player.HasLockedYaw {
		player.LockedYawDeg = transform.YawDeg()
		player.HasLockedYaw = true
	}
	player.LockedYawDeg = mathutil.MoveTowardsAngleDeg(player.LockedYawDeg, pose.FPYawDeg, s.tuning.TurnSpeed*dt)
	transform.Rotation = mathutil.QuatFromYawDeg(player.LockedYawDeg)
}

// updateFallGravity 下落阶段加大重力，落地恢复标准重力
func (s *PlayerControlSystem) updateFallGravity(body *components.RigidbodyComponent) {
	if body.IsGrounded {
		body.ExtraFallGravity = 1
	} else if body.Velocity[1] < 0 {
		body.ExtraFallGravity = s.tuning.FallGravityScale
	}
}

// moveDirection 把输入轴映射到相机水平基上并归一化
//
// 相机姿态尚未发布时退化为世界轴。
func (s *PlayerControlSystem) moveDirection(input *components.InputComponent, pose game.CameraPose) mathutil.Vec3 {
	if input.MoveX == 0 && input.MoveZ == 0 {
		return mathutil.Vec3{}
	}

	forward := pose.Forward
	right := pose.Right
	if forward.Len() == 0 {
		forward = mathutil.Vec3{0, 0, 1}
		right = mathutil.Vec3{1, 0, 0}
	}

	move := right.Scale(input.MoveX).Add(forward.Scale(input.MoveZ))
	return move.Flatten().Normalize()
}

// ========== 冻结控制（开门流程调用） ==========

// Freeze 冻结全部角色：立即清零整个速度向量，后续输入被忽略
//
// 重复冻结为幂等操作。
func (s *PlayerControlSystem) Freeze() {
	ids := ecs.GetEntitiesWith2[
		*components.PlayerComponent,
		*components.RigidbodyComponent,
	](s.entityManager)
	for _, id := range ids {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		body, _ := ecs.GetComponent[*components.RigidbodyComponent](s.entityManager, id)
		if player.IsFrozen {
			continue
		}
		player.IsFrozen = true
		body.Velocity = mathutil.Vec3{}
		body.PendingImpulse = mathutil.Vec3{}
	}
	log.Printf("[PlayerControlSystem] 角色已冻结")
}

// Unfreeze 解除冻结，下个物理步起恢复正常输入处理
func (s *PlayerControlSystem) Unfreeze() {
	ids := ecs.GetEntitiesWith1[*components.PlayerComponent](s.entityManager)
	for _, id := range ids {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		player.IsFrozen = false
	}
	log.Printf("[PlayerControlSystem] 角色已解冻")
}

// IsFrozen 是否存在处于冻结状态的角色
func (s *PlayerControlSystem) IsFrozen() bool {
	ids := ecs.GetEntitiesWith1[*components.PlayerComponent](s.entityManager)
	for _, id := range ids {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		if player.IsFrozen {
			return true
		}
	}
	return false
}
