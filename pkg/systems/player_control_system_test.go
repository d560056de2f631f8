package systems

import (
	"math"
	"testing"

	"github.com/gonewx/luckydoor/internal/mathutil"
	"github.com/gonewx/luckydoor/pkg/components"
	"github.com/gonewx/luckydoor/pkg/config"
	"github.com/gonewx/luckydoor/pkg/ecs"
	"github.com/gonewx/luckydoor/pkg/game"
)

// playerControlWorld 角色控制测试场景
//
// 只跑控制系统，不跑物理：着地/贴墙状态由测试直接写刚体字段。
// 相机姿态重置为标准环绕姿态（前方 +Z，右方 +X）。
type playerControlWorld struct {
	em     *ecs.EntityManager
	gs     *game.GameState
	sys    *PlayerControlSystem
	tuning config.PlayerTuning

	player    ecs.EntityID
	comp      *components.PlayerComponent
	transform *components.TransformComponent
	body      *components.RigidbodyComponent
	input     *components.InputComponent
}

func newPlayerControlWorld(t *testing.T) *playerControlWorld {
	t.Helper()
	em := ecs.NewEntityManager()
	gs := game.GetGameState()
	gs.PublishCameraPose(game.CameraPose{
		Forward: mathutil.Vec3{0, 0, 1},
		Right:   mathutil.Vec3{1, 0, 0},
	})

	tuning := config.DefaultTuningConfig().Player
	sys := NewPlayerControlSystem(em, gs, tuning)

	player := em.CreateEntity()
	comp := components.NewPlayerComponent()
	transform := components.NewTransformComponent(mathutil.Vec3{})
	body := components.NewRigidbodyComponent()
	body.IsGrounded = true
	input := components.NewInputComponent()
	ecs.AddComponent(em, player, comp)
	ecs.AddComponent(em, player, transform)
	ecs.AddComponent(em, player, body)
	ecs.AddComponent(em, player, input)

	return &playerControlWorld{
		em:        em,
		gs:        gs,
		sys:       sys,
		tuning:    tuning,
		player:    player,
		comp:      comp,
		transform: transform,
		body:      body,
		input:     input,
	}
}

func (w *playerControlWorld) tick(steps int) {
	for i := 0; i < steps; i++ {
		w.sys.Update(config.FixedDelta)
	}
}

func TestPlayerMoveCameraRelative(t *testing.T) {
	t.Run("沿相机前方", func(t *testing.T) {
		w := newPlayerControlWorld(t)
		w.input.MoveZ = 1
		w.tick(1)
		if math.Abs(w.body.Velocity[2]-w.tuning.MoveSpeed) > 1e-9 || w.body.Velocity[0] != 0 {
			t.Errorf("速度 = %v, 期望沿 +Z 为 %f", w.body.Velocity, w.tuning.MoveSpeed)
		}
	})

	t.Run("相机转向后移动方向跟随", func(t *testing.T) {
		w := newPlayerControlWorld(t)
		w.gs.PublishCameraPose(game.CameraPose{
			Forward: mathutil.Vec3{1, 0, 0},
			Right:   mathutil.Vec3{0, 0, -1},
		})
		w.input.MoveZ = 1
		w.tick(1)
		if math.Abs(w.body.Velocity[0]-w.tuning.MoveSpeed) > 1e-9 || math.Abs(w.body.Velocity[2]) > 1e-9 {
			t.Errorf("速度 = %v, 期望沿 +X 为 %f", w.body.Velocity, w.tuning.MoveSpeed)
		}
	})

	t.Run("斜向归一化", func(t *testing.T) {
		w := newPlayerControlWorld(t)
		w.input.MoveX = 1
		w.input.MoveZ = 1
		w.tick(1)
		want := w.tuning.MoveSpeed / math.Sqrt2
		if math.Abs(w.body.Velocity[0]-want) > 1e-9 || math.Abs(w.body.Velocity[2]-want) > 1e-9 {
			t.Errorf("斜向速度 = %v, 期望两轴各 %f", w.body.Velocity, want)
		}
	})

	t.Run("无输入清零水平速度保留垂直", func(t *testing.T) {
		w := newPlayerControlWorld(t)
		w.body.Velocity = mathutil.Vec3{3, -2, 3}
		w.tick(1)
		if w.body.Velocity[0] != 0 || w.body.Velocity[2] != 0 {
			t.Errorf("水平速度 = (%f, %f), 期望清零", w.body.Velocity[0], w.body.Velocity[2])
		}
		if w.body.Velocity[1] != -2 {
			t.Errorf("垂直速度 = %f, 期望保留 -2", w.body.Velocity[1])
		}
	})

	t.Run("无相机姿态退化为世界轴", func(t *testing.T) {
		w := newPlayerControlWorld(t)
		w.gs.PublishCameraPose(game.CameraPose{})
		w.input.MoveZ = 1
		w.tick(1)
		if math.Abs(w.body.Velocity[2]-w.tuning.MoveSpeed) > 1e-9 || w.body.Velocity[0] != 0 {
			t.Errorf("速度 = %v, 期望退化为世界 +Z", w.body.Velocity)
		}
	})
}

func TestPlayerOrbitTurnTowardsMovement(t *testing.T) {
	w := newPlayerControlWorld(t)
	stepDeg := w.tuning.TurnSpeed * config.FixedDelta

	// 向 +X 移动，目标偏航 90，每步匀速转 stepDeg
	w.input.MoveX = 1
	w.tick(1)
	if math.Abs(w.transform.YawDeg()-stepDeg) > 1e-9 {
		t.Errorf("一步后偏航 = %f, 期望 %f", w.transform.YawDeg(), stepDeg)
	}

	w.tick(8)
	if math.Abs(w.transform.YawDeg()-90) > 1e-9 {
		t.Errorf("收敛后偏航 = %f, 期望 90", w.transform.YawDeg())
	}

	// 反向移动走最短路径（0 -> 270 应经过 350 而不是 90）
	w2 := newPlayerControlWorld(t)
	w2.input.MoveX = -1
	w2.tick(1)
	if math.Abs(w2.transform.YawDeg()-(360-stepDeg)) > 1e-9 {
		t.Errorf("反向一步后偏航 = %f, 期望 %f", w2.transform.YawDeg(), 360-stepDeg)
	}
}

func TestPlayerFirstPersonYawLock(t *testing.T) {
	w := newPlayerControlWorld(t)
	stepDeg := w.tuning.TurnSpeed * config.FixedDelta

	// 第一人称视角偏航 180，角色从 0 开始收敛
	w.gs.PublishCameraPose(game.CameraPose{
		Forward:       mathutil.Vec3{0, 0, -1},
		Right:         mathutil.Vec3{-1, 0, 0},
		IsFirstPerson: true,
		FPYawDeg:      180,
	})

	w.tick(1)
	if !w.comp.HasLockedYaw {
		t.Fatal("entering first person should seed the locked yaw")
	}
	if math.Abs(w.comp.LockedYawDeg-stepDeg) > 1e-9 {
		t.Errorf("一步后锁定偏航 = %f, 期望 %f", w.comp.LockedYawDeg, stepDeg)
	}

	// 模拟外力扰动朝向：下一步断言仍从锁定值继续，不读被扰动的朝向
	w.transform.Rotation = mathutil.QuatFromYawDeg(55)
	w.tick(1)
	if math.Abs(w.transform.YawDeg()-2*stepDeg) > 1e-9 {
		t.Errorf("扰动后偏航 = %f, 期望锁定值 %f 获胜", w.transform.YawDeg(), 2*stepDeg)
	}

	// 移动不参与转身：收敛终点是视角偏航 180 而非移动方向
	w.input.MoveX = 1
	w.tick(60)
	if w.comp.LockedYawDeg != 180 {
		t.Errorf("收敛锁定偏航 = %f, 期望 180", w.comp.LockedYawDeg)
	}
	if math.Abs(w.transform.YawDeg()-180) > 1e-9 {
		t.Errorf("收敛朝向 = %f, 期望 180", w.transform.YawDeg())
	}

	// 退出第一人称清除锁，重新进入时用当前朝向重新播种
	w.gs.PublishCameraPose(game.CameraPose{
		Forward: mathutil.Vec3{0, 0, 1},
		Right:   mathutil.Vec3{1, 0, 0},
	})
	w.input.MoveX = 0
	w.tick(1)
	if w.comp.HasLockedYaw {
		t.Error("leaving first person should clear the yaw lock")
	}

	w.transform.Rotation = mathutil.QuatFromYawDeg(45)
	w.gs.PublishCameraPose(game.CameraPose{IsFirstPerson: true, FPYawDeg: 45})
	w.tick(1)
	if w.comp.LockedYawDeg != 45 {
		t.Errorf("重新进入后锁定偏航 = %f, 期望播种 45", w.comp.LockedYawDeg)
	}
}

func TestPlayerFreezeSemantics(t *testing.T) {
	w := newPlayerControlWorld(t)

	w.input.MoveZ = 1
	w.tick(1)
	if w.body.Velocity[2] == 0 {
		t.Fatal("player should be moving before freeze")
	}

	// 空中冻结也立即清零整个速度向量
	w.body.Velocity[1] = -3
	w.sys.Freeze()
	if w.body.Velocity != (mathutil.Vec3{}) {
		t.Errorf("冻结后速度 = %v, 期望立即整体清零", w.body.Velocity)
	}
	if !w.sys.IsFrozen() {
		t.Error("IsFrozen should report true after Freeze")
	}

	// 冻结期间移动与跳跃输入被吞掉，物理写入的垂直速度也每步清零
	w.input.MoveZ = 1
	w.input.JumpPressed = true
	w.body.Velocity[1] = -2
	w.tick(1)
	if w.body.Velocity != (mathutil.Vec3{}) {
		t.Errorf("冻结期间速度 = %v, 期望保持零", w.body.Velocity)
	}
	if w.body.PendingImpulse != (mathutil.Vec3{}) {
		t.Error("冻结期间不应施加跳跃冲量")
	}
	if w.input.JumpPressed {
		t.Error("冻结期间跳跃边沿仍应被消费")
	}

	// 重复冻结为幂等操作
	w.sys.Freeze()
	if !w.sys.IsFrozen() {
		t.Error("double freeze should stay frozen")
	}

	// 解冻后下一步恢复正常输入处理
	w.sys.Unfreeze()
	if w.sys.IsFrozen() {
		t.Error("IsFrozen should report false after Unfreeze")
	}
	w.input.MoveZ = 1
	w.tick(1)
	if math.Abs(w.body.Velocity[2]-w.tuning.MoveSpeed) > 1e-9 {
		t.Errorf("解冻后速度 = %v, 期望恢复 %f", w.body.Velocity, w.tuning.MoveSpeed)
	}
}

func TestPlayerJumpOnlyWhenGrounded(t *testing.T) {
	w := newPlayerControlWorld(t)

	// 着地跳跃：先清零垂直速度再施加向上冲量
	w.body.Velocity[1] = -0.5
	w.input.JumpPressed = true
	w.tick(1)
	if w.body.Velocity[1] != 0 {
		t.Errorf("起跳时垂直速度 = %f, 期望先清零", w.body.Velocity[1])
	}
	if w.body.PendingImpulse != (mathutil.Vec3{0, w.tuning.JumpImpulse, 0}) {
		t.Errorf("跳跃冲量 = %v, 期望 {0 %f 0}", w.body.PendingImpulse, w.tuning.JumpImpulse)
	}

	// 空中按跳：边沿被消费但不产生冲量
	w2 := newPlayerControlWorld(t)
	w2.body.IsGrounded = false
	w2.input.JumpPressed = true
	w2.tick(1)
	if w2.body.PendingImpulse != (mathutil.Vec3{}) {
		t.Error("airborne jump press should not apply an impulse")
	}
	if w2.input.JumpPressed {
		t.Error("jump edge should be consumed even when airborne")
	}
}

func TestPlayerFallGravityScale(t *testing.T) {
	w := newPlayerControlWorld(t)

	// 下落阶段加大重力
	w.body.IsGrounded = false
	w.body.Velocity[1] = -1
	w.tick(1)
	if w.body.ExtraFallGravity != w.tuning.FallGravityScale {
		t.Errorf("下落重力倍率 = %f, 期望 %f", w.body.ExtraFallGravity, w.tuning.FallGravityScale)
	}

	// 落地恢复标准重力
	w.body.IsGrounded = true
	w.tick(1)
	if w.body.ExtraFallGravity != 1 {
		t.Errorf("落地后重力倍率 = %f, 期望 1", w.body.ExtraFallGravity)
	}

	// 上升阶段用标准重力
	w.body.IsGrounded = false
	w.body.Velocity[1] = 2
	w.tick(1)
	if w.body.ExtraFallGravity != 1 {
		t.Errorf("上升阶段重力倍率 = %f, 期望 1", w.body.ExtraFallGravity)
	}
}

func TestPlayerKnockbackOnNewWallContact(t *testing.T) {
	w := newPlayerControlWorld(t)

	// 新接触触发击退，速度沿墙面法线
	w.body.WallContact = true
	w.body.WallNormal = mathutil.Vec3{-1, 0, 0}
	w.input.MoveX = 1
	w.tick(1)
	if math.Abs(w.body.Velocity[0]-(-w.tuning.KnockbackSpeed)) > 1e-9 {
		t.Fatalf("击退速度 = %f, 期望 %f", w.body.Velocity[0], -w.tuning.KnockbackSpeed)
	}
	if w.comp.KnockbackRemaining <= 0 {
		t.Fatal("knockback timer should be running")
	}

	// 击退期间移动输入被忽略，持续接触不重复触发
	w.input.MoveX = 0
	w.input.MoveZ = 1
	w.tick(12)
	if math.Abs(w.body.Velocity[0]-(-w.tuning.KnockbackSpeed)) > 1e-9 {
		t.Errorf("击退中速度 = %v, 期望仍为击退速度", w.body.Velocity)
	}

	// 计时耗尽后恢复正常控制，即使仍贴着墙
	w.tick(1)
	if math.Abs(w.body.Velocity[2]-w.tuning.MoveSpeed) > 1e-9 || w.body.Velocity[0] != 0 {
		t.Errorf("击退结束后速度 = %v, 期望恢复移动", w.body.Velocity)
	}

	// 脱离再接触产生新的上升沿，重新触发
	w.body.WallContact = false
	w.tick(1)
	w.body.WallContact = true
	w.tick(1)
	if w.comp.KnockbackRemaining <= 0 {
		t.Error("re-contact after release should trigger a new knockback")
	}
}

// TestPlayerJumpIntegration 控制+物理联动：完整跳跃弧线
func TestPlayerJumpIntegration(t *testing.T) {
	em := ecs.NewEntityManager()
	gs := game.GetGameState()
	gs.PublishCameraPose(game.CameraPose{
		Forward: mathutil.Vec3{0, 0, 1},
		Right:   mathutil.Vec3{1, 0, 0},
	})

	physics := NewPhysicsSystem(em)
	control := NewPlayerControlSystem(em, gs, config.DefaultTuningConfig().Player)

	floor := em.CreateEntity()
	ecs.AddComponent(em, floor, components.NewTransformComponent(mathutil.Vec3{0, -0.5, 0}))
	ecs.AddComponent(em, floor, components.NewColliderComponent(mathutil.Vec3{10, 0.25, 10}, config.TagFloor, true))

	player := em.CreateEntity()
	ecs.AddComponent(em, player, components.NewPlayerComponent())
	ecs.AddComponent(em, player, components.NewTransformComponent(mathutil.Vec3{}))
	body := components.NewRigidbodyComponent()
	ecs.AddComponent(em, player, body)
	ecs.AddComponent(em, player, components.NewColliderComponent(mathutil.Vec3{0.3, 0.9, 0.3}, config.TagPlayer, false))
	input := components.NewInputComponent()
	ecs.AddComponent(em, player, input)

	step := func() {
		control.Update(config.FixedDelta)
		physics.Update(config.FixedDelta)
	}

	for i := 0; i < 10; i++ {
		step()
	}
	if !body.IsGrounded {
		t.Fatal("player should settle on the floor")
	}

	input.JumpPressed = true
	step()
	if body.IsGrounded {
		t.Fatal("player should leave ground on jump")
	}
	if body.Velocity[1] <= 0 {
		t.Fatalf("起跳后垂直速度 = %f, 期望向上", body.Velocity[1])
	}

	// 弧线顶点后下落重力加大，直至落地
	landed := false
	for i := 0; i < 300; i++ {
		step()
		if body.IsGrounded {
			landed = true
			break
		}
	}
	if !landed {
		t.Fatal("没有在模拟步数内落地")
	}

	transform, _ := ecs.GetComponent[*components.TransformComponent](em, player)
	if math.Abs(transform.Position[1]) > 1e-9 {
		t.Errorf("落地高度 = %f, 期望 0", transform.Position[1])
	}

	// 落地后的下一个控制步恢复标准重力
	step()
	if body.ExtraFallGravity != 1 {
		t.Errorf("落地后重力倍率 = %f, 期望复位 1", body.ExtraFallGravity)
	}
}
