package scenes

import (
	"testing"

	"github.com/gonewx/luckydoor/pkg/components"
	"github.com/gonewx/luckydoor/pkg/config"
	"github.com/gonewx/luckydoor/pkg/ecs"
	"github.com/gonewx/luckydoor/pkg/game"
)

// sceneInput 场景测试的脚本化输入源：一次性边沿按需置位
type sceneInput struct {
	spin       bool
	forceClose bool
	equipSlot  int // 槽位+1，0 表示无按键
	unequip    bool
	moveX      float64
	moveZ      float64
}

func (f *sceneInput) Update()                      {}
func (f *sceneInput) MoveAxis() (float64, float64) { return f.moveX, f.moveZ }
func (f *sceneInput) MouseDelta() (float64, float64) {
	return 0, 0
}
func (f *sceneInput) WheelDelta() float64        { return 0 }
func (f *sceneInput) RotateHeld() bool           { return false }
func (f *sceneInput) JumpJustPressed() bool      { return false }
func (f *sceneInput) PunchJustPressed() bool     { return false }
func (f *sceneInput) SpinJustPressed() bool      { v := f.spin; f.spin = false; return v }
func (f *sceneInput) EquipNextJustPressed() bool { return false }
func (f *sceneInput) EquipPrevJustPressed() bool { return false }
func (f *sceneInput) UnequipJustPressed() bool   { v := f.unequip; f.unequip = false; return v }
func (f *sceneInput) EquipSlotJustPressed() int  { v := f.equipSlot; f.equipSlot = 0; return v - 1 }
func (f *sceneInput) ForceCloseJustPressed() bool {
	v := f.forceClose
	f.forceClose = false
	return v
}
func (f *sceneInput) ResetJustPressed() bool { return false }

func newTestScene(t *testing.T, input *sceneInput) *PlaygroundScene {
	t.Helper()
	gs := game.GetGameState()
	prevOwner := gs.CameraController()
	t.Cleanup(func() { gs.ForceCameraOwner(prevOwner) })

	return NewPlaygroundScene(
		config.DefaultTuningConfig(),
		config.DefaultSceneConfig(),
		game.NewSceneManager(),
		input,
		nil,
	)
}

func TestPlaygroundSceneAssembly(t *testing.T) {
	s := newTestScene(t, &sceneInput{})
	em := s.GetEntityManager()

	if got := s.GetFlowSystem().DoorCount(); got != 3 {
		t.Errorf("门数量 = %d, 期望 3", got)
	}
	if n := len(ecs.GetEntitiesWith1[*components.PlayerComponent](em)); n != 1 {
		t.Errorf("角色数量 = %d, 期望 1", n)
	}
	if n := len(ecs.GetEntitiesWith1[*components.CameraRigComponent](em)); n != 1 {
		t.Errorf("相机数量 = %d, 期望 1", n)
	}
	if n := len(ecs.GetEntitiesWith1[*components.RouletteComponent](em)); n != 1 {
		t.Errorf("转盘数量 = %d, 期望 1", n)
	}
	if game.GetGameState().CameraController() != game.CameraOwnerRig {
		t.Error("装配完成后相机控制权应归吊臂")
	}
}

func TestPlaygroundSceneFullDoorCycle(t *testing.T) {
	s := newTestScene(t, &sceneInput{})
	flow := s.GetFlowSystem()

	flow.OpenDoorByRouletteResult(1)
	if !flow.IsProcessing() {
		t.Fatal("请求后应进入演出状态")
	}

	// 演出段: 角色被冻结，吊臂让出相机
	for i := 0; i < 10; i++ {
		s.Update(config.FrameDelta)
	}
	if game.GetGameState().CameraController() != game.CameraOwnerFlow {
		t.Error("演出中相机控制权应归流程")
	}

	// 整个周期: 演出 + 倒计时 + 关门，2000 帧内必然完成
	for i := 0; i < 2000; i++ {
		s.Update(config.FrameDelta)
		if !flow.IsProcessing() && !flow.IsCountdownActive() {
			break
		}
	}
	if flow.IsProcessing() || flow.IsCountdownActive() {
		t.Fatal("完整周期未在 2000 帧内结束")
	}
	if flow.IsDoorOpened(1) {
		t.Error("周期结束后门应已关闭")
	}
	if game.GetGameState().CameraController() != game.CameraOwnerRig {
		t.Error("周期结束后相机控制权应归吊臂")
	}
}

func TestPlaygroundSceneSpinKeyDispatch(t *testing.T) {
	input := &sceneInput{spin: true}
	s := newTestScene(t, input)
	roulette := s.GetRouletteSystem()

	s.Update(config.FrameDelta)
	if !roulette.IsSpinning() {
		t.Fatal("转盘键应启动旋转")
	}

	// 转完为止: 结果一定在合法分区范围内
	spinFrames := int(config.DefaultTuningConfig().Roulette.SpinDuration/config.FrameDelta) + 2
	for i := 0; i < spinFrames; i++ {
		s.Update(config.FrameDelta)
	}
	if roulette.IsSpinning() {
		t.Fatal("旋转未按时结束")
	}
	result := roulette.GetLastResult()
	if result < 1 || result > config.DefaultTuningConfig().Roulette.PartitionCount {
		t.Errorf("结果分区 = %d, 超出范围", result)
	}

	// 落点对应门存在时演出开始，不存在时被拒绝，两者必居其一
	flow := s.GetFlowSystem()
	if result-1 < flow.DoorCount() {
		if !flow.IsProcessing() && !flow.IsCountdownActive() {
			t.Error("落点有门时应启动开门演出")
		}
	} else if flow.IsProcessing() {
		t.Error("落点无门时不应启动演出")
	}
}

func TestPlaygroundSceneDestroyedVisualRemovedAfterFrame(t *testing.T) {
	input := &sceneInput{}
	s := newTestScene(t, input)
	em := s.GetEntityManager()

	playerIDs := ecs.GetEntitiesWith1[*components.PlayerComponent](em)
	if len(playerIDs) != 1 {
		t.Fatalf("角色数量 = %d, 期望 1", len(playerIDs))
	}
	equip, ok := ecs.GetComponent[*components.EquipmentComponent](em, playerIDs[0])
	if !ok {
		t.Fatal("角色缺少装备组件")
	}

	input.equipSlot = 1
	s.Update(config.FrameDelta)
	first := equip.VisualEntity
	if first == ecs.InvalidEntity {
		t.Fatal("装备后应创建可视实体")
	}

	// 换装销毁旧实体，帧末清理后必须真正消亡
	input.equipSlot = 2
	s.Update(config.FrameDelta)
	if equip.VisualEntity == first {
		t.Fatal("换装后应创建新的可视实体")
	}
	if em.IsAlive(first) {
		t.Error("旧可视实体在帧末清理后仍然存活")
	}

	// 收起装备同样在帧末清理
	second := equip.VisualEntity
	input.unequip = true
	s.Update(config.FrameDelta)
	if em.IsAlive(second) {
		t.Error("收起装备后可视实体仍然存活")
	}
}

func TestPlaygroundSceneForceCloseKey(t *testing.T) {
	input := &sceneInput{}
	s := newTestScene(t, input)
	flow := s.GetFlowSystem()

	flow.OpenDoorByRouletteResult(0)
	for i := 0; i < 20; i++ {
		s.Update(config.FrameDelta)
	}

	input.forceClose = true
	s.Update(config.FrameDelta)
	if flow.IsProcessing() {
		t.Error("强制关门键应中止演出")
	}
	if game.GetGameState().CameraController() != game.CameraOwnerRig {
		t.Error("强制关门后相机控制权应归吊臂")
	}
}
