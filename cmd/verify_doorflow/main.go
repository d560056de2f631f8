// verify_doorflow 无头验证开门演出全流程
//
// 用脚本输入驱动完整场景：触发转盘旋转，逐帧跟踪开门演出的
// 步骤切换与相机控制权流转，再演练倒计时强制关门和整体复位。
//
// 用法:
//
//	go run ./cmd/verify_doorflow -verbose
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gonewx/luckydoor/pkg/components"
	"github.com/gonewx/luckydoor/pkg/config"
	"github.com/gonewx/luckydoor/pkg/ecs"
	"github.com/gonewx/luckydoor/pkg/game"
	"github.com/gonewx/luckydoor/pkg/scenes"
)

// scriptInput 脚本输入源：按帧号注入按键边沿
type scriptInput struct {
	frame   int
	spinAt  map[int]bool
	forceAt map[int]bool
	resetAt map[int]bool
}

func (s *scriptInput) Update()                        { s.frame++ }
func (s *scriptInput) MoveAxis() (float64, float64)   { return 0, 0 }
func (s *scriptInput) MouseDelta() (float64, float64) { return 0, 0 }
func (s *scriptInput) WheelDelta() float64            { return 0 }
func (s *scriptInput) RotateHeld() bool               { return false }
func (s *scriptInput) JumpJustPressed() bool          { return false }
func (s *scriptInput) PunchJustPressed() bool         { return false }
func (s *scriptInput) SpinJustPressed() bool          { return s.spinAt[s.frame] }
func (s *scriptInput) EquipNextJustPressed() bool     { return false }
func (s *scriptInput) EquipPrevJustPressed() bool     { return false }
func (s *scriptInput) UnequipJustPressed() bool       { return false }
func (s *scriptInput) EquipSlotJustPressed() int      { return -1 }
func (s *scriptInput) ForceCloseJustPressed() bool    { return s.forceAt[s.frame] }
func (s *scriptInput) ResetJustPressed() bool         { return s.resetAt[s.frame] }

// scriptCursor 无头环境下的光标控制空实现
type scriptCursor struct{ locked bool }

func (c *scriptCursor) SetLocked(locked bool) { c.locked = locked }
func (c *scriptCursor) IsLocked() bool        { return c.locked }

var stepNames = map[int]string{
	components.FlowStepNone:             "None",
	components.FlowStepSaveCamera:       "SaveCamera",
	components.FlowStepMoveCameraToDoor: "MoveCameraToDoor",
	components.FlowStepOpenDoor:         "OpenDoor",
	components.FlowStepHold:             "Hold",
	components.FlowStepRestoreCamera:    "RestoreCamera",
	components.FlowStepCloseDoor:        "CloseDoor",
}

var ownerNames = map[game.CameraOwner]string{
	game.CameraOwnerNone: "None",
	game.CameraOwnerRig:  "Rig",
	game.CameraOwnerFlow: "Flow",
}

func main() {
	verbose := false
	for _, arg := range os.Args[1:] {
		if arg == "-verbose" || arg == "--verbose" {
			verbose = true
		}
	}
	if !verbose {
		log.SetOutput(io.Discard)
	}

	tuning := config.DefaultTuningConfig()
	sceneCfg := config.DefaultSceneConfig()

	input := &scriptInput{
		spinAt:  map[int]bool{5: true},
		forceAt: map[int]bool{},
		resetAt: map[int]bool{},
	}
	sceneManager := game.NewSceneManager()
	scene := scenes.NewPlaygroundScene(tuning, sceneCfg, sceneManager, input, &scriptCursor{})
	sceneManager.SwitchTo(scene)

	flow := scene.GetFlowSystem()
	roulette := scene.GetRouletteSystem()
	gs := game.GetGameState()

	em := scene.GetEntityManager()
	flowComp := findFlowComponent(em)
	if flowComp == nil {
		fmt.Println("场景缺少流程实体")
		os.Exit(1)
	}

	fmt.Println("=== 阶段 1: 转盘 -> 开门演出 ===")
	lastStep := flowComp.Step
	lastOwner := gs.CameraController()
	opened := false
	spinHandled := false
	maxFrames := int(60 * (tuning.Roulette.SpinDuration + 30))
	for frame := 0; frame < maxFrames; frame++ {
		scene.Update(config.FrameDelta)

		// 转盘落点超出门数时会被流程拒绝，改为直接指定 0 号门继续跟踪
		if !spinHandled && roulette.GetLastResult() > 0 && !roulette.IsSpinning() {
			spinHandled = true
			fmt.Printf("  帧 %4d: 转盘落在分区 %d\n", frame, roulette.GetLastResult())
			if !flow.IsProcessing() {
				fmt.Println("  落点超出门数被拒绝, 改开 0 号门")
				flow.OpenDoorByRouletteResult(0)
			}
		}

		if flowComp.Step != lastStep {
			fmt.Printf("  帧 %4d: 步骤 %s -> %s (相机 %s)\n",
				frame, stepNames[lastStep], stepNames[flowComp.Step], ownerNames[gs.CameraController()])
			lastStep = flowComp.Step
		}
		if owner := gs.CameraController(); owner != lastOwner {
			fmt.Printf("  帧 %4d: 相机控制权 %s -> %s\n", frame, ownerNames[lastOwner], ownerNames[owner])
			lastOwner = owner
		}
		if !opened && flow.GetCurrentOpenDoorIndex() >= 0 && flowComp.IsCountdownActive {
			opened = true
			fmt.Printf("  帧 %4d: 门 %d 已开, 转盘结果分区 %d, 倒计时启动\n",
				frame, flow.GetCurrentOpenDoorIndex(), roulette.GetLastResult())
			// 倒计时过半时脚本注入强制关门键
			input.forceAt[input.frame+int(tuning.Flow.CountdownTime*30)] = true
		}
		if opened && !flow.IsProcessing() && !flowComp.IsCountdownActive {
			fmt.Printf("  帧 %4d: 强制关门完成, 相机 %s\n", frame, ownerNames[gs.CameraController()])
			break
		}
	}

	if !opened {
		fmt.Println("失败: 演出未完成")
		os.Exit(1)
	}
	if flow.IsProcessing() || flowComp.IsCountdownActive {
		fmt.Println("失败: 强制关门未收敛")
		os.Exit(1)
	}
	if gs.CameraController() != game.CameraOwnerRig {
		fmt.Println("失败: 相机控制权未交还给跟随相机")
		os.Exit(1)
	}

	fmt.Println("=== 阶段 2: 整体复位 ===")
	flow.CloseAllDoors()
	allClosed := true
	for i := 0; i < flow.DoorCount(); i++ {
		if flow.IsDoorOpened(i) {
			allClosed = false
		}
	}
	if !allClosed || gs.CameraController() != game.CameraOwnerRig {
		fmt.Println("失败: 复位后状态异常")
		os.Exit(1)
	}
	fmt.Printf("复位完成: %d 扇门全部关闭, 相机 %s\n", flow.DoorCount(), ownerNames[gs.CameraController()])
	fmt.Println("结果: 流程正常")
}

func findFlowComponent(em *ecs.EntityManager) *components.GameFlowComponent {
	for _, id := range ecs.GetEntitiesWith1[*components.GameFlowComponent](em) {
		comp, _ := ecs.GetComponent[*components.GameFlowComponent](em, id)
		return comp
	}
	return nil
}
