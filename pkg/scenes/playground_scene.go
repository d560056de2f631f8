// Package scenes 装配游乐场场景并驱动两阶段调度循环
package scenes

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/luckydoor/pkg/components"
	"github.com/gonewx/luckydoor/pkg/config"
	"github.com/gonewx/luckydoor/pkg/ecs"
	"github.com/gonewx/luckydoor/pkg/game"
	"github.com/gonewx/luckydoor/pkg/systems"
	"github.com/gonewx/luckydoor/pkg/utils"
)

// PlaygroundSceneID 游乐场场景ID（场景工厂与 R 键重建使用）
const PlaygroundSceneID = "playground"

// PlaygroundScene 游乐场场景
//
// 持有本场景的实体管理器和全部系统，并按固定顺序驱动两个调度阶段：
//
// 帧阶段（每帧一次，dt = 1/60）:
//  1. InputSystem        — 输入快照采样
//  2. RouletteSystem     — 转盘动画
//  3. GameFlowSystem     — 开门演出、倒计时（可能夺取相机）
//  4. CameraRigSystem    — 相机吊臂（持有控制权时才写相机）
//  5. EquipmentSystem    — 装备与挥拳动画
//  6. AttachUpdateSystem — 挂接实体跟随
//
// 固定阶段（累加器驱动，dt = 1/50）:
//  1. PlayerControlSystem — 移动/转身/跳跃/击退/冻结
//  2. PhysicsSystem       — 重力、积分、接触
//
// 流程在吊臂之前推进，保证控制权转移发生在吊臂读取令牌之前，
// 同一帧内不会出现两个写相机的主体。
type PlaygroundScene struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	sceneManager  *game.SceneManager
	tuning        *config.TuningConfig

	inputSystem   *systems.InputSystem
	rouletteSys   *systems.RouletteSystem
	flowSys       *systems.GameFlowSystem
	cameraRigSys  *systems.CameraRigSystem
	equipmentSys  *systems.EquipmentSystem
	attachSys     *systems.AttachUpdateSystem
	playerCtrlSys *systems.PlayerControlSystem
	physicsSys    *systems.PhysicsSystem
	hudRenderSys  *systems.HUDRenderSystem

	playerID ecs.EntityID
	hudID    ecs.EntityID

	// fixedAccumulator 固定阶段时间累加器（秒）
	fixedAccumulator float64
}

// NewPlaygroundScene 装配游乐场场景
//
// input/cursor 可为 nil（无头模式：验证工具与测试不接键鼠）。
// 装配完成后相机控制权归吊臂，角色未冻结，所有门关闭。
func NewPlaygroundScene(
	tuning *config.TuningConfig,
	sceneCfg *config.SceneConfig,
	sceneManager *game.SceneManager,
	input utils.InputProvider,
	cursor utils.CursorController,
) *PlaygroundScene {
	em := ecs.NewEntityManager()
	gs := game.GetGameState()

	s := &PlaygroundScene{
		entityManager: em,
		gameState:     gs,
		sceneManager:  sceneManager,
		tuning:        tuning,
	}

	s.buildEntities(sceneCfg)
	s.buildSystems(sceneCfg, input, cursor)
	s.wireCallbacks()

	// 控制权初始归吊臂（场景重建走硬复位路径，无条件覆盖）
	gs.ForceCameraOwner(game.CameraOwnerRig)

	log.Printf("[PlaygroundScene] 场景装配完成: %d 扇门, %d 件道具",
		s.flowSys.DoorCount(), len(sceneCfg.Items))
	return s
}

// Update 推进一帧（外部驱动器每帧调用一次）
func (s *PlaygroundScene) Update(deltaTime float64) {
	// ===== 帧阶段 =====
	s.inputSystem.Update(deltaTime)
	s.rouletteSys.Update(deltaTime)
	s.flowSys.Update(deltaTime)
	s.cameraRigSys.Update(deltaTime)
	s.equipmentSys.Update(deltaTime)
	s.attachSys.Update(deltaTime)

	s.handleSceneInput()

	// ===== 固定阶段 =====
	s.fixedAccumulator += deltaTime
	steps := 0
	for s.fixedAccumulator >= config.FixedDelta && steps < config.MaxFixedStepsPerFrame {
		s.playerCtrlSys.Update(config.FixedDelta)
		s.physicsSys.Update(config.FixedDelta)
		s.fixedAccumulator -= config.FixedDelta
		steps++
	}
	// 追帧超限时丢弃积压，避免卡顿后的物理雪崩
	if steps == config.MaxFixedStepsPerFrame && s.fixedAccumulator >= config.FixedDelta {
		s.fixedAccumulator = 0
	}

	s.updateStatusLines()

	// 清理已删除实体（永远放在最后）
	s.entityManager.RemoveMarkedEntities()
}

// Draw 绘制一帧
func (s *PlaygroundScene) Draw(screen *ebiten.Image) {
	s.hudRenderSys.Draw(screen)
}

// SaveOnExit 退出时落盘设置与进度统计
func (s *PlaygroundScene) SaveOnExit() bool {
	ok := true
	if sm := s.gameState.GetSettingsManager(); sm != nil {
		if err := sm.Save(); err != nil {
			log.Printf("[PlaygroundScene] 设置保存失败: %v", err)
			ok = false
		}
	}
	if pm := s.gameState.GetProgressManager(); pm != nil {
		if err := pm.Save(); err != nil {
			log.Printf("[PlaygroundScene] 进度保存失败: %v", err)
			ok = false
		}
	}
	return ok
}

// handleSceneInput 场景级指令: 转盘、强制关门、场景重建
func (s *PlaygroundScene) handleSceneInput() {
	input, ok := ecs.GetComponent[*components.InputComponent](s.entityManager, s.playerID)
	if !ok {
		return
	}

	if input.SpinPressed {
		s.rouletteSys.StartSpin()
	}
	if input.ForceClosePressed {
		s.flowSys.ForceCloseDoor()
	}
	if input.ResetPressed {
		// 重建前硬复位，保证控制权/冻结状态不跨场景泄漏
		s.flowSys.CloseAllDoors()
		s.sceneManager.LoadScene(PlaygroundSceneID)
	}
}

// updateStatusLines 刷新 HUD 左上角状态行
func (s *PlaygroundScene) updateStatusLines() {
	hud, ok := ecs.GetComponent[*components.HUDComponent](s.entityManager, s.hudID)
	if !ok {
		return
	}

	mode := "Orbit"
	if s.cameraRigSys.IsFirstPersonMode() {
		mode = "FirstPerson"
	}

	item := "none"
	if equip, ok := ecs.GetComponent[*components.EquipmentComponent](s.entityManager, s.playerID); ok && equip.IsEquipped() {
		item = equip.ItemCatalog[equip.CurrentIndex]
	}

	flowState := "idle"
	switch {
	case s.flowSys.IsProcessing():
		flowState = fmt.Sprintf("opening door %d", s.flowSys.GetCurrentOpenDoorIndex())
	case s.flowSys.IsCountdownActive():
		flowState = fmt.Sprintf("countdown door %d", s.flowSys.GetCurrentOpenDoorIndex())
	}

	hud.StatusLines = []string{
		fmt.Sprintf("camera: %s  flow: %s", mode, flowState),
		fmt.Sprintf("item: %s", item),
		"WASD move / Space jump / wheel zoom / RMB orbit",
		"F spin / E-Q cycle item / LMB punch / C force close / R reset",
	}
}

// GetFlowSystem 返回开门流程系统（验证工具使用）
func (s *PlaygroundScene) GetFlowSystem() *systems.GameFlowSystem {
	return s.flowSys
}

// GetRouletteSystem 返回转盘系统（验证工具使用）
func (s *PlaygroundScene) GetRouletteSystem() *systems.RouletteSystem {
	return s.rouletteSys
}

// GetEntityManager 返回场景实体管理器
func (s *PlaygroundScene) GetEntityManager() *ecs.EntityManager {
	return s.entityManager
}
