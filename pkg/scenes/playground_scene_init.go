package scenes

import (
	"fmt"
	"log"

	"github.com/gonewx/luckydoor/pkg/components"
	"github.com/gonewx/luckydoor/pkg/config"
	"github.com/gonewx/luckydoor/pkg/ecs"
	"github.com/gonewx/luckydoor/pkg/entities"
	"github.com/gonewx/luckydoor/pkg/systems"
	"github.com/gonewx/luckydoor/pkg/utils"
)

// buildEntities 按场景配置装配全部实体
//
// 装配顺序保证父实体ID小于子实体（挂接更新按ID升序结算）。
// 单扇门装配失败只排除那扇门，场景其余部分照常运行。
func (s *PlaygroundScene) buildEntities(sceneCfg *config.SceneConfig) {
	em := s.entityManager

	if _, err := entities.NewArenaEntities(em, sceneCfg.Arena); err != nil {
		log.Printf("[PlaygroundScene] 场地装配失败: %v", err)
	}

	playerID, err := entities.NewPlayerEntity(em, sceneCfg.PlayerSpawn.ToVec3(), sceneCfg.Items)
	if err != nil {
		log.Printf("[PlaygroundScene] 角色装配失败: %v", err)
	}
	s.playerID = playerID

	if _, err := entities.NewCameraEntity(em, playerID, s.tuning.Camera); err != nil {
		log.Printf("[PlaygroundScene] 相机装配失败: %v", err)
	}

	index := 0
	for _, slot := range sceneCfg.Doors {
		if _, err := entities.NewDoorEntity(em, index, slot, s.tuning.Flow); err != nil {
			// 工厂已记录细节，流程把缺门的索引当越界拒绝
			continue
		}
		index++
	}

	if _, err := entities.NewRouletteEntity(em, sceneCfg.Roulette, s.tuning.Roulette); err != nil {
		log.Printf("[PlaygroundScene] 转盘装配失败: %v", err)
	}

	hudID, _ := entities.NewHUDEntity(em)
	s.hudID = hudID
	if _, err := entities.NewGameFlowEntity(em); err != nil {
		log.Printf("[PlaygroundScene] 流程状态装配失败: %v", err)
	}
}

// buildSystems 创建全部系统
func (s *PlaygroundScene) buildSystems(sceneCfg *config.SceneConfig, input utils.InputProvider, cursor utils.CursorController) {
	em := s.entityManager
	gs := s.gameState

	s.inputSystem = systems.NewInputSystem(em, input)
	s.rouletteSys = systems.NewRouletteSystem(em, gs, s.tuning.Roulette, nil)
	s.playerCtrlSys = systems.NewPlayerControlSystem(em, gs, s.tuning.Player)
	s.flowSys = systems.NewGameFlowSystem(em, gs, s.tuning.Flow, s.playerCtrlSys)
	s.cameraRigSys = systems.NewCameraRigSystem(em, gs, s.tuning.Camera, cursor)
	s.equipmentSys = systems.NewEquipmentSystem(em, s.tuning.Equipment)
	s.attachSys = systems.NewAttachUpdateSystem(em)
	s.physicsSys = systems.NewPhysicsSystem(em)
	s.hudRenderSys = systems.NewHUDRenderSystem(em, gs, sceneCfg.Arena)
}

// wireCallbacks 接线跨系统通知
//
// 转盘分区号 p 对应门索引 p-1；分区数可以多于门数，
// 落在没有门的分区上由流程按越界拒绝。
func (s *PlaygroundScene) wireCallbacks() {
	s.rouletteSys.SetOnSpinComplete(func(partition int) {
		s.setResultText(partitionResultText(partition))
		s.flowSys.OpenDoorByRouletteResult(partition - 1)
	})

	s.flowSys.SetOnDoorOpened(func(index int) {
		log.Printf("[PlaygroundScene] 门 %d 开门演出完成", index)
	})
	s.flowSys.SetOnDoorClosed(func(index int) {
		s.hideResultText()
	})
	s.flowSys.SetOnSequenceRejected(func(reason string) {
		log.Printf("[PlaygroundScene] 开门请求被拒: %s", reason)
	})
}

// setResultText 显示转盘结果提示
func (s *PlaygroundScene) setResultText(text string) {
	if hud, ok := ecs.GetComponent[*components.HUDComponent](s.entityManager, s.hudID); ok {
		hud.SetResult(text)
	}
}

// hideResultText 隐藏转盘结果提示
func (s *PlaygroundScene) hideResultText() {
	if hud, ok := ecs.GetComponent[*components.HUDComponent](s.entityManager, s.hudID); ok {
		hud.HideResult()
	}
}

// partitionResultText 转盘结果的 HUD 文案（调试字模只支持 ASCII）
func partitionResultText(partition int) string {
	return fmt.Sprintf("ROULETTE: SECTOR %d -> DOOR %d", partition, partition-1)
}
