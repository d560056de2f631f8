package entities

import (
	"fmt"

	"github.com/gonewx/luckydoor/pkg/components"
	"github.com/gonewx/luckydoor/pkg/config"
	"github.com/gonewx/luckydoor/pkg/ecs"
)

// NewRouletteEntity 创建转盘实体
//
// 转盘静止在场景配置的位置上，指针初始指向 0 度（一号分区）。
func NewRouletteEntity(em *ecs.EntityManager, slot config.RouletteSlotConfig, tuning config.RouletteTuning) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}

	wheelID := em.CreateEntity()
	em.AddComponent(wheelID, components.NewTransformComponent(slot.Position.ToVec3()))
	em.AddComponent(wheelID, &components.NameComponent{Name: "Roulette"})
	em.AddComponent(wheelID, components.NewRouletteComponent(tuning.PartitionCount, tuning.DecelerationPower))

	return wheelID, nil
}
