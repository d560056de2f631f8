package components

import "github.com/gonewx/luckydoor/pkg/ecs"

// PunchPhase 挥拳阶段
const (
	// PunchPhaseNone 未在挥拳
	PunchPhaseNone = 0

	// PunchPhaseExtend 阶段1: 手部前伸
	PunchPhaseExtend = 1

	// PunchPhaseRetract 阶段2: 手部收回
	PunchPhaseRetract = 2
)

// EquipmentComponent 装备组件
//
// CurrentIndex 为 -1 表示空手。挥拳只允许在空手且未在挥拳时发起，
// 两阶段动画通过手部锚点的 LocalAnimOffset 驱动。
type EquipmentComponent struct {
	// CurrentIndex 当前装备在目录中的索引，-1 = 空手
	CurrentIndex int

	// ItemCatalog 道具目录（场景配置注入，索引与 Equip 参数对应）
	ItemCatalog []string

	// VisualEntity 当前装备的可视实体，InvalidEntity = 无
	VisualEntity ecs.EntityID

	// IsPunching 是否在挥拳动画中
	IsPunching bool

	// PunchPhase 当前挥拳阶段（PunchPhaseExtend / PunchPhaseRetract）
	PunchPhase int

	// PunchElapsed 当前阶段已播放时间（秒）
	PunchElapsed float64
}

// NewEquipmentComponent 创建空手装备组件
func NewEquipmentComponent(catalog []string) *EquipmentComponent {
	return &EquipmentComponent{
		CurrentIndex: -1,
		ItemCatalog:  catalog,
		VisualEntity: ecs.InvalidEntity,
	}
}

// IsEquipped 是否持有装备
func (e *EquipmentComponent) IsEquipped() bool {
	return e.CurrentIndex >= 0
}
