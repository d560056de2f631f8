package systems

import (
	"log"

	"github.com/gonewx/luckydoor/internal/mathutil"
	"github.com/gonewx/luckydoor/pkg/components"
	"github.com/gonewx/luckydoor/pkg/config"
	"github.com/gonewx/luckydoor/pkg/ecs"
	"github.com/gonewx/luckydoor/pkg/utils"
)

// EquipmentSystem 装备与挥拳系统
//
// 帧阶段推进。装备状态机只有两个状态：空手（CurrentIndex=-1）
// 和持有目录中某件道具。切换装备时销毁旧的可视实体，在手部
// 锚点下挂接新的可视实体。
//
// 挥拳只允许空手发起，两阶段动画（前伸、收回）各占总时长一半，
// 通过手部锚点挂接组件的 LocalAnimOffset 沿局部前方驱动。
// 动画途中手部锚点失效则立即中止并复位挥拳状态。
type EquipmentSystem struct {
	entityManager *ecs.EntityManager
	tuning        config.EquipmentTuning
}

// NewEquipmentSystem 创建装备系统
func NewEquipmentSystem(em *ecs.EntityManager, tuning config.EquipmentTuning) *EquipmentSystem {
	return &EquipmentSystem{
		entityManager: em,
		tuning:        tuning,
	}
}

// Update 处理本帧装备输入并推进挥拳动画
func (s *EquipmentSystem) Update(deltaTime float64) {
	ids := ecs.GetEntitiesWith2[
		*components.EquipmentComponent,
		*components.PlayerComponent,
	](s.entityManager)

	for _, id := range ids {
		equip, _ := ecs.GetComponent[*components.EquipmentComponent](s.entityManager, id)
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)

		if input, ok := ecs.GetComponent[*components.InputComponent](s.entityManager, id); ok {
			s.handleInput(equip, player, input)
		}

		if equip.IsPunching {
			s.advancePunch(equip, player, deltaTime)
		}
	}
}

// handleInput 响应本帧的装备相关边沿输入
func (s *EquipmentSystem) handleInput(
	equip *components.EquipmentComponent,
	player *components.PlayerComponent,
	input *components.InputComponent,
) {
	if input.EquipSlotPressed >= 0 {
		s.equipOn(equip, player, input.EquipSlotPressed)
	}
	if input.EquipNextPressed {
		s.equipNextOn(equip, player)
	}
	if input.EquipPrevPressed {
		s.equipPrevOn(equip, player)
	}
	if input.UnequipPressed {
		s.unequipOn(equip)
	}
	if input.PunchPressed {
		s.startPunchOn(equip, player)
	}
}

// ========== 装备操作 ==========

// Equip 装备目录中指定索引的道具
//
// 索引越界时记录诊断并保持原状。
func (s *EquipmentSystem) Equip(index int) {
	for _, id := range s.holders() {
		equip, _ := ecs.GetComponent[*components.EquipmentComponent](s.entityManager, id)
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		s.equipOn(equip, player, index)
	}
}

// Unequip 收起当前装备，回到空手
func (s *EquipmentSystem) Unequip() {
	for _, id := range s.holders() {
		equip, _ := ecs.GetComponent[*components.EquipmentComponent](s.entityManager, id)
		s.unequipOn(equip)
	}
}

// EquipNext 循环切换到下一件装备（空手时切到第一件）
func (s *EquipmentSystem) EquipNext() {
	for _, id := range s.holders() {
		equip, _ := ecs.GetComponent[*components.EquipmentComponent](s.entityManager, id)
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		s.equipNextOn(equip, player)
	}
}

// EquipPrevious 循环切换到上一件装备（空手时切到最后一件）
func (s *EquipmentSystem) EquipPrevious() {
	for _, id := range s.holders() {
		equip, _ := ecs.GetComponent[*components.EquipmentComponent](s.entityManager, id)
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		s.equipPrevOn(equip, player)
	}
}

// StartPunch 空手状态下发起挥拳
//
// 持有装备或已在挥拳中时忽略。
func (s *EquipmentSystem) StartPunch() {
	for _, id := range s.holders() {
		equip, _ := ecs.GetComponent[*components.EquipmentComponent](s.entityManager, id)
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		s.startPunchOn(equip, player)
	}
}

func (s *EquipmentSystem) holders() []ecs.EntityID {
	return ecs.GetEntitiesWith2[
		*components.EquipmentComponent,
		*components.PlayerComponent,
	](s.entityManager)
}

func (s *EquipmentSystem) equipOn(
	equip *components.EquipmentComponent,
	player *components.PlayerComponent,
	index int,
) {
	if index < 0 || index >= len(equip.ItemCatalog) {
		log.Printf("[EquipmentSystem] 装备索引越界: %d, 目录共 %d 件", index, len(equip.ItemCatalog))
		return
	}
	if !s.anchorAlive(player) {
		log.Printf("[EquipmentSystem] 手部锚点缺失，无法装备 %s", equip.ItemCatalog[index])
		return
	}

	if equip.VisualEntity != ecs.InvalidEntity {
		s.entityManager.DestroyEntity(equip.VisualEntity)
	}

	visual := s.entityManager.CreateEntity()
	s.entityManager.AddComponent(visual, components.NewTransformComponent(mathutil.Vec3{}))
	s.entityManager.AddComponent(visual, &components.NameComponent{Name: equip.ItemCatalog[index]})
	s.entityManager.AddComponent(visual, &components.AttachComponent{
		Parent:          player.HandAnchor,
		InheritRotation: true,
	})

	equip.VisualEntity = visual
	equip.CurrentIndex = index
	log.Printf("[EquipmentSystem] 装备 %s (槽位 %d)", equip.ItemCatalog[index], index)
}

func (s *EquipmentSystem) unequipOn(equip *components.EquipmentComponent) {
	if !equip.IsEquipped() {
		return
	}
	if equip.VisualEntity != ecs.InvalidEntity {
		s.entityManager.DestroyEntity(equip.VisualEntity)
		equip.VisualEntity = ecs.InvalidEntity
	}
	equip.CurrentIndex = -1
	log.Printf("[EquipmentSystem] 收起装备")
}

func (s *EquipmentSystem) equipNextOn(
	equip *components.EquipmentComponent,
	player *components.PlayerComponent,
) {
	n := len(equip.ItemCatalog)
	if n == 0 {
		return
	}
	s.equipOn(equip, player, (equip.CurrentIndex+1)%n)
}

func (s *EquipmentSystem) equipPrevOn(
	equip *components.EquipmentComponent,
	player *components.PlayerComponent,
) {
	n := len(equip.ItemCatalog)
	if n == 0 {
		return
	}
	prev := n - 1
	if equip.CurrentIndex >= 0 {
		prev = (equip.CurrentIndex - 1 + n) % n
	}
	s.equipOn(equip, player, prev)
}

// ========== 挥拳 ==========

func (s *EquipmentSystem) startPunchOn(
	equip *components.EquipmentComponent,
	player *components.PlayerComponent,
) {
	if equip.IsEquipped() || equip.IsPunching {
		return
	}
	if !s.anchorAlive(player) {
		log.Printf("[EquipmentSystem] 手部锚点缺失，无法挥拳")
		return
	}

	equip.IsPunching = true
	equip.PunchPhase = components.PunchPhaseExtend
	equip.PunchElapsed = 0
}

// advancePunch 推进两阶段挥拳动画
//
// 前伸与收回各占 PunchDuration 的一半，均使用二次方缓出，
// 收回完成时把动画偏移精确归零。
func (s *EquipmentSystem) advancePunch(
	equip *components.EquipmentComponent,
	player *components.PlayerComponent,
	deltaTime float64,
) {
	attach := s.anchorAttach(player)
	if attach == nil {
		log.Printf("[EquipmentSystem] 手部锚点丢失，挥拳中止")
		equip.IsPunching = false
		equip.PunchPhase = components.PunchPhaseNone
		equip.PunchElapsed = 0
		return
	}

	half := s.tuning.PunchDuration / 2
	equip.PunchElapsed += deltaTime

	if equip.PunchPhase == components.PunchPhaseExtend && equip.PunchElapsed >= half {
		equip.PunchPhase = components.PunchPhaseRetract
		equip.PunchElapsed -= half
	}
	if equip.PunchPhase == components.PunchPhaseRetract && equip.PunchElapsed >= half {
		equip.IsPunching = false
		equip.PunchPhase = components.PunchPhaseNone
		equip.PunchElapsed = 0
		attach.LocalAnimOffset = mathutil.Vec3{}
		return
	}

	eased := utils.EaseOutQuad(equip.PunchElapsed / half)
	offset := eased * s.tuning.PunchReach
	if equip.PunchPhase == components.PunchPhaseRetract {
		offset = (1 - eased) * s.tuning.PunchReach
	}
	attach.LocalAnimOffset = mathutil.Vec3{0, 0, offset}
}

// anchorAlive 手部锚点实体是否可用
func (s *EquipmentSystem) anchorAlive(player *components.PlayerComponent) bool {
	return s.anchorAttach(player) != nil
}

// anchorAttach 返回手部锚点的挂接组件，锚点失效时返回 nil
func (s *EquipmentSystem) anchorAttach(player *components.PlayerComponent) *components.AttachComponent {
	if player.HandAnchor == ecs.InvalidEntity || !s.entityManager.IsAlive(player.HandAnchor) {
		return nil
	}
	attach, ok := ecs.GetComponent[*components.AttachComponent](s.entityManager, player.HandAnchor)
	if !ok {
		return nil
	}
	return attach
}
