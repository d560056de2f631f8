package systems

import (
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/luckydoor/internal/mathutil"
	"github.com/gonewx/luckydoor/pkg/components"
	"github.com/gonewx/luckydoor/pkg/config"
	"github.com/gonewx/luckydoor/pkg/ecs"
	"github.com/gonewx/luckydoor/pkg/game"
	"github.com/gonewx/luckydoor/pkg/utils"
)

// RouletteSystem 转盘系统
//
// 帧阶段推进指针旋转动画。旋转总角度 = 随机整圈数×360 + 随机落点，
// 用幂次缓出曲线在固定时长内播完，完成时把角度规范化到 [0,360)
// 并换算分区号，通过回调通知订阅方（开门流程据此选门）。
//
// 旋转中再次发起会被拒绝。随机源从外部注入，场景按时间播种，
// 测试注入固定种子即可复现整条结果序列。
type RouletteSystem struct {
	entityManager  *ecs.EntityManager
	gameState      *game.GameState
	tuning         config.RouletteTuning
	rng            *rand.Rand
	onSpinComplete func(partition int)
}

// NewRouletteSystem 创建转盘系统
//
// rng 为 nil 时按当前时间播种。
func NewRouletteSystem(em *ecs.EntityManager, gs *game.GameState, tuning config.RouletteTuning, rng *rand.Rand) *RouletteSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RouletteSystem{
		entityManager: em,
		gameState:     gs,
		tuning:        tuning,
		rng:           rng,
	}
}

// SetOnSpinComplete 注册旋转完成回调，参数为落点分区号
func (s *RouletteSystem) SetOnSpinComplete(callback func(partition int)) {
	s.onSpinComplete = callback
}

// Update 推进旋转动画
func (s *RouletteSystem) Update(deltaTime float64) {
	for _, id := range s.roulettes() {
		comp, _ := ecs.GetComponent[*components.RouletteComponent](s.entityManager, id)
		if comp.State != components.RouletteStateSpinning {
			continue
		}

		comp.Elapsed += deltaTime
		if comp.Elapsed >= comp.Duration {
			s.finishSpin(comp)
			continue
		}

		t := comp.Elapsed / comp.Duration
		eased := utils.EaseOutPower(t, comp.DecelerationPower)
		comp.CurrentAngle = comp.StartAngle + comp.TotalRotation*eased
	}
}

// StartSpin 发起一次旋转
//
// 旋转进行中重复发起被拒绝并记日志。
func (s *RouletteSystem) StartSpin() {
	for _, id := range s.roulettes() {
		comp, _ := ecs.GetComponent[*components.RouletteComponent](s.entityManager, id)
		if comp.State == components.RouletteStateSpinning {
			log.Printf("[RouletteSystem] 旋转进行中，忽略重复请求")
			continue
		}

		settle := s.rng.Float64() * 360
		turns := s.tuning.MinSpins + s.rng.Intn(s.tuning.MaxSpins-s.tuning.MinSpins+1)

		comp.StartAngle = comp.CurrentAngle
		comp.TotalRotation = float64(turns)*360 + settle
		comp.Elapsed = 0
		comp.Duration = s.tuning.SpinDuration
		comp.State = components.RouletteStateSpinning
		log.Printf("[RouletteSystem] 开始旋转: %d 圈 + %.1f 度, 时长 %.1f 秒", turns, settle, comp.Duration)
	}
}

// finishSpin 结算旋转：落点角度精确取自起点+总转角，不经过缓动乘法
func (s *RouletteSystem) finishSpin(comp *components.RouletteComponent) {
	comp.CurrentAngle = mathutil.NormalizeAngleDeg(comp.StartAngle + comp.TotalRotation)
	comp.Elapsed = 0
	comp.State = components.RouletteStateIdle

	partition := partitionForAngle(comp, comp.CurrentAngle)
	comp.LastResult = partition
	comp.SpinCount++

	// 进度只记内存，持久化检查点在开门时机
	s.gameState.GetProgressManager().RecordSpin(partition, comp.PartitionCount)

	log.Printf("[RouletteSystem] 指针落在分区 %d (角度 %.1f)", partition, comp.CurrentAngle)
	if s.onSpinComplete != nil {
		s.onSpinComplete(partition)
	}
}

// GetCurrentPartition 返回指针当前所指分区号
//
// 旋转中同样可查，按当前显示角度即时换算。场景无转盘时返回 0。
func (s *RouletteSystem) GetCurrentPartition() int {
	for _, id := range s.roulettes() {
		comp, _ := ecs.GetComponent[*components.RouletteComponent](s.entityManager, id)
		return partitionForAngle(comp, mathutil.NormalizeAngleDeg(comp.CurrentAngle))
	}
	return 0
}

// GetLastResult 返回最近一次完成旋转的分区号，0 = 尚未转过
func (s *RouletteSystem) GetLastResult() int {
	for _, id := range s.roulettes() {
		comp, _ := ecs.GetComponent[*components.RouletteComponent](s.entityManager, id)
		return comp.LastResult
	}
	return 0
}

// IsSpinning 是否有转盘在旋转中
func (s *RouletteSystem) IsSpinning() bool {
	for _, id := range s.roulettes() {
		comp, _ := ecs.GetComponent[*components.RouletteComponent](s.entityManager, id)
		if comp.State == components.RouletteStateSpinning {
			return true
		}
	}
	return false
}

func (s *RouletteSystem) roulettes() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.RouletteComponent](s.entityManager)
}

// partitionForAngle 把 [0,360) 的角度换算成分区号（1 起）
//
// 角宽 = 360/分区数，越过末区的浮点边界回绕到 1。
func partitionForAngle(comp *components.RouletteComponent, angle float64) int {
	partition := int(angle/comp.SectorWidthDeg()) + 1
	if partition > comp.PartitionCount {
		partition = 1
	}
	return partition
}
