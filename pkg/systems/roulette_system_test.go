package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gonewx/luckydoor/internal/mathutil"
	"github.com/gonewx/luckydoor/pkg/components"
	"github.com/gonewx/luckydoor/pkg/config"
	"github.com/gonewx/luckydoor/pkg/ecs"
	"github.com/gonewx/luckydoor/pkg/game"
)

// rouletteWorld 转盘测试场景，固定种子保证结果序列可复现
type rouletteWorld struct {
	em     *ecs.EntityManager
	sys    *RouletteSystem
	tuning config.RouletteTuning
	comp   *components.RouletteComponent
}

func newRouletteWorld(t *testing.T, seed int64) *rouletteWorld {
	t.Helper()
	em := ecs.NewEntityManager()
	tuning := config.DefaultTuningConfig().Roulette
	sys := NewRouletteSystem(em, game.GetGameState(), tuning, rand.New(rand.NewSource(seed)))

	wheel := em.CreateEntity()
	comp := components.NewRouletteComponent(tuning.PartitionCount, tuning.DecelerationPower)
	ecs.AddComponent(em, wheel, comp)

	return &rouletteWorld{em: em, sys: sys, tuning: tuning, comp: comp}
}

func TestRouletteSpinLifecycle(t *testing.T) {
	w := newRouletteWorld(t, 7)

	w.sys.StartSpin()
	if w.comp.State != components.RouletteStateSpinning {
		t.Fatalf("状态 = %v, 期望 Spinning", w.comp.State)
	}
	if w.comp.StartAngle != 0 {
		t.Errorf("起始角度 = %v, 期望 0", w.comp.StartAngle)
	}
	minTotal := float64(w.tuning.MinSpins) * 360
	maxTotal := float64(w.tuning.MaxSpins+1) * 360
	if w.comp.TotalRotation < minTotal || w.comp.TotalRotation >= maxTotal {
		t.Errorf("总转角 = %v, 期望在 [%v, %v)", w.comp.TotalRotation, minTotal, maxTotal)
	}

	// 半程：t=0.5 时缓出进度恰为 1-0.5^3 = 0.875
	w.sys.Update(w.tuning.SpinDuration / 2)
	wantMid := w.comp.StartAngle + w.comp.TotalRotation*0.875
	if math.Abs(w.comp.CurrentAngle-wantMid) > 1e-9 {
		t.Errorf("半程角度 = %v, 期望 %v", w.comp.CurrentAngle, wantMid)
	}

	// 走完剩余时长：落点精确为起点+总转角的规范化值
	total := w.comp.TotalRotation
	w.sys.Update(w.tuning.SpinDuration / 2)
	if w.comp.State != components.RouletteStateIdle {
		t.Fatalf("完成后状态 = %v, 期望 Idle", w.comp.State)
	}
	wantFinal := mathutil.NormalizeAngleDeg(total)
	if w.comp.CurrentAngle != wantFinal {
		t.Errorf("落点角度 = %v, 期望 %v", w.comp.CurrentAngle, wantFinal)
	}
	if w.comp.LastResult < 1 || w.comp.LastResult > w.tuning.PartitionCount {
		t.Errorf("结果分区 = %d, 期望在 [1,%d]", w.comp.LastResult, w.tuning.PartitionCount)
	}
	if w.comp.SpinCount != 1 || w.comp.Elapsed != 0 {
		t.Errorf("完成后 {SpinCount, Elapsed} = {%d, %v}, 期望 {1, 0}", w.comp.SpinCount, w.comp.Elapsed)
	}

	// 第二次旋转从上次落点起步
	w.sys.StartSpin()
	if w.comp.StartAngle != wantFinal {
		t.Errorf("第二次起始角度 = %v, 期望 %v", w.comp.StartAngle, wantFinal)
	}
}

func TestRouletteRejectsSpinWhileSpinning(t *testing.T) {
	w := newRouletteWorld(t, 7)

	w.sys.StartSpin()
	total := w.comp.TotalRotation
	w.sys.Update(1.0)
	elapsed := w.comp.Elapsed
	angle := w.comp.CurrentAngle

	w.sys.StartSpin()
	if w.comp.TotalRotation != total || w.comp.Elapsed != elapsed || w.comp.CurrentAngle != angle {
		t.Error("旋转中重复发起应被拒绝且不改动任何字段")
	}
	if w.comp.State != components.RouletteStateSpinning {
		t.Errorf("状态 = %v, 期望仍在 Spinning", w.comp.State)
	}
}

func TestRouletteDeceleratesMonotonically(t *testing.T) {
	w := newRouletteWorld(t, 11)
	w.sys.StartSpin()

	frames := int(w.tuning.SpinDuration / config.FrameDelta)
	prevAngle := w.comp.CurrentAngle
	prevStep := math.Inf(1)
	for i := 0; i < frames-1; i++ {
		w.sys.Update(config.FrameDelta)
		step := w.comp.CurrentAngle - prevAngle
		if step < 0 {
			t.Fatalf("第 %d 帧角度回退 %f", i+1, step)
		}
		if step > prevStep+1e-9 {
			t.Fatalf("第 %d 帧步进 %f 超过上一帧 %f, 减速曲线应单调放缓", i+1, step, prevStep)
		}
		prevAngle = w.comp.CurrentAngle
		prevStep = step
	}
}

func TestRoulettePartitionFromAngle(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  int
	}{
		{"零度落在一区", 0, 1},
		{"一区末端", 44.9, 1},
		{"分区边界归入下一区", 45, 2},
		{"跨多圈角度按余数换算", 1540, 3},
		{"末区", 359.9, 8},
		{"整两圈回到一区", 720, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newRouletteWorld(t, 1)
			w.comp.CurrentAngle = tt.angle
			if got := w.sys.GetCurrentPartition(); got != tt.want {
				t.Errorf("GetCurrentPartition(角度 %v) = %d, 期望 %d", tt.angle, got, tt.want)
			}
		})
	}
}

func TestRouletteCompletionCallbackAndStats(t *testing.T) {
	w := newRouletteWorld(t, 23)

	var gotPartitions []int
	w.sys.SetOnSpinComplete(func(partition int) {
		gotPartitions = append(gotPartitions, partition)
	})

	pm := game.GetGameState().GetProgressManager()
	spinsBefore := pm.GetProgress().TotalSpins

	w.sys.StartSpin()
	w.sys.Update(w.tuning.SpinDuration)
	if len(gotPartitions) != 1 || gotPartitions[0] != w.comp.LastResult {
		t.Fatalf("回调收到 %v, 期望一次且等于 %d", gotPartitions, w.comp.LastResult)
	}
	if got := w.sys.GetLastResult(); got != w.comp.LastResult {
		t.Errorf("GetLastResult() = %d, 期望 %d", got, w.comp.LastResult)
	}

	// 静止状态继续推进不再触发回调
	w.sys.Update(w.tuning.SpinDuration)
	if len(gotPartitions) != 1 {
		t.Errorf("静止推进后回调次数 = %d, 期望保持 1", len(gotPartitions))
	}

	progress := pm.GetProgress()
	if progress.TotalSpins != spinsBefore+1 {
		t.Errorf("TotalSpins = %d, 期望 %d", progress.TotalSpins, spinsBefore+1)
	}
	if progress.LastPartition != w.comp.LastResult {
		t.Errorf("LastPartition = %d, 期望 %d", progress.LastPartition, w.comp.LastResult)
	}
}

// TestRouletteTenThousandSpins 长程统计：结果始终在合法分区内且大致均匀
func TestRouletteTenThousandSpins(t *testing.T) {
	w := newRouletteWorld(t, 42)

	const spins = 10000
	counts := make([]int, w.tuning.PartitionCount+1)
	for i := 0; i < spins; i++ {
		w.sys.StartSpin()
		w.sys.Update(w.tuning.SpinDuration)
		r := w.comp.LastResult
		if r < 1 || r > w.tuning.PartitionCount {
			t.Fatalf("第 %d 次结果 %d 越出 [1,%d]", i+1, r, w.tuning.PartitionCount)
		}
		counts[r]++
	}

	// 每区期望 1250 次，给 ±250 的宽裕带
	for p := 1; p <= w.tuning.PartitionCount; p++ {
		if counts[p] < 1000 || counts[p] > 1500 {
			t.Errorf("分区 %d 命中 %d 次, 期望在 [1000,1500]", p, counts[p])
		}
	}
	if w.comp.SpinCount != spins {
		t.Errorf("SpinCount = %d, 期望 %d", w.comp.SpinCount, spins)
	}
}

func TestRouletteIsSpinning(t *testing.T) {
	w := newRouletteWorld(t, 3)
	if w.sys.IsSpinning() {
		t.Error("初始不应在旋转中")
	}
	w.sys.StartSpin()
	if !w.sys.IsSpinning() {
		t.Error("发起后应在旋转中")
	}
	w.sys.Update(w.tuning.SpinDuration)
	if w.sys.IsSpinning() {
		t.Error("完成后不应在旋转中")
	}
}
