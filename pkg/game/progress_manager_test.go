package game

import "testing"

// TestProgressManagerDegradedMode 测试 gdata 不可用时的降级模式
func TestProgressManagerDegradedMode(t *testing.T) {
	pm, err := NewProgressManager(nil)
	if err != nil {
		t.Fatalf("NewProgressManager(nil) should not fail: %v", err)
	}

	if pm.GetProgress().TotalSpins != 0 {
		t.Error("fresh progress should have zero spins")
	}
	if err := pm.Save(); err != nil {
		t.Errorf("Save in degraded mode should be a no-op, got %v", err)
	}
}

// TestRecordSpin 测试转盘统计记录
func TestRecordSpin(t *testing.T) {
	pm, _ := NewProgressManager(nil)

	pm.RecordSpin(3, 8)
	pm.RecordSpin(3, 8)
	pm.RecordSpin(8, 8)

	p := pm.GetProgress()
	if p.TotalSpins != 3 {
		t.Errorf("TotalSpins = %d, 期望 3", p.TotalSpins)
	}
	if p.LastPartition != 8 {
		t.Errorf("LastPartition = %d, 期望 8", p.LastPartition)
	}
	if len(p.SectorHits) != 8 {
		t.Fatalf("SectorHits length = %d, 期望 8", len(p.SectorHits))
	}
	if p.SectorHits[2] != 2 {
		t.Errorf("SectorHits[2] = %d, 期望 2", p.SectorHits[2])
	}
	if p.SectorHits[7] != 1 {
		t.Errorf("SectorHits[7] = %d, 期望 1", p.SectorHits[7])
	}
}

// TestRecordSpinOutOfRange 测试越界分区号只累加总数
func TestRecordSpinOutOfRange(t *testing.T) {
	pm, _ := NewProgressManager(nil)

	pm.RecordSpin(0, 8)
	pm.RecordSpin(9, 8)

	p := pm.GetProgress()
	if p.TotalSpins != 2 {
		t.Errorf("TotalSpins = %d, 期望 2", p.TotalSpins)
	}
	for i, hits := range p.SectorHits {
		if hits != 0 {
			t.Errorf("SectorHits[%d] = %d, 越界结果不应计入直方图", i, hits)
		}
	}
}

// TestRecordDoorOpened 测试开门统计
func TestRecordDoorOpened(t *testing.T) {
	pm, _ := NewProgressManager(nil)

	pm.RecordDoorOpened()
	pm.RecordDoorOpened()

	if got := pm.GetProgress().DoorsOpened; got != 2 {
		t.Errorf("DoorsOpened = %d, 期望 2", got)
	}
}
