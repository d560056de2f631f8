package mathutil

import (
	"math"
	"testing"
)

// TestNormalizeAngleDeg 测试角度规范化
func TestNormalizeAngleDeg(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"区间内不变", 100, 100},
		{"整圈归零", 360, 0},
		{"超一圈", 1540, 100},
		{"负角度", -90, 270},
		{"负多圈", -450, 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAngleDeg(tt.input); math.Abs(got-tt.expected) > epsilon {
				t.Errorf("NormalizeAngleDeg(%v) = %v, 期望 %v", tt.input, got, tt.expected)
			}
		})
	}
}

// TestAngleDeltaDeg 测试最短角差
func TestAngleDeltaDeg(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		expected float64
	}{
		{"正向小角", 10, 30, 20},
		{"反向小角", 30, 10, -20},
		{"跨零正向", 350, 10, 20},
		{"跨零反向", 10, 350, -20},
		{"对角", 0, 180, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AngleDeltaDeg(tt.from, tt.to); math.Abs(got-tt.expected) > epsilon {
				t.Errorf("AngleDeltaDeg(%v, %v) = %v, 期望 %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

// TestMoveTowardsAngleDeg 测试限速转向
func TestMoveTowardsAngleDeg(t *testing.T) {
	t.Run("步长够大直接到位", func(t *testing.T) {
		if got := MoveTowardsAngleDeg(0, 30, 90); math.Abs(got-30) > epsilon {
			t.Errorf("MoveTowardsAngleDeg = %v, 期望 30", got)
		}
	})

	t.Run("步长不足按限速前进", func(t *testing.T) {
		if got := MoveTowardsAngleDeg(0, 90, 10); math.Abs(got-10) > epsilon {
			t.Errorf("MoveTowardsAngleDeg = %v, 期望 10", got)
		}
	})

	t.Run("跨零走最短路径", func(t *testing.T) {
		got := MoveTowardsAngleDeg(350, 10, 5)
		if math.Abs(got-355) > epsilon {
			t.Errorf("MoveTowardsAngleDeg = %v, 期望 355", got)
		}
	})
}

// TestSmoothFactor 测试指数平滑系数
func TestSmoothFactor(t *testing.T) {
	t.Run("非正时间常数立即到位", func(t *testing.T) {
		if got := SmoothFactor(0, 0.016); got != 1 {
			t.Errorf("SmoothFactor(0) = %v, 期望 1", got)
		}
	})

	t.Run("系数在0到1之间", func(t *testing.T) {
		got := SmoothFactor(0.2, 1.0/60)
		if got <= 0 || got >= 1 {
			t.Errorf("SmoothFactor = %v, 应在 (0,1) 内", got)
		}
	})

	t.Run("帧率无关性", func(t *testing.T) {
		// 两帧 1/60 的累积衰减应等于一帧 2/60
		one := 1 - SmoothFactor(0.2, 1.0/60)
		two := 1 - SmoothFactor(0.2, 2.0/60)
		if math.Abs(one*one-two) > 1e-9 {
			t.Errorf("指数平滑应满足可组合性: %v^2 != %v", one, two)
		}
	})
}
