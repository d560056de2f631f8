package mathutil

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func vecNear(a, b Vec3) bool {
	return math.Abs(a[0]-b[0]) < 1e-6 &&
		math.Abs(a[1]-b[1]) < 1e-6 &&
		math.Abs(a[2]-b[2]) < 1e-6
}

// TestVec3Basic 测试向量基本运算
func TestVec3Basic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	t.Run("加法", func(t *testing.T) {
		if got := a.Add(b); !vecNear(got, Vec3{5, 7, 9}) {
			t.Errorf("Add = %v, 期望 {5 7 9}", got)
		}
	})

	t.Run("减法", func(t *testing.T) {
		if got := b.Sub(a); !vecNear(got, Vec3{3, 3, 3}) {
			t.Errorf("Sub = %v, 期望 {3 3 3}", got)
		}
	})

	t.Run("缩放", func(t *testing.T) {
		if got := a.Scale(2); !vecNear(got, Vec3{2, 4, 6}) {
			t.Errorf("Scale = %v, 期望 {2 4 6}", got)
		}
	})

	t.Run("点积", func(t *testing.T) {
		if got := a.Dot(b); math.Abs(got-32) > epsilon {
			t.Errorf("Dot = %v, 期望 32", got)
		}
	})

	t.Run("叉积", func(t *testing.T) {
		x := Vec3{1, 0, 0}
		y := Vec3{0, 1, 0}
		if got := x.Cross(y); !vecNear(got, Vec3{0, 0, 1}) {
			t.Errorf("Cross = %v, 期望 {0 0 1}", got)
		}
	})
}

// TestVec3Normalize 测试归一化的边界行为
func TestVec3Normalize(t *testing.T) {
	t.Run("普通向量", func(t *testing.T) {
		got := Vec3{3, 0, 4}.Normalize()
		if !vecNear(got, Vec3{0.6, 0, 0.8}) {
			t.Errorf("Normalize = %v, 期望 {0.6 0 0.8}", got)
		}
	})

	t.Run("零向量不产生NaN", func(t *testing.T) {
		got := Vec3{}.Normalize()
		if got != (Vec3{}) {
			t.Errorf("零向量归一化应返回零向量, 实际 %v", got)
		}
	})
}

// TestVec3Flatten 测试水平投影
//
// Flatten 是移动方向计算的基础：相机前方向量投影到水平面后
// 决定角色移动方向。
func TestVec3Flatten(t *testing.T) {
	v := Vec3{1, 5, 2}
	got := v.Flatten()
	if got != (Vec3{1, 0, 2}) {
		t.Errorf("Flatten = %v, 期望 {1 0 2}", got)
	}
}

// TestVec3Lerp 测试线性插值
func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 20, 30}

	tests := []struct {
		name     string
		t        float64
		expected Vec3
	}{
		{"起点", 0.0, Vec3{0, 0, 0}},
		{"中点", 0.5, Vec3{5, 10, 15}},
		{"终点", 1.0, Vec3{10, 20, 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Lerp(b, tt.t); !vecNear(got, tt.expected) {
				t.Errorf("Lerp(%v) = %v, 期望 %v", tt.t, got, tt.expected)
			}
		})
	}
}

// TestVec3Distance 测试距离计算
func TestVec3Distance(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{3, 4, 0}
	if got := a.Distance(b); math.Abs(got-5) > epsilon {
		t.Errorf("Distance = %v, 期望 5", got)
	}

	c := Vec3{3, 100, 4}
	if got := a.HorizontalDistance(c); math.Abs(got-5) > epsilon {
		t.Errorf("HorizontalDistance = %v, 期望 5（忽略Y分量）", got)
	}
}
