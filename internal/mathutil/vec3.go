package mathutil

import "math"

// Vec3 三维向量（值类型，栈上分配）
//
// 坐标系约定：Y 轴向上，XZ 为水平面。
type Vec3 [3]float64

// X 返回 X 分量
func (v Vec3) X() float64 { return v[0] }

// Y 返回 Y 分量
func (v Vec3) Y() float64 { return v[1] }

// Z 返回 Z 分量
func (v Vec3) Z() float64 { return v[2] }

// Add 向量加法
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub 向量减法
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale 标量缩放
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Dot 点积
func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross 叉积
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Len 向量长度
func (v Vec3) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Normalize 归一化
//
// 长度接近零时返回零向量，不产生 NaN。
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// Lerp 线性插值，t 取值 [0,1]
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return Vec3{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// Flatten 投影到水平面（Y 分量清零）
//
// 用于相机朝向到移动方向的转换：移动只发生在水平面上。
func (v Vec3) Flatten() Vec3 {
	return Vec3{v[0], 0, v[2]}
}

// Distance 两点距离
func (a Vec3) Distance(b Vec3) float64 {
	return a.Sub(b).Len()
}

// HorizontalDistance 水平面内两点距离（忽略 Y）
func (a Vec3) HorizontalDistance(b Vec3) float64 {
	dx := a[0] - b[0]
	dz := a[2] - b[2]
	return math.Sqrt(dx*dx + dz*dz)
}
