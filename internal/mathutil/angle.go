package mathutil

import "math"

// Deg2Rad 角度转弧度
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg 弧度转角度
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}

// NormalizeAngleDeg 将角度规范化到 [0,360)
func NormalizeAngleDeg(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// AngleDeltaDeg 返回从 from 转到 to 的最短带符号角差（度，(-180,180]）
func AngleDeltaDeg(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d > 180 {
		d -= 360
	}
	if d <= -180 {
		d += 360
	}
	return d
}

// MoveTowardsAngleDeg 以最大步长 maxDelta 从 from 沿最短路径转向 to
func MoveTowardsAngleDeg(from, to, maxDelta float64) float64 {
	d := AngleDeltaDeg(from, to)
	if math.Abs(d) <= maxDelta {
		return NormalizeAngleDeg(to)
	}
	if d > 0 {
		return NormalizeAngleDeg(from + maxDelta)
	}
	return NormalizeAngleDeg(from - maxDelta)
}

// LerpAngleDeg 沿最短路径对角度插值
func LerpAngleDeg(from, to, t float64) float64 {
	return NormalizeAngleDeg(from + AngleDeltaDeg(from, to)*t)
}

// Clamp 将 v 限制在 [lo,hi]
func Clamp(v, lo, hi float64) float64 {
	return clamp(v, lo, hi)
}

// Clamp01 将 v 限制在 [0,1]
func Clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// SmoothFactor 指数平滑系数
//
// 返回 1-exp(-dt/timeConstant)，帧率无关的平滑步进量。
// timeConstant 越小收敛越快；非正值直接返回 1（立即到位）。
func SmoothFactor(timeConstant, dt float64) float64 {
	if timeConstant <= 0 {
		return 1
	}
	return 1 - math.Exp(-dt/timeConstant)
}
