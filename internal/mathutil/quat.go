package mathutil

import "math"

// Quat 四元数 (x, y, z, w)
//
// 用于角色和相机的朝向表示。所有构造函数返回单位四元数。
type Quat [4]float64

// QuatIdentity 返回单位四元数（无旋转）
func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

// QuatFromAxisAngle 绕单位轴 axis 旋转 angleRad 弧度
func QuatFromAxisAngle(axis Vec3, angleRad float64) Quat {
	half := angleRad * 0.5
	s := math.Sin(half)
	return Quat{axis[0] * s, axis[1] * s, axis[2] * s, math.Cos(half)}
}

// QuatFromYawDeg 绕 Y 轴（垂直轴）旋转 yawDeg 度
//
// yaw = 0 时前方为 +Z，yaw 增大时向 +X 方向偏转。
func QuatFromYawDeg(yawDeg float64) Quat {
	return QuatFromAxisAngle(Vec3{0, 1, 0}, Deg2Rad(yawDeg))
}

// QuatFromYawPitchDeg 由偏航角和俯仰角构造旋转
//
// pitchDeg 为正表示抬头（前方向上倾斜）。
// 结果满足 QuatRotateVec3(q, {0,0,1}) == DirFromYawPitchDeg(yawDeg, pitchDeg)。
func QuatFromYawPitchDeg(yawDeg, pitchDeg float64) Quat {
	yaw := QuatFromAxisAngle(Vec3{0, 1, 0}, Deg2Rad(yawDeg))
	pitch := QuatFromAxisAngle(Vec3{1, 0, 0}, Deg2Rad(-pitchDeg))
	return QuatMul(yaw, pitch)
}

// QuatMul 四元数乘法（先施加 b，再施加 a）
func QuatMul(a, b Quat) Quat {
	ax, ay, az, aw := a[0], a[1], a[2], a[3]
	bx, by, bz, bw := b[0], b[1], b[2], b[3]
	return Quat{
		aw*bx + ax*bw + ay*bz - az*by,
		aw*by - ax*bz + ay*bw + az*bx,
		aw*bz + ax*by - ay*bx + az*bw,
		aw*bw - ax*bx - ay*by - az*bz,
	}
}

// QuatDot 四元数点积
func QuatDot(a, b Quat) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

// QuatNormalize 归一化；长度接近零时返回单位四元数
func QuatNormalize(q Quat) Quat {
	l := math.Sqrt(QuatDot(q, q))
	if l < 1e-12 {
		return QuatIdentity()
	}
	return Quat{q[0] / l, q[1] / l, q[2] / l, q[3] / l}
}

// QuatSlerp 球面插值，自动走最短路径
//
// 两个旋转几乎重合时退化为线性插值避免除零。
func QuatSlerp(a, b Quat, t float64) Quat {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}

	dot := QuatDot(a, b)
	// 最短路径：点积为负时翻转一端
	if dot < 0 {
		b = Quat{-b[0], -b[1], -b[2], -b[3]}
		dot = -dot
	}

	if dot > 0.9995 {
		return QuatNormalize(Quat{
			a[0] + (b[0]-a[0])*t,
			a[1] + (b[1]-a[1])*t,
			a[2] + (b[2]-a[2])*t,
			a[3] + (b[3]-a[3])*t,
		})
	}

	theta := math.Acos(dot)
	sinTheta := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sinTheta
	wb := math.Sin(t*theta) / sinTheta
	return Quat{
		a[0]*wa + b[0]*wb,
		a[1]*wa + b[1]*wb,
		a[2]*wa + b[2]*wb,
		a[3]*wa + b[3]*wb,
	}
}

// QuatRotateVec3 用四元数旋转向量
func QuatRotateVec3(q Quat, v Vec3) Vec3 {
	u := Vec3{q[0], q[1], q[2]}
	w := q[3]
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(w)).Add(u.Cross(t))
}

// QuatForward 返回旋转后的前方向量（+Z 经过旋转）
func QuatForward(q Quat) Vec3 {
	return QuatRotateVec3(q, Vec3{0, 0, 1})
}

// QuatYawDeg 提取偏航角（度，[0,360)）
//
// 通过前方向量在水平面的投影计算，对含俯仰分量的旋转同样稳定。
func QuatYawDeg(q Quat) float64 {
	f := QuatForward(q)
	if math.Abs(f[0]) < 1e-12 && math.Abs(f[2]) < 1e-12 {
		return 0
	}
	return NormalizeAngleDeg(Rad2Deg(math.Atan2(f[0], f[2])))
}

// QuatLookDir 返回前方指向 dir 的旋转
//
// dir 无需归一化；零向量返回单位四元数。
func QuatLookDir(dir Vec3) Quat {
	d := dir.Normalize()
	if d.Len() < 1e-12 {
		return QuatIdentity()
	}
	yaw := Rad2Deg(math.Atan2(d[0], d[2]))
	pitch := Rad2Deg(math.Asin(clamp(d[1], -1, 1)))
	return QuatFromYawPitchDeg(yaw, pitch)
}

// DirFromYawPitchDeg 由偏航/俯仰角计算单位方向向量
//
// pitchDeg 为正表示向上。
func DirFromYawPitchDeg(yawDeg, pitchDeg float64) Vec3 {
	y := Deg2Rad(yawDeg)
	p := Deg2Rad(pitchDeg)
	cp := math.Cos(p)
	return Vec3{cp * math.Sin(y), math.Sin(p), cp * math.Cos(y)}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
