package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TuningConfig 玩法数值配置
//
// 包含相机、角色、装备、转盘和开门流程的全部调参数值。
// 配置文件位置: data/tuning.yaml（内嵌默认副本，外部文件可覆盖）
type TuningConfig struct {
	// Camera 相机吊臂参数
	Camera CameraTuning `yaml:"camera"`

	// Player 角色控制参数
	Player PlayerTuning `yaml:"player"`

	// Equipment 装备与挥拳参数
	Equipment EquipmentTuning `yaml:"equipment"`

	// Roulette 转盘参数
	Roulette RouletteTuning `yaml:"roulette"`

	// Flow 开门演出流程参数
	Flow FlowTuning `yaml:"flow"`
}

// CameraTuning 相机吊臂参数
type CameraTuning struct {
	// MinDistance 相机到目标的最小距离（米）
	MinDistance float64 `yaml:"minDistance"`

	// MaxDistance 相机到目标的最大距离（米）
	MaxDistance float64 `yaml:"maxDistance"`

	// DefaultDistance 初始距离（米）
	DefaultDistance float64 `yaml:"defaultDistance"`

	// FirstPersonThreshold 第一人称切换余量（米）
	// 当前距离 <= MinDistance + FirstPersonThreshold 时进入第一人称
	FirstPersonThreshold float64 `yaml:"firstPersonThreshold"`

	// WheelZoomStep 滚轮每格距离变化（米）
	WheelZoomStep float64 `yaml:"wheelZoomStep"`

	// OrbitSpeed 环绕模式转动速度（度/像素）
	OrbitSpeed float64 `yaml:"orbitSpeed"`

	// FPLookSpeed 第一人称视角速度（度/像素，再乘以鼠标灵敏度设置）
	FPLookSpeed float64 `yaml:"fpLookSpeed"`

	// OrbitMinVertical 环绕模式俯仰下限（度，负值为俯视下探）
	OrbitMinVertical float64 `yaml:"orbitMinVertical"`

	// OrbitMaxVertical 环绕模式俯仰上限（度）
	OrbitMaxVertical float64 `yaml:"orbitMaxVertical"`

	// OrbitDefaultVertical 环绕模式默认俯仰（度）
	// 从第一人称退回环绕时俯仰重置到该值
	OrbitDefaultVertical float64 `yaml:"orbitDefaultVertical"`

	// FPMinVertical 第一人称俯仰下限（度）
	FPMinVertical float64 `yaml:"fpMinVertical"`

	// FPMaxVertical 第一人称俯仰上限（度）
	FPMaxVertical float64 `yaml:"fpMaxVertical"`

	// RotationSmoothTime 角度平滑时间常数（秒）
	RotationSmoothTime float64 `yaml:"rotationSmoothTime"`

	// DistanceSmoothTime 距离平滑时间常数（秒）
	DistanceSmoothTime float64 `yaml:"distanceSmoothTime"`

	// TargetHeight 环绕模式注视点高度（米，相对角色脚底）
	TargetHeight float64 `yaml:"targetHeight"`

	// HeadHeight 第一人称眼睛高度（米，相对角色脚底）
	HeadHeight float64 `yaml:"headHeight"`
}

// PlayerTuning 角色控制参数
type PlayerTuning struct {
	// MoveSpeed 移动速度（米/秒）
	MoveSpeed float64 `yaml:"moveSpeed"`

	// TurnSpeed 转身速度（度/秒）
	TurnSpeed float64 `yaml:"turnSpeed"`

	// JumpImpulse 跳跃瞬时速度（米/秒）
	JumpImpulse float64 `yaml:"jumpImpulse"`

	// FallGravityScale 下落阶段额外重力倍率
	// 上升用标准重力，下落乘以该倍率让跳跃手感更利落
	FallGravityScale float64 `yaml:"fallGravityScale"`

	// KnockbackSpeed 撞墙击退速度（米/秒）
	KnockbackSpeed float64 `yaml:"knockbackSpeed"`

	// KnockbackDuration 击退持续时间（秒），期间移动输入被忽略
	KnockbackDuration float64 `yaml:"knockbackDuration"`
}

// EquipmentTuning 装备与挥拳参数
type EquipmentTuning struct {
	// PunchDuration 挥拳总时长（秒），前伸与收回各占一半
	PunchDuration float64 `yaml:"punchDuration"`

	// PunchReach 挥拳前伸距离（米，手部锚点沿前方偏移）
	PunchReach float64 `yaml:"punchReach"`
}

// RouletteTuning 转盘参数
type RouletteTuning struct {
	// PartitionCount 分区数
	PartitionCount int `yaml:"partitionCount"`

	// MinSpins 最少完整圈数（含）
	MinSpins int `yaml:"minSpins"`

	// MaxSpins 最多完整圈数（含）
	MaxSpins int `yaml:"maxSpins"`

	// SpinDuration 旋转总时长（秒）
	SpinDuration float64 `yaml:"spinDuration"`

	// DecelerationPower 减速曲线指数
	// 进度曲线为 1-(1-t)^p，p 越大减速越明显
	DecelerationPower float64 `yaml:"decelerationPower"`
}

// FlowTuning 开门演出流程参数
type FlowTuning struct {
	// CameraDistance 相机机位到门前注视点的距离（米）
	CameraDistance float64 `yaml:"cameraDistance"`

	// HeightOffset 机位相对注视点的高度偏移（米）
	HeightOffset float64 `yaml:"heightOffset"`

	// CameraMoveTime 相机飞行时长（秒，去程与回程相同）
	CameraMoveTime float64 `yaml:"cameraMoveTime"`

	// CameraFocusTime 开门后机位停留时长（秒）
	CameraFocusTime float64 `yaml:"cameraFocusTime"`

	// DoorOpenSpeed 门板转动速度（1/秒），单程耗时为其倒数
	DoorOpenSpeed float64 `yaml:"doorOpenSpeed"`

	// DoorOpenAngle 门板打开角度（度，负值向内开）
	DoorOpenAngle float64 `yaml:"doorOpenAngle"`

	// CountdownTime 关门倒计时（秒，整秒递减显示）
	CountdownTime float64 `yaml:"countdownTime"`
}

// LoadTuningConfig 从YAML文件加载玩法数值配置
//
// 参数:
//   - path: 配置文件路径（如 "data/tuning.yaml"）
//
// 返回:
//   - *TuningConfig: 加载成功后的配置结构
//   - error: 加载失败时返回错误
func LoadTuningConfig(path string) (*TuningConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning config: %w", err)
	}
	return LoadTuningConfigFromBytes(data)
}

// LoadTuningConfigFromBytes 从字节内容加载玩法数值配置
//
// 内嵌默认配置走这个入口，避免依赖工作目录。
func LoadTuningConfigFromBytes(data []byte) (*TuningConfig, error) {
	var config TuningConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse tuning config: %w", err)
	}

	applyTuningDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning config: %w", err)
	}

	return &config, nil
}

// DefaultTuningConfig 返回内置默认配置
//
// 配置文件缺失或解析失败时的回退值，与 data/tuning.yaml 一致。
func DefaultTuningConfig() *TuningConfig {
	config := &TuningConfig{}
	applyTuningDefaults(config)
	return config
}

// applyTuningDefaults 为缺失的字段设置默认值
// 确保旧配置文件可正常加载
func applyTuningDefaults(config *TuningConfig) {
	c := &config.Camera
	if c.MinDistance == 0 {
		c.MinDistance = 2.0
	}
	if c.MaxDistance == 0 {
		c.MaxDistance = 12.0
	}
	if c.DefaultDistance == 0 {
		c.DefaultDistance = 6.0
	}
	if c.FirstPersonThreshold == 0 {
		c.FirstPersonThreshold = 0.5
	}
	if c.WheelZoomStep == 0 {
		c.WheelZoomStep = 0.6
	}
	if c.OrbitSpeed == 0 {
		c.OrbitSpeed = 0.25
	}
	if c.FPLookSpeed == 0 {
		c.FPLookSpeed = 0.12
	}
	if c.OrbitMinVertical == 0 {
		c.OrbitMinVertical = -20
	}
	if c.OrbitMaxVertical == 0 {
		c.OrbitMaxVertical = 70
	}
	if c.OrbitDefaultVertical == 0 {
		c.OrbitDefaultVertical = 20
	}
	if c.FPMinVertical == 0 {
		c.FPMinVertical = -80
	}
	if c.FPMaxVertical == 0 {
		c.FPMaxVertical = 80
	}
	if c.RotationSmoothTime == 0 {
		c.RotationSmoothTime = 0.12
	}
	if c.DistanceSmoothTime == 0 {
		c.DistanceSmoothTime = 0.2
	}
	if c.TargetHeight == 0 {
		c.TargetHeight = 1.2
	}
	if c.HeadHeight == 0 {
		c.HeadHeight = 1.6
	}

	p := &config.Player
	if p.MoveSpeed == 0 {
		p.MoveSpeed = 4.5
	}
	if p.TurnSpeed == 0 {
		p.TurnSpeed = 540
	}
	if p.JumpImpulse == 0 {
		p.JumpImpulse = 5.0
	}
	if p.FallGravityScale == 0 {
		p.FallGravityScale = 1.8
	}
	if p.KnockbackSpeed == 0 {
		p.KnockbackSpeed = 6.0
	}
	if p.KnockbackDuration == 0 {
		p.KnockbackDuration = 0.25
	}

	e := &config.Equipment
	if e.PunchDuration == 0 {
		e.PunchDuration = 0.3
	}
	if e.PunchReach == 0 {
		e.PunchReach = 0.4
	}

	r := &config.Roulette
	if r.PartitionCount == 0 {
		r.PartitionCount = 8
	}
	if r.MinSpins == 0 {
		r.MinSpins = 3
	}
	if r.MaxSpins == 0 {
		r.MaxSpins = 6
	}
	if r.SpinDuration == 0 {
		r.SpinDuration = 4.0
	}
	if r.DecelerationPower == 0 {
		r.DecelerationPower = 3.0
	}

	f := &config.Flow
	if f.CameraDistance == 0 {
		f.CameraDistance = 2.5
	}
	if f.HeightOffset == 0 {
		f.HeightOffset = 0.8
	}
	if f.CameraMoveTime == 0 {
		f.CameraMoveTime = 1.2
	}
	if f.CameraFocusTime == 0 {
		f.CameraFocusTime = 2.0
	}
	if f.DoorOpenSpeed == 0 {
		f.DoorOpenSpeed = 1.25
	}
	if f.DoorOpenAngle == 0 {
		f.DoorOpenAngle = -100
	}
	if f.CountdownTime == 0 {
		f.CountdownTime = 5
	}
}

// Validate 验证配置有效性
//
// 检查数值范围与相互约束：
//   - 相机距离区间合法，第一人称余量非负
//   - 转盘分区数 >= 1，圈数区间合法
//   - 各时长/速度为正
func (c *TuningConfig) Validate() error {
	cam := c.Camera
	if cam.MinDistance <= 0 {
		return fmt.Errorf("camera.minDistance must be positive, got %v", cam.MinDistance)
	}
	if cam.MaxDistance < cam.MinDistance {
		return fmt.Errorf("camera.maxDistance (%v) must be >= minDistance (%v)", cam.MaxDistance, cam.MinDistance)
	}
	if cam.FirstPersonThreshold < 0 {
		return fmt.Errorf("camera.firstPersonThreshold must be >= 0, got %v", cam.FirstPersonThreshold)
	}
	if cam.DefaultDistance < cam.MinDistance || cam.DefaultDistance > cam.MaxDistance {
		return fmt.Errorf("camera.defaultDistance (%v) outside [%v, %v]", cam.DefaultDistance, cam.MinDistance, cam.MaxDistance)
	}
	if cam.OrbitMinVertical > cam.OrbitMaxVertical {
		return fmt.Errorf("camera.orbitMinVertical (%v) must be <= orbitMaxVertical (%v)", cam.OrbitMinVertical, cam.OrbitMaxVertical)
	}
	if cam.OrbitDefaultVertical < cam.OrbitMinVertical || cam.OrbitDefaultVertical > cam.OrbitMaxVertical {
		return fmt.Errorf("camera.orbitDefaultVertical (%v) outside [%v, %v]", cam.OrbitDefaultVertical, cam.OrbitMinVertical, cam.OrbitMaxVertical)
	}
	if cam.FPMinVertical > cam.FPMaxVertical {
		return fmt.Errorf("camera.fpMinVertical (%v) must be <= fpMaxVertical (%v)", cam.FPMinVertical, cam.FPMaxVertical)
	}

	p := c.Player
	if p.MoveSpeed <= 0 {
		return fmt.Errorf("player.moveSpeed must be positive, got %v", p.MoveSpeed)
	}
	if p.TurnSpeed <= 0 {
		return fmt.Errorf("player.turnSpeed must be positive, got %v", p.TurnSpeed)
	}
	if p.KnockbackDuration < 0 {
		return fmt.Errorf("player.knockbackDuration must be >= 0, got %v", p.KnockbackDuration)
	}

	e := c.Equipment
	if e.PunchDuration <= 0 {
		return fmt.Errorf("equipment.punchDuration must be positive, got %v", e.PunchDuration)
	}

	r := c.Roulette
	if r.PartitionCount < 1 {
		return fmt.Errorf("roulette.partitionCount must be >= 1, got %d", r.PartitionCount)
	}
	if r.MinSpins < 0 {
		return fmt.Errorf("roulette.minSpins must be >= 0, got %d", r.MinSpins)
	}
	if r.MaxSpins < r.MinSpins {
		return fmt.Errorf("roulette.maxSpins (%d) must be >= minSpins (%d)", r.MaxSpins, r.MinSpins)
	}
	if r.SpinDuration <= 0 {
		return fmt.Errorf("roulette.spinDuration must be positive, got %v", r.SpinDuration)
	}
	if r.DecelerationPower < 1 {
		return fmt.Errorf("roulette.decelerationPower must be >= 1, got %v", r.DecelerationPower)
	}

	f := c.Flow
	if f.DoorOpenSpeed <= 0 {
		return fmt.Errorf("flow.doorOpenSpeed must be positive, got %v", f.DoorOpenSpeed)
	}
	if f.CameraMoveTime <= 0 {
		return fmt.Errorf("flow.cameraMoveTime must be positive, got %v", f.CameraMoveTime)
	}
	if f.CameraFocusTime < 0 {
		return fmt.Errorf("flow.cameraFocusTime must be >= 0, got %v", f.CameraFocusTime)
	}
	if f.CountdownTime < 0 {
		return fmt.Errorf("flow.countdownTime must be >= 0, got %v", f.CountdownTime)
	}
	if f.DoorOpenAngle == 0 {
		return fmt.Errorf("flow.doorOpenAngle must be non-zero")
	}

	return nil
}
