package components

// RouletteState 转盘状态
type RouletteState int

const (
	// RouletteStateIdle 静止，可以发起旋转
	RouletteStateIdle RouletteState = iota

	// RouletteStateSpinning 旋转中，再次发起被拒绝
	RouletteStateSpinning
)

// String 返回状态名称（日志用）
func (s RouletteState) String() string {
	switch s {
	case RouletteStateIdle:
		return "Idle"
	case RouletteStateSpinning:
		return "Spinning"
	default:
		return "Unknown"
	}
}

// RouletteComponent 转盘组件
//
// 旋转是可恢复任务：StartAngle/TotalRotation/Elapsed/Duration 足以
// 在任意帧边界续播。当前指针角度随时可换算分区号。
type RouletteComponent struct {
	// State 当前状态
	State RouletteState

	// CurrentAngle 指针当前角度（度，显示值，完成时规范化到 [0,360)）
	CurrentAngle float64

	// StartAngle 本次旋转起始角度（度）
	StartAngle float64

	// TotalRotation 本次旋转总转角（度，整圈数×360+落点）
	TotalRotation float64

	// Elapsed 本次旋转已播放时间（秒）
	Elapsed float64

	// Duration 本次旋转总时长（秒）
	Duration float64

	// PartitionCount 分区数
	PartitionCount int

	// DecelerationPower 减速曲线指数，进度 = 1-(1-t)^p
	DecelerationPower float64

	// LastResult 最近一次完成旋转的分区号，0 = 尚未转过
	LastResult int

	// SpinCount 累计完成旋转次数（进度统计）
	SpinCount int
}

// NewRouletteComponent 创建静止转盘
func NewRouletteComponent(partitionCount int, decelerationPower float64) *RouletteComponent {
	return &RouletteComponent{
		State:             RouletteStateIdle,
		PartitionCount:    partitionCount,
		DecelerationPower: decelerationPower,
	}
}

// SectorWidthDeg 单个分区的角宽（度）
func (r *RouletteComponent) SectorWidthDeg() float64 {
	return 360.0 / float64(r.PartitionCount)
}
