package components

// InputComponent 输入快照组件
//
// InputSystem 每帧从输入源采样一次写入，其余系统只读。
// 系统不直接碰键鼠接口，测试用假输入源喂这里的字段即可驱动全部玩法。
type InputComponent struct {
	// MoveX 左右轴（-1 左 .. 1 右）
	MoveX float64

	// MoveZ 前后轴（-1 后 .. 1 前）
	MoveZ float64

	// MouseDX 本帧鼠标横向位移（像素）
	MouseDX float64

	// MouseDY 本帧鼠标纵向位移（像素）
	MouseDY float64

	// WheelDelta 本帧滚轮刻度（正值拉近）
	WheelDelta float64

	// RotateHeld 环绕拖拽键（右键）是否按住
	RotateHeld bool

	// JumpPressed 跳跃键按下且尚未被消费（粘滞边沿）
	// 其余边沿按帧清零，这个由角色控制在物理步消费清零，
	// 保证落在无固定步帧上的按键不丢失
	JumpPressed bool

	// PunchPressed 挥拳键本帧按下（边沿）
	PunchPressed bool

	// SpinPressed 转盘键本帧按下（边沿）
	SpinPressed bool

	// EquipNextPressed 下一件装备（边沿）
	EquipNextPressed bool

	// EquipPrevPressed 上一件装备（边沿）
	EquipPrevPressed bool

	// UnequipPressed 收起装备（边沿）
	UnequipPressed bool

	// EquipSlotPressed 数字键直接装备，-1 表示无
	EquipSlotPressed int

	// ForceClosePressed 强制关门（边沿）
	ForceClosePressed bool

	// ResetPressed 场景复位（边沿）
	ResetPressed bool
}

// NewInputComponent 创建空输入快照
func NewInputComponent() *InputComponent {
	return &InputComponent{EquipSlotPressed: -1}
}

// ClearEdges 清除所有边沿触发字段（每帧采样前调用）
func (c *InputComponent) ClearEdges() {
	c.JumpPressed = false
	c.PunchPressed = false
	c.SpinPressed = false
	c.EquipNextPressed = false
	c.EquipPrevPressed = false
	c.UnequipPressed = false
	c.EquipSlotPressed = -1
	c.ForceClosePressed = false
	c.ResetPressed = false
	c.MouseDX = 0
	c.MouseDY = 0
	c.WheelDelta = 0
}
