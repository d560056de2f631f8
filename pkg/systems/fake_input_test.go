package systems

// fakeInput 测试用输入源
//
// 字段即注入值，测试直接改字段再跑系统帧。
// 边沿字段这里不自动清零，由测试自己控制按下的帧。
type fakeInput struct {
	moveX, moveZ     float64
	mouseDX, mouseDY float64
	wheel            float64
	rotateHeld       bool

	jump, punch, spin             bool
	equipNext, equipPrev, unequip bool
	equipSlot                     int
	forceClose, reset             bool

	updateCount int
}

func newFakeInput() *fakeInput {
	return &fakeInput{equipSlot: -1}
}

// clearEdges 模拟松开所有边沿键
func (f *fakeInput) clearEdges() {
	f.jump = false
	f.punch = false
	f.spin = false
	f.equipNext = false
	f.equipPrev = false
	f.unequip = false
	f.equipSlot = -1
	f.forceClose = false
	f.reset = false
	f.wheel = 0
	f.mouseDX = 0
	f.mouseDY = 0
}

func (f *fakeInput) Update()                        { f.updateCount++ }
func (f *fakeInput) MoveAxis() (float64, float64)   { return f.moveX, f.moveZ }
func (f *fakeInput) MouseDelta() (float64, float64) { return f.mouseDX, f.mouseDY }
func (f *fakeInput) WheelDelta() float64            { return f.wheel }
func (f *fakeInput) RotateHeld() bool               { return f.rotateHeld }
func (f *fakeInput) JumpJustPressed() bool          { return f.jump }
func (f *fakeInput) PunchJustPressed() bool         { return f.punch }
func (f *fakeInput) SpinJustPressed() bool          { return f.spin }
func (f *fakeInput) EquipNextJustPressed() bool     { return f.equipNext }
func (f *fakeInput) EquipPrevJustPressed() bool     { return f.equipPrev }
func (f *fakeInput) UnequipJustPressed() bool       { return f.unequip }
func (f *fakeInput) EquipSlotJustPressed() int      { return f.equipSlot }
func (f *fakeInput) ForceCloseJustPressed() bool    { return f.forceClose }
func (f *fakeInput) ResetJustPressed() bool         { return f.reset }

// fakeCursor 测试用光标控制
type fakeCursor struct {
	locked      bool
	lockCalls   int
	unlockCalls int
}

func (c *fakeCursor) SetLocked(locked bool) {
	if locked {
		c.lockCalls++
	} else {
		c.unlockCalls++
	}
	c.locked = locked
}

func (c *fakeCursor) IsLocked() bool {
	return c.locked
}
