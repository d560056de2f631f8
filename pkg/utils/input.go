// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputProvider 抽象键鼠输入源
//
// InputSystem 每帧通过该接口采样，游戏逻辑不直接依赖 ebiten 的输入 API。
// 测试里用假实现注入任意按键序列即可驱动完整玩法。
type InputProvider interface {
	// Update 每帧开头调用一次，维护跨帧状态（鼠标位移基准等）
	Update()

	// MoveAxis 返回移动轴向：x 左右（-1..1），z 前后（-1..1）
	MoveAxis() (x, z float64)

	// MouseDelta 返回本帧鼠标位移（像素）
	MouseDelta() (dx, dy float64)

	// WheelDelta 返回本帧滚轮刻度（正值拉近）
	WheelDelta() float64

	// RotateHeld 环绕拖拽键（鼠标右键）是否按住
	RotateHeld() bool

	// JumpJustPressed 跳跃键本帧是否按下
	JumpJustPressed() bool

	// PunchJustPressed 挥拳键（鼠标左键）本帧是否按下
	PunchJustPressed() bool

	// SpinJustPressed 转盘键本帧是否按下
	SpinJustPressed() bool

	// EquipNextJustPressed 切换下一件装备键本帧是否按下
	EquipNextJustPressed() bool

	// EquipPrevJustPressed 切换上一件装备键本帧是否按下
	EquipPrevJustPressed() bool

	// UnequipJustPressed 收起装备键本帧是否按下
	UnequipJustPressed() bool

	// EquipSlotJustPressed 返回本帧按下的装备数字键位（0 起），无则返回 -1
	EquipSlotJustPressed() int

	// ForceCloseJustPressed 强制关门键本帧是否按下
	ForceCloseJustPressed() bool

	// ResetJustPressed 场景复位键本帧是否按下
	ResetJustPressed() bool
}

// CursorController 光标锁定控制
//
// 第一人称模式需要把光标锁进窗口读取相对位移，
// 环绕模式则恢复普通光标。抽象出来便于测试替换。
type CursorController interface {
	// SetLocked 设置光标是否锁定（锁定后隐藏并捕获光标）
	SetLocked(locked bool)

	// IsLocked 返回当前是否处于锁定状态
	IsLocked() bool
}

// ============================================================================
// Ebiten 实现
// ============================================================================

// 装备数字键表，索引即槽位
var equipSlotKeys = []ebiten.Key{
	ebiten.KeyDigit1,
	ebiten.KeyDigit2,
	ebiten.KeyDigit3,
	ebiten.KeyDigit4,
	ebiten.KeyDigit5,
}

// EbitenInput 基于 ebiten 键鼠的输入源实现
//
// 键位：WASD 移动，空格跳跃，鼠标左键挥拳，右键按住环绕，
// 滚轮缩放，E 转盘，Tab/Q 切换装备，X 收起，C 强制关门，R 复位。
type EbitenInput struct {
	lastCursorX int
	lastCursorY int
	mouseDX     float64
	mouseDY     float64

	// 光标模式刚切换时丢弃一帧位移，避免坐标系跳变打摆相机
	lastCursorMode ebiten.CursorModeType
	skipDelta      bool
}

// NewEbitenInput 创建 ebiten 输入源
func NewEbitenInput() *EbitenInput {
	x, y := ebiten.CursorPosition()
	return &EbitenInput{
		lastCursorX:    x,
		lastCursorY:    y,
		lastCursorMode: ebiten.CursorMode(),
	}
}

// Update 采样本帧鼠标位移
func (in *EbitenInput) Update() {
	x, y := ebiten.CursorPosition()
	mode := ebiten.CursorMode()

	if mode != in.lastCursorMode || in.skipDelta {
		in.mouseDX = 0
		in.mouseDY = 0
		in.skipDelta = false
	} else {
		in.mouseDX = float64(x - in.lastCursorX)
		in.mouseDY = float64(y - in.lastCursorY)
	}

	in.lastCursorX = x
	in.lastCursorY = y
	in.lastCursorMode = mode
}

// MoveAxis 返回 WASD 移动轴向
func (in *EbitenInput) MoveAxis() (float64, float64) {
	var x, z float64
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		x -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		x += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		z -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		z += 1
	}
	return x, z
}

// MouseDelta 返回本帧鼠标位移
func (in *EbitenInput) MouseDelta() (float64, float64) {
	return in.mouseDX, in.mouseDY
}

// WheelDelta 返回本帧滚轮刻度
func (in *EbitenInput) WheelDelta() float64 {
	_, yoff := ebiten.Wheel()
	return yoff
}

// RotateHeld 鼠标右键是否按住
func (in *EbitenInput) RotateHeld() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
}

// JumpJustPressed 空格键边沿
func (in *EbitenInput) JumpJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace)
}

// PunchJustPressed 鼠标左键边沿
func (in *EbitenInput) PunchJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

// SpinJustPressed E 键边沿
func (in *EbitenInput) SpinJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyE)
}

// EquipNextJustPressed Tab 键边沿
func (in *EbitenInput) EquipNextJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyTab)
}

// EquipPrevJustPressed Q 键边沿
func (in *EbitenInput) EquipPrevJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyQ)
}

// UnequipJustPressed X 键边沿
func (in *EbitenInput) UnequipJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyX)
}

// EquipSlotJustPressed 数字键边沿，返回槽位（0 起）或 -1
func (in *EbitenInput) EquipSlotJustPressed() int {
	for slot, key := range equipSlotKeys {
		if inpututil.IsKeyJustPressed(key) {
			return slot
		}
	}
	return -1
}

// ForceCloseJustPressed C 键边沿
func (in *EbitenInput) ForceCloseJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyC)
}

// ResetJustPressed R 键边沿
func (in *EbitenInput) ResetJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR)
}

// EbitenCursor 基于 ebiten 光标模式的锁定控制
type EbitenCursor struct{}

// NewEbitenCursor 创建光标控制器
func NewEbitenCursor() *EbitenCursor {
	return &EbitenCursor{}
}

// SetLocked 切换光标捕获状态
func (c *EbitenCursor) SetLocked(locked bool) {
	if locked {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

// IsLocked 返回光标是否被捕获
func (c *EbitenCursor) IsLocked() bool {
	return ebiten.CursorMode() == ebiten.CursorModeCaptured
}
