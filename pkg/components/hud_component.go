package components

// HUDComponent 界面文本组件
//
// 系统把要展示的文本写进来，渲染系统每帧读取绘制。
// 倒计时文本遵循 set-text / show / hide 语义：
// Visible 为 false 时保留文本内容但不绘制。
type HUDComponent struct {
	// CountdownText 倒计时大字
	CountdownText string

	// CountdownVisible 倒计时是否显示
	CountdownVisible bool

	// ResultText 转盘结果提示
	ResultText string

	// ResultVisible 结果提示是否显示
	ResultVisible bool

	// StatusLines 左上角状态行（模式、装备、操作提示）
	StatusLines []string
}

// NewHUDComponent 创建空HUD
func NewHUDComponent() *HUDComponent {
	return &HUDComponent{}
}

// SetCountdown 设置并显示倒计时文本
func (h *HUDComponent) SetCountdown(text string) {
	h.CountdownText = text
	h.CountdownVisible = true
}

// HideCountdown 隐藏倒计时
func (h *HUDComponent) HideCountdown() {
	h.CountdownVisible = false
}

// SetResult 设置并显示结果提示
func (h *HUDComponent) SetResult(text string) {
	h.ResultText = text
	h.ResultVisible = true
}

// HideResult 隐藏结果提示
func (h *HUDComponent) HideResult() {
	h.ResultVisible = false
}
