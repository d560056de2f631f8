// Package app 提供游戏应用的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来：加载配置（外部文件优先，
// 内嵌默认兜底）、装配场景管理器并实现 ebiten.Game 接口。
package app

import (
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/luckydoor/pkg/config"
	"github.com/gonewx/luckydoor/pkg/embedded"
	"github.com/gonewx/luckydoor/pkg/game"
	"github.com/gonewx/luckydoor/pkg/scenes"
	"github.com/gonewx/luckydoor/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Fullscreen 启动时直接进入全屏
	Fullscreen bool
	// TuningPath 外部数值配置路径，为空则用内嵌默认
	TuningPath string
	// ScenePath 外部场景配置路径，为空则用内嵌默认
	ScenePath string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	verbose                  bool
	screenshotPending        bool // F12 请求的截图在下一次 Draw 时落盘
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 配置加载失败不致命：记日志后退回内嵌默认值。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	tuning := loadTuning(cfg.TuningPath)
	sceneCfg := loadScene(cfg.ScenePath)

	// 输入源与光标控制共用一套 ebiten 实现
	input := utils.NewEbitenInput()
	cursor := utils.NewEbitenCursor()

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(sceneID string) game.Scene {
		return scenes.NewPlaygroundScene(tuning, sceneCfg, sceneManager, input, cursor)
	})
	sceneManager.LoadScene(scenes.PlaygroundSceneID)

	if cfg.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// loadTuning 加载数值配置: 外部文件 → 内嵌副本 → 代码默认值
func loadTuning(path string) *config.TuningConfig {
	if path != "" {
		if tuning, err := config.LoadTuningConfig(path); err == nil {
			log.Printf("[App] 数值配置: %s", path)
			return tuning
		} else {
			log.Printf("[App] 外部数值配置加载失败: %v, 改用内嵌默认", err)
		}
	}
	if embedded.IsInitialized() {
		if data, err := embedded.ReadFile(config.TuningConfigPath); err == nil {
			if tuning, err := config.LoadTuningConfigFromBytes(data); err == nil {
				return tuning
			}
		}
	}
	return config.DefaultTuningConfig()
}

// loadScene 加载场景配置，降级顺序同 loadTuning
func loadScene(path string) *config.SceneConfig {
	if path != "" {
		if sceneCfg, err := config.LoadSceneConfig(path); err == nil {
			log.Printf("[App] 场景配置: %s", path)
			return sceneCfg
		} else {
			log.Printf("[App] 外部场景配置加载失败: %v, 改用内嵌默认", err)
		}
	}
	if embedded.IsInitialized() {
		if data, err := embedded.ReadFile(config.SceneConfigPath); err == nil {
			if sceneCfg, err := config.LoadSceneConfigFromBytes(data); err == nil {
				return sceneCfg
			}
		}
	}
	return config.DefaultSceneConfig()
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.WindowWidth, config.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// F12 截图（绘制阶段才能读到像素，这里只挂起请求）
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		a.screenshotPending = true
	}

	a.sceneManager.Update(config.FrameDelta)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)

	if a.screenshotPending {
		a.screenshotPending = false
		a.saveScreenshot(screen)
	}
}

// saveScreenshot 把当前帧保存为 WebP
func (a *App) saveScreenshot(screen *ebiten.Image) {
	scale := 1.0
	if sm := game.GetGameState().GetSettingsManager(); sm != nil {
		scale = sm.GetSettings().ScreenshotScale
	}
	path, err := utils.SaveScreenshot(utils.CaptureScreen(screen), "screenshots", scale)
	if err != nil {
		log.Printf("[App] 截图保存失败: %v", err)
		return
	}
	log.Printf("[App] 截图已保存: %s", path)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// GetSceneManager 返回场景管理器
// 用于在游戏关闭时保存状态
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
