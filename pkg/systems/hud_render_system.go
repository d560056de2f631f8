package systems

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/luckydoor/internal/mathutil"
	"github.com/gonewx/luckydoor/pkg/components"
	"github.com/gonewx/luckydoor/pkg/config"
	"github.com/gonewx/luckydoor/pkg/ecs"
	"github.com/gonewx/luckydoor/pkg/game"
)

// HUDRenderSystem 调试视图与界面文本渲染系统
//
// 画面保真不是目标：绘制阶段把场地俯视图（世界 XZ 平面）画成
// 矢量图形——围墙、门（颜色区分开关状态）、转盘指针、角色朝向
// 和相机标记，再叠加 HUD 文本。全部玩法状态由 ECS 无头结算，
// 本系统只读不写。
type HUDRenderSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	arena         config.ArenaConfig

	// pixelsPerMeter 世界米到屏幕像素的比例，按场地大小预计算
	pixelsPerMeter float64
}

// NewHUDRenderSystem 创建渲染系统
func NewHUDRenderSystem(em *ecs.EntityManager, gs *game.GameState, arena config.ArenaConfig) *HUDRenderSystem {
	return &HUDRenderSystem{
		entityManager:  em,
		gameState:      gs,
		arena:          arena,
		pixelsPerMeter: fitScale(arena, config.WindowWidth, config.WindowHeight),
	}
}

// fitScale 计算让场地（含边距）撑满窗口的比例
func fitScale(arena config.ArenaConfig, screenW, screenH int) float64 {
	margin := 2.0
	sx := float64(screenW) / (arena.Width + 2*margin)
	sy := float64(screenH) / (arena.Depth + 2*margin)
	return math.Min(sx, sy)
}

// worldToScreen 世界坐标 (X,Z) 映射到屏幕像素
//
// 世界原点在屏幕中心，+X 向右，+Z 向上（屏幕 Y 反向）。
func (s *HUDRenderSystem) worldToScreen(pos mathutil.Vec3) (float32, float32) {
	x := float64(config.WindowWidth)/2 + pos[0]*s.pixelsPerMeter
	y := float64(config.WindowHeight)/2 - pos[2]*s.pixelsPerMeter
	return float32(x), float32(y)
}

// Draw 绘制一帧
func (s *HUDRenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 28, B: 34, A: 255})

	s.drawArena(screen)
	s.drawDoors(screen)
	s.drawRoulette(screen)
	s.drawPlayer(screen)
	s.drawCamera(screen)
	s.drawTexts(screen)
}

// drawArena 场地边框
func (s *HUDRenderSystem) drawArena(screen *ebiten.Image) {
	halfW := s.arena.Width / 2
	halfD := s.arena.Depth / 2
	x0, y0 := s.worldToScreen(mathutil.Vec3{-halfW, 0, halfD})
	x1, y1 := s.worldToScreen(mathutil.Vec3{halfW, 0, -halfD})
	vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0,
		float32(s.arena.WallThickness*s.pixelsPerMeter),
		color.RGBA{R: 90, G: 90, B: 100, A: 255}, true)
}

// drawDoors 门板画成从铰链出发的线段，角度取自铰链实际偏航
func (s *HUDRenderSystem) drawDoors(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.DoorComponent](s.entityManager) {
		door, _ := ecs.GetComponent[*components.DoorComponent](s.entityManager, id)
		hinge, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, door.Hinge)
		if !ok {
			continue
		}

		clr := color.RGBA{R: 170, G: 120, B: 60, A: 255}
		if door.IsOpened {
			clr = color.RGBA{R: 80, G: 200, B: 120, A: 255}
		}

		// 门板沿铰链局部 +X 展开，角度直接取铰链当前姿态
		bodyDir := mathutil.QuatRotateVec3(hinge.Rotation, mathutil.Vec3{1, 0, 0})
		tip := hinge.Position.Add(bodyDir.Scale(1.2))

		x0, y0 := s.worldToScreen(hinge.Position)
		x1, y1 := s.worldToScreen(tip)
		vector.StrokeLine(screen, x0, y0, x1, y1, 5, clr, true)
		vector.DrawFilledCircle(screen, x0, y0, 4, color.RGBA{R: 220, G: 220, B: 220, A: 255}, true)

		label := fmt.Sprintf("door %d", door.Index)
		if door.IsOpened {
			label += " [OPEN]"
		}
		ebitenutil.DebugPrintAt(screen, label, int(x0)-20, int(y0)-24)
	}
}

// drawRoulette 转盘画成圆盘 + 分区刻线 + 当前角度的指针
func (s *HUDRenderSystem) drawRoulette(screen *ebiten.Image) {
	ids := ecs.GetEntitiesWith2[
		*components.RouletteComponent,
		*components.TransformComponent,
	](s.entityManager)
	for _, id := range ids {
		wheel, _ := ecs.GetComponent[*components.RouletteComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		cx, cy := s.worldToScreen(transform.Position)
		radius := float32(1.0 * s.pixelsPerMeter)
		vector.StrokeCircle(screen, cx, cy, radius, 2, color.RGBA{R: 200, G: 180, B: 80, A: 255}, true)

		for i := 0; i < wheel.PartitionCount; i++ {
			rad := mathutil.Deg2Rad(float64(i) * wheel.SectorWidthDeg())
			ex := cx + radius*float32(math.Sin(rad))
			ey := cy - radius*float32(math.Cos(rad))
			vector.StrokeLine(screen, cx, cy, ex, ey, 1, color.RGBA{R: 90, G: 80, B: 40, A: 255}, true)
		}

		rad := mathutil.Deg2Rad(wheel.CurrentAngle)
		nx := cx + radius*0.85*float32(math.Sin(rad))
		ny := cy - radius*0.85*float32(math.Cos(rad))
		vector.StrokeLine(screen, cx, cy, nx, ny, 3, color.RGBA{R: 240, G: 80, B: 80, A: 255}, true)
	}
}

// drawPlayer 角色画成圆点 + 朝向短线，冻结时变灰
func (s *HUDRenderSystem) drawPlayer(screen *ebiten.Image) {
	ids := ecs.GetEntitiesWith2[
		*components.PlayerComponent,
		*components.TransformComponent,
	](s.entityManager)
	for _, id := range ids {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		clr := color.RGBA{R: 90, G: 160, B: 240, A: 255}
		if player.IsFrozen {
			clr = color.RGBA{R: 130, G: 130, B: 140, A: 255}
		}

		x, y := s.worldToScreen(transform.Position)
		vector.DrawFilledCircle(screen, x, y, 7, clr, true)

		head := transform.Position.Add(transform.Forward().Scale(0.8))
		hx, hy := s.worldToScreen(head)
		vector.StrokeLine(screen, x, y, hx, hy, 2, clr, true)
	}
}

// drawCamera 相机画成小三角标记
func (s *HUDRenderSystem) drawCamera(screen *ebiten.Image) {
	ids := ecs.GetEntitiesWith2[
		*components.CameraRigComponent,
		*components.TransformComponent,
	](s.entityManager)
	for _, id := range ids {
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		x, y := s.worldToScreen(transform.Position)
		vector.StrokeCircle(screen, x, y, 5, 2, color.RGBA{R: 240, G: 240, B: 120, A: 255}, true)

		tip := transform.Position.Add(transform.Forward().Flatten().Scale(1.0))
		tx, ty := s.worldToScreen(tip)
		vector.StrokeLine(screen, x, y, tx, ty, 1, color.RGBA{R: 240, G: 240, B: 120, A: 255}, true)
	}
}

// drawTexts 状态行、转盘结果和倒计时大字
func (s *HUDRenderSystem) drawTexts(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.HUDComponent](s.entityManager) {
		hud, _ := ecs.GetComponent[*components.HUDComponent](s.entityManager, id)

		for i, line := range hud.StatusLines {
			ebitenutil.DebugPrintAt(screen, line, 8, 8+i*16)
		}
		if hud.ResultVisible {
			ebitenutil.DebugPrintAt(screen, hud.ResultText, config.WindowWidth/2-60, 40)
		}
		if hud.CountdownVisible {
			ebitenutil.DebugPrintAt(screen, hud.CountdownText, config.WindowWidth/2-60, 64)
		}
	}
}
