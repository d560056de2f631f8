package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/luckydoor/pkg/app"
	"github.com/gonewx/luckydoor/pkg/config"
	"github.com/gonewx/luckydoor/pkg/embedded"
	"github.com/gonewx/luckydoor/pkg/game"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	fullscreen = flag.Bool("fullscreen", false, "启动时进入全屏")
	tuningPath = flag.String("tuning", "", "外部数值配置文件路径（默认使用内嵌配置）")
	scenePath  = flag.String("scene", "", "外部场景配置文件路径（默认使用内嵌配置）")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Fullscreen: *fullscreen,
		TuningPath: *tuningPath,
		ScenePath:  *scenePath,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGameWithOptions(gameApp, &ebiten.RunGameOptions{}); err != nil {
		log.Fatal(err)
	}

	// 窗口关闭后保存当前场景的状态
	if scene := gameApp.GetSceneManager().GetCurrentScene(); scene != nil {
		if saveable, ok := scene.(game.Saveable); ok {
			saveable.SaveOnExit()
		}
	}
}
