package utils

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
)

// CaptureScreen 把屏幕内容复制为 RGBA 图像
//
// 只能在 Draw 阶段调用，其他时机读不到完整帧。
func CaptureScreen(screen *ebiten.Image) *image.RGBA {
	b := screen.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)
	return img
}

// ScaleImage 按比例缩小图像
//
// 用 CatmullRom 滤波重采样，scale >= 1 时原样返回。
// 屏幕截图不含透明像素，无需预乘 alpha 处理。
func ScaleImage(img *image.RGBA, scale float64) *image.RGBA {
	if scale >= 1.0 {
		return img
	}

	b := img.Bounds()
	w := int(float64(b.Dx())*scale + 0.5)
	h := int(float64(b.Dy())*scale + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// SaveScreenshot 把图像按比例缩放后编码为 WebP 写入 dir
//
// 文件名带时间戳（精确到毫秒），返回实际写入路径。
// 目录不存在时自动创建。
func SaveScreenshot(img *image.RGBA, dir string, scale float64) (string, error) {
	scaled := ScaleImage(img, scale)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("创建截图目录失败: %w", err)
	}

	now := time.Now()
	name := fmt.Sprintf("shot_%s_%03d.webp", now.Format("20060102_150405"), now.Nanosecond()/1e6)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("创建截图文件失败: %w", err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, scaled, nil); err != nil {
		return "", fmt.Errorf("WebP 编码失败: %w", err)
	}

	return path, nil
}
