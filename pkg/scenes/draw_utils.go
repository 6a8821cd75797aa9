package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	uiFace = text.NewGoXFace(basicfont.Face7x13)

	colorBackground  = color.RGBA{R: 18, G: 20, B: 28, A: 255}
	colorGrid        = color.RGBA{R: 32, G: 36, B: 48, A: 255}
	colorWall        = color.RGBA{R: 90, G: 96, B: 120, A: 255}
	colorPlayer      = color.RGBA{R: 80, G: 200, B: 255, A: 255}
	colorEnemy       = color.RGBA{R: 230, G: 70, B: 90, A: 255}
	colorHitFlash    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorProjectile  = color.RGBA{R: 255, G: 220, B: 90, A: 255}
	colorCollectable = color.RGBA{R: 120, G: 255, B: 140, A: 255}
	colorText        = color.RGBA{R: 235, G: 235, B: 240, A: 255}
	colorDim         = color.RGBA{R: 150, G: 150, B: 165, A: 255}
	colorPanel       = color.RGBA{R: 28, G: 30, B: 42, A: 235}
	colorOverlay     = color.RGBA{A: 170}
	colorRare        = color.RGBA{R: 255, G: 170, B: 60, A: 255}
)

// drawText 在 (x, y) 绘制文本，y 为文本顶部
func drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, uiFace, op)
}

// drawTextCentered 水平居中绘制文本
func drawTextCentered(screen *ebiten.Image, s string, cx, y float64, clr color.Color) {
	w, _ := text.Measure(s, uiFace, 0)
	drawText(screen, s, cx-w/2, y, clr)
}

// drawPanel 绘制带边框的面板
func drawPanel(screen *ebiten.Image, x, y, w, h float32, border color.Color) {
	vector.DrawFilledRect(screen, x, y, w, h, colorPanel, true)
	vector.StrokeRect(screen, x, y, w, h, 2, border, true)
}

// withAlpha 按透明度缩放颜色
func withAlpha(c color.RGBA, a float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
