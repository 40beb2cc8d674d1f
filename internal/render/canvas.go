package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/rook-computer/pixelscale/internal/render/layout"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Canvas implements Drawer on top of the virtual framebuffer pixels.
type Canvas struct {
	img        *image.RGBA
	fonts      *Fonts
	foreground color.RGBA
	background color.RGBA
}

func NewCanvas(img *image.RGBA, fonts *Fonts) *Canvas {
	return &Canvas{img: img, fonts: fonts, foreground: Foreground, background: Background}
}

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) FillBackground() {
	c.FillRect(c.img.Bounds(), c.background)
}

func (c *Canvas) FillRect(rect image.Rectangle, col color.Color) {
	draw.Draw(c.img, rect, &image.Uniform{C: col}, image.Point{}, draw.Src)
}

func (c *Canvas) MeasureText(text string, style TextStyle) TextMetrics {
	face := c.fonts.Face(style.Size)
	metrics := face.Metrics()
	return TextMetrics{
		Width:      font.MeasureString(face, text).Ceil(),
		Height:     metrics.Ascent.Ceil() + metrics.Descent.Ceil(),
		Ascent:     metrics.Ascent.Ceil(),
		Descent:    metrics.Descent.Ceil(),
		LineHeight: metrics.Height.Ceil(),
	}
}

func (c *Canvas) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	m := c.MeasureText(text, style)
	switch style.Align {
	case TextAlignCenter:
		x -= m.Width / 2
	case TextAlignRight:
		x -= m.Width
	}
	col := style.Color
	if col == nil {
		col = c.foreground
	}
	src := image.NewUniform(col)

	if tt := c.fonts.TrueType(); style.Size > 0 && tt != nil {
		ctx := freetype.NewContext()
		ctx.SetDPI(72)
		ctx.SetFont(tt)
		ctx.SetFontSize(float64(style.Size))
		ctx.SetHinting(font.HintingFull)
		ctx.SetClip(c.img.Bounds())
		ctx.SetDst(c.img)
		ctx.SetSrc(src)
		if _, err := ctx.DrawString(text, freetype.Pt(x, y+m.Ascent)); err == nil {
			return m
		}
	}

	drawer := &font.Drawer{Dst: c.img, Src: src, Face: c.fonts.Face(0)}
	drawer.Dot = fixed.P(x, y+m.Ascent)
	drawer.DrawString(text)
	return m
}

func (c *Canvas) ImageSize(img image.Image) (int, int) {
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) DrawImage(img image.Image, x, y int) {
	if img == nil {
		return
	}
	b := img.Bounds()
	draw.Draw(c.img, image.Rect(x, y, x+b.Dx(), y+b.Dy()), img, b.Min, draw.Over)
}

func (c *Canvas) DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode) {
	if img == nil || rect.Empty() {
		return
	}
	iw, ih := c.ImageSize(img)
	if iw == 0 || ih == 0 {
		return
	}
	dst := rect
	switch mode {
	case ScaleModeFit:
		w, h := rect.Dx(), rect.Dy()
		if iw*h > ih*w {
			h = ih * w / iw
		} else {
			w = iw * h / ih
		}
		dst = layout.CenterScaled(rect.Dx(), rect.Dy(), w, h, 0, 0).Add(rect.Min)
	case ScaleModeFill:
		w, h := rect.Dx(), rect.Dy()
		if iw*h > ih*w {
			w = iw * h / ih
		} else {
			h = ih * w / iw
		}
		dst = layout.CenterScaled(rect.Dx(), rect.Dy(), w, h, 0, 0).Add(rect.Min)
	case ScaleModeInteger:
		scale := min(rect.Dx()/iw, rect.Dy()/ih)
		dst = layout.CenterScaled(rect.Dx(), rect.Dy(), iw*scale, ih*scale, 0, 0).Add(rect.Min)
	}
	if dst.Empty() {
		return
	}
	clip := c.img.SubImage(rect).(*image.RGBA)
	xdraw.NearestNeighbor.Scale(clip, dst, img, img.Bounds(), xdraw.Over, nil)
}

func (c *Canvas) DrawTextCentered(text string) {
	w, h := c.Size()
	m := c.MeasureText(text, TextStyle{})
	c.DrawText(text, w/2, (h-m.Height)/2, TextStyle{Align: TextAlignCenter})
}

func (c *Canvas) DrawQRCode(payload string, rect image.Rectangle) error {
	modules, err := qrModules(payload)
	if err != nil {
		return err
	}
	return drawQRModules(c.img, rect, modules, color.Black, color.White)
}
