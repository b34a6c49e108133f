package viewer

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var (
	barColour            = color.RGBA{0x1f, 0x29, 0x37, 0xff}
	activeButtonColour   = color.RGBA{0x22, 0xc5, 0x5e, 0xff}
	inactiveButtonColour = color.RGBA{0x4b, 0x55, 0x63, 0xff}
	activeTextColour     = color.RGBA{0xff, 0xff, 0xff, 0xff}
	inactiveTextColour   = color.RGBA{0xe5, 0xe7, 0xeb, 0xff}
	instructionColour    = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

const (
	buttonPaddingX = 16
	buttonPaddingY = 8
	buttonGap      = 16
	buttonRadius   = 4
	// Distance from the top of the window to the instruction line.
	instructionTop = 80
)

type button struct {
	shape Shape
	rect  image.Rectangle
}

// SelectorBar draws the shape buttons and the instruction line into an
// overlay image and maps pointer positions back to buttons. The image is only
// redrawn when something it shows changes.
type SelectorBar struct {
	face      font.Face
	barHeight int
	active    Shape
	variant   Variant
	width     int
	height    int
	buttons   []button

	overlay metadata.Overlay
	dirty   bool
}

func NewSelectorBar(face font.Face, barHeight int, active Shape, variant Variant) *SelectorBar {
	return &SelectorBar{
		face:      face,
		barHeight: barHeight,
		active:    active,
		variant:   variant,
		dirty:     true,
	}
}

func (sb *SelectorBar) Active() Shape {
	return sb.active
}

func (sb *SelectorBar) SetActive(shape Shape) {
	if sb.active != shape {
		sb.active = shape
		sb.dirty = true
	}
}

func (sb *SelectorBar) SetVariant(variant Variant) {
	if sb.variant != variant {
		sb.variant = variant
		sb.dirty = true
	}
}

func (sb *SelectorBar) SetFace(face font.Face, barHeight int) {
	sb.face = face
	sb.barHeight = barHeight
	sb.dirty = true
}

func (sb *SelectorBar) Resize(width, height uint32) {
	if sb.width != int(width) || sb.height != int(height) {
		sb.width = int(width)
		sb.height = int(height)
		sb.dirty = true
	}
}

// Overlay returns the current image, redrawing it first if needed. It returns
// nil while the bar has no size.
func (sb *SelectorBar) Overlay() *metadata.Overlay {
	if sb.width <= 0 || sb.height <= 0 {
		return nil
	}
	if sb.dirty {
		sb.layout()
		sb.draw()
		sb.overlay.Version++
		sb.dirty = false
	}
	return &sb.overlay
}

// Contains reports whether the point lies on the bar itself.
func (sb *SelectorBar) Contains(x, y float64) bool {
	return y >= 0 && y < float64(sb.barHeight) && x >= 0 && x < float64(sb.width)
}

// HitTest returns the shape whose button contains the point.
func (sb *SelectorBar) HitTest(x, y float64) (Shape, bool) {
	if sb.dirty {
		sb.layout()
	}
	p := image.Pt(int(x), int(y))
	for _, b := range sb.buttons {
		if p.In(b.rect) {
			return b.shape, true
		}
	}
	return sb.active, false
}

func (sb *SelectorBar) layout() {
	metrics := sb.face.Metrics()
	textHeight := metrics.Height.Ceil()
	buttonHeight := textHeight + 2*buttonPaddingY

	widths := make([]int, len(Shapes))
	total := 0
	for i, shape := range Shapes {
		widths[i] = font.MeasureString(sb.face, shape.Title()).Ceil() + 2*buttonPaddingX
		total += widths[i]
	}
	total += buttonGap * (len(Shapes) - 1)

	x := (sb.width - total) / 2
	y := (sb.barHeight - buttonHeight) / 2
	sb.buttons = sb.buttons[:0]
	for i, shape := range Shapes {
		sb.buttons = append(sb.buttons, button{
			shape: shape,
			rect:  image.Rect(x, y, x+widths[i], y+buttonHeight),
		})
		x += widths[i] + buttonGap
	}
}

func (sb *SelectorBar) draw() {
	bounds := image.Rect(0, 0, sb.width, sb.height)
	img := sb.overlay.Image
	if img == nil || img.Rect != bounds {
		img = image.NewRGBA(bounds)
		sb.overlay.Image = img
	} else {
		draw.Draw(img, img.Rect, image.Transparent, image.Point{}, draw.Src)
	}

	draw.Draw(img, image.Rect(0, 0, sb.width, sb.barHeight), image.NewUniform(barColour), image.Point{}, draw.Src)

	for _, b := range sb.buttons {
		fill, text := inactiveButtonColour, inactiveTextColour
		if b.shape == sb.active {
			fill, text = activeButtonColour, activeTextColour
		}
		fillRoundedRect(img, b.rect, buttonRadius, fill)
		sb.drawCentered(img, b.shape.Title(), b.rect, text)
	}

	lineHeight := sb.face.Metrics().Height.Ceil()
	line := image.Rect(0, instructionTop, sb.width, instructionTop+lineHeight)
	sb.drawCentered(img, sb.variant.Instructions(), line, instructionColour)
}

func (sb *SelectorBar) drawCentered(dst draw.Image, text string, rect image.Rectangle, c color.Color) {
	metrics := sb.face.Metrics()
	width := font.MeasureString(sb.face, text).Ceil()
	x := rect.Min.X + (rect.Dx()-width)/2
	// Baseline so the line box is centered vertically.
	y := rect.Min.Y + (rect.Dy()-metrics.Height.Ceil())/2 + metrics.Ascent.Ceil()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: sb.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// fillRoundedRect fills r with c, leaving the corners outside a circle of the
// given radius untouched.
func fillRoundedRect(dst *image.RGBA, r image.Rectangle, radius int, c color.RGBA) {
	r = r.Intersect(dst.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cx, cy := x, y
			switch {
			case x < r.Min.X+radius:
				cx = r.Min.X + radius
			case x >= r.Max.X-radius:
				cx = r.Max.X - radius - 1
			}
			switch {
			case y < r.Min.Y+radius:
				cy = r.Min.Y + radius
			case y >= r.Max.Y-radius:
				cy = r.Max.Y - radius - 1
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			dst.SetRGBA(x, y, c)
		}
	}
}
