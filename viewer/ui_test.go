package viewer

import (
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestSelectorBarOverlayVersioning(t *testing.T) {
	sb := NewSelectorBar(basicfont.Face7x13, 64, ShapeCube, VariantSpin)
	if sb.Overlay() != nil {
		t.Fatalf("overlay drawn before the bar has a size")
	}

	sb.Resize(1280, 720)
	o := sb.Overlay()
	if o == nil || o.Version != 1 {
		t.Fatalf("first overlay = %+v", o)
	}
	if o.Image.Bounds() != image.Rect(0, 0, 1280, 720) {
		t.Fatalf("overlay bounds = %v", o.Image.Bounds())
	}
	if sb.Overlay().Version != 1 {
		t.Fatalf("unchanged bar was redrawn")
	}

	sb.SetActive(ShapeCube)
	if sb.Overlay().Version != 1 {
		t.Fatalf("selecting the active shape redrew the bar")
	}
	sb.SetActive(ShapeTorus)
	if sb.Overlay().Version != 2 {
		t.Fatalf("selection change was not redrawn")
	}
	sb.SetVariant(VariantThrow)
	if sb.Overlay().Version != 3 {
		t.Fatalf("variant change was not redrawn")
	}
}

func TestSelectorBarPixels(t *testing.T) {
	sb := NewSelectorBar(basicfont.Face7x13, 64, ShapeSphere, VariantSpin)
	sb.Resize(1280, 720)
	img := sb.Overlay().Image

	if got := img.RGBAAt(0, 0); got != barColour {
		t.Fatalf("bar pixel = %v, want %v", got, barColour)
	}
	if got := img.RGBAAt(0, 700); got != (color.RGBA{}) {
		t.Fatalf("scene area pixel = %v, want transparent", got)
	}
	for _, b := range sb.buttons {
		// Left edge, vertically centred: inside the rounded rect, clear of the label.
		got := img.RGBAAt(b.rect.Min.X+1, b.rect.Min.Y+b.rect.Dy()/2)
		want := inactiveButtonColour
		if b.shape == ShapeSphere {
			want = activeButtonColour
		}
		if got != want {
			t.Fatalf("%s button pixel = %v, want %v", b.shape, got, want)
		}
	}
}

func TestSelectorBarHitTest(t *testing.T) {
	sb := NewSelectorBar(basicfont.Face7x13, 64, ShapeCube, VariantSpin)
	sb.Resize(1280, 720)
	sb.Overlay()

	if len(sb.buttons) != len(Shapes) {
		t.Fatalf("%d buttons, want %d", len(sb.buttons), len(Shapes))
	}
	prevRight := -1
	for i, b := range sb.buttons {
		if b.shape != Shapes[i] {
			t.Fatalf("button %d is %s, want %s", i, b.shape, Shapes[i])
		}
		if b.rect.Min.X <= prevRight || b.rect.Max.Y > 64 {
			t.Fatalf("button %d misplaced: %v", i, b.rect)
		}
		prevRight = b.rect.Max.X
		c := b.rect.Min.Add(b.rect.Size().Div(2))
		shape, ok := sb.HitTest(float64(c.X), float64(c.Y))
		if !ok || shape != b.shape {
			t.Fatalf("HitTest at the centre of %s = %s, %v", b.shape, shape, ok)
		}
	}

	if _, ok := sb.HitTest(2, 2); ok {
		t.Fatalf("hit in the empty corner of the bar")
	}
	if _, ok := sb.HitTest(640, 400); ok {
		t.Fatalf("hit in the scene area")
	}
}
