package viewer

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/png" // bmfont page sheets
	"os"
	"path/filepath"
	"strings"

	"github.com/fzipp/bmfont"
	"github.com/golang/freetype/truetype"
	"github.com/spaghettifunk/prism/engine/core"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type bitmapGlyph struct {
	x, y, width, height int
	xOffset, yOffset    int
	xAdvance            int
	page                int
}

// bitmapFace adapts a BMFont atlas to font.Face so it can be drawn with a
// font.Drawer like any other face.
type bitmapFace struct {
	name       string
	lineHeight int
	base       int
	glyphs     map[rune]bitmapGlyph
	kerning    map[[2]rune]int
	pages      map[int]*image.Alpha
}

// LoadBitmapFace loads a BMFont text descriptor and its page images, which
// are looked up next to the descriptor. Pages are kept as alpha masks.
func LoadBitmapFace(path string) (font.Face, error) {
	f, err := bmfont.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFontLoad, path, err)
	}
	d := f.Descriptor

	face := &bitmapFace{
		name:       d.Info.Face,
		lineHeight: int(d.Common.LineHeight),
		base:       int(d.Common.Base),
		glyphs:     make(map[rune]bitmapGlyph, len(d.Chars)),
		kerning:    make(map[[2]rune]int, len(d.Kerning)),
		pages:      make(map[int]*image.Alpha, len(d.Pages)),
	}

	for id, sheet := range f.PageSheets {
		alpha := image.NewAlpha(sheet.Bounds())
		draw.Draw(alpha, alpha.Bounds(), sheet, sheet.Bounds().Min, draw.Src)
		face.pages[id] = alpha
	}

	for _, g := range d.Chars {
		face.glyphs[rune(g.ID)] = bitmapGlyph{
			x:        int(g.X),
			y:        int(g.Y),
			width:    int(g.Width),
			height:   int(g.Height),
			xOffset:  int(g.XOffset),
			yOffset:  int(g.YOffset),
			xAdvance: int(g.XAdvance),
			page:     int(g.Page),
		}
	}

	for p, k := range d.Kerning {
		face.kerning[[2]rune{rune(p.First), rune(p.Second)}] = int(k.Amount)
	}

	core.LogInfo("loaded bitmap font '%s' (%d glyphs, %d pages)", face.name, len(face.glyphs), len(face.pages))
	return face, nil
}

func (f *bitmapFace) Close() error {
	return nil
}

func (f *bitmapFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	g, ok := f.glyphs[r]
	if !ok {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	page, ok := f.pages[g.page]
	if !ok {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	x := dot.X.Round() + g.xOffset
	y := dot.Y.Round() - f.base + g.yOffset
	dr := image.Rect(x, y, x+g.width, y+g.height)
	return dr, page, image.Pt(g.x, g.y), fixed.I(g.xAdvance), true
}

func (f *bitmapFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	g, ok := f.glyphs[r]
	if !ok {
		return fixed.Rectangle26_6{}, 0, false
	}
	top := g.yOffset - f.base
	bounds := fixed.R(g.xOffset, top, g.xOffset+g.width, top+g.height)
	return bounds, fixed.I(g.xAdvance), true
}

func (f *bitmapFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	g, ok := f.glyphs[r]
	if !ok {
		return 0, false
	}
	return fixed.I(g.xAdvance), true
}

func (f *bitmapFace) Kern(r0, r1 rune) fixed.Int26_6 {
	return fixed.I(f.kerning[[2]rune{r0, r1}])
}

func (f *bitmapFace) Metrics() font.Metrics {
	return font.Metrics{
		Height:    fixed.I(f.lineHeight),
		Ascent:    fixed.I(f.base),
		Descent:   fixed.I(f.lineHeight - f.base),
		XHeight:   fixed.I(f.base / 2),
		CapHeight: fixed.I(f.base),
		CaretSlope: image.Point{
			X: 0,
			Y: 1,
		},
	}
}

// LoadTrueTypeFace parses a TrueType file into a face of size points at 72 DPI.
func LoadTrueTypeFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFontLoad, err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFontLoad, path, err)
	}
	core.LogInfo("loaded truetype font '%s' at %vpt", f.Name(truetype.NameIDFontFullName), size)
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// LoadFace returns the configured face: TrueType for .ttf files, BMFont for
// anything else. An empty or unusable path gives the built-in 7x13 face.
func LoadFace(path string, size float64) font.Face {
	if path == "" {
		return basicfont.Face7x13
	}
	var (
		face font.Face
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf":
		face, err = LoadTrueTypeFace(path, size)
	default:
		face, err = LoadBitmapFace(path)
	}
	if err != nil {
		core.LogWarn("%s, falling back to the built-in font", err)
		return basicfont.Face7x13
	}
	return face
}
