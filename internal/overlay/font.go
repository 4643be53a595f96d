// Package overlay draws the navigation bar as text on top of the active demo.
package overlay

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gekko3d/webgpu-demos/internal/layout"
)

// Vertex is one corner of a glyph quad.
type Vertex struct {
	Pos   [2]float32 `layout:"position"`
	UV    [2]float32 `layout:"uv"`
	Color [4]float32 `layout:"color"`
}

// VertexLayout is the packed layout of Vertex as the text pipeline reads it.
var VertexLayout = layout.MustOf[Vertex](layout.Packed)

// Item is a run of text placed in pixels from the top-left corner.
type Item struct {
	Text  string
	X, Y  float32
	Scale float32
	Color [4]float32
}

type glyph struct {
	uvMin   [2]float32
	uvMax   [2]float32
	size    [2]float32
	bearing [2]float32
	advance float32
}

const atlasSize = 512

// Atlas is a single-channel glyph atlas of the printable ASCII range.
type Atlas struct {
	Image  *image.Alpha
	glyphs map[rune]glyph
	face   font.Face
}

// NewAtlas rasterizes the Go regular font at size points.
func NewAtlas(size float64) (*Atlas, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}

	a := &Atlas{
		Image:  image.NewAlpha(image.Rect(0, 0, atlasSize, atlasSize)),
		glyphs: make(map[rune]glyph),
		face:   face,
	}

	x, y, rowHeight := 2, 2, 0
	for r := rune(32); r < 127; r++ {
		bounds, mask, maskp, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}
		w, h := bounds.Dx(), bounds.Dy()
		if x+w >= atlasSize {
			x = 2
			y += rowHeight + 4
			rowHeight = 0
		}
		if y+h >= atlasSize {
			return nil, fmt.Errorf("atlas full at %q", r)
		}

		draw.Draw(a.Image, image.Rect(x, y, x+w, y+h), mask, maskp, draw.Src)
		a.glyphs[r] = glyph{
			uvMin:   [2]float32{float32(x) / atlasSize, float32(y) / atlasSize},
			uvMax:   [2]float32{float32(x+w) / atlasSize, float32(y+h) / atlasSize},
			size:    [2]float32{float32(w), float32(h)},
			bearing: [2]float32{float32(bounds.Min.X), float32(bounds.Min.Y)},
			advance: float32(adv) / 64,
		}

		x += w + 4
		rowHeight = max(rowHeight, h)
	}
	return a, nil
}

// LineHeight is the distance between baselines at scale.
func (a *Atlas) LineHeight(scale float32) float32 {
	return float32(a.face.Metrics().Height.Ceil()) * scale
}

// Measure returns the pixel extent of text, which may span several lines.
func (a *Atlas) Measure(text string, scale float32) (float32, float32) {
	var width, line float32
	lines := 1
	for _, r := range text {
		if r == '\n' {
			width = max(width, line)
			line = 0
			lines++
			continue
		}
		if g, ok := a.glyphs[r]; ok {
			line += g.advance * scale
		}
	}
	return max(width, line), a.LineHeight(scale) * float32(lines)
}

// Vertices lays out items as two triangles per glyph in clip space for a
// surface of width x height pixels. Runes missing from the atlas are skipped.
func (a *Atlas) Vertices(items []Item, width, height int) []Vertex {
	out := make([]Vertex, 0, len(items)*6)
	sw, sh := float32(width), float32(height)
	ascent := float32(a.face.Metrics().Ascent.Ceil())
	lineHeight := a.LineHeight(1)

	for _, item := range items {
		x := item.X
		y := item.Y + ascent*item.Scale
		for _, r := range item.Text {
			if r == '\n' {
				x = item.X
				y += lineHeight * item.Scale
				continue
			}
			g, ok := a.glyphs[r]
			if !ok {
				continue
			}

			x0 := (x+g.bearing[0]*item.Scale)/sw*2 - 1
			y0 := 1 - (y+g.bearing[1]*item.Scale)/sh*2
			x1 := (x+(g.bearing[0]+g.size[0])*item.Scale)/sw*2 - 1
			y1 := 1 - (y+(g.bearing[1]+g.size[1])*item.Scale)/sh*2

			tl := Vertex{Pos: [2]float32{x0, y0}, UV: g.uvMin, Color: item.Color}
			tr := Vertex{Pos: [2]float32{x1, y0}, UV: [2]float32{g.uvMax[0], g.uvMin[1]}, Color: item.Color}
			bl := Vertex{Pos: [2]float32{x0, y1}, UV: [2]float32{g.uvMin[0], g.uvMax[1]}, Color: item.Color}
			br := Vertex{Pos: [2]float32{x1, y1}, UV: g.uvMax, Color: item.Color}
			out = append(out, tl, tr, bl, tr, br, bl)

			x += g.advance * item.Scale
		}
	}
	return out
}

// Pack writes vertices into a record buffer laid out by VertexLayout.
func Pack(vertices []Vertex) *layout.Buffer {
	buf := layout.NewBuffer(VertexLayout, len(vertices))
	for i, v := range vertices {
		buf.Set(i, "position", v.Pos[:]...)
		buf.Set(i, "uv", v.UV[:]...)
		buf.Set(i, "color", v.Color[:]...)
	}
	return buf
}
