// Package vectorpath draws s2 geometry with Ebitengine. It turns view-space
// path commands into vector paths and builds ribbon meshes along sampled
// curves.
package vectorpath

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	s2 "github.com/ArnaudBannier/s2-sub001"
)

// whiteSubImage is the source for untextured triangles. The 1px border keeps
// sampling away from the image edge.
var whiteSubImage *ebiten.Image

func whiteSource() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(s2.ColorWhite.RGBA())
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// FromCommands builds a vector.Path from path commands.
func FromCommands(cmds []s2.PathCommand) *vector.Path {
	var p vector.Path
	AppendCommands(&p, cmds)
	return &p
}

// AppendCommands adds cmds to p.
func AppendCommands(p *vector.Path, cmds []s2.PathCommand) {
	for _, cmd := range cmds {
		pts := cmd.Points
		switch cmd.Kind {
		case s2.MoveToCommand:
			p.MoveTo(float32(pts[0].X), float32(pts[0].Y))
		case s2.LineToCommand:
			p.LineTo(float32(pts[0].X), float32(pts[0].Y))
		case s2.CubicToCommand:
			p.CubicTo(
				float32(pts[0].X), float32(pts[0].Y),
				float32(pts[1].X), float32(pts[1].Y),
				float32(pts[2].X), float32(pts[2].Y),
			)
		case s2.CloseCommand:
			p.Close()
		}
	}
}

// FromCurve builds a vector.Path from a curve. The curve should be in view
// space.
func FromCurve(c *s2.PolyCurve) *vector.Path {
	return FromCommands(c.PathCommands())
}

// StrokeOptions controls Stroke.
type StrokeOptions struct {
	Width     float64
	Color     s2.Color
	Join      vector.LineJoin
	Cap       vector.LineCap
	AntiAlias bool
}

// Stroke draws the outline of cmds onto dst.
func Stroke(dst *ebiten.Image, cmds []s2.PathCommand, opts StrokeOptions) {
	if len(cmds) == 0 || opts.Width <= 0 || opts.Color.A <= 0 {
		return
	}
	p := FromCommands(cmds)
	so := &vector.StrokeOptions{
		Width:    float32(opts.Width),
		LineJoin: opts.Join,
		LineCap:  opts.Cap,
	}
	vertices, indices := p.AppendVerticesAndIndicesForStroke(nil, nil, so)
	setVertexColors(vertices, opts.Color)
	dst.DrawTriangles(vertices, indices, whiteSource(), &ebiten.DrawTrianglesOptions{
		AntiAlias: opts.AntiAlias,
	})
}

// Fill fills the closed subpaths of cmds onto dst with the non-zero rule.
func Fill(dst *ebiten.Image, cmds []s2.PathCommand, c s2.Color, antiAlias bool) {
	if len(cmds) == 0 || c.A <= 0 {
		return
	}
	p := FromCommands(cmds)
	vertices, indices := p.AppendVerticesAndIndicesForFilling(nil, nil)
	setVertexColors(vertices, c)
	dst.DrawTriangles(vertices, indices, whiteSource(), &ebiten.DrawTrianglesOptions{
		AntiAlias: antiAlias,
		FillRule:  ebiten.FillRuleNonZero,
	})
}

// setVertexColors writes a premultiplied color into every vertex.
func setVertexColors(vertices []ebiten.Vertex, c s2.Color) {
	r := float32(c.R * c.A)
	g := float32(c.G * c.A)
	b := float32(c.B * c.A)
	a := float32(c.A)
	for i := range vertices {
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
		vertices[i].ColorR = r
		vertices[i].ColorG = g
		vertices[i].ColorB = b
		vertices[i].ColorA = a
	}
}
