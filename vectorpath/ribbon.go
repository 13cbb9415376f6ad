package vectorpath

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	s2 "github.com/ArnaudBannier/s2-sub001"
)

// JoinMode controls how ribbon segments join.
type JoinMode uint8

const (
	// JoinMiter extends corners to keep the width, up to twice the half width.
	JoinMiter JoinMode = iota
	// JoinBevel averages the adjacent normals without extension.
	JoinBevel
)

// Ribbon is a triangle strip of constant width along a polyline, with the
// source X coordinate running along the arc length so a texture can tile.
// Buffers are kept between SetPoints calls.
type Ribbon struct {
	Width    float64
	Join     JoinMode
	Color    s2.Color
	Vertices []ebiten.Vertex
	Indices  []uint16

	cumLen []float64
}

// NewRibbon creates an empty white ribbon.
func NewRibbon(width float64) *Ribbon {
	return &Ribbon{Width: width, Color: s2.ColorWhite}
}

// SetPoints rebuilds the mesh. For N points: 2N vertices, 6(N-1) indices.
// Fewer than two points empty the mesh.
func (r *Ribbon) SetPoints(points []s2.Vec2) {
	if len(points) < 2 {
		r.Vertices = r.Vertices[:0]
		r.Indices = r.Indices[:0]
		return
	}

	n := len(points)
	numVerts := n * 2
	numInds := (n - 1) * 6

	// Grow vertex/index slices to high-water mark.
	if cap(r.Vertices) < numVerts {
		r.Vertices = make([]ebiten.Vertex, numVerts)
	}
	r.Vertices = r.Vertices[:numVerts]
	if cap(r.Indices) < numInds {
		r.Indices = make([]uint16, numInds)
	}
	r.Indices = r.Indices[:numInds]

	if cap(r.cumLen) < n {
		r.cumLen = make([]float64, n)
	}
	r.cumLen = r.cumLen[:n]
	r.cumLen[0] = 0
	for i := 1; i < n; i++ {
		r.cumLen[i] = r.cumLen[i-1] + points[i].Sub(points[i-1]).Length()
	}

	halfW := r.Width / 2
	c := r.Color
	cr, cg, cb, ca := float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A)

	for i := 0; i < n; i++ {
		var nrm s2.Vec2
		switch i {
		case 0:
			nrm = perpendicular(points[0], points[1])
		case n - 1:
			nrm = perpendicular(points[n-2], points[n-1])
		default:
			n0 := perpendicular(points[i-1], points[i])
			n1 := perpendicular(points[i], points[i+1])
			nrm = n0.Add(n1).Normalize()
			if r.Join == JoinMiter {
				// Clamp the extension so sharp corners do not spike.
				if dot := n0.Dot(nrm); dot > 0.1 {
					nrm = nrm.Scale(math.Min(1/dot, 2))
				}
			}
		}

		srcX := float32(r.cumLen[i])
		vi := i * 2
		r.Vertices[vi] = ebiten.Vertex{
			DstX:   float32(points[i].X + nrm.X*halfW),
			DstY:   float32(points[i].Y + nrm.Y*halfW),
			SrcX:   srcX,
			SrcY:   0,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
		r.Vertices[vi+1] = ebiten.Vertex{
			DstX:   float32(points[i].X - nrm.X*halfW),
			DstY:   float32(points[i].Y - nrm.Y*halfW),
			SrcX:   srcX,
			SrcY:   1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
	}

	// Two triangles per segment.
	for i := 0; i < n-1; i++ {
		ii := i * 6
		v := uint16(i * 2)
		r.Indices[ii+0] = v
		r.Indices[ii+1] = v + 1
		r.Indices[ii+2] = v + 2
		r.Indices[ii+3] = v + 1
		r.Indices[ii+4] = v + 3
		r.Indices[ii+5] = v + 2
	}
}

// SetCurve samples c at n points evenly spaced by arc length and rebuilds
// the mesh along them.
func (r *Ribbon) SetCurve(c *s2.PolyCurve, n int) {
	r.SetPoints(c.UniformPoints(n))
}

// Length returns the arc length of the polyline from the last SetPoints.
func (r *Ribbon) Length() float64 {
	if len(r.cumLen) == 0 {
		return 0
	}
	return r.cumLen[len(r.cumLen)-1]
}

// Draw renders the ribbon untextured onto dst.
func (r *Ribbon) Draw(dst *ebiten.Image) {
	if len(r.Indices) == 0 {
		return
	}
	src := whiteSource()
	verts := make([]ebiten.Vertex, len(r.Vertices))
	copy(verts, r.Vertices)
	for i := range verts {
		verts[i].SrcX, verts[i].SrcY = 1, 1
	}
	dst.DrawTriangles(verts, r.Indices, src, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// perpendicular returns the unit left-perpendicular of the segment from a to
// b, or (0, -1) for a degenerate segment.
func perpendicular(a, b s2.Vec2) s2.Vec2 {
	d := b.Sub(a)
	l := d.Length()
	if l < 1e-10 {
		return s2.Vec2{X: 0, Y: -1}
	}
	return s2.Vec2{X: -d.Y / l, Y: d.X / l}
}
