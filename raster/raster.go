// Package raster is the pure-Go software rasterization backend. It
// implements noctilucence.Backend with golang.org/x/image/vector scanline
// fills and basicfont text, so frame capture needs no GPU or window system.
package raster

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/efouad/noctilucence"
)

// circleSegments is the polygon approximation used for circles and arcs.
// At typical dial radii (under 1000 px) the chord error stays below half a
// pixel.
const circleSegments = 96

// Renderer rasterizes with antialiased scanline fills. The zero value is
// ready to use.
type Renderer struct{}

// New returns a Renderer.
func New() *Renderer { return &Renderer{} }

type vec = noctilucence.Vec2

// fill rasterizes a set of closed paths with the nonzero winding rule.
func fill(dst *image.RGBA, loops [][]vec, col noctilucence.Color) {
	if len(loops) == 0 {
		return
	}
	b := dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.DrawOp = draw.Over
	for _, loop := range loops {
		if len(loop) < 3 {
			continue
		}
		r.MoveTo(float32(loop[0].X-float64(b.Min.X)), float32(loop[0].Y-float64(b.Min.Y)))
		for _, p := range loop[1:] {
			r.LineTo(float32(p.X-float64(b.Min.X)), float32(p.Y-float64(b.Min.Y)))
		}
		r.ClosePath()
	}
	src := image.NewUniform(col.NRGBA())
	r.Draw(dst, b, src, image.Point{})
}

// circlePoints returns the vertex loop of a circle, wound clockwise in
// screen coordinates when dir is +1 and counterclockwise when -1.
func circlePoints(c vec, radius, dir float64) []vec {
	pts := make([]vec, circleSegments)
	for i := range pts {
		t := dir * 2 * math.Pi * float64(i) / circleSegments
		pts[i] = vec{X: c.X + radius*math.Cos(t), Y: c.Y + radius*math.Sin(t)}
	}
	return pts
}

// arcPoints samples the arc from a0 to a1 in screen angle.
func arcPoints(c vec, radius, a0, a1 float64) []vec {
	n := circleSegments
	pts := make([]vec, n+1)
	for i := 0; i <= n; i++ {
		t := a0 + (a1-a0)*float64(i)/float64(n)
		pts[i] = vec{X: c.X + radius*math.Cos(t), Y: c.Y + radius*math.Sin(t)}
	}
	return pts
}

// segmentQuad returns the stroke rectangle of a segment.
func segmentQuad(p0, p1 vec, width float64) []vec {
	n := p1.Sub(p0).Norm().Perp().Scale(width / 2)
	return []vec{p0.Add(n), p1.Add(n), p1.Sub(n), p0.Sub(n)}
}

func (r *Renderer) FillDisk(dst *image.RGBA, c vec, radius float64, col noctilucence.Color) {
	fill(dst, [][]vec{circlePoints(c, radius, 1)}, col)
}

func (r *Renderer) StrokeCircle(dst *image.RGBA, c vec, radius float64, width int, col noctilucence.Color) {
	h := float64(width) / 2
	outer := circlePoints(c, radius+h, 1)
	inner := circlePoints(c, math.Max(radius-h, 0), -1)
	fill(dst, [][]vec{outer, inner}, col)
}

func (r *Renderer) StrokeArc(dst *image.RGBA, c vec, radius, startAng, endAng float64, width int, col noctilucence.Color) {
	r.StrokePolyline(dst, arcPoints(c, radius, startAng, endAng), false, width, col)
}

func (r *Renderer) StrokeLine(dst *image.RGBA, p0, p1 vec, width int, col noctilucence.Color) {
	if p0 == p1 {
		r.FillDisk(dst, p0, float64(width)/2, col)
		return
	}
	fill(dst, [][]vec{segmentQuad(p0, p1, float64(width))}, col)
}

func (r *Renderer) StrokePolyline(dst *image.RGBA, pts []vec, closed bool, width int, col noctilucence.Color) {
	if len(pts) < 2 {
		return
	}
	var loops [][]vec
	w := float64(width)
	for i := 1; i < len(pts); i++ {
		if pts[i] != pts[i-1] {
			loops = append(loops, segmentQuad(pts[i-1], pts[i], w))
		}
	}
	if closed && pts[len(pts)-1] != pts[0] {
		loops = append(loops, segmentQuad(pts[len(pts)-1], pts[0], w))
	}
	fill(dst, loops, col)
	// Round the joints so adjacent quads meet cleanly.
	if w > 1 {
		for _, p := range pts {
			r.FillDisk(dst, p, w/2, col)
		}
	}
}

func (r *Renderer) FillPolygon(dst *image.RGBA, pts []vec, col noctilucence.Color) {
	if len(pts) < 3 {
		return
	}
	fill(dst, [][]vec{pts}, col)
}

func (r *Renderer) FillWedge(dst *image.RGBA, c vec, radius, startAng, endAng float64, col noctilucence.Color) {
	arc := arcPoints(c, radius, startAng, endAng)
	loop := append([]vec{c}, arc...)
	fill(dst, [][]vec{loop}, col)
}

// DrawText draws with the fixed 7x13 bitmap face, scaled to the requested
// size. p is the baseline origin of the run. The nominal glyph height at
// scale 1 is one pixel per unit of scale times the face's 13 px height, so
// callers pass scale = textScale * resolution as with the shape primitives.
func (r *Renderer) DrawText(dst *image.RGBA, p vec, text string, scale float64, col noctilucence.Color) {
	if text == "" || scale <= 0 {
		return
	}
	face := basicfont.Face7x13

	// Render at native size on a transparent strip.
	width := font.MeasureString(face, text).Ceil()
	if width == 0 {
		return
	}
	ascent := face.Metrics().Ascent.Ceil()
	height := face.Metrics().Height.Ceil()
	strip := image.NewRGBA(image.Rect(0, 0, width, height))
	d := font.Drawer{
		Dst:  strip,
		Src:  image.NewUniform(col.NRGBA()),
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(text)

	// Scale the strip onto the destination, keeping p on the baseline.
	outW := int(float64(width)*scale + 0.5)
	outH := int(float64(height)*scale + 0.5)
	if outW < 1 || outH < 1 {
		return
	}
	top := int(p.Y - float64(ascent)*scale + 0.5)
	rect := image.Rect(int(p.X+0.5), top, int(p.X+0.5)+outW, top+outH)
	draw.ApproxBiLinear.Scale(dst, rect, strip, strip.Bounds(), draw.Over, nil)
}

var _ noctilucence.Backend = (*Renderer)(nil)
