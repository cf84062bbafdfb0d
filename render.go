package noctilucence

import (
	"image"
)

// Backend is the rasterization collaborator. The engine resolves every shape
// to pixel-space coordinates (y increasing downward) and colors; the backend
// owns the actual pixel work. raster.Renderer is the in-repo software
// implementation.
type Backend interface {
	// FillDisk fills a circle of radius px centered at c.
	FillDisk(dst *image.RGBA, c Vec2, radius float64, col Color)
	// StrokeCircle strokes a circle outline with the given line width.
	StrokeCircle(dst *image.RGBA, c Vec2, radius float64, width int, col Color)
	// StrokeArc strokes a circular arc swept from startAng to endAng
	// (radians, screen orientation: positive sweeps clockwise on screen).
	StrokeArc(dst *image.RGBA, c Vec2, radius, startAng, endAng float64, width int, col Color)
	// StrokeLine strokes a straight segment.
	StrokeLine(dst *image.RGBA, p0, p1 Vec2, width int, col Color)
	// StrokePolyline strokes consecutive segments, optionally closing the
	// loop.
	StrokePolyline(dst *image.RGBA, pts []Vec2, closed bool, width int, col Color)
	// FillPolygon fills a closed vertex loop.
	FillPolygon(dst *image.RGBA, pts []Vec2, col Color)
	// FillWedge fills a circular sector between two angles (screen
	// orientation).
	FillWedge(dst *image.RGBA, c Vec2, radius, startAng, endAng float64, col Color)
	// DrawText draws a text run with its baseline origin at p. scale
	// multiplies the backend's nominal glyph size.
	DrawText(dst *image.RGBA, p Vec2, text string, scale float64, col Color)
}

// lineStretch is the half length, in mm, by which an infinite line is
// extended past any plausible frame bound before reaching the backend.
const lineStretch = 1e5

// frameProjection maps scene millimeters to pixel coordinates:
// pixel = origin + (x, -y) * resolution. The y flip puts +y up on screen.
type frameProjection struct {
	resolution float64 // px per mm
	origin     image.Point
}

func (fp frameProjection) point(v Vec2) Vec2 {
	return Vec2{
		float64(fp.origin.X) + v.X*fp.resolution,
		float64(fp.origin.Y) - v.Y*fp.resolution,
	}
}

func (fp frameProjection) points(vs []Vec2) []Vec2 {
	out := make([]Vec2, len(vs))
	for i, v := range vs {
		out[i] = fp.point(v)
	}
	return out
}

// render composites this entity onto the buffer. Invisible entities are
// skipped. Opaque entities draw directly; partially transparent ones draw
// into a scratch copy of the buffer which is then weighted back over the
// original with the entity's effective opacity. The scratch lives only for
// the duration of this call.
func (e *Entity) render(buf *image.RGBA, b Backend, fp frameProjection) {
	if !e.Visible {
		return
	}
	if e.Kind == KindLeader && e.Extension <= 0 {
		return
	}
	switch {
	case e.Opacity >= 1:
		e.drawSelf(buf, b, fp)
	case e.Opacity > 0:
		scratch := cloneRGBA(buf)
		e.drawSelf(scratch, b, fp)
		blendOver(buf, scratch, e.EffectiveOpacity())
	}
}

// drawSelf rasterizes this entity's own representation, recursing into
// components for assembly kinds. Counterclockwise scene angles are negated
// into the backend's y-down screen orientation.
func (e *Entity) drawSelf(buf *image.RGBA, b Backend, fp frameProjection) {
	switch e.Kind {
	case KindPoint:
		b.FillDisk(buf, fp.point(e.GlobalPos().XY()), float64(e.Size), e.Color)

	case KindLine:
		p := e.components[0].GlobalPos()
		p0 := p.Add(e.Slope.Scale(lineStretch))
		p1 := p.Sub(e.Slope.Scale(lineStretch))
		b.StrokeLine(buf, fp.point(p0.XY()), fp.point(p1.XY()), e.Size, e.Color)

	case KindLineSeg:
		b.StrokeLine(buf,
			fp.point(e.SegStart().GlobalPos().XY()),
			fp.point(e.SegEnd().GlobalPos().XY()),
			e.Size, e.Color)

	case KindCircle:
		b.StrokeCircle(buf, fp.point(e.GlobalPos().XY()), e.Radius*fp.resolution, e.Size, e.Color)

	case KindDisk:
		b.FillDisk(buf, fp.point(e.GlobalPos().XY()), e.Radius*fp.resolution, e.Color)

	case KindWedge:
		b.FillWedge(buf, fp.point(e.GlobalPos().XY()), e.Radius*fp.resolution,
			-e.StartAng, -e.EndAng, e.Color)

	case KindPolygon:
		b.FillPolygon(buf, fp.points(e.PolygonPoints()), e.Color)

	case KindText:
		b.DrawText(buf, fp.point(e.GlobalPos().XY()), e.Text,
			e.TextScale*fp.resolution, e.Color)

	case KindContour:
		b.StrokePolyline(buf, fp.points(e.JaggedPoints()), true, e.Size, e.Color)

	case KindLineContour:
		if e.Jaggedness > 0 {
			b.StrokePolyline(buf, fp.points(e.JaggedPoints()), false, e.Size, e.Color)
		} else {
			b.StrokeLine(buf, fp.point(e.ContourStart), fp.point(e.ContourEnd), e.Size, e.Color)
		}

	case KindArcContour:
		if e.Jaggedness > 0 {
			b.StrokePolyline(buf, fp.points(e.JaggedPoints()), false, e.Size, e.Color)
		} else {
			b.StrokeArc(buf, fp.point(e.Center), e.Radius*fp.resolution,
				-e.StartAng, -e.EndAng, e.Size, e.Color)
		}

	case KindLeader:
		verts := e.leaderFracVertices()
		for i := 1; i < len(verts); i++ {
			b.StrokeLine(buf, fp.point(verts[i-1].XY()), fp.point(verts[i].XY()), e.Size, e.Color)
		}
		if e.StartArrow {
			if tri := e.leaderStartArrow(); tri != nil {
				b.FillPolygon(buf, fp.points(tri), e.Color)
			}
		}
		if e.EndArrow {
			if quad := e.leaderEndArrow(); quad != nil {
				b.FillPolygon(buf, fp.points(quad), e.Color)
			}
		}

	default:
		// Assembly kinds have no visual output of their own.
	}

	for _, c := range e.components {
		// Endpoint and vertex markers of line kinds are construction
		// geometry, not graphics.
		if c.Kind == KindPoint &&
			(e.Kind == KindLine || e.Kind == KindLineSeg || e.Kind == KindPolygon) {
			continue
		}
		c.render(buf, b, fp)
	}
}

// cloneRGBA returns an independent copy of the buffer.
func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := &image.RGBA{
		Pix:    make([]uint8, len(src.Pix)),
		Stride: src.Stride,
		Rect:   src.Rect,
	}
	copy(dst.Pix, src.Pix)
	return dst
}

// blendOver composites src over dst in place, per channel:
// dst = dst*(1-w) + src*w.
func blendOver(dst, src *image.RGBA, w float64) {
	if w <= 0 {
		return
	}
	if w > 1 {
		w = 1
	}
	for i := range dst.Pix {
		dst.Pix[i] = uint8(float64(dst.Pix[i])*(1-w) + float64(src.Pix[i])*w + 0.5)
	}
}
