package noctilucence

import "math"

// Leader is an annotation leader line with optional jogs and arrowheads,
// revealed progressively through its "extension" attribute (0 = hidden,
// 1 = fully drawn). Dimension callouts sweep extension to draw themselves
// onto the frame.

const (
	// leaderArrowTaper is the half angle of an arrowhead tip, radians.
	leaderArrowTaper = 0.25
	// leaderArrowLength is the nominal arrowhead length in mm for a
	// stroke weight of 1.
	leaderArrowLength = 0.09
)

// NewLeader creates a leader through the given vertices (scene mm). Like
// contours, leaders do not follow their entity frame.
func NewLeader(vertices []Vec3, startArrow, endArrow bool) *Entity {
	e := &Entity{
		Kind:       KindLeader,
		Vertices:   append([]Vec3(nil), vertices...),
		StartArrow: startArrow,
		EndArrow:   endArrow,
	}
	entityDefaults(e)
	e.ArrowLg = math.Sqrt(float64(e.Size)) * leaderArrowLength
	return e
}

// LeaderLength returns the total length of all leader segments.
func (e *Entity) LeaderLength() float64 {
	total := 0.0
	for i := 1; i < len(e.Vertices); i++ {
		total += e.Vertices[i].Sub(e.Vertices[i-1]).Len()
	}
	return total
}

// leaderFracVertices returns the vertices of the portion of the leader to
// draw for the current extension. Arrowhead bases replace the raw endpoints
// so line strokes stop where the triangles begin.
func (e *Entity) leaderFracVertices() []Vec3 {
	if len(e.Vertices) == 0 || e.Extension < 1e-8 {
		return nil
	}
	verts := append([]Vec3(nil), e.Vertices...)
	out := []Vec3{verts[0]}
	if len(verts) == 1 {
		return out
	}

	if e.StartArrow {
		base := verts[0].Add(verts[1].Sub(verts[0]).Norm().Scale(e.ArrowLg))
		verts = append(verts[:1], append([]Vec3{base}, verts[1:]...)...)
	}
	if e.EndArrow {
		last := len(verts) - 1
		verts[last] = verts[last].Add(verts[last-1].Sub(verts[last]).Norm().Scale(e.ArrowLg))
	}

	total := e.LeaderLength()
	current := 0.0
	for i := 1; i < len(verts); i++ {
		delta := verts[i].Sub(verts[i-1]).Len()
		if current+delta <= total*e.Extension {
			out = append(out, verts[i])
			current += delta
		} else {
			// Stop partway along this segment.
			dir := verts[i].Sub(verts[i-1]).Norm()
			partway := e.Extension*total - current
			out = append(out, verts[i-1].Add(dir.Scale(partway)))
			break
		}
	}

	if e.StartArrow {
		out = out[1:]
	}
	return out
}

// leaderStartArrow returns the triangle of the start arrowhead, or nil. The
// triangle grows with extension until the leader has passed the arrow
// length.
func (e *Entity) leaderStartArrow() []Vec2 {
	if len(e.Vertices) < 2 {
		return nil
	}
	bounded := math.Min(e.Extension*e.LeaderLength(), e.ArrowLg)
	halfWd := bounded * math.Tan(leaderArrowTaper)

	start := e.Vertices[0]
	dir := e.Vertices[1].Sub(start).Norm()
	n := Vec2{-dir.Y, dir.X}

	tip := start.XY()
	v1 := tip.Add(dir.XY().Scale(bounded)).Add(n.Scale(halfWd))
	v2 := tip.Add(dir.XY().Scale(bounded)).Sub(n.Scale(halfWd))
	return []Vec2{tip, v1, v2}
}

// leaderEndArrow returns the end arrowhead, truncated to a trapezoid while
// the leader is still extending through it, or nil if the extension has not
// reached it.
func (e *Entity) leaderEndArrow() []Vec2 {
	if len(e.Vertices) < 2 {
		return nil
	}
	total := e.LeaderLength()
	trapHt := e.Extension*total - (total - e.ArrowLg)
	if trapHt <= 0 {
		return nil
	}

	baseWd := e.ArrowLg * math.Tan(leaderArrowTaper)
	midWd := (e.ArrowLg - trapHt) * math.Tan(leaderArrowTaper)

	end := e.Vertices[len(e.Vertices)-1].XY()
	prev := e.Vertices[len(e.Vertices)-2].XY()
	dir := end.Sub(prev).Norm()
	n := dir.Perp()

	base1 := end.Sub(dir.Scale(e.ArrowLg)).Add(n.Scale(baseWd))
	base2 := end.Sub(dir.Scale(e.ArrowLg)).Sub(n.Scale(baseWd))
	mid1 := end.Sub(dir.Scale(e.ArrowLg - trapHt)).Add(n.Scale(midWd))
	mid2 := end.Sub(dir.Scale(e.ArrowLg - trapHt)).Sub(n.Scale(midWd))
	return []Vec2{base1, base2, mid2, mid1}
}
