package noctilucence

// Primitive geometric entities: points, lines, faces, text.
//
// Constructors set shape fields only; display attributes (Color, Size,
// Opacity, Visible) are set on the returned entity afterward.

// NewPoint creates a point entity at the given position (mm). Its Size is
// the drawn dot radius in pixels.
func NewPoint(pos Vec3) *Entity {
	e := &Entity{Kind: KindPoint, Pos: pos}
	entityDefaults(e)
	return e
}

// NewLine creates an infinite line through a point with the given direction.
func NewLine(p Vec3, slope Vec3) *Entity {
	e := &Entity{Kind: KindLine, Slope: slope}
	entityDefaults(e)
	e.mustAdd(NewPoint(p))
	return e
}

// NewLineSeg creates a segment between two points. The endpoints are child
// point entities, so they follow the segment's frame.
func NewLineSeg(start, end Vec3) *Entity {
	e := &Entity{Kind: KindLineSeg}
	entityDefaults(e)
	e.mustAdd(NewPoint(start), NewPoint(end))
	return e
}

// SegStart returns the start point entity of a line segment.
func (e *Entity) SegStart() *Entity { return e.components[0] }

// SegEnd returns the end point entity of a line segment.
func (e *Entity) SegEnd() *Entity { return e.components[1] }

// SegLength returns the length of a line segment.
func (e *Entity) SegLength() float64 {
	return e.SegEnd().Pos.Sub(e.SegStart().Pos).Len()
}

// SegSlope returns the unit vector from the segment start to its end, in the
// segment's parent frame.
func (e *Entity) SegSlope() Vec3 {
	return e.SegEnd().Pos.Sub(e.SegStart().Pos).Norm()
}

// NewCircle creates a stroked circle of the given radius (mm) in the xy
// plane.
func NewCircle(radius float64) *Entity {
	e := &Entity{Kind: KindCircle, Radius: radius}
	entityDefaults(e)
	return e
}

// NewDisk creates a filled circle of the given radius (mm) in the xy plane.
func NewDisk(radius float64) *Entity {
	e := &Entity{Kind: KindDisk, Radius: radius}
	entityDefaults(e)
	return e
}

// NewWedge creates a filled circular sector between two angles (radians,
// counterclockwise; endAng should exceed startAng).
func NewWedge(radius, startAng, endAng float64) *Entity {
	e := &Entity{Kind: KindWedge, Radius: radius, StartAng: startAng, EndAng: endAng}
	entityDefaults(e)
	return e
}

// NewPolygon creates a filled polygon. Vertices must be consecutively
// ordered around the boundary; the loop closes implicitly. Each vertex
// becomes a child point entity, so the polygon deforms with its frame.
//
// Convexity is evaluated once at construction; degenerate vertex lists
// (fewer than 3) are recorded as non-convex.
func NewPolygon(verts []Vec3) *Entity {
	e := &Entity{Kind: KindPolygon}
	entityDefaults(e)
	for _, v := range verts {
		e.mustAdd(NewPoint(v))
	}
	flat := make([]Vec2, len(verts))
	for i, v := range verts {
		flat[i] = v.XY()
	}
	convex, err := Convex(flat)
	e.Convex = err == nil && convex
	return e
}

// PolygonPoints returns the polygon's vertices in the global coordinate
// system, xy components.
func (e *Entity) PolygonPoints() []Vec2 {
	pts := make([]Vec2, len(e.components))
	for i, p := range e.components {
		pts[i] = p.GlobalPos().XY()
	}
	return pts
}

// NewText creates a text entity. scale multiplies the backend's nominal
// glyph size; Size is the stroke weight.
func NewText(text string, scale float64) *Entity {
	e := &Entity{Kind: KindText, Text: text, TextScale: scale}
	entityDefaults(e)
	return e
}
