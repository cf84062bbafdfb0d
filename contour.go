package noctilucence

import (
	"math"
	"math/rand"
)

// 2D contours: the periphery of a solid or a hole, segmentable into points
// and outward normals, optionally rendered with a deterministic hand-drawn
// jagged effect.
//
// Contour coordinates are expressed directly in scene millimeters; contours
// do not follow their entity frame. Jaggedness is the maximum distance a
// sample may protrude from the nominal contour, and Seed pins the protrusion
// pattern so it is identical on every rendered frame.

// NewContour creates a composite contour from consecutive sub-contours.
func NewContour(contours []*Entity, jaggedness float64, nPoints int, seed int64) *Entity {
	e := &Entity{Kind: KindContour, Jaggedness: jaggedness, NPoints: nPoints, Seed: seed}
	entityDefaults(e)
	for _, c := range contours {
		e.mustAdd(c)
	}
	return e
}

// NewLineContour creates a straight contour segment from start to end (mm).
func NewLineContour(start, end Vec2, jaggedness float64, nPoints int, seed int64) *Entity {
	e := &Entity{
		Kind:         KindLineContour,
		ContourStart: start,
		ContourEnd:   end,
		Jaggedness:   jaggedness,
		NPoints:      nPoints,
		Seed:         seed,
	}
	entityDefaults(e)
	return e
}

// NewArcContour creates a circular-arc contour about center, swept from
// startAng to endAng (radians).
func NewArcContour(center Vec2, radius, startAng, endAng float64, jaggedness float64, nPoints int, seed int64) *Entity {
	e := &Entity{
		Kind:       KindArcContour,
		Center:     center,
		Radius:     radius,
		StartAng:   startAng,
		EndAng:     endAng,
		Jaggedness: jaggedness,
		NPoints:    nPoints,
		Seed:       seed,
	}
	entityDefaults(e)
	return e
}

// NewCircleContour creates a full-circle contour. The seam sits at 45
// degrees so jagged renderings close cleanly off-axis.
func NewCircleContour(center Vec2, radius float64, jaggedness float64, nPoints int, seed int64) *Entity {
	return NewArcContour(center, radius, math.Pi/4, 9*math.Pi/4, jaggedness, nPoints, seed)
}

// Segments returns the contour's sample points and the outward unit normal
// at each point. Spacing between samples is a seeded Dirichlet draw, so a
// contour's segmentation is non-uniform but reproducible.
func (e *Entity) Segments() (points, normals []Vec2) {
	switch e.Kind {
	case KindLineContour:
		rng := rand.New(rand.NewSource(e.Seed))
		spaces := DirichletSpacings(rng, e.NPoints)
		dir := e.ContourEnd.Sub(e.ContourStart)
		normal := dir.Norm().Perp()
		points = make([]Vec2, e.NPoints)
		normals = make([]Vec2, e.NPoints)
		cum := 0.0
		for i, s := range spaces {
			cum += s
			points[i] = e.ContourStart.Add(dir.Scale(cum))
			normals[i] = normal
		}
		return points, normals

	case KindArcContour:
		rng := rand.New(rand.NewSource(e.Seed))
		spaces := DirichletSpacings(rng, e.NPoints)
		points = make([]Vec2, e.NPoints)
		normals = make([]Vec2, e.NPoints)
		cum := 0.0
		for i, s := range spaces {
			cum += s
			ang := e.StartAng + (e.EndAng-e.StartAng)*cum
			sin, cos := math.Sincos(ang)
			normals[i] = Vec2{cos, sin}
			points[i] = e.Center.Add(Vec2{cos, sin}.Scale(e.Radius))
		}
		return points, normals

	case KindContour:
		for _, c := range e.components {
			p, n := c.Segments()
			points = append(points, p...)
			normals = append(normals, n...)
		}
		return points, normals
	}
	return nil, nil
}

// JaggedPoints returns the contour's sample points offset along their
// normals by the seeded jagged distribution. Endpoints are never offset.
func (e *Entity) JaggedPoints() []Vec2 {
	points, normals := e.Segments()
	return JaggedSamples(points, normals, e.Jaggedness, e.Seed)
}
