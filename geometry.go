package noctilucence

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/tanema/gween/ease"
)

// Profile names an interpolation shape curve used to distribute sampled
// values between a start and end value.
type Profile string

const (
	Linear       Profile = "linear"
	Quadratic    Profile = "quadratic"
	NegQuadratic Profile = "neg_quadratic"
	Sinusoid     Profile = "sinusoid"
	Sigmoid      Profile = "sigmoid"
)

// sigmoidEase is the logistic curve 1/(1+e^(-10(t-1/2))) as an ease.TweenFunc.
// gween has no logistic easing of its own.
func sigmoidEase(t, b, c, d float32) float32 {
	x := float64(t / d)
	return b + c*float32(1/(1+math.Exp(-10*(x-0.5))))
}

// easeFunc maps a profile to its normalized shape curve on [0, 1]. Unknown
// profiles fall back to sigmoid.
func easeFunc(p Profile) ease.TweenFunc {
	switch p {
	case Linear:
		return ease.Linear
	case Quadratic:
		return ease.InQuad
	case NegQuadratic:
		return ease.OutQuad
	case Sinusoid:
		return ease.InOutSine
	default:
		return sigmoidEase
	}
}

// spanShape returns n samples of the profile curve, renormalized so the
// first sample is exactly 0 and the last exactly 1. Required because the
// sigmoid does not naturally touch 0 or 1.
func spanShape(n int, profile Profile) []float64 {
	fn := easeFunc(profile)
	shape := make([]float64, n)
	for i := range shape {
		t := float32(i) / float32(n-1)
		shape[i] = float64(fn(t, 0, 1, 1))
	}
	first := shape[0]
	for i := range shape {
		shape[i] -= first
	}
	last := shape[n-1]
	for i := range shape {
		shape[i] /= last
	}
	shape[0] = 0
	shape[n-1] = 1
	return shape
}

// Span returns n values spanning start to end, distributed by the profile
// curve. For n <= 1 the single returned value is end: a single-frame
// transition snaps to its final value. For n > 1, result[0] == start and
// result[n-1] == end exactly, for every profile.
func Span(start, end float64, n int, profile Profile) []float64 {
	if n <= 1 {
		return []float64{end}
	}
	shape := spanShape(n, profile)
	out := make([]float64, n)
	for i, s := range shape {
		out[i] = start + s*(end-start)
	}
	out[0] = start
	out[n-1] = end
	return out
}

// SpanVec3 is Span for vector endpoints; all three components share one
// profile curve.
func SpanVec3(start, end Vec3, n int, profile Profile) []Vec3 {
	if n <= 1 {
		return []Vec3{end}
	}
	shape := spanShape(n, profile)
	out := make([]Vec3, n)
	delta := end.Sub(start)
	for i, s := range shape {
		out[i] = start.Add(delta.Scale(s))
	}
	out[0] = start
	out[n-1] = end
	return out
}

// FlatnessStep records one roll position of the minimum-zone search: the
// candidate band width, the support-line slope, and the two anchor points.
type FlatnessStep struct {
	Flatness     float64
	Slope        Vec2
	Lower, Upper Vec2
}

// MinZoneFlatness returns the minimum width of a band between two parallel
// support lines bounding the 2D point set.
//
// Two anchors start at the extreme-y points with antiparallel unit slopes
// and roll around the set: each step advances whichever anchor sees the
// larger maximum dot product between its slope and the direction to another
// point (on a tie, the lower anchor advances). The search stops when an
// anchor reaches the other anchor's original extreme point, compared by
// coordinate equality — data sets with duplicated extreme coordinates can
// terminate early.
func MinZoneFlatness(points []Vec2) float64 {
	steps := MinZoneFlatnessSteps(points)
	flatness := math.Inf(1)
	for _, s := range steps {
		flatness = math.Min(flatness, s.Flatness)
	}
	return flatness
}

// MinZoneFlatnessSteps runs the minimum-zone search and returns every roll
// position evaluated, in order. The final flatness is the minimum over the
// returned steps.
func MinZoneFlatnessSteps(points []Vec2) []FlatnessStep {
	n0, n1 := 0, 0
	for i, p := range points {
		if p.Y < points[n0].Y {
			n0 = i
		}
		if p.Y > points[n1].Y {
			n1 = i
		}
	}
	p0, p1 := points[n0], points[n1]
	p0Slope := Vec2{1, 0}
	p1Slope := Vec2{-1, 0}

	var steps []FlatnessStep
	for p0 != points[n1] && p1 != points[n0] {
		// Score the direction from each anchor to every other point against
		// that anchor's current slope. The anchor's own point never scores.
		p0Best, p1Best := math.Inf(-1), math.Inf(-1)
		var p0Dir, p1Dir Vec2
		var p0Next, p1Next Vec2
		for _, pt := range points {
			if pt != p0 {
				dir := pt.Sub(p0).Norm()
				if dp := p0Slope.Dot(dir); dp > p0Best {
					p0Best, p0Dir, p0Next = dp, dir, pt
				}
			}
			if pt != p1 {
				dir := pt.Sub(p1).Norm()
				if dp := p1Slope.Dot(dir); dp > p1Best {
					p1Best, p1Dir, p1Next = dp, dir, pt
				}
			}
		}

		// Roll whichever anchor has the larger maximum onto its candidate,
		// keeping the two slopes antiparallel.
		if p0Best >= p1Best {
			p0 = p0Next
			p0Slope = p0Dir
			p1Slope = p0Dir.Scale(-1)
		} else {
			p1 = p1Next
			p1Slope = p1Dir
			p0Slope = p1Dir.Scale(-1)
		}

		normal := p0Slope.Perp()
		steps = append(steps, FlatnessStep{
			Flatness: math.Abs(p1.Sub(p0).Dot(normal)),
			Slope:    p0Slope,
			Lower:    p0,
			Upper:    p1,
		})
	}
	return steps
}

// RayPolygonDistance returns the distance from point to the polygon surface
// along the direction dir.
//
// The result is the minimum non-negative forward crossing distance. If any
// edge crosses the ray behind the point, the point is inside the polygon and
// the returned magnitude is negated. +Inf means no crossing at all; -Inf
// means only backward crossings exist.
func RayPolygonDistance(vertices []Vec2, point Vec2, dir Vec2) (float64, error) {
	if dir.Len() == 0 {
		return 0, fmt.Errorf("ray polygon distance: zero direction")
	}
	a := dir.Norm()
	n := a.Perp()

	minFwd := math.Inf(1)
	insideFactor := 1.0
	for i := range vertices {
		start := vertices[i]
		end := vertices[(i+1)%len(vertices)]
		normStart := n.Dot(start.Sub(point))
		normEnd := n.Dot(end.Sub(point))
		if normStart*normEnd > 0 {
			continue // endpoints on the same side; no crossing
		}
		axStart := a.Dot(start.Sub(point))
		axEnd := a.Dot(end.Sub(point))
		fwd := axStart + (0-normStart)/(normEnd-normStart)*(axEnd-axStart)
		if fwd < 0 {
			insideFactor = -1 // a crossing behind the point: we are inside
			continue
		}
		if fwd < minFwd {
			minFwd = fwd
		}
	}
	return insideFactor * minFwd, nil
}

// Convex reports whether the closed vertex loop is convex, by cross-product
// sign consistency. Fewer than 3 vertices is an error.
func Convex(vertices []Vec2) (bool, error) {
	if len(vertices) < 3 {
		return false, fmt.Errorf("convexity needs at least 3 vertices, got %d", len(vertices))
	}
	sign := 0.0
	for i := range vertices {
		a := vertices[i]
		b := vertices[(i+1)%len(vertices)]
		c := vertices[(i+2)%len(vertices)]
		ab := b.Sub(a)
		bc := c.Sub(b)
		cross := ab.X*bc.Y - ab.Y*bc.X
		if cross == 0 {
			continue
		}
		if sign == 0 {
			sign = cross
		} else if sign*cross < 0 {
			return false, nil
		}
	}
	return true, nil
}

// dirichletAlpha is the concentration of the symmetric Dirichlet draw behind
// contour segmentation. Matches the original data sets.
const dirichletAlpha = 10.0

// DirichletSpacings returns n spacings for contour segmentation: the first
// is exactly 0 and the remaining n-1 are a symmetric Dirichlet(α=10) draw,
// so the whole slice sums to 1.
func DirichletSpacings(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	sum := 0.0
	for i := 1; i < n; i++ {
		out[i] = gammaDraw(rng, dirichletAlpha)
		sum += out[i]
	}
	for i := 1; i < n; i++ {
		out[i] /= sum
	}
	return out
}

// gammaDraw samples Gamma(alpha, 1) for alpha >= 1 by Marsaglia-Tsang.
func gammaDraw(rng *rand.Rand, alpha float64) float64 {
	d := alpha - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		x := rng.NormFloat64()
		v := 1.0 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1.0-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v
		}
	}
}

// JaggedSamples offsets contour sample points along their normals by a
// uniform amount in [-jaggedness, +jaggedness], drawn from a generator
// seeded with seed. The first and last points are never offset. Identical
// inputs and seed reproduce identical output, which keeps the contour stable
// across re-rendered frames.
func JaggedSamples(points, normals []Vec2, jaggedness float64, seed int64) []Vec2 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]Vec2, len(points))
	for i, p := range points {
		offset := -jaggedness + 2*jaggedness*rng.Float64()
		if i == 0 || i == len(points)-1 {
			offset = 0
		}
		out[i] = p.Add(normals[i].Scale(offset))
	}
	return out
}
