package noctilucence

import (
	"math"
	"math/rand"
)

// SurfaceConfig parameterizes GenerateSurface. All lengths are mm. Zero
// fields take defaults sized for a 6 mm flatness demonstration trace.
type SurfaceConfig struct {
	Length      float64 // extent along x; default 6
	Increment   float64 // sample spacing; default 0.05
	MaxDelta    float64 // max height change per sample; default 0.04
	StartHeight float64 // height at x = 0; default 0.15
	MinHeight   float64 // heights clamp here from below; default 0.04
	MaxHeight   float64 // heights clamp here from above; default 0.62
}

func (c *SurfaceConfig) defaults() {
	if c.Length == 0 {
		c.Length = 6
	}
	if c.Increment == 0 {
		c.Increment = .05
	}
	if c.MaxDelta == 0 {
		c.MaxDelta = .04
	}
	if c.StartHeight == 0 {
		c.StartHeight = .15
	}
	if c.MinHeight == 0 {
		c.MinHeight = .04
	}
	if c.MaxHeight == 0 {
		c.MaxHeight = .62
	}
}

// GenerateSurface produces an uneven height-vs-position profile by a bounded
// random walk. A step that would leave the height band clamps to the nearer
// bound. The same seed reproduces the same surface.
func GenerateSurface(cfg SurfaceConfig, seed int64) []Vec2 {
	cfg.defaults()
	rng := rand.New(rand.NewSource(seed))

	pos := 0.0
	height := cfg.StartHeight
	points := []Vec2{{pos, height}}
	for pos < cfg.Length {
		pos += cfg.Increment
		delta := (2*rng.Float64() - 1) * cfg.MaxDelta
		switch {
		case height+delta > cfg.MaxHeight:
			height = cfg.MaxHeight
		case height+delta < cfg.MinHeight:
			height = cfg.MinHeight
		default:
			height += delta
		}
		points = append(points, Vec2{pos, height})
	}
	return points
}

// GenerateSurfaceWithRange retries GenerateSurface with consecutive seeds
// until the peak-to-valley height range lands within tol of target. Returns
// the matching surface and the seed that produced it.
func GenerateSurfaceWithRange(cfg SurfaceConfig, seed int64, target, tol float64) ([]Vec2, int64) {
	for {
		points := GenerateSurface(cfg, seed)
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, p := range points {
			lo = math.Min(lo, p.Y)
			hi = math.Max(hi, p.Y)
		}
		if math.Abs((hi-lo)-target) < tol {
			return points, seed
		}
		seed++
	}
}
