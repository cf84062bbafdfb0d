package noctilucence

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// NRGBA converts to 8-bit non-premultiplied color, clamping each component.
func (c Color) NRGBA() color.NRGBA {
	conv := func(f float64) uint8 {
		if f <= 0 {
			return 0
		}
		if f >= 1 {
			return 255
		}
		return uint8(f*255 + 0.5)
	}
	return color.NRGBA{R: conv(c.R), G: conv(c.G), B: conv(c.B), A: conv(c.A)}
}

// ColorWhite is the default draw color.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is the default scene background.
var ColorBlack = Color{0, 0, 0, 1}

// Vec2 is a 2D vector used for contour points, flatness data, and pixel-space
// geometry handed to the rasterization backend.
type Vec2 struct {
	X, Y float64
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v.X + w.X, v.Y + w.Y} }

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v.X - w.X, v.Y - w.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and w.
func (v Vec2) Dot(w Vec2) float64 { return v.X*w.X + v.Y*w.Y }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Norm returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec2) Norm() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Perp returns v rotated 90 degrees counterclockwise.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Vec3 is a 3D vector. Entity positions are Vec3s relative to the parent's
// coordinate frame; the engine only ever composes 2D motion in the xy plane,
// but the model carries z throughout.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Cross returns the cross product v × w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Norm returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3) Norm() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// XY returns the xy components of v.
func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }

// Mat3 is a 3×3 matrix stored row-major. Entity orientations are Mat3s whose
// columns are the local i, j, k axis unit vectors expressed in the parent
// frame.
type Mat3 [9]float64

// Mat3Identity returns the identity matrix.
func Mat3Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3FromCols builds a matrix from three column vectors.
func Mat3FromCols(i, j, k Vec3) Mat3 {
	return Mat3{
		i.X, j.X, k.X,
		i.Y, j.Y, k.Y,
		i.Z, j.Z, k.Z,
	}
}

// Col returns column n as a vector.
func (m Mat3) Col(n int) Vec3 {
	return Vec3{m[n], m[3+n], m[6+n]}
}

// Mul returns the matrix product m · o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[3*i+j] = m[3*i]*o[j] + m[3*i+1]*o[3+j] + m[3*i+2]*o[6+j]
		}
	}
	return r
}

// MulVec returns m · v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// RotationZ returns the orientation matrix for a rotation of angle radians
// about the z axis, counterclockwise in the xy plane.
func RotationZ(angle float64) Mat3 {
	sin, cos := math.Sincos(angle)
	return Mat3{
		cos, -sin, 0,
		sin, cos, 0,
		0, 0, 1,
	}
}

// Rotation is an axis-angle rotation, used as the delta-rotation argument of
// Entity.Move. The axis need not be normalized.
type Rotation struct {
	Axis  Vec3
	Angle float64
}

// Rotate returns v rotated about r.Axis by r.Angle radians (Rodrigues'
// formula).
func (r Rotation) Rotate(v Vec3) Vec3 {
	k := r.Axis.Norm()
	sin, cos := math.Sincos(r.Angle)
	// v cosθ + (k × v) sinθ + k (k·v)(1 − cosθ)
	return v.Scale(cos).
		Add(k.Cross(v).Scale(sin)).
		Add(k.Scale(k.Dot(v) * (1 - cos)))
}
