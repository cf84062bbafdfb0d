package noctilucence

import (
	"math"
	"testing"
)

func TestMat3MulVec(t *testing.T) {
	r := RotationZ(math.Pi / 2)
	got := r.MulVec(Vec3{1, 0, 0})
	assertVec3Near(t, got, Vec3{0, 1, 0}, tol, "rotation z * x")
}

func TestMat3ColsRoundTrip(t *testing.T) {
	i, j, k := Vec3{1, 2, 3}, Vec3{4, 5, 6}, Vec3{7, 8, 9}
	m := Mat3FromCols(i, j, k)
	if m.Col(0) != i || m.Col(1) != j || m.Col(2) != k {
		t.Errorf("columns do not round-trip: %v %v %v", m.Col(0), m.Col(1), m.Col(2))
	}
}

func TestMat3MulComposesRotations(t *testing.T) {
	a := RotationZ(0.3)
	b := RotationZ(0.7)
	got := a.Mul(b).MulVec(Vec3{1, 0, 0})
	want := RotationZ(1.0).MulVec(Vec3{1, 0, 0})
	assertVec3Near(t, got, want, tol, "composed rotation")
}

func TestRodriguesMatchesRotationZ(t *testing.T) {
	rot := Rotation{Axis: Vec3{0, 0, 2}, Angle: 0.9} // axis need not be unit
	v := Vec3{0.3, -1.2, 0.5}
	got := rot.Rotate(v)
	want := RotationZ(0.9).MulVec(v)
	assertVec3Near(t, got, want, tol, "rodrigues about z")
}

func TestVec2Perp(t *testing.T) {
	p := Vec2{3, 4}.Perp()
	if p != (Vec2{-4, 3}) {
		t.Errorf("Perp = %v, want (-4, 3)", p)
	}
	if (Vec2{3, 4}).Dot(p) != 0 {
		t.Error("Perp not orthogonal")
	}
}

func TestNormZeroVectorUnchanged(t *testing.T) {
	if (Vec2{}).Norm() != (Vec2{}) {
		t.Error("zero Vec2 norm changed")
	}
	if (Vec3{}).Norm() != (Vec3{}) {
		t.Error("zero Vec3 norm changed")
	}
}

func TestColorNRGBA(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 1}.NRGBA()
	if c.R != 255 || c.B != 0 || c.A != 255 {
		t.Errorf("NRGBA = %v", c)
	}
	if c.G != 128 {
		t.Errorf("G = %d, want 128", c.G)
	}
	over := Color{R: 2, G: -1, B: 0, A: 1}.NRGBA()
	if over.R != 255 || over.G != 0 {
		t.Errorf("clamping failed: %v", over)
	}
}
