package noctilucence

import (
	"math"
	"testing"
)

func testDial() *Entity {
	return NewDial(DialConfig{Diameter: 1})
}

func TestNewDialStructure(t *testing.T) {
	d := testDial()
	if d.Kind != KindDial {
		t.Fatalf("Kind = %v, want KindDial", d.Kind)
	}
	for _, name := range []string{"plunger", "dial", "needle"} {
		if d.Component(name) == nil {
			t.Errorf("missing part %q", name)
		}
	}
	for _, name := range []string{"meas_wedge", "meas_min_line", "meas_max_line", "legend"} {
		if d.dialPart("dial", name) == nil {
			t.Errorf("missing dial part %q", name)
		}
	}
	if d.getFloat("diameter") != 1 {
		t.Errorf("diameter = %v, want 1", d.getFloat("diameter"))
	}
}

func TestSetDeflectionMovesPlungerAndNeedle(t *testing.T) {
	d := testDial()
	d.SetDeflection(0.25)

	assertVec3Near(t, d.dialPart("plunger").Pos, Vec3{0, 0.25, 0}, tol, "plunger pos")
	assertNear(t, d.getFloat("readout"), 25, tol, "readout")

	// Readout 25 is 3 o'clock: a quarter turn clockwise.
	want := RotationZ(-math.Pi / 2)
	needle := d.dialPart("needle")
	for i := 0; i < 3; i++ {
		assertVec3Near(t, needle.Ori.Col(i), want.Col(i), tol, "needle orientation")
	}
}

func TestSetDeflectionWrapsReadout(t *testing.T) {
	d := testDial()
	d.SetDeflection(1.3) // 1.3 revolutions
	assertNear(t, d.getFloat("readout"), 30, tol, "wrapped readout")
}

func TestReadoutScale(t *testing.T) {
	d := NewDial(DialConfig{Diameter: 1, ReadoutScale: 2})
	d.SetDeflection(0.5) // a quarter of the 2 mm revolution
	assertNear(t, d.getFloat("readout"), 25, tol, "scaled readout")
}

func TestSweepHighlightGrows(t *testing.T) {
	d := testDial()
	if d.getFloat("min_swept") != 0 || d.getFloat("max_swept") != 0 {
		t.Fatalf("initial sweep = [%v, %v], want [0, 0]",
			d.getFloat("min_swept"), d.getFloat("max_swept"))
	}

	// Clockwise motion extends one bound; returning inside changes nothing.
	d.SetReadout(10)
	assertNear(t, d.getFloat("min_swept"), 10, tol, "swept bound after clockwise move")
	assertNear(t, d.getFloat("max_swept"), 0, tol, "other bound untouched")

	d.SetReadout(5)
	assertNear(t, d.getFloat("min_swept"), 10, tol, "bound after inside move")
	assertNear(t, d.getFloat("max_swept"), 0, tol, "bound after inside move")
}

func TestResetHighlightCollapsesSweep(t *testing.T) {
	d := testDial()
	d.SetReadout(10)
	d.SetReadout(5)
	d.ResetHighlight()
	assertNear(t, d.getFloat("min_swept"), 5, tol, "collapsed min")
	assertNear(t, d.getFloat("max_swept"), 5, tol, "collapsed max")
}

func TestDisplayToggles(t *testing.T) {
	d := testDial()
	if d.dialPart("dial", "meas_wedge").Visible {
		t.Error("highlight visible by default")
	}
	d.DisplayHighlight(true)
	if !d.dialPart("dial", "meas_wedge").Visible ||
		!d.dialPart("dial", "meas_min_line").Visible {
		t.Error("highlight not shown")
	}

	if !d.dialPart("plunger").Visible {
		t.Error("plunger hidden by default")
	}
	d.DisplayPlunger(false)
	if d.dialPart("plunger").Visible {
		t.Error("plunger not hidden")
	}
}

func TestTrackPressesPlungerToSurface(t *testing.T) {
	d := testDial() // diameter 1: free probe length 1.610
	part := NewPolygon([]Vec3{
		{-1, -2, 0}, {1, -2, 0}, {1, -1.41, 0}, {-1, -1.41, 0},
	})

	if err := d.Track(part); err != nil {
		t.Fatal(err)
	}
	assertNear(t, d.getFloat("deflection"), 0.2, tol, "deflection on contact")
	assertNear(t, d.getFloat("readout"), 20, tol, "readout on contact")
}

func TestTrackOutOfReachLeavesPlungerExtended(t *testing.T) {
	d := testDial()
	part := NewPolygon([]Vec3{
		{-1, -10, 0}, {1, -10, 0}, {1, -9, 0}, {-1, -9, 0},
	})
	if err := d.Track(part); err != nil {
		t.Fatal(err)
	}
	assertNear(t, d.getFloat("deflection"), 0, tol, "deflection out of reach")
}

func TestDialSetAttributeRoutesGaugeState(t *testing.T) {
	d := testDial()
	if err := d.SetAttribute("deflection", Float(0.25)); err != nil {
		t.Fatal(err)
	}
	assertNear(t, d.getFloat("readout"), 25, tol, "readout via attribute")
	assertVec3Near(t, d.dialPart("plunger").Pos, Vec3{0, 0.25, 0}, tol, "plunger via attribute")
}

func TestDialSurvivesSceneReset(t *testing.T) {
	s := testScene(&recordBackend{})
	d := testDial()
	if err := s.Register("dial", d); err != nil {
		t.Fatal(err)
	}
	d.SetDeflection(0.4)
	s.Reset()
	assertNear(t, d.getFloat("deflection"), 0, tol, "deflection after reset")
	assertVec3Near(t, d.dialPart("plunger").Pos, Vec3{}, tol, "plunger after reset")
}
