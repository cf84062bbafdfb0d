package noctilucence

import (
	"math"
	"testing"
)

func TestLeaderLength(t *testing.T) {
	l := NewLeader([]Vec3{{0, 0, 0}, {3, 0, 0}, {3, 4, 0}}, false, false)
	assertNear(t, l.LeaderLength(), 7, tol, "leader length")
}

func TestLeaderHiddenWithoutExtension(t *testing.T) {
	l := NewLeader([]Vec3{{0, 0, 0}, {1, 0, 0}}, false, false)
	if got := l.leaderFracVertices(); got != nil {
		t.Errorf("vertices at extension 0 = %v, want nil", got)
	}
}

func TestLeaderFullExtensionNoArrows(t *testing.T) {
	verts := []Vec3{{0, 0, 0}, {2, 0, 0}, {2, 2, 0}}
	l := NewLeader(verts, false, false)
	l.Extension = 1

	got := l.leaderFracVertices()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i := range verts {
		assertVec3Near(t, got[i], verts[i], 1e-9, "full-extension vertex")
	}
}

func TestLeaderPartialExtension(t *testing.T) {
	l := NewLeader([]Vec3{{0, 0, 0}, {2, 0, 0}}, false, false)
	l.Extension = 0.5

	got := l.leaderFracVertices()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	assertVec3Near(t, got[1], Vec3{1, 0, 0}, tol, "halfway endpoint")
}

func TestLeaderPartialExtensionAcrossJog(t *testing.T) {
	// Total length 4; extension 0.75 ends 1 mm into the second segment.
	l := NewLeader([]Vec3{{0, 0, 0}, {2, 0, 0}, {2, 2, 0}}, false, false)
	l.Extension = 0.75

	got := l.leaderFracVertices()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	assertVec3Near(t, got[2], Vec3{2, 1, 0}, tol, "jogged partial endpoint")
}

func TestLeaderStartArrowReplacesFirstVertex(t *testing.T) {
	l := NewLeader([]Vec3{{0, 0, 0}, {1, 0, 0}}, true, false)
	l.Extension = 1

	got := l.leaderFracVertices()
	if len(got) == 0 {
		t.Fatal("no vertices")
	}
	// The stroke starts at the arrow base, not the tip.
	assertVec3Near(t, got[0], Vec3{l.ArrowLg, 0, 0}, tol, "stroke start at arrow base")

	tri := l.leaderStartArrow()
	if len(tri) != 3 {
		t.Fatalf("arrow vertices = %d, want 3", len(tri))
	}
	assertVec2Near(t, tri[0], Vec2{0, 0}, tol, "arrow tip")
	halfWd := l.ArrowLg * math.Tan(leaderArrowTaper)
	assertVec2Near(t, tri[1], Vec2{l.ArrowLg, halfWd}, tol, "arrow flank")
}

func TestLeaderStartArrowGrowsWithExtension(t *testing.T) {
	l := NewLeader([]Vec3{{0, 0, 0}, {10, 0, 0}}, true, false)
	l.Extension = l.ArrowLg / 20 // half an arrow length along the leader

	tri := l.leaderStartArrow()
	bounded := l.Extension * 10
	assertNear(t, tri[1].X, bounded, tol, "growing arrow flank x")
}

func TestLeaderEndArrowAppearsLate(t *testing.T) {
	l := NewLeader([]Vec3{{0, 0, 0}, {1, 0, 0}}, false, true)

	l.Extension = 0.5
	if quad := l.leaderEndArrow(); quad != nil {
		t.Errorf("end arrow at extension 0.5 = %v, want nil", quad)
	}

	l.Extension = 1
	quad := l.leaderEndArrow()
	if len(quad) != 4 {
		t.Fatalf("end arrow vertices = %d, want 4", len(quad))
	}
	baseWd := l.ArrowLg * math.Tan(leaderArrowTaper)
	assertVec2Near(t, quad[0], Vec2{1 - l.ArrowLg, baseWd}, tol, "end arrow base corner")
	// Fully extended: the trapezoid closes to a triangle at the tip.
	assertVec2Near(t, quad[2], Vec2{1, 0}, tol, "end arrow tip")
}

func TestLeaderArrowScalesWithSize(t *testing.T) {
	l := NewLeader([]Vec3{{0, 0, 0}, {1, 0, 0}}, false, false)
	assertNear(t, l.ArrowLg, leaderArrowLength, tol, "arrow length at size 1")
}
