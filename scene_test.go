package noctilucence

import (
	"errors"
	"image"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// recordBackend counts backend calls so capture tests can assert draw
// dispatch without a real rasterizer.
type recordBackend struct {
	disks, circles, arcs, lines, polylines, polygons, wedges, texts int
}

func (r *recordBackend) FillDisk(*image.RGBA, Vec2, float64, Color)          { r.disks++ }
func (r *recordBackend) StrokeCircle(*image.RGBA, Vec2, float64, int, Color) { r.circles++ }
func (r *recordBackend) StrokeArc(*image.RGBA, Vec2, float64, float64, float64, int, Color) {
	r.arcs++
}
func (r *recordBackend) StrokeLine(*image.RGBA, Vec2, Vec2, int, Color)       { r.lines++ }
func (r *recordBackend) StrokePolyline(*image.RGBA, []Vec2, bool, int, Color) { r.polylines++ }
func (r *recordBackend) FillPolygon(*image.RGBA, []Vec2, Color)               { r.polygons++ }
func (r *recordBackend) FillWedge(*image.RGBA, Vec2, float64, float64, float64, Color) {
	r.wedges++
}
func (r *recordBackend) DrawText(*image.RGBA, Vec2, string, float64, Color) { r.texts++ }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testScene(b Backend) *Scene {
	return NewScene(SceneConfig{
		Width:      64,
		Height:     64,
		Resolution: 10,
		FPS:        10,
		Backend:    b,
		Log:        quietLogger(),
	})
}

// --- Registration ---

func TestRegisterAndLookup(t *testing.T) {
	s := testScene(&recordBackend{})
	disk := NewDisk(1)
	if err := s.Register("disk", disk); err != nil {
		t.Fatal(err)
	}
	got, err := s.Lookup("disk")
	if err != nil || got != disk {
		t.Errorf("Lookup = %v, %v", got, err)
	}
	if _, err := s.Lookup("ghost"); err == nil {
		t.Error("expected error for unknown alias")
	}
	if err := s.Register("disk", NewDisk(2)); err == nil {
		t.Error("expected error for duplicate alias")
	}
	if err := s.Register("nil", nil); err == nil {
		t.Error("expected error for nil entity")
	}
}

// --- Script and seek ---

func TestNewSceneHasFrameZeroNop(t *testing.T) {
	s := testScene(&recordBackend{})
	if s.LastFrame() != 0 {
		t.Errorf("LastFrame = %d, want 0", s.LastFrame())
	}
	if err := s.SetFrame(0); err != nil {
		t.Fatal(err)
	}
}

func TestSetFrameAppliesSparseScript(t *testing.T) {
	s := testScene(&recordBackend{})
	disk := NewDisk(1)
	if err := s.Register("disk", disk); err != nil {
		t.Fatal(err)
	}
	if err := s.AddInstruction(3, TranslateBy{Alias: "disk", Delta: Vec3{X: 1}}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddInstruction(7, TranslateBy{Alias: "disk", Delta: Vec3{X: 1}}); err != nil {
		t.Fatal(err)
	}

	if err := s.SetFrame(5); err != nil {
		t.Fatal(err)
	}
	assertVec3Near(t, disk.Pos, Vec3{1, 0, 0}, tol, "pos at frame 5")
	if err := s.SetFrame(10); err != nil {
		t.Fatal(err)
	}
	assertVec3Near(t, disk.Pos, Vec3{2, 0, 0}, tol, "pos at frame 10")
	if s.CurrentFrame() != 10 {
		t.Errorf("CurrentFrame = %d, want 10", s.CurrentFrame())
	}
}

func TestBackwardSeekReplaysDeterministically(t *testing.T) {
	s := testScene(&recordBackend{})
	disk := NewDisk(1)
	disk.Pos = Vec3{-1, 0, 0}
	if err := s.Register("disk", disk); err != nil {
		t.Fatal(err)
	}
	if err := Slide(s, 1, "disk", Vec3{X: 2, Y: 1}, Sigmoid, -1); err != nil {
		t.Fatal(err)
	}

	if err := s.SetFrame(6); err != nil {
		t.Fatal(err)
	}
	mid := disk.Pos
	if err := s.SetFrame(s.LastFrame()); err != nil {
		t.Fatal(err)
	}
	end := disk.Pos

	// Rewind to 0 restores the registration snapshot.
	if err := s.SetFrame(0); err != nil {
		t.Fatal(err)
	}
	assertVec3Near(t, disk.Pos, Vec3{-1, 0, 0}, tol, "pos after rewind")

	// Replaying forward reproduces the identical states, bit for bit.
	if err := s.SetFrame(6); err != nil {
		t.Fatal(err)
	}
	if disk.Pos != mid {
		t.Errorf("frame 6 pos = %v, want %v", disk.Pos, mid)
	}
	if err := s.SetFrame(s.LastFrame()); err != nil {
		t.Fatal(err)
	}
	if disk.Pos != end {
		t.Errorf("final pos = %v, want %v", disk.Pos, end)
	}
}

func TestResetKeepsEntityPointersAlive(t *testing.T) {
	s := testScene(&recordBackend{})
	group := NewGroup("g")
	child := NewDisk(1)
	if err := group.AddComponents(child); err != nil {
		t.Fatal(err)
	}
	if err := s.Register("g", group); err != nil {
		t.Fatal(err)
	}

	child.Radius = 5
	group.Opacity = 0.3
	s.Reset()

	if child.Radius != 1 {
		t.Errorf("child radius = %v, want snapshot value 1", child.Radius)
	}
	if group.Opacity != 1 {
		t.Errorf("group opacity = %v, want snapshot value 1", group.Opacity)
	}
	if group.Components()[0] != child {
		t.Error("reset must restore in place, not swap entities")
	}
}

// --- Replay errors ---

func TestFramesFailFastReportsLocation(t *testing.T) {
	s := testScene(&recordBackend{})
	if err := s.Register("disk", NewDisk(1)); err != nil {
		t.Fatal(err)
	}
	bad := SetAttr{Alias: "disk", Attr: "opacity", Value: Str("opaque")}
	if err := s.AddInstruction(5, bad); err != nil {
		t.Fatal(err)
	}
	if err := s.AddInstruction(9, Nop{}); err != nil {
		t.Fatal(err)
	}

	frames, err := s.Frames(0, -1)
	if frames != nil {
		t.Fatalf("fail-fast capture returned %d frames, want none", len(frames))
	}
	var rerr *ReplayError
	if !errors.As(err, &rerr) {
		t.Fatalf("error %T is not a ReplayError", err)
	}
	if rerr.Frame != 5 {
		t.Errorf("Frame = %d, want 5", rerr.Frame)
	}
	assertNear(t, rerr.Time, 0.5, tol, "replay error time")
	if !strings.Contains(err.Error(), "frame 5") {
		t.Errorf("error %q does not name the frame", err.Error())
	}
	if !strings.Contains(err.Error(), bad.String()) {
		t.Errorf("error %q does not include the instruction", err.Error())
	}
}

func TestReplayErrorOnUnknownAlias(t *testing.T) {
	s := testScene(&recordBackend{})
	if err := s.AddInstruction(2, PlaceAt{Alias: "ghost", Pos: Vec3{}}); err != nil {
		t.Fatal(err)
	}
	err := s.SetFrame(4)
	var rerr *ReplayError
	if !errors.As(err, &rerr) {
		t.Fatalf("error %T is not a ReplayError", err)
	}
	if rerr.Frame != 2 {
		t.Errorf("Frame = %d, want 2", rerr.Frame)
	}
}

func TestAddInstructionValidation(t *testing.T) {
	s := testScene(&recordBackend{})
	if err := s.AddInstruction(-1, Nop{}); err == nil {
		t.Error("expected error for negative frame")
	}
	if err := s.AddInstruction(1, nil); err == nil {
		t.Error("expected error for nil instruction")
	}
}

// --- Capture ---

func TestCaptureFrameDrawsRegisteredRoots(t *testing.T) {
	rb := &recordBackend{}
	s := testScene(rb)

	group := NewGroup("g")
	inner := NewDisk(1)
	if err := group.AddComponents(inner); err != nil {
		t.Fatal(err)
	}
	if err := s.Register("g", group); err != nil {
		t.Fatal(err)
	}
	// Registering a child alias must not draw the subtree twice.
	if err := s.Register("inner", inner); err != nil {
		t.Fatal(err)
	}
	if err := s.Register("circle", NewCircle(2)); err != nil {
		t.Fatal(err)
	}

	buf := s.CaptureFrame()
	if buf.Bounds().Dx() != 64 || buf.Bounds().Dy() != 64 {
		t.Errorf("frame bounds = %v", buf.Bounds())
	}
	if rb.disks != 1 {
		t.Errorf("disk draws = %d, want 1", rb.disks)
	}
	if rb.circles != 1 {
		t.Errorf("circle draws = %d, want 1", rb.circles)
	}
}

func TestCaptureFrameSkipsInvisibleAndTransparent(t *testing.T) {
	rb := &recordBackend{}
	s := testScene(rb)

	hidden := NewDisk(1)
	hidden.Visible = false
	gone := NewDisk(1)
	gone.Opacity = 0
	if err := s.Register("hidden", hidden); err != nil {
		t.Fatal(err)
	}
	if err := s.Register("gone", gone); err != nil {
		t.Fatal(err)
	}

	s.CaptureFrame()
	if rb.disks != 0 {
		t.Errorf("disk draws = %d, want 0", rb.disks)
	}
}

func TestCaptureFrameFillsBackground(t *testing.T) {
	s := NewScene(SceneConfig{
		Width: 8, Height: 8, Resolution: 1, FPS: 1,
		Background: Color{R: 1, G: 0, B: 0, A: 1},
		Backend:    &recordBackend{},
		Log:        quietLogger(),
	})
	buf := s.CaptureFrame()
	r, g, b, _ := buf.At(4, 4).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("background pixel = (%d, %d, %d), want (255, 0, 0)", r>>8, g>>8, b>>8)
	}
}

func TestFramesRangeAndCount(t *testing.T) {
	s := testScene(&recordBackend{})
	if err := s.AddInstruction(4, Nop{}); err != nil {
		t.Fatal(err)
	}
	frames, err := s.Frames(0, -1)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 5 {
		t.Errorf("frames = %d, want 5", len(frames))
	}
	if _, err := s.Frames(3, 1); err == nil {
		t.Error("expected error for inverted range")
	}
}
