package noctilucence

import (
	"bytes"
	"strings"
	"testing"
)

func TestPointDataRoundTrip(t *testing.T) {
	points := []Vec2{{0, 0.15}, {0.05, 0.17}, {0.1, 0.162}, {-3, 4.5}}

	var buf bytes.Buffer
	if err := WritePointData(&buf, points); err != nil {
		t.Fatal(err)
	}
	got, err := LoadPointData(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(points) {
		t.Fatalf("len = %d, want %d", len(got), len(points))
	}
	for i := range points {
		if got[i] != points[i] {
			t.Errorf("point %d = %v, want %v", i, got[i], points[i])
		}
	}
}

func TestLoadPointDataLeadingSpace(t *testing.T) {
	got, err := LoadPointData(strings.NewReader("1, 2\n3, 4\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1] != (Vec2{3, 4}) {
		t.Errorf("got %v", got)
	}
}

func TestLoadPointDataErrors(t *testing.T) {
	if _, err := LoadPointData(strings.NewReader("1,2,3\n")); err == nil {
		t.Error("three-field record accepted")
	}
	if _, err := LoadPointData(strings.NewReader("1,abc\n")); err == nil {
		t.Error("non-numeric field accepted")
	}
}
