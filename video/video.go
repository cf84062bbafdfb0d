// Package video writes captured frame batches to disk: numbered PNG
// sequences for downstream encoders, or animated GIF for quick sharing.
package video

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
)

// Sink consumes a batch of rendered frames.
type Sink interface {
	Write(frames []*image.RGBA) error
}

// PNGSequence writes frames as Dir/Prefix0000.png, Prefix0001.png, and so
// on. Most encoders accept the sequence directly.
type PNGSequence struct {
	Dir    string
	Prefix string // default "frame"
}

func (s PNGSequence) Write(frames []*image.RGBA) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("png sequence: mkdir %s: %w", s.Dir, err)
	}
	prefix := s.Prefix
	if prefix == "" {
		prefix = "frame"
	}
	for i, frame := range frames {
		path := filepath.Join(s.Dir, fmt.Sprintf("%s%04d.png", prefix, i))
		if err := writePNG(path, frame); err != nil {
			return fmt.Errorf("png sequence: %w", err)
		}
	}
	return nil
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// GIF writes an animated GIF, quantized to the Plan 9 palette.
type GIF struct {
	Path string
	FPS  float64 // default 30
}

func (s GIF) Write(frames []*image.RGBA) error {
	if len(frames) == 0 {
		return fmt.Errorf("gif %s: no frames", s.Path)
	}
	fps := s.FPS
	if fps == 0 {
		fps = 30
	}
	delay := int(100/fps + 0.5) // centiseconds
	if delay < 1 {
		delay = 1
	}

	anim := &gif.GIF{}
	for _, frame := range frames {
		pal := image.NewPaletted(frame.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pal, frame.Bounds(), frame, image.Point{})
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delay)
	}

	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.Path, err)
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", s.Path, err)
	}
	return f.Close()
}
