// Package preview plays a scene live in an Ebitengine window, replaying the
// script at its authored frame rate without writing any files. Space pauses,
// R rewinds, Escape quits.
package preview

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/efouad/noctilucence"
)

// errQuit unwinds RunGame on Escape.
var errQuit = errors.New("preview: quit")

// Player implements ebiten.Game over a scene replay.
type Player struct {
	scene   *noctilucence.Scene
	last    int
	frame   int
	paused  bool
	current *ebiten.Image
}

// NewPlayer wraps a fully scripted scene for playback.
func NewPlayer(scene *noctilucence.Scene) *Player {
	return &Player{scene: scene, last: scene.LastFrame(), frame: -1}
}

func (p *Player) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		p.paused = !p.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		p.frame = -1
		p.current = nil
	}
	if p.paused && p.current != nil {
		return nil
	}

	next := p.frame + 1
	if next > p.last {
		return nil // hold the final frame
	}
	if err := p.scene.SetFrame(next); err != nil {
		return err
	}
	p.current = toEbiten(p.scene.CaptureFrame(), p.current)
	p.frame = next
	return nil
}

func (p *Player) Draw(screen *ebiten.Image) {
	if p.current != nil {
		screen.DrawImage(p.current, nil)
	}
}

func (p *Player) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.scene.Width, p.scene.Height
}

// toEbiten uploads an RGBA frame, reusing the previous texture when the size
// matches.
func toEbiten(frame *image.RGBA, reuse *ebiten.Image) *ebiten.Image {
	b := frame.Bounds()
	if reuse == nil || reuse.Bounds() != b {
		reuse = ebiten.NewImage(b.Dx(), b.Dy())
	}
	reuse.WritePixels(frame.Pix)
	return reuse
}

// Run opens a window and plays the scene through once, holding the final
// frame until the window closes.
func Run(scene *noctilucence.Scene, title string) error {
	ebiten.SetWindowSize(scene.Width, scene.Height)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(int(scene.FPS))
	err := ebiten.RunGame(NewPlayer(scene))
	if errors.Is(err, errQuit) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
