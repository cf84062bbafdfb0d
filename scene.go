package noctilucence

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/sirupsen/logrus"
)

// Scene is the top-level object that owns the registered entities, the
// instruction script, and the frame clock.
//
// A scene is a deterministic replay machine: entity state at frame N is a
// pure function of the registered frame-0 snapshots and the script entries at
// frames 1..N. Seeking backward resets every entity to its snapshot and
// replays forward from frame 0.
type Scene struct {
	Width      int     // frame width, px
	Height     int     // frame height, px
	Resolution float64 // px per mm
	FPS        float64
	Background Color
	Origin     image.Point // pixel position of scene (0, 0)

	backend Backend
	log     *logrus.Logger

	entities     map[string]*Entity // alias -> live entity
	entitiesInit map[string]*Entity // alias -> frame-0 snapshot
	order        []string           // aliases in registration order

	script       map[int][]Instruction
	currentFrame int
}

// SceneConfig carries the frame geometry and clock for NewScene. Zero fields
// take the listed defaults.
type SceneConfig struct {
	Width      int         // default 1920
	Height     int         // default 1080
	Resolution float64     // px per mm, default 96
	FPS        float64     // default 30
	Background Color       // default black
	Origin     *image.Point // default frame center
	Backend    Backend
	Log        *logrus.Logger
}

// NewScene creates an empty scene at frame 0 with a no-op first instruction.
func NewScene(cfg SceneConfig) *Scene {
	if cfg.Width == 0 {
		cfg.Width = 1920
	}
	if cfg.Height == 0 {
		cfg.Height = 1080
	}
	if cfg.Resolution == 0 {
		cfg.Resolution = 96
	}
	if cfg.FPS == 0 {
		cfg.FPS = 30
	}
	origin := image.Point{X: cfg.Width / 2, Y: cfg.Height / 2}
	if cfg.Origin != nil {
		origin = *cfg.Origin
	}
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Scene{
		Width:        cfg.Width,
		Height:       cfg.Height,
		Resolution:   cfg.Resolution,
		FPS:          cfg.FPS,
		Background:   cfg.Background,
		Origin:       origin,
		backend:      cfg.Backend,
		log:          log,
		entities:     make(map[string]*Entity),
		entitiesInit: make(map[string]*Entity),
		script:       make(map[int][]Instruction),
	}
	s.script[0] = []Instruction{Nop{}}
	return s
}

// Register binds an alias to an entity and snapshots the entity's current
// subtree as its frame-0 state. Registration must happen before any replay;
// re-registering an alias is an error.
func (s *Scene) Register(alias string, e *Entity) error {
	if e == nil {
		return fmt.Errorf("register %q: nil entity", alias)
	}
	if _, dup := s.entities[alias]; dup {
		return fmt.Errorf("register %q: alias already in use", alias)
	}
	s.entities[alias] = e
	s.entitiesInit[alias] = e.Clone()
	s.order = append(s.order, alias)
	return nil
}

// Lookup resolves an alias to its live entity.
func (s *Scene) Lookup(alias string) (*Entity, error) {
	e, ok := s.entities[alias]
	if !ok {
		return nil, fmt.Errorf("no entity registered as %q", alias)
	}
	return e, nil
}

// AddInstruction schedules an instruction at the given frame. Frames need not
// be appended in order; the script is sparse and replayed in frame order.
func (s *Scene) AddInstruction(frame int, in Instruction) error {
	if frame < 0 {
		return fmt.Errorf("add instruction at frame %d: negative frame", frame)
	}
	if in == nil {
		return fmt.Errorf("add instruction at frame %d: nil instruction", frame)
	}
	s.script[frame] = append(s.script[frame], in)
	return nil
}

// LastFrame returns the highest frame index holding any instruction.
func (s *Scene) LastFrame() int {
	last := 0
	for f := range s.script {
		if f > last {
			last = f
		}
	}
	return last
}

// CurrentFrame returns the frame the scene state currently reflects.
func (s *Scene) CurrentFrame() int { return s.currentFrame }

// Reset restores every registered entity to its frame-0 snapshot and rewinds
// the clock. Live entity pointers held by callers stay valid: state is copied
// into them rather than replaced.
func (s *Scene) Reset() {
	for alias, e := range s.entities {
		restoreEntity(e, s.entitiesInit[alias])
	}
	s.currentFrame = 0
}

// restoreEntity copies snapshot state into a live subtree in place. Tree
// shapes match by construction: snapshots are deep clones of the same
// entities.
func restoreEntity(dst, snap *Entity) {
	parent := dst.Parent
	live := dst.components
	*dst = *snap
	dst.Parent = parent
	dst.components = live
	if snap.Vertices != nil {
		dst.Vertices = append([]Vec3(nil), snap.Vertices...)
	}
	if snap.attrs != nil {
		dst.attrs = make(map[string]Value, len(snap.attrs))
		for k, v := range snap.attrs {
			dst.attrs[k] = v
		}
	}
	for i, c := range live {
		restoreEntity(c, snap.components[i])
	}
}

// ReplayError wraps an instruction failure with its replay location.
type ReplayError struct {
	Frame       int
	Time        float64 // seconds into the animation
	Instruction Instruction
	Err         error
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("frame %d (t=%.3fs): instruction %q: %v",
		e.Frame, e.Time, e.Instruction, e.Err)
}

func (e *ReplayError) Unwrap() error { return e.Err }

// SetFrame advances or rewinds the scene to the given frame, applying the
// script entries in [currentFrame, frame): a frame's own instructions run
// when the clock moves past it. Forward motion replays only the newly
// crossed range; backward motion resets and replays from frame 0, which is
// quadratic over repeated backward seeks but keeps every frame
// bit-reproducible. Instructions encode relative deltas, so there is no
// incremental inverse to rewind with.
func (s *Scene) SetFrame(frame int) error {
	if frame < 0 {
		return fmt.Errorf("set frame %d: negative frame", frame)
	}
	if frame < s.currentFrame {
		s.Reset()
	}
	frames := make([]int, 0, len(s.script))
	for f := range s.script {
		if f >= s.currentFrame && f < frame {
			frames = append(frames, f)
		}
	}
	sort.Ints(frames)
	for _, f := range frames {
		for _, in := range s.script[f] {
			if err := in.Apply(s); err != nil {
				return &ReplayError{
					Frame:       f,
					Time:        float64(f) / s.FPS,
					Instruction: in,
					Err:         err,
				}
			}
		}
	}
	s.currentFrame = frame
	return nil
}

// CaptureFrame rasterizes the scene's current state into a fresh frame
// buffer. Entities draw in registration order; later registrations draw on
// top.
func (s *Scene) CaptureFrame() *image.RGBA {
	buf := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	bg := s.Background.NRGBA()
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			buf.SetRGBA(x, y, color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 255})
		}
	}
	fp := frameProjection{resolution: s.Resolution, origin: s.Origin}
	for _, alias := range s.order {
		e := s.entities[alias]
		if e.Parent != nil {
			continue // drawn with its root ancestor
		}
		e.render(buf, s.backend, fp)
	}
	return buf
}

// Frames replays the script and captures every frame from start to end
// inclusive. end < 0 means the last scheduled frame. The capture is
// fail-fast: an instruction error aborts the batch, no frames are returned,
// and the error reports the frame, the time, and the instruction that failed.
func (s *Scene) Frames(start, end int) ([]*image.RGBA, error) {
	if end < 0 {
		end = s.LastFrame()
	}
	if start < 0 || start > end {
		return nil, fmt.Errorf("frames %d..%d: bad range", start, end)
	}
	out := make([]*image.RGBA, 0, end-start+1)
	for f := start; f <= end; f++ {
		if err := s.SetFrame(f); err != nil {
			return nil, err
		}
		out = append(out, s.CaptureFrame())
		if (f-start)%10 == 0 {
			s.log.WithFields(logrus.Fields{
				"frame": f,
				"of":    end,
			}).Info("captured")
		}
	}
	return out, nil
}
