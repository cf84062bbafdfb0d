package noctilucence

// Animation builders translate time spans into scripted per-frame
// instructions. Every builder shares two sentinels:
//
//   - duration < 0 schedules exactly one frame.
//   - tStart < 0 appends after the scene's last scheduled frame.
//
// Durations and start times are in seconds; the scene's FPS converts them to
// frame offsets.

// frameCount converts a duration to a frame count, never less than one.
func frameCount(s *Scene, duration float64) int {
	n := int(duration * s.FPS)
	if n < 1 {
		n = 1
	}
	return n
}

// startFrame resolves a start time to a frame index, honoring the append
// sentinel.
func startFrame(s *Scene, tStart float64) int {
	if tStart < 0 {
		return s.LastFrame()
	}
	return int(tStart * s.FPS)
}

// Pause extends the script end by the given duration without changing any
// entity.
func Pause(s *Scene, duration float64) error {
	return s.AddInstruction(s.LastFrame()+frameCount(s, duration), Nop{})
}

// Slide moves an entity by a total displacement over the duration,
// distributing per-frame deltas along the profile curve. The displacement is
// relative, in the entity's parent frame.
func Slide(s *Scene, duration float64, alias string, delta Vec3, profile Profile, tStart float64) error {
	n := frameCount(s, duration)
	values := SpanVec3(Vec3{}, delta, n, profile)
	start := startFrame(s, tStart)

	if len(values) == 1 {
		return s.AddInstruction(start, TranslateBy{Alias: alias, Delta: values[0]})
	}
	for i := 1; i < len(values); i++ {
		d := values[i].Sub(values[i-1])
		if err := s.AddInstruction(start+i, TranslateBy{Alias: alias, Delta: d}); err != nil {
			return err
		}
	}
	return nil
}

// SlideTo moves an entity to an absolute position in its parent frame over
// the duration. Motion is expressed as per-frame fractional steps toward the
// target, so the script never stores intermediate absolute waypoints.
func SlideTo(s *Scene, duration float64, alias string, pos Vec3, profile Profile, tStart float64) error {
	n := frameCount(s, duration)
	values := Span(0, 1, n, profile)
	start := startFrame(s, tStart)

	if len(values) == 1 {
		return s.AddInstruction(start, PlaceAt{Alias: alias, Pos: pos})
	}
	last := values[len(values)-1]
	for i := 1; i < len(values); i++ {
		// The remaining-distance fraction that lands this frame exactly on
		// the profile curve.
		frac := (values[i] - values[i-1]) / (last - values[i-1])
		if err := s.AddInstruction(start+i, MoveToward{Alias: alias, Target: pos, Frac: frac}); err != nil {
			return err
		}
	}
	return nil
}

// SweepAttr sweeps a float attribute from start to end over the duration,
// one set per frame along the profile curve.
func SweepAttr(s *Scene, duration float64, alias, attr string, from, to float64, profile Profile, tStart float64) error {
	n := frameCount(s, duration)
	values := Span(from, to, n, profile)
	start := startFrame(s, tStart)
	for i, v := range values {
		if err := s.AddInstruction(start+i, SetAttr{Alias: alias, Attr: attr, Value: Float(v)}); err != nil {
			return err
		}
	}
	return nil
}

// SetAttrAt sets one attribute at the given time.
func SetAttrAt(s *Scene, alias, attr string, v Value, tStart float64) error {
	return s.AddInstruction(startFrame(s, tStart), SetAttr{Alias: alias, Attr: attr, Value: v})
}

// FadeIn makes an entity visible and sweeps its opacity from 0 to 1.
func FadeIn(s *Scene, duration float64, alias string, tStart float64) error {
	if err := SetAttrAt(s, alias, "visible", Bool(true), tStart); err != nil {
		return err
	}
	return SweepAttr(s, duration, alias, "opacity", 0, 1, Sigmoid, tStart)
}

// FadeOut sweeps an entity's opacity from 1 to 0, then hides it. With the
// append sentinel the visibility flip lands on the sweep's final frame.
func FadeOut(s *Scene, duration float64, alias string, tStart float64) error {
	if err := SweepAttr(s, duration, alias, "opacity", 1, 0, Sigmoid, tStart); err != nil {
		return err
	}
	return SetAttrAt(s, alias, "visible", Bool(false), tStart)
}

// Do schedules a single instruction at the given time.
func Do(s *Scene, in Instruction, tStart float64) error {
	return s.AddInstruction(startFrame(s, tStart), in)
}

// SweepCustom repeats an instruction on every frame of the duration. Used
// for effects driven by scene state rather than a precomputed span, such as a
// dial tracking a moving surface.
func SweepCustom(s *Scene, duration float64, in Instruction, tStart float64) error {
	n := frameCount(s, duration)
	start := startFrame(s, tStart)
	for i := 0; i < n; i++ {
		if err := s.AddInstruction(start+i, in); err != nil {
			return err
		}
	}
	return nil
}
