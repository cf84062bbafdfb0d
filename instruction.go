package noctilucence

import (
	"fmt"
)

// Instruction is one scripted change to the scene, applied when its frame is
// reached during replay. Instructions are closed variants rather than opaque
// callbacks so a script can be inspected and its failures reported with a
// printable description; Custom escapes the closed set for one-off effects.
type Instruction interface {
	// Apply mutates the scene's registered entities.
	Apply(s *Scene) error
	// String is the description used in replay errors and debug logs.
	String() string
}

// Nop does nothing. Frame 0 of every scene holds one, so the script always
// has a first frame to replay from.
type Nop struct{}

func (Nop) Apply(*Scene) error { return nil }
func (Nop) String() string     { return "nop" }

// TranslateBy shifts an entity by a delta in its parent frame.
type TranslateBy struct {
	Alias string
	Delta Vec3
}

func (in TranslateBy) Apply(s *Scene) error {
	e, err := s.Lookup(in.Alias)
	if err != nil {
		return err
	}
	e.Translate(in.Delta)
	return nil
}

func (in TranslateBy) String() string {
	return fmt.Sprintf("translate %s by (%g, %g, %g)", in.Alias, in.Delta.X, in.Delta.Y, in.Delta.Z)
}

// PlaceAt moves an entity to an absolute position in its parent frame.
type PlaceAt struct {
	Alias string
	Pos   Vec3
}

func (in PlaceAt) Apply(s *Scene) error {
	e, err := s.Lookup(in.Alias)
	if err != nil {
		return err
	}
	e.MoveTo(in.Pos)
	return nil
}

func (in PlaceAt) String() string {
	return fmt.Sprintf("place %s at (%g, %g, %g)", in.Alias, in.Pos.X, in.Pos.Y, in.Pos.Z)
}

// MoveToward moves an entity a fraction of the way from its current position
// to a target. Chained over consecutive frames with the right fractions it
// reproduces any profiled slide without storing absolute waypoints.
type MoveToward struct {
	Alias  string
	Target Vec3
	Frac   float64
}

func (in MoveToward) Apply(s *Scene) error {
	e, err := s.Lookup(in.Alias)
	if err != nil {
		return err
	}
	e.MoveTo(e.Pos.Add(in.Target.Sub(e.Pos).Scale(in.Frac)))
	return nil
}

func (in MoveToward) String() string {
	return fmt.Sprintf("move %s %.4f of the way to (%g, %g, %g)",
		in.Alias, in.Frac, in.Target.X, in.Target.Y, in.Target.Z)
}

// Orient sets an entity's orientation matrix outright.
type Orient struct {
	Alias string
	Ori   Mat3
}

func (in Orient) Apply(s *Scene) error {
	e, err := s.Lookup(in.Alias)
	if err != nil {
		return err
	}
	e.Move(Motion{Ori: &in.Ori})
	return nil
}

func (in Orient) String() string { return fmt.Sprintf("orient %s", in.Alias) }

// RotateBy applies an incremental axis-angle rotation to an entity's
// orientation.
type RotateBy struct {
	Alias string
	Rot   Rotation
}

func (in RotateBy) Apply(s *Scene) error {
	e, err := s.Lookup(in.Alias)
	if err != nil {
		return err
	}
	e.Move(Motion{DeltaRot: &in.Rot})
	return nil
}

func (in RotateBy) String() string {
	return fmt.Sprintf("rotate %s by %g rad about (%g, %g, %g)",
		in.Alias, in.Rot.Angle, in.Rot.Axis.X, in.Rot.Axis.Y, in.Rot.Axis.Z)
}

// SetAttr assigns one attribute value on an entity.
type SetAttr struct {
	Alias string
	Attr  string
	Value Value
}

func (in SetAttr) Apply(s *Scene) error {
	e, err := s.Lookup(in.Alias)
	if err != nil {
		return err
	}
	return e.SetAttribute(in.Attr, in.Value)
}

func (in SetAttr) String() string {
	return fmt.Sprintf("set %s.%s = %v", in.Alias, in.Attr, in.Value)
}

// Custom wraps an arbitrary scene mutation. Desc is mandatory: it is the only
// trace the instruction leaves in a replay error.
type Custom struct {
	Desc string
	Fn   func(s *Scene) error
}

func (in Custom) Apply(s *Scene) error { return in.Fn(s) }
func (in Custom) String() string       { return in.Desc }
