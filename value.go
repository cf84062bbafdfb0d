package noctilucence

import "fmt"

// ValueKind identifies the payload type carried by a Value.
type ValueKind uint8

const (
	ValueFloat  ValueKind = iota // float64
	ValueInt                     // int64
	ValueBool                    // bool
	ValueString                  // string
	ValueVec2                    // Vec2
	ValueVec3                    // Vec3
	ValueMat3                    // Mat3
	ValueColor                   // Color
)

// Value is the closed variant type for entity extension attributes. Every
// attribute an instruction can read or write is one of these kinds; there is
// no untyped access.
type Value struct {
	Kind ValueKind

	f float64
	i int64
	b bool
	s string
	v Vec2
	w Vec3
	m Mat3
	c Color
}

// Float wraps a float64.
func Float(x float64) Value { return Value{Kind: ValueFloat, f: x} }

// Int wraps an int64.
func Int(x int64) Value { return Value{Kind: ValueInt, i: x} }

// Bool wraps a bool.
func Bool(x bool) Value { return Value{Kind: ValueBool, b: x} }

// Str wraps a string.
func Str(x string) Value { return Value{Kind: ValueString, s: x} }

// V2 wraps a Vec2.
func V2(x Vec2) Value { return Value{Kind: ValueVec2, v: x} }

// V3 wraps a Vec3.
func V3(x Vec3) Value { return Value{Kind: ValueVec3, w: x} }

// Matrix wraps a Mat3.
func Matrix(x Mat3) Value { return Value{Kind: ValueMat3, m: x} }

// Col wraps a Color.
func Col(x Color) Value { return Value{Kind: ValueColor, c: x} }

// Float returns the float payload. ok is false if the value holds another
// kind.
func (v Value) Float() (x float64, ok bool) { return v.f, v.Kind == ValueFloat }

// Int returns the integer payload.
func (v Value) Int() (x int64, ok bool) { return v.i, v.Kind == ValueInt }

// Bool returns the boolean payload.
func (v Value) Bool() (x bool, ok bool) { return v.b, v.Kind == ValueBool }

// Str returns the string payload.
func (v Value) Str() (x string, ok bool) { return v.s, v.Kind == ValueString }

// Vec2 returns the Vec2 payload.
func (v Value) Vec2() (x Vec2, ok bool) { return v.v, v.Kind == ValueVec2 }

// Vec3 returns the Vec3 payload.
func (v Value) Vec3() (x Vec3, ok bool) { return v.w, v.Kind == ValueVec3 }

// Mat3 returns the Mat3 payload.
func (v Value) Mat3() (x Mat3, ok bool) { return v.m, v.Kind == ValueMat3 }

// Color returns the Color payload.
func (v Value) Color() (x Color, ok bool) { return v.c, v.Kind == ValueColor }

// String renders the payload for instruction literals and error messages.
func (v Value) String() string {
	switch v.Kind {
	case ValueFloat:
		return fmt.Sprintf("%g", v.f)
	case ValueInt:
		return fmt.Sprintf("%d", v.i)
	case ValueBool:
		return fmt.Sprintf("%t", v.b)
	case ValueString:
		return fmt.Sprintf("%q", v.s)
	case ValueVec2:
		return fmt.Sprintf("(%g, %g)", v.v.X, v.v.Y)
	case ValueVec3:
		return fmt.Sprintf("(%g, %g, %g)", v.w.X, v.w.Y, v.w.Z)
	case ValueMat3:
		return fmt.Sprintf("%v", [9]float64(v.m))
	case ValueColor:
		return fmt.Sprintf("rgba(%g, %g, %g, %g)", v.c.R, v.c.G, v.c.B, v.c.A)
	}
	return "<invalid>"
}
