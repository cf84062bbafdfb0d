package noctilucence

import "fmt"

// EntityKind distinguishes drawing behavior for an Entity.
type EntityKind uint8

const (
	KindGroup       EntityKind = iota // assembly node with no visual output of its own
	KindPoint                         // filled dot of Size pixels radius
	KindLine                          // infinite line through Pos along Slope
	KindLineSeg                       // segment between two child points
	KindCircle                        // stroked circle
	KindDisk                          // filled circle
	KindWedge                         // filled circular sector
	KindPolygon                       // filled polygon over child points
	KindText                          // text run
	KindContour                       // assembly of sub-contours
	KindLineContour                   // straight contour segment
	KindArcContour                    // circular-arc contour segment
	KindLeader                        // annotation leader line with optional arrowheads
	KindDial                          // dial indicator composite (see dial.go)
)

// Entity is the scene-graph node. A single flat struct is used for every
// entity kind; kind-specific fields are only meaningful for their kind.
//
// Position and orientation are relative to the parent's coordinate frame.
// Global placement is derived, never stored.
type Entity struct {
	Name string
	Kind EntityKind

	// Hierarchy. Parent is set exactly once, when the entity is attached,
	// and never reassigned.
	Parent     *Entity
	components []*Entity

	// Transform (local).
	Pos Vec3
	Ori Mat3 // columns are the local i, j, k axis unit vectors

	// Display.
	Opacity float64 // local, in [0, 1]; not premultiplied
	Color   Color
	Size    int // characteristic stroke/point thickness in pixels
	Visible bool

	// Line fields (KindLine).
	Slope Vec3

	// Circular fields (KindCircle, KindDisk, KindWedge, KindArcContour).
	Radius           float64
	StartAng, EndAng float64

	// Polygon fields (KindPolygon).
	Convex bool

	// Text fields (KindText).
	Text      string
	TextScale float64

	// Leader fields (KindLeader).
	Vertices   []Vec3
	StartArrow bool
	EndArrow   bool
	Extension  float64
	ArrowLg    float64

	// Contour fields (KindContour and sub-kinds).
	Center       Vec2
	ContourStart Vec2
	ContourEnd   Vec2
	Jaggedness   float64
	NPoints      int
	Seed         int64

	// Extension attributes (closed Value variants).
	attrs map[string]Value
}

// entityDefaults sets the common default field values shared by all
// constructors.
func entityDefaults(e *Entity) {
	e.Ori = Mat3Identity()
	e.Opacity = 1
	e.Color = ColorWhite
	e.Size = 1
	e.Visible = true
}

// NewGroup creates an assembly entity with no visual representation.
func NewGroup(name string) *Entity {
	e := &Entity{Name: name, Kind: KindGroup}
	entityDefaults(e)
	return e
}

// --- Tree manipulation ---

// AddComponents attaches child entities. Each argument may be an *Entity, a
// []*Entity, or a nested []any of either; sequences are flattened
// recursively. Anything else is rejected, and rejection happens before any
// attachment: either every argument is attached or none is.
//
// Attaching an entity that already has a parent, or an ancestor of this
// entity, is an error.
func (e *Entity) AddComponents(args ...any) error {
	var flat []*Entity
	if err := flattenComponents(args, &flat); err != nil {
		return err
	}
	for _, child := range flat {
		if child == nil {
			return fmt.Errorf("add components: nil entity")
		}
		if child.Parent != nil {
			return fmt.Errorf("add components: %q already has a parent", child.Name)
		}
		if isAncestor(child, e) {
			return fmt.Errorf("add components: attaching %q would create a cycle", child.Name)
		}
	}
	for _, child := range flat {
		child.Parent = e
		e.components = append(e.components, child)
	}
	return nil
}

// mustAdd attaches children built by this package's own constructors, where
// the validation in AddComponents cannot fail.
func (e *Entity) mustAdd(children ...*Entity) {
	args := make([]any, len(children))
	for i, c := range children {
		args[i] = c
	}
	if err := e.AddComponents(args...); err != nil {
		panic("noctilucence: " + err.Error())
	}
}

func flattenComponents(args []any, out *[]*Entity) error {
	for _, arg := range args {
		switch a := arg.(type) {
		case *Entity:
			*out = append(*out, a)
		case []*Entity:
			*out = append(*out, a...)
		case []any:
			if err := flattenComponents(a, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("add components: %v is not an entity", arg)
		}
	}
	return nil
}

// isAncestor reports whether candidate is entity or one of its ancestors.
func isAncestor(candidate, entity *Entity) bool {
	for p := entity; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// Components returns the child list. The returned slice MUST NOT be mutated
// by the caller.
func (e *Entity) Components() []*Entity {
	return e.components
}

// Component returns the first direct child with the given name, or nil.
func (e *Entity) Component(name string) *Entity {
	for _, c := range e.components {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// --- Attributes ---

// Put stores an extension attribute.
func (e *Entity) Put(name string, v Value) {
	if e.attrs == nil {
		e.attrs = make(map[string]Value)
	}
	e.attrs[name] = v
}

// Get returns an extension attribute. Missing attributes are an error.
func (e *Entity) Get(name string) (Value, error) {
	v, ok := e.attrs[name]
	if !ok {
		return Value{}, fmt.Errorf("entity %q has no attribute %q", e.Name, name)
	}
	return v, nil
}

// getFloat is a convenience for attributes known to hold floats.
func (e *Entity) getFloat(name string) float64 {
	v, err := e.Get(name)
	if err != nil {
		return 0
	}
	f, _ := v.Float()
	return f
}

// SetAttribute sets a named attribute. Typed display and shape fields are
// addressable by name; any other name lands in the extension map. A value of
// the wrong kind for a typed field is an error.
func (e *Entity) SetAttribute(name string, v Value) error {
	wrongKind := func(want string) error {
		return fmt.Errorf("entity %q: attribute %q wants %s, got %v", e.Name, name, want, v)
	}
	switch name {
	case "opacity":
		f, ok := v.Float()
		if !ok {
			return wrongKind("float")
		}
		e.Opacity = f
	case "visible":
		b, ok := v.Bool()
		if !ok {
			return wrongKind("bool")
		}
		e.Visible = b
	case "color":
		c, ok := v.Color()
		if !ok {
			return wrongKind("color")
		}
		e.Color = c
	case "size":
		i, ok := v.Int()
		if !ok {
			return wrongKind("int")
		}
		e.Size = int(i)
	case "radius":
		f, ok := v.Float()
		if !ok {
			return wrongKind("float")
		}
		e.Radius = f
	case "start_ang":
		f, ok := v.Float()
		if !ok {
			return wrongKind("float")
		}
		e.StartAng = f
	case "end_ang":
		f, ok := v.Float()
		if !ok {
			return wrongKind("float")
		}
		e.EndAng = f
	case "extension":
		f, ok := v.Float()
		if !ok {
			return wrongKind("float")
		}
		e.Extension = f
	case "jaggedness":
		f, ok := v.Float()
		if !ok {
			return wrongKind("float")
		}
		e.Jaggedness = f
	case "text":
		s, ok := v.Str()
		if !ok {
			return wrongKind("string")
		}
		e.Text = s
	case "text_scale":
		f, ok := v.Float()
		if !ok {
			return wrongKind("float")
		}
		e.TextScale = f
	case "deflection":
		f, ok := v.Float()
		if !ok {
			return wrongKind("float")
		}
		if e.Kind == KindDial {
			e.SetDeflection(f)
		} else {
			e.Put(name, v)
		}
	case "readout":
		f, ok := v.Float()
		if !ok {
			return wrongKind("float")
		}
		if e.Kind == KindDial {
			e.SetReadout(f)
		} else {
			e.Put(name, v)
		}
	default:
		e.Put(name, v)
	}
	return nil
}

// Attribute reads a named attribute, covering the same typed names as
// SetAttribute before falling back to the extension map.
func (e *Entity) Attribute(name string) (Value, error) {
	switch name {
	case "opacity":
		return Float(e.Opacity), nil
	case "visible":
		return Bool(e.Visible), nil
	case "color":
		return Col(e.Color), nil
	case "size":
		return Int(int64(e.Size)), nil
	case "radius":
		return Float(e.Radius), nil
	case "start_ang":
		return Float(e.StartAng), nil
	case "end_ang":
		return Float(e.EndAng), nil
	case "extension":
		return Float(e.Extension), nil
	case "jaggedness":
		return Float(e.Jaggedness), nil
	case "text":
		return Str(e.Text), nil
	case "text_scale":
		return Float(e.TextScale), nil
	}
	return e.Get(name)
}

// --- Placement ---

// GlobalPos returns the entity's origin in the global coordinate system,
// composed over the ancestor chain.
func (e *Entity) GlobalPos() Vec3 {
	p := e.Pos
	for a := e.Parent; a != nil; a = a.Parent {
		p = a.Pos.Add(a.Ori.MulVec(p))
	}
	return p
}

// GlobalOri returns the entity's axis unit vectors in the global coordinate
// system, composed over the ancestor chain.
func (e *Entity) GlobalOri() Mat3 {
	m := e.Ori
	for a := e.Parent; a != nil; a = a.Parent {
		m = a.Ori.Mul(m)
	}
	return m
}

// EffectiveOpacity returns the product of local opacity over the ancestor
// chain, inclusive of this entity.
func (e *Entity) EffectiveOpacity() float64 {
	op := e.Opacity
	for a := e.Parent; a != nil; a = a.Parent {
		op *= a.Opacity
	}
	return op
}

// Motion describes a single Move call. Absolute placement wins over a delta:
// if both Pos and DPos are set, DPos is ignored, and likewise Ori over
// DeltaRot.
//
// DeltaRot rotates each of the three local axis columns independently and
// reassembles the orientation matrix. Over many compositions this can
// accumulate small non-orthogonality drift.
type Motion struct {
	Pos      *Vec3
	DPos     *Vec3
	Ori      *Mat3
	DeltaRot *Rotation
}

// Move translates and/or rotates this entity within its parent frame.
func (e *Entity) Move(m Motion) {
	if m.Pos != nil {
		e.Pos = *m.Pos
	} else if m.DPos != nil {
		e.Pos = e.Pos.Add(*m.DPos)
	}
	if m.Ori != nil {
		e.Ori = *m.Ori
	} else if m.DeltaRot != nil {
		e.Ori = Mat3FromCols(
			m.DeltaRot.Rotate(e.Ori.Col(0)),
			m.DeltaRot.Rotate(e.Ori.Col(1)),
			m.DeltaRot.Rotate(e.Ori.Col(2)),
		)
	}
}

// MoveTo is shorthand for an absolute translation.
func (e *Entity) MoveTo(p Vec3) { e.Move(Motion{Pos: &p}) }

// Translate is shorthand for a relative translation.
func (e *Entity) Translate(d Vec3) { e.Move(Motion{DPos: &d}) }

// --- Snapshots ---

// Clone returns an independent deep copy of this entity and its subtree.
// The copy has no parent.
func (e *Entity) Clone() *Entity {
	c := *e
	c.Parent = nil
	c.components = nil
	if e.Vertices != nil {
		c.Vertices = append([]Vec3(nil), e.Vertices...)
	}
	if e.attrs != nil {
		c.attrs = make(map[string]Value, len(e.attrs))
		for k, v := range e.attrs {
			c.attrs[k] = v
		}
	}
	for _, child := range e.components {
		cc := child.Clone()
		cc.Parent = &c
		c.components = append(c.components, cc)
	}
	return &c
}
