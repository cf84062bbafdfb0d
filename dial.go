package noctilucence

import (
	"fmt"
	"math"
)

// Dial indicator: a gauge with a rotating needle, a spring plunger, and an
// optional min/max sweep highlight. The whole instrument is a KindDial
// assembly; named sub-entities (needle, plunger, sweep lines, wedge) are
// regular children, so scene snapshots and opacity chains apply without
// special cases. Numeric gauge state lives in extension attributes, which
// snapshot with the entity.
//
// All proportions are ratios of the dial face diameter, matching a common
// 0.01 mm bench indicator.
const (
	// Needle.
	dialArrowLgScale    = .455 // needle length
	dialArrowWdScale    = .020 // arrow width at the center cap
	dialCenterCapScale  = .070 // center cap diameter
	// Rim and holder.
	dialRimThickScale   = .95  // face diameter over full diameter
	dialHolderWdScale   = .130
	dialHolderLgScale   = .49 // radial position of the holder circle
	dialColumnWdScale       = .133
	dialColumnLowLgScale    = .796
	dialColumnLowChmLgScale = .7
	dialColumnHghLgScale    = .547
	dialColumnHghChmLgScale = .531
	dialColumnChmWdScale    = .101
	// Tick radial start positions.
	dialMajTickScale = .80
	dialMedTickScale = .84
	dialMinTickScale = .88
	// Dial numbers.
	dialNumScale      = .0018723
	dialNumPosScale   = .35
	dialNumShiftXScale = -0.035
	dialNumShiftYScale = -.02
	dialZeroShiftScale = .0175
	// Plunger.
	dialPlungDiaScale            = .051
	dialPlungTopDiaScale         = .101
	dialPlungTopChmDiaScale      = .05
	dialPlungTipMountDiaScale    = .063
	dialPlungTipMountChmDiaScale = .005
	dialPlungTopLgScale          = .646
	dialPlungTopChmLgScale       = .637
	dialPlungLgScale             = 1.535
	dialPlungTipLgScale          = 1.595
	dialPlungTipChmLgScale       = 1.545
	// Free length from dial center to the untouched probe tip.
	dialPlungTipTrackScale = 1.610
	// Legend.
	dialLegendArrowScale = .03
	dialLegendNumScale   = .001
)

var (
	dialNeedleColor    = Color{128. / 255, 0, 0, 1}
	dialFaceColor      = Color{210. / 255, 210. / 255, 210. / 255, 1}
	dialRimColor       = Color{70. / 255, 70. / 255, 70. / 255, 1}
	dialWedgeColor     = Color{153. / 255, 217. / 255, 234. / 255, 1}
	dialMeasLineColor  = Color{0, 90. / 255, 213. / 255, 1}
	dialPlungColor     = Color{190. / 255, 190. / 255, 190. / 255, 1}
	dialPlungTipColor  = Color{128. / 255, 0, 0, 1}
)

const (
	dialWedgeOpacity    = .30
	dialMeasLineOpacity = .60
)

// DialConfig parameterizes NewDial.
type DialConfig struct {
	Diameter      float64 // dial face diameter, mm
	Deflection    float64 // initial plunger depression, mm
	HighlightShow bool    // min/max sweep highlight visible
	PlungerHide   bool    // plunger hidden (shown by default)
	ReadoutScale  float64 // plunger travel (mm) per full revolution; default 1
}

// NewDial builds a dial indicator. The readout is 0 at 12 o'clock and
// increases clockwise, one full revolution per ReadoutScale millimeters of
// plunger depression.
func NewDial(cfg DialConfig) *Entity {
	dia := cfg.Diameter
	if cfg.ReadoutScale == 0 {
		cfg.ReadoutScale = 1
	}

	e := &Entity{Kind: KindDial}
	entityDefaults(e)
	e.Put("diameter", Float(dia))
	e.Put("readout_scale", Float(cfg.ReadoutScale))
	e.Put("deflection", Float(0))
	e.Put("readout", Float(0))

	// Plunger, drawn behind the dial body.
	plunger := NewGroup("plunger")
	body := NewPolygon([]Vec3{
		{-dia * dialPlungDiaScale / 2, -dia * dialPlungLgScale, 0},
		{-dia * dialPlungDiaScale / 2, dia * dialColumnHghLgScale, 0},
		{-dia * dialPlungTopDiaScale / 2, dia * dialColumnHghLgScale, 0},
		{-dia * dialPlungTopDiaScale / 2, dia * dialPlungTopChmLgScale, 0},
		{-dia * dialPlungTopChmDiaScale / 2, dia * dialPlungTopLgScale, 0},
		{dia * dialPlungTopChmDiaScale / 2, dia * dialPlungTopLgScale, 0},
		{dia * dialPlungTopDiaScale / 2, dia * dialPlungTopChmLgScale, 0},
		{dia * dialPlungTopDiaScale / 2, dia * dialColumnHghLgScale, 0},
		{dia * dialPlungDiaScale / 2, dia * dialColumnHghLgScale, 0},
		{dia * dialPlungDiaScale / 2, -dia * dialPlungLgScale, 0},
	})
	body.Color = dialPlungColor
	tip := NewPolygon([]Vec3{
		{-dia * dialPlungTipMountChmDiaScale / 2, -dia * dialPlungTipLgScale, 0},
		{-dia * dialPlungTipMountDiaScale / 2, -dia * dialPlungTipChmLgScale, 0},
		{-dia * dialPlungTipMountDiaScale / 2, -dia * dialPlungLgScale, 0},
		{dia * dialPlungTipMountDiaScale / 2, -dia * dialPlungLgScale, 0},
		{dia * dialPlungTipMountDiaScale / 2, -dia * dialPlungTipChmLgScale, 0},
		{dia * dialPlungTipMountChmDiaScale / 2, -dia * dialPlungTipLgScale, 0},
	})
	tip.Color = dialPlungTipColor
	plunger.mustAdd(body, tip)

	// Static dial body: rim, mounting column, holder circle, face.
	dial := NewGroup("dial")
	rim := NewDisk(dia / 2)
	rim.Color = dialRimColor
	column := NewPolygon([]Vec3{
		{-dia * dialColumnWdScale / 2, dia * dialColumnHghChmLgScale, 0},
		{-dia * dialColumnChmWdScale / 2, dia * dialColumnHghLgScale, 0},
		{dia * dialColumnChmWdScale / 2, dia * dialColumnHghLgScale, 0},
		{dia * dialColumnWdScale / 2, dia * dialColumnHghChmLgScale, 0},
		{dia * dialColumnWdScale / 2, -dia * dialColumnLowChmLgScale, 0},
		{dia * dialColumnChmWdScale / 2, -dia * dialColumnLowLgScale, 0},
		{-dia * dialColumnChmWdScale / 2, -dia * dialColumnLowLgScale, 0},
		{-dia * dialColumnWdScale / 2, -dia * dialColumnLowChmLgScale, 0},
	})
	column.Color = dialRimColor
	holder := NewDisk(dia * dialHolderWdScale / 2)
	holder.Pos = Vec3{0, -dia * dialHolderLgScale, 0}
	holder.Color = dialRimColor
	face := NewDisk(dia / 2 * dialRimThickScale)
	face.Color = dialFaceColor
	dial.mustAdd(rim, column, holder, face)

	// 100 graduations: major every 10, medium every 5.
	const indices = 100
	for i := 0; i < indices; i++ {
		inner := dialMinTickScale
		switch {
		case i%10 == 0:
			inner = dialMajTickScale
		case i%5 == 0:
			inner = dialMedTickScale
		}
		tick := NewLineSeg(
			Vec3{0, dia * inner / 2, 0},
			Vec3{0, dia * (1 + dialRimThickScale) / 4, 0},
		)
		tick.Color = dialRimColor
		tick.Move(Motion{DeltaRot: &Rotation{
			Axis:  Vec3{0, 0, 1},
			Angle: float64(i) / indices * 2 * math.Pi,
		}})
		dial.mustAdd(tick)
	}
	for i := 0; i < indices; i += 10 {
		ang := -2*math.Pi*float64(i)/indices + math.Pi/2
		zeroShift := 0.0
		if i == 0 {
			zeroShift = dialZeroShiftScale * dia
		}
		num := NewText(fmt.Sprintf("%d", i), dialNumScale*dia)
		num.Pos = Vec3{
			dialNumShiftXScale*dia + dialNumPosScale*dia*math.Cos(ang) + zeroShift,
			dialNumShiftYScale*dia + dialNumPosScale*dia*math.Sin(ang),
			0,
		}
		num.Color = dialRimColor
		dial.mustAdd(num)
	}

	// Min/max sweep highlight.
	wedge := NewWedge(dialRimThickScale*dia/2, math.Pi/2, math.Pi/2)
	wedge.Name = "meas_wedge"
	wedge.Color = dialWedgeColor
	wedge.Opacity = dialWedgeOpacity
	minLine := NewLineSeg(Vec3{}, Vec3{0, dialRimThickScale * dia / 2, 0})
	minLine.Name = "meas_min_line"
	minLine.Size = 2
	minLine.Color = dialMeasLineColor
	minLine.Opacity = dialMeasLineOpacity
	maxLine := NewLineSeg(Vec3{}, Vec3{0, dialRimThickScale * dia / 2, 0})
	maxLine.Name = "meas_max_line"
	maxLine.Size = 2
	maxLine.Color = dialMeasLineColor
	maxLine.Opacity = dialMeasLineOpacity
	dial.mustAdd(wedge, minLine, maxLine)

	dial.mustAdd(dialLegend(dia))

	// Needle, drawn above everything else.
	needle := NewGroup("needle")
	cap := NewDisk(dia * dialCenterCapScale / 2)
	cap.Color = dialNeedleColor
	arrow := NewPolygon([]Vec3{
		{0, dia * dialArrowLgScale, 0},
		{dia * dialArrowWdScale / 2, 0, 0},
		{-dia * dialArrowWdScale / 2, 0, 0},
	})
	arrow.Color = dialNeedleColor
	needle.mustAdd(cap, arrow)

	e.mustAdd(plunger, dial, needle)

	e.SetDeflection(cfg.Deflection)
	e.ResetHighlight()
	e.DisplayHighlight(cfg.HighlightShow)
	e.DisplayPlunger(!cfg.PlungerHide)
	return e
}

// dialLegend builds the "one graduation = 0.01 mm" callout.
func dialLegend(dia float64) *Entity {
	as := dialLegendArrowScale * dia

	seg := func(start, end Vec3) *Entity {
		s := NewLineSeg(start.Scale(as), end.Scale(as))
		s.Color = dialRimColor
		return s
	}
	tri := func(p1, p2, p3 Vec3) *Entity {
		t := NewPolygon([]Vec3{p1.Scale(as), p2.Scale(as), p3.Scale(as)})
		t.Color = dialRimColor
		return t
	}
	mirror := func(v Vec3) Vec3 { return Vec3{-v.X, v.Y, v.Z} }

	l1aStart, l1aEnd := Vec3{-1.2, 0, 0}, Vec3{-.25, 0, 0}
	l1bStart, l1bEnd := Vec3{-.25, .375, 0}, Vec3{-.25, -.375, 0}
	t1p1, t1p2, t1p3 := Vec3{-.625, .1875, 0}, Vec3{-.25, 0, 0}, Vec3{-.625, -.1875, 0}

	text := NewText("  0.01mm", dialLegendNumScale*dia)
	text.Color = dialRimColor
	text.Pos = Vec3{.3, -.375, 0}.Scale(as)

	legend := NewGroup("legend")
	legend.mustAdd(
		seg(l1aStart, l1aEnd), seg(l1bStart, l1bEnd),
		seg(mirror(l1aStart), mirror(l1aEnd)), seg(mirror(l1bStart), mirror(l1bEnd)),
		tri(t1p1, t1p2, t1p3),
		tri(mirror(t1p1), mirror(t1p2), mirror(t1p3)),
		text,
	)
	legend.Translate(Vec3{-.07 * dia, -.18 * dia, 0})
	return legend
}

// dialPart resolves a named sub-entity of the indicator.
func (e *Entity) dialPart(names ...string) *Entity {
	cur := e
	for _, n := range names {
		cur = cur.Component(n)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// SetDeflection sets the plunger depression in mm, moving the plunger and
// rotating the needle to the matching readout.
func (e *Entity) SetDeflection(deflection float64) {
	e.Put("deflection", Float(deflection))
	e.dialPart("plunger").MoveTo(Vec3{0, deflection, 0})
	scale := e.getFloat("readout_scale")
	readout := math.Mod(deflection/scale*100, 100)
	if readout < 0 {
		readout += 100
	}
	e.SetReadout(readout)
}

// SetReadout rotates the needle to a dial value in [0, 100), 0 at 12 o'clock
// increasing clockwise, and grows the min/max sweep to cover it.
func (e *Entity) SetReadout(readout float64) {
	e.Put("readout", Float(readout))
	angle := -readout * 2 * math.Pi / 100
	ori := RotationZ(angle)
	e.dialPart("needle").Move(Motion{Ori: &ori})

	if _, err := e.Get("min_swept"); err != nil {
		e.ResetHighlight()
		return
	}
	switch e.checkMinMax() {
	case -1:
		e.Put("min_swept", Float(readout))
	case 1:
		e.Put("max_swept", Float(readout))
	}
	e.setMinMaxSwept()
}

// checkMinMax reports where the needle sits relative to the swept range:
// 0 inside, -1 past the min line, 1 past the max line. Comparisons are
// angular, via cross-product signs, so wraparound behaves.
func (e *Entity) checkMinMax() int {
	toVec := func(readout float64) Vec3 {
		ang := -readout * 2 * math.Pi / 100
		sin, cos := math.Sincos(ang)
		return Vec3{cos, sin, 0}
	}
	readout := toVec(e.getFloat("readout"))
	min := toVec(e.getFloat("min_swept"))
	max := toVec(e.getFloat("max_swept"))

	minExceeded := min.Cross(readout).Z <= 0
	maxExceeded := readout.Cross(max).Z <= 0
	switch {
	case minExceeded && !maxExceeded:
		return -1
	case maxExceeded && !minExceeded:
		return 1
	case minExceeded || maxExceeded:
		// Both exceeded (sweep wider than half a turn): attribute the
		// exceedance to the nearer bound.
		if min.Dot(readout) >= max.Dot(readout) {
			return -1
		}
		return 1
	}
	return 0
}

// ResetHighlight collapses the swept range onto the current readout.
func (e *Entity) ResetHighlight() {
	readout := e.getFloat("readout")
	e.Put("min_swept", Float(readout))
	e.Put("max_swept", Float(readout))
	e.setMinMaxSwept()
}

// setMinMaxSwept aims the min/max lines and the highlight wedge at the
// current swept bounds.
func (e *Entity) setMinMaxSwept() {
	minAng := -e.getFloat("min_swept") * 2 * math.Pi / 100
	maxAng := -e.getFloat("max_swept") * 2 * math.Pi / 100

	minOri := RotationZ(minAng)
	e.dialPart("dial", "meas_min_line").Move(Motion{Ori: &minOri})
	maxOri := RotationZ(maxAng)
	e.dialPart("dial", "meas_max_line").Move(Motion{Ori: &maxOri})

	wedge := e.dialPart("dial", "meas_wedge")
	wedge.StartAng = math.Pi/2 + minAng
	wedge.EndAng = math.Pi/2 + maxAng
}

// DisplayHighlight shows or hides the min/max sweep highlight.
func (e *Entity) DisplayHighlight(show bool) {
	e.Put("highlight_show", Bool(show))
	e.dialPart("dial", "meas_wedge").Visible = show
	e.dialPart("dial", "meas_min_line").Visible = show
	e.dialPart("dial", "meas_max_line").Visible = show
}

// DisplayPlunger shows or hides the plunger.
func (e *Entity) DisplayPlunger(show bool) {
	e.Put("plunger_show", Bool(show))
	e.dialPart("plunger").Visible = show
}

// Track sets the deflection so the probe tip rests on the given polygon. The
// probe points along the indicator's global -y axis; a polygon out of reach
// leaves the plunger fully extended.
func (e *Entity) Track(poly *Entity) error {
	freeLg := dialPlungTipTrackScale * e.getFloat("diameter")
	dir := e.GlobalOri().MulVec(Vec3{0, -1, 0})

	dist, err := RayPolygonDistance(poly.PolygonPoints(), e.GlobalPos().XY(), dir.XY())
	if err != nil {
		return err
	}
	e.SetDeflection(math.Max(freeLg-math.Abs(dist), 0))
	return nil
}
