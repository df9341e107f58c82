// Package bezier is an in-memory cubic Bezier spline engine. It is the default spline.Handle used
// by the editor when no other engine is injected.
package bezier

import (
	"csv-spline/internal/spline"

	"github.com/chewxy/math32"
	"github.com/google/uuid"
)

// normalEpsilon: tangents shorter than this fall back to the world up vector for normals.
const normalEpsilon = 1e-6

// initSpacing is the X distance between points created by Initialize.
const initSpacing = 1

var worldUp = spline.P3(0, 1, 0)

// controlPoint stores absolute positions for both tangent handles so that moving the point
// only needs to translate them.
type controlPoint struct {
	position  spline.Point3D
	preceding spline.Point3D
	following spline.Point3D
	normal    spline.Point3D
	mode      spline.HandleMode
}

// Spline is a piecewise cubic Bezier curve through its control points. Segment i runs from
// point i to point i+1 (and from the last point back to the first when Loop is set).
// Not safe for concurrent use.
type Spline struct {
	id          uuid.UUID
	points      []controlPoint
	loop        bool
	autoMode    spline.AutoConstructMode
	autoNormals bool
	revision    int
}

var _ spline.Handle = (*Spline)(nil)

// New returns an empty open spline with auto construction off.
func New() *Spline {
	return &Spline{id: uuid.New()}
}

// ID identifies this spline instance in logs.
func (s *Spline) ID() uuid.UUID {
	return s.id
}

// Revision is incremented by every Refresh. Drawing code can use it to skip re-sampling.
func (s *Spline) Revision() int {
	return s.revision
}

func (s *Spline) Count() int {
	return len(s.points)
}

// Initialize replaces all points with n points laid out along +X, one unit apart.
func (s *Spline) Initialize(n int) {
	if n < 0 {
		n = 0
	}
	s.points = make([]controlPoint, n)
	for i := range s.points {
		p := spline.P3(float32(i)*initSpacing, 0, 0)
		s.points[i] = controlPoint{
			position:  p,
			preceding: p.Sub(spline.P3(initSpacing/4.0, 0, 0)),
			following: p.Add(spline.P3(initSpacing/4.0, 0, 0)),
			normal:    worldUp,
			mode:      spline.HandleMirrored,
		}
	}
}

func (s *Spline) RemovePointAt(i int) {
	s.points = append(s.points[:i], s.points[i+1:]...)
}

// InsertNewPointAt inserts a point with collapsed handles at p. Refresh or AutoConstruct gives
// it real tangents.
func (s *Spline) InsertNewPointAt(i int, p spline.Point3D) {
	cp := controlPoint{position: p, preceding: p, following: p, normal: worldUp}
	s.points = append(s.points, controlPoint{})
	copy(s.points[i+1:], s.points[i:])
	s.points[i] = cp
}

func (s *Spline) Position(i int) spline.Point3D {
	return s.points[i].position
}

// SetPosition moves the point and translates both of its handles with it.
func (s *Spline) SetPosition(i int, p spline.Point3D) {
	cp := &s.points[i]
	delta := p.Sub(cp.position)
	cp.position = p
	cp.preceding = cp.preceding.Add(delta)
	cp.following = cp.following.Add(delta)
}

// PrecedingHandle returns the absolute position of the handle towards the previous point.
func (s *Spline) PrecedingHandle(i int) spline.Point3D {
	return s.points[i].preceding
}

// FollowingHandle returns the absolute position of the handle towards the next point.
func (s *Spline) FollowingHandle(i int) spline.Point3D {
	return s.points[i].following
}

// Normal returns the normal computed on the last Refresh with auto normals enabled.
func (s *Spline) Normal(i int) spline.Point3D {
	return s.points[i].normal
}

func (s *Spline) HandleMode(i int) spline.HandleMode {
	return s.points[i].mode
}

// SetHandleMode changes the mode and re-derives the following handle from the preceding one.
func (s *Spline) SetHandleMode(i int, m spline.HandleMode) {
	cp := &s.points[i]
	cp.mode = m
	enforceMode(cp)
}

func enforceMode(cp *controlPoint) {
	back := cp.preceding.Sub(cp.position)
	switch cp.mode {
	case spline.HandleMirrored:
		cp.following = cp.position.Sub(back)
	case spline.HandleAligned:
		backLen := length(back)
		if backLen < normalEpsilon {
			return
		}
		fwdLen := length(cp.following.Sub(cp.position))
		cp.following = cp.position.Sub(back.Scale(fwdLen / backLen))
	}
}

func (s *Spline) Loop() bool {
	return s.loop
}

func (s *Spline) SetLoop(loop bool) {
	s.loop = loop
}

func (s *Spline) SetAutoConstructMode(m spline.AutoConstructMode) {
	s.autoMode = m
}

// AutoConstructMode returns the mode applied on Refresh.
func (s *Spline) AutoConstructMode() spline.AutoConstructMode {
	return s.autoMode
}

func (s *Spline) SetAutoCalculateNormals(on bool) {
	s.autoNormals = on
}

// AutoCalculateNormals reports whether Refresh recomputes normals.
func (s *Spline) AutoCalculateNormals() bool {
	return s.autoNormals
}

// AutoConstruct places Catmull-Rom style handles: each point's tangent is half the vector between
// its neighbours, and the handles sit a third of that tangent away on either side. End points of an
// open spline use themselves as the missing neighbour.
func (s *Spline) AutoConstruct() {
	n := len(s.points)
	if n < 2 {
		s.collapseHandles()
		return
	}
	// Tangents are computed from positions only, so handles can be written in place.
	for i := range s.points {
		prev, next := s.neighbours(i)
		tangent := next.Sub(prev).Scale(0.5)
		cp := &s.points[i]
		cp.following = cp.position.Add(tangent.Scale(1.0 / 3))
		cp.preceding = cp.position.Sub(tangent.Scale(1.0 / 3))
	}
}

func (s *Spline) neighbours(i int) (prev, next spline.Point3D) {
	n := len(s.points)
	pi, ni := i-1, i+1
	if s.loop {
		pi = (pi + n) % n
		ni = ni % n
	} else {
		if pi < 0 {
			pi = i
		}
		if ni >= n {
			ni = i
		}
	}
	return s.points[pi].position, s.points[ni].position
}

func (s *Spline) collapseHandles() {
	for i := range s.points {
		cp := &s.points[i]
		cp.preceding = cp.position
		cp.following = cp.position
	}
}

// Refresh applies the auto construct mode and, if enabled, recomputes normals.
func (s *Spline) Refresh() {
	switch s.autoMode {
	case spline.AutoConstructLinear:
		s.collapseHandles()
	case spline.AutoConstructSmooth:
		s.AutoConstruct()
	}
	if s.autoNormals {
		s.calculateNormals()
	}
	s.revision++
}

func (s *Spline) calculateNormals() {
	for i := range s.points {
		cp := &s.points[i]
		tangent := cp.following.Sub(cp.preceding)
		if length(tangent) < normalEpsilon {
			prev, next := s.neighbours(i)
			tangent = next.Sub(prev)
		}
		cp.normal = normalize(cross(tangent, worldUp))
		if cp.normal == (spline.Point3D{}) {
			cp.normal = worldUp
		}
	}
}

// segments is the number of curve segments; a looped spline has one more closing the curve.
func (s *Spline) segments() int {
	n := len(s.points)
	if n < 2 {
		return 0
	}
	if s.loop {
		return n
	}
	return n - 1
}

// PointAt evaluates the curve at t, clamped to [0,1]. t is spread uniformly over segments, so
// t=0 is the first point and t=1 is the last point (the first point again for a loop).
func (s *Spline) PointAt(t float32) spline.Point3D {
	switch len(s.points) {
	case 0:
		return spline.Point3D{}
	case 1:
		return s.points[0].position
	}
	t = math32.Max(0, math32.Min(1, t))
	segs := s.segments()
	pos := t * float32(segs)
	i := int(pos)
	if i >= segs {
		i = segs - 1
	}
	local := pos - float32(i)
	a := s.points[i]
	b := s.points[(i+1)%len(s.points)]
	return cubic(a.position, a.following, b.preceding, b.position, local)
}

func cubic(p0, p1, p2, p3 spline.Point3D, t float32) spline.Point3D {
	mt := 1 - t
	return p0.Scale(mt * mt * mt).
		Add(p1.Scale(3 * mt * mt * t)).
		Add(p2.Scale(3 * mt * t * t)).
		Add(p3.Scale(t * t * t))
}

func cross(a, b spline.Point3D) spline.Point3D {
	return spline.P3(a.Y*b.Z-a.Z*b.Y, a.Z*b.X-a.X*b.Z, a.X*b.Y-a.Y*b.X)
}

func length(v spline.Point3D) float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func normalize(v spline.Point3D) spline.Point3D {
	l := length(v)
	if math32.Abs(l) < normalEpsilon {
		return spline.Point3D{}
	}
	return v.Scale(1 / l)
}
