package spline

// HandleMode controls how the two tangent handles of a control point relate.
type HandleMode int

const (
	// HandleFree lets both handles move independently.
	HandleFree HandleMode = iota
	// HandleAligned keeps the handles collinear but allows different lengths.
	HandleAligned
	// HandleMirrored keeps the handles collinear and of equal length.
	HandleMirrored
)

func (m HandleMode) String() string {
	switch m {
	case HandleFree:
		return "free"
	case HandleAligned:
		return "aligned"
	case HandleMirrored:
		return "mirrored"
	}
	return "unknown"
}

// AutoConstructMode selects how an engine derives tangent handles on Refresh.
type AutoConstructMode int

const (
	// AutoConstructNone leaves handles as they are.
	AutoConstructNone AutoConstructMode = iota
	// AutoConstructLinear collapses handles so segments are straight.
	AutoConstructLinear
	// AutoConstructSmooth derives handles from neighbouring positions.
	AutoConstructSmooth
)

// Handle is the contract consumed from a spline engine. The caller does not own the handle;
// it only issues clear/insert/set/refresh operations against it. Index arguments must be in range.
type Handle interface {
	Count() int
	// Initialize resets the spline to n control points.
	Initialize(n int)
	RemovePointAt(i int)
	// InsertNewPointAt inserts a control point at index i (0 <= i <= Count()) positioned at p.
	InsertNewPointAt(i int, p Point3D)
	Position(i int) Point3D
	SetPosition(i int, p Point3D)
	HandleMode(i int) HandleMode
	SetHandleMode(i int, m HandleMode)
	Loop() bool
	SetLoop(loop bool)
	// AutoConstruct recomputes smooth tangent handles from the current positions.
	AutoConstruct()
	SetAutoConstructMode(m AutoConstructMode)
	SetAutoCalculateNormals(on bool)
	// Refresh recomputes derived geometry after mutation.
	Refresh()
	// PointAt samples the curve at normalized t in [0,1].
	PointAt(t float32) Point3D
}

// Positions returns the control point positions of h in order.
func Positions(h Handle) PointSequence {
	n := h.Count()
	out := make(PointSequence, n)
	for i := 0; i < n; i++ {
		out[i] = h.Position(i)
	}
	return out
}

// DefaultSamples is the number of segments used when drawing a curve.
const DefaultSamples = 100

// Sample evaluates h at steps+1 uniform parameters from 0 to 1. Consecutive samples form the
// polyline drawn for the curve. Returns nil for an empty spline or steps <= 0.
func Sample(h Handle, steps int) []Point3D {
	return AppendSamples(nil, h, steps)
}

// AppendSamples is Sample appending to dst, so a per-frame caller can reuse one buffer.
func AppendSamples(dst []Point3D, h Handle, steps int) []Point3D {
	if h == nil || h.Count() == 0 || steps <= 0 {
		return dst
	}
	for i := 0; i <= steps; i++ {
		dst = append(dst, h.PointAt(float32(i)/float32(steps)))
	}
	return dst
}
