package spline

// Point3D is a position in world space. Values are compared exactly with ==.
type Point3D struct {
	X, Y, Z float32
}

// P3 is shorthand for Point3D{X: x, Y: y, Z: z}.
func P3(x, y, z float32) Point3D {
	return Point3D{X: x, Y: y, Z: z}
}

// Add returns p + q.
func (p Point3D) Add(q Point3D) Point3D {
	return Point3D{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p - q.
func (p Point3D) Sub(q Point3D) Point3D {
	return Point3D{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns p * s.
func (p Point3D) Scale(s float32) Point3D {
	return Point3D{p.X * s, p.Y * s, p.Z * s}
}

// PointSequence is an ordered list of points as read from a source. Duplicates are allowed.
type PointSequence []Point3D

// Clone returns a copy that does not share the backing array.
func (s PointSequence) Clone() PointSequence {
	if s == nil {
		return nil
	}
	out := make(PointSequence, len(s))
	copy(out, s)
	return out
}

// Closed reports whether the sequence starts and ends on the same point (at least two points).
func (s PointSequence) Closed() bool {
	return len(s) > 1 && s[0] == s[len(s)-1]
}
