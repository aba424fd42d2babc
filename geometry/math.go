package geometry

import "math"

// DistancePointPoint returns the Euclidean distance between two points.
func DistancePointPoint(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// DistancePointPointFast returns the Manhattan distance between two points.
// Good enough for "is it near" checks where the exact value does not matter.
func DistancePointPointFast(a, b Point) float64 {
	return math.Abs(b.X-a.X) + math.Abs(b.Y-a.Y)
}

// DistancePointLine returns the distance from p to the segment a-b together
// with the point on the segment closest to p.
func DistancePointLine(a, b, p Point) (float64, Point) {
	dx, dy := b.X-a.X, b.Y-a.Y
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return DistancePointPoint(a, p), a
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lengthSq
	t = Clamp(t, 0, 1)
	closest := Point{X: a.X + t*dx, Y: a.Y + t*dy}
	return DistancePointPoint(closest, p), closest
}

// DistanceRectanglePoint returns the signed distance from p to the border of r.
// Points inside the rectangle yield a negative value (or zero on the border),
// points outside a positive one.
func DistanceRectanglePoint(r Rect, p Point) float64 {
	r = r.Normalized()
	x1, y1 := r.X, r.Y
	x2, y2 := r.X+r.Width, r.Y+r.Height

	if r.Contains(p) {
		return -math.Min(math.Min(p.X-x1, x2-p.X), math.Min(p.Y-y1, y2-p.Y))
	}

	dx := math.Max(math.Max(x1-p.X, 0), p.X-x2)
	dy := math.Max(math.Max(y1-p.Y, 0), p.Y-y2)
	return math.Hypot(dx, dy)
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
