package geometry

import "math"

// Rect is an axis-aligned rectangle in page coordinates with the
// origin at the top-left corner (Y grows downward). X0,Y0 is the
// top-left corner, X1,Y1 the bottom-right.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// NewRect builds a normalized rectangle from two opposite corners
// given in any order.
func NewRect(x0, y0, x1, y1 float64) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// FromQuad converts one quad-point group (x1 y1 x2 y2 x3 y3 x4 y4,
// already top-origin) into its bounding rectangle.
func FromQuad(q [8]float64) Rect {
	minX, maxX := q[0], q[0]
	minY, maxY := q[1], q[1]
	for i := 2; i < 8; i += 2 {
		minX = math.Min(minX, q[i])
		maxX = math.Max(maxX, q[i])
		minY = math.Min(minY, q[i+1])
		maxY = math.Max(maxY, q[i+1])
	}
	return Rect{X0: minX, Y0: minY, X1: maxX, Y1: maxY}
}

// IsZero reports whether r is the zero rectangle.
func (r Rect) IsZero() bool {
	return r.X0 == 0 && r.Y0 == 0 && r.X1 == 0 && r.Y1 == 0
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Intersects reports whether r and other overlap. Rectangles that
// merely share an edge do not count as overlapping.
func (r Rect) Intersects(other Rect) bool {
	return r.X0 < other.X1 && other.X0 < r.X1 &&
		r.Y0 < other.Y1 && other.Y0 < r.Y1
}

// Union returns the smallest rectangle covering both r and other.
func (r Rect) Union(other Rect) Rect {
	if r.IsZero() {
		return other
	}
	if other.IsZero() {
		return r
	}
	return Rect{
		X0: math.Min(r.X0, other.X0),
		Y0: math.Min(r.Y0, other.Y0),
		X1: math.Max(r.X1, other.X1),
		Y1: math.Max(r.Y1, other.Y1),
	}
}

// Line estimation constants for academic-paper layouts. The top
// margin is one inch (72pt); the line height is an empirical average
// for double-spaced thesis text. Estimates are approximate by design.
const (
	DefaultTopMargin  = 72.0
	DefaultLineHeight = 20.0
)

// LineEstimator maps a Y coordinate (measured from the top of the
// page) to a 1-based line number.
type LineEstimator struct {
	TopMargin  float64
	LineHeight float64
}

// DefaultLineEstimator returns an estimator with the standard
// academic-paper constants.
func DefaultLineEstimator() LineEstimator {
	return LineEstimator{TopMargin: DefaultTopMargin, LineHeight: DefaultLineHeight}
}

// EstimateLine returns the estimated 1-based line number for a Y
// coordinate measured downward from the page top. It never fails and
// is monotonically non-decreasing in y.
func (e LineEstimator) EstimateLine(y float64) int {
	lh := e.LineHeight
	if lh <= 0 {
		lh = DefaultLineHeight
	}
	adjusted := y - e.TopMargin
	if adjusted < 0 {
		adjusted = 0
	}
	n := int(adjusted/lh) + 1
	if n < 1 {
		n = 1
	}
	return n
}
