package geometry

import "testing"

func TestNewRectNormalizes(t *testing.T) {
	r := NewRect(10, 20, 5, 2)
	if r.X0 != 5 || r.Y0 != 2 || r.X1 != 10 || r.Y1 != 20 {
		t.Fatalf("unexpected rect: %+v", r)
	}
}

func TestFromQuad(t *testing.T) {
	// Counterclockwise quad covering x 10..50, y 100..112.
	q := [8]float64{10, 112, 50, 112, 50, 100, 10, 100}
	r := FromQuad(q)
	if r.X0 != 10 || r.X1 != 50 || r.Y0 != 100 || r.Y1 != 112 {
		t.Fatalf("unexpected rect from quad: %+v", r)
	}
}

func TestIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlap", NewRect(0, 0, 10, 10), NewRect(5, 5, 15, 15), true},
		{"contained", NewRect(0, 0, 10, 10), NewRect(2, 2, 4, 4), true},
		{"disjoint", NewRect(0, 0, 10, 10), NewRect(20, 20, 30, 30), false},
		{"edge touch", NewRect(0, 0, 10, 10), NewRect(10, 0, 20, 10), false},
	}
	for _, tt := range tests {
		if got := tt.a.Intersects(tt.b); got != tt.want {
			t.Errorf("%s: Intersects=%v, want %v", tt.name, got, tt.want)
		}
		if got := tt.b.Intersects(tt.a); got != tt.want {
			t.Errorf("%s (swapped): Intersects=%v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestUnion(t *testing.T) {
	u := NewRect(0, 0, 10, 10).Union(NewRect(5, 5, 20, 8))
	if u.X0 != 0 || u.Y0 != 0 || u.X1 != 20 || u.Y1 != 10 {
		t.Fatalf("unexpected union: %+v", u)
	}
	if got := (Rect{}).Union(NewRect(1, 2, 3, 4)); got != NewRect(1, 2, 3, 4) {
		t.Fatalf("union with zero rect: %+v", got)
	}
}

func TestEstimateLine(t *testing.T) {
	e := DefaultLineEstimator()

	tests := []struct {
		y    float64
		want int
	}{
		{0, 1},
		{-50, 1},   // above the page
		{71, 1},    // inside the top margin
		{72, 1},    // first text line
		{92, 2},    // one line height down
		{72 + 14*20, 15},
	}
	for _, tt := range tests {
		if got := e.EstimateLine(tt.y); got != tt.want {
			t.Errorf("EstimateLine(%v)=%d, want %d", tt.y, got, tt.want)
		}
	}
}

func TestEstimateLineMonotonic(t *testing.T) {
	e := DefaultLineEstimator()
	prev := 0
	for y := -100.0; y <= 900; y += 3.7 {
		n := e.EstimateLine(y)
		if n < 1 {
			t.Fatalf("EstimateLine(%v)=%d, want >= 1", y, n)
		}
		if n < prev {
			t.Fatalf("EstimateLine not monotonic at y=%v: %d < %d", y, n, prev)
		}
		prev = n
	}
}
