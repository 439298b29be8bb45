package vmath

import "math"

// GridTraverser is a zero-allocation supercover DDA iterator over the cells a segment crosses
// Cell (i, j) covers [i, i+1) x [j, j+1)
type GridTraverser struct {
	currX, currY     int
	targetX, targetY int
	stepX, stepY     int

	tMaxX, tMaxY     float64
	tDeltaX, tDeltaY float64

	started bool
	done    bool
}

// NewGridTraverser creates an iterator from (x1, y1) to (x2, y2)
func NewGridTraverser(x1, y1, x2, y2 float64) GridTraverser {
	t := GridTraverser{
		currX: int(math.Floor(x1)), currY: int(math.Floor(y1)),
		targetX: int(math.Floor(x2)), targetY: int(math.Floor(y2)),
		stepX: 1, stepY: 1,
	}

	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		t.stepX = -1
		dx = -dx
	}
	if dy < 0 {
		t.stepY = -1
		dy = -dy
	}

	fx := x1 - math.Floor(x1)
	fy := y1 - math.Floor(y1)

	if dx == 0 {
		t.tMaxX = math.Inf(1)
	} else {
		t.tDeltaX = 1 / dx
		if t.stepX > 0 {
			t.tMaxX = (1 - fx) * t.tDeltaX
		} else {
			t.tMaxX = fx * t.tDeltaX
		}
	}
	if dy == 0 {
		t.tMaxY = math.Inf(1)
	} else {
		t.tDeltaY = 1 / dy
		if t.stepY > 0 {
			t.tMaxY = (1 - fy) * t.tDeltaY
		} else {
			t.tMaxY = fy * t.tDeltaY
		}
	}
	return t
}

// Next advances to the next cell; the first call yields the start cell
func (t *GridTraverser) Next() bool {
	if t.done {
		return false
	}
	if !t.started {
		t.started = true
		return true
	}
	if t.currX == t.targetX && t.currY == t.targetY {
		t.done = true
		return false
	}

	switch {
	case t.tMaxX < t.tMaxY:
		if t.currX != t.targetX {
			t.stepAlongX()
		} else {
			t.stepAlongY()
		}
	case t.tMaxX > t.tMaxY:
		if t.currY != t.targetY {
			t.stepAlongY()
		} else {
			t.stepAlongX()
		}
	default:
		if t.currX != t.targetX {
			t.stepAlongX()
		}
		if t.currY != t.targetY {
			t.stepAlongY()
		}
	}
	return true
}

func (t *GridTraverser) stepAlongX() {
	t.currX += t.stepX
	t.tMaxX += t.tDeltaX
}

func (t *GridTraverser) stepAlongY() {
	t.currY += t.stepY
	t.tMaxY += t.tDeltaY
}

// Pos returns the current cell
func (t *GridTraverser) Pos() (int, int) {
	return t.currX, t.currY
}

// Traverse visits every cell crossed by the segment until fn returns false
func Traverse(x1, y1, x2, y2 float64, fn func(x, y int) bool) {
	t := NewGridTraverser(x1, y1, x2, y2)
	for t.Next() {
		if !fn(t.Pos()) {
			return
		}
	}
}

// ClipSegment clips a segment to [minX, maxX] x [minY, maxY] (Liang-Barsky)
// Returns false when no part of the segment is inside
func ClipSegment(x1, y1, x2, y2, minX, minY, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	dx, dy := x2-x1, y2-y1
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, x1 - minX},
		{dx, maxX - x1},
		{-dy, y1 - minY},
		{dy, maxY - y1},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x1 + t0*dx, y1 + t0*dy, x1 + t1*dx, y1 + t1*dy, true
}
