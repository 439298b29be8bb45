package vmath

import "testing"

func collect(x1, y1, x2, y2 float64) [][2]int {
	var cells [][2]int
	Traverse(x1, y1, x2, y2, func(x, y int) bool {
		cells = append(cells, [2]int{x, y})
		return len(cells) < 1000
	})
	return cells
}

func TestTraverseHorizontal(t *testing.T) {
	cells := collect(0.5, 2.5, 4.5, 2.5)
	if len(cells) != 5 {
		t.Fatalf("Expected 5 cells, got %d: %v", len(cells), cells)
	}
	for i, c := range cells {
		if c != [2]int{i, 2} {
			t.Errorf("Cell %d: expected (%d,2), got %v", i, i, c)
		}
	}
}

func TestTraverseSingleCell(t *testing.T) {
	cells := collect(3.2, 3.7, 3.9, 3.1)
	if len(cells) != 1 || cells[0] != [2]int{3, 3} {
		t.Errorf("Expected only (3,3), got %v", cells)
	}
}

func TestTraverseNoGaps(t *testing.T) {
	cells := collect(0.5, 0.5, 7.5, 3.5)
	first, last := cells[0], cells[len(cells)-1]
	if first != [2]int{0, 0} || last != [2]int{7, 3} {
		t.Errorf("Expected endpoints (0,0)-(7,3), got %v-%v", first, last)
	}
	for i := 1; i < len(cells); i++ {
		dx := cells[i][0] - cells[i-1][0]
		dy := cells[i][1] - cells[i-1][1]
		if dx < 0 || dy < 0 || dx > 1 || dy > 1 {
			t.Errorf("Step %d jumps from %v to %v", i, cells[i-1], cells[i])
		}
	}
}

func TestTraverseNegativeDirection(t *testing.T) {
	cells := collect(4.5, 4.5, 0.5, 0.5)
	if cells[len(cells)-1] != [2]int{0, 0} {
		t.Errorf("Expected to end at (0,0), got %v", cells[len(cells)-1])
	}
}

func TestTraverseStopsEarly(t *testing.T) {
	n := 0
	Traverse(0, 0, 100, 0, func(x, y int) bool {
		n++
		return n < 3
	})
	if n != 3 {
		t.Errorf("Expected traversal to stop after 3 cells, got %d", n)
	}
}

func TestClipSegment(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		ok             bool
		want           [4]float64
	}{
		{"inside", 1, 1, 5, 5, true, [4]float64{1, 1, 5, 5}},
		{"crossing", -5, 5, 15, 5, true, [4]float64{0, 5, 10, 5}},
		{"outside", -5, -5, -1, -1, false, [4]float64{}},
		{"parallel outside", 0, 20, 10, 20, false, [4]float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x1, y1, x2, y2, ok := ClipSegment(tt.x1, tt.y1, tt.x2, tt.y2, 0, 0, 10, 10)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && [4]float64{x1, y1, x2, y2} != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, [4]float64{x1, y1, x2, y2})
			}
		})
	}
}
