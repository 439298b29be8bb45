package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Cell is one composited terminal cell
type Cell struct {
	Rune  rune
	Fg    colorful.Color
	Bg    colorful.Color
	Attrs tcell.AttrMask
}

// Buffer is a compositor over a cell grid with touched tracking
// Untouched cells get the buffer background at flush
type Buffer struct {
	cells      []Cell
	touched    []bool
	width      int
	height     int
	background colorful.Color
}

// NewBuffer creates a buffer of the given size
func NewBuffer(width, height int, background colorful.Color) *Buffer {
	b := &Buffer{background: background}
	b.Resize(width, height)
	return b
}

// Resize adjusts dimensions, reallocating only when capacity is short, and clears
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets every cell using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Bg: b.background}
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

// Bounds returns the buffer size
func (b *Buffer) Bounds() (int, int) {
	return b.width, b.height
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at (x, y); out of bounds yields an empty cell
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Touched reports whether the background at (x, y) was written this frame
func (b *Buffer) Touched(x, y int) bool {
	return b.inBounds(x, y) && b.touched[y*b.width+x]
}

// Set composites a cell; a zero rune keeps the existing rune
func (b *Buffer) Set(x, y int, r rune, fg, bg colorful.Color, mode BlendMode, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	dst := &b.cells[idx]

	op := uint8(mode) & 0x0F
	flags := uint8(mode) & 0xF0

	if r != 0 {
		dst.Rune = r
	}
	if flags&flagBg != 0 {
		dst.Bg = blend(op, dst.Bg, bg, alpha)
		b.touched[idx] = true
	}
	if flags&flagFg != 0 {
		dst.Fg = blend(op, dst.Fg, fg, alpha)
	}
}

// SetFgOnly writes rune and foreground, keeping the background
func (b *Buffer) SetFgOnly(x, y int, r rune, fg colorful.Color, attrs tcell.AttrMask) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Rune = r
	dst.Fg = fg
	dst.Attrs = attrs
}

// Text writes s left to right from (x, y) and returns the column after the last rune
func (b *Buffer) Text(x, y int, s string, fg colorful.Color, attrs tcell.AttrMask) int {
	for _, r := range s {
		b.SetFgOnly(x, y, r, fg, attrs)
		x++
	}
	return x
}

// Flush copies the buffer to screen; the caller shows the screen
func (b *Buffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			idx := y*b.width + x
			c := b.cells[idx]
			bg := c.Bg
			if !b.touched[idx] {
				bg = b.background
			}
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			style := tcell.StyleDefault.
				Foreground(tcellColor(c.Fg)).
				Background(tcellColor(bg)).
				Attributes(c.Attrs)
			screen.SetContent(x, y, r, nil, style)
		}
	}
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, bl := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(bl))
}
