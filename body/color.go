package body

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette produces spawn colors from a seeded source so editor actions are reproducible in tests
type Palette struct {
	rng *rand.Rand
}

// NewPalette creates a palette seeded with seed
func NewPalette(seed int64) *Palette {
	return &Palette{rng: rand.New(rand.NewSource(seed))}
}

// Next returns a saturated, reasonably bright color
func (p *Palette) Next() colorful.Color {
	h := p.rng.Float64() * 360
	s := 0.55 + p.rng.Float64()*0.4
	v := 0.75 + p.rng.Float64()*0.25
	return colorful.Hsv(h, s, v)
}

// ParseColor decodes "#rrggbb", falling back to a pale blue on malformed input
func ParseColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{R: 200.0 / 255, G: 200.0 / 255, B: 1}
	}
	return c
}
