package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// BlendMode is a compositing operation plus the channels it applies to (Flags | Op)
type BlendMode uint8

const (
	opReplace uint8 = 0x00
	opAlpha   uint8 = 0x01
	opScreen  uint8 = 0x02
	opMax     uint8 = 0x03
)

const (
	flagBg uint8 = 0x10
	flagFg uint8 = 0x20
)

const (
	BlendReplace = BlendMode(opReplace | flagBg | flagFg)
	BlendAlpha   = BlendMode(opAlpha | flagBg | flagFg)
	BlendScreen  = BlendMode(opScreen | flagBg | flagFg)

	BlendAlphaBg  = BlendMode(opAlpha | flagBg)
	BlendScreenBg = BlendMode(opScreen | flagBg)
	BlendMaxBg    = BlendMode(opMax | flagBg)
	BlendFgOnly   = BlendMode(opReplace | flagFg)
)

func blend(op uint8, dst, src colorful.Color, alpha float64) colorful.Color {
	switch op {
	case opAlpha:
		return dst.BlendRgb(src, clamp01(alpha)).Clamped()
	case opScreen:
		a := clamp01(alpha)
		return colorful.Color{
			R: screenChannel(dst.R, src.R*a),
			G: screenChannel(dst.G, src.G*a),
			B: screenChannel(dst.B, src.B*a),
		}
	case opMax:
		return colorful.Color{R: math.Max(dst.R, src.R), G: math.Max(dst.G, src.G), B: math.Max(dst.B, src.B)}
	default:
		return src
	}
}

func screenChannel(d, s float64) float64 {
	return 1 - (1-d)*(1-s)
}

// Scale multiplies every channel by f and clamps
func Scale(c colorful.Color, f float64) colorful.Color {
	return colorful.Color{R: c.R * f, G: c.G * f, B: c.B * f}.Clamped()
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
