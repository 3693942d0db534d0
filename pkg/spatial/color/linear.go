package color

import (
	"fmt"

	"github.com/chewxy/math32"
)

// LinearColor holds linear-space channels. Values above 1 are allowed for
// HDR; nothing clamps them until Clamp or FromLinear.
type LinearColor struct {
	R float32 `json:"r" yaml:"r"`
	G float32 `json:"g" yaml:"g"`
	B float32 `json:"b" yaml:"b"`
	A float32 `json:"a" yaml:"a"`
}

var (
	LinearWhite       = LinearColor{R: 1, G: 1, B: 1, A: 1}
	LinearBlack       = LinearColor{A: 1}
	LinearRed         = LinearColor{R: 1, A: 1}
	LinearGreen       = LinearColor{G: 1, A: 1}
	LinearBlue        = LinearColor{B: 1, A: 1}
	LinearTransparent = LinearColor{}
)

func NewLinear(r, g, b, a float32) LinearColor {
	return LinearColor{R: r, G: g, B: b, A: a}
}

// FromHSV converts hue in degrees, saturation and value in [0, 1] to an
// opaque color. Hue wraps at 360.
func FromHSV(h, s, v float32) LinearColor {
	h = math32.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math32.Abs(math32.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float32
	switch {
	case h < 60:
		r, g = c, x
	case h < 120:
		r, g = x, c
	case h < 180:
		g, b = c, x
	case h < 240:
		g, b = x, c
	case h < 300:
		r, b = x, c
	default:
		r, b = c, x
	}
	return LinearColor{R: r + m, G: g + m, B: b + m, A: 1}
}

// Luminance weights the channels with the Rec. 601 coefficients.
func (l LinearColor) Luminance() float32 {
	return 0.299*l.R + 0.587*l.G + 0.114*l.B
}

// Lerp is unclamped; alpha outside [0, 1] extrapolates.
func (l LinearColor) Lerp(o LinearColor, alpha float32) LinearColor {
	return LinearColor{
		R: l.R + alpha*(o.R-l.R),
		G: l.G + alpha*(o.G-l.G),
		B: l.B + alpha*(o.B-l.B),
		A: l.A + alpha*(o.A-l.A),
	}
}

// Scale multiplies the color channels and keeps alpha.
func (l LinearColor) Scale(factor float32) LinearColor {
	return LinearColor{R: l.R * factor, G: l.G * factor, B: l.B * factor, A: l.A}
}

func (l LinearColor) Clamp() LinearColor {
	return LinearColor{R: clamp01(l.R), G: clamp01(l.G), B: clamp01(l.B), A: clamp01(l.A)}
}

func (l LinearColor) IsNearlyEqual(o LinearColor, tolerance float32) bool {
	return math32.Abs(l.R-o.R) <= tolerance &&
		math32.Abs(l.G-o.G) <= tolerance &&
		math32.Abs(l.B-o.B) <= tolerance &&
		math32.Abs(l.A-o.A) <= tolerance
}

func (l LinearColor) String() string {
	return fmt.Sprintf("LinearColor(R=%.3f, G=%.3f, B=%.3f, A=%.3f)", l.R, l.G, l.B, l.A)
}
