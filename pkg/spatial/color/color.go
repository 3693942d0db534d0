package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

// Color is an 8-bit sRGB color with straight alpha.
type Color struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
	A uint8 `json:"a" yaml:"a"`
}

var (
	White       = Color{R: 255, G: 255, B: 255, A: 255}
	Black       = Color{A: 255}
	Red         = Color{R: 255, A: 255}
	Green       = Color{G: 255, A: 255}
	Blue        = Color{B: 255, A: 255}
	Yellow      = Color{R: 255, G: 255, A: 255}
	Cyan        = Color{G: 255, B: 255, A: 255}
	Magenta     = Color{R: 255, B: 255, A: 255}
	Transparent = Color{}
	Gray        = Color{R: 128, G: 128, B: 128, A: 255}
)

func New(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGB is an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

func FromHex(hex uint32) Color {
	return Color{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 255}
}

func FromHexRGBA(hex uint32) Color {
	return Color{R: uint8(hex >> 24), G: uint8(hex >> 16), B: uint8(hex >> 8), A: uint8(hex)}
}

// ParseHex reads "#RRGGBB" or "#RRGGBBAA". The leading '#' is optional.
func ParseHex(s string) (Color, error) {
	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 && len(digits) != 8 {
		return Color{}, fmt.Errorf("color %q: want 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(digits) == 6 {
		return FromHex(uint32(v)), nil
	}
	return FromHexRGBA(uint32(v)), nil
}

func (c Color) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c Color) HexRGBA() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// Linear decodes the sRGB transfer curve. Alpha is scaled, not curved.
func (c Color) Linear() LinearColor {
	return LinearColor{
		R: srgbToLinear(c.R),
		G: srgbToLinear(c.G),
		B: srgbToLinear(c.B),
		A: float32(c.A) / 255,
	}
}

// FromLinear clamps each channel to [0, 1] and applies the sRGB curve.
func FromLinear(l LinearColor) Color {
	return Color{
		R: linearToSRGB(l.R),
		G: linearToSRGB(l.G),
		B: linearToSRGB(l.B),
		A: toByte(clamp01(l.A)),
	}
}

// Luminance is the perceived brightness, computed in linear space.
func (c Color) Luminance() uint8 {
	return toByte(clamp01(c.Linear().Luminance()))
}

// Lerp blends the sRGB bytes directly. Alpha is clamped to [0, 1].
func (c Color) Lerp(o Color, alpha float32) Color {
	alpha = clamp01(alpha)
	mix := func(a, b uint8) uint8 {
		return toByte((float32(a)*(1-alpha) + float32(b)*alpha) / 255)
	}
	return Color{R: mix(c.R, o.R), G: mix(c.G, o.G), B: mix(c.B, o.B), A: mix(c.A, o.A)}
}

func (c Color) String() string {
	return fmt.Sprintf("Color(R=%d, G=%d, B=%d, A=%d) [#%08X]", c.R, c.G, c.B, c.A, c.HexRGBA())
}

func srgbToLinear(v uint8) float32 {
	n := float32(v) / 255
	if n <= 0.04045 {
		return n / 12.92
	}
	return math32.Pow((n+0.055)/1.055, 2.4)
}

func linearToSRGB(v float32) uint8 {
	v = clamp01(v)
	if v <= 0.0031308 {
		return toByte(v * 12.92)
	}
	return toByte(1.055*math32.Pow(v, 1/2.4) - 0.055)
}

// toByte maps [0, 1] to the nearest byte.
func toByte(v float32) uint8 {
	return uint8(math32.Floor(clamp01(v)*255 + 0.5))
}

func clamp01(v float32) float32 {
	switch {
	case math32.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
