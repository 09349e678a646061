package common

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorState holds the four output channel intensities of a controller.
// Channel values are always in the range [0,255]; operations that produce
// channel values clamp them, never wrap.
type ColorState struct {
	R uint8
	G uint8
	B uint8
	W uint8
}

// NewColorState builds a ColorState from unconstrained channel values,
// clamping each into [0,255].
func NewColorState(r, g, b, w int) ColorState {
	return ColorState{
		R: clampChannel(r),
		G: clampChannel(g),
		B: clampChannel(b),
		W: clampChannel(w),
	}
}

// Bytes returns the channels in wire order (red, green, blue, white).
func (c ColorState) Bytes() []byte {
	return []byte{c.R, c.G, c.B, c.W}
}

// ChangeBrightness returns a copy of the color with its luminance adjusted.
// The color is converted to HSL, the luminance (expressed on a 0-255 scale)
// has delta added to it, or is multiplied by delta when percentage is true,
// and is clamped to [0,255] before converting back.  The white channel is
// not part of the luminance model and passes through unchanged.  A delta of
// zero returns the color as-is.
func (c ColorState) ChangeBrightness(delta float64, percentage bool) ColorState {
	if delta == 0 {
		return c
	}
	h, s, l := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsl()
	l *= 255
	if percentage {
		l *= delta
	} else {
		l += delta
	}
	if l < 0 {
		l = 0
	} else if l > 255 {
		l = 255
	}
	adjusted := colorful.Hsl(h, s, l/255).Clamped()
	c.R = uint8(math.Round(adjusted.R * 255))
	c.G = uint8(math.Round(adjusted.G * 255))
	c.B = uint8(math.Round(adjusted.B * 255))
	return c
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
