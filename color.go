package s2

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrMalformedColor is returned by ParseColor for strings it cannot decode.
var ErrMalformedColor = errors.New("s2: malformed color")

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

var (
	ColorBlack = Color{0, 0, 0, 1}
	ColorWhite = Color{1, 1, 1, 1}
)

// RGB returns an opaque color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Lerp interpolates each component linearly.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: lerp(c.R, o.R, t),
		G: lerp(c.G, o.G, t),
		B: lerp(c.B, o.B, t),
		A: lerp(c.A, o.A, t),
	}
}

// RGBA converts to an 8-bit non-premultiplied color.
func (c Color) RGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp(c.R, 0, 1)*255 + 0.5),
		G: uint8(clamp(c.G, 0, 1)*255 + 0.5),
		B: uint8(clamp(c.B, 0, 1)*255 + 0.5),
		A: uint8(clamp(c.A, 0, 1)*255 + 0.5),
	}
}

// Hex formats the color as #rrggbbaa.
func (c Color) Hex() string {
	n := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// ParseColor decodes a color string. Accepted forms are "#rgb", "#rgba",
// "#rrggbb", "#rrggbbaa", "rgb(r, g, b)" and "rgba(r, g, b, a)" with 0-255
// channels and a 0-1 alpha, and CSS color names.
func ParseColor(s string) (Color, error) {
	str := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(str, "#"):
		c, ok := parseHexColor(str[1:])
		if !ok {
			return Color{}, fmt.Errorf("parse color %q: %w", s, ErrMalformedColor)
		}
		return c, nil
	case strings.HasPrefix(str, "rgb"):
		c, err := parseFuncColor(str)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		return c, nil
	}
	if named, ok := colornames.Map[str]; ok {
		return fromRGBA(named), nil
	}
	return Color{}, fmt.Errorf("parse color %q: %w", s, ErrMalformedColor)
}

// MustParseColor is like ParseColor but panics on malformed input.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func fromRGBA(c color.RGBA) Color {
	if c.A == 0 {
		return Color{}
	}
	// colornames values are opaque except "transparent"; un-premultiply anyway.
	a := float64(c.A) / 255
	return Color{
		R: float64(c.R) / 255 / a,
		G: float64(c.G) / 255 / a,
		B: float64(c.B) / 255 / a,
		A: a,
	}
}

func parseHexColor(hex string) (Color, bool) {
	var v [4]uint64
	v[3] = 255
	switch len(hex) {
	case 3, 4:
		for i := range len(hex) {
			n, err := strconv.ParseUint(hex[i:i+1], 16, 8)
			if err != nil {
				return Color{}, false
			}
			v[i] = n * 17
		}
	case 6, 8:
		for i := 0; i < len(hex); i += 2 {
			n, err := strconv.ParseUint(hex[i:i+2], 16, 8)
			if err != nil {
				return Color{}, false
			}
			v[i/2] = n
		}
	default:
		return Color{}, false
	}
	return Color{
		R: float64(v[0]) / 255,
		G: float64(v[1]) / 255,
		B: float64(v[2]) / 255,
		A: float64(v[3]) / 255,
	}, true
}

func parseFuncColor(s string) (Color, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, ErrMalformedColor
	}
	name := strings.TrimSpace(s[:open])
	args := strings.Split(s[open+1:len(s)-1], ",")

	want := 3
	if name == "rgba" {
		want = 4
	} else if name != "rgb" {
		return Color{}, ErrMalformedColor
	}
	if len(args) != want {
		return Color{}, fmt.Errorf("%s wants %d arguments, got %d: %w", name, want, len(args), ErrMalformedColor)
	}

	var ch [4]float64
	ch[3] = 1
	for i, a := range args {
		f, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return Color{}, fmt.Errorf("channel %d: %w", i, ErrMalformedColor)
		}
		if i < 3 {
			if f < 0 || f > 255 {
				return Color{}, fmt.Errorf("channel %d out of range: %w", i, ErrMalformedColor)
			}
			f /= 255
		} else if f < 0 || f > 1 {
			return Color{}, fmt.Errorf("alpha out of range: %w", ErrMalformedColor)
		}
		ch[i] = f
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
