package models

import (
	"encoding/json"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an immutable color in one of the forms the API accepts:
// "r,g,b", "r,g,b,a", "#rrggbb" or an HTML color name.
// The zero value means "no color" and is omitted or rejected by callers.
type Color struct {
	value string
}

// RGB creates a color from red, green and blue channels in [0,255]
func RGB(r, g, b int) (Color, error) {
	for _, ch := range []struct {
		name  string
		value int
	}{{"Red value", r}, {"Green value", g}, {"Blue value", b}} {
		if err := checkRange("Color", ch.name, ch.value, 0, 255); err != nil {
			return Color{}, err
		}
	}
	return Color{value: fmt.Sprintf("%d,%d,%d", r, g, b)}, nil
}

// RGBA creates a color from red, green, blue and alpha channels in [0,255]
func RGBA(r, g, b, a int) (Color, error) {
	if _, err := RGB(r, g, b); err != nil {
		return Color{}, err
	}
	if err := checkRange("Color", "Alpha value", a, 0, 255); err != nil {
		return Color{}, err
	}
	return Color{value: fmt.Sprintf("%d,%d,%d,%d", r, g, b, a)}, nil
}

// ColorFromString wraps a hex code or color name. The value is not parsed.
func ColorFromString(s string) (Color, error) {
	if err := checkNotEmpty("Color", "Color", s); err != nil {
		return Color{}, err
	}
	return Color{value: s}, nil
}

// FromColor converts a standard library color. Fully opaque colors use the
// "r,g,b" form, anything else keeps its alpha channel.
func FromColor(c color.Color) Color {
	cf, ok := colorful.MakeColor(c)
	_, _, _, a := c.RGBA()
	if !ok {
		// colorful refuses fully transparent input
		return Color{value: "0,0,0,0"}
	}
	r, g, b := cf.RGB255()
	if a == 0xffff {
		return Color{value: fmt.Sprintf("%d,%d,%d", r, g, b)}
	}
	return Color{value: fmt.Sprintf("%d,%d,%d,%d", r, g, b, a>>8)}
}

// MustRGB is like RGB but panics on invalid channels
func MustRGB(r, g, b int) Color {
	c, err := RGB(r, g, b)
	if err != nil {
		panic(err)
	}
	return c
}

// MustRGBA is like RGBA but panics on invalid channels
func MustRGBA(r, g, b, a int) Color {
	c, err := RGBA(r, g, b, a)
	if err != nil {
		panic(err)
	}
	return c
}

// MustColor is like ColorFromString but panics on an empty string
func MustColor(s string) Color {
	c, err := ColorFromString(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the wire form of the color
func (c Color) String() string {
	return c.value
}

// IsZero reports whether the color was never set
func (c Color) IsZero() bool {
	return c.value == ""
}

// MarshalJSON encodes the color as a single JSON string
func (c Color) MarshalJSON() ([]byte, error) {
	if c.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(c.value)
}

// UnmarshalJSON decodes a color from a JSON string
func (c *Color) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		c.value = ""
		return nil
	}
	return json.Unmarshal(data, &c.value)
}
