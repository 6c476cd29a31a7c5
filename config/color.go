package config

import (
	"fmt"
	"image/color"

	css "github.com/mazznoer/csscolorparser"
	"gopkg.in/yaml.v3"
)

// Color is a non-premultiplied colour written as any CSS colour string in YAML.
type Color struct {
	color.NRGBA
}

// ParseColor parses a CSS colour string ("#00ff88", "rgba(0,0,0,0.2)", "white").
func ParseColor(s string) (Color, error) {
	c, err := css.Parse(s)
	if err != nil {
		return Color{}, fmt.Errorf("parsing colour %q: %w", s, err)
	}
	r, g, b, a := c.RGBA255()
	return Color{color.NRGBA{R: r, G: g, B: b, A: a}}, nil
}

// MustColor is like ParseColor but panics on error.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}

// Hex formats the colour as #rrggbb, or #rrggbbaa when translucent.
func (c Color) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
