package variant

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an 8-bit RGBA colour. It mirrors rl.Color without pulling raylib
// into packages that must build without cgo.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

func NewColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// ParseHex accepts "#rrggbb" or "rrggbb".
func ParseHex(raw string) (Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid hex colour: %q", raw)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex colour: %q", raw)
	}
	return NewColor(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

func mustHex(raw string) Color {
	c, err := ParseHex(raw)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Params is the geometry and colour bundle for one plant species group.
type Params struct {
	StemColor Color   `json:"stem_color"`
	LeafColor Color   `json:"leaf_color"`
	Height    float64 `json:"height"`
	LeafSize  float64 `json:"leaf_size"`
	LeafCount int     `json:"leaf_count"`
	Spread    float64 `json:"spread"`
}

func (p Params) Validate() error {
	if !(p.Height > 0) {
		return fmt.Errorf("height must be > 0, got %v", p.Height)
	}
	if !(p.LeafSize > 0) {
		return fmt.Errorf("leaf size must be > 0, got %v", p.LeafSize)
	}
	if p.LeafCount < 1 {
		return fmt.Errorf("leaf count must be >= 1, got %d", p.LeafCount)
	}
	if !(p.Spread >= 0) {
		return fmt.Errorf("spread must be >= 0, got %v", p.Spread)
	}
	return nil
}
