package text

import (
	"fmt"
	"strconv"
	"strings"

	"go.minekube.com/common/minecraft/color"
)

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// RGB returns a pointer to the given color, for use as an optional Style color.
func RGB(r, g, b uint8) *Color { return &Color{R: r, G: g, B: b} }

// Hex returns the upper-case "#RRGGBB" form of the color.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string { return c.Hex() }

// ParseHex parses "#RRGGBB" (the leading '#' is optional).
// It reports false for anything that is not exactly six hex digits.
func ParseHex(s string) (Color, bool) {
	s = strings.TrimPrefix(s, "#")
	if !IsHex6(s) {
		return Color{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

// IsHex6 reports whether s consists of exactly six hex digits.
func IsHex6(s string) bool {
	if len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return false
		}
	}
	return true
}

func isHexDigit(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

// Named is an entry of the 16 color legacy palette.
type Named struct {
	Code  rune   // legacy code character, e.g. 'c'
	Name  string // canonical name, e.g. "red"
	Color Color
}

// legacyNames are the color names of the legacy codes 0-9 and a-f.
var legacyNames = [16]string{
	"black", "dark_blue", "dark_green", "dark_aqua",
	"dark_red", "dark_purple", "gold", "gray",
	"dark_gray", "blue", "green", "aqua",
	"red", "light_purple", "yellow", "white",
}

// Palette is the standard Minecraft legacy color palette indexed by code.
var Palette = func() (p [16]Named) {
	for i, name := range legacyNames {
		code := '0' + rune(i)
		if i >= 10 {
			code = 'a' + rune(i-10)
		}
		p[i] = Named{Code: code, Name: name, Color: minecraftColor(name)}
	}
	return p
}()

// minecraftColor returns the RGB value of a Minecraft named color.
func minecraftColor(name string) Color {
	named, ok := color.Names[name]
	if !ok {
		panic("text: unknown minecraft color " + name)
	}
	rgb, _ := color.Make(named)
	c, ok := ParseHex(rgb.Hex())
	if !ok {
		panic("text: invalid minecraft color " + name)
	}
	return c
}

// Gray is the palette color used for dividers.
var Gray = Palette[7].Color

var namedByName = func() map[string]Named {
	m := make(map[string]Named, len(Palette)+2)
	for _, n := range Palette {
		m[n.Name] = n
	}
	// common aliases
	m["grey"] = Palette[7]
	m["dark_grey"] = Palette[8]
	return m
}()

// LegacyColor returns the palette entry for a legacy code character (case-insensitive).
func LegacyColor(code rune) (Named, bool) {
	switch {
	case '0' <= code && code <= '9':
		return Palette[code-'0'], true
	case 'a' <= code && code <= 'f':
		return Palette[code-'a'+10], true
	case 'A' <= code && code <= 'F':
		return Palette[code-'A'+10], true
	}
	return Named{}, false
}

// NamedColor looks up a palette entry by name (case-insensitive).
func NamedColor(name string) (Named, bool) {
	n, ok := namedByName[strings.ToLower(name)]
	return n, ok
}

// ColorNames returns the palette names, used for suggestions.
func ColorNames() []string {
	names := make([]string, 0, len(Palette))
	for _, n := range Palette {
		names = append(names, n.Name)
	}
	return names
}

// Named returns the palette entry of c, if c is exactly a palette color.
func (c Color) Named() (Named, bool) {
	for _, n := range Palette {
		if n.Color == c {
			return n, true
		}
	}
	return Named{}, false
}
