// Package legacy rewrites legacy '&' and '§' color/format codes into the
// canonical tag form understood by the parser, e.g. "&cHi" becomes
// "<color:#FF5555>Hi</color>".
package legacy

import (
	"strings"

	"github.com/paradigmmc/paradigm/pkg/text"
)

const (
	// SectionChar is the legacy format marker.
	SectionChar = '§'
	// AmpersandChar is the user friendly alias of SectionChar.
	AmpersandChar = '&'
)

// Canonical tag names.
const (
	ColorTag = "color"
	ResetTag = "reset"
)

// formatCodes maps legacy format codes to their decoration.
var formatCodes = map[rune]text.Decoration{
	'k': text.Obfuscated,
	'l': text.Bold,
	'm': text.Strikethrough,
	'n': text.Underlined,
	'o': text.Italic,
}

// FormatCode returns the decoration of a legacy format code (case-insensitive).
func FormatCode(code rune) (text.Decoration, bool) {
	d, ok := formatCodes[lower(code)]
	return d, ok
}

// IsResetCode reports whether code is the legacy reset code.
func IsResetCode(code rune) bool { return lower(code) == 'r' }

func lower(r rune) rune {
	if 'A' <= r && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// open tracks which canonical tags are currently open.
type open struct {
	color bool
	deco  [text.DecorationCount]bool
}

func (o *open) openColor(b *strings.Builder, c text.Color) {
	if o.color {
		b.WriteString("</" + ColorTag + ">")
	}
	b.WriteString("<" + ColorTag + ":" + c.Hex() + ">")
	o.color = true
}

func (o *open) openDecoration(b *strings.Builder, d text.Decoration) {
	if o.deco[d] {
		return
	}
	b.WriteString("<" + d.String() + ">")
	o.deco[d] = true
}

// closeAll closes every open tag in the fixed order
// obfuscated, strikethrough, underlined, italic, bold, color.
func (o *open) closeAll(b *strings.Builder) {
	for _, d := range text.Decorations {
		if o.deco[d] {
			b.WriteString("</" + d.String() + ">")
		}
	}
	if o.color {
		b.WriteString("</" + ColorTag + ">")
	}
	*o = open{}
}

// Normalize rewrites legacy codes in s into canonical tags.
//
// '&' is an alias of '§'. A marker followed by an unrecognized code is
// dropped together with the code, a marker at the end of s is kept.
// Malformed hex sequences ("§#12") are kept verbatim for the parser to
// render as text. The result is always balanced and already canonical
// text is returned unchanged.
func Normalize(s string) string {
	if !strings.ContainsAny(s, "&§") {
		return s
	}
	rs := []rune(s)
	b := new(strings.Builder)
	b.Grow(len(s) + 16)
	var o open
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if (r != SectionChar && r != AmpersandChar) || i+1 >= len(rs) {
			b.WriteRune(r)
			continue
		}
		code := rs[i+1]
		if c, n, ok := ParseHexSequence(rs[i:]); ok {
			o.openColor(b, c)
			i += n - 1
			continue
		}
		if code == '#' {
			b.WriteRune(r)
			continue
		}
		if named, ok := text.LegacyColor(code); ok {
			o.openColor(b, named.Color)
			i++
			continue
		}
		if d, ok := FormatCode(code); ok {
			o.openDecoration(b, d)
			i++
			continue
		}
		if IsResetCode(code) {
			o.closeAll(b)
			b.WriteString("<" + ResetTag + ">")
			i++
			continue
		}
		i++ // drop unknown code
	}
	o.closeAll(b)
	return b.String()
}

// ParseHexSequence parses a hex color at the start of rs, either "§#RRGGBB"
// or the BungeeCord form "§x§R§R§G§G§B§B" (with '§' or '&' markers).
// It returns the color and the number of runes consumed.
func ParseHexSequence(rs []rune) (text.Color, int, bool) {
	if len(rs) < 2 || !isMarker(rs[0]) {
		return text.Color{}, 0, false
	}
	switch rs[1] {
	case '#':
		if len(rs) < 8 {
			return text.Color{}, 0, false
		}
		c, ok := text.ParseHex(string(rs[2:8]))
		return c, 8, ok
	case 'x', 'X':
		const n = 14
		if len(rs) < n {
			return text.Color{}, 0, false
		}
		hex := make([]rune, 0, 6)
		for i := 2; i < n; i += 2 {
			if !isMarker(rs[i]) {
				return text.Color{}, 0, false
			}
			hex = append(hex, rs[i+1])
		}
		c, ok := text.ParseHex(string(hex))
		return c, n, ok
	}
	return text.Color{}, 0, false
}

func isMarker(r rune) bool { return r == SectionChar || r == AmpersandChar }
