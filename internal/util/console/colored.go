// Package console renders styled text for terminals.
package console

import (
	"strings"

	"github.com/gookit/color"

	"github.com/paradigmmc/paradigm/pkg/text"
)

// Ansi renders r with ANSI escape codes.
// With trueColor, colors are rendered as 24-bit RGB, otherwise palette
// colors map to the 16 terminal colors and other colors are dropped.
func Ansi(r *text.Run, trueColor bool) string {
	b := new(strings.Builder)
	for _, leaf := range r.Leaves() {
		b.WriteString(style(leaf.Style, trueColor)(leaf.Text))
	}
	return b.String()
}

func style(s text.Style, trueColor bool) func(string) string {
	var opts []color.Color
	for _, d := range text.Decorations {
		if s.Decoration(d) {
			opts = append(opts, convertDeco(d))
		}
	}

	if s.Color != nil {
		if trueColor {
			st := color.NewRGBStyle(color.RGB(s.Color.R, s.Color.G, s.Color.B))
			st.AddOpts(opts...)
			return func(str string) string { return st.Sprint(str) }
		}
		if named, ok := s.Color.Named(); ok {
			opts = append(opts, convert(named.Code))
		}
	}
	if len(opts) == 0 {
		return func(str string) string { return str }
	}
	st := color.New(opts...)
	return func(str string) string { return st.Sprint(str) }
}

func convertDeco(d text.Decoration) color.Color {
	switch d {
	case text.Obfuscated:
		return color.OpConcealed
	case text.Underlined:
		return color.OpUnderscore
	case text.Bold:
		return color.OpBold
	case text.Italic:
		return color.OpItalic
	case text.Strikethrough:
		return color.OpStrikethrough
	default:
		return color.Normal
	}
}

// convert maps a legacy color code to a terminal color.
func convert(r rune) color.Color {
	switch r {
	case 'a':
		return color.LightGreen
	case 'b':
		return color.LightCyan
	case 'c':
		return color.LightRed
	case 'd':
		return color.LightMagenta
	case 'e':
		return color.LightYellow
	case 'f':
		return color.LightWhite
	case '0':
		return color.Black
	case '1':
		return color.Blue
	case '2':
		return color.Green
	case '3':
		return color.Cyan
	case '4':
		return color.Red
	case '5':
		return color.Magenta
	case '6':
		return color.Yellow
	case '7':
		return color.White
	case '8':
		return color.Gray
	case '9':
		return color.LightBlue
	default:
		return color.OpReset
	}
}
