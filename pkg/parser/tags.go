package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/paradigmmc/paradigm/pkg/legacy"
	"github.com/paradigmmc/paradigm/pkg/text"
)

// inlineTagPattern matches <name>, <name:arg> and </name> at the start of the input.
var inlineTagPattern = regexp.MustCompile(`^<(/?)(#?[A-Za-z0-9_]+)(?::([^<>\s]+))?>`)

// decorationAliases maps inline tag names to decorations.
var decorationAliases = map[string]text.Decoration{
	"bold":          text.Bold,
	"b":             text.Bold,
	"italic":        text.Italic,
	"i":             text.Italic,
	"em":            text.Italic,
	"underlined":    text.Underlined,
	"underline":     text.Underlined,
	"u":             text.Underlined,
	"strikethrough": text.Strikethrough,
	"st":            text.Strikethrough,
	"obfuscated":    text.Obfuscated,
	"obf":           text.Obfuscated,
	"magic":         text.Obfuscated,
}

var colorTagNames = map[string]bool{
	legacy.ColorTag: true,
	"colour":        true,
	"c":             true,
}

// InlineTagNames returns every inline tag name the parser understands,
// excluding color names and hex tags.
func InlineTagNames() []string {
	names := []string{legacy.ColorTag, "colour", "c", legacy.ResetTag}
	for name := range decorationAliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// inlineTag applies a style tag. It returns 0 for anything that is not a
// known tag so that it is kept as literal text.
func (s *scanner) inlineTag(in string) int {
	m := inlineTagPattern.FindStringSubmatch(in)
	if m == nil {
		return 0
	}
	closing, name, arg := m[1] == "/", strings.ToLower(m[2]), m[3]

	if closing {
		kind, ok := TagKind(name)
		if !ok || arg != "" {
			return 0
		}
		// stray closing tags are consumed
		s.close(kind)
		return len(m[0])
	}

	if name == legacy.ResetTag && arg == "" {
		s.reset()
		return len(m[0])
	}
	if d, ok := decorationAliases[name]; ok && arg == "" {
		s.push(openTag{kind: d.String(), deco: d})
		return len(m[0])
	}
	var colorSpec string
	switch {
	case colorTagNames[name]:
		colorSpec = arg
	case arg == "":
		colorSpec = name
	}
	if c, ok := ParseColor(colorSpec); ok {
		s.push(openTag{kind: kindColor, color: c})
		return len(m[0])
	}
	return 0
}

// IsColorTag reports whether name is a color tag taking the color as argument.
func IsColorTag(name string) bool { return colorTagNames[strings.ToLower(name)] }

// TagKind returns the open tag kind that a closing tag name closes.
func TagKind(name string) (string, bool) {
	name = strings.ToLower(name)
	if colorTagNames[name] {
		return kindColor, true
	}
	if d, ok := decorationAliases[name]; ok {
		return d.String(), true
	}
	if _, ok := ParseColor(name); ok {
		return kindColor, true
	}
	return "", false
}

// ParseColor parses "#RRGGBB" or a legacy color name.
func ParseColor(spec string) (text.Color, bool) {
	if strings.HasPrefix(spec, "#") {
		return text.ParseHex(spec)
	}
	if n, ok := text.NamedColor(spec); ok {
		return n.Color, true
	}
	return text.Color{}, false
}
