package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/paradigmmc/paradigm/pkg/legacy"
	"github.com/paradigmmc/paradigm/pkg/text"
)

// kindColor is the open tag kind of colors. Decorations use their name.
const kindColor = legacy.ColorTag

// openTag is a style tag in effect.
type openTag struct {
	kind  string
	color text.Color
	deco  text.Decoration
}

func (t openTag) apply(s text.Style) text.Style {
	if t.kind == kindColor {
		return s.WithColor(t.color)
	}
	return s.WithDecoration(t.deco, true)
}

// scanner scans one scope of markup. Bracket tag bodies are scanned by
// child scanners whose base style carries the enclosing style.
type scanner struct {
	p        *Parser
	base     text.Style // style at scope entry, restored by resets
	cur      text.Style // base with all open tags applied
	opens    []openTag
	autoLink bool
	depth    int
	titles   *[]Title

	out   []*text.Run
	merge bool // last run of out is a literal that may be extended
}

func (s *scanner) scan(in string) {
	for len(in) != 0 {
		i := s.next(in)
		if i < 0 {
			s.literal(in)
			return
		}
		s.literal(in[:i])
		in = in[i:]

		n := s.event(in)
		if n == 0 {
			_, n = utf8.DecodeRuneInString(in)
			s.literal(in[:n])
		}
		in = in[n:]
	}
}

// next returns the index of the next event in `in` or -1.
func (s *scanner) next(in string) int {
	i := strings.IndexAny(in, markerChars)
	if s.autoLink {
		limit := in
		if i >= 0 {
			limit = in[:i]
		}
		if loc := urlPattern.FindStringIndex(limit); loc != nil {
			return loc[0]
		}
	}
	return i
}

const markerChars = string(legacy.SectionChar) + "<["

// event handles the event at the start of `in` and returns the number of
// bytes consumed, or 0 if `in` starts with literal text.
func (s *scanner) event(in string) int {
	switch {
	case strings.HasPrefix(in, string(legacy.SectionChar)):
		return s.legacyCode(in)
	case in[0] == '<':
		return s.inlineTag(in)
	case in[0] == '[':
		return s.bracketTag(in)
	default:
		return s.url(in)
	}
}

func (s *scanner) literal(str string) {
	if str == "" {
		return
	}
	if s.merge && len(s.out) != 0 {
		if last := s.out[len(s.out)-1]; last.Style.Equal(s.cur) {
			last.Text += str
			return
		}
	}
	s.out = append(s.out, text.NewRun(str, s.cur))
	s.merge = true
}

// special appends runs produced by a tag. They are never merged with literals.
func (s *scanner) special(runs ...*text.Run) {
	s.out = append(s.out, runs...)
	s.merge = false
}

func (s *scanner) push(t openTag) {
	s.opens = append(s.opens, t)
	s.cur = t.apply(s.cur)
}

func (s *scanner) isOpen(kind string) bool {
	for _, t := range s.opens {
		if t.kind == kind {
			return true
		}
	}
	return false
}

// close removes the most recently opened tag of the kind.
// It reports false if no such tag is open.
func (s *scanner) close(kind string) bool {
	for i := len(s.opens) - 1; i >= 0; i-- {
		if s.opens[i].kind != kind {
			continue
		}
		s.opens = append(s.opens[:i:i], s.opens[i+1:]...)
		s.cur = s.base
		for _, t := range s.opens {
			s.cur = t.apply(s.cur)
		}
		return true
	}
	return false
}

func (s *scanner) reset() {
	s.opens = nil
	s.cur = s.base
}

// legacyCode applies a section code. Unknown codes are dropped and
// malformed hex colors are kept as text.
func (s *scanner) legacyCode(in string) int {
	const maxSequence = 14 // §x§R§R§G§G§B§B
	head := in
	if len(head) > maxSequence*utf8.UTFMax {
		head = head[:maxSequence*utf8.UTFMax]
	}
	rs := []rune(head)
	if c, n, ok := legacy.ParseHexSequence(rs); ok {
		s.legacyColor(c)
		return len(string(rs[:n]))
	}
	if len(rs) < 2 || rs[1] == '#' {
		return 0
	}
	code := rs[1]
	// measured on the input, invalid bytes decode to a wider rune
	_, marker := utf8.DecodeRuneInString(in)
	_, n := utf8.DecodeRuneInString(in[marker:])
	size := marker + n
	if named, ok := text.LegacyColor(code); ok {
		s.legacyColor(named.Color)
		return size
	}
	if d, ok := legacy.FormatCode(code); ok {
		if !s.isOpen(d.String()) {
			s.push(openTag{kind: d.String(), deco: d})
		}
		return size
	}
	if legacy.IsResetCode(code) {
		s.reset()
	}
	return size
}

// legacyColor switches the color the way legacy codes do,
// replacing the last open color.
func (s *scanner) legacyColor(c text.Color) {
	s.close(kindColor)
	s.push(openTag{kind: kindColor, color: c})
}
