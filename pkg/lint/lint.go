// Package lint reports markup problems that formatting silently tolerates.
//
// Formatting never fails: unknown tags stay literal text, unknown codes
// are dropped and unterminated tags are ignored. Check finds those spots
// so that template authors can fix them.
package lint

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/paradigmmc/paradigm/pkg/internal/suggest"
	"github.com/paradigmmc/paradigm/pkg/legacy"
	"github.com/paradigmmc/paradigm/pkg/parser"
	"github.com/paradigmmc/paradigm/pkg/placeholder"
	"github.com/paradigmmc/paradigm/pkg/text"
	"github.com/paradigmmc/paradigm/pkg/util/sets"
)

// Kind is the kind of an Issue.
type Kind string

const (
	UnknownPlaceholder Kind = "unknown placeholder"
	UnknownInlineTag   Kind = "unknown tag"
	UnknownBracketTag  Kind = "unknown bracket tag"
	UnknownCode        Kind = "unknown code"
	MalformedHex       Kind = "malformed hex color"
	Unterminated       Kind = "unterminated tag"
	StrayClose         Kind = "closing tag without opening tag"
)

// Issue is a problem found in a template.
type Issue struct {
	// Column is the 1-based rune position of the problem.
	Column int
	Kind   Kind
	// Text is the offending markup.
	Text string
	// Suggestion is a likely intended replacement, if any.
	Suggestion string
}

func (i Issue) String() string {
	s := fmt.Sprintf("col %d: %s %s", i.Column, i.Kind, i.Text)
	if i.Suggestion != "" {
		s += fmt.Sprintf(", did you mean %s?", i.Suggestion)
	}
	return s
}

// Error is returned by Strict for templates with issues.
type Error struct {
	Template string
	Issues   []Issue
}

func (e *Error) Error() string {
	if len(e.Issues) == 1 {
		return "template has 1 issue: " + e.Issues[0].String()
	}
	lines := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		lines[i] = is.String()
	}
	return fmt.Sprintf("template has %d issues: %s", len(e.Issues), strings.Join(lines, "; "))
}

// Strict returns an *Error if s has issues.
func Strict(s string) error {
	if issues := Check(s); len(issues) != 0 {
		return &Error{Template: s, Issues: issues}
	}
	return nil
}

var (
	inlinePattern  = regexp.MustCompile(`<(/?)(#?[A-Za-z0-9_]+)(?::([^<>\s]+))?>`)
	bracketPattern = regexp.MustCompile(`\[(/?)([A-Za-z_]+)(?:=([^\]]*))?\]`)
)

const (
	// hintScore is the similarity a suggestion needs.
	hintScore = 0.5
	// typoScore is the similarity plain bracketed text like [Admin]
	// needs to a bracket tag name to be reported.
	typoScore = 0.6
)

// Check returns the issues of s ordered by position.
func Check(s string) []Issue {
	c := &checker{s: s}
	c.placeholders()
	c.inlineTags()
	c.bracketTags()
	c.sectionCodes()
	sort.SliceStable(c.issues, func(i, j int) bool {
		return c.issues[i].Column < c.issues[j].Column
	})
	return c.issues
}

type checker struct {
	s      string
	issues []Issue
}

func (c *checker) add(offset int, kind Kind, text, suggestion string) {
	c.issues = append(c.issues, Issue{
		Column:     utf8.RuneCountInString(c.s[:offset]) + 1,
		Kind:       kind,
		Text:       text,
		Suggestion: suggestion,
	})
}

func (c *checker) placeholders() {
	for _, m := range placeholder.Pattern.FindAllStringSubmatchIndex(c.s, -1) {
		name := c.s[m[2]:m[3]]
		if placeholder.IsToken(name) {
			continue
		}
		var hint string
		if best, ok := suggest.Closest(name, placeholder.Tokens, hintScore); ok {
			hint = "{" + best + "}"
		}
		c.add(m[0], UnknownPlaceholder, c.s[m[0]:m[1]], hint)
	}
}

func inlineCandidates() []string {
	return append(parser.InlineTagNames(), text.ColorNames()...)
}

func (c *checker) inlineTags() {
	open := map[string]int{}
	for _, m := range inlinePattern.FindAllStringSubmatchIndex(c.s, -1) {
		tag := c.s[m[0]:m[1]]
		closing := m[3] > m[2]
		name := strings.ToLower(c.s[m[4]:m[5]])
		var arg string
		if m[6] >= 0 {
			arg = c.s[m[6]:m[7]]
		}

		if closing {
			kind, ok := parser.TagKind(name)
			switch {
			case !ok:
				c.unknownInline(m[0], tag, name, "</%s>")
			case open[kind] == 0:
				c.add(m[0], StrayClose, tag, "")
			default:
				open[kind]--
			}
			continue
		}

		switch {
		case name == legacy.ResetTag && arg == "":
			clear(open)
		case parser.IsColorTag(name):
			c.colorArg(m[0], tag, name, arg, open)
		case arg != "":
			c.unknownInline(m[0], tag, name, "<%s>")
		default:
			if kind, ok := parser.TagKind(name); ok && kind != legacy.ColorTag {
				open[kind]++
			} else if _, ok := parser.ParseColor(name); ok {
				open[legacy.ColorTag]++
			} else if strings.HasPrefix(name, "#") {
				c.add(m[0], MalformedHex, tag, "")
			} else {
				c.unknownInline(m[0], tag, name, "<%s>")
			}
		}
	}
}

func (c *checker) colorArg(offset int, tag, name, arg string, open map[string]int) {
	if _, ok := parser.ParseColor(arg); ok {
		open[legacy.ColorTag]++
		return
	}
	if arg == "" || strings.HasPrefix(arg, "#") {
		c.add(offset, MalformedHex, tag, "")
		return
	}
	var hint string
	if best, ok := suggest.Closest(strings.ToLower(arg), text.ColorNames(), hintScore); ok {
		hint = fmt.Sprintf("<%s:%s>", name, best)
	}
	c.add(offset, UnknownInlineTag, tag, hint)
}

func (c *checker) unknownInline(offset int, tag, name, format string) {
	var hint string
	if best, ok := suggest.Closest(name, inlineCandidates(), hintScore); ok {
		hint = fmt.Sprintf(format, best)
	}
	c.add(offset, UnknownInlineTag, tag, hint)
}

var (
	spanTags = sets.New(
		parser.LinkTag, parser.CommandTag, parser.SuggestTag,
		parser.HoverTag, parser.CenterTag,
	)
	bracketTags = sets.New(parser.BracketTagNames...)
)

func (c *checker) bracketTags() {
	open := map[string]int{}
	for _, m := range bracketPattern.FindAllStringSubmatchIndex(c.s, -1) {
		tag := c.s[m[0]:m[1]]
		closing := m[3] > m[2]
		name := c.s[m[4]:m[5]]

		if !bracketTags.Has(name) {
			lower := strings.ToLower(name)
			var hint string
			if best, ok := suggest.Closest(lower, parser.BracketTagNames, hintScore); ok {
				hint = strings.Replace(tag, name, best, 1)
			}
			_, typo := suggest.Closest(lower, parser.BracketTagNames, typoScore)
			if typo || closing || m[6] >= 0 {
				c.add(m[0], UnknownBracketTag, tag, hint)
			}
			continue
		}
		if !spanTags.Has(name) {
			continue
		}
		if closing {
			if open[name] == 0 {
				c.add(m[0], StrayClose, tag, "")
			} else {
				open[name]--
			}
			continue
		}
		if parser.FindClose(c.s, m[1], name) < 0 {
			c.add(m[0], Unterminated, tag, "[/"+name+"]")
			continue
		}
		open[name]++
	}
}

// markers are the legacy code markers.
const markers = string(legacy.SectionChar) + string(legacy.AmpersandChar)

func (c *checker) sectionCodes() {
	const maxSequence = 14 // §x§R§R§G§G§B§B
	for i := 0; i < len(c.s); {
		j := strings.IndexAny(c.s[i:], markers)
		if j < 0 {
			return
		}
		i += j
		rs := []rune(c.s[i:min(len(c.s), i+maxSequence*utf8.UTFMax)])
		if _, n, ok := legacy.ParseHexSequence(rs); ok {
			i += len(string(rs[:n]))
			continue
		}
		offset := i
		i += utf8.RuneLen(rs[0])
		if len(rs) < 2 {
			if rs[0] == legacy.SectionChar {
				c.add(offset, UnknownCode, string(rs), "")
			}
			continue
		}
		switch code := rs[1]; {
		case code == '#':
			c.add(offset, MalformedHex, string(rs[:min(len(rs), 8)]), "")
		case code == 'x' || code == 'X':
			c.add(offset, MalformedHex, string(rs[:2]), "")
		default:
			_, isColor := text.LegacyColor(code)
			_, isFormat := legacy.FormatCode(code)
			if !isColor && !isFormat && !legacy.IsResetCode(code) {
				// the code is dropped along with its marker
				_, n := utf8.DecodeRuneInString(c.s[i:])
				c.add(offset, UnknownCode, c.s[offset:i+n], "")
				i += n
			}
		}
	}
}
