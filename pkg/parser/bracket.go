package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/paradigmmc/paradigm/pkg/text"
)

// Bracket tag names.
const (
	LinkTag     = "link"
	CommandTag  = "command"
	SuggestTag  = "suggest"
	HoverTag    = "hover"
	CenterTag   = "center"
	DividerTag  = "divider"
	TitleTag    = "title"
	SubtitleTag = "subtitle"
)

// BracketTagNames lists every bracket tag name.
var BracketTagNames = []string{
	LinkTag, CommandTag, SuggestTag, HoverTag, CenterTag, DividerTag, TitleTag, SubtitleTag,
}

var (
	// spanPattern matches the header of a bracket tag with a value and a body.
	spanPattern = regexp.MustCompile(`^\[(link|command|suggest|hover)=([^\]]*)\]`)
	// titlePattern matches a title tag, which has no body.
	titlePattern = regexp.MustCompile(`^\[(title|subtitle)=([^\]]*)\]`)

	urlChars   = `[^\s\[\]<>§]+`
	urlPattern = regexp.MustCompile(`https?://` + urlChars)
	urlAtStart = regexp.MustCompile(`^https?://` + urlChars)

	schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*://`)
)

func openTagText(name string) string  { return "[" + name + "]" }
func closeTagText(name string) string { return "[/" + name + "]" }

// FindClose returns the index of the closing tag [/name] that matches an
// already consumed opening tag, honoring nested tags of the same name.
// start is the index right after the opening tag. It returns -1 if the
// tag is never closed.
func FindClose(in string, start int, name string) int {
	openPrefix := "[" + name // "[hover=" and "[center]" both start with it
	closer := closeTagText(name)
	depth := 1
	for i := start; i < len(in); {
		j := strings.IndexByte(in[i:], '[')
		if j < 0 {
			return -1
		}
		i += j
		switch {
		case strings.HasPrefix(in[i:], closer):
			depth--
			if depth == 0 {
				return i
			}
			i += len(closer)
		case strings.HasPrefix(in[i:], openPrefix) && len(in) > i+len(openPrefix) &&
			(in[i+len(openPrefix)] == '=' || in[i+len(openPrefix)] == ']'):
			depth++
			i += len(openPrefix)
		default:
			i++
		}
	}
	return -1
}

// bracketTag handles a special bracket tag. It returns 0 if `in` does not
// start with a complete tag so that '[' is kept as literal text.
func (s *scanner) bracketTag(in string) int {
	if s.depth >= maxDepth {
		return 0
	}
	switch {
	case strings.HasPrefix(in, openTagText(DividerTag)):
		s.special(text.NewRun(s.p.opts.Divider, text.Style{}.WithColor(text.Gray)))
		return len(openTagText(DividerTag))
	case strings.HasPrefix(in, openTagText(CenterTag)):
		return s.center(in)
	}

	if m := spanPattern.FindStringSubmatch(in); m != nil {
		name, value := m[1], m[2]
		end := FindClose(in, len(m[0]), name)
		if end < 0 {
			return 0
		}
		style := s.cur
		switch name {
		case LinkTag:
			style = style.WithClick(text.OpenURL, NormalizeURL(value))
		case CommandTag:
			style = style.WithClick(text.RunCommand, NormalizeCommand(value))
		case SuggestTag:
			style = style.WithClick(text.SuggestCommand, value)
		case HoverTag:
			hover := s.p.root(value, text.Style{}, false, s.depth+1, s.titles)
			style = style.WithHover(&text.Hover{Text: hover})
		}
		s.special(s.p.runs(in[len(m[0]):end], style, false, s.depth+1, s.titles)...)
		return end + len(closeTagText(name))
	}

	if m := titlePattern.FindStringSubmatch(in); m != nil {
		part := TitlePart
		if m[1] == SubtitleTag {
			part = SubtitlePart
		}
		*s.titles = append(*s.titles, Title{
			Part: part,
			Text: s.p.root(m[2], text.Style{}, false, s.depth+1, s.titles),
		})
		return len(m[0])
	}
	return 0
}

// center pads the body of a [center] tag with spaces to center it
// within the line width.
func (s *scanner) center(in string) int {
	start := len(openTagText(CenterTag))
	end := FindClose(in, start, CenterTag)
	if end < 0 {
		return 0
	}
	body := s.p.runs(in[start:end], s.cur, false, s.depth+1, s.titles)
	width := 0
	for _, r := range body {
		width += utf8.RuneCountInString(r.PlainText())
	}
	if pad := (s.p.opts.LineWidth - width) / 2; pad > 0 {
		s.special(text.NewRun(strings.Repeat(" ", pad), text.Style{}))
	}
	s.special(body...)
	return end + len(closeTagText(CenterTag))
}

// url makes a bare URL clickable.
func (s *scanner) url(in string) int {
	u := strings.TrimRight(urlAtStart.FindString(in), ".,;:!?")
	if !urlPattern.MatchString(u) {
		return 0
	}
	s.special(text.NewRun(u, s.cur.WithClick(text.OpenURL, NormalizeURL(u))))
	return len(u)
}

// NormalizeURL adds the http:// scheme to urls without a scheme.
func NormalizeURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" || schemePattern.MatchString(u) {
		return u
	}
	return "http://" + u
}

// NormalizeCommand adds the leading slash to a command.
func NormalizeCommand(cmd string) string {
	cmd = strings.TrimSpace(cmd)
	if strings.HasPrefix(cmd, "/") {
		return cmd
	}
	return "/" + cmd
}
