// Package parser builds styled text trees from canonical tag markup.
//
// The parser understands inline style tags (<bold>, <color:#FF5555>, ...),
// legacy section codes (§c, §l, §#RRGGBB, ...), the bracket tags
// [link=], [command=], [suggest=], [hover=], [center], [divider],
// [title=] and [subtitle=], and bare http(s) URLs.
//
// Parsing never fails. Markup that cannot be understood is kept as literal text.
package parser

import (
	"strings"

	"github.com/paradigmmc/paradigm/pkg/placeholder"
	"github.com/paradigmmc/paradigm/pkg/text"
)

const (
	// DefaultLineWidth is the chat line width in characters used by [center].
	DefaultLineWidth = 53
	// maxDepth bounds nesting of bracket tags.
	maxDepth = 16
)

// DefaultDivider is the text emitted for [divider].
var DefaultDivider = strings.Repeat("-", DefaultLineWidth)

// Options are Parser options.
type Options struct {
	// LineWidth is the width [center] centers within.
	// Defaults to DefaultLineWidth.
	LineWidth int
	// Divider is the text emitted for [divider].
	// Defaults to DefaultDivider.
	Divider string
	// AutoLink makes bare http(s) URLs clickable.
	AutoLink bool
	// Titles receives [title=] and [subtitle=] requests. May be nil.
	Titles TitleSink
}

// DefaultOptions returns the default Options.
func DefaultOptions() Options {
	return Options{
		LineWidth: DefaultLineWidth,
		Divider:   DefaultDivider,
		AutoLink:  true,
	}
}

// Parser converts markup into text.Run trees.
// It is safe for concurrent use.
type Parser struct {
	opts Options
}

// New returns a new Parser.
func New(opts Options) *Parser {
	if opts.LineWidth <= 0 {
		opts.LineWidth = DefaultLineWidth
	}
	if opts.Divider == "" {
		opts.Divider = DefaultDivider
	}
	return &Parser{opts: opts}
}

// Options returns the options of the parser.
func (p *Parser) Options() Options { return p.opts }

// Document is the result of parsing markup.
type Document struct {
	// Root holds the parsed runs as children.
	Root *text.Run
	// Titles are the [title=] and [subtitle=] requests in document order.
	Titles []Title
}

// Document parses s without side effects.
func (p *Parser) Document(s string) *Document {
	doc := new(Document)
	doc.Root = p.root(s, text.Style{}, p.opts.AutoLink, 0, &doc.Titles)
	return doc
}

// Parse parses s and forwards title requests to the configured TitleSink
// for the given player.
func (p *Parser) Parse(s string, player *placeholder.Player) *text.Run {
	doc := p.Document(s)
	p.ShowTitles(player, doc.Titles)
	return doc.Root
}

// ShowTitles forwards title requests to the configured TitleSink.
func (p *Parser) ShowTitles(player *placeholder.Player, titles []Title) {
	if p.opts.Titles == nil {
		return
	}
	for _, t := range titles {
		p.opts.Titles.ShowTitle(player, t)
	}
}

func (p *Parser) root(s string, base text.Style, autoLink bool, depth int, titles *[]Title) *text.Run {
	return &text.Run{Children: p.runs(s, base, autoLink, depth, titles)}
}

func (p *Parser) runs(s string, base text.Style, autoLink bool, depth int, titles *[]Title) []*text.Run {
	sc := &scanner{
		p:        p,
		base:     base,
		cur:      base,
		autoLink: autoLink,
		depth:    depth,
		titles:   titles,
	}
	sc.scan(s)
	return sc.out
}
