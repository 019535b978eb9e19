package text

// ClickAction is the action performed when a run is clicked.
type ClickAction string

// Supported click actions.
const (
	OpenURL        ClickAction = "open_url"
	RunCommand     ClickAction = "run_command"
	SuggestCommand ClickAction = "suggest_command"
)

// Click describes a click action of a run.
type Click struct {
	Action ClickAction
	Value  string
}

// Hover is the text shown when hovering a run.
type Hover struct {
	Text *Run
}

// HoverText returns a Hover showing a single unstyled line.
func HoverText(s string) *Hover {
	return &Hover{Text: &Run{Text: s}}
}

// Style is the set of attributes applied to a run.
//
// Style is a value type. The With* methods return modified copies and
// never change the receiver. Color, Click and Hover are nil when unset
// and must not be mutated after being placed in a Style.
type Style struct {
	Color         *Color
	Bold          bool
	Italic        bool
	Underlined    bool
	Strikethrough bool
	Obfuscated    bool
	Click         *Click
	Hover         *Hover
}

// Decoration is a boolean format flag of a Style.
type Decoration uint8

// Decorations in the order they are closed by a reset.
const (
	Obfuscated Decoration = iota
	Strikethrough
	Underlined
	Italic
	Bold

	// DecorationCount is the number of decorations.
	DecorationCount = 5
)

// Decorations lists every Decoration in reset close order.
var Decorations = []Decoration{Obfuscated, Strikethrough, Underlined, Italic, Bold}

func (d Decoration) String() string {
	switch d {
	case Obfuscated:
		return "obfuscated"
	case Strikethrough:
		return "strikethrough"
	case Underlined:
		return "underlined"
	case Italic:
		return "italic"
	case Bold:
		return "bold"
	}
	return "unknown"
}

// Decoration reports whether d is set.
func (s Style) Decoration(d Decoration) bool {
	switch d {
	case Obfuscated:
		return s.Obfuscated
	case Strikethrough:
		return s.Strikethrough
	case Underlined:
		return s.Underlined
	case Italic:
		return s.Italic
	case Bold:
		return s.Bold
	}
	return false
}

// WithDecoration returns a copy of s with d set to v.
func (s Style) WithDecoration(d Decoration, v bool) Style {
	switch d {
	case Obfuscated:
		s.Obfuscated = v
	case Strikethrough:
		s.Strikethrough = v
	case Underlined:
		s.Underlined = v
	case Italic:
		s.Italic = v
	case Bold:
		s.Bold = v
	}
	return s
}

// WithColor returns a copy of s using color c. Decorations are kept.
func (s Style) WithColor(c Color) Style {
	s.Color = &c
	return s
}

// WithClick returns a copy of s with the click action set.
func (s Style) WithClick(action ClickAction, value string) Style {
	s.Click = &Click{Action: action, Value: value}
	return s
}

// WithHover returns a copy of s with the hover set.
func (s Style) WithHover(h *Hover) Style {
	s.Hover = h
	return s
}

// Equal reports whether both styles are the same.
// Hover texts are compared structurally.
func (s Style) Equal(o Style) bool {
	if s.Bold != o.Bold || s.Italic != o.Italic || s.Underlined != o.Underlined ||
		s.Strikethrough != o.Strikethrough || s.Obfuscated != o.Obfuscated {
		return false
	}
	if (s.Color == nil) != (o.Color == nil) || (s.Color != nil && *s.Color != *o.Color) {
		return false
	}
	if (s.Click == nil) != (o.Click == nil) || (s.Click != nil && *s.Click != *o.Click) {
		return false
	}
	if (s.Hover == nil) != (o.Hover == nil) {
		return false
	}
	if s.Hover != nil && s.Hover != o.Hover {
		return s.Hover.Text.Equal(o.Hover.Text)
	}
	return true
}

// IsZero reports whether no attribute is set.
func (s Style) IsZero() bool {
	return s.Equal(Style{})
}

func (s Style) clone() Style {
	if s.Color != nil {
		c := *s.Color
		s.Color = &c
	}
	if s.Click != nil {
		c := *s.Click
		s.Click = &c
	}
	if s.Hover != nil {
		s.Hover = &Hover{Text: s.Hover.Text.Clone()}
	}
	return s
}
