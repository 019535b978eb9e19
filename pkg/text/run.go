// Package text defines the styled text tree produced by the formatting engine
// and its conversion to Minecraft chat components.
package text

import "strings"

// Run is a node of styled text.
// A run has its own (possibly empty) text followed by its children.
type Run struct {
	Text     string
	Style    Style
	Children []*Run
}

// NewRun returns a leaf run.
func NewRun(text string, style Style) *Run {
	return &Run{Text: text, Style: style}
}

// Append appends children and returns r.
func (r *Run) Append(children ...*Run) *Run {
	r.Children = append(r.Children, children...)
	return r
}

// PlainText returns the unstyled text of r and all descendants in order.
func (r *Run) PlainText() string {
	if r == nil {
		return ""
	}
	b := new(strings.Builder)
	r.writePlain(b)
	return b.String()
}

func (r *Run) writePlain(b *strings.Builder) {
	b.WriteString(r.Text)
	for _, c := range r.Children {
		c.writePlain(b)
	}
}

// Leaves returns every run with non-empty text in document order.
func (r *Run) Leaves() []*Run {
	var out []*Run
	r.Walk(func(n *Run) bool {
		if n.Text != "" {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Walk calls fn for r and its descendants depth-first.
// Children of a run are skipped when fn returns false.
func (r *Run) Walk(fn func(*Run) bool) {
	if r == nil || !fn(r) {
		return
	}
	for _, c := range r.Children {
		c.Walk(fn)
	}
}

// Clone returns a deep copy of r, including hover trees.
func (r *Run) Clone() *Run {
	if r == nil {
		return nil
	}
	c := &Run{Text: r.Text, Style: r.Style.clone()}
	if len(r.Children) != 0 {
		c.Children = make([]*Run, len(r.Children))
		for i, child := range r.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Equal reports whether r and o are structurally identical.
func (r *Run) Equal(o *Run) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.Text != o.Text || len(r.Children) != len(o.Children) || !r.Style.Equal(o.Style) {
		return false
	}
	for i := range r.Children {
		if !r.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}
