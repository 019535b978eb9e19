package text

import (
	"bytes"

	"go.minekube.com/common/minecraft/color"
	"go.minekube.com/common/minecraft/component"
	"go.minekube.com/common/minecraft/component/codec"
	"go.minekube.com/common/minecraft/component/codec/legacy"
)

// Component converts r to a Minecraft text component.
func (r *Run) Component() *component.Text {
	if r == nil {
		return &component.Text{}
	}
	t := &component.Text{
		Content: r.Text,
		S:       r.Style.Component(),
	}
	for _, c := range r.Children {
		t.Extra = append(t.Extra, c.Component())
	}
	return t
}

// Component converts s to a Minecraft component style.
// Palette colors map to named colors so that pre-1.16 clients keep them.
func (s Style) Component() component.Style {
	var cs component.Style
	if s.Color != nil {
		cs.Color = s.Color.Component()
	}
	if s.Bold {
		cs.Bold = component.True
	}
	if s.Italic {
		cs.Italic = component.True
	}
	if s.Underlined {
		cs.Underlined = component.True
	}
	if s.Strikethrough {
		cs.Strikethrough = component.True
	}
	if s.Obfuscated {
		cs.Obfuscated = component.True
	}
	if s.Click != nil {
		switch s.Click.Action {
		case OpenURL:
			cs.ClickEvent = component.OpenUrl(s.Click.Value)
		case RunCommand:
			cs.ClickEvent = component.RunCommand(s.Click.Value)
		case SuggestCommand:
			cs.ClickEvent = component.SuggestCommand(s.Click.Value)
		}
	}
	if s.Hover != nil && s.Hover.Text != nil {
		cs.HoverEvent = component.ShowText(s.Hover.Text.Component())
	}
	return cs
}

// Component converts c to a Minecraft color.
func (c Color) Component() color.Color {
	if named, ok := c.Named(); ok {
		if n, ok := color.Names[named.Name]; ok {
			return n
		}
	}
	rgb, err := color.Hex(c.Hex())
	if err != nil {
		// unreachable, Hex always yields a valid hex string
		return color.White
	}
	return rgb
}

// JsonCodec is the chat component json codec used for modern (1.16+) clients.
var JsonCodec codec.Codec = &codec.Json{
	NoDownsampleColor: true,
	NoLegacyHover:     true,
}

// MarshalJSON encodes r as a chat component json document.
func MarshalJSON(r *Run) ([]byte, error) {
	buf := new(bytes.Buffer)
	err := JsonCodec.Marshal(buf, r.Component())
	return buf.Bytes(), err
}

// Legacy encodes r as a legacy section-code string.
// Click and hover events are lost.
func Legacy(r *Run) (string, error) {
	buf := new(bytes.Buffer)
	err := (&legacy.Legacy{}).Marshal(buf, r.Component())
	return buf.String(), err
}
