package parser

import (
	"github.com/paradigmmc/paradigm/pkg/placeholder"
	"github.com/paradigmmc/paradigm/pkg/text"
)

// Part is a part of a title display.
type Part byte

const (
	TitlePart    Part = iota + 1 // [title=]
	SubtitlePart                 // [subtitle=]
)

func (p Part) String() string {
	switch p {
	case TitlePart:
		return "title"
	case SubtitlePart:
		return "subtitle"
	}
	return "unknown"
}

// Title is a title display request found in markup.
type Title struct {
	Part Part
	Text *text.Run
}

// TitleSink displays titles to players.
type TitleSink interface {
	// ShowTitle displays t to player. player is nil when formatting without a player.
	ShowTitle(player *placeholder.Player, t Title)
}

// TitleSinkFunc implements TitleSink.
type TitleSinkFunc func(player *placeholder.Player, t Title)

// ShowTitle implements TitleSink.
func (f TitleSinkFunc) ShowTitle(player *placeholder.Player, t Title) { f(player, t) }
