package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_Clean(t *testing.T) {
	for _, s := range []string{
		"",
		"plain text",
		"&cHello &lWorld&r!",
		"§#FF5555hex §x§F§F§5§5§5§5bungee",
		"<red>a</red> <color:#00FF00>b</color> <#123456>c</#123456> <b><i>d</i></b><reset>",
		"[link=example.com]Click[/link] [hover=<gold>Tip]x[/hover] [divider]",
		"[center][command=/spawn]Spawn[/command][/center] [title=Hi][subtitle=there]",
		"{player_prefix}[Admin] {player}: {player_health}/{max_player_health}",
		"see https://example.com",
	} {
		t.Run(s, func(t *testing.T) {
			assert.Empty(t, Check(s))
			assert.NoError(t, Strict(s))
		})
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		in         string
		kind       Kind
		column     int
		text       string
		suggestion string
	}{
		{"Hi {player_nme}", UnknownPlaceholder, 4, "{player_nme}", "{player_name}"},
		{"{foo}", UnknownPlaceholder, 1, "{foo}", ""},
		{"a <bodl>b", UnknownInlineTag, 3, "<bodl>", "<bold>"},
		{"<color:gren>x", UnknownInlineTag, 1, "<color:gren>", "<color:green>"},
		{"<#12>x", MalformedHex, 1, "<#12>", ""},
		{"<color:#GG0000>x", MalformedHex, 1, "<color:#GG0000>", ""},
		{"x</bold>", StrayClose, 2, "</bold>", ""},
		{"[link=example.com]never closed", Unterminated, 1, "[link=example.com]", "[/link]"},
		{"[hovr=x]y[/hovr]", UnknownBracketTag, 1, "[hovr=x]", "[hover=x]"},
		{"[dividr]", UnknownBracketTag, 1, "[dividr]", "[divider]"},
		{"ab[/center]", StrayClose, 3, "[/center]", ""},
		{"ä§zb", UnknownCode, 2, "§z", ""},
		{"§#12", MalformedHex, 1, "§#12", ""},
		{"Tom & Jerry", UnknownCode, 5, "& ", ""},
		{"a&zb", UnknownCode, 2, "&z", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			issues := Check(tt.in)
			require.NotEmpty(t, issues)
			is := issues[0]
			assert.Equal(t, tt.kind, is.Kind)
			assert.Equal(t, tt.column, is.Column)
			assert.Equal(t, tt.text, is.Text)
			assert.Equal(t, tt.suggestion, is.Suggestion)
		})
	}
}

func TestCheck_Ordered(t *testing.T) {
	issues := Check("§z <bodl> {foo}")
	require.Len(t, issues, 3)
	assert.Equal(t, UnknownCode, issues[0].Kind)
	assert.Equal(t, UnknownInlineTag, issues[1].Kind)
	assert.Equal(t, UnknownPlaceholder, issues[2].Kind)
}

func TestCheck_UnknownCodeConsumesCode(t *testing.T) {
	issues := Check("&&cHi")
	require.Len(t, issues, 1)
	assert.Equal(t, "&&", issues[0].Text)
}

func TestStrict(t *testing.T) {
	err := Strict("<bodl>x {foo}")
	require.Error(t, err)
	var lintErr *Error
	require.ErrorAs(t, err, &lintErr)
	assert.Len(t, lintErr.Issues, 2)
	assert.Equal(t, "template has 2 issues: col 1: unknown tag <bodl>, did you mean <bold>?; col 9: unknown placeholder {foo}", err.Error())
}
