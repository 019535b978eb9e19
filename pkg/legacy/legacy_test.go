package legacy

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hello", "Hello"},
		{"color", "&cHi", "<color:#FF5555>Hi</color>"},
		{"section color", "§aHi", "<color:#55FF55>Hi</color>"},
		{"upper case code", "&CHi", "<color:#FF5555>Hi</color>"},
		{"example", "&cHello &lWorld&r!",
			"<color:#FF5555>Hello <bold>World</bold></color><reset>!"},
		{"color switch keeps format", "&l&cA&9B",
			"<bold><color:#FF5555>A</color><color:#5555FF>B</bold></color>"},
		{"no double open", "&l&lA", "<bold>A</bold>"},
		{"all formats closed in order", "&k&l&m&n&oX",
			"<obfuscated><bold><strikethrough><underlined><italic>X" +
				"</obfuscated></strikethrough></underlined></italic></bold>"},
		{"hex", "&#1a2B3cHex", "<color:#1A2B3C>Hex</color>"},
		{"bungee hex", "§x§f§f§0§0§0§0Red", "<color:#FF0000>Red</color>"},
		{"malformed hex kept", "§#12", "§#12"},
		{"malformed ampersand hex kept", "&#zzzzzzA", "&#zzzzzzA"},
		{"unknown section code dropped", "a§zb", "ab"},
		{"unknown ampersand code dropped", "Tom & Jerry &z", "Tom Jerry "},
		{"ampersand is a marker", "Q&A", "Q<color:#55FF55></color>"},
		{"trailing marker kept", "end&", "end&"},
		{"reset without open tags", "&rX", "<reset>X"},
		{"canonical untouched", "<color:#FF5555>Hi</color><reset>", "<color:#FF5555>Hi</color><reset>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"&cHello &lWorld&r!",
		"&k&l&m&n&oX&r&aY",
		"§#12 and & and &#ABCDEFz",
		"[link=example.com]&eClick[/link]",
		"<bold>already</bold> canonical",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

var tagPattern = regexp.MustCompile(`<(/?)(color|obfuscated|bold|strikethrough|underlined|italic)(?::#[0-9A-F]{6})?>`)

// closeRank is the position of a tag in the fixed close order.
var closeRank = map[string]int{
	"obfuscated": 0, "strikethrough": 1, "underlined": 2, "italic": 3, "bold": 4, "color": 5,
}

func TestNormalize_Balanced(t *testing.T) {
	codes := []rune("0123456789abcdefklmnor")
	// every pair and triple of codes, with text in between
	var inputs []string
	for _, a := range codes {
		for _, b := range codes {
			inputs = append(inputs, "&"+string(a)+"x&"+string(b)+"y")
			for _, c := range codes {
				inputs = append(inputs, "&"+string(a)+"&"+string(b)+"z&"+string(c)+"w")
			}
		}
	}

	for _, in := range inputs {
		out := Normalize(in)
		open := map[string]int{}
		lastCloseRank := -1
		for _, m := range tagPattern.FindAllStringSubmatch(out, -1) {
			name := m[2]
			if m[1] == "" {
				open[name]++
				require.LessOrEqual(t, open[name], 1, "double open of %s in %q", name, out)
				lastCloseRank = -1
				continue
			}
			open[name]--
			require.GreaterOrEqual(t, open[name], 0, "close without open in %q", out)
			// consecutive closes follow the fixed order, except that a
			// color switch closes color alone
			if lastCloseRank >= 0 {
				require.Greater(t, closeRank[name], lastCloseRank, "close order in %q", out)
			}
			lastCloseRank = closeRank[name]
		}
		for name, n := range open {
			require.Zero(t, n, "unbalanced %s in %q", name, out)
		}
	}
}

func TestParseHexSequence(t *testing.T) {
	c, n, ok := ParseHexSequence([]rune("&#00FF00rest"))
	require.True(t, ok)
	assert.Equal(t, 8, n)
	assert.Equal(t, "#00FF00", c.Hex())

	c, n, ok = ParseHexSequence([]rune("&x&0&0&0&0&F&F"))
	require.True(t, ok)
	assert.Equal(t, 14, n)
	assert.Equal(t, "#0000FF", c.Hex())

	_, _, ok = ParseHexSequence([]rune("§x§0§0"))
	assert.False(t, ok)
	_, _, ok = ParseHexSequence([]rune("x#000000"))
	assert.False(t, ok)
}
