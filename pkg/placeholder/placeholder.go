// Package placeholder substitutes player placeholders like {player_name}
// in message templates.
package placeholder

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-logr/logr"

	"github.com/paradigmmc/paradigm/pkg/util/permission"
	"github.com/paradigmmc/paradigm/pkg/util/uuid"
)

// Player is a read-only snapshot of the player a message is formatted for.
type Player struct {
	Name      string
	UUID      uuid.UUID
	Level     int
	Health    float64
	MaxHealth float64
}

// NullIdentity is the identity of formatting calls without a player.
const NullIdentity = "null"

// Identity returns the player's uuid string or NullIdentity for a nil player.
func Identity(p *Player) string {
	if p == nil {
		return NullIdentity
	}
	return p.UUID.String()
}

// Recognized placeholder names.
const (
	PlayerToken             = "player"
	PlayerNameToken         = "player_name"
	PlayerUUIDToken         = "player_uuid"
	PlayerLevelToken        = "player_level"
	PlayerHealthToken       = "player_health"
	MaxPlayerHealthToken    = "max_player_health"
	PlayerPrefixToken       = "player_prefix"
	PlayerSuffixToken       = "player_suffix"
	PlayerGroupToken        = "player_group"
	PlayerPrimaryGroupToken = "player_primary_group"
	PlayerGroupsToken       = "player_groups"
)

// Tokens lists every recognized placeholder name.
var Tokens = []string{
	PlayerToken, PlayerNameToken, PlayerUUIDToken, PlayerLevelToken,
	PlayerHealthToken, MaxPlayerHealthToken,
	PlayerPrefixToken, PlayerSuffixToken, PlayerGroupToken,
	PlayerPrimaryGroupToken, PlayerGroupsToken,
}

var tokenSet = func() map[string]bool {
	m := make(map[string]bool, len(Tokens))
	for _, t := range Tokens {
		m[t] = true
	}
	return m
}()

// IsToken reports whether name is a recognized placeholder name.
func IsToken(name string) bool { return tokenSet[name] }

func isPermissionToken(name string) bool {
	switch name {
	case PlayerPrefixToken, PlayerSuffixToken, PlayerGroupToken,
		PlayerPrimaryGroupToken, PlayerGroupsToken:
		return true
	}
	return false
}

// Pattern matches a placeholder token and captures its name.
var Pattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Resolver substitutes placeholders.
// The zero value resolves every permission placeholder to "".
type Resolver struct {
	// Permissions is the optional permission metadata provider.
	Permissions permission.Provider
}

// Resolve returns template with every recognized placeholder substituted
// for player p. With a nil p all recognized placeholders become "".
// Unknown placeholders are kept as they are.
func (r *Resolver) Resolve(ctx context.Context, template string, p *Player) string {
	if !strings.Contains(template, "{") {
		return template
	}

	var (
		meta       permission.Meta
		metaLoaded bool
	)
	lookup := func() permission.Meta {
		if metaLoaded {
			return meta
		}
		metaLoaded = true
		if r == nil || r.Permissions == nil {
			return meta
		}
		var ok bool
		if meta, ok = r.Permissions.Lookup(ctx, p.UUID); !ok {
			logr.FromContextOrDiscard(ctx).V(1).Info("no permission metadata for player",
				"player", p.Name, "uuid", p.UUID.String())
		}
		return meta
	}

	return Pattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		if !tokenSet[name] {
			return match
		}
		if p == nil {
			return ""
		}
		if isPermissionToken(name) {
			m := lookup()
			switch name {
			case PlayerPrefixToken:
				return m.Prefix
			case PlayerSuffixToken:
				return m.Suffix
			case PlayerGroupToken, PlayerPrimaryGroupToken:
				return m.PrimaryGroup
			default:
				return strings.Join(m.AllGroups(), ", ")
			}
		}
		switch name {
		case PlayerToken, PlayerNameToken:
			return p.Name
		case PlayerUUIDToken:
			return p.UUID.String()
		case PlayerLevelToken:
			return strconv.Itoa(p.Level)
		case PlayerHealthToken:
			return FormatHealth(p.Health)
		default: // MaxPlayerHealthToken
			return FormatHealth(p.MaxHealth)
		}
	})
}

// FormatHealth formats v with exactly one decimal place and '.' as separator.
//
// v is rounded half away from zero on its shortest decimal representation,
// so 0.25 and 0.15 become "0.3" and "0.2" as the player would read them.
func FormatHealth(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	digits := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	whole, frac, _ := strings.Cut(digits, ".")
	if len(frac) > 1 {
		truncated, _ := strconv.ParseFloat(whole+"."+frac[:1], 64)
		if frac[1] >= '5' {
			truncated += 0.1
		}
		digits = strconv.FormatFloat(truncated, 'f', 1, 64)
	} else {
		digits = whole + "." + frac + strings.Repeat("0", 1-len(frac))
	}
	if v < 0 && strings.Trim(digits, "0.") != "" {
		return "-" + digits
	}
	return digits
}
