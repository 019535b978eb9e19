// Package config is the configuration of the paradigm formatter and its CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/paradigmmc/paradigm/pkg/parser"
	"github.com/paradigmmc/paradigm/pkg/placeholder"
	"github.com/paradigmmc/paradigm/pkg/util/configutil"
	"github.com/paradigmmc/paradigm/pkg/util/permission"
	"github.com/paradigmmc/paradigm/pkg/util/uuid"
	"github.com/paradigmmc/paradigm/pkg/util/validation"
)

// DefaultConfig is a default Config.
var DefaultConfig = Config{
	Format: Format{
		LineWidth: parser.DefaultLineWidth,
		Divider:   parser.DefaultDivider,
		AutoLink:  true,
		Cache: Cache{
			Enabled:       true,
			PerPlayerKeys: true,
			Capacity:      0,
		},
	},
}

// Config is the root configuration.
type Config struct {
	// See Format struct.
	Format Format `json:"format,omitempty" yaml:"format,omitempty"`
	// Players are player fixtures by name used to preview messages.
	Players map[string]Player `json:"players,omitempty" yaml:"players,omitempty"`
	// Messages are named message templates.
	Messages map[string]string `json:"messages,omitempty" yaml:"messages,omitempty"`
}

// Format configures message formatting.
type Format struct {
	// LineWidth is the chat line width [center] centers within.
	LineWidth int `json:"lineWidth,omitempty" yaml:"lineWidth,omitempty"`
	// Divider is the text of [divider].
	Divider string `json:"divider,omitempty" yaml:"divider,omitempty"`
	// AutoLink makes bare http(s) URLs clickable.
	AutoLink bool `json:"autoLink" yaml:"autoLink"`
	// See Cache struct.
	Cache Cache `json:"cache,omitempty" yaml:"cache,omitempty"`
}

// Cache configures the formatted message cache.
type Cache struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// PerPlayerKeys keys cached messages by template and player.
	// When disabled all players share the cached message of a template.
	PerPlayerKeys bool `json:"perPlayerKeys" yaml:"perPlayerKeys"`
	// Capacity is the maximum number of cached messages. 0 means unbounded.
	Capacity int `json:"capacity,omitempty" yaml:"capacity,omitempty"`
}

// Player is a player fixture.
type Player struct {
	// Name is the player name. Defaults to the fixture key.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// UUID defaults to the offline mode UUID of the player name.
	UUID      string  `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Level     int     `json:"level,omitempty" yaml:"level,omitempty"`
	Health    float64 `json:"health,omitempty" yaml:"health,omitempty"`
	MaxHealth float64 `json:"maxHealth,omitempty" yaml:"maxHealth,omitempty"`

	permission.Meta `json:",inline" yaml:",inline"`
}

// Fixture returns the placeholder player of the fixture with the given key.
func (p Player) Fixture(key string) (*placeholder.Player, error) {
	name := key
	if p.Name != "" {
		name = p.Name
	}
	id := uuid.OfflinePlayerUUID(name)
	if p.UUID != "" {
		var err error
		if id, err = uuid.Parse(p.UUID); err != nil {
			return nil, fmt.Errorf("player %q: %w", name, err)
		}
	}
	return &placeholder.Player{
		Name:      name,
		UUID:      id,
		Level:     p.Level,
		Health:    p.Health,
		MaxHealth: p.MaxHealth,
	}, nil
}

// Permissions returns a permission provider serving the metadata of all player fixtures.
func (c *Config) Permissions() (*permission.Static, error) {
	provider := permission.NewStatic(nil)
	for name, p := range c.Players {
		player, err := p.Fixture(name)
		if err != nil {
			return nil, err
		}
		provider.Set(player.UUID, p.Meta)
	}
	return provider, nil
}

// SetDefaults sets Config defaults to use with Viper.
func SetDefaults(i configutil.SetDefault) {
	d := DefaultConfig.Format
	i.SetDefault("format.lineWidth", d.LineWidth)
	i.SetDefault("format.divider", d.Divider)
	i.SetDefault("format.autoLink", d.AutoLink)
	i.SetDefault("format.cache.enabled", d.Cache.Enabled)
	i.SetDefault("format.cache.perPlayerKeys", d.Cache.PerPlayerKeys)
	i.SetDefault("format.cache.capacity", d.Cache.Capacity)
}

// EnvPrefix is the prefix of environment variables overriding config keys.
const EnvPrefix = "PARADIGM"

// LoadConfig reads the config file set on v, applies defaults and
// environment overrides, and validates the result.
// A missing config file is not an error, the defaults are used.
func LoadConfig(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file %q: %w", v.ConfigFileUsed(), err)
		}
	}

	// fresh maps on every load so removed entries do not survive a reload
	cfg := DefaultConfig
	cfg.Players = map[string]Player{}
	cfg.Messages = map[string]string{}
	if err := v.Unmarshal(&cfg, func(c *mapstructure.DecoderConfig) {
		c.TagName = "yaml"
		c.Squash = true
	}); err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if _, errList := cfg.Validate(); len(errList) != 0 {
		return nil, fmt.Errorf("%w: %w", errInvalid(len(errList)), errors.Join(errList...))
	}
	return &cfg, nil
}

func errInvalid(n int) error {
	a, s := "are", "s"
	if n == 1 {
		a, s = "is", ""
	}
	return fmt.Errorf("there %s %d config validation error%s", a, n, s)
}

// Validate validates a Config.
func (c *Config) Validate() (warns []error, errs []error) {
	e := func(m string, args ...any) { errs = append(errs, fmt.Errorf(m, args...)) }
	w := func(m string, args ...any) { warns = append(warns, fmt.Errorf(m, args...)) }
	if c == nil {
		e("config must not be nil")
		return
	}

	if c.Format.LineWidth < 1 {
		e("Invalid line width %d: must be >= 1", c.Format.LineWidth)
	}
	if c.Format.Divider == "" {
		w("Divider is empty, [divider] renders nothing.")
	}
	if c.Format.Cache.Capacity < 0 {
		e("Invalid cache capacity %d: must be >= 0", c.Format.Cache.Capacity)
	}
	if !c.Format.Cache.Enabled {
		w("Message cache is disabled, every message is parsed again.")
	} else if !c.Format.Cache.PerPlayerKeys {
		w("Message cache keys ignore the player, players share cached messages.")
	}

	for name, p := range c.Players {
		player, err := p.Fixture(name)
		if err != nil {
			e("Invalid player fixture: %v", err)
		} else if !validation.ValidPlayerName(player.Name) {
			w("Player name %q %s", player.Name, validation.PlayerNameErrMsg)
		}
		if p.Health < 0 || p.MaxHealth < 0 {
			e("Invalid health of player %q: must be >= 0", name)
		}
		if p.MaxHealth != 0 && p.Health > p.MaxHealth {
			w("Player %q has more health than max health", name)
		}
	}
	for name, m := range c.Messages {
		if !validation.ValidMessageName(name) {
			e("Invalid message name %q: %s", name, validation.QualifiedNameErrMsg)
		}
		if strings.TrimSpace(m) == "" {
			w("Message %q is empty", name)
		}
	}
	return
}
