// Package format is the entry point of message formatting.
//
// A Formatter resolves player placeholders, normalizes legacy color codes
// and parses the result into a styled text tree. Templates without
// placeholders are cached so that repeated messages are parsed once.
package format

import (
	"context"
	"strings"

	"github.com/go-logr/logr"
	"github.com/jellydator/ttlcache/v3"
	"github.com/robinbraemer/event"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/atomic"

	"github.com/paradigmmc/paradigm/pkg/config"
	"github.com/paradigmmc/paradigm/pkg/internal/cachutil"
	"github.com/paradigmmc/paradigm/pkg/internal/reload"
	"github.com/paradigmmc/paradigm/pkg/legacy"
	"github.com/paradigmmc/paradigm/pkg/parser"
	"github.com/paradigmmc/paradigm/pkg/placeholder"
	"github.com/paradigmmc/paradigm/pkg/text"
	"github.com/paradigmmc/paradigm/pkg/util/permission"
)

// Options are Formatter options.
type Options struct {
	// Config is the format config. The zero value uses config.DefaultConfig.Format.
	Config *config.Format
	// Permissions is the optional permission metadata provider.
	Permissions permission.Provider
	// Titles receives [title=] and [subtitle=] requests. May be nil.
	Titles parser.TitleSink
	// Logger is the logger used for events outside of a Format call.
	Logger logr.Logger
}

// Formatter formats message templates for players.
// It is safe for concurrent use.
type Formatter struct {
	log      logr.Logger
	titles   parser.TitleSink
	resolver *placeholder.Resolver

	state atomic.Pointer[state]

	lookups atomic.Uint64
	misses  atomic.Uint64
	parses  atomic.Uint64
}

// state is replaced as a whole when the config changes.
type state struct {
	cfg    config.Format
	parser *parser.Parser
	cache  *ttlcache.Cache[string, *parser.Document] // nil when disabled
	loads  cachutil.Group[*parser.Document]
}

// New returns a new Formatter.
func New(opts Options) *Formatter {
	cfg := config.DefaultConfig.Format
	if opts.Config != nil {
		cfg = *opts.Config
	}
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	f := &Formatter{
		log:      log,
		titles:   opts.Titles,
		resolver: &placeholder.Resolver{Permissions: opts.Permissions},
	}
	f.state.Store(f.newState(cfg))
	return f
}

func (f *Formatter) newState(cfg config.Format) *state {
	st := &state{
		cfg: cfg,
		parser: parser.New(parser.Options{
			LineWidth: cfg.LineWidth,
			Divider:   cfg.Divider,
			AutoLink:  cfg.AutoLink,
			Titles:    f.titles,
		}),
	}
	if cfg.Cache.Enabled {
		capacity := uint64(max(cfg.Cache.Capacity, 0))
		st.cache = ttlcache.New(cachutil.Options[*parser.Document](capacity, nil)...)
	}
	return st
}

// Config returns the format config in use.
func (f *Formatter) Config() config.Format { return f.state.Load().cfg }

// Cacheable reports whether the formatted result of raw can be cached,
// which is the case for templates without placeholders.
func Cacheable(raw string) bool { return !strings.Contains(raw, "{") }

// keySep separates the template from the player identity in cache keys.
const keySep = "\x00"

func (st *state) key(raw string, player *placeholder.Player) string {
	if !st.cfg.Cache.PerPlayerKeys {
		return raw
	}
	return raw + keySep + placeholder.Identity(player)
}

// get returns the cached document of raw, parsing it on a miss.
func (f *Formatter) get(st *state, raw string, player *placeholder.Player) *ttlcache.Item[string, *parser.Document] {
	loader := st.loads.Loader(func(c *ttlcache.Cache[string, *parser.Document], key string) *ttlcache.Item[string, *parser.Document] {
		f.misses.Inc()
		return c.Set(key, f.parse(st.parser, raw), ttlcache.DefaultTTL)
	})
	return st.cache.Get(st.key(raw, player), ttlcache.WithLoader[string, *parser.Document](loader))
}

// Format formats raw for player, which may be nil.
//
// Title requests in raw are forwarded to the title sink on every call,
// cached or not. The returned tree is owned by the caller.
func (f *Formatter) Format(ctx context.Context, raw string, player *placeholder.Player) *text.Run {
	ctx, span := tracer.Start(ctx, "Format")
	defer span.End()

	st := f.state.Load()
	if st.cache == nil || !Cacheable(raw) {
		span.SetAttributes(attribute.Bool("cached", false))
		resolved := f.resolver.Resolve(ctx, raw, player)
		doc := f.parse(st.parser, resolved)
		st.parser.ShowTitles(player, doc.Titles)
		return doc.Root
	}

	span.SetAttributes(attribute.Bool("cached", true))
	f.lookups.Inc()
	doc := f.get(st, raw, player).Value()
	st.parser.ShowTitles(player, cloneTitles(doc.Titles))
	return doc.Root.Clone()
}

func (f *Formatter) parse(p *parser.Parser, resolved string) *parser.Document {
	f.parses.Inc()
	return p.Document(legacy.Normalize(resolved))
}

func cloneTitles(titles []parser.Title) []parser.Title {
	if len(titles) == 0 {
		return nil
	}
	out := make([]parser.Title, len(titles))
	for i, t := range titles {
		out[i] = parser.Title{Part: t.Part, Text: t.Text.Clone()}
	}
	return out
}

// ClearCache drops all cached messages.
func (f *Formatter) ClearCache() {
	if c := f.state.Load().cache; c != nil {
		n := c.Len()
		c.DeleteAll()
		f.log.V(1).Info("cleared message cache", "entries", n)
	}
}

// Reconfigure applies a new format config. The cache starts empty.
func (f *Formatter) Reconfigure(cfg config.Format) {
	prev := f.state.Swap(f.newState(cfg))
	if prev.cache != nil {
		prev.cache.DeleteAll()
	}
	f.log.Info("applied new format config",
		"lineWidth", cfg.LineWidth,
		"autoLink", cfg.AutoLink,
		"cache", cfg.Cache.Enabled)
}

// SubscribeReload reconfigures the formatter on every config reload fired on mgr.
// It returns a func to unsubscribe.
func (f *Formatter) SubscribeReload(mgr event.Manager) func() {
	return reload.Subscribe(mgr, func(e *reload.ConfigUpdateEvent[config.Config]) {
		if e.Config == nil {
			return
		}
		f.Reconfigure(e.Config.Format)
	})
}

// Stats are formatter counters.
type Stats struct {
	// Lookups is the number of Format calls that consulted the cache.
	Lookups uint64
	// Hits is the number of lookups served without parsing.
	Hits uint64
	// Misses is the number of lookups that parsed and cached a message.
	Misses uint64
	// Parses is the number of parsed messages, cached or not.
	Parses uint64
	// Size is the number of cached messages.
	Size int
}

// Stats returns the current counters.
func (f *Formatter) Stats() Stats {
	s := Stats{
		Lookups: f.lookups.Load(),
		Misses:  f.misses.Load(),
		Parses:  f.parses.Load(),
	}
	if s.Lookups > s.Misses {
		s.Hits = s.Lookups - s.Misses
	}
	if c := f.state.Load().cache; c != nil {
		s.Size = c.Len()
	}
	return s
}
