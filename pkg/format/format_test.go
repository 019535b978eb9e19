package format

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/go-faker/faker/v4"
	"github.com/robinbraemer/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paradigmmc/paradigm/pkg/config"
	"github.com/paradigmmc/paradigm/pkg/internal/reload"
	"github.com/paradigmmc/paradigm/pkg/parser"
	"github.com/paradigmmc/paradigm/pkg/placeholder"
	"github.com/paradigmmc/paradigm/pkg/text"
	"github.com/paradigmmc/paradigm/pkg/util/permission"
	"github.com/paradigmmc/paradigm/pkg/util/uuid"
)

func newPlayer(t *testing.T) *placeholder.Player {
	t.Helper()
	name := faker.Username()
	return &placeholder.Player{
		Name:      name,
		UUID:      uuid.OfflinePlayerUUID(name),
		Level:     12,
		Health:    9.666,
		MaxHealth: 20,
	}
}

func TestFormat_CacheHitDoesNotReparse(t *testing.T) {
	f := New(Options{})
	ctx := context.Background()
	player := newPlayer(t)

	first := f.Format(ctx, "&cHello &lWorld&r!", player)
	require.Equal(t, "Hello World!", first.PlainText())
	assert.Equal(t, uint64(1), f.Stats().Parses)

	for range 5 {
		again := f.Format(ctx, "&cHello &lWorld&r!", player)
		assert.True(t, first.Equal(again))
	}
	s := f.Stats()
	assert.Equal(t, uint64(1), s.Parses)
	assert.Equal(t, uint64(6), s.Lookups)
	assert.Equal(t, uint64(5), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
	assert.Equal(t, 1, s.Size)
}

func TestFormat_ReturnsCopies(t *testing.T) {
	f := New(Options{})
	ctx := context.Background()

	first := f.Format(ctx, "<red>Hello", nil)
	first.Children[0].Text = "mutated"
	first.Children[0].Style = first.Children[0].Style.WithDecoration(text.Bold, true)
	first.Children = append(first.Children, text.NewRun("extra", text.Style{}))

	second := f.Format(ctx, "<red>Hello", nil)
	require.Len(t, second.Children, 1)
	assert.Equal(t, "Hello", second.Children[0].Text)
	assert.False(t, second.Children[0].Style.Bold)
}

func TestFormat_PlaceholdersAreNotCached(t *testing.T) {
	f := New(Options{})
	ctx := context.Background()
	player := newPlayer(t)

	a := f.Format(ctx, "Hi {player}", player)
	b := f.Format(ctx, "Hi {player}", player)
	assert.Equal(t, "Hi "+player.Name, a.PlainText())
	assert.True(t, a.Equal(b))

	s := f.Stats()
	assert.Equal(t, uint64(2), s.Parses)
	assert.Equal(t, uint64(0), s.Lookups)
	assert.Equal(t, 0, s.Size)
}

func TestFormat_PlaceholderCompleteness(t *testing.T) {
	f := New(Options{})
	player := newPlayer(t)
	player.Health = 7

	out := f.Format(context.Background(),
		"{player} {player_name} {player_uuid} {player_level} {player_health} {max_player_health}",
		player).PlainText()
	assert.NotContains(t, out, "{")
	assert.Equal(t, strings.Join([]string{
		player.Name, player.Name, player.UUID.String(), "12", "7.0", "20.0",
	}, " "), out)
}

func TestFormat_PermissionPlaceholders(t *testing.T) {
	player := newPlayer(t)
	perms := permission.NewStatic(nil)
	perms.Set(player.UUID, permission.Meta{PrimaryGroup: "admin", Prefix: "&c[Admin] "})

	f := New(Options{Permissions: perms})
	out := f.Format(context.Background(), "{player_prefix}{player}: hi", player)
	assert.Equal(t, "[Admin] "+player.Name+": hi", out.PlainText())
	require.NotNil(t, out.Children[0].Style.Color)
	assert.Equal(t, "#FF5555", out.Children[0].Style.Color.Hex())
}

func TestFormat_PerPlayerKeys(t *testing.T) {
	ctx := context.Background()
	a, b := newPlayer(t), newPlayer(t)
	b.UUID = uuid.New()

	f := New(Options{})
	f.Format(ctx, "hello", a)
	f.Format(ctx, "hello", b)
	f.Format(ctx, "hello", nil)
	assert.Equal(t, 3, f.Stats().Size)

	cfg := config.DefaultConfig.Format
	cfg.Cache.PerPlayerKeys = false
	shared := New(Options{Config: &cfg})
	shared.Format(ctx, "hello", a)
	shared.Format(ctx, "hello", b)
	shared.Format(ctx, "hello", nil)
	assert.Equal(t, 1, shared.Stats().Size)
	assert.Equal(t, uint64(1), shared.Stats().Parses)
}

func TestFormat_SharedKeysKeepWholeTemplate(t *testing.T) {
	cfg := config.DefaultConfig.Format
	cfg.Cache.PerPlayerKeys = false
	f := New(Options{Config: &cfg})
	ctx := context.Background()

	for range 2 {
		out := f.Format(ctx, "&aleft\x00right", nil)
		assert.Equal(t, "left\x00right", out.PlainText())
	}
	assert.Equal(t, uint64(1), f.Stats().Parses)
}

func TestFormat_CapacityEviction(t *testing.T) {
	cfg := config.DefaultConfig.Format
	cfg.Cache.Capacity = 1
	f := New(Options{Config: &cfg})
	ctx := context.Background()

	templates := []string{"&cfirst", "<bold>second", "&cfirst", "<bold>second"}
	for _, raw := range templates {
		out := f.Format(ctx, raw, nil)
		require.Len(t, out.Children, 1)
		if raw == "&cfirst" {
			assert.Equal(t, "first", out.PlainText())
			require.NotNil(t, out.Children[0].Style.Color)
			assert.Equal(t, "#FF5555", out.Children[0].Style.Color.Hex())
		} else {
			assert.Equal(t, "second", out.PlainText())
			assert.True(t, out.Children[0].Style.Bold)
		}
	}

	s := f.Stats()
	assert.Equal(t, 1, s.Size)
	assert.Equal(t, uint64(4), s.Parses)
	assert.Equal(t, uint64(4), s.Misses)
	assert.Equal(t, uint64(0), s.Hits)

	f.Format(ctx, "<bold>second", nil)
	assert.Equal(t, uint64(4), f.Stats().Parses)
}

func TestFormat_CacheDisabled(t *testing.T) {
	cfg := config.DefaultConfig.Format
	cfg.Cache.Enabled = false
	f := New(Options{Config: &cfg})
	f.Format(context.Background(), "hello", nil)
	f.Format(context.Background(), "hello", nil)
	s := f.Stats()
	assert.Equal(t, uint64(2), s.Parses)
	assert.Equal(t, 0, s.Size)
}

func TestFormat_TitlesReplayedOnHit(t *testing.T) {
	var (
		mu     sync.Mutex
		titles []string
	)
	sink := parser.TitleSinkFunc(func(_ *placeholder.Player, t parser.Title) {
		mu.Lock()
		defer mu.Unlock()
		titles = append(titles, t.Part.String()+":"+t.Text.PlainText())
	})
	f := New(Options{Titles: sink})
	ctx := context.Background()

	f.Format(ctx, "[title=Welcome]hi", nil)
	f.Format(ctx, "[title=Welcome]hi", nil)
	assert.Equal(t, []string{"title:Welcome", "title:Welcome"}, titles)
	assert.Equal(t, uint64(1), f.Stats().Parses)
}

func TestFormat_ClearCache(t *testing.T) {
	f := New(Options{})
	ctx := context.Background()
	f.Format(ctx, "hello", nil)
	require.Equal(t, 1, f.Stats().Size)

	f.ClearCache()
	assert.Equal(t, 0, f.Stats().Size)

	f.Format(ctx, "hello", nil)
	assert.Equal(t, uint64(2), f.Stats().Parses)
}

func TestFormat_Concurrent(t *testing.T) {
	f := New(Options{})
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			raw := "[center]<bold>msg</bold>[/center]"
			if i%2 == 0 {
				raw = "&aother"
			}
			out := f.Format(ctx, raw, nil)
			assert.NotEmpty(t, out.PlainText())
		}()
	}
	wg.Wait()
	s := f.Stats()
	assert.Equal(t, 2, s.Size)
	assert.Equal(t, uint64(32), s.Lookups)
}

func TestFormat_CenterScenario(t *testing.T) {
	f := New(Options{})
	out := f.Format(context.Background(), "[center]Hi[/center]", nil)
	require.Len(t, out.Children, 2)
	assert.Equal(t, strings.Repeat(" ", 25), out.Children[0].Text)
	assert.Equal(t, "Hi", out.Children[1].Text)
}

func TestSubscribeReload(t *testing.T) {
	mgr := event.New()
	f := New(Options{})
	defer f.SubscribeReload(mgr)()

	ctx := context.Background()
	f.Format(ctx, "[center]Hi[/center]", nil)
	require.Equal(t, 1, f.Stats().Size)

	cfg := config.DefaultConfig
	cfg.Format.LineWidth = 12
	reload.FireConfigUpdate(mgr, &cfg, &config.DefaultConfig)

	assert.Equal(t, 12, f.Config().LineWidth)
	assert.Equal(t, 0, f.Stats().Size)
	out := f.Format(ctx, "[center]Hi[/center]", nil)
	assert.Equal(t, strings.Repeat(" ", 5), out.Children[0].Text)
}

func TestCacheable(t *testing.T) {
	assert.True(t, Cacheable("&cHello"))
	assert.False(t, Cacheable("Hi {player}"))
	assert.False(t, Cacheable("{"))
}

func TestInitMeter(t *testing.T) {
	assert.NoError(t, New(Options{}).InitMeter())
}
