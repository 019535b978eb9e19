package paradigm

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/go-logr/logr"
	"github.com/robinbraemer/event"
	"github.com/urfave/cli/v2"
	"go.uber.org/atomic"

	"github.com/paradigmmc/paradigm/pkg/config"
	"github.com/paradigmmc/paradigm/pkg/format"
	"github.com/paradigmmc/paradigm/pkg/internal/reload"
	"github.com/paradigmmc/paradigm/pkg/lint"
	"github.com/paradigmmc/paradigm/pkg/placeholder"
	"github.com/paradigmmc/paradigm/pkg/util/errs"
	"github.com/paradigmmc/paradigm/pkg/util/interrupt"
	"github.com/paradigmmc/paradigm/pkg/util/permission"
	"github.com/paradigmmc/paradigm/pkg/util/uuid"
)

func previewCommand() *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: "Render all config messages for all config players",
		Description: `Render every message of the config for every player fixture of the config.
With --watch the preview is rendered again whenever the config file changes.

	paradigm preview
	paradigm preview --watch -c config.yml`,
		Flags: []cli.Flag{
			outputFlag(),
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Render again on config file changes",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return cli.Exit(err, 1)
			}
			log := logr.FromContextOrDiscard(c.Context)

			pv := &previewer{out: c.App.Writer, output: c.String("output")}
			if err = pv.setPermissions(cfg); err != nil {
				return cli.Exit(err, 1)
			}
			f := format.New(format.Options{
				Config:      &cfg.Format,
				Permissions: pv,
				Titles:      titlePrinter(c.App.Writer, pv.output),
				Logger:      log.WithName("format"),
			})
			if err = pv.preview(c.Context, f, cfg); err != nil {
				return err
			}
			if !c.Bool("watch") {
				return nil
			}

			ctx, stop := interrupt.TerminationContext(c.Context)
			defer stop()

			mgr := event.New()
			defer f.SubscribeReload(mgr)()

			path, _ := configPath(c)
			prev := cfg
			err = reload.Watch(logr.NewContext(ctx, log.WithName("reload")), path, func() error {
				next, err := loadConfigFile(ctx, path)
				if err != nil {
					return err
				}
				if err = pv.setPermissions(next); err != nil {
					return err
				}
				reload.FireConfigUpdate(mgr, next, prev)
				prev = next
				return pv.preview(ctx, f, next)
			})
			if err != nil {
				return cli.Exit(fmt.Errorf("error watching config %q: %w", path, err), 1)
			}
			log.Info("watching config for changes, press Ctrl+C to stop", "path", path)
			<-ctx.Done()
			return nil
		},
	}
}

// previewer renders config messages. It serves the permission
// metadata of the current config fixtures.
type previewer struct {
	out    io.Writer
	output string
	perms  atomic.Pointer[permission.Static]
}

var _ permission.Provider = (*previewer)(nil)

func (p *previewer) Lookup(ctx context.Context, player uuid.UUID) (permission.Meta, bool) {
	return p.perms.Load().Lookup(ctx, player)
}

func (p *previewer) setPermissions(cfg *config.Config) error {
	perms, err := cfg.Permissions()
	if err != nil {
		return err
	}
	p.perms.Store(perms)
	return nil
}

func (p *previewer) preview(ctx context.Context, f *format.Formatter, cfg *config.Config) error {
	log := logr.FromContextOrDiscard(ctx)

	players, err := fixtures(cfg)
	if err != nil {
		return cli.Exit(err, 1)
	}
	names := make([]string, 0, len(cfg.Messages))
	for name := range cfg.Messages {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		log.Info("no messages configured, see `paradigm config` for examples")
	}

	for _, name := range names {
		template := cfg.Messages[name]
		if err := lint.Strict(template); err != nil {
			logErr(log, fmt.Errorf("message %q: %w", name, errs.WrapSilent(err)))
		}
		for _, player := range players {
			who := placeholder.NullIdentity
			if player != nil {
				who = player.Name
			}
			if _, err := fmt.Fprintf(p.out, "== %s @ %s ==\n", name, who); err != nil {
				return err
			}
			if err := render(p.out, p.output, f.Format(ctx, template, player)); err != nil {
				return err
			}
		}
	}
	s := f.Stats()
	log.V(1).Info("rendered preview",
		"messages", len(names), "players", len(players),
		"parses", s.Parses, "cacheHits", s.Hits, "cacheSize", s.Size)
	return nil
}

// fixtures returns the config players sorted by name, or a single nil
// player if there are none.
func fixtures(cfg *config.Config) ([]*placeholder.Player, error) {
	if len(cfg.Players) == 0 {
		return []*placeholder.Player{nil}, nil
	}
	players := make([]*placeholder.Player, 0, len(cfg.Players))
	for key, p := range cfg.Players {
		player, err := p.Fixture(key)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players, nil
}

// logErr logs silent errors at debug verbosity only.
func logErr(log logr.Logger, err error) {
	if errs.IsSilent(err) {
		log.V(1).Info(err.Error())
		return
	}
	log.Error(err, "preview")
}
