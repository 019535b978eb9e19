package paradigm

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/gookit/color"
	"github.com/urfave/cli/v2"

	"github.com/paradigmmc/paradigm/internal/util/console"
	"github.com/paradigmmc/paradigm/pkg/config"
	"github.com/paradigmmc/paradigm/pkg/format"
	"github.com/paradigmmc/paradigm/pkg/legacy"
	"github.com/paradigmmc/paradigm/pkg/lint"
	"github.com/paradigmmc/paradigm/pkg/parser"
	"github.com/paradigmmc/paradigm/pkg/placeholder"
	"github.com/paradigmmc/paradigm/pkg/text"
	"github.com/paradigmmc/paradigm/pkg/util/errs"
	"github.com/paradigmmc/paradigm/pkg/util/permission"
)

// Output formats of rendered messages.
const (
	OutputANSI   = "ansi"
	OutputJSON   = "json"
	OutputLegacy = "legacy"
	OutputPlain  = "plain"
	OutputTags   = "tags"
)

var outputs = []string{OutputANSI, OutputJSON, OutputLegacy, OutputPlain, OutputTags}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output format: " + strings.Join(outputs, ", "),
		Value:   OutputANSI,
	}
}

func playerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "player", Aliases: []string{"p"}, Usage: "Player name or fixture from the config to render for"},
		&cli.StringFlag{Name: "uuid", Usage: "Player uuid (default: offline mode uuid of the name)"},
		&cli.IntFlag{Name: "level", Usage: "Player experience level"},
		&cli.Float64Flag{Name: "health", Usage: "Player health"},
		&cli.Float64Flag{Name: "max-health", Usage: "Player max health"},
		&cli.StringFlag{Name: "group", Usage: "Player primary permission group"},
		&cli.StringFlag{Name: "prefix", Usage: "Player chat prefix"},
		&cli.StringFlag{Name: "suffix", Usage: "Player chat suffix"},
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Render a message template",
		ArgsUsage: "TEMPLATE",
		Description: `Render a message template for a player.

	paradigm render '&cHello &lWorld&r!'
	paradigm render --player Steve --health 9.666 '{player} has {player_health} health'
	paradigm render -o json '[link=example.com]Click[/link]'`,
		Flags: append([]cli.Flag{
			outputFlag(),
			&cli.BoolFlag{Name: "strict", Usage: "Fail on markup issues instead of tolerating them"},
		}, playerFlags()...),
		Action: func(c *cli.Context) error {
			template := strings.Join(c.Args().Slice(), " ")
			if template == "" {
				return cli.Exit(errs.ErrNoTemplate, 1)
			}
			if c.Bool("strict") {
				if err := lint.Strict(template); err != nil {
					return cli.Exit(err, 1)
				}
			}

			cfg, err := loadConfig(c)
			if err != nil {
				return cli.Exit(err, 1)
			}
			player, perms, err := playerFromFlags(c, cfg)
			if err != nil {
				return cli.Exit(err, 1)
			}

			out := c.App.Writer
			f := format.New(format.Options{
				Config:      &cfg.Format,
				Permissions: perms,
				Titles:      titlePrinter(c.App.ErrWriter, c.String("output")),
				Logger:      logr.FromContextOrDiscard(c.Context),
			})
			if c.String("output") == OutputTags {
				resolved := (&placeholder.Resolver{Permissions: perms}).Resolve(c.Context, template, player)
				_, err = fmt.Fprintln(out, legacy.Normalize(resolved))
				return err
			}
			return render(out, c.String("output"), f.Format(c.Context, template, player))
		},
	}
}

func render(w io.Writer, output string, r *text.Run) error {
	var s string
	switch output {
	case OutputANSI:
		s = console.Ansi(r, color.SupportTrueColor())
	case OutputJSON:
		b, err := text.MarshalJSON(r)
		if err != nil {
			return cli.Exit(fmt.Errorf("error encoding json: %w", err), 1)
		}
		s = string(b)
	case OutputLegacy:
		var err error
		if s, err = text.Legacy(r); err != nil {
			return cli.Exit(fmt.Errorf("error encoding legacy text: %w", err), 1)
		}
	case OutputPlain:
		s = r.PlainText()
	default:
		return cli.Exit(fmt.Sprintf("unknown output format: %s (valid formats: %s)",
			output, strings.Join(outputs, ", ")), 1)
	}
	_, err := fmt.Fprintln(w, s)
	return err
}

// titlePrinter prints title requests, which have no chat representation.
func titlePrinter(w io.Writer, output string) parser.TitleSink {
	return parser.TitleSinkFunc(func(_ *placeholder.Player, t parser.Title) {
		if output == OutputTags {
			return
		}
		_, _ = fmt.Fprintf(w, "[%s] ", t.Part)
		_ = render(w, output, t.Text)
	})
}

// playerFromFlags returns the player to render for and the permission
// metadata of all config fixtures and the player.
// The player is nil if no --player is given.
func playerFromFlags(c *cli.Context, cfg *config.Config) (*placeholder.Player, permission.Provider, error) {
	perms, err := cfg.Permissions()
	if err != nil {
		return nil, nil, err
	}
	name := c.String("player")
	if name == "" {
		return nil, perms, nil
	}

	key, p := name, config.Player{}
	for k, fixture := range cfg.Players {
		if strings.EqualFold(k, name) || strings.EqualFold(fixture.Name, name) {
			key, p = k, fixture
			break
		}
	}
	if p.Name == "" {
		p.Name = name
	}
	if c.IsSet("uuid") {
		p.UUID = c.String("uuid")
	}
	if c.IsSet("level") {
		p.Level = c.Int("level")
	}
	if c.IsSet("health") {
		p.Health = c.Float64("health")
	}
	if c.IsSet("max-health") {
		p.MaxHealth = c.Float64("max-health")
	}
	if c.IsSet("group") {
		p.PrimaryGroup = c.String("group")
	}
	if c.IsSet("prefix") {
		p.Prefix = c.String("prefix")
	}
	if c.IsSet("suffix") {
		p.Suffix = c.String("suffix")
	}

	player, err := p.Fixture(key)
	if err != nil {
		return nil, nil, err
	}
	perms.Set(player.UUID, p.Meta)
	return player, perms, nil
}
