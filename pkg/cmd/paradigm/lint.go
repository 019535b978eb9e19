package paradigm

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/paradigmmc/paradigm/pkg/lint"
)

func lintCommand() *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Usage:     "Report markup problems in message templates",
		ArgsUsage: "[TEMPLATE...]",
		Description: `Report markup that formatting silently tolerates, like unknown tags,
unterminated bracket tags and misspelled placeholders.
Without arguments all messages of the config are checked.

	paradigm lint '<bodl>Hi {player_nme}'
	paradigm lint -c config.yml`,
		Action: func(c *cli.Context) error {
			type template struct{ name, text string }
			var templates []template
			if c.Args().Present() {
				for i, arg := range c.Args().Slice() {
					templates = append(templates, template{fmt.Sprintf("#%d", i+1), arg})
				}
			} else {
				cfg, err := loadConfig(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				for name, text := range cfg.Messages {
					templates = append(templates, template{name, text})
				}
				sort.Slice(templates, func(i, j int) bool { return templates[i].name < templates[j].name })
			}

			var total int
			for _, t := range templates {
				for _, issue := range lint.Check(t.text) {
					total++
					_, _ = fmt.Fprintf(c.App.Writer, "%s: %s\n", t.name, issue)
				}
			}
			if total != 0 {
				s := "s"
				if total == 1 {
					s = ""
				}
				return cli.Exit(fmt.Sprintf("found %d issue%s", total, s), 1)
			}
			_, _ = fmt.Fprintf(c.App.Writer, "%d template(s) ok\n", len(templates))
			return nil
		},
	}
}
