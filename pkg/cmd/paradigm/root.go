// Package paradigm is the paradigm command line interface.
package paradigm

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/paradigmmc/paradigm/pkg/config"
	"github.com/paradigmmc/paradigm/pkg/util/errs"
	"github.com/paradigmmc/paradigm/pkg/version"
)

// Execute runs App() and calls os.Exit when finished.
func Execute() {
	if err := App().Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// App returns the paradigm cli app.
func App() *cli.App {
	app := cli.NewApp()
	app.Name = "paradigm"
	app.Usage = "Paradigm formats Minecraft chat messages."
	app.Description = `Paradigm renders chat message templates the way players see them.
Templates mix inline tags (<red>, <bold>), legacy color codes (&c, §l),
bracket tags ([link=], [hover=], [center]) and player placeholders ({player}).

Visit the docs for the full markup reference.`
	app.Version = version.String()
	app.EnableBashCompletion = true

	// -v is taken by verbosity
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   `config file (default: ./config.yml)`,
			EnvVars: []string{"PARADIGM_CONFIG"},
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "Enable debug mode and highest log verbosity",
			EnvVars: []string{"PARADIGM_DEBUG"},
		},
		&cli.IntFlag{
			Name:    "verbosity",
			Aliases: []string{"v"},
			Usage:   "The higher the verbosity the more logs are shown",
			EnvVars: []string{"PARADIGM_VERBOSITY"},
		},
	}
	app.Before = func(c *cli.Context) error {
		log, err := newLogger(c.Bool("debug"), c.Int("verbosity"))
		if err != nil {
			return cli.Exit(fmt.Errorf("error creating zap logger: %w", err), 1)
		}
		c.Context = logr.NewContext(c.Context, log)
		log.V(1).Info("starting", "version", version.UserAgent())
		return nil
	}
	app.Commands = []*cli.Command{
		renderCommand(),
		lintCommand(),
		previewCommand(),
		configCommand(),
	}
	return app
}

func newLogger(debug bool, verbosity int) (l logr.Logger, err error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		verbosity = max(verbosity, 1)
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = !debug

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), err
	}
	return zapr.NewLogger(zl), nil
}

const defaultConfigFile = "config.yml"

// configPath returns the config file to use and whether the user chose it.
func configPath(c *cli.Context) (string, bool) {
	if p := c.String("config"); p != "" {
		return p, true
	}
	return defaultConfigFile, false
}

// loadConfig loads the config file. The defaults are used when the
// default config file does not exist.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path, explicit := configPath(c)
	if explicit {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrMissingConfig, path)
		}
	}
	return loadConfigFile(c.Context, path)
}

func loadConfigFile(ctx context.Context, path string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	cfg, err := config.LoadConfig(v)
	if err != nil {
		return nil, err
	}
	log := logr.FromContextOrDiscard(ctx)
	warns, _ := cfg.Validate()
	for _, w := range warns {
		log.V(1).Info("config warning", "warning", w.Error())
	}
	if used := v.ConfigFileUsed(); used != "" {
		log.V(1).Info("using config file", "config", used)
	}
	return cfg, nil
}
