package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/eringen/folio/internal/observability"
)

// config is the CLI configuration, read from folio.yaml, FOLIO_* environment
// variables and flags, in increasing order of precedence.
type config struct {
	Content string `mapstructure:"content"`
	Public  string `mapstructure:"public"`
	Addr    string `mapstructure:"addr"`
	Log     struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
}

// cli carries state shared by the subcommands of one invocation.
type cli struct {
	cfgFile string
	cfg     config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "folio",
		Short:         "folio - a flat-file portfolio and blog server",
		Long:          "folio serves a personal site (pages, blog posts, projects and a résumé) from a directory of markdown documents with YAML frontmatter.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initializeConfig(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default is ./folio.yaml)")
	flags.String("content", "content", "content directory")
	flags.String("public", "public", "static assets directory")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")

	root.AddCommand(
		newServeCmd(c),
		newCheckCmd(c),
		newNewCmd(),
		newVersionCmd(),
	)
	return root
}

func (c *cli) initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	v.SetDefault("content", "content")
	v.SetDefault("public", "public")
	v.SetDefault("addr", ":3000")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", string(observability.FormatConsole))

	if c.cfgFile != "" {
		v.SetConfigFile(c.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"content":    "content",
		"public":     "public",
		"log.level":  "log-level",
		"log.format": "log-format",
		"addr":       "addr",
	}
	for key, name := range bindings {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	configUsed := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || c.cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	} else {
		configUsed = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&c.cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	logger, err := observability.NewLogger(c.cfg.Log.Level, observability.Format(c.cfg.Log.Format))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	c.logger = logger
	if configUsed != "" {
		c.logger.Debug("using config file", zap.String("path", configUsed))
	}
	return nil
}
