package main

import (
	"strings"

	"github.com/go-sif/derive/logging"
	"github.com/go-sif/derive/pipeline"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "DERIVE"

// newRootCmd builds the command tree. Each invocation gets its own viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:           "derive",
		Short:         "Derive new columns from existing ones",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v, cmd)
		},
	}
	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (yaml, json or toml)")
	flags.String("log-level", "info", "one of trace, debug, info, warn, error, fatal")
	flags.Bool("log-console", true, "human-readable logs instead of JSON")
	flags.Bool("parallel", false, "evaluate independent steps concurrently")
	flags.Bool("stats", false, "report run statistics after the result")

	cmd.AddCommand(newDemoCmd(v), newSplitCmd(v))
	return cmd
}

// loadConfig binds flags, DERIVE_* environment variables and an optional config file, in
// increasing order of precedence: config file, environment, flags.
func loadConfig(v *viper.Viper, cmd *cobra.Command) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(v *viper.Viper, cmd *cobra.Command) zerolog.Logger {
	return logging.New(cmd.ErrOrStderr(), logging.ParseLogLevel(v.GetString("log-level")), v.GetBool("log-console"))
}

func newPipelineConf(v *viper.Viper, cmd *cobra.Command) *pipeline.Conf {
	logger := newLogger(v, cmd)
	return &pipeline.Conf{
		Logger:   &logger,
		Parallel: v.GetBool("parallel"),
	}
}
