package config_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"

	"github.com/hatchpad/slackbridge/pkg/cli/config"
)

func runWithFlags(t *testing.T, flags []cli.Flag, args []string, action func(context.Context, *cli.Command) error) error {
	t.Helper()
	cmd := &cli.Command{
		Name:   "test",
		Flags:  flags,
		Action: action,
	}
	return cmd.Run(context.Background(), append([]string{"test"}, args...))
}

func TestLoggerConfigure(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg config.Logger
		err := runWithFlags(t, cfg.Flags(), nil, func(ctx context.Context, c *cli.Command) error {
			closer, err := cfg.Configure()
			gt.NoError(t, err).Required()
			closer()
			return nil
		})
		gt.NoError(t, err)
	})

	t.Run("invalid level rejected", func(t *testing.T) {
		var cfg config.Logger
		err := runWithFlags(t, cfg.Flags(), []string{"--log-level", "verbose"}, func(ctx context.Context, c *cli.Command) error {
			_, err := cfg.Configure()
			gt.Error(t, err)
			return nil
		})
		gt.NoError(t, err)
	})

	t.Run("invalid format rejected", func(t *testing.T) {
		var cfg config.Logger
		err := runWithFlags(t, cfg.Flags(), []string{"--log-format", "xml"}, func(ctx context.Context, c *cli.Command) error {
			_, err := cfg.Configure()
			gt.Error(t, err)
			return nil
		})
		gt.NoError(t, err)
	})

	t.Run("json format to file", func(t *testing.T) {
		var cfg config.Logger
		logPath := t.TempDir() + "/app.log"
		err := runWithFlags(t, cfg.Flags(), []string{"--log-format", "json", "--log-output", logPath}, func(ctx context.Context, c *cli.Command) error {
			closer, err := cfg.Configure()
			gt.NoError(t, err).Required()
			closer()
			return nil
		})
		gt.NoError(t, err)
	})
}
