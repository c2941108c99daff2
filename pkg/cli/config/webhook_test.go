package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"

	"github.com/hatchpad/slackbridge/pkg/cli/config"
	"github.com/hatchpad/slackbridge/pkg/usecase"
)

func TestWebhookConfigure(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg config.Webhook
		err := runWithFlags(t, cfg.Flags(), nil, func(ctx context.Context, c *cli.Command) error {
			gt.NoError(t, cfg.Configure(c)).Required()
			gt.Value(t, cfg.MediaDir()).Equal("./media")
			gt.Value(t, cfg.AttachmentPolicy()).Equal(usecase.PolicySaveAll)
			gt.Value(t, cfg.DownloadConcurrency()).Equal(usecase.DefaultDownloadLimit)
			return nil
		})
		gt.NoError(t, err)
	})

	t.Run("toml file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "webhook.toml")
		gt.NoError(t, os.WriteFile(path, []byte(`
media_dir = "/var/media"
attachment_policy = "images_only"
download_concurrency = 8
`), 0o644)).Required()

		var cfg config.Webhook
		err := runWithFlags(t, cfg.Flags(), []string{"--webhook-config", path}, func(ctx context.Context, c *cli.Command) error {
			gt.NoError(t, cfg.Configure(c)).Required()
			gt.Value(t, cfg.MediaDir()).Equal("/var/media")
			gt.Value(t, cfg.AttachmentPolicy()).Equal(usecase.PolicyImagesOnly)
			gt.Value(t, cfg.DownloadConcurrency()).Equal(8)
			return nil
		})
		gt.NoError(t, err)
	})

	t.Run("concurrency flag parses", func(t *testing.T) {
		var cfg config.Webhook
		err := runWithFlags(t, cfg.Flags(), []string{"--download-concurrency", "2"}, func(ctx context.Context, c *cli.Command) error {
			gt.NoError(t, cfg.Configure(c)).Required()
			gt.Value(t, cfg.DownloadConcurrency()).Equal(2)
			return nil
		})
		gt.NoError(t, err)
	})

	t.Run("explicit flag beats file value", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "webhook.toml")
		gt.NoError(t, os.WriteFile(path, []byte(`media_dir = "/var/media"`), 0o644)).Required()

		var cfg config.Webhook
		err := runWithFlags(t, cfg.Flags(),
			[]string{"--webhook-config", path, "--media-dir", "/tmp/override"},
			func(ctx context.Context, c *cli.Command) error {
				gt.NoError(t, cfg.Configure(c)).Required()
				gt.Value(t, cfg.MediaDir()).Equal("/tmp/override")
				return nil
			})
		gt.NoError(t, err)
	})

	t.Run("unknown policy rejected", func(t *testing.T) {
		var cfg config.Webhook
		err := runWithFlags(t, cfg.Flags(), []string{"--attachment-policy", "everything"}, func(ctx context.Context, c *cli.Command) error {
			gt.Error(t, cfg.Configure(c))
			return nil
		})
		gt.NoError(t, err)
	})

	t.Run("missing file rejected", func(t *testing.T) {
		var cfg config.Webhook
		err := runWithFlags(t, cfg.Flags(), []string{"--webhook-config", "/no/such/file.toml"}, func(ctx context.Context, c *cli.Command) error {
			gt.Error(t, cfg.Configure(c))
			return nil
		})
		gt.NoError(t, err)
	})
}

func TestSlackConfig(t *testing.T) {
	t.Run("validate requires credentials", func(t *testing.T) {
		var cfg config.Slack
		err := runWithFlags(t, cfg.Flags(), nil, func(ctx context.Context, c *cli.Command) error {
			gt.Error(t, cfg.Validate())
			return nil
		})
		gt.NoError(t, err)
	})

	t.Run("scopes split on commas", func(t *testing.T) {
		var cfg config.Slack
		err := runWithFlags(t, cfg.Flags(),
			[]string{
				"--slack-client-id", "cid",
				"--slack-client-secret", "csecret",
				"--slack-scopes", "users:read, chat:write ,files:read",
			},
			func(ctx context.Context, c *cli.Command) error {
				gt.NoError(t, cfg.Validate()).Required()
				gt.Array(t, cfg.Scopes()).Length(3)
				gt.Value(t, cfg.Scopes()[1]).Equal("chat:write")
				gt.Array(t, cfg.UserScopes()).Length(0)
				return nil
			})
		gt.NoError(t, err)
	})
}
