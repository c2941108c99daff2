package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/hatchpad/slackbridge/pkg/usecase"
)

// webhookFile is the TOML shape of the optional webhook config file. File
// values override the flag defaults but not explicitly set flags, so the
// file is loaded first and flags win.
type webhookFile struct {
	MediaDir            string `toml:"media_dir"`
	AttachmentPolicy    string `toml:"attachment_policy"`
	DownloadConcurrency int64  `toml:"download_concurrency"`
}

type Webhook struct {
	configPath          string
	mediaDir            string
	attachmentPolicy    string
	downloadConcurrency int64
}

func (x *Webhook) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "webhook-config",
			Usage:       "Path to webhook TOML config file",
			Category:    "Webhook",
			Destination: &x.configPath,
			Sources:     cli.EnvVars("SLACKBRIDGE_WEBHOOK_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "media-dir",
			Usage:       "Directory for downloaded attachments",
			Category:    "Webhook",
			Value:       "./media",
			Destination: &x.mediaDir,
			Sources:     cli.EnvVars("SLACKBRIDGE_MEDIA_DIR"),
		},
		&cli.StringFlag{
			Name:        "attachment-policy",
			Usage:       "Attachment save policy (save_all, images_only)",
			Category:    "Webhook",
			Value:       string(usecase.PolicySaveAll),
			Destination: &x.attachmentPolicy,
			Sources:     cli.EnvVars("SLACKBRIDGE_ATTACHMENT_POLICY"),
		},
		&cli.IntFlag{
			Name:        "download-concurrency",
			Usage:       "Max concurrent attachment downloads per event",
			Category:    "Webhook",
			Value:       int64(usecase.DefaultDownloadLimit),
			Destination: &x.downloadConcurrency,
			Sources:     cli.EnvVars("SLACKBRIDGE_DOWNLOAD_CONCURRENCY"),
		},
	}
}

func (x Webhook) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("config", x.configPath),
		slog.String("media-dir", x.mediaDir),
		slog.String("policy", x.attachmentPolicy),
		slog.Int64("concurrency", x.downloadConcurrency),
	)
}

// Configure merges the optional TOML file over the flag values and
// validates the result.
func (x *Webhook) Configure(c *cli.Command) error {
	if x.configPath != "" {
		data, err := os.ReadFile(x.configPath)
		if err != nil {
			return goerr.Wrap(err, "failed to read webhook config", goerr.V("path", x.configPath))
		}

		var file webhookFile
		if err := toml.Unmarshal(data, &file); err != nil {
			return goerr.Wrap(err, "failed to parse webhook config", goerr.V("path", x.configPath))
		}

		if file.MediaDir != "" && !c.IsSet("media-dir") {
			x.mediaDir = file.MediaDir
		}
		if file.AttachmentPolicy != "" && !c.IsSet("attachment-policy") {
			x.attachmentPolicy = file.AttachmentPolicy
		}
		if file.DownloadConcurrency > 0 && !c.IsSet("download-concurrency") {
			x.downloadConcurrency = file.DownloadConcurrency
		}
	}

	return x.Validate()
}

// Validate checks the merged configuration.
func (x *Webhook) Validate() error {
	if x.mediaDir == "" {
		return goerr.New("media directory is required")
	}
	if err := usecase.AttachmentPolicy(x.attachmentPolicy).Validate(); err != nil {
		return err
	}
	if x.downloadConcurrency <= 0 {
		return goerr.New("download concurrency must be positive", goerr.V("value", x.downloadConcurrency))
	}
	return nil
}

func (x *Webhook) MediaDir() string { return x.mediaDir }

func (x *Webhook) AttachmentPolicy() usecase.AttachmentPolicy {
	return usecase.AttachmentPolicy(x.attachmentPolicy)
}

func (x *Webhook) DownloadConcurrency() int { return int(x.downloadConcurrency) }
