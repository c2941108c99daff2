package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/hatchpad/slackbridge/pkg/cli/config"
	httpctrl "github.com/hatchpad/slackbridge/pkg/controller/http"
	"github.com/hatchpad/slackbridge/pkg/repository/memory"
	"github.com/hatchpad/slackbridge/pkg/service/storage"
	"github.com/hatchpad/slackbridge/pkg/usecase"
	"github.com/hatchpad/slackbridge/pkg/utils/logging"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var slackCfg config.Slack
	var webhookCfg config.Webhook
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("SLACKBRIDGE_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, webhookCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := slackCfg.Validate(); err != nil {
				return err
			}
			if err := webhookCfg.Configure(c); err != nil {
				return goerr.Wrap(err, "failed to configure webhook")
			}
			if err := sentryCfg.Configure(version); err != nil {
				return err
			}

			logging.Default().Info("Configuration loaded",
				"slack", slackCfg,
				"webhook", webhookCfg,
				"sentry", sentryCfg,
			)

			if !slackCfg.IsWebhookConfigured() {
				logging.Default().Warn("Signing secret not configured, events endpoint will reject all requests")
			}
			if slackCfg.BotToken() == "" {
				logging.Default().Warn("Bot token not configured, attachment downloads will be unauthenticated")
			}

			api := slackCfg.Configure()
			conns := memory.NewConnectionStore()
			store := storage.NewLocalStore(webhookCfg.MediaDir())

			oauthUC := usecase.NewOAuthUseCase(api, conns,
				slackCfg.ClientID(), slackCfg.ClientSecret(),
				usecase.WithRedirectURI(slackCfg.RedirectURI()),
				usecase.WithScopes(slackCfg.Scopes()),
				usecase.WithUserScopes(slackCfg.UserScopes()),
			)
			directoryUC := usecase.NewDirectoryUseCase(api)
			eventUC := usecase.NewEventUseCase(api, store,
				usecase.WithBotToken(slackCfg.BotToken()),
				usecase.WithAttachmentPolicy(webhookCfg.AttachmentPolicy()),
				usecase.WithDownloadLimit(webhookCfg.DownloadConcurrency()),
			)
			uc := usecase.New(oauthUC, directoryUC, eventUC)

			httpHandler := httpctrl.New(uc,
				httpctrl.WithSigningSecret(slackCfg.SigningSecret()),
			)
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
