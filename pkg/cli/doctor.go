package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/hatchpad/slackbridge/pkg/cli/config"
)

// cmdDoctor prints a human-readable report of the runtime configuration.
// Useful before pointing a Slack app at a fresh deployment.
func cmdDoctor() *cli.Command {
	var slackCfg config.Slack
	var webhookCfg config.Webhook

	flags := append(slackCfg.Flags(), webhookCfg.Flags()...)

	return &cli.Command{
		Name:  "doctor",
		Usage: "Check runtime configuration",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ok := color.New(color.FgGreen, color.Bold).SprintFunc()
			ng := color.New(color.FgRed, color.Bold).SprintFunc()
			warn := color.New(color.FgYellow).SprintFunc()

			check := func(name string, pass bool, hint string) bool {
				if pass {
					fmt.Printf("  %s %s\n", ok("[OK]"), name)
					return true
				}
				fmt.Printf("  %s %s: %s\n", ng("[NG]"), name, hint)
				return false
			}
			note := func(name string, pass bool, hint string) {
				if pass {
					fmt.Printf("  %s %s\n", ok("[OK]"), name)
				} else {
					fmt.Printf("  %s %s: %s\n", warn("[--]"), name, hint)
				}
			}

			fmt.Println("OAuth relay:")
			healthy := check("client ID", slackCfg.ClientID() != "", "set --slack-client-id")
			healthy = check("client secret", slackCfg.ClientSecret() != "", "set --slack-client-secret") && healthy
			note("redirect URI", slackCfg.RedirectURI() != "", "redirect URI not set, token exchange omits it")

			fmt.Println("Events webhook:")
			healthy = check("signing secret", slackCfg.SigningSecret() != "", "set --slack-signing-secret") && healthy
			note("bot token", slackCfg.BotToken() != "", "bot token not set, downloads will be unauthenticated")

			fmt.Println("Attachment storage:")
			if err := webhookCfg.Configure(c); err != nil {
				healthy = check("webhook config", false, err.Error()) && healthy
			} else {
				healthy = check("webhook config", true, "") && healthy
				healthy = check("media directory", dirWritable(webhookCfg.MediaDir()), "not writable: "+webhookCfg.MediaDir()) && healthy
			}

			if !healthy {
				return goerr.New("configuration check failed")
			}

			fmt.Println(ok("All checks passed"))
			return nil
		},
	}
}

// dirWritable checks the directory with a temp file, creating it if needed.
func dirWritable(dir string) bool {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}
