package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/hatchpad/slackbridge/pkg/service/slackapi"
)

type Slack struct {
	appID         string
	clientID      string
	clientSecret  string
	botToken      string
	signingSecret string
	redirectURI   string
	scopes        string
	userScopes    string
	apiBaseURL    string
	authorizeURL  string
	tokenURL      string
	timeout       time.Duration
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-app-id",
			Usage:       "Slack app ID",
			Category:    "Slack",
			Destination: &x.appID,
			Sources:     cli.EnvVars("SLACKBRIDGE_SLACK_APP_ID"),
		},
		&cli.StringFlag{
			Name:        "slack-client-id",
			Usage:       "Slack OAuth client ID",
			Category:    "Slack",
			Destination: &x.clientID,
			Sources:     cli.EnvVars("SLACKBRIDGE_SLACK_CLIENT_ID"),
		},
		&cli.StringFlag{
			Name:        "slack-client-secret",
			Usage:       "Slack OAuth client secret",
			Category:    "Slack",
			Destination: &x.clientSecret,
			Sources:     cli.EnvVars("SLACKBRIDGE_SLACK_CLIENT_SECRET"),
		},
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (for file downloads)",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("SLACKBRIDGE_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack Signing Secret (for webhook verification)",
			Category:    "Slack",
			Destination: &x.signingSecret,
			Sources:     cli.EnvVars("SLACKBRIDGE_SLACK_SIGNING_SECRET"),
		},
		&cli.StringFlag{
			Name:        "slack-redirect-uri",
			Usage:       "Redirect URI registered with the Slack app",
			Category:    "Slack",
			Destination: &x.redirectURI,
			Sources:     cli.EnvVars("SLACKBRIDGE_SLACK_REDIRECT_URI"),
		},
		&cli.StringFlag{
			Name:        "slack-scopes",
			Usage:       "Comma-separated bot scopes for the authorize URL",
			Category:    "Slack",
			Value:       "users:read,users:read.email",
			Destination: &x.scopes,
			Sources:     cli.EnvVars("SLACKBRIDGE_SLACK_SCOPES"),
		},
		&cli.StringFlag{
			Name:        "slack-user-scopes",
			Usage:       "Comma-separated user scopes for the authorize URL",
			Category:    "Slack",
			Destination: &x.userScopes,
			Sources:     cli.EnvVars("SLACKBRIDGE_SLACK_USER_SCOPES"),
		},
		&cli.StringFlag{
			Name:        "slack-api-base-url",
			Usage:       "Override the Slack Web API base URL",
			Category:    "Slack",
			Value:       slackapi.DefaultBaseURL,
			Destination: &x.apiBaseURL,
			Sources:     cli.EnvVars("SLACKBRIDGE_SLACK_API_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        "slack-authorize-url",
			Usage:       "Override the Slack OAuth authorize URL",
			Category:    "Slack",
			Value:       slackapi.DefaultAuthorizeURL,
			Destination: &x.authorizeURL,
			Sources:     cli.EnvVars("SLACKBRIDGE_SLACK_AUTHORIZE_URL"),
		},
		&cli.StringFlag{
			Name:        "slack-token-url",
			Usage:       "Override the Slack OAuth token URL",
			Category:    "Slack",
			Value:       slackapi.DefaultTokenURL,
			Destination: &x.tokenURL,
			Sources:     cli.EnvVars("SLACKBRIDGE_SLACK_TOKEN_URL"),
		},
		&cli.DurationFlag{
			Name:        "slack-timeout",
			Usage:       "Timeout for upstream Slack API calls",
			Category:    "Slack",
			Value:       slackapi.DefaultTimeout,
			Destination: &x.timeout,
			Sources:     cli.EnvVars("SLACKBRIDGE_SLACK_TIMEOUT"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("app-id", x.appID),
		slog.Int("client-id.len", len(x.clientID)),
		slog.Int("client-secret.len", len(x.clientSecret)),
		slog.Int("bot-token.len", len(x.botToken)),
		slog.Int("signing-secret.len", len(x.signingSecret)),
		slog.String("redirect-uri", x.redirectURI),
		slog.String("scopes", x.scopes),
		slog.String("api-base-url", x.apiBaseURL),
	)
}

// Validate checks the OAuth credentials needed by the relay endpoints.
func (x *Slack) Validate() error {
	if x.clientID == "" || x.clientSecret == "" {
		return goerr.New("Slack OAuth configuration is required: set --slack-client-id and --slack-client-secret")
	}
	return nil
}

// Configure builds the upstream API client from the flags.
func (x *Slack) Configure() *slackapi.Client {
	return slackapi.New(
		slackapi.WithBaseURL(x.apiBaseURL),
		slackapi.WithAuthorizeURL(x.authorizeURL),
		slackapi.WithTokenURL(x.tokenURL),
		slackapi.WithTimeout(x.timeout),
	)
}

func (x *Slack) AppID() string         { return x.appID }
func (x *Slack) ClientID() string      { return x.clientID }
func (x *Slack) ClientSecret() string  { return x.clientSecret }
func (x *Slack) BotToken() string      { return x.botToken }
func (x *Slack) SigningSecret() string { return x.signingSecret }
func (x *Slack) RedirectURI() string   { return x.redirectURI }

// Scopes returns the bot scopes as a list.
func (x *Slack) Scopes() []string {
	return splitScopes(x.scopes)
}

// UserScopes returns the user scopes as a list.
func (x *Slack) UserScopes() []string {
	return splitScopes(x.userScopes)
}

// IsWebhookConfigured checks if the events webhook can verify signatures.
func (x *Slack) IsWebhookConfigured() bool {
	return x.signingSecret != ""
}

func splitScopes(raw string) []string {
	if raw == "" {
		return nil
	}

	var scopes []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}
