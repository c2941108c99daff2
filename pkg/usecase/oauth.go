package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hatchpad/slackbridge/pkg/domain/interfaces"
	"github.com/hatchpad/slackbridge/pkg/domain/model"
	"github.com/hatchpad/slackbridge/pkg/service/slackapi"
	"github.com/hatchpad/slackbridge/pkg/utils/logging"
)

// OAuthUseCase drives the authorization-code exchange and owns the
// process-wide connection flag. Authorized is sticky at the process level:
// once the flag is set it stays set regardless of later failures in
// unrelated exchanges. ConnectionStore is the seam for a per-session
// redesign.
type OAuthUseCase struct {
	api          *slackapi.Client
	conns        interfaces.ConnectionStore
	clientID     string
	clientSecret string
	redirectURI  string
	scopes       []string
	userScopes   []string
}

// OAuthOption is a functional option for OAuthUseCase
type OAuthOption func(*OAuthUseCase)

// WithRedirectURI sets the redirect URI sent with the token exchange
func WithRedirectURI(uri string) OAuthOption {
	return func(uc *OAuthUseCase) {
		uc.redirectURI = uri
	}
}

// WithScopes sets the bot scopes requested in the authorization URL
func WithScopes(scopes []string) OAuthOption {
	return func(uc *OAuthUseCase) {
		uc.scopes = scopes
	}
}

// WithUserScopes sets the user scopes requested in the authorization URL
func WithUserScopes(scopes []string) OAuthOption {
	return func(uc *OAuthUseCase) {
		uc.userScopes = scopes
	}
}

func NewOAuthUseCase(api *slackapi.Client, conns interfaces.ConnectionStore, clientID, clientSecret string, options ...OAuthOption) *OAuthUseCase {
	uc := &OAuthUseCase{
		api:          api,
		conns:        conns,
		clientID:     clientID,
		clientSecret: clientSecret,
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}

// AuthorizeURL builds the OAuth redirect URL from configuration. No network
// call; same configuration always yields the same URL.
func (uc *OAuthUseCase) AuthorizeURL() string {
	return uc.api.AuthorizeURL(uc.clientID, uc.scopes, uc.userScopes)
}

// ExchangeCode converts an authorization code into an OAuthGrant. On success
// the connection flag flips true as a side effect. Failures surface the
// slackapi error taxonomy untouched so the boundary can map them.
func (uc *OAuthUseCase) ExchangeCode(ctx context.Context, code string) (*model.OAuthGrant, error) {
	if code == "" {
		return nil, goerr.New("authorization code is required")
	}

	resp, err := uc.api.ExchangeCode(ctx, uc.clientID, uc.clientSecret, code, uc.redirectURI)
	if err != nil {
		return nil, goerr.Wrap(err, "oauth exchange failed")
	}

	grant := &model.OAuthGrant{
		AccessToken:   resp.AccessToken,
		BotUserID:     resp.BotUserID,
		ConsentUserID: resp.AuthedUser.ID,
		Scope:         resp.Scope,
		AppID:         resp.AppID,
	}

	uc.conns.MarkConnected(ctx)

	logging.From(ctx).Info("oauth exchange succeeded",
		"app_id", grant.AppID,
		"bot_user_id", grant.BotUserID,
		"consent_user", grant.ConsentUserID,
		"scope", grant.Scope,
	)

	return grant, nil
}

// IsConnected reads the sticky connection flag.
func (uc *OAuthUseCase) IsConnected(ctx context.Context) bool {
	return uc.conns.IsConnected(ctx)
}
