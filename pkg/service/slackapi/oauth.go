package slackapi

import (
	"context"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// TokenResponse is the oauth.v2.access envelope.
type TokenResponse struct {
	apiResponse
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
	BotUserID   string `json:"bot_user_id"`
	AppID       string `json:"app_id"`
	Team        struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	AuthedUser struct {
		ID          string `json:"id"`
		Scope       string `json:"scope"`
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	} `json:"authed_user"`
}

// ExchangeCode exchanges an authorization code for an access token at the
// configured token endpoint. grant_type is fixed to the authorization-code
// type.
func (c *Client) ExchangeCode(ctx context.Context, clientID, clientSecret, code, redirectURI string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("client_id", clientID)
	form.Set("client_secret", clientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	if redirectURI != "" {
		form.Set("redirect_uri", redirectURI)
	}

	var out TokenResponse
	if err := c.postForm(ctx, c.tokenURL, "", form, &out); err != nil {
		return nil, goerr.Wrap(err, "token exchange failed")
	}

	return &out, nil
}

// AuthorizeURL builds the OAuth redirect URL. Pure string construction: same
// inputs always yield the same URL, scopes joined by Slack's comma separator.
func (c *Client) AuthorizeURL(clientID string, scopes, userScopes []string) string {
	params := url.Values{}
	params.Set("client_id", clientID)
	params.Set("scope", strings.Join(scopes, ","))
	if len(userScopes) > 0 {
		params.Set("user_scope", strings.Join(userScopes, ","))
	}

	return c.authorizeURL + "?" + params.Encode()
}
