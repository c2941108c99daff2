package http

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hatchpad/slackbridge/pkg/usecase"
	"github.com/hatchpad/slackbridge/pkg/utils/errutil"
)

// authorizeHandler returns the OAuth consent URL without redirecting. The
// caller is expected to send the browser there itself.
func authorizeHandler(uc *usecase.OAuthUseCase) http.HandlerFunc {
	type response struct {
		Status bool   `json:"status"`
		URL    string `json:"url"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, response{
			Status: true,
			URL:    uc.AuthorizeURL(),
		})
	}
}

// postAuthorizeHandler completes the authorization-code exchange. The grant
// is returned to the caller and never persisted here.
func postAuthorizeHandler(uc *usecase.OAuthUseCase) http.HandlerFunc {
	type protectedData struct {
		AccessToken string `json:"access_token"`
		BotUserID   string `json:"bot_user_id"`
	}
	type metadata struct {
		Scope string `json:"scope"`
		AppID string `json:"app_id"`
	}
	type response struct {
		Status        bool          `json:"status"`
		ProtectedData protectedData `json:"protected_data"`
		ConsentUser   string        `json:"consent_user"`
		Metadata      metadata      `json:"metadata"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		code := r.URL.Query().Get("code")
		if code == "" {
			errutil.HandleHTTP(ctx, w, goerr.New("missing code query parameter"), http.StatusBadRequest)
			return
		}

		grant, err := uc.ExchangeCode(ctx, code)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, statusFromError(err))
			return
		}

		respondJSON(w, response{
			Status: true,
			ProtectedData: protectedData{
				AccessToken: grant.AccessToken,
				BotUserID:   grant.BotUserID,
			},
			ConsentUser: grant.ConsentUserID,
			Metadata: metadata{
				Scope: grant.Scope,
				AppID: grant.AppID,
			},
		})
	}
}

// verifyHandler reports the process-wide connection flag.
func verifyHandler(uc *usecase.OAuthUseCase) http.HandlerFunc {
	type response struct {
		ConnectionStatus bool `json:"connection_status"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, response{
			ConnectionStatus: uc.IsConnected(r.Context()),
		})
	}
}
