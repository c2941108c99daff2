package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	httpctrl "github.com/hatchpad/slackbridge/pkg/controller/http"
	"github.com/hatchpad/slackbridge/pkg/repository/memory"
	"github.com/hatchpad/slackbridge/pkg/service/slackapi"
	"github.com/hatchpad/slackbridge/pkg/service/storage"
	"github.com/hatchpad/slackbridge/pkg/usecase"
)

func getJSON(t *testing.T, srv *httpctrl.Server, path string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), out)).Required()
	}
	return rec
}

func TestAuthorizeEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, nil, "secret")

	var resp struct {
		Status bool   `json:"status"`
		URL    string `json:"url"`
	}
	rec := getJSON(t, srv, "/authorize", &resp)

	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Bool(t, resp.Status).True()
	gt.String(t, resp.URL).Contains("client_id=test-client-id")
	gt.String(t, resp.URL).Contains("scope=")

	// Same configuration yields the same URL
	var again struct {
		URL string `json:"url"`
	}
	getJSON(t, srv, "/authorize", &again)
	gt.Value(t, again.URL).Equal(resp.URL)
}

func TestPostAuthorizeEndpoint(t *testing.T) {
	t.Run("missing code", func(t *testing.T) {
		srv, _ := newTestServer(t, nil, "secret")

		rec := getJSON(t, srv, "/post_authorize", nil)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
		gt.String(t, rec.Body.String()).Contains(`"status":false`)
	})

	t.Run("successful exchange flips verify", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.Value(t, r.URL.Path).Equal("/oauth.v2.access")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"ok": true,
				"access_token": "xoxb-granted",
				"bot_user_id": "U0BOT",
				"app_id": "A0APP",
				"scope": "users:read,chat:write",
				"authed_user": {"id": "U0GRANTER"}
			}`))
		}))
		defer upstream.Close()

		srv, _ := newTestServer(t, upstream, "secret")

		// Unauthorized before any exchange
		var status struct {
			ConnectionStatus bool `json:"connection_status"`
		}
		getJSON(t, srv, "/verify", &status)
		gt.Bool(t, status.ConnectionStatus).False()

		var resp struct {
			Status        bool `json:"status"`
			ProtectedData struct {
				AccessToken string `json:"access_token"`
				BotUserID   string `json:"bot_user_id"`
			} `json:"protected_data"`
			ConsentUser string `json:"consent_user"`
			Metadata    struct {
				Scope string `json:"scope"`
				AppID string `json:"app_id"`
			} `json:"metadata"`
		}
		rec := getJSON(t, srv, "/post_authorize?code=tmp-code-123", &resp)

		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.Bool(t, resp.Status).True()
		gt.Value(t, resp.ProtectedData.AccessToken).Equal("xoxb-granted")
		gt.Value(t, resp.ProtectedData.BotUserID).Equal("U0BOT")
		gt.Value(t, resp.ConsentUser).Equal("U0GRANTER")
		gt.Value(t, resp.Metadata.Scope).Equal("users:read,chat:write")
		gt.Value(t, resp.Metadata.AppID).Equal("A0APP")

		// Authorized after the exchange
		getJSON(t, srv, "/verify", &status)
		gt.Bool(t, status.ConnectionStatus).True()
	})

	t.Run("rejected code maps to 502", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ok": false, "error": "invalid_code"}`))
		}))
		defer upstream.Close()

		srv, _ := newTestServer(t, upstream, "secret")

		rec := getJSON(t, srv, "/post_authorize?code=expired", nil)
		gt.Value(t, rec.Code).Equal(http.StatusBadGateway)
		gt.String(t, rec.Body.String()).Contains("invalid_code")
	})

	t.Run("upstream timeout maps to 504", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
		}))
		defer upstream.Close()

		api := slackapi.New(
			slackapi.WithTokenURL(upstream.URL+"/oauth.v2.access"),
			slackapi.WithTimeout(30*time.Millisecond),
		)
		conns := memory.NewConnectionStore()
		uc := usecase.New(
			usecase.NewOAuthUseCase(api, conns, "cid", "csecret"),
			usecase.NewDirectoryUseCase(api),
			usecase.NewEventUseCase(api, storage.NewLocalStore(t.TempDir())),
		)
		srv := httpctrl.New(uc, httpctrl.WithSigningSecret("secret"))

		rec := getJSON(t, srv, "/post_authorize?code=slow", nil)
		gt.Value(t, rec.Code).Equal(http.StatusGatewayTimeout)

		// A failed exchange must not mark the process connected
		var status struct {
			ConnectionStatus bool `json:"connection_status"`
		}
		getJSON(t, srv, "/verify", &status)
		gt.Bool(t, status.ConnectionStatus).False()
	})

	t.Run("connected flag is sticky across later failures", func(t *testing.T) {
		ok := true
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if ok {
				_, _ = w.Write([]byte(`{"ok": true, "access_token": "xoxb", "authed_user": {"id": "U1"}}`))
			} else {
				_, _ = w.Write([]byte(`{"ok": false, "error": "invalid_code"}`))
			}
		}))
		defer upstream.Close()

		srv, _ := newTestServer(t, upstream, "secret")

		rec := getJSON(t, srv, "/post_authorize?code=good", nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		ok = false
		rec = getJSON(t, srv, "/post_authorize?code=bad", nil)
		gt.Value(t, rec.Code).Equal(http.StatusBadGateway)

		var status struct {
			ConnectionStatus bool `json:"connection_status"`
		}
		getJSON(t, srv, "/verify", &status)
		gt.Bool(t, status.ConnectionStatus).True()
	})
}
