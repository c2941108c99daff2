package http_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/hatchpad/slackbridge/pkg/utils/logging"
)

func TestAccessLogCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	old := logging.Default()
	logging.SetDefault(logging.New(&buf, slog.LevelInfo, logging.FormatJSON))
	defer logging.SetDefault(old)

	srv, _ := newTestServer(t, nil, "test-signing-secret")

	req := httptest.NewRequest(http.MethodGet, "/verify", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.String(t, buf.String()).Contains(`"msg":"access"`)
	gt.String(t, buf.String()).Contains(`"request_id"`)
}
