package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack/slackevents"

	"github.com/hatchpad/slackbridge/pkg/usecase"
	"github.com/hatchpad/slackbridge/pkg/utils/async"
	"github.com/hatchpad/slackbridge/pkg/utils/errutil"
	"github.com/hatchpad/slackbridge/pkg/utils/logging"
	"github.com/hatchpad/slackbridge/pkg/utils/safe"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const eventBodyKey contextKey = "event_body"

// maxEventBody caps webhook payloads. Events API payloads are small; this
// guards against unbounded reads before the signature is checked.
const maxEventBody = 1 << 20

// verifySignature checks the HMAC-SHA256 request signature. The signing
// string is "v0:" + timestamp + ":" + body, and the comparison is constant
// time. Requests older than five minutes are rejected to prevent replays.
func verifySignature(signingSecret, timestamp, signature string, body []byte) error {
	if timestamp == "" {
		return goerr.New("missing timestamp")
	}

	if signature == "" {
		return goerr.New("missing signature")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return goerr.Wrap(err, "invalid timestamp")
	}

	now := time.Now().Unix()
	if now-ts > 60*5 {
		return goerr.New("timestamp too old", goerr.V("timestamp", timestamp), goerr.V("now", now))
	}

	baseString := fmt.Sprintf("v0:%s:%s", timestamp, body)
	mac := hmac.New(sha256.New, []byte(signingSecret))
	if _, err := mac.Write([]byte(baseString)); err != nil {
		return goerr.Wrap(err, "failed to compute HMAC")
	}
	expectedSignature := "v0=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expectedSignature), []byte(signature)) {
		return goerr.New("signature mismatch")
	}

	return nil
}

// SignatureMiddleware verifies the request signature before any parsing
// happens. The verified body is buffered into the context and restored on
// the request so downstream handlers read exactly the signed bytes.
func SignatureMiddleware(signingSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBody))
			if err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
				return
			}
			defer func() {
				if err := r.Body.Close(); err != nil {
					logging.From(ctx).Error("failed to close request body", "error", err)
				}
			}()

			timestamp := r.Header.Get("X-Slack-Request-Timestamp")
			signature := r.Header.Get("X-Slack-Signature")

			if err := verifySignature(signingSecret, timestamp, signature, body); err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "signature verification failed"), http.StatusUnauthorized)
				return
			}

			ctx = context.WithValue(ctx, eventBodyKey, body)
			r.Body = io.NopCloser(bytes.NewBuffer(body))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// eventsHandler handles Events API webhook requests. Callback events are
// acknowledged immediately and processed in the background so the response
// stays inside the sender's delivery deadline.
func eventsHandler(uc *usecase.EventUseCase) http.HandlerFunc {
	type ackResponse struct {
		Status string `json:"status"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		body, err := io.ReadAll(r.Body)
		if err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
			return
		}

		event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
		if err != nil {
			if !json.Valid(body) {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse event payload"), http.StatusBadRequest)
				return
			}

			// The signature already checked out. An event kind this build
			// cannot map must still be acknowledged, or the platform retries
			// and eventually disables the subscription.
			logging.From(ctx).Warn("failed to map event payload", "error", err)
			respondJSON(w, ackResponse{Status: "ok"})
			return
		}

		switch event.Type {
		case slackevents.URLVerification:
			var challenge *slackevents.ChallengeResponse
			if err := json.Unmarshal(body, &challenge); err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to unmarshal challenge"), http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(http.StatusOK)
			safe.Write(ctx, w, []byte(challenge.Challenge))
			return

		case slackevents.CallbackEvent:
			respondJSON(w, ackResponse{Status: "ok"})

			async.Dispatch(ctx, func(ctx context.Context) error {
				logging.From(ctx).Info("processing callback event",
					"type", event.Type,
					"team_id", event.TeamID,
				)

				if err := uc.HandleEvent(ctx, &event); err != nil {
					return goerr.Wrap(err, "failed to handle event")
				}

				return nil
			})

		default:
			logging.From(ctx).Warn("unknown event type", "type", event.Type)
			respondJSON(w, ackResponse{Status: "ok"})
		}
	}
}
