package http

import (
	"errors"
	"net/http"

	"github.com/hatchpad/slackbridge/pkg/service/slackapi"
)

// statusFromError maps the upstream error taxonomy onto gateway status
// codes. A deadline hit is 504, any other upstream trouble is 502, and
// everything else is an internal error.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, slackapi.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, slackapi.ErrTransport),
		errors.Is(err, slackapi.ErrUpstreamStatus),
		errors.Is(err, slackapi.ErrUpstreamRejected):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
