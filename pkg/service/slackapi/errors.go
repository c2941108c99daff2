package slackapi

import "github.com/m-mizutani/goerr/v2"

// Upstream call outcomes. The four kinds are distinct and never conflated:
// a timeout is not a generic transport failure, and an HTTP-level success
// with ok=false is not an HTTP error. Callers branch with errors.Is.
var (
	ErrTimeout          = goerr.New("upstream request timed out")
	ErrTransport        = goerr.New("upstream transport failure")
	ErrUpstreamStatus   = goerr.New("upstream returned an error status")
	ErrUpstreamRejected = goerr.New("upstream rejected the call")
)
