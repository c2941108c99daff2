package slackapi

import (
	"context"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hatchpad/slackbridge/pkg/utils/safe"
)

// Download fetches a private file URL with the bearer token. The caller owns
// the returned body. Error classification matches postForm.
func (c *Client) Download(ctx context.Context, rawURL, token string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create download request", goerr.V("url", rawURL))
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(err, rawURL)
	}

	if resp.StatusCode != http.StatusOK {
		safe.Close(ctx, resp.Body)
		return nil, goerr.Wrap(ErrUpstreamStatus, "failed to download file",
			goerr.V("status", resp.StatusCode), goerr.V("url", rawURL))
	}

	return resp.Body, nil
}
