package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hatchpad/slackbridge/pkg/domain/types"
	"github.com/hatchpad/slackbridge/pkg/usecase"
	"github.com/hatchpad/slackbridge/pkg/utils/errutil"
)

// bearerToken extracts the caller-supplied admin token. The directory routes
// only relay it upstream; it is never validated or stored here.
func bearerToken(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", goerr.New("missing Authorization header")
	}

	token := strings.TrimPrefix(auth, "Bearer ")
	if token == auth || token == "" {
		return "", goerr.New("Authorization header must be a bearer token")
	}

	return token, nil
}

// decodeBody decodes an optional JSON request body. An empty body is fine;
// malformed JSON is not.
func decodeBody(r *http.Request, out any) error {
	err := json.NewDecoder(r.Body).Decode(out)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return goerr.Wrap(err, "failed to decode request body")
}

func usersPageHandler(uc *usecase.DirectoryUseCase) http.HandlerFunc {
	type request struct {
		PageToken types.PageCursor `json:"page_token"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, err := bearerToken(r)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusUnauthorized)
			return
		}

		var req request
		if err := decodeBody(r, &req); err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
			return
		}

		page, err := uc.ListUsersPage(ctx, token, req.PageToken)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, statusFromError(err))
			return
		}

		respondJSON(w, page)
	}
}

func appsPerUserHandler(uc *usecase.DirectoryUseCase) http.HandlerFunc {
	type request struct {
		OrgID     types.OrgID      `json:"org_id"`
		User      types.UserID     `json:"user"`
		PageToken types.PageCursor `json:"page_token"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, err := bearerToken(r)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusUnauthorized)
			return
		}

		var req request
		if err := decodeBody(r, &req); err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
			return
		}
		if err := req.OrgID.Validate(); err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
			return
		}
		if err := req.User.Validate(); err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
			return
		}

		page, err := uc.ListAppsPerUser(ctx, token, req.OrgID, req.User, req.PageToken)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, statusFromError(err))
			return
		}

		respondJSON(w, page)
	}
}
