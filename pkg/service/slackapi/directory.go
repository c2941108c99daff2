package slackapi

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

// DefaultPageLimit is the page size requested from the listing endpoints.
const DefaultPageLimit = 200

type paginationMetadata struct {
	NextCursor string `json:"next_cursor"`
}

// MemberProfile carries the profile block of a workspace member. Fields not
// modeled here are kept verbatim in Extra so nothing is silently dropped.
// Email is a pointer: nil means the upstream profile omitted the field.
type MemberProfile struct {
	Email       *string        `json:"email"`
	DisplayName string         `json:"display_name"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	RealName    string         `json:"real_name"`
	Extra       map[string]any `json:"-"`
}

var knownProfileFields = []string{"email", "display_name", "first_name", "last_name", "real_name"}

func (p *MemberProfile) UnmarshalJSON(data []byte) error {
	type plain MemberProfile
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range knownProfileFields {
		delete(raw, k)
	}

	*p = MemberProfile(known)
	if len(raw) > 0 {
		p.Extra = raw
	}
	return nil
}

// Member is one raw entry of users.list.
type Member struct {
	ID      string        `json:"id"`
	TeamID  string        `json:"team_id"`
	Name    string        `json:"name"`
	Deleted bool          `json:"deleted"`
	IsAdmin bool          `json:"is_admin"`
	IsBot   bool          `json:"is_bot"`
	Profile MemberProfile `json:"profile"`
}

// UsersListResponse is the users.list envelope.
type UsersListResponse struct {
	apiResponse
	Members          []Member           `json:"members"`
	ResponseMetadata paginationMetadata `json:"response_metadata"`
}

// NextCursor returns the continuation cursor for the following page, empty
// when the listing is exhausted.
func (r *UsersListResponse) NextCursor() string {
	return r.ResponseMetadata.NextCursor
}

// ListUsers fetches one page of workspace members. The cursor form key is
// omitted entirely when cursor is empty: upstream distinguishes "no cursor
// supplied" from an empty cursor value.
func (c *Client) ListUsers(ctx context.Context, token, cursor string, limit int) (*UsersListResponse, error) {
	form := url.Values{}
	if cursor != "" {
		form.Set("cursor", cursor)
	}
	if limit > 0 {
		form.Set("limit", strconv.Itoa(limit))
	}

	var out UsersListResponse
	if err := c.postForm(ctx, c.baseURL+"/users.list", token, form, &out); err != nil {
		return nil, goerr.Wrap(err, "users.list failed")
	}

	return &out, nil
}

// AppRequestScope is one OAuth scope named in an app request.
type AppRequestScope struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsSensitive bool   `json:"is_sensitive"`
	TokenType   string `json:"token_type"`
}

// AppRequestApp is the app block of an app request.
type AppRequestApp struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Description            string `json:"description"`
	IsAppDirectoryApproved bool   `json:"is_app_directory_approved"`
	IsInternal             bool   `json:"is_internal"`
}

// AppRequestUser is the requesting user block of an app request.
type AppRequestUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AppRequest is one raw entry of admin.apps.requests.list. Unmodeled fields
// land in Extra.
type AppRequest struct {
	ID     string            `json:"id"`
	App    AppRequestApp     `json:"app"`
	User   AppRequestUser    `json:"user"`
	TeamID string            `json:"team_id"`
	Scopes []AppRequestScope `json:"scopes"`
	Extra  map[string]any    `json:"-"`
}

var knownAppRequestFields = []string{"id", "app", "user", "team_id", "scopes"}

func (r *AppRequest) UnmarshalJSON(data []byte) error {
	type plain AppRequest
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range knownAppRequestFields {
		delete(raw, k)
	}

	*r = AppRequest(known)
	if len(raw) > 0 {
		r.Extra = raw
	}
	return nil
}

// AppRequestsResponse is the admin.apps.requests.list envelope.
type AppRequestsResponse struct {
	apiResponse
	AppRequests      []AppRequest       `json:"app_requests"`
	ResponseMetadata paginationMetadata `json:"response_metadata"`
}

// NextCursor returns the continuation cursor for the following page.
func (r *AppRequestsResponse) NextCursor() string {
	return r.ResponseMetadata.NextCursor
}

// ListAppRequests fetches one page of pending app requests for a workspace.
// Cursor rules match ListUsers.
func (c *Client) ListAppRequests(ctx context.Context, token, teamID, cursor string, limit int) (*AppRequestsResponse, error) {
	form := url.Values{}
	if teamID != "" {
		form.Set("team_id", teamID)
	}
	if cursor != "" {
		form.Set("cursor", cursor)
	}
	if limit > 0 {
		form.Set("limit", strconv.Itoa(limit))
	}

	var out AppRequestsResponse
	if err := c.postForm(ctx, c.baseURL+"/admin.apps.requests.list", token, form, &out); err != nil {
		return nil, goerr.Wrap(err, "admin.apps.requests.list failed")
	}

	return &out, nil
}
