package model

import "github.com/hatchpad/slackbridge/pkg/domain/types"

// AppRecord is one third-party app connection request for a user. Fields not
// explicitly modeled are preserved verbatim in ExtraData.
type AppRecord struct {
	OrgID       types.OrgID    `json:"org_id"`
	IntName     string         `json:"int_name"`
	UserName    string         `json:"user_name"`
	UserID      types.UserID   `json:"user_id"`
	ClientID    types.AppID    `json:"client_id"`
	DisplayText string         `json:"display_text"`
	NativeApp   bool           `json:"native_app"`
	Scopes      []string       `json:"scopes"`
	IsGrantApp  bool           `json:"is_grant_app"`
	ExtraData   map[string]any `json:"extra_data,omitempty"`
}

// AppPage is one page of the per-user app request listing.
type AppPage struct {
	Apps       []*AppRecord     `json:"apps"`
	NextCursor types.PageCursor `json:"page_token,omitempty"`
}
