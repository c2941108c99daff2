package model

import "github.com/hatchpad/slackbridge/pkg/domain/types"

// UserName holds the display name parts of a workspace member.
type UserName struct {
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
	FullName   string `json:"fullName"`
}

// UserRecord is one workspace member as returned to the downstream consumer.
// PrimaryEmail is nil when the upstream profile carries no email field; it is
// never synthesized. Profile fields that are not explicitly modeled are
// preserved verbatim in ExtraData.
type UserRecord struct {
	OrgID        types.OrgID    `json:"org_id"`
	IntName      string         `json:"int_name"`
	UserID       types.UserID   `json:"user_id"`
	PrimaryEmail *string        `json:"primary_email,omitempty"`
	IsAdmin      bool           `json:"is_admin"`
	Suspended    bool           `json:"suspended"`
	Name         UserName       `json:"name"`
	ExtraData    map[string]any `json:"extra_data,omitempty"`
}

// UserPage is one page of the user listing.
type UserPage struct {
	Users      []*UserRecord    `json:"users"`
	NextCursor types.PageCursor `json:"page_token,omitempty"`
}
