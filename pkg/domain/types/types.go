package types

import "github.com/m-mizutani/goerr/v2"

// OrgID identifies a workspace (Slack team ID)
type OrgID string

func (x OrgID) String() string { return string(x) }

func (x OrgID) Validate() error {
	if x == "" {
		return goerr.New("org ID is required")
	}
	return nil
}

// UserID identifies a workspace member
type UserID string

func (x UserID) String() string { return string(x) }

func (x UserID) Validate() error {
	if x == "" {
		return goerr.New("user ID is required")
	}
	return nil
}

// AppID identifies a third-party application
type AppID string

func (x AppID) String() string { return string(x) }

// PageCursor is an opaque continuation token issued by the upstream API.
// An empty cursor means "no continuation": it is never sent upstream.
type PageCursor string

func (x PageCursor) String() string { return string(x) }

func (x PageCursor) IsEmpty() bool { return x == "" }
