package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hatchpad/slackbridge/pkg/domain/model"
	"github.com/hatchpad/slackbridge/pkg/domain/types"
	"github.com/hatchpad/slackbridge/pkg/service/slackapi"
)

// DirectoryUseCase proxies the paginated admin listings through a
// caller-supplied bearer token. Both listings are instances of one pattern:
// fetch one page, reshape records, hand the upstream cursor back verbatim.
type DirectoryUseCase struct {
	api       *slackapi.Client
	pageLimit int
}

func NewDirectoryUseCase(api *slackapi.Client) *DirectoryUseCase {
	return &DirectoryUseCase{
		api:       api,
		pageLimit: slackapi.DefaultPageLimit,
	}
}

// ListUsersPage fetches one page of workspace members. The first raw record
// of each fetched page is the workspace bot account: upstream has already
// counted it against the cursor, so it is dropped from the results without
// any local cursor arithmetic.
func (uc *DirectoryUseCase) ListUsersPage(ctx context.Context, token string, cursor types.PageCursor) (*model.UserPage, error) {
	resp, err := uc.api.ListUsers(ctx, token, cursor.String(), uc.pageLimit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list workspace users")
	}

	members := resp.Members
	if len(members) > 0 {
		members = members[1:]
	}

	users := make([]*model.UserRecord, 0, len(members))
	for _, m := range members {
		users = append(users, newUserRecord(m))
	}

	return &model.UserPage{
		Users:      users,
		NextCursor: types.PageCursor(resp.NextCursor()),
	}, nil
}

// ListAppsPerUser fetches one page of pending app requests for a user's
// workspace.
func (uc *DirectoryUseCase) ListAppsPerUser(ctx context.Context, token string, orgID types.OrgID, userID types.UserID, cursor types.PageCursor) (*model.AppPage, error) {
	if err := orgID.Validate(); err != nil {
		return nil, err
	}
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	resp, err := uc.api.ListAppRequests(ctx, token, orgID.String(), cursor.String(), uc.pageLimit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list app requests", goerr.V("org_id", orgID))
	}

	apps := make([]*model.AppRecord, 0, len(resp.AppRequests))
	for _, r := range resp.AppRequests {
		apps = append(apps, newAppRecord(orgID, userID, r))
	}

	return &model.AppPage{
		Apps:       apps,
		NextCursor: types.PageCursor(resp.NextCursor()),
	}, nil
}

// newUserRecord reshapes a raw member. Absent optional fields stay absent:
// PrimaryEmail is copied only when the upstream profile carried an email.
func newUserRecord(m slackapi.Member) *model.UserRecord {
	rec := &model.UserRecord{
		OrgID:     types.OrgID(m.TeamID),
		IntName:   m.Name,
		UserID:    types.UserID(m.ID),
		IsAdmin:   m.IsAdmin,
		Suspended: m.Deleted,
		Name: model.UserName{
			GivenName:  m.Profile.DisplayName,
			FamilyName: m.Profile.LastName,
			FullName:   strings.TrimSpace(m.Profile.FirstName + " " + m.Profile.LastName),
		},
		ExtraData: m.Profile.Extra,
	}

	if m.Profile.Email != nil {
		email := *m.Profile.Email
		rec.PrimaryEmail = &email
	}

	return rec
}

// newAppRecord reshapes a raw app request. The org and user from the inbound
// request are fallbacks when the upstream record does not name them.
func newAppRecord(orgID types.OrgID, userID types.UserID, r slackapi.AppRequest) *model.AppRecord {
	scopes := make([]string, 0, len(r.Scopes))
	for _, s := range r.Scopes {
		scopes = append(scopes, s.Name)
	}

	rec := &model.AppRecord{
		OrgID:       orgID,
		IntName:     r.App.Name,
		UserName:    r.User.Name,
		UserID:      userID,
		ClientID:    types.AppID(r.App.ID),
		DisplayText: r.App.Description,
		NativeApp:   r.App.IsInternal,
		Scopes:      scopes,
		IsGrantApp:  r.App.IsAppDirectoryApproved,
		ExtraData:   r.Extra,
	}

	if r.TeamID != "" {
		rec.OrgID = types.OrgID(r.TeamID)
	}
	if r.User.ID != "" {
		rec.UserID = types.UserID(r.User.ID)
	}

	return rec
}
