package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack/slackevents"
	"golang.org/x/sync/errgroup"

	"github.com/hatchpad/slackbridge/pkg/domain/interfaces"
	slackmodel "github.com/hatchpad/slackbridge/pkg/domain/model/slack"
	"github.com/hatchpad/slackbridge/pkg/service/slackapi"
	"github.com/hatchpad/slackbridge/pkg/utils/errutil"
	"github.com/hatchpad/slackbridge/pkg/utils/logging"
	"github.com/hatchpad/slackbridge/pkg/utils/safe"
)

// AttachmentPolicy selects which attachments get persisted.
type AttachmentPolicy string

const (
	// PolicySaveAll persists every attachment regardless of type.
	PolicySaveAll AttachmentPolicy = "save_all"
	// PolicyImagesOnly persists only attachments with an image mimetype.
	PolicyImagesOnly AttachmentPolicy = "images_only"
)

// Validate checks the policy is a known value.
func (p AttachmentPolicy) Validate() error {
	switch p {
	case PolicySaveAll, PolicyImagesOnly:
		return nil
	default:
		return goerr.New("unknown attachment policy", goerr.V("policy", string(p)))
	}
}

func (p AttachmentPolicy) allows(f slackmodel.File) bool {
	if p == PolicyImagesOnly {
		return f.IsImage()
	}
	return true
}

// DefaultDownloadLimit bounds concurrent attachment downloads per event.
const DefaultDownloadLimit = 4

// EventUseCase handles verified Events API callbacks. Attachment persistence
// is fire-and-forget from the webhook's point of view: one bad file never
// blocks its siblings and never fails the HTTP acknowledgment.
type EventUseCase struct {
	api           *slackapi.Client
	files         interfaces.FileStore
	botToken      string
	policy        AttachmentPolicy
	downloadLimit int
}

// EventOption is a functional option for EventUseCase
type EventOption func(*EventUseCase)

// WithBotToken sets the bearer token used for private file downloads
func WithBotToken(token string) EventOption {
	return func(uc *EventUseCase) {
		uc.botToken = token
	}
}

// WithAttachmentPolicy overrides the default save_all policy
func WithAttachmentPolicy(policy AttachmentPolicy) EventOption {
	return func(uc *EventUseCase) {
		uc.policy = policy
	}
}

// WithDownloadLimit overrides the concurrent download bound
func WithDownloadLimit(n int) EventOption {
	return func(uc *EventUseCase) {
		if n > 0 {
			uc.downloadLimit = n
		}
	}
}

func NewEventUseCase(api *slackapi.Client, files interfaces.FileStore, options ...EventOption) *EventUseCase {
	uc := &EventUseCase{
		api:           api,
		files:         files,
		policy:        PolicySaveAll,
		downloadLimit: DefaultDownloadLimit,
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}

// HandleEvent processes one verified Events API callback. Unknown event
// types are logged and ignored; they are not errors from the webhook's
// perspective.
func (uc *EventUseCase) HandleEvent(ctx context.Context, event *slackevents.EventsAPIEvent) error {
	logger := logging.From(ctx)

	if event.Type != slackevents.CallbackEvent {
		logger.Warn("skipping non-callback slack event", "type", event.Type)
		return nil
	}

	switch ev := event.InnerEvent.Data.(type) {
	case *slackevents.MessageEvent:
		if len(ev.Files) == 0 {
			return nil
		}

		files := make([]slackmodel.File, 0, len(ev.Files))
		for _, f := range ev.Files {
			files = append(files, slackmodel.NewFileFromEvent(f))
		}

		logger.Info("processing message attachments",
			"channel", ev.Channel,
			"user", ev.User,
			"count", len(files),
		)
		uc.saveAttachments(ctx, files)
		return nil

	default:
		logger.Warn("skipping unsupported slack inner event",
			"type", event.InnerEvent.Type,
		)
		return nil
	}
}

// saveAttachments downloads and persists files with bounded concurrency.
// Failures are logged per file and never propagated.
func (uc *EventUseCase) saveAttachments(ctx context.Context, files []slackmodel.File) {
	var eg errgroup.Group
	eg.SetLimit(uc.downloadLimit)

	for _, f := range files {
		f := f
		eg.Go(func() error {
			if err := uc.saveAttachment(ctx, f); err != nil {
				errutil.Handle(ctx, err, "failed to save attachment")
			}
			return nil
		})
	}

	_ = eg.Wait()
}

func (uc *EventUseCase) saveAttachment(ctx context.Context, f slackmodel.File) error {
	logger := logging.From(ctx)

	if !uc.policy.allows(f) {
		logger.Info("skipping attachment by policy",
			"file_id", f.ID(),
			"mimetype", f.Mimetype(),
			"policy", string(uc.policy),
		)
		return nil
	}

	url := f.DownloadURL()
	if url == "" {
		return goerr.New("attachment has no download URL", goerr.V("file_id", f.ID()))
	}

	body, err := uc.api.Download(ctx, url, uc.botToken)
	if err != nil {
		return goerr.Wrap(err, "failed to download attachment", goerr.V("file_id", f.ID()))
	}
	defer safe.Close(ctx, body)

	path, err := uc.files.Save(ctx, f.Basename(), body)
	if err != nil {
		return goerr.Wrap(err, "failed to persist attachment", goerr.V("file_id", f.ID()))
	}

	logger.Info("attachment saved",
		"file_id", f.ID(),
		"path", path,
		"mimetype", f.Mimetype(),
		"size", f.Size(),
	)
	return nil
}
