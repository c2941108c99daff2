package usecase

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack/slackevents"

	slackmodel "github.com/hatchpad/slackbridge/pkg/domain/model/slack"
)

func TestAttachmentPolicyValidate(t *testing.T) {
	gt.NoError(t, PolicySaveAll.Validate())
	gt.NoError(t, PolicyImagesOnly.Validate())
	gt.Error(t, AttachmentPolicy("").Validate())
	gt.Error(t, AttachmentPolicy("everything").Validate())
}

func TestAttachmentPolicyAllows(t *testing.T) {
	image := slackmodel.NewFileFromEvent(slackevents.File{Mimetype: "image/png"})
	document := slackmodel.NewFileFromEvent(slackevents.File{Mimetype: "application/pdf"})

	gt.Bool(t, PolicySaveAll.allows(image)).True()
	gt.Bool(t, PolicySaveAll.allows(document)).True()
	gt.Bool(t, PolicyImagesOnly.allows(image)).True()
	gt.Bool(t, PolicyImagesOnly.allows(document)).False()
}
