package slack_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack/slackevents"

	"github.com/hatchpad/slackbridge/pkg/domain/model/slack"
)

func TestNewFileFromEvent(t *testing.T) {
	t.Run("prefers direct download URL", func(t *testing.T) {
		f := slack.NewFileFromEvent(slackevents.File{
			ID:                 "F001",
			Name:               "photo.jpg",
			Mimetype:           "image/jpeg",
			URLPrivate:         "https://files.example.com/inline/photo.jpg",
			URLPrivateDownload: "https://files.example.com/download/photo.jpg",
		})

		gt.Value(t, f.DownloadURL()).Equal("https://files.example.com/download/photo.jpg")
	})

	t.Run("falls back to inline URL", func(t *testing.T) {
		f := slack.NewFileFromEvent(slackevents.File{
			ID:         "F002",
			URLPrivate: "https://files.example.com/inline/doc.pdf",
		})

		gt.Value(t, f.DownloadURL()).Equal("https://files.example.com/inline/doc.pdf")
	})
}

func TestFileIsImage(t *testing.T) {
	gt.Bool(t, slack.NewFileFromEvent(slackevents.File{Mimetype: "image/png"}).IsImage()).True()
	gt.Bool(t, slack.NewFileFromEvent(slackevents.File{Mimetype: "image/jpeg"}).IsImage()).True()
	gt.Bool(t, slack.NewFileFromEvent(slackevents.File{Mimetype: "application/pdf"}).IsImage()).False()
	gt.Bool(t, slack.NewFileFromEvent(slackevents.File{}).IsImage()).False()
}

func TestFileBasename(t *testing.T) {
	t.Run("from name", func(t *testing.T) {
		f := slack.NewFileFromEvent(slackevents.File{Name: "report.pdf"})
		gt.Value(t, f.Basename()).Equal("report.pdf")
	})

	t.Run("name stripped of directories", func(t *testing.T) {
		f := slack.NewFileFromEvent(slackevents.File{Name: "dir/sub/report.pdf"})
		gt.Value(t, f.Basename()).Equal("report.pdf")
	})

	t.Run("from download URL when unnamed", func(t *testing.T) {
		f := slack.NewFileFromEvent(slackevents.File{
			URLPrivateDownload: "https://files.example.com/download/archive.zip",
		})
		gt.Value(t, f.Basename()).Equal("archive.zip")
	})

	t.Run("falls back to file ID", func(t *testing.T) {
		f := slack.NewFileFromEvent(slackevents.File{ID: "F003"})
		gt.Value(t, f.Basename()).Equal("F003")
	})
}
