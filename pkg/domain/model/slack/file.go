package slack

import (
	"path"
	"strings"

	"github.com/slack-go/slack/slackevents"
)

// File represents a Slack file attachment pending download.
type File struct {
	id          string
	name        string
	mimetype    string
	filetype    string
	size        int
	downloadURL string
	permalink   string
}

// NewFileFromEvent creates a File from a message-event attachment.
func NewFileFromEvent(f slackevents.File) File {
	return File{
		id:          f.ID,
		name:        f.Name,
		mimetype:    f.Mimetype,
		filetype:    f.Filetype,
		size:        f.Size,
		downloadURL: bestDownloadURL(f),
		permalink:   f.Permalink,
	}
}

func (f File) ID() string          { return f.id }
func (f File) Name() string        { return f.name }
func (f File) Mimetype() string    { return f.mimetype }
func (f File) Filetype() string    { return f.filetype }
func (f File) Size() int           { return f.size }
func (f File) DownloadURL() string { return f.downloadURL }
func (f File) Permalink() string   { return f.permalink }

// IsImage reports whether the attachment declares an image mimetype.
func (f File) IsImage() bool {
	return strings.HasPrefix(f.mimetype, "image/")
}

// Basename returns the local filename to store the attachment under. It
// falls back to the last element of the download URL when the upstream
// metadata has no name, then to the file ID.
func (f File) Basename() string {
	if f.name != "" {
		return path.Base(f.name)
	}
	if f.downloadURL != "" {
		return path.Base(f.downloadURL)
	}
	return f.id
}

// bestDownloadURL prefers the direct download URL over the inline one.
func bestDownloadURL(f slackevents.File) string {
	if f.URLPrivateDownload != "" {
		return f.URLPrivateDownload
	}
	return f.URLPrivate
}
