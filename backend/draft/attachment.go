// Package draft models one complaint form session: attachments, extraction
// results, and the submit lifecycle.
package draft

import (
	"os"
	"sync"

	"reported/backend/media"

	"github.com/apex/log"
)

// Attachment is one picked file plus everything derived from it during the
// session. The plate guess is memoized here so repeated reads never hit the
// recognizer twice for the same bytes.
type Attachment struct {
	Data []byte
	Kind media.Kind

	mu          sync.Mutex
	err         error
	previewPath string
	released    bool

	plateOnce sync.Once
	plate     string
	plateErr  error
}

func NewAttachment(data []byte) *Attachment {
	return &Attachment{
		Data: data,
		Kind: media.Classify(data),
	}
}

// Err returns the terminal processing error for this attachment, if any. An
// unrecognized file stays in the draft so the user can see and remove it;
// this is where the UI reads what went wrong.
func (a *Attachment) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

func (a *Attachment) setErr(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.err = err
}

// Preview returns the path of a temp file holding displayable bytes for this
// attachment, writing it on first use. For videos the caller supplies a
// poster frame; images preview as themselves.
func (a *Attachment) Preview(poster []byte) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.released {
		return "", os.ErrClosed
	}
	if a.previewPath != "" {
		return a.previewPath, nil
	}

	content := a.Data
	if len(poster) > 0 {
		content = poster
	}
	f, err := os.CreateTemp("", "attachment-preview-*")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	a.previewPath = f.Name()
	return a.previewPath, nil
}

// Release frees the preview resource. Safe to call more than once; only the
// first call removes the file.
func (a *Attachment) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.released {
		return
	}
	a.released = true
	if a.previewPath != "" {
		if err := os.Remove(a.previewPath); err != nil {
			log.Warnf("Failed to remove preview %s: %v", a.previewPath, err)
		}
		a.previewPath = ""
	}
}

// Released reports whether the preview resource has been freed.
func (a *Attachment) Released() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.released
}
