package draft

import (
	"context"
	"fmt"
	"sync"
	"time"

	"reported/backend/media"

	"github.com/apex/log"
)

// AddAttachments classifies and processes picked files one at a time, in
// order. Within one attachment the metadata extraction and the plate
// recognition run concurrently; across attachments processing stays
// sequential so the recognizer is never hammered by a burst. A failure in
// one attachment never stops the rest.
func (d *Draft) AddAttachments(ctx context.Context, files [][]byte) {
	for _, data := range files {
		a := NewAttachment(data)

		d.mu.Lock()
		d.edit()
		d.attachments = append(d.attachments, a)
		d.mu.Unlock()

		d.process(ctx, a)
	}
}

func (d *Draft) process(ctx context.Context, a *Attachment) {
	if a.Kind == media.Unrecognized {
		a.setErr(media.ErrUnrecognized)
		log.Warnf("Skipping unrecognized attachment of %d bytes", len(a.Data))
		return
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		d.applyMetadata(a)
	}()

	if a.Kind == media.Image && d.Recognizer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			plate, err := d.ReadPlate(ctx, a)
			if err != nil {
				log.Warnf("Plate recognition failed: %v", err)
				return
			}
			d.mu.Lock()
			if d.plate == "" {
				d.plate = plate
			}
			d.mu.Unlock()
		}()
	}

	wg.Wait()
}

// applyMetadata extracts capture location and time and uses them as defaults
// for fields the user has not touched. Extraction failure is expected for
// stripped files and only logged.
func (d *Draft) applyMetadata(a *Attachment) {
	if d.Extractor == nil {
		return
	}
	meta, err := d.Extractor.Extract(a.Data)
	if err != nil {
		log.Infof("No usable metadata in attachment: %v", err)
		meta = media.Metadata{}
	}

	if meta.HasLocation {
		d.SetLocation(meta.Latitude, meta.Longitude)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.createDateSet {
		taken := time.Now()
		if meta.HasTime {
			taken = meta.Taken
		}
		d.createDate = media.FormatLocalClock(taken)
	}
}

// ReadPlate returns the plate guess for an attachment, calling the
// recognizer at most once per attachment for the lifetime of the session.
// Only classified images and videos reach the recognizer; anything else is
// a classification error.
func (d *Draft) ReadPlate(ctx context.Context, a *Attachment) (string, error) {
	a.plateOnce.Do(func() {
		if a.Kind == media.Unrecognized {
			a.plateErr = media.ErrUnrecognized
			return
		}
		image := a.Data
		if a.Kind == media.Video {
			if d.Frames == nil {
				a.plateErr = fmt.Errorf("no frame grabber for video plates")
				return
			}
			frame, err := d.Frames.FirstFrame(ctx, a.Data)
			if err != nil {
				a.plateErr = err
				return
			}
			image = frame
		}
		a.plate, a.plateErr = d.Recognizer.Recognize(ctx, media.OrientUpright(image))
	})
	return a.plate, a.plateErr
}

// RemoveAttachment drops an attachment from the draft and frees its preview.
func (d *Draft) RemoveAttachment(a *Attachment) {
	d.mu.Lock()
	d.edit()
	for i, cur := range d.attachments {
		if cur == a {
			d.attachments = append(d.attachments[:i], d.attachments[i+1:]...)
			break
		}
	}
	d.mu.Unlock()

	a.Release()
}
