package draft

import (
	"context"
	"fmt"

	"reported/backend/media"
	"reported/backend/server/api"
)

// Snapshot builds the submission payload from the current form state.
// CreateDate goes out as true UTC even though the form held a local
// wall-clock string.
func (d *Draft) Snapshot() (*api.SubmitArgs, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	createDate := d.createDate
	if createDate != "" {
		t, err := media.ParseLocalClock(createDate)
		if err != nil {
			return nil, fmt.Errorf("bad time of report %q: %w", createDate, err)
		}
		createDate = media.FormatISO(t)
	}

	files := make([][]byte, 0, len(d.attachments))
	for _, a := range d.attachments {
		files = append(files, a.Data)
	}

	return &api.SubmitArgs{
		UserArgs: d.identity,

		Plate:                d.plate,
		TypeOfUser:           d.typeOfUser,
		TypeOfComplaint:      d.typeOfComplaint,
		ReportDescription:    d.description,
		CanBeSharedPublicly:  d.canShare,
		Latitude:             d.latitude,
		Longitude:            d.longitude,
		FormattedAddress:     d.formattedAddress,
		AttachmentDataBase64: files,
		CreateDate:           createDate,
	}, nil
}

// Submit sends the form as one atomic snapshot. On success the incident
// fields and attachments reset while identity fields stay, and the draft
// reads as persisted until the next edit. On failure everything is left
// untouched so the user can retry.
func (d *Draft) Submit(ctx context.Context) (*api.Submission, error) {
	if d.Submitter == nil {
		return nil, fmt.Errorf("no submitter configured")
	}

	args, err := d.Snapshot()
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	if d.state == Uploading {
		d.mu.Unlock()
		return nil, fmt.Errorf("a submission is already in flight")
	}
	d.state = Uploading
	d.mu.Unlock()

	submission, err := d.Submitter.Submit(ctx, args)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.state = Editing
		return nil, err
	}

	for _, a := range d.attachments {
		a.Release()
	}
	d.attachments = nil
	d.plate = ""
	d.typeOfUser = ""
	d.typeOfComplaint = ""
	d.description = ""
	d.canShare = false
	d.createDate = ""
	d.createDateSet = false

	d.history = append([]*api.Submission{submission}, d.history...)
	d.state = Persisted
	return submission, nil
}
