package draft

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"reported/backend/media"
	"reported/backend/server/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46, 0x00}
	mp4Bytes  = []byte{
		0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
		'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00,
		'i', 's', 'o', 'm', 'm', 'p', '4', '1',
	}
)

type fakeExtractor struct {
	meta media.Metadata
	err  error
}

func (f *fakeExtractor) Extract(data []byte) (media.Metadata, error) {
	return f.meta, f.err
}

type fakeRecognizer struct {
	mu    sync.Mutex
	calls int
	plate string
	err   error
}

func (f *fakeRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.plate, f.err
}

func (f *fakeRecognizer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSubmitter struct {
	mu       sync.Mutex
	lastArgs *api.SubmitArgs
	err      error
}

func (f *fakeSubmitter) Submit(ctx context.Context, args *api.SubmitArgs) (*api.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastArgs = args
	if f.err != nil {
		return nil, f.err
	}
	return &api.Submission{ObjectId: "sub-1", MedallionNo: args.Plate}, nil
}

func identity() api.UserArgs {
	return api.UserArgs{
		Email:      "jane@example.com",
		Password:   "hunter22",
		FirstName:  "Jane",
		LastName:   "Doe",
		Building:   "350",
		StreetName: "5th Ave",
		Borough:    "Manhattan",
		Phone:      "2125551234",
	}
}

func TestReadPlateMemoized(t *testing.T) {
	rec := &fakeRecognizer{plate: "6Y12"}
	d := New()
	d.Recognizer = rec

	a := NewAttachment(jpegBytes)
	for i := 0; i < 4; i++ {
		plate, err := d.ReadPlate(context.Background(), a)
		require.NoError(t, err)
		assert.Equal(t, "6Y12", plate)
	}
	assert.Equal(t, 1, rec.callCount(), "recognizer must be called once per attachment")
}

func TestReadPlateRejectsUnrecognizedInput(t *testing.T) {
	rec := &fakeRecognizer{plate: "BOGUS"}
	d := New()
	d.Recognizer = rec

	a := NewAttachment([]byte("definitely not a media file"))
	plate, err := d.ReadPlate(context.Background(), a)
	require.ErrorIs(t, err, media.ErrUnrecognized)
	assert.Empty(t, plate)
	assert.Equal(t, 0, rec.callCount(), "unclassified bytes must never reach the recognizer")
}

func TestReadPlateVideoNeedsFrameGrabber(t *testing.T) {
	rec := &fakeRecognizer{plate: "BOGUS"}
	d := New()
	d.Recognizer = rec

	a := NewAttachment(mp4Bytes)
	_, err := d.ReadPlate(context.Background(), a)
	require.Error(t, err)
	assert.Equal(t, 0, rec.callCount())
}

func TestAddAttachmentsSurfacesClassificationError(t *testing.T) {
	d := New()
	d.Extractor = &fakeExtractor{}
	d.Recognizer = &fakeRecognizer{plate: "6Y12"}

	d.AddAttachments(context.Background(), [][]byte{[]byte("not media"), jpegBytes})

	attachments := d.Attachments()
	require.Len(t, attachments, 2)
	assert.ErrorIs(t, attachments[0].Err(), media.ErrUnrecognized)
	assert.NoError(t, attachments[1].Err())
	assert.Equal(t, "6Y12", d.Plate())
}

func TestAddAttachmentsFillsDefaults(t *testing.T) {
	taken := time.Date(2026, 8, 30, 18, 5, 0, 0, time.UTC)
	d := New()
	d.Extractor = &fakeExtractor{meta: media.Metadata{
		Latitude:    40.7359,
		Longitude:   -73.9911,
		HasLocation: true,
		Taken:       taken,
		HasTime:     true,
	}}
	d.Recognizer = &fakeRecognizer{plate: "6Y12"}

	d.AddAttachments(context.Background(), [][]byte{jpegBytes})

	lat, lng := d.Location()
	assert.Equal(t, 40.7359, lat)
	assert.Equal(t, -73.9911, lng)
	assert.Equal(t, media.FormatLocalClock(taken), d.CreateDate())
	assert.Equal(t, "6Y12", d.Plate())
	assert.Len(t, d.Attachments(), 1)
}

func TestAddAttachmentsExtractionFailureIsLocal(t *testing.T) {
	d := New()
	d.Extractor = &fakeExtractor{err: media.ErrNoMetadata}
	d.Recognizer = &fakeRecognizer{err: fmt.Errorf("recognizer down")}

	d.AddAttachments(context.Background(), [][]byte{jpegBytes, jpegBytes})

	// Both attachments survive their extraction failures.
	assert.Len(t, d.Attachments(), 2)
	// Capture time falls back to now.
	assert.NotEmpty(t, d.CreateDate())
	assert.Empty(t, d.Plate())
}

func TestUserValuesAreNotOverwritten(t *testing.T) {
	d := New()
	d.Extractor = &fakeExtractor{meta: media.Metadata{
		Taken:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		HasTime: true,
	}}
	d.Recognizer = &fakeRecognizer{plate: "GUESSED"}

	d.SetPlate("TYPED")
	d.SetCreateDate("2026-08-30T14:05:00")
	d.AddAttachments(context.Background(), [][]byte{jpegBytes})

	assert.Equal(t, "TYPED", d.Plate())
	assert.Equal(t, "2026-08-30T14:05:00", d.CreateDate())
}

func TestPreviewReleaseExactlyOnce(t *testing.T) {
	a := NewAttachment(jpegBytes)

	path, err := a.Preview(nil)
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err, "preview file must exist")

	a.Release()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "preview file must be removed")
	assert.True(t, a.Released())

	// Second release is a no-op, and no new preview can be made.
	a.Release()
	_, err = a.Preview(nil)
	assert.Error(t, err)
}

func TestRemoveAttachmentReleases(t *testing.T) {
	d := New()
	a := NewAttachment(jpegBytes)

	d.mu.Lock()
	d.attachments = append(d.attachments, a)
	d.mu.Unlock()

	d.RemoveAttachment(a)
	assert.Empty(t, d.Attachments())
	assert.True(t, a.Released())
}

func TestSubmitSuccessResetsIncidentFields(t *testing.T) {
	sub := &fakeSubmitter{}
	d := New()
	d.Submitter = sub
	d.Extractor = &fakeExtractor{}

	d.SetIdentity(identity())
	d.SetPlate("6Y12")
	d.SetComplaint("Cyclist", "Blocked the bike lane", "parked in lane", true)
	d.SetLocation(40.7128, -74.006)
	d.SetCreateDate("2026-08-30T14:05:00")
	d.AddAttachments(context.Background(), [][]byte{jpegBytes})
	attachment := d.Attachments()[0]

	submission, err := d.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sub-1", submission.ObjectId)

	assert.Equal(t, Persisted, d.State())
	assert.Empty(t, d.Plate())
	assert.Empty(t, d.CreateDate())
	assert.Empty(t, d.Attachments())
	assert.True(t, attachment.Released())

	// The persisted submission lands at the head of the session history.
	history := d.History()
	require.Len(t, history, 1)
	assert.Equal(t, "sub-1", history[0].ObjectId)

	// Identity survives for the next complaint.
	args, err := d.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", args.Email)
	assert.Equal(t, "Jane", args.FirstName)

	// The next edit flips the draft back to editing.
	d.SetPlate("1A23")
	assert.Equal(t, Editing, d.State())
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	sub := &fakeSubmitter{err: fmt.Errorf("server unavailable")}
	d := New()
	d.Submitter = sub
	d.Extractor = &fakeExtractor{}

	d.SetIdentity(identity())
	d.SetPlate("6Y12")
	d.SetCreateDate("2026-08-30T14:05:00")
	d.AddAttachments(context.Background(), [][]byte{jpegBytes})

	_, err := d.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, Editing, d.State())
	assert.Equal(t, "6Y12", d.Plate())
	assert.Len(t, d.Attachments(), 1)
	assert.False(t, d.Attachments()[0].Released())
}

func TestSubmitWithoutSubmitter(t *testing.T) {
	d := New()
	d.SetIdentity(identity())

	_, err := d.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, Editing, d.State())
}

func TestSnapshotSendsUTC(t *testing.T) {
	d := New()
	d.SetIdentity(identity())
	d.SetCreateDate("2026-08-30T14:05:00")

	args, err := d.Snapshot()
	require.NoError(t, err)

	local, perr := media.ParseLocalClock("2026-08-30T14:05:00")
	require.NoError(t, perr)
	assert.Equal(t, media.FormatISO(local), args.CreateDate)

	// The wire value round-trips back to the same widget string.
	parsed, perr := media.ParseISO(args.CreateDate)
	require.NoError(t, perr)
	assert.Equal(t, "2026-08-30T14:05:00", media.FormatLocalClock(parsed))
}
