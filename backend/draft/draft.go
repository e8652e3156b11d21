package draft

import (
	"context"
	"sync"

	"reported/backend/geocode"
	"reported/backend/media"
	"reported/backend/server/api"

	"github.com/apex/log"
)

// State is the form lifecycle phase.
type State int

const (
	Editing State = iota
	Uploading
	Persisted
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Uploading:
		return "uploading"
	case Persisted:
		return "persisted"
	default:
		return "unknown"
	}
}

// FindingAddress is shown while a reverse geocode is in flight.
const FindingAddress = "Finding Address..."

// Default position when neither metadata nor geolocation yields one.
const (
	DefaultLatitude  = 40.7128
	DefaultLongitude = -74.006
)

type MetadataExtractor interface {
	Extract(data []byte) (media.Metadata, error)
}

type PlateRecognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

type FrameGrabber interface {
	FirstFrame(ctx context.Context, video []byte) ([]byte, error)
}

type AddressFinder interface {
	ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error)
}

type Locator interface {
	Locate(ctx context.Context) (latitude, longitude float64, err error)
}

type Submitter interface {
	Submit(ctx context.Context, args *api.SubmitArgs) (*api.Submission, error)
}

// Draft is the mutable form aggregate. Identity fields survive a successful
// submit; incident fields and attachments reset. All methods are safe for
// concurrent use.
type Draft struct {
	Extractor  MetadataExtractor
	Recognizer PlateRecognizer
	Frames     FrameGrabber
	Addresses  AddressFinder
	Locations  Locator
	Submitter  Submitter

	mu    sync.Mutex
	state State

	identity api.UserArgs

	plate            string
	typeOfUser       string
	typeOfComplaint  string
	description      string
	canShare         bool
	latitude         float64
	longitude        float64
	locationSet      bool
	formattedAddress string
	createDate       string
	createDateSet    bool

	attachments []*Attachment
	history     []*api.Submission

	debouncer *geocode.Debouncer
}

func New() *Draft {
	d := &Draft{}
	d.debouncer = &geocode.Debouncer{
		Lookup: func(latitude, longitude float64) (string, error) {
			if d.Addresses == nil {
				return "", nil
			}
			return d.Addresses.ReverseGeocode(context.Background(), latitude, longitude)
		},
		Deliver: func(address string, err error) {
			if err != nil {
				log.Warnf("Reverse geocode failed: %v", err)
				return
			}
			d.mu.Lock()
			d.formattedAddress = address
			d.mu.Unlock()
		},
	}
	return d
}

func (d *Draft) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// edit is called under d.mu by every mutator: a persisted form becomes
// editable again on the first change.
func (d *Draft) edit() {
	if d.state == Persisted {
		d.state = Editing
	}
}

func (d *Draft) SetIdentity(identity api.UserArgs) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.edit()
	d.identity = identity
}

func (d *Draft) SetPlate(plate string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.edit()
	d.plate = plate
}

func (d *Draft) Plate() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.plate
}

func (d *Draft) SetComplaint(typeOfUser, typeOfComplaint, description string, canShare bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.edit()
	d.typeOfUser = typeOfUser
	d.typeOfComplaint = typeOfComplaint
	d.description = description
	d.canShare = canShare
}

// SetLocation updates the coordinates and kicks off a debounced address
// lookup. Rapid calls collapse so only the last location's address lands.
func (d *Draft) SetLocation(latitude, longitude float64) {
	d.mu.Lock()
	d.edit()
	d.latitude = latitude
	d.longitude = longitude
	d.locationSet = true
	d.formattedAddress = FindingAddress
	d.mu.Unlock()

	d.debouncer.Update(latitude, longitude)
}

func (d *Draft) Location() (latitude, longitude float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.latitude, d.longitude
}

func (d *Draft) FormattedAddress() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.formattedAddress
}

func (d *Draft) SetCreateDate(wallClock string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.edit()
	d.createDate = wallClock
	d.createDateSet = true
}

func (d *Draft) CreateDate() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.createDate
}

// History lists the submissions persisted during this session, newest first.
func (d *Draft) History() []*api.Submission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*api.Submission(nil), d.history...)
}

func (d *Draft) Attachments() []*Attachment {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Attachment(nil), d.attachments...)
}

// EnsureLocation fills the location from device geolocation when nothing has
// set it yet, falling back to the default city center coordinates.
func (d *Draft) EnsureLocation(ctx context.Context) {
	d.mu.Lock()
	if d.locationSet {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	latitude, longitude := DefaultLatitude, DefaultLongitude
	if d.Locations != nil {
		lat, lng, err := d.Locations.Locate(ctx)
		if err != nil {
			log.Warnf("Geolocation failed, using default location: %v", err)
		} else {
			latitude, longitude = lat, lng
		}
	}
	d.SetLocation(latitude, longitude)
}
