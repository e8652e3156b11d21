package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"reported/backend/media"
	"reported/backend/server/api"
	"reported/common"

	"github.com/apex/log"
	"github.com/google/uuid"
)

// ReqNumberPending is the placeholder service request number carried by a
// submission until it has been filed with 311.
const ReqNumberPending = "N/A until submitted to 311"

// Per-kind attachment cap. Extra attachments are dropped, not rejected.
const maxAttachmentsPerKind = 3

func validateSubmission(args *api.SubmitArgs) error {
	if args.Plate == "" {
		return &ValidationError{Field: "plate"}
	}
	if args.TypeOfUser == "" {
		return &ValidationError{Field: "typeofuser"}
	}
	if args.TypeOfComplaint == "" {
		return &ValidationError{Field: "typeofcomplaint"}
	}
	if args.Latitude == 0 {
		return &ValidationError{Field: "latitude"}
	}
	if args.Longitude == 0 {
		return &ValidationError{Field: "longitude"}
	}
	if args.CreateDate == "" {
		return &ValidationError{Field: "CreateDate"}
	}
	return nil
}

type stagedAttachment struct {
	slot string
	ext  string
	data []byte
}

// stageAttachments classifies the raw uploads and keeps at most three images
// and three videos, in arrival order. Images are oriented upright and
// downscaled before storage; videos are stored as sent. Unrecognized payloads
// are skipped.
func stageAttachments(uploads [][]byte) []stagedAttachment {
	staged := make([]stagedAttachment, 0, 2*maxAttachmentsPerKind)
	images, videos := 0, 0
	for _, data := range uploads {
		switch media.Classify(data) {
		case media.Image:
			if images >= maxAttachmentsPerKind {
				continue
			}
			staged = append(staged, stagedAttachment{
				slot: "photoData" + strconv.Itoa(images),
				ext:  media.Ext(data),
				data: media.NormalizeImage(data),
			})
			images++
		case media.Video:
			if videos >= maxAttachmentsPerKind {
				continue
			}
			staged = append(staged, stagedAttachment{
				slot: "videoData" + strconv.Itoa(videos),
				ext:  media.Ext(data),
				data: data,
			})
			videos++
		default:
			log.Warnf("Skipping unrecognized attachment of %d bytes", len(data))
		}
	}
	return staged
}

// SubmitDraft validates and persists one complaint. The reporter identity is
// validated and upserted first, then the incident fields are checked, then
// attachments and the submission row are written in a single transaction so a
// submission never exists without its attachments.
func SubmitDraft(dbc *sql.DB, args *api.SubmitArgs, versionNumber int) (*api.Submission, error) {
	user, err := SaveUser(dbc, &args.UserArgs)
	if err != nil {
		return nil, err
	}

	if err := validateSubmission(args); err != nil {
		return nil, err
	}

	timeOfReport, err := media.ParseISO(args.CreateDate)
	if err != nil {
		log.Errorf("Bad CreateDate %q: %v", args.CreateDate, err)
		return nil, err
	}

	typeOfReport := args.TypeOfReport
	if typeOfReport == "" {
		typeOfReport = "complaint"
	}
	selectedReport := 0
	if typeOfReport == "complaint" {
		selectedReport = 1
	}
	typeOfUser := strings.ToLower(args.TypeOfUser)

	staged := stageAttachments(args.AttachmentDataBase64)

	submission := &api.Submission{
		ObjectId:   uuid.NewString(),
		Username:   args.Email,
		FirstName:  args.FirstName,
		LastName:   args.LastName,
		Building:   args.Building,
		StreetName: args.StreetName,
		Apt:        args.Apt,
		Borough:    args.Borough,
		Phone:      args.Phone,
		Testify:    args.Testify,

		TypeOfReport:        typeOfReport,
		SelectedReport:      selectedReport,
		MedallionNo:         args.Plate,
		TypeOfComplaint:     args.TypeOfComplaint,
		TypeOfUser:          typeOfUser,
		Passenger:           typeOfUser == "passenger",
		LocationNumber:      1,
		Latitude:            strconv.FormatFloat(args.Latitude, 'f', -1, 64),
		Longitude:           strconv.FormatFloat(args.Longitude, 'f', -1, 64),
		Latitude1:           args.Latitude,
		Longitude1:          args.Longitude,
		Loc1Address:         args.FormattedAddress,
		TimeOfReport:        timeOfReport.UTC().Format("2006-01-02T15:04:05.000Z"),
		TimeOfReported:      timeOfReport.UTC().Format("2006-01-02T15:04:05.000Z"),
		ReportDescription:   args.ReportDescription,
		CanBeSharedPublicly: args.CanBeSharedPublicly,
		Status:              0,
		OperatingSystem:     "web",
		VersionNumber:       versionNumber,
		ReqNumber:           ReqNumberPending,
	}

	ctx := context.Background()
	tx, err := dbc.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		log.Errorf("Error creating transaction: %v", err)
		return nil, err
	}
	defer tx.Rollback()

	// Attachments go in before the submission row.
	for _, a := range staged {
		id := uuid.NewString()
		result, err := tx.ExecContext(ctx, `INSERT
			INTO attachments (id, submission_id, slot, ext, data)
			VALUES (?, ?, ?, ?, ?)`,
			id, submission.ObjectId, a.slot, a.ext, a.data)
		common.LogResult("saveAttachment", result, err, true)
		if err != nil {
			log.Errorf("Error inserting attachment: %v", err)
			return nil, err
		}
		setAttachmentURL(submission, a.slot, AttachmentURL(id))
	}

	result, err := tx.ExecContext(ctx, `INSERT
		INTO submissions (id, user_id, username, first_name, last_name, building, street_name, apt, borough, phone, testify,
			typeofreport, selected_report, medallion_no, typeofcomplaint, typeofuser, passenger, location_number,
			latitude, longitude, latitude1, longitude1, loc1_address, timeofreport, timeofreported,
			report_description, can_be_shared_publicly, status, operating_system, version_number, reqnumber)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		submission.ObjectId, user.ObjectId, submission.Username,
		submission.FirstName, submission.LastName, submission.Building, submission.StreetName,
		submission.Apt, submission.Borough, submission.Phone, submission.Testify,
		submission.TypeOfReport, submission.SelectedReport, submission.MedallionNo,
		submission.TypeOfComplaint, submission.TypeOfUser, submission.Passenger, submission.LocationNumber,
		submission.Latitude, submission.Longitude, submission.Latitude1, submission.Longitude1,
		submission.Loc1Address, timeOfReport.UTC(), timeOfReport.UTC(),
		submission.ReportDescription, submission.CanBeSharedPublicly, submission.Status,
		submission.OperatingSystem, submission.VersionNumber, submission.ReqNumber)
	common.LogResult("saveSubmission", result, err, true)
	if err != nil {
		log.Errorf("Error inserting submission: %v", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Errorf("Error committing the transaction: %v", err)
		return nil, err
	}
	return submission, nil
}

func setAttachmentURL(s *api.Submission, slot, url string) {
	switch slot {
	case "photoData0":
		s.PhotoData0 = url
	case "photoData1":
		s.PhotoData1 = url
	case "photoData2":
		s.PhotoData2 = url
	case "videoData0":
		s.VideoData0 = url
	case "videoData1":
		s.VideoData1 = url
	case "videoData2":
		s.VideoData2 = url
	}
}
