package server

import (
	"net/http"

	"reported/backend/db"
	"reported/backend/plate"
	"reported/backend/server/api"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

func Submit(c *gin.Context) {
	var args api.SubmitArgs

	if err := c.BindJSON(&args); err != nil {
		log.Errorf("Failed to get the argument in /submit call: %v", err)
		return
	}

	dbc, err := getServerDB()
	if err != nil {
		log.Errorf("Error connecting to DB: %v", err)
		c.Status(http.StatusInternalServerError) // 500
		return
	}

	// Mobile clients send coordinates without an address.
	if args.FormattedAddress == "" && args.Latitude != 0 && args.Longitude != 0 {
		address, err := geocodeClient.ReverseGeocode(c.Request.Context(), args.Latitude, args.Longitude)
		if err != nil {
			log.Warnf("Reverse geocode failed, keeping empty address: %v", err)
		} else {
			args.FormattedAddress = address
		}
	}

	submission, err := db.SubmitDraft(dbc, &args, cfg.VersionNumber)
	if err != nil {
		writeUserError(c, err)
		return
	}

	// Hand the accepted complaint to the 311 filing worker.
	publishSubmission(submission)

	c.JSON(http.StatusOK, api.SubmitResponse{Submission: *submission}) // 200
}

// publishSubmission queues an accepted complaint so its reqnumber can be
// backfilled once 311 assigns one.
func publishSubmission(submission *api.Submission) {
	if submissionPublisher == nil || !submissionPublisher.IsConnected() {
		log.Warnf("Publisher not available, submission %s will not be queued for 311 filing", submission.ObjectId)
		return
	}

	queued := struct {
		ObjectId        string `json:"objectId"`
		Username        string `json:"Username"`
		MedallionNo     string `json:"medallionNo"`
		CabColor        string `json:"cab_color"`
		TypeOfComplaint string `json:"typeofcomplaint"`
		TypeOfUser      string `json:"typeofuser"`
		Latitude        string `json:"latitude"`
		Longitude       string `json:"longitude"`
		TimeOfReport    string `json:"timeofreport"`
	}{
		ObjectId:        submission.ObjectId,
		Username:        submission.Username,
		MedallionNo:     submission.MedallionNo,
		CabColor:        string(plate.InferCabColor(submission.MedallionNo)),
		TypeOfComplaint: submission.TypeOfComplaint,
		TypeOfUser:      submission.TypeOfUser,
		Latitude:        submission.Latitude,
		Longitude:       submission.Longitude,
		TimeOfReport:    submission.TimeOfReport,
	}

	if err := submissionPublisher.Publish(queued); err != nil {
		log.Errorf("Failed to publish submission %s: %v", submission.ObjectId, err)
		return
	}
	log.Infof("Queued submission %s for 311 filing", submission.ObjectId)
}
