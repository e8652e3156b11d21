package server

import (
	"flag"
	"fmt"
	"net/http"
	"time"

	"reported/backend/bikes"
	"reported/backend/geocode"
	"reported/backend/plate"
	"reported/backend/server/config"
	"reported/backend/srlookup"

	"github.com/apex/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	EndPointHelp                 = "/help"
	EndPointSaveUser             = "/saveUser"
	EndPointSubmissions          = "/submissions"
	EndPointSubmit               = "/submit"
	EndPointRequestPasswordReset = "/requestPasswordReset"
	EndPointSRLookup             = "/srlookup/:reqnumber"
	EndPointOpenALPR             = "/openalpr"
	EndPointAttachment           = "/attachments/:id"
	EndPointStations             = "/stations"
)

// maxBodyBytes bounds /submit payloads: six files of ten megabytes each,
// grown a third by base64.
const maxBodyBytes = 6 * 10 << 20 * 4 / 3

var (
	serverPort = flag.Int("port", 8080, "The port used by the service.")
)

var (
	cfg           *config.Config
	plateClient   *plate.Client
	lookupClient  *srlookup.Client
	feedClient    *bikes.FeedClient
	geocodeClient *geocode.Client
)

func StartService() {
	log.Info("Starting the service...")
	cfg = config.Load()

	plateClient = plate.NewClient(cfg.OpenALPRSecretKey)
	if cfg.OpenALPRBaseURL != "" {
		plateClient.BaseURL = cfg.OpenALPRBaseURL
	}
	lookupClient = srlookup.NewClient()
	feedClient = bikes.NewFeedClient()
	if cfg.StationsURL != "" {
		feedClient.StationsURL = cfg.StationsURL
	}
	geocodeClient = geocode.NewClient(cfg.GoogleMapsAPIKey)

	if err := initPublisher(cfg); err != nil {
		log.Warnf("Submissions will not be published for 311 filing: %v", err)
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(limitBody)

	router.GET(EndPointHelp, Help)
	router.POST(EndPointSaveUser, SaveUser)
	router.POST(EndPointSubmissions, Submissions)
	router.POST(EndPointSubmit, Submit)
	router.POST(EndPointRequestPasswordReset, RequestPasswordReset)
	router.GET(EndPointSRLookup, SRLookup)
	router.POST(EndPointOpenALPR, OpenALPR)
	router.GET(EndPointAttachment, Attachment)
	router.GET(EndPointStations, Stations)

	router.Run(fmt.Sprintf(":%d", *serverPort))
	closeServerDB()
	if submissionPublisher != nil {
		submissionPublisher.Close()
	}
	log.Info("Finished the service. Should not ever being seen.")
}

func limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	c.Next()
}
