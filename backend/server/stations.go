package server

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"reported/backend/bikes"
	"reported/backend/server/api"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

var (
	boroughsOnce sync.Once
	boroughIndex *bikes.BoroughIndex
)

// getBoroughIndex downloads and indexes the borough boundaries on first use.
// The boundaries never change at runtime, so a failed download is only
// retried on restart and stations fall back to the unknown borough label.
// The download runs on its own deadline, never the triggering request's
// context, so a caller hanging up cannot poison the index for everyone.
func getBoroughIndex() *bikes.BoroughIndex {
	boroughsOnce.Do(func() {
		url := cfg.BoroughsURL
		if url == "" {
			url = bikes.DefaultBoroughsURL
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		fc, err := feedClient.FetchBoroughs(ctx, url)
		if err != nil {
			log.Errorf("Failed to load borough boundaries: %v", err)
			return
		}
		boroughIndex = bikes.NewBoroughIndex(fc)
	})
	return boroughIndex
}

// Stations returns live e-bike availability annotated with distance, compass
// direction, block estimate, and borough relative to the rider. Rider
// coordinates are optional; device geolocation falls back to an IP lookup on
// the client side, so missing coordinates just omit the relative fields.
func Stations(c *gin.Context) {
	riderLat, _ := strconv.ParseFloat(c.Query("latitude"), 64)
	riderLng, _ := strconv.ParseFloat(c.Query("longitude"), 64)

	stations, err := feedClient.Fetch(c.Request.Context())
	if err != nil {
		log.Errorf("Failed to fetch station feed: %v", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()}) // 502
		return
	}

	annotated := bikes.Annotate(stations, riderLat, riderLng, getBoroughIndex())

	c.JSON(http.StatusOK, api.StationsResponse{
		TotalEBikesAvailable: bikes.TotalEBikes(annotated),
		UpdatedAt:            time.Now().UTC().Format(time.RFC3339),
		Stations:             annotated,
	}) // 200
}
