package server

import (
	"io"
	"net/http"

	"reported/backend/media"
	"reported/backend/server/api"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// OpenALPR proxies a plate recognition request. The attachment arrives as a
// multipart file, is oriented upright, and the recognizer's full candidate
// list goes back to the caller.
func OpenALPR(c *gin.Context) {
	file, _, err := c.Request.FormFile("attachmentFile")
	if err != nil {
		log.Errorf("Missing attachmentFile in /openalpr call: %v", err)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "attachmentFile is required"}) // 400
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Errorf("Failed to read attachment in /openalpr call: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()}) // 500
		return
	}

	resp, err := plateClient.Recognize(c.Request.Context(), media.OrientUpright(data))
	if err != nil {
		log.Errorf("Plate recognition failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()}) // 500
		return
	}
	c.JSON(http.StatusOK, resp) // 200
}
