package server

import (
	"net/http"

	"reported/backend/db"
	"reported/backend/server/api"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

var extContentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"mp4":  "video/mp4",
	"mov":  "video/quicktime",
	"3gp":  "video/3gpp",
	"webm": "video/webm",
}

// Attachment serves stored submission media.
func Attachment(c *gin.Context) {
	id := c.Param("id")

	dbc, err := getServerDB()
	if err != nil {
		log.Errorf("Error connecting to DB: %v", err)
		c.Status(http.StatusInternalServerError) // 500
		return
	}

	data, ext, err := db.ReadAttachment(dbc, id)
	if err != nil {
		log.Errorf("Failed to read attachment %s: %v", id, err)
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()}) // 404
		return
	}

	contentType := extContentTypes[ext]
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, data) // 200
}
