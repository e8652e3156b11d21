package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Help(c *gin.Context) {
	c.String(http.StatusOK, `
	Reported API:
	reportedcab.com API server, version 2.0.
	`)
}
