package server

import (
	"net/http"

	"reported/backend/server/api"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// SRLookup proxies a 311 service request status query on behalf of the form,
// which cannot call the city API cross-origin.
func SRLookup(c *gin.Context) {
	reqNumber := c.Param("reqnumber")

	data, err := lookupClient.Lookup(c.Request.Context(), reqNumber)
	if err != nil {
		log.Errorf("311 lookup for %s failed: %v", reqNumber, err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()}) // 500
		return
	}
	c.Data(http.StatusOK, "application/json", data) // 200
}
