package server

import (
	"net/http"

	"reported/backend/db"
	"reported/backend/server/api"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// Submissions authenticates the reporter and lists every complaint filed
// under their email, newest first. The web and mobile clients create
// separate accounts, so the lookup goes by username rather than user id.
func Submissions(c *gin.Context) {
	var user api.UserArgs

	if err := c.BindJSON(&user); err != nil {
		log.Errorf("Failed to get the argument in /submissions call: %v", err)
		return
	}

	dbc, err := getServerDB()
	if err != nil {
		log.Errorf("Error connecting to DB: %v", err)
		c.Status(http.StatusInternalServerError) // 500
		return
	}

	resp, err := db.SaveUser(dbc, &user)
	if err != nil {
		writeUserError(c, err)
		return
	}

	submissions, err := db.ListSubmissions(dbc, resp.Username)
	if err != nil {
		log.Errorf("Failed to list submissions for %s: %v", resp.Username, err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()}) // 500
		return
	}
	c.JSON(http.StatusOK, api.SubmissionsResponse{Submissions: submissions}) // 200
}
