package server

import (
	"errors"
	"net/http"

	"reported/backend/db"
	"reported/backend/server/api"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

func SaveUser(c *gin.Context) {
	var user api.UserArgs

	if err := c.BindJSON(&user); err != nil {
		log.Errorf("Failed to get the argument in /saveUser call: %v", err)
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
	c.JSON(http.StatusOK, resp) // 200
}

// writeUserError maps account errors onto the statuses the form expects.
func writeUserError(c *gin.Context, err error) {
	var verr *db.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: verr.Error()}) // 400
	case errors.Is(err, db.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: err.Error()}) // 401
	default:
		log.Errorf("Failed to save user: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()}) // 500
	}
}
