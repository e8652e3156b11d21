package server

import (
	"net/http"

	"reported/backend/db"
	"reported/backend/email"
	"reported/backend/server/api"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

func RequestPasswordReset(c *gin.Context) {
	var args api.PasswordResetArgs

	if err := c.BindJSON(&args); err != nil {
		log.Errorf("Failed to get the argument in /requestPasswordReset call: %v", err)
		return
	}

	dbc, err := getServerDB()
	if err != nil {
		log.Errorf("Error connecting to DB: %v", err)
		c.Status(http.StatusInternalServerError) // 500
		return
	}

	token, err := db.CreatePasswordReset(dbc, args.Email)
	if err != nil {
		log.Errorf("Failed to create password reset for %s: %v", args.Email, err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()}) // 500
		return
	}

	go email.SendPasswordReset(cfg, args.Email, token)

	c.Status(http.StatusOK) // 200
}
