package main

import (
	"flag"

	"reported/backend/db"
	"reported/backend/server"
	"reported/common"

	"github.com/apex/log"
)

func main() {
	flag.Parse()
	log.Info("Hello!")

	dbc, err := common.DBConnect()
	if err != nil {
		log.Fatalf("DB connection error: %v", err)
	}
	if err := db.EnsureTables(dbc); err != nil {
		log.Fatalf("Schema setup error: %v", err)
	}
	dbc.Close()

	server.StartService()
	log.Info("Bye!")
}
