package common

import (
	"database/sql"

	"github.com/apex/log"
)

func LogResult(msgPrefix string, r sql.Result, e error, expectOne bool) {
	if e != nil {
		log.Errorf("Query failed: %v", e)
		return
	}
	rows, err := r.RowsAffected()
	if err != nil {
		log.Errorf("Failed to get status of db op: %v", err)
		return
	}
	if expectOne && rows != 1 {
		log.Warnf("%s: Expected to affect 1 row, affected %d", msgPrefix, rows)
	}
}
