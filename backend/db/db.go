package db

import (
	"database/sql"
	"errors"
	"fmt"

	"reported/backend/server/api"
	"reported/common"

	"github.com/apex/log"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials is returned when an existing account's password does not
// match the one supplied with the request.
var ErrBadCredentials = errors.New("invalid username or password")

// ValidationError names the first missing required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// EnsureTables creates the schema if it does not exist yet.
func EnsureTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) NOT NULL,
			username VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			first_name VARCHAR(255) NOT NULL,
			last_name VARCHAR(255) NOT NULL,
			building VARCHAR(255) NOT NULL,
			street_name VARCHAR(255) NOT NULL,
			apt VARCHAR(255) NOT NULL DEFAULT '',
			borough VARCHAR(64) NOT NULL,
			phone VARCHAR(64) NOT NULL,
			testify BOOLEAN NOT NULL DEFAULT FALSE,
			ts TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			UNIQUE KEY username_idx (username)
		)`,
		`CREATE TABLE IF NOT EXISTS submissions (
			id VARCHAR(36) NOT NULL,
			user_id VARCHAR(36) NOT NULL,
			username VARCHAR(255) NOT NULL,
			first_name VARCHAR(255) NOT NULL,
			last_name VARCHAR(255) NOT NULL,
			building VARCHAR(255) NOT NULL,
			street_name VARCHAR(255) NOT NULL,
			apt VARCHAR(255) NOT NULL DEFAULT '',
			borough VARCHAR(64) NOT NULL,
			phone VARCHAR(64) NOT NULL,
			testify BOOLEAN NOT NULL DEFAULT FALSE,
			typeofreport VARCHAR(32) NOT NULL,
			selected_report INT NOT NULL,
			medallion_no VARCHAR(32) NOT NULL,
			typeofcomplaint VARCHAR(255) NOT NULL,
			typeofuser VARCHAR(32) NOT NULL,
			passenger BOOLEAN NOT NULL,
			location_number INT NOT NULL,
			latitude VARCHAR(32) NOT NULL,
			longitude VARCHAR(32) NOT NULL,
			latitude1 DOUBLE NOT NULL,
			longitude1 DOUBLE NOT NULL,
			loc1_address VARCHAR(512) NOT NULL DEFAULT '',
			timeofreport DATETIME NOT NULL,
			timeofreported DATETIME NOT NULL,
			report_description TEXT,
			can_be_shared_publicly BOOLEAN NOT NULL DEFAULT FALSE,
			status INT NOT NULL DEFAULT 0,
			operating_system VARCHAR(32) NOT NULL,
			version_number INT NOT NULL DEFAULT 0,
			reqnumber VARCHAR(64) NOT NULL,
			ts TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			INDEX username_time_idx (username, timeofreport)
		)`,
		`CREATE TABLE IF NOT EXISTS attachments (
			id VARCHAR(36) NOT NULL,
			submission_id VARCHAR(36) NOT NULL,
			slot VARCHAR(16) NOT NULL,
			ext VARCHAR(8) NOT NULL,
			data LONGBLOB NOT NULL,
			ts TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			INDEX submission_idx (submission_id)
		)`,
		`CREATE TABLE IF NOT EXISTS password_resets (
			token VARCHAR(36) NOT NULL,
			username VARCHAR(255) NOT NULL,
			ts TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (token)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			log.Errorf("Error creating table: %v", err)
			return err
		}
	}
	return nil
}

func validateUser(u *api.UserArgs) error {
	required := []struct {
		field, value string
	}{
		{"FirstName", u.FirstName},
		{"LastName", u.LastName},
		{"Building", u.Building},
		{"StreetName", u.StreetName},
		{"Borough", u.Borough},
		{"Phone", u.Phone},
	}
	for _, r := range required {
		if r.value == "" {
			return &ValidationError{Field: r.field}
		}
	}
	return nil
}

// SaveUser creates the account on first sight and otherwise behaves as a
// login plus profile update: the stored password must match, then the
// identity fields are refreshed. The email doubles as the username, shared
// between the web and mobile clients.
func SaveUser(db *sql.DB, u *api.UserArgs) (*api.UserResp, error) {
	if err := validateUser(u); err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT id, password_hash FROM users WHERE username = ?", u.Email)
	if err != nil {
		log.Errorf("Error getting user %s: %v", u.Email, err)
		return nil, err
	}
	defer rows.Close()

	var id string
	if rows.Next() {
		var hash string
		if err := rows.Scan(&id, &hash); err != nil {
			return nil, err
		}
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(u.Password)); err != nil {
			return nil, ErrBadCredentials
		}
		result, err := db.Exec(`UPDATE users
			SET first_name = ?, last_name = ?, building = ?, street_name = ?, apt = ?, borough = ?, phone = ?, testify = ?
			WHERE id = ?`,
			u.FirstName, u.LastName, u.Building, u.StreetName, u.Apt, u.Borough, u.Phone, u.Testify, id)
		common.LogResult("saveUser", result, err, true)
		if err != nil {
			return nil, err
		}
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		id = uuid.NewString()
		result, err := db.Exec(`INSERT INTO users
			(id, username, email, password_hash, first_name, last_name, building, street_name, apt, borough, phone, testify)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, u.Email, u.Email, string(hash), u.FirstName, u.LastName, u.Building, u.StreetName, u.Apt, u.Borough, u.Phone, u.Testify)
		common.LogResult("saveUser", result, err, true)
		if err != nil {
			return nil, err
		}
	}

	return &api.UserResp{
		ObjectId:   id,
		Username:   u.Email,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Building:   u.Building,
		StreetName: u.StreetName,
		Apt:        u.Apt,
		Borough:    u.Borough,
		Phone:      u.Phone,
		Testify:    u.Testify,
	}, nil
}

// ListSubmissions returns every submission made under the given username,
// newest first, with attachment URLs filled in.
func ListSubmissions(db *sql.DB, username string) ([]api.Submission, error) {
	rows, err := db.Query(`SELECT
		id, username, first_name, last_name, building, street_name, apt, borough, phone, testify,
		typeofreport, selected_report, medallion_no, typeofcomplaint, typeofuser, passenger,
		location_number, latitude, longitude, latitude1, longitude1, loc1_address,
		timeofreport, timeofreported, report_description, can_be_shared_publicly,
		status, operating_system, version_number, reqnumber
		FROM submissions
		WHERE username = ?
		ORDER BY timeofreport DESC`, username)
	if err != nil {
		log.Errorf("Could not retrieve submissions for %s: %v", username, err)
		return nil, err
	}
	defer rows.Close()

	submissions := make([]api.Submission, 0, 16)
	for rows.Next() {
		var (
			s           api.Submission
			timeOf      sql.NullTime
			timeOfD     sql.NullTime
			description sql.NullString
		)
		if err := rows.Scan(&s.ObjectId, &s.Username, &s.FirstName, &s.LastName, &s.Building,
			&s.StreetName, &s.Apt, &s.Borough, &s.Phone, &s.Testify,
			&s.TypeOfReport, &s.SelectedReport, &s.MedallionNo, &s.TypeOfComplaint, &s.TypeOfUser,
			&s.Passenger, &s.LocationNumber, &s.Latitude, &s.Longitude, &s.Latitude1, &s.Longitude1,
			&s.Loc1Address, &timeOf, &timeOfD, &description, &s.CanBeSharedPublicly,
			&s.Status, &s.OperatingSystem, &s.VersionNumber, &s.ReqNumber); err != nil {
			log.Errorf("Cannot scan a submission row: %v", err)
			continue
		}
		if timeOf.Valid {
			s.TimeOfReport = timeOf.Time.UTC().Format("2006-01-02T15:04:05.000Z")
		}
		if timeOfD.Valid {
			s.TimeOfReported = timeOfD.Time.UTC().Format("2006-01-02T15:04:05.000Z")
		}
		s.ReportDescription = description.String
		submissions = append(submissions, s)
	}

	for i := range submissions {
		if err := fillAttachmentURLs(db, &submissions[i]); err != nil {
			return nil, err
		}
	}
	return submissions, nil
}

// ReadAttachment returns the stored bytes and extension of one attachment.
func ReadAttachment(db *sql.DB, id string) ([]byte, string, error) {
	rows, err := db.Query("SELECT data, ext FROM attachments WHERE id = ?", id)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, "", fmt.Errorf("attachment %s wasn't found", id)
	}
	var (
		data []byte
		ext  string
	)
	if err := rows.Scan(&data, &ext); err != nil {
		return nil, "", err
	}
	return data, ext, nil
}

// CreatePasswordReset verifies the account exists and stores a one-time
// reset token for it.
func CreatePasswordReset(db *sql.DB, email string) (string, error) {
	rows, err := db.Query("SELECT id FROM users WHERE username = ?", email)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	if !rows.Next() {
		return "", fmt.Errorf("no account for %s", email)
	}

	token := uuid.NewString()
	result, err := db.Exec(`INSERT INTO password_resets (token, username) VALUES (?, ?)`,
		token, email)
	common.LogResult("createPasswordReset", result, err, true)
	if err != nil {
		return "", err
	}
	return token, nil
}

func fillAttachmentURLs(db *sql.DB, s *api.Submission) error {
	rows, err := db.Query("SELECT id, slot FROM attachments WHERE submission_id = ?", s.ObjectId)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id, slot string
		if err := rows.Scan(&id, &slot); err != nil {
			return err
		}
		url := AttachmentURL(id)
		switch slot {
		case "photoData0":
			s.PhotoData0 = url
		case "photoData1":
			s.PhotoData1 = url
		case "photoData2":
			s.PhotoData2 = url
		case "videoData0":
			s.VideoData0 = url
		case "videoData1":
			s.VideoData1 = url
		case "videoData2":
			s.VideoData2 = url
		}
	}
	return nil
}

// AttachmentURL is the serving path of a stored attachment.
func AttachmentURL(id string) string {
	return "/attachments/" + id
}
