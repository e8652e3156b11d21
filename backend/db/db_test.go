package db

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"reported/backend/server/api"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jknair0/beforeeach"
	"golang.org/x/crypto/bcrypt"
)

var (
	db   *sql.DB
	mock sqlmock.Sqlmock
)

func setUp() {
	db, mock, _ = sqlmock.New()
}

func tearDown() {
	db.Close()
}

var it = beforeeach.Create(setUp, tearDown)

func validUserArgs() *api.UserArgs {
	return &api.UserArgs{
		Version:    "2.0",
		Email:      "jane@example.com",
		Password:   "hunter22",
		FirstName:  "Jane",
		LastName:   "Doe",
		Building:   "350",
		StreetName: "5th Ave",
		Borough:    "Manhattan",
		Phone:      "2125551234",
	}
}

func TestSaveUserValidation(t *testing.T) {
	it(func() {
		testCases := []struct {
			name  string
			unset func(*api.UserArgs)

			missingField string
		}{
			{name: "Missing first name", unset: func(u *api.UserArgs) { u.FirstName = "" }, missingField: "FirstName"},
			{name: "Missing last name", unset: func(u *api.UserArgs) { u.LastName = "" }, missingField: "LastName"},
			{name: "Missing building", unset: func(u *api.UserArgs) { u.Building = "" }, missingField: "Building"},
			{name: "Missing street name", unset: func(u *api.UserArgs) { u.StreetName = "" }, missingField: "StreetName"},
			{name: "Missing borough", unset: func(u *api.UserArgs) { u.Borough = "" }, missingField: "Borough"},
			{name: "Missing phone", unset: func(u *api.UserArgs) { u.Phone = "" }, missingField: "Phone"},
		}

		for _, testCase := range testCases {
			setUp()
			u := validUserArgs()
			testCase.unset(u)

			// No queries expected, validation fails first.
			_, err := SaveUser(db, u)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("%s, saveUser: expected ValidationError, got %v", testCase.name, err)
				continue
			}
			if verr.Field != testCase.missingField {
				t.Errorf("%s, saveUser: expected field %s, got %s", testCase.name, testCase.missingField, verr.Field)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("%s, saveUser: db touched before validation: %v", testCase.name, err)
			}
		}
	})
}

func TestSaveUserNew(t *testing.T) {
	it(func() {
		u := validUserArgs()

		mock.ExpectQuery("SELECT id, password_hash FROM users WHERE username = (.+)").
			WithArgs(u.Email).
			WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}))
		mock.ExpectExec("INSERT INTO users").
			WillReturnResult(sqlmock.NewResult(1, 1))

		resp, err := SaveUser(db, u)
		if err != nil {
			t.Fatalf("saveUser: unexpected error %v", err)
		}
		if resp.Username != u.Email || resp.ObjectId == "" {
			t.Errorf("saveUser: bad response %+v", resp)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("saveUser: %v", err)
		}
	})
}

func TestSaveUserExisting(t *testing.T) {
	it(func() {
		hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)

		testCases := []struct {
			name     string
			password string

			updateExpected bool
			expectError    error
		}{
			{
				name:           "Correct password updates profile",
				password:       "hunter22",
				updateExpected: true,
			},
			{
				name:        "Wrong password is rejected",
				password:    "wrong",
				expectError: ErrBadCredentials,
			},
		}

		for _, testCase := range testCases {
			setUp()
			u := validUserArgs()
			u.Password = testCase.password

			mock.ExpectQuery("SELECT id, password_hash FROM users WHERE username = (.+)").
				WithArgs(u.Email).
				WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}).
					AddRow("user-1", string(hash)))
			if testCase.updateExpected {
				mock.ExpectExec("UPDATE users SET first_name = (.+)").
					WillReturnResult(sqlmock.NewResult(1, 1))
			}

			resp, err := SaveUser(db, u)
			if testCase.expectError != nil {
				if !errors.Is(err, testCase.expectError) {
					t.Errorf("%s, saveUser: expected %v, got %v", testCase.name, testCase.expectError, err)
				}
				continue
			}
			if err != nil {
				t.Errorf("%s, saveUser: unexpected error %v", testCase.name, err)
				continue
			}
			if resp.ObjectId != "user-1" {
				t.Errorf("%s, saveUser: expected existing id, got %+v", testCase.name, resp)
			}
		}
	})
}

func TestCreatePasswordReset(t *testing.T) {
	it(func() {
		testCases := []struct {
			name   string
			email  string
			exists bool

			errorExpected bool
		}{
			{name: "Known account", email: "jane@example.com", exists: true},
			{name: "Unknown account", email: "nobody@example.com", errorExpected: true},
		}

		for _, testCase := range testCases {
			setUp()
			rows := sqlmock.NewRows([]string{"id"})
			if testCase.exists {
				rows.AddRow("user-1")
			}
			mock.ExpectQuery("SELECT id FROM users WHERE username = (.+)").
				WithArgs(testCase.email).
				WillReturnRows(rows)
			if testCase.exists {
				mock.ExpectExec("INSERT INTO password_resets").
					WillReturnResult(sqlmock.NewResult(1, 1))
			}

			token, err := CreatePasswordReset(db, testCase.email)
			if testCase.errorExpected != (err != nil) {
				t.Errorf("%s, createPasswordReset: expected error: %v, got error: %v", testCase.name, testCase.errorExpected, err)
			}
			if !testCase.errorExpected && token == "" {
				t.Errorf("%s, createPasswordReset: empty token", testCase.name)
			}
		}
	})
}

func TestReadAttachment(t *testing.T) {
	it(func() {
		mock.ExpectQuery("SELECT data, ext FROM attachments WHERE id = (.+)").
			WithArgs("att-1").
			WillReturnRows(sqlmock.NewRows([]string{"data", "ext"}).
				AddRow([]byte{1, 2, 3}, "jpg"))

		data, ext, err := ReadAttachment(db, "att-1")
		if err != nil {
			t.Fatalf("readAttachment: %v", err)
		}
		if len(data) != 3 || ext != "jpg" {
			t.Errorf("readAttachment: got %v %q", data, ext)
		}

		setUp()
		mock.ExpectQuery("SELECT data, ext FROM attachments WHERE id = (.+)").
			WithArgs("att-404").
			WillReturnRows(sqlmock.NewRows([]string{"data", "ext"}))
		if _, _, err := ReadAttachment(db, "att-404"); err == nil {
			t.Error("readAttachment: expected error for missing attachment")
		}
	})
}

func TestListSubmissionsQueryError(t *testing.T) {
	it(func() {
		mock.ExpectQuery("SELECT (.+) FROM submissions WHERE username = (.+)").
			WithArgs("jane@example.com").
			WillReturnError(fmt.Errorf("query error"))

		if _, err := ListSubmissions(db, "jane@example.com"); err == nil {
			t.Error("listSubmissions: expected error")
		}
	})
}
