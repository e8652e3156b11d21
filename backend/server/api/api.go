// Package api holds the wire types of the service. Field names follow the
// form field names the web and mobile clients already send.
package api

import "reported/backend/bikes"

// UserArgs carries reporter identity fields. Version must be "2.0".
type UserArgs struct {
	Version    string `json:"version"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"FirstName"`
	LastName   string `json:"LastName"`
	Building   string `json:"Building"`
	StreetName string `json:"StreetName"`
	Apt        string `json:"Apt"`
	Borough    string `json:"Borough"`
	Phone      string `json:"Phone"`
	Testify    bool   `json:"testify"`
}

// UserResp mirrors the stored user record, password omitted.
type UserResp struct {
	ObjectId   string `json:"objectId"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"FirstName"`
	LastName   string `json:"LastName"`
	Building   string `json:"Building"`
	StreetName string `json:"StreetName"`
	Apt        string `json:"Apt"`
	Borough    string `json:"Borough"`
	Phone      string `json:"Phone"`
	Testify    bool   `json:"testify"`
}

// SubmitArgs is the full submission payload: identity plus incident fields
// plus raw attachment bytes. JSON []byte values arrive base64 encoded, which
// matches what the form sends.
type SubmitArgs struct {
	UserArgs

	Plate                string   `json:"plate"`
	TypeOfUser           string   `json:"typeofuser"`
	TypeOfReport         string   `json:"typeofreport"`
	TypeOfComplaint      string   `json:"typeofcomplaint"`
	ReportDescription    string   `json:"reportDescription"`
	CanBeSharedPublicly  bool     `json:"can_be_shared_publicly"`
	Latitude             float64  `json:"latitude"`
	Longitude            float64  `json:"longitude"`
	FormattedAddress     string   `json:"formatted_address"`
	AttachmentDataBase64 [][]byte `json:"attachmentDataBase64"`
	CreateDate           string   `json:"CreateDate"`
}

// Submission is one stored complaint as returned by /submit and /submissions.
type Submission struct {
	ObjectId   string `json:"objectId"`
	Username   string `json:"Username"`
	FirstName  string `json:"FirstName"`
	LastName   string `json:"LastName"`
	Building   string `json:"Building"`
	StreetName string `json:"StreetName"`
	Apt        string `json:"Apt"`
	Borough    string `json:"Borough"`
	Phone      string `json:"Phone"`
	Testify    bool   `json:"testify"`

	TypeOfReport        string  `json:"typeofreport"`
	SelectedReport      int     `json:"selectedReport"`
	MedallionNo         string  `json:"medallionNo"`
	TypeOfComplaint     string  `json:"typeofcomplaint"`
	TypeOfUser          string  `json:"typeofuser"`
	Passenger           bool    `json:"passenger"`
	LocationNumber      int     `json:"locationNumber"`
	Latitude            string  `json:"latitude"`
	Longitude           string  `json:"longitude"`
	Latitude1           float64 `json:"latitude1"`
	Longitude1          float64 `json:"longitude1"`
	Loc1Address         string  `json:"loc1_address"`
	TimeOfReport        string  `json:"timeofreport"`
	TimeOfReported      string  `json:"timeofreported"`
	ReportDescription   string  `json:"reportDescription"`
	CanBeSharedPublicly bool    `json:"can_be_shared_publicly"`
	Status              int     `json:"status"`
	OperatingSystem     string  `json:"operating_system"`
	VersionNumber       int     `json:"version_number"`
	ReqNumber           string  `json:"reqnumber"`

	PhotoData0 string `json:"photoData0,omitempty"`
	PhotoData1 string `json:"photoData1,omitempty"`
	PhotoData2 string `json:"photoData2,omitempty"`
	VideoData0 string `json:"videoData0,omitempty"`
	VideoData1 string `json:"videoData1,omitempty"`
	VideoData2 string `json:"videoData2,omitempty"`
}

type SubmitResponse struct {
	Submission Submission `json:"submission"`
}

type SubmissionsResponse struct {
	Submissions []Submission `json:"submissions"`
}

type PasswordResetArgs struct {
	Email string `json:"email"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// StationsResponse is the e-bike dashboard payload, stations nearest first
// when rider coordinates were supplied.
type StationsResponse struct {
	TotalEBikesAvailable int             `json:"total_ebikes_available"`
	UpdatedAt            string          `json:"updated_at"`
	Stations             []bikes.Station `json:"stations"`
}
