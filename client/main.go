// Dev/test client for dev/test/troubleshooting.
package main

import (
	"bytes"
	"encoding/base64"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"

	"reported/api"

	"github.com/apex/log"
)

const (
	serviceUrl  = "http://127.0.0.1:8080"
	contentType = "application/json"
)

var (
	email = fmt.Sprintf("dev%X@example.com", rand.Uint64())
)

func identityJSON() string {
	return `
	"email": "` + email + `",
	"password": "hunter22",
	"FirstName": "Jane",
	"LastName": "Doe",
	"Building": "350",
	"StreetName": "5th Ave",
	"Borough": "Manhattan",
	"Phone": "2125551234"`
}

func doSaveUser() {
	log.Info("doSaveUser()")
	buf := `{
	"version": "2.0",` + identityJSON() + `
}`

	resp, err := http.Post(serviceUrl+api.SaveUserEndpoint, contentType, bytes.NewBufferString(buf))
	if err != nil {
		log.Errorf("Failed to call the server with %v", err)
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	log.Infof("Done, %s: %v", resp.Status, string(body))
}

// TODO: consider moving to common.
func RandomizeFloat(v, max float64) string {
	return fmt.Sprintf("%f", v+rand.Float64()*2*max-max)
}

func doSubmit() {
	log.Infof("doSubmit()")
	attachment := base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x48})
	buf := `{
	"version": "2.0",` + identityJSON() + `,
	"plate": "6Y12",
	"typeofuser": "Cyclist",
	"typeofcomplaint": "Blocked the bike lane",
	"reportDescription": "Parked in the bike lane",
	"can_be_shared_publicly": true,
	"latitude": ` + RandomizeFloat(40.7128, 0.05) + `,
	"longitude": ` + RandomizeFloat(-74.006, 0.05) + `,
	"CreateDate": "2026-08-30T14:05:00",
	"attachmentDataBase64": ["` + attachment + `"]
}`

	resp, err := http.Post(serviceUrl+api.SubmitEndpoint, contentType, bytes.NewBufferString(buf))
	if err != nil {
		log.Errorf("Failed to call the server with %v", err)
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	log.Infof("Done, %s: %v", resp.Status, string(body))
}

func doSubmissions() {
	log.Infof("doSubmissions()")
	buf := `{
	"version": "2.0",` + identityJSON() + `
}`

	resp, err := http.Post(serviceUrl+api.SubmissionsEndpoint, contentType, bytes.NewBufferString(buf))
	if err != nil {
		log.Errorf("Failed to call the server with %v", err)
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	log.Infof("Done, %s: %v", resp.Status, string(body))
}

func doOpenALPR() {
	log.Infof("doOpenALPR()")

	var form bytes.Buffer
	w := multipart.NewWriter(&form)
	fw, err := w.CreateFormFile("attachmentFile", "plate.jpg")
	if err != nil {
		log.Errorf("Failed to build form with %v", err)
		return
	}
	fw.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x48})
	w.Close()

	resp, err := http.Post(serviceUrl+api.OpenALPREndpoint, w.FormDataContentType(), &form)
	if err != nil {
		log.Errorf("Failed to call the server with %v", err)
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	log.Infof("Done, %s: %v", resp.Status, string(body))
}

func doSRLookup() {
	log.Infof("doSRLookup()")
	resp, err := http.Get(serviceUrl + api.SRLookupEndpoint + "/311-12345678")
	if err != nil {
		log.Errorf("Failed to call the server with %v", err)
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	log.Infof("Done, %s: %v", resp.Status, string(body))
}

func doStations() {
	log.Infof("doStations()")
	resp, err := http.Get(serviceUrl + api.StationsEndpoint + "?latitude=40.7128&longitude=-74.006")
	if err != nil {
		log.Errorf("Failed to call the server with %v", err)
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	log.Infof("Done, %s: %v", resp.Status, string(body))
}

func main() {
	flag.Parse()
	log.Info("Hello.")
	doSaveUser()
	doSubmit()
	doSubmissions()
	doOpenALPR()
	doSRLookup()
	doStations()
	log.Info("Bye.")
}
