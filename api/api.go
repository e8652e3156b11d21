// Package api lists the public endpoints for client-side use.
package api

const (
	HelpEndpoint                 = "/help"
	SaveUserEndpoint             = "/saveUser"
	SubmissionsEndpoint          = "/submissions"
	SubmitEndpoint               = "/submit"
	RequestPasswordResetEndpoint = "/requestPasswordReset"
	SRLookupEndpoint             = "/srlookup"
	OpenALPREndpoint             = "/openalpr"
	StationsEndpoint             = "/stations"
)
