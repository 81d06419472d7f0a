// Package httpapi exposes the circulation features over HTTP with echo.
//
// Every response is a JSON object carrying "success" and "message" plus the payload of the feature.
// Failures are mapped to status codes by their error category:
//
//	validation       400
//	not found        404
//	policy violation 409
//	gateway declined 402
//	gateway fault    502
//	anything else    500
//
// The instant a request is handled at comes from an injectable clock, so "now" never leaks
// into the feature handlers.
package httpapi
