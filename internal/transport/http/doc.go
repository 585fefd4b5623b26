// Package http contains the chi HTTP handlers exposing the license, billing
// and charge services to the UI. Handlers bind and validate request payloads,
// delegate to the services layer, and render the shared error envelope on
// failure.
package http
