package errors

import (
	"errors"
	"net/http"
)

// License-specific sentinel errors.
var (
	ErrInvalidLicenseKey     = errors.New("invalid license key")
	ErrLicenseKeyAlreadyUsed = errors.New("license key already used")
	ErrLicenseNotActivated   = errors.New("license not activated")
	ErrLicenseExpired        = errors.New("license expired")
)

// LicenseInvalidKey builds the API error for an unrecognized key.
func LicenseInvalidKey() *APIError {
	return New(http.StatusUnprocessableEntity, "LICENSE_KEY_INVALID", "License key not recognized")
}

// LicenseDuplicateKey builds the API error for a reused key.
func LicenseDuplicateKey() *APIError {
	return New(http.StatusConflict, "LICENSE_KEY_ALREADY_USED", "License key was already used")
}

// LicenseRequired builds the API error gating billing routes on a valid license.
func LicenseRequired() *APIError {
	return New(http.StatusForbidden, "LICENSE_REQUIRED", "A valid license is required for this operation")
}
