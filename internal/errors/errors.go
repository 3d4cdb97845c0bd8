package errors

import (
	"errors"
	"fmt"
)

// Common error types for the approvals gateway
var (
	// Configuration errors (fatal at startup)
	ErrMissingClientID     = errors.New("AZURE_CLIENT_ID is not set")
	ErrMissingTenantID     = errors.New("AZURE_TENANT_ID is not set")
	ErrMissingClientSecret = errors.New("AZURE_CLIENT_SECRET is required in confidential mode")
	ErrMissingApprovalsURL = errors.New("no ServiceNow approvals endpoint configured")

	// Protocol errors (400-class, never retried)
	ErrInvalidState  = errors.New("invalid state parameter")
	ErrMissingCode   = errors.New("no authorization code returned")
	ErrNoAccessToken = errors.New("no access token in provider response")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")

	// Auth flow state errors
	ErrStateNotFound = errors.New("auth flow state not found")
	ErrStateExpired  = errors.New("auth flow state expired")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
