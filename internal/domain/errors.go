package domain

import (
	"errors"
	"fmt"
)

// ErrNoSession means no credential is stored. Callers redirect to the login
// route without touching the network.
var ErrNoSession = errors.New("no session credential stored")

// ErrSessionExpired means the backend rejected the credential with a 401.
// The stored credential has already been cleared by the time callers see it.
var ErrSessionExpired = errors.New("session credential rejected")

// APIError carries a non-2xx backend response. Detail is the server-provided
// message when one exists.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend request failed with status %d", e.Status)
}
