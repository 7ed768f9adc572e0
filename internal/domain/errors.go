// Package domain contains the core data types for the guest bookings service.
// Its only third-party import is google/uuid, for journal event ids. Every
// other internal package (registry, service, repo, handler) imports it.
package domain

import "errors"

// ErrValidation is returned by service functions when form input fails one of
// the guard conditions (missing name, missing date range, or both).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
