// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// Authentication errors
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")

	// Principal errors
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrMemberNotFound       = errors.New("member not found")
	ErrAdminNotFound        = errors.New("admin not found")
	ErrDuplicateKey         = errors.New("duplicate key value")

	// Membership errors
	ErrAlreadyMember = errors.New("member already registered in this organization")

	// Password reset errors
	ErrInvalidResetToken = errors.New("invalid or expired reset token")

	// Collaborator errors
	ErrDeliveryFailure = errors.New("delivery failure")
)
