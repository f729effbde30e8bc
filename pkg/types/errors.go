package types

import "errors"

var (
	ErrBeneficiaryNotFound = errors.New("beneficiary not found")
	ErrDonationNotFound    = errors.New("donation not found")
	ErrNecessidadeNotFound = errors.New("necessidade not found")
	ErrUserNotFound        = errors.New("user not found")

	// ErrDuplicateEmail is returned when a registration matches an
	// existing record by case-insensitive email.
	ErrDuplicateEmail = errors.New("email already registered")
)
