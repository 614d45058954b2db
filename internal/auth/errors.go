package auth

import "papertrade-backend/internal/pkg/apperr"

var (
	ErrUsernameRequired = apperr.New(apperr.Validation, "must provide username")
	ErrPasswordRequired = apperr.New(apperr.Validation, "must provide password")
	ErrPasswordMismatch = apperr.New(apperr.Validation, "passwords do not match")
	ErrUsernameTaken    = apperr.New(apperr.BusinessRule, "username already exists")

	// Same message for unknown username and wrong password.
	ErrInvalidCredentials = apperr.New(apperr.Auth, "invalid username and/or password")
)
