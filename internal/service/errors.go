package service

import "errors"

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthenticated   = errors.New("not logged in")
	ErrNotFound           = errors.New("not found")
	ErrIncompleteProfile  = errors.New("profile is incomplete")
	ErrAmbiguous          = errors.New("ambiguous reference")
)
