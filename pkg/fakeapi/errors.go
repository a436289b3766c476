package fakeapi

import "errors"

var (
	ErrInvalidToken  = errors.New("fakeapi: invalid token")
	ErrUserExists    = errors.New("fakeapi: user already exists")
	ErrUnknownUser   = errors.New("fakeapi: unknown user")
	ErrWrongPassword = errors.New("fakeapi: wrong password")
)
