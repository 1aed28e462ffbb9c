package service

import "errors"

// Failure modes that handlers and the bot branch on with errors.Is.
// Anything else is an unexpected store error and propagates wrapped.
var (
	ErrDuplicateIdentity  = errors.New("username, email or telegram already in use")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyLinked      = errors.New("account already has a linked telegram")
	ErrHandleTaken        = errors.New("telegram handle belongs to another account")
	ErrSelfFollow         = errors.New("cannot follow yourself")
)
