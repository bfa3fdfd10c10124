package service

import "errors"

var (
	// ErrInvalidInput is returned for missing or malformed request fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmailTaken is returned when signup hits the unique email index.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so login never reveals whether an email exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrQuizNotFound indicates the requested quiz does not exist.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrAnswerCountMismatch indicates a submission whose answers slice does
	// not line up with the quiz's question count.
	ErrAnswerCountMismatch = errors.New("answer count does not match question count")
)
