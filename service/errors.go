package service

import "errors"

var (
	// ErrUserNotFound is returned when an operation needs a player that does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists is returned by UserRepository.Create when the player was
	// created concurrently
	ErrUserExists = errors.New("user already exists")

	// ErrInsufficientBalance is returned when a debit would make a balance negative
	ErrInsufficientBalance = errors.New("insufficient balance")
)
