package model

import "errors"

var (
	// User related errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")

	// Complaint related errors
	ErrComplaintNotFound = errors.New("complaint not found")
	ErrComplainerMissing = errors.New("complainer does not exist")

	// Token related errors
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)
