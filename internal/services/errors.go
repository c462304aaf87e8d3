package services

import (
	"errors"

	"gorm.io/gorm"
)

// Common service errors
var (
	// ErrNotFound aliases gorm's not-found error so handlers can test
	// for it without importing gorm.
	ErrNotFound        = gorm.ErrRecordNotFound
	ErrInvalidPassword = errors.New("invalid password")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidState    = errors.New("invalid state transition")
	ErrDuplicate       = errors.New("duplicate record")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
)
