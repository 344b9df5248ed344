package services

import "errors"

var (
	ErrUnknown        = errors.New("[service]: unknown error")
	ErrRecordNotFound = errors.New("[service]: record not found")
	ErrInvalidURL     = errors.New("[service]: invalid URL. Must start with http:// or https://")
	ErrCodeExhausted  = errors.New("[service]: unable to allocate unique code")
)
