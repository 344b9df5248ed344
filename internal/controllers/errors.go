package controllers

import "errors"

// Ошибки.
var (
	ErrInternal = errors.New("internal error") // Прочая ошибка
)

// Тексты ошибок, которые видит клиент.
const (
	notFoundDetail    = "Not found"
	invalidURLDetail  = "Invalid URL. Must start with http:// or https://"
	invalidBodyDetail = "Invalid request body"
)
