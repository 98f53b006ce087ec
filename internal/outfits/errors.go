package outfits

import "errors"

var (
	ErrNotFound     = errors.New("outfit not found")
	ErrForbidden    = errors.New("outfit belongs to another user")
	ErrInvalidInput = errors.New("invalid input")
	ErrTagExists    = errors.New("tag already exists")
	ErrTagNotFound  = errors.New("tag not found")
	ErrTagLimit     = errors.New("tag limit reached")
)
