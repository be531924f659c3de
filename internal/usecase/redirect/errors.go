// Package redirect maps legacy help-center URLs to their current location and
// imports redirect tables exported from the previous platform.
package redirect

import "errors"

var (
	ErrRedirectNotFound  = errors.New("redirect not found")
	ErrInvalidRedirectID = errors.New("invalid redirect ID")
	ErrDuplicateRedirect = errors.New("redirect for this path already exists")
)
