// Package faq provides use cases for the frequently asked questions block.
package faq

import "errors"

var (
	ErrFAQNotFound  = errors.New("faq not found")
	ErrInvalidFAQID = errors.New("invalid faq ID")
)
