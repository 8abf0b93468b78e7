/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package weburl

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying why a URL was rejected. ParseError and
// ValidationError values carry one of these in their Err field so callers
// can test for a specific failure with errors.Is.
var (
	// ErrInvalidFormat is returned when the input cannot be split into the
	// five URL components at all.
	ErrInvalidFormat = errors.New("Invalid URL format")
	// ErrInvalidAuthority is returned when the text after "//" does not
	// match the user:pass@host:port grammar.
	ErrInvalidAuthority = errors.New("Invalid authority component")
	// ErrInvalidPort is returned when the port holds a non-digit character.
	ErrInvalidPort = errors.New("Invalid port number")
	// ErrPortOutOfRange is returned for ports above 65535.
	ErrPortOutOfRange = errors.New("Port number out of range")
	// ErrNoScheme is returned when the URL has no scheme, for example
	// "://example.com" or the network-path reference "//example.com".
	ErrNoScheme = errors.New("No scheme found")
	// ErrMissingHost is returned when the URL has no authority or an empty one.
	ErrMissingHost = errors.New("Missing host")
	// ErrInvalidHost is returned when the host is not a well-formed IP
	// literal or registered name.
	ErrInvalidHost = errors.New("Invalid host")
	// ErrInvalidScheme is returned when a scheme is empty or does not start
	// with an ASCII letter.
	ErrInvalidScheme = errors.New("Invalid scheme format")
	// ErrZeroPort is returned by SetPort when asked to set port 0.
	ErrZeroPort = errors.New("Port cannot be 0")
)

// ParseError is returned when a string cannot be parsed into a URL.
type ParseError struct {
	Message string
	Err     error
}

// Error returns the string representation of the parse error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("URL parse error: %s", e.Message)
}

// Unwrap provides compatibility with Go's standard errors package.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError is returned by the mutators of URL when the new
// component value is rejected. The URL is left unchanged.
type ValidationError struct {
	Message string
	Err     error
}

// Error returns the string representation of the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("URL validation error: %s", e.Message)
}

// Unwrap provides compatibility with Go's standard errors package.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// newParseError creates a new ParseError from an internal error.
// It returns nil if the input error is nil.
func newParseError(err error) *ParseError {
	if err == nil {
		return nil
	}
	return &ParseError{Message: err.Error(), Err: sentinelOf(err)}
}

// newValidationError creates a new ValidationError from an internal error.
func newValidationError(err error) *ValidationError {
	if err == nil {
		return nil
	}
	return &ValidationError{Message: err.Error(), Err: sentinelOf(err)}
}

// sentinelOf returns the sentinel wrapped by a kindError, or err itself
// when it is already a bare sentinel.
func sentinelOf(err error) error {
	if kind := errors.Unwrap(err); kind != nil {
		return kind
	}
	return err
}

// kindError ties one of the sentinel errors to the character or text
// fragment that triggered it. message, when set, replaces the sentinel's
// text in the formatted error.
type kindError struct {
	kind    error
	message string
	char    rune
	details string
}

// Error formats the error message with any available character or details.
func (e *kindError) Error() string {
	msg := e.message
	if msg == "" {
		msg = e.kind.Error()
	}
	if e.char != 0 {
		msg = fmt.Sprintf("%s '%c'", msg, e.char)
	} else if e.details != "" {
		msg = fmt.Sprintf("%s '%s'", msg, e.details)
	}
	return msg
}

// Unwrap returns the sentinel error.
func (e *kindError) Unwrap() error {
	return e.kind
}
