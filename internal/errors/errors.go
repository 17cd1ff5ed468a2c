// Package errors provides the structured error type used across vhostfrag.
//
// Every error that reaches a user carries an ErrorCode so callers can branch
// on the category without parsing messages. The three location errors
// (missing vhost, missing content source, conflicting content sources) are
// configuration-authoring mistakes: they are fatal for the offending
// location and are never retried.
//
// # Sentinel Errors
//
//	errors.ErrMissingVhost              // location has no owning vhost
//	errors.ErrMissingContentSource      // none of proxy, alias root, www root
//	errors.ErrConflictingContentSources // more than one of them
//	errors.ErrManifest                  // manifest unreadable or malformed
//	errors.ErrRender                    // template execution failed
//	errors.ErrWrite                     // staging directory write failed
//
// # Error Checking
//
// Sentinels compare by code, so any FragError with the same code matches:
//
//	if errors.Is(err, errors.ErrConflictingContentSources) {
//	    // fix the manifest entry
//	}
//
//	var fe *errors.FragError
//	if errors.As(err, &fe) {
//	    fmt.Printf("code=%s vhost=%s location=%s\n", fe.Code, fe.VHost, fe.Location)
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeMissingVhost              ErrorCode = "MISSING_VHOST"
	ErrCodeMissingContentSource      ErrorCode = "MISSING_CONTENT_SOURCE"
	ErrCodeConflictingContentSources ErrorCode = "CONFLICTING_CONTENT_SOURCES"
	ErrCodeManifest                  ErrorCode = "MANIFEST" // Manifest read, parse or field validation
	ErrCodeRender                    ErrorCode = "RENDER"   // Template execution
	ErrCodeWrite                     ErrorCode = "WRITE"    // Staging directory I/O
)

// Messages for the location errors. Tooling surfaces these verbatim.
const (
	MsgMissingVhost              = "a location must belong to a vhost"
	MsgMissingContentSource      = "a location must declare exactly one of proxy, alias root, or www root"
	MsgConflictingContentSources = "cannot define both a directory source and a proxy source"
)

// FragError is a structured error with the vhost and location it concerns.
type FragError struct {
	Code     ErrorCode
	Message  string
	VHost    string // owning vhost, empty when unknown
	Location string // location name, empty when not location-specific
	Err      error
}

// Error implements the error interface.
func (e *FragError) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
	}

	switch {
	case e.VHost != "" && e.Location != "":
		return fmt.Sprintf("location %s/%s: %s", e.VHost, e.Location, msg)
	case e.Location != "":
		return fmt.Sprintf("location %s: %s", e.Location, msg)
	case e.VHost != "":
		return fmt.Sprintf("vhost %s: %s", e.VHost, msg)
	}
	return msg
}

// Unwrap returns the underlying error for error chain traversal.
func (e *FragError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a FragError with the same code.
func (e *FragError) Is(target error) bool {
	t, ok := target.(*FragError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors. Use these with errors.Is.
var (
	ErrMissingVhost              = &FragError{Code: ErrCodeMissingVhost, Message: MsgMissingVhost}
	ErrMissingContentSource      = &FragError{Code: ErrCodeMissingContentSource, Message: MsgMissingContentSource}
	ErrConflictingContentSources = &FragError{Code: ErrCodeConflictingContentSources, Message: MsgConflictingContentSources}
	ErrManifest                  = &FragError{Code: ErrCodeManifest, Message: "invalid manifest"}
	ErrRender                    = &FragError{Code: ErrCodeRender, Message: "render failed"}
	ErrWrite                     = &FragError{Code: ErrCodeWrite, Message: "write failed"}
)

// MissingVhost reports a location declared without an owning vhost.
func MissingVhost(location string) error {
	return &FragError{Code: ErrCodeMissingVhost, Message: MsgMissingVhost, Location: location}
}

// MissingContentSource reports a location with no primary content source.
func MissingContentSource(vhost, location string) error {
	return &FragError{Code: ErrCodeMissingContentSource, Message: MsgMissingContentSource, VHost: vhost, Location: location}
}

// ConflictingContentSources reports a location with more than one primary content source.
func ConflictingContentSources(vhost, location string) error {
	return &FragError{Code: ErrCodeConflictingContentSources, Message: MsgConflictingContentSources, VHost: vhost, Location: location}
}

// Manifest creates a manifest error with a custom message.
func Manifest(msg string) error {
	return &FragError{Code: ErrCodeManifest, Message: msg}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &FragError{Code: code, Message: msg, Err: err}
}

// WrapLocation attaches vhost and location context to an underlying error.
func WrapLocation(code ErrorCode, vhost, location string, err error) error {
	return &FragError{Code: code, VHost: vhost, Location: location, Err: err}
}

// Is reports whether any error in err's chain matches target.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
var As = errors.As
