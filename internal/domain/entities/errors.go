package entities

import (
	"errors"
	"fmt"
	"strings"
)

// InvalidArgumentError is the only error kind returned by a collection run.
// Cause carries the underlying failure when there is one.
type InvalidArgumentError struct {
	Msg   string
	Cause error
}

func (e *InvalidArgumentError) Error() string {
	if e.Cause == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
}

func (e *InvalidArgumentError) Unwrap() error {
	return e.Cause
}

// NewInvalidArgument creates an InvalidArgumentError
func NewInvalidArgument(msg string, cause error) *InvalidArgumentError {
	return &InvalidArgumentError{Msg: msg, Cause: cause}
}

// IsInvalidArgument reports whether err is (or wraps) an InvalidArgumentError
func IsInvalidArgument(err error) bool {
	var target *InvalidArgumentError
	return errors.As(err, &target)
}

// DirectoryListingError means a directory could not be enumerated
type DirectoryListingError struct {
	Path string
	Err  error
}

func (e *DirectoryListingError) Error() string {
	return fmt.Sprintf("failed to list directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryListingError) Unwrap() error {
	return e.Err
}

// MalformedLicenseError means a license file lacks at least one required field
type MalformedLicenseError struct {
	FileName string
	Missing  []string
}

func (e *MalformedLicenseError) Error() string {
	return fmt.Sprintf("Invalid license header in %s (missing %s)", e.FileName, strings.Join(e.Missing, ", "))
}

// FileReadError means a single license file could not be opened or read
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read license file %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}
