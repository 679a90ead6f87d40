// Package services defines interfaces for domain service contracts.
package services

import (
	"io"

	"github.com/ochairo/license-reader/internal/domain/entities"
)

// LicenseService turns license file content into report lines
type LicenseService interface {
	// Parse reads one license file. It returns a *entities.MalformedLicenseError
	// when a required field is missing.
	Parse(r io.Reader, fileName string) (*entities.LicenseRecord, error)

	// Emit appends the record's report line to w
	Emit(w io.Writer, record *entities.LicenseRecord) error

	// ParseAndEmit parses r and writes the resulting line to w
	ParseAndEmit(r io.Reader, fileName string, w io.Writer) error
}
