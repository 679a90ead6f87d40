// Package services implements domain business logic and use cases.
package services

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ochairo/license-reader/internal/domain/entities"
	"github.com/ochairo/license-reader/internal/domain/interfaces/services"
)

// licenseService implements LicenseService with pure parsing logic
type licenseService struct {
	defaultExpiresOn string
}

// NewLicenseService creates a license service. An empty defaultExpiresOn
// falls back to entities.DefaultExpiresOn.
func NewLicenseService(defaultExpiresOn string) services.LicenseService {
	if defaultExpiresOn == "" {
		defaultExpiresOn = entities.DefaultExpiresOn
	}
	return &licenseService{defaultExpiresOn: defaultExpiresOn}
}

// Parse reads key-value lines from r and builds a record for fileName
func (s *licenseService) Parse(r io.Reader, fileName string) (*entities.LicenseRecord, error) {
	var license, issuedBy, issuedOn *string
	expiresOn := s.defaultExpiresOn

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), math.MaxInt)
	scanner.Split(scanTextLines)

	for scanner.Scan() {
		key, value, ok := splitField(scanner.Text())
		if !ok {
			continue
		}

		// Last occurrence wins
		switch {
		case strings.EqualFold(key, entities.KeyLicense):
			license = &value
		case strings.EqualFold(key, entities.KeyIssuedOn):
			issuedOn = &value
		case strings.EqualFold(key, entities.KeyIssuedBy):
			issuedBy = &value
		case strings.EqualFold(key, entities.KeyExpiresOn):
			expiresOn = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fileName, err)
	}

	var missing []string
	if license == nil {
		missing = append(missing, entities.KeyLicense)
	}
	if issuedBy == nil {
		missing = append(missing, entities.KeyIssuedBy)
	}
	if issuedOn == nil {
		missing = append(missing, entities.KeyIssuedOn)
	}
	if len(missing) > 0 {
		return nil, &entities.MalformedLicenseError{FileName: fileName, Missing: missing}
	}

	return &entities.LicenseRecord{
		License:        *license,
		IssuedBy:       *issuedBy,
		IssuedOn:       *issuedOn,
		ExpiresOn:      expiresOn,
		SourceFileName: fileName,
	}, nil
}

// Emit writes the record's report line to w
func (s *licenseService) Emit(w io.Writer, record *entities.LicenseRecord) error {
	if _, err := io.WriteString(w, record.ReportLine()); err != nil {
		return fmt.Errorf("failed to write report line for %s: %w", record.SourceFileName, err)
	}
	return nil
}

// ParseAndEmit parses one license file and appends its line to w
func (s *licenseService) ParseAndEmit(r io.Reader, fileName string, w io.Writer) error {
	record, err := s.Parse(r, fileName)
	if err != nil {
		return err
	}
	return s.Emit(w, record)
}

// splitField splits a line on every colon, drops trailing empty pieces and
// accepts the line only when exactly two pieces remain. "a: b: c" and
// "License:" are rejected; "License: MIT:" yields "MIT".
func splitField(line string) (key, value string, ok bool) {
	parts := strings.Split(line, ":")
	for len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) != 2 {
		return "", "", false
	}
	return trimControl(parts[0]), trimControl(parts[1]), true
}

// trimControl strips leading and trailing spaces and ASCII control characters
func trimControl(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}

// scanTextLines is a bufio.SplitFunc that ends lines at "\n", "\r\n" or a lone "\r"
func scanTextLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// '\r' may be the first half of "\r\n"
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
