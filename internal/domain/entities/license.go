// Package entities holds the domain types of the license reader.
package entities

import (
	"fmt"
	"runtime"
)

// DefaultExpiresOn is reported when a license file has no "Expires on" key
const DefaultExpiresOn = "unlimited"

// DefaultLicenseSuffix selects which files the walker hands to the parser
const DefaultLicenseSuffix = ".lic"

// Recognized keys, matched case-insensitively
const (
	KeyLicense   = "License"
	KeyIssuedOn  = "Issued on"
	KeyIssuedBy  = "Issued by"
	KeyExpiresOn = "Expires on"
)

// LineSeparator terminates every report line
var LineSeparator = lineSeparator()

func lineSeparator() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// LicenseRecord is the parsed content of one license file
type LicenseRecord struct {
	License        string
	IssuedBy       string
	IssuedOn       string
	ExpiresOn      string
	SourceFileName string
}

// ReportLine renders the record as one report line, terminator included
func (r *LicenseRecord) ReportLine() string {
	return fmt.Sprintf("License for %s is %s issued by %s [%s - %s]%s",
		r.SourceFileName, r.License, r.IssuedBy, r.IssuedOn, r.ExpiresOn, LineSeparator)
}

// Skip describes a license file that was left out of the report
type Skip struct {
	Path     string
	FileName string
	Err      error
}

// Summary counts what happened during one run
type Summary struct {
	Matched int
	Written int
	Skipped int
}
