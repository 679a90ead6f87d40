package gateways

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/license-reader/internal/domain/entities"
	"github.com/ochairo/license-reader/internal/domain/interfaces/gateways"
)

// LicenseFinder walks a directory tree looking for license files
type LicenseFinder struct {
	suffix         string
	followSymlinks bool
}

// NewLicenseFinder creates a finder for files ending with suffix
// (compared against the lowercased name). An empty suffix means ".lic".
func NewLicenseFinder(suffix string, followSymlinks bool) *LicenseFinder {
	if suffix == "" {
		suffix = entities.DefaultLicenseSuffix
	}
	return &LicenseFinder{
		suffix:         strings.ToLower(suffix),
		followSymlinks: followSymlinks,
	}
}

var _ gateways.TreeWalker = (*LicenseFinder)(nil)

// IsLicenseFile reports whether name carries the license suffix
func (f *LicenseFinder) IsLicenseFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), f.suffix)
}

// Walk visits every license file below dir, depth-first. Entries come in
// directory order, not sorted. Any listing failure ends the walk with a
// *entities.DirectoryListingError; errors from visit are returned as is.
func (f *LicenseFinder) Walk(dir string, visit gateways.VisitFunc) error {
	visited := make(map[string]struct{})
	return f.walk(dir, visit, visited)
}

func (f *LicenseFinder) walk(dir string, visit gateways.VisitFunc, visited map[string]struct{}) error {
	// Symlinked directories can form cycles
	if canonical, err := filepath.EvalSymlinks(dir); err == nil {
		if _, seen := visited[canonical]; seen {
			return nil
		}
		visited[canonical] = struct{}{}
	}

	entries, err := listUnsorted(dir)
	if err != nil {
		return &entities.DirectoryListingError{Path: dir, Err: err}
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if f.isDir(path, entry) {
			if err := f.walk(path, visit, visited); err != nil {
				return err
			}
			continue
		}

		if f.IsLicenseFile(entry.Name()) {
			if err := visit(path, entry.Name()); err != nil {
				return err
			}
		}
	}

	return nil
}

func (f *LicenseFinder) isDir(path string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if !f.followSymlinks || entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// listUnsorted returns the entries of dir in the order the filesystem
// yields them. os.ReadDir would sort by name.
func listUnsorted(dir string) ([]os.DirEntry, error) {
	//nolint:gosec // G304: dir is the user-provided scan root or one of its children
	d, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck // Defer close on read-only directory
	defer d.Close()

	return d.ReadDir(-1)
}
