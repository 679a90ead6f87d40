package orchestrators

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/license-reader/internal/domain-adapters/gateways"
	"github.com/ochairo/license-reader/internal/domain/entities"
	"github.com/ochairo/license-reader/internal/domain/interfaces"
	ifgateways "github.com/ochairo/license-reader/internal/domain/interfaces/gateways"
	"github.com/ochairo/license-reader/internal/domain/services"
)

const validLicense = "License: MIT\nIssued on: 2024-01-01\nIssued by: Acme Corp\n"

func newOrchestrator(config LicenseOrchestratorConfig) *LicenseOrchestrator {
	return NewLicenseOrchestrator(
		gateways.NewLicenseFinder("", true),
		gateways.NewRootAccessChecker(),
		services.NewLicenseService(""),
		nil,
		config,
	)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := strings.TrimSuffix(string(data), entities.LineSeparator)
	if content == "" {
		return nil
	}
	return strings.Split(content, entities.LineSeparator)
}

func requireInvalidArgument(t *testing.T, err error) *entities.InvalidArgumentError {
	t.Helper()
	var invalid *entities.InvalidArgumentError
	require.ErrorAs(t, err, &invalid)
	return invalid
}

func TestCollect_SingleValidFile(t *testing.T) {
	root := t.TempDir()
	output := filepath.Join(t.TempDir(), "report.txt")
	writeFile(t, filepath.Join(root, "a.lic"), validLicense)

	summary, err := newOrchestrator(LicenseOrchestratorConfig{}).Collect(root, output)
	require.NoError(t, err)

	assert.Equal(t, []string{"License for a.lic is MIT issued by Acme Corp [2024-01-01 - unlimited]"}, readLines(t, output))
	assert.Equal(t, entities.Summary{Matched: 1, Written: 1}, *summary)
}

func TestCollect_MalformedFileIsSkipped(t *testing.T) {
	root := t.TempDir()
	output := filepath.Join(t.TempDir(), "report.txt")
	writeFile(t, filepath.Join(root, "b.lic"), "License: MIT\n")

	var skips []entities.Skip
	summary, err := newOrchestrator(LicenseOrchestratorConfig{
		OnSkip: func(skip entities.Skip) { skips = append(skips, skip) },
	}).Collect(root, output)
	require.NoError(t, err)

	assert.Empty(t, readLines(t, output))
	assert.Equal(t, entities.Summary{Matched: 1, Skipped: 1}, *summary)

	require.Len(t, skips, 1)
	assert.Equal(t, "b.lic", skips[0].FileName)
	var malformed *entities.MalformedLicenseError
	assert.ErrorAs(t, skips[0].Err, &malformed)
}

func TestCollect_MixedTree(t *testing.T) {
	root := t.TempDir()
	output := filepath.Join(t.TempDir(), "report.txt")

	writeFile(t, filepath.Join(root, "a.lic"), validLicense)
	writeFile(t, filepath.Join(root, "sub", "deeper", "c.lic"), "license: GPL\nissued by: FSF\nissued on: 2020\nExpires on: 2030\n")
	writeFile(t, filepath.Join(root, "sub", "UPPER.LIC"), "License: MIT\nLicense: BSD\nIssued on: 2024\nIssued by: Acme\n")
	writeFile(t, filepath.Join(root, "sub", "bad.lic"), "Issued on: 2024:01\nLicense: MIT\nIssued by: Acme\n")
	writeFile(t, filepath.Join(root, "readme.txt"), validLicense)
	writeFile(t, filepath.Join(root, "notes.LIC.bak"), validLicense)

	summary, err := newOrchestrator(LicenseOrchestratorConfig{}).Collect(root, output)
	require.NoError(t, err)

	lines := readLines(t, output)
	sort.Strings(lines)
	assert.Equal(t, []string{
		"License for UPPER.LIC is BSD issued by Acme [2024 - unlimited]",
		"License for a.lic is MIT issued by Acme Corp [2024-01-01 - unlimited]",
		"License for c.lic is GPL issued by FSF [2020 - 2030]",
	}, lines)
	assert.Equal(t, entities.Summary{Matched: 4, Written: 3, Skipped: 1}, *summary)

	report, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.NotContains(t, string(report), "readme.txt")
	assert.NotContains(t, string(report), "notes.LIC.bak")
}

func TestCollect_TruncatesExistingOutput(t *testing.T) {
	root := t.TempDir()
	output := filepath.Join(t.TempDir(), "report.txt")
	writeFile(t, output, "stale line one\nstale line two\nstale line three\n")
	writeFile(t, filepath.Join(root, "a.lic"), validLicense)

	_, err := newOrchestrator(LicenseOrchestratorConfig{}).Collect(root, output)
	require.NoError(t, err)
	assert.Len(t, readLines(t, output), 1)

	require.NoError(t, os.Remove(filepath.Join(root, "a.lic")))
	_, err = newOrchestrator(LicenseOrchestratorConfig{}).Collect(root, output)
	require.NoError(t, err)
	assert.Empty(t, readLines(t, output))
}

func TestCollect_EmptyArguments(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "report.txt")

	tests := []struct {
		name   string
		root   string
		output string
	}{
		{"empty root", "", output},
		{"empty output", dir, ""},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newOrchestrator(LicenseOrchestratorConfig{}).Collect(tt.root, tt.output)
			invalid := requireInvalidArgument(t, err)
			assert.Equal(t, "root and outputFile must not be null", invalid.Msg)

			_, statErr := os.Stat(output)
			assert.True(t, os.IsNotExist(statErr), "no output file should be created")
		})
	}
}

func TestCollect_MissingRoot(t *testing.T) {
	output := filepath.Join(t.TempDir(), "report.txt")

	_, err := newOrchestrator(LicenseOrchestratorConfig{}).Collect(filepath.Join(t.TempDir(), "missing"), output)
	invalid := requireInvalidArgument(t, err)
	assert.Equal(t, "Invalid root directory", invalid.Msg)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCollect_RootIsFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a.lic")
	writeFile(t, root, validLicense)

	_, err := newOrchestrator(LicenseOrchestratorConfig{}).Collect(root, filepath.Join(t.TempDir(), "report.txt"))
	requireInvalidArgument(t, err)

	var listing *entities.DirectoryListingError
	assert.ErrorAs(t, err, &listing)
}

func TestCollect_OutputNotWritable(t *testing.T) {
	root := t.TempDir()
	output := filepath.Join(t.TempDir(), "missing-dir", "report.txt")

	_, err := newOrchestrator(LicenseOrchestratorConfig{}).Collect(root, output)
	invalid := requireInvalidArgument(t, err)
	assert.Equal(t, "Error while processing files", invalid.Msg)
	assert.NotNil(t, invalid.Cause)
}

func TestCollect_UnreadableLicenseIsSkipped(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}

	root := t.TempDir()
	output := filepath.Join(t.TempDir(), "report.txt")
	writeFile(t, filepath.Join(root, "a.lic"), validLicense)
	locked := filepath.Join(root, "locked.lic")
	writeFile(t, locked, validLicense)
	require.NoError(t, os.Chmod(locked, 0))

	var skips []entities.Skip
	summary, err := newOrchestrator(LicenseOrchestratorConfig{
		OnSkip: func(skip entities.Skip) { skips = append(skips, skip) },
	}).Collect(root, output)
	require.NoError(t, err)

	assert.Len(t, readLines(t, output), 1)
	assert.Equal(t, 1, summary.Skipped)
	require.Len(t, skips, 1)
	var readErr *entities.FileReadError
	assert.ErrorAs(t, skips[0].Err, &readErr)
}

type stubChecker struct{}

func (stubChecker) CheckRoot(string) error { return nil }

type panickingWalker struct{}

func (panickingWalker) Walk(string, ifgateways.VisitFunc) error {
	panic("nil directory listing")
}

type failingWalker struct{ err error }

func (w failingWalker) Walk(string, ifgateways.VisitFunc) error {
	return w.err
}

func TestCollect_PanicBecomesInvalidArgument(t *testing.T) {
	o := NewLicenseOrchestrator(panickingWalker{}, stubChecker{}, services.NewLicenseService(""), nil, LicenseOrchestratorConfig{})

	_, err := o.Collect(t.TempDir(), filepath.Join(t.TempDir(), "report.txt"))
	invalid := requireInvalidArgument(t, err)
	assert.Equal(t, "Invalid argument provided", invalid.Msg)
	assert.Contains(t, err.Error(), "nil directory listing")
}

func TestCollect_WalkFailureIsWrapped(t *testing.T) {
	listing := &entities.DirectoryListingError{Path: "/x", Err: os.ErrPermission}
	o := NewLicenseOrchestrator(failingWalker{err: listing}, stubChecker{}, services.NewLicenseService(""), nil, LicenseOrchestratorConfig{})

	_, err := o.Collect(t.TempDir(), filepath.Join(t.TempDir(), "report.txt"))
	invalid := requireInvalidArgument(t, err)
	assert.Equal(t, "Error while processing files", invalid.Msg)
	assert.True(t, errors.Is(err, os.ErrPermission))
}

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Debug(string, ...interfaces.Field) {}
func (l *recordingLogger) Info(string, ...interfaces.Field)  {}
func (l *recordingLogger) Error(string, ...interfaces.Field) {}
func (l *recordingLogger) Warn(msg string, _ ...interfaces.Field) {
	l.warnings = append(l.warnings, msg)
}

func TestCollect_ReportSkipsLogs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.lic"), "License: MIT\n")

	for _, reportSkips := range []bool{false, true} {
		logger := &recordingLogger{}
		o := NewLicenseOrchestrator(
			gateways.NewLicenseFinder("", true),
			gateways.NewRootAccessChecker(),
			services.NewLicenseService(""),
			logger,
			LicenseOrchestratorConfig{ReportSkips: reportSkips},
		)

		_, err := o.Collect(root, filepath.Join(t.TempDir(), "report.txt"))
		require.NoError(t, err)

		if reportSkips {
			assert.Equal(t, []string{"Skipping license file"}, logger.warnings)
		} else {
			assert.Empty(t, logger.warnings)
		}
	}
}
