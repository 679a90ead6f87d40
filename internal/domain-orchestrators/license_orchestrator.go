// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ochairo/license-reader/internal/domain/entities"
	"github.com/ochairo/license-reader/internal/domain/interfaces"
	"github.com/ochairo/license-reader/internal/domain/interfaces/gateways"
	"github.com/ochairo/license-reader/internal/domain/interfaces/services"
)

// SkipFunc is notified about every license file left out of the report
type SkipFunc func(skip entities.Skip)

// LicenseOrchestrator coordinates the scan-parse-report workflow
type LicenseOrchestrator struct {
	walker      gateways.TreeWalker
	checker     gateways.AccessChecker
	licenses    services.LicenseService
	logger      interfaces.Logger
	onSkip      SkipFunc
	reportSkips bool
}

// LicenseOrchestratorConfig holds optional settings for the orchestrator
type LicenseOrchestratorConfig struct {
	// OnSkip receives skipped files. Nil keeps skips silent.
	OnSkip SkipFunc
	// ReportSkips logs every skipped file at warn level
	ReportSkips bool
}

// NewLicenseOrchestrator creates a new license orchestrator. A nil logger
// is replaced by interfaces.NoOpLogger.
func NewLicenseOrchestrator(
	walker gateways.TreeWalker,
	checker gateways.AccessChecker,
	licenses services.LicenseService,
	logger interfaces.Logger,
	config LicenseOrchestratorConfig,
) *LicenseOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &LicenseOrchestrator{
		walker:      walker,
		checker:     checker,
		licenses:    licenses,
		logger:      logger,
		onSkip:      config.OnSkip,
		reportSkips: config.ReportSkips,
	}
}

// Collect scans root for license files and writes one summary line per
// valid file to outputFile, replacing any previous content. Every failure
// is returned as *entities.InvalidArgumentError; malformed or unreadable
// license files are skipped.
func (o *LicenseOrchestrator) Collect(root, outputFile string) (summary *entities.Summary, err error) {
	summary = &entities.Summary{}

	defer func() {
		if r := recover(); r != nil {
			err = entities.NewInvalidArgument("Invalid argument provided", fmt.Errorf("panic: %v", r))
		}
	}()

	if root == "" || outputFile == "" {
		return summary, entities.NewInvalidArgument("root and outputFile must not be null", nil)
	}

	if err := o.checker.CheckRoot(root); err != nil {
		return summary, entities.NewInvalidArgument("Invalid root directory", err)
	}

	startTime := time.Now()
	o.logger.Debug("Collecting licenses", interfaces.F("root", root), interfaces.F("output", outputFile))

	// Best-effort: os.Create below surfaces any real problem
	_ = os.Remove(outputFile)

	//nolint:gosec // G304: outputFile is the user-provided report path
	out, err := os.Create(outputFile)
	if err != nil {
		return summary, entities.NewInvalidArgument("Error while processing files", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = entities.NewInvalidArgument("Error while processing files", closeErr)
		}
	}()

	writer := bufio.NewWriter(out)

	walkErr := o.walker.Walk(root, func(path, name string) error {
		summary.Matched++
		return o.processLicenseFile(path, name, writer, summary)
	})
	if walkErr != nil {
		return summary, entities.NewInvalidArgument("Error while processing files", walkErr)
	}

	if err := writer.Flush(); err != nil {
		return summary, entities.NewInvalidArgument("Error while processing files", err)
	}

	o.logger.Debug("Licenses collected",
		interfaces.F("matched", summary.Matched),
		interfaces.F("written", summary.Written),
		interfaces.F("skipped", summary.Skipped),
		interfaces.F("duration", time.Since(startTime)))

	return summary, nil
}

// processLicenseFile parses one file and appends its line to writer.
// Read and validation failures only skip the file; write failures end the run.
func (o *LicenseOrchestrator) processLicenseFile(path, name string, writer *bufio.Writer, summary *entities.Summary) error {
	//nolint:gosec // G304: path was discovered below the user-provided root
	f, err := os.Open(path)
	if err != nil {
		o.skip(summary, entities.Skip{Path: path, FileName: name, Err: &entities.FileReadError{Path: path, Err: err}})
		return nil
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	record, err := o.licenses.Parse(f, name)
	if err != nil {
		var malformed *entities.MalformedLicenseError
		if !errors.As(err, &malformed) {
			err = &entities.FileReadError{Path: path, Err: err}
		}
		o.skip(summary, entities.Skip{Path: path, FileName: name, Err: err})
		return nil
	}

	if err := o.licenses.Emit(writer, record); err != nil {
		return err
	}
	summary.Written++

	return nil
}

func (o *LicenseOrchestrator) skip(summary *entities.Summary, skip entities.Skip) {
	summary.Skipped++

	if o.reportSkips {
		o.logger.Warn("Skipping license file", interfaces.F("path", skip.Path), interfaces.Err(skip.Err))
	}
	if o.onSkip != nil {
		o.onSkip(skip)
	}
}
