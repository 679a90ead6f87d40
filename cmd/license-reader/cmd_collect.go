package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochairo/license-reader/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/license-reader/internal/domain-orchestrators"
	"github.com/ochairo/license-reader/internal/domain/entities"
	"github.com/ochairo/license-reader/internal/domain/services"
	"github.com/ochairo/license-reader/internal/external-adapters/yaml"
	"github.com/ochairo/license-reader/internal/external-adapters/zap"
)

type collectOptions struct {
	configFile       string
	suffix           string
	defaultExpiresOn string
	logLevel         string
	noFollowSymlinks bool
	verbose          bool
}

func newCollectCmd() *cobra.Command {
	opts := &collectOptions{}

	cmd := &cobra.Command{
		Use:   "collect <root> <output>",
		Short: "Scan a directory tree and write the license report",
		Long: `Scan <root> recursively for license files and write one line per valid file
to <output>. An existing <output> is replaced.

Files missing License, Issued by or Issued on are skipped, as are files that
cannot be read. Use --verbose to log every skipped file.`,
		Example: `  license-reader collect ./vendor licenses.txt
  license-reader collect ./vendor licenses.txt --verbose
  license-reader collect ./vendor licenses.txt --config license-reader.yml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect(cmd, opts, args[0], args[1])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "Path to a YAML configuration file")
	flags.StringVar(&opts.suffix, "suffix", "", "License file suffix (default \".lic\")")
	flags.StringVar(&opts.defaultExpiresOn, "default-expires-on", "", "Value reported when \"Expires on\" is absent (default \"unlimited\")")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.BoolVar(&opts.noFollowSymlinks, "no-follow-symlinks", false, "Do not descend into symlinked directories")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every skipped license file")

	return cmd
}

func runCollect(cmd *cobra.Command, opts *collectOptions, root, output string) error {
	cfg, err := yaml.NewConfigRepository().LoadConfig(opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyCollectFlags(cmd, opts, cfg)

	logger, err := zap.New(cfg.Log.Level, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	//nolint:errcheck // Best-effort flush of stderr logger
	defer logger.Sync()

	orch := orchestrators.NewLicenseOrchestrator(
		gateways.NewLicenseFinder(cfg.Scan.Suffix, cfg.Scan.FollowSymlinks),
		gateways.NewRootAccessChecker(),
		services.NewLicenseService(cfg.Report.DefaultExpiresOn),
		logger,
		orchestrators.LicenseOrchestratorConfig{ReportSkips: cfg.Log.ReportSkips},
	)

	summary, err := orch.Collect(root, output)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d license line(s) to %s (%d matched, %d skipped)\n",
		summary.Written, output, summary.Matched, summary.Skipped)

	return nil
}

// applyCollectFlags lets explicitly set flags override the configuration
func applyCollectFlags(cmd *cobra.Command, opts *collectOptions, cfg *entities.Config) {
	flags := cmd.Flags()

	if flags.Changed("suffix") {
		cfg.Scan.Suffix = opts.suffix
	}
	if flags.Changed("default-expires-on") {
		cfg.Report.DefaultExpiresOn = opts.defaultExpiresOn
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if opts.noFollowSymlinks {
		cfg.Scan.FollowSymlinks = false
	}
	if opts.verbose {
		cfg.Log.ReportSkips = true
	}
}
