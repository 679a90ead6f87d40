package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ochairo/license-reader/internal/domain/entities"
	"github.com/ochairo/license-reader/internal/domain/services"
)

func newInspectCmd() *cobra.Command {
	var defaultExpiresOn string

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Parse a single license file and print its report line",
		Long: `Parse one license file and print the line collect would write for it.
Exits with an error when the file would be skipped.`,
		Example: `  license-reader inspect vendor/acme/acme.lic`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], defaultExpiresOn)
		},
	}

	cmd.Flags().StringVar(&defaultExpiresOn, "default-expires-on", entities.DefaultExpiresOn, "Value reported when \"Expires on\" is absent")

	return cmd
}

func runInspect(cmd *cobra.Command, path, defaultExpiresOn string) error {
	//nolint:gosec // G304: path is the user-provided license file
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open license file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	return services.NewLicenseService(defaultExpiresOn).ParseAndEmit(f, filepath.Base(path), cmd.OutOrStdout())
}
