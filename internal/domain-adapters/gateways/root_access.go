package gateways

import (
	"fmt"
	"os"

	"github.com/ochairo/license-reader/internal/domain/interfaces/gateways"
)

// rootAccessChecker validates scan roots before a run starts
type rootAccessChecker struct{}

// NewRootAccessChecker creates a new root access checker
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewRootAccessChecker() *rootAccessChecker {
	return &rootAccessChecker{}
}

var _ gateways.AccessChecker = (*rootAccessChecker)(nil)

// CheckRoot fails when root does not exist, cannot be read or, if it is a
// directory, cannot be searched
func (c *rootAccessChecker) CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root does not exist: %w", err)
	}

	if err := checkAccess(root, info.IsDir()); err != nil {
		return fmt.Errorf("root is not accessible: %w", err)
	}

	return nil
}
