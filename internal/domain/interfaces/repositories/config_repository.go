// Package repositories defines interfaces for data access layers.
package repositories

import (
	"github.com/ochairo/license-reader/internal/domain/entities"
)

// ConfigRepository defines the interface for loading run configuration
type ConfigRepository interface {
	// LoadConfig reads the configuration at path. An empty path yields the defaults.
	LoadConfig(path string) (*entities.Config, error)
}
