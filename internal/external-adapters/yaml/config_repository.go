package yaml

import (
	"fmt"
	"os"

	"github.com/ochairo/license-reader/internal/domain/entities"
	"github.com/ochairo/license-reader/internal/domain/interfaces/repositories"
)

// ConfigRepository implements repositories.ConfigRepository using YAML files
type ConfigRepository struct {
	parser *ConfigParser
}

var _ repositories.ConfigRepository = (*ConfigRepository)(nil)

// NewConfigRepository creates a new YAML-based config repository
func NewConfigRepository() *ConfigRepository {
	return &ConfigRepository{
		parser: NewConfigParser(),
	}
}

// LoadConfig reads the configuration file at path. An empty path returns
// the defaults; a path that does not exist is an error.
func (r *ConfigRepository) LoadConfig(path string) (*entities.Config, error) {
	if path == "" {
		return entities.DefaultConfig(), nil
	}

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config not found: %s", path)
	}

	return r.parser.ParseFile(path)
}
