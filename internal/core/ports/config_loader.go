package ports

import "github.com/hypercompute/seedlock/internal/core/domain"

// ConfigLoader defines the interface for assembling the run configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load returns the defaults overlaid with the optional config file at
	// path. An empty path means "use the default location if present".
	Load(path string) (domain.Config, error)
}
