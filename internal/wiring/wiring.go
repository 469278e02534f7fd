// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/hypercompute/seedlock/internal/adapters/config"
	_ "github.com/hypercompute/seedlock/internal/adapters/github"
	_ "github.com/hypercompute/seedlock/internal/adapters/logger"
	_ "github.com/hypercompute/seedlock/internal/adapters/uv"
	// Register app nodes.
	_ "github.com/hypercompute/seedlock/internal/app"
)
