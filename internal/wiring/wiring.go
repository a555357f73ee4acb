// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/orcdev/internal/adapters/config"
	_ "go.trai.ch/orcdev/internal/adapters/logger"
	_ "go.trai.ch/orcdev/internal/adapters/shell"
	// Register app nodes.
	_ "go.trai.ch/orcdev/internal/app"
)
