package ports

import "go.trai.ch/orcdev/internal/core/domain"

// ConfigLoader resolves the workspace layout for a working directory.
type ConfigLoader interface {
	// Load returns the workspace rooted at cwd: the fixed default layout,
	// optionally overridden by an orcdev.yaml file.
	Load(cwd string) (domain.Workspace, error)
}
