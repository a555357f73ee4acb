// Package config provides the workspace configuration loader for orcdev.
package config

import (
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/orcdev/internal/core/domain"
	"go.trai.ch/orcdev/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using an optional YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load returns the workspace rooted at cwd. When no orcdev.yaml exists the
// fixed default layout is returned unchanged.
func (l *Loader) Load(cwd string) (domain.Workspace, error) {
	ws := domain.DefaultWorkspace(cwd)

	configPath := filepath.Join(cwd, domain.ConfigFileName)
	data, err := os.ReadFile(configPath) //nolint:gosec // path is cwd + fixed name
	if err != nil {
		if os.IsNotExist(err) {
			return ws, nil
		}
		return domain.Workspace{}, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Workspace{}, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}

	if err := apply(&ws, &file, cwd); err != nil {
		return domain.Workspace{}, err
	}
	return ws, nil
}

// apply overlays the parsed file onto the default workspace.
func apply(ws *domain.Workspace, file *File, cwd string) error {
	applyProject(&ws.Library, file.Library, cwd)
	applyProject(&ws.Server, file.Server, cwd)

	if file.Artifact != "" {
		ws.ArtifactPath = resolve(cwd, file.Artifact)
	}
	if file.Publish != "" {
		ws.PublishPath = resolve(cwd, file.Publish)
	}

	if file.Frontend != nil {
		if file.Frontend.Dir != "" {
			ws.Frontend.Dir = resolve(cwd, file.Frontend.Dir)
		}
		if len(file.Frontend.Cmd) > 0 {
			ws.Frontend.Command = file.Frontend.Cmd
		}
		if file.Frontend.Marker != "" {
			ws.ReadinessMarker = file.Frontend.Marker
		}
	}

	if file.Grace != "" {
		grace, err := time.ParseDuration(file.Grace)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "field", "grace")
		}
		ws.GracePeriod = grace
	}
	return nil
}

func applyProject(target *domain.Target, dto *ProjectDTO, cwd string) {
	if dto == nil {
		return
	}
	if dto.Dir != "" {
		target.Dir = resolve(cwd, dto.Dir)
	}
	if len(dto.Cmd) > 0 {
		target.Command = dto.Cmd
	}
}

func resolve(cwd, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cwd, path)
}
