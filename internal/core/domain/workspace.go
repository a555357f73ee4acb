package domain

import (
	"path/filepath"
	"runtime"
	"time"
)

const (
	// ConfigFileName is the optional workspace configuration file.
	ConfigFileName = "orcdev.yaml"

	// DefaultLibraryDir is the upstream language library crate, expected as
	// a sibling of the orchestrator's working directory.
	DefaultLibraryDir = "../orchid"
	// DefaultServerDir is the downstream language server crate, nested
	// under the working directory.
	DefaultServerDir = "server"
	// DefaultPublishDir is where the server binary is published for the
	// IDE extension to pick up.
	DefaultPublishDir = "out"

	// DefaultReadinessMarker is the literal substring the front-end bundler
	// prints once its watch mode is fully initialized. This is an external
	// contract: if the bundler's output format changes, readiness is never
	// observed.
	DefaultReadinessMarker = "[watch] build finished"

	// DefaultGracePeriod is how long shutdown waits for in-flight
	// subprocess teardown before the process exits.
	DefaultGracePeriod = 500 * time.Millisecond

	serverBinaryName = "orcls"
)

// WatchedExtensions are the file extensions that trigger a rebuild:
// Rust sources and Cargo manifests.
var WatchedExtensions = []string{"rs", "toml"}

// Workspace describes the directories, commands and artifact paths the
// orchestrator drives. Field values come from DefaultWorkspace, optionally
// overridden by ConfigFileName.
type Workspace struct {
	Library Target
	Server  Target

	// ArtifactPath is the executable a successful server build produces.
	ArtifactPath string
	// PublishPath is where the artifact is copied on success. The IDE
	// extension reads this location and must tolerate it being briefly
	// absent or stale during a rebuild.
	PublishPath string

	// Frontend is the companion watch command for the IDE extension
	// bundle, supervised through a pty for the whole session.
	Frontend Target
	// ReadinessMarker is the output substring that resolves the
	// front-end's one-shot readiness signal.
	ReadinessMarker string

	GracePeriod time.Duration
}

// ServerBinaryName returns the platform-specific name of the server
// executable.
func ServerBinaryName() string {
	if runtime.GOOS == "windows" {
		return serverBinaryName + ".exe"
	}
	return serverBinaryName
}

// DefaultWorkspace returns the fixed workspace layout rooted at cwd.
func DefaultWorkspace(cwd string) Workspace {
	libraryDir := filepath.Join(cwd, DefaultLibraryDir)
	serverDir := filepath.Join(cwd, DefaultServerDir)
	return Workspace{
		Library: Target{
			Name:    "library",
			Dir:     libraryDir,
			Command: []string{"cargo", "build"},
		},
		Server: Target{
			Name:    "server",
			Dir:     serverDir,
			Command: []string{"cargo", "build"},
		},
		ArtifactPath: filepath.Join(serverDir, "target", "debug", ServerBinaryName()),
		PublishPath:  filepath.Join(cwd, DefaultPublishDir, ServerBinaryName()),
		Frontend: Target{
			Name:    "frontend",
			Dir:     cwd,
			Command: []string{"npm", "run", "watch"},
		},
		ReadinessMarker: DefaultReadinessMarker,
		GracePeriod:     DefaultGracePeriod,
	}
}
