package updates

import (
	"path/filepath"

	"github.com/oste/expo-cli/pkg/filesystem"
	log "github.com/oste/expo-cli/pkg/logger"
	"github.com/oste/expo-cli/pkg/schema"
)

// UpdatesPackageName is the update-client dependency whose presence gates
// all configuration work.
const UpdatesPackageName = "expo-updates"

// Engine orchestrates the platform patchers under one idempotency contract.
type Engine struct {
	ios     *IOSPatcher
	android *AndroidPatcher
}

// NewEngine creates an engine. A nil fs defaults to the OS.
func NewEngine(fs filesystem.FileSystem) *Engine {
	if fs == nil {
		fs = filesystem.NewOSFileSystem()
	}
	return &Engine{
		ios:     NewIOSPatcher(fs),
		android: NewAndroidPatcher(fs),
	}
}

// Installed reports whether the update client appears among the project's
// declared dependencies.
func (e *Engine) Installed(pkg *schema.PackageJSON) bool {
	return pkg.HasDependency(UpdatesPackageName)
}

// ConfigureResult describes what Configure did, so the caller can stage the
// touched files and drive the commit flow.
type ConfigureResult struct {
	// Applied is false when the update client is not installed and the call
	// was a no-op.
	Applied bool
	// ChangedFiles are files whose contents were rewritten.
	ChangedFiles []string
	// CreatedFiles are files that may not have existed before and must be
	// staged even when unchanged, so brand-new files become tracked.
	CreatedFiles []string
}

// Configure idempotently wires the update client into both platforms'
// native build artifacts. When the update client is not installed it is a
// silent no-op. Writes are not transactional: a failure on one platform
// leaves the other platform's completed writes on disk, which is safe
// because every write path is idempotent.
func (e *Engine) Configure(root string, exp *schema.ExpoConfig, pkg *schema.PackageJSON, username string) (*ConfigureResult, error) {
	if !e.Installed(pkg) {
		log.Debug("Update client is not installed, nothing to configure", "package", UpdatesPackageName)
		return &ConfigureResult{Applied: false}, nil
	}

	options, err := ResolveOptions(exp, username)
	if err != nil {
		return nil, err
	}

	result := &ConfigureResult{Applied: true}

	projectPath, err := e.ios.LocateProject(root)
	if err != nil {
		return nil, err
	}
	changed, err := e.ios.EnsureBuildPhaseInclude(projectPath)
	if err != nil {
		return nil, err
	}
	if changed {
		result.ChangedFiles = append(result.ChangedFiles, projectPath)
	}
	plistPath, _, err := e.ios.SyncMetadataPlist(projectPath, options)
	if err != nil {
		return nil, err
	}
	result.CreatedFiles = append(result.CreatedFiles, plistPath)

	changed, err = e.android.EnsureBuildScriptInclude(root)
	if err != nil {
		return nil, err
	}
	if changed {
		result.ChangedFiles = append(result.ChangedFiles, filepath.Join(root, gradleScriptRelPath))
	}
	changed, err = e.android.SyncManifestMetadata(root, options)
	if err != nil {
		return nil, err
	}
	if changed {
		result.ChangedFiles = append(result.ChangedFiles, filepath.Join(root, manifestRelPath))
	}

	return result, nil
}

// IsConfigured re-derives the expected metadata and re-reads on-disk state
// to answer whether configuration is already complete. When the update
// client is not installed there is nothing to configure, so the invariant
// trivially holds and the result is true. A missing platform directory is
// an error, not a false: "not configured" is reserved for cleanly
// recognizable unconfigured state.
func (e *Engine) IsConfigured(root string, exp *schema.ExpoConfig, pkg *schema.PackageJSON, username string) (bool, error) {
	if !e.Installed(pkg) {
		return true, nil
	}

	options, err := ResolveOptions(exp, username)
	if err != nil {
		return false, err
	}

	iosOK, err := e.ios.IsConfigured(root, options)
	if err != nil {
		return false, err
	}
	androidOK, err := e.android.IsConfigured(root, options)
	if err != nil {
		return false, err
	}

	return iosOK && androidOK, nil
}
