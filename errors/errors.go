package errors

import "github.com/cockroachdb/errors"

// Sentinel errors for the updates configuration engine.
// These are matched with errors.Is() through any enrichment added by ErrorBuilder.
var (
	// ErrMissingVersionConfig indicates the project declares neither a runtime
	// version nor an SDK version, so no update identity can be derived.
	ErrMissingVersionConfig = errors.New("missing version configuration: the project must declare either 'runtimeVersion' or 'sdkVersion'")

	// ErrXcodeProjectNotFound indicates no project.pbxproj was found under ios/.
	ErrXcodeProjectNotFound = errors.New("xcode project not found")

	// ErrBuildPhaseNotFound indicates the expected shell-script build phase is
	// absent from the Xcode project, signaling a non-standard project layout.
	ErrBuildPhaseNotFound = errors.New("build phase not found in xcode project")

	// ErrGradleScriptNotFound indicates android/app/build.gradle is missing.
	ErrGradleScriptNotFound = errors.New("couldn't find gradle build script")

	// ErrManifestNotFound indicates the Android manifest is missing.
	ErrManifestNotFound = errors.New("couldn't find android manifest")

	// ErrApplicationElementNotFound indicates the Android manifest has no
	// <application> element to attach meta-data to.
	ErrApplicationElementNotFound = errors.New("no 'application' element in android manifest")

	// ErrInvalidAppConfig indicates app.json or package.json could not be read or parsed.
	ErrInvalidAppConfig = errors.New("invalid or missing project configuration")

	// ErrDirtyWorkingTree indicates the surrounding repository has uncommitted
	// changes. Configuration itself succeeded; the caller recovers by prompting
	// the user to review and commit.
	ErrDirtyWorkingTree = errors.New("working tree has uncommitted changes")

	// ErrUserAborted indicates the user declined an interactive prompt.
	ErrUserAborted = errors.New("aborted by user")
)
