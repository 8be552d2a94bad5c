// Package updates wires the expo-updates client into a project's native
// build artifacts: an Xcode build phase plus Expo.plist on iOS, a Gradle
// include plus AndroidManifest meta-data on Android. Every write path is
// idempotent, so re-running configuration is always safe.
package updates

import (
	"fmt"

	errUtils "github.com/oste/expo-cli/errors"
	"github.com/oste/expo-cli/pkg/schema"
)

const anonymousAccount = "anonymous"

// Options is the canonical configuration consumed by both platform
// patchers: an update identity (exactly one of SdkVersion or RuntimeVersion
// is non-empty) plus the update feed URL.
type Options struct {
	SdkVersion     string
	RuntimeVersion string
	UpdateURL      string
}

// NewSdkVersionOptions creates Options keyed by SDK version.
func NewSdkVersionOptions(sdkVersion, updateURL string) Options {
	return Options{SdkVersion: sdkVersion, UpdateURL: updateURL}
}

// NewRuntimeVersionOptions creates Options keyed by runtime version.
func NewRuntimeVersionOptions(runtimeVersion, updateURL string) Options {
	return Options{RuntimeVersion: runtimeVersion, UpdateURL: updateURL}
}

// RuntimeBased reports whether the update identity is keyed by runtime
// version rather than SDK version.
func (o Options) RuntimeBased() bool {
	return o.RuntimeVersion != ""
}

// Version returns the active identity version string.
func (o Options) Version() string {
	if o.RuntimeBased() {
		return o.RuntimeVersion
	}
	return o.SdkVersion
}

// ResolveOptions derives the canonical Options from the effective app
// configuration and the authenticated username. A declared runtime version
// wins over an SDK version; when neither is present the project cannot be
// configured. Pure: no file or network access.
func ResolveOptions(exp *schema.ExpoConfig, username string) (Options, error) {
	updateURL := UpdateURL(username, exp.Slug)

	if exp.RuntimeVersion != "" {
		return NewRuntimeVersionOptions(exp.RuntimeVersion, updateURL), nil
	}
	if exp.SdkVersion != "" {
		return NewSdkVersionOptions(exp.SdkVersion, updateURL), nil
	}

	return Options{}, errUtils.Build(errUtils.ErrMissingVersionConfig).
		WithContext("slug", exp.Slug).
		WithHint("Add 'runtimeVersion' or 'sdkVersion' to the app configuration").
		Err()
}

// UpdateURL computes the canonical update feed address for the given
// account and project slug. An empty username maps to the anonymous
// account.
func UpdateURL(username, slug string) string {
	account := username
	if account == "" {
		account = anonymousAccount
	}
	return fmt.Sprintf("https://exp.host/@%s/%s", account, slug)
}
