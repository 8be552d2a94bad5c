package updates

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/oste/expo-cli/errors"
)

func TestLocateProject(t *testing.T) {
	root := writeProjectFixture(t)
	p := NewIOSPatcher(nil)

	path, err := p.LocateProject(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "ios", "myapp.xcodeproj", "project.pbxproj"), path)
}

func TestLocateProjectNotFound(t *testing.T) {
	p := NewIOSPatcher(nil)

	_, err := p.LocateProject(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errUtils.ErrXcodeProjectNotFound))
}

func TestLocateProjectMultipleMatchesPicksFirst(t *testing.T) {
	root := t.TempDir()
	writeFixtureFile(t, root, "ios/bravo.xcodeproj/project.pbxproj", pbxprojFixture)
	writeFixtureFile(t, root, "ios/alpha.xcodeproj/project.pbxproj", pbxprojFixture)
	p := NewIOSPatcher(nil)

	path, err := p.LocateProject(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "ios", "alpha.xcodeproj", "project.pbxproj"), path)
}

func TestEnsureBuildPhaseInclude(t *testing.T) {
	root := writeProjectFixture(t)
	p := NewIOSPatcher(nil)
	projectPath, err := p.LocateProject(root)
	require.NoError(t, err)

	changed, err := p.EnsureBuildPhaseInclude(projectPath)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, readFile(t, projectPath), iosIncludeFragment)

	// Second run leaves the file byte-identical.
	after := readFile(t, projectPath)
	changed, err = p.EnsureBuildPhaseInclude(projectPath)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, after, readFile(t, projectPath))
}

func TestEnsureBuildPhaseIncludeAlreadyPresent(t *testing.T) {
	root := t.TempDir()
	preconfigured, _, err := appendToShellScript(pbxprojFixture, bundleBuildPhaseName, iosIncludeFragment)
	require.NoError(t, err)
	projectPath := writeFixtureFile(t, root, "ios/myapp.xcodeproj/project.pbxproj", preconfigured)

	p := NewIOSPatcher(nil)
	changed, err := p.EnsureBuildPhaseInclude(projectPath)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, preconfigured, readFile(t, projectPath))
}

func TestExpoPlistPath(t *testing.T) {
	path := ExpoPlistPath(filepath.Join("proj", "ios", "myapp.xcodeproj", "project.pbxproj"))
	assert.Equal(t, filepath.Join("proj", "ios", "myapp", "Supporting", "Expo.plist"), path)
}

func TestSyncMetadataPlistCreatesFile(t *testing.T) {
	root := writeProjectFixture(t)
	p := NewIOSPatcher(nil)
	projectPath, err := p.LocateProject(root)
	require.NoError(t, err)

	options := NewRuntimeVersionOptions("1.0.0", "https://exp.host/@alice/myapp")
	plistPath, changed, err := p.SyncMetadataPlist(projectPath, options)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, filepath.Join(root, "ios", "myapp", "Supporting", "Expo.plist"), plistPath)

	content := readFile(t, plistPath)
	assert.Contains(t, content, "EXUpdatesRuntimeVersion")
	assert.Contains(t, content, "1.0.0")
	assert.Contains(t, content, "EXUpdatesURL")
	assert.Contains(t, content, "https://exp.host/@alice/myapp")
	assert.NotContains(t, content, "EXUpdatesSDKVersion")
}

func TestSyncMetadataPlistPreservesUnrelatedKeys(t *testing.T) {
	root := writeProjectFixture(t)
	existing := `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
  <key>CustomSetting</key>
  <string>keep-me</string>
</dict>
</plist>
`
	writeFixtureFile(t, root, "ios/myapp/Supporting/Expo.plist", existing)

	p := NewIOSPatcher(nil)
	projectPath, err := p.LocateProject(root)
	require.NoError(t, err)

	options := NewSdkVersionOptions("43.0.0", "https://exp.host/@alice/myapp")
	plistPath, changed, err := p.SyncMetadataPlist(projectPath, options)
	require.NoError(t, err)
	assert.True(t, changed)

	content := readFile(t, plistPath)
	assert.Contains(t, content, "CustomSetting")
	assert.Contains(t, content, "keep-me")
	assert.Contains(t, content, "EXUpdatesSDKVersion")
}

func TestSyncMetadataPlistModeSwitch(t *testing.T) {
	root := writeProjectFixture(t)
	p := NewIOSPatcher(nil)
	projectPath, err := p.LocateProject(root)
	require.NoError(t, err)

	sdk := NewSdkVersionOptions("43.0.0", "https://exp.host/@alice/myapp")
	_, _, err = p.SyncMetadataPlist(projectPath, sdk)
	require.NoError(t, err)

	runtime := NewRuntimeVersionOptions("1.0.0", "https://exp.host/@alice/myapp")
	plistPath, changed, err := p.SyncMetadataPlist(projectPath, runtime)
	require.NoError(t, err)
	assert.True(t, changed)

	content := readFile(t, plistPath)
	assert.Contains(t, content, "EXUpdatesRuntimeVersion")
	assert.NotContains(t, content, "EXUpdatesSDKVersion")
}

func TestSyncMetadataPlistIdempotent(t *testing.T) {
	root := writeProjectFixture(t)
	p := NewIOSPatcher(nil)
	projectPath, err := p.LocateProject(root)
	require.NoError(t, err)

	options := NewRuntimeVersionOptions("1.0.0", "https://exp.host/@alice/myapp")
	plistPath, _, err := p.SyncMetadataPlist(projectPath, options)
	require.NoError(t, err)
	first := readFile(t, plistPath)

	_, changed, err := p.SyncMetadataPlist(projectPath, options)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, first, readFile(t, plistPath))
}

func TestIOSIsConfigured(t *testing.T) {
	root := writeProjectFixture(t)
	p := NewIOSPatcher(nil)
	options := NewRuntimeVersionOptions("1.0.0", "https://exp.host/@alice/myapp")

	ok, err := p.IsConfigured(root, options)
	require.NoError(t, err)
	assert.False(t, ok)

	projectPath, err := p.LocateProject(root)
	require.NoError(t, err)
	_, err = p.EnsureBuildPhaseInclude(projectPath)
	require.NoError(t, err)

	// Include alone is not enough: the plist must exist and match.
	ok, err = p.IsConfigured(root, options)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = p.SyncMetadataPlist(projectPath, options)
	require.NoError(t, err)

	ok, err = p.IsConfigured(root, options)
	require.NoError(t, err)
	assert.True(t, ok)

	// A different expected version no longer matches.
	other := NewRuntimeVersionOptions("2.0.0", "https://exp.host/@alice/myapp")
	ok, err = p.IsConfigured(root, other)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIOSIsConfiguredMetadataWithoutInclude(t *testing.T) {
	// Matching metadata does not count when the build-phase include is absent.
	root := writeProjectFixture(t)
	p := NewIOSPatcher(nil)
	options := NewRuntimeVersionOptions("1.0.0", "https://exp.host/@alice/myapp")

	projectPath, err := p.LocateProject(root)
	require.NoError(t, err)
	_, _, err = p.SyncMetadataPlist(projectPath, options)
	require.NoError(t, err)

	ok, err := p.IsConfigured(root, options)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIOSIsConfiguredQuotesNotNormalized(t *testing.T) {
	// Values must match exactly, no normalization.
	root := writeProjectFixture(t)
	p := NewIOSPatcher(nil)

	projectPath, err := p.LocateProject(root)
	require.NoError(t, err)
	_, err = p.EnsureBuildPhaseInclude(projectPath)
	require.NoError(t, err)
	_, _, err = p.SyncMetadataPlist(projectPath, NewRuntimeVersionOptions("1.0.0", "https://exp.host/@alice/myapp"))
	require.NoError(t, err)

	ok, err := p.IsConfigured(root, NewRuntimeVersionOptions("1.0.0", "https://exp.host/@Alice/myapp"))
	require.NoError(t, err)
	assert.False(t, ok)

	if !strings.Contains(readFile(t, ExpoPlistPath(projectPath)), "alice") {
		t.Fatal("fixture should contain the original account name")
	}
}
