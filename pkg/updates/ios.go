package updates

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beevik/etree"

	errUtils "github.com/oste/expo-cli/errors"
	"github.com/oste/expo-cli/pkg/filesystem"
	log "github.com/oste/expo-cli/pkg/logger"
)

const (
	bundleBuildPhaseName = "Bundle React Native code and images"
	iosIncludeFragment   = "../node_modules/expo-updates/scripts/create-manifest-ios.sh"
	xcodeProjectGlob     = "ios/*/project.pbxproj"
	xcodeProjectSuffix   = ".xcodeproj"
	supportingDirName    = "Supporting"
	expoPlistName        = "Expo.plist"

	dirPerm  = os.FileMode(0o755)
	filePerm = os.FileMode(0o644)
)

// IOSPatcher wires the update client into an Xcode project: an include line
// appended to the React Native bundling build phase, plus an Expo.plist
// carrying the update identity and feed URL.
type IOSPatcher struct {
	fs filesystem.FileSystem
}

// NewIOSPatcher creates an iOS patcher. A nil fs defaults to the OS.
func NewIOSPatcher(fs filesystem.FileSystem) *IOSPatcher {
	if fs == nil {
		fs = filesystem.NewOSFileSystem()
	}
	return &IOSPatcher{fs: fs}
}

// LocateProject finds the Xcode project file under ios/. When several
// projects match, the lexically first one wins; multi-project repositories
// are not otherwise supported.
func (p *IOSPatcher) LocateProject(root string) (string, error) {
	matches, err := p.fs.Glob(root, xcodeProjectGlob)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w under '%s'", errUtils.ErrXcodeProjectNotFound, filepath.Join(root, "ios"))
	}
	sort.Strings(matches)
	if len(matches) > 1 {
		log.Warn("Multiple Xcode projects found, using the first", "project", matches[0])
	}
	return matches[0], nil
}

// EnsureBuildPhaseInclude appends the manifest-generation include to the
// bundling build phase's shell script when it is not already there. The
// project file is rewritten only when a change was made, leaving the rest of
// the project graph byte-for-byte intact.
func (p *IOSPatcher) EnsureBuildPhaseInclude(projectPath string) (bool, error) {
	data, err := p.fs.ReadFile(projectPath)
	if err != nil {
		return false, err
	}

	patched, changed, err := appendToShellScript(string(data), bundleBuildPhaseName, iosIncludeFragment)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}

	if err := p.fs.WriteFileAtomic(projectPath, []byte(patched), filePerm); err != nil {
		return false, err
	}
	log.Debug("Appended build phase include", "project", projectPath)
	return true, nil
}

// ExpoPlistPath computes the companion plist path for an Xcode project file:
// ios/<Product>/Supporting/Expo.plist, where <Product> is the project
// directory name without its .xcodeproj suffix.
func ExpoPlistPath(projectPath string) string {
	projectDir := filepath.Dir(projectPath)
	product := strings.TrimSuffix(filepath.Base(projectDir), xcodeProjectSuffix)
	return filepath.Join(filepath.Dir(projectDir), product, supportingDirName, expoPlistName)
}

// SyncMetadataPlist makes the Expo.plist authoritative for the update
// identity and feed URL. Unrelated keys in an existing plist are preserved;
// the inactive identity mode's key is removed. Returns the plist path and
// whether the file was (re)written.
func (p *IOSPatcher) SyncMetadataPlist(projectPath string, options Options) (string, bool, error) {
	plistPath := ExpoPlistPath(projectPath)

	doc := etree.NewDocument()
	var dict *etree.Element
	changed := false

	data, err := p.fs.ReadFile(plistPath)
	switch {
	case err == nil:
		if parseErr := doc.ReadFromBytes(data); parseErr != nil {
			// Unrecognized content is treated as not configured and replaced.
			log.Warn("Could not parse existing Expo.plist, rewriting it", "path", plistPath, "error", parseErr)
			doc, dict = newPlistDocument()
			changed = true
		} else {
			dict = plistDict(doc)
		}
	case os.IsNotExist(err):
		doc, dict = newPlistDocument()
		changed = true
	default:
		return plistPath, false, err
	}

	records, stale := expectedRecords(options)
	for _, rec := range records {
		if plistSet(dict, plistKeys[rec.key], rec.value) {
			changed = true
		}
	}
	if plistDelete(dict, plistKeys[stale]) {
		changed = true
	}

	if !changed {
		return plistPath, false, nil
	}

	if err := p.fs.MkdirAll(filepath.Dir(plistPath), dirPerm); err != nil {
		return plistPath, false, err
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return plistPath, false, err
	}
	if err := p.fs.WriteFileAtomic(plistPath, out, filePerm); err != nil {
		return plistPath, false, err
	}
	log.Debug("Synchronized Expo.plist", "path", plistPath)
	return plistPath, true, nil
}

// IsConfigured reports whether the iOS side is fully wired: the build phase
// include is present and the Expo.plist carries exactly the expected
// identity and URL values. A missing or non-standard Xcode project surfaces
// as an error, not a false.
func (p *IOSPatcher) IsConfigured(root string, options Options) (bool, error) {
	projectPath, err := p.LocateProject(root)
	if err != nil {
		return false, err
	}

	data, err := p.fs.ReadFile(projectPath)
	if err != nil {
		return false, err
	}
	start, end, err := shellScriptBounds(string(data), bundleBuildPhaseName)
	if err != nil {
		return false, err
	}
	if !strings.Contains(string(data[start:end]), iosIncludeFragment) {
		return false, nil
	}

	plistPath := ExpoPlistPath(projectPath)
	plistData, err := p.fs.ReadFile(plistPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(plistData); err != nil {
		// Hand-edited beyond recognition: not configured.
		return false, nil
	}
	dict := plistDict(doc)

	records, _ := expectedRecords(options)
	for _, rec := range records {
		got, ok := plistGet(dict, plistKeys[rec.key])
		if !ok || got != rec.value {
			return false, nil
		}
	}
	return true, nil
}
