package updates

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	errUtils "github.com/oste/expo-cli/errors"
	"github.com/oste/expo-cli/pkg/filesystem"
	log "github.com/oste/expo-cli/pkg/logger"
)

const (
	gradleScriptRelPath = "android/app/build.gradle"
	manifestRelPath     = "android/app/src/main/AndroidManifest.xml"

	androidIncludePath    = "../../node_modules/expo-updates/scripts/create-manifest-android.gradle"
	androidIncludeComment = "// Integration with Expo updates"

	manifestNameAttr  = "android:name"
	manifestValueAttr = "android:value"
)

// androidIncludeLine is the canonical include appended to the gradle build
// script. Detection tolerates the single-quoted variant as well.
var androidIncludeLine = fmt.Sprintf("apply from: %q", androidIncludePath)

// AndroidPatcher wires the update client into the Android build: an include
// line appended to app/build.gradle, plus meta-data elements in the Android
// manifest carrying the update identity and feed URL.
type AndroidPatcher struct {
	fs filesystem.FileSystem
}

// NewAndroidPatcher creates an Android patcher. A nil fs defaults to the OS.
func NewAndroidPatcher(fs filesystem.FileSystem) *AndroidPatcher {
	if fs == nil {
		fs = filesystem.NewOSFileSystem()
	}
	return &AndroidPatcher{fs: fs}
}

// hasGradleInclude reports whether any line of the build script matches the
// include, accepting both double- and single-quoted variants.
func hasGradleInclude(content string) bool {
	single := fmt.Sprintf("apply from: '%s'", androidIncludePath)
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == androidIncludeLine || trimmed == single {
			return true
		}
	}
	return false
}

// EnsureBuildScriptInclude appends the manifest-generation include to
// android/app/build.gradle when no quote variant of it is present.
// Repeated calls after the first are no-ops.
func (p *AndroidPatcher) EnsureBuildScriptInclude(root string) (bool, error) {
	path := filepath.Join(root, gradleScriptRelPath)
	data, err := p.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Errorf("%w at '%s'", errUtils.ErrGradleScriptNotFound, path)
		}
		return false, err
	}

	content := string(data)
	if hasGradleInclude(content) {
		return false, nil
	}

	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += "\n" + androidIncludeComment + "\n" + androidIncludeLine + "\n"

	if err := p.fs.WriteFileAtomic(path, []byte(content), filePerm); err != nil {
		return false, err
	}
	log.Debug("Appended gradle include", "path", path)
	return true, nil
}

// SyncManifestMetadata makes the Android manifest's meta-data elements
// authoritative for the update identity and feed URL. Existing records are
// overwritten in place; missing records are appended to the application
// element; the inactive identity mode's record is removed. The file is
// rewritten only when a record changed.
func (p *AndroidPatcher) SyncManifestMetadata(root string, options Options) (bool, error) {
	path := filepath.Join(root, manifestRelPath)
	data, err := p.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Errorf("%w at '%s'", errUtils.ErrManifestNotFound, path)
		}
		return false, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return false, fmt.Errorf("%w at '%s'", errUtils.ErrManifestNotFound, path)
	}

	app := applicationElement(doc)
	if app == nil {
		return false, fmt.Errorf("%w at '%s'", errUtils.ErrApplicationElementNotFound, path)
	}

	changed := false

	records, stale := expectedRecords(options)
	if removeMetadataElement(app, manifestKeys[stale]) {
		changed = true
	}
	for _, rec := range records {
		if upsertMetadataElement(app, manifestKeys[rec.key], rec.value) {
			changed = true
		}
	}

	if !changed {
		return false, nil
	}

	out, err := doc.WriteToBytes()
	if err != nil {
		return false, err
	}
	if err := p.fs.WriteFileAtomic(path, out, filePerm); err != nil {
		return false, err
	}
	log.Debug("Synchronized Android manifest", "path", path)
	return true, nil
}

// applicationElement returns the first application element of the manifest.
func applicationElement(doc *etree.Document) *etree.Element {
	root := doc.Root()
	if root == nil {
		return nil
	}
	return root.SelectElement("application")
}

// findMetadataElement scans the application element's meta-data children for
// a record with the given name.
func findMetadataElement(app *etree.Element, name string) *etree.Element {
	for _, el := range app.SelectElements("meta-data") {
		if el.SelectAttrValue(manifestNameAttr, "") == name {
			return el
		}
	}
	return nil
}

// upsertMetadataElement overwrites the record's value in place when it
// exists, otherwise appends a new meta-data element. Reports whether the
// document was modified.
func upsertMetadataElement(app *etree.Element, name, value string) bool {
	if el := findMetadataElement(app, name); el != nil {
		if el.SelectAttrValue(manifestValueAttr, "") == value {
			return false
		}
		el.CreateAttr(manifestValueAttr, value)
		return true
	}
	el := app.CreateElement("meta-data")
	el.CreateAttr(manifestNameAttr, name)
	el.CreateAttr(manifestValueAttr, value)
	return true
}

// removeMetadataElement deletes the record with the given name when present.
func removeMetadataElement(app *etree.Element, name string) bool {
	if el := findMetadataElement(app, name); el != nil {
		app.RemoveChild(el)
		return true
	}
	return false
}

// IsConfigured reports whether the Android side is fully wired: the gradle
// include line is present and the manifest carries exactly the expected
// identity and URL records. Missing files surface as errors, not a false.
func (p *AndroidPatcher) IsConfigured(root string, options Options) (bool, error) {
	gradlePath := filepath.Join(root, gradleScriptRelPath)
	data, err := p.fs.ReadFile(gradlePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Errorf("%w at '%s'", errUtils.ErrGradleScriptNotFound, gradlePath)
		}
		return false, err
	}
	if !hasGradleInclude(string(data)) {
		return false, nil
	}

	manifestPath := filepath.Join(root, manifestRelPath)
	manifestData, err := p.fs.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Errorf("%w at '%s'", errUtils.ErrManifestNotFound, manifestPath)
		}
		return false, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(manifestData); err != nil {
		return false, nil
	}
	app := applicationElement(doc)
	if app == nil {
		return false, nil
	}

	records, _ := expectedRecords(options)
	for _, rec := range records {
		el := findMetadataElement(app, manifestKeys[rec.key])
		if el == nil || el.SelectAttrValue(manifestValueAttr, "") != rec.value {
			return false, nil
		}
	}
	return true, nil
}
