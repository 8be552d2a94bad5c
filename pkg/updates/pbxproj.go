package updates

import (
	"fmt"
	"strings"

	errUtils "github.com/oste/expo-cli/errors"
)

const (
	shellScriptAttr = `shellScript = "`
	newlineEscape   = `\n`
)

// shellScriptBounds locates the shellScript string literal of the
// PBXShellScriptBuildPhase named phaseName inside a raw pbxproj document.
// It returns the byte offsets of the script content between (not including)
// the surrounding quotes. The pbxproj format escapes embedded quotes and
// newlines with backslashes, so the closing quote is found with an
// escape-aware scan.
func shellScriptBounds(project, phaseName string) (start, end int, err error) {
	nameNeedle := fmt.Sprintf("name = %q;", phaseName)
	nameIdx := strings.Index(project, nameNeedle)
	if nameIdx < 0 {
		return 0, 0, fmt.Errorf("%w: no build phase named %q", errUtils.ErrBuildPhaseNotFound, phaseName)
	}

	// The shellScript attribute follows the name attribute within the same
	// phase block. Bound the search by the block terminator so a script from
	// a later block is never picked up.
	rest := project[nameIdx:]
	blockEnd := strings.Index(rest, "};")
	open := strings.Index(rest, shellScriptAttr)
	if open < 0 || (blockEnd >= 0 && open > blockEnd) {
		return 0, 0, fmt.Errorf("%w: build phase %q has no shellScript", errUtils.ErrBuildPhaseNotFound, phaseName)
	}

	start = nameIdx + open + len(shellScriptAttr)
	for i := start; i < len(project); {
		switch project[i] {
		case '\\':
			i += 2
		case '"':
			return start, i, nil
		default:
			i++
		}
	}

	return 0, 0, fmt.Errorf("%w: unterminated shellScript string for build phase %q", errUtils.ErrBuildPhaseNotFound, phaseName)
}

// appendToShellScript returns the project with fragment appended to the tail
// of the named build phase's script string, immediately before the closing
// quote, followed by a newline escape so the script stays syntactically
// valid. When the script already contains fragment the project is returned
// unchanged (changed=false) with every byte intact.
func appendToShellScript(project, phaseName, fragment string) (result string, changed bool, err error) {
	start, end, err := shellScriptBounds(project, phaseName)
	if err != nil {
		return "", false, err
	}

	script := project[start:end]
	if strings.Contains(script, fragment) {
		return project, false, nil
	}

	insert := fragment + newlineEscape
	if !strings.HasSuffix(script, newlineEscape) {
		insert = newlineEscape + insert
	}

	return project[:end] + insert + project[end:], true, nil
}
