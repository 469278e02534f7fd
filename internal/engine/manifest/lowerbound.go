package manifest

import (
	"os"
	"regexp"
	"strings"

	"github.com/hypercompute/seedlock/internal/core/domain"
	"go.trai.ch/zerr"
)

// dependenciesRe matches the descriptor's dependencies array, including any
// existing entries, across lines.
var dependenciesRe = regexp.MustCompile(`(?m)^dependencies\s*=\s*\[(\n+\s*.*,\s*)*[\n\r]*\]`)

// PinnedLines reads a lock file and keeps only the pinned entries: lines
// containing an exact-version pin ("==") or a source reference ("@"), and no
// comment marker. Everything else is dropped, not rewritten.
func PinnedLines(lockPath string) ([]string, error) {
	//nolint:gosec // lockPath names a workspace-local export
	content, err := os.ReadFile(lockPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read lock file"), "path", lockPath)
	}

	var pinned []string
	for _, line := range strings.Split(string(content), "\n") {
		if strings.Contains(line, "#") {
			continue
		}
		if strings.Contains(line, "==") || strings.Contains(line, "@") {
			pinned = append(pinned, strings.TrimSpace(line))
		}
	}
	return pinned, nil
}

// ToLowerBound converts exact-version pins to minimum-version floors.
// Source references without a pin pass through unchanged.
func ToLowerBound(pinned []string) []string {
	lower := make([]string, 0, len(pinned))
	for _, dep := range pinned {
		lower = append(lower, strings.ReplaceAll(dep, "==", ">="))
	}
	return lower
}

// LowerBound rewrites the descriptor's dependencies array with the
// lower-bounded contents of the lock file at lockPath. The descriptor must
// already contain a dependencies array; its absence fails with
// domain.ErrMalformedManifest.
func LowerBound(lockPath, descriptorPath string) error {
	pinned, err := PinnedLines(lockPath)
	if err != nil {
		return err
	}
	block := formatDependencies(ToLowerBound(pinned))

	//nolint:gosec // descriptorPath names the workspace-local descriptor
	content, err := os.ReadFile(descriptorPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read project descriptor"), "path", descriptorPath)
	}

	if !dependenciesRe.Match(content) {
		return zerr.With(domain.ErrMalformedManifest, "path", descriptorPath)
	}

	updated := dependenciesRe.ReplaceAllLiteralString(string(content), block)
	if err := atomicWriteFile(descriptorPath, []byte(updated)); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write project descriptor"), "path", descriptorPath)
	}
	return nil
}

// formatDependencies renders deps as the descriptor's quoted array block.
func formatDependencies(deps []string) string {
	if len(deps) == 0 {
		return "dependencies = [\n]"
	}
	return "dependencies = [\n    \"" + strings.Join(deps, "\",\n    \"") + "\"\n]"
}
