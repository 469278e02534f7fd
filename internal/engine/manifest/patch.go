// Package manifest implements the text transforms applied to dependency
// manifests and project descriptors: fixed substitutions, the lower-bound
// rewrite, descriptor generation and constraints parsing.
package manifest

import (
	"os"
	"strings"

	"go.trai.ch/zerr"
)

// Replacement is one exact-substring substitution.
type Replacement struct {
	Old string
	New string
}

// HostPatchSet returns the fixed substitutions applied to the host manifest:
// unpin an outdated protobuf, loosen the sentencepiece floor, and pin the two
// source-controlled dependencies to known commits for reproducibility.
func HostPatchSet() []Replacement {
	return []Replacement{
		{Old: "protobuf==3.20.3", New: "protobuf"},
		{Old: "sentencepiece==0.1.97", New: "sentencepiece>=0.1.97"},
		{Old: "/JetStream.git", New: "/JetStream.git@261f25007e4d12bb57cf8d5d61e291ba8f18430f"},
		{Old: "/logging.git", New: "/logging.git@44b4810e65e8c0a7d9e4e207c60e51d9458a3fb8"},
	}
}

// ApplyReplacements applies the ordered substitutions to every line of the
// file at path, replacing all occurrences, and writes the result back
// atomically.
func ApplyReplacements(path string, replacements []Replacement) error {
	//nolint:gosec // path names a workspace-local manifest
	content, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}

	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		for _, r := range replacements {
			line = strings.ReplaceAll(line, r.Old, r.New)
		}
		lines[i] = line
	}

	if err := atomicWriteFile(path, []byte(strings.Join(lines, "\n"))); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write patched manifest"), "path", path)
	}
	return nil
}

// ParsePatchFile reads a substitution patch file: one "old => new"
// replacement per line, blank lines and #-comments ignored.
func ParsePatchFile(path string) ([]Replacement, error) {
	//nolint:gosec // path names a workspace-local patch file
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var replacements []Replacement
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		old, updated, found := strings.Cut(line, "=>")
		if !found {
			return nil, zerr.With(zerr.New("patch line missing '=>' separator"), "line", line)
		}
		replacements = append(replacements, Replacement{
			Old: strings.TrimSpace(old),
			New: strings.TrimSpace(updated),
		})
	}
	return replacements, nil
}

// ApplyPatchFile applies the substitutions in the patch file at patchPath to
// the file at targetPath. The caller decides how to treat a missing patch
// file; the error passes through os.ReadFile unchanged for that case.
func ApplyPatchFile(targetPath, patchPath string) error {
	replacements, err := ParsePatchFile(patchPath)
	if err != nil {
		return err
	}
	return ApplyReplacements(targetPath, replacements)
}

// ReadPackageList reads package names from a file, one per line, ignoring
// blanks and #-comments.
func ReadPackageList(path string) ([]string, error) {
	//nolint:gosec // path names a workspace-local constraints file
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var packages []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		packages = append(packages, line)
	}
	return packages, nil
}
