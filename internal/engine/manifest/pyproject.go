package manifest

import (
	"fmt"

	"github.com/hypercompute/seedlock/internal/core/domain"
	"go.trai.ch/zerr"
)

// WriteProjectDescriptor writes a minimal project descriptor pinning the
// interpreter to the given two-component version, with an empty dependency
// list. A version not matching X.Y fails before any file is written.
func WriteProjectDescriptor(pythonVersion, path string) error {
	if !domain.ValidPythonVersion(pythonVersion) {
		return zerr.With(domain.ErrInvalidVersion, "version", pythonVersion)
	}

	content := fmt.Sprintf(`[project]
name = "seed_env"
version = "0.1.0"
requires-python = "==%s.*"
dependencies = [
]
`, pythonVersion)

	if err := atomicWriteFile(path, []byte(content)); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write project descriptor"), "path", path)
	}
	return nil
}
