package domain

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Accelerator is the target hardware class an environment is built for.
type Accelerator string

const (
	// TPU targets Tensor Processing Units.
	TPU Accelerator = "tpu"
	// GPU targets graphics accelerators.
	GPU Accelerator = "gpu"
)

// Accelerators lists all supported accelerator targets in build order.
func Accelerators() []Accelerator {
	return []Accelerator{TPU, GPU}
}

// pythonVersionRe matches a two-component interpreter version like "3.11".
var pythonVersionRe = regexp.MustCompile(`^\d+\.\d+$`)

// ValidPythonVersion reports whether v is a two-component numeric version.
func ValidPythonVersion(v string) bool {
	return pythonVersionRe.MatchString(v)
}

// Key identifies one build iteration: an interpreter version paired with an
// accelerator target. All transient and output file names derive from it.
type Key struct {
	PythonVersion string
	Accelerator   Accelerator
}

// Sanitized returns the interpreter version with dots replaced by
// underscores, e.g. "3.10" -> "3_10".
func (k Key) Sanitized() string {
	return strings.ReplaceAll(k.PythonVersion, ".", "_")
}

// String returns a human-readable form of the key, e.g. "3.11/gpu".
func (k Key) String() string {
	return k.PythonVersion + "/" + string(k.Accelerator)
}

// LockFileName returns the name of the final merged lock file for this key,
// e.g. "maxtext_requirements_lock_gpu_3_11.txt".
func (k Key) LockFileName(prefix string) string {
	return prefix + "_requirements_lock_" + string(k.Accelerator) + "_" + k.Sanitized() + ".txt"
}

// SeedLockFileName returns the name of the downloaded seed lock file for this
// key, e.g. "requirements_lock_3_11.txt". It matches the file's path basename
// in the seed repository.
func (k Key) SeedLockFileName() string {
	return "requirements_lock_" + k.Sanitized() + ".txt"
}

// SeedLockRepoPath returns the path of the seed lock file inside the seed
// repository at a given ref.
func (k Key) SeedLockRepoPath() string {
	return "build/" + k.SeedLockFileName()
}

// OutputDir returns the staging directory for this key under the given root,
// e.g. "maxtext/seed_env_files/py3_11/gpu".
func (k Key) OutputDir(root string) string {
	return filepath.Join(root, SeedEnvDirName, "py"+k.Sanitized(), string(k.Accelerator))
}
