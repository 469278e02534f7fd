// Package domain holds the core types for the seedlock build workflow.
package domain

import "slices"

// Config is the immutable run configuration. It is assembled once by the
// config loader (defaults, optionally overlaid by seedlock.yaml and CLI
// flags) and passed into the orchestration entry point.
type Config struct {
	// HostOrgRepo is the GitHub "org/repo" of the host project.
	HostOrgRepo string
	// HostManifestName is the host project's dependency manifest file name.
	HostManifestName string

	// SeedOrgRepo is the GitHub "org/repo" of the pinned seed library.
	SeedOrgRepo string
	// LatestSeedRelease is the latest known-good seed release tag.
	LatestSeedRelease string

	// LegacyPythonVersion always pulls LatestSeedRelease and applies
	// LegacyPatchFile, overriding any caller-supplied seed reference.
	LegacyPythonVersion string
	// LegacyPatchFile is the substitution patch applied to the legacy seed
	// lock file. A missing file is a warning, not an error.
	LegacyPatchFile string

	// ConstraintsGPUOnly names packages present only in GPU environments.
	ConstraintsGPUOnly string
	// ConstraintsTPUOnly names packages present only in TPU environments.
	ConstraintsTPUOnly string

	// ArtifactPrefix prefixes the final lock file names.
	ArtifactPrefix string
	// OutputRoot is the root of the staged output tree.
	OutputRoot string

	// DefaultPythonVersions is used when no versions are requested.
	DefaultPythonVersions []string
	// SupportedPythonVersions bounds the versions a caller may request.
	SupportedPythonVersions []string

	// ResolverBin is the external dependency-resolver executable.
	ResolverBin string
}

// DefaultConfig returns the compiled-in configuration.
func DefaultConfig() Config {
	return Config{
		HostOrgRepo:             "AI-Hypercomputer/maxtext",
		HostManifestName:        "requirements.txt",
		SeedOrgRepo:             "jax-ml/jax",
		LatestSeedRelease:       "jax-v0.6.2",
		LegacyPythonVersion:     "3.10",
		LegacyPatchFile:         "jax_requirements_lock_3_10.patch",
		ConstraintsGPUOnly:      "constraints_gpu_only.txt",
		ConstraintsTPUOnly:      "constraints_tpu_only.txt",
		ArtifactPrefix:          "maxtext",
		OutputRoot:              "maxtext",
		DefaultPythonVersions:   []string{"3.10", "3.11", "3.12"},
		SupportedPythonVersions: []string{"3.10", "3.11", "3.12"},
		ResolverBin:             "uv",
	}
}

// SupportsPythonVersion reports whether v is in the supported set.
func (c Config) SupportsPythonVersion(v string) bool {
	return slices.Contains(c.SupportedPythonVersions, v)
}

// ConstraintsFor returns the constraints file applied when building for the
// given accelerator: the packages exclusive to the *other* accelerator are
// the ones removed from the merged environment.
func (c Config) ConstraintsFor(a Accelerator) string {
	if a == GPU {
		return c.ConstraintsTPUOnly
	}
	return c.ConstraintsGPUOnly
}
