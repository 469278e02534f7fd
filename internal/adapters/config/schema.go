package config

// File represents the structure of the optional seedlock.yaml run
// configuration. Zero fields fall back to the compiled-in defaults.
type File struct {
	HostRepo         string `yaml:"hostRepo"`
	HostManifestName string `yaml:"hostManifest"`

	SeedRepo          string `yaml:"seedRepo"`
	LatestSeedRelease string `yaml:"latestSeedRelease"`

	LegacyPythonVersion string `yaml:"legacyPythonVersion"`
	LegacyPatchFile     string `yaml:"legacyPatchFile"`

	ConstraintsGPUOnly string `yaml:"constraintsGpuOnly"`
	ConstraintsTPUOnly string `yaml:"constraintsTpuOnly"`

	ArtifactPrefix string `yaml:"artifactPrefix"`
	OutputRoot     string `yaml:"outputRoot"`

	PythonVersions          []string `yaml:"pythonVersions"`
	SupportedPythonVersions []string `yaml:"supportedPythonVersions"`

	ResolverBin string `yaml:"resolverBin"`
}
