package domain

const (
	// SeedEnvDirName is the name of the staged output directory tree.
	SeedEnvDirName = "seed_env_files"

	// ResolverLockFileName is the resolver's ambient lock state file.
	ResolverLockFileName = "uv.lock"

	// DescriptorFileName is the project descriptor consumed by the resolver.
	DescriptorFileName = "pyproject.toml"

	// ConfigFileName is the optional run configuration file.
	ConfigFileName = "seedlock.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
