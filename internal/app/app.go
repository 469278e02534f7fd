// Package app implements the application layer for seedlock.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hypercompute/seedlock/internal/core/domain"
	"github.com/hypercompute/seedlock/internal/core/ports"
	"github.com/hypercompute/seedlock/internal/engine/manifest"
	"github.com/hypercompute/seedlock/internal/engine/seed"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	fetcher      ports.Fetcher
	runner       ports.ResolverRunner
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	fetcher ports.Fetcher,
	runner ports.ResolverRunner,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		fetcher:      fetcher,
		runner:       runner,
		logger:       log,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// HostCommit is the host repository commit or branch. The literal "main"
	// skips commit validation.
	HostCommit string
	// SeedRef is the seed library tag or commit. Empty uses the latest
	// known-good release.
	SeedRef string
	// PythonVersions are the interpreter versions to build. Empty uses the
	// configured defaults.
	PythonVersions []string
	// Workdir hosts the transient files and the resolver's ambient state.
	// Empty means the current directory.
	Workdir string
	// OutputRoot overrides the configured staging root.
	OutputRoot string
	// ConfigPath is an explicit run configuration file.
	ConfigPath string
}

// Run executes the lock-file build workflow: the host manifest is fetched and
// patched once, then every version/accelerator combination is built in
// sequence. Per-iteration failures are recorded in the report and the loop
// continues; a non-nil error means a fatal precondition stopped the run.
//
// Iterations share the working directory and the resolver's ambient state,
// so they must not run concurrently.
func (a *App) Run(ctx context.Context, opts RunOptions) (*domain.RunReport, error) {
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.OutputRoot != "" {
		cfg.OutputRoot = opts.OutputRoot
	}

	versions := opts.PythonVersions
	if len(versions) == 0 {
		versions = cfg.DefaultPythonVersions
	}
	for _, v := range versions {
		if !cfg.SupportsPythonVersion(v) {
			return nil, zerr.With(zerr.With(domain.ErrUnsupportedVersion, "version", v),
				"supported", fmt.Sprint(cfg.SupportedPythonVersions))
		}
	}

	seedRef := opts.SeedRef
	if seedRef == "" {
		seedRef = cfg.LatestSeedRelease
	}

	workdir := opts.Workdir
	if workdir == "" {
		workdir = "."
	}

	if err := a.prepareHostManifest(ctx, cfg, opts.HostCommit, workdir); err != nil {
		return nil, err
	}

	report := &domain.RunReport{}
	for _, version := range versions {
		for _, accel := range domain.Accelerators() {
			key := domain.Key{PythonVersion: version, Accelerator: accel}
			a.logger.Info(fmt.Sprintf("processing Python %s on %s", version, accel))

			artifacts, err := a.iterate(ctx, cfg, key, seedRef, workdir)
			if err != nil {
				if errors.Is(err, domain.ErrRateLimit) {
					// Nothing else can succeed once the API is exhausted.
					report.Add(domain.IterationResult{Key: key, Err: err})
					return report, err
				}
				a.logger.Error(zerr.With(zerr.Wrap(err, "iteration abandoned"), "key", key.String()))
				report.Add(domain.IterationResult{Key: key, Err: err})
				continue
			}
			report.Add(domain.IterationResult{Key: key, Artifacts: artifacts})
		}
	}

	a.logger.Info("completed building environment lock files")
	return report, nil
}

// prepareHostManifest downloads the host manifest once, shared across all
// iterations, and applies the fixed patch set. Failures here are fatal.
func (a *App) prepareHostManifest(ctx context.Context, cfg domain.Config, hostCommit, workdir string) error {
	if hostCommit == "" {
		hostCommit = "main"
	}

	// A branch name is used verbatim; anything else must be a real commit.
	if hostCommit != "main" {
		ok, err := a.fetcher.IsValidCommit(ctx, cfg.HostOrgRepo, hostCommit)
		if err != nil {
			return err
		}
		if !ok {
			return zerr.With(zerr.With(domain.ErrInvalidCommit, "commit", hostCommit), "repo", cfg.HostOrgRepo)
		}
	}

	url := a.fetcher.RawFileURL(cfg.HostOrgRepo, hostCommit, cfg.HostManifestName)
	path, err := a.fetcher.DownloadFile(ctx, url, workdir)
	if err != nil {
		return zerr.Wrap(err, "failed to download host manifest")
	}

	return manifest.ApplyReplacements(path, manifest.HostPatchSet())
}

// iterate runs one version/accelerator combination to completion and returns
// the staged artifact paths.
func (a *App) iterate(ctx context.Context, cfg domain.Config, key domain.Key, seedRef, workdir string) ([]string, error) {
	a.cleanTransient(cfg, key, workdir)

	descriptor := filepath.Join(workdir, domain.DescriptorFileName)
	if err := manifest.WriteProjectDescriptor(key.PythonVersion, descriptor); err != nil {
		return nil, err
	}

	if err := a.fetchSeed(ctx, cfg, key, seedRef, workdir); err != nil {
		return nil, err
	}

	builder := seed.NewBuilder(a.runner, a.logger)
	if err := builder.Build(ctx, seed.Params{
		Workdir:         workdir,
		SeedFile:        key.SeedLockFileName(),
		HostManifest:    cfg.HostManifestName,
		OutputFile:      key.LockFileName(cfg.ArtifactPrefix),
		ConstraintsFile: cfg.ConstraintsFor(key.Accelerator),
		DescriptorFile:  domain.DescriptorFileName,
	}); err != nil {
		return nil, err
	}

	return a.stage(cfg, key, workdir)
}

// fetchSeed downloads the seed lock file for the iteration. The legacy
// interpreter version always pulls the latest known-good release and applies
// the fixed patch file, overriding any caller-supplied reference.
func (a *App) fetchSeed(ctx context.Context, cfg domain.Config, key domain.Key, seedRef, workdir string) error {
	ref := seedRef
	legacy := key.PythonVersion == cfg.LegacyPythonVersion
	if legacy {
		ref = cfg.LatestSeedRelease
	}

	sha, err := a.fetcher.ResolveRef(ctx, cfg.SeedOrgRepo, ref)
	if err != nil {
		return err
	}

	url := a.fetcher.RawFileURL(cfg.SeedOrgRepo, sha, key.SeedLockRepoPath())
	path, err := a.fetcher.DownloadFile(ctx, url, workdir)
	if err != nil {
		return zerr.Wrap(err, "failed to download seed lock file")
	}

	if legacy {
		return a.applySeedPatch(cfg, path, workdir)
	}
	return nil
}

// applySeedPatch applies the legacy patch file to the downloaded seed lock.
// A missing patch file is a warning, not a failure.
func (a *App) applySeedPatch(cfg domain.Config, seedPath, workdir string) error {
	patchPath := filepath.Join(workdir, cfg.LegacyPatchFile)
	if err := manifest.ApplyPatchFile(seedPath, patchPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			a.logger.Warn(fmt.Sprintf("patch file %q not found, skipping", cfg.LegacyPatchFile))
			return nil
		}
		return err
	}
	return nil
}

// cleanTransient removes the previous iteration's leftovers so no passed-in
// lock state or generated descriptor leaks into this combination.
func (a *App) cleanTransient(cfg domain.Config, key domain.Key, workdir string) {
	for _, name := range []string{
		domain.ResolverLockFileName,
		domain.DescriptorFileName,
		key.LockFileName(cfg.ArtifactPrefix),
		key.SeedLockFileName(),
	} {
		path := filepath.Join(workdir, name)
		if err := os.Remove(path); err == nil {
			a.logger.Info(fmt.Sprintf("cleaned up %q", name))
		}
	}
}

// stage moves the three produced artifacts into the key's output directory.
func (a *App) stage(cfg domain.Config, key domain.Key, workdir string) ([]string, error) {
	outDir := filepath.Join(workdir, key.OutputDir(cfg.OutputRoot))
	if err := os.MkdirAll(outDir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create output directory"), "dir", outDir)
	}

	names := []string{
		domain.ResolverLockFileName,
		domain.DescriptorFileName,
		key.LockFileName(cfg.ArtifactPrefix),
	}

	staged := make([]string, 0, len(names))
	for _, name := range names {
		src := filepath.Join(workdir, name)
		dst := filepath.Join(outDir, name)
		if err := os.Rename(src, dst); err != nil {
			return nil, zerr.With(domain.ErrStageArtifactMissing, "artifact", name)
		}
		a.logger.Info(fmt.Sprintf("moved %q to %q", name, outDir))
		staged = append(staged, dst)
	}

	return staged, nil
}
