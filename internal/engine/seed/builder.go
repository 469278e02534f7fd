// Package seed drives the external resolver through the fixed step sequence
// that produces a merged, constraint-filtered, dual-resolution lock file.
package seed

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
)

// Params configures one build of a seed environment. All file names are
// relative to Workdir unless absolute.
type Params struct {
	// Workdir is the directory holding the descriptor and the resolver's
	// ambient lock state.
	Workdir string
	// SeedFile is the seed library's lock file, the starting dependency set.
	SeedFile string
	// HostManifest is the host project's dependency manifest.
	HostManifest string
	// OutputFile receives the exported lock file. The lowest-resolution
	// export overwrites the highest-resolution one at the same path.
	OutputFile string
	// ConstraintsFile names packages to remove after seeding. Empty disables
	// the removal step; a missing file is a warning.
	ConstraintsFile string
	// DescriptorFile is the project descriptor rewritten by the lower-bound
	// step.
	DescriptorFile string
}

// Builder runs the resolver step sequence.
type Builder struct {
	runner ports.ResolverRunner
	logger ports.Logger
}

// NewBuilder creates a Builder using the given resolver runner.
func NewBuilder(runner ports.ResolverRunner, logger ports.Logger) *Builder {
	return &Builder{runner: runner, logger: logger}
}

// Build produces the dual-resolution lock file:
//
//  1. The seed set and the host manifest are merged at the highest
//     satisfying versions and exported, giving a consistent, known-good
//     upper bound.
//  2. The exact pins are relaxed to ">=" floors in the descriptor and the
//     set is re-resolved at the lowest satisfying versions, confirming the
//     floors are independently satisfiable.
//
// Any resolver step failure aborts the sequence.
func (b *Builder) Build(ctx context.Context, p Params) error {
	b.logger.Info(fmt.Sprintf("building seed environment: seed=%s host=%s output=%s constraints=%s",
		p.SeedFile, p.HostManifest, p.OutputFile, p.ConstraintsFile))

	// Step 1: stale resolver lock state from a previous run must not leak in.
	b.removeResolverLock(p.Workdir, false)

	// Step 2: seed dependencies, highest resolution, no source builds.
	if err := b.runner.Run(ctx, p.Workdir,
		"add", "--managed-python", "--no-build", "--no-sync",
		"--resolution=highest", "-r", p.SeedFile); err != nil {
		return err
	}

	// Step 3: strip the packages excluded for this accelerator target.
	if err := b.removeConstrained(ctx, p); err != nil {
		return err
	}

	// Step 4: host project dependencies on top, still highest resolution.
	if err := b.runner.Run(ctx, p.Workdir,
		"add", "--managed-python", "--no-sync",
		"--resolution=highest", "-r", p.HostManifest); err != nil {
		return err
	}

	// Step 5: export the highest-resolution closure.
	if err := b.runner.Run(ctx, p.Workdir,
		"export", "--managed-python", "--locked", "--no-hashes", "--no-annotate",
		"--resolution=highest", "--output-file", p.OutputFile); err != nil {
		return err
	}

	// Step 6: relax the pins into ">=" floors in the descriptor.
	if err := manifest.LowerBound(
		filepath.Join(p.Workdir, p.OutputFile),
		filepath.Join(p.Workdir, p.DescriptorFile)); err != nil {
		return err
	}

	// Step 7: re-resolve at the lowest satisfying versions and overwrite the
	// export.
	b.removeResolverLock(p.Workdir, true)
	if err := b.runner.Run(ctx, p.Workdir,
		"lock", "--managed-python", "--resolution=lowest"); err != nil {
		return err
	}
	if err := b.runner.Run(ctx, p.Workdir,
		"export", "--managed-python", "--locked", "--no-hashes", "--no-annotate",
		"--resolution=lowest", "--output-file", p.OutputFile); err != nil {
		return err
	}

	b.logger.Info("seed environment build completed")
	return nil
}

// removeConstrained removes each constraints entry individually. A missing
// constraints file is a warning, not a failure.
func (b *Builder) removeConstrained(ctx context.Context, p Params) error {
	if p.ConstraintsFile == "" {
		return nil
	}

	packages, err := manifest.ReadPackageList(filepath.Join(p.Workdir, p.ConstraintsFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			b.logger.Warn(fmt.Sprintf("constraints file %q not found, skipping removal", p.ConstraintsFile))
			return nil
		}
		return err
	}
	if len(packages) == 0 {
		b.logger.Info(fmt.Sprintf("no packages listed in %q to remove", p.ConstraintsFile))
		return nil
	}

	// Removal is best-effort per package: a package absent from the merged
	// set is not a build failure.
	for _, pkg := range packages {
		if err := b.runner.Run(ctx, p.Workdir,
			"remove", "--managed-python", "--no-sync",
			"--resolution=highest", pkg); err != nil {
			b.logger.Warn(fmt.Sprintf("could not remove %q: %v", pkg, err))
		}
	}
	return nil
}

// removeResolverLock deletes the resolver's ambient lock file. warnOnMissing
// distinguishes the second deletion, where an absent lock is unexpected.
func (b *Builder) removeResolverLock(workdir string, warnOnMissing bool) {
	path := filepath.Join(workdir, domain.ResolverLockFileName)
	if err := os.Remove(path); err != nil {
		if warnOnMissing {
			b.logger.Warn(fmt.Sprintf("%s does not exist, skipping removal", domain.ResolverLockFileName))
		}
		return
	}
	b.logger.Info(fmt.Sprintf("removed stale %s", domain.ResolverLockFileName))
}
