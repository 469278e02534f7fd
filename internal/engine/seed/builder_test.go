package seed_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hypercompute/seedlock/internal/core/domain"
	"github.com/hypercompute/seedlock/internal/core/ports/mocks"
	"github.com/hypercompute/seedlock/internal/engine/manifest"
	"github.com/hypercompute/seedlock/internal/engine/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const lockExport = "absl-py==2.1.0\nnumpy==1.26.4\n"

func newTestLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return log
}

// setupWorkdir creates the files Build expects to find on disk: the project
// descriptor and, optionally, a constraints file.
func setupWorkdir(t *testing.T, constraints []string) (string, seed.Params) {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, manifest.WriteProjectDescriptor("3.11",
		filepath.Join(dir, domain.DescriptorFileName)))

	p := seed.Params{
		Workdir:        dir,
		SeedFile:       "requirements_lock_3_11.txt",
		HostManifest:   "requirements.txt",
		OutputFile:     "maxtext_requirements_lock_gpu_3_11.txt",
		DescriptorFile: domain.DescriptorFileName,
	}

	if constraints != nil {
		p.ConstraintsFile = "constraints_tpu_only.txt"
		content := ""
		for _, pkg := range constraints {
			content += pkg + "\n"
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, p.ConstraintsFile), []byte(content), 0o644))
	}

	return dir, p
}

func TestBuilder_Build_StepSequence(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockResolverRunner(ctrl)
	builder := seed.NewBuilder(runner, newTestLogger(ctrl))

	dir, p := setupWorkdir(t, []string{"libtpu", "jax-tpu-plugin"})
	ctx := context.Background()

	writeExport := func(_ context.Context, workdir string, _ ...string) error {
		return os.WriteFile(filepath.Join(workdir, p.OutputFile), []byte(lockExport), 0o644)
	}

	gomock.InOrder(
		runner.EXPECT().Run(ctx, dir,
			"add", "--managed-python", "--no-build", "--no-sync",
			"--resolution=highest", "-r", p.SeedFile).Return(nil),
		runner.EXPECT().Run(ctx, dir,
			"remove", "--managed-python", "--no-sync",
			"--resolution=highest", "libtpu").Return(nil),
		runner.EXPECT().Run(ctx, dir,
			"remove", "--managed-python", "--no-sync",
			"--resolution=highest", "jax-tpu-plugin").Return(nil),
		runner.EXPECT().Run(ctx, dir,
			"add", "--managed-python", "--no-sync",
			"--resolution=highest", "-r", p.HostManifest).Return(nil),
		runner.EXPECT().Run(ctx, dir,
			"export", "--managed-python", "--locked", "--no-hashes", "--no-annotate",
			"--resolution=highest", "--output-file", p.OutputFile).DoAndReturn(writeExport),
		runner.EXPECT().Run(ctx, dir,
			"lock", "--managed-python", "--resolution=lowest").Return(nil),
		runner.EXPECT().Run(ctx, dir,
			"export", "--managed-python", "--locked", "--no-hashes", "--no-annotate",
			"--resolution=lowest", "--output-file", p.OutputFile).Return(nil),
	)

	require.NoError(t, builder.Build(ctx, p))

	// The lower-bound rewrite ran between the two exports.
	descriptor, err := os.ReadFile(filepath.Join(dir, domain.DescriptorFileName))
	require.NoError(t, err)
	assert.Contains(t, string(descriptor), `"absl-py>=2.1.0"`)
	assert.Contains(t, string(descriptor), `"numpy>=1.26.4"`)
}

func TestBuilder_Build_MissingConstraintsFileSkipsRemoval(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockResolverRunner(ctrl)
	builder := seed.NewBuilder(runner, newTestLogger(ctrl))

	dir, p := setupWorkdir(t, nil)
	p.ConstraintsFile = "constraints_tpu_only.txt" // never written
	ctx := context.Background()

	writeExport := func(_ context.Context, workdir string, _ ...string) error {
		return os.WriteFile(filepath.Join(workdir, p.OutputFile), []byte(lockExport), 0o644)
	}

	gomock.InOrder(
		runner.EXPECT().Run(ctx, dir,
			"add", "--managed-python", "--no-build", "--no-sync",
			"--resolution=highest", "-r", p.SeedFile).Return(nil),
		runner.EXPECT().Run(ctx, dir,
			"add", "--managed-python", "--no-sync",
			"--resolution=highest", "-r", p.HostManifest).Return(nil),
		runner.EXPECT().Run(ctx, dir,
			"export", "--managed-python", "--locked", "--no-hashes", "--no-annotate",
			"--resolution=highest", "--output-file", p.OutputFile).DoAndReturn(writeExport),
		runner.EXPECT().Run(ctx, dir,
			"lock", "--managed-python", "--resolution=lowest").Return(nil),
		runner.EXPECT().Run(ctx, dir,
			"export", "--managed-python", "--locked", "--no-hashes", "--no-annotate",
			"--resolution=lowest", "--output-file", p.OutputFile).Return(nil),
	)

	require.NoError(t, builder.Build(ctx, p))
}

func TestBuilder_Build_RemovalFailureIsBestEffort(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockResolverRunner(ctrl)
	builder := seed.NewBuilder(runner, newTestLogger(ctrl))

	dir, p := setupWorkdir(t, []string{"not-in-set"})
	ctx := context.Background()

	writeExport := func(_ context.Context, workdir string, _ ...string) error {
		return os.WriteFile(filepath.Join(workdir, p.OutputFile), []byte(lockExport), 0o644)
	}

	gomock.InOrder(
		runner.EXPECT().Run(ctx, dir,
			"add", "--managed-python", "--no-build", "--no-sync",
			"--resolution=highest", "-r", p.SeedFile).Return(nil),
		runner.EXPECT().Run(ctx, dir,
			"remove", "--managed-python", "--no-sync",
			"--resolution=highest", "not-in-set").Return(domain.ErrResolverStep),
		runner.EXPECT().Run(ctx, dir,
			"add", "--managed-python", "--no-sync",
			"--resolution=highest", "-r", p.HostManifest).Return(nil),
		runner.EXPECT().Run(ctx, dir,
			"export", "--managed-python", "--locked", "--no-hashes", "--no-annotate",
			"--resolution=highest", "--output-file", p.OutputFile).DoAndReturn(writeExport),
		runner.EXPECT().Run(ctx, dir,
			"lock", "--managed-python", "--resolution=lowest").Return(nil),
		runner.EXPECT().Run(ctx, dir,
			"export", "--managed-python", "--locked", "--no-hashes", "--no-annotate",
			"--resolution=lowest", "--output-file", p.OutputFile).Return(nil),
	)

	require.NoError(t, builder.Build(ctx, p))
}

func TestBuilder_Build_StepFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockResolverRunner(ctrl)
	builder := seed.NewBuilder(runner, newTestLogger(ctrl))

	dir, p := setupWorkdir(t, nil)
	ctx := context.Background()
	stepErr := errors.Join(domain.ErrResolverStep, errors.New("exit status 2"))

	runner.EXPECT().Run(ctx, dir,
		"add", "--managed-python", "--no-build", "--no-sync",
		"--resolution=highest", "-r", p.SeedFile).Return(stepErr)

	err := builder.Build(ctx, p)
	require.ErrorIs(t, err, domain.ErrResolverStep)
}

func TestBuilder_Build_StaleLockRemoved(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockResolverRunner(ctrl)
	builder := seed.NewBuilder(runner, newTestLogger(ctrl))

	dir, p := setupWorkdir(t, nil)
	stale := filepath.Join(dir, domain.ResolverLockFileName)
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0o644))

	ctx := context.Background()
	runner.EXPECT().Run(ctx, dir,
		"add", "--managed-python", "--no-build", "--no-sync",
		"--resolution=highest", "-r", p.SeedFile).DoAndReturn(
		func(_ context.Context, _ string, _ ...string) error {
			// The stale lock must be gone before the first resolver call.
			assert.NoFileExists(t, stale)
			return errors.New("stop here")
		})

	require.Error(t, builder.Build(ctx, p))
}
