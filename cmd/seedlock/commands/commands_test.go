package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/hypercompute/seedlock/cmd/seedlock/commands"
	"github.com/hypercompute/seedlock/internal/app"
	"github.com/hypercompute/seedlock/internal/build"
	"github.com/hypercompute/seedlock/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockApp struct {
	runFunc func(ctx context.Context, opts app.RunOptions) (*domain.RunReport, error)
}

func (m *mockApp) Run(ctx context.Context, opts app.RunOptions) (*domain.RunReport, error) {
	if m.runFunc != nil {
		return m.runFunc(ctx, opts)
	}
	return &domain.RunReport{}, nil
}

func TestCommands_Build(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.RunOptions
		called := false

		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) (*domain.RunReport, error) {
				capturedOpts = opts
				called = true
				return &domain.RunReport{}, nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{
			"build",
			"--host-commit", "261f25007e4d12bb57cf8d5d61e291ba8f18430f",
			"--seed-ref", "jax-v0.6.2",
			"--python-versions", "3.11,3.12",
			"--workdir", "/tmp/work",
			"--output-root", "staged",
			"--config", "custom.yaml",
		})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, "261f25007e4d12bb57cf8d5d61e291ba8f18430f", capturedOpts.HostCommit)
		assert.Equal(t, "jax-v0.6.2", capturedOpts.SeedRef)
		assert.Equal(t, []string{"3.11", "3.12"}, capturedOpts.PythonVersions)
		assert.Equal(t, "/tmp/work", capturedOpts.Workdir)
		assert.Equal(t, "staged", capturedOpts.OutputRoot)
		assert.Equal(t, "custom.yaml", capturedOpts.ConfigPath)
	})

	t.Run("defaults to main host commit", func(t *testing.T) {
		var capturedOpts app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) (*domain.RunReport, error) {
				capturedOpts = opts
				return &domain.RunReport{}, nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "main", capturedOpts.HostCommit)
		assert.Empty(t, capturedOpts.SeedRef)
		assert.Empty(t, capturedOpts.PythonVersions)
	})

	t.Run("marks fatal run errors", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ app.RunOptions) (*domain.RunReport, error) {
				return nil, errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build"})
		// Silence output to avoid polluting test logs
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrRunAborted)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("renders the report even when the run aborts", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")

		report := &domain.RunReport{}
		report.Add(domain.IterationResult{
			Key:       domain.Key{PythonVersion: "3.11", Accelerator: domain.TPU},
			Artifacts: []string{"uv.lock", "pyproject.toml", "maxtext_requirements_lock_tpu_3_11.txt"},
		})

		mock := &mockApp{
			runFunc: func(_ context.Context, _ app.RunOptions) (*domain.RunReport, error) {
				return report, domain.ErrRateLimit
			},
		}

		cli := commands.New(mock)
		out := new(bytes.Buffer)
		cli.SetOutput(out, new(bytes.Buffer))
		cli.SetArgs([]string{"build"})

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, out.String(), "3.11/tpu")
	})
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), build.Version)
}
