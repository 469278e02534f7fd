// Package uv implements the ResolverRunner port by invoking the uv
// executable as a subprocess.
package uv

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/hypercompute/seedlock/internal/core/domain"
	"github.com/hypercompute/seedlock/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.ResolverRunner using os/exec.
type Runner struct {
	bin    string
	logger ports.Logger
}

// NewRunner creates a Runner for the given resolver executable.
func NewRunner(bin string, logger ports.Logger) *Runner {
	return &Runner{bin: bin, logger: logger}
}

// Run executes one resolver invocation in workdir, capturing stdout and
// stderr. A non-zero exit fails with domain.ErrResolverStep carrying the
// captured output and exit code.
func (r *Runner) Run(ctx context.Context, workdir string, args ...string) error {
	r.logger.Info(fmt.Sprintf("executing: %s %s", r.bin, strings.Join(args, " ")))

	//nolint:gosec // args are assembled from the fixed step sequence
	cmd := exec.CommandContext(ctx, r.bin, args...)
	cmd.Dir = workdir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}

		stepErr := zerr.With(domain.ErrResolverStep, "args", strings.Join(args, " "))
		stepErr = zerr.With(stepErr, "exit_code", exitCode)
		if out := strings.TrimSpace(stdout.String()); out != "" {
			stepErr = zerr.With(stepErr, "stdout", out)
		}
		if errOut := strings.TrimSpace(stderr.String()); errOut != "" {
			stepErr = zerr.With(stepErr, "stderr", errOut)
		}
		return stepErr
	}

	return nil
}
