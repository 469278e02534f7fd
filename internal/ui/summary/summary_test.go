package summary_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hypercompute/seedlock/internal/core/domain"
	"github.com/hypercompute/seedlock/internal/ui/summary"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	report := &domain.RunReport{}
	report.Add(domain.IterationResult{
		Key:       domain.Key{PythonVersion: "3.11", Accelerator: domain.TPU},
		Artifacts: []string{"uv.lock", "pyproject.toml", "maxtext_requirements_lock_tpu_3_11.txt"},
	})
	report.Add(domain.IterationResult{
		Key: domain.Key{PythonVersion: "3.11", Accelerator: domain.GPU},
		Err: errors.New("resolver step failed\nexit status 2"),
	})

	var buf bytes.Buffer
	summary.Render(&buf, report)
	out := buf.String()

	assert.Contains(t, out, "3.11/tpu")
	assert.Contains(t, out, "3 artifacts staged")
	assert.Contains(t, out, "3.11/gpu")
	assert.Contains(t, out, "resolver step failed")
	// Only the first line of a failure is shown.
	assert.NotContains(t, out, "exit status 2")
	assert.Contains(t, out, "1/2 combinations built")
}

func TestRender_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	summary.Render(&buf, &domain.RunReport{})
	assert.Empty(t, buf.String())
}
