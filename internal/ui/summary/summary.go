// Package summary renders the end-of-run report.
package summary

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hypercompute/seedlock/internal/core/domain"
	"github.com/hypercompute/seedlock/internal/ui/style"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(style.Green)
	failStyle = lipgloss.NewStyle().Foreground(style.Red)
	dimStyle  = lipgloss.NewStyle().Foreground(style.Slate)
)

// Render writes a per-iteration result table followed by a success count.
func Render(w io.Writer, report *domain.RunReport) {
	if len(report.Results) == 0 {
		return
	}

	var b strings.Builder
	b.WriteString("\n")

	succeeded := 0
	for _, res := range report.Results {
		if res.Succeeded() {
			succeeded++
			b.WriteString(okStyle.Render(style.Check+" "+res.Key.String()) +
				dimStyle.Render(fmt.Sprintf("  %d artifacts staged", len(res.Artifacts))) + "\n")
			continue
		}
		b.WriteString(failStyle.Render(style.Cross+" "+res.Key.String()) +
			dimStyle.Render("  "+firstLine(res.Err.Error())) + "\n")
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("\n%d/%d combinations built\n", succeeded, len(report.Results))))
	_, _ = io.WriteString(w, b.String())
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
