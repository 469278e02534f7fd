package commands

import (
	"errors"

	"github.com/hypercompute/seedlock/internal/app"
	"github.com/hypercompute/seedlock/internal/core/domain"
	"github.com/hypercompute/seedlock/internal/ui/summary"
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build lock files for every Python version and accelerator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hostCommit, _ := cmd.Flags().GetString("host-commit")
			seedRef, _ := cmd.Flags().GetString("seed-ref")
			versions, _ := cmd.Flags().GetStringSlice("python-versions")
			workdir, _ := cmd.Flags().GetString("workdir")
			outputRoot, _ := cmd.Flags().GetString("output-root")
			configPath, _ := cmd.Flags().GetString("config")

			report, err := c.app.Run(cmd.Context(), app.RunOptions{
				HostCommit:     hostCommit,
				SeedRef:        seedRef,
				PythonVersions: versions,
				Workdir:        workdir,
				OutputRoot:     outputRoot,
				ConfigPath:     configPath,
			})
			if report != nil {
				summary.Render(cmd.OutOrStdout(), report)
			}
			if err != nil {
				return errors.Join(domain.ErrRunAborted, err)
			}
			return nil
		},
	}
	cmd.Flags().String("host-commit", "main", "Host repository commit to build against (\"main\" skips validation)")
	cmd.Flags().String("seed-ref", "", "Seed library tag or commit (defaults to the latest known-good release)")
	cmd.Flags().StringSlice("python-versions", nil, "Python versions to build (defaults to the configured set)")
	cmd.Flags().String("workdir", "", "Working directory for transient files (defaults to the current directory)")
	cmd.Flags().String("output-root", "", "Root directory for staged lock files (overrides configuration)")
	cmd.Flags().String("config", "", "Path to a run configuration file")
	return cmd
}
