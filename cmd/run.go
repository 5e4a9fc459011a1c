// -- cmd/run.go --
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/devashk/naukribot/internal/observability"
	"github.com/devashk/naukribot/internal/workflow"
)

// runCmd executes the full login → upload automation once. Outcomes are
// reported through log severity; the process exit code only distinguishes
// configuration errors, not workflow failures.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Log in to the portal and re-upload the resume once",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := observability.GetLogger()

		if err := appCfg.Validate(); err != nil {
			return err
		}

		ctrl := workflow.New(appCfg, logger)
		if err := ctrl.Run(cmd.Context()); err != nil {
			// Workflow failures have already been logged with context at
			// their origin; the run itself still exits normally.
			logger.Warn("Automation did not complete successfully.",
				zap.Error(err), zap.Stringer("state", ctrl.State()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
