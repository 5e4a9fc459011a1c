// -- cmd/root.go --
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/devashk/naukribot/internal/config"
	"github.com/devashk/naukribot/internal/observability"
)

var (
	cfgFile string
	// appCfg is populated by the root PersistentPreRunE and consumed by the
	// subcommands.
	appCfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "naukribot",
	Short: "naukribot keeps a Naukri profile fresh by re-uploading the resume.",
	// Version is set at build time. See cmd/version.go.
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Runs before any command, setting up config and logging.
		cfg, err := config.Load(cfgFile)
		if err != nil {
			// Initialize a fallback logger so the failure is still reported
			// through the normal channel.
			observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "naukribot"})
			return err
		}
		appCfg = cfg

		observability.InitializeLogger(cfg.Logger)
		observability.GetLogger().Info("Starting naukribot", zap.String("version", Version))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	defer observability.Sync()
	if err := rootCmd.Execute(); err != nil {
		if logger := observability.GetLogger(); logger != nil {
			logger.Error("Command execution failed", zap.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
