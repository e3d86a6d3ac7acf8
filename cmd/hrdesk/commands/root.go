// Package commands defines all Cobra CLI commands for the hrdesk binary.
package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hrdesk/hrdesk-go/internal/audit"
	"github.com/hrdesk/hrdesk-go/internal/config"
	"github.com/hrdesk/hrdesk-go/internal/logging"
)

// configPath holds the --config flag value for YAML config file override.
var configPath string

// loadedConfigPath stores the resolved config file path for audit logging.
var loadedConfigPath string

// NewRootCmd constructs the root Cobra command that all subcommands attach to.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hrdesk",
		Short: "HR desk — employee HR question answering from a curated FAQ dataset",
		Long: `HR desk answers employee questions about leave, payroll, benefits, and
company policy from a curated FAQ dataset.

Answers are retrieved, never generated: the service ranks FAQ entries by
vector similarity (falling back to keyword search), sanitizes the stored
answer, and returns it with a confidence score and follow-up suggestions.
Questions nothing matches degrade into canned topic responses and an HR
ticket escalation path.

Configuration comes from environment variables or a YAML config file
(~/.hrdesk/config.yaml). See 'hrdesk --help' for available commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Load .env if present — real env vars still win.
			_ = godotenv.Load()

			log := logging.NewFromEnv()

			// Load YAML config (env vars always override YAML values).
			path, err := config.Load(configPath, log)
			if err != nil {
				return err
			}
			loadedConfigPath = path

			// Emit structured audit log for every command invocation.
			audit.LogCommandStart(log, cmd.Name(), loadedConfigPath)

			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file (default: ~/.hrdesk/config.yaml)")

	root.AddCommand(
		NewAskCmd(),
		NewServeCmd(),
		NewIngestCmd(),
		NewDoctorCmd(),
		NewVersionCmd(),
	)

	return root
}
