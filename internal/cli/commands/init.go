package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dtp/internal/config"
)

// InitCommand writes a starter configuration file
type InitCommand struct {
	config *config.Config
}

// NewInitCommand creates a new InitCommand
func NewInitCommand(cfg *config.Config) *InitCommand {
	return &InitCommand{config: cfg}
}

// Execute runs the command
func (ic *InitCommand) Execute(cmd *cobra.Command, args []string) error {
	path := ic.config.Flags.ConfigPath
	if path == "" {
		path = config.DefaultConfigFile
	}

	if err := config.Init(path, ic.config.Flags.Force); err != nil {
		return err
	}

	color.Green("Created %s", path)
	return nil
}
