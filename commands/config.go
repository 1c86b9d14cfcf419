package commands

import (
	"fmt"
	"log"
	"os"

	"bmpheaders/config"

	"github.com/spf13/cobra"
)

func newConfigCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the bmpheaders configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(global))
	return cmd
}

func newConfigInitCmd(global *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(global.configPath); err == nil && !force {
				return fmt.Errorf("configuration file '%s' already exists (use --force to overwrite)", global.configPath)
			}
			if err := config.SaveConfig(global.configPath, config.Default()); err != nil {
				return err
			}
			log.Printf("Wrote default configuration to %s", global.configPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	return cmd
}
