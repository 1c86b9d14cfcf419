package commands

import (
	"bmpheaders/config"
	"bmpheaders/report"

	"github.com/spf13/cobra"
)

func newLayoutCmd(global *globalOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Validate and print the header layout",
		Long: `Validate a YAML header layout and print each field with its absolute offset,
width and type, followed by the derived expressions.

Without --file the layout from --layout, the configuration, or the built-in
BMP layout is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(global.configPath)
			if err != nil {
				return err
			}
			f, err := loadLayout(file, global, cfg)
			if err != nil {
				return err
			}
			return report.PrintLayout(cmd.OutOrStdout(), f)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Layout YAML file to validate")
	return cmd
}
