package commands

import (
	"fmt"

	"bmpheaders/config"
	"bmpheaders/layout"

	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	layoutPath string
}

// NewRootCmd builds the bmpheaders command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "bmpheaders",
		Short: "Decode and inspect BMP file headers",
		Long: `bmpheaders decodes the 14-byte file header and the 40-byte info header
at the start of BMP files and prints their fields, values derived from them,
and consistency warnings.

Examples:
  # Inspect two files
  bmpheaders inspect photo.bmp icon.bmp

  # Pick files from a directory interactively and print YAML
  bmpheaders inspect --dir images -i --output yaml

  # Show the header layout
  bmpheaders layout`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "Path to the JSON configuration file")
	cmd.PersistentFlags().StringVar(&opts.layoutPath, "layout", "", "Path to a YAML header layout with custom descriptions or derived values (default: built-in BMP layout)")

	cmd.AddCommand(newInspectCmd(opts))
	cmd.AddCommand(newLayoutCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadLayout picks the layout file from the first of: explicit path, the
// --layout flag, the configuration. With none set the built-in layout is used.
// A custom layout may change descriptions and derived values, but its fields
// must line up with the built-in layout the decoder fills.
func loadLayout(explicit string, opts *globalOptions, cfg config.Config) (*layout.FileFormat, error) {
	path := explicit
	if path == "" {
		path = opts.layoutPath
	}
	if path == "" {
		path = cfg.LayoutFile
	}

	builtin, err := layout.Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return builtin, nil
	}

	f, err := layout.Load(path)
	if err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("layout %s is not usable: %w", f.Name, err)
	}
	if err := f.MatchFields(builtin); err != nil {
		return nil, fmt.Errorf("layout %s does not match the decoded headers: %w", f.Name, err)
	}
	return f, nil
}
