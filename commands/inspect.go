package commands

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"bmpheaders/bmp"
	"bmpheaders/config"
	"bmpheaders/dialogue"
	"bmpheaders/layout"
	"bmpheaders/report"

	"github.com/spf13/cobra"
)

type inspectOptions struct {
	dir         string
	interactive bool
	output      string
	noDerived   bool
	noWarnings  bool
}

func newInspectCmd(global *globalOptions) *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect [file...]",
		Short: "Decode the headers of one or more BMP files",
		Long: `Decode the file header and info header of each BMP file and print every
field with its offset, the derived values of the layout, and warnings about
inconsistent headers.

A file that fails to decode is reported and the remaining files are still
processed; the command fails if any file failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, global, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", "", "Inspect every .bmp file in this directory")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Choose which files to inspect")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output format: table or yaml (default from config)")
	cmd.Flags().BoolVar(&opts.noDerived, "no-derived", false, "Skip derived values")
	cmd.Flags().BoolVar(&opts.noWarnings, "no-warnings", false, "Skip consistency warnings")
	return cmd
}

func runInspect(cmd *cobra.Command, global *globalOptions, opts *inspectOptions, args []string) error {
	cfg, err := config.LoadConfig(global.configPath)
	if err != nil {
		return err
	}
	if opts.output != "" {
		cfg.Output = opts.output
	}
	if opts.noDerived {
		cfg.Derived = false
	}
	if opts.noWarnings {
		cfg.Warnings = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	f, err := loadLayout("", global, cfg)
	if err != nil {
		return err
	}

	files := append([]string(nil), args...)
	if opts.dir != "" {
		found, err := findBMPFiles(opts.dir)
		if err != nil {
			return err
		}
		files = append(files, found...)
	}
	if opts.interactive {
		files, err = dialogue.ShowFileSelection(files, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("file selection failed: %w", err)
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no files to inspect: pass file names or --dir")
	}

	reports := make([]*report.FileReport, 0, len(files))
	failures := 0
	for _, path := range files {
		r, err := inspectFile(path, f, cfg)
		if err != nil {
			log.Printf("ERROR: %s: %v", path, err)
			r = report.Failed(path, err)
			failures++
		}
		reports = append(reports, r)
	}

	out := cmd.OutOrStdout()
	if cfg.Output == config.OutputYAML {
		if err := report.PrintYAML(out, reports); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			if err := report.PrintTable(out, r); err != nil {
				return err
			}
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d file(s) failed to decode", failures, len(files))
	}
	return nil
}

func inspectFile(path string, f *layout.FileFormat, cfg config.Config) (*report.FileReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	actualSize := int64(-1)
	if info, err := file.Stat(); err == nil {
		actualSize = info.Size()
	}

	var raw bytes.Buffer
	h, err := bmp.Decode(io.TeeReader(file, &raw))
	if err != nil {
		return nil, err
	}
	rawBits, err := bmp.RawBitsPerPixel(raw.Bytes())
	if err != nil {
		return nil, err
	}
	return report.New(path, h, f, report.Options{
		Derived:         cfg.Derived,
		Warnings:        cfg.Warnings,
		ActualSize:      actualSize,
		RawBitsPerPixel: rawBits,
	})
}

// findBMPFiles lists regular files in dir with a .bmp extension, in name order.
func findBMPFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory '%s': %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".bmp") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		log.Printf("No BMP files found in '%s'.", dir)
	}
	return files, nil
}
