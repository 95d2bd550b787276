package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/ddc"
	"github.com/aretw0/ddc/pkg/adapters/fs"
	"github.com/aretw0/ddc/pkg/core"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
)

type rootFlags struct {
	debug      bool
	configFile string
	columns    []string
	exclude    []string
	format     string
	title      string
	output     string
}

// newRootCommand creates a fresh root command instance so tests can run
// isolated command trees.
func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "ddc <directory>",
		Short: "Catalog the " + ddc.DefaultFilename + " docs under a directory",
		Long: `ddc is the Data Directory Cataloger.
It looks one level below the given directory for ` + ddc.DefaultFilename + ` files describing
each subdirectory, and prints a Markdown summary of their metadata with
warnings for missing files, inconsistent keys and disallowed characters.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if flags.debug {
				level = slog.LevelDebug
			}

			opts := &slog.HandlerOptions{
				Level: level,
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
			slog.SetDefault(logger)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.debug, "debug", "d", false, "Enable debug logging and dump the parsed catalog")
	cmd.Flags().StringVar(&flags.configFile, "config", "", "Config file (default: ddc.yaml searched upwards, then $HOME)")
	cmd.Flags().StringSliceVarP(&flags.columns, "columns", "c", nil, "Metadata fields shown in the table, in order")
	cmd.Flags().StringArrayVarP(&flags.exclude, "exclude", "x", nil, "Skip subdirectories matching this glob (repeatable)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "md", "Output format: md or html")
	cmd.Flags().StringVar(&flags.title, "title", "", "Page title written in the front matter")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write the report to this file instead of stdout")

	setVersion(cmd)

	return cmd
}

func runCatalog(cmd *cobra.Command, root string, flags *rootFlags) error {
	cfg, err := ddc.LoadConfig(flags.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	if cfg.File != "" {
		slog.Debug("loaded config", "file", cfg.File)
	}

	opts := append(cfg.Options(),
		ddc.WithGenerator(cmd.Root().Name()),
		ddc.WithLogger(slog.Default()),
	)

	svc, err := ddc.New(opts...)
	if err != nil {
		return err
	}

	var report ddc.Report
	render := func(w io.Writer) error {
		report, err = svc.Run(cmd.Context(), root, w)
		return err
	}
	if flags.output != "" {
		err = fs.WriteAtomic(flags.output, 0644, render)
	} else {
		err = render(cmd.OutOrStdout())
	}
	if flags.debug {
		slog.Debug("service state", "state", svc.State())
	}
	if err != nil {
		return err
	}

	if report.Empty() {
		slog.Info("no metadata files found", "root", root, "filename", report.Filename)
	}
	if flags.output != "" {
		slog.Info("report written", "file", flags.output, "records", report.Catalog.Len())
	}
	return nil
}

// Execute runs cmd with args and returns the process exit code.
func Execute(cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return exitOK
	}

	stderr := cmd.ErrOrStderr()
	var invalid *core.InvalidRootError
	if errors.As(err, &invalid) {
		fmt.Fprintf(stderr, "Error: you must supply a directory, %s is not a directory.\n", invalid.Path)
		fmt.Fprintf(stderr, "For help run: %s -h\n", cmd.Name())
		return exitError
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitError
}
