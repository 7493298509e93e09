package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/task-tracker/internal/importer"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every stored task as YAML or JSON",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Create tasks from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var (
	exportFormat string
	exportOutput string
)

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", importer.FormatYAML, "Output format (yaml, json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	t, kv, err := openTracker(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("creating %s: %w", exportOutput, err)
		}
		defer f.Close()
		w = f
	}

	return importer.Export(w, t.Snapshot().Tasks, exportFormat)
}

func runImport(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	t, kv, err := openTracker(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	n, err := importer.Import(cmd.Context(), t, data)
	if n > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d task(s)\n", n)
	}
	return err
}
