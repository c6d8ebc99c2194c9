package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"chartlab/adapters/excel"
	"chartlab/adapters/postgres"
	"chartlab/app"
	"chartlab/domain/chart"
	"chartlab/domain/dataset"
	"chartlab/internal"
	"chartlab/internal/config"
	"chartlab/internal/errors"
	"chartlab/internal/migration"
	"chartlab/internal/report"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "chartlab",
		Short:         "Profile CSV, XLSX or JSON row files and prepare chart data from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log parser and service activity to stderr")

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newPrepareCmd(),
		newPreviewCmd(),
		newMigrateCmd(),
	)
	return rootCmd
}

func logger() *internal.Logger {
	if verbose {
		return internal.NewLoggerTo(os.Stderr, internal.LogLevelDebug, false)
	}
	return internal.Discard
}

// readDataset loads a CSV or XLSX file, or a JSON array of row objects
func readDataset(path string) (dataset.Dataset, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		raw, err := os.ReadFile(path)
		if err != nil {
			return dataset.Dataset{}, err
		}
		data, err := dataset.ParseJSONRows(raw)
		if err != nil {
			return dataset.Dataset{}, errors.WithCode(errors.CodeInvalidInput, err)
		}
		return data, nil
	}

	reader := excel.NewDataReader(path).WithLogger(logger())
	if reader.FileType() == "" {
		return dataset.Dataset{}, errors.UploadRejected(errors.CodeUnsupportedFile, fmt.Errorf("%s: only .csv, .xlsx and .json files are supported", path))
	}
	return reader.ReadData()
}

func newAnalyzeCmd() *cobra.Command {
	var asHTML, asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Profile every column of a CSV, XLSX or JSON rows file",
		Long: `Infer numeric and categorical columns and print a summary report.

Example: chartlab analyze sales.csv --html > report.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if asHTML && asJSON {
				return errors.InvalidInput("--html and --json are mutually exclusive")
			}
			data, err := readDataset(args[0])
			if err != nil {
				return err
			}
			return runAnalyze(cmd.OutOrStdout(), args[0], data, asHTML, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "Render the report as HTML")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw report as JSON")
	return cmd
}

func runAnalyze(w io.Writer, name string, data dataset.Dataset, asHTML, asJSON bool) error {
	service := app.NewChartService(nil, nil, config.ChartsConfig{}, nil, logger())
	analysis := service.AnalyzeData(data)

	if asJSON {
		return writeJSON(w, analysis)
	}

	formatter := report.MarkdownFormatter{Title: "Data Analysis: " + name}
	out := formatter.Format(analysis)
	if asHTML {
		out = formatter.HTML(analysis)
	}
	_, err := w.Write(out)
	return err
}

func newPrepareCmd() *cobra.Command {
	var kind, x, y, title, color string

	cmd := &cobra.Command{
		Use:   "prepare [file]",
		Short: "Print renderer-ready chart records as JSON",
		Long: `Transform a file into the records a chart renderer consumes.

Kinds: bar, line, area, scatter, pie, histogram, treemap.

Example: chartlab prepare sales.csv --type bar --x month --y revenue`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := chart.ParseKind(kind)
			if err != nil {
				return errors.UnsupportedChart(kind)
			}
			spec := chart.Spec{Type: parsed, XColumn: x, YColumn: y, Title: title, Color: color}
			if err := validator.New().Struct(spec); err != nil {
				return errors.ValidationError("invalid chart flags: " + err.Error())
			}

			data, err := readDataset(args[0])
			if err != nil {
				return err
			}
			return runPrepare(cmd.OutOrStdout(), data, spec)
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "bar", "Chart kind")
	cmd.Flags().StringVar(&x, "x", "", "X axis / category column")
	cmd.Flags().StringVar(&y, "y", "", "Y axis / value column (optional for pie)")
	cmd.Flags().StringVar(&title, "title", "", "Chart title (default \"<Kind> Chart\")")
	cmd.Flags().StringVar(&color, "color", "", "Hex color (default "+chart.DefaultColor+")")
	_ = cmd.MarkFlagRequired("x")
	return cmd
}

func runPrepare(w io.Writer, data dataset.Dataset, spec chart.Spec) error {
	service := app.NewChartService(nil, nil, config.ChartsConfig{}, nil, logger())
	prepared, err := service.PrepareData(data, spec)
	if err != nil {
		return err
	}
	return writeJSON(w, prepared)
}

func newPreviewCmd() *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Show the first rows of a file as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readDataset(args[0])
			if err != nil {
				return err
			}
			return runPreview(cmd.OutOrStdout(), data, rows)
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "n", 8, "Number of rows to show")
	return cmd
}

func runPreview(w io.Writer, data dataset.Dataset, rows int) error {
	head := data.Head(rows)
	columns := head.ColumnNames()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, col := range columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col)
	}
	fmt.Fprintln(tw)
	for _, row := range head.Rows {
		for i, col := range columns {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, row.Get(col).String())
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nShowing %d of %d rows\n", head.Len(), data.Len())
	return err
}

func newMigrateCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the dataset schema to CHARTLAB_DATABASE_URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := migration.NewRunner()
			out := cmd.OutOrStdout()
			if dryRun {
				for _, step := range runner.Steps() {
					fmt.Fprintln(out, step)
				}
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg.Database.AutoMigrate = true
			return runMigrate(cmd.Context(), out, cfg.Database, runner)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the migration steps without connecting")
	return cmd
}

func runMigrate(ctx context.Context, w io.Writer, cfg config.DatabaseConfig, runner *migration.MigrationRunner) error {
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := postgres.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = fmt.Fprintf(w, "Schema %s applied (%d steps)\n", runner.Version(), len(runner.Steps()))
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
