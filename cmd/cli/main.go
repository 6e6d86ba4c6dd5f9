package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"gobenford/adapters/excel"
	"gobenford/adapters/export"
	"gobenford/domain/benford"
	"gobenford/internal/config"
	"gobenford/internal/container"
	"gobenford/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "benford",
		Short:         "Test numeric columns against Benford's Law",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newColumnsCmd(),
		newHistoryCmd(),
	)
	return rootCmd
}

func newAnalyzeCmd() *cobra.Command {
	var (
		columns    []string
		all        bool
		minValue   float64
		maxValue   float64
		exportPath string
		alpha      float64
		save       bool
		dataPath   string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Run the first-digit test on one or more columns",
		Long: `Run the Benford first-digit test on numeric columns of a CSV, XLSX or JSON file.

Example: benford analyze invoices.csv --column amount --min 10 --export amount.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(columns) == 0 {
				return fmt.Errorf("select columns with --column or use --all")
			}
			if format != "text" && format != "markdown" {
				return fmt.Errorf("unknown format %q, use text or markdown", format)
			}

			var filter benford.RangeFilter
			if cmd.Flags().Changed("min") {
				filter.Min = benford.Bound(minValue)
			}
			if cmd.Flags().Changed("max") {
				filter.Max = benford.Bound(maxValue)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("alpha") {
				alpha = cfg.Analysis.SignificanceLevel
			}

			logger := logging.NewConsoleLogger(cmd.ErrOrStderr(), "cli", logging.ParseLevel(cfg.Logging.Level))
			dataset, err := excel.NewDataReader(args[0]).WithDataPath(dataPath).WithLogger(logger).ReadData()
			if err != nil {
				return err
			}

			c, err := container.New(cfg, logger)
			if err != nil {
				return err
			}
			if save {
				if err := c.InitWithDatabase(cmd.Context()); err != nil {
					return err
				}
			}
			defer c.Shutdown()

			if all {
				columns = nil
			}
			runs, err := c.Service.AnalyzeDataset(cmd.Context(), dataset, columns, filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, run := range runs {
				if i > 0 {
					fmt.Fprintln(out)
				}
				if format == "markdown" {
					if _, err := out.Write(export.Markdown(run, alpha)); err != nil {
						return err
					}
					continue
				}
				if err := writeReport(out, run, alpha); err != nil {
					return err
				}
			}

			if exportPath != "" {
				return exportRuns(out, exportPath, runs)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&columns, "column", "c", nil, "Column to analyze (repeatable)")
	cmd.Flags().BoolVar(&all, "all", false, "Analyze every numeric column")
	cmd.Flags().Float64Var(&minValue, "min", 0, "Discard values below this bound")
	cmd.Flags().Float64Var(&maxValue, "max", 0, "Discard values above this bound")
	cmd.Flags().StringVarP(&exportPath, "export", "o", "", "Write the digit table to a .csv or .xlsx file")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "Significance level for the verdict")
	cmd.Flags().BoolVar(&save, "save", false, "Store the runs in the history database")
	cmd.Flags().StringVar(&dataPath, "data-path", "", "gjson path to the records array in a JSON file")
	cmd.Flags().StringVar(&format, "format", "text", "Report format: text or markdown")

	return cmd
}

func newColumnsCmd() *cobra.Command {
	var (
		dataPath string
		preview  int
	)

	cmd := &cobra.Command{
		Use:   "columns <file>",
		Short: "List the columns of a dataset and whether they can be analyzed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := excel.NewDataReader(args[0]).WithDataPath(dataPath).ReadData()
			if err != nil {
				return err
			}

			numeric := make(map[string]bool)
			for _, name := range dataset.NumericColumns() {
				numeric[name] = true
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d rows\n\n", dataset.Source, len(dataset.Rows))
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "COLUMN\tNUMERIC")
			for _, name := range dataset.Headers {
				fmt.Fprintf(tw, "%s\t%t\n", name, numeric[name])
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if preview > 0 {
				fmt.Fprintln(out)
				return writePreview(out, dataset.Headers, dataset.Preview(preview))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data-path", "", "gjson path to the records array in a JSON file")
	cmd.Flags().IntVar(&preview, "preview", 0, "Print the first N rows")

	return cmd
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored analysis runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			c, err := container.New(cfg, logging.Nop())
			if err != nil {
				return err
			}
			if err := c.InitWithDatabase(cmd.Context()); err != nil {
				return err
			}
			defer c.Shutdown()

			runs, err := c.Service.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return writeHistory(cmd.OutOrStdout(), runs, cfg.Analysis.SignificanceLevel)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")

	return cmd
}

// exportRuns writes one table per run. With several runs the column name
// is appended to the file name.
func exportRuns(out io.Writer, path string, runs []*benford.Run) error {
	for _, run := range runs {
		target := path
		if len(runs) > 1 {
			ext := filepath.Ext(path)
			target = strings.TrimSuffix(path, ext) + "_" + sanitizeFileName(run.Summary.Column) + ext
		}
		if err := export.WriteFile(target, run.Summary); err != nil {
			return fmt.Errorf("export %s: %w", run.Summary.Column, err)
		}
		fmt.Fprintf(out, "Exported %s to %s\n", run.Summary.Column, target)
	}
	return nil
}

func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
}

func writePreview(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func writeHistory(w io.Writer, runs []*benford.Run, alpha float64) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs stored.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tCOLUMN\tDIGITS\tCHI2 P\tKS P\tCONFORMS")
	for _, run := range runs {
		s := run.Summary
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.4f\t%.4f\t%t\n",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"), s.Column, s.Total(),
			s.Fit.ChiSquaredPValue, s.Fit.KSPValue, s.Conforms(alpha))
	}
	return tw.Flush()
}

