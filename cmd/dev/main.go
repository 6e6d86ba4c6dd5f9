package main

import (
	"fmt"
	"os"

	"gobenford/domain/benford"
	"gobenford/internal/config"
	"gobenford/internal/container"
	"gobenford/internal/logging"
	"gobenford/internal/testkit"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "benford-dev",
		Short: "Benford development tools",
	}

	rootCmd.AddCommand(
		newSeedCmd(),
		newSmokeTestCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSeedCmd() *cobra.Command {
	var (
		rows int
		seed int64
	)

	cmd := &cobra.Command{
		Use:   "seed <out.csv>",
		Short: "Write a synthetic ledger with conforming and non-conforming columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := testkit.DefaultLedgerConfig()
			cfg.Rows = rows
			cfg.Seed = seed

			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			if err := testkit.NewLedgerGenerator(cfg).Generate().WriteCSV(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", rows, args[0])
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 5000, "Number of rows")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed")
	return cmd
}

func newSmokeTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Analyze a generated ledger and check every column's verdict",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			c, err := container.New(cfg, logging.NewDefaultLogger("dev"))
			if err != nil {
				return err
			}

			gen := testkit.DefaultLedgerConfig()
			ledger := testkit.NewLedgerGenerator(gen).Generate()
			runs, err := c.Service.AnalyzeDataset(cmd.Context(), ledger, nil, benford.RangeFilter{})
			if err != nil {
				return err
			}

			failed := 0
			for i, run := range runs {
				want := gen.Columns[i].Distribution == testkit.LogUniform
				got := run.Summary.Conforms(cfg.Analysis.SignificanceLevel)
				status := "ok"
				if want != got {
					status = "FAIL"
					failed++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-4s %-16s %-12s chi2 p=%.4f ks p=%.4f\n",
					status, run.Summary.Column, gen.Columns[i].Distribution, run.Summary.Fit.ChiSquaredPValue, run.Summary.Fit.KSPValue)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d columns had an unexpected verdict", failed, len(runs))
			}
			return nil
		},
	}
	return cmd
}
