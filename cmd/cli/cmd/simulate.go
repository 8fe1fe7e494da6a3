// Package cmd - simulate command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var (
	simBase      float64
	simScenarios []string
	simFormat    string
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Price one customer under the canonical demand scenarios",
	Long: `Simulate dynamic pricing across the canonical demand scenarios.

Scenarios cover the demand grid: peak_weekday, offpeak_weekday,
peak_weekend, offpeak_weekend. All four run when none are named.

Examples:
  bbx-pricing simulate --base 1499
  bbx-pricing simulate --base 1499 --scenario peak_weekday --scenario peak_weekend`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Float64VarP(&simBase, "base", "b", 0, "plan base price (required)")
	simulateCmd.Flags().StringArrayVar(&simScenarios, "scenario", nil, "scenario name (repeatable, default all)")
	simulateCmd.Flags().StringVarP(&simFormat, "format", "f", "cli", "output format (cli, json)")
	simulateCmd.MarkFlagRequired("base")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine()
	if err != nil {
		return err
	}

	results, err := engine.SimulatePricingScenarios(simBase, nil, simScenarios)
	if err != nil {
		return err
	}

	if simFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("Base price: %.2f\n\n", simBase)
	for _, name := range names {
		r := results[name]
		fmt.Printf("%-18s %10.2f  (%+.2f%%)\n", name, r.DynamicPrice, r.PriceChangePercent)
	}
	return nil
}
