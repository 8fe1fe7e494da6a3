// Package cmd - roi command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	roiSaved  int
	roiARPU   float64
	roiMonths int
	roiCost   float64
	roiFormat string
)

// roiCmd represents the roi command
var roiCmd = &cobra.Command{
	Use:   "roi",
	Short: "Project the ROI of a retention investment",
	Long: `Project revenue saved, net benefit, ROI percent, and payback
period for a retention program.

Example:
  bbx-pricing roi --saved 700 --arpu 500 --months 24 --cost 1000000`,
	RunE: runROI,
}

func init() {
	roiCmd.Flags().IntVar(&roiSaved, "saved", 0, "customers saved from churning")
	roiCmd.Flags().Float64Var(&roiARPU, "arpu", 0, "average revenue per user per month")
	roiCmd.Flags().IntVar(&roiMonths, "months", 24, "average remaining customer lifetime in months")
	roiCmd.Flags().Float64Var(&roiCost, "cost", 0, "implementation cost")
	roiCmd.Flags().StringVarP(&roiFormat, "format", "f", "cli", "output format (cli, json)")
	roiCmd.MarkFlagRequired("saved")
	roiCmd.MarkFlagRequired("arpu")
	roiCmd.MarkFlagRequired("cost")
}

func runROI(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine()
	if err != nil {
		return err
	}

	roi, err := engine.CalculateROIProjection(roiSaved, roiARPU, roiMonths, roiCost)
	if err != nil {
		return err
	}

	if roiFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(roi)
	}

	fmt.Printf("Customers saved:     %d\n", roi.CustomersSaved)
	fmt.Printf("Revenue saved:       %.2f\n", roi.RevenueSaved)
	fmt.Printf("Implementation cost: %.2f\n", roi.ImplementationCost)
	fmt.Printf("Net benefit:         %.2f\n", roi.NetBenefit)
	fmt.Printf("ROI:                 %.2f%%\n", roi.ROIPercent)
	fmt.Printf("Payback:             %.1f months\n", roi.PaybackMonths)
	return nil
}
