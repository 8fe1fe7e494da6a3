// Package cmd - price command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"broadbandx-pricing/core/churn"
	"broadbandx-pricing/core/pricing"
	"broadbandx-pricing/core/segment"
	"broadbandx-pricing/core/types"
	"broadbandx-pricing/internal/config"
)

var (
	priceBase       float64
	priceAt         string
	outputFormat    string
	featNPS         float64
	featUsageGB     float64
	featPlanPrice   float64
	featUsageChange float64
	featInactive    float64
	featFailures    float64
	featTickets     float64
)

// priceCmd represents the price command
var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Compute a dynamic price for one customer",
	Long: `Compute a demand-, elasticity-, and churn-aware price.

Customer features default to neutral values; pass only the ones you know.

Examples:
  bbx-pricing price --base 1999 --nps 8 --usage-gb 320
  bbx-pricing price --base 999 --at 2024-01-15T20:00:00Z --format json`,
	RunE: runPrice,
}

func init() {
	priceCmd.Flags().Float64VarP(&priceBase, "base", "b", 0, "plan base price (required)")
	priceCmd.Flags().StringVar(&priceAt, "at", "", "pricing timestamp (RFC 3339, default now)")
	priceCmd.Flags().StringVarP(&outputFormat, "format", "f", "cli", "output format (cli, json)")
	addFeatureFlags(priceCmd)
	priceCmd.MarkFlagRequired("base")
}

func addFeatureFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&featNPS, "nps", 5, "NPS score (0-10)")
	cmd.Flags().Float64Var(&featUsageGB, "usage-gb", 0, "average monthly usage in GB")
	cmd.Flags().Float64Var(&featPlanPrice, "plan-price", 0, "current plan price (defaults to --base)")
	cmd.Flags().Float64Var(&featUsageChange, "usage-change", 0, "usage change over 30 days in percent")
	cmd.Flags().Float64Var(&featInactive, "days-inactive", 0, "days since last login")
	cmd.Flags().Float64Var(&featFailures, "payment-failures", 0, "payment failures in 90 days")
	cmd.Flags().Float64Var(&featTickets, "tickets", 0, "open support tickets")
}

func featureSet() types.FeatureSet {
	planPrice := featPlanPrice
	if planPrice == 0 {
		planPrice = priceBase
	}
	return types.FeatureSet{
		types.FeatNPSScore:          featNPS,
		types.FeatAvgMonthlyUsageGB: featUsageGB,
		types.FeatPlanPrice:         planPrice,
		types.FeatUsageChange30d:    featUsageChange,
		types.FeatDaysSinceLogin:    featInactive,
		types.FeatPaymentFailures:   featFailures,
		types.FeatSupportTickets:    featTickets,
	}
}

// buildEngine assembles an engine from the active configuration,
// attaching whichever model artifacts are present on disk.
func buildEngine() (*pricing.Engine, error) {
	cfg := config.Get()

	engine, err := pricing.NewEngine(pricing.Config{
		Weights:         cfg.Pricing.Weights,
		Constraints:     cfg.Pricing.Constraints,
		Schedule:        cfg.Pricing.DemandSchedule,
		HistoryCapacity: cfg.Pricing.HistoryCapacity,
	})
	if err != nil {
		return nil, err
	}

	churnModel, err := churn.Load(cfg.Models.ChurnArtifact)
	if err != nil {
		churnModel = churn.New()
	}
	segModel, err := segment.Load(cfg.Models.SegmentationArtifact)
	if err != nil {
		segModel = segment.New()
	}
	engine.SetCollaborators(churnModel, segModel)

	return engine, nil
}

func runPrice(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine()
	if err != nil {
		return err
	}

	var ts time.Time
	if priceAt != "" {
		ts, err = time.Parse(time.RFC3339, priceAt)
		if err != nil {
			return fmt.Errorf("invalid --at timestamp: %w", err)
		}
	}

	result, err := engine.CalculateDynamicPrice(priceBase, featureSet(), ts)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("Base price:     %.2f\n", result.BasePrice)
	fmt.Printf("Dynamic price:  %.2f (%+.2f%%)\n", result.DynamicPrice, result.PriceChangePercent)
	fmt.Printf("Demand factor:  %+.4f\n", result.Factors.DemandFactor)
	fmt.Printf("Elasticity:     %.2f (factor %.4f)\n", result.Factors.Elasticity, result.Factors.ElasticityFactor)
	fmt.Printf("Churn risk:     %.4f\n", result.Factors.ChurnRisk)
	fmt.Printf("Adjustment:     %+.4f\n", result.Adjustment)
	fmt.Printf("Recommendation: %s\n", result.Recommendation)
	return nil
}
