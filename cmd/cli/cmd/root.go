// Package cmd provides the CLI commands for bbx-pricing.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"broadbandx-pricing/internal/config"
	"broadbandx-pricing/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bbx-pricing",
	Short: "Dynamic pricing for broadband subscription plans",
	Long: `bbx-pricing computes demand- and churn-aware subscription prices.

It blends a time-of-day demand factor, a price elasticity factor, and a
churn risk factor into a bounded adjustment over the plan base price.

Examples:
  bbx-pricing price --base 1999 --nps 8
  bbx-pricing simulate --base 1499 --format json
  bbx-pricing roi --saved 700 --arpu 500 --months 24 --cost 1000000`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.broadbandx-pricing/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(roiCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("bbx-pricing version 1.0.0")
	},
}
