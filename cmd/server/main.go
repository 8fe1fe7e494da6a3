// Package main - Entry point for the BroadbandX dynamic pricing server
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"broadbandx-pricing/api"
	"broadbandx-pricing/core/churn"
	"broadbandx-pricing/core/pricing"
	"broadbandx-pricing/core/segment"
	"broadbandx-pricing/db"
	"broadbandx-pricing/internal/config"
	"broadbandx-pricing/internal/logging"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "", "config file (default is $HOME/.broadbandx-pricing/config.json)")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}

	engine, err := pricing.NewEngine(pricing.Config{
		Weights:         cfg.Pricing.Weights,
		Constraints:     cfg.Pricing.Constraints,
		Schedule:        cfg.Pricing.DemandSchedule,
		HistoryCapacity: cfg.Pricing.HistoryCapacity,
	})
	if err != nil {
		logging.Fatal("invalid pricing configuration", zap.Error(err))
	}

	// Model artifacts are optional: without them the engine prices
	// on its heuristics and the predict endpoints return 503.
	churnModel := loadChurnModel(cfg.Models.ChurnArtifact)
	segModel := loadSegmentModel(cfg.Models.SegmentationArtifact)
	engine.SetCollaborators(churnModel, segModel)

	if cfg.History.Enabled {
		store, err := db.NewSQLiteStore(cfg.History.DatabasePath)
		if err != nil {
			logging.Fatal("open history database", zap.Error(err))
		}
		defer store.Close()
		engine.SetSink(store)
		logging.Info("history persistence enabled",
			zap.String("path", cfg.History.DatabasePath))
	}

	listenAddr := cfg.API.ListenAddr
	if *addr != "" {
		listenAddr = *addr
	}

	server := api.NewServer(version, api.NewHandler(engine, churnModel, segModel))
	if err := server.ListenAndServe(listenAddr); err != nil {
		logging.Fatal("server stopped", zap.Error(err))
	}
}

func loadChurnModel(path string) *churn.Model {
	model, err := churn.Load(path)
	if err != nil {
		logging.Warn("churn model not loaded, using heuristic risk scoring",
			zap.String("path", path), zap.Error(err))
		return churn.New()
	}
	logging.Info("churn model loaded", zap.String("path", path))
	return model
}

func loadSegmentModel(path string) *segment.Model {
	model, err := segment.Load(path)
	if err != nil {
		logging.Warn("segmentation model not loaded, using heuristic elasticity",
			zap.String("path", path), zap.Error(err))
		return segment.New()
	}
	logging.Info("segmentation model loaded", zap.String("path", path))
	return model
}
