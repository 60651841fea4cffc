// Package main starts the vulnerability text parser service: REST and GraphQL
// endpoints backed by a language model, plus the optional Kafka worker.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ortelius/pdvd-llm-parser/config"
	"github.com/ortelius/pdvd-llm-parser/internal/api"
	"github.com/ortelius/pdvd-llm-parser/internal/kafka"
	"github.com/ortelius/pdvd-llm-parser/internal/services"
	"github.com/ortelius/pdvd-llm-parser/llm"
	"github.com/ortelius/pdvd-llm-parser/parser"
	"github.com/ortelius/pdvd-llm-parser/util"
	"go.uber.org/zap"
)

func main() {
	logger := util.InitLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	if err := cfg.Model.Validate(); err != nil {
		logger.Fatal("Invalid model configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := llm.NewClient(cfg.Model, logger)
	logger.Info("Waiting for model endpoint",
		zap.String("provider", string(cfg.Model.Provider)),
		zap.String("model", cfg.Model.Name),
		zap.String("base_url", cfg.Model.BaseURL))
	if err := llm.WaitForModel(ctx, client, llm.DefaultProbeSettings, logger); err != nil {
		logger.Fatal("Model endpoint not reachable", zap.Error(err))
	}

	summaryParser := parser.NewSummaryParser(client, logger)
	cpeParser := parser.NewConfigurationParser(client, logger)

	if cfg.Kafka.Enabled() {
		extractor := &services.ExtractionServiceWrapper{Summary: summaryParser, CPE: cpeParser}
		if err := kafka.RunEventProcessor(ctx, cfg.Kafka, extractor, logger); err != nil {
			logger.Fatal("Failed to start Kafka event processor", zap.Error(err))
		}
	} else {
		logger.Info("KAFKA_BROKERS not set, event processor disabled")
	}

	app, err := api.NewFiberApp(summaryParser, cpeParser, logger)
	if err != nil {
		logger.Fatal("Failed to create GraphQL schema", zap.Error(err))
	}

	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	logger.Info("Starting server", zap.String("port", cfg.Port))
	logger.Info("GraphQL endpoint available at /api/v1/graphql")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
