// Package parser holds the two façades that turn vulnerability text into typed
// data with the help of a language model: SummaryParser and ConfigurationParser.
//
// Each call builds a prompt, makes one blocking model call, validates the
// answer and post-processes it. Nothing is retried and no partial result is
// returned. A parser keeps no per-call state and may be shared between
// goroutines.
package parser

import (
	"context"
	"fmt"

	"github.com/ortelius/pdvd-llm-parser/config"
	"github.com/ortelius/pdvd-llm-parser/llm"
	"github.com/ortelius/pdvd-llm-parser/schema"
	"github.com/ortelius/pdvd-llm-parser/versrange"
	"github.com/package-url/packageurl-go"
	"go.uber.org/zap"
)

// SummaryParser extracts a PURL or version ranges from a free text summary
type SummaryParser struct {
	model  llm.Model
	logger *zap.Logger
}

// NewSummaryParser creates a parser on top of an existing model
func NewSummaryParser(model llm.Model, logger *zap.Logger) *SummaryParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryParser{model: model, logger: logger.Named("summary-parser")}
}

// NewSummaryParserFromConfig creates a parser with its own model client
func NewSummaryParserFromConfig(cfg config.ModelConfig, logger *zap.Logger) *SummaryParser {
	return NewSummaryParser(llm.NewClient(cfg, logger), logger)
}

// GetPurl asks the model for the package described by summary
func (p *SummaryParser) GetPurl(ctx context.Context, summary string) (packageurl.PackageURL, error) {
	return extractPurl(ctx, p.model, p.logger, purlFromSummaryPrompt, summaryPrompt(summary))
}

// GetVersionRanges asks the model for affected and fixed version constraints
// and resolves both lists under the given ecosystem.
func (p *SummaryParser) GetVersionRanges(ctx context.Context, summary, ecosystem string) (affected []versrange.VersionRange, fixed []versrange.VersionRange, err error) {
	// a caller error should not cost a model call
	if !versrange.Supported(ecosystem) {
		return nil, nil, &versrange.UnsupportedEcosystemError{Ecosystem: ecosystem}
	}

	raw, err := p.model.Complete(ctx, llm.Request{
		SystemPrompt: versionsFromSummaryPrompt,
		Prompt:       summaryPrompt(summary),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("model call failed: %w", err)
	}

	affectedStrs, fixedStrs, err := schema.ValidateVersions([]byte(raw))
	if err != nil {
		p.logger.Warn("rejected model output", zap.String("output", raw), zap.Error(err))
		return nil, nil, err
	}

	affected, err = versrange.Resolve(ecosystem, affectedStrs)
	if err != nil {
		return nil, nil, fmt.Errorf("affected versions: %w", err)
	}
	fixed, err = versrange.ResolveFixed(ecosystem, fixedStrs)
	if err != nil {
		return nil, nil, fmt.Errorf("fixed versions: %w", err)
	}

	p.logger.Debug("resolved version ranges",
		zap.String("ecosystem", ecosystem),
		zap.Int("affected", len(affected)),
		zap.Int("fixed", len(fixed)))
	return affected, fixed, nil
}

// ConfigurationParser extracts a PURL from a CPE or affected configuration string
type ConfigurationParser struct {
	model  llm.Model
	logger *zap.Logger
}

// NewConfigurationParser creates a parser on top of an existing model
func NewConfigurationParser(model llm.Model, logger *zap.Logger) *ConfigurationParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfigurationParser{model: model, logger: logger.Named("cpe-parser")}
}

// NewConfigurationParserFromConfig creates a parser with its own model client
func NewConfigurationParserFromConfig(cfg config.ModelConfig, logger *zap.Logger) *ConfigurationParser {
	return NewConfigurationParser(llm.NewClient(cfg, logger), logger)
}

// GetPurl asks the model for the package named by the CPE string
func (p *ConfigurationParser) GetPurl(ctx context.Context, cpe string) (packageurl.PackageURL, error) {
	return extractPurl(ctx, p.model, p.logger, purlFromCPEPrompt, cpePrompt(cpe))
}

func extractPurl(ctx context.Context, model llm.Model, logger *zap.Logger, system, prompt string) (packageurl.PackageURL, error) {
	raw, err := model.Complete(ctx, llm.Request{SystemPrompt: system, Prompt: prompt})
	if err != nil {
		return packageurl.PackageURL{}, fmt.Errorf("model call failed: %w", err)
	}

	purl, err := schema.ValidatePurl([]byte(raw))
	if err != nil {
		logger.Warn("rejected model output", zap.String("output", raw), zap.Error(err))
		return packageurl.PackageURL{}, err
	}
	return purl, nil
}
