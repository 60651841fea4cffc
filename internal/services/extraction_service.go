// Package services provides internal service implementations for the parser service.
package services

import (
	"context"

	"github.com/ortelius/pdvd-llm-parser/events/modules/summaries"
	"github.com/ortelius/pdvd-llm-parser/parser"
	"github.com/ortelius/pdvd-llm-parser/versrange"
	"github.com/package-url/packageurl-go"
)

// ExtractionServiceWrapper implements summaries.Extractor on top of the parsers
type ExtractionServiceWrapper struct {
	Summary *parser.SummaryParser
	CPE     *parser.ConfigurationParser
}

// ExtractPurl uses the CPE when one is given and falls back to the summary.
func (w *ExtractionServiceWrapper) ExtractPurl(ctx context.Context, summary, cpe string) (packageurl.PackageURL, error) {
	if cpe != "" {
		return w.CPE.GetPurl(ctx, cpe)
	}
	return w.Summary.GetPurl(ctx, summary)
}

// ExtractVersionRanges delegates to the summary parser
func (w *ExtractionServiceWrapper) ExtractVersionRanges(ctx context.Context, summary, ecosystem string) ([]versrange.VersionRange, []versrange.VersionRange, error) {
	return w.Summary.GetVersionRanges(ctx, summary, ecosystem)
}

// Ensure compile-time interface check
var _ summaries.Extractor = (*ExtractionServiceWrapper)(nil)
