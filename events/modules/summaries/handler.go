// Package summaries handles Kafka event processing for vulnerability summary events.
package summaries

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ortelius/pdvd-llm-parser/versrange"
	"github.com/package-url/packageurl-go"
	"go.uber.org/zap"
)

// Extractor defines the extraction operations the handler needs.
type Extractor interface {
	ExtractPurl(ctx context.Context, summary, cpe string) (packageurl.PackageURL, error)
	ExtractVersionRanges(ctx context.Context, summary, ecosystem string) (affected, fixed []versrange.VersionRange, err error)
}

// Publisher defines how extraction results leave the worker.
type Publisher interface {
	PublishExtractionCompleted(ctx context.Context, event VulnerabilityExtractionCompletedEvent) error
}

// HandleSummaryReceivedWithService processes vulnerability summary events from Kafka.
// Extraction failures are published with their error text; only a malformed
// event or a failed publish is returned to the caller.
func HandleSummaryReceivedWithService(
	ctx context.Context,
	msg []byte,
	extractor Extractor,
	publisher Publisher,
	logger *zap.Logger,
) error {
	var event VulnerabilitySummaryReceivedEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return fmt.Errorf("failed to unmarshal VulnerabilitySummaryReceivedEvent: %w", err)
	}

	if event.EventType != "" && event.EventType != EventTypeSummaryReceived {
		return fmt.Errorf("invalid event: unexpected event type %q", event.EventType)
	}
	if event.VulnerabilityID == "" || (event.Summary == "" && event.CPE == "") {
		return fmt.Errorf("invalid event: missing required fields")
	}

	logger.Info("Processing vulnerability summary",
		zap.String("vulnerability_id", event.VulnerabilityID),
		zap.String("event_id", event.EventID))

	result := VulnerabilityExtractionCompletedEvent{
		CausationID:     event.EventID,
		VulnerabilityID: event.VulnerabilityID,
		Ecosystem:       event.Ecosystem,
	}

	if err := extract(ctx, event, extractor, &result); err != nil {
		logger.Warn("Extraction failed",
			zap.String("vulnerability_id", event.VulnerabilityID),
			zap.Error(err))
		result = VulnerabilityExtractionCompletedEvent{
			CausationID:     event.EventID,
			VulnerabilityID: event.VulnerabilityID,
			Ecosystem:       event.Ecosystem,
			Error:           err.Error(),
		}
	}

	if err := publisher.PublishExtractionCompleted(ctx, result); err != nil {
		return fmt.Errorf("failed to publish extraction for %s: %w", event.VulnerabilityID, err)
	}

	logger.Info("Successfully processed vulnerability summary",
		zap.String("vulnerability_id", event.VulnerabilityID))
	return nil
}

func extract(ctx context.Context, event VulnerabilitySummaryReceivedEvent, extractor Extractor, result *VulnerabilityExtractionCompletedEvent) error {
	purl, err := extractor.ExtractPurl(ctx, event.Summary, event.CPE)
	if err != nil {
		return fmt.Errorf("purl: %w", err)
	}
	result.Purl = purl.ToString()

	if event.Ecosystem == "" || event.Summary == "" {
		return nil
	}

	affected, fixed, err := extractor.ExtractVersionRanges(ctx, event.Summary, event.Ecosystem)
	if err != nil {
		return fmt.Errorf("version ranges: %w", err)
	}
	result.AffectedRanges = rangeStrings(affected)
	result.FixedRanges = rangeStrings(fixed)
	return nil
}

func rangeStrings(ranges []versrange.VersionRange) []string {
	out := make([]string, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, r.String())
	}
	return out
}
