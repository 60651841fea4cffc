// Package summaries defines types for Kafka event processing of vulnerability summaries.
package summaries

import (
	"time"
)

// Event type names and the schema version they are published with
const (
	EventTypeSummaryReceived     = "vulnerability.summary.received"
	EventTypeExtractionCompleted = "vulnerability.extraction.completed"
	SchemaVersion                = "v1"
)

// VulnerabilitySummaryReceivedEvent asks the worker to extract package data
// from one vulnerability record.
type VulnerabilitySummaryReceivedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	VulnerabilityID string `json:"vulnerability_id"`

	// Free text summary of the vulnerability
	Summary string `json:"summary,omitempty"`

	// Optional CPE or affected configuration string. Preferred over the
	// summary for the PURL when present.
	CPE string `json:"cpe,omitempty"`

	// Version ranges are only extracted when an ecosystem is given
	Ecosystem string `json:"ecosystem,omitempty"`
}

// VulnerabilityExtractionCompletedEvent carries the outcome of one extraction.
// A failed extraction still produces an event with Error set.
type VulnerabilityExtractionCompletedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	// EventID of the summary event this answers
	CausationID     string `json:"causation_id"`
	VulnerabilityID string `json:"vulnerability_id"`

	Purl           string   `json:"purl,omitempty"`
	Ecosystem      string   `json:"ecosystem,omitempty"`
	AffectedRanges []string `json:"affected_ranges,omitempty"`
	FixedRanges    []string `json:"fixed_ranges,omitempty"`

	Error string `json:"error,omitempty"`
}
