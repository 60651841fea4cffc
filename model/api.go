// Package model - API types for extraction requests/responses
package model

import (
	"github.com/google/osv-scanner/pkg/models"
	"github.com/ortelius/pdvd-llm-parser/versrange"
	"github.com/package-url/packageurl-go"
)

// SummaryRequest carries a free text vulnerability summary
type SummaryRequest struct {
	Summary string `json:"summary"`
}

// VersionsRequest asks for the version ranges of a summary under one ecosystem.
// Version is optional and is checked against the affected ranges when set.
// Purl is optional and turns on the OSV export of the ranges.
type VersionsRequest struct {
	Summary   string `json:"summary"`
	Ecosystem string `json:"ecosystem"`
	Version   string `json:"version,omitempty"`
	Purl      string `json:"purl,omitempty"`
}

// CPERequest carries a CPE or affected configuration string
type CPERequest struct {
	CPE string `json:"cpe"`
}

// PurlResponse is a parsed PURL in both string and component form
type PurlResponse struct {
	Purl       string            `json:"purl"`
	BasePurl   string            `json:"base_purl,omitempty"`
	Type       string            `json:"type"`
	Namespace  string            `json:"namespace,omitempty"`
	Name       string            `json:"name"`
	Version    string            `json:"version,omitempty"`
	Qualifiers map[string]string `json:"qualifiers,omitempty"`
	Subpath    string            `json:"subpath,omitempty"`
}

// NewPurlResponse flattens a PackageURL for the API
func NewPurlResponse(purl packageurl.PackageURL, base string) PurlResponse {
	resp := PurlResponse{
		Purl:      purl.ToString(),
		BasePurl:  base,
		Type:      purl.Type,
		Namespace: purl.Namespace,
		Name:      purl.Name,
		Version:   purl.Version,
		Subpath:   purl.Subpath,
	}
	if len(purl.Qualifiers) > 0 {
		resp.Qualifiers = purl.Qualifiers.Map()
	}
	return resp
}

// VersionsResponse holds the resolved ranges, encoded as vers strings
type VersionsResponse struct {
	Ecosystem       string                   `json:"ecosystem"`
	AffectedRanges  []versrange.VersionRange `json:"affected_ranges"`
	FixedRanges     []versrange.VersionRange `json:"fixed_ranges"`
	VersionAffected *bool                    `json:"version_affected,omitempty"`
	OSVAffected     *models.Affected         `json:"osv_affected,omitempty"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
