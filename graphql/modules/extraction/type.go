// Package extraction defines the GraphQL types for PURL and version range extraction.
package extraction

import (
	"github.com/graphql-go/graphql"
	"github.com/ortelius/pdvd-llm-parser/model"
	"github.com/ortelius/pdvd-llm-parser/versrange"
)

// PurlType represents a Package URL split into its components.
var PurlType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Purl",
	Fields: graphql.Fields{
		"purl":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"base_purl": &graphql.Field{Type: graphql.String},
		"type":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"namespace": &graphql.Field{Type: graphql.String},
		"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"version":   &graphql.Field{Type: graphql.String},
		"subpath":   &graphql.Field{Type: graphql.String},
	},
})

// VersionRangesType holds the affected and fixed ranges as vers strings.
var VersionRangesType = graphql.NewObject(graphql.ObjectConfig{
	Name: "VersionRanges",
	Fields: graphql.Fields{
		"ecosystem": &graphql.Field{Type: graphql.String},
		"affected_ranges": &graphql.Field{
			Type: graphql.NewList(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if resp, ok := p.Source.(model.VersionsResponse); ok {
					return versStrings(resp.AffectedRanges), nil
				}
				return nil, nil
			},
		},
		"fixed_ranges": &graphql.Field{
			Type: graphql.NewList(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if resp, ok := p.Source.(model.VersionsResponse); ok {
					return versStrings(resp.FixedRanges), nil
				}
				return nil, nil
			},
		},
	},
})

func versStrings(ranges []versrange.VersionRange) []string {
	out := make([]string, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, r.String())
	}
	return out
}
