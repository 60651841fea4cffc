// Package extraction defines the GraphQL queries for PURL and version range extraction.
package extraction

import (
	"context"

	"github.com/graphql-go/graphql"
	"github.com/ortelius/pdvd-llm-parser/model"
	"github.com/ortelius/pdvd-llm-parser/util"
	"github.com/ortelius/pdvd-llm-parser/versrange"
	"github.com/package-url/packageurl-go"
)

// SummaryExtractor is the part of parser.SummaryParser the resolvers use
type SummaryExtractor interface {
	GetPurl(ctx context.Context, summary string) (packageurl.PackageURL, error)
	GetVersionRanges(ctx context.Context, summary, ecosystem string) ([]versrange.VersionRange, []versrange.VersionRange, error)
}

// CPEExtractor is the part of parser.ConfigurationParser the resolvers use
type CPEExtractor interface {
	GetPurl(ctx context.Context, cpe string) (packageurl.PackageURL, error)
}

// GetQueryFields returns the extraction queries to be mounted in the root schema.
func GetQueryFields(summary SummaryExtractor, cpe CPEExtractor) graphql.Fields {
	return graphql.Fields{
		"purlFromSummary": &graphql.Field{
			Type: PurlType,
			Args: graphql.FieldConfigArgument{
				"summary": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				purl, err := summary.GetPurl(resolveContext(p), p.Args["summary"].(string))
				if err != nil {
					return nil, err
				}
				return purlSource(purl), nil
			},
		},
		"purlFromCPE": &graphql.Field{
			Type: PurlType,
			Args: graphql.FieldConfigArgument{
				"cpe": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				purl, err := cpe.GetPurl(resolveContext(p), p.Args["cpe"].(string))
				if err != nil {
					return nil, err
				}
				return purlSource(purl), nil
			},
		},
		"versionRanges": &graphql.Field{
			Type: VersionRangesType,
			Args: graphql.FieldConfigArgument{
				"summary":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"ecosystem": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				ecosystem := p.Args["ecosystem"].(string)
				affected, fixed, err := summary.GetVersionRanges(resolveContext(p), p.Args["summary"].(string), ecosystem)
				if err != nil {
					return nil, err
				}
				return model.VersionsResponse{
					Ecosystem:      ecosystem,
					AffectedRanges: affected,
					FixedRanges:    fixed,
				}, nil
			},
		},
		"supportedEcosystems": &graphql.Field{
			Type: graphql.NewList(graphql.String),
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return versrange.Schemes(), nil
			},
		},
	}
}

// purlSource flattens the PURL into a map so the default resolvers can read
// the snake_case field names.
func purlSource(purl packageurl.PackageURL) map[string]interface{} {
	base, err := util.GetStandardBasePURL(purl.ToString())
	if err != nil {
		base = ""
	}
	resp := model.NewPurlResponse(purl, base)
	return map[string]interface{}{
		"purl":      resp.Purl,
		"base_purl": resp.BasePurl,
		"type":      resp.Type,
		"namespace": resp.Namespace,
		"name":      resp.Name,
		"version":   resp.Version,
		"subpath":   resp.Subpath,
	}
}

func resolveContext(p graphql.ResolveParams) context.Context {
	if p.Context != nil {
		return p.Context
	}
	return context.Background()
}
