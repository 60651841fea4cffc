// Package graphql builds the root GraphQL schema from the module query fields.
package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/ortelius/pdvd-llm-parser/graphql/modules/extraction"
)

// CreateSchema mounts every module's queries on the root Query object
func CreateSchema(summary extraction.SummaryExtractor, cpe extraction.CPEExtractor) (graphql.Schema, error) {
	fields := graphql.Fields{}
	for name, field := range extraction.GetQueryFields(summary, cpe) {
		fields[name] = field
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: rootQuery,
	})
}
