// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	"github.com/ortelius/pdvd-llm-parser/restapi/modules/extraction"
	"go.uber.org/zap"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint.
// CORS and the other middleware are handled globally in internal/api/fiber.go.
func SetupRoutes(app *fiber.App, summary extraction.SummaryExtractor, cpe extraction.CPEExtractor, schema graphql.Schema, logger *zap.Logger) {
	// API Group /api/v1
	api := app.Group("/api/v1")

	api.Post("/graphql", GraphQLHandler(schema, logger))

	summaryGroup := api.Group("/summary")
	summaryGroup.Post("/purl", extraction.PostSummaryPurl(summary))
	summaryGroup.Post("/versions", extraction.PostSummaryVersions(summary))

	api.Post("/cpe/purl", extraction.PostCPEPurl(cpe))

	logger.Info("API routes initialized successfully")
}
