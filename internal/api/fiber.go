// Package api assembles the Fiber application.
package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/ortelius/pdvd-llm-parser/graphql"
	"github.com/ortelius/pdvd-llm-parser/parser"
	"github.com/ortelius/pdvd-llm-parser/restapi"
	"go.uber.org/zap"
)

// NewFiberApp creates and configures a Fiber app with REST and GraphQL routes
func NewFiberApp(summary *parser.SummaryParser, cpe *parser.ConfigurationParser, logger *zap.Logger) (*fiber.App, error) {
	schema, err := graphql.CreateSchema(summary, cpe)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:     "pdvd-llm-parser API v1.0",
		BodyLimit:   1 * 1024 * 1024, // 1MB
		ReadTimeout: 60 * time.Second,
		// model calls can take a while on a local server
		WriteTimeout: 5 * time.Minute,
	})

	// Middleware
	app.Use(fiberrecover.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000,http://localhost:4000,http://127.0.0.1:3000,http://127.0.0.1:4000",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		AllowMethods:     "GET, POST, HEAD, OPTIONS",
	}))

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("graphql_op", "-")
		return c.Next()
	})
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${status} - ${latency} ${method} ${path} ${locals:graphql_op}\n",
	}))

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	restapi.SetupRoutes(app, summary, cpe, schema, logger)

	return app, nil
}
