// Package extraction implements the REST handlers that expose the summary and
// CPE parsers.
package extraction

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ortelius/pdvd-llm-parser/model"
	"github.com/ortelius/pdvd-llm-parser/schema"
	"github.com/ortelius/pdvd-llm-parser/util"
	"github.com/ortelius/pdvd-llm-parser/versrange"
	"github.com/package-url/packageurl-go"
)

// SummaryExtractor is the part of parser.SummaryParser the handlers use
type SummaryExtractor interface {
	GetPurl(ctx context.Context, summary string) (packageurl.PackageURL, error)
	GetVersionRanges(ctx context.Context, summary, ecosystem string) ([]versrange.VersionRange, []versrange.VersionRange, error)
}

// CPEExtractor is the part of parser.ConfigurationParser the handlers use
type CPEExtractor interface {
	GetPurl(ctx context.Context, cpe string) (packageurl.PackageURL, error)
}

// Error kinds reported in ErrorResponse.Kind
const (
	KindInvalidInput         = "invalid_input"
	KindUnsupportedEcosystem = "unsupported_ecosystem"
	KindSchemaValidation     = "schema_validation"
	KindMalformedRange       = "malformed_range"
	KindModelFailure         = "model_failure"
)

// PostSummaryPurl handles POST /summary/purl
func PostSummaryPurl(p SummaryExtractor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.SummaryRequest
		if err := c.BodyParser(&req); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, KindInvalidInput, "Invalid request body: "+err.Error())
		}
		if util.IsEmpty(req.Summary) {
			return errorJSON(c, fiber.StatusBadRequest, KindInvalidInput, "summary is required")
		}

		purl, err := p.GetPurl(c.UserContext(), req.Summary)
		if err != nil {
			return extractionError(c, err)
		}
		return c.JSON(purlResponse(purl))
	}
}

// PostSummaryVersions handles POST /summary/versions
func PostSummaryVersions(p SummaryExtractor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.VersionsRequest
		if err := c.BodyParser(&req); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, KindInvalidInput, "Invalid request body: "+err.Error())
		}
		if util.IsEmpty(req.Summary) || util.IsEmpty(req.Ecosystem) {
			return errorJSON(c, fiber.StatusBadRequest, KindInvalidInput, "summary and ecosystem are required")
		}

		// parse the optional purl before spending a model call
		var purl *packageurl.PackageURL
		if !util.IsEmpty(req.Purl) {
			parsed, err := util.ParsePURL(req.Purl)
			if err != nil {
				return errorJSON(c, fiber.StatusBadRequest, KindInvalidInput, "invalid purl: "+err.Error())
			}
			purl = parsed
		}

		affected, fixed, err := p.GetVersionRanges(c.UserContext(), req.Summary, req.Ecosystem)
		if err != nil {
			return extractionError(c, err)
		}

		resp := model.VersionsResponse{
			Ecosystem:      req.Ecosystem,
			AffectedRanges: affected,
			FixedRanges:    fixed,
		}

		if !util.IsEmpty(req.Version) {
			hit, err := util.IsVersionAffectedAny(req.Version, affected)
			if err != nil {
				return errorJSON(c, fiber.StatusBadRequest, KindInvalidInput, "invalid version: "+err.Error())
			}
			resp.VersionAffected = &hit
		}

		if purl != nil {
			osv := util.BuildOSVAffected(*purl, affected, fixed)
			resp.OSVAffected = &osv
		}

		return c.JSON(resp)
	}
}

// PostCPEPurl handles POST /cpe/purl
func PostCPEPurl(p CPEExtractor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.CPERequest
		if err := c.BodyParser(&req); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, KindInvalidInput, "Invalid request body: "+err.Error())
		}
		if util.IsEmpty(req.CPE) {
			return errorJSON(c, fiber.StatusBadRequest, KindInvalidInput, "cpe is required")
		}

		purl, err := p.GetPurl(c.UserContext(), req.CPE)
		if err != nil {
			return extractionError(c, err)
		}
		return c.JSON(purlResponse(purl))
	}
}

func purlResponse(purl packageurl.PackageURL) model.PurlResponse {
	base, err := util.GetStandardBasePURL(purl.ToString())
	if err != nil {
		base = ""
	}
	return model.NewPurlResponse(purl, base)
}

// ErrorStatus maps an extraction error to its HTTP status and kind
func ErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, versrange.ErrUnsupportedEcosystem):
		return fiber.StatusBadRequest, KindUnsupportedEcosystem
	case errors.Is(err, schema.ErrSchemaValidation):
		return fiber.StatusUnprocessableEntity, KindSchemaValidation
	case errors.Is(err, versrange.ErrMalformedRange):
		return fiber.StatusUnprocessableEntity, KindMalformedRange
	default:
		return fiber.StatusBadGateway, KindModelFailure
	}
}

func extractionError(c *fiber.Ctx, err error) error {
	status, kind := ErrorStatus(err)
	return errorJSON(c, status, kind, err.Error())
}

func errorJSON(c *fiber.Ctx, status int, kind, message string) error {
	return c.Status(status).JSON(model.ErrorResponse{
		Success: false,
		Kind:    kind,
		Message: message,
	})
}
