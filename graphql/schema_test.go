package graphql

import (
	"context"
	"errors"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/ortelius/pdvd-llm-parser/llm"
	"github.com/ortelius/pdvd-llm-parser/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticModel(output string, err error) llm.Model {
	return llm.ModelFunc(func(_ context.Context, _ llm.Request) (string, error) {
		return output, err
	})
}

func run(t *testing.T, model llm.Model, query string) *graphql.Result {
	t.Helper()
	schema, err := CreateSchema(parser.NewSummaryParser(model, nil), parser.NewConfigurationParser(model, nil))
	require.NoError(t, err)
	return graphql.Do(graphql.Params{Schema: schema, RequestString: query, Context: context.Background()})
}

func TestPurlFromSummaryQuery(t *testing.T) {
	result := run(t, staticModel(`{"string": "pkg:npm/lodash@4.17.20"}`, nil),
		`{ purlFromSummary(summary: "lodash 4.17.20") { purl base_purl type name version } }`)
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})["purlFromSummary"].(map[string]interface{})
	assert.Equal(t, "pkg:npm/lodash@4.17.20", data["purl"])
	assert.Equal(t, "pkg:npm/lodash", data["base_purl"])
	assert.Equal(t, "npm", data["type"])
	assert.Equal(t, "lodash", data["name"])
	assert.Equal(t, "4.17.20", data["version"])
}

func TestPurlFromCPEQuery(t *testing.T) {
	result := run(t, staticModel(`{"string": "pkg:maven/org.apache.logging.log4j/log4j-core@2.14.1"}`, nil),
		`{ purlFromCPE(cpe: "cpe:2.3:a:apache:log4j:2.14.1") { namespace name } }`)
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})["purlFromCPE"].(map[string]interface{})
	assert.Equal(t, "org.apache.logging.log4j", data["namespace"])
	assert.Equal(t, "log4j-core", data["name"])
}

func TestVersionRangesQuery(t *testing.T) {
	result := run(t, staticModel(`{"affected_versions": [">=1.2.3", "<2.0.0"], "fixed_versions": ["2.0.0"]}`, nil),
		`{ versionRanges(summary: "text", ecosystem: "pypi") { ecosystem affected_ranges fixed_ranges } }`)
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})["versionRanges"].(map[string]interface{})
	assert.Equal(t, "pypi", data["ecosystem"])
	assert.Equal(t, []interface{}{"vers:pypi/>=1.2.3", "vers:pypi/<2.0.0"}, data["affected_ranges"])
	assert.Equal(t, []interface{}{"vers:pypi/2.0.0"}, data["fixed_ranges"])
}

func TestSupportedEcosystemsQuery(t *testing.T) {
	result := run(t, staticModel("", nil), `{ supportedEcosystems }`)
	require.Empty(t, result.Errors)

	list := result.Data.(map[string]interface{})["supportedEcosystems"].([]interface{})
	assert.Contains(t, list, "pypi")
	assert.Contains(t, list, "npm")
}

func TestQueryErrorsAreReported(t *testing.T) {
	result := run(t, staticModel("", errors.New("connection refused")),
		`{ purlFromSummary(summary: "x") { purl } }`)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Message, "connection refused")

	result = run(t, staticModel(`{}`, nil), `{ versionRanges(summary: "x", ecosystem: "fortran") { ecosystem } }`)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Message, "unsupported ecosystem")
}
