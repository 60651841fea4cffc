package parser

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ortelius/pdvd-llm-parser/llm"
	"github.com/ortelius/pdvd-llm-parser/schema"
	"github.com/ortelius/pdvd-llm-parser/versrange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModel answers every request with a fixed output and records what it saw
type fakeModel struct {
	mu       sync.Mutex
	output   string
	err      error
	requests []llm.Request
}

func (f *fakeModel) Complete(_ context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.output, f.err
}

func (f *fakeModel) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func TestGetVersionRangesEndToEnd(t *testing.T) {
	model := &fakeModel{output: `{"affected_versions": [">=1.2.3", "<2.0.0"], "fixed_versions": ["2.0.0"]}`}
	p := NewSummaryParser(model, nil)

	summary := "affects versions >=1.2.3 and <2.0.0, fixed in 2.0.0"
	affected, fixed, err := p.GetVersionRanges(context.Background(), summary, "pypi")
	require.NoError(t, err)

	want1, _ := versrange.Parse("vers:pypi/>=1.2.3")
	want2, _ := versrange.Parse("vers:pypi/<2.0.0")
	wantFixed, _ := versrange.Parse("vers:pypi/2.0.0")
	assert.Equal(t, []versrange.VersionRange{want1, want2}, affected)
	assert.Equal(t, []versrange.VersionRange{wantFixed}, fixed)

	require.Equal(t, 1, model.calls())
	assert.Equal(t, versionsFromSummaryPrompt, model.requests[0].SystemPrompt)
	assert.Contains(t, model.requests[0].Prompt, summary)
}

func TestGetVersionRangesNotFixed(t *testing.T) {
	model := &fakeModel{output: `{"affected_versions": ["1.0.0 - 1.4.2"], "fixed_versions": ["Not Fixed"]}`}
	affected, fixed, err := NewSummaryParser(model, nil).GetVersionRanges(context.Background(), "text", "npm")
	require.NoError(t, err)

	require.Len(t, affected, 1)
	assert.Equal(t, "vers:npm/>=1.0.0|<=1.4.2", affected[0].String())
	require.Len(t, fixed, 1)
	assert.True(t, fixed[0].NotFixed)
}

func TestGetVersionRangesUnsupportedEcosystem(t *testing.T) {
	model := &fakeModel{output: `{"affected_versions": [], "fixed_versions": []}`}
	_, _, err := NewSummaryParser(model, nil).GetVersionRanges(context.Background(), "text", "fortran")
	assert.ErrorIs(t, err, versrange.ErrUnsupportedEcosystem)
	assert.Equal(t, 0, model.calls())
}

func TestGetVersionRangesMalformed(t *testing.T) {
	model := &fakeModel{output: `{"affected_versions": [">=1.0"], "fixed_versions": ["not-a-version"]}`}
	affected, fixed, err := NewSummaryParser(model, nil).GetVersionRanges(context.Background(), "text", "pypi")
	assert.ErrorIs(t, err, versrange.ErrMalformedRange)
	assert.Nil(t, affected)
	assert.Nil(t, fixed)
}

func TestGetVersionRangesNotFixedInAffected(t *testing.T) {
	model := &fakeModel{output: `{"affected_versions": ["Not Fixed"], "fixed_versions": []}`}
	affected, fixed, err := NewSummaryParser(model, nil).GetVersionRanges(context.Background(), "text", "pypi")
	assert.ErrorIs(t, err, versrange.ErrMalformedRange)
	assert.Nil(t, affected)
	assert.Nil(t, fixed)
}

func TestGetVersionRangesSchemaError(t *testing.T) {
	model := &fakeModel{output: `{"affected_versions": [">=1.0"]}`}
	_, _, err := NewSummaryParser(model, nil).GetVersionRanges(context.Background(), "text", "pypi")
	assert.ErrorIs(t, err, schema.ErrSchemaValidation)
}

func TestModelErrorPropagates(t *testing.T) {
	boom := errors.New("connection refused")
	model := &fakeModel{err: boom}

	_, err := NewSummaryParser(model, nil).GetPurl(context.Background(), "text")
	assert.ErrorIs(t, err, boom)

	_, _, err = NewSummaryParser(model, nil).GetVersionRanges(context.Background(), "text", "pypi")
	assert.ErrorIs(t, err, boom)

	_, err = NewConfigurationParser(model, nil).GetPurl(context.Background(), "cpe:2.3:a:x:y")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, model.calls())
}

func TestSummaryGetPurl(t *testing.T) {
	model := &fakeModel{output: `{"string": "pkg:pypi/django@4.2.0"}`}
	purl, err := NewSummaryParser(model, nil).GetPurl(context.Background(), "Django 4.2.0 has a SQL injection")
	require.NoError(t, err)

	assert.Equal(t, "pypi", purl.Type)
	assert.Equal(t, "django", purl.Name)
	assert.Equal(t, "4.2.0", purl.Version)
	assert.Equal(t, purlFromSummaryPrompt, model.requests[0].SystemPrompt)
}

func TestGetPurlEmptyObject(t *testing.T) {
	model := &fakeModel{output: `{}`}
	_, err := NewSummaryParser(model, nil).GetPurl(context.Background(), "nothing here")
	assert.ErrorIs(t, err, schema.ErrSchemaValidation)

	_, err = NewConfigurationParser(model, nil).GetPurl(context.Background(), "nothing here")
	assert.ErrorIs(t, err, schema.ErrSchemaValidation)
}

func TestConfigurationGetPurl(t *testing.T) {
	model := &fakeModel{output: `{"string": "pkg:maven/org.apache.logging.log4j/log4j-core@2.14.1"}`}
	cpe := "cpe:2.3:a:apache:log4j:2.14.1:*:*:*:*:*:*:*"

	purl, err := NewConfigurationParser(model, nil).GetPurl(context.Background(), cpe)
	require.NoError(t, err)
	assert.Equal(t, "maven", purl.Type)
	assert.Equal(t, "org.apache.logging.log4j", purl.Namespace)
	assert.Equal(t, "log4j-core", purl.Name)
	assert.Equal(t, "2.14.1", purl.Version)

	req := model.requests[0]
	assert.Equal(t, purlFromCPEPrompt, req.SystemPrompt)
	assert.True(t, strings.HasSuffix(req.Prompt, cpe))
}

func TestParserIsSafeForConcurrentUse(t *testing.T) {
	model := &fakeModel{output: `{"affected_versions": ["<1.0.0"], "fixed_versions": ["1.0.0"]}`}
	p := NewSummaryParser(model, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := p.GetVersionRanges(context.Background(), "text", "semver")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 16, model.calls())
}
