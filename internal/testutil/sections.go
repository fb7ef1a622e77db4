package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/stepforge/internal/config"
)

// LoadStep parses a single inline `step` block and returns its model.
func LoadStep(t *testing.T, stepHCL string) *config.Step {
	t.Helper()

	result := LoadPipelineTest(t, stepHCL)
	require.NoError(t, result.Err)

	steps := result.App.Model().Pipeline.Steps
	require.Len(t, steps, 1)
	return steps[0]
}

// ExtractorSection parses an inline extractor body into a section, the way
// capacities receive one from the loader.
func ExtractorSection(t *testing.T, body string) *config.Section {
	t.Helper()
	step := LoadStep(t, "step \"under_test\" {\n  extractor {\n"+body+"\n  }\n}\n")
	require.NotNil(t, step.Extractor)
	return step.Extractor
}

// LoaderSection parses an inline loader body into a section.
func LoaderSection(t *testing.T, body string) *config.Section {
	t.Helper()
	step := LoadStep(t, "step \"under_test\" {\n  loader {\n"+body+"\n  }\n}\n")
	require.NotNil(t, step.Loader)
	return step.Loader
}

// LookupSection parses an inline lookup body into a section.
func LookupSection(t *testing.T, body string) *config.Section {
	t.Helper()
	step := LoadStep(t, "step \"under_test\" {\n  lookup {\n"+body+"\n  }\n}\n")
	require.NotNil(t, step.Lookup)
	return step.Lookup
}
