package prereq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFindsCommonTool(t *testing.T) {
	// Try multiple common tools because different environments
	// have different tools available.
	possibleTools := []string{"go", "bash", "sh", "ls", "cat"}

	var foundTool string
	for _, tool := range possibleTools {
		results := Check([]Tool{{Name: tool, Required: false}})
		if len(results.Results) > 0 && results.Results[0].Found {
			foundTool = tool
			break
		}
	}

	if foundTool == "" {
		t.Skip("no common tools found in PATH, skipping test")
	}

	results := Check([]Tool{{
		Name:        foundTool,
		Required:    true,
		Description: "Test tool",
		InstallURL:  "https://example.com",
	}})

	require.Len(t, results.Results, 1)
	assert.True(t, results.Results[0].Found)
	assert.NotEmpty(t, results.Results[0].Path)
	assert.False(t, results.HasErrors())
	assert.NoError(t, results.Error())
}

func TestCheckMissingRequiredTool(t *testing.T) {
	results := Check([]Tool{{
		Name:       "nonexistent-tool-xyz123",
		Required:   true,
		InstallURL: "https://example.com",
	}})

	require.Len(t, results.Missing, 1)
	assert.True(t, results.HasErrors())

	err := results.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent-tool-xyz123")
	assert.Contains(t, err.Error(), "https://example.com")
}

func TestCheckMissingOptionalToolIsNotAnError(t *testing.T) {
	results := Check([]Tool{{
		Name:     "nonexistent-tool-xyz123",
		Required: false,
	}})

	assert.Len(t, results.Missing, 1)
	assert.False(t, results.HasErrors())
	assert.NoError(t, results.Error())
}

func TestDefaultTools(t *testing.T) {
	tools := DefaultTools()
	require.Len(t, tools, 2)

	names := []string{tools[0].Name, tools[1].Name}
	assert.Contains(t, names, "minikube")
	assert.Contains(t, names, "kubectl")
	for _, tool := range tools {
		assert.True(t, tool.Required)
		assert.NotEmpty(t, tool.InstallURL)
	}
}
