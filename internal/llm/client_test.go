package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON",
			input:    `{"name": "Ada"}`,
			expected: `{"name": "Ada"}`,
		},
		{
			name:     "json fenced block",
			input:    "```json\n{\"name\": \"Ada\"}\n```",
			expected: `{"name": "Ada"}`,
		},
		{
			name:     "bare fenced block",
			input:    "```\n{\"name\": \"Ada\"}\n```",
			expected: `{"name": "Ada"}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n{\"name\": \"Ada\"}\n  ",
			expected: `{"name": "Ada"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanJSONBlock(tt.input))
		})
	}
}

func TestExtractTextFromResponse(t *testing.T) {
	t.Run("joins text parts", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"name":`), genai.Text(` "Ada"}`)}}},
			},
		}
		text, err := extractTextFromResponse(resp)
		require.NoError(t, err)
		assert.Equal(t, `{"name": "Ada"}`, text)
	})

	t.Run("no candidates", func(t *testing.T) {
		_, err := extractTextFromResponse(&genai.GenerateContentResponse{})
		assert.Error(t, err)
	})

	t.Run("no content", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}
		_, err := extractTextFromResponse(resp)
		assert.Error(t, err)
	})
}

func TestCandidateSchema(t *testing.T) {
	schema := CandidateSchema()

	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.ElementsMatch(t,
		[]string{"name", "email", "summary", "skills", "experience", "education"},
		schema.Required)

	experience := schema.Properties["experience"]
	require.NotNil(t, experience)
	assert.ElementsMatch(t,
		[]string{"role", "company", "duration", "description"},
		experience.Items.Required)

	education := schema.Properties["education"]
	require.NotNil(t, education)
	assert.ElementsMatch(t, []string{"institution", "degree"}, education.Items.Required)
}
