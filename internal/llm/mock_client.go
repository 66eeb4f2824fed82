package llm

import (
	"context"
	"fmt"
)

// MockClient is a deterministic offline Client. It echoes a truncated prompt
// back, so intern and critic runs work with zero cost and no network.
type MockClient struct{}

// Ensure MockClient implements Client.
var _ Client = (*MockClient)(nil)

// NewMockClient creates a new mock completion client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// mockPromptPreview is how much of the prompt the mock response echoes.
const mockPromptPreview = 300

// Complete returns a canned response derived from the prompt.
func (m *MockClient) Complete(_ context.Context, req CompletionRequest) (string, error) {
	return fmt.Sprintf("[FAKE MODEL RESPONSE]\n\n%s...", truncate(req.Prompt, mockPromptPreview)), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
