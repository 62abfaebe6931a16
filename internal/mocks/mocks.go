package mocks

import (
	"context"
)

// LLMCall records one Generate invocation.
type LLMCall struct {
	System string
	User   string
}

// MockLLMClient is a scripted LLM client. Each call returns the next entry
// in Responses; the last entry repeats once the script runs out.
type MockLLMClient struct {
	Responses []string
	Err       error
	Calls     []LLMCall
}

func (m *MockLLMClient) Generate(ctx context.Context, systemMessage, userMessage string) (string, error) {
	m.Calls = append(m.Calls, LLMCall{System: systemMessage, User: userMessage})
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "{}", nil
	}
	idx := len(m.Calls) - 1
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	}
	return m.Responses[idx], nil
}
