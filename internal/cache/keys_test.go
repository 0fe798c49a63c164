package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "llm",
			objectType:  "response",
			identifier:  "abc",
			paramsKey:   nil,
			expectedKey: "curriculum:llm:response:abc",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "llm",
			objectType:  "response",
			identifier:  "abc",
			paramsKey:   []string{},
			expectedKey: "curriculum:llm:response:abc",
		},
		{
			name:        "with model param",
			serviceName: "llm",
			objectType:  "response",
			identifier:  "abc",
			paramsKey:   []string{"ollama/llama3"},
			expectedKey: "curriculum:llm:response:abc:ollama/llama3",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "llm",
			objectType:  "response",
			identifier:  "abc",
			paramsKey:   []string{"gemini", "t0.2"},
			expectedKey: "curriculum:llm:response:abc:gemini_t0.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}
