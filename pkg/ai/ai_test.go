package ai

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// Mock Bedrock client
type mockBedrockClient struct {
	invokeModelFunc func(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

func (m *mockBedrockClient) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	if m.invokeModelFunc != nil {
		return m.invokeModelFunc(ctx, params, optFns...)
	}
	return &bedrockruntime.InvokeModelOutput{}, nil
}

func TestSummarize(t *testing.T) {
	responseBody := []byte(`{"output":{"message":{"content":[{"text":"## Summary\nFood poisoning."}]}}}`)

	var captured *bedrockruntime.InvokeModelInput
	mockBedrock := &mockBedrockClient{
		invokeModelFunc: func(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
			captured = params
			return &bedrockruntime.InvokeModelOutput{Body: responseBody}, nil
		},
	}

	s := NewWithClient(mockBedrock)
	summary, err := s.Summarize(context.Background(), "Doctor: how are you feeling?")
	if err != nil {
		t.Fatalf("Summarize() unexpected error: %v", err)
	}
	if summary != "## Summary\nFood poisoning." {
		t.Errorf("Summarize() = %q", summary)
	}

	if got := aws.ToString(captured.ModelId); got != modelID {
		t.Errorf("ModelId = %s, want %s", got, modelID)
	}
	if got := aws.ToString(captured.ContentType); got != "application/json" {
		t.Errorf("ContentType = %s, want application/json", got)
	}

	var req invokeRequest
	if err := json.Unmarshal(captured.Body, &req); err != nil {
		t.Fatalf("request body is not valid JSON: %v", err)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
		t.Fatalf("request messages = %+v", req.Messages)
	}
	text := req.Messages[0].Content[0].Text
	if !strings.Contains(text, "Doctor: how are you feeling?") {
		t.Error("request prompt missing transcript")
	}
	if !strings.HasPrefix(text, "Summarize the following medical conversation") {
		t.Error("request prompt missing instruction prefix")
	}
}

func TestParseModelResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			name: "valid response",
			body: `{"output":{"message":{"content":[{"text":"summary text"}]}}}`,
			want: "summary text",
		},
		{
			name:    "empty content",
			body:    `{"output":{"message":{"content":[]}}}`,
			wantErr: true,
		},
		{
			name:    "not JSON",
			body:    `<throttled>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModelResponse([]byte(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseModelResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseModelResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}
