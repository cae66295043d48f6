// Package ai wraps the Bedrock model call that summarizes a medical
// conversation transcript. Pure request/response; no state.
package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const (
	modelID = "amazon.nova-pro-v1:0"

	promptPrefix = `Summarize the following medical conversation between a doctor and patient. Include: summary, medication details in a table, vaccination info, developmental advice, symptoms to monitor, and follow-up plan. Use plain language parents can understand. Return the output in structured markdown format. Return only the output no any other questions or explanations.
`
)

// BedrockAPI defines the interface for Bedrock runtime operations
type BedrockAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Summarizer produces parent-friendly summaries of conversation transcripts.
type Summarizer struct {
	client BedrockAPI
}

// New creates a summarizer.
func New(cfg aws.Config) *Summarizer {
	return &Summarizer{client: bedrockruntime.NewFromConfig(cfg)}
}

// NewWithClient creates a summarizer with an explicit client, for tests.
func NewWithClient(client BedrockAPI) *Summarizer {
	return &Summarizer{client: client}
}

type messageContent struct {
	Text string `json:"text"`
}

type message struct {
	Role    string           `json:"role"`
	Content []messageContent `json:"content"`
}

type invokeRequest struct {
	Messages []message `json:"messages"`
}

type invokeResponse struct {
	Output struct {
		Message struct {
			Content []messageContent `json:"content"`
		} `json:"message"`
	} `json:"output"`
}

// Summarize sends the transcript to the model and returns the markdown
// summary.
func (s *Summarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	body, err := json.Marshal(invokeRequest{
		Messages: []message{{
			Role:    "user",
			Content: []messageContent{{Text: promptPrefix + transcript}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal model request: %w", err)
	}

	result, err := s.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("invoke model: %w", err)
	}

	summary, err := ParseModelResponse(result.Body)
	if err != nil {
		return "", err
	}

	return summary, nil
}

// ParseModelResponse extracts the summary text from a raw model response.
func ParseModelResponse(body []byte) (string, error) {
	var response invokeResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("decode model response: %w", err)
	}
	if len(response.Output.Message.Content) == 0 {
		return "", fmt.Errorf("model response contained no content")
	}
	return response.Output.Message.Content[0].Text, nil
}
