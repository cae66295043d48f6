package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/sidathasiri/medical-convo-summarizer/pkg/ai"
)

var summarizer *ai.Summarizer

func init() {
	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	summarizer = ai.New(awsCfg)
}

type request struct {
	Transcript string `json:"transcript"`
}

type response struct {
	Summary string `json:"summary"`
}

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var req request
	if err := json.Unmarshal([]byte(event.Body), &req); err != nil || req.Transcript == "" {
		return events.APIGatewayProxyResponse{
			StatusCode: 400,
			Body:       `{"message":"request body must contain a transcript"}`,
		}, nil
	}

	summary, err := summarizer.Summarize(ctx, req.Transcript)
	if err != nil {
		log.Printf("Error generating summary: %v", err)
		return events.APIGatewayProxyResponse{
			StatusCode: 500,
			Body:       `{"message":"error retrieving transcription summary"}`,
		}, nil
	}

	body, err := json.Marshal(response{Summary: summary})
	if err != nil {
		return events.APIGatewayProxyResponse{StatusCode: 500}, nil
	}

	return events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}

func main() {
	lambda.Start(handler)
}
