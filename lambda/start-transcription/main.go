package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/sidathasiri/medical-convo-summarizer/pkg/transcription"
)

const uploadsPrefix = "uploads/"

var starter *transcription.Starter

func init() {
	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	starter = transcription.New(awsCfg, os.Getenv("TRANSCRIPTS_BUCKET_NAME"))
}

func handler(ctx context.Context, event events.S3Event) error {
	for _, record := range event.Records {
		bucket := record.S3.Bucket.Name
		key, err := url.QueryUnescape(record.S3.Object.Key)
		if err != nil {
			return fmt.Errorf("decode object key %q: %w", record.S3.Object.Key, err)
		}

		if !strings.HasPrefix(key, uploadsPrefix) {
			log.Printf("Object %s not in uploads directory, skipping", key)
			continue
		}

		jobName, err := starter.Start(ctx, bucket, key)
		if err != nil {
			return err
		}
		log.Printf("Started transcription job %s for s3://%s/%s", jobName, bucket, key)
	}

	return nil
}

func main() {
	lambda.Start(handler)
}
