// Package transcription starts speech-to-text jobs for uploaded consultation
// recordings. Pure request/response; job completion is observed elsewhere.
package transcription

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	transcribetypes "github.com/aws/aws-sdk-go-v2/service/transcribe/types"
)

// TranscribeAPI defines the interface for Transcribe operations
type TranscribeAPI interface {
	StartTranscriptionJob(ctx context.Context, params *transcribe.StartTranscriptionJobInput, optFns ...func(*transcribe.Options)) (*transcribe.StartTranscriptionJobOutput, error)
}

// Starter kicks off transcription jobs for uploaded media files.
type Starter struct {
	client       TranscribeAPI
	outputBucket string
	now          func() time.Time
}

// New creates a starter writing transcripts to outputBucket.
func New(cfg aws.Config, outputBucket string) *Starter {
	return &Starter{
		client:       transcribe.NewFromConfig(cfg),
		outputBucket: outputBucket,
		now:          time.Now,
	}
}

// NewWithClient creates a starter with an explicit client, for tests.
func NewWithClient(client TranscribeAPI, outputBucket string) *Starter {
	return &Starter{client: client, outputBucket: outputBucket, now: time.Now}
}

// MediaFormat maps a file extension to the Transcribe media format.
func MediaFormat(extension string) (transcribetypes.MediaFormat, error) {
	switch strings.ToLower(extension) {
	case "mp3":
		return transcribetypes.MediaFormatMp3, nil
	case "mp4":
		return transcribetypes.MediaFormatMp4, nil
	case "wav":
		return transcribetypes.MediaFormatWav, nil
	case "flac":
		return transcribetypes.MediaFormatFlac, nil
	default:
		return "", fmt.Errorf("unsupported media format: %s", extension)
	}
}

var jobNameInvalid = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// JobName builds a unique Transcribe job name for a file, restricted to the
// characters the service accepts.
func JobName(fileName string, at time.Time) string {
	name := fmt.Sprintf("transcribe-%s-%d", fileName, at.UnixMilli())
	return jobNameInvalid.ReplaceAllString(name, "-")
}

// Start begins transcription of s3://bucket/key and returns the job name.
func (s *Starter) Start(ctx context.Context, bucket, key string) (string, error) {
	fileName := path.Base(key)
	ext := strings.TrimPrefix(path.Ext(fileName), ".")
	if ext == "" {
		return "", fmt.Errorf("could not determine file extension: %s", key)
	}

	format, err := MediaFormat(ext)
	if err != nil {
		return "", err
	}

	jobName := JobName(fileName, s.now())
	_, err = s.client.StartTranscriptionJob(ctx, &transcribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobName),
		LanguageCode:         transcribetypes.LanguageCodeEnUs,
		MediaFormat:          format,
		Media: &transcribetypes.Media{
			MediaFileUri: aws.String(fmt.Sprintf("s3://%s/%s", bucket, key)),
		},
		OutputBucketName: aws.String(s.outputBucket),
		OutputKey:        aws.String(fmt.Sprintf("transcripts/%s.json", jobName)),
	})
	if err != nil {
		return "", fmt.Errorf("start transcription job %s: %w", jobName, err)
	}

	return jobName, nil
}
