package transcription

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	transcribetypes "github.com/aws/aws-sdk-go-v2/service/transcribe/types"
)

// Mock Transcribe client
type mockTranscribeClient struct {
	startJobFunc func(ctx context.Context, params *transcribe.StartTranscriptionJobInput, optFns ...func(*transcribe.Options)) (*transcribe.StartTranscriptionJobOutput, error)
}

func (m *mockTranscribeClient) StartTranscriptionJob(ctx context.Context, params *transcribe.StartTranscriptionJobInput, optFns ...func(*transcribe.Options)) (*transcribe.StartTranscriptionJobOutput, error) {
	if m.startJobFunc != nil {
		return m.startJobFunc(ctx, params, optFns...)
	}
	return &transcribe.StartTranscriptionJobOutput{}, nil
}

func TestMediaFormat(t *testing.T) {
	tests := []struct {
		extension string
		want      transcribetypes.MediaFormat
		wantErr   bool
	}{
		{extension: "mp3", want: transcribetypes.MediaFormatMp3},
		{extension: "MP4", want: transcribetypes.MediaFormatMp4},
		{extension: "wav", want: transcribetypes.MediaFormatWav},
		{extension: "FLAC", want: transcribetypes.MediaFormatFlac},
		{extension: "ogg", wantErr: true},
		{extension: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.extension, func(t *testing.T) {
			got, err := MediaFormat(tt.extension)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MediaFormat(%q) error = %v, wantErr %v", tt.extension, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("MediaFormat(%q) = %s, want %s", tt.extension, got, tt.want)
			}
		})
	}
}

func TestJobName(t *testing.T) {
	at := time.UnixMilli(1756728000000)

	name := JobName("visit recording (draft).mp3", at)
	if strings.ContainsAny(name, " ().") {
		t.Errorf("JobName() = %q, contains characters Transcribe rejects", name)
	}
	if !strings.HasPrefix(name, "transcribe-") {
		t.Errorf("JobName() = %q, want transcribe- prefix", name)
	}
	if !strings.Contains(name, "1756728000000") {
		t.Errorf("JobName() = %q, want millisecond suffix for uniqueness", name)
	}
}

func TestStart(t *testing.T) {
	var captured *transcribe.StartTranscriptionJobInput
	mockClient := &mockTranscribeClient{
		startJobFunc: func(ctx context.Context, params *transcribe.StartTranscriptionJobInput, optFns ...func(*transcribe.Options)) (*transcribe.StartTranscriptionJobOutput, error) {
			captured = params
			return &transcribe.StartTranscriptionJobOutput{}, nil
		},
	}

	s := NewWithClient(mockClient, "transcripts-bucket")
	jobName, err := s.Start(context.Background(), "uploads-bucket", "uploads/visit.mp3")
	if err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	if jobName == "" {
		t.Fatal("Start() returned empty job name")
	}

	if got := aws.ToString(captured.Media.MediaFileUri); got != "s3://uploads-bucket/uploads/visit.mp3" {
		t.Errorf("MediaFileUri = %s", got)
	}
	if captured.MediaFormat != transcribetypes.MediaFormatMp3 {
		t.Errorf("MediaFormat = %s, want mp3", captured.MediaFormat)
	}
	if captured.LanguageCode != transcribetypes.LanguageCodeEnUs {
		t.Errorf("LanguageCode = %s, want en-US", captured.LanguageCode)
	}
	if got := aws.ToString(captured.OutputBucketName); got != "transcripts-bucket" {
		t.Errorf("OutputBucketName = %s, want transcripts-bucket", got)
	}
}

func TestStartRejectsUnknownExtension(t *testing.T) {
	s := NewWithClient(&mockTranscribeClient{}, "transcripts-bucket")

	if _, err := s.Start(context.Background(), "b", "uploads/notes.txt"); err == nil {
		t.Error("Start() accepted unsupported extension")
	}
	if _, err := s.Start(context.Background(), "b", "uploads/no-extension"); err == nil {
		t.Error("Start() accepted key without extension")
	}
}
