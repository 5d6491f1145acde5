package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// documentKeyPrefix namespaces every intake document inside the bucket.
const documentKeyPrefix = "intake-documents/"

// allowedDocumentTypes restricts uploads to the formats the intake form
// accepts.
var allowedDocumentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// S3Service issues presigned URLs for seeker intake documents.
type S3Service struct {
	Presigner *s3.PresignClient
	Bucket    string
	Expiry    time.Duration
}

// NewS3Service reads AWS_REGION and S3_BUCKET_NAME.
func NewS3Service() *S3Service {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return &S3Service{
		Presigner: s3.NewPresignClient(s3.NewFromConfig(cfg)),
		Bucket:    os.Getenv("S3_BUCKET_NAME"),
		Expiry:    5 * time.Minute,
	}
}

// GenerateUploadURL returns a presigned PUT URL and the object key for a new
// intake document. Unsupported content types are rejected before any AWS
// call.
func (s *S3Service) GenerateUploadURL(ctx context.Context, fileName, fileType string) (string, string, error) {
	if !allowedDocumentTypes[fileType] {
		return "", "", fmt.Errorf("unsupported document type %q", fileType)
	}

	key := documentKeyPrefix + time.Now().Format("20060102150405") + "-" + fileName
	request, err := s.Presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}, s3.WithPresignExpires(s.Expiry))
	if err != nil {
		return "", "", fmt.Errorf("failed to presign upload: %w", err)
	}
	return request.URL, key, nil
}

// GenerateReadURL returns a presigned GET URL for a stored intake document.
func (s *S3Service) GenerateReadURL(ctx context.Context, key string) (string, error) {
	request, err := s.Presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.Expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign read: %w", err)
	}
	return request.URL, nil
}
