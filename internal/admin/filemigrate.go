package admin

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/cvan-em/artsnetwork/internal/config"
	"github.com/cvan-em/artsnetwork/internal/logger"
)

// S3Uploader is the slice of the S3 API the migration needs.
type S3Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client builds a client for the configured bucket endpoint. Path-style
// addressing is needed for MinIO and similar self-hosted stores.
func NewS3Client(ctx context.Context, cfg *config.S3) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})
	return client, nil
}

var contentTypeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".pdf":  "application/pdf",
}

// ContentTypeForFile maps a filename extension to its MIME type,
// defaulting to application/octet-stream.
func ContentTypeForFile(name string) string {
	if ct, ok := contentTypeByExt[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// IsTransformVariant reports whether a filename is a CMS-generated resized
// copy rather than an original. The CMS names variants by appending a
// double-underscore suffix to the asset id; it regenerates them on demand,
// so they are not worth migrating.
func IsTransformVariant(name string) bool {
	return strings.Contains(name, "__")
}

// MigrateResult summarizes a storage migration run.
type MigrateResult struct {
	Uploaded []string
	Skipped  []string
	SQL      string
}

// MigrateDir uploads every original file in uploadsDir to the bucket and
// returns the SQL that repoints the CMS file records at the new storage
// driver. The SQL is emitted rather than executed so the operator can run
// it inside the same maintenance window as the CMS config change.
func MigrateDir(ctx context.Context, uploader S3Uploader, uploadsDir, bucket string) (*MigrateResult, error) {
	entries, err := os.ReadDir(uploadsDir)
	if err != nil {
		return nil, fmt.Errorf("read uploads dir: %w", err)
	}

	result := &MigrateResult{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if IsTransformVariant(name) {
			result.Skipped = append(result.Skipped, name)
			continue
		}

		data, err := os.ReadFile(filepath.Join(uploadsDir, name))
		if err != nil {
			return result, fmt.Errorf("read %s: %w", name, err)
		}

		_, err = uploader.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(name),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(ContentTypeForFile(name)),
		})
		if err != nil {
			return result, fmt.Errorf("upload %s: %w", name, err)
		}

		logger.Log.Info("uploaded file", "name", name, "bytes", len(data))
		result.Uploaded = append(result.Uploaded, name)
	}

	result.SQL = repointSQL()
	return result, nil
}

// repointSQL switches every CMS file record from the local driver to s3.
// The filenames on disk are the stored identifiers, so only the storage
// column needs to change.
func repointSQL() string {
	return "UPDATE directus_files SET storage = 's3' WHERE storage = 'local';"
}
