package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config holds S3/MinIO client configuration.
type Config struct {
	Endpoint        string // "localhost:9000" for MinIO
	Bucket          string // "tenderlens"
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
}

// Client wraps the MinIO/S3 client for the tender text-file layout written
// by the upstream extraction pipeline:
//
//	tenders/<tender_id>/files/<filename>.txt
//	tenders/<tender_id>/manifest.json
type Client struct {
	minioClient *minio.Client
	bucket      string
}

// New creates a new S3/MinIO client.
func New(config Config) (*Client, error) {
	if config.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if config.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	minioClient, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKeyID, config.SecretAccessKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &Client{
		minioClient: minioClient,
		bucket:      config.Bucket,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.minioClient.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}

	err = c.minioClient.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{})
	if err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// TenderManifest describes one extracted tender package.
type TenderManifest struct {
	TenderID    string   `json:"tender_id"`
	Title       string   `json:"title,omitempty"`
	ExtractedAt string   `json:"extracted_at"`
	FileCount   int      `json:"file_count"`
	Files       []string `json:"files"` // Original document filenames
}

// tenderPrefix returns the object prefix for a tender ID.
func tenderPrefix(tenderID string) string {
	return path.Join("tenders", tenderID)
}

// PutTextFile writes one extracted document text to S3.
func (c *Client) PutTextFile(ctx context.Context, tenderID, filename, content string) error {
	objectName := path.Join(tenderPrefix(tenderID), "files", filename)
	reader := strings.NewReader(content)

	_, err := c.minioClient.PutObject(ctx, c.bucket, objectName, reader, int64(len(content)), minio.PutObjectOptions{
		ContentType: "text/plain",
	})
	if err != nil {
		return fmt.Errorf("failed to put text file: %w", err)
	}
	return nil
}

// PutManifest writes the tender manifest JSON to S3.
func (c *Client) PutManifest(ctx context.Context, tenderID string, manifest TenderManifest) error {
	objectName := path.Join(tenderPrefix(tenderID), "manifest.json")

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	reader := bytes.NewReader(data)
	_, err = c.minioClient.PutObject(ctx, c.bucket, objectName, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to put manifest: %w", err)
	}
	return nil
}

// ListTextFiles returns the filenames of all extracted documents of a tender.
func (c *Client) ListTextFiles(ctx context.Context, tenderID string) ([]string, error) {
	filesPrefix := path.Join(tenderPrefix(tenderID), "files") + "/"
	var files []string

	objectCh := c.minioClient.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:    filesPrefix,
		Recursive: true,
	})

	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", object.Err)
		}
		// Return just the filename, not the full path
		files = append(files, path.Base(object.Key))
	}

	return files, nil
}

// GetTextFile reads one extracted document text from S3.
func (c *Client) GetTextFile(ctx context.Context, tenderID, filename string) (string, error) {
	objectName := path.Join(tenderPrefix(tenderID), "files", filename)

	object, err := c.minioClient.GetObject(ctx, c.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to get text file: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}

	return string(data), nil
}

// GetManifest reads the tender manifest from S3.
func (c *Client) GetManifest(ctx context.Context, tenderID string) (*TenderManifest, error) {
	objectName := path.Join(tenderPrefix(tenderID), "manifest.json")

	object, err := c.minioClient.GetObject(ctx, c.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get manifest: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest TenderManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	return &manifest, nil
}

// Bucket returns the bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}
