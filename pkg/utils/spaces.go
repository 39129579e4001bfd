package utils

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
)

// SpacesClient wraps the S3 client for DigitalOcean Spaces operations
type SpacesClient struct {
	client     *s3.S3
	bucketName string
	bucketURL  string
	cdnURL     string
	region     string
	logger     logging.Logger
}

// NewSpacesClient creates a new DigitalOcean Spaces client
func NewSpacesClient(cfg *config.Config) (*SpacesClient, error) {
	logger := logging.GetGlobalLogger().WithField("component", "spaces")
	spaces := cfg.DigitalOcean.Spaces

	if spaces.AccessKeyID == "" || spaces.AccessKeySecret == "" {
		return nil, fmt.Errorf("DigitalOcean Spaces credentials are required")
	}
	if spaces.BucketName == "" {
		return nil, fmt.Errorf("DigitalOcean Spaces bucket name is required")
	}

	// regional endpoint, e.g. https://tor1.digitaloceanspaces.com
	endpoint := fmt.Sprintf("https://%s.digitaloceanspaces.com", spaces.Region)

	sess, err := session.NewSession(&aws.Config{
		Credentials:      credentials.NewStaticCredentials(spaces.AccessKeyID, spaces.AccessKeySecret, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(spaces.Region),
		S3ForcePathStyle: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DigitalOcean Spaces session: %w", err)
	}

	logger.Info("DigitalOcean Spaces client initialized", map[string]interface{}{
		"bucket_name": spaces.BucketName,
		"region":      spaces.Region,
		"endpoint":    endpoint,
	})

	return &SpacesClient{
		client:     s3.New(sess),
		bucketName: spaces.BucketName,
		bucketURL:  spaces.BucketURL,
		cdnURL:     spaces.CDNEndpoint,
		region:     spaces.Region,
		logger:     logger,
	}, nil
}

// UploadArtifact stores data under objectKey with public-read access and returns its public URL
func (sc *SpacesClient) UploadArtifact(ctx context.Context, objectKey, contentType string, data []byte) (string, error) {
	_, err := sc.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(sc.bucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		sc.logger.Error("Failed to upload artifact to DigitalOcean Spaces", map[string]interface{}{
			"object_key": objectKey,
			"error":      err.Error(),
		})
		return "", fmt.Errorf("failed to upload %s: %w", objectKey, err)
	}

	url := PublicObjectURL(sc.cdnURL, sc.bucketURL, sc.bucketName, sc.region, objectKey)
	sc.logger.Info("Artifact uploaded successfully", map[string]interface{}{
		"object_key": objectKey,
		"size_bytes": len(data),
		"url":        url,
	})
	return url, nil
}

// PublicObjectURL prefers the CDN endpoint, then the bucket URL, then the
// virtual-hosted Spaces URL
func PublicObjectURL(cdnURL, bucketURL, bucketName, region, objectKey string) string {
	if cdnURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(cdnURL, "/"), objectKey)
	}
	if bucketURL != "" {
		base := strings.TrimRight(bucketURL, "/")
		if !strings.HasPrefix(base, "https://") && !strings.HasPrefix(base, "http://") {
			base = "https://" + base
		}
		return fmt.Sprintf("%s/%s", base, objectKey)
	}
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", bucketName, region, objectKey)
}

// Ping checks that the bucket is reachable with the configured credentials
func (sc *SpacesClient) Ping(ctx context.Context) error {
	_, err := sc.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(sc.bucketName),
	})
	if err != nil {
		sc.logger.Error("DigitalOcean Spaces health check failed", map[string]interface{}{
			"bucket_name": sc.bucketName,
			"error":       err.Error(),
		})
	}
	return err
}
