package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	appCfg "github.com/MattyxD3D/pacematch-connect-sub001/internal/config"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// s3Archiver implements SnapshotArchiver against an S3-compatible bucket.
type s3Archiver struct {
	client     *s3.Client
	bucketName string
}

// leaderboardSnapshot is the archived JSON document.
type leaderboardSnapshot struct {
	ZoneID     string                   `json:"zoneId"`
	ArchivedAt time.Time                `json:"archivedAt"`
	Entries    []domain.LeaderboardEntry `json:"entries"`
}

// NewS3Archiver creates a snapshot archiver backed by S3 (or an S3-compatible
// service such as MinIO when cfg.Endpoint is set).
func NewS3Archiver(cfg appCfg.S3Config) (SnapshotArchiver, error) {
	// Custom resolver for S3-compatible endpoints.
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.Endpoint != "" {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           cfg.Endpoint,
				SigningRegion: cfg.Region,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(context.TODO(),
		awsCfg.WithRegion(cfg.Region),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		awsCfg.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		log.Printf("ERROR: Failed to load AWS SDK config for S3: %v", err)
		return nil, err
	}

	// Path-style addressing is required by most S3-compatible services.
	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return &s3Archiver{
		client:     s3Client,
		bucketName: cfg.BucketName,
	}, nil
}

// ArchiveLeaderboard uploads the entries as a timestamped JSON object under
// leaderboard-snapshots/{zoneId}/.
func (s *s3Archiver) ArchiveLeaderboard(ctx context.Context, zoneID string, entries []domain.LeaderboardEntry) (string, error) {
	snapshot := leaderboardSnapshot{
		ZoneID:     zoneID,
		ArchivedAt: time.Now().UTC(),
		Entries:    entries,
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}

	objectKey := fmt.Sprintf("leaderboard-snapshots/%s/%s-%s.json",
		zoneID, snapshot.ArchivedAt.Format("20060102T150405Z"), uuid.NewString())

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", err
	}
	return objectKey, nil
}
