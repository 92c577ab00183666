package s3aws

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"pos-terminal/internal/pkg/logger"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type S3Config struct {
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

type S3Client struct {
	Client     s3iface.S3API
	BucketName string
}

type Is3 interface {
	GetBucketName() string
	UploadFile(ctx context.Context, key string, fileBytes []byte, contentType string) error
}

func newSession(cfg S3Config) (*session.Session, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.AWSRegion)}
	if cfg.AWSAccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")
	}
	return session.NewSession(awsCfg)
}

// NewS3Client connects to the bucket, creating it when missing.
func NewS3Client(cfg S3Config, bucketName string) (*S3Client, error) {
	sess, err := newSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}

	s3Client := &S3Client{
		Client:     s3.New(sess),
		BucketName: bucketName,
	}

	exists, err := s3Client.bucketExists()
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := s3Client.createBucket(); err != nil {
			return nil, err
		}
	}

	return s3Client, nil
}

func (s *S3Client) bucketExists() (bool, error) {
	_, err := s.Client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(s.BucketName),
	})
	if err == nil {
		return true, nil
	}

	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchBucket, "NotFound":
			return false, nil
		}
	}
	return false, fmt.Errorf("failed to check bucket %s: %w", s.BucketName, err)
}

func (s *S3Client) createBucket() error {
	logger.Info.Printf("Creating bucket: %s", s.BucketName)
	_, err := s.Client.CreateBucket(&s3.CreateBucketInput{
		Bucket: aws.String(s.BucketName),
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.BucketName, err)
	}
	return nil
}

func (s *S3Client) GetBucketName() string {
	return s.BucketName
}

func (s *S3Client) UploadFile(ctx context.Context, key string, fileBytes []byte, contentType string) error {
	_, err := s.Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(fileBytes),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return nil
}
