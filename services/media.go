package services

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

// MediaService resolves static art (category icons, meme images) stored in
// object storage to presigned URLs. Optional: without MINIO_ENDPOINT the
// game falls back to the bundled emoji/filenames.
type MediaService struct {
	appContext.DefaultService
	client     *minio.Client
	bucketName string
	endpoint   string
	accessKey  string
	secretKey  string
	useSSL     bool
}

const MEDIA_SVC = "media_svc"

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Configure(ctx *appContext.Context) error {
	svc.endpoint = os.Getenv("MINIO_ENDPOINT")

	svc.accessKey = os.Getenv("MINIO_ACCESS_KEY")
	if svc.accessKey == "" {
		svc.accessKey = "admin"
	}

	svc.secretKey = os.Getenv("MINIO_SECRET_KEY")
	if svc.secretKey == "" {
		svc.secretKey = "password123"
	}

	svc.useSSL = os.Getenv("MINIO_USE_SSL") == "true"

	svc.bucketName = os.Getenv("MINIO_BUCKET_NAME")
	if svc.bucketName == "" {
		svc.bucketName = "popmath-assets"
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *MediaService) Start() error {
	if svc.endpoint == "" {
		log.Println("MinIO endpoint not configured, asset URLs disabled")
		return nil
	}

	client, err := minio.New(svc.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(svc.accessKey, svc.secretKey, ""),
		Secure: svc.useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %v", err)
	}

	svc.client = client

	if err := svc.ensureBucket(); err != nil {
		return fmt.Errorf("failed to ensure bucket exists: %v", err)
	}

	log.Printf("MinIO service started successfully with endpoint: %s", svc.endpoint)
	return nil
}

func (svc *MediaService) ensureBucket() error {
	ctx := context.Background()

	exists, err := svc.client.BucketExists(ctx, svc.bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return svc.client.MakeBucket(ctx, svc.bucketName, minio.MakeBucketOptions{})
}

func (svc *MediaService) Enabled() bool {
	return svc.client != nil
}

func (svc *MediaService) presignedURL(objectName string) (string, error) {
	if svc.client == nil {
		return "", fmt.Errorf("media service not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	u, err := svc.client.PresignedGetObject(ctx, svc.bucketName, objectName, time.Hour, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (svc *MediaService) CategoryIconURL(categoryID string) (string, error) {
	return svc.presignedURL(fmt.Sprintf("icons/%s.png", categoryID))
}

func (svc *MediaService) MemeImageURL(filename string) (string, error) {
	return svc.presignedURL(fmt.Sprintf("memes/%s", filename))
}
