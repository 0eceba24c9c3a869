package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks -exclude_interfaces=objectClient

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"parking/config"
	"parking/infras/otel"
	"parking/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// S3 stores lot images in one bucket served from a public domain.
type S3 interface {
	UploadFile(ctx context.Context, directory string, file multipart.File, fileHeader *multipart.FileHeader, fileName string) (url string, err error)
	DeleteFile(ctx context.Context, directory, objectName string) error
	GetObjectNameFromURL(directory, url string) (objectName string)
}

type objectClient interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type storage struct {
	client       objectClient
	bucket       string
	publicDomain string
	otel         otel.Otel
}

func (st *storage) scope(ctx context.Context, op, object string) (context.Context, otel.Scope) {
	ctx, scope := st.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+"."+op)
	scope.SetAttributes(map[string]any{"bucket": st.bucket, "object": object})

	return ctx, scope
}

// UploadFile puts the multipart file at directory/fileName and returns its public URL.
func (st *storage) UploadFile(ctx context.Context, directory string, file multipart.File, fileHeader *multipart.FileHeader, fileName string) (url string, err error) {
	key := path.Join(directory, fileName)

	ctx, scope := st.scope(ctx, "UploadFile", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, err = st.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(st.bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentType:   aws.String(fileHeader.Header.Get(constant.RequestHeaderContentType)),
		ContentLength: aws.Int64(fileHeader.Size),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to upload object")

		return constant.Empty, fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return PublicURL(st.publicDomain, key), nil
}

func (st *storage) DeleteFile(ctx context.Context, directory, objectName string) (err error) {
	key := path.Join(directory, objectName)

	ctx, scope := st.scope(ctx, "DeleteFile", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, err = st.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(st.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete object")

		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}

	return nil
}

func (st *storage) GetObjectNameFromURL(directory, url string) string {
	return ObjectNameFromURL(st.publicDomain, directory, url)
}

func PublicURL(publicDomain, objectKey string) string {
	return strings.TrimSuffix(publicDomain, "/") + "/" + objectKey
}

// ObjectNameFromURL is the inverse of PublicURL for objects stored under directory.
func ObjectNameFromURL(publicDomain, directory, url string) string {
	name, ok := strings.CutPrefix(url, PublicURL(publicDomain, directory)+"/")
	if !ok {
		return constant.Empty
	}

	return name
}

// New connects to an S3 compatible endpoint with static credentials and path style addressing.
func New(cfg *config.Config, otel otel.Otel) S3 {
	conf := cfg.External.S3

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.SecretAccessKey, "")),
		awsConfig.WithRegion("auto"),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if conf.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(conf.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return newStorage(client, conf.BucketName, conf.PublicDomain, otel)
}

func newStorage(client objectClient, bucket, publicDomain string, otel otel.Otel) *storage {
	return &storage{client: client, bucket: bucket, publicDomain: publicDomain, otel: otel}
}
