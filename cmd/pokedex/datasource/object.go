package datasource

import (
	"context"
	"fmt"

	"github.com/SanteonNL/pokedex/models/pokemon"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// ObjectSource reads the catalog document from an S3-compatible bucket.
type ObjectSource struct {
	client *minio.Client
	bucket string
	object string
	log    zerolog.Logger
}

// NewMinioClient creates a client for endpoint using static credentials.
func NewMinioClient(endpoint, accessKey, secretKey string, secure bool) (*minio.Client, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}
	return client, nil
}

func NewObjectSource(client *minio.Client, bucket, object string, log zerolog.Logger) *ObjectSource {
	return &ObjectSource{
		client: client,
		bucket: bucket,
		object: object,
		log:    log,
	}
}

func (s *ObjectSource) Load(ctx context.Context) ([]pokemon.Pokemon, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s/%s: %w", s.bucket, s.object, err)
	}
	defer obj.Close()

	// GetObject is lazy; errors such as NoSuchKey surface on the first read.
	data, err := readCatalog(obj)
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NoSuchBucket" {
			return nil, fmt.Errorf("catalog object %s/%s not found: %w", s.bucket, s.object, err)
		}
		return nil, fmt.Errorf("failed to read object %s/%s: %w", s.bucket, s.object, err)
	}

	s.log.Debug().
		Str("bucket", s.bucket).
		Str("object", s.object).
		Int("bytes", len(data)).
		Msg("Read catalog object")

	return Decode(data, s.log)
}
