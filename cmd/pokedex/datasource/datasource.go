package datasource

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// New builds the Source selected by cfg.Kind. An empty Kind selects the static sample.
func New(ctx context.Context, cfg Config, log zerolog.Logger) (Source, error) {
	log = log.With().Str("component", "datasource").Str("kind", string(cfg.Kind)).Logger()

	switch cfg.Kind {
	case KindStatic, "":
		return NewStaticSource(log), nil
	case KindFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("file source requires a path")
		}
		return NewFileSource(cfg.Path, log), nil
	case KindHTTP:
		if cfg.URL == "" {
			return nil, fmt.Errorf("http source requires a url")
		}
		return NewHTTPSource(cfg.URL, cfg.RetryMax, cfg.Timeout, log), nil
	case KindObject:
		if cfg.S3Endpoint == "" || cfg.S3Bucket == "" || cfg.S3Object == "" {
			return nil, fmt.Errorf("object source requires endpoint, bucket and object")
		}
		client, err := NewMinioClient(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Secure)
		if err != nil {
			return nil, err
		}
		return NewObjectSource(client, cfg.S3Bucket, cfg.S3Object, log), nil
	case KindPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres source requires a database url")
		}
		return OpenSQLSource(ctx, cfg.DatabaseURL, cfg.QueryFile, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, cfg.Kind)
	}
}
