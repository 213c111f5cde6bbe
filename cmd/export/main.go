// Export dumps the generated articles to S3 as gzipped JSON and rotates old
// exports. Meant to run as a scheduled job next to the main service.
package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"aipress/storage"
)

type ExportConfig struct {
	MongoURI      string `envconfig:"MONGO_URI" required:"true"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"aipress"`

	ExportBucket    string `envconfig:"EXPORT_S3_BUCKET" required:"true"`
	ExportEndpoint  string `envconfig:"EXPORT_S3_ENDPOINT" required:"true"`
	ExportAccessKey string `envconfig:"EXPORT_S3_ACCESS_KEY" required:"true"`
	ExportSecretKey string `envconfig:"EXPORT_S3_SECRET_KEY" required:"true"`
	ExportRegion    string `envconfig:"EXPORT_S3_REGION" required:"true"`
	ExportLimit     int64  `envconfig:"EXPORT_LIMIT" default:"0"`
	KeepExports     int    `envconfig:"KEEP_EXPORTS" default:"4"`
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	_ = godotenv.Load()
	var cfg ExportConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	ctx := context.Background()

	store, err := storage.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, logging)
	if err != nil {
		logging.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer store.Close(ctx)

	data, count, err := createDump(ctx, store, cfg.ExportLimit)
	if err != nil {
		logging.Fatal("Failed to create export dump", zap.Error(err))
	}

	s3Client, err := storage.NewS3Client(ctx, cfg.ExportEndpoint, cfg.ExportRegion, cfg.ExportAccessKey, cfg.ExportSecretKey)
	if err != nil {
		logging.Fatal("S3 client creation failed", zap.Error(err))
	}

	key := fmt.Sprintf("articles-%s.json.gz", time.Now().UTC().Format("2006-01-02T15-04-05Z"))
	link, err := storage.UploadObject(ctx, s3Client, cfg.ExportEndpoint, cfg.ExportBucket, key, data)
	if err != nil {
		logging.Fatal("Failed to upload export", zap.Error(err))
	}
	logging.Info("Export uploaded", zap.String("link", link), zap.Int("articles", count))

	if err := rotateExports(ctx, s3Client, cfg); err != nil {
		logging.Fatal("Failed to rotate old exports", zap.Error(err))
	}
	logging.Info("Export completed.")
}

func createDump(ctx context.Context, store *storage.Mongo, limit int64) ([]byte, int, error) {
	articles, err := store.FinalArticles(ctx, limit)
	if err != nil {
		return nil, 0, err
	}

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	if err := json.NewEncoder(gzipWriter).Encode(articles); err != nil {
		return nil, 0, err
	}
	if err := gzipWriter.Close(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), len(articles), nil
}

func rotateExports(ctx context.Context, client *s3.Client, cfg ExportConfig) error {
	output, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(cfg.ExportBucket),
	})
	if err != nil {
		return err
	}

	if len(output.Contents) <= cfg.KeepExports {
		return nil
	}

	sort.Slice(output.Contents, func(i, j int) bool {
		return output.Contents[i].LastModified.After(*output.Contents[j].LastModified)
	})

	for _, obj := range output.Contents[cfg.KeepExports:] {
		_, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(cfg.ExportBucket),
			Key:    obj.Key,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
