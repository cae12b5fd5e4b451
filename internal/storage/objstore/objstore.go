// Package objstore implementa o armazenamento de arquivos das
// apostilas em um serviço compatível com S3, com emissão de URL
// pública para cada objeto gravado.
package objstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hbrsolucoes/ponto-simulado/internal/config"
)

// Store encapsula o cliente S3 e o bucket de apostilas.
type Store struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// New cria o cliente, garante a existência do bucket e aplica a
// política de leitura pública.
func New(ctx context.Context, cfg config.ObjectStorage) (*Store, error) {
	const op = "objstore.New"

	client, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: cfg.StorageUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.StorageBucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.StorageBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, cfg.StorageBucket)
		if err := client.SetBucketPolicy(ctx, cfg.StorageBucket, policy); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	publicURL := cfg.StoragePublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.StorageUseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s", scheme, cfg.StorageEndpoint)
	}

	return &Store{
		client:    client,
		bucket:    cfg.StorageBucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Put grava o objeto e devolve sua URL pública.
func (s *Store) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	const op = "objstore.Put"
	_, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return s.PublicURL(name), nil
}

// Remove apaga o objeto do bucket.
func (s *Store) Remove(ctx context.Context, name string) error {
	const op = "objstore.Remove"
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// PublicURL monta a URL pública de um objeto do bucket.
func (s *Store) PublicURL(name string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, name)
}
