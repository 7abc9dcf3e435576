// Package storage wraps the object store holding opportunity images.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string // Base URL objects are served from, e.g. https://cdn.jobsyde.com
	UseSSL    bool
}

// ConfigFromEnv reads STORAGE_* variables with local-dev defaults.
func ConfigFromEnv() Config {
	cfg := Config{
		Endpoint:  os.Getenv("STORAGE_ENDPOINT"),
		AccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
		SecretKey: os.Getenv("STORAGE_SECRET_KEY"),
		Bucket:    os.Getenv("STORAGE_BUCKET"),
		PublicURL: os.Getenv("STORAGE_PUBLIC_URL"),
		UseSSL:    os.Getenv("STORAGE_USE_SSL") == "true",
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "127.0.0.1:9000"
	}
	if cfg.Bucket == "" {
		cfg.Bucket = "images"
	}
	if cfg.PublicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		cfg.PublicURL = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}
	return cfg
}

type Client struct {
	mc        *minio.Client
	bucket    string
	publicURL string
}

func New(cfg Config) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &Client{
		mc:        mc,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Upload stores an object and returns its public URL.
func (c *Client) Upload(ctx context.Context, objectName, contentType string, r io.Reader, size int64) (string, error) {
	_, err := c.mc.PutObject(ctx, c.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", c.publicURL, c.bucket, objectName), nil
}

// Remove deletes an object by its path within the bucket.
func (c *Client) Remove(ctx context.Context, objectPath string) error {
	return c.mc.RemoveObject(ctx, c.bucket, objectPath, minio.RemoveObjectOptions{})
}

// PathFromURL extracts the object path from a stored public URL.
func (c *Client) PathFromURL(raw string) string {
	return PathFromURL(c.publicURL, c.bucket, raw)
}

// PathFromURL pattern-matches a public URL against the known prefix and
// returns the object path, or "" when the URL points elsewhere (so the
// caller skips deletion instead of touching foreign objects).
func PathFromURL(publicBase, bucket, raw string) string {
	prefix := strings.TrimRight(publicBase, "/") + "/" + bucket + "/"
	if !strings.HasPrefix(raw, prefix) {
		return ""
	}
	path := strings.TrimPrefix(raw, prefix)
	if path == "" {
		return ""
	}
	if decoded, err := url.PathUnescape(path); err == nil {
		path = decoded
	}
	return path
}
