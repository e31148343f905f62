// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioClient is the minio-go backed store, same surface as S3Client.
type MinioClient struct {
	api *minio.Client
}

func NewMinioClient(cfgCreds S3Config) (*MinioClient, error) {
	if cfgCreds.EndpointURL == "" {
		return nil, ErrMissingEndpoint
	}
	host, secure, err := splitEndpoint(cfgCreds.EndpointURL)
	if err != nil {
		return nil, err
	}

	api, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(cfgCreds.AccessKey, cfgCreds.SecretKey, cfgCreds.AccessToken),
		Secure: secure,
		Region: cfgCreds.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &MinioClient{api: api}, nil
}

// splitEndpoint turns "https://host:port" into ("host:port", true).
// A bare host is taken as https.
func splitEndpoint(endpoint string) (string, bool, error) {
	if !strings.Contains(endpoint, "://") {
		return strings.TrimSuffix(endpoint, "/"), true, nil
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("invalid endpoint %q: missing host", endpoint)
	}
	return u.Host, u.Scheme == "https", nil
}

func (c *MinioClient) ListFilesAll(ctx context.Context, bucket string, prefix string) ([]S3File, error) {
	var files []S3File
	for obj := range c.api.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects in bucket %s: %w", bucket, obj.Err)
		}
		if f, ok := minioFile(obj); ok {
			files = append(files, f)
		}
	}
	return files, nil
}

// minioFile maps a listed object, dropping folder placeholders.
func minioFile(obj minio.ObjectInfo) (S3File, bool) {
	if obj.Key == "" || (strings.HasSuffix(obj.Key, "/") && obj.Size == 0) {
		return S3File{}, false
	}
	return S3File{Path: obj.Key, Size: obj.Size}, true
}

func (c *MinioClient) HeadMetadata(ctx context.Context, bucket, key string) (map[string]string, error) {
	info, err := c.api.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to stat object %s: %w", key, err)
	}
	// UserMetadata keys come back canonicalised ("Gender")
	return lowerKeys(info.UserMetadata), nil
}

func (c *MinioClient) DownloadFile(ctx context.Context, bucket, key, localPath string) error {
	if err := c.api.FGetObject(ctx, bucket, key, localPath, minio.GetObjectOptions{}); err != nil {
		return fmt.Errorf("failed to download object %s: %w", key, err)
	}
	return nil
}

func (c *MinioClient) DownloadFileWithProgress(
	ctx context.Context,
	bucket, key, localPath string,
	hook *ProgressHook,
) error {
	obj, err := c.api.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to get object from minio: %w", err)
	}
	defer obj.Close()

	st, err := obj.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat object %s: %w", key, err)
	}
	return copyWithProgress(obj, key, localPath, st.Size, hook)
}
