// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"fmt"
)

// ObjectStore is what both backends offer.
type ObjectStore interface {
	ListFilesAll(ctx context.Context, bucket, prefix string) ([]S3File, error)
	HeadMetadata(ctx context.Context, bucket, key string) (map[string]string, error)
	DownloadFile(ctx context.Context, bucket, key, localPath string) error
	DownloadFileWithProgress(ctx context.Context, bucket, key, localPath string, hook *ProgressHook) error
}

var (
	_ ObjectStore = (*S3Client)(nil)
	_ ObjectStore = (*MinioClient)(nil)
)

// NewObjectStore picks the backend named in conf.Store.Client.
func NewObjectStore(ctx context.Context, conf Config) (ObjectStore, error) {
	switch conf.Store.Client {
	case "", ClientAWS:
		c, err := NewS3Client(ctx, conf.S3)
		if err != nil {
			return nil, err
		}
		return c, nil
	case ClientMinio:
		c, err := NewMinioClient(conf.S3)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported store client %q", conf.Store.Client)
	}
}
