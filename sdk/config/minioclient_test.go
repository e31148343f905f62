// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listPage = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>contributions</Name>
  <Prefix></Prefix>
  <KeyCount>%d</KeyCount>
  <MaxKeys>1000</MaxKeys>
  <IsTruncated>%t</IsTruncated>
  <NextContinuationToken>%s</NextContinuationToken>
  %s
</ListBucketResult>`

func listContent(key string, size int) string {
	return fmt.Sprintf(`<Contents><Key>%s</Key><LastModified>2024-05-01T10:00:00.000Z</LastModified>`+
		`<ETag>"abc"</ETag><Size>%d</Size><StorageClass>STANDARD</StorageClass></Contents>`, key, size)
}

// minioServer answers a two page listing and a HEAD on alice/s1.zip.
func minioServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimSuffix(r.URL.Path, "/")
		switch {
		case r.Method == http.MethodGet && path == "/contributions":
			w.Header().Set("Content-Type", "application/xml")
			if r.URL.Query().Get("continuation-token") == "" {
				fmt.Fprintf(w, listPage, 2, true, "page2",
					listContent("alice/", 0)+listContent("alice/s1.zip", 10))
				return
			}
			fmt.Fprintf(w, listPage, 1, false, "", listContent("bob/s2.zip", 20))
		case r.Method == http.MethodHead && path == "/contributions/alice/s1.zip":
			w.Header().Set("Last-Modified", "Wed, 01 May 2024 10:00:00 GMT")
			w.Header().Set("ETag", `"abc"`)
			w.Header().Set("Content-Length", "10")
			w.Header().Set("Content-Type", "application/zip")
			w.Header().Set("X-Amz-Meta-Gender", "female")
			w.Header().Set("X-Amz-Meta-Userid", "alice")
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMinioFileSkipsPlaceholders(t *testing.T) {
	_, ok := minioFile(minio.ObjectInfo{Key: "alice/", Size: 0})
	assert.False(t, ok)

	_, ok = minioFile(minio.ObjectInfo{})
	assert.False(t, ok)

	f, ok := minioFile(minio.ObjectInfo{Key: "alice/s1.zip", Size: 10})
	require.True(t, ok)
	assert.Equal(t, S3File{Path: "alice/s1.zip", Size: 10}, f)
}

func TestMinioClientListAndHead(t *testing.T) {
	srv := minioServer(t)
	c, err := NewMinioClient(S3Config{
		AccessKey:   "u",
		SecretKey:   "p",
		Region:      "us-east-1",
		EndpointURL: srv.URL,
	})
	require.NoError(t, err)
	ctx := context.Background()

	files, err := c.ListFilesAll(ctx, "contributions", "")
	require.NoError(t, err)
	assert.Equal(t, []S3File{
		{Path: "alice/s1.zip", Size: 10},
		{Path: "bob/s2.zip", Size: 20},
	}, files)

	md, err := c.HeadMetadata(ctx, "contributions", "alice/s1.zip")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"gender": "female", "userid": "alice"}, md)

	_, err = c.HeadMetadata(ctx, "contributions", "ghost.zip")
	assert.Error(t, err)
}

func TestNewMinioClientNeedsEndpoint(t *testing.T) {
	_, err := NewMinioClient(S3Config{AccessKey: "u", SecretKey: "p"})
	assert.ErrorIs(t, err, ErrMissingEndpoint)
}
