// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package contrib_test

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/signon-project/contribution-downloader/sdk/config"
	"github.com/signon-project/contribution-downloader/sdk/services/contrib"
)

const testBucket = "contributions"

type fakeObject struct {
	key  string
	data []byte
	meta map[string]string
}

// fakeStore is an in-memory bucket keeping insertion order as listing order.
type fakeStore struct {
	objects   []fakeObject
	heads     int
	downloads int
	prefixes  []string
	// broken counts, per key, the downloads that write two bytes and fail
	broken map[string]int
}

func (f *fakeStore) put(key string, data []byte, meta map[string]string) {
	f.objects = append(f.objects, fakeObject{key: key, data: data, meta: meta})
}

func (f *fakeStore) find(key string) (fakeObject, error) {
	for _, o := range f.objects {
		if o.key == key {
			return o, nil
		}
	}
	return fakeObject{}, fmt.Errorf("no such key: %s", key)
}

func (f *fakeStore) ListFilesAll(_ context.Context, bucket, prefix string) ([]config.S3File, error) {
	if bucket != testBucket {
		return nil, fmt.Errorf("no such bucket: %s", bucket)
	}
	f.prefixes = append(f.prefixes, prefix)
	var out []config.S3File
	for _, o := range f.objects {
		if strings.HasPrefix(o.key, prefix) {
			out = append(out, config.S3File{
				Path: o.key,
				Size: int64(len(o.data)),
			})
		}
	}
	return out, nil
}

func (f *fakeStore) HeadMetadata(_ context.Context, _, key string) (map[string]string, error) {
	f.heads++
	o, err := f.find(key)
	if err != nil {
		return nil, err
	}
	out := map[string]string{}
	for k, v := range o.meta {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStore) DownloadFile(_ context.Context, _, key, localPath string) error {
	f.downloads++
	o, err := f.find(key)
	if err != nil {
		return err
	}
	if f.broken[key] > 0 {
		f.broken[key]--
		if err := os.WriteFile(localPath, o.data[:2], 0o644); err != nil {
			return err
		}
		return fmt.Errorf("connection reset while reading %s", key)
	}
	return os.WriteFile(localPath, o.data, 0o644)
}

func (f *fakeStore) DownloadFileWithProgress(ctx context.Context, bucket, key, localPath string, hook *config.ProgressHook) error {
	o, err := f.find(key)
	if err != nil {
		return err
	}
	total := int64(len(o.data))
	if hook != nil && hook.OnStart != nil {
		hook.OnStart(key, total)
	}
	if err := f.DownloadFile(ctx, bucket, key, localPath); err != nil {
		return err
	}
	if hook != nil && hook.OnProgress != nil {
		hook.OnProgress(key, total, total)
	}
	if hook != nil && hook.OnDone != nil {
		hook.OnDone(key, total, time.Millisecond)
	}
	return nil
}

// zipBytes builds an archive; names ending in "/" become directory entries.
func zipBytes(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	names := make([]string, 0, len(entries))
	for n := range entries {
		names = append(names, n)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, n := range names {
		w, err := zw.Create(n)
		require.NoError(t, err)
		if !strings.HasSuffix(n, "/") {
			_, err = w.Write([]byte(entries[n]))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// aliceBob is the two-user bucket used across the scenarios.
func aliceBob(t *testing.T) *fakeStore {
	t.Helper()
	store := &fakeStore{}
	store.put("alice/session1.zip", zipBytes(t, map[string]string{
		"a.txt": "alice a",
		"sub/":  "",
	}), map[string]string{"gender": "female", "userid": "alice"})
	store.put("bob/session2.zip", zipBytes(t, map[string]string{
		"b.txt": "bob b",
	}), nil)
	return store
}

func newService(t *testing.T, store *fakeStore) *contrib.ContribService {
	t.Helper()
	svc, err := contrib.NewWithStore(store, testBucket)
	require.NoError(t, err)
	return svc.WithLogger(zerolog.Nop()).WithVerbose(false, nil)
}

// tree lists every path under root, slash separated, directories with a
// trailing "/".
func tree(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			rel += "/"
		}
		out = append(out, rel)
		return nil
	})
	require.NoError(t, err)
	sort.Strings(out)
	return out
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}
