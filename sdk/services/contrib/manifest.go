// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package contrib

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/signon-project/contribution-downloader/sdk/utils"
)

// ManifestHeader is the CSV header: an unnamed index column, the filename and
// the property list.
func ManifestHeader() []string {
	return append([]string{"", "filename"}, utils.Properties...)
}

// BuildManifest fetches the metadata of every key and lays it out as rows.
// userid always comes from the key, whatever the metadata says.
func (s *ContribService) BuildManifest(ctx context.Context, keys []string) ([][]string, error) {
	rows := make([][]string, 0, len(keys)+1)
	rows = append(rows, ManifestHeader())

	for i, key := range keys {
		md, err := s.store.HeadMetadata(ctx, s.bucket, key)
		if err != nil {
			return nil, fmt.Errorf("metadata lookup for %s: %w", key, err)
		}
		user, name := SplitKey(key)

		row := make([]string, 0, len(utils.Properties)+2)
		row = append(row, strconv.Itoa(i), name)
		for _, prop := range utils.Properties {
			if prop == utils.PropUserID {
				row = append(row, user)
				continue
			}
			row = append(row, md[prop])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ExportManifest writes the manifest of keys to path and returns the row count.
func (s *ContribService) ExportManifest(ctx context.Context, keys []string, path string) (int, error) {
	rows, err := s.BuildManifest(ctx, keys)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create manifest: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return 0, fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("failed to close manifest %s: %w", path, err)
	}
	return len(rows) - 1, nil
}

// Manifests writes the filtered manifest for sel and the manifest of the
// whole bucket into dir.
func (s *ContribService) Manifests(ctx context.Context, sel Selection, dir string) (*ManifestResult, error) {
	if dir == "" {
		dir = "."
	}
	res := &ManifestResult{
		FilteredPath: filepath.Join(dir, utils.FilteredManifestName),
		TotalPath:    filepath.Join(dir, utils.TotalManifestName),
	}

	var err error
	if res.FilteredRows, err = s.ExportManifest(ctx, sel.keys, res.FilteredPath); err != nil {
		return nil, err
	}

	all, err := s.store.ListFilesAll(ctx, s.bucket, "")
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(all))
	for _, f := range all {
		keys = append(keys, f.Path)
	}
	if res.TotalRows, err = s.ExportManifest(ctx, keys, res.TotalPath); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("filtered", absOrSelf(res.FilteredPath)).
		Int("filtered_rows", res.FilteredRows).
		Str("total", absOrSelf(res.TotalPath)).
		Int("total_rows", res.TotalRows).
		Msg("retrieved statistics files for objects stored in the bucket")
	return res, nil
}

func absOrSelf(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
