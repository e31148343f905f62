// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package contrib

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/signon-project/contribution-downloader/sdk/utils"
)

// Materialize downloads every selected object into dest, one at a time in
// selection order. The first failure aborts the run.
func (s *ContribService) Materialize(ctx context.Context, sel Selection, dest string, mode Mode) (*Report, error) {
	if dest == "" {
		return nil, errors.New("destination folder is required")
	}

	planner := Planner{Destination: dest, Mode: mode}
	policy := mode.Policy()
	report := &Report{Destination: dest}

	if sel.Len() == 0 {
		s.log.Info().Msg("nothing to download")
		return report, nil
	}
	s.log.Info().Int("objects", sel.Len()).Msg("downloading contributions")

	if _, err := planner.PrepareDirs(sel); err != nil {
		return report, err
	}

	total := sel.Len()
	for i, key := range sel.keys {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		pl, err := planner.Plan(key)
		if err != nil {
			return report, err
		}

		var res ObjectResult
		if policy.Extract {
			res, err = s.fetchAndExtract(ctx, pl, policy)
		} else {
			res, err = s.fetchArchive(ctx, pl, policy)
		}
		if err != nil {
			return report, fmt.Errorf("object %s: %w", key, err)
		}
		res.Index = i + 1
		res.Total = total
		report.Objects = append(report.Objects, res)

		s.log.Info().
			Str("progress", fmt.Sprintf("%d/%d", res.Index, res.Total)).
			Str("action", string(res.Action)).
			Msg(pl.Name)
		for _, e := range res.Entries {
			s.log.Info().Str("action", string(e.Action)).Str("entry", e.Name).Msg("archive entry")
		}
	}

	s.log.Info().
		Int("downloaded", report.Count(ActionDownloaded)).
		Int("extracted", report.Count(ActionExtracted)).
		Int("overwritten", report.Count(ActionOverwritten)).
		Int("skipped", report.Count(ActionSkipped)).
		Str("destination", dest).
		Msg("download completed")
	return report, nil
}

// fetchArchive keeps the archive as is at its planned path. The download goes
// to a staged name first so a failed transfer never lands on that path.
func (s *ContribService) fetchArchive(ctx context.Context, pl Placement, policy Policy) (ObjectResult, error) {
	res := ObjectResult{Key: pl.Key, Path: pl.ArchivePath, Action: ActionDownloaded}

	if _, err := os.Stat(pl.ArchivePath); err == nil {
		if policy.SkipExisting {
			res.Action = ActionSkipped
			return res, nil
		}
		res.Action = ActionOverwritten
	}

	staged := filepath.Join(filepath.Dir(pl.ArchivePath), utils.PartName(filepath.Base(pl.ExtractRoot)))
	defer os.Remove(staged)

	if err := utils.DownloadObject(ctx, s.store, s.bucket, pl.Key, staged, s.verbose, s.progressOut); err != nil {
		return res, err
	}
	if err := os.Rename(staged, pl.ArchivePath); err != nil {
		return res, fmt.Errorf("failed to move archive into place: %w", err)
	}
	return res, nil
}

// fetchAndExtract stages the archive under a unique name next to its planned
// path, unpacks it into the extraction root and removes it.
func (s *ContribService) fetchAndExtract(ctx context.Context, pl Placement, policy Policy) (ObjectResult, error) {
	res := ObjectResult{Key: pl.Key, Path: pl.ExtractRoot, Action: ActionDownloaded}

	staged := filepath.Join(filepath.Dir(pl.ArchivePath), utils.PartName(filepath.Base(pl.ExtractRoot)))
	defer os.Remove(staged)

	if err := utils.DownloadObject(ctx, s.store, s.bucket, pl.Key, staged, s.verbose, s.progressOut); err != nil {
		return res, err
	}

	entries, err := extractArchive(staged, pl.ExtractRoot, policy.SkipExisting)
	res.Entries = entries
	if err != nil {
		return res, err
	}
	return res, nil
}
