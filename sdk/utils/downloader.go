// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/signon-project/contribution-downloader/sdk/config"
)

// Downloader is the download half of config.ObjectStore.
type Downloader interface {
	DownloadFile(ctx context.Context, bucket, key, localPath string) error
	DownloadFileWithProgress(ctx context.Context, bucket, key, localPath string, hook *config.ProgressHook) error
}

// DownloadObject fetches bucket/key into localPath, creating the parent
// directory. With verbose set, byte progress is rendered on progressOut
// (stderr when nil).
func DownloadObject(
	ctx context.Context,
	store Downloader,
	bucket, key, localPath string,
	verbose bool,
	progressOut io.Writer,
) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return fmt.Errorf("failed to create local directory: %w", err)
	}

	if !verbose {
		if err := store.DownloadFile(ctx, bucket, key, localPath); err != nil {
			return fmt.Errorf("S3 download failed: %w", err)
		}
		return nil
	}

	gp := &globalProgress{out: progressOut, label: "downloading"}
	var prevWritten int64
	hook := &config.ProgressHook{
		OnStart: func(k string, total int64) {
			if total > 0 {
				gp.totalKnown = true
				gp.totalBytes = total
			}
		},
		OnProgress: func(k string, written, total int64) {
			delta := written - prevWritten
			if delta > 0 {
				gp.add(delta)
				gp.render(false)
			}
			prevWritten = written
		},
		OnDone: func(k string, total int64, took time.Duration) {
			if total > prevWritten {
				gp.add(total - prevWritten)
			}
			gp.label = "done"
			gp.done(took)
		},
	}
	if err := store.DownloadFileWithProgress(ctx, bucket, key, localPath, hook); err != nil {
		return fmt.Errorf("S3 download failed: %w", err)
	}
	return nil
}
