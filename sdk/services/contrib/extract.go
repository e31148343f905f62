// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package contrib

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// sniffArchive checks the magic bytes of path before handing it to archive/zip.
func sniffArchive(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !filetype.Is(head[:n], "zip") {
		return ErrNotArchive
	}
	return nil
}

// extractArchive unpacks archivePath under root. Entry names ending in "/"
// are directories. With skipExisting, files already present are left alone.
func extractArchive(archivePath, root string, skipExisting bool) ([]EntryResult, error) {
	if err := sniffArchive(archivePath); err != nil {
		return nil, err
	}

	zr, err := zip.OpenReader(archivePath)
	if errors.Is(err, zip.ErrInsecurePath) {
		if zr != nil {
			zr.Close()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnsafeEntry, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer zr.Close()

	results := make([]EntryResult, 0, len(zr.File))
	for _, f := range zr.File {
		target, err := entryTarget(root, f.Name)
		if err != nil {
			return results, err
		}

		if strings.HasSuffix(f.Name, "/") {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return results, fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			results = append(results, EntryResult{Name: f.Name, Action: ActionDirectory})
			continue
		}

		action := ActionExtracted
		if _, statErr := os.Stat(target); statErr == nil {
			if skipExisting {
				results = append(results, EntryResult{Name: f.Name, Action: ActionSkipped})
				continue
			}
			action = ActionOverwritten
		}

		if err := writeEntry(f, target); err != nil {
			return results, err
		}
		results = append(results, EntryResult{Name: f.Name, Action: action})
	}
	return results, nil
}

func entryTarget(root, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: entry %q", ErrUnsafeEntry, name)
	}
	return filepath.Join(root, clean), nil
}

func writeEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", target, err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("failed to extract %s: %w", f.Name, err)
	}
	return out.Close()
}
