// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package contrib

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Placement is where one object lands locally.
type Placement struct {
	Key         string
	UserID      string
	Name        string // key without the user prefix
	ArchivePath string // where the archive is kept (zip mode) or staged
	ExtractRoot string // extraction root (extract mode)
}

// Planner decides the local layout from the destination and the mode.
type Planner struct {
	Destination string
	Mode        Mode
}

func (p Planner) Plan(key string) (Placement, error) {
	user, rest := SplitKey(key)

	rel := rest
	if p.Mode.MinioStructure {
		rel = key
	}
	archive, err := p.within(rel)
	if err != nil {
		return Placement{}, fmt.Errorf("object %s: %w", key, err)
	}

	return Placement{
		Key:         key,
		UserID:      user,
		Name:        rest,
		ArchivePath: archive,
		ExtractRoot: filepath.Join(filepath.Dir(archive), trimExt(filepath.Base(archive))),
	}, nil
}

// within joins a slash separated relative path under the destination,
// refusing anything that would climb out of it.
func (p Planner) within(rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrUnsafeEntry, rel)
	}
	return filepath.Join(p.Destination, clean), nil
}

// Dirs lists the directories to pre-create for sel, without duplicates.
func (p Planner) Dirs(sel Selection) ([]string, error) {
	var dirs []string
	seen := map[string]struct{}{}
	add := func(d string) {
		if _, ok := seen[d]; ok {
			return
		}
		seen[d] = struct{}{}
		dirs = append(dirs, d)
	}

	switch {
	case p.Mode.MinioStructure && p.Mode.Zip:
		for _, u := range sel.users {
			d, err := p.within(u)
			if err != nil {
				return nil, err
			}
			add(d)
		}
	case !p.Mode.MinioStructure && p.Mode.Zip:
		add(p.Destination)
	default:
		for _, k := range sel.keys {
			pl, err := p.Plan(k)
			if err != nil {
				return nil, err
			}
			add(pl.ExtractRoot)
		}
	}
	return dirs, nil
}

// PrepareDirs creates every directory from Dirs. Running it again is a no-op.
func (p Planner) PrepareDirs(sel Selection) ([]string, error) {
	dirs, err := p.Dirs(sel)
	if err != nil {
		return nil, err
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}
	return dirs, nil
}
