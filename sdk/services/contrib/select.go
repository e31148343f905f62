// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package contrib

import (
	"context"
	"fmt"
	"slices"

	"github.com/signon-project/contribution-downloader/sdk/utils"
)

// Selection is the immutable set of keys chosen for a run, in listing order,
// with the distinct user ids derived from them.
type Selection struct {
	keys  []string
	users []string
}

func NewSelection(keys []string) Selection {
	var sel Selection
	seenKeys := map[string]struct{}{}
	seenUsers := map[string]struct{}{}
	for _, k := range keys {
		if _, ok := seenKeys[k]; ok {
			continue
		}
		seenKeys[k] = struct{}{}
		sel.keys = append(sel.keys, k)

		user, _ := SplitKey(k)
		if user == "" {
			continue
		}
		if _, ok := seenUsers[user]; !ok {
			seenUsers[user] = struct{}{}
			sel.users = append(sel.users, user)
		}
	}
	return sel
}

func (s Selection) Keys() []string  { return slices.Clone(s.keys) }
func (s Selection) Users() []string { return slices.Clone(s.users) }
func (s Selection) Len() int        { return len(s.keys) }

// Select lists the bucket and keeps the objects whose metadata matches
// criteria. A user id criterion narrows the listing by prefix first. With no
// criteria, metadata is not fetched at all.
func (s *ContribService) Select(ctx context.Context, criteria Criteria) (Selection, error) {
	prefix := ""
	if uid, ok := criteria.UserID(); ok {
		prefix = uid
	}

	files, err := s.store.ListFilesAll(ctx, s.bucket, prefix)
	if err != nil {
		return Selection{}, err
	}

	keys := make([]string, 0, len(files))
	var size int64
	for _, f := range files {
		if criteria.IsEmpty() {
			keys = append(keys, f.Path)
			size += f.Size
			continue
		}
		md, err := s.store.HeadMetadata(ctx, s.bucket, f.Path)
		if err != nil {
			return Selection{}, fmt.Errorf("metadata lookup for %s: %w", f.Path, err)
		}
		if Matches(criteria, md) {
			keys = append(keys, f.Path)
			size += f.Size
		}
	}

	sel := NewSelection(keys)
	s.log.Info().
		Int("listed", len(files)).
		Int("selected", sel.Len()).
		Int("users", len(sel.users)).
		Str("size", utils.HumanBytes(size)).
		Str("prefix", prefix).
		Msg("selection computed")
	return sel, nil
}
