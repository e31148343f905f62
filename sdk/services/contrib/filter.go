// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package contrib

import (
	"slices"

	"github.com/signon-project/contribution-downloader/sdk/utils"
)

// Criteria maps property names to the requested value. A missing property
// matches anything.
type Criteria map[string]string

// NewCriteria keeps only known properties with a non-empty value.
func NewCriteria(values map[string]string) Criteria {
	c := Criteria{}
	for k, v := range values {
		if v == "" || !slices.Contains(utils.Properties, k) {
			continue
		}
		c[k] = v
	}
	return c
}

func (c Criteria) IsEmpty() bool {
	return len(c) == 0
}

// UserID returns the user id criterion, usable as a listing prefix.
func (c Criteria) UserID() (string, bool) {
	v, ok := c[utils.PropUserID]
	return v, ok && v != ""
}

// Matches reports whether metadata satisfies every set criterion. Without
// criteria everything matches; with criteria, empty metadata never does.
func Matches(criteria Criteria, metadata map[string]string) bool {
	if criteria.IsEmpty() {
		return true
	}
	if len(metadata) == 0 {
		return false
	}
	for _, prop := range utils.Properties {
		want, ok := criteria[prop]
		if !ok {
			continue
		}
		if got, has := metadata[prop]; !has || got != want {
			return false
		}
	}
	return true
}
