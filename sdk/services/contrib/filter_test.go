// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package contrib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/signon-project/contribution-downloader/sdk/services/contrib"
)

func TestMatchesWithoutCriteria(t *testing.T) {
	for _, md := range []map[string]string{
		nil,
		{},
		{"gender": "male"},
		{"unknown": "x"},
	} {
		assert.True(t, contrib.Matches(contrib.Criteria{}, md), "metadata %v", md)
		assert.True(t, contrib.Matches(nil, md), "metadata %v", md)
	}
}

func TestMatchesEmptyMetadataWithCriteria(t *testing.T) {
	criteria := contrib.NewCriteria(map[string]string{"gender": "female"})
	assert.False(t, contrib.Matches(criteria, nil))
	assert.False(t, contrib.Matches(criteria, map[string]string{}))
}

func TestMatchesEquality(t *testing.T) {
	criteria := contrib.NewCriteria(map[string]string{
		"gender":       "female",
		"languagetype": "sign",
	})

	tests := []struct {
		name string
		md   map[string]string
		want bool
	}{
		{"all equal", map[string]string{"gender": "female", "languagetype": "sign", "age": "18-30"}, true},
		{"one differs", map[string]string{"gender": "male", "languagetype": "sign"}, false},
		{"one missing", map[string]string{"gender": "female"}, false},
		{"case sensitive", map[string]string{"gender": "Female", "languagetype": "sign"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contrib.Matches(criteria, tt.md))
		})
	}
}

func TestNewCriteria(t *testing.T) {
	c := contrib.NewCriteria(map[string]string{
		"userid":        "alice",
		"gender":        "",
		"not-a-prop":    "x",
		"hearingstatus": "deaf",
	})
	assert.Equal(t, contrib.Criteria{"userid": "alice", "hearingstatus": "deaf"}, c)

	uid, ok := c.UserID()
	assert.True(t, ok)
	assert.Equal(t, "alice", uid)

	_, ok = contrib.NewCriteria(nil).UserID()
	assert.False(t, ok)
	assert.True(t, contrib.NewCriteria(nil).IsEmpty())
}
