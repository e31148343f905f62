// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetLevel(t *testing.T) {
	saved, savedGlobal := Log, zerolog.GlobalLevel()
	t.Cleanup(func() {
		Log = saved
		zerolog.SetGlobalLevel(savedGlobal)
	})

	SetLevel("")
	assert.False(t, Verbose())

	SetLevel("debug")
	assert.True(t, Verbose())

	SetLevel("not-a-level")
	assert.Equal(t, zerolog.InfoLevel, Log.GetLevel())
}

func TestNewWritesConsoleLines(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.Info().Str("bucket", "b").Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "bucket=")
}
