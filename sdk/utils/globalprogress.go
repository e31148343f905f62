// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"io"
	"os"
	"time"
)

/* ------------ tiny UI helpers for single-line progress ------------ */

type globalProgress struct {
	out        io.Writer
	label      string
	totalKnown bool
	totalBytes int64
	doneBytes  int64
	spinIdx    int
	lastTick   time.Time
}

var spinner = []rune{'|', '/', '-', '\\'}

func (gp *globalProgress) writer() io.Writer {
	if gp.out == nil {
		return os.Stderr
	}
	return gp.out
}

func (gp *globalProgress) add(delta int64) {
	gp.doneBytes += delta
}

// HumanBytes formats n with a binary unit.
func HumanBytes(n int64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)
	switch {
	case n >= GB:
		return fmt.Sprintf("%.2f GB", float64(n)/float64(GB))
	case n >= MB:
		return fmt.Sprintf("%.2f MB", float64(n)/float64(MB))
	case n >= KB:
		return fmt.Sprintf("%.2f KB", float64(n)/float64(KB))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func (gp *globalProgress) render(force bool) {
	// throttling: ~10 updates per second
	if !force && time.Since(gp.lastTick) < 100*time.Millisecond {
		return
	}
	gp.lastTick = time.Now()

	if gp.totalKnown && gp.totalBytes > 0 {
		if gp.doneBytes > gp.totalBytes {
			gp.doneBytes = gp.totalBytes
		}
		pct := float64(gp.doneBytes) / float64(gp.totalBytes) * 100
		fmt.Fprintf(gp.writer(), "\r      └─ %s: %6.2f%% (%s / %s)   ",
			gp.label, pct, HumanBytes(gp.doneBytes), HumanBytes(gp.totalBytes))
	} else {
		ch := spinner[gp.spinIdx%len(spinner)]
		gp.spinIdx++
		fmt.Fprintf(gp.writer(), "\r      └─ %s: [%c] %s downloaded   ", gp.label, ch, HumanBytes(gp.doneBytes))
	}
}

func (gp *globalProgress) done(took time.Duration) {
	gp.render(true)
	fmt.Fprintf(gp.writer(), "in %s\n", took.Truncate(100*time.Millisecond))
}
