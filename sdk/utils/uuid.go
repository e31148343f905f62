// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"strings"

	"github.com/google/uuid"
)

func UUIDv4NoDash() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// PartName returns a unique transient file name derived from stem.
func PartName(stem string) string {
	return stem + "." + UUIDv4NoDash() + ".part"
}
