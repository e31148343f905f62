// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package contrib

import "errors"

var (
	ErrNotArchive  = errors.New("object is not a zip archive")
	ErrUnsafeEntry = errors.New("path escapes the destination folder")
)
