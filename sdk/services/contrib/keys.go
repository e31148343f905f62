// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package contrib

import (
	"path"
	"strings"
)

// SplitKey splits "<user>/<rest>" at the first separator. A key without a
// separator has no user.
func SplitKey(key string) (userID, rest string) {
	i := strings.Index(key, "/")
	if i < 0 {
		return "", key
	}
	return key[:i], key[i+1:]
}

// trimExt drops the extension of the last path element, if any.
func trimExt(p string) string {
	return strings.TrimSuffix(p, path.Ext(p))
}
