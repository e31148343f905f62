// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package contrib

import (
	"context"
	"errors"
)

// Run performs a whole pass: select, materialize, then the manifests when
// the CSV switch is on.
func (s *ContribService) Run(ctx context.Context, req DownloadRequest) (*RunResult, error) {
	if req.Destination == "" {
		return nil, errors.New("destination folder is required")
	}

	sel, err := s.Select(ctx, req.Criteria)
	if err != nil {
		return nil, err
	}

	out := &RunResult{Selection: sel}
	out.Report, err = s.Materialize(ctx, sel, req.Destination, req.Mode)
	if err != nil {
		return out, err
	}

	if req.Mode.CSV {
		out.Manifests, err = s.Manifests(ctx, sel, req.ManifestDir)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}
