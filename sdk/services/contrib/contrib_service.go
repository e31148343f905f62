// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package contrib

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/signon-project/contribution-downloader/pkg/logger"
	"github.com/signon-project/contribution-downloader/sdk/config"
)

type ContribService struct {
	store       config.ObjectStore
	bucket      string
	log         zerolog.Logger
	verbose     bool
	progressOut io.Writer
}

func NewContribService(ctx context.Context, conf config.Config) (*ContribService, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	store, err := config.NewObjectStore(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("object store init failed: %w", err)
	}

	return NewWithStore(store, conf.Store.Bucket)
}

// NewWithStore wires the service to an already built store.
func NewWithStore(store config.ObjectStore, bucket string) (*ContribService, error) {
	if store == nil {
		return nil, errors.New("object store is required")
	}
	if bucket == "" {
		return nil, config.ErrMissingBucket
	}
	return &ContribService{
		store:   store,
		bucket:  bucket,
		log:     logger.Log,
		verbose: logger.Verbose(),
	}, nil
}

func (s *ContribService) WithLogger(l zerolog.Logger) *ContribService {
	s.log = l
	return s
}

// WithVerbose toggles byte-level download progress, rendered on out.
func (s *ContribService) WithVerbose(verbose bool, out io.Writer) *ContribService {
	s.verbose = verbose
	s.progressOut = out
	return s
}

func (s *ContribService) Bucket() string {
	return s.bucket
}
