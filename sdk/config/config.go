// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package config

import "errors"

var (
	ErrMissingUsername = errors.New("missing username")
	ErrMissingPassword = errors.New("missing password")
	ErrMissingEndpoint = errors.New("missing object store endpoint")
	ErrMissingBucket   = errors.New("missing bucket name")
)

// Client backends for the object store.
const (
	ClientAWS   = "aws"
	ClientMinio = "minio"
)

// Config is everything a run needs to reach the store. It is built once by the
// CLI and passed by value; nothing here reads globals.
type Config struct {
	S3    S3Config
	Store StoreConfig
}

type S3Config struct {
	AccessKey   string
	SecretKey   string
	AccessToken string
	Region      string
	EndpointURL string
}

type StoreConfig struct {
	Bucket string
	Client string // "aws" (default) or "minio"
}

// ValidateCredentials reports which credential is missing, username first.
func (c Config) ValidateCredentials() error {
	if c.S3.AccessKey == "" {
		return ErrMissingUsername
	}
	if c.S3.SecretKey == "" {
		return ErrMissingPassword
	}
	return nil
}

func (c Config) Validate() error {
	if err := c.ValidateCredentials(); err != nil {
		return err
	}
	if c.S3.EndpointURL == "" {
		return ErrMissingEndpoint
	}
	if c.Store.Bucket == "" {
		return ErrMissingBucket
	}
	return nil
}
