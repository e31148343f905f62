// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/signon-project/contribution-downloader/pkg/logger"
	"github.com/signon-project/contribution-downloader/sdk/config"
	"github.com/signon-project/contribution-downloader/sdk/services/contrib"
	"github.com/signon-project/contribution-downloader/sdk/utils"
)

const (
	flagUsername       = "username"
	flagPassword       = "password"
	flagDestination    = "destination"
	flagMinioStructure = "minio-structure"
	flagZip            = "zip"
	flagOverwrite      = "overwrite"
	flagCSV            = "csv"
)

// filterFlag binds a metadata property to its command-line flag.
type filterFlag struct {
	name     string
	alias    string
	usage    string
	property string
}

var filterFlags = []filterFlag{
	{"user-id", "id", "user id (hashed phone number) whose files are downloaded", utils.PropUserID},
	{"age-group", "a", "metadata age group", utils.PropAge},
	{"annotation-language", "al", "metadata annotation language", utils.PropAnnotationLanguage},
	{"gender", "g", "metadata gender", utils.PropGender},
	{"language-type", "lt", "metadata language type", utils.PropLanguageType},
	{"message-type", "mt", "metadata message type", utils.PropMessageType},
	{"register", "r", "metadata register", utils.PropRegister},
	{"source-language", "sl", "metadata source language", utils.PropSourceLanguage},
	{"hearing-status", "iam", "metadata hearing status", utils.PropHearingStatus},
	{"file-type", "ft", "metadata file type", utils.PropFileType},
}

func newApp() *cli.App {
	flags := make([]cli.Flag, 0, len(filterFlags)+7)
	for _, f := range filterFlags {
		flags = append(flags, &cli.StringFlag{
			Name:    f.name,
			Aliases: []string{f.alias},
			Usage:   f.usage,
		})
	}
	flags = append(flags,
		&cli.StringFlag{
			Name:    flagDestination,
			Aliases: []string{"dest"},
			Usage:   "destination folder",
			Value:   utils.DefaultDestination,
		},
		&cli.StringFlag{
			Name:    flagUsername,
			Aliases: []string{"usr"},
			Usage:   "username for minio access",
			EnvVars: []string{"MINIO_USERNAME"},
		},
		&cli.StringFlag{
			Name:    flagPassword,
			Aliases: []string{"pwd"},
			Usage:   "password for minio access",
			EnvVars: []string{"MINIO_PASSWORD"},
		},
		&cli.BoolFlag{
			Name:    flagMinioStructure,
			Aliases: []string{"ms"},
			Usage:   "group downloaded files by user, mirroring the bucket layout",
		},
		&cli.BoolFlag{
			Name:  flagZip,
			Usage: "keep downloaded zip files as they are instead of extracting them",
		},
		&cli.BoolFlag{
			Name:    flagOverwrite,
			Aliases: []string{"ow"},
			Usage:   "overwrite files already downloaded with the same name",
		},
		&cli.BoolFlag{
			Name:  flagCSV,
			Usage: "write csv manifests of the filtered objects and of the whole bucket",
		},
	)

	return &cli.App{
		Name:   "contribdl",
		Usage:  "Download contribution files from a minio bucket, filtered by metadata",
		Flags:  flags,
		Action: runDownload,
	}
}

func credentialsFrom(c *cli.Context) (config.S3Config, error) {
	creds := config.S3Config{
		AccessKey: c.String(flagUsername),
		SecretKey: c.String(flagPassword),
	}
	err := config.Config{S3: creds}.ValidateCredentials()
	switch {
	case errors.Is(err, config.ErrMissingUsername):
		return creds, cli.Exit("Please define username using argument -usr <username> to access minio", 1)
	case errors.Is(err, config.ErrMissingPassword):
		return creds, cli.Exit("Please define password using argument -pwd <password> to access minio", 1)
	}
	return creds, nil
}

func criteriaFrom(c *cli.Context) contrib.Criteria {
	values := map[string]string{}
	for _, f := range filterFlags {
		values[f.property] = c.String(f.name)
	}
	return contrib.NewCriteria(values)
}

func modeFrom(c *cli.Context) contrib.Mode {
	return contrib.Mode{
		MinioStructure: c.Bool(flagMinioStructure),
		Zip:            c.Bool(flagZip),
		Overwrite:      c.Bool(flagOverwrite),
		CSV:            c.Bool(flagCSV),
	}
}

func runDownload(c *cli.Context) error {
	creds, err := credentialsFrom(c)
	if err != nil {
		return err
	}

	conf, err := utils.BuildConfig(utils.ResolveConfigPath(), creds)
	if err != nil {
		return err
	}

	svc, err := contrib.NewContribService(c.Context, conf)
	if err != nil {
		return err
	}

	req := contrib.DownloadRequest{
		Criteria:    criteriaFrom(c),
		Destination: c.String(flagDestination),
		Mode:        modeFrom(c),
	}

	dest := req.Destination
	if abs, err := filepath.Abs(dest); err == nil {
		dest = abs
	}
	logger.Log.Info().
		Str("username", creds.AccessKey).
		Str("endpoint", conf.S3.EndpointURL).
		Str("bucket", svc.Bucket()).
		Msg("access on minio configured")
	logger.Log.Info().
		Bool("zip", req.Mode.Zip).
		Bool("minio_structure", req.Mode.MinioStructure).
		Bool("overwrite", req.Mode.Overwrite).
		Bool("csv", req.Mode.CSV).
		Str("destination", dest).
		Interface("criteria", req.Criteria).
		Msg("run settings")

	_, err = svc.Run(c.Context, req)
	return err
}
