// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/signon-project/contribution-downloader/pkg/logger"
	"github.com/signon-project/contribution-downloader/sdk/utils"
)

func main() {
	// optional: credentials may live in .env
	_ = godotenv.Load()
	logger.SetLevel(os.Getenv(utils.LogLevelEnv))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		logger.Log.Error().Err(err).Msg("run failed")
		stop()
		os.Exit(1)
	}
}
