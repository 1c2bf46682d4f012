// Copyright 2025 Alibaba Group Holding Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package flag

import (
	"flag"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	"github.com/opencontract/workspaced/pkg/log"
)

const (
	defaultRootEnv             = "WORKSPACED_ROOT"
	accessTokenEnv             = "WORKSPACED_ACCESS_TOKEN"
	gracefulShutdownTimeoutEnv = "WORKSPACED_API_GRACE_SHUTDOWN"
)

// InitFlags registers CLI flags and env overrides.
func InitFlags() {
	// Set default values
	ServerPort = 47620
	ServerBindAddress = "127.0.0.1"
	ServerLogLevel = 6
	ServerAccessToken = ""
	ApiGracefulShutdownTimeout = time.Second * 1

	// First, set default values from environment variables
	if rootFromEnv := os.Getenv(defaultRootEnv); rootFromEnv != "" {
		abs, err := filepath.Abs(rootFromEnv)
		if err != nil {
			stdlog.Panicf("Invalid WORKSPACED_ROOT: %v", err)
		}
		DefaultRoot = abs
	}

	if tokenFromEnv := os.Getenv(accessTokenEnv); tokenFromEnv != "" {
		ServerAccessToken = tokenFromEnv
	}

	// Then define flags with current values as defaults
	flag.StringVar(&DefaultRoot, "root", DefaultRoot, "Workspace root directory pre-bound for new sessions (optional)")
	flag.IntVar(&ServerPort, "port", ServerPort, "Server listening port (default: 47620)")
	flag.StringVar(&ServerBindAddress, "bind", ServerBindAddress, "Server bind address (default: 127.0.0.1)")
	flag.IntVar(&ServerLogLevel, "log-level", ServerLogLevel, "Server log level (0=LevelEmergency, 1=LevelAlert, 2=LevelCritical, 3=LevelError, 4=LevelWarning, 5=LevelNotice, 6=LevelInformational, 7=LevelDebug, default: 6)")
	flag.StringVar(&ServerAccessToken, "access-token", ServerAccessToken, "Server access token for API authentication")

	if graceShutdownTimeout := os.Getenv(gracefulShutdownTimeoutEnv); graceShutdownTimeout != "" {
		duration, err := time.ParseDuration(graceShutdownTimeout)
		if err != nil {
			stdlog.Panicf("Failed to parse graceful shutdown timeout from env: %v", err)
		}
		ApiGracefulShutdownTimeout = duration
	}

	flag.DurationVar(&ApiGracefulShutdownTimeout, "graceful-shutdown-timeout", ApiGracefulShutdownTimeout, "API graceful shutdown timeout duration (default: 1s)")

	// Parse flags - these will override environment variables if provided
	flag.Parse()

	if DefaultRoot != "" {
		log.Info("Default workspace root is: %s", DefaultRoot)
	}
}
