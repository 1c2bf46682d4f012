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

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs/maxprocs"

	"github.com/opencontract/workspaced/pkg/flag"
	"github.com/opencontract/workspaced/pkg/log"
	_ "github.com/opencontract/workspaced/pkg/util/safego"
	"github.com/opencontract/workspaced/pkg/web"
	"github.com/opencontract/workspaced/pkg/web/controller"
)

// main initializes and starts the workspaced server.
func main() {
	flag.InitFlags()

	log.SetLevel(flag.ServerLogLevel)

	if err := controller.InitFileService(flag.DefaultRoot); err != nil {
		log.Error("failed to initialize file service: %v", err)
		os.Exit(1)
	}

	engine := web.NewRouter(flag.ServerAccessToken)
	addr := fmt.Sprintf("%s:%d", flag.ServerBindAddress, flag.ServerPort)
	server := &http.Server{Addr: addr, Handler: engine}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("workspaced listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start workspaced server: %v", err)
			os.Exit(1)
		}
	}()

	<-stop
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), flag.ApiGracefulShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown: %v", err)
	}
}
