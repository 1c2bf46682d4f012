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

package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/opencontract/workspaced/pkg/log"
	"github.com/opencontract/workspaced/pkg/web/controller"
	"github.com/opencontract/workspaced/pkg/web/model"
)

// NewRouter builds a Gin engine with all workspaced routes.
func NewRouter(accessToken string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logMiddleware(), accessTokenMiddleware(accessToken), sessionMiddleware())

	r.GET("/ping", controller.PingHandler)

	session := r.Group("/session")
	{
		session.POST("/root", withFilesystem(func(c *controller.FilesystemController) { c.SelectRoot() }))
		session.DELETE("/root", withFilesystem(func(c *controller.FilesystemController) { c.UnbindRoot() }))
	}

	files := r.Group("/files")
	{
		files.GET("", withFilesystem(func(c *controller.FilesystemController) { c.ListFiles() }))
		files.DELETE("", withFilesystem(func(c *controller.FilesystemController) { c.RemoveFiles() }))
		files.POST("/validate-name", withFilesystem(func(c *controller.FilesystemController) { c.ValidateName() }))
		files.POST("/rename", withFilesystem(func(c *controller.FilesystemController) { c.RenameFile() }))
		files.POST("/resolve-conflict", withFilesystem(func(c *controller.FilesystemController) { c.ResolveConflict() }))
		files.POST("/copy", withFilesystem(func(c *controller.FilesystemController) { c.CopyFiles() }))
		files.POST("/mv", withFilesystem(func(c *controller.FilesystemController) { c.MoveFiles() }))
		files.POST("/upload", withFilesystem(func(c *controller.FilesystemController) { c.UploadFiles() }))
		files.GET("/watch", withFilesystem(func(c *controller.FilesystemController) { c.WatchDirectory() }))
		files.POST("/open", withFilesystem(func(c *controller.FilesystemController) { c.OpenFile() }))
		files.POST("/reveal", withFilesystem(func(c *controller.FilesystemController) { c.RevealFile() }))
	}

	directories := r.Group("/directories")
	{
		directories.POST("", withFilesystem(func(c *controller.FilesystemController) { c.CreateFolder() }))
	}

	paths := r.Group("/paths")
	{
		paths.GET("/join", withFilesystem(func(c *controller.FilesystemController) { c.JoinPath() }))
		paths.GET("/parent", withFilesystem(func(c *controller.FilesystemController) { c.ParentPath() }))
	}

	metric := r.Group("/metrics")
	{
		metric.GET("", withMetric(func(c *controller.MetricController) { c.GetMetrics() }))
	}

	return r
}

func withFilesystem(fn func(*controller.FilesystemController)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		fn(controller.NewFilesystemController(ctx))
	}
}

func withMetric(fn func(*controller.MetricController)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		fn(controller.NewMetricController(ctx))
	}
}

func accessTokenMiddleware(token string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token == "" {
			ctx.Next()
			return
		}

		requestedToken := ctx.GetHeader(model.ApiAccessTokenHeader)
		if requestedToken == "" || requestedToken != token {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, map[string]any{
				"error": "Unauthorized: invalid or missing header " + model.ApiAccessTokenHeader,
			})
			return
		}

		ctx.Next()
	}
}

// sessionMiddleware resolves the session id for the request. Requests
// without one are assigned a fresh id, echoed back so the caller can
// keep it.
func sessionMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session := ctx.GetHeader(model.SessionHeader)
		if session == "" {
			session = uuid.NewString()
		}
		ctx.Set(controller.SessionContextKey, session)
		ctx.Header(model.SessionHeader, session)
		ctx.Next()
	}
}

func logMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		log.Info("Requested: %v - %v", ctx.Request.Method, ctx.Request.URL.String())
		ctx.Next()
	}
}
