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

package controller

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/opencontract/workspaced/pkg/fileops"
	"github.com/opencontract/workspaced/pkg/log"
	"github.com/opencontract/workspaced/pkg/web/model"
)

var fileService *fileops.Service

// InitFileService creates the shared file operation service. Must be
// called once before the router starts handling requests. A non-empty
// defaultRoot is served to sessions that never selected one.
func InitFileService(defaultRoot string) error {
	roots := fileops.NewRootRegistry()
	if defaultRoot != "" {
		if err := roots.SetFallback(defaultRoot); err != nil {
			return err
		}
	}
	fileService = fileops.NewService(roots)
	return nil
}

// FilesystemController handles workspace file management requests.
type FilesystemController struct {
	*basicController
	svc         *fileops.Service
	chunkWriter sync.Mutex
}

func NewFilesystemController(ctx *gin.Context) *FilesystemController {
	return &FilesystemController{basicController: newBasicController(ctx), svc: fileService}
}

// handleOpError maps file operation errors onto the error taxonomy.
func (c *FilesystemController) handleOpError(err error) {
	switch {
	case errors.Is(err, fileops.ErrPathTraversal):
		c.RespondError(http.StatusForbidden, model.ErrorCodePathTraversal, err.Error())
	case errors.Is(err, fileops.ErrNoRootSelected):
		c.RespondError(http.StatusConflict, model.ErrorCodeNoRootSelected, err.Error())
	case errors.Is(err, fileops.ErrAlreadyExists):
		c.RespondError(http.StatusConflict, model.ErrorCodeAlreadyExists, err.Error())
	case errors.Is(err, fileops.ErrInvalidName):
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidName, err.Error())
	case errors.Is(err, fileops.ErrInvalidResolution):
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidResolution, err.Error())
	case errors.Is(err, fileops.ErrInvalidPattern):
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
	case errors.Is(err, fileops.ErrSourceNotFound), errors.Is(err, os.ErrNotExist):
		c.RespondError(http.StatusNotFound, model.ErrorCodeFileNotFound, err.Error())
	case errors.Is(err, fileops.ErrOpenFailed):
		c.RespondError(http.StatusBadGateway, model.ErrorCodeOpenFailed, err.Error())
	default:
		c.RespondError(http.StatusInternalServerError, model.ErrorCodeRuntimeError, err.Error())
	}
}

// SelectRoot binds a workspace root to the requesting session.
func (c *FilesystemController) SelectRoot() {
	var req model.SelectRootRequest
	if err := c.bindJSON(&req); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}

	info, err := os.Stat(req.Path)
	if err != nil {
		c.handleOpError(err)
		return
	}
	if !info.IsDir() {
		c.RespondError(
			http.StatusBadRequest,
			model.ErrorCodeInvalidRequest,
			fmt.Sprintf("root is not a directory: %s", req.Path),
		)
		return
	}

	root, err := c.svc.Roots().Bind(c.Session(), req.Path)
	if err != nil {
		c.handleOpError(err)
		return
	}

	log.Info("session %s bound root %s", c.Session(), root)
	c.RespondSuccess(model.SelectRootResponse{Root: root})
}

// UnbindRoot drops the session's root binding when its window closes.
func (c *FilesystemController) UnbindRoot() {
	c.svc.Roots().Unbind(c.Session())
	c.RespondSuccess(nil)
}

// ListFiles returns the entries of one directory inside the root.
func (c *FilesystemController) ListFiles() {
	root, err := c.svc.Roots().Require(c.Session())
	if err != nil {
		c.handleOpError(err)
		return
	}

	opts := fileops.ListOptions{
		ShowHidden:    c.QueryBool("show_hidden", false),
		SortBy:        c.ctx.DefaultQuery("sort_by", fileops.SortByName),
		SortDirection: c.ctx.DefaultQuery("sort_dir", "asc"),
		SearchQuery:   c.ctx.Query("q"),
		Pattern:       c.ctx.Query("pattern"),
	}

	items, warnings, err := fileops.List(root, c.ctx.DefaultQuery("path", "."), opts)
	if err != nil {
		c.handleOpError(err)
		return
	}

	c.RespondSuccess(model.ListFilesResponse{Items: items, Warnings: warnings})
}

// CreateFolder creates one directory level under the given parent.
func (c *FilesystemController) CreateFolder() {
	var req model.CreateFolderRequest
	if err := c.bindJSON(&req); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}

	if err := c.svc.CreateFolder(c.Session(), req.Parent, req.Name); err != nil {
		c.handleOpError(err)
		return
	}

	c.RespondSuccess(nil)
}

// ValidateName checks a candidate name without touching the filesystem.
func (c *FilesystemController) ValidateName() {
	var req model.ValidateNameRequest
	if err := c.bindJSON(&req); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}

	violations := fileops.ValidateName(req.Name, req.Previous)
	if violations == nil {
		violations = []fileops.ValidationError{}
	}
	c.RespondSuccess(model.ValidateNameResponse{Errors: violations})
}

// RenameFile renames an entry in place, surfacing conflicts as data.
func (c *FilesystemController) RenameFile() {
	var req model.RenameRequest
	if err := c.bindJSON(&req); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}

	opts := fileops.RenameOptions{PreserveExtension: true}
	if req.PreserveExtension != nil {
		opts.PreserveExtension = *req.PreserveExtension
	}

	result, err := c.svc.Rename(c.Session(), req.Path, req.NewName, opts)
	if err != nil {
		c.handleOpError(err)
		return
	}

	c.RespondSuccess(result)
}

// ResolveConflict applies the user's decision for a pending rename
// conflict.
func (c *FilesystemController) ResolveConflict() {
	var req model.ResolveConflictRequest
	if err := c.bindJSON(&req); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}

	result, err := c.svc.ResolveRenameConflict(c.Session(), req.Path, req.DesiredName, req.Resolution)
	if err != nil {
		c.handleOpError(err)
		return
	}

	c.RespondSuccess(result)
}

// RemoveFiles deletes the given entries, recoverably when to_trash.
func (c *FilesystemController) RemoveFiles() {
	var req model.RemoveRequest
	if err := c.bindJSON(&req); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}

	if err := c.svc.Remove(c.Session(), req.Paths, fileops.RemoveOptions{ToTrash: req.ToTrash}); err != nil {
		c.handleOpError(err)
		return
	}

	c.RespondSuccess(nil)
}

// CopyFiles copies sources into dest, auto-renaming collisions.
func (c *FilesystemController) CopyFiles() {
	var req model.TransferRequest
	if err := c.bindJSON(&req); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}

	if err := c.svc.Copy(c.Session(), req.Sources, req.Dest); err != nil {
		c.handleOpError(err)
		return
	}

	c.RespondSuccess(nil)
}

// MoveFiles moves sources into dest. Collisions fail the batch.
func (c *FilesystemController) MoveFiles() {
	var req model.TransferRequest
	if err := c.bindJSON(&req); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}

	if err := c.svc.Move(c.Session(), req.Sources, req.Dest); err != nil {
		c.handleOpError(err)
		return
	}

	c.RespondSuccess(nil)
}

// OpenFile opens an entry with its default application.
func (c *FilesystemController) OpenFile() {
	var req model.OpenRequest
	if err := c.bindJSON(&req); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}

	if err := c.svc.OpenFile(c.Session(), req.Path); err != nil {
		c.handleOpError(err)
		return
	}

	c.RespondSuccess(nil)
}

// RevealFile shows an entry in the system file manager.
func (c *FilesystemController) RevealFile() {
	var req model.OpenRequest
	if err := c.bindJSON(&req); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}

	if err := c.svc.OpenInExplorer(c.Session(), req.Path); err != nil {
		c.handleOpError(err)
		return
	}

	c.RespondSuccess(nil)
}

// JoinPath joins the given segments with the platform separator.
func (c *FilesystemController) JoinPath() {
	segments := c.ctx.QueryArray("segment")
	if len(segments) == 0 {
		c.RespondError(
			http.StatusBadRequest,
			model.ErrorCodeInvalidRequest,
			"missing query parameter 'segment'",
		)
		return
	}

	c.RespondSuccess(model.PathResponse{Path: filepath.Join(segments...)})
}

// ParentPath returns the directory containing the given path.
func (c *FilesystemController) ParentPath() {
	path := c.ctx.Query("path")
	if path == "" {
		c.RespondError(
			http.StatusBadRequest,
			model.ErrorCodeInvalidRequest,
			"missing query parameter 'path'",
		)
		return
	}

	c.RespondSuccess(model.PathResponse{Path: filepath.Dir(path)})
}

// PingHandler reports liveness.
func PingHandler(ctx *gin.Context) {
	ctx.String(http.StatusOK, "pong")
}
