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
	"context"
	"net/http"
	"time"

	"github.com/opencontract/workspaced/pkg/fileops"
	"github.com/opencontract/workspaced/pkg/util/safego"
	"github.com/opencontract/workspaced/pkg/web/model"
)

// UploadFiles brings a batch of staged files into the workspace and
// streams per-file progress over SSE. The final frame carries the
// aggregate result; per-file failures are data, not HTTP errors.
func (c *FilesystemController) UploadFiles() {
	var req model.UploadRequest
	if err := c.bindJSON(&req); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		c.RespondError(http.StatusBadRequest, model.ErrorCodeInvalidRequest, err.Error())
		return
	}

	opts := fileops.UploadOptions{
		AllowedTypes: true,
		OnConflict:   req.OnConflict,
	}
	if req.AllowedTypes != nil {
		opts.AllowedTypes = *req.AllowedTypes
	}

	c.setupSSEResponse()

	pingCtx, cancel := context.WithCancel(c.ctx.Request.Context())
	defer cancel()
	safego.Go(func() { c.ping(pingCtx) })

	onProgress := func(p fileops.UploadProgress) {
		payload := model.UploadStreamEvent{
			Type:      model.UploadEventTypeProgress,
			Progress:  &p,
			Timestamp: time.Now().UnixMilli(),
		}.ToJSON()
		c.writeSingleEvent("OnUploadProgress", payload, true)
	}

	result, err := c.svc.Upload(c.Session(), req.Files, req.Dest, opts, onProgress)
	if err != nil {
		// Headers are already out, so batch-level failures become a
		// failed result frame instead of an error status.
		result = fileops.UploadResult{Success: false, Details: []fileops.UploadDetail{{
			Status: fileops.StatusFailed,
			Error:  err.Error(),
		}}}
	}

	payload := model.UploadStreamEvent{
		Type:      model.UploadEventTypeResult,
		Result:    &result,
		Timestamp: time.Now().UnixMilli(),
	}.ToJSON()
	c.writeSingleEvent("OnUploadComplete", payload, true)
}
