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

package model

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"

	"github.com/opencontract/workspaced/pkg/fileops"
)

// UploadRequest brings a batch of staged files into the workspace.
type UploadRequest struct {
	Files []fileops.UploadFile `json:"files" validate:"required,min=1,dive"`
	Dest  string               `json:"dest" validate:"required"`
	// AllowedTypes defaults to true when absent.
	AllowedTypes *bool  `json:"allowed_types,omitempty"`
	OnConflict   string `json:"on_conflict,omitempty" validate:"omitempty,oneof=skip overwrite keep-both"`
}

func (r *UploadRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

type UploadStreamEventType string

const (
	UploadEventTypeProgress UploadStreamEventType = "progress"
	UploadEventTypeResult   UploadStreamEventType = "result"
	UploadEventTypePing     UploadStreamEventType = "ping"
)

// UploadStreamEvent is one SSE frame of an upload stream: per-file
// progress frames in file order, then a single result frame.
type UploadStreamEvent struct {
	Type      UploadStreamEventType   `json:"type"`
	Progress  *fileops.UploadProgress `json:"progress,omitempty"`
	Result    *fileops.UploadResult   `json:"result,omitempty"`
	Timestamp int64                   `json:"timestamp,omitempty"`
}

// ToJSON serializes the event for streaming.
func (e UploadStreamEvent) ToJSON() []byte {
	bytes, _ := json.Marshal(e)
	return bytes
}
