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
	"github.com/go-playground/validator/v10"

	"github.com/opencontract/workspaced/pkg/fileops"
)

// SelectRootRequest binds a workspace root to the requesting session.
type SelectRootRequest struct {
	Path string `json:"path" validate:"required"`
}

func (r *SelectRootRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// SelectRootResponse echoes the canonicalized root.
type SelectRootResponse struct {
	Root string `json:"root"`
}

// ListFilesResponse carries the entries plus per-entry skip diagnostics.
type ListFilesResponse struct {
	Items    []fileops.FileItem    `json:"items"`
	Warnings []fileops.ListWarning `json:"warnings,omitempty"`
}

// CreateFolderRequest creates one directory level under Parent.
type CreateFolderRequest struct {
	Parent string `json:"parent" validate:"required"`
	Name   string `json:"name" validate:"required"`
}

func (r *CreateFolderRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ValidateNameRequest checks a candidate name without touching anything.
type ValidateNameRequest struct {
	Name     string `json:"name"`
	Previous string `json:"previous,omitempty"`
}

// ValidateNameResponse lists every violation found; an empty list means
// the name is acceptable.
type ValidateNameResponse struct {
	Errors []fileops.ValidationError `json:"errors"`
}

// RenameRequest renames the entry at Path to NewName in place.
type RenameRequest struct {
	Path    string `json:"path" validate:"required"`
	NewName string `json:"new_name" validate:"required"`
	// PreserveExtension defaults to true when absent.
	PreserveExtension *bool `json:"preserve_extension,omitempty"`
}

func (r *RenameRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ResolveConflictRequest resolves a previously surfaced rename conflict.
type ResolveConflictRequest struct {
	Path        string `json:"path" validate:"required"`
	DesiredName string `json:"desired_name" validate:"required"`
	Resolution  string `json:"resolution" validate:"required"`
}

func (r *ResolveConflictRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// RemoveRequest deletes the given paths, recoverably when ToTrash.
type RemoveRequest struct {
	Paths   []string `json:"paths" validate:"required,min=1"`
	ToTrash bool     `json:"to_trash"`
}

func (r *RemoveRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// TransferRequest moves or copies Sources into Dest.
type TransferRequest struct {
	Sources []string `json:"sources" validate:"required,min=1"`
	Dest    string   `json:"dest" validate:"required"`
}

func (r *TransferRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// OpenRequest opens or reveals one workspace entry.
type OpenRequest struct {
	Path string `json:"path" validate:"required"`
}

func (r *OpenRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// PathResponse returns the result of a path utility call.
type PathResponse struct {
	Path string `json:"path"`
}
