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

package fileops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/opencontract/workspaced/pkg/log"
)

// Extensions accepted by Upload when the allow-list is on. Contract
// documents and the image formats the template editor embeds.
var allowedUploadExtensions = map[string]struct{}{
	"pdf": {}, "doc": {}, "docx": {},
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "webp": {},
}

// Upload conflict policies.
const (
	ConflictSkip      = "skip"
	ConflictOverwrite = "overwrite"
	ConflictKeepBoth  = "keep-both"
)

// Upload file statuses.
const (
	StatusUploading = "uploading"
	StatusUploaded  = "uploaded"
	StatusComplete  = "complete"
	StatusSkipped   = "skipped"
	StatusError     = "error"
	StatusFailed    = "failed"
)

// UploadFile describes one external file to bring into the workspace.
type UploadFile struct {
	Name       string `json:"name"`
	SourcePath string `json:"source_path"`
	Size       int64  `json:"size"`
}

// UploadOptions controls allow-listing and conflict handling for a batch.
type UploadOptions struct {
	// AllowedTypes enforces the upload extension allow-list. Defaults to
	// true at the request boundary.
	AllowedTypes bool
	// OnConflict is the policy applied per file when the target exists.
	OnConflict string
}

// UploadProgress is one per-file progress event. Each file jumps from 0
// to 100 percent around its copy; sub-file granularity is a known
// limitation, not a bug.
type UploadProgress struct {
	FileIndex        int    `json:"file_index"`
	FileName         string `json:"file_name"`
	BytesTransferred int64  `json:"bytes_transferred"`
	TotalBytes       int64  `json:"total_bytes"`
	Percent          int    `json:"percent"`
	Status           string `json:"status"`
	Error            string `json:"error,omitempty"`
}

// UploadDetail is the per-file entry of an UploadResult.
type UploadDetail struct {
	File      string `json:"file"`
	Status    string `json:"status"`
	FinalName string `json:"final_name,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Error     string `json:"error,omitempty"`
}

// UploadResult aggregates a finished batch.
type UploadResult struct {
	Success  bool           `json:"success"`
	Uploaded int            `json:"uploaded"`
	Skipped  int            `json:"skipped"`
	Failed   int            `json:"failed"`
	Details  []UploadDetail `json:"details"`
}

// ProgressFunc receives progress events. Invoked synchronously, so events
// for file i are always emitted before file i+1 starts.
type ProgressFunc func(UploadProgress)

// Upload brings a batch of external files into dest, one at a time in
// array order. Per-file failures become result data rather than aborting
// the batch; a partial success is a meaningful outcome for multi-file
// transfers.
func (s *Service) Upload(session string, files []UploadFile, dest string, opts UploadOptions, progress ProgressFunc) (UploadResult, error) {
	root, err := s.roots.Require(session)
	if err != nil {
		return UploadResult{}, err
	}

	destDir, err := ResolveWithin(root, dest)
	if err != nil {
		return UploadResult{}, err
	}

	if progress == nil {
		progress = func(UploadProgress) {}
	}

	result := UploadResult{}
	for i, file := range files {
		detail := s.uploadOne(root, destDir, i, file, opts, progress)
		switch detail.Status {
		case StatusUploaded:
			result.Uploaded++
		case StatusSkipped:
			result.Skipped++
		default:
			result.Failed++
		}
		result.Details = append(result.Details, detail)
	}

	result.Success = result.Failed == 0
	return result, nil
}

func (s *Service) uploadOne(root, destDir string, index int, file UploadFile, opts UploadOptions, progress ProgressFunc) UploadDetail {
	name := file.Name

	if opts.AllowedTypes {
		if _, ok := allowedUploadExtensions[extensionOf(name)]; !ok {
			log.Debug("upload: type not allowed: %s", name)
			return UploadDetail{File: name, Status: StatusSkipped, Reason: "File type not allowed"}
		}
	}

	fail := func(err error) UploadDetail {
		progress(UploadProgress{
			FileIndex: index,
			FileName:  name,
			Status:    StatusError,
			Error:     err.Error(),
		})
		return UploadDetail{File: name, Status: StatusFailed, Error: err.Error()}
	}

	srcInfo, err := os.Stat(file.SourcePath)
	if err != nil {
		return fail(fmt.Errorf("%w: %s", ErrSourceNotFound, file.SourcePath))
	}

	target := filepath.Join(destDir, name)
	if _, err := ResolveWithin(root, target); err != nil {
		return fail(err)
	}

	finalName := name
	if _, err := os.Stat(target); err == nil {
		switch opts.OnConflict {
		case ConflictKeepBoth:
			finalName = UniqueName(destDir, name)
			target = filepath.Join(destDir, finalName)
		case ConflictOverwrite:
			// proceed, the copy replaces the existing file
		default:
			return UploadDetail{File: name, Status: StatusSkipped, Reason: "File already exists"}
		}
	}

	total := srcInfo.Size()
	progress(UploadProgress{
		FileIndex:  index,
		FileName:   name,
		TotalBytes: total,
		Status:     StatusUploading,
	})

	if err := copyFile(file.SourcePath, target, 0o644); err != nil {
		return fail(err)
	}

	progress(UploadProgress{
		FileIndex:        index,
		FileName:         name,
		BytesTransferred: total,
		TotalBytes:       total,
		Percent:          100,
		Status:           StatusComplete,
	})

	return UploadDetail{File: name, Status: StatusUploaded, FinalName: finalName}
}
