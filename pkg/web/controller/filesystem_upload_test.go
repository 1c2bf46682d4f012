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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencontract/workspaced/pkg/fileops"
	"github.com/opencontract/workspaced/pkg/web/model"
)

func stageSource(t *testing.T, dir, name, content string) fileops.UploadFile {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return fileops.UploadFile{Name: name, SourcePath: path, Size: int64(len(content))}
}

func decodeStream(t *testing.T, rec *httptest.ResponseRecorder) []model.UploadStreamEvent {
	t.Helper()
	var events []model.UploadStreamEvent
	for _, frame := range strings.Split(rec.Body.String(), "\n\n") {
		frame = strings.TrimSpace(frame)
		if frame == "" {
			continue
		}
		var event model.UploadStreamEvent
		require.NoError(t, json.Unmarshal([]byte(frame), &event), "frame: %s", frame)
		if event.Type == model.UploadEventTypePing {
			continue
		}
		events = append(events, event)
	}
	return events
}

func TestUploadFilesStreamsProgressAndResult(t *testing.T) {
	session := "sess-upload"
	root := t.TempDir()
	staging := t.TempDir()
	bindRoot(t, session, root)

	req := model.UploadRequest{
		Files: []fileops.UploadFile{
			stageSource(t, staging, "contract.pdf", "pdf-bytes"),
			stageSource(t, staging, "scan.png", "png-bytes"),
		},
		Dest: ".",
	}

	ctrl, rec := newFilesystemController(t, session, http.MethodPost, "/files/upload", req)
	ctrl.UploadFiles()

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	events := decodeStream(t, rec)
	require.NotEmpty(t, events)

	last := events[len(events)-1]
	require.Equal(t, model.UploadEventTypeResult, last.Type)
	require.NotNil(t, last.Result)
	assert.True(t, last.Result.Success)
	assert.Equal(t, 2, last.Result.Uploaded)

	var progress []model.UploadStreamEvent
	for _, e := range events[:len(events)-1] {
		require.Equal(t, model.UploadEventTypeProgress, e.Type)
		require.NotNil(t, e.Progress)
		progress = append(progress, e)
	}
	// Per-file events arrive in array order, start before completion.
	require.GreaterOrEqual(t, len(progress), 4)
	assert.Equal(t, 0, progress[0].Progress.FileIndex)
	assert.Equal(t, fileops.StatusUploading, progress[0].Progress.Status)

	for _, name := range []string{"contract.pdf", "scan.png"} {
		_, err := os.Stat(filepath.Join(root, name))
		assert.NoError(t, err, "uploaded file %s", name)
	}
}

func TestUploadFilesDisallowedExtensionSkipped(t *testing.T) {
	session := "sess-upload-skip"
	root := t.TempDir()
	staging := t.TempDir()
	bindRoot(t, session, root)

	req := model.UploadRequest{
		Files: []fileops.UploadFile{stageSource(t, staging, "virus.exe", "nope")},
		Dest:  ".",
	}

	ctrl, rec := newFilesystemController(t, session, http.MethodPost, "/files/upload", req)
	ctrl.UploadFiles()

	events := decodeStream(t, rec)
	require.NotEmpty(t, events)

	last := events[len(events)-1]
	require.Equal(t, model.UploadEventTypeResult, last.Type)
	require.NotNil(t, last.Result)
	assert.True(t, last.Result.Success)
	assert.Equal(t, 1, last.Result.Skipped)
	assert.Equal(t, 0, last.Result.Uploaded)

	_, err := os.Stat(filepath.Join(root, "virus.exe"))
	assert.True(t, os.IsNotExist(err))
}

func TestUploadFilesNoRootFailsInResultFrame(t *testing.T) {
	staging := t.TempDir()
	req := model.UploadRequest{
		Files: []fileops.UploadFile{stageSource(t, staging, "contract.pdf", "x")},
		Dest:  ".",
	}

	ctrl, rec := newFilesystemController(t, "sess-upload-unbound", http.MethodPost, "/files/upload", req)
	ctrl.UploadFiles()

	// The stream opened before the service ran, so the failure arrives
	// as a failed result frame.
	events := decodeStream(t, rec)
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	require.Equal(t, model.UploadEventTypeResult, last.Type)
	require.NotNil(t, last.Result)
	assert.False(t, last.Result.Success)
}

func TestUploadFilesRejectsEmptyBatch(t *testing.T) {
	req := model.UploadRequest{Files: nil, Dest: "."}

	ctrl, rec := newFilesystemController(t, "sess-upload-empty", http.MethodPost, "/files/upload", req)
	ctrl.UploadFiles()

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
