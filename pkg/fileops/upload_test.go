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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name, content string) UploadFile {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return UploadFile{Name: name, SourcePath: path, Size: int64(len(content))}
}

func TestUploadSingleFile(t *testing.T) {
	svc, root := newTestService(t)
	staging := t.TempDir()
	file := writeSource(t, staging, "contract.docx", "document body")

	var events []UploadProgress
	result, err := svc.Upload(testSession, []UploadFile{file}, ".", UploadOptions{AllowedTypes: true}, func(p UploadProgress) {
		events = append(events, p)
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Uploaded)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, result.Details, 1)
	assert.Equal(t, StatusUploaded, result.Details[0].Status)
	assert.Equal(t, "contract.docx", result.Details[0].FinalName)

	data, err := os.ReadFile(filepath.Join(root, "contract.docx"))
	require.NoError(t, err)
	assert.Equal(t, "document body", string(data))

	// One start event, one complete event, in that order.
	require.Len(t, events, 2)
	assert.Equal(t, StatusUploading, events[0].Status)
	assert.Equal(t, int64(0), events[0].BytesTransferred)
	assert.Equal(t, StatusComplete, events[1].Status)
	assert.Equal(t, events[1].TotalBytes, events[1].BytesTransferred)
	assert.Equal(t, 100, events[1].Percent)
}

func TestUploadAllowListRejectsExecutable(t *testing.T) {
	svc, root := newTestService(t)
	staging := t.TempDir()
	file := writeSource(t, staging, "virus.exe", "mz")

	result, err := svc.Upload(testSession, []UploadFile{file}, ".", UploadOptions{AllowedTypes: true}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Details, 1)
	assert.Equal(t, StatusSkipped, result.Details[0].Status)
	assert.Equal(t, "File type not allowed", result.Details[0].Reason)
	_, statErr := os.Stat(filepath.Join(root, "virus.exe"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestUploadAllowListDisabled(t *testing.T) {
	svc, _ := newTestService(t)
	staging := t.TempDir()
	file := writeSource(t, staging, "notes.xyz", "anything")

	result, err := svc.Upload(testSession, []UploadFile{file}, ".", UploadOptions{AllowedTypes: false}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Uploaded)
}

func TestUploadConflictSkip(t *testing.T) {
	svc, root := newTestService(t)
	staging := t.TempDir()
	touch(t, root, "contract.docx")
	file := writeSource(t, staging, "contract.docx", "new body")

	result, err := svc.Upload(testSession, []UploadFile{file}, ".", UploadOptions{AllowedTypes: true, OnConflict: ConflictSkip}, nil)
	require.NoError(t, err)

	require.Len(t, result.Details, 1)
	assert.Equal(t, StatusSkipped, result.Details[0].Status)
	assert.Equal(t, "File already exists", result.Details[0].Reason)
}

func TestUploadConflictKeepBoth(t *testing.T) {
	svc, root := newTestService(t)
	staging := t.TempDir()
	touch(t, root, "contract.docx")
	file := writeSource(t, staging, "contract.docx", "new body")

	result, err := svc.Upload(testSession, []UploadFile{file}, ".", UploadOptions{AllowedTypes: true, OnConflict: ConflictKeepBoth}, nil)
	require.NoError(t, err)

	require.Len(t, result.Details, 1)
	detail := result.Details[0]
	assert.Equal(t, StatusUploaded, detail.Status)
	assert.NotEqual(t, "contract.docx", detail.FinalName)

	data, err := os.ReadFile(filepath.Join(root, detail.FinalName))
	require.NoError(t, err)
	assert.Equal(t, "new body", string(data))
}

func TestUploadConflictOverwrite(t *testing.T) {
	svc, root := newTestService(t)
	staging := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "contract.docx"), []byte("old"), 0o644))
	file := writeSource(t, staging, "contract.docx", "new body")

	result, err := svc.Upload(testSession, []UploadFile{file}, ".", UploadOptions{AllowedTypes: true, OnConflict: ConflictOverwrite}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Uploaded)

	data, err := os.ReadFile(filepath.Join(root, "contract.docx"))
	require.NoError(t, err)
	assert.Equal(t, "new body", string(data))
}

func TestUploadMissingSource(t *testing.T) {
	svc, _ := newTestService(t)

	var events []UploadProgress
	result, err := svc.Upload(testSession, []UploadFile{{
		Name:       "ghost.pdf",
		SourcePath: filepath.Join(t.TempDir(), "vanished.pdf"),
	}}, ".", UploadOptions{AllowedTypes: true}, func(p UploadProgress) {
		events = append(events, p)
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Details, 1)
	assert.Equal(t, StatusFailed, result.Details[0].Status)
	assert.Contains(t, result.Details[0].Error, "source file not found")

	require.Len(t, events, 1)
	assert.Equal(t, StatusError, events[0].Status)
}

func TestUploadBatchOrderingAndPartialSuccess(t *testing.T) {
	svc, _ := newTestService(t)
	staging := t.TempDir()

	files := []UploadFile{
		writeSource(t, staging, "one.pdf", "1"),
		{Name: "gone.png", SourcePath: filepath.Join(staging, "never-written.png")},
		writeSource(t, staging, "two.jpg", "22"),
		writeSource(t, staging, "tool.exe", "x"),
	}

	var events []UploadProgress
	result, err := svc.Upload(testSession, files, ".", UploadOptions{AllowedTypes: true}, func(p UploadProgress) {
		events = append(events, p)
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 2, result.Uploaded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Skipped)

	// Events arrive in array order and never interleave across files.
	lastIndex := -1
	for _, e := range events {
		assert.GreaterOrEqual(t, e.FileIndex, lastIndex)
		lastIndex = e.FileIndex
	}
}

func TestUploadRejectsEscapingDestination(t *testing.T) {
	svc, _ := newTestService(t)
	staging := t.TempDir()
	file := writeSource(t, staging, "a.pdf", "1")

	_, err := svc.Upload(testSession, []UploadFile{file}, "../outside", UploadOptions{AllowedTypes: true}, nil)
	assert.ErrorIs(t, err, ErrPathTraversal)
}

func TestUploadRequiresRoot(t *testing.T) {
	svc := NewService(NewRootRegistry())
	_, err := svc.Upload("ghost", nil, ".", UploadOptions{}, nil)
	assert.ErrorIs(t, err, ErrNoRootSelected)
}
