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
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestUniqueNameFreeNameUnchanged(t *testing.T) {
	dir := t.TempDir()
	if got := UniqueName(dir, "report.docx"); got != "report.docx" {
		t.Fatalf("UniqueName = %q, want report.docx", got)
	}
}

func TestUniqueNameCountsPastExisting(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "report.docx")
	touch(t, dir, "report (1).docx")

	if got := UniqueName(dir, "report.docx"); got != "report (2).docx" {
		t.Fatalf("UniqueName = %q, want report (2).docx", got)
	}
}

func TestUniqueNameWithoutExtension(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "Contracts"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if got := UniqueName(dir, "Contracts"); got != "Contracts (1)" {
		t.Fatalf("UniqueName = %q, want Contracts (1)", got)
	}
}

func TestCopyNameScheme(t *testing.T) {
	dir := t.TempDir()

	if got := CopyName(dir, "a.txt"); got != "a.txt" {
		t.Fatalf("CopyName = %q, want a.txt", got)
	}

	touch(t, dir, "a.txt")
	if got := CopyName(dir, "a.txt"); got != "a - Copy.txt" {
		t.Fatalf("CopyName = %q, want a - Copy.txt", got)
	}

	touch(t, dir, "a - Copy.txt")
	if got := CopyName(dir, "a.txt"); got != "a - Copy 2.txt" {
		t.Fatalf("CopyName = %q, want a - Copy 2.txt", got)
	}

	touch(t, dir, "a - Copy 2.txt")
	if got := CopyName(dir, "a.txt"); got != "a - Copy 3.txt" {
		t.Fatalf("CopyName = %q, want a - Copy 3.txt", got)
	}
}
