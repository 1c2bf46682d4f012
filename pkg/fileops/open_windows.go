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

//go:build windows
// +build windows

package fileops

import (
	"fmt"
	"os/exec"
)

// openPath hands the path to explorer, which dispatches files to their
// default application.
func openPath(path string) error {
	// explorer exits non-zero even on success, so only spawn errors count.
	if err := exec.Command("explorer.exe", path).Start(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOpenFailed, path, err)
	}
	return nil
}

// revealPath shows the entry selected in an explorer window.
func revealPath(path string) error {
	if err := exec.Command("explorer.exe", "/select,"+path).Start(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOpenFailed, path, err)
	}
	return nil
}
