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

//go:build !windows
// +build !windows

package fileops

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// openPath hands the path to the platform launcher.
func openPath(path string) error {
	var cmd *exec.Cmd
	if runtime.GOOS == "darwin" {
		cmd = exec.Command("open", path)
	} else {
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOpenFailed, path, err)
	}
	return nil
}

// revealPath shows the entry in the system file manager. macOS can select
// the item; elsewhere the parent directory is opened instead.
func revealPath(path string) error {
	if runtime.GOOS == "darwin" {
		if err := exec.Command("open", "-R", path).Run(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrOpenFailed, path, err)
		}
		return nil
	}
	return openPath(filepath.Dir(path))
}
