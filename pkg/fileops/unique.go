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
	"strings"
)

// UniqueName returns desired unchanged when dir/desired does not exist,
// otherwise the first unused "{base} ({n}){ext}" variant. Deterministic
// over the directory contents at call time; concurrent creators in the
// same directory can still race, which is accepted for a single-user
// desktop tool.
func UniqueName(dir, desired string) string {
	if !exists(filepath.Join(dir, desired)) {
		return desired
	}

	base, ext := splitExt(desired)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, n, ext)
		if !exists(filepath.Join(dir, candidate)) {
			return candidate
		}
	}
}

// CopyName returns desired unchanged when dir/desired does not exist,
// otherwise "{base} - Copy{ext}", then "{base} - Copy {n}{ext}" for
// n >= 2. Same race caveat as UniqueName.
func CopyName(dir, desired string) string {
	if !exists(filepath.Join(dir, desired)) {
		return desired
	}

	base, ext := splitExt(desired)
	candidate := fmt.Sprintf("%s - Copy%s", base, ext)
	for n := 2; exists(filepath.Join(dir, candidate)); n++ {
		candidate = fmt.Sprintf("%s - Copy %d%s", base, n, ext)
	}
	return candidate
}

func splitExt(name string) (base, ext string) {
	ext = filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
