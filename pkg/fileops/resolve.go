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
	"strings"
)

// ResolveWithin normalizes candidate and resolves it against root, then
// verifies the result is root itself or a descendant of it. Relative
// candidates resolve against the root; absolute candidates are taken
// as-is for the check. Pure path arithmetic, no I/O; symlinks are not
// chased before the containment check.
func ResolveWithin(root, candidate string) (string, error) {
	absRoot, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", err
	}

	cleaned := filepath.Clean(candidate)
	var resolved string
	if filepath.IsAbs(cleaned) {
		resolved = cleaned
	} else {
		resolved = filepath.Join(absRoot, cleaned)
	}

	if !contains(absRoot, resolved) {
		return "", &TraversalError{Root: absRoot, Candidate: candidate}
	}

	return resolved, nil
}

// contains reports whether target equals root or sits below it. The check
// is segment-aware so a sibling like "/data/ws-evil" does not pass for
// root "/data/ws".
func contains(root, target string) bool {
	if target == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(os.PathSeparator)) {
		prefix += string(os.PathSeparator)
	}
	return strings.HasPrefix(target, prefix)
}
