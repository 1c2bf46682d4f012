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
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/util/retry"
)

// TrashDirName is the recoverable-delete directory kept inside every
// workspace root. Dot-prefixed so default listings hide it.
const TrashDirName = ".trash"

var trashSlotBackoff = wait.Backoff{
	Steps:    5,
	Duration: 10 * time.Millisecond,
	Factor:   2.0,
	Jitter:   0.1,
}

// moveToTrash relocates target into root's trash directory. The entry
// keeps its name when free, otherwise gets a timestamp suffix. Slot
// allocation collides only when two deletes of equally named entries
// land in the same instant, so the rename is retried with backoff.
func moveToTrash(root, target string) error {
	trashDir := filepath.Join(root, TrashDirName)
	if contains(trashDir, target) {
		return fmt.Errorf("%s is reserved for trashed items", TrashDirName)
	}

	if _, err := os.Stat(target); err != nil {
		return err
	}
	if err := os.MkdirAll(trashDir, 0o755); err != nil {
		return err
	}

	name := filepath.Base(target)
	return retry.OnError(trashSlotBackoff, os.IsExist, func() error {
		slot := filepath.Join(trashDir, name)
		if _, err := os.Stat(slot); err == nil {
			slot = filepath.Join(trashDir, fmt.Sprintf("%s.%d", name, time.Now().UnixNano()))
		}
		if _, err := os.Stat(slot); err == nil {
			return os.ErrExist
		}
		return os.Rename(target, slot)
	})
}
