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
	"path/filepath"
	"sync"
)

// RootRegistry maps an opaque session identifier (one per UI window) to
// its currently bound workspace root. Binding again overwrites; closing
// a window unbinds. Safe for concurrent use across sessions.
type RootRegistry struct {
	mu       sync.RWMutex
	roots    map[string]string
	fallback string
}

func NewRootRegistry() *RootRegistry {
	return &RootRegistry{roots: make(map[string]string)}
}

// SetFallback sets a root served to sessions that never bound one. The
// UI shell uses it to start every window with a workspace selected.
func (r *RootRegistry) SetFallback(root string) error {
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.fallback = abs
	r.mu.Unlock()
	return nil
}

// Bind canonicalizes root to an absolute path and associates it with the
// session, replacing any previous binding.
func (r *RootRegistry) Bind(session, root string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.roots[session] = abs
	r.mu.Unlock()

	return abs, nil
}

// Root returns the bound root for the session, falling back to the
// registry-wide default when the session never bound one.
func (r *RootRegistry) Root(session string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if root, ok := r.roots[session]; ok {
		return root, true
	}
	if r.fallback != "" {
		return r.fallback, true
	}
	return "", false
}

// Require returns the bound root or ErrNoRootSelected.
func (r *RootRegistry) Require(session string) (string, error) {
	root, ok := r.Root(session)
	if !ok {
		return "", ErrNoRootSelected
	}
	return root, nil
}

// Unbind removes the session's binding. Unbinding an unknown session is
// a no-op.
func (r *RootRegistry) Unbind(session string) {
	r.mu.Lock()
	delete(r.roots, session)
	r.mu.Unlock()
}
