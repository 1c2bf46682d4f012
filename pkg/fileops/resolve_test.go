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
	"errors"
	"path/filepath"
	"testing"
)

func TestResolveWithinAcceptsRootAndDescendants(t *testing.T) {
	root := t.TempDir()

	cases := []struct {
		candidate string
		want      string
	}{
		{candidate: root, want: root},
		{candidate: ".", want: root},
		{candidate: "sub/dir", want: filepath.Join(root, "sub", "dir")},
		{candidate: filepath.Join(root, "a.txt"), want: filepath.Join(root, "a.txt")},
		{candidate: "sub/../other", want: filepath.Join(root, "other")},
	}

	for _, tc := range cases {
		got, err := ResolveWithin(root, tc.candidate)
		if err != nil {
			t.Fatalf("ResolveWithin(%q, %q): %v", root, tc.candidate, err)
		}
		if got != tc.want {
			t.Fatalf("ResolveWithin(%q, %q) = %q, want %q", root, tc.candidate, got, tc.want)
		}
	}
}

func TestResolveWithinRejectsEscapes(t *testing.T) {
	root := t.TempDir()

	cases := []string{
		"../../etc/passwd",
		"..",
		"sub/../../outside",
		filepath.Join(filepath.Dir(root), "sibling"),
		"/etc/passwd",
	}

	for _, candidate := range cases {
		_, err := ResolveWithin(root, candidate)
		if !errors.Is(err, ErrPathTraversal) {
			t.Fatalf("ResolveWithin(%q, %q): expected traversal error, got %v", root, candidate, err)
		}
		var traversal *TraversalError
		if !errors.As(err, &traversal) {
			t.Fatalf("expected *TraversalError, got %T", err)
		}
	}
}

func TestResolveWithinIsSegmentAware(t *testing.T) {
	root := t.TempDir()

	// A sibling sharing the root as a string prefix must not pass.
	sibling := root + "-evil"
	if _, err := ResolveWithin(root, sibling); !errors.Is(err, ErrPathTraversal) {
		t.Fatalf("expected traversal error for %q, got %v", sibling, err)
	}
}
