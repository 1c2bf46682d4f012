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
	"fmt"
)

var (
	// ErrPathTraversal is returned when a candidate path resolves outside
	// the bound workspace root. Always fatal to the request.
	ErrPathTraversal = errors.New("path traversal attempt detected")

	// ErrNoRootSelected is returned when a session has no bound root.
	ErrNoRootSelected = errors.New("no workspace root selected")

	// ErrAlreadyExists is returned when a create-folder target exists.
	ErrAlreadyExists = errors.New("target already exists")

	// ErrInvalidResolution is returned for an unknown conflict resolution.
	ErrInvalidResolution = errors.New("invalid conflict resolution")

	// ErrOpenFailed is returned when the OS shell refused to open a path.
	ErrOpenFailed = errors.New("failed to open path")

	// ErrSourceNotFound is returned when an upload source vanished before
	// its copy started.
	ErrSourceNotFound = errors.New("source file not found")

	// ErrInvalidName is returned when a candidate name fails validation.
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidPattern is returned for a malformed listing glob, so a
	// typo'd pattern fails loudly instead of matching nothing.
	ErrInvalidPattern = errors.New("invalid glob pattern")
)

// TraversalError carries the offending candidate alongside the root it
// escaped from.
type TraversalError struct {
	Root      string
	Candidate string
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("path %q escapes workspace root %q", e.Candidate, e.Root)
}

func (e *TraversalError) Unwrap() error {
	return ErrPathTraversal
}

// NameError wraps the first validation violation of a rejected name.
type NameError struct {
	Name       string
	Violations []ValidationError
}

func (e *NameError) Error() string {
	if len(e.Violations) > 0 {
		return fmt.Sprintf("invalid name %q: %s", e.Name, e.Violations[0].Message)
	}
	return fmt.Sprintf("invalid name %q", e.Name)
}

func (e *NameError) Unwrap() error {
	return ErrInvalidName
}
