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
	"io"
	"os"
	"path/filepath"

	"github.com/opencontract/workspaced/pkg/log"
)

// Conflict describes a rename target that already exists. The caller must
// resolve it explicitly before anything is mutated.
type Conflict struct {
	Exists  bool   `json:"exists"`
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
	Path    string `json:"path"`
}

// RenameResult reports either a completed rename or a pending conflict.
type RenameResult struct {
	Success   bool      `json:"success"`
	FinalName string    `json:"final_name,omitempty"`
	Conflict  *Conflict `json:"conflict,omitempty"`
}

// ConflictResolution tokens accepted by ResolveConflict.
const (
	ResolutionCancel    = "cancel"
	ResolutionOverwrite = "overwrite"
	ResolutionKeepBoth  = "keep-both"
)

// ResolutionResult reports the outcome of resolving a conflict.
type ResolutionResult struct {
	Success   bool   `json:"success"`
	FinalName string `json:"final_name,omitempty"`
	Cancelled bool   `json:"cancelled,omitempty"`
}

type RenameOptions struct {
	// PreserveExtension appends the old extension when the proposed name
	// has none. Defaults to true at the request boundary.
	PreserveExtension bool
}

type RemoveOptions struct {
	// ToTrash moves entries into the in-root trash directory instead of
	// deleting them permanently.
	ToTrash bool
}

// Service is the file operation surface of the daemon. Every operation
// validates its paths against the root bound to the invoking session.
// Operations are validated-then-executed with no transactional rollback;
// a failure partway through a recursive copy or delete leaves a partial
// state the caller must treat as possible.
type Service struct {
	roots *RootRegistry
}

func NewService(roots *RootRegistry) *Service {
	return &Service{roots: roots}
}

// Roots exposes the registry for session bind/unbind handling.
func (s *Service) Roots() *RootRegistry {
	return s.roots
}

// CreateFolder creates a single directory level under parent. The name
// must pass full name validation and the target must not exist.
func (s *Service) CreateFolder(session, parent, name string) error {
	root, err := s.roots.Require(session)
	if err != nil {
		return err
	}

	if violations := ValidateName(name, ""); len(violations) > 0 {
		return &NameError{Name: name, Violations: violations}
	}

	dir, err := ResolveWithin(root, parent)
	if err != nil {
		return err
	}

	target := filepath.Join(dir, name)
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, target)
	} else if !os.IsNotExist(err) {
		return err
	}

	return os.Mkdir(target, 0o755)
}

// Rename renames the entry at oldPath to newName within its directory.
// When the target already exists nothing is mutated and the returned
// result carries a Conflict for the caller to resolve.
func (s *Service) Rename(session, oldPath, newName string, opts RenameOptions) (RenameResult, error) {
	root, err := s.roots.Require(session)
	if err != nil {
		return RenameResult{}, err
	}

	src, err := ResolveWithin(root, oldPath)
	if err != nil {
		return RenameResult{}, err
	}

	oldName := filepath.Base(src)
	if violations := ValidateName(newName, oldName); len(violations) > 0 {
		return RenameResult{}, &NameError{Name: newName, Violations: violations}
	}

	finalName := newName
	if opts.PreserveExtension {
		oldExt := filepath.Ext(oldName)
		if oldExt != "" && filepath.Ext(newName) == "" {
			finalName = newName + oldExt
		}
	}

	parent := filepath.Dir(src)
	target := filepath.Join(parent, finalName)
	if _, err := ResolveWithin(root, target); err != nil {
		return RenameResult{}, err
	}

	if _, err := os.Stat(target); err == nil {
		return RenameResult{
			Success: false,
			Conflict: &Conflict{
				Exists:  true,
				OldName: oldName,
				NewName: finalName,
				Path:    parent,
			},
		}, nil
	}

	if err := os.Rename(src, target); err != nil {
		return RenameResult{}, err
	}
	return RenameResult{Success: true, FinalName: finalName}, nil
}

// ResolveConflict turns a surfaced conflict into a final action. Cancel
// leaves the filesystem untouched; overwrite deletes the existing target
// (already gone is not an error); keep-both generates a unique name.
func (s *Service) ResolveConflict(session, dir, desiredName, resolution string) (ResolutionResult, error) {
	root, err := s.roots.Require(session)
	if err != nil {
		return ResolutionResult{}, err
	}

	target, err := ResolveWithin(root, dir)
	if err != nil {
		return ResolutionResult{}, err
	}

	switch resolution {
	case ResolutionCancel:
		return ResolutionResult{Success: false, Cancelled: true}, nil

	case ResolutionOverwrite:
		dest := filepath.Join(target, desiredName)
		if _, err := ResolveWithin(root, dest); err != nil {
			return ResolutionResult{}, err
		}
		if err := os.RemoveAll(dest); err != nil && !os.IsNotExist(err) {
			return ResolutionResult{}, err
		}
		return ResolutionResult{Success: true, FinalName: desiredName}, nil

	case ResolutionKeepBoth:
		return ResolutionResult{Success: true, FinalName: UniqueName(target, desiredName)}, nil

	default:
		return ResolutionResult{}, fmt.Errorf("%w: %q", ErrInvalidResolution, resolution)
	}
}

// ResolveRenameConflict applies the user's decision to a pending rename
// conflict and, unless cancelled, completes the rename of the entry at
// oldPath to the resolved final name.
func (s *Service) ResolveRenameConflict(session, oldPath, desiredName, resolution string) (ResolutionResult, error) {
	root, err := s.roots.Require(session)
	if err != nil {
		return ResolutionResult{}, err
	}

	src, err := ResolveWithin(root, oldPath)
	if err != nil {
		return ResolutionResult{}, err
	}

	dir := filepath.Dir(src)
	result, err := s.ResolveConflict(session, dir, desiredName, resolution)
	if err != nil || !result.Success {
		return result, err
	}

	if err := os.Rename(src, filepath.Join(dir, result.FinalName)); err != nil {
		return ResolutionResult{}, err
	}
	return result, nil
}

// Remove deletes the given paths sequentially; the first failure aborts
// the remaining batch. With ToTrash the entries stay recoverable inside
// the workspace trash directory.
func (s *Service) Remove(session string, paths []string, opts RemoveOptions) error {
	root, err := s.roots.Require(session)
	if err != nil {
		return err
	}

	for _, p := range paths {
		target, err := ResolveWithin(root, p)
		if err != nil {
			return err
		}

		if opts.ToTrash {
			if err := moveToTrash(root, target); err != nil {
				return err
			}
			continue
		}

		info, err := os.Stat(target)
		if err != nil {
			return err
		}
		if info.IsDir() {
			err = os.RemoveAll(target)
		} else {
			err = os.Remove(target)
		}
		if err != nil {
			return err
		}
		log.Debug("removed %s", target)
	}

	return nil
}

// Copy copies each source into dest, generating a " - Copy" name variant
// when the destination already holds a same-named entry. Directory copies
// are fully depth-first.
func (s *Service) Copy(session string, sources []string, dest string) error {
	root, err := s.roots.Require(session)
	if err != nil {
		return err
	}

	destDir, err := ResolveWithin(root, dest)
	if err != nil {
		return err
	}

	for _, source := range sources {
		src, err := ResolveWithin(root, source)
		if err != nil {
			return err
		}

		name := CopyName(destDir, filepath.Base(src))
		target := filepath.Join(destDir, name)
		if _, err := ResolveWithin(root, target); err != nil {
			return err
		}

		if err := copyRecursive(src, target); err != nil {
			return err
		}
		log.Debug("copied %s -> %s", src, target)
	}

	return nil
}

// Move relocates each source into dest via rename. Name collisions are
// not auto-resolved: a colliding move fails with the underlying
// filesystem error, asymmetric with Copy on purpose (moving implies
// relocation, not duplication).
func (s *Service) Move(session string, sources []string, dest string) error {
	root, err := s.roots.Require(session)
	if err != nil {
		return err
	}

	destDir, err := ResolveWithin(root, dest)
	if err != nil {
		return err
	}

	for _, source := range sources {
		src, err := ResolveWithin(root, source)
		if err != nil {
			return err
		}

		target := filepath.Join(destDir, filepath.Base(src))
		if _, err := ResolveWithin(root, target); err != nil {
			return err
		}

		if err := os.Rename(src, target); err != nil {
			return err
		}
		log.Debug("moved %s -> %s", src, target)
	}

	return nil
}

// copyRecursive mirrors src at dest: mkdir then every child for
// directories, a straight byte copy for files.
func copyRecursive(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}

	if info.IsDir() {
		if err := os.MkdirAll(dest, info.Mode()); err != nil {
			return fmt.Errorf("failed to create destination directory: %w", err)
		}
		entries, err := os.ReadDir(src)
		if err != nil {
			return fmt.Errorf("failed to read source directory: %w", err)
		}
		for _, entry := range entries {
			if err := copyRecursive(filepath.Join(src, entry.Name()), filepath.Join(dest, entry.Name())); err != nil {
				return err
			}
		}
		return nil
	}

	return copyFile(src, dest, info.Mode())
}

func copyFile(src, dest string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest) // cleanup on error
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	return out.Close()
}
