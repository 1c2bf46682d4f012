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
	"sort"
	"strings"

	globutil "github.com/bmatcuk/doublestar/v4"
)

// FileItem is a read-only snapshot of one directory entry, produced fresh
// on every listing call.
type FileItem struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	RelativePath string `json:"relative_path"`
	Type         string `json:"type"` // "file" or "directory"
	Size         int64  `json:"size"`
	Modified     int64  `json:"modified"` // unix milliseconds
	IsHidden     bool   `json:"is_hidden"`
	Extension    string `json:"extension,omitempty"` // lower-cased, files only
}

const (
	TypeFile      = "file"
	TypeDirectory = "directory"
)

// Sort fields accepted by ListOptions.SortBy.
const (
	SortByName     = "name"
	SortByType     = "type"
	SortBySize     = "size"
	SortByModified = "modified"
)

// ListOptions controls filtering and ordering of a directory listing.
type ListOptions struct {
	ShowHidden    bool
	SortBy        string // empty => filesystem enumeration order
	SortDirection string // "asc" (default) or "desc"
	SearchQuery   string // case-insensitive substring match on the name
	Pattern       string // optional glob match on the name
}

// ListWarning reports an entry that was skipped because it could not be
// stat-ed. One bad entry must not break the whole view, but the failure
// stays visible to the caller.
type ListWarning struct {
	Name string `json:"name"`
	Err  string `json:"error"`
}

// List enumerates the immediate children of path (validated against
// root), applies hidden/search/pattern filters and the directories-first
// sort, and returns the surviving entries plus any per-entry warnings.
func List(root, path string, opts ListOptions) ([]FileItem, []ListWarning, error) {
	dir, err := ResolveWithin(root, path)
	if err != nil {
		return nil, nil, err
	}

	if opts.Pattern != "" && !globutil.ValidatePattern(opts.Pattern) {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidPattern, opts.Pattern)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	items := make([]FileItem, 0, len(entries))
	var warnings []ListWarning

	for _, entry := range entries {
		name := entry.Name()
		hidden := strings.HasPrefix(name, ".")
		if hidden && !opts.ShowHidden {
			continue
		}
		if opts.SearchQuery != "" &&
			!strings.Contains(strings.ToLower(name), strings.ToLower(opts.SearchQuery)) {
			continue
		}
		if opts.Pattern != "" {
			matched, err := globutil.Match(opts.Pattern, name)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %q", ErrInvalidPattern, opts.Pattern)
			}
			if !matched {
				continue
			}
		}

		entryPath := filepath.Join(dir, name)
		info, err := entry.Info()
		if err != nil {
			warnings = append(warnings, ListWarning{Name: name, Err: err.Error()})
			continue
		}

		rel, err := filepath.Rel(root, entryPath)
		if err != nil {
			rel = name
		}

		item := FileItem{
			Name:         name,
			Path:         entryPath,
			RelativePath: rel,
			Type:         TypeFile,
			Size:         info.Size(),
			Modified:     info.ModTime().UnixMilli(),
			IsHidden:     hidden,
		}
		if entry.IsDir() {
			item.Type = TypeDirectory
			item.Size = 0
		} else {
			item.Extension = extensionOf(name)
		}

		items = append(items, item)
	}

	if opts.SortBy != "" {
		sortItems(items, opts.SortBy, opts.SortDirection == "desc")
	}

	return items, warnings, nil
}

// sortItems orders directories strictly before files, then compares the
// chosen field within each group.
func sortItems(items []FileItem, field string, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Type != b.Type {
			return a.Type == TypeDirectory
		}

		var cmp int
		switch field {
		case SortBySize:
			cmp = compareInt64(a.Size, b.Size)
		case SortByModified:
			cmp = compareInt64(a.Modified, b.Modified)
		case SortByType:
			cmp = strings.Compare(a.Extension, b.Extension)
		default: // name
			cmp = strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}

		if desc {
			cmp = -cmp
		}
		return cmp < 0
	})
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// extensionOf returns the lower-cased extension without the leading dot,
// or "" when the name has none.
func extensionOf(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
