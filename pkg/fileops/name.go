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
	"path/filepath"
	"strings"
	"unicode/utf16"
)

// Validation error codes. Returned as data so a UI can render every
// problem at once.
const (
	CodeEmptyName            = "EMPTY_NAME"
	CodeNameTooLong          = "NAME_TOO_LONG"
	CodeInvalidPathSeparator = "INVALID_PATH_SEPARATOR"
	CodeInvalidCharacters    = "INVALID_CHARACTERS"
	CodeReservedName         = "RESERVED_NAME"
)

// ValidationError describes one violation of the file naming rules.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

const maxNameLength = 255

// Windows device names are rejected on every platform so a workspace
// stays portable across machines.
var reservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// ValidateName checks a candidate file or folder name against syntactic
// and platform-reservation rules, accumulating violations rather than
// stopping at the first one. A no-op rename (name == previous) is always
// valid. An empty name short-circuits: nothing else is worth reporting.
func ValidateName(name, previous string) []ValidationError {
	if previous != "" && name == previous {
		return nil
	}

	var errs []ValidationError

	if strings.TrimSpace(name) == "" {
		return append(errs, ValidationError{
			Field:   "name",
			Message: "Filename cannot be empty",
			Code:    CodeEmptyName,
		})
	}

	if len(utf16.Encode([]rune(name))) > maxNameLength {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("Filename is too long (max %d characters)", maxNameLength),
			Code:    CodeNameTooLong,
		})
	}

	if strings.ContainsAny(name, `/\`) {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: `Filename cannot contain / or \`,
			Code:    CodeInvalidPathSeparator,
		})
	}

	if strings.ContainsAny(name, `<>:"|?*`) || containsControl(name) {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "Filename contains invalid characters",
			Code:    CodeInvalidCharacters,
		})
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	if _, reserved := reservedNames[strings.ToUpper(base)]; reserved {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("%q is a reserved system name", name),
			Code:    CodeReservedName,
		})
	}

	return errs
}

func containsControl(s string) bool {
	for _, r := range s {
		if r < 0x20 {
			return true
		}
	}
	return false
}
