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

import "os"

// OpenFile opens the entry with its default application.
func (s *Service) OpenFile(session, path string) error {
	target, err := s.validateExisting(session, path)
	if err != nil {
		return err
	}
	return openPath(target)
}

// OpenInExplorer reveals the entry in the system file manager.
func (s *Service) OpenInExplorer(session, path string) error {
	target, err := s.validateExisting(session, path)
	if err != nil {
		return err
	}
	return revealPath(target)
}

func (s *Service) validateExisting(session, path string) (string, error) {
	root, err := s.roots.Require(session)
	if err != nil {
		return "", err
	}
	target, err := ResolveWithin(root, path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(target); err != nil {
		return "", err
	}
	return target, nil
}
