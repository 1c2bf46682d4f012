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

package model

// WatchEvent notifies the UI of one external change in the watched
// directory so the listing can refresh.
type WatchEvent struct {
	Op        string `json:"op"` // create, write, remove, rename, chmod
	Name      string `json:"name"`
	Timestamp int64  `json:"timestamp"`
}
