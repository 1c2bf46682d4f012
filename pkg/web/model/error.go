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

// ApiAccessTokenHeader carries the optional API token.
const ApiAccessTokenHeader = "X-Access-Token"

// SessionHeader identifies the UI window issuing the request. Requests
// without one are assigned a fresh id, echoed back in the response.
const SessionHeader = "X-Session-Id"

// ErrorCode classifies request failures.
type ErrorCode string

const (
	ErrorCodeInvalidRequest    ErrorCode = "INVALID_REQUEST"
	ErrorCodePathTraversal     ErrorCode = "PATH_TRAVERSAL"
	ErrorCodeNoRootSelected    ErrorCode = "NO_ROOT_SELECTED"
	ErrorCodeAlreadyExists     ErrorCode = "ALREADY_EXISTS"
	ErrorCodeInvalidName       ErrorCode = "INVALID_NAME"
	ErrorCodeInvalidResolution ErrorCode = "INVALID_RESOLUTION"
	ErrorCodeFileNotFound      ErrorCode = "FILE_NOT_FOUND"
	ErrorCodeOpenFailed        ErrorCode = "OPEN_FAILED"
	ErrorCodeRuntimeError      ErrorCode = "RUNTIME_ERROR"
)

// ErrorResponse is the structured error body of every failed request.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message,omitempty"`
}
