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

// Package docstore declares the external collaborators of the workspace
// daemon: metadata persistence for templates, contracts and settings,
// the document renderer, and the placeholder enrichment step. The daemon
// consumes them by interface only; implementations live with the desktop
// application shell.
package docstore

import (
	"context"
	"time"
)

// Template is a stored contract template record.
type Template struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	FilePath    string    `json:"file_path"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Contract is a generated contract record pointing at its output file.
type Contract struct {
	ID         int64          `json:"id"`
	TemplateID int64          `json:"template_id"`
	Name       string         `json:"name"`
	FilePath   string         `json:"file_path"`
	Data       map[string]any `json:"data,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Settings is the singleton application settings record.
type Settings struct {
	OutputDirectory string `json:"output_directory"`
	Language        string `json:"language"`
}

// TemplateStore is keyed CRUD over template records.
type TemplateStore interface {
	GetAll(ctx context.Context) ([]Template, error)
	GetByID(ctx context.Context, id int64) (Template, error)
	GetByPath(ctx context.Context, filePath string) (Template, error)
	GetByType(ctx context.Context, templateType string) ([]Template, error)
	Create(ctx context.Context, t Template) (Template, error)
	Update(ctx context.Context, id int64, t Template) (Template, error)
	Delete(ctx context.Context, id int64) error
}

// ContractStore is keyed CRUD over generated contract records.
type ContractStore interface {
	GetAll(ctx context.Context) ([]Contract, error)
	GetByID(ctx context.Context, id int64) (Contract, error)
	Create(ctx context.Context, c Contract) (Contract, error)
	Update(ctx context.Context, id int64, c Contract) (Contract, error)
	Delete(ctx context.Context, id int64) error
}

// SettingsStore holds the settings singleton.
type SettingsStore interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, s Settings) (Settings, error)
}

// Renderer fills a document template's placeholders and writes the
// result to outputPath.
type Renderer interface {
	Render(ctx context.Context, templatePath string, data map[string]any, outputPath string) error
}

// Enricher fills missing placeholder values from raw user-supplied data.
type Enricher interface {
	Fill(ctx context.Context, placeholders []string, raw map[string]any) (map[string]any, error)
}
