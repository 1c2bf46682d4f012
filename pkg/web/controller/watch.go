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

package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"

	"github.com/opencontract/workspaced/pkg/fileops"
	"github.com/opencontract/workspaced/pkg/log"
	"github.com/opencontract/workspaced/pkg/util/safego"
	"github.com/opencontract/workspaced/pkg/web/model"
)

// The daemon binds to loopback only, so cross-origin upgrades from the
// UI shell are fine.
var watchUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

const watchPingInterval = 30 * time.Second

// WatchDirectory upgrades to a websocket and streams filesystem change
// events for one directory until the client disconnects. The UI uses it
// to refresh listings changed behind its back.
func (c *FilesystemController) WatchDirectory() {
	root, err := c.svc.Roots().Require(c.Session())
	if err != nil {
		c.handleOpError(err)
		return
	}

	dir, err := fileops.ResolveWithin(root, c.ctx.DefaultQuery("path", "."))
	if err != nil {
		c.handleOpError(err)
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		c.handleOpError(err)
		return
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		c.handleOpError(err)
		return
	}

	conn, err := watchUpgrader.Upgrade(c.ctx.Writer, c.ctx.Request, nil)
	if err != nil {
		watcher.Close()
		log.Error("WatchDirectory upgrade error: %v", err)
		return
	}

	log.Info("session %s watching %s", c.Session(), dir)
	safego.Go(func() { streamWatchEvents(conn, watcher) })
}

func streamWatchEvents(conn *websocket.Conn, watcher *fsnotify.Watcher) {
	defer conn.Close()
	defer watcher.Close()

	// Reads are discarded; their failure is the disconnect signal.
	closed := make(chan struct{})
	safego.Go(func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	ticker := time.NewTicker(watchPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			payload := watchEventOf(event)
			if err := conn.WriteJSON(payload); err != nil {
				log.Error("WatchDirectory write event error: %v", err)
				return
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Error("WatchDirectory watcher error: %v", err)
		}
	}
}

func watchEventOf(event fsnotify.Event) model.WatchEvent {
	return model.WatchEvent{
		Op:        strings.ToLower(event.Op.String()),
		Name:      event.Name,
		Timestamp: time.Now().UnixMilli(),
	}
}
