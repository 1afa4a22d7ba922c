// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package relay

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Index is the text served at the root of the relay's HTTP handler.
const Index = "chessbridge relay: connect a websocket client to /ws/\n"

// Handler returns the relay's HTTP routes: a plain index at / and the
// websocket endpoint at /ws/.
func (relay *Relay) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, Index)
	})
	mux.Handle("/ws/", relay)
	return mux
}

// ServeHTTP upgrades the request to a websocket and serves a session on
// it for as long as the connection lasts.
func (relay *Relay) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := relay.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error
		logrus.WithError(err).WithField("remote", r.RemoteAddr).Debug("Websocket upgrade failed")
		return
	}

	if err := relay.Serve(r.Context(), NewConn(conn)); err != nil {
		logrus.WithError(err).WithField("remote", r.RemoteAddr).Warn("Session failed")
	}
}
