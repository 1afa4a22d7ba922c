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

package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/chessbridge/pkg/relay"
)

// shutdownGrace is how long serve waits for sessions to end on shutdown.
const shutdownGrace = 5 * time.Second

func Serve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Relay the configured engine to websocket clients",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`serve listens for websocket connections on /ws/ and gives
			every client its own engine. Each client is greeted, sent
			the engine's move from the starting position, and has its
			text messages echoed back until it disconnects.

			Interrupting serve ends every session and stops its engine.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if cmd.Flag("listen").Changed {
				config.Listen, _ = cmd.Flags().GetString("listen")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			server := &http.Server{
				Addr:    config.Listen,
				Handler: relay.New(config).Handler(),

				// sessions end with the server
				BaseContext: func(net.Listener) context.Context { return ctx },
			}

			go func() {
				<-ctx.Done()
				logrus.Info("Shutting down...")

				shutdown, cancel := context.WithTimeout(context.Background(), shutdownGrace)
				defer cancel()

				if err := server.Shutdown(shutdown); err != nil {
					logrus.WithError(err).Warn("Shutdown")
				}
			}()

			logrus.Infof("Listening on \x1b[33m%s\x1b[0m", config.Listen)

			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			return nil
		},
	}

	cmd.Flags().StringP("listen", "l", "", "Address to listen on")
	return cmd
}
