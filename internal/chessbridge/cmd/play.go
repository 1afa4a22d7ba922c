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
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/chessbridge/internal/util"
	"laptudirm.com/x/chessbridge/pkg/oracle"
	"laptudirm.com/x/chessbridge/pkg/uci"
)

func Play() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Ask the configured engine for one move",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`play starts the configured engine, asks it for a move from
			the starting position, and prints everything the engine said
			while searching followed by whether its move is legal and,
			if it is, the position the move leads to.

			The engine is stopped as soon as the move arrives.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if cmd.Flag("depth").Changed {
				config.Engine.Depth, _ = cmd.Flags().GetInt("depth")
			}

			adapter, err := uci.Start(config.Engine)
			if err != nil {
				return err
			}

			defer func() {
				if err := adapter.Stop(); err != nil {
					logrus.Error(err)
				}
			}()

			logrus.Infof("Asking \x1b[33m%s\x1b[0m for a move...", adapter.Name())

			util.StartSpinner()
			result, err := adapter.RunOneGame()
			util.PauseSpinner()

			if err != nil {
				return err
			}

			fmt.Print(result)
			fmt.Println(oracle.Verdict(result))

			if fen, err := oracle.After(result); err == nil {
				fmt.Println("Position after the move:", fen)
			}

			return nil
		},
	}

	cmd.Flags().IntP("depth", "d", uci.DefaultDepth, "Search depth sent to the engine")
	return cmd
}
