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
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/chessbridge/pkg/config"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "chessbridge",
		Short: "Chess move generation and a bridge to UCI engines",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`chessbridge generates pseudo-legal chess moves and connects
			UCI engines to the outside world.

			Use moves to inspect the generator, play to ask the configured
			engine for a move, serve to relay the engine to websocket
			clients, and engine to run the built-in engine over UCI.

			The engine, relay address and keepalive interval are read from
			the configuration file, which is created with defaults in the
			user's configuration directory unless --config names another.`),

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("version", "v", false, "Show Chessbridge's Version")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	root.PersistentFlags().StringP("config", "c", "", "Configuration file to use")

	versionStr := "v0.1.0\n"
	root.SetVersionTemplate(versionStr)
	root.Version = versionStr

	// Register the various commands.
	root.AddCommand(Moves())
	root.AddCommand(Play())
	root.AddCommand(Serve())
	root.AddCommand(Engine())

	return root
}

// loadConfig loads the file named by the --config flag, or the default
// configuration file when the flag is not set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}

	return config.Load(path)
}
