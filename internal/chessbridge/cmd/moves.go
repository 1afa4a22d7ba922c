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
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/chessbridge/pkg/board"
	"laptudirm.com/x/chessbridge/pkg/movegen"
)

func Moves() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moves [cell...]",
		Short: "List the pseudo-legal moves of pieces",
		Long: heredoc.Doc(`moves prints the board and lists the cells each of the given
			pieces can move to, ignoring checks, castling, en passant and
			promotion.

			Cells are named in algebraic notation, like e2. When no cells
			are given, the moves of every piece on the board are listed.
			The position is the standard starting position unless one is
			given in Forsyth-Edwards Notation with --fen.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			fen, _ := cmd.Flags().GetString("fen")

			position := board.New()
			if fen != "" {
				var err error
				if position, _, err = board.FromFEN(fen); err != nil {
					return err
				}
			}

			cells := make([]board.Cell, 0, len(args))
			for _, arg := range args {
				cell, err := board.ParseCell(arg)
				if err != nil {
					return err
				}

				cells = append(cells, cell)
			}

			if len(cells) == 0 {
				for index := 0; index < board.CellN; index++ {
					if cell := board.CellAt(index); position.Occupied(cell) {
						cells = append(cells, cell)
					}
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, position)

			for _, cell := range cells {
				targets := movegen.Generate(position, cell)

				names := make([]string, len(targets))
				for i, target := range targets {
					names[i] = target.String()
				}

				fmt.Fprintf(out, "\x1b[34m%s\x1b[0m %s: %s\n", cell, position.At(cell), strings.Join(names, " "))
			}

			return nil
		},
	}

	cmd.Flags().String("fen", "", "Position to generate moves in")
	return cmd
}
