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

// Package movegen enumerates pseudo-legal target cells for a single piece.
// Moves are checked against the movement and blocking pattern of the piece
// only: whether the mover's king is left in check is not considered, and
// castling, en passant and promotion are not generated.
package movegen

import "laptudirm.com/x/chessbridge/pkg/board"

// Generate returns the cells the piece on the given cell can move to. The
// result is empty if the cell is off the board or unoccupied.
func Generate(position *board.Position, cell board.Cell) []board.Cell {
	if !cell.Valid() {
		return nil
	}

	piece := position.At(cell)
	switch piece.Kind {
	case board.Pawn:
		return pawnTargets(position, cell, piece.Side)
	case board.Knight:
		return leaperTargets(position, cell, piece.Side, knightOffsets[:])
	case board.King:
		return leaperTargets(position, cell, piece.Side, kingOffsets[:])
	case board.Rook:
		return sliderTargets(position, cell, piece.Side, rookRays[:])
	case board.Bishop:
		return sliderTargets(position, cell, piece.Side, bishopRays[:])
	case board.Queen:
		return sliderTargets(position, cell, piece.Side, queenRays[:])
	default:
		return nil
	}
}

// direction is a (rank, file) step.
type direction struct{ dr, df int }

var (
	knightOffsets = [8]direction{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}

	kingOffsets = [8]direction{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}

	rookRays   = [4]direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopRays = [4]direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenRays  = [8]direction{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
)

// leaperTargets handles pieces which jump by fixed offsets. A target is
// included iff it is on the board and not held by a friendly piece.
func leaperTargets(position *board.Position, from board.Cell, side board.Side, offsets []direction) []board.Cell {
	targets := make([]board.Cell, 0, len(offsets))
	for _, d := range offsets {
		to := from.Offset(d.dr, d.df)
		if !to.Valid() {
			continue
		}

		if occupant := position.At(to); occupant.Empty() || occupant.Side != side {
			targets = append(targets, to)
		}
	}

	return targets
}

// sliderTargets walks each ray from the source cell. Empty cells are added
// and the walk goes on; an enemy piece is added and ends the walk; a
// friendly piece ends the walk without being added.
func sliderTargets(position *board.Position, from board.Cell, side board.Side, rays []direction) []board.Cell {
	var targets []board.Cell
	for _, d := range rays {
		for to := from.Offset(d.dr, d.df); to.Valid(); to = to.Offset(d.dr, d.df) {
			occupant := position.At(to)
			if occupant.Empty() {
				targets = append(targets, to)
				continue
			}

			if occupant.Side != side {
				targets = append(targets, to)
			}
			break
		}
	}

	return targets
}

// pawnTargets generates single and double pushes followed by the two
// diagonal captures. The double push checks only that its destination is
// empty; the cell it passes over is not looked at.
// TODO: decide whether a blocked intermediate cell should forbid the double
// push once a legality layer exists.
func pawnTargets(position *board.Position, from board.Cell, side board.Side) []board.Cell {
	forward, startRank := 1, 1
	if side == board.Second {
		forward, startRank = -1, 6
	}

	var targets []board.Cell

	if push := from.Offset(forward, 0); push.Valid() && !position.Occupied(push) {
		targets = append(targets, push)
	}

	if from.Rank == startRank {
		if double := from.Offset(2*forward, 0); double.Valid() && !position.Occupied(double) {
			targets = append(targets, double)
		}
	}

	for _, df := range [2]int{-1, 1} {
		capture := from.Offset(forward, df)
		if !capture.Valid() {
			continue
		}

		if occupant := position.At(capture); !occupant.Empty() && occupant.Side != side {
			targets = append(targets, capture)
		}
	}

	return targets
}
