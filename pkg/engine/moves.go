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

// Package engine is a facade over the position model and the move generator.
// It enumerates every pseudo-legal move of a position, picks one to play and
// applies moves to the position.
package engine

import (
	"laptudirm.com/x/chessbridge/pkg/board"
	"laptudirm.com/x/chessbridge/pkg/movegen"
)

// AllPseudoLegalMoves concatenates the generator output of every cell,
// visiting cells rank by rank and, inside a rank, file by file. The order is
// deterministic.
func AllPseudoLegalMoves(position *board.Position) []board.Move {
	var moves []board.Move
	for index := 0; index < board.CellN; index++ {
		from := board.CellAt(index)
		for _, to := range movegen.Generate(position, from) {
			moves = append(moves, board.Move{From: from, To: to})
		}
	}

	return moves
}

// SelectMove returns the first move of AllPseudoLegalMoves, regardless of
// which side owns the moving piece. This is a placeholder policy and not a
// search: any replacement must document its own policy. ok is false when
// the position has no moves.
func SelectMove(position *board.Position) (m board.Move, ok bool) {
	moves := AllPseudoLegalMoves(position)
	if len(moves) == 0 {
		return board.Move{}, false
	}

	return moves[0], true
}

// SelectMoveFor is SelectMove restricted to the pieces of side.
func SelectMoveFor(position *board.Position, side board.Side) (m board.Move, ok bool) {
	for _, candidate := range AllPseudoLegalMoves(position) {
		if position.At(candidate.From).Side == side {
			return candidate, true
		}
	}

	return board.Move{}, false
}

// ApplyMove moves whatever stands on from to to and clears from. Nothing is
// validated: if from is empty, to is emptied as well.
func ApplyMove(position *board.Position, from, to board.Cell) {
	piece := position.At(from)
	position.Put(from, board.NoPiece)
	position.Put(to, piece)
}
