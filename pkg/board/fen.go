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

package board

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// StartFEN is the FEN of the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FromFEN loads the piece placement and side to move of a FEN string.
// Castling rights, en passant and the move clocks are parsed but dropped
// since the position model has no room for them.
func FromFEN(fen string) (position *Position, stm Side, err error) {
	if len(strings.Fields(fen)) != 6 {
		return nil, First, fmt.Errorf("board: fen %q: want 6 fields", fen)
	}

	// the fen parser panics on malformed placements
	defer func() {
		if r := recover(); r != nil {
			position, stm, err = nil, First, fmt.Errorf("board: fen %q: %v", fen, r)
		}
	}()

	parsed := dragontoothmg.ParseFen(fen)

	position = Empty()
	for index := 0; index < CellN; index++ {
		bit := uint64(1) << index
		switch {
		case parsed.White.All&bit != 0:
			position.cells[index] = NewPiece(kindOf(&parsed.White, bit), First)
		case parsed.Black.All&bit != 0:
			position.cells[index] = NewPiece(kindOf(&parsed.Black, bit), Second)
		}
	}

	stm = First
	if !parsed.Wtomove {
		stm = Second
	}

	return position, stm, nil
}

func kindOf(bb *dragontoothmg.Bitboards, bit uint64) Kind {
	switch {
	case bb.Pawns&bit != 0:
		return Pawn
	case bb.Knights&bit != 0:
		return Knight
	case bb.Bishops&bit != 0:
		return Bishop
	case bb.Rooks&bit != 0:
		return Rook
	case bb.Queens&bit != 0:
		return Queen
	case bb.Kings&bit != 0:
		return King
	default:
		return NoKind
	}
}
