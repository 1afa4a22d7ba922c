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

import "strings"

// Position is the placement of pieces on the 64 cells of the board. It is
// mutated in place and retains no history. The zero value is an empty board.
type Position struct {
	cells [CellN]Piece
}

var backRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// New returns a position with the standard starting layout.
func New() *Position {
	var position Position
	for file, kind := range backRank {
		position.cells[file] = NewPiece(kind, First)
		position.cells[8+file] = NewPiece(Pawn, First)
		position.cells[48+file] = NewPiece(Pawn, Second)
		position.cells[56+file] = NewPiece(kind, Second)
	}

	return &position
}

// Empty returns a position with no pieces on it.
func Empty() *Position {
	return &Position{}
}

// PieceAt returns the piece on the given rank and file. Empty cells and
// coordinates off the board both yield NoPiece.
func (position *Position) PieceAt(rank, file int) Piece {
	return position.At(Cell{Rank: rank, File: file})
}

// SetPieceAt places the piece on the given rank and file, replacing any
// occupant. NoPiece clears the cell. Coordinates off the board are ignored.
func (position *Position) SetPieceAt(rank, file int, piece Piece) {
	position.Put(Cell{Rank: rank, File: file}, piece)
}

// At is the Cell form of PieceAt.
func (position *Position) At(cell Cell) Piece {
	if !cell.Valid() {
		return NoPiece
	}

	return position.cells[cell.Index()]
}

// Put is the Cell form of SetPieceAt.
func (position *Position) Put(cell Cell, piece Piece) {
	if !cell.Valid() {
		return
	}

	position.cells[cell.Index()] = piece
}

// Occupied reports whether a piece stands on the cell.
func (position *Position) Occupied(cell Cell) bool {
	return !position.At(cell).Empty()
}

// String renders the board with rank 8 at the top, one rank per line, using
// FEN piece letters and '.' for empty cells.
func (position *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sb.WriteString(position.PieceAt(rank, file).String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
