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

// Package board implements the position model: a mailbox of 64 cells, each
// holding at most one piece, along with the cell, piece and move types used
// throughout chessbridge.
package board

import (
	"errors"
	"fmt"
)

// Cell identifies a square of the board by its rank and file, both of which
// are zero based. Cells outside the 0..7 range are representable but never
// refer to a square; every accessor treats them as "no cell".
type Cell struct {
	Rank, File int
}

// NoCell is returned in place of a cell when none exists.
var NoCell = Cell{-1, -1}

// CellAt returns the cell with the given packed index (rank*8 + file).
func CellAt(index int) Cell {
	if index < 0 || index >= CellN {
		return NoCell
	}

	return Cell{Rank: index / 8, File: index % 8}
}

// CellN is the number of cells on the board.
const CellN = 64

// Valid reports whether the cell lies on the board.
func (c Cell) Valid() bool {
	return c.Rank >= 0 && c.Rank < 8 && c.File >= 0 && c.File < 8
}

// Index returns the packed index of the cell, or -1 for an off-board cell.
func (c Cell) Index() int {
	if !c.Valid() {
		return -1
	}

	return c.Rank*8 + c.File
}

// Offset returns the cell reached by moving dr ranks and df files. The
// result may be off the board.
func (c Cell) Offset(dr, df int) Cell {
	return Cell{Rank: c.Rank + dr, File: c.File + df}
}

// String returns the algebraic name of the cell, like e4.
func (c Cell) String() string {
	if !c.Valid() {
		return "-"
	}

	return string([]byte{byte('a' + c.File), byte('1' + c.Rank)})
}

var ErrInvalidCell = errors.New("board: invalid cell")

// ParseCell parses an algebraic cell name like e4.
func ParseCell(name string) (Cell, error) {
	if len(name) != 2 {
		return NoCell, fmt.Errorf("%w %q", ErrInvalidCell, name)
	}

	cell := Cell{Rank: int(name[1]) - '1', File: int(name[0]) - 'a'}
	if !cell.Valid() {
		return NoCell, fmt.Errorf("%w %q", ErrInvalidCell, name)
	}

	return cell, nil
}
