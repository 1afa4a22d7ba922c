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

// Kind is the kind of a chess piece, irrespective of its side.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindLetters = [...]byte{
	NoKind: '.',
	Pawn:   'p',
	Knight: 'n',
	Bishop: 'b',
	Rook:   'r',
	Queen:  'q',
	King:   'k',
}

// String returns the lowercase letter of the kind.
func (kind Kind) String() string {
	if int(kind) >= len(kindLetters) {
		return "?"
	}

	return string(kindLetters[kind])
}

// Side is one of the two players. First moves up the board (towards rank
// 7) and is white's analog; Second moves down the board.
type Side uint8

const (
	First Side = iota
	Second
)

// SideN is the number of sides.
const SideN = 2

// Other returns the opposing side.
func (side Side) Other() Side {
	return side ^ 1
}

func (side Side) String() string {
	switch side {
	case First:
		return "first"
	case Second:
		return "second"
	default:
		return "?"
	}
}

// Piece is a kind of piece belonging to a side. The zero value is NoPiece,
// which marks an empty cell.
type Piece struct {
	Kind Kind
	Side Side
}

// NoPiece is the value of an empty cell.
var NoPiece = Piece{}

// NewPiece returns a piece of the given kind and side.
func NewPiece(kind Kind, side Side) Piece {
	return Piece{Kind: kind, Side: side}
}

// Empty reports whether the piece is NoPiece.
func (p Piece) Empty() bool {
	return p.Kind == NoKind
}

// String returns the FEN letter of the piece: uppercase for First,
// lowercase for Second, and '.' for an empty cell.
func (p Piece) String() string {
	if p.Empty() {
		return "."
	}

	letter := kindLetters[p.Kind]
	if p.Side == First {
		letter -= 'a' - 'A'
	}

	return string(letter)
}
