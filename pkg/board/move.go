package board

import (
	"errors"
	"fmt"
	"strings"
)

// Move is a relocation from one cell to another. It carries no capture flag
// and no promotion payload.
type Move struct {
	From, To Cell
}

// NullMove is the UCI spelling of "no move".
const NullMove = "0000"

// String returns the move in UCI long algebraic notation, like e2e4.
func (m Move) String() string {
	return m.From.String() + m.To.String()
}

var ErrInvalidMove = errors.New("board: invalid move")

// ParseMove parses a move in UCI long algebraic notation. A trailing
// promotion letter (n, b, r or q) is accepted and discarded.
func ParseMove(text string) (Move, error) {
	if len(text) != 4 && len(text) != 5 {
		return Move{}, fmt.Errorf("%w %q", ErrInvalidMove, text)
	}

	from, err := ParseCell(text[:2])
	if err != nil {
		return Move{}, fmt.Errorf("%w %q", ErrInvalidMove, text)
	}

	to, err := ParseCell(text[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("%w %q", ErrInvalidMove, text)
	}

	if len(text) == 5 && !strings.ContainsRune("nbrq", rune(text[4])) {
		return Move{}, fmt.Errorf("%w %q: bad promotion", ErrInvalidMove, text)
	}

	return Move{From: from, To: to}, nil
}
