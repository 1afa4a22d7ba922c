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

// Package oracle checks the moves played by engines against the full rules
// of chess, which the pseudo-legal generator of chessbridge does not know.
package oracle

import (
	"errors"
	"fmt"
	"strings"

	"laptudirm.com/x/mess/pkg/board"
	"laptudirm.com/x/mess/pkg/board/move"
	"laptudirm.com/x/mess/pkg/formats/fen"
)

// StartFEN is the position used when New is given an empty string.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	ErrIllegalMove = errors.New("oracle: illegal move")
	ErrNoBestMove  = errors.New("oracle: no bestmove found")
)

// Oracle tracks a game and the legal moves in its current position.
type Oracle struct {
	board *board.Board

	// legal moves of the current position, by lowercase UCI string
	legal map[string]move.Move
}

// New returns an oracle for the position described by fenstr.
func New(fenstr string) *Oracle {
	if fenstr == "" {
		fenstr = StartFEN
	}

	oracle := &Oracle{board: board.New(board.FEN(fen.FromString(fenstr)))}
	oracle.refresh()
	return oracle
}

// Legal reports whether mov, in UCI notation, is a legal move.
func (oracle *Oracle) Legal(mov string) bool {
	_, found := oracle.legal[strings.ToLower(mov)]
	return found
}

// MakeMove plays mov, which has to be legal.
func (oracle *Oracle) MakeMove(mov string) error {
	m, found := oracle.legal[strings.ToLower(mov)]
	if !found {
		return fmt.Errorf("%w %q", ErrIllegalMove, mov)
	}

	oracle.board.MakeMove(m)
	oracle.refresh()
	return nil
}

// FEN returns the FEN of the current position.
func (oracle *Oracle) FEN() string {
	fields := [6]string(oracle.board.FEN())
	return strings.Join(fields[:], " ")
}

func (oracle *Oracle) refresh() {
	moves := oracle.board.GenerateMoves(false)

	oracle.legal = make(map[string]move.Move, len(moves))
	for _, m := range moves {
		oracle.legal[strings.ToLower(m.String())] = m
	}
}

// BestMove extracts the move from the bestmove line of an engine's output.
func BestMove(output string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		words := strings.Fields(line)
		if len(words) >= 2 && words[0] == "bestmove" {
			return words[1], true
		}
	}

	return "", false
}

// Verdict describes the bestmove of an engine's output for a user.
func Verdict(output string) string {
	mov, found := BestMove(output)
	switch {
	case !found:
		return "no bestmove found"
	case New(StartFEN).Legal(mov):
		return mov + " is legal"
	default:
		return mov + " is illegal"
	}
}

// After plays the bestmove of an engine's output on the starting position
// and returns the FEN of the position reached.
func After(output string) (string, error) {
	mov, found := BestMove(output)
	if !found {
		return "", ErrNoBestMove
	}

	oracle := New(StartFEN)
	if err := oracle.MakeMove(mov); err != nil {
		return "", err
	}

	return oracle.FEN(), nil
}
