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

package engine

import "laptudirm.com/x/chessbridge/pkg/board"

// Engine owns a position and the side to move in it.
type Engine struct {
	position   board.Position
	sideToMove board.Side
}

// New returns an engine set up at the standard starting position.
func New() *Engine {
	var engine Engine
	engine.Reset()
	return &engine
}

// Reset returns the engine to the standard starting position.
func (engine *Engine) Reset() {
	engine.position = *board.New()
	engine.sideToMove = board.First
}

// Load replaces the position with the one described by fen.
func (engine *Engine) Load(fen string) error {
	position, stm, err := board.FromFEN(fen)
	if err != nil {
		return err
	}

	engine.position, engine.sideToMove = *position, stm
	return nil
}

// Position returns a snapshot of the current position.
func (engine *Engine) Position() board.Position {
	return engine.position
}

// Board gives direct access to the position for query and rendering
// collaborators. Changes made through it are seen by the engine.
func (engine *Engine) Board() *board.Position {
	return &engine.position
}

// SideToMove returns the side whose turn it is.
func (engine *Engine) SideToMove() board.Side {
	return engine.sideToMove
}

func (engine *Engine) AllPseudoLegalMoves() []board.Move {
	return AllPseudoLegalMoves(&engine.position)
}

func (engine *Engine) SelectMove() (board.Move, bool) {
	return SelectMove(&engine.position)
}

// BestMove selects a move for the side to move.
func (engine *Engine) BestMove() (board.Move, bool) {
	return SelectMoveFor(&engine.position, engine.sideToMove)
}

func (engine *Engine) ApplyMove(from, to board.Cell) {
	ApplyMove(&engine.position, from, to)
}

// Play applies the move and passes the turn to the other side.
func (engine *Engine) Play(m board.Move) {
	engine.ApplyMove(m.From, m.To)
	engine.sideToMove = engine.sideToMove.Other()
}
