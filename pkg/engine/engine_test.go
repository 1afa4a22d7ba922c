package engine_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"laptudirm.com/x/chessbridge/pkg/board"
	"laptudirm.com/x/chessbridge/pkg/engine"
	"laptudirm.com/x/chessbridge/pkg/movegen"
)

func TestStartMoves(t *testing.T) {
	moves := engine.AllPseudoLegalMoves(board.New())
	if len(moves) != 40 {
		t.Fatalf("start position has %d pseudo-legal moves for both sides, want 40", len(moves))
	}

	first, ok := engine.SelectMove(board.New())
	if !ok {
		t.Fatal("SelectMove found no move in the start position")
	}

	if first.String() != "b1a3" {
		t.Errorf("SelectMove = %v, want b1a3", first)
	}

	if first != moves[0] {
		t.Errorf("SelectMove = %v, want the first generated move %v", first, moves[0])
	}
}

func TestMoveOrder(t *testing.T) {
	position := board.New()
	moves := engine.AllPseudoLegalMoves(position)

	var want []board.Move
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			from := board.Cell{Rank: rank, File: file}
			for _, to := range movegen.Generate(position, from) {
				want = append(want, board.Move{From: from, To: to})
			}
		}
	}

	if diff := cmp.Diff(want, moves); diff != "" {
		t.Errorf("move order mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(moves, engine.AllPseudoLegalMoves(position)); diff != "" {
		t.Errorf("move order not reproducible (-first +second):\n%s", diff)
	}
}

func TestSelectMoveEmpty(t *testing.T) {
	if m, ok := engine.SelectMove(board.Empty()); ok {
		t.Errorf("SelectMove on an empty board = %v, want none", m)
	}
}

func TestSelectMoveFor(t *testing.T) {
	m, ok := engine.SelectMoveFor(board.New(), board.Second)
	if !ok || m.String() != "a7a6" {
		t.Errorf("SelectMoveFor(second) = %v, %v, want a7a6", m, ok)
	}

	position := board.Empty()
	position.SetPieceAt(0, 0, board.NewPiece(board.King, board.First))
	if m, ok := engine.SelectMoveFor(position, board.Second); ok {
		t.Errorf("SelectMoveFor(second) = %v without second side pieces", m)
	}
}

func TestApplyMove(t *testing.T) {
	position := board.New()
	from, to := board.Cell{Rank: 0, File: 0}, board.Cell{Rank: 0, File: 1}
	moved := position.At(from)

	engine.ApplyMove(position, from, to)

	if got := position.At(to); got != moved {
		t.Errorf("target holds %v, want %v", got, moved)
	}
	if got := position.At(from); !got.Empty() {
		t.Errorf("source holds %v, want empty", got)
	}
}

func TestApplyMoveFromEmpty(t *testing.T) {
	position := board.New()
	empty, target := board.Cell{Rank: 4, File: 4}, board.Cell{Rank: 6, File: 4}

	engine.ApplyMove(position, empty, target)

	if got := position.At(target); !got.Empty() {
		t.Errorf("moving from an empty cell left %v on the target", got)
	}
}

func TestEngine(t *testing.T) {
	e := engine.New()

	snapshot := e.Position()
	e.ApplyMove(board.Cell{Rank: 1, File: 4}, board.Cell{Rank: 3, File: 4})
	if snapshot == e.Position() {
		t.Fatal("ApplyMove did not change the engine position")
	}
	if !snapshot.At(board.Cell{Rank: 3, File: 4}).Empty() {
		t.Fatal("snapshot changed along with the engine")
	}

	e.Reset()
	m, ok := e.BestMove()
	if !ok || m.String() != "b1a3" {
		t.Fatalf("BestMove = %v, %v, want b1a3", m, ok)
	}

	e.Play(m)
	if e.SideToMove() != board.Second {
		t.Errorf("side to move after Play = %v, want second", e.SideToMove())
	}

	m, ok = e.BestMove()
	if !ok || m.String() != "a7a6" {
		t.Errorf("second BestMove = %v, %v, want a7a6", m, ok)
	}

	if err := e.Load("4k3/8/8/8/8/8/8/4K3 b - - 0 1"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if e.SideToMove() != board.Second || len(e.AllPseudoLegalMoves()) != 10 {
		t.Errorf("after Load: side %v with %d moves, want second with 10", e.SideToMove(), len(e.AllPseudoLegalMoves()))
	}

	e.Board().SetPieceAt(0, 4, board.NoPiece)
	if got := len(e.AllPseudoLegalMoves()); got != 5 {
		t.Errorf("after removing e1 king: %d moves, want 5", got)
	}
}
