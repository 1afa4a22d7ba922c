package oracle_test

import (
	"errors"
	"strings"
	"testing"

	"laptudirm.com/x/chessbridge/pkg/oracle"
)

func TestLegal(t *testing.T) {
	o := oracle.New("")

	for _, mov := range []string{"e2e4", "g1f3", "b1a3", "E2E3"} {
		if !o.Legal(mov) {
			t.Errorf("%s should be legal at the start", mov)
		}
	}

	for _, mov := range []string{"e2e5", "a1a3", "e1g1", "e7e5", "", "0000"} {
		if o.Legal(mov) {
			t.Errorf("%s should be illegal at the start", mov)
		}
	}
}

func TestMakeMove(t *testing.T) {
	o := oracle.New(oracle.StartFEN)

	if err := o.MakeMove("e2e4"); err != nil {
		t.Fatalf("MakeMove(e2e4): %v", err)
	}

	if !o.Legal("e7e5") {
		t.Error("e7e5 should be legal after e2e4")
	}

	if err := o.MakeMove("e4e5"); !errors.Is(err, oracle.ErrIllegalMove) {
		t.Errorf("MakeMove(e4e5) with black to move: error = %v, want ErrIllegalMove", err)
	}

	if fen := o.FEN(); !strings.HasPrefix(fen, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b") {
		t.Errorf("FEN after e2e4 = %q", fen)
	}
}

func TestBestMove(t *testing.T) {
	output := "info depth 1 score cp 20 pv e2e4\nbestmove e2e4 ponder e7e5\n"

	mov, found := oracle.BestMove(output)
	if !found || mov != "e2e4" {
		t.Errorf("BestMove = %q, %v, want e2e4", mov, found)
	}

	if _, found := oracle.BestMove("info string bestmove soon\n"); found {
		t.Error("BestMove matched a line not starting with bestmove")
	}
}

func TestVerdict(t *testing.T) {
	tests := map[string]string{
		"bestmove e2e4\n":           "e2e4 is legal",
		"bestmove e2e5\n":           "e2e5 is illegal",
		"info depth 1\nreadyok\n":   "no bestmove found",
		"bestmove b1a3 ponder a7a6": "b1a3 is legal",
	}

	for output, want := range tests {
		if got := oracle.Verdict(output); got != want {
			t.Errorf("Verdict(%q) = %q, want %q", output, got, want)
		}
	}
}

func TestAfter(t *testing.T) {
	fen, err := oracle.After("info depth 1\nbestmove g1f3\n")
	if err != nil {
		t.Fatalf("After: %v", err)
	}

	if !strings.HasPrefix(fen, "rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b") {
		t.Errorf("FEN after g1f3 = %q", fen)
	}

	if _, err := oracle.After("bestmove e2e5\n"); !errors.Is(err, oracle.ErrIllegalMove) {
		t.Errorf("After(e2e5) error = %v, want ErrIllegalMove", err)
	}

	if _, err := oracle.After("readyok\n"); !errors.Is(err, oracle.ErrNoBestMove) {
		t.Errorf("After without bestmove: error = %v, want ErrNoBestMove", err)
	}
}
