package board_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"laptudirm.com/x/chessbridge/pkg/board"
)

func TestStartLayout(t *testing.T) {
	position := board.New()

	tests := []struct {
		rank, file int
		want       board.Piece
	}{
		{0, 0, board.NewPiece(board.Rook, board.First)},
		{0, 1, board.NewPiece(board.Knight, board.First)},
		{0, 4, board.NewPiece(board.King, board.First)},
		{1, 3, board.NewPiece(board.Pawn, board.First)},
		{6, 5, board.NewPiece(board.Pawn, board.Second)},
		{7, 0, board.NewPiece(board.Rook, board.Second)},
		{7, 3, board.NewPiece(board.Queen, board.Second)},
		{7, 7, board.NewPiece(board.Rook, board.Second)},
		{3, 3, board.NoPiece},
	}

	for _, tt := range tests {
		if got := position.PieceAt(tt.rank, tt.file); got != tt.want {
			t.Errorf("PieceAt(%d, %d) = %v, want %v", tt.rank, tt.file, got, tt.want)
		}
	}
}

func TestSetPieceAt(t *testing.T) {
	position := board.New()
	queen := board.NewPiece(board.Queen, board.First)

	position.SetPieceAt(4, 4, queen)
	if got := position.PieceAt(4, 4); got != queen {
		t.Fatalf("PieceAt(4, 4) = %v, want %v", got, queen)
	}

	position.SetPieceAt(4, 4, board.NoPiece)
	if got := position.PieceAt(4, 4); !got.Empty() {
		t.Fatalf("PieceAt(4, 4) = %v after clearing, want empty", got)
	}
}

func TestOutOfRangeIsNoCell(t *testing.T) {
	position := board.New()
	before := *position

	for _, c := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {100, -100}} {
		if got := position.PieceAt(c[0], c[1]); !got.Empty() {
			t.Errorf("PieceAt(%d, %d) = %v, want empty", c[0], c[1], got)
		}

		position.SetPieceAt(c[0], c[1], board.NewPiece(board.King, board.Second))
	}

	if *position != before {
		t.Errorf("out of range SetPieceAt modified the position:\n%s", position)
	}
}

func TestCellNames(t *testing.T) {
	for index := 0; index < board.CellN; index++ {
		cell := board.CellAt(index)
		if cell.Index() != index {
			t.Fatalf("CellAt(%d).Index() = %d", index, cell.Index())
		}

		parsed, err := board.ParseCell(cell.String())
		if err != nil {
			t.Fatalf("ParseCell(%q): %v", cell.String(), err)
		}
		if parsed != cell {
			t.Fatalf("ParseCell(%q) = %v, want %v", cell.String(), parsed, cell)
		}
	}

	if got := (board.Cell{Rank: 1, File: 4}).String(); got != "e2" {
		t.Errorf("e2 cell renders as %q", got)
	}

	for _, bad := range []string{"", "e", "i1", "a9", "a0", "e2e4"} {
		if _, err := board.ParseCell(bad); !errors.Is(err, board.ErrInvalidCell) {
			t.Errorf("ParseCell(%q) error = %v, want ErrInvalidCell", bad, err)
		}
	}

	if board.CellAt(64).Valid() || board.CellAt(-1).Valid() {
		t.Error("CellAt accepted an out of range index")
	}
}

func TestParseMove(t *testing.T) {
	got, err := board.ParseMove("e2e4")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}

	want := board.Move{From: board.Cell{Rank: 1, File: 4}, To: board.Cell{Rank: 3, File: 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseMove(e2e4) mismatch (-want +got):\n%s", diff)
	}

	if got.String() != "e2e4" {
		t.Errorf("Move.String() = %q, want e2e4", got.String())
	}

	if _, err := board.ParseMove("a7a8q"); err != nil {
		t.Errorf("ParseMove with promotion letter: %v", err)
	}

	for _, bad := range []string{"", "e2", "e2e9", "z2e4", "0000", "e2e4x", "a7a8k", "a7a8Q"} {
		if _, err := board.ParseMove(bad); !errors.Is(err, board.ErrInvalidMove) {
			t.Errorf("ParseMove(%q) error = %v, want ErrInvalidMove", bad, err)
		}
	}
}

func TestString(t *testing.T) {
	want := "" +
		"r n b q k b n r \n" +
		"p p p p p p p p \n" +
		". . . . . . . . \n" +
		". . . . . . . . \n" +
		". . . . . . . . \n" +
		". . . . . . . . \n" +
		"P P P P P P P P \n" +
		"R N B Q K B N R \n"

	if diff := cmp.Diff(want, board.New().String()); diff != "" {
		t.Errorf("start position rendering mismatch (-want +got):\n%s", diff)
	}
}

func TestFromFEN(t *testing.T) {
	position, stm, err := board.FromFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("FromFEN(start): %v", err)
	}

	if stm != board.First {
		t.Errorf("side to move = %v, want first", stm)
	}

	if *position != *board.New() {
		t.Errorf("FromFEN(start) differs from New():\n%s", position)
	}

	position, stm, err = board.FromFEN("8/8/8/3k4/8/8/4P3/4K3 b - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}

	if stm != board.Second {
		t.Errorf("side to move = %v, want second", stm)
	}

	if got := position.PieceAt(4, 3); got != board.NewPiece(board.King, board.Second) {
		t.Errorf("d5 = %v, want k", got)
	}
	if got := position.PieceAt(1, 4); got != board.NewPiece(board.Pawn, board.First) {
		t.Errorf("e2 = %v, want P", got)
	}

	if _, _, err := board.FromFEN("not a fen"); err == nil {
		t.Error("FromFEN accepted a malformed string")
	}
}
