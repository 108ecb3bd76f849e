package board

import "testing"

func TestNewPosition(t *testing.T) {
	pos := NewPosition()
	if got := pos.FEN(); got != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1" {
		t.Fatalf("starting FEN = %q", got)
	}
	if pos.Squares[E1] != 'K' || pos.Squares[E8] != 'k' {
		t.Fatal("kings misplaced")
	}
	if pos.Squares[A8] != 'r' || pos.Squares[H1] != 'R' {
		t.Fatal("rooks misplaced")
	}
}

func TestPlaySpecials(t *testing.T) {
	t.Run("TwoSquareAdvance", func(t *testing.T) {
		pos := NewPosition()
		pos.Play(Move{Src: E2, Dst: E4, Special: WPawn2Squares, Capture: Empty})
		if pos.EnPassant != E3 {
			t.Errorf("en passant square = %v, want e3", pos.EnPassant)
		}
		if pos.White {
			t.Error("side to move did not flip")
		}
	})

	t.Run("Promotion", func(t *testing.T) {
		pos, err := ParseFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1")
		if err != nil {
			t.Fatal(err)
		}
		pos.Play(Move{Src: A7, Dst: A8, Special: PromotionQueen, Capture: Empty})
		if pos.Squares[A8] != 'Q' {
			t.Errorf("a8 = %q after promotion, want 'Q'", pos.Squares[A8])
		}
	})

	t.Run("EnPassantRemoval", func(t *testing.T) {
		moves, err := ParseGame(NewPosition(), "1.e4 a6 2.e5 d5 3.exd6")
		if err != nil {
			t.Fatal(err)
		}
		pos := NewPosition()
		for _, m := range moves {
			pos.Play(m)
		}
		if pos.Squares[D5] != Empty {
			t.Errorf("d5 = %q, want empty", pos.Squares[D5])
		}
		if pos.Squares[D6] != 'P' {
			t.Errorf("d6 = %q, want 'P'", pos.Squares[D6])
		}
	})

	t.Run("QueensideCastle", func(t *testing.T) {
		pos, err := ParseFEN("r3kbnr/pppqpppp/2np4/8/3P1B2/2N5/PPPQPPPP/R3KBNR w KQkq - 0 1")
		if err != nil {
			t.Fatal(err)
		}
		pos.Play(Move{Src: E1, Dst: C1, Special: WQCastling, Capture: Empty})
		if pos.Squares[C1] != 'K' || pos.Squares[D1] != 'R' || pos.Squares[A1] != Empty {
			t.Errorf("after O-O-O: c1=%q d1=%q a1=%q", pos.Squares[C1], pos.Squares[D1], pos.Squares[A1])
		}
	})
}

func TestSquareNumbering(t *testing.T) {
	// The a8=0 layout is part of the codec wire format.
	if A8 != 0 || H8 != 7 || A1 != 56 || H1 != 63 {
		t.Fatal("square numbering drifted from a8=0, h1=63")
	}
	if E4.String() != "e4" {
		t.Errorf("E4 renders as %q", E4.String())
	}
	sq, err := ParseSquare("h1")
	if err != nil || sq != H1 {
		t.Errorf("ParseSquare(h1) = %v, %v", sq, err)
	}
	if SquareOf(4, 3) != E4 {
		t.Errorf("SquareOf(4,3) = %v, want e4", SquareOf(4, 3))
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/P6k/8/8/8/8/8/K7 w - - 0 1",
		"rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Errorf("ParseFEN(%q): %v", fen, err)
			continue
		}
		if got := pos.FEN(); got != fen {
			t.Errorf("round trip %q -> %q", fen, got)
		}
	}
	if _, err := ParseFEN("not a fen"); err == nil {
		t.Error("parsing garbage succeeds")
	}
}
