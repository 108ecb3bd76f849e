package board

import "strings"

// Position is a mailbox chess position. Squares holds one piece character
// per square (see piece.go), indexed a8=0 .. h1=63. White is true when it
// is white's turn to move.
type Position struct {
	Squares [64]byte
	White   bool

	// Castling rights.
	WKCastle bool
	WQCastle bool
	BKCastle bool
	BQCastle bool

	// EnPassant is the square a capturing pawn would land on after the
	// opponent's two-square advance, or NoSquare.
	EnPassant Square

	HalfmoveClock  int
	FullmoveNumber int
}

const startRanks = "rnbqkbnrpppppppp                                PPPPPPPPRNBQKBNR"

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	p := &Position{
		White:          true,
		WKCastle:       true,
		WQCastle:       true,
		BKCastle:       true,
		BQCastle:       true,
		EnPassant:      NoSquare,
		FullmoveNumber: 1,
	}
	copy(p.Squares[:], startRanks)
	return p
}

// Copy returns a deep copy of the position.
func (p *Position) Copy() *Position {
	q := *p
	return &q
}

// PieceAt returns the piece character on sq.
func (p *Position) PieceAt(sq Square) byte {
	return p.Squares[sq]
}

// IsEmpty reports whether sq holds no piece.
func (p *Position) IsEmpty(sq Square) bool {
	return p.Squares[sq] == Empty
}

// KingSquare returns the square of the given side's king, or NoSquare if it
// is missing (only possible on hand-built positions).
func (p *Position) KingSquare(white bool) Square {
	king := pieceFor('K', white)
	for sq := Square(0); sq < 64; sq++ {
		if p.Squares[sq] == king {
			return sq
		}
	}
	return NoSquare
}

// Play applies a move to the position. The move must be legal; Play performs
// no validation. The Special tag drives castling rook movement, en passant
// removal, and promotion.
func (p *Position) Play(m Move) {
	piece := p.Squares[m.Src]
	capture := p.Squares[m.Dst] != Empty
	ep := NoSquare

	switch m.Special {
	case WKCastling:
		p.Squares[F1] = WhiteRook
		p.Squares[H1] = Empty
	case WQCastling:
		p.Squares[D1] = WhiteRook
		p.Squares[A1] = Empty
	case BKCastling:
		p.Squares[F8] = BlackRook
		p.Squares[H8] = Empty
	case BQCastling:
		p.Squares[D8] = BlackRook
		p.Squares[A8] = Empty
	case WEnPassant:
		p.Squares[m.Dst+8] = Empty
		capture = true
	case BEnPassant:
		p.Squares[m.Dst-8] = Empty
		capture = true
	case WPawn2Squares:
		ep = m.Src - 8
	case BPawn2Squares:
		ep = m.Src + 8
	case PromotionQueen, PromotionRook, PromotionBishop, PromotionKnight:
		piece = pieceFor(m.promotionLetter(), p.White)
	}

	p.Squares[m.Dst] = piece
	p.Squares[m.Src] = Empty

	// Castling rights lapse when the king or a rook moves, or when a rook
	// is captured on its home square.
	for _, sq := range [2]Square{m.Src, m.Dst} {
		switch sq {
		case E1:
			p.WKCastle, p.WQCastle = false, false
		case H1:
			p.WKCastle = false
		case A1:
			p.WQCastle = false
		case E8:
			p.BKCastle, p.BQCastle = false, false
		case H8:
			p.BKCastle = false
		case A8:
			p.BQCastle = false
		}
	}

	if piece == WhitePawn || piece == BlackPawn || m.IsPromotion() || capture {
		p.HalfmoveClock = 0
	} else {
		p.HalfmoveClock++
	}
	if !p.White {
		p.FullmoveNumber++
	}
	p.EnPassant = ep
	p.White = !p.White
}

// String returns a printable board diagram.
func (p *Position) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		sb.WriteByte(byte('8' - row))
		sb.WriteByte(' ')
		for col := 0; col < 8; col++ {
			c := p.Squares[row*8+col]
			if c == Empty {
				c = '.'
			}
			sb.WriteByte(c)
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
