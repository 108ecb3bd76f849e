package board

// Move generation walks the mailbox with row/column deltas. Rows grow
// toward rank 1 (a8=0 layout), so white pawns move toward lower indices.

var (
	knightDeltas = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingDeltas   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	bishopDirs   = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	rookDirs     = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// GenerateLegalMoves returns every legal move in the position.
func (p *Position) GenerateLegalMoves() []Move {
	pseudo := p.generatePseudoLegal()
	legal := pseudo[:0]
	for _, m := range pseudo {
		if p.leavesKingSafe(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// IsLegal reports whether m is one of the position's legal moves.
func (p *Position) IsLegal(m Move) bool {
	for _, lm := range p.GenerateLegalMoves() {
		if lm == m {
			return true
		}
	}
	return false
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	return p.Attacked(p.KingSquare(p.White), !p.White)
}

// HasLegalMoves reports whether the side to move has at least one legal move.
func (p *Position) HasLegalMoves() bool {
	for _, m := range p.generatePseudoLegal() {
		if p.leavesKingSafe(m) {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is checkmated.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move is stalemated.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// leavesKingSafe reports whether playing m leaves the mover's king unattacked.
func (p *Position) leavesKingSafe(m Move) bool {
	next := *p
	next.Play(m)
	return !next.Attacked(next.KingSquare(p.White), !p.White)
}

// Attacked reports whether sq is attacked by the given side.
func (p *Position) Attacked(sq Square, byWhite bool) bool {
	if sq >= NoSquare {
		return false
	}
	row, col := sq.row(), sq.File()

	// Pawns. A white pawn attacks toward lower rows, so an attacker sits
	// one row below only in array terms: row+1.
	pawn := pieceFor('P', byWhite)
	prow := row + 1
	if !byWhite {
		prow = row - 1
	}
	for _, pcol := range [2]int{col - 1, col + 1} {
		if prow >= 0 && prow < 8 && pcol >= 0 && pcol < 8 && p.Squares[prow*8+pcol] == pawn {
			return true
		}
	}

	knight := pieceFor('N', byWhite)
	for _, d := range knightDeltas {
		r, c := row+d[0], col+d[1]
		if r >= 0 && r < 8 && c >= 0 && c < 8 && p.Squares[r*8+c] == knight {
			return true
		}
	}

	king := pieceFor('K', byWhite)
	for _, d := range kingDeltas {
		r, c := row+d[0], col+d[1]
		if r >= 0 && r < 8 && c >= 0 && c < 8 && p.Squares[r*8+c] == king {
			return true
		}
	}

	rook := pieceFor('R', byWhite)
	queen := pieceFor('Q', byWhite)
	for _, d := range rookDirs {
		for r, c := row+d[0], col+d[1]; r >= 0 && r < 8 && c >= 0 && c < 8; r, c = r+d[0], c+d[1] {
			pc := p.Squares[r*8+c]
			if pc == Empty {
				continue
			}
			if pc == rook || pc == queen {
				return true
			}
			break
		}
	}

	bishop := pieceFor('B', byWhite)
	for _, d := range bishopDirs {
		for r, c := row+d[0], col+d[1]; r >= 0 && r < 8 && c >= 0 && c < 8; r, c = r+d[0], c+d[1] {
			pc := p.Squares[r*8+c]
			if pc == Empty {
				continue
			}
			if pc == bishop || pc == queen {
				return true
			}
			break
		}
	}
	return false
}

func (p *Position) generatePseudoLegal() []Move {
	moves := make([]Move, 0, 64)
	mine := IsWhitePiece
	theirs := IsBlackPiece
	if !p.White {
		mine, theirs = theirs, mine
	}

	for sq := Square(0); sq < 64; sq++ {
		piece := p.Squares[sq]
		if piece == Empty || !mine(piece) {
			continue
		}
		switch upper(piece) {
		case 'P':
			moves = p.genPawnMoves(moves, sq, theirs)
		case 'N':
			moves = p.genStepMoves(moves, sq, knightDeltas[:], NotSpecial, theirs)
		case 'K':
			moves = p.genStepMoves(moves, sq, kingDeltas[:], KingMove, theirs)
		case 'B':
			moves = p.genSlideMoves(moves, sq, bishopDirs[:], theirs)
		case 'R':
			moves = p.genSlideMoves(moves, sq, rookDirs[:], theirs)
		case 'Q':
			moves = p.genSlideMoves(moves, sq, bishopDirs[:], theirs)
			moves = p.genSlideMoves(moves, sq, rookDirs[:], theirs)
		}
	}
	moves = p.genCastlingMoves(moves)
	return moves
}

func (p *Position) genStepMoves(moves []Move, sq Square, deltas [][2]int, special Special, theirs func(byte) bool) []Move {
	row, col := sq.row(), sq.File()
	for _, d := range deltas {
		r, c := row+d[0], col+d[1]
		if r < 0 || r > 7 || c < 0 || c > 7 {
			continue
		}
		dst := Square(r*8 + c)
		target := p.Squares[dst]
		if target == Empty {
			moves = append(moves, Move{Src: sq, Dst: dst, Special: special, Capture: Empty})
		} else if theirs(target) {
			moves = append(moves, Move{Src: sq, Dst: dst, Special: special, Capture: target})
		}
	}
	return moves
}

func (p *Position) genSlideMoves(moves []Move, sq Square, dirs [][2]int, theirs func(byte) bool) []Move {
	row, col := sq.row(), sq.File()
	for _, d := range dirs {
		for r, c := row+d[0], col+d[1]; r >= 0 && r < 8 && c >= 0 && c < 8; r, c = r+d[0], c+d[1] {
			dst := Square(r*8 + c)
			target := p.Squares[dst]
			if target == Empty {
				moves = append(moves, Move{Src: sq, Dst: dst, Special: NotSpecial, Capture: Empty})
				continue
			}
			if theirs(target) {
				moves = append(moves, Move{Src: sq, Dst: dst, Special: NotSpecial, Capture: target})
			}
			break
		}
	}
	return moves
}

func (p *Position) genPawnMoves(moves []Move, sq Square, theirs func(byte) bool) []Move {
	row, col := sq.row(), sq.File()

	forward := -1 // white pawns move toward row 0
	startRow, promoRow := 6, 1
	two := WPawn2Squares
	ep := WEnPassant
	if !p.White {
		forward = 1
		startRow, promoRow = 1, 6
		two = BPawn2Squares
		ep = BEnPassant
	}

	// Pushes.
	r := row + forward
	if r >= 0 && r < 8 {
		dst := Square(r*8 + col)
		if p.Squares[dst] == Empty {
			moves = appendPawnMove(moves, sq, dst, Empty, row == promoRow)
			if row == startRow {
				dst2 := Square((r+forward)*8 + col)
				if p.Squares[dst2] == Empty {
					moves = append(moves, Move{Src: sq, Dst: dst2, Special: two, Capture: Empty})
				}
			}
		}
		// Captures.
		for _, c := range [2]int{col - 1, col + 1} {
			if c < 0 || c > 7 {
				continue
			}
			dst := Square(r*8 + c)
			target := p.Squares[dst]
			if theirs(target) {
				moves = appendPawnMove(moves, sq, dst, target, row == promoRow)
			} else if dst == p.EnPassant {
				moves = append(moves, Move{Src: sq, Dst: dst, Special: ep, Capture: pieceFor('P', !p.White)})
			}
		}
	}
	return moves
}

func appendPawnMove(moves []Move, src, dst Square, capture byte, promotes bool) []Move {
	if !promotes {
		return append(moves, Move{Src: src, Dst: dst, Special: NotSpecial, Capture: capture})
	}
	for _, s := range [4]Special{PromotionQueen, PromotionRook, PromotionBishop, PromotionKnight} {
		moves = append(moves, Move{Src: src, Dst: dst, Special: s, Capture: capture})
	}
	return moves
}

func (p *Position) genCastlingMoves(moves []Move) []Move {
	if p.White {
		if p.WKCastle && p.Squares[F1] == Empty && p.Squares[G1] == Empty &&
			p.Squares[E1] == WhiteKing && p.Squares[H1] == WhiteRook &&
			!p.Attacked(E1, false) && !p.Attacked(F1, false) && !p.Attacked(G1, false) {
			moves = append(moves, Move{Src: E1, Dst: G1, Special: WKCastling, Capture: Empty})
		}
		if p.WQCastle && p.Squares[D1] == Empty && p.Squares[C1] == Empty && p.Squares[B1] == Empty &&
			p.Squares[E1] == WhiteKing && p.Squares[A1] == WhiteRook &&
			!p.Attacked(E1, false) && !p.Attacked(D1, false) && !p.Attacked(C1, false) {
			moves = append(moves, Move{Src: E1, Dst: C1, Special: WQCastling, Capture: Empty})
		}
	} else {
		if p.BKCastle && p.Squares[F8] == Empty && p.Squares[G8] == Empty &&
			p.Squares[E8] == BlackKing && p.Squares[H8] == BlackRook &&
			!p.Attacked(E8, true) && !p.Attacked(F8, true) && !p.Attacked(G8, true) {
			moves = append(moves, Move{Src: E8, Dst: G8, Special: BKCastling, Capture: Empty})
		}
		if p.BQCastle && p.Squares[D8] == Empty && p.Squares[C8] == Empty && p.Squares[B8] == Empty &&
			p.Squares[E8] == BlackKing && p.Squares[A8] == BlackRook &&
			!p.Attacked(E8, true) && !p.Attacked(D8, true) && !p.Attacked(C8, true) {
			moves = append(moves, Move{Src: E8, Dst: C8, Special: BQCastling, Capture: Empty})
		}
	}
	return moves
}
