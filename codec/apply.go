package codec

import (
	"fmt"

	"github.com/movebyte/movebyte/board"
)

// applyMove advances the tracker tables, the square map and the board by
// one move. Encoder and decoder share it so both sides of the wire perform
// bit-identical state transitions: castling rook relocation, promotion
// piece mutation and shadow-rook attachment, capture cleanup, then the
// mover itself.
func (c *Codec) applyMove(mv board.Move) error {
	white := c.pos.White
	side, base := c.sideToMove()

	ref := c.squares[mv.Src]
	if ref == noLink {
		return fmt.Errorf("no tracker on %v", mv.Src)
	}
	if (ref >= 16) == white {
		return fmt.Errorf("tracker on %v belongs to the wrong side", mv.Src)
	}
	ptIdx := int8(ref) - base
	pt := &side[ptIdx]

	capturedSq := -1
	if c.pos.Squares[mv.Dst] >= 'A' {
		capturedSq = int(mv.Dst)
	}

	switch mv.Special {
	case board.WKCastling:
		rook := &c.white[tiKR]
		rook.sq = board.F1
		c.squares[board.F1] = tiKR
		c.squares[board.H1] = noLink
	case board.BKCastling:
		rook := &c.black[tiKR]
		rook.sq = board.F8
		c.squares[board.F8] = 16 + tiKR
		c.squares[board.H8] = noLink
	case board.WQCastling:
		rook := &c.white[tiQR]
		rook.sq = board.D1
		c.squares[board.D1] = tiQR
		c.squares[board.A1] = noLink
	case board.BQCastling:
		rook := &c.black[tiQR]
		rook.sq = board.D8
		c.squares[board.D8] = 16 + tiQR
		c.squares[board.A8] = noLink
	case board.PromotionQueen:
		pt.piece = pieceFor('Q', white)
		// Repurpose the highest free slot as a phantom rook handling the
		// new queen's rank and file moves. If every slot is live the
		// queen simply has no shadow and may need the two-byte escape.
		for i := 15; i >= 0; i-- {
			s := &side[i]
			if !s.inUse {
				pt.shadowRook = int8(i)
				s.inUse = true
				s.shadowOwner = ptIdx
				s.piece = pieceFor('R', white)
				break
			}
		}
	case board.PromotionRook:
		pt.piece = pieceFor('R', white)
	case board.PromotionBishop:
		pt.piece = pieceFor('B', white)
	case board.PromotionKnight:
		pt.piece = pieceFor('N', white)
	case board.WEnPassant:
		capturedSq = int(mv.Dst) + 8
	case board.BEnPassant:
		capturedSq = int(mv.Dst) - 8
	}

	if capturedSq >= 0 {
		if capRef := c.squares[capturedSq]; capRef != noLink {
			capSide, capIdx := c.arenaOf(capRef)
			capt := &capSide[capIdx]
			c.squares[capturedSq] = noLink
			if capt.shadowOwner != noLink {
				// A captured delegate stops serving its queen: the queen
				// loses this shadow and falls back to her remaining
				// delegates or the two-byte escape.
				owner := &capSide[capt.shadowOwner]
				if owner.shadowRank == int8(capIdx) {
					owner.shadowRank = noLink
				}
				if owner.shadowFile == int8(capIdx) {
					owner.shadowFile = noLink
				}
				if owner.shadowRook == int8(capIdx) {
					owner.shadowRook = noLink
				}
				capt.shadowOwner = noLink
			}
			capt.inUse = false
			if capt.piece == 'Q' || capt.piece == 'q' {
				// Tear down the dead queen's delegates. The phantom rook
				// exists only to serve this queen, so its slot frees for
				// reuse; the knight delegates are real pieces and stay
				// live.
				if capt.shadowRook != noLink {
					sh := &capSide[capt.shadowRook]
					sh.shadowOwner = noLink
					sh.inUse = false
				}
				if capt.shadowRank != noLink {
					capSide[capt.shadowRank].shadowOwner = noLink
				}
				if capt.shadowFile != noLink {
					capSide[capt.shadowFile].shadowOwner = noLink
				}
			}
		}
	}

	pt.sq = mv.Dst
	c.squares[mv.Src] = noLink
	c.squares[mv.Dst] = ref
	c.pos.Play(mv)
	return nil
}
