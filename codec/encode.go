package codec

import (
	"fmt"

	"github.com/movebyte/movebyte/board"
)

// Encode compresses one move into out, which must hold at least two bytes,
// and returns the number of bytes written (1, or 2 for the queen escape).
// The move must be legal in the codec's current position; the codec is
// undefined on illegal or out-of-order moves.
func (c *Codec) Encode(mv board.Move, out []byte) (int, error) {
	if len(out) < 2 {
		return 0, fmt.Errorf("encode %v: need a 2 byte buffer, got %d", mv, len(out))
	}
	src, dst := int(mv.Src), int(mv.Dst)
	if src < 0 || src > 63 || dst < 0 || dst > 63 {
		return 0, fmt.Errorf("encode %v: square out of range", mv)
	}

	side, base := c.sideToMove()
	ref := c.squares[mv.Src]
	if ref == noLink || (ref >= 16) == c.pos.White {
		return 0, fmt.Errorf("encode %v: no tracker of the side to move on %v", mv, mv.Src)
	}
	pt := &side[ref-base]
	if pt.piece != c.pos.Squares[mv.Src] {
		return 0, fmt.Errorf("encode %v: tracker piece %q disagrees with board %q",
			mv, pt.piece, c.pos.Squares[mv.Src])
	}

	trackerID := int(ref - base)
	code := 0
	nbytes := 1

	switch {
	case mv.Special == board.WKCastling:
		code = codeKWKCastling
	case mv.Special == board.BKCastling:
		code = codeKBKCastling
	case mv.Special == board.WQCastling:
		code = codeKWQCastling
	case mv.Special == board.BQCastling:
		code = codeKBQCastling
	default:
		switch pt.piece {
		case 'P':
			if src-dst == 16 {
				code = 3 // two square advance
			} else {
				code = promotionBits(mv.Special) + (src - dst - 7)
			}
		case 'p':
			if dst-src == 16 {
				code = 3
			} else {
				code = promotionBits(mv.Special) + (dst - src - 7)
			}
		case 'K', 'k':
			k, ok := kingCodeFor(src - dst)
			if !ok {
				return 0, fmt.Errorf("encode %v: impossible king step", mv)
			}
			code = int(k)
		case 'N', 'n':
			n, ok := knightCodeFor(src - dst)
			if !ok {
				return 0, fmt.Errorf("encode %v: impossible knight jump", mv)
			}
			code = int(n)
		case 'R', 'r':
			if src&7 == dst&7 { // same file, encode the new rank
				code = codeSameFile | (dst>>3)&7
			} else { // same rank, encode the new file
				code = dst & 7
			}
		case 'B', 'b':
			code = diagonalCode(src, dst)
		case 'Q', 'q':
			switch {
			case src&7 == dst&7: // file move
				if pt.shadowRook != noLink {
					code = codeSameFile | (dst>>3)&7
					trackerID = int(pt.shadowRook)
				} else if pt.shadowRank != noLink {
					code = codeNShadow | (dst>>3)&7
					trackerID = int(pt.shadowRank)
				} else {
					// No delegate left: two bytes, flagged as a
					// zero-distance fall.
					code = codeFall | src&7
					nbytes = 2
				}
			case src&0x38 == dst&0x38: // rank move
				if pt.shadowRook != noLink {
					code = dst & 7
					trackerID = int(pt.shadowRook)
				} else if pt.shadowFile != noLink {
					code = codeNShadow | dst&7
					trackerID = int(pt.shadowFile)
				} else {
					code = codeFall | src&7
					nbytes = 2
				}
			default:
				code = diagonalCode(src, dst)
			}
		default:
			return 0, fmt.Errorf("encode %v: unexpected piece %q", mv, pt.piece)
		}
	}

	if err := c.applyMove(mv); err != nil {
		return 0, fmt.Errorf("encode %v: %w", mv, err)
	}
	if c.Debug && !c.Check("after encode") {
		return 0, c.checkErr(fmt.Sprintf("after encoding %v", mv))
	}

	out[0] = byte(trackerID<<4 | code)
	if nbytes == 2 {
		out[1] = byte(escapeMarker | dst&0x3f)
	}
	return nbytes, nil
}

// diagonalCode encodes a bishop-style move: FALL for index deltas divisible
// by 9, RISE otherwise, plus the destination file. The two cases are
// disjoint for legal moves because their least common multiple, 63, is the
// full a8-h1 diagonal.
func diagonalCode(src, dst int) int {
	abs := src - dst
	if abs < 0 {
		abs = -abs
	}
	if abs%9 == 0 {
		return codeFall | dst&7
	}
	return dst & 7
}

// promotionBits returns the pawn promotion bits for a special tag, zero for
// non-promotions.
func promotionBits(s board.Special) int {
	switch s {
	case board.PromotionQueen:
		return codePromotionQueen
	case board.PromotionRook:
		return codePromotionRook
	case board.PromotionBishop:
		return codePromotionBishop
	case board.PromotionKnight:
		return codePromotionKnight
	}
	return 0
}
