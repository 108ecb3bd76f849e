package codec

import (
	"fmt"

	"github.com/movebyte/movebyte/board"
)

// Decode reads one move from in, advances the codec state exactly as the
// encoder did, and returns the move and the number of bytes consumed.
func (c *Codec) Decode(in []byte) (board.Move, int, error) {
	mv, n, err := c.peekMove(in)
	if err != nil {
		return board.Move{}, 0, err
	}
	if err := c.applyMove(mv); err != nil {
		return board.Move{}, 0, fmt.Errorf("decode %#02x: %w", in[0], err)
	}
	if c.Debug && !c.Check("after decode") {
		return board.Move{}, 0, c.checkErr(fmt.Sprintf("after decoding %v", mv))
	}
	return mv, n, nil
}

// Peek decodes one move without mutating any state. It is the canonical
// lookup for inspecting a move mid-stream.
func (c *Codec) Peek(in []byte) (board.Move, error) {
	mv, _, err := c.peekMove(in)
	return mv, err
}

// peekMove computes the move a byte (or byte pair) denotes against the
// current trackers and board. Read-only.
func (c *Codec) peekMove(in []byte) (board.Move, int, error) {
	if len(in) == 0 {
		return board.Move{}, 0, fmt.Errorf("decode: empty input")
	}
	val := in[0]
	lo := int(val & 0x0f)
	hi := int(val>>4) & 0x0f

	side, _ := c.sideToMove()
	pt := &side[hi]
	src := int(pt.sq)
	dst := -1
	special := board.NotSpecial
	nbytes := 1

	if pt.shadowOwner != noLink {
		queen := &side[pt.shadowOwner]
		switch {
		case queen.shadowRook != noLink:
			// This slot is the queen's phantom rook: the byte is a
			// rook-like rank or file move of the queen.
			src = int(queen.sq)
			if lo&codeSameFile != 0 {
				dst = (lo<<3)&0x38 | src&7
			} else {
				dst = src&0x38 | lo&7
			}
		case lo&codeNShadow != 0:
			// Shadowed knight code: rank change via the king knight,
			// file change via the queen knight (fixed at init).
			src = int(queen.sq)
			if hi == tiKN {
				dst = (lo<<3)&0x38 | src&7
			} else {
				dst = src&0x38 | lo&7
			}
		default:
			// The knight's own move.
			dst = src - knightVectorDelta[lo&7]
		}
	} else {
		if !pt.inUse {
			return board.Move{}, 0, fmt.Errorf("decode %#02x: tracker %d is dead", val, hi)
		}
		switch pt.piece {
		case 'N', 'n':
			if lo&codeNShadow != 0 {
				return board.Move{}, 0, fmt.Errorf("decode %#02x: shadow bit on an unshadowed knight", val)
			}
			dst = src - knightVectorDelta[lo]
		case 'K', 'k':
			special = board.KingMove
			switch byte(lo) {
			case codeKWKCastling:
				special = board.WKCastling
				dst = int(board.G1)
			case codeKBKCastling:
				special = board.BKCastling
				dst = int(board.G8)
			case codeKWQCastling:
				special = board.WQCastling
				dst = int(board.C1)
			case codeKBQCastling:
				special = board.BQCastling
				dst = int(board.C8)
			default:
				delta, ok := kingDeltaFor(byte(lo))
				if !ok {
					return board.Move{}, 0, fmt.Errorf("decode %#02x: bad king code", val)
				}
				dst = src - delta
			}
		case 'Q', 'q', 'B', 'b':
			fileDelta := lo&7 - src&7
			if lo&codeFall != 0 {
				if fileDelta == 0 {
					// Zero-distance fall: the two-byte queen escape.
					if len(in) < 2 {
						return board.Move{}, 0, fmt.Errorf("decode %#02x: truncated two-byte escape", val)
					}
					dst = int(in[1] & 0x3f)
					nbytes = 2
				} else {
					dst = src + 9*fileDelta
				}
			} else {
				if fileDelta == 0 {
					return board.Move{}, 0, fmt.Errorf("decode %#02x: zero-distance rise", val)
				}
				dst = src - 7*fileDelta
			}
		case 'R', 'r':
			if lo&codeSameFile != 0 {
				dst = (lo<<3)&0x38 | src&7
			} else {
				dst = src&0x38 | lo&7
			}
		case 'P':
			if src&0x38 == 0x08 { // a7-h7: every move from here promotes
				special = promotionSpecial(lo)
			}
			if lo&3 == 3 {
				special = board.WPawn2Squares
				dst = src - 16
			} else {
				dst = src - (lo & 3) - 7
				if lo&1 == 0 && dst >= 0 && dst+8 < 64 &&
					c.pos.Squares[dst] == board.Empty && c.pos.Squares[dst+8] == 'p' {
					special = board.WEnPassant
				}
			}
		case 'p':
			if src&0x38 == 0x30 { // a2-h2
				special = promotionSpecial(lo)
			}
			if lo&3 == 3 {
				special = board.BPawn2Squares
				dst = src + 16
			} else {
				dst = src + (lo & 3) + 7
				if lo&1 == 0 && dst < 64 && dst-8 >= 0 &&
					c.pos.Squares[dst] == board.Empty && c.pos.Squares[dst-8] == 'P' {
					special = board.BEnPassant
				}
			}
		default:
			return board.Move{}, 0, fmt.Errorf("decode %#02x: tracker %d holds unexpected piece %q", val, hi, pt.piece)
		}
	}

	if dst < 0 || dst > 63 {
		return board.Move{}, 0, fmt.Errorf("decode %#02x: destination off the board", val)
	}

	mv := board.Move{
		Src:     board.Square(src),
		Dst:     board.Square(dst),
		Special: special,
		Capture: board.Empty,
	}
	capturedSq := -1
	if c.pos.Squares[dst] >= 'A' {
		capturedSq = dst
	}
	switch special {
	case board.WEnPassant:
		capturedSq = dst + 8
	case board.BEnPassant:
		capturedSq = dst - 8
	}
	if capturedSq >= 0 {
		mv.Capture = c.pos.Squares[capturedSq]
	}
	return mv, nbytes, nil
}

// promotionSpecial maps pawn promotion bits to the move special tag.
func promotionSpecial(lo int) board.Special {
	switch lo & 0x0c {
	case codePromotionRook:
		return board.PromotionRook
	case codePromotionBishop:
		return board.PromotionBishop
	case codePromotionKnight:
		return board.PromotionKnight
	default:
		return board.PromotionQueen
	}
}
