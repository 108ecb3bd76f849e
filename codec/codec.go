// Package codec compresses sequences of legal chess moves into a compact
// byte stream, typically one byte per ply, and restores them exactly.
//
// The codec is stateful: encoder and decoder walk a shared position forward
// move by move, and each byte is interpreted against a per-side table of 16
// piece trackers. A queen borrows the single-byte code space of other
// trackers (its "shadows") so that even promoted queens usually stay at one
// byte; when no shadow is available a rank or file queen move falls back to
// a two-byte escape. Games must start from the standard initial position.
package codec

import (
	"fmt"

	"github.com/movebyte/movebyte/board"
)

// Tracker ids. The numeric assignment is part of the wire format.
const (
	tiK  = 0
	tiKN = 1
	tiQN = 2
	tiKR = 3
	tiQR = 4
	tiKB = 5
	tiQB = 6
	tiQ  = 7
	tiAP = 8
	tiBP = 9
	tiCP = 10
	tiDP = 11
	tiEP = 12
	tiFP = 13
	tiGP = 14
	tiHP = 15
)

// noLink marks an empty shadow link or square-map entry.
const noLink = -1

// tracker is one slot of a per-side piece table. The shadow links are
// indices into the same side's array, never pointers, so a codec value
// copies deeply with plain assignment.
type tracker struct {
	piece byte
	sq    board.Square
	inUse bool

	// A queen delegates rank-changing moves to shadowRank, file-changing
	// moves to shadowFile, and both to shadowRook once one is attached
	// after promotion. shadowOwner is the inverse link: the delegate's
	// single-byte code currently belongs to that queen.
	shadowRank  int8
	shadowFile  int8
	shadowRook  int8
	shadowOwner int8
}

// Codec holds the full compression state for one game: the position, both
// tracker tables and the square-to-tracker map. The zero value is not
// usable; call New.
type Codec struct {
	pos   board.Position
	white [16]tracker
	black [16]tracker

	// squares maps each board square to the tracker sitting on it:
	// noLink, 0-15 for white trackers, 16-31 for black.
	squares [64]int8

	// Debug makes Encode and Decode run the tracker/board self check
	// after every move and fail on divergence.
	Debug bool
}

var initialPiece = [16]byte{'K', 'N', 'N', 'R', 'R', 'B', 'B', 'Q', 'P', 'P', 'P', 'P', 'P', 'P', 'P', 'P'}

var whiteInitialSq = [16]board.Square{
	board.E1, board.G1, board.B1, board.H1, board.A1, board.F1, board.C1, board.D1,
	board.A2, board.B2, board.C2, board.D2, board.E2, board.F2, board.G2, board.H2,
}

var blackInitialSq = [16]board.Square{
	board.E8, board.G8, board.B8, board.H8, board.A8, board.F8, board.C8, board.D8,
	board.A7, board.B7, board.C7, board.D7, board.E7, board.F7, board.G7, board.H7,
}

// New returns a codec at the standard starting position with the default
// shadow graph (each queen's rank-changing moves shadowed by the king
// knight, file-changing moves by the queen knight).
func New() *Codec {
	c := &Codec{}
	c.Reset()
	return c
}

// Reset returns the codec to the standard starting position and default
// shadow graph.
func (c *Codec) Reset() {
	c.pos = *board.NewPosition()
	for i := range c.squares {
		c.squares[i] = noLink
	}
	c.initSide(&c.white, true)
	c.initSide(&c.black, false)
}

func (c *Codec) initSide(side *[16]tracker, white bool) {
	sqs := &whiteInitialSq
	base := int8(0)
	if !white {
		sqs = &blackInitialSq
		base = 16
	}
	for i := range side {
		side[i] = tracker{
			piece:       pieceFor(initialPiece[i], white),
			sq:          sqs[i],
			inUse:       true,
			shadowRank:  noLink,
			shadowFile:  noLink,
			shadowRook:  noLink,
			shadowOwner: noLink,
		}
		c.squares[sqs[i]] = base + int8(i)
	}
	side[tiQ].shadowRank = tiKN
	side[tiKN].shadowOwner = tiQ
	side[tiQ].shadowFile = tiQN
	side[tiQN].shadowOwner = tiQ
}

// Copy returns an independent codec in the same state. Every cross-tracker
// link and square-map entry is an array index, so value assignment already
// is a deep copy.
func (c *Codec) Copy() *Codec {
	d := *c
	return &d
}

// Position returns a copy of the codec's current position.
func (c *Codec) Position() board.Position {
	return c.pos
}

// sideToMove returns the tracker table of the side to move and the square
// map base for that side.
func (c *Codec) sideToMove() (*[16]tracker, int8) {
	if c.pos.White {
		return &c.white, 0
	}
	return &c.black, 16
}

// arenaOf resolves a square-map ref to its tracker table and slot index.
func (c *Codec) arenaOf(ref int8) (*[16]tracker, int) {
	if ref < 16 {
		return &c.white, int(ref)
	}
	return &c.black, int(ref - 16)
}

// Check rebuilds a position from the trackers and compares it against the
// authoritative board. It returns false on any divergence: a square-map
// entry whose tracker disagrees about its square, or a piece mismatch.
// The method never mutates state; desc only labels the call for callers.
func (c *Codec) Check(desc string) bool {
	var shadow [64]byte
	for i := range shadow {
		shadow[i] = board.Empty
	}
	for i := 0; i < 64; i++ {
		ref := c.squares[i]
		if ref == noLink {
			continue
		}
		side, idx := c.arenaOf(ref)
		t := &side[idx]
		if !t.inUse {
			continue
		}
		if int(t.sq) != i {
			return false
		}
		piece := t.piece
		if t.shadowOwner != noLink {
			queen := &side[t.shadowOwner]
			if queen.shadowRook == int8(idx) {
				// Acting purely as the queen's phantom rook: invisible
				// in board terms.
				piece = board.Empty
			}
		}
		shadow[i] = piece
	}
	return shadow == c.pos.Squares
}

// checkErr wraps a failed self check into an error carrying a diagram of
// the authoritative board.
func (c *Codec) checkErr(desc string) error {
	return fmt.Errorf("tracker/board divergence %s:\n%s", desc, c.pos.String())
}

func pieceFor(letter byte, white bool) byte {
	if white {
		return letter
	}
	return letter - 'A' + 'a'
}

// EncodeGame compresses a whole game played from the standard starting
// position.
func EncodeGame(moves []board.Move) ([]byte, error) {
	c := New()
	out := make([]byte, 0, len(moves)+2)
	var buf [2]byte
	for i, m := range moves {
		n, err := c.Encode(m, buf[:])
		if err != nil {
			return nil, fmt.Errorf("ply %d: %w", i+1, err)
		}
		out = append(out, buf[:n]...)
	}
	return out, nil
}

// DecodeGame expands a byte stream produced by EncodeGame back into the
// move list.
func DecodeGame(data []byte) ([]board.Move, error) {
	c := New()
	moves := make([]board.Move, 0, len(data))
	for off := 0; off < len(data); {
		mv, n, err := c.Decode(data[off:])
		if err != nil {
			return nil, fmt.Errorf("ply %d: %w", len(moves)+1, err)
		}
		moves = append(moves, mv)
		off += n
	}
	return moves, nil
}
