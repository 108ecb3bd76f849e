// Package board implements a mailbox chess board representation.
//
// Squares are numbered from the top-left of the printed board: a8 is 0,
// h8 is 7, a1 is 56 and h1 is 63. Ranks therefore run downward through
// the array, which matches the byte layout used by the codec package.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
// A8=0, H8=7, A1=56, H1=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	NoSquare Square = 64
)

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq & 7)
}

// Rank returns the rank of the square (0-7, where 0=rank 1, 7=rank 8).
func (sq Square) Rank() int {
	return 7 - int(sq>>3)
}

// row returns the array row of the square (0 = rank 8, 7 = rank 1).
func (sq Square) row() int {
	return int(sq >> 3)
}

// SquareOf returns the square on the given file and rank
// (both 0-7, rank 0 = rank 1).
func SquareOf(file, rank int) Square {
	return Square((7-rank)*8 + file)
}

// String returns the square in algebraic notation, e.g. "e4".
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// ParseSquare parses a square from algebraic notation, e.g. "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return SquareOf(int(s[0]-'a'), int(s[1]-'1')), nil
}
