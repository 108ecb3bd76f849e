package codec

// Wire format constants. Every move is one byte (rarely two): the high
// nibble names a tracker slot of the side to move, the low nibble encodes
// the motion, interpreted per piece role.
const (
	// Rook (and rook-like shadow) codes: bit set means same file, so the
	// low 3 bits carry the destination rank; clear means same rank and the
	// low 3 bits carry the destination file.
	codeSameFile = 0x08

	// Diagonal codes: bit set means FALL (raw index delta a multiple of 9),
	// clear means RISE (multiple of 7); low 3 bits carry the destination
	// file. A FALL with zero file delta is impossible for a real move and
	// doubles as the two-byte queen escape marker.
	codeFall = 0x08

	// Pawn codes: low 2 bits are the direction, bits 0x0c the promotion
	// piece when the pawn starts on its seventh rank.
	codePromotionQueen  = 0x00
	codePromotionRook   = 0x04
	codePromotionBishop = 0x08
	codePromotionKnight = 0x0c

	// King castling codes.
	codeKWKCastling = 0x01
	codeKBKCastling = 0x02
	codeKWQCastling = 0x03
	codeKBQCastling = 0x04

	// Knight codes: bit set means the byte is a shadowed rank or file move
	// of the owning queen, not a knight move.
	codeNShadow = 0x08

	// Second byte of the two-byte queen escape: 0x40 keeps the byte out of
	// control-character range, the low 6 bits are the destination square.
	escapeMarker = 0x40
)

// kingVectorDelta lists the eight king step deltas (src minus dst) and
// kingVectorCode their low-nibble codes. 0x0a and 0x0d are deliberately
// skipped so encoded streams never contain LF or CR bytes.
var (
	kingVectorDelta = [8]int{9, 8, 7, 1, -1, -7, -8, -9}
	kingVectorCode  = [8]byte{0x05, 0x06, 0x07, 0x08, 0x09, 0x0b, 0x0e, 0x0f}
)

// knightVectorDelta lists the eight knight deltas (src minus dst); the code
// is the index itself, 0-7. The 0x08 bit is reserved for shadow use.
var knightVectorDelta = [8]int{17, 15, 10, 6, -17, -15, -10, -6}

func kingCodeFor(delta int) (byte, bool) {
	for i, d := range kingVectorDelta {
		if d == delta {
			return kingVectorCode[i], true
		}
	}
	return 0, false
}

func kingDeltaFor(code byte) (int, bool) {
	for i, c := range kingVectorCode {
		if c == code {
			return kingVectorDelta[i], true
		}
	}
	return 0, false
}

func knightCodeFor(delta int) (byte, bool) {
	for i, d := range knightVectorDelta {
		if d == delta {
			return byte(i), true
		}
	}
	return 0, false
}
