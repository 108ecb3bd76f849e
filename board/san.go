package board

import (
	"fmt"
	"strings"
)

// ToSAN converts a move to Standard Algebraic Notation, including a check
// or checkmate suffix.
func (m Move) ToSAN(pos *Position) string {
	san := sanCore(pos, m, pos.GenerateLegalMoves())
	next := *pos
	next.Play(m)
	if next.IsCheckmate() {
		san += "#"
	} else if next.InCheck() {
		san += "+"
	}
	return san
}

// sanCore builds the SAN string without check decoration. legal must be the
// legal moves of pos; it is threaded through so callers matching many moves
// generate it once.
func sanCore(pos *Position, m Move, legal []Move) string {
	switch m.Special {
	case WKCastling, BKCastling:
		return "O-O"
	case WQCastling, BQCastling:
		return "O-O-O"
	}

	piece := pos.Squares[m.Src]
	isCapture := m.Capture != Empty

	var sb strings.Builder
	if upper(piece) == 'P' {
		if isCapture {
			sb.WriteByte(byte('a' + m.Src.File()))
		}
	} else {
		sb.WriteByte(upper(piece))
		sb.WriteString(disambiguation(pos, m, legal))
	}
	if isCapture {
		sb.WriteByte('x')
	}
	sb.WriteString(m.Dst.String())
	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(m.promotionLetter())
	}
	return sb.String()
}

// disambiguation returns the minimal source qualifier needed to make the
// move unique among legal moves of the same piece to the same destination.
func disambiguation(pos *Position, m Move, legal []Move) string {
	piece := pos.Squares[m.Src]
	sameFile, sameRank, others := false, false, false
	for _, lm := range legal {
		if lm.Src == m.Src || lm.Dst != m.Dst || pos.Squares[lm.Src] != piece {
			continue
		}
		others = true
		if lm.Src.File() == m.Src.File() {
			sameFile = true
		}
		if lm.Src.Rank() == m.Src.Rank() {
			sameRank = true
		}
	}
	switch {
	case !others:
		return ""
	case !sameFile:
		return string(byte('a' + m.Src.File()))
	case !sameRank:
		return string(byte('1' + m.Src.Rank()))
	default:
		return m.Src.String()
	}
}

// ParseSAN parses a move in Standard Algebraic Notation against the given
// position. Check marks and annotations are ignored, and plain coordinate
// notation ("e2e4", "a7a8q") is accepted too.
func ParseSAN(pos *Position, s string) (Move, error) {
	trimmed := strings.TrimRight(s, "+#!?")
	trimmed = strings.TrimSuffix(trimmed, " e.p.")
	if trimmed == "0-0" {
		trimmed = "O-O"
	} else if trimmed == "0-0-0" {
		trimmed = "O-O-O"
	}
	legal := pos.GenerateLegalMoves()
	for _, m := range legal {
		if sanCore(pos, m, legal) == trimmed || m.String() == strings.ToLower(trimmed) {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("no legal move matches %q", s)
}

// ParseGame parses whitespace-separated SAN movetext, skipping move numbers
// and result markers, and returns the move list. The moves are validated by
// playing them forward from pos.
func ParseGame(pos *Position, movetext string) ([]Move, error) {
	cur := pos.Copy()
	var moves []Move
	for _, tok := range strings.Fields(movetext) {
		tok = strings.TrimSuffix(tok, "...")
		if i := strings.LastIndex(tok, "."); i >= 0 {
			tok = tok[i+1:]
		}
		switch tok {
		case "", "1-0", "0-1", "1/2-1/2", "*":
			continue
		}
		m, err := ParseSAN(cur, tok)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", len(moves)+1, err)
		}
		moves = append(moves, m)
		cur.Play(m)
	}
	return moves, nil
}
