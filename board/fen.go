package board

import (
	"fmt"
	"strconv"
	"strings"
)

// FEN renders the position in Forsyth-Edwards Notation.
func (p *Position) FEN() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			c := p.Squares[row*8+col]
			if c == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(c)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	if p.White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	castle := ""
	if p.WKCastle {
		castle += "K"
	}
	if p.WQCastle {
		castle += "Q"
	}
	if p.BKCastle {
		castle += "k"
	}
	if p.BQCastle {
		castle += "q"
	}
	if castle == "" {
		castle = "-"
	}
	sb.WriteString(castle)

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())
	fmt.Fprintf(&sb, " %d %d", p.HalfmoveClock, p.FullmoveNumber)
	return sb.String()
}

// ParseFEN parses a position from Forsyth-Edwards Notation. The halfmove
// clock and fullmove number may be omitted.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("fen %q: want at least 4 fields, got %d", fen, len(fields))
	}

	p := &Position{EnPassant: NoSquare, FullmoveNumber: 1}
	for i := range p.Squares {
		p.Squares[i] = Empty
	}

	rows := strings.Split(fields[0], "/")
	if len(rows) != 8 {
		return nil, fmt.Errorf("fen %q: want 8 ranks, got %d", fen, len(rows))
	}
	for row, rank := range rows {
		col := 0
		for _, c := range []byte(rank) {
			switch {
			case c >= '1' && c <= '8':
				col += int(c - '0')
			case strings.IndexByte("KQRBNPkqrbnp", c) >= 0:
				if col > 7 {
					return nil, fmt.Errorf("fen %q: rank %d overflows", fen, 8-row)
				}
				p.Squares[row*8+col] = c
				col++
			default:
				return nil, fmt.Errorf("fen %q: bad piece %q", fen, c)
			}
		}
		if col != 8 {
			return nil, fmt.Errorf("fen %q: rank %d has %d files", fen, 8-row, col)
		}
	}

	switch fields[1] {
	case "w":
		p.White = true
	case "b":
		p.White = false
	default:
		return nil, fmt.Errorf("fen %q: bad side %q", fen, fields[1])
	}

	if fields[2] != "-" {
		for _, c := range fields[2] {
			switch c {
			case 'K':
				p.WKCastle = true
			case 'Q':
				p.WQCastle = true
			case 'k':
				p.BKCastle = true
			case 'q':
				p.BQCastle = true
			default:
				return nil, fmt.Errorf("fen %q: bad castling %q", fen, fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("fen %q: %v", fen, err)
		}
		p.EnPassant = sq
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("fen %q: bad halfmove clock", fen)
		}
		p.HalfmoveClock = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("fen %q: bad fullmove number", fen)
		}
		p.FullmoveNumber = n
	}
	return p, nil
}
