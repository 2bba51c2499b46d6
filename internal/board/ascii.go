package board

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/hexpop/internal/core"
)

// Glyph returns the single-character ASCII code for a bubble.
//
// Format:
//   - empty '.', blocker '#', wildcard '*'
//   - colors R G B Y P O C W
//   - specials: rainbow '~', bomb '@', lightning '!', star '$', magnet 'M'
func (b Bubble) Glyph() byte {
	switch b.kind {
	case KindColored:
		return colorGlyphs[b.color]
	case KindWildcard:
		return '*'
	case KindBlocker:
		return '#'
	case KindSpecial:
		switch b.special {
		case Rainbow:
			return '~'
		case Bomb:
			return '@'
		case Lightning:
			return '!'
		case Star:
			return '$'
		case Magnet:
			return 'M'
		}
		return '?'
	default:
		return '.'
	}
}

var colorGlyphs = [NumColors]byte{'R', 'G', 'B', 'Y', 'P', 'O', 'C', 'W'}

// ParseGlyph inverts Glyph. Magnets parse with zero payload.
func ParseGlyph(g byte) (Bubble, bool) {
	for c, cg := range colorGlyphs {
		if g == cg {
			return Colored(Color(c)), true
		}
	}
	switch g {
	case '.':
		return Bubble{}, true
	case '*':
		return Wildcard(), true
	case '#':
		return Blocker(), true
	case '~':
		return SpecialBubble(Rainbow, 0), true
	case '@':
		return SpecialBubble(Bomb, 0), true
	case '!':
		return SpecialBubble(Lightning, 0), true
	case '$':
		return SpecialBubble(Star, 0), true
	case 'M':
		return SpecialBubble(Magnet, 0), true
	}
	return Bubble{}, false
}

// ParseRows decodes a layout, one line per row with glyphs separated by
// optional whitespace.
func ParseRows(lines []string) ([][]Bubble, error) {
	rows := make([][]Bubble, 0, len(lines))
	for i, line := range lines {
		var row []Bubble
		for j := 0; j < len(line); j++ {
			g := line[j]
			if g == ' ' || g == '\t' {
				continue
			}
			bub, ok := ParseGlyph(g)
			if !ok {
				return nil, fmt.Errorf("board: row %d: unknown glyph %q: %w", i, g, core.ErrInvalidArgument)
			}
			row = append(row, bub)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// String renders the board as ASCII. Odd hex rows are indented by one
// character so the brick offset is visible.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.rows; row++ {
		if (row+b.parity)&1 == 1 {
			sb.WriteByte(' ')
		}
		for col := 0; col < b.Cols(row); col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(b.cells[row][col].Glyph())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
