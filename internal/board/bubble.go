package board

// Kind discriminates the Bubble variants.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindColored
	KindWildcard
	KindSpecial
	KindBlocker
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindColored:
		return "Colored"
	case KindWildcard:
		return "Wildcard"
	case KindSpecial:
		return "Special"
	case KindBlocker:
		return "Blocker"
	default:
		return "Unknown"
	}
}

// Color identifies a bubble color.
type Color uint8

const (
	Red Color = iota
	Green
	Blue
	Yellow
	Purple
	Orange
	Cyan
	White
	NumColors
)

var colorNames = [NumColors]string{"Red", "Green", "Blue", "Yellow", "Purple", "Orange", "Cyan", "White"}

// String returns a human-readable name for the color.
func (c Color) String() string {
	if c < NumColors {
		return colorNames[c]
	}
	return "Unknown"
}

// ColorMask is a set of colors, one bit per Color.
type ColorMask uint8

// AllColors contains every color.
const AllColors ColorMask = 0xFF

// Bit returns the mask bit for the color.
func (c Color) Bit() ColorMask {
	return 1 << c
}

// Has reports whether c is in the mask.
func (m ColorMask) Has(c Color) bool {
	return c < NumColors && m&c.Bit() != 0
}

// Count returns the number of colors in the mask.
func (m ColorMask) Count() int {
	n := 0
	for c := Color(0); c < NumColors; c++ {
		if m.Has(c) {
			n++
		}
	}
	return n
}

// Special tags a special bubble's ability.
type Special uint8

const (
	SpecialNone Special = iota
	Rainbow             // matches any color
	Bomb                // pops adjacent bubbles
	Lightning           // pops its row
	Star                // pops every bubble of the struck color
	Magnet              // inert; payload holds strength
	numSpecials
)

// String returns a human-readable name for the special.
func (s Special) String() string {
	switch s {
	case SpecialNone:
		return "None"
	case Rainbow:
		return "Rainbow"
	case Bomb:
		return "Bomb"
	case Lightning:
		return "Lightning"
	case Star:
		return "Star"
	case Magnet:
		return "Magnet"
	default:
		return "Unknown"
	}
}

// SpecialMask is a set of specials.
type SpecialMask uint8

// Bit returns the mask bit for the special.
func (s Special) Bit() SpecialMask {
	return 1 << s
}

// Has reports whether s is in the mask.
func (m SpecialMask) Has(s Special) bool {
	return s != SpecialNone && s < numSpecials && m&s.Bit() != 0
}

// Count returns the number of specials in the mask.
func (m SpecialMask) Count() int {
	n := 0
	for s := Rainbow; s < numSpecials; s++ {
		if m.Has(s) {
			n++
		}
	}
	return n
}

// Nth returns the i-th special of the mask in ascending order, or
// SpecialNone when i is out of range.
func (m SpecialMask) Nth(i int) Special {
	for s := Rainbow; s < numSpecials; s++ {
		if m.Has(s) {
			if i == 0 {
				return s
			}
			i--
		}
	}
	return SpecialNone
}

// Flags modify how a bubble participates in traversal.
type Flags uint8

const (
	// FlagGhost bubbles are invisible to collision and anchoring.
	FlagGhost Flags = 1 << iota
	// FlagAnchor bubbles root ceiling connectivity.
	FlagAnchor
	// FlagFrozen bubbles never fall as orphans.
	FlagFrozen
)

// Bubble is the content of one cell. The zero value is an empty cell.
// Construct with Colored, Wildcard, SpecialBubble or Blocker.
type Bubble struct {
	kind    Kind
	color   Color
	flags   Flags
	special Special
	payload uint8
}

// Empty returns the empty bubble.
func Empty() Bubble { return Bubble{} }

// Colored returns a plain bubble of color c.
func Colored(c Color) Bubble {
	return Bubble{kind: KindColored, color: c}
}

// Wildcard returns a bubble that matches any color.
func Wildcard() Bubble {
	return Bubble{kind: KindWildcard}
}

// SpecialBubble returns a special bubble with an opaque payload.
func SpecialBubble(s Special, payload uint8) Bubble {
	return Bubble{kind: KindSpecial, special: s, payload: payload}
}

// Blocker returns an inert bubble that never matches.
func Blocker() Bubble {
	return Bubble{kind: KindBlocker}
}

// Kind returns the variant.
func (b Bubble) Kind() Kind { return b.kind }

// IsEmpty reports whether the cell holds nothing.
func (b Bubble) IsEmpty() bool { return b.kind == KindEmpty }

// Color returns the color of a colored bubble.
func (b Bubble) Color() (Color, bool) {
	if b.kind != KindColored {
		return 0, false
	}
	return b.color, true
}

// Special returns the ability and payload of a special bubble.
func (b Bubble) Special() (Special, uint8, bool) {
	if b.kind != KindSpecial {
		return SpecialNone, 0, false
	}
	return b.special, b.payload, true
}

// Flags returns the flag set.
func (b Bubble) Flags() Flags { return b.flags }

// Has reports whether all flags in f are set.
func (b Bubble) Has(f Flags) bool { return b.flags&f == f }

// With returns a copy with f added. Empty bubbles carry no flags.
func (b Bubble) With(f Flags) Bubble {
	if b.kind == KindEmpty {
		return b
	}
	b.flags |= f
	return b
}

// Solid reports whether the bubble takes part in collision and anchoring.
func (b Bubble) Solid() bool {
	return b.kind != KindEmpty && b.flags&FlagGhost == 0
}

// MatchesAny reports whether the bubble matches every color
// (wildcards and rainbow specials).
func (b Bubble) MatchesAny() bool {
	return b.kind == KindWildcard || (b.kind == KindSpecial && b.special == Rainbow)
}

// Matches reports whether the bubble joins a match of color c.
func (b Bubble) Matches(c Color) bool {
	if b.kind == KindColored {
		return b.color == c
	}
	return b.MatchesAny()
}

// bytes returns the raw encoding used for checksums.
func (b Bubble) bytes() [5]byte {
	return [5]byte{byte(b.kind), byte(b.color), byte(b.flags), byte(b.special), b.payload}
}
