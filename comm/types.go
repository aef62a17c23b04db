package comm

// Color is one of the six colors the LED can show.
type Color byte

// StateKind tags the mode held by a State.
type StateKind byte

// Color values. The zero Color is not a valid color.
const (
	_ Color = iota
	Blue
	Green
	Orange
	Purple
	Red
	Yellow
)

// StateKind values
const (
	_ StateKind = iota
	KindAurora
	KindFlash
	KindStatic
	KindOff
)

// State is the LED mode. Color is only meaningful for KindFlash and KindStatic.
type State struct {
	Kind  StateKind
	Color Color
}

// Command is the 2-byte unit exchanged over the wire in either direction.
type Command [2]byte

const (
	// Ack is the response to an accepted command.
	Ack byte = 'Y'
	// Nack is the response to a malformed command.
	Nack byte = 'N'
)

// StatusQuery asks the device for its current state. It is never a valid
// encoding of a State.
var StatusQuery = Command{'S', 'S'}

// DefaultState is the state of a freshly started emulator.
var DefaultState = Flash(Blue)

// wire identifiers, see colorBytes for the color table
const (
	auroraByte = 'A'
	auroraMark = '<'
	flashMark  = '*'
	staticMark = '!'
	offByte    = 'X'
)

var colorBytes = map[Color]byte{
	Blue:   'B',
	Green:  'G',
	Orange: 'O',
	Purple: 'P',
	Red:    'R',
	Yellow: 'Y',
}

var byteColors = map[byte]Color{
	'B': Blue,
	'G': Green,
	'O': Orange,
	'P': Purple,
	'R': Red,
	'Y': Yellow,
}

var colorNames = map[Color]string{
	Blue:   "blue",
	Green:  "green",
	Orange: "orange",
	Purple: "purple",
	Red:    "red",
	Yellow: "yellow",
}

// Colors lists every valid color in wire order.
var Colors = []Color{Blue, Green, Orange, Purple, Red, Yellow}

// Byte returns the wire identifier of c, or 0 if c is not a valid color.
func (c Color) Byte() byte {
	return colorBytes[c]
}

// Valid reports whether c is one of the six colors.
func (c Color) Valid() bool {
	_, ok := colorBytes[c]
	return ok
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "invalid"
}

// ColorFromByte looks up the color with wire identifier b.
func ColorFromByte(b byte) (Color, bool) {
	c, ok := byteColors[b]
	return c, ok
}
