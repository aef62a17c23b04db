package comm

import (
	"fmt"
	"strings"
)

// String returns the textual form used on the command line: aurora, off,
// flash:<color> or static:<color>.
func (s State) String() string {
	switch s.Kind {
	case KindAurora:
		return "aurora"
	case KindFlash:
		return "flash:" + s.Color.String()
	case KindStatic:
		return "static:" + s.Color.String()
	case KindOff:
		return "off"
	default:
		return "invalid"
	}
}

// ParseState parses the textual form returned by State.String.
func ParseState(s string) (State, error) {
	input := strings.ToLower(strings.TrimSpace(s))
	mode, colorName, hasColor := strings.Cut(input, ":")

	switch {
	case mode == "aurora" && !hasColor:
		return Aurora(), nil
	case mode == "off" && !hasColor:
		return Off(), nil
	case (mode == "flash" || mode == "static") && hasColor:
		color, err := ParseColor(colorName)
		if err != nil {
			return State{}, err
		}
		if mode == "flash" {
			return Flash(color), nil
		}
		return Static(color), nil
	}
	return State{}, fmt.Errorf("%w: %q (want aurora, off, flash:COLOR or static:COLOR)", ErrInvalidState, s)
}

// ParseColor parses a lowercase color name.
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range colorNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown color %q", ErrInvalidState, name)
}

func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, s)
	}
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
