package comm

func Aurora() State {
	return State{Kind: KindAurora}
}

func Flash(c Color) State {
	return State{Kind: KindFlash, Color: c}
}

func Static(c Color) State {
	return State{Kind: KindStatic, Color: c}
}

func Off() State {
	return State{Kind: KindOff}
}

// Valid reports whether s is one of the states the device can show: a known
// kind, with a valid color for Flash and Static.
func (s State) Valid() bool {
	switch s.Kind {
	case KindAurora, KindOff:
		return s.Color == 0
	case KindFlash, KindStatic:
		return s.Color.Valid()
	}
	return false
}

// Command returns the wire encoding of s.
func (s State) Command() Command {
	return Encode(s)
}

// Encode maps a state to its 2-byte wire command. States that are not Valid
// encode to the zero Command, which Decode rejects.
func Encode(s State) Command {
	if !s.Valid() {
		return Command{}
	}
	switch s.Kind {
	case KindAurora:
		return Command{auroraByte, auroraMark}
	case KindFlash:
		return Command{s.Color.Byte(), flashMark}
	case KindStatic:
		return Command{s.Color.Byte(), staticMark}
	case KindOff:
		return Command{offByte, offByte}
	}
	return Command{}
}

// Decode is the inverse of Encode. Any byte pair that is not the encoding of
// a state fails with an *InvalidCommandError, including StatusQuery.
func Decode(cmd Command) (State, error) {
	switch {
	case cmd == Command{auroraByte, auroraMark}:
		return Aurora(), nil
	case cmd == Command{offByte, offByte}:
		return Off(), nil
	case cmd[1] == flashMark:
		if c, ok := ColorFromByte(cmd[0]); ok {
			return Flash(c), nil
		}
	case cmd[1] == staticMark:
		if c, ok := ColorFromByte(cmd[0]); ok {
			return Static(c), nil
		}
	}
	return State{}, &InvalidCommandError{Command: cmd}
}
