package comm

import (
	"errors"
	"testing"
)

func allStates() []State {
	states := []State{Aurora(), Off()}
	for _, c := range Colors {
		states = append(states, Flash(c), Static(c))
	}
	return states
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, s := range allStates() {
		got, err := Decode(Encode(s))
		if err != nil {
			t.Fatalf("Decode(Encode(%v)) error: %v", s, err)
		}
		if got != s {
			t.Errorf("Decode(Encode(%v)) = %v", s, got)
		}
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Flash(Blue), "B*"},
		{Static(Red), "R!"},
		{Flash(Yellow), "Y*"},
		{Static(Purple), "P!"},
		{Aurora(), "A<"},
		{Off(), "XX"},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			cmd := Encode(tt.state)
			if string(cmd[:]) != tt.want {
				t.Errorf("Encode(%v) = %q, want %q", tt.state, cmd[:], tt.want)
			}
		})
	}
}

func TestStateValid(t *testing.T) {
	for _, s := range allStates() {
		if !s.Valid() {
			t.Errorf("%v should be valid", s)
		}
	}

	invalid := []struct {
		name  string
		state State
	}{
		{"zero state", State{}},
		{"flash without color", Flash(0)},
		{"static without color", Static(0)},
		{"flash with unknown color", Flash(Color(7))},
		{"aurora with color", State{Kind: KindAurora, Color: Red}},
		{"off with color", State{Kind: KindOff, Color: Blue}},
		{"unknown kind", State{Kind: StateKind(9), Color: Green}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			if tt.state.Valid() {
				t.Errorf("%+v should not be valid", tt.state)
			}
			cmd := Encode(tt.state)
			if cmd != (Command{}) {
				t.Errorf("Encode(%+v) = %q, want the zero command", tt.state, cmd[:])
			}
			if _, err := Decode(cmd); !errors.Is(err, ErrInvalidCommand) {
				t.Errorf("Decode(Encode(%+v)) error = %v, want ErrInvalidCommand", tt.state, err)
			}
		})
	}
}

func TestEncodeNeverProducesStatusQuery(t *testing.T) {
	for _, s := range allStates() {
		if Encode(s) == StatusQuery {
			t.Errorf("Encode(%v) produced the status query", s)
		}
	}
}

func TestDecode(t *testing.T) {
	got, err := Decode(Command{'B', '*'})
	if err != nil {
		t.Fatalf("Decode(B*) error: %v", err)
	}
	if got != Flash(Blue) {
		t.Errorf("Decode(B*) = %v, want flash:blue", got)
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
	}{
		{"zero bytes", Command{0x00, 0x00}},
		{"unknown mark", Command{'B', '?'}},
		{"unknown color", Command{'Z', '*'}},
		{"unknown static color", Command{'X', '!'}},
		{"aurora with color byte", Command{'B', '<'}},
		{"half off", Command{'X', 'Y'}},
		{"status query", StatusQuery},
		{"ack as command", Command{'Y', 'Y'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.cmd)
			if !errors.Is(err, ErrInvalidCommand) {
				t.Fatalf("Decode(%q) error = %v, want ErrInvalidCommand", tt.cmd[:], err)
			}
			var invalid *InvalidCommandError
			if !errors.As(err, &invalid) {
				t.Fatalf("Decode(%q) error is %T, want *InvalidCommandError", tt.cmd[:], err)
			}
			if invalid.Command != tt.cmd {
				t.Errorf("InvalidCommandError.Command = %q, want %q", invalid.Command[:], tt.cmd[:])
			}
		})
	}
}

func TestDecodeIsBijective(t *testing.T) {
	valid := 0
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			cmd := Command{byte(a), byte(b)}
			s, err := Decode(cmd)
			if err != nil {
				continue
			}
			valid++
			if Encode(s) != cmd {
				t.Errorf("Encode(Decode(%q)) = %q", cmd[:], Encode(s))
			}
		}
	}
	if want := len(allStates()); valid != want {
		t.Errorf("%d byte pairs decode, want %d", valid, want)
	}
}

func TestColorTable(t *testing.T) {
	want := map[Color]byte{Blue: 'B', Green: 'G', Orange: 'O', Purple: 'P', Red: 'R', Yellow: 'Y'}
	for c, b := range want {
		if c.Byte() != b {
			t.Errorf("%v.Byte() = %q, want %q", c, c.Byte(), b)
		}
		got, ok := ColorFromByte(b)
		if !ok || got != c {
			t.Errorf("ColorFromByte(%q) = %v, %v", b, got, ok)
		}
	}
	if Color(0).Valid() {
		t.Error("zero Color should not be valid")
	}
	if _, ok := ColorFromByte('Z'); ok {
		t.Error("ColorFromByte('Z') should fail")
	}
	if Yellow.Byte() != Ack {
		t.Error("yellow and the acknowledgement byte share the same value")
	}
}

func TestColorTablesAgree(t *testing.T) {
	if len(byteColors) != len(colorBytes) {
		t.Fatalf("%d wire bytes for %d colors", len(byteColors), len(colorBytes))
	}
	for c, b := range colorBytes {
		if byteColors[b] != c {
			t.Errorf("byteColors[%q] = %v, want %v", b, byteColors[b], c)
		}
	}
}
