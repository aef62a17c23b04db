package emu

import "github.com/thiefmaster/aorura/comm"

const TypeStateChanged uint32 = iota + 1

// StateChanged is published on the server's dispatcher whenever the emulated
// state changes.
type StateChanged struct {
	Previous comm.State
	Current  comm.State
}

// Type returns the event type identifier for StateChanged.
func (e StateChanged) Type() uint32 { return TypeStateChanged }
