package apis

import (
	"strconv"

	"github.com/thiefmaster/aorura/emu"
)

const stateChannel = "state"

// stateEvent is a StateChanged as sent on the /events stream.
type stateEvent struct {
	id    uint64
	state string
}

func (e stateEvent) Id() string    { return strconv.FormatUint(e.id, 10) }
func (e stateEvent) Event() string { return stateChannel }
func (e stateEvent) Data() string  { return e.state }

func (m *Monitor) publish(e emu.StateChanged) {
	m.events.Publish([]string{stateChannel}, stateEvent{
		id:    m.eventID.Add(1),
		state: e.Current.String(),
	})
}
