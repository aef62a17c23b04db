// Package apis serves the emulator's monitor endpoints over HTTP: a websocket
// transport for the LED protocol, a server-sent event stream of state changes,
// the current state and prometheus metrics.
package apis

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/kelindar/event"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/thiefmaster/eventsource"

	"github.com/thiefmaster/aorura/emu"
)

type Monitor struct {
	server   *emu.Server
	writable bool

	mux         *http.ServeMux
	events      *eventsource.Server
	eventID     atomic.Uint64
	unsubscribe func()
}

// NewMonitor builds the monitor for server. State changes published on bus
// are streamed on /events; bus may be nil.
func NewMonitor(server *emu.Server, bus *event.Dispatcher, writable bool) *Monitor {
	m := &Monitor{
		server:   server,
		writable: writable,
		mux:      http.NewServeMux(),
		events:   eventsource.NewServer(),
	}

	m.mux.HandleFunc("/ws", m.ws)
	m.mux.HandleFunc("/state", m.state)
	m.mux.Handle("/events", m.events.Handler(stateChannel))
	m.mux.Handle("/metrics", promhttp.Handler())

	if bus != nil {
		m.unsubscribe = event.Subscribe(bus, m.publish)
	}
	return m
}

func (m *Monitor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mux.ServeHTTP(w, r)
}

func (m *Monitor) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	m.events.Close()
}

func (m *Monitor) state(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, m.server.Get())
}
