package apis

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/thiefmaster/aorura/comm"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  64,
	WriteBufferSize: 64,
}

// ws serves the LED protocol over one websocket connection. Binary messages
// are treated as a plain byte stream, so commands may be split or batched.
func (m *Monitor) ws(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade failed")
		return
	}
	stream := comm.NewWebsocketStream(c)
	defer stream.Close()

	log.Info().Str("remote", r.RemoteAddr).Msg("websocket transport connected")
	if err := m.server.Serve(stream, m.writable); err != nil {
		log.Debug().Err(err).Str("remote", r.RemoteAddr).Msg("websocket transport closed")
	}
}
