package comm

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tarm/serial"
)

// BaudRate is the fixed line speed of the AORURA LED.
const BaudRate = 19200

// Client talks to an LED (or the emulator) over a duplex byte transport.
type Client struct {
	mu sync.Mutex
	rw io.ReadWriter
}

func NewClient(rw io.ReadWriter) *Client {
	return &Client{rw: rw}
}

// Open opens the serial port at path with the device's line settings
// (19200 baud, 8N1, no flow control, blocking reads).
func Open(path string) (*Client, error) {
	log.Debug().Str("port", path).Msg("opening serial port")
	port, err := serial.OpenPort(serialConfig(path))
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", path, err)
	}
	return NewClient(port), nil
}

// Dial opens a serial port, or connects to an emulator monitor when target is
// a ws:// or wss:// URL.
func Dial(target string) (*Client, error) {
	if strings.HasPrefix(target, "ws://") || strings.HasPrefix(target, "wss://") {
		return DialWebsocket(target)
	}
	return Open(target)
}

func serialConfig(path string) *serial.Config {
	return &serial.Config{
		Name:     path,
		Baud:     BaudRate,
		Size:     8,
		Parity:   serial.ParityNone,
		StopBits: serial.Stop1,
	}
}

// Get queries the current state.
func (c *Client) Get() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := WriteFull(c.rw, StatusQuery[:]); err != nil {
		return State{}, fmt.Errorf("write status query: %w", err)
	}
	var resp Command
	if _, err := io.ReadFull(c.rw, resp[:]); err != nil {
		return State{}, fmt.Errorf("read state: %w", err)
	}
	return Decode(resp)
}

// Set asks the device to switch to state.
func (c *Client) Set(state State) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !state.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidState, state)
	}
	cmd := Encode(state)
	if err := WriteFull(c.rw, cmd[:]); err != nil {
		return fmt.Errorf("write command %q: %w", cmd[:], err)
	}
	var resp [1]byte
	if _, err := io.ReadFull(c.rw, resp[:]); err != nil {
		return fmt.Errorf("read acknowledgement: %w", err)
	}
	if resp[0] != Ack {
		return &RejectedError{Response: resp[0]}
	}
	return nil
}

func (c *Client) Close() error {
	if closer, ok := c.rw.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// WriteFull writes all of p in one call. A short write is an error.
func WriteFull(w io.Writer, p []byte) error {
	n, err := w.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}
