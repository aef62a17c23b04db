package apis

import (
	"bufio"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kelindar/event"

	"github.com/thiefmaster/aorura/comm"
	"github.com/thiefmaster/aorura/emu"
)

func startMonitor(t *testing.T, writable bool) (*emu.Server, *httptest.Server) {
	t.Helper()
	bus := event.NewDispatcher()
	srv := emu.New(emu.WithEvents(bus))
	monitor := NewMonitor(srv, bus, writable)
	httpSrv := httptest.NewServer(monitor)
	t.Cleanup(func() {
		monitor.Close()
		httpSrv.Close()
	})
	return srv, httpSrv
}

func wsURL(httpSrv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(httpSrv.URL, "http") + "/ws"
}

func TestWebsocketTransport(t *testing.T) {
	srv, httpSrv := startMonitor(t, true)

	client, err := comm.Dial(wsURL(httpSrv))
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer client.Close()

	state, err := client.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if state != comm.DefaultState {
		t.Errorf("Get = %v, want %v", state, comm.DefaultState)
	}

	if err := client.Set(comm.Static(comm.Orange)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := srv.Get(); got != comm.Static(comm.Orange) {
		t.Errorf("emulator state = %v, want static:orange", got)
	}
}

func TestWebsocketTransportReadOnly(t *testing.T) {
	srv, httpSrv := startMonitor(t, false)

	client, err := comm.DialWebsocket(wsURL(httpSrv))
	if err != nil {
		t.Fatalf("DialWebsocket: %v", err)
	}
	defer client.Close()

	if err := client.Set(comm.Off()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := srv.Get(); got != comm.DefaultState {
		t.Errorf("read-only emulator state changed to %v", got)
	}
}

func TestWebsocketSharesStateWithServer(t *testing.T) {
	srv, httpSrv := startMonitor(t, true)
	if err := srv.Set(comm.Aurora()); err != nil {
		t.Fatalf("Set: %v", err)
	}

	client, err := comm.Dial(wsURL(httpSrv))
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer client.Close()

	state, err := client.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if state != comm.Aurora() {
		t.Errorf("Get = %v, want aurora", state)
	}
}

func TestStateEndpoint(t *testing.T) {
	srv, httpSrv := startMonitor(t, true)
	if err := srv.Set(comm.Flash(comm.Red)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	resp, err := http.Get(httpSrv.URL + "/state")
	if err != nil {
		t.Fatalf("GET /state: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := strings.TrimSpace(string(body)); got != "flash:red" {
		t.Errorf("body = %q, want flash:red", got)
	}
}

func TestEventsEndpoint(t *testing.T) {
	srv, httpSrv := startMonitor(t, true)

	resp, err := http.Get(httpSrv.URL + "/events")
	if err != nil {
		t.Fatalf("GET /events: %v", err)
	}
	defer resp.Body.Close()

	lines := make(chan string, 64)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	// The subscription is registered asynchronously, so keep changing the
	// state until the stream delivers something.
	toggle := []comm.State{comm.Static(comm.Red), comm.Static(comm.Blue)}
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(5 * time.Second)

	for i := 0; ; {
		select {
		case line, ok := <-lines:
			if !ok {
				t.Fatal("event stream closed")
			}
			if data, found := strings.CutPrefix(line, "data:"); found {
				data = strings.TrimSpace(data)
				if data != "static:red" && data != "static:blue" {
					t.Errorf("event data = %q", data)
				}
				return
			}
		case <-ticker.C:
			srv.Set(toggle[i%2])
			i++
		case <-timeout:
			t.Fatal("no state event received")
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, httpSrv := startMonitor(t, true)

	client, err := comm.Dial(wsURL(httpSrv))
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	if _, err := client.Get(); err != nil {
		t.Fatalf("Get: %v", err)
	}
	client.Close()

	resp, err := http.Get(httpSrv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), `aorura_emu_commands_total{result="status"}`) {
		t.Error("metrics do not include the status command counter")
	}
}
