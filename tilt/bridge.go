package tilt

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Bridge turns a phone into the tilt sensor: it serves a small sensor page
// and accepts device-orientation frames over a websocket, keeping only the
// newest sample for the game loop to read.
type Bridge struct {
	addr     string
	cell     Cell
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[uuid.UUID]*websocket.Conn

	srv *http.Server
}

// orientationFrame matches what the sensor page sends per event.
type orientationFrame struct {
	Gamma float64 `json:"gamma"`
	Beta  float64 `json:"beta"`
}

// NewBridge creates a bridge listening on addr (e.g. ":8089").
func NewBridge(addr string) *Bridge {
	b := &Bridge{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[uuid.UUID]*websocket.Conn),
	}

	r := chi.NewRouter()
	r.Get("/", b.handleSensorPage)
	r.Get("/tilt", b.handleWebSocket)

	b.srv = &http.Server{Addr: addr, Handler: r}
	return b
}

// Start serves in the background. Errors other than a clean shutdown are
// logged; a dead bridge simply means every run falls back to keyboard.
func (b *Bridge) Start() {
	go func() {
		log.Printf("tilt: sensor bridge listening on %s", b.addr)
		if err := b.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("tilt: bridge stopped: %v", err)
		}
	}()
}

// Shutdown stops the HTTP server and drops all sensor clients.
func (b *Bridge) Shutdown(ctx context.Context) error {
	b.mu.Lock()
	for id, conn := range b.clients {
		_ = conn.Close()
		delete(b.clients, id)
	}
	b.mu.Unlock()
	return b.srv.Shutdown(ctx)
}

// Latest returns the newest orientation sample.
func (b *Bridge) Latest() (Sample, bool) {
	return b.cell.Latest()
}

// ClientCount returns the number of attached sensor clients.
func (b *Bridge) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// ProbeResult is the outcome of the run-start capability probe.
type ProbeResult struct {
	Tilt   bool
	Reason string // set when falling back to keyboard
}

// Probe decides the control mode for a run. Tilt is available when a sensor
// client is attached and has delivered at least one sample; if a client is
// attached but silent, Probe waits until ctx expires before falling back.
// Keyboard is a first-class mode, so every failure path degrades to it.
func (b *Bridge) Probe(ctx context.Context) ProbeResult {
	if b == nil {
		return ProbeResult{Reason: "sensor bridge not running"}
	}
	if b.ClientCount() == 0 {
		return ProbeResult{Reason: "no sensor client connected"}
	}

	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		if _, ok := b.cell.Latest(); ok {
			return ProbeResult{Tilt: true}
		}
		select {
		case <-ctx.Done():
			return ProbeResult{Reason: "sensor client sent no data"}
		case <-tick.C:
		}
	}
}

func (b *Bridge) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("tilt: upgrade failed: %v", err)
		return
	}

	id := uuid.New()
	b.mu.Lock()
	b.clients[id] = conn
	b.mu.Unlock()
	log.Printf("tilt: sensor client %s connected from %s", id, r.RemoteAddr)

	defer func() {
		b.mu.Lock()
		delete(b.clients, id)
		b.mu.Unlock()
		_ = conn.Close()
		log.Printf("tilt: sensor client %s disconnected", id)
	}()

	for {
		var frame orientationFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("tilt: sensor client %s read error: %v", id, err)
			}
			return
		}
		b.cell.Store(Sample{Gamma: frame.Gamma, Beta: frame.Beta, At: time.Now()})
	}
}

func (b *Bridge) handleSensorPage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(sensorPage))
}

// sensorPage is the phone-side controller. It requests sensor permission
// where the platform gates it (iOS), then streams gamma/beta over the
// websocket. Absence of the permission API means the sensor is free to use.
const sensorPage = `<!DOCTYPE html>
<html>
<head>
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>tilt controller</title>
<style>
body { background: #111; color: #eee; font-family: sans-serif; text-align: center; padding-top: 4em; }
button { font-size: 1.4em; padding: 0.6em 1.4em; }
#status { margin-top: 2em; font-size: 1.2em; }
</style>
</head>
<body>
<button id="go">Start tilting</button>
<div id="status">hold the phone in landscape</div>
<script>
const status = document.getElementById('status');
let ws;

function connect() {
  ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/tilt');
  ws.onopen = () => { status.textContent = 'connected — tilt away'; };
  ws.onclose = () => { status.textContent = 'disconnected'; };
}

function listen() {
  let last = 0;
  window.addEventListener('deviceorientation', (e) => {
    const now = Date.now();
    if (now - last < 33 || !ws || ws.readyState !== WebSocket.OPEN) return;
    last = now;
    ws.send(JSON.stringify({gamma: e.gamma || 0, beta: e.beta || 0}));
  });
}

document.getElementById('go').addEventListener('click', async () => {
  if (typeof DeviceOrientationEvent !== 'undefined' &&
      typeof DeviceOrientationEvent.requestPermission === 'function') {
    try {
      const resp = await DeviceOrientationEvent.requestPermission();
      if (resp !== 'granted') { status.textContent = 'permission denied'; return; }
    } catch (err) { status.textContent = 'permission request failed'; return; }
  }
  connect();
  listen();
});
</script>
</body>
</html>
`
