package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"tectonicglobe/globe"
)

// MeshData is sent to the frontend for rendering
type MeshData struct {
	Type     string       `json:"type"`
	Seed     int64        `json:"seed"`
	Radius   float64      `json:"radius"`
	Vertices [][3]float64 `json:"vertices"`
	Normals  [][3]float64 `json:"normals"`
	Colors   [][4]uint8   `json:"colors"` // sRGB
	Indices  []uint32     `json:"indices"`
	Heights  []float64    `json:"heights"`
	PlateIDs []int        `json:"plateIds"`
	Plates   []PlateData  `json:"plates"`
}

// PlateData describes one plate for overlays.
type PlateData struct {
	ID     int        `json:"id"`
	Type   string     `json:"type"`
	Center [3]float64 `json:"center"`
	Drift  [3]float64 `json:"drift"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// PreviewServer pushes one generated planet to every websocket client.
type PreviewServer struct {
	log     *slog.Logger
	port    int
	payload []byte

	clientsMutex sync.Mutex
	clients      map[*websocket.Conn]*sync.Mutex
}

// NewPreviewServer encodes the planet once; every client receives the same
// frame.
func NewPreviewServer(planet *globe.Planet, port int, log *slog.Logger) *PreviewServer {
	payload, err := json.Marshal(createMeshData(planet))
	if err != nil {
		// MeshData holds only plain numbers and strings.
		panic(fmt.Sprintf("encode mesh data: %v", err))
	}
	return &PreviewServer{
		log:     log,
		port:    port,
		payload: payload,
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Handler returns the HTTP routes of the server.
func (s *PreviewServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/mesh", s.handleMesh)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// Run serves until ctx is cancelled, then closes every client.
func (s *PreviewServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("preview server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.closeClients()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("preview server stopped")
	return nil
}

func (s *PreviewServer) handleMesh(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(s.payload)
}

func (s *PreviewServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}
	s.clientsMutex.Lock()
	s.clients[conn] = connMutex
	s.clientsMutex.Unlock()
	defer func() {
		s.clientsMutex.Lock()
		delete(s.clients, conn)
		s.clientsMutex.Unlock()
	}()

	s.log.Info("client connected", "remote", r.RemoteAddr)

	// Send initial mesh data
	connMutex.Lock()
	err = conn.WriteMessage(websocket.TextMessage, s.payload)
	connMutex.Unlock()
	if err != nil {
		s.log.Warn("websocket write", "remote", r.RemoteAddr, "error", err)
		return
	}

	// The world is static; reads only detect the client going away and
	// answer explicit resend requests.
	for {
		var msg struct {
			Type string `json:"type"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("websocket read", "remote", r.RemoteAddr, "error", err)
			}
			break
		}
		if msg.Type == "resend" {
			connMutex.Lock()
			err := conn.WriteMessage(websocket.TextMessage, s.payload)
			connMutex.Unlock()
			if err != nil {
				s.log.Warn("websocket write", "remote", r.RemoteAddr, "error", err)
				break
			}
		}
	}

	s.log.Info("client disconnected", "remote", r.RemoteAddr)
}

func (s *PreviewServer) closeClients() {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()
	for conn, mutex := range s.clients {
		mutex.Lock()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		mutex.Unlock()
		conn.Close()
	}
}

func createMeshData(planet *globe.Planet) MeshData {
	mesh := planet.Mesh
	vertices := make([][3]float64, len(mesh.Positions))
	normals := make([][3]float64, len(mesh.Normals))
	colors := make([][4]uint8, len(mesh.Colors))

	for i, p := range mesh.Positions {
		vertices[i] = p
	}
	for i, n := range mesh.Normals {
		normals[i] = n
	}
	for i, c := range mesh.Colors {
		colors[i] = c.SRGB8()
	}

	plates := make([]PlateData, len(planet.World.Plates))
	for i, p := range planet.World.Plates {
		plates[i] = PlateData{
			ID:     p.ID,
			Type:   p.Type.String(),
			Center: p.Center,
			Drift:  p.Drift,
		}
	}

	return MeshData{
		Type:     "mesh",
		Seed:     planet.World.Seed,
		Radius:   planet.World.Params.Radius,
		Vertices: vertices,
		Normals:  normals,
		Colors:   colors,
		Indices:  mesh.Indices,
		Heights:  planet.Heights,
		PlateIDs: planet.PlateIDs,
		Plates:   plates,
	}
}
