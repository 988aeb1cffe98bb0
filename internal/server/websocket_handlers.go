package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/MeKo-Tech/textframe/internal/frame"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FrameMessage is one frame sent by a WebSocket client. Image carries the
// encoded frame, base64 in JSON. A missing or null OutputOrientation means no
// requested output orientation.
type FrameMessage struct {
	Orientation       string  `json:"orientation,omitempty"`
	OutputOrientation *string `json:"outputOrientation,omitempty"`
	Image             []byte  `json:"image"`
}

// FrameResponse is sent for every received message, in order. Result holds
// the detection result itself, or null when the frame was dropped or failed.
type FrameResponse struct {
	Type   string         `json:"type"` // result, dropped, error
	Seq    uint64         `json:"seq"`
	Result map[string]any `json:"result"`
	Error  string         `json:"error,omitempty"`
}

// WebSocketConnWriter is the write side of a WebSocket connection.
type WebSocketConnWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// framesWebSocketHandler streams frames. Messages on one connection are
// processed serially in arrival order.
func (s *Server) framesWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)
	conn.SetReadLimit(s.maxFrameBytes * 2)
	s.handleWebSocketConnection(conn)
}

func (s *Server) handleWebSocketConnection(conn *websocket.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
					return
				}
			}
		}
	}()

	var seq uint64
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		websocketMessagesTotal.WithLabelValues("received").Inc()

		if messageType != websocket.TextMessage {
			continue
		}
		seq++
		s.sendFrameResponse(conn, s.handleFrameMessage(seq, data))
	}
}

// handleFrameMessage turns one client message into its response.
func (s *Server) handleFrameMessage(seq uint64, data []byte) FrameResponse {
	var msg FrameMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return FrameResponse{Type: "error", Seq: seq, Error: fmt.Sprintf("failed to parse message: %v", err)}
	}
	if len(msg.Image) == 0 {
		return FrameResponse{Type: "error", Seq: seq, Error: "no image data provided"}
	}
	if int64(len(msg.Image)) > s.maxFrameBytes {
		return FrameResponse{Type: "error", Seq: seq, Error: frame.ErrTooLarge.Error()}
	}
	sensor, err := s.sensorOrientation(msg.Orientation)
	if err != nil {
		return FrameResponse{Type: "error", Seq: seq, Error: err.Error()}
	}

	if !s.throttle.Allow() {
		framesDropped.WithLabelValues("websocket").Inc()
		return FrameResponse{Type: "dropped", Seq: seq}
	}
	uploadSizeBytes.Observe(float64(len(msg.Image)))

	var requested string
	if msg.OutputOrientation != nil {
		requested = *msg.OutputOrientation
	}
	args := s.frameArgs(requested, msg.OutputOrientation != nil)

	// Process returns {"result": ...}; the response carries the inner map.
	env := s.processor.Process(frame.FromBytes(msg.Image, sensor), args)
	result, _ := env["result"].(map[string]any)
	return FrameResponse{
		Type:   "result",
		Seq:    seq,
		Result: result,
	}
}

func (s *Server) sendFrameResponse(conn WebSocketConnWriter, response FrameResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		slog.Error("Failed to marshal WebSocket response", "error", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to send WebSocket message", "error", err)
		return
	}
	websocketMessagesTotal.WithLabelValues("sent").Inc()
}
